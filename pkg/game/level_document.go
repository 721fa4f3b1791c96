package game

import (
	"errors"
	"fmt"

	"github.com/decker502/grow/pkg/components"
	"github.com/decker502/grow/pkg/types"
)

// FormatVersion 关卡文档格式版本号
// v1: 仅结构化记录数组 arr
// v2: 新增紧凑字符串 str（写入时优先使用）
const FormatVersion = 2

// PaletteVersion 调色板版本号，颜色枚举发生不兼容变更时递增
const PaletteVersion = 1

// 反序列化失败的错误类别，调用方可用 errors.Is 判断
var (
	ErrMissingVersion     = errors.New("version marker missing")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrUnsupportedPalette = errors.New("unsupported palette version")
	ErrInvalidDimensions  = errors.New("invalid dimensions")
	ErrCellCountMismatch  = errors.New("cell count does not match width*height")
	ErrMissingPayload     = errors.New("cell payload missing")
	ErrInvalidToken       = errors.New("invalid compact token")
	ErrInvalidRecord      = errors.New("invalid cell record")
)

// LevelDocument 关卡文档
//
// JSON 字段名与浏览器版分享字符串保持一致（___VERSION___、_PALETTE_、arr），
// 因此旧的分享链接可以直接导入。
// Str 与 Arr 至少有一个存在；两者都存在时以 Str 为准。
type LevelDocument struct {
	FormatVersion  int           `json:"___VERSION___" yaml:"format_version"`
	PaletteVersion int           `json:"_PALETTE_" yaml:"palette_version"`
	Width          int           `json:"width" yaml:"width"`
	Height         int           `json:"height" yaml:"height"`
	Str            string        `json:"str,omitempty" yaml:"str,omitempty"`
	Arr            []*CellRecord `json:"arr,omitempty" yaml:"arr,omitempty"`
	Name           string        `json:"name,omitempty" yaml:"name,omitempty"`
	Hint           string        `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// MaxLevelSide 关卡宽高的上限，超过时按 ErrInvalidDimensions 拒绝
const MaxLevelSide = 256

// CellCount 返回文档声明的格子总数，只在尺寸通过 validDimensions 后有意义
func (d *LevelDocument) CellCount() int {
	return d.Width * d.Height
}

// validDimensions 宽高都在 [1, MaxLevelSide] 内，乘积不会溢出
func (d *LevelDocument) validDimensions() bool {
	return d.Width > 0 && d.Height > 0 && d.Width <= MaxLevelSide && d.Height <= MaxLevelSide
}

// 结构化记录的 id 取值
const (
	recordWall    = "wall"
	recordVine    = "vine"
	recordWatcher = "watcher"
	recordWater   = "water"
)

// CellRecord 结构化编码中的单个格子记录，nil 表示空格子
//
// 记录中不保存 Initial 标记：出现在文档中的藤蔓一律视为种子。
type CellRecord struct {
	ID       string      `json:"id" yaml:"id"`
	Color    types.Color `json:"color,omitempty" yaml:"color,omitempty"`
	Amount   int         `json:"amount,omitempty" yaml:"amount,omitempty"`
	Criteria string      `json:"criteria,omitempty" yaml:"criteria,omitempty"`
}

// recordFromCell 把格子转换为结构化记录，空格子返回 nil
func recordFromCell(c components.Cell) *CellRecord {
	switch v := c.(type) {
	case components.WallCell:
		return &CellRecord{ID: recordWall}
	case components.VineCell:
		return &CellRecord{ID: recordVine, Color: v.Color}
	case components.WatcherCell:
		r := &CellRecord{ID: recordWatcher, Color: v.Color, Amount: v.Amount}
		if v.Criteria != components.CriteriaExactly {
			r.Criteria = v.Criteria.String()
		}
		return r
	case components.WaterCell:
		return &CellRecord{ID: recordWater, Amount: v.Amount}
	default:
		return nil
	}
}

// toCell 把结构化记录还原为格子（藤蔓的 Initial 由调用方设置）
//
// 返回：
//   - components.Cell: 还原的格子，nil 记录返回 nil
//   - error: id 未知、颜色或比较条件非法、数量为负时返回 ErrInvalidRecord
func (r *CellRecord) toCell() (components.Cell, error) {
	if r == nil {
		return nil, nil
	}
	switch r.ID {
	case recordWall:
		return components.WallCell{}, nil
	case recordVine:
		if !r.Color.IsDrawable() {
			return nil, fmt.Errorf("%w: vine color %d", ErrInvalidRecord, int(r.Color))
		}
		return components.VineCell{Color: r.Color}, nil
	case recordWatcher:
		if !r.Color.IsDrawable() {
			return nil, fmt.Errorf("%w: watcher color %d", ErrInvalidRecord, int(r.Color))
		}
		if r.Amount < 0 {
			return nil, fmt.Errorf("%w: negative watcher amount %d", ErrInvalidRecord, r.Amount)
		}
		criteria, ok := components.ParseCriteria(r.Criteria)
		if !ok {
			return nil, fmt.Errorf("%w: watcher criteria %q", ErrInvalidRecord, r.Criteria)
		}
		return components.WatcherCell{Color: r.Color, Amount: r.Amount, Criteria: criteria}, nil
	case recordWater:
		if r.Amount < 0 {
			return nil, fmt.Errorf("%w: negative water amount %d", ErrInvalidRecord, r.Amount)
		}
		return components.WaterCell{Amount: r.Amount}, nil
	default:
		return nil, fmt.Errorf("%w: unknown id %q", ErrInvalidRecord, r.ID)
	}
}
