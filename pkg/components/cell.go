package components

import (
	"fmt"

	"github.com/decker502/grow/pkg/types"
)

// CellKind 格子类型标签
type CellKind int

const (
	// CellEmpty 空格子（nil Cell），不是 Cell 的变体，仅用于 KindOf 的返回值
	CellEmpty CellKind = iota
	// CellWall 墙：不可通行、不可交互
	CellWall
	// CellVine 藤蔓：一段有颜色的路径
	CellVine
	// CellWatcher 观察者：约束格子，每次渲染时检查周围 8 格
	CellWatcher
	// CellWater 水源：补充共享水量
	CellWater
)

// String 返回格子类型的字符串表示
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellWall:
		return "wall"
	case CellVine:
		return "vine"
	case CellWatcher:
		return "watcher"
	case CellWater:
		return "water"
	default:
		return fmt.Sprintf("CellKind(%d)", int(k))
	}
}

// Criteria 观察者的比较条件
//
// 目前渲染只使用 CriteriaExactly（计数等于零即满足），
// MoreThan/LessThan 的比较基准由 systems.WatcherRule 配置
type Criteria int

const (
	// CriteriaExactly 恰好等于
	CriteriaExactly Criteria = iota
	// CriteriaMoreThan 大于
	CriteriaMoreThan
	// CriteriaLessThan 小于
	CriteriaLessThan
)

// String 返回比较条件的字符串表示
func (c Criteria) String() string {
	switch c {
	case CriteriaExactly:
		return "exactly"
	case CriteriaMoreThan:
		return "more_than"
	case CriteriaLessThan:
		return "less_than"
	default:
		return fmt.Sprintf("Criteria(%d)", int(c))
	}
}

// IsValid 检查比较条件是否在枚举范围内
func (c Criteria) IsValid() bool {
	return c >= CriteriaExactly && c <= CriteriaLessThan
}

// ParseCriteria 解析比较条件名称，空字符串视为 CriteriaExactly
func ParseCriteria(s string) (Criteria, bool) {
	switch s {
	case "", "exactly":
		return CriteriaExactly, true
	case "more_than":
		return CriteriaMoreThan, true
	case "less_than":
		return CriteriaLessThan, true
	default:
		return CriteriaExactly, false
	}
}

// Cell 格子的封闭和类型
//
// 只有本包内的 WallCell、VineCell、WatcherCell、WaterCell 可以实现该接口。
// 空格子用 nil 表示，它与任何变体都不同。
type Cell interface {
	Kind() CellKind
	cell()
}

// WallCell 墙
type WallCell struct{}

// VineCell 藤蔓
//
// Initial 为 true 表示关卡作者放置的种子格子，正常游玩时永远不会被擦除；
// 为 false 表示玩家绘制的格子，可以按回退规则擦除。
type VineCell struct {
	Color   types.Color
	Initial bool
}

// WatcherCell 观察者
type WatcherCell struct {
	Color    types.Color
	Amount   int
	Criteria Criteria
}

// WaterCell 水源
type WaterCell struct {
	Amount int
}

func (WallCell) Kind() CellKind    { return CellWall }
func (VineCell) Kind() CellKind    { return CellVine }
func (WatcherCell) Kind() CellKind { return CellWatcher }
func (WaterCell) Kind() CellKind   { return CellWater }

func (WallCell) cell()    {}
func (VineCell) cell()    {}
func (WatcherCell) cell() {}
func (WaterCell) cell()   {}

// KindOf 返回格子类型，nil 返回 CellEmpty
func KindOf(c Cell) CellKind {
	if c == nil {
		return CellEmpty
	}
	return c.Kind()
}

// AsVine 尝试将格子转换为藤蔓
func AsVine(c Cell) (VineCell, bool) {
	v, ok := c.(VineCell)
	return v, ok
}

// AsWatcher 尝试将格子转换为观察者
func AsWatcher(c Cell) (WatcherCell, bool) {
	w, ok := c.(WatcherCell)
	return w, ok
}

// IsAuthored 判断格子是否属于关卡编辑内容（需要随关卡保存）
//
// 藤蔓以 Initial 标记区分；墙、观察者、水源只能由编辑器放置，始终视为编辑内容。
// 空格子返回 false。
func IsAuthored(c Cell) bool {
	switch v := c.(type) {
	case nil:
		return false
	case VineCell:
		return v.Initial
	default:
		return true
	}
}

// MarkAuthored 返回标记为编辑内容的格子副本（藤蔓设置 Initial=true）
func MarkAuthored(c Cell) Cell {
	if v, ok := c.(VineCell); ok {
		v.Initial = true
		return v
	}
	return c
}

// StripAuthored 返回去掉 Initial 标记的格子副本
// 保存时 Initial 由"出现在文档中"隐含表示
func StripAuthored(c Cell) Cell {
	if v, ok := c.(VineCell); ok {
		v.Initial = false
		return v
	}
	return c
}
