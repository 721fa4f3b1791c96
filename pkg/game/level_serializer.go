package game

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/decker502/grow/pkg/components"
	"github.com/decker502/grow/pkg/utils"
	"gopkg.in/yaml.v3"
)

// Level 反序列化得到的关卡
type Level struct {
	Grid *components.Grid
	Name string
	Hint string
}

// Migration 把某个旧版本的文档升级到下一个版本
// 实现不得修改传入的文档
type Migration func(doc *LevelDocument) (*LevelDocument, error)

// LevelSerializer 关卡序列化器
//
// 负责在 Grid 与 LevelDocument 之间转换：
//   - 保存时只保留编辑内容（种子藤蔓、墙、观察者、水源），并去掉 Initial 标记
//   - 读取时先检查版本标记，再完整校验载荷，全部通过后才构建 Grid
//
// 这是一个工具类，不持有关卡状态。
type LevelSerializer struct {
	writer     CellCodec
	readers    []CellCodec
	migrations map[int]Migration
}

// NewLevelSerializer 创建关卡序列化器
//
// 写入使用紧凑编码；读取时紧凑编码优先，其次结构化编码。
// 已注册 v1 -> v2 的迁移（v1 文档只有 arr，本身就是合法的 v2 文档）。
func NewLevelSerializer() *LevelSerializer {
	s := &LevelSerializer{
		writer:     CompactCodec{},
		readers:    []CellCodec{CompactCodec{}, StructuredCodec{}},
		migrations: make(map[int]Migration),
	}
	s.RegisterMigration(1, migrateV1)
	return s
}

// SetWriteCodec 设置保存时使用的编码
func (s *LevelSerializer) SetWriteCodec(codec CellCodec) {
	s.writer = codec
}

// RegisterMigration 注册从 from 版本升级到 from+1 版本的迁移
func (s *LevelSerializer) RegisterMigration(from int, m Migration) {
	s.migrations[from] = m
}

func migrateV1(doc *LevelDocument) (*LevelDocument, error) {
	if doc.Str != "" {
		return nil, fmt.Errorf("%w: v1 document carries a compact payload", ErrUnsupportedVersion)
	}
	upgraded := *doc
	upgraded.FormatVersion = 2
	return &upgraded, nil
}

// Serialize 把网格转换为关卡文档
//
// 参数：
//   - grid: 当前网格
//   - name: 关卡名称
//   - hint: 关卡提示
//
// 返回：
//   - *LevelDocument: 关卡文档，玩家绘制的藤蔓不会出现在其中
//   - error: 网格中存在无法编码的格子时返回错误
func (s *LevelSerializer) Serialize(grid *components.Grid, name, hint string) (*LevelDocument, error) {
	if grid == nil {
		return nil, fmt.Errorf("grid is nil")
	}

	cells := make([]components.Cell, 0, grid.Width()*grid.Height())
	grid.Each(func(x, y int, c components.Cell) {
		if !components.IsAuthored(c) {
			cells = append(cells, nil)
			return
		}
		cells = append(cells, components.StripAuthored(c))
	})

	doc := &LevelDocument{
		FormatVersion:  FormatVersion,
		PaletteVersion: PaletteVersion,
		Width:          grid.Width(),
		Height:         grid.Height(),
		Name:           name,
		Hint:           hint,
	}
	if !doc.validDimensions() {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, doc.Width, doc.Height)
	}
	if err := s.writer.Encode(cells, doc); err != nil {
		return nil, fmt.Errorf("failed to encode cells (%s): %w", s.writer.Name(), err)
	}
	return doc, nil
}

// Deserialize 把关卡文档转换为新的网格
//
// 校验顺序：版本标记 -> 调色板版本 -> 尺寸 -> 载荷 -> 格子数量。
// 任何一步失败都返回错误且不构建网格，调用方的现有状态保持不变。
// 文档本身不会被修改。
//
// 返回：
//   - *Level: 新关卡，所有格子都带 Initial 标记
//   - error: 失败原因，可用 errors.Is 匹配 Err* 哨兵错误
func (s *LevelSerializer) Deserialize(doc *LevelDocument) (*Level, error) {
	level, err := s.deserialize(doc)
	if err != nil {
		log.Printf("[LevelSerializer] Rejected level document: %v", err)
		return nil, err
	}
	log.Printf("[LevelSerializer] Loaded level %q (%dx%d)", level.Name, level.Grid.Width(), level.Grid.Height())
	return level, nil
}

func (s *LevelSerializer) deserialize(doc *LevelDocument) (*Level, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", ErrMissingPayload)
	}

	doc, err := s.migrate(doc)
	if err != nil {
		return nil, err
	}

	if doc.PaletteVersion == 0 {
		return nil, fmt.Errorf("%w: palette version", ErrMissingVersion)
	}
	if doc.PaletteVersion > PaletteVersion {
		return nil, fmt.Errorf("%w: %d (supported %d)", ErrUnsupportedPalette, doc.PaletteVersion, PaletteVersion)
	}

	if !doc.validDimensions() {
		return nil, fmt.Errorf("%w: %dx%d (each side 1..%d)", ErrInvalidDimensions, doc.Width, doc.Height, MaxLevelSide)
	}

	codec := s.readerFor(doc)
	if codec == nil {
		return nil, fmt.Errorf("%w: neither str nor arr present", ErrMissingPayload)
	}
	cells, err := codec.Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cells (%s): %w", codec.Name(), err)
	}
	if len(cells) != doc.CellCount() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrCellCountMismatch, len(cells), doc.CellCount())
	}

	columns := utils.CreateGrid[components.Cell](doc.Width, doc.Height, nil)
	for i, c := range cells {
		if c != nil {
			c = components.MarkAuthored(c)
		}
		columns[i/doc.Height][i%doc.Height] = c
	}
	grid, err := components.NewGridFromColumns(columns)
	if err != nil {
		return nil, fmt.Errorf("failed to build grid: %w", err)
	}

	return &Level{Grid: grid, Name: doc.Name, Hint: doc.Hint}, nil
}

// migrate 检查版本标记，并把旧版本文档逐级升级到当前版本
func (s *LevelSerializer) migrate(doc *LevelDocument) (*LevelDocument, error) {
	if doc.FormatVersion == 0 {
		return nil, fmt.Errorf("%w: format version", ErrMissingVersion)
	}
	if doc.FormatVersion > FormatVersion {
		return nil, fmt.Errorf("%w: %d (supported %d)", ErrUnsupportedVersion, doc.FormatVersion, FormatVersion)
	}
	for doc.FormatVersion < FormatVersion {
		m, ok := s.migrations[doc.FormatVersion]
		if !ok {
			return nil, fmt.Errorf("%w: no migration from %d", ErrUnsupportedVersion, doc.FormatVersion)
		}
		from := doc.FormatVersion
		next, err := m(doc)
		if err != nil {
			return nil, fmt.Errorf("migration from %d failed: %w", from, err)
		}
		if next.FormatVersion <= from {
			return nil, fmt.Errorf("%w: migration from %d did not advance", ErrUnsupportedVersion, from)
		}
		doc = next
	}
	return doc, nil
}

func (s *LevelSerializer) readerFor(doc *LevelDocument) CellCodec {
	for _, c := range s.readers {
		if c.Present(doc) {
			return c
		}
	}
	return nil
}

var defaultSerializer = NewLevelSerializer()

// Serialize 使用默认序列化器（紧凑编码）保存网格
func Serialize(grid *components.Grid, name, hint string) (*LevelDocument, error) {
	return defaultSerializer.Serialize(grid, name, hint)
}

// Deserialize 使用默认序列化器读取关卡文档
func Deserialize(doc *LevelDocument) (*Level, error) {
	return defaultSerializer.Deserialize(doc)
}

// MarshalDocumentJSON 把文档编码为 JSON（分享字符串格式）
func MarshalDocumentJSON(doc *LevelDocument) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal level document: %w", err)
	}
	return data, nil
}

// ParseDocumentJSON 解析 JSON 格式的文档，不做版本校验
func ParseDocumentJSON(data []byte) (*LevelDocument, error) {
	var doc LevelDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse level document: %w", err)
	}
	return &doc, nil
}

// MarshalDocumentYAML 把文档编码为 YAML（本地存储格式）
func MarshalDocumentYAML(doc *LevelDocument) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal level document: %w", err)
	}
	return data, nil
}

// ParseDocumentYAML 解析 YAML 格式的文档，不做版本校验
func ParseDocumentYAML(data []byte) (*LevelDocument, error) {
	var doc LevelDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse level document: %w", err)
	}
	return &doc, nil
}
