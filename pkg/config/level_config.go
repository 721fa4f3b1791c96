package config

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/decker502/grow/pkg/components"
	"github.com/decker502/grow/pkg/embedded"
	"github.com/decker502/grow/pkg/game"
	"gopkg.in/yaml.v3"
)

// EmbeddedLevelsGlob 内置关卡文件的匹配模式
const EmbeddedLevelsGlob = "data/levels/*.yaml"

// LevelConfig 关卡配置（面向关卡作者的 YAML 格式）
//
// Layout 按行书写，每行是以空白分隔的紧凑词，方便在文本编辑器中对齐：
//
//	layout:
//	  - "v1 a  a"
//	  - "a  a  w11"
//
// 所有行的词数必须相同（即关卡宽度），行数为关卡高度。
type LevelConfig struct {
	ID     string   `yaml:"id"`     // 关卡ID，同时用作存储键，如 "sprout"
	Name   string   `yaml:"name"`   // 关卡名称
	Hint   string   `yaml:"hint"`   // 关卡提示（可选）
	Order  int      `yaml:"order"`  // 关卡顺序，相同时按 ID 排序
	Layout []string `yaml:"layout"` // 按行书写的格子布局
}

// LoadLevelConfig 从 YAML 文件加载关卡配置
//
// 参数：
//   - filepath: 关卡配置文件的路径（相对或绝对路径）
//
// 返回：
//   - *LevelConfig: 解析并校验后的关卡配置
//   - error: 文件读取、解析或校验失败时返回错误
func LoadLevelConfig(filepath string) (*LevelConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", filepath, err)
	}
	return ParseLevelConfig(data, filepath)
}

// ParseLevelConfig 解析 YAML 关卡配置
//
// 参数：
//   - data: YAML 内容
//   - source: 来源名称，仅用于错误信息；ID 为空时取文件名（不含扩展名）
func ParseLevelConfig(data []byte, source string) (*LevelConfig, error) {
	var levelConfig LevelConfig
	if err := yaml.Unmarshal(data, &levelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse level config YAML from %s: %w", source, err)
	}

	applyDefaults(&levelConfig, source)

	if err := validateLevelConfig(&levelConfig); err != nil {
		return nil, fmt.Errorf("invalid level config in %s: %w", source, err)
	}
	return &levelConfig, nil
}

// LoadEmbeddedLevels 加载所有内置关卡，按 Order、ID 排序
func LoadEmbeddedLevels() ([]*LevelConfig, error) {
	files, err := embedded.Glob(EmbeddedLevelsGlob)
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded levels: %w", err)
	}

	levels := make([]*LevelConfig, 0, len(files))
	seen := make(map[string]string)
	for _, f := range files {
		data, err := embedded.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
		lc, err := ParseLevelConfig(data, f)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[lc.ID]; dup {
			return nil, fmt.Errorf("duplicate level id %q in %s and %s", lc.ID, prev, f)
		}
		seen[lc.ID] = f
		levels = append(levels, lc)
	}

	SortLevels(levels)
	return levels, nil
}

// SortLevels 按 Order、ID 排序
func SortLevels(levels []*LevelConfig) {
	sort.SliceStable(levels, func(i, j int) bool {
		if levels[i].Order != levels[j].Order {
			return levels[i].Order < levels[j].Order
		}
		return levels[i].ID < levels[j].ID
	})
}

// Size 返回关卡宽高
func (c *LevelConfig) Size() (width, height int) {
	if len(c.Layout) == 0 {
		return 0, 0
	}
	return len(strings.Fields(c.Layout[0])), len(c.Layout)
}

// ToDocument 把按行书写的布局转换为按列优先排列的关卡文档（紧凑编码）
func (c *LevelConfig) ToDocument() *game.LevelDocument {
	width, height := c.Size()
	rows := make([][]string, height)
	for y, line := range c.Layout {
		rows[y] = strings.Fields(line)
	}

	tokens := make([]string, 0, width*height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if x < len(rows[y]) {
				tokens = append(tokens, rows[y][x])
			}
		}
	}

	return &game.LevelDocument{
		FormatVersion:  game.FormatVersion,
		PaletteVersion: game.PaletteVersion,
		Width:          width,
		Height:         height,
		Str:            strings.Join(tokens, " "),
		Name:           c.Name,
		Hint:           c.Hint,
	}
}

// LevelConfigFromGrid 把网格的编辑内容导出为关卡配置（编辑器保存为 YAML 时使用）
func LevelConfigFromGrid(id, name, hint string, grid *components.Grid) (*LevelConfig, error) {
	layout := make([]string, grid.Height())
	for y := 0; y < grid.Height(); y++ {
		tokens := make([]string, grid.Width())
		for x := 0; x < grid.Width(); x++ {
			c := grid.Get(x, y)
			if !components.IsAuthored(c) {
				c = nil
			}
			tok, err := game.EncodeCellToken(components.StripAuthored(c))
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", x, y, err)
			}
			tokens[x] = tok
		}
		layout[y] = strings.Join(tokens, " ")
	}

	lc := &LevelConfig{ID: id, Name: name, Hint: hint, Layout: layout}
	applyDefaults(lc, "")
	if err := validateLevelConfig(lc); err != nil {
		return nil, err
	}
	return lc, nil
}

// applyDefaults 为缺失的可选字段设置默认值
func applyDefaults(config *LevelConfig, source string) {
	// ID 为空时取文件名
	if config.ID == "" && source != "" {
		config.ID = strings.TrimSuffix(path.Base(strings.ReplaceAll(source, "\\", "/")), path.Ext(source))
	}

	// 名称为空时使用 ID
	if config.Name == "" {
		config.Name = config.ID
	}

	for i, line := range config.Layout {
		config.Layout[i] = strings.TrimSpace(line)
	}
}

// validateLevelConfig 验证关卡配置的完整性和合法性
func validateLevelConfig(config *LevelConfig) error {
	if err := game.ValidateLevelID(config.ID); err != nil {
		return err
	}

	if len(config.Layout) == 0 {
		return fmt.Errorf("layout is required")
	}

	width, _ := config.Size()
	if width == 0 {
		return fmt.Errorf("layout row 0 is empty")
	}
	for y, line := range config.Layout {
		if n := len(strings.Fields(line)); n != width {
			return fmt.Errorf("layout row %d has %d cells, expected %d", y, n, width)
		}
	}

	// 完整走一遍反序列化，保证词法和版本都能被游戏接受
	if _, err := game.Deserialize(config.ToDocument()); err != nil {
		return err
	}
	return nil
}
