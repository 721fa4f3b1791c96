package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/decker502/grow/pkg/components"
	"github.com/decker502/grow/pkg/types"
)

// CellCodec 格子序列的编码方式
//
// 格子序列按列优先顺序展开（先第 0 列从上到下，再第 1 列……），
// 长度等于 width*height，空格子为 nil。
type CellCodec interface {
	// Name 编码名称，用于日志
	Name() string
	// Present 判断文档中是否带有本编码的载荷
	Present(doc *LevelDocument) bool
	// Encode 把格子序列写入文档的对应字段
	Encode(cells []components.Cell, doc *LevelDocument) error
	// Decode 从文档中读取格子序列，不检查长度
	Decode(doc *LevelDocument) ([]components.Cell, error)
}

// StructuredCodec 结构化编码：Arr 中每个格子一条记录
type StructuredCodec struct{}

// Name 实现 CellCodec
func (StructuredCodec) Name() string { return "structured" }

// Present 实现 CellCodec
func (StructuredCodec) Present(doc *LevelDocument) bool {
	return doc.Arr != nil
}

// Encode 实现 CellCodec
func (StructuredCodec) Encode(cells []components.Cell, doc *LevelDocument) error {
	arr := make([]*CellRecord, len(cells))
	for i, c := range cells {
		arr[i] = recordFromCell(c)
	}
	doc.Arr = arr
	return nil
}

// Decode 实现 CellCodec
func (StructuredCodec) Decode(doc *LevelDocument) ([]components.Cell, error) {
	cells := make([]components.Cell, len(doc.Arr))
	for i, r := range doc.Arr {
		c, err := r.toCell()
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		cells[i] = c
	}
	return cells, nil
}

// 紧凑编码的前缀字符
const (
	tokenAbsent  = 'a'
	tokenWall    = 'b'
	tokenVine    = 'v'
	tokenWatcher = 'w'
	tokenWater   = 'r'
)

// CompactCodec 紧凑编码：Str 中每个格子一个词，以单个空格分隔
//
// 词法：
//   - "a"                      空
//   - "b"                      墙
//   - "v<颜色>"                藤蔓，如 "v1"
//   - "w<颜色><数量>[>|<]"     观察者，如 "w42"；后缀 > 表示 MoreThan，< 表示 LessThan
//   - "r<数量>"                水源，如 "r3"
type CompactCodec struct{}

// Name 实现 CellCodec
func (CompactCodec) Name() string { return "compact" }

// Present 实现 CellCodec
func (CompactCodec) Present(doc *LevelDocument) bool {
	return doc.Str != ""
}

// Encode 实现 CellCodec
func (CompactCodec) Encode(cells []components.Cell, doc *LevelDocument) error {
	tokens := make([]string, len(cells))
	for i, c := range cells {
		tok, err := EncodeCellToken(c)
		if err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
		tokens[i] = tok
	}
	doc.Str = strings.Join(tokens, " ")
	return nil
}

// Decode 实现 CellCodec
func (CompactCodec) Decode(doc *LevelDocument) ([]components.Cell, error) {
	tokens := strings.Split(doc.Str, " ")
	cells := make([]components.Cell, len(tokens))
	for i, tok := range tokens {
		c, err := DecodeCellToken(tok)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		cells[i] = c
	}
	return cells, nil
}

// EncodeCellToken 把单个格子编码为紧凑词（不含 Initial 标记）
func EncodeCellToken(c components.Cell) (string, error) {
	switch v := c.(type) {
	case nil:
		return string(tokenAbsent), nil
	case components.WallCell:
		return string(tokenWall), nil
	case components.VineCell:
		if !v.Color.IsDrawable() {
			return "", fmt.Errorf("%w: vine color %d", ErrInvalidToken, int(v.Color))
		}
		return string([]byte{tokenVine, v.Color.Digit()}), nil
	case components.WatcherCell:
		if !v.Color.IsDrawable() || v.Amount < 0 {
			return "", fmt.Errorf("%w: watcher color %d amount %d", ErrInvalidToken, int(v.Color), v.Amount)
		}
		var b strings.Builder
		b.WriteByte(tokenWatcher)
		b.WriteByte(v.Color.Digit())
		b.WriteString(strconv.Itoa(v.Amount))
		switch v.Criteria {
		case components.CriteriaMoreThan:
			b.WriteByte('>')
		case components.CriteriaLessThan:
			b.WriteByte('<')
		}
		return b.String(), nil
	case components.WaterCell:
		if v.Amount < 0 {
			return "", fmt.Errorf("%w: water amount %d", ErrInvalidToken, v.Amount)
		}
		return string(tokenWater) + strconv.Itoa(v.Amount), nil
	default:
		return "", fmt.Errorf("%w: unsupported cell %T", ErrInvalidToken, c)
	}
}

// DecodeCellToken 按首字符解析单个词
func DecodeCellToken(tok string) (components.Cell, error) {
	if tok == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}
	body := tok[1:]
	switch tok[0] {
	case tokenAbsent:
		if body != "" {
			break
		}
		return nil, nil
	case tokenWall:
		if body != "" {
			break
		}
		return components.WallCell{}, nil
	case tokenVine:
		if len(body) != 1 {
			break
		}
		color, ok := types.ParseColorDigit(body[0])
		if !ok || !color.IsDrawable() {
			break
		}
		return components.VineCell{Color: color}, nil
	case tokenWatcher:
		if len(body) < 2 {
			break
		}
		color, ok := types.ParseColorDigit(body[0])
		if !ok || !color.IsDrawable() {
			break
		}
		digits := body[1:]
		criteria := components.CriteriaExactly
		switch digits[len(digits)-1] {
		case '>':
			criteria = components.CriteriaMoreThan
			digits = digits[:len(digits)-1]
		case '<':
			criteria = components.CriteriaLessThan
			digits = digits[:len(digits)-1]
		}
		amount, ok := parseAmount(digits)
		if !ok {
			break
		}
		return components.WatcherCell{Color: color, Amount: amount, Criteria: criteria}, nil
	case tokenWater:
		amount, ok := parseAmount(body)
		if !ok {
			break
		}
		return components.WaterCell{Amount: amount}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidToken, tok)
}

// parseAmount 解析非负十进制数量，不接受符号
func parseAmount(s string) (int, bool) {
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
