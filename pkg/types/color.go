// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// Color 定义藤蔓和观察者的颜色
//
// 数值即紧凑编码中的颜色数字（"v1" = 绿色藤蔓），
// 因此枚举顺序不可调整，新增颜色只能追加在末尾。
type Color int

const (
	// ColorNone 无颜色（未设置），永远不会是已绘制藤蔓的颜色
	ColorNone Color = iota
	// ColorGreen 绿色
	ColorGreen
	// ColorYellow 黄色
	ColorYellow
	// ColorBlue 蓝色
	ColorBlue
	// ColorRed 红色
	ColorRed
)

// colorCount 颜色枚举的取值个数
const colorCount = 5

// AllColors 返回所有可绘制的颜色（不含 ColorNone）
func AllColors() []Color {
	return []Color{ColorGreen, ColorYellow, ColorBlue, ColorRed}
}

// String 返回颜色的字符串表示
func (c Color) String() string {
	switch c {
	case ColorNone:
		return "None"
	case ColorGreen:
		return "Green"
	case ColorYellow:
		return "Yellow"
	case ColorBlue:
		return "Blue"
	case ColorRed:
		return "Red"
	default:
		return fmt.Sprintf("Color(%d)", int(c))
	}
}

// IsValid 检查颜色是否在枚举范围内
func (c Color) IsValid() bool {
	return c >= ColorNone && c < colorCount
}

// IsDrawable 藤蔓和观察者可以使用的颜色（合法且不是 ColorNone）
func (c Color) IsDrawable() bool {
	return c != ColorNone && c.IsValid()
}

// Digit 返回颜色在紧凑编码中的单个数字字符
func (c Color) Digit() byte {
	return byte('0' + int(c))
}

// ParseColorDigit 将紧凑编码中的颜色数字解析为 Color
//
// 参数：
//   - d: 颜色数字字符，如 '1'
//
// 返回：
//   - Color: 解析出的颜色
//   - bool: 字符不是合法颜色数字时返回 false
func ParseColorDigit(d byte) (Color, bool) {
	if d < '0' || d > '9' {
		return ColorNone, false
	}
	c := Color(d - '0')
	if !c.IsValid() {
		return ColorNone, false
	}
	return c, true
}
