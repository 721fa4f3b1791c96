package utils

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// LoadDefaultFontSource 加载内置的 Go Regular 字体
//
// 字体随 golang.org/x/image 一起编译进程序，不依赖资源文件。
func LoadDefaultFontSource() (*text.GoTextFaceSource, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load default font: %w", err)
	}
	return src, nil
}

// WrapText 在空白处断行，使每行宽度不超过 maxWidth
//
// 连续空白折叠为一个空格；比 maxWidth 还宽的单词独占一行。
func WrapText(str string, font *text.GoTextFace, maxWidth float64) []string {
	if str == "" || font == nil || maxWidth <= 0 {
		return []string{str}
	}

	words := strings.Fields(str)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if MeasureTextWidth(candidate, font) > maxWidth {
			lines = append(lines, current)
			current = w
			continue
		}
		current = candidate
	}
	return append(lines, current)
}

// MeasureTextWidth 文本的像素宽度，font 为 nil 时返回 0
func MeasureTextWidth(str string, font *text.GoTextFace) float64 {
	if str == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(str, font, 0)
	return width
}
