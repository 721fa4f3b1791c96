package utils

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func testFace(t *testing.T) *text.GoTextFace {
	t.Helper()
	src, err := LoadDefaultFontSource()
	if err != nil {
		t.Fatalf("LoadDefaultFontSource: %v", err)
	}
	return &text.GoTextFace{Source: src, Size: 16}
}

func TestWrapText(t *testing.T) {
	face := testFace(t)
	hint := "Drag from the seed. A watcher counts down for each matching vine beside it."

	cases := map[string]struct {
		in       string
		width    float64
		minLines int
	}{
		"短文本":  {"Sprout", 1000, 1},
		"长提示":  {hint, 150, 3},
		"空字符串": {"", 100, 1},
		"超长单词": {"a supercalifragilistic word", 20, 3},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			lines := WrapText(c.in, face, c.width)
			if len(lines) < c.minLines {
				t.Fatalf("got %d lines %q, want at least %d", len(lines), lines, c.minLines)
			}
			// 多个单词的行不能超宽
			for _, l := range lines {
				if strings.Contains(l, " ") && MeasureTextWidth(l, face) > c.width {
					t.Errorf("line %q wider than %v", l, c.width)
				}
			}
			if got := strings.Join(lines, " "); got != strings.Join(strings.Fields(c.in), " ") {
				t.Errorf("rejoined = %q, want original words", got)
			}
		})
	}
}

// 缺少字体或宽度时原样返回一行
func TestWrapTextPassThrough(t *testing.T) {
	face := &text.GoTextFace{Size: 22}
	for _, c := range []struct {
		face  *text.GoTextFace
		width float64
	}{{nil, 100}, {face, 0}, {face, -100}} {
		if lines := WrapText("a b", c.face, c.width); len(lines) != 1 || lines[0] != "a b" {
			t.Errorf("WrapText(face=%v, width=%v) = %q", c.face != nil, c.width, lines)
		}
	}
}

func TestMeasureTextWidth(t *testing.T) {
	face := testFace(t)
	if w := MeasureTextWidth("", face); w != 0 {
		t.Errorf("empty width = %v", w)
	}
	if w := MeasureTextWidth("abc", nil); w != 0 {
		t.Errorf("nil font width = %v", w)
	}
	if w := MeasureTextWidth("abc", face); w <= 0 {
		t.Errorf("width = %v, want > 0", w)
	}
}
