package main

import (
	"image/color"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/grow/pkg/components"
	"github.com/decker502/grow/pkg/systems"
	"github.com/decker502/grow/pkg/types"
	"github.com/decker502/grow/pkg/utils"
)

// 每个格子在终端中占 4 列 2 行（终端字符约为 1:2 的长方形）
const (
	cellCols = 4
	cellRows = 2
)

// boardOrigin 棋盘在终端中居中时左上角的位置
//
// 参数：
//   - termW, termH: 终端尺寸
//   - g: 网格
//
// 返回：
//   - ox, oy: 左上角坐标，终端太小时为 0
func boardOrigin(termW, termH int, g *components.Grid) (ox, oy int) {
	ox = max(0, (termW-g.Width()*cellCols)/2)
	oy = max(0, (termH-g.Height()*cellRows)/2)
	return ox, oy
}

// boardTransform 把终端坐标映射到格子坐标
//
// 指针坐标的 x 先除以 2，这样每个格子在变换空间中是 2×2 的正方形，
// 可以复用 BoardTransform 和 PointerTracker。
func boardTransform(ox, oy int) utils.BoardTransform {
	return utils.BoardTransform{
		OffsetX: float64(ox) / 2,
		OffsetY: float64(oy),
		Scale:   cellRows,
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func styleFor(fg color.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(rgb(fg)).Background(rgb(types.PaletteBlack))
}

func putString(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for i, r := range []rune(str) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

// drawBoard 绘制整个棋盘
//
// 参数：
//   - s: 终端屏幕
//   - g: 网格
//   - results: 观察者结果
//   - ox, oy: 棋盘左上角
func drawBoard(s tcell.Screen, g *components.Grid, results []systems.WatcherResult, ox, oy int) {
	byPos := make(map[[2]int]systems.WatcherResult, len(results))
	for _, r := range results {
		byPos[[2]int{r.X, r.Y}] = r
	}

	g.Each(func(x, y int, c components.Cell) {
		cx, cy := ox+x*cellCols, oy+y*cellRows
		switch v := c.(type) {
		case nil:
			s.SetContent(cx+1, cy, '·', nil, styleFor(types.PaletteGray))
		case components.WallCell:
			putString(s, cx, cy, "▓▓▓", styleFor(types.PaletteBrown))
		case components.WaterCell:
			putString(s, cx+1, cy, "≈"+strconv.Itoa(v.Amount), styleFor(types.PaletteWhite))
		case components.VineCell:
			drawVine(s, g, x, y, v, cx, cy)
		case components.WatcherCell:
			r, ok := byPos[[2]int{x, y}]
			if !ok {
				r, _ = systems.EvaluateWatcher(g, x, y, systems.DefaultWatcherRule())
			}
			fg, _ := types.ColorPair(v.Color)
			style := styleFor(fg)
			if r.Satisfied {
				style = style.Reverse(true)
			}
			putString(s, cx+1, cy, watcherLabel(r), style)
		}
	})
}

// drawVine 节点画在第 1 列，向东和向南画连接线
func drawVine(s tcell.Screen, g *components.Grid, x, y int, v components.VineCell, cx, cy int) {
	fg, bg := types.ColorPair(v.Color)
	bridge := styleFor(bg)

	connections := 0
	for dir, c := range systems.Neighbors4(g, x, y) {
		nv, ok := components.AsVine(c)
		if !ok || nv.Color != v.Color || v.Color == types.ColorNone {
			continue
		}
		connections++
		switch dir {
		case systems.West:
			s.SetContent(cx, cy, '─', nil, bridge)
		case systems.East:
			putString(s, cx+2, cy, "──", bridge)
		case systems.South:
			s.SetContent(cx+1, cy+1, '│', nil, bridge)
		}
	}
	s.SetContent(cx+1, cy, vineGlyph(v, connections), nil, styleFor(fg))
}

// vineGlyph 种子、分叉点和普通节点使用不同字符
func vineGlyph(v components.VineCell, connections int) rune {
	switch {
	case v.Initial:
		return '◉'
	case connections > 2:
		return '■'
	default:
		return '●'
	}
}

// watcherLabel 计数加上条件标记
func watcherLabel(r systems.WatcherResult) string {
	label := r.Label()
	switch r.Criteria {
	case components.CriteriaMoreThan:
		label += ">"
	case components.CriteriaLessThan:
		label += "<"
	}
	return label
}
