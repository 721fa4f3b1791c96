package scenes

import (
	"image/color"
	"sort"

	"github.com/decker502/grow/pkg/components"
	"github.com/decker502/grow/pkg/systems"
	"github.com/decker502/grow/pkg/types"
)

// ShapeKind 棋盘图形种类
type ShapeKind int

const (
	// ShapeDisc 实心圆，X/Y 为圆心，W 为半径
	ShapeDisc ShapeKind = iota
	// ShapeRoundRect 实心圆角矩形
	ShapeRoundRect
	// ShapeRect 实心矩形（藤蔓之间的连接桥）
	ShapeRect
	// ShapeOutline 矩形边框，Radius 为线宽
	ShapeOutline
)

// 绘制层，数值小的先画
const (
	layerBase = iota
	layerBridge
	layerNode
)

// Shape 以格子为单位描述的图形，由渲染器乘以 BoardTransform.Scale 后绘制
type Shape struct {
	Kind       ShapeKind
	X, Y, W, H float64
	Radius     float64
	Color      color.RGBA
	layer      int
	watcher    bool
}

// Label 观察者上的计数文字，X/Y 为文字中心
type Label struct {
	X, Y  float64
	Text  string
	Color color.RGBA
}

// 格子内图形尺寸（单位：格）
const (
	emptyDotRadius  = 1.0 / 16
	seedRadius      = 0.35
	nodeRadius      = 0.25
	waterRadius     = 0.25
	bridgeHalfWidth = 0.1
	cornerRadius    = 2.0 / 16
)

// BoardShapes 计算整个棋盘的图形和观察者标签
//
// 参数：
//   - g: 网格
//   - results: 观察者计算结果（通常来自 GameState.Watchers）
//
// 返回：
//   - []Shape: 按绘制顺序排列的图形
//   - []Label: 观察者计数标签
func BoardShapes(g *components.Grid, results []systems.WatcherResult) ([]Shape, []Label) {
	byPos := make(map[[2]int]systems.WatcherResult, len(results))
	for _, r := range results {
		byPos[[2]int{r.X, r.Y}] = r
	}

	var shapes []Shape
	var labels []Label
	g.Each(func(x, y int, c components.Cell) {
		fx, fy := float64(x), float64(y)
		switch v := c.(type) {
		case nil:
			shapes = append(shapes, Shape{Kind: ShapeDisc, X: fx + .5, Y: fy + .5, W: emptyDotRadius, Color: types.PaletteGray, layer: layerBase})
		case components.WallCell:
			shapes = append(shapes, Shape{Kind: ShapeRoundRect, X: fx + .1, Y: fy + .1, W: .8, H: .8, Radius: cornerRadius, Color: types.PaletteBrown, layer: layerBase})
		case components.WaterCell:
			shapes = append(shapes, Shape{Kind: ShapeDisc, X: fx + .5, Y: fy + .5, W: waterRadius, Color: types.PaletteWhite, layer: layerNode})
		case components.VineCell:
			shapes = append(shapes, vineShapes(g, x, y, v)...)
		case components.WatcherCell:
			r, ok := byPos[[2]int{x, y}]
			if !ok {
				r, _ = systems.EvaluateWatcher(g, x, y, systems.DefaultWatcherRule())
			}
			s, l := watcherShape(fx, fy, v, r)
			shapes = append(shapes, s)
			labels = append(labels, l)
		}
	})

	sort.SliceStable(shapes, func(i, j int) bool { return shapes[i].layer < shapes[j].layer })
	return shapes, labels
}

// vineShapes 藤蔓节点和通向四邻域同色藤蔓的连接桥
//
// 种子画成大圆；超过两个连接的分叉点画成圆角方块；其余画成小圆。
func vineShapes(g *components.Grid, x, y int, v components.VineCell) []Shape {
	fg, bg := types.ColorPair(v.Color)
	fx, fy := float64(x), float64(y)
	w := bridgeHalfWidth

	var shapes []Shape
	n := systems.Neighbors4(g, x, y)
	for dir, c := range n {
		nv, ok := components.AsVine(c)
		if !ok || nv.Color != v.Color || v.Color == types.ColorNone {
			continue
		}
		var s Shape
		switch dir {
		case systems.West:
			s = Shape{X: fx, Y: fy + .5 - w, W: .5, H: 2 * w}
		case systems.East:
			s = Shape{X: fx + .5, Y: fy + .5 - w, W: .5, H: 2 * w}
		case systems.North:
			s = Shape{X: fx + .5 - w, Y: fy, W: 2 * w, H: .5}
		case systems.South:
			s = Shape{X: fx + .5 - w, Y: fy + .5, W: 2 * w, H: .5}
		}
		s.Kind = ShapeRect
		s.Color = bg
		s.layer = layerBridge
		shapes = append(shapes, s)
	}
	connections := len(shapes)

	switch {
	case v.Initial:
		shapes = append(shapes, Shape{Kind: ShapeDisc, X: fx + .5, Y: fy + .5, W: seedRadius, Color: fg, layer: layerNode})
	case connections > 2:
		shapes = append(shapes, Shape{Kind: ShapeRoundRect, X: fx + .2, Y: fy + .2, W: .6, H: .6, Radius: cornerRadius, Color: fg, layer: layerNode})
	default:
		shapes = append(shapes, Shape{Kind: ShapeDisc, X: fx + .5, Y: fy + .5, W: nodeRadius, Color: fg, layer: layerNode})
	}
	return shapes
}

// watcherShape 满足时画实心方块和黑色数字，否则画边框和同色数字
func watcherShape(fx, fy float64, w components.WatcherCell, r systems.WatcherResult) (Shape, Label) {
	fg, _ := types.ColorPair(w.Color)
	label := Label{X: fx + .5, Y: fy + .4, Text: r.Label(), Color: fg}
	if r.Satisfied {
		label.Color = types.PaletteBlack
		return Shape{Kind: ShapeRoundRect, X: fx + 1.0/16, Y: fy + 1.0/16, W: 14.0 / 16, H: 14.0 / 16, Radius: cornerRadius, Color: fg, layer: layerBase, watcher: true}, label
	}
	return Shape{Kind: ShapeOutline, X: fx + 2.0/16, Y: fy + 2.0/16, W: 12.0 / 16, H: 12.0 / 16, Radius: 2.0 / 16, Color: fg, layer: layerBase, watcher: true}, label
}
