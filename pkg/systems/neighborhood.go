package systems

import (
	"github.com/decker502/grow/pkg/components"
	"github.com/decker502/grow/pkg/types"
)

// 四邻域方向索引（Neighbors4 返回数组的固定顺序）
const (
	West = iota
	East
	North
	South
)

// offsets4 四邻域偏移：西、东、北、南
var offsets4 = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// offsets8 八邻域偏移，按列优先顺序排列，不含中心
var offsets8 = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Neighbors4 返回 (x,y) 的四邻域格子，顺序固定为西、东、北、南
// 越界或空格子为 nil
func Neighbors4(g *components.Grid, x, y int) [4]components.Cell {
	var out [4]components.Cell
	for i, o := range offsets4 {
		out[i] = g.Get(x+o[0], y+o[1])
	}
	return out
}

// Neighbors8 返回 (x,y) 周围 8 个格子，不含中心
// 顺序稳定（按列优先），越界或空格子为 nil
func Neighbors8(g *components.Grid, x, y int) [8]components.Cell {
	var out [8]components.Cell
	for i, o := range offsets8 {
		out[i] = g.Get(x+o[0], y+o[1])
	}
	return out
}

// CountSameColorVines 统计邻居中颜色恰好为 color 的藤蔓数量
// ColorNone 永远不匹配
func CountSameColorVines(neighbors []components.Cell, color types.Color) int {
	if color == types.ColorNone {
		return 0
	}
	n := 0
	for _, c := range neighbors {
		if v, ok := components.AsVine(c); ok && v.Color == color {
			n++
		}
	}
	return n
}

// vineConnections 统计 (x,y) 四邻域中同色藤蔓数量
func vineConnections(g *components.Grid, x, y int, color types.Color) int {
	n := Neighbors4(g, x, y)
	return CountSameColorVines(n[:], color)
}
