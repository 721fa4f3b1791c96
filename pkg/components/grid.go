package components

import "fmt"

// Grid 固定尺寸的二维格子容器
//
// 按列存储：cells[x][y]，坐标从 0 开始。
// 越界读取返回 nil（空格子），越界写入被忽略；邻居查询会在每条边外侧探测一格，
// 这是常规情况而不是错误。
type Grid struct {
	width  int
	height int
	cells  [][]Cell
}

// NewGrid 创建一个全部为空的网格
//
// 参数：
//   - width, height: 网格尺寸，非正数时按 0 处理
//
// 返回：
//   - *Grid: 新网格
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([][]Cell, width)
	for x := range cells {
		cells[x] = make([]Cell, height)
	}
	return &Grid{width: width, height: height, cells: cells}
}

// NewGridFromColumns 用已有的列数据创建网格
//
// 所有列长度必须相同，网格接管 columns 的所有权。
//
// 返回：
//   - error: 列长度不一致时返回错误
func NewGridFromColumns(columns [][]Cell) (*Grid, error) {
	width := len(columns)
	height := 0
	if width > 0 {
		height = len(columns[0])
	}
	for x, col := range columns {
		if len(col) != height {
			return nil, fmt.Errorf("column %d has length %d, expected %d", x, len(col), height)
		}
	}
	return &Grid{width: width, height: height, cells: columns}, nil
}

// Width 返回网格宽度（列数）
func (g *Grid) Width() int {
	return g.width
}

// Height 返回网格高度（行数）
func (g *Grid) Height() int {
	return g.height
}

// InBounds 检查坐标是否在网格范围内
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get 读取格子，越界或空格子返回 nil
func (g *Grid) Get(x, y int) Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.cells[x][y]
}

// Set 写入格子，c 为 nil 表示清空
//
// 返回：
//   - bool: 坐标越界时返回 false，网格不变
func (g *Grid) Set(x, y int, c Cell) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.cells[x][y] = c
	return true
}

// Clone 返回网格的深拷贝
// Cell 变体都是值类型，复制列切片即可
func (g *Grid) Clone() *Grid {
	cells := make([][]Cell, g.width)
	for x := range cells {
		cells[x] = make([]Cell, g.height)
		copy(cells[x], g.cells[x])
	}
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// Each 按列优先顺序（x 外层，y 内层）遍历所有格子，包括空格子
func (g *Grid) Each(fn func(x, y int, c Cell)) {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			fn(x, y, g.cells[x][y])
		}
	}
}

// Count 统计满足条件的格子数
func (g *Grid) Count(pred func(c Cell) bool) int {
	n := 0
	g.Each(func(_, _ int, c Cell) {
		if pred(c) {
			n++
		}
	})
	return n
}
