package utils

import "math"

// CreateGrid 创建 width×height 的二维切片（按列存储：grid[x][y]），每格填充 fill
//
// 注意：fill 如果是引用类型（指针、切片、map），所有格子会共享同一个值，
// 修改一个格子会影响全部格子。这种情况请使用 CreateGridEx。
//
// 参数：
//   - width, height: 网格尺寸
//   - fill: 初始值
//
// 返回：
//   - [][]T: 长度为 width 的列切片，每列长度为 height
func CreateGrid[T any](width, height int, fill T) [][]T {
	cols := make([][]T, width)
	for x := range cols {
		col := make([]T, height)
		for y := range col {
			col[y] = fill
		}
		cols[x] = col
	}
	return cols
}

// CreateGridEx 创建 width×height 的二维切片，每格调用一次 factory 生成独立的值
//
// 参数：
//   - width, height: 网格尺寸
//   - factory: 初始值工厂函数，按列优先顺序每格调用一次
//
// 返回：
//   - [][]T: 长度为 width 的列切片，每列长度为 height
func CreateGridEx[T any](width, height int, factory func() T) [][]T {
	cols := make([][]T, width)
	for x := range cols {
		col := make([]T, height)
		for y := range col {
			col[y] = factory()
		}
		cols[x] = col
	}
	return cols
}

// boardFillRatio 棋盘占屏幕短边的比例
const boardFillRatio = 0.75

// BoardTransform 棋盘坐标变换
//
// 将 width×height 的棋盘等比缩放到屏幕的 75% 并居中。
// 渲染器和输入层共用这一变换，核心逻辑只接收变换后的整数格子坐标。
type BoardTransform struct {
	OffsetX, OffsetY float64 // 棋盘左上角的屏幕坐标
	Scale            float64 // 每个格子的屏幕像素边长
}

// NewBoardTransform 根据屏幕尺寸和棋盘尺寸计算变换
//
// 参数：
//   - screenWidth, screenHeight: 屏幕（逻辑）尺寸
//   - gridWidth, gridHeight: 棋盘格子数
//
// 返回：
//   - BoardTransform: 坐标变换；棋盘尺寸为 0 时 Scale 为 0
func NewBoardTransform(screenWidth, screenHeight, gridWidth, gridHeight int) BoardTransform {
	if gridWidth <= 0 || gridHeight <= 0 {
		return BoardTransform{}
	}
	scale := math.Min(float64(screenWidth)/float64(gridWidth), float64(screenHeight)/float64(gridHeight)) * boardFillRatio
	return BoardTransform{
		OffsetX: (float64(screenWidth) - float64(gridWidth)*scale) / 2,
		OffsetY: (float64(screenHeight) - float64(gridHeight)*scale) / 2,
		Scale:   scale,
	}
}

// ScreenToGrid 将屏幕坐标转换为格子坐标（向下取整）
//
// 不做范围检查：棋盘外的点会得到越界坐标，由网格按"无此格子"处理。
func (t BoardTransform) ScreenToGrid(sx, sy int) (x, y int) {
	if t.Scale == 0 {
		return -1, -1
	}
	fx := (float64(sx) - t.OffsetX) / t.Scale
	fy := (float64(sy) - t.OffsetY) / t.Scale
	return int(math.Floor(fx)), int(math.Floor(fy))
}

// GridToScreen 将格子坐标转换为格子左上角的屏幕坐标
func (t BoardTransform) GridToScreen(x, y float64) (sx, sy float64) {
	return t.OffsetX + x*t.Scale, t.OffsetY + y*t.Scale
}
