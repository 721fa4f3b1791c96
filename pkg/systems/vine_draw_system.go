package systems

import (
	"fmt"

	"github.com/decker502/grow/pkg/components"
	"github.com/decker502/grow/pkg/types"
)

// StrokeState 一次绘制笔画的临时状态
//
// 由指针按下创建，指针移动到新格子时更新，指针抬起时丢弃。
// 不属于关卡数据，不参与序列化。零值表示没有进行中的笔画。
type StrokeState struct {
	Active   bool        // 是否有进行中的笔画
	AnchorX  int         // 当前锚点（笔画末端）X
	AnchorY  int         // 当前锚点（笔画末端）Y
	Color    types.Color // 笔画颜色，笔画开始时确定，中途不可改变
	Erasable bool        // 锚点是否可被回退擦除
}

// StrokeResult 单次延伸笔画的结果，供外壳播放反馈
type StrokeResult int

const (
	// StrokeIgnored 没有进行中的笔画，或目标仍是锚点本身
	StrokeIgnored StrokeResult = iota
	// StrokePlanted 在空格子上种下一段藤蔓
	StrokePlanted
	// StrokeRetracted 回退：擦除了上一个锚点
	StrokeRetracted
	// StrokeBlocked 目标格子不允许，网格不变，笔画保持在原锚点
	StrokeBlocked
)

// String 返回结果的字符串表示
func (r StrokeResult) String() string {
	switch r {
	case StrokeIgnored:
		return "ignored"
	case StrokePlanted:
		return "planted"
	case StrokeRetracted:
		return "retracted"
	case StrokeBlocked:
		return "blocked"
	default:
		return fmt.Sprintf("StrokeResult(%d)", int(r))
	}
}

// WaterHook 种植藤蔓时的水量钩子
//
// 为 nil 时不限制种植。钩子只在种下新藤蔓时被调用，回退不会调用。
type WaterHook interface {
	// CanPlant 是否允许在 (x,y) 种植（检查剩余水量）
	CanPlant(g *components.Grid, x, y int) bool
	// OnPlanted 在 (x,y) 种植完成后调用（扣除水量、收集水源）
	OnPlanted(g *components.Grid, x, y int)
}

// StartStroke 在 (x,y) 开始一次笔画
//
// 目标不是藤蔓（空格子、墙、观察者、水源、越界）时不开始笔画，返回零值。
// 否则记录锚点和颜色，锚点只有一个同色连接且不是种子时可被回退擦除。
func StartStroke(g *components.Grid, x, y int) StrokeState {
	v, ok := components.AsVine(g.Get(x, y))
	if !ok {
		return StrokeState{}
	}
	return StrokeState{
		Active:   true,
		AnchorX:  x,
		AnchorY:  y,
		Color:    v.Color,
		Erasable: vineConnections(g, x, y, v.Color) == 1 && !v.Initial,
	}
}

// ExtendStroke 将笔画延伸到 (x,y)
//
// 规则：
//   - (x,y) 等于锚点：无操作（指针在同一格内多次移动）
//   - 空格子：四邻域恰好一个同色藤蔓时种下非种子藤蔓，并以新格子为锚点重新开始
//   - 同色藤蔓且锚点可擦除：擦除锚点（回退），以目标格子为锚点重新开始
//   - 其他（异色藤蔓、墙、观察者、水源、越界、不可擦除的同色藤蔓）：无操作
//
// 参数：
//   - g: 网格，会被直接修改
//   - s: 当前笔画状态
//   - x, y: 目标格子坐标
//   - water: 水量钩子，可为 nil
//
// 返回：
//   - StrokeState: 新的笔画状态
//   - StrokeResult: 本次延伸的结果
func ExtendStroke(g *components.Grid, s StrokeState, x, y int, water WaterHook) (StrokeState, StrokeResult) {
	if !s.Active {
		return s, StrokeIgnored
	}
	if x == s.AnchorX && y == s.AnchorY {
		return s, StrokeIgnored
	}
	if !g.InBounds(x, y) {
		return s, StrokeBlocked
	}

	target := g.Get(x, y)
	if target == nil {
		if vineConnections(g, x, y, s.Color) != 1 {
			return s, StrokeBlocked
		}
		if water != nil && !water.CanPlant(g, x, y) {
			return s, StrokeBlocked
		}
		g.Set(x, y, components.VineCell{Color: s.Color})
		if water != nil {
			water.OnPlanted(g, x, y)
		}
		return StartStroke(g, x, y), StrokePlanted
	}

	if v, ok := components.AsVine(target); ok && v.Color == s.Color && s.Erasable {
		g.Set(s.AnchorX, s.AnchorY, nil)
		return StartStroke(g, x, y), StrokeRetracted
	}

	return s, StrokeBlocked
}

// VineDrawSystem 藤蔓绘制状态机
//
// 持有网格和当前笔画状态，供输入层按 按下 -> 移动... -> 抬起 的顺序调用。
// 所有修改同步完成，调用返回后网格即为最新状态。
type VineDrawSystem struct {
	grid   *components.Grid
	stroke StrokeState
	water  WaterHook
}

// NewVineDrawSystem 创建藤蔓绘制系统
//
// 参数：
//   - grid: 要操作的网格
//   - water: 水量钩子，可为 nil（不限制种植）
func NewVineDrawSystem(grid *components.Grid, water WaterHook) *VineDrawSystem {
	return &VineDrawSystem{grid: grid, water: water}
}

// Grid 返回当前操作的网格
func (s *VineDrawSystem) Grid() *components.Grid {
	return s.grid
}

// SetGrid 替换网格（加载关卡时），同时丢弃进行中的笔画
func (s *VineDrawSystem) SetGrid(grid *components.Grid) {
	s.grid = grid
	s.stroke = StrokeState{}
}

// SetWaterHook 替换水量钩子，nil 表示不限制
func (s *VineDrawSystem) SetWaterHook(water WaterHook) {
	s.water = water
}

// State 返回当前笔画状态
func (s *VineDrawSystem) State() StrokeState {
	return s.stroke
}

// StartStroke 指针按下
//
// 返回：
//   - bool: 是否开始了笔画（按在藤蔓上）
func (s *VineDrawSystem) StartStroke(x, y int) bool {
	s.stroke = StartStroke(s.grid, x, y)
	return s.stroke.Active
}

// ExtendStroke 指针移动到 (x,y)
func (s *VineDrawSystem) ExtendStroke(x, y int) StrokeResult {
	var result StrokeResult
	s.stroke, result = ExtendStroke(s.grid, s.stroke, x, y, s.water)
	return result
}

// EndStroke 指针抬起，丢弃笔画状态；没有进行中的笔画时也可安全调用
func (s *VineDrawSystem) EndStroke() {
	s.stroke = StrokeState{}
}

// PlaceTile 编辑器模式：无条件覆盖目标格子
//
// 非空格子会被标记为编辑内容（藤蔓 Initial=true），nil 清空格子。
// 不检查任何连接规则。
//
// 返回：
//   - bool: 坐标越界时返回 false
func (s *VineDrawSystem) PlaceTile(x, y int, c components.Cell) bool {
	return s.grid.Set(x, y, components.MarkAuthored(c))
}
