// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerPhase 指针事件阶段
type PointerPhase int

const (
	// PointerNone 本帧没有需要处理的事件
	PointerNone PointerPhase = iota
	// PointerDown 刚按下
	PointerDown
	// PointerMove 按住期间所在格子变化
	PointerMove
	// PointerUp 刚释放
	PointerUp
)

// String 返回阶段名称
func (p PointerPhase) String() string {
	switch p {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return "none"
	}
}

// PointerEvent 转换成网格坐标后的指针事件
type PointerEvent struct {
	Phase PointerPhase
	// X, Y 网格坐标（可能越界，由调用方判断）
	X, Y int
}

// PointerTracker 把鼠标和触摸输入转换为 按下 -> 移动... -> 抬起 的网格事件序列
//
// 只跟踪一个指针：触摸优先，按下后一直跟随同一个触摸 ID 直到释放。
// 移动事件只在所在格子变化时产生，同一格内的抖动不会重复触发。
type PointerTracker struct {
	transform BoardTransform

	active  bool
	touchID ebiten.TouchID
	isTouch bool
	lastX   int
	lastY   int
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker(t BoardTransform) *PointerTracker {
	return &PointerTracker{transform: t, touchID: -1}
}

// SetTransform 更新屏幕到网格的坐标变换（换关或改尺寸后调用）
func (pt *PointerTracker) SetTransform(t BoardTransform) {
	pt.transform = t
}

// Transform 返回当前坐标变换
func (pt *PointerTracker) Transform() BoardTransform {
	return pt.transform
}

// Active 是否处于按住状态
func (pt *PointerTracker) Active() bool {
	return pt.active
}

// Update 读取本帧 ebiten 输入并返回事件（每帧调用一次）
func (pt *PointerTracker) Update() PointerEvent {
	if !pt.active {
		if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
			pt.touchID = ids[0]
			pt.isTouch = true
			sx, sy := ebiten.TouchPosition(ids[0])
			return pt.Step(true, sx, sy)
		}
		pt.isTouch = false
		pt.touchID = -1
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			sx, sy := ebiten.CursorPosition()
			return pt.Step(true, sx, sy)
		}
		return PointerEvent{}
	}

	if pt.isTouch {
		if inpututil.IsTouchJustReleased(pt.touchID) {
			return pt.Step(false, 0, 0)
		}
		sx, sy := ebiten.TouchPosition(pt.touchID)
		return pt.Step(true, sx, sy)
	}

	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return pt.Step(false, 0, 0)
	}
	sx, sy := ebiten.CursorPosition()
	return pt.Step(true, sx, sy)
}

// Step 根据按住状态和屏幕坐标推进状态机，不读取 ebiten 输入
//
// 参数：
//   - pressed: 本帧指针是否按住
//   - sx, sy: 屏幕坐标（未按住时忽略）
//
// 返回：
//   - PointerEvent: 本帧产生的事件，没有事件时 Phase 为 PointerNone
func (pt *PointerTracker) Step(pressed bool, sx, sy int) PointerEvent {
	if !pressed {
		if !pt.active {
			return PointerEvent{}
		}
		pt.active = false
		return PointerEvent{Phase: PointerUp, X: pt.lastX, Y: pt.lastY}
	}

	x, y := pt.transform.ScreenToGrid(sx, sy)
	if !pt.active {
		pt.active = true
		pt.lastX, pt.lastY = x, y
		return PointerEvent{Phase: PointerDown, X: x, Y: y}
	}

	if x == pt.lastX && y == pt.lastY {
		return PointerEvent{}
	}
	pt.lastX, pt.lastY = x, y
	return PointerEvent{Phase: PointerMove, X: x, Y: y}
}

// Reset 放弃当前按住状态（切换关卡时调用）
func (pt *PointerTracker) Reset() {
	pt.active = false
	pt.isTouch = false
	pt.touchID = -1
}
