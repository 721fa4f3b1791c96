package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 场景接口（谜题场景、关卡选择等）
// 同一时间只有一个场景被更新和绘制
type Scene interface {
	// Update 更新场景逻辑，deltaTime 为距上一帧的秒数
	Update(deltaTime float64)

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：窗口关闭时由 App 调用，用于保存正在编辑或游玩的关卡
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败（程序仍会退出）
	SaveOnExit() bool
}
