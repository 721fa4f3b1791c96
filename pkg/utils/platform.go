package utils

import "os"

// MobileEmulateEnv 设为 1 时桌面端按移动端处理（调试触摸布局用）
const MobileEmulateEnv = "GROW_MOBILE_EMULATE"

// IsMobile 是否按移动端运行：-tags mobile 构建或设置了 MobileEmulateEnv
func IsMobile() bool {
	return mobileBuild || os.Getenv(MobileEmulateEnv) == "1"
}

// ControlsHint 状态栏上的操作提示，移动端没有键盘快捷键
//
// 参数：
//   - editor: 是否处于编辑器模式
func ControlsHint(editor bool) string {
	switch {
	case IsMobile():
		return "drag from a seed to grow"
	case editor:
		return "[0-4] kind [C] color [+/-] amount [X] criteria [S] save [E] play"
	default:
		return "[R] restart  [N] next  [E] editor"
	}
}
