package config

// 布局配置常量
// 本文件定义了谜题场景的窗口尺寸和 HUD 位置。
// 棋盘本身的位置由 utils.BoardTransform 按窗口尺寸自动计算（占短边 75% 并居中）。

// Window Configuration (窗口配置)
const (
	// GameWindowWidth 逻辑屏幕宽度（像素），Ebitengine 会自动缩放到实际窗口
	GameWindowWidth = 960

	// GameWindowHeight 逻辑屏幕高度（像素）
	GameWindowHeight = 720
)

// HUD Configuration (HUD 配置)
const (
	// HUDMargin HUD 文字距屏幕边缘的距离
	HUDMargin = 16.0

	// TitleFontSize 关卡名称字号
	TitleFontSize = 24.0

	// BodyFontSize 提示、水量、编辑器状态等正文字号
	BodyFontSize = 16.0

	// LineSpacing 正文行距（字号的倍数）
	LineSpacing = 1.4

	// HintMaxWidthRatio 提示文字最大宽度占屏幕宽度的比例
	HintMaxWidthRatio = 0.8

	// WatcherLabelScale 观察者数字字号相对格子边长的比例
	WatcherLabelScale = 0.5
)

// Feedback Configuration (反馈动画配置)
const (
	// SolvedPulseSeconds 谜题完成时观察者闪烁一次的时长
	SolvedPulseSeconds = 0.6

	// BlockedShakeSeconds 被阻挡时棋盘抖动的时长
	BlockedShakeSeconds = 0.15

	// BlockedShakePixels 抖动幅度
	BlockedShakePixels = 4.0

	// MessageSeconds 状态消息（已保存、载入失败等）显示时长
	MessageSeconds = 2.5
)

// HintMaxWidth 返回提示文字的最大宽度
func HintMaxWidth() float64 {
	return GameWindowWidth * HintMaxWidthRatio
}

// BodyLineHeight 返回正文行高
func BodyLineHeight() float64 {
	return BodyFontSize * LineSpacing
}
