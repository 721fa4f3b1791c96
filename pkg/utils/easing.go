package utils

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Ease 把 [0,1] 的进度映射为缓动后的进度
type Ease func(t float64) float64

// FromTween 适配 gween 的缓动函数（起点 0，变化量 1，时长 1）
func FromTween(fn ease.TweenFunc) Ease {
	return func(t float64) float64 {
		return float64(fn(float32(clamp01(t)), 0, 1, 1))
	}
}

// EaseOutCubic 开始快结束慢
var EaseOutCubic = FromTween(ease.OutCubic)

// Pulse 0→1→0 的半个正弦波
func Pulse(t float64) float64 {
	return math.Sin(clamp01(t) * math.Pi)
}

// Lerp 在 a 和 b 之间线性插值，t 不做截断
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(t float64) float64 {
	return min(1, max(0, t))
}
