//go:build !mobile

package utils

import (
	"strings"
	"testing"
)

// TestIsMobile 桌面构建默认 false，环境变量可强制打开
func TestIsMobile(t *testing.T) {
	t.Setenv(MobileEmulateEnv, "")
	if IsMobile() {
		t.Error("IsMobile() should be false on desktop")
	}
	t.Setenv(MobileEmulateEnv, "1")
	if !IsMobile() {
		t.Errorf("IsMobile() should be true when %s=1", MobileEmulateEnv)
	}
}

func TestControlsHint(t *testing.T) {
	tests := []struct {
		name    string
		emulate string
		editor  bool
		want    string
	}{
		{"桌面游玩", "", false, "[R] restart"},
		{"桌面编辑器", "", true, "[S] save"},
		{"移动端不显示按键", "1", true, "drag from a seed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(MobileEmulateEnv, tt.emulate)
			if got := ControlsHint(tt.editor); !strings.Contains(got, tt.want) {
				t.Errorf("ControlsHint(%v) = %q, want substring %q", tt.editor, got, tt.want)
			}
		})
	}
}
