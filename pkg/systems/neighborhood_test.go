package systems

import (
	"testing"

	"github.com/decker502/grow/pkg/components"
	"github.com/decker502/grow/pkg/types"
)

// TestNeighbors4Order 测试四邻域的固定顺序
func TestNeighbors4Order(t *testing.T) {
	g := components.NewGrid(3, 3)
	g.Set(0, 1, components.VineCell{Color: types.ColorGreen})
	g.Set(2, 1, components.VineCell{Color: types.ColorYellow})
	g.Set(1, 0, components.VineCell{Color: types.ColorBlue})
	g.Set(1, 2, components.VineCell{Color: types.ColorRed})

	n := Neighbors4(g, 1, 1)
	want := [4]types.Color{types.ColorGreen, types.ColorYellow, types.ColorBlue, types.ColorRed}
	for i, c := range want {
		v, ok := components.AsVine(n[i])
		if !ok || v.Color != c {
			t.Errorf("Neighbors4[%d] = %v, want %v vine", i, n[i], c)
		}
	}
}

// TestNeighborsAtCorners 测试边角格子越界邻居返回 nil
func TestNeighborsAtCorners(t *testing.T) {
	g := components.NewGrid(2, 2)
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			g.Set(x, y, components.WallCell{})
		}
	}

	n4 := Neighbors4(g, 0, 0)
	if n4[West] != nil || n4[North] != nil {
		t.Errorf("out-of-range neighbors should be nil, got west=%v north=%v", n4[West], n4[North])
	}
	if n4[East] == nil || n4[South] == nil {
		t.Error("in-range neighbors should be present")
	}

	n8 := Neighbors8(g, 0, 0)
	present := 0
	for _, c := range n8 {
		if c != nil {
			present++
		}
	}
	if present != 3 {
		t.Errorf("corner Neighbors8 present = %d, want 3", present)
	}

	// 完全在网格外的坐标也不能 panic
	_ = Neighbors4(g, -5, 10)
	_ = Neighbors8(g, 10, -5)
}

// TestNeighbors8ExcludesCenter 测试八邻域不包含中心格子
func TestNeighbors8ExcludesCenter(t *testing.T) {
	g := components.NewGrid(3, 3)
	g.Set(1, 1, components.VineCell{Color: types.ColorRed})

	for i, c := range Neighbors8(g, 1, 1) {
		if c != nil {
			t.Errorf("Neighbors8[%d] = %v, center must be excluded", i, c)
		}
	}
}

// TestCountSameColorVines 测试同色藤蔓计数
func TestCountSameColorVines(t *testing.T) {
	neighbors := []components.Cell{
		components.VineCell{Color: types.ColorGreen},
		components.VineCell{Color: types.ColorGreen, Initial: true},
		components.VineCell{Color: types.ColorRed},
		components.WatcherCell{Color: types.ColorGreen},
		components.WallCell{},
		nil,
	}

	tests := []struct {
		name  string
		color types.Color
		want  int
	}{
		{"绿色", types.ColorGreen, 2},
		{"红色", types.ColorRed, 1},
		{"蓝色", types.ColorBlue, 0},
		{"无颜色从不匹配", types.ColorNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountSameColorVines(neighbors, tt.color); got != tt.want {
				t.Errorf("CountSameColorVines(%v) = %d, want %d", tt.color, got, tt.want)
			}
		})
	}
}
