package game

import (
	"errors"
	"reflect"
	"testing"

	"github.com/decker502/grow/pkg/components"
	"github.com/decker502/grow/pkg/systems"
	"github.com/decker502/grow/pkg/types"
)

// lineDocument 2 列 x 3 行：种子在左上，观察者在右下
func lineDocument() *LevelDocument {
	return &LevelDocument{
		FormatVersion:  FormatVersion,
		PaletteVersion: PaletteVersion,
		Width:          2,
		Height:         3,
		Str:            "v1 a a a a w11",
		Name:           "line",
		Hint:           "reach the watcher",
	}
}

// TestNewGameStateDefaults 测试默认会话
func TestNewGameStateDefaults(t *testing.T) {
	gs := NewGameState(nil)

	if gs.Grid().Width() != DefaultLevelWidth || gs.Grid().Height() != DefaultLevelHeight {
		t.Errorf("size = %dx%d, want %dx%d", gs.Grid().Width(), gs.Grid().Height(), DefaultLevelWidth, DefaultLevelHeight)
	}
	if _, ok := gs.WaterRemaining(); ok {
		t.Error("water rule is off by default")
	}
	if gs.EditorMode() {
		t.Error("editor mode should be off by default")
	}
	if gs.Solved() {
		t.Error("an empty level is never solved")
	}
}

// TestGameStatePlayStroke 测试按下-拖动-抬起完成谜题
func TestGameStatePlayStroke(t *testing.T) {
	gs := NewGameState(nil)
	if err := gs.LoadDocument(lineDocument()); err != nil {
		t.Fatalf("LoadDocument error: %v", err)
	}
	if gs.Name() != "line" || gs.Hint() != "reach the watcher" {
		t.Errorf("name/hint = %q/%q", gs.Name(), gs.Hint())
	}

	// 网格：(0,0) 种子，(1,2) 观察者 amount=1；需要让观察者周围恰好一个绿色藤蔓
	if !gs.PointerDown(0, 0) {
		t.Fatal("PointerDown on seed should start a stroke")
	}
	if r := gs.PointerMove(0, 1); r != systems.StrokePlanted {
		t.Fatalf("PointerMove(0,1) = %v, want planted", r)
	}
	gs.PointerUp()

	// (0,1) 与观察者 (1,2) 斜向相邻，种子 (0,0) 不在观察者周围
	if !gs.Solved() {
		t.Errorf("watchers = %+v, expected solved", gs.Watchers())
	}
	if gs.Stroke().Active {
		t.Error("stroke should end on PointerUp")
	}
}

// TestGameStateLoadFailureKeepsLevel 测试载入失败时当前关卡不变
func TestGameStateLoadFailureKeepsLevel(t *testing.T) {
	gs := NewGameState(nil)
	if err := gs.LoadDocument(lineDocument()); err != nil {
		t.Fatalf("LoadDocument error: %v", err)
	}
	gs.PointerDown(0, 0)
	gs.PointerMove(0, 1)
	gs.PointerUp()
	before := gs.Grid().Clone()

	bad := lineDocument()
	bad.Str = "v1 a"
	err := gs.LoadDocument(bad)
	if !errors.Is(err, ErrCellCountMismatch) {
		t.Fatalf("LoadDocument error = %v, want ErrCellCountMismatch", err)
	}
	if !reflect.DeepEqual(gs.Grid(), before) {
		t.Error("failed load modified the live grid")
	}
	if gs.Name() != "line" {
		t.Error("failed load changed the level name")
	}
}

// TestGameStateRestart 测试重新开始丢弃玩家绘制的藤蔓
func TestGameStateRestart(t *testing.T) {
	settings := DefaultSettings()
	settings.WaterEnabled = true
	settings.InitialWater = 5
	gs := NewGameState(settings)
	if err := gs.LoadDocument(lineDocument()); err != nil {
		t.Fatalf("LoadDocument error: %v", err)
	}

	gs.PointerDown(0, 0)
	gs.PointerMove(0, 1)
	gs.PointerMove(0, 2)
	gs.PointerUp()
	if w, _ := gs.WaterRemaining(); w != 3 {
		t.Errorf("water = %d, want 3", w)
	}

	if err := gs.Restart(); err != nil {
		t.Fatalf("Restart error: %v", err)
	}
	if gs.Grid().Get(0, 1) != nil || gs.Grid().Get(0, 2) != nil {
		t.Error("Restart should remove drawn vines")
	}
	if w, _ := gs.WaterRemaining(); w != 5 {
		t.Errorf("water after Restart = %d, want 5", w)
	}
}

// TestGameStateEditor 测试编辑器模式放置格子并保存
func TestGameStateEditor(t *testing.T) {
	gs := NewGameState(nil)
	if err := gs.NewLevel(3, 1); err != nil {
		t.Fatalf("NewLevel error: %v", err)
	}
	gs.SetEditorMode(true)

	brush := gs.Brush()
	brush.Kind = components.CellVine
	brush.Color = types.ColorBlue
	gs.PointerDown(0, 0)

	brush.Kind = components.CellWatcher
	brush.Amount = 1
	gs.PointerDown(2, 0)

	brush.Kind = components.CellWall
	gs.PointerDown(1, 0)
	gs.PointerMove(1, 0)
	brush.Kind = components.CellEmpty
	gs.PointerMove(1, 0)
	gs.PointerUp()

	gs.SetName("edited")
	gs.SetEditorMode(false)

	doc, err := gs.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	if doc.Str != "v3 a w31" {
		t.Errorf("Str = %q, want \"v3 a w31\"", doc.Str)
	}
	if doc.Name != "edited" {
		t.Errorf("Name = %q, want edited", doc.Name)
	}

	// 编辑后的关卡成为重新开始的起点
	gs.PointerDown(0, 0)
	gs.PointerMove(1, 0)
	gs.PointerUp()
	if err := gs.Restart(); err != nil {
		t.Fatalf("Restart error: %v", err)
	}
	if gs.Grid().Get(1, 0) != nil {
		t.Error("Restart should drop the vine drawn after editing")
	}
	if components.KindOf(gs.Grid().Get(2, 0)) != components.CellWatcher {
		t.Error("Restart should keep edited watcher")
	}
}

// TestGameStateNewLevelInvalid 测试非法尺寸
func TestGameStateNewLevelInvalid(t *testing.T) {
	gs := NewGameState(nil)
	if err := gs.NewLevel(0, 3); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("NewLevel(0,3) error = %v, want ErrInvalidDimensions", err)
	}
	if err := gs.NewLevel(MaxLevelSide+1, 3); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("NewLevel(%d,3) error = %v, want ErrInvalidDimensions", MaxLevelSide+1, err)
	}
}

// TestEditorBrushCell 测试画笔对应的格子
func TestEditorBrushCell(t *testing.T) {
	tests := []struct {
		brush EditorBrush
		want  components.Cell
	}{
		{EditorBrush{Kind: components.CellEmpty}, nil},
		{EditorBrush{Kind: components.CellWall}, components.WallCell{}},
		{EditorBrush{Kind: components.CellVine, Color: types.ColorRed}, components.VineCell{Color: types.ColorRed, Initial: true}},
		{EditorBrush{Kind: components.CellWatcher, Color: types.ColorRed, Amount: 2, Criteria: components.CriteriaLessThan},
			components.WatcherCell{Color: types.ColorRed, Amount: 2, Criteria: components.CriteriaLessThan}},
		{EditorBrush{Kind: components.CellWater, Amount: 4}, components.WaterCell{Amount: 4}},
	}

	for _, tt := range tests {
		if got := tt.brush.Cell(); got != tt.want {
			t.Errorf("%+v.Cell() = %v, want %v", tt.brush, got, tt.want)
		}
	}
}
