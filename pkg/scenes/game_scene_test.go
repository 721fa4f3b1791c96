package scenes

import (
	"errors"
	"strings"
	"testing"

	"github.com/decker502/grow/pkg/components"
	"github.com/decker502/grow/pkg/config"
	"github.com/decker502/grow/pkg/game"
	"github.com/decker502/grow/pkg/types"
	"github.com/decker502/grow/pkg/utils"
)

const sproutLevel = `id: sprout
name: Sprout
layout:
  - "v1 a a"
  - "a  a w11"
`

const crowdLevel = `id: crowd
name: Crowd
layout:
  - "v4 a    a a"
  - "a  w41< a w11>"
  - "a  a    a v1"
`

func mustLevel(t *testing.T, src string) *config.LevelConfig {
	t.Helper()
	lc, err := config.ParseLevelConfig([]byte(src), "test.yaml")
	if err != nil {
		t.Fatalf("ParseLevelConfig error: %v", err)
	}
	return lc
}

// newTestServices 内存存储、无音频、无字体
func newTestServices(t *testing.T) *Services {
	return &Services{
		Store:  game.NewLevelStore(nil),
		Levels: []*config.LevelConfig{mustLevel(t, sproutLevel), mustLevel(t, crowdLevel)},
	}
}

// drag 模拟一次完整的拖动：按下、依次移动、抬起
func drag(s *GameScene, cells ...[2]int) {
	s.handlePointer(utils.PointerEvent{Phase: utils.PointerDown, X: cells[0][0], Y: cells[0][1]})
	for _, c := range cells[1:] {
		s.handlePointer(utils.PointerEvent{Phase: utils.PointerMove, X: c[0], Y: c[1]})
	}
	s.handlePointer(utils.PointerEvent{Phase: utils.PointerUp})
}

// TestNewGameScene 测试载入内置关卡
func TestNewGameScene(t *testing.T) {
	scene, err := NewGameScene(newTestServices(t), game.NewSceneManager(), "sprout")
	if err != nil {
		t.Fatalf("NewGameScene error: %v", err)
	}
	if scene.State().Name() != "Sprout" {
		t.Errorf("Name = %q, want Sprout", scene.State().Name())
	}
	if scene.Solved() {
		t.Error("fresh level should not be solved")
	}

	var _ game.Scene = scene
	var _ game.Saveable = scene
}

// TestNewGameSceneErrors 测试关卡不存在
func TestNewGameSceneErrors(t *testing.T) {
	_, err := NewGameScene(newTestServices(t), nil, "missing")
	if !errors.Is(err, game.ErrLevelNotFound) {
		t.Errorf("error = %v, want ErrLevelNotFound", err)
	}
}

// TestNewGameSceneBlank 测试空ID新建空白关卡并进入编辑器
func TestNewGameSceneBlank(t *testing.T) {
	scene, err := NewGameScene(nil, nil, "")
	if err != nil {
		t.Fatalf("NewGameScene error: %v", err)
	}
	if scene.LevelID() != UntitledLevelID {
		t.Errorf("LevelID = %q", scene.LevelID())
	}
	if !scene.State().EditorMode() {
		t.Error("blank level should start in editor mode")
	}
	g := scene.State().Grid()
	if g.Width() != game.DefaultLevelWidth || g.Height() != game.DefaultLevelHeight {
		t.Errorf("size = %dx%d", g.Width(), g.Height())
	}
}

// TestGameSceneSolve 测试拖动藤蔓完成关卡
func TestGameSceneSolve(t *testing.T) {
	scene, err := NewGameScene(newTestServices(t), nil, "sprout")
	if err != nil {
		t.Fatalf("NewGameScene error: %v", err)
	}

	drag(scene, [2]int{0, 0}, [2]int{1, 0})

	if !scene.Solved() {
		t.Fatal("expected level to be solved")
	}
	if !strings.HasPrefix(scene.statusLine(), "Solved!") {
		t.Errorf("statusLine = %q", scene.statusLine())
	}

	// 完成时观察者闪烁一次
	watcher := Shape{watcher: true}
	if scene.pulse == nil {
		t.Fatal("expected solved pulse to start")
	}
	scene.tick(config.SolvedPulseSeconds / 2)
	if a := scene.shapeAlpha(watcher); a >= 1 {
		t.Errorf("alpha mid-pulse = %v, want < 1", a)
	}
	scene.tick(config.SolvedPulseSeconds)
	if scene.pulse != nil || scene.shapeAlpha(watcher) != 1 {
		t.Error("pulse should end after its duration")
	}

	scene.restart()
	if scene.Solved() {
		t.Error("restart should clear the drawn vine")
	}
	if scene.State().Grid().Get(1, 0) != nil {
		t.Error("drawn vine survived restart")
	}
}

// TestGameSceneBlockedOncePerStroke 测试每次笔画只提示一次阻挡
func TestGameSceneBlockedOncePerStroke(t *testing.T) {
	scene, err := NewGameScene(newTestServices(t), nil, "sprout")
	if err != nil {
		t.Fatalf("NewGameScene error: %v", err)
	}

	scene.handlePointer(utils.PointerEvent{Phase: utils.PointerDown, X: 0, Y: 0})
	// (1,1) 四邻域没有同色藤蔓，阻挡
	scene.handlePointer(utils.PointerEvent{Phase: utils.PointerMove, X: 1, Y: 1})
	if !scene.strokeBlocked || scene.shakeTimer <= 0 {
		t.Fatal("diagonal move should be blocked")
	}

	// (2,1) 是观察者，同一笔画内再次阻挡
	scene.shakeTimer = 0
	scene.handlePointer(utils.PointerEvent{Phase: utils.PointerMove, X: 2, Y: 1})
	if scene.shakeTimer != 0 {
		t.Error("second block in the same stroke should not shake again")
	}

	scene.handlePointer(utils.PointerEvent{Phase: utils.PointerUp})
	scene.handlePointer(utils.PointerEvent{Phase: utils.PointerDown, X: 0, Y: 0})
	if scene.strokeBlocked {
		t.Error("new stroke should reset the blocked flag")
	}
}

// TestGameSceneNextLevel 测试切换到下一关
func TestGameSceneNextLevel(t *testing.T) {
	services := newTestServices(t)
	sm := game.NewSceneManager()
	sm.SetLevelOrder(services.LevelOrder())
	sm.SetSceneFactory(func(levelID string) game.Scene {
		s, err := NewGameScene(services, sm, levelID)
		if err != nil {
			return nil
		}
		return s
	})

	if !sm.LoadLevel("sprout") {
		t.Fatal("LoadLevel failed")
	}
	sm.GetCurrentScene().(*GameScene).nextLevel()

	current, ok := sm.GetCurrentScene().(*GameScene)
	if !ok || current.LevelID() != "crowd" {
		t.Fatalf("current level = %v, want crowd", sm.CurrentLevelID())
	}
}

// TestGameSceneEditorSaveLoad 测试编辑器修改、保存、重新载入和删除保存副本
func TestGameSceneEditorSaveLoad(t *testing.T) {
	services := newTestServices(t)
	scene, err := NewGameScene(services, nil, "sprout")
	if err != nil {
		t.Fatalf("NewGameScene error: %v", err)
	}

	scene.toggleEditor()
	scene.setBrushKind(components.CellWall)
	scene.handlePointer(utils.PointerEvent{Phase: utils.PointerDown, X: 1, Y: 1})
	scene.handlePointer(utils.PointerEvent{Phase: utils.PointerUp})

	if err := scene.saveLevel(); err != nil {
		t.Fatalf("saveLevel error: %v", err)
	}
	if !services.Store.Exists("sprout") {
		t.Fatal("level not saved")
	}

	// 保存的版本优先于内置关卡
	reopened, err := NewGameScene(services, nil, "sprout")
	if err != nil {
		t.Fatalf("NewGameScene error: %v", err)
	}
	if reopened.State().Grid().Get(1, 1) != (components.WallCell{}) {
		t.Error("saved wall missing after reopening")
	}

	reopened.deleteSavedLevel()
	reopened.reloadLevel()
	if reopened.State().Grid().Get(1, 1) != nil {
		t.Error("reload after delete should restore the built-in level")
	}
}

// TestGameSceneSaveWithoutStore 测试没有存储时保存失败并提示
func TestGameSceneSaveWithoutStore(t *testing.T) {
	scene, err := NewGameScene(&Services{}, nil, "")
	if err != nil {
		t.Fatalf("NewGameScene error: %v", err)
	}
	if err := scene.saveLevel(); err == nil {
		t.Error("expected save error without store")
	}
	if !strings.HasPrefix(scene.Message(), "Save failed") {
		t.Errorf("Message = %q", scene.Message())
	}
	if scene.SaveOnExit() {
		t.Error("SaveOnExit should report failure in editor mode without store")
	}
}

// TestBrushControls 测试画笔快捷键只在编辑器中生效
func TestBrushControls(t *testing.T) {
	scene, err := NewGameScene(newTestServices(t), nil, "sprout")
	if err != nil {
		t.Fatalf("NewGameScene error: %v", err)
	}
	before := *scene.State().Brush()
	scene.cycleBrushColor()
	scene.setBrushKind(components.CellWater)
	if *scene.State().Brush() != before {
		t.Error("brush changed outside editor mode")
	}

	scene.toggleEditor()
	scene.setBrushKind(components.CellWatcher)
	scene.cycleBrushColor()
	scene.adjustBrushAmount(-5)
	scene.adjustBrushAmount(2)
	scene.cycleBrushCriteria()

	b := *scene.State().Brush()
	want := game.EditorBrush{Kind: components.CellWatcher, Color: types.ColorYellow, Amount: 2, Criteria: components.CriteriaMoreThan}
	if b != want {
		t.Errorf("brush = %+v, want %+v", b, want)
	}
	if !strings.Contains(scene.statusLine(), "watcher Yellow 2 more_than") {
		t.Errorf("statusLine = %q", scene.statusLine())
	}
}

// TestGameSceneTimers 测试消息和抖动计时
func TestGameSceneTimers(t *testing.T) {
	scene, err := NewGameScene(newTestServices(t), nil, "sprout")
	if err != nil {
		t.Fatalf("NewGameScene error: %v", err)
	}
	scene.showMessage("hello %d", 1)
	scene.shakeTimer = config.BlockedShakeSeconds
	if scene.boardShakeOffset() == 0 {
		t.Error("expected shake offset while timer runs")
	}

	scene.tick(config.MessageSeconds + 0.1)
	if scene.Message() != "" {
		t.Errorf("Message = %q, want cleared", scene.Message())
	}
	if scene.boardShakeOffset() != 0 {
		t.Error("shake should stop after its duration")
	}
}

// TestGameSceneDrawNil 测试 nil screen 不崩溃
func TestGameSceneDrawNil(t *testing.T) {
	scene, err := NewGameScene(newTestServices(t), nil, "crowd")
	if err != nil {
		t.Fatalf("NewGameScene error: %v", err)
	}
	scene.Draw(nil)
}

// TestCrowdSolution 测试多个观察者的关卡
func TestCrowdSolution(t *testing.T) {
	scene, err := NewGameScene(newTestServices(t), nil, "crowd")
	if err != nil {
		t.Fatalf("NewGameScene error: %v", err)
	}
	drag(scene, [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0})

	for _, r := range scene.State().Watchers() {
		if !r.Satisfied {
			t.Errorf("watcher at (%d,%d) count %d not satisfied", r.X, r.Y, r.Count)
		}
	}
	if !scene.Solved() {
		t.Error("expected crowd to be solved")
	}
}
