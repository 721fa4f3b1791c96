package scenes

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/grow/pkg/components"
	"github.com/decker502/grow/pkg/config"
	"github.com/decker502/grow/pkg/game"
	"github.com/decker502/grow/pkg/types"
	"github.com/decker502/grow/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// isKeyJustPressed 可在测试中替换
var isKeyJustPressed = inpututil.IsKeyJustPressed

// 编辑器画笔数字键对应的格子类型
var brushKeys = map[ebiten.Key]components.CellKind{
	ebiten.Key0: components.CellEmpty,
	ebiten.Key1: components.CellWall,
	ebiten.Key2: components.CellVine,
	ebiten.Key3: components.CellWatcher,
	ebiten.Key4: components.CellWater,
}

// bindKeys 注册键盘快捷键
//
//	E 编辑器开关   R 重新开始   N 下一关   F2 新建空白关卡
//	S 保存         L 重新载入   D 删除已保存的副本   P 输出分享字符串
//	0-4 画笔类型   C 画笔颜色   +/- 画笔数量   X 观察者条件
func (s *GameScene) bindKeys() {
	s.keyActions = map[ebiten.Key]func(){
		ebiten.KeyE:     s.toggleEditor,
		ebiten.KeyR:     s.restart,
		ebiten.KeyN:     s.nextLevel,
		ebiten.KeyF2:    s.newBlankLevel,
		ebiten.KeyS:     func() { _ = s.saveLevel() },
		ebiten.KeyL:     s.reloadLevel,
		ebiten.KeyD:     s.deleteSavedLevel,
		ebiten.KeyP:     s.printShareString,
		ebiten.KeyC:     s.cycleBrushColor,
		ebiten.KeyEqual: func() { s.adjustBrushAmount(1) },
		ebiten.KeyMinus: func() { s.adjustBrushAmount(-1) },
		ebiten.KeyX:     s.cycleBrushCriteria,
	}
	for key, kind := range brushKeys {
		s.keyActions[key] = func() { s.setBrushKind(kind) }
	}
}

// resetInput 换关或改尺寸后重置指针和坐标变换
func (s *GameScene) resetInput() {
	s.tracker.Reset()
	s.tracker.SetTransform(s.boardTransform())
	s.strokeBlocked = false
	s.refreshSolved()
}

func (s *GameScene) toggleEditor() {
	enabled := !s.state.EditorMode()
	s.state.SetEditorMode(enabled)
	s.tracker.Reset()
	s.refreshSolved()
	if enabled {
		s.showMessage("Editor on")
	} else {
		s.showMessage("Editor off")
	}
}

func (s *GameScene) restart() {
	if err := s.state.Restart(); err != nil {
		s.showMessage("Restart failed: %v", err)
		return
	}
	s.resetInput()
}

func (s *GameScene) nextLevel() {
	if s.sceneManager == nil || !s.sceneManager.LoadNextLevel() {
		s.showMessage("No next level")
	}
}

func (s *GameScene) newBlankLevel() {
	if err := s.state.NewLevel(game.DefaultLevelWidth, game.DefaultLevelHeight); err != nil {
		s.showMessage("New level failed: %v", err)
		return
	}
	s.levelID = UntitledLevelID
	s.state.SetEditorMode(true)
	s.resetInput()
	s.showMessage("New %dx%d level", game.DefaultLevelWidth, game.DefaultLevelHeight)
}

// saveLevel 把当前关卡的编辑内容保存到关卡存储
func (s *GameScene) saveLevel() error {
	if s.services.Store == nil {
		err := errors.New("no level store")
		s.showMessage("Save failed: %v", err)
		return err
	}
	doc, err := s.state.Snapshot()
	if err != nil {
		s.showMessage("Save failed: %v", err)
		return err
	}
	if err := s.services.Store.Save(s.levelID, doc); err != nil {
		s.showMessage("Save failed: %v", err)
		return err
	}
	s.showMessage("Saved %s", s.levelID)
	return nil
}

// reloadLevel 丢弃当前修改，重新载入同一ID的关卡（保存的版本优先）
func (s *GameScene) reloadLevel() {
	doc, err := s.services.ResolveLevel(s.levelID)
	if err != nil {
		s.showMessage("Load failed: %v", err)
		return
	}
	if err := s.state.LoadDocument(doc); err != nil {
		s.showMessage("Load failed: %v", err)
		return
	}
	s.resetInput()
	s.showMessage("Loaded %s", s.levelID)
}

// deleteSavedLevel 删除当前关卡的保存副本，内置关卡回到原始版本
func (s *GameScene) deleteSavedLevel() {
	if s.services.Store == nil {
		return
	}
	if err := s.services.Store.Delete(s.levelID); err != nil {
		s.showMessage("Delete failed: %v", err)
		return
	}
	s.showMessage("Deleted saved copy of %s", s.levelID)
}

// printShareString 把关卡输出为 JSON 分享字符串（写入日志）
func (s *GameScene) printShareString() {
	doc, err := s.state.Snapshot()
	if err != nil {
		s.showMessage("Export failed: %v", err)
		return
	}
	data, err := game.MarshalDocumentJSON(doc)
	if err != nil {
		s.showMessage("Export failed: %v", err)
		return
	}
	log.Printf("[GameScene] Share string for %s: %s", s.levelID, data)
	s.showMessage("Share string written to log")
}

func (s *GameScene) setBrushKind(kind components.CellKind) {
	if !s.state.EditorMode() {
		return
	}
	s.state.Brush().Kind = kind
}

func (s *GameScene) cycleBrushColor() {
	if !s.state.EditorMode() {
		return
	}
	b := s.state.Brush()
	colors := types.AllColors()
	next := colors[0]
	for i, c := range colors {
		if c == b.Color {
			next = colors[(i+1)%len(colors)]
			break
		}
	}
	b.Color = next
}

func (s *GameScene) adjustBrushAmount(delta int) {
	if !s.state.EditorMode() {
		return
	}
	b := s.state.Brush()
	b.Amount = max(0, b.Amount+delta)
}

func (s *GameScene) cycleBrushCriteria() {
	if !s.state.EditorMode() {
		return
	}
	b := s.state.Brush()
	switch b.Criteria {
	case components.CriteriaExactly:
		b.Criteria = components.CriteriaMoreThan
	case components.CriteriaMoreThan:
		b.Criteria = components.CriteriaLessThan
	default:
		b.Criteria = components.CriteriaExactly
	}
}

// brushDescription 编辑器状态栏中的画笔描述
func brushDescription(b game.EditorBrush) string {
	switch b.Kind {
	case components.CellEmpty:
		return "erase"
	case components.CellWall:
		return "wall"
	case components.CellVine:
		return fmt.Sprintf("seed %s", b.Color)
	case components.CellWatcher:
		return fmt.Sprintf("watcher %s %d %s", b.Color, b.Amount, b.Criteria)
	case components.CellWater:
		return fmt.Sprintf("water %d", b.Amount)
	default:
		return b.Kind.String()
	}
}

// statusLine 底部状态栏文字
func (s *GameScene) statusLine() string {
	hint := utils.ControlsHint(s.state.EditorMode())
	if s.state.EditorMode() {
		return fmt.Sprintf("EDITOR  brush: %s   %s", brushDescription(*s.state.Brush()), hint)
	}
	line := hint
	if water, ok := s.state.WaterRemaining(); ok {
		line = fmt.Sprintf("Water: %d   %s", water, line)
	}
	if s.solved {
		line = "Solved!   " + line
	}
	return line
}

// boardShakeOffset 被阻挡时棋盘的水平抖动偏移，幅度逐渐衰减
func (s *GameScene) boardShakeOffset() float64 {
	if s.shakeTimer <= 0 {
		return 0
	}
	progress := 1 - s.shakeTimer/config.BlockedShakeSeconds
	amp := utils.Lerp(config.BlockedShakePixels, 1, utils.EaseOutCubic(progress))
	if int(progress*6)%2 == 0 {
		return amp
	}
	return -amp
}
