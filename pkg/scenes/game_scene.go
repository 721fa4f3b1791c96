package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/grow/pkg/config"
	"github.com/decker502/grow/pkg/game"
	"github.com/decker502/grow/pkg/systems"
	"github.com/decker502/grow/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// UntitledLevelID 编辑器新建关卡时使用的ID
const UntitledLevelID = "untitled"

// GameScene 谜题场景
//
// 负责把输入转换为 GameState 的指针事件、播放反馈音效，并绘制棋盘和 HUD。
// 谜题规则全部在 GameState 中，场景只做输入输出。
type GameScene struct {
	services     *Services
	sceneManager *game.SceneManager
	levelID      string

	state   *game.GameState
	tracker *utils.PointerTracker

	// 反馈状态
	solved        bool
	pulse         *gween.Tween // 完成时观察者闪烁一次，进度 0→1
	pulseProgress float64
	strokeBlocked bool // 本次笔画是否已经播放过阻挡音效
	shakeTimer    float64
	message       string
	messageTimer  float64

	keyActions map[ebiten.Key]func()
}

// NewGameScene 创建谜题场景并载入关卡
//
// 参数：
//   - services: 共享服务
//   - sm: 场景管理器（用于切换到下一关）
//   - levelID: 关卡ID，为空时新建空白关卡并进入编辑器
//
// 返回：
//   - *GameScene: 场景实例
//   - error: 关卡不存在或无法解析时返回错误
func NewGameScene(services *Services, sm *game.SceneManager, levelID string) (*GameScene, error) {
	if services == nil {
		services = &Services{}
	}
	s := &GameScene{
		services:     services,
		sceneManager: sm,
		levelID:      levelID,
		state:        game.NewGameState(services.settings()),
	}
	s.bindKeys()

	if levelID == "" {
		s.levelID = UntitledLevelID
		s.state.SetEditorMode(true)
		log.Printf("[GameScene] New blank %dx%d level in editor mode", game.DefaultLevelWidth, game.DefaultLevelHeight)
	} else {
		doc, err := services.ResolveLevel(levelID)
		if err != nil {
			return nil, err
		}
		if err := s.state.LoadDocument(doc); err != nil {
			return nil, fmt.Errorf("level %s: %w", levelID, err)
		}
		log.Printf("[GameScene] Loaded level %s (%q)", levelID, s.state.Name())
	}

	s.tracker = utils.NewPointerTracker(s.boardTransform())
	s.solved = s.state.Solved()
	return s, nil
}

// State 返回会话状态
func (s *GameScene) State() *game.GameState {
	return s.state
}

// LevelID 返回关卡ID
func (s *GameScene) LevelID() string {
	return s.levelID
}

// Message 返回当前显示的状态消息
func (s *GameScene) Message() string {
	return s.message
}

// boardTransform 按当前网格尺寸计算屏幕变换
func (s *GameScene) boardTransform() utils.BoardTransform {
	g := s.state.Grid()
	return utils.NewBoardTransform(config.GameWindowWidth, config.GameWindowHeight, g.Width(), g.Height())
}

// Update 更新场景逻辑
func (s *GameScene) Update(deltaTime float64) {
	for key, action := range s.keyActions {
		if isKeyJustPressed(key) {
			action()
		}
	}

	s.handlePointer(s.tracker.Update())
	s.tick(deltaTime)
}

// tick 推进计时器
func (s *GameScene) tick(deltaTime float64) {
	if s.pulse != nil {
		v, finished := s.pulse.Update(float32(deltaTime))
		s.pulseProgress = float64(v)
		if finished {
			s.pulse = nil
		}
	}
	if s.shakeTimer > 0 {
		s.shakeTimer -= deltaTime
	}
	if s.messageTimer > 0 {
		s.messageTimer -= deltaTime
		if s.messageTimer <= 0 {
			s.message = ""
		}
	}
}

// handlePointer 把网格坐标事件交给 GameState，并根据结果播放反馈
func (s *GameScene) handlePointer(ev utils.PointerEvent) {
	switch ev.Phase {
	case utils.PointerDown:
		s.strokeBlocked = false
		if s.state.PointerDown(ev.X, ev.Y) && s.state.EditorMode() {
			s.services.playSound(game.SoundPlant)
		}
	case utils.PointerMove:
		s.onStrokeResult(s.state.PointerMove(ev.X, ev.Y))
	case utils.PointerUp:
		s.state.PointerUp()
	default:
		return
	}
	s.refreshSolved()
}

func (s *GameScene) onStrokeResult(result systems.StrokeResult) {
	switch result {
	case systems.StrokePlanted:
		s.services.playSound(game.SoundPlant)
	case systems.StrokeRetracted:
		s.services.playSound(game.SoundRetract)
	case systems.StrokeBlocked:
		// 手指在阻挡格上来回移动时只提示一次
		if !s.strokeBlocked {
			s.strokeBlocked = true
			s.shakeTimer = config.BlockedShakeSeconds
			s.services.playSound(game.SoundBlocked)
		}
	}
}

// refreshSolved 重新计算完成状态，从未完成变为完成时播放音效
func (s *GameScene) refreshSolved() {
	if s.state.EditorMode() {
		s.solved = false
		return
	}
	solved := s.state.Solved()
	if solved && !s.solved {
		s.pulse = gween.New(0, 1, float32(config.SolvedPulseSeconds), ease.Linear)
		s.pulseProgress = 0
		s.services.playSound(game.SoundSolved)
		log.Printf("[GameScene] Level %s solved", s.levelID)
	}
	s.solved = solved
}

// Solved 返回谜题是否已完成
func (s *GameScene) Solved() bool {
	return s.solved
}

// showMessage 在 HUD 上显示一条临时消息
func (s *GameScene) showMessage(format string, args ...any) {
	s.message = fmt.Sprintf(format, args...)
	s.messageTimer = config.MessageSeconds
	log.Printf("[GameScene] %s", s.message)
}

// SaveOnExit 实现 game.Saveable：退出时保存编辑器中的关卡
func (s *GameScene) SaveOnExit() bool {
	if !s.state.EditorMode() {
		return true
	}
	return s.saveLevel() == nil
}
