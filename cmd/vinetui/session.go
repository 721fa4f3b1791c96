package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/decker502/grow/pkg/config"
	"github.com/decker502/grow/pkg/game"
	"github.com/decker502/grow/pkg/systems"
	"github.com/decker502/grow/pkg/utils"
)

// session 终端版的一局游戏：关卡列表、当前会话和指针状态
type session struct {
	levels  []*config.LevelConfig
	index   int
	state   *game.GameState
	tracker *utils.PointerTracker
	sound   *tonePlayer

	solved  bool
	message string
}

func newSession(levels []*config.LevelConfig, settings *game.GameSettings, sound *tonePlayer) (*session, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("no levels to play")
	}
	s := &session{
		levels:  levels,
		state:   game.NewGameState(settings),
		tracker: utils.NewPointerTracker(utils.BoardTransform{}),
		sound:   sound,
	}
	if err := s.load(0); err != nil {
		return nil, err
	}
	return s, nil
}

// load 载入第 i 关
func (s *session) load(i int) error {
	lc := s.levels[i]
	if err := s.state.LoadDocument(lc.ToDocument()); err != nil {
		return fmt.Errorf("level %s: %w", lc.ID, err)
	}
	s.index = i
	logger.WithFields(logrus.Fields{"level": lc.ID, "name": lc.Name}).Info("level loaded")
	s.tracker.Reset()
	s.solved = s.state.Solved()
	s.message = ""
	return nil
}

// jumpTo 按ID切换关卡
func (s *session) jumpTo(id string) error {
	for i, lc := range s.levels {
		if lc.ID == id {
			return s.load(i)
		}
	}
	return fmt.Errorf("%w: %s", game.ErrLevelNotFound, id)
}

func (s *session) current() *config.LevelConfig {
	return s.levels[s.index]
}

// step 切换到相邻关卡，到头时不动
func (s *session) step(delta int) {
	next := s.index + delta
	if next < 0 || next >= len(s.levels) {
		s.message = "no more levels"
		return
	}
	if err := s.load(next); err != nil {
		s.message = err.Error()
	}
}

func (s *session) restart() {
	if err := s.state.Restart(); err != nil {
		s.message = err.Error()
		return
	}
	s.tracker.Reset()
	s.solved = s.state.Solved()
	s.message = ""
}

// pointer 处理一次鼠标状态
//
// 参数：
//   - pressed: 左键是否按下
//   - tx, ty: 变换空间中的坐标（终端列除以 2，行不变）
func (s *session) pointer(pressed bool, tx, ty int) {
	ev := s.tracker.Step(pressed, tx, ty)
	switch ev.Phase {
	case utils.PointerDown:
		s.state.PointerDown(ev.X, ev.Y)
	case utils.PointerMove:
		switch s.state.PointerMove(ev.X, ev.Y) {
		case systems.StrokePlanted:
			s.sound.play(game.SoundPlant)
		case systems.StrokeRetracted:
			s.sound.play(game.SoundRetract)
		case systems.StrokeBlocked:
			logger.Debugf("blocked at (%d,%d)", ev.X, ev.Y)
			s.sound.play(game.SoundBlocked)
		}
	case utils.PointerUp:
		s.state.PointerUp()
	default:
		return
	}

	solved := s.state.Solved()
	if solved && !s.solved {
		s.sound.play(game.SoundSolved)
		logger.WithField("level", s.current().ID).Info("level solved")
		s.message = "Solved!  [n] next level"
	}
	s.solved = solved
}

// statusLine 底部状态栏
func (s *session) statusLine() string {
	line := fmt.Sprintf("%d/%d  [r] restart  [n]/[p] next/prev  [q] quit", s.index+1, len(s.levels))
	if water, ok := s.state.WaterRemaining(); ok {
		line = fmt.Sprintf("Water: %d   %s", water, line)
	}
	return line
}
