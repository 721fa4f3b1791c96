package scenes

import (
	"fmt"

	"github.com/decker502/grow/pkg/config"
	"github.com/decker502/grow/pkg/game"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Scene is a type alias for game.Scene so callers only import this package.
type Scene = game.Scene

// Services 场景之间共享的服务，由 App 在启动时创建
//
// 所有字段都可为 nil：Settings 为 nil 时使用默认设置，Store 为 nil 时不能保存，
// Audio 为 nil 时静音，Font 为 nil 时不绘制文字。
type Services struct {
	Settings *game.SettingsManager
	Store    *game.LevelStore
	Audio    *game.AudioManager
	Font     *text.GoTextFaceSource
	Levels   []*config.LevelConfig
}

// LevelOrder 返回内置关卡的ID顺序
func (s *Services) LevelOrder() []string {
	ids := make([]string, 0, len(s.Levels))
	for _, l := range s.Levels {
		ids = append(ids, l.ID)
	}
	return ids
}

// BuiltinLevel 按ID查找内置关卡
func (s *Services) BuiltinLevel(id string) (*config.LevelConfig, bool) {
	for _, l := range s.Levels {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}

// ResolveLevel 按ID查找关卡文档：先查玩家保存的关卡，再查内置关卡
//
// 玩家在编辑器中修改内置关卡并保存后，同一ID优先载入保存的版本。
func (s *Services) ResolveLevel(id string) (*game.LevelDocument, error) {
	if s.Store != nil && s.Store.Exists(id) {
		return s.Store.Load(id)
	}
	if l, ok := s.BuiltinLevel(id); ok {
		return l.ToDocument(), nil
	}
	return nil, fmt.Errorf("%w: %s", game.ErrLevelNotFound, id)
}

func (s *Services) settings() *game.GameSettings {
	if s.Settings == nil {
		return game.DefaultSettings()
	}
	return s.Settings.GetSettings()
}

func (s *Services) playSound(id game.SoundID) {
	if s.Audio != nil {
		s.Audio.PlaySound(id)
	}
}
