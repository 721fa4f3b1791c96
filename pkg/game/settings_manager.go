package game

import (
	"fmt"
	"log"

	"github.com/decker502/grow/pkg/systems"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GameSettings 玩家偏好，以 YAML 存入 gdata
type GameSettings struct {
	SoundVolume  float64 `yaml:"soundVolume"`
	SoundEnabled bool    `yaml:"soundEnabled"`

	// 关闭水量规则时藤蔓可以无限生长
	WaterEnabled bool `yaml:"waterEnabled"`
	InitialWater int  `yaml:"initialWater"`

	// "zero" 或 "amount"
	WatcherReference string `yaml:"watcherReference"`

	Fullscreen bool `yaml:"fullscreen"`
}

// DefaultInitialWater 开启水量规则时每关的初始水量
const DefaultInitialWater = 99

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		SoundVolume:      0.8,
		SoundEnabled:     true,
		InitialWater:     DefaultInitialWater,
		WatcherReference: systems.ReferenceZero.String(),
	}
}

// WatcherRule 无法识别的基准回退为默认规则
func (gs *GameSettings) WatcherRule() systems.WatcherRule {
	if ref, ok := systems.ParseWatcherReference(gs.WatcherReference); ok {
		return systems.WatcherRule{Reference: ref}
	}
	return systems.DefaultWatcherRule()
}

func (gs *GameSettings) normalize() {
	gs.SoundVolume = clampVolume(gs.SoundVolume)
	gs.InitialWater = max(0, gs.InitialWater)
	if _, ok := systems.ParseWatcherReference(gs.WatcherReference); !ok {
		log.Printf("[SettingsManager] Warning: unknown watcher reference %q, using %q",
			gs.WatcherReference, systems.ReferenceZero)
		gs.WatcherReference = systems.ReferenceZero.String()
	}
}

// gdata 中的位置
const (
	settingsObject   = "settings"
	settingsProperty = "preferences"
)

// SettingsManager 持有当前设置
//
// store 为 nil 时只在内存中保存，Save 和 Load 都不会出错。
type SettingsManager struct {
	store    *gdata.Manager
	settings *GameSettings
}

// NewSettingsManager 创建设置管理器并读取已保存的设置
//
// 读取失败只记录警告，返回的管理器使用默认设置。
func NewSettingsManager(store *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{store: store, settings: DefaultSettings()}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: %v (using defaults)", err)
	}
	return sm, nil
}

// Load 重新读取设置，任何失败都会先恢复默认值再返回错误
func (sm *SettingsManager) Load() error {
	loaded, err := sm.read()
	if err != nil || loaded == nil {
		sm.settings = DefaultSettings()
		return err
	}
	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded")
	return nil
}

// read 没有保存过设置时返回 nil, nil
func (sm *SettingsManager) read() (*GameSettings, error) {
	if sm.store == nil || !sm.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil, nil
	}
	data, err := sm.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	// 以默认值为底，文件中缺失的字段保持默认
	gs := DefaultSettings()
	if err := yaml.Unmarshal(data, gs); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	gs.normalize()
	return gs, nil
}

// Save 写入当前设置
func (sm *SettingsManager) Save() error {
	if sm.store == nil {
		return nil
	}
	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := sm.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	log.Printf("[SettingsManager] Settings saved")
	return nil
}

// GetSettings 返回当前设置，调用方可以直接读取
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// Update 修改内存中的设置并修正越界值，持久化需要再调用 Save
//
//	sm.Update(func(s *GameSettings) { s.Fullscreen = true })
func (sm *SettingsManager) Update(fn func(*GameSettings)) {
	fn(sm.settings)
	sm.settings.normalize()
}

func clampVolume(v float64) float64 {
	return min(1, max(0, v))
}
