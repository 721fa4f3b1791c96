// Package app 把服务、场景和 ebiten.Game 接在一起，桌面端和移动端共用
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/grow/pkg/config"
	"github.com/decker502/grow/pkg/game"
	"github.com/decker502/grow/pkg/scenes"
	"github.com/decker502/grow/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "grow"

// Config 启动参数
type Config struct {
	Verbose bool
	// Level 为空时从第一关开始
	Level string
	// Editor 未指定 Level 时新建空白关卡
	Editor bool
}

// App 实现 ebiten.Game
type App struct {
	sceneManager *game.SceneManager
	services     *scenes.Services

	// 退出全屏后窗口管理器需要几帧才接受新的窗口尺寸
	resizeIn int
}

// NewApp 创建服务并载入第一个场景，调用前必须先 embedded.Init
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	services, err := newServices()
	if err != nil {
		return nil, err
	}

	sm := newSceneManager(services)
	if err := startScene(sm, services, cfg); err != nil {
		return nil, err
	}
	return &App{sceneManager: sm, services: services}, nil
}

// newSceneManager 创建按关卡顺序切换 GameScene 的场景管理器
func newSceneManager(services *scenes.Services) *game.SceneManager {
	sceneManager := game.NewSceneManager()
	sceneManager.SetLevelOrder(services.LevelOrder())
	sceneManager.SetSceneFactory(func(levelID string) game.Scene {
		scene, err := scenes.NewGameScene(services, sceneManager, levelID)
		if err != nil {
			log.Printf("[App] Failed to create scene for %q: %v", levelID, err)
			return nil
		}
		return scene
	})
	return sceneManager
}

// newServices 初始化存储、设置、音频、字体和内置关卡
func newServices() (*scenes.Services, error) {
	levels, err := config.LoadEmbeddedLevels()
	if err != nil {
		return nil, fmt.Errorf("内置关卡加载失败: %w", err)
	}
	log.Printf("[App] Loaded %d built-in levels", len(levels))

	font, err := utils.LoadDefaultFontSource()
	if err != nil {
		return nil, err
	}

	// gdata 打开失败时降级为内存存储，游戏仍可运行
	var gdataManager *gdata.Manager
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	} else if root := utils.GetStoragePath(); root != "" {
		log.Printf("[App] Storage root: %s", root)
	}
	if m, err := gdata.Open(gdata.Config{AppName: AppName}); err != nil {
		log.Printf("[App] Warning: gdata unavailable, settings and levels will not persist: %v", err)
	} else {
		gdataManager = m
	}

	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置初始化失败: %w", err)
	}

	audioManager := game.NewAudioManager(audio.NewContext(game.AudioSampleRate), settingsManager)
	audioManager.PreloadSounds()

	return &scenes.Services{
		Settings: settingsManager,
		Store:    game.NewLevelStore(gdataManager),
		Audio:    audioManager,
		Font:     font,
		Levels:   levels,
	}, nil
}

// startScene 根据启动配置载入第一个场景
func startScene(sm *game.SceneManager, services *scenes.Services, cfg Config) error {
	levelID := cfg.Level
	if levelID == "" && !cfg.Editor {
		order := services.LevelOrder()
		if len(order) == 0 {
			return fmt.Errorf("没有可用的关卡")
		}
		levelID = order[0]
	}

	log.Printf("[App] Starting level: %q (editor=%v)", levelID, cfg.Editor)
	if !sm.LoadLevel(levelID) {
		return fmt.Errorf("关卡 %q 加载失败", levelID)
	}

	if cfg.Editor && levelID != "" {
		if scene, ok := sm.GetCurrentScene().(*scenes.GameScene); ok {
			scene.State().SetEditorMode(true)
		}
	}
	return nil
}

// Update 每个 tick 调用一次
func (a *App) Update() error {
	// main 中开启了 SetWindowClosingHandled
	if ebiten.IsWindowBeingClosed() {
		a.Shutdown()
		return ebiten.Termination
	}

	if a.resizeIn > 0 {
		if a.resizeIn--; a.resizeIn == 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.setFullscreen(!ebiten.IsFullscreen())
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// setFullscreen 切换全屏并写入设置
func (a *App) setFullscreen(enabled bool) {
	ebiten.SetFullscreen(enabled)
	if !enabled {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.resizeIn = 3
	}
	if a.services.Settings == nil {
		return
	}
	a.services.Settings.Update(func(gs *game.GameSettings) { gs.Fullscreen = enabled })
	if err := a.services.Settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 全屏时用黑边填充并线性缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{GeoM: geoM, Filter: ebiten.FilterLinear}
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑分辨率固定，窗口缩放交给 ebiten
func (a *App) Layout(_, _ int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Fullscreen 上次保存的全屏状态，在创建窗口前读取
func (a *App) Fullscreen() bool {
	return a.services.Settings != nil && a.services.Settings.GetSettings().Fullscreen
}

// Shutdown 保存编辑中的关卡和设置
func (a *App) Shutdown() {
	if s, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok && !s.SaveOnExit() {
		log.Printf("[App] Warning: failed to save current level on exit")
	}
	if a.services.Settings == nil {
		return
	}
	if err := a.services.Settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}
