package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 根据关卡ID创建场景，避免 game 包依赖 scenes 包
type SceneFactory func(levelID string) Scene

// SceneManager 管理当前活动场景和关卡顺序
type SceneManager struct {
	currentScene   Scene
	sceneFactory   SceneFactory
	levelOrder     []string // 内置关卡顺序，用于"下一关"
	currentLevelID string
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SetLevelOrder 设置关卡顺序
func (sm *SceneManager) SetLevelOrder(ids []string) {
	sm.levelOrder = append([]string(nil), ids...)
}

// SwitchTo 切换到指定场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentLevelID 返回最近一次成功载入的关卡ID
func (sm *SceneManager) CurrentLevelID() string {
	return sm.currentLevelID
}

// LoadLevel 通过工厂创建关卡场景并切换
//
// 返回：
//   - bool: 工厂未设置或创建失败时返回 false，当前场景保持不变
func (sm *SceneManager) LoadLevel(levelID string) bool {
	log.Printf("[SceneManager] 加载关卡: %s", levelID)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return false
	}

	newScene := sm.sceneFactory(levelID)
	if newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建关卡场景: %s", levelID)
		return false
	}
	sm.SwitchTo(newScene)
	sm.currentLevelID = levelID
	return true
}

// NextLevelID 返回关卡顺序中当前关卡的下一关，已是最后一关时回到第一关
func (sm *SceneManager) NextLevelID() (string, bool) {
	if len(sm.levelOrder) == 0 {
		return "", false
	}
	for i, id := range sm.levelOrder {
		if id == sm.currentLevelID {
			return sm.levelOrder[(i+1)%len(sm.levelOrder)], true
		}
	}
	return sm.levelOrder[0], true
}

// LoadNextLevel 载入下一关
func (sm *SceneManager) LoadNextLevel() bool {
	next, ok := sm.NextLevelID()
	if !ok {
		return false
	}
	return sm.LoadLevel(next)
}

// Update 更新当前场景
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
