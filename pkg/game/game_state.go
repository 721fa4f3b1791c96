package game

import (
	"fmt"
	"log"

	"github.com/decker502/grow/pkg/components"
	"github.com/decker502/grow/pkg/systems"
	"github.com/decker502/grow/pkg/types"
)

// 新建空白关卡的默认尺寸
const (
	DefaultLevelWidth  = 8
	DefaultLevelHeight = 6
)

// EditorBrush 编辑器画笔，决定 PlaceTile 放置的格子
type EditorBrush struct {
	Kind     components.CellKind // CellEmpty 表示擦除
	Color    types.Color
	Amount   int
	Criteria components.Criteria
}

// Cell 返回画笔当前对应的格子
func (b EditorBrush) Cell() components.Cell {
	switch b.Kind {
	case components.CellWall:
		return components.WallCell{}
	case components.CellVine:
		return components.VineCell{Color: b.Color, Initial: true}
	case components.CellWatcher:
		return components.WatcherCell{Color: b.Color, Amount: b.Amount, Criteria: b.Criteria}
	case components.CellWater:
		return components.WaterCell{Amount: b.Amount}
	default:
		return nil
	}
}

// GameState 一局游戏的会话状态
//
// 持有网格、笔画状态机、水池和编辑器状态。
// 所有修改都在输入事件中同步完成，不需要加锁。
type GameState struct {
	drawer *systems.VineDrawSystem
	water  *systems.WaterPool // 为 nil 表示不限水量
	rule   systems.WatcherRule

	initialWater int
	name         string
	hint         string

	// 最近一次成功载入的文档，用于重新开始关卡
	source *LevelDocument

	editorMode bool
	brush      EditorBrush
}

// NewGameState 创建会话，初始为默认尺寸的空白关卡
//
// 参数：
//   - settings: 游戏设置，可为 nil（使用默认设置）
func NewGameState(settings *GameSettings) *GameState {
	if settings == nil {
		settings = DefaultSettings()
	}
	gs := &GameState{
		rule:         settings.WatcherRule(),
		initialWater: settings.InitialWater,
		brush:        EditorBrush{Kind: components.CellVine, Color: types.ColorGreen, Amount: 1},
	}
	if settings.WaterEnabled {
		gs.water = systems.NewWaterPool(settings.InitialWater)
	}
	gs.drawer = systems.NewVineDrawSystem(components.NewGrid(DefaultLevelWidth, DefaultLevelHeight), gs.waterHook())
	return gs
}

// waterHook 避免把值为 nil 的 *WaterPool 装进接口
func (gs *GameState) waterHook() systems.WaterHook {
	if gs.water == nil {
		return nil
	}
	return gs.water
}

// Grid 返回当前网格（只读使用）
func (gs *GameState) Grid() *components.Grid {
	return gs.drawer.Grid()
}

// Name 返回关卡名称
func (gs *GameState) Name() string { return gs.name }

// Hint 返回关卡提示
func (gs *GameState) Hint() string { return gs.hint }

// SetName 设置关卡名称（编辑器）
func (gs *GameState) SetName(name string) { gs.name = name }

// SetHint 设置关卡提示（编辑器）
func (gs *GameState) SetHint(hint string) { gs.hint = hint }

// Stroke 返回当前笔画状态
func (gs *GameState) Stroke() systems.StrokeState {
	return gs.drawer.State()
}

// WaterRemaining 返回剩余水量；未启用水量规则时第二个返回值为 false
func (gs *GameState) WaterRemaining() (int, bool) {
	if gs.water == nil {
		return 0, false
	}
	return gs.water.Remaining(), true
}

// SetWatcherRule 替换观察者判定规则
func (gs *GameState) SetWatcherRule(rule systems.WatcherRule) {
	gs.rule = rule
}

// Watchers 计算所有观察者的当前结果
func (gs *GameState) Watchers() []systems.WatcherResult {
	return systems.EvaluateAll(gs.Grid(), gs.rule)
}

// Solved 判断谜题是否完成
func (gs *GameState) Solved() bool {
	return systems.AllSatisfied(gs.Watchers())
}

// PointerDown 处理按下事件
//
// 普通模式下在藤蔓上开始笔画；编辑器模式下直接放置画笔格子。
//
// 返回：
//   - bool: 是否开始了笔画或放置了格子
func (gs *GameState) PointerDown(x, y int) bool {
	if gs.editorMode {
		return gs.drawer.PlaceTile(x, y, gs.brush.Cell())
	}
	return gs.drawer.StartStroke(x, y)
}

// PointerMove 处理按住拖动到 (x,y) 的事件
func (gs *GameState) PointerMove(x, y int) systems.StrokeResult {
	if gs.editorMode {
		gs.drawer.PlaceTile(x, y, gs.brush.Cell())
		return systems.StrokeIgnored
	}
	return gs.drawer.ExtendStroke(x, y)
}

// PointerUp 处理抬起事件
func (gs *GameState) PointerUp() {
	gs.drawer.EndStroke()
}

// EditorMode 返回是否处于编辑器模式
func (gs *GameState) EditorMode() bool {
	return gs.editorMode
}

// SetEditorMode 切换编辑器模式，切换时结束当前笔画
//
// 离开编辑器时，编辑后的关卡成为 Restart 的起点。
func (gs *GameState) SetEditorMode(enabled bool) {
	gs.drawer.EndStroke()
	if gs.editorMode && !enabled {
		if snap, err := gs.Snapshot(); err == nil {
			gs.source = snap
		} else {
			log.Printf("[GameState] Warning: failed to snapshot edited level: %v", err)
		}
	}
	gs.editorMode = enabled
}

// Brush 返回编辑器画笔，可直接修改
func (gs *GameState) Brush() *EditorBrush {
	return &gs.brush
}

// NewLevel 以指定尺寸创建空白关卡（编辑器）
func (gs *GameState) NewLevel(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxLevelSide || height > MaxLevelSide {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	gs.drawer.SetGrid(components.NewGrid(width, height))
	gs.name, gs.hint = "", ""
	gs.source = nil
	gs.resetWater()
	return nil
}

// LoadDocument 载入关卡文档
//
// 文档先完整反序列化，成功后才替换当前关卡；失败时当前关卡保持不变。
func (gs *GameState) LoadDocument(doc *LevelDocument) error {
	level, err := Deserialize(doc)
	if err != nil {
		return fmt.Errorf("failed to load level: %w", err)
	}
	gs.apply(level)
	src := *doc
	gs.source = &src
	return nil
}

func (gs *GameState) apply(level *Level) {
	gs.drawer.SetGrid(level.Grid)
	gs.name = level.Name
	gs.hint = level.Hint
	gs.resetWater()
}

// Restart 丢弃玩家绘制的藤蔓，回到最近一次载入的状态
//
// 没有载入过文档时（编辑器新建的关卡），从当前网格的编辑内容重建。
func (gs *GameState) Restart() error {
	doc := gs.source
	if doc == nil {
		snap, err := gs.Snapshot()
		if err != nil {
			return err
		}
		doc = snap
	}
	level, err := Deserialize(doc)
	if err != nil {
		return fmt.Errorf("failed to restart level: %w", err)
	}
	gs.apply(level)
	log.Printf("[GameState] Restarted level %q", gs.name)
	return nil
}

// Snapshot 把当前关卡的编辑内容序列化为文档
func (gs *GameState) Snapshot() (*LevelDocument, error) {
	return Serialize(gs.Grid(), gs.name, gs.hint)
}

func (gs *GameState) resetWater() {
	if gs.water != nil {
		gs.water.Reset(gs.initialWater)
	}
}
