package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/grow/pkg/config"
	"github.com/decker502/grow/pkg/game"
)

func testLevels(t *testing.T) []*config.LevelConfig {
	t.Helper()
	var levels []*config.LevelConfig
	for _, src := range []string{
		"id: sprout\nname: Sprout\nlayout:\n  - \"v1 a a\"\n  - \"a a w11\"\n",
		"id: crowd\nname: Crowd\nlayout:\n  - \"v4 a a a\"\n  - \"a w41< a w11>\"\n  - \"a a a v1\"\n",
	} {
		lc, err := config.ParseLevelConfig([]byte(src), "test.yaml")
		if err != nil {
			t.Fatalf("ParseLevelConfig: %v", err)
		}
		levels = append(levels, lc)
	}
	return levels
}

func newTestSession(t *testing.T) *session {
	t.Helper()
	sess, err := newSession(testLevels(t), game.DefaultSettings(), &tonePlayer{})
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}
	return sess
}

// TestSessionSolve 用鼠标状态序列解开第一关
func TestSessionSolve(t *testing.T) {
	sess := newTestSession(t)
	sess.tracker.SetTransform(boardTransform(0, 0))

	// 变换空间中每格 2×2，格子中心为 (2x+1, 2y+1)
	sess.pointer(true, 1, 1)  // (0,0) 种子
	sess.pointer(true, 3, 1)  // (1,0)，观察者 (2,1) 的计数变为 0
	sess.pointer(false, 3, 1) // 抬起

	if !sess.solved {
		t.Fatalf("level should be solved, watchers = %+v", sess.state.Watchers())
	}
	if !strings.HasPrefix(sess.message, "Solved!") {
		t.Errorf("message = %q", sess.message)
	}

	sess.restart()
	if sess.solved {
		t.Error("restart should clear the solution")
	}
}

func TestSessionNavigation(t *testing.T) {
	sess := newTestSession(t)

	sess.step(-1)
	if sess.index != 0 || sess.message != "no more levels" {
		t.Errorf("step(-1) at first level: index=%d message=%q", sess.index, sess.message)
	}
	sess.step(1)
	if sess.current().ID != "crowd" {
		t.Errorf("current = %s, want crowd", sess.current().ID)
	}
	if err := sess.jumpTo("sprout"); err != nil {
		t.Fatalf("jumpTo: %v", err)
	}
	if err := sess.jumpTo("missing"); !errors.Is(err, game.ErrLevelNotFound) {
		t.Errorf("jumpTo(missing) = %v", err)
	}
}

func TestNewSessionNoLevels(t *testing.T) {
	if _, err := newSession(nil, nil, nil); err == nil {
		t.Error("expected error for empty level list")
	}
}

func TestBoardTransformTerminal(t *testing.T) {
	tr := boardTransform(10, 4)
	// 终端第 14 列、第 6 行 -> 变换空间 (7, 6) -> 格子 (1, 1)
	x, y := tr.ScreenToGrid(14/2, 6)
	if x != 1 || y != 1 {
		t.Errorf("ScreenToGrid = (%d,%d), want (1,1)", x, y)
	}
}

// TestDrawBoard 在模拟终端上检查种子和观察者的字符
func TestDrawBoard(t *testing.T) {
	sess := newTestSession(t)
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(40, 12)

	g := sess.state.Grid()
	drawBoard(screen, g, sess.state.Watchers(), 0, 0)

	if r, _, _, _ := screen.GetContent(1, 0); r != '◉' {
		t.Errorf("seed glyph = %q, want ◉", r)
	}
	// 观察者 (2,1)，计数 1
	if r, _, _, _ := screen.GetContent(2*cellCols+1, cellRows); r != '1' {
		t.Errorf("watcher label = %q, want 1", r)
	}
}

func TestWatcherLabel(t *testing.T) {
	sess := newTestSession(t)
	sess.step(1)
	var labels []string
	for _, r := range sess.state.Watchers() {
		labels = append(labels, watcherLabel(r))
	}
	got := strings.Join(labels, " ")
	// 两个观察者各自挨着一个同色种子
	if got != "0< 0>" {
		t.Errorf("labels = %q, want %q", got, "0< 0>")
	}
}

func TestToneSequence(t *testing.T) {
	seq, err := toneSequence(game.SoundPlant)
	if err != nil || seq == nil {
		t.Fatalf("toneSequence(SoundPlant) = %v, %v", seq, err)
	}
	seq, err = toneSequence(game.SoundID(99))
	if err != nil || seq != nil {
		t.Errorf("unknown sound: %v, %v", seq, err)
	}
}
