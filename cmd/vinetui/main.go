// vinetui 在终端中游玩藤蔓谜题
//
// 使用方法：
//
//	go run ./cmd/vinetui                       # 游玩 data/levels 下的全部关卡
//	go run ./cmd/vinetui -level water          # 从指定关卡开始
//	go run ./cmd/vinetui -share level.json     # 游玩编辑器导出的分享字符串
//	go run ./cmd/vinetui -log vinetui.log      # 日志写到文件
//
// 用鼠标左键从种子开始拖动绘制藤蔓，拖回上一格即可撤销。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/decker502/grow/pkg/config"
	"github.com/decker502/grow/pkg/game"
	"github.com/decker502/grow/pkg/types"
)

func main() {
	dir := flag.String("dir", "data/levels", "关卡 YAML 目录")
	levelID := flag.String("level", "", "起始关卡ID")
	share := flag.String("share", "", "编辑器导出的 JSON 分享字符串文件")
	water := flag.Bool("water", false, "启用水量规则")
	mute := flag.Bool("mute", false, "关闭音效")
	logPath := flag.String("log", "", "日志文件路径（终端被游戏画面占用，日志不能写到 stderr）")
	flag.Parse()

	closeLog, err := setupLogging(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	levels, err := loadLevels(*dir, *share)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	settings := game.DefaultSettings()
	settings.WaterEnabled = *water

	sound := newTonePlayer(*mute)
	defer sound.close()

	sess, err := newSession(levels, settings, sound)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	if *levelID != "" {
		if err := sess.jumpTo(*levelID); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()

	logger.WithField("levels", len(levels)).Info("vinetui started")
	run(screen, sess)
}

// logger 终端版的日志，默认丢弃
var logger = logrus.New()

// setupLogging 把 logrus 和标准库 log（pkg 下各组件使用）都写到同一个文件
//
// 返回：
//   - func(): 退出前调用，关闭日志文件
func setupLogging(path string) (func(), error) {
	if path == "" {
		logger.SetOutput(io.Discard)
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(f)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})

	w := logger.WriterLevel(logrus.DebugLevel)
	log.SetOutput(w)
	log.SetFlags(0)
	return func() {
		log.SetOutput(io.Discard)
		_ = w.Close()
		_ = f.Close()
	}, nil
}

// loadLevels 读取分享字符串或目录下的全部关卡
func loadLevels(dir, share string) ([]*config.LevelConfig, error) {
	if share != "" {
		data, err := os.ReadFile(share)
		if err != nil {
			return nil, err
		}
		doc, err := game.ParseDocumentJSON(data)
		if err != nil {
			return nil, err
		}
		level, err := game.Deserialize(doc)
		if err != nil {
			return nil, err
		}
		lc, err := config.LevelConfigFromGrid("shared", doc.Name, doc.Hint, level.Grid)
		if err != nil {
			return nil, err
		}
		return []*config.LevelConfig{lc}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	levels := make([]*config.LevelConfig, 0, len(files))
	for _, f := range files {
		lc, err := config.LoadLevelConfig(f)
		if err != nil {
			return nil, err
		}
		levels = append(levels, lc)
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("no levels found in %s", dir)
	}
	config.SortLevels(levels)
	return levels, nil
}

// run 事件循环：每个事件处理后重绘，没有动画所以不需要定时器
func run(screen tcell.Screen, sess *session) {
	draw(screen, sess)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if !handleEvent(screen, sess, ev) {
			return
		}
		draw(screen, sess)
	}
}

// handleEvent 返回 false 表示退出
func handleEvent(screen tcell.Screen, sess *session, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'r':
			sess.restart()
		case 'n':
			sess.step(1)
		case 'p':
			sess.step(-1)
		}
	case *tcell.EventMouse:
		w, h := screen.Size()
		ox, oy := boardOrigin(w, h, sess.state.Grid())
		sess.tracker.SetTransform(boardTransform(ox, oy))
		x, y := ev.Position()
		sess.pointer(ev.Buttons()&tcell.Button1 != 0, x/2, y)
	case *tcell.EventResize:
		screen.Sync()
	}
	return true
}

func draw(screen tcell.Screen, sess *session) {
	screen.Fill(' ', styleFor(types.PaletteBlack))
	w, h := screen.Size()
	g := sess.state.Grid()
	ox, oy := boardOrigin(w, h, g)
	drawBoard(screen, g, sess.state.Watchers(), ox, oy)

	lc := sess.current()
	putString(screen, 1, 0, lc.Name, styleFor(types.PaletteWhite).Bold(true))
	putString(screen, 1, 1, lc.Hint, styleFor(types.PaletteTan))
	putString(screen, 1, h-1, sess.statusLine(), styleFor(types.PaletteWhite))
	if sess.message != "" {
		putString(screen, 1, h-2, sess.message, styleFor(types.PaletteYellow))
	}
	screen.Show()
}
