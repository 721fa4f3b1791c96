package main

import (
	"flag"
	"log"

	"github.com/decker502/grow/pkg/app"
	"github.com/decker502/grow/pkg/config"
	"github.com/decker502/grow/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	level := flag.String("level", "", "启动时加载的关卡ID（内置或已保存），默认第一关")
	editor := flag.Bool("editor", false, "启动时进入编辑器；未指定 -level 时新建空白关卡")
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Level:   *level,
		Editor:  *editor,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Grow")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetFullscreen(gameApp.Fullscreen())

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
