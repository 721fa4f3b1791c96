//go:build mobile

// Package mobile 是 ebitenmobile bind 的入口
//
//	cp -r data mobile/
//	ebitenmobile bind -target android -tags mobile -javapkg com.decker.grow -o build/grow.aar ./mobile
//	ebitenmobile bind -target ios -tags mobile -o build/Grow.xcframework ./mobile
package mobile

import (
	"log"

	"github.com/decker502/grow/pkg/app"
	"github.com/decker502/grow/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2/mobile"
)

func init() {
	embedded.Init(dataFS)

	// 触屏设备上没有命令行参数，总是从第一关开始
	grow, err := app.NewApp(app.Config{Verbose: true})
	if err != nil {
		log.Fatalf("[Mobile] init failed: %v", err)
	}
	mobile.SetGame(grow)
}

// Dummy 导出一个符号供绑定工具生成包
func Dummy() {}
