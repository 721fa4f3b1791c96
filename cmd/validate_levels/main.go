// validate_levels 检查关卡 YAML 文件
//
// 对每个文件：解析并校验配置，反序列化为网格，再序列化回文档并确认往返后内容一致。
//
// 使用方法：
//
//	go run ./cmd/validate_levels                 # 检查 data/levels/*.yaml
//	go run ./cmd/validate_levels -share          # 同时输出每关的 JSON 分享字符串
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/decker502/grow/pkg/components"
	"github.com/decker502/grow/pkg/config"
	"github.com/decker502/grow/pkg/game"
)

func main() {
	dir := flag.String("dir", "data/levels", "关卡 YAML 目录")
	share := flag.Bool("share", false, "输出每关的 JSON 分享字符串")
	flag.Parse()

	files, err := filepath.Glob(filepath.Join(*dir, "*.yaml"))
	if err != nil {
		fmt.Printf("❌ 无法列出关卡文件: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("❌ %s 下没有关卡文件\n", *dir)
		os.Exit(1)
	}

	failed := 0
	seen := make(map[string]string)
	for _, f := range files {
		lc, err := checkLevel(f)
		if err != nil {
			fmt.Printf("❌ %s: %v\n", f, err)
			failed++
			continue
		}
		if prev, dup := seen[lc.ID]; dup {
			fmt.Printf("❌ %s: 关卡ID %q 与 %s 重复\n", f, lc.ID, prev)
			failed++
			continue
		}
		seen[lc.ID] = f

		w, h := lc.Size()
		fmt.Printf("✅ %s: %s (%dx%d)\n", lc.ID, lc.Name, w, h)
		if *share {
			data, err := game.MarshalDocumentJSON(lc.ToDocument())
			if err != nil {
				fmt.Printf("❌ %s: %v\n", lc.ID, err)
				failed++
				continue
			}
			fmt.Printf("   %s\n", data)
		}
	}

	if failed > 0 {
		fmt.Printf("❌ %d/%d 个关卡有问题\n", failed, len(files))
		os.Exit(1)
	}
	fmt.Printf("✅ 全部 %d 个关卡有效\n", len(files))
}

// checkLevel 加载关卡并做一次序列化往返
func checkLevel(path string) (*config.LevelConfig, error) {
	lc, err := config.LoadLevelConfig(path)
	if err != nil {
		return nil, err
	}

	doc := lc.ToDocument()
	level, err := game.Deserialize(doc)
	if err != nil {
		return nil, fmt.Errorf("deserialize: %w", err)
	}
	if !hasWatcher(level) {
		return nil, fmt.Errorf("level has no watchers and is solved immediately")
	}

	again, err := game.Serialize(level.Grid, level.Name, level.Hint)
	if err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}
	if again.Str != doc.Str {
		return nil, fmt.Errorf("round trip mismatch:\n  before: %s\n  after:  %s", doc.Str, again.Str)
	}
	return lc, nil
}

func hasWatcher(level *game.Level) bool {
	return level.Grid.Count(func(c components.Cell) bool {
		return components.KindOf(c) == components.CellWatcher
	}) > 0
}
