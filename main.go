package main

import (
	"flag"
	"log"

	"github.com/decker502/reflex/pkg/app"
	"github.com/decker502/reflex/pkg/embedded"
	"github.com/decker502/reflex/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose   = flag.Bool("verbose", false, "显示详细调试信息")
	reportDir = flag.String("report-dir", "", "数据文件输出目录（默认当前目录）")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	// assetsFS 在 embed.go 中声明
	embedded.Init(assetsFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:   *verbose,
		ReportDir: *reportDir,
	})
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}

	ebiten.SetWindowSize(gameApp.Layout(0, 0))
	ebiten.SetWindowTitle("反应训练 - Reflex Trainer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// RunGame 返回后（Escape 退出或窗口被关闭）确保会话数据落盘。
	// SaveOnExit 是幂等的，Escape 路径已经保存过时这里什么都不做。
	err = ebiten.RunGame(gameApp)
	if scene := gameApp.GetSceneManager().GetCurrentScene(); scene != nil {
		if saveable, ok := scene.(game.Saveable); ok {
			if !saveable.SaveOnExit() {
				log.Printf("[Main] SaveOnExit reported errors")
			}
		}
	}
	if err != nil {
		log.Fatal(err)
	}
}
