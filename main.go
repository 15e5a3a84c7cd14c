// Package main 竖直滑动条演示程序
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--config <path>   演示配置文件（默认使用内置的 data/sliders.yaml）
//	--density <n>     覆盖 dp 缩放比例
//	--no-save         不读写存档
//	--verbose         输出详细日志
//
// Controls:
//
//	鼠标/触摸    拖动滑块
//	上/下方向键  调整焦点滑动条的进度，到达边界后切换焦点
//	Tab          切换焦点（Shift+Tab 反向）
//	F11          切换全屏
package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/vslider/pkg/app"
	"github.com/gonewx/vslider/pkg/embedded"
)

var (
	configFlag  = flag.String("config", "", "Slider config file (default: embedded data/sliders.yaml)")
	densityFlag = flag.Float64("density", 0, "Override dp to pixel density (0 = config value or 1)")
	noSaveFlag  = flag.Bool("no-save", false, "Do not load or save slider progress")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:        *verboseFlag,
		ConfigPath:     *configFlag,
		Density:        *densityFlag,
		DisableStorage: *noSaveFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	window := gameApp.WindowConfig()
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(gameApp.Settings().GetSettings().Fullscreen)
	// 只在控件请求重绘时重新绘制，保留上一帧的画面
	ebiten.SetScreenClearedEveryFrame(false)

	runErr := ebiten.RunGame(gameApp)
	if err := gameApp.Close(); err != nil {
		log.Printf("[Main] Failed to save settings: %v", err)
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		log.Fatal(runErr)
	}
}
