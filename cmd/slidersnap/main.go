// Package main 将配置中的滑动条渲染为 PNG 快照
//
// 布局约束与桌面端相同（slider.HostSpecs，底部预留标签高度），
// 画布换成 gogpu/gg 软件光栅化，不依赖 ebiten，也不需要窗口。
//
// Usage:
//
//	go run ./cmd/slidersnap [flags]
//
// Flags:
//
//	--config <path>     演示配置文件（默认使用内置配置的默认值）
//	--out <path>        输出 PNG 路径（默认 slider.png，"-" 表示标准输出）
//	--id <id>           只渲染指定的滑动条
//	--progress <p>      覆盖进度（0.0 ~ 1.0，负数表示使用配置值）
//	--density <n>       dp 缩放比例（默认 1）
//	--verbose           输出详细日志
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gg"

	"github.com/gonewx/vslider/pkg/config"
	"github.com/gonewx/vslider/pkg/render"
	"github.com/gonewx/vslider/pkg/slider"
)

var (
	configFlag   = flag.String("config", "", "Slider config file")
	outFlag      = flag.String("out", "slider.png", "Output PNG path ('-' for stdout)")
	idFlag       = flag.String("id", "", "Only render the slider with this id")
	progressFlag = flag.Float64("progress", -1, "Override progress (negative keeps config value)")
	densityFlag  = flag.Float64("density", 1, "dp to pixel density")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging")
)

// snapshotBackground 快照背景色
var snapshotBackground = color.RGBA{R: 0x22, G: 0x24, B: 0x2b, A: 0xff}

// snapshotOptions 快照参数
type snapshotOptions struct {
	ID       string
	Progress float64
	Density  float64
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "slidersnap: %v\n", err)
		os.Exit(1)
	}
}

// run 执行一次快照，所有资源在返回前释放
func run() error {
	if *verboseFlag {
		gg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	} else {
		log.SetOutput(io.Discard)
	}

	appConfig, err := config.LoadAppConfigOrDefault(*configFlag)
	if err != nil {
		return err
	}

	dc, err := snapshot(appConfig, snapshotOptions{
		ID:       *idFlag,
		Progress: *progressFlag,
		Density:  *densityFlag,
	})
	if err != nil {
		return err
	}
	defer dc.Close()

	if err := writePNG(dc, *outFlag); err != nil {
		return err
	}
	log.Printf("[SliderSnap] Wrote %s (%dx%d)", *outFlag, dc.Width(), dc.Height())
	return nil
}

// snapshot 按配置创建滑动条、布局并光栅化到 gg 上下文
func snapshot(appConfig *config.AppConfig, opts snapshotOptions) (*gg.Context, error) {
	sliders := appConfig.Sliders
	if opts.ID != "" {
		sc, ok := appConfig.Find(opts.ID)
		if !ok {
			return nil, fmt.Errorf("slider %q not found in config", opts.ID)
		}
		sliders = []config.SliderConfig{sc}
	}

	width, height := appConfig.Window.Width, appConfig.Window.Height
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid snapshot size %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	dc.ClearWithColor(gg.FromColor(snapshotBackground))

	for _, sc := range sliders {
		widget := layoutWidget(appConfig, sc, opts, height)
		canvas := render.NewGGCanvas(dc, float64(sc.X), float64(sc.Y))
		widget.Draw(canvas)
		if err := canvas.Err(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("slider %s: %w", sc.ID, err)
		}
	}

	if err := dc.FlushGPU(); err != nil {
		dc.Close()
		return nil, fmt.Errorf("failed to flush renderer: %w", err)
	}
	return dc, nil
}

// layoutWidget 创建控件并按画面高度执行测量
func layoutWidget(appConfig *config.AppConfig, sc config.SliderConfig, opts snapshotOptions, screenHeight int) *slider.Widget {
	widget := sc.NewWidget(appConfig.Theme, opts.Density)
	if opts.Progress >= 0 {
		widget.SetProgress(opts.Progress)
	}

	available := screenHeight - sc.Y - config.LabelHeight
	widthSpec, heightSpec := slider.HostSpecs(sc.Width, sc.Height, available)
	widget.SetBounds(widget.Measure(widthSpec, heightSpec, sc.MinWidth, 0))
	return widget
}

// writePNG 写入文件或标准输出
func writePNG(dc *gg.Context, path string) error {
	if path == "-" {
		return dc.EncodePNG(os.Stdout)
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
