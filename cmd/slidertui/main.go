// Package main 在终端中运行竖直滑动条
//
// 控件通过 gogpu/gg 光栅化，再用 lipgloss 以上半块字符输出，
// 每个字符单元显示纵向两个像素。
//
// Usage:
//
//	go run ./cmd/slidertui [flags]
//
// Flags:
//
//	--config <path>   演示配置文件（默认使用内置配置的默认值）
//	--id <id>         使用的滑动条（默认第一个）
//	--density <n>     dp 缩放比例（默认 1）
//	--log <path>      将日志写入文件
//
// Controls:
//
//	↑/k ↓/j    调整进度
//	鼠标拖动   设置进度
//	q          退出
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gonewx/vslider/pkg/config"
)

var (
	configFlag  = flag.String("config", "", "Slider config file")
	idFlag      = flag.String("id", "", "Slider id (default: first slider)")
	densityFlag = flag.Float64("density", 1, "dp to pixel density")
	logFlag     = flag.String("log", "", "Write logs to this file")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "slidertui: %v\n", err)
		os.Exit(1)
	}
}

// run 运行终端程序，退出时打印最终进度
func run() error {
	if *logFlag != "" {
		f, err := tea.LogToFile(*logFlag, "slidertui")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	appConfig, err := config.LoadAppConfigOrDefault(*configFlag)
	if err != nil {
		return err
	}

	sc := appConfig.Sliders[0]
	if *idFlag != "" {
		var ok bool
		if sc, ok = appConfig.Find(*idFlag); !ok {
			return fmt.Errorf("slider %q not found", *idFlag)
		}
	}

	m := newModel(sc, sc.NewWidget(appConfig.Theme, *densityFlag))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	fmt.Printf("%s: %.3f\n", sc.ID, m.widget.Progress())
	return nil
}
