//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.gonewx.vslider -o build/android/vslider.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/VSlider.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/gonewx/vslider/pkg/app"
	"github.com/gonewx/vslider/pkg/embedded"
)

func init() {
	// 初始化嵌入资源，dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	// 移动端使用内置配置，密度由设备缩放因子决定
	gameApp, err := app.NewApp(app.Config{
		Verbose: true,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
