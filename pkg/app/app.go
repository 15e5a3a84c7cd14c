// Package app 提供演示程序的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/vslider/pkg/components"
	"github.com/gonewx/vslider/pkg/config"
	"github.com/gonewx/vslider/pkg/ecs"
	"github.com/gonewx/vslider/pkg/game"
	"github.com/gonewx/vslider/pkg/systems"
	"github.com/gonewx/vslider/pkg/utils"
)

// StorageAppName gdata 存储目录名
const StorageAppName = "vslider"

// saveIntervalTicks 进度变化后最多间隔多少个 tick 写一次存档
const saveIntervalTicks = 60

// backgroundColor 窗口背景色
var backgroundColor = color.RGBA{R: 0x22, G: 0x24, B: 0x2b, A: 0xff}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 演示配置文件路径，为空则使用嵌入的 data/sliders.yaml
	ConfigPath string
	// Density 大于 0 时覆盖配置文件和设备的 dp 缩放比例
	Density float64
	// DisableStorage 不读写存档（仅内存）
	DisableStorage bool
}

// App 演示程序包装器，实现 ebiten.Game 接口
type App struct {
	appConfig *config.AppConfig
	density   float64

	entityManager *ecs.EntityManager
	settings      *game.SettingsManager

	layoutSystem *systems.SliderLayoutSystem
	inputSystem  *systems.SliderInputSystem
	renderSystem *systems.SliderRenderSystem

	screenWidth, screenHeight int
	redrawAll                 bool // 第一帧没有控件请求重绘时也要清屏
	saveCountdown             int

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化演示程序
//
// 使用嵌入配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	appConfig, err := config.LoadAppConfigOrDefault(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("演示配置加载失败: %w", err)
	}
	log.Printf("[App] Loaded %d slider(s)", len(appConfig.Sliders))

	density := cfg.Density
	if density <= 0 {
		density = ResolveDensity(appConfig.Density)
	}
	log.Printf("[App] Density: %.2f", density)

	var gdataManager *gdata.Manager
	if !cfg.DisableStorage {
		gdataManager = openStorage()
	}
	settings, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置管理器初始化失败: %w", err)
	}

	return newApp(appConfig, density, settings, systems.NewSliderInputSystem), nil
}

// ResolveDensity 决定 dp 缩放比例
//
// Layout 返回的逻辑屏幕以设备无关像素为单位，ebiten 绘制时再乘以 DeviceScaleFactor，
// 因此逻辑像素已经等于 dp，默认比例为 1。配置值大于 0 时按配置额外缩放。
func ResolveDensity(configured float64) float64 {
	if configured > 0 {
		return configured
	}
	return 1
}

// openStorage 打开 gdata 存储，失败时返回 nil（降级为仅内存）
func openStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage dir unavailable: %v", err)
		return nil
	}
	m, err := gdata.Open(gdata.Config{AppName: StorageAppName})
	if err != nil {
		log.Printf("[App] Warning: gdata open failed: %v (progress will not be saved)", err)
		return nil
	}
	return m
}

// newApp 按配置创建实体和系统
func newApp(
	appConfig *config.AppConfig,
	density float64,
	settings *game.SettingsManager,
	newInput func(*ecs.EntityManager) *systems.SliderInputSystem,
) *App {
	em := ecs.NewEntityManager()
	a := &App{
		appConfig:     appConfig,
		density:       density,
		entityManager: em,
		settings:      settings,
		screenWidth:   appConfig.Window.Width,
		screenHeight:  appConfig.Window.Height,
		redrawAll:     true,
	}

	for i, sc := range appConfig.Sliders {
		a.createSlider(sc, i)
	}

	a.layoutSystem = systems.NewSliderLayoutSystem(em, a.screenWidth, a.screenHeight)
	a.inputSystem = newInput(em)
	a.renderSystem = systems.NewSliderRenderSystem(em)
	return a
}

// createSlider 创建一个滑动条实体
// 有存档时恢复上次的进度，用户交互产生的进度变化写回设置
func (a *App) createSlider(sc config.SliderConfig, order int) ecs.EntityID {
	widget := sc.NewWidget(a.appConfig.Theme, a.density)
	if saved, ok := a.settings.Progress(sc.ID); ok {
		widget.SetProgress(saved)
		log.Printf("[App] Restored slider %s progress %.3f", sc.ID, saved)
	}

	comp := &components.SliderComponent{
		ID:         sc.ID,
		Widget:     widget,
		ExactWidth: sc.Width,
		MinWidth:   sc.MinWidth,
		Height:     sc.Height,
		Dirty:      true,
	}
	widget.SetInvalidateFunc(func() { comp.Dirty = true })

	id := sc.ID
	widget.SetOnProgressChangeListener(func(progress float64) {
		a.settings.SetProgress(id, progress)
		log.Printf("[App] Slider %s progress: %.3f", id, progress)
	})

	entity := a.entityManager.CreateEntity()
	ecs.AddComponent(a.entityManager, entity, comp)
	ecs.AddComponent(a.entityManager, entity, &components.PositionComponent{X: float64(sc.X), Y: float64(sc.Y)})
	ecs.AddComponent(a.entityManager, entity, &components.FocusComponent{Order: order})
	ecs.AddComponent(a.entityManager, entity, &components.LabelComponent{Text: sc.Label, Format: config.DefaultLabelFormat})
	return entity
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.updateWindow()

	deltaTime := 1.0 / 60.0
	a.layoutSystem.Update(deltaTime)
	a.inputSystem.Update(deltaTime)
	a.entityManager.RemoveMarkedEntities()

	a.flushSettings()
	return nil
}

// updateWindow 处理 F11 全屏切换
func (a *App) updateWindow() {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.appConfig.Window.Width, a.appConfig.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.appConfig.Window.Width, a.appConfig.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	if !inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		return
	}
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settings.SetFullscreen(ebiten.IsFullscreen())
}

// flushSettings 拖动结束后写存档，并限制写入频率
func (a *App) flushSettings() {
	if a.saveCountdown > 0 {
		a.saveCountdown--
		return
	}
	if !a.settings.IsDirty() || a.inputSystem.CapturedEntity() != 0 {
		return
	}
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
	a.saveCountdown = saveIntervalTicks
}

// Draw 绘制画面
//
// 屏幕不会每帧自动清除（见 main.go），只有控件请求重绘时才重新绘制整个画面。
func (a *App) Draw(screen *ebiten.Image) {
	if !a.redrawAll && !a.renderSystem.NeedsRedraw() {
		return
	}
	screen.Fill(backgroundColor)
	a.renderSystem.Draw(screen)
	a.redrawAll = false
}

// Layout 返回逻辑屏幕尺寸（设备无关像素）
// 使用窗口的实际尺寸，窗口大小变化时重新布局并标记所有控件重绘
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.screenWidth || outsideHeight != a.screenHeight {
		a.screenWidth, a.screenHeight = outsideWidth, outsideHeight
		a.layoutSystem.SetScreenSize(outsideWidth, outsideHeight)
		a.renderSystem.MarkAllDirty()
	}
	return a.screenWidth, a.screenHeight
}

// Close 退出前保存未写入的进度
func (a *App) Close() error {
	return a.settings.SaveIfDirty()
}

// Settings 返回设置管理器
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// EntityManager 返回实体管理器
func (a *App) EntityManager() *ecs.EntityManager {
	return a.entityManager
}

// WindowConfig 返回窗口配置
func (a *App) WindowConfig() config.WindowConfig {
	return a.appConfig.Window
}
