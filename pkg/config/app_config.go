package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/vslider/pkg/embedded"
	"github.com/gonewx/vslider/pkg/slider"
)

// DefaultAppConfigPath 内置演示配置路径（位于嵌入的 data/ 目录）
const DefaultAppConfigPath = "data/sliders.yaml"

// 宿主共用的标签参数
const (
	// LabelHeight 滑动条下方为标签预留的高度（像素）
	LabelHeight = 36
	// DefaultLabelFormat 标签默认格式，参数为百分比
	DefaultLabelFormat = "Progress: %.1f%%"
)

// AppConfig 演示程序配置
type AppConfig struct {
	Window WindowConfig `yaml:"window"`

	// Density dp 到像素的比例；0 表示 1（ebiten 的逻辑像素已经是 dp）
	Density float64 `yaml:"density"`

	// Theme 语义颜色角色
	Theme Theme `yaml:"theme"`

	// Sliders 需要创建的滑动条，按顺序决定焦点切换顺序
	Sliders []SliderConfig `yaml:"sliders"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// PaddingConfig 内边距配置（像素）
type PaddingConfig struct {
	Left   int `yaml:"left"`
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
}

// SliderConfig 单个滑动条配置
type SliderConfig struct {
	ID    string `yaml:"id"`    // 唯一标识，同时作为进度持久化的键
	Label string `yaml:"label"` // 显示在滑动条下方的标签

	// 位置（屏幕坐标，像素）
	X int `yaml:"x"`
	Y int `yaml:"y"`

	// Width 宽度约束：0 表示不限制（使用内容宽度），否则为精确宽度
	Width int `yaml:"width"`
	// MinWidth 建议最小宽度
	MinWidth int `yaml:"minWidth"`
	// Height 高度：0 表示由窗口高度减去 Y 和底部边距决定
	Height int `yaml:"height"`

	Padding    PaddingConfig `yaml:"padding"`
	Progress   float64       `yaml:"progress"` // 初始进度（存档中有值时被覆盖）
	Enabled    *bool         `yaml:"enabled"`  // 缺省为启用
	Attributes Attributes    `yaml:"attributes"`
}

// IsEnabled 返回滑动条是否启用（缺省为 true）
func (s SliderConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// NewWidget 按配置创建控件
// 样式由主题和属性解析，进度使用配置中的初始值（不通知监听器）
func (s SliderConfig) NewWidget(theme Theme, density float64) *slider.Widget {
	style := Resolve(theme, s.Attributes, density)
	log.Printf("[Config] Slider %s style: thumb=%s track=%s/%s radius=%d thickness=%d/%d",
		s.ID, FormatColor(style.ThumbColor), FormatColor(style.TrackForegroundColor), FormatColor(style.TrackBackgroundColor),
		style.ThumbRadius, style.TrackForegroundThickness, style.TrackBackgroundThickness)

	w := slider.New(style)
	w.SetPadding(slider.Padding{
		Left:   s.Padding.Left,
		Top:    s.Padding.Top,
		Right:  s.Padding.Right,
		Bottom: s.Padding.Bottom,
	})
	w.SetEnabled(s.IsEnabled())
	w.SetProgress(s.Progress)
	return w
}

// Find 按 ID 查找滑动条配置
func (c *AppConfig) Find(id string) (SliderConfig, bool) {
	for _, s := range c.Sliders {
		if s.ID == id {
			return s, true
		}
	}
	return SliderConfig{}, false
}

// LoadAppConfig 从 YAML 文件加载演示配置
//
// 参数：
//   - path: 配置文件路径
//
// 返回：
//   - *AppConfig: 解析并补全默认值后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadAppConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read slider config file %s: %w", path, err)
	}
	cfg, err := ParseAppConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadAppConfigOrDefault 加载演示配置
//
// path 非空时从文件加载；否则读取嵌入的 data/sliders.yaml；
// 嵌入资源不可用时（例如命令行工具）返回只包含默认值的配置。
func LoadAppConfigOrDefault(path string) (*AppConfig, error) {
	if path != "" {
		return LoadAppConfig(path)
	}
	if embedded.Exists(DefaultAppConfigPath) {
		data, err := embedded.ReadFile(DefaultAppConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded slider config: %w", err)
		}
		return ParseAppConfig(data)
	}
	return ParseAppConfig(nil)
}

// ParseAppConfig 解析 YAML 格式的演示配置
func ParseAppConfig(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse slider config YAML: %w", err)
	}

	applyAppDefaults(&cfg)

	if err := validateAppConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid slider config: %w", err)
	}
	return &cfg, nil
}

// applyAppDefaults 为缺失的可选字段设置默认值
func applyAppDefaults(cfg *AppConfig) {
	if cfg.Window.Title == "" {
		cfg.Window.Title = "Vertical Slider"
	}
	if cfg.Window.Width == 0 {
		cfg.Window.Width = 480
	}
	if cfg.Window.Height == 0 {
		cfg.Window.Height = 360
	}
	// 没有配置任何滑动条时提供一个默认滑动条
	if len(cfg.Sliders) == 0 {
		cfg.Sliders = []SliderConfig{{ID: "default", X: 40, Y: 40}}
	}
	for i := range cfg.Sliders {
		if cfg.Sliders[i].Label == "" {
			cfg.Sliders[i].Label = cfg.Sliders[i].ID
		}
	}
}

// validateAppConfig 验证配置合法性
func validateAppConfig(cfg *AppConfig) error {
	if cfg.Window.Width < 0 || cfg.Window.Height < 0 {
		return fmt.Errorf("window size cannot be negative, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Density < 0 {
		return fmt.Errorf("density cannot be negative, got %v", cfg.Density)
	}

	seen := make(map[string]bool, len(cfg.Sliders))
	for i, s := range cfg.Sliders {
		if s.ID == "" {
			return fmt.Errorf("slider %d: id is required", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("slider %d: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true

		if s.Width < 0 || s.MinWidth < 0 || s.Height < 0 {
			return fmt.Errorf("slider %q: sizes cannot be negative", s.ID)
		}
		p := s.Padding
		if p.Left < 0 || p.Top < 0 || p.Right < 0 || p.Bottom < 0 {
			return fmt.Errorf("slider %q: padding cannot be negative", s.ID)
		}
	}
	return nil
}
