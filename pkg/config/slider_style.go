package config

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/vslider/pkg/slider"
)

// 滑动条默认几何参数（单位 dp，按屏幕密度换算为像素）
const (
	DefaultThumbRadiusDp              = 6
	DefaultTrackBackgroundThicknessDp = 4
	DefaultTrackForegroundThicknessDp = 2
)

// 主题中的语义颜色角色
const (
	RoleControlNormal    = "colorControlNormal"    // 背景轨道
	RoleControlActivated = "colorControlActivated" // 前景轨道和滑块
)

// 主题查找失败时使用的硬编码颜色
var (
	FallbackBackgroundColor = color.NRGBA{R: 0xdd, G: 0xdf, B: 0xeb, A: 0xff} // #dddfeb
	FallbackForegroundColor = color.NRGBA{R: 0x7d, G: 0xa1, B: 0xae, A: 0xff} // #7da1ae
)

// Theme 主题：语义颜色角色 -> 十六进制颜色
type Theme map[string]string

// Resolve 按角色名查找主题颜色
// 角色不存在或颜色无法解析时返回 fallback
func (t Theme) Resolve(role string, fallback color.Color) color.Color {
	hex, ok := t[role]
	if !ok || hex == "" {
		return fallback
	}
	c, err := ParseColor(hex)
	if err != nil {
		log.Printf("[Config] Warning: theme role %s: %v (using fallback)", role, err)
		return fallback
	}
	return c
}

// Dimension 尺寸属性值
// 支持 "12dp"、"12dip"、"12px" 或不带单位的数字（像素）
type Dimension string

// UnmarshalYAML 接受任意标量（数字或字符串）
func (d *Dimension) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: dimension must be a scalar", value.Line)
	}
	*d = Dimension(value.Value)
	return nil
}

// Attributes 滑动条属性覆盖
// 空字符串表示未设置，保留解析出的默认值
type Attributes struct {
	ThumbColor       string    `yaml:"thumb_color"`
	TrackFgColor     string    `yaml:"track_fg_color"`
	TrackBgColor     string    `yaml:"track_bg_color"`
	ThumbRadius      Dimension `yaml:"thumb_radius"`
	TrackFgThickness Dimension `yaml:"track_fg_thickness"`
	TrackBgThickness Dimension `yaml:"track_bg_thickness"`
}

// ParseColor 解析十六进制颜色
// 支持 #rgb、#rrggbb 以及带透明度的 #aarrggbb
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	alpha := uint8(0xff)

	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid alpha in color %q: %w", s, err)
		}
		alpha = uint8(a)
		s = "#" + s[3:]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// FormatColor 将颜色格式化为 #rrggbb（用于日志和调试输出）
func FormatColor(c color.Color) string {
	if c == nil {
		return ""
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		// 完全透明
		return "#00000000"
	}
	return cf.Hex()
}

// DpToPx 将 dp 换算为像素（截断取整）
func DpToPx(dp, density float64) int {
	return int(dp * density)
}

// ParseDimension 解析尺寸属性为像素
//
// dp 值按密度换算后四舍五入，非零值至少为 1 像素；px 和无单位数字直接取整。
func ParseDimension(d Dimension, density float64) (int, error) {
	s := strings.TrimSpace(strings.ToLower(string(d)))
	if s == "" {
		return 0, fmt.Errorf("empty dimension")
	}

	scale := 1.0
	isDp := false
	switch {
	case strings.HasSuffix(s, "dip"):
		s, scale, isDp = strings.TrimSuffix(s, "dip"), density, true
	case strings.HasSuffix(s, "dp"):
		s, scale, isDp = strings.TrimSuffix(s, "dp"), density, true
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid dimension %q: %w", string(d), err)
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid dimension %q: must be a finite non-negative value", string(d))
	}

	px := v * scale
	if !isDp {
		return int(px), nil
	}
	rounded := int(px + 0.5)
	if rounded == 0 && px > 0 {
		rounded = 1
	}
	return rounded, nil
}

// Resolve 解析滑动条最终样式
//
// 颜色优先级：属性覆盖 > 主题角色 > 硬编码默认值。
// 尺寸默认值按 density 从 dp 换算，属性中设置的值覆盖默认值。
// 无法解析的属性值记录警告后保留默认值，不会导致失败。
//
// 参数：
//   - theme: 主题，可为 nil
//   - attrs: 属性覆盖
//   - density: 屏幕密度（dp 到像素的比例），不大于 0 时按 1 处理
func Resolve(theme Theme, attrs Attributes, density float64) slider.Style {
	if density <= 0 {
		density = 1
	}

	bg := theme.Resolve(RoleControlNormal, FallbackBackgroundColor)
	fg := theme.Resolve(RoleControlActivated, FallbackForegroundColor)

	style := slider.Style{
		ThumbColor:               fg,
		TrackForegroundColor:     fg,
		TrackBackgroundColor:     bg,
		ThumbRadius:              DpToPx(DefaultThumbRadiusDp, density),
		TrackForegroundThickness: DpToPx(DefaultTrackForegroundThicknessDp, density),
		TrackBackgroundThickness: DpToPx(DefaultTrackBackgroundThicknessDp, density),
	}

	overrideColor(&style.ThumbColor, "thumb_color", attrs.ThumbColor)
	overrideColor(&style.TrackForegroundColor, "track_fg_color", attrs.TrackFgColor)
	overrideColor(&style.TrackBackgroundColor, "track_bg_color", attrs.TrackBgColor)
	overrideDimension(&style.ThumbRadius, "thumb_radius", attrs.ThumbRadius, density)
	overrideDimension(&style.TrackForegroundThickness, "track_fg_thickness", attrs.TrackFgThickness, density)
	overrideDimension(&style.TrackBackgroundThickness, "track_bg_thickness", attrs.TrackBgThickness, density)

	return style
}

func overrideColor(dst *color.Color, key, value string) {
	if value == "" {
		return
	}
	c, err := ParseColor(value)
	if err != nil {
		log.Printf("[Config] Warning: attribute %s: %v (keeping default)", key, err)
		return
	}
	*dst = c
}

func overrideDimension(dst *int, key string, value Dimension, density float64) {
	if value == "" {
		return
	}
	px, err := ParseDimension(value, density)
	if err != nil {
		log.Printf("[Config] Warning: attribute %s: %v (keeping default)", key, err)
		return
	}
	*dst = px
}

// Validate 检查属性值是否都能解析
// 返回所有错误的合集；Resolve 本身从不失败，本函数供需要严格校验的工具使用
func (a Attributes) Validate() error {
	var errs []error

	for _, kv := range []struct{ key, value string }{
		{"thumb_color", a.ThumbColor},
		{"track_fg_color", a.TrackFgColor},
		{"track_bg_color", a.TrackBgColor},
	} {
		if kv.value == "" {
			continue
		}
		if _, err := ParseColor(kv.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", kv.key, err))
		}
	}

	for _, kv := range []struct {
		key   string
		value Dimension
	}{
		{"thumb_radius", a.ThumbRadius},
		{"track_fg_thickness", a.TrackFgThickness},
		{"track_bg_thickness", a.TrackBgThickness},
	} {
		if kv.value == "" {
			continue
		}
		if _, err := ParseDimension(kv.value, 1); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", kv.key, err))
		}
	}

	return errors.Join(errs...)
}
