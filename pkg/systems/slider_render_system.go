package systems

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/vslider/pkg/components"
	"github.com/gonewx/vslider/pkg/config"
	"github.com/gonewx/vslider/pkg/ecs"
	"github.com/gonewx/vslider/pkg/render/ebitenrender"
	"github.com/gonewx/vslider/pkg/slider"
	"github.com/gonewx/vslider/pkg/utils"
)

// 装饰颜色
var (
	focusRingColor = color.RGBA{R: 0x80, G: 0x9f, B: 0xff, A: 0xff}
	hoverRingColor = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x80}
)

// labelOffsetY 标签相对控件底部的偏移
const labelOffsetY = 8

// CanvasFactory 根据目标图像和控件原点创建画布
// 测试中可以替换为 render.Recorder
type CanvasFactory func(dst *ebiten.Image, x, y float64) slider.Canvas

// defaultCanvasFactory 绘制到 ebiten 图像
func defaultCanvasFactory(dst *ebiten.Image, x, y float64) slider.Canvas {
	return ebitenrender.NewCanvas(dst, x, y)
}

// SliderRenderSystem 滑动条渲染系统
//
// 绘制顺序：控件（背景轨道、前景轨道、滑块）→ 焦点/悬停框 → 标签。
// 控件通过 invalidate 回调标记 Dirty，宿主根据 NeedsRedraw 决定是否重绘整帧。
type SliderRenderSystem struct {
	entityManager *ecs.EntityManager
	canvasFactory CanvasFactory
}

// NewSliderRenderSystem 创建绘制到 ebiten 图像的渲染系统
func NewSliderRenderSystem(em *ecs.EntityManager) *SliderRenderSystem {
	return NewSliderRenderSystemWithCanvas(em, defaultCanvasFactory)
}

// NewSliderRenderSystemWithCanvas 创建带自定义画布的渲染系统（用于测试）
func NewSliderRenderSystemWithCanvas(em *ecs.EntityManager, factory CanvasFactory) *SliderRenderSystem {
	if factory == nil {
		factory = defaultCanvasFactory
	}
	return &SliderRenderSystem{
		entityManager: em,
		canvasFactory: factory,
	}
}

// NeedsRedraw 是否有控件请求了重绘
func (s *SliderRenderSystem) NeedsRedraw() bool {
	for _, id := range ecs.GetEntitiesWith1[*components.SliderComponent](s.entityManager) {
		comp, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, id)
		if comp.Dirty {
			return true
		}
	}
	return false
}

// MarkAllDirty 标记所有控件需要重绘（窗口尺寸变化等情况）
func (s *SliderRenderSystem) MarkAllDirty() {
	for _, id := range ecs.GetEntitiesWith1[*components.SliderComponent](s.entityManager) {
		comp, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, id)
		comp.Dirty = true
	}
}

// Draw 绘制所有滑动条并清除 Dirty 标记
// screen 为 nil 时只绘制控件本身（画布由工厂提供），跳过装饰和标签
func (s *SliderRenderSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.SliderComponent, *components.PositionComponent](s.entityManager)

	for _, id := range entities {
		comp, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if comp.Widget == nil {
			continue
		}

		comp.Widget.Draw(s.canvasFactory(screen, pos.X, pos.Y))
		comp.Dirty = false

		if screen == nil {
			continue
		}
		s.drawDecoration(screen, id, comp, pos)
		s.drawLabel(screen, id, comp, pos)
	}
}

// drawDecoration 绘制焦点框和悬停框
// 触摸设备上没有键盘焦点和悬停的概念，不绘制
func (s *SliderRenderSystem) drawDecoration(screen *ebiten.Image, id ecs.EntityID, comp *components.SliderComponent, pos *components.PositionComponent) {
	if utils.IsTouchDevice() {
		return
	}

	width, height := comp.Widget.Size()
	if width <= 0 || height <= 0 {
		return
	}

	x, y := float32(pos.X), float32(pos.Y)
	w, h := float32(width), float32(height)

	if focus, ok := ecs.GetComponent[*components.FocusComponent](s.entityManager, id); ok && focus.Focused {
		vector.StrokeRect(screen, x-2, y-2, w+4, h+4, 2, focusRingColor, true)
		return
	}
	if comp.IsHovered && comp.Widget.Enabled() {
		vector.StrokeRect(screen, x-1, y-1, w+2, h+2, 1, hoverRingColor, true)
	}
}

// drawLabel 在控件下方绘制标签
func (s *SliderRenderSystem) drawLabel(screen *ebiten.Image, id ecs.EntityID, comp *components.SliderComponent, pos *components.PositionComponent) {
	label, ok := ecs.GetComponent[*components.LabelComponent](s.entityManager, id)
	if !ok {
		return
	}
	_, height := comp.Widget.Size()
	ebitenutil.DebugPrintAt(screen, LabelText(label, comp.Widget.Progress()), int(pos.X), int(pos.Y)+height+labelOffsetY)
}

// LabelText 生成标签文本
// Text 非空时显示为 "Text" 加换行加进度，否则只显示进度
func LabelText(label *components.LabelComponent, progress float64) string {
	format := label.Format
	if format == "" {
		format = config.DefaultLabelFormat
	}
	value := fmt.Sprintf(format, progress*100)
	if label.Text == "" {
		return value
	}
	return label.Text + "\n" + value
}
