// Package ebitenrender 将滑动条绘制到 ebiten 屏幕（桌面端、移动端）
//
// 与 render 包分开，使终端和快照工具不依赖 ebiten 的窗口后端。
package ebitenrender

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/vslider/pkg/slider"
)

// Canvas 将控件局部坐标平移到屏幕坐标后绘制到 ebiten 图像
type Canvas struct {
	Dst              *ebiten.Image
	OffsetX, OffsetY float32
}

// NewCanvas 创建以 (x, y) 为控件原点的画布
func NewCanvas(dst *ebiten.Image, x, y float64) *Canvas {
	return &Canvas{Dst: dst, OffsetX: float32(x), OffsetY: float32(y)}
}

// FillRoundRect 绘制填充圆角矩形
//
// Ebitengine 的 vector 包没有直接的圆角矩形 API，
// 这里拆成中间矩形、上下两条边带和四个角的圆来拼接。
func (c *Canvas) FillRoundRect(r slider.RoundRect, clr color.Color) {
	x := float32(r.Left) + c.OffsetX
	y := float32(r.Top) + c.OffsetY
	w := float32(r.Width())
	h := float32(r.Height())
	if w <= 0 || h <= 0 {
		return
	}

	radius := min(float32(r.Radius), w/2, h/2)
	if radius <= 0 {
		vector.DrawFilledRect(c.Dst, x, y, w, h, clr, true)
		return
	}

	// 中间（左右贯通）
	vector.DrawFilledRect(c.Dst, x, y+radius, w, h-2*radius, clr, true)
	// 上下边带
	if w > 2*radius {
		vector.DrawFilledRect(c.Dst, x+radius, y, w-2*radius, radius, clr, true)
		vector.DrawFilledRect(c.Dst, x+radius, y+h-radius, w-2*radius, radius, clr, true)
	}
	// 四个角
	vector.DrawFilledCircle(c.Dst, x+radius, y+radius, radius, clr, true)
	vector.DrawFilledCircle(c.Dst, x+w-radius, y+radius, radius, clr, true)
	vector.DrawFilledCircle(c.Dst, x+radius, y+h-radius, radius, clr, true)
	vector.DrawFilledCircle(c.Dst, x+w-radius, y+h-radius, radius, clr, true)
}

// FillCircle 绘制填充圆
func (c *Canvas) FillCircle(circle slider.Circle, clr color.Color) {
	if circle.R <= 0 {
		return
	}
	vector.DrawFilledCircle(c.Dst, float32(circle.CX)+c.OffsetX, float32(circle.CY)+c.OffsetY, float32(circle.R), clr, true)
}
