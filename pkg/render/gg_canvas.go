// Package render 提供不依赖窗口的 slider.Canvas 实现
//
//   - GGCanvas: 通过 gogpu/gg 软件光栅化（PNG 快照、终端输出）
//   - HalfBlock: 将光栅图像输出为终端半块字符
//   - Recorder: 记录绘制调用（测试用）
//
// ebiten 屏幕上的绘制见 ebitenrender 包。
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"

	"github.com/gonewx/vslider/pkg/slider"
)

// GGCanvas 通过 gogpu/gg 软件光栅化绘制
// 绘制失败不会中断后续调用，第一个错误通过 Err 返回
type GGCanvas struct {
	DC               *gg.Context
	OffsetX, OffsetY float64

	err error
}

// NewGGCanvas 创建以 (x, y) 为控件原点的画布
func NewGGCanvas(dc *gg.Context, x, y float64) *GGCanvas {
	return &GGCanvas{DC: dc, OffsetX: x, OffsetY: y}
}

// FillRoundRect 绘制填充圆角矩形
func (c *GGCanvas) FillRoundRect(r slider.RoundRect, clr color.Color) {
	w, h := r.Width(), r.Height()
	if w <= 0 || h <= 0 {
		return
	}
	radius := min(r.Radius, w/2, h/2)

	c.DC.SetColor(clr)
	c.DC.DrawRoundedRectangle(r.Left+c.OffsetX, r.Top+c.OffsetY, w, h, radius)
	c.fill("round rect")
}

// FillCircle 绘制填充圆
func (c *GGCanvas) FillCircle(circle slider.Circle, clr color.Color) {
	if circle.R <= 0 {
		return
	}
	c.DC.SetColor(clr)
	c.DC.DrawCircle(circle.CX+c.OffsetX, circle.CY+c.OffsetY, circle.R)
	c.fill("circle")
}

func (c *GGCanvas) fill(shape string) {
	if err := c.DC.Fill(); err != nil && c.err == nil {
		c.err = fmt.Errorf("failed to fill %s: %w", shape, err)
	}
}

// Err 返回第一次绘制失败的错误
func (c *GGCanvas) Err() error {
	return c.err
}

// Rasterize 将控件按当前尺寸光栅化为图像
//
// 参数：
//   - w: 控件，必须已经设置尺寸
//   - background: 背景色，nil 表示透明
//
// 返回：
//   - image.Image: 与控件尺寸相同的图像
//   - error: 控件尺寸为 0 或绘制失败时返回错误
func Rasterize(w *slider.Widget, background color.Color) (image.Image, error) {
	width, height := w.Size()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("widget has no size (%dx%d), run the layout pass first", width, height)
	}

	dc := gg.NewContext(width, height)
	defer dc.Close()

	if background != nil {
		dc.ClearWithColor(gg.FromColor(background))
	} else {
		dc.Clear()
	}

	canvas := NewGGCanvas(dc, 0, 0)
	w.Draw(canvas)
	if err := canvas.Err(); err != nil {
		return nil, err
	}

	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("failed to flush renderer: %w", err)
	}
	return dc.Image(), nil
}
