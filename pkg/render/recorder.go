package render

import (
	"image/color"

	"github.com/gonewx/vslider/pkg/slider"
)

// Op 一次绘制调用
type Op struct {
	Kind   string // "roundrect" 或 "circle"
	Rect   slider.RoundRect
	Circle slider.Circle
	Color  color.Color
}

// Recorder 记录绘制调用而不实际绘制
type Recorder struct {
	Ops []Op
}

// FillRoundRect 记录圆角矩形
func (r *Recorder) FillRoundRect(rect slider.RoundRect, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "roundrect", Rect: rect, Color: c})
}

// FillCircle 记录圆
func (r *Recorder) FillCircle(circle slider.Circle, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "circle", Circle: circle, Color: c})
}

// Reset 清空记录
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
