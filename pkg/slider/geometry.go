package slider

import "image/color"

// RoundRect 圆角矩形（控件局部坐标）
type RoundRect struct {
	Left, Top, Right, Bottom float64
	Radius                   float64 // 圆角半径，等于轨道粗细的一半
}

// Width 返回矩形宽度
func (r RoundRect) Width() float64 { return r.Right - r.Left }

// Height 返回矩形高度
func (r RoundRect) Height() float64 { return r.Bottom - r.Top }

// Circle 圆（控件局部坐标）
type Circle struct {
	CX, CY, R float64
}

// Geometry 一帧的绘制几何，由当前状态推导，不做持久化
type Geometry struct {
	Background RoundRect
	Foreground RoundRect
	Thumb      Circle
}

// Canvas 绘制目标
// 坐标均为控件局部坐标，由宿主适配器负责平移到屏幕位置
type Canvas interface {
	FillRoundRect(r RoundRect, c color.Color)
	FillCircle(c Circle, col color.Color)
}

// trackPadding 前景轨道相对背景轨道的居中偏移
// 只有背景更粗时才有偏移，否则为 0
func (w *Widget) trackPadding() int {
	bg, fg := w.style.TrackBackgroundThickness, w.style.TrackForegroundThickness
	if bg > fg {
		return (bg - fg) / 2
	}
	return 0
}

// halfFloor 向下取整的除以 2
// 宿主给定的宽度比滑块或轨道还窄时差值为负，此时仍需向负无穷取整
func halfFloor(n int) int {
	return n >> 1
}

// trackRect 计算一条轨道的矩形
//
// 参数：
//   - thickness: 轨道粗细
//   - padding: 轨道底部的居中偏移（仅前景轨道非 0）
//   - extent: 轨道填充比例（背景为 1，前景为当前进度）
func (w *Widget) trackRect(thickness, padding int, extent float64) RoundRect {
	p := w.padding
	r := w.style.ThumbRadius

	availWidth := w.width - p.Left - p.Right
	availHeight := w.height - p.Top - p.Bottom - 2*r

	left := p.Left + halfFloor(availWidth-thickness)
	return RoundRect{
		Left:   float64(left),
		Top:    float64(p.Top+r) + (1-extent)*float64(availHeight),
		Right:  float64(left + thickness),
		Bottom: float64(w.height - p.Bottom - r - padding),
		Radius: float64(thickness) * 0.5,
	}
}

// Geometry 根据当前状态和尺寸计算绘制几何
// 结果是状态的纯函数，相同状态总是得到相同结果
func (w *Widget) Geometry() Geometry {
	p := w.padding
	r := w.style.ThumbRadius
	pad := w.trackPadding()

	availWidth := w.width - p.Left - p.Right
	thumbTravel := w.height - p.Top - p.Bottom - 2*r - 2*pad

	return Geometry{
		Background: w.trackRect(w.style.TrackBackgroundThickness, 0, 1),
		Foreground: w.trackRect(w.style.TrackForegroundThickness, pad, w.progress),
		Thumb: Circle{
			CX: float64(p.Left + halfFloor(availWidth-2*r) + r),
			CY: float64(p.Top+r) + (1-w.progress)*float64(thumbTravel) + float64(pad),
			R:  float64(r),
		},
	}
}

// Draw 按背景轨道、前景轨道、滑块的顺序绘制控件
// 滑块必须在最上层，前景轨道覆盖背景轨道
func (w *Widget) Draw(c Canvas) {
	g := w.Geometry()
	c.FillRoundRect(g.Background, w.style.TrackBackgroundColor)
	c.FillRoundRect(g.Foreground, w.style.TrackForegroundColor)
	c.FillCircle(g.Thumb, w.style.ThumbColor)
}
