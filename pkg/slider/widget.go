package slider

import (
	"image/color"
	"math"
)

// Widget 竖直滑动条控件
//
// 控件独占自身状态，所有进度变化都经过 SetProgressNotify 统一处理：
// 限制到 [0,1]、请求重绘、按需通知监听器。
//
// 控件不是并发安全的，所有调用必须在宿主的同一个逻辑线程（ebiten 的 Update/Draw）中进行。
type Widget struct {
	style   Style
	padding Padding

	// 宿主布局后的尺寸
	width  int
	height int

	progress float64
	enabled  bool

	// 监听器不归控件所有，传 nil 即取消订阅
	listener func(progress float64)
	// 宿主提供的重绘请求钩子
	invalidate func()
}

// New 使用已解析的样式创建控件
// 初始进度为 0，默认启用
func New(style Style) *Widget {
	return &Widget{
		style:   style.normalize(),
		enabled: true,
	}
}

// Style 返回当前样式（值拷贝）
func (w *Widget) Style() Style {
	return w.style
}

// SetThumbColor 设置滑块颜色
func (w *Widget) SetThumbColor(c color.Color) {
	w.style.ThumbColor = c
	w.style = w.style.normalize()
	w.requestRepaint()
}

// SetTrackForegroundColor 设置前景轨道颜色
func (w *Widget) SetTrackForegroundColor(c color.Color) {
	w.style.TrackForegroundColor = c
	w.style = w.style.normalize()
	w.requestRepaint()
}

// SetTrackBackgroundColor 设置背景轨道颜色
func (w *Widget) SetTrackBackgroundColor(c color.Color) {
	w.style.TrackBackgroundColor = c
	w.style = w.style.normalize()
	w.requestRepaint()
}

// SetThumbRadius 设置滑块半径（像素），负值按 0 处理
func (w *Widget) SetThumbRadius(px int) {
	w.style.ThumbRadius = nonNegative(px)
	w.requestRepaint()
}

// SetTrackForegroundThickness 设置前景轨道粗细（像素）
func (w *Widget) SetTrackForegroundThickness(px int) {
	w.style.TrackForegroundThickness = nonNegative(px)
	w.requestRepaint()
}

// SetTrackBackgroundThickness 设置背景轨道粗细（像素）
func (w *Widget) SetTrackBackgroundThickness(px int) {
	w.style.TrackBackgroundThickness = nonNegative(px)
	w.requestRepaint()
}

// SetPadding 设置内边距
func (w *Widget) SetPadding(p Padding) {
	w.padding = Padding{
		Left:   nonNegative(p.Left),
		Top:    nonNegative(p.Top),
		Right:  nonNegative(p.Right),
		Bottom: nonNegative(p.Bottom),
	}
	w.requestRepaint()
}

// Padding 返回当前内边距
func (w *Widget) Padding() Padding {
	return w.padding
}

// SetBounds 设置宿主布局后的控件尺寸
func (w *Widget) SetBounds(width, height int) {
	width, height = nonNegative(width), nonNegative(height)
	if width == w.width && height == w.height {
		return
	}
	w.width = width
	w.height = height
	w.requestRepaint()
}

// Size 返回控件当前尺寸
func (w *Widget) Size() (width, height int) {
	return w.width, w.height
}

// SetEnabled 设置控件是否响应指针输入
func (w *Widget) SetEnabled(enabled bool) {
	if w.enabled == enabled {
		return
	}
	w.enabled = enabled
	w.requestRepaint()
}

// Enabled 返回控件是否启用
func (w *Widget) Enabled() bool {
	return w.enabled
}

// SetOnProgressChangeListener 订阅进度变化
// 同一时间只支持一个监听器，传 nil 取消订阅
func (w *Widget) SetOnProgressChangeListener(listener func(progress float64)) {
	w.listener = listener
}

// SetInvalidateFunc 设置重绘请求钩子
// 钩子只应标记"需要重绘"，不能同步回调控件
func (w *Widget) SetInvalidateFunc(fn func()) {
	w.invalidate = fn
}

// Progress 返回当前进度 [0,1]
func (w *Widget) Progress() float64 {
	return w.progress
}

// SetProgress 以编程方式设置进度，不通知监听器
func (w *Widget) SetProgress(progress float64) {
	w.SetProgressNotify(progress, false)
}

// SetProgressNotify 设置进度
//
// 参数：
//   - progress: 目标进度，会被限制到 [0,1]；NaN 按 0 处理
//   - notify: 为 true 时用限制后的值调用监听器（如果已订阅）
func (w *Widget) SetProgressNotify(progress float64, notify bool) {
	w.progress = clampProgress(progress)
	w.requestRepaint()
	if notify && w.listener != nil {
		w.listener(w.progress)
	}
}

func (w *Widget) requestRepaint() {
	if w.invalidate != nil {
		w.invalidate()
	}
}

// clampProgress 将进度限制在 0.0 ~ 1.0 范围内
func clampProgress(v float64) float64 {
	if math.IsNaN(v) || v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
