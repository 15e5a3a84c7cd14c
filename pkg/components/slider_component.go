package components

import "github.com/gonewx/vslider/pkg/slider"

// SliderComponent 竖直滑动条组件
// 持有控件实例以及布局阶段需要的尺寸约束
type SliderComponent struct {
	// ID 配置中的唯一标识，用于进度持久化
	ID string

	// Widget 控件核心，所有进度变化都通过它完成
	Widget *slider.Widget

	// 尺寸约束（像素）
	ExactWidth int // 大于 0 时为精确宽度，否则按内容宽度测量
	MinWidth   int // 建议最小宽度
	Height     int // 大于 0 时为精确高度，否则由布局系统按屏幕剩余高度决定

	// 状态
	IsDragging bool // 是否正在被指针拖动
	IsHovered  bool // 指针是否悬停在控件上

	// Dirty 控件请求过重绘，渲染系统绘制后清除
	Dirty bool
}

// PositionComponent 屏幕位置组件（控件左上角）
type PositionComponent struct {
	X, Y float64
}

// FocusComponent 键盘焦点组件
// 同一时间只有一个实体的 Focused 为 true
type FocusComponent struct {
	Focused bool
	Order   int // 焦点切换顺序
}

// LabelComponent 标签组件
// Text 为空时渲染系统显示 Format 格式化后的进度
type LabelComponent struct {
	Text   string
	Format string // 例如 "Progress: %.1f%%"，参数为百分比
}
