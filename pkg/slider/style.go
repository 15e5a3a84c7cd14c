// Package slider 实现竖直滑动条控件的核心逻辑
//
// 控件由背景轨道、前景（已填充）轨道和可拖拽的圆形滑块组成，
// 对外报告 [0,1] 范围内的归一化进度值（1 表示滑块在顶部）。
//
// 本包不依赖任何 UI 工具包：几何计算、指针/按键映射和渲染都基于纯数据，
// 宿主（ebiten、终端、离屏 PNG）通过 Canvas 接口和事件类型进行适配。
package slider

import "image/color"

// Style 滑动条的外观参数
// 在构造前由配置层一次性解析完成，之后只通过 Widget 的 setter 修改
type Style struct {
	ThumbColor           color.Color // 滑块颜色
	TrackForegroundColor color.Color // 前景轨道颜色
	TrackBackgroundColor color.Color // 背景轨道颜色

	ThumbRadius              int // 滑块半径（像素）
	TrackForegroundThickness int // 前景轨道粗细（像素）
	TrackBackgroundThickness int // 背景轨道粗细（像素）
}

// Padding 控件内边距（像素）
type Padding struct {
	Left, Top, Right, Bottom int
}

// nonNegative 尺寸值不允许为负
func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// normalize 返回尺寸字段全部非负、颜色字段非空的副本
func (s Style) normalize() Style {
	s.ThumbRadius = nonNegative(s.ThumbRadius)
	s.TrackForegroundThickness = nonNegative(s.TrackForegroundThickness)
	s.TrackBackgroundThickness = nonNegative(s.TrackBackgroundThickness)
	if s.ThumbColor == nil {
		s.ThumbColor = color.Transparent
	}
	if s.TrackForegroundColor == nil {
		s.TrackForegroundColor = color.Transparent
	}
	if s.TrackBackgroundColor == nil {
		s.TrackBackgroundColor = color.Transparent
	}
	return s
}
