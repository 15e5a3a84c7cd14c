package slider

// MeasureMode 宿主给出的尺寸约束类型
type MeasureMode int

const (
	// Unspecified 宿主不限制尺寸
	Unspecified MeasureMode = iota
	// AtMost 宿主给出上限
	AtMost
	// Exactly 宿主指定精确尺寸
	Exactly
)

// MeasureSpec 单个维度的尺寸约束
type MeasureSpec struct {
	Mode MeasureMode
	Size int
}

// ContentWidth 返回控件期望的内容宽度：左右内边距加滑块直径
func (w *Widget) ContentWidth() int {
	return w.padding.Left + 2*w.style.ThumbRadius + w.padding.Right
}

// Measure 测量控件尺寸
//
// 宽度：Exactly 时直接使用宿主给定值，否则取内容宽度和建议最小宽度中的较大者。
// 高度完全由宿主决定：Unspecified 时使用建议最小高度，否则使用宿主给定值。
//
// 纯函数，不修改控件状态。
func (w *Widget) Measure(widthSpec, heightSpec MeasureSpec, suggestedMinWidth, suggestedMinHeight int) (width, height int) {
	width = widthSpec.Size
	if widthSpec.Mode != Exactly {
		width = max(w.ContentWidth(), suggestedMinWidth)
	}

	height = heightSpec.Size
	if heightSpec.Mode == Unspecified {
		height = suggestedMinHeight
	}
	return width, height
}

// HostSpecs 生成宿主布局常用的测量约束
//
// exactWidth、exactHeight 大于 0 时对应维度为 Exactly；
// 否则宽度为 Unspecified（按内容宽度），高度为 AtMost(availableHeight)，负的可用高度按 0 处理。
func HostSpecs(exactWidth, exactHeight, availableHeight int) (width, height MeasureSpec) {
	width = MeasureSpec{Mode: Unspecified}
	if exactWidth > 0 {
		width = MeasureSpec{Mode: Exactly, Size: exactWidth}
	}

	height = MeasureSpec{Mode: AtMost, Size: max(0, availableHeight)}
	if exactHeight > 0 {
		height = MeasureSpec{Mode: Exactly, Size: exactHeight}
	}
	return width, height
}
