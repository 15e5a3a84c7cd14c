package slider

// KeyStep 方向键每次调整的进度步长
const KeyStep = 0.02

// PointerAction 指针事件类型
type PointerAction int

const (
	// PointerOther 其他指针事件（悬停、取消等）
	PointerOther PointerAction = iota
	// PointerPress 按下
	PointerPress
	// PointerMove 按住拖动
	PointerMove
	// PointerRelease 释放
	PointerRelease
)

// String 返回事件类型名称（用于日志）
func (a PointerAction) String() string {
	switch a {
	case PointerPress:
		return "press"
	case PointerMove:
		return "move"
	case PointerRelease:
		return "release"
	default:
		return "other"
	}
}

// PointerEvent 指针事件
// Y 为相对控件顶部的纵坐标（像素）
type PointerEvent struct {
	Action PointerAction
	Y      float64
}

// Key 离散按键
type Key int

const (
	// KeyOther 控件不处理的按键
	KeyOther Key = iota
	// KeyUp 向上方向键
	KeyUp
	// KeyDown 向下方向键
	KeyDown
)

// InteractiveHeight 返回滑块可移动的纵向像素范围
// 即控件高度去掉上下内边距和两倍滑块半径
func (w *Widget) InteractiveHeight() int {
	return w.height - w.padding.Top - w.padding.Bottom - 2*w.style.ThumbRadius
}

// HandlePointer 处理指针事件
//
// 禁用状态下直接返回 false，不改变任何状态。
// 启用状态下总是返回 true（事件不再向上传递）：
//   - 按下/拖动：progress = 1 - Y/可交互高度，并通知监听器
//   - 释放/其他：不改变状态
//
// 可交互高度不大于 0 时无法换算进度，按下/拖动同样不改变状态。
func (w *Widget) HandlePointer(ev PointerEvent) bool {
	if !w.enabled {
		return false
	}

	switch ev.Action {
	case PointerPress, PointerMove:
		height := w.InteractiveHeight()
		if height <= 0 {
			return true
		}
		w.SetProgressNotify(1-ev.Y/float64(height), true)
	}
	return true
}

// HandleKey 处理方向键
//
// 向上键在进度小于 1 时增加 KeyStep，向下键在进度大于 0 时减少 KeyStep，
// 两者都会通知监听器并返回 true（已消费）。
// 其他按键以及已到达边界时的方向键返回 false，交给宿主的默认处理（例如焦点切换）。
func (w *Widget) HandleKey(k Key) bool {
	switch k {
	case KeyUp:
		if w.progress < 1.0 {
			w.SetProgressNotify(w.progress+KeyStep, true)
			return true
		}
	case KeyDown:
		if w.progress > 0.0 {
			w.SetProgressNotify(w.progress-KeyStep, true)
			return true
		}
	}
	return false
}
