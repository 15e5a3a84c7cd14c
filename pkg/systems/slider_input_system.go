package systems

import (
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/vslider/pkg/components"
	"github.com/gonewx/vslider/pkg/ecs"
	"github.com/gonewx/vslider/pkg/slider"
	"github.com/gonewx/vslider/pkg/utils"
)

// 按键重复参数（帧数，按 60 TPS 计算）
const (
	keyRepeatDelay    = 30 // 按住 0.5 秒后开始重复
	keyRepeatInterval = 4  // 之后每 4 帧重复一次
)

// trackedKeys 输入系统关心的按键
var trackedKeys = []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyTab}

// SliderPointerInput 滑动条系统指针输入接口
// 用于依赖注入，支持测试时 mock
type SliderPointerInput interface {
	// PointerState 返回指针是否按下以及屏幕坐标，每帧调用一次
	PointerState() (pressed bool, x, y int)
}

// SliderKeyInput 滑动条系统键盘输入接口
type SliderKeyInput interface {
	IsKeyPressed(key ebiten.Key) bool
}

// ebitenSliderInput Ebitengine 默认实现（鼠标 + 触摸 + 键盘）
type ebitenSliderInput struct{}

func (ebitenSliderInput) PointerState() (bool, int, int) {
	return utils.GetPointerState()
}

func (ebitenSliderInput) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

// SliderInputSystem 滑动条交互系统
//
// 职责：
//   - 指针按下时对滑动条做命中检测，命中且控件处理了事件则捕获指针
//   - 捕获期间的移动和释放都发送给被捕获的控件（即使指针已经离开控件区域）
//   - 方向键发送给拥有焦点的控件；控件未消费时执行默认处理（焦点切换）
//   - Tab / Shift+Tab 在启用的滑动条之间循环切换焦点
type SliderInputSystem struct {
	entityManager *ecs.EntityManager
	pointerInput  SliderPointerInput
	keyInput      SliderKeyInput

	wasPressed   bool
	lastX, lastY int
	captured     ecs.EntityID

	keyFrames map[ebiten.Key]int
}

// NewSliderInputSystem 创建使用 Ebitengine 输入的滑动条交互系统
func NewSliderInputSystem(em *ecs.EntityManager) *SliderInputSystem {
	input := ebitenSliderInput{}
	return NewSliderInputSystemWithInput(em, input, input)
}

// NewSliderInputSystemWithInput 创建带自定义输入的滑动条交互系统（用于测试）
func NewSliderInputSystemWithInput(em *ecs.EntityManager, pointer SliderPointerInput, keys SliderKeyInput) *SliderInputSystem {
	return &SliderInputSystem{
		entityManager: em,
		pointerInput:  pointer,
		keyInput:      keys,
		keyFrames:     make(map[ebiten.Key]int, len(trackedKeys)),
	}
}

// Update 处理本帧的指针和键盘输入
func (s *SliderInputSystem) Update(deltaTime float64) {
	s.updatePointer()
	s.updateKeys()
}

// CapturedEntity 返回当前捕获指针的实体（0 表示没有）
func (s *SliderInputSystem) CapturedEntity() ecs.EntityID {
	return s.captured
}

// updatePointer 把指针状态转换为按下/移动/释放事件
func (s *SliderInputSystem) updatePointer() {
	pressed, x, y := s.pointerInput.PointerState()
	s.updateHover(x, y)

	switch {
	case pressed && !s.wasPressed:
		s.pointerDown(x, y)
	case pressed && s.wasPressed:
		if s.captured != 0 && (x != s.lastX || y != s.lastY) {
			s.dispatchCaptured(slider.PointerMove, y)
		}
	case !pressed && s.wasPressed:
		if s.captured != 0 {
			s.dispatchCaptured(slider.PointerRelease, y)
			s.releaseCapture()
		}
	}

	s.wasPressed = pressed
	s.lastX, s.lastY = x, y
}

// pointerDown 命中检测，后绘制的滑动条优先
func (s *SliderInputSystem) pointerDown(x, y int) {
	entities := ecs.GetEntitiesWith2[*components.SliderComponent, *components.PositionComponent](s.entityManager)

	for i := len(entities) - 1; i >= 0; i-- {
		id := entities[i]
		comp, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if comp == nil || pos == nil || comp.Widget == nil {
			continue
		}
		if !containsPoint(comp.Widget, pos, x, y) {
			continue
		}

		localY := float64(y) - pos.Y
		if !comp.Widget.HandlePointer(slider.PointerEvent{Action: slider.PointerPress, Y: localY}) {
			// 禁用的控件不处理事件，继续检查下面的控件
			continue
		}

		s.captured = id
		comp.IsDragging = true
		s.SetFocus(id)
		log.Printf("[SliderInputSystem] Slider %s captured pointer (progress=%.3f)", comp.ID, comp.Widget.Progress())
		return
	}
}

// dispatchCaptured 将事件发送给捕获指针的控件
func (s *SliderInputSystem) dispatchCaptured(action slider.PointerAction, y int) {
	comp, ok1 := ecs.GetComponent[*components.SliderComponent](s.entityManager, s.captured)
	pos, ok2 := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.captured)
	if !ok1 || !ok2 || comp.Widget == nil {
		// 捕获的实体已被销毁
		s.captured = 0
		return
	}

	comp.Widget.HandlePointer(slider.PointerEvent{Action: action, Y: float64(y) - pos.Y})
}

func (s *SliderInputSystem) releaseCapture() {
	if comp, ok := ecs.GetComponent[*components.SliderComponent](s.entityManager, s.captured); ok {
		comp.IsDragging = false
		log.Printf("[SliderInputSystem] Slider %s released pointer (progress=%.3f)", comp.ID, comp.Widget.Progress())
	}
	s.captured = 0
}

// updateHover 更新悬停状态，状态变化时请求重绘悬停框
func (s *SliderInputSystem) updateHover(x, y int) {
	entities := ecs.GetEntitiesWith2[*components.SliderComponent, *components.PositionComponent](s.entityManager)
	for _, id := range entities {
		comp, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if comp.Widget == nil {
			continue
		}
		hovered := containsPoint(comp.Widget, pos, x, y)
		if hovered != comp.IsHovered {
			comp.IsHovered = hovered
			comp.Dirty = true
		}
	}
}

// containsPoint 检测屏幕坐标是否在控件区域内
func containsPoint(w *slider.Widget, pos *components.PositionComponent, x, y int) bool {
	width, height := w.Size()
	fx, fy := float64(x), float64(y)
	return fx >= pos.X && fx < pos.X+float64(width) &&
		fy >= pos.Y && fy < pos.Y+float64(height)
}

// updateKeys 处理方向键和 Tab，支持按住重复
func (s *SliderInputSystem) updateKeys() {
	for _, key := range trackedKeys {
		if !s.keyInput.IsKeyPressed(key) {
			s.keyFrames[key] = 0
			continue
		}
		s.keyFrames[key]++
		if shouldFireKey(s.keyFrames[key]) {
			s.handleKey(key)
		}
	}
}

// shouldFireKey 按下的第一帧触发，之后经过延迟按固定间隔重复
func shouldFireKey(frames int) bool {
	if frames == 1 {
		return true
	}
	return frames >= keyRepeatDelay && (frames-keyRepeatDelay)%keyRepeatInterval == 0
}

// handleKey 先交给焦点控件，未消费时执行默认的焦点切换
func (s *SliderInputSystem) handleKey(key ebiten.Key) {
	switch key {
	case ebiten.KeyArrowUp:
		if s.dispatchKey(slider.KeyUp) {
			return
		}
		s.moveFocus(-1, false)
	case ebiten.KeyArrowDown:
		if s.dispatchKey(slider.KeyDown) {
			return
		}
		s.moveFocus(1, false)
	case ebiten.KeyTab:
		if s.keyInput.IsKeyPressed(ebiten.KeyShift) {
			s.moveFocus(-1, true)
		} else {
			s.moveFocus(1, true)
		}
	}
}

// dispatchKey 将按键发送给焦点控件，返回是否被消费
func (s *SliderInputSystem) dispatchKey(key slider.Key) bool {
	focused := s.FocusedEntity()
	if focused == 0 {
		return false
	}
	comp, ok := ecs.GetComponent[*components.SliderComponent](s.entityManager, focused)
	if !ok || comp.Widget == nil {
		return false
	}
	return comp.Widget.HandleKey(key)
}

// focusOrder 返回可获得焦点的实体（启用的滑动条），按 Order、ID 排序
func (s *SliderInputSystem) focusOrder() []ecs.EntityID {
	entities := ecs.GetEntitiesWith2[*components.SliderComponent, *components.FocusComponent](s.entityManager)

	result := make([]ecs.EntityID, 0, len(entities))
	for _, id := range entities {
		comp, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, id)
		if comp.Widget != nil && comp.Widget.Enabled() {
			result = append(result, id)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		fi, _ := ecs.GetComponent[*components.FocusComponent](s.entityManager, result[i])
		fj, _ := ecs.GetComponent[*components.FocusComponent](s.entityManager, result[j])
		return fi.Order < fj.Order
	})
	return result
}

// FocusedEntity 返回当前拥有焦点的实体（0 表示没有）
func (s *SliderInputSystem) FocusedEntity() ecs.EntityID {
	for _, id := range ecs.GetEntitiesWith1[*components.FocusComponent](s.entityManager) {
		focus, _ := ecs.GetComponent[*components.FocusComponent](s.entityManager, id)
		if focus.Focused {
			return id
		}
	}
	return 0
}

// SetFocus 将焦点设置到指定实体，其他实体失去焦点
// 焦点变化的两个实体都会被标记为需要重绘
func (s *SliderInputSystem) SetFocus(target ecs.EntityID) {
	for _, id := range ecs.GetEntitiesWith1[*components.FocusComponent](s.entityManager) {
		focus, _ := ecs.GetComponent[*components.FocusComponent](s.entityManager, id)
		want := id == target
		if focus.Focused == want {
			continue
		}
		focus.Focused = want
		if comp, ok := ecs.GetComponent[*components.SliderComponent](s.entityManager, id); ok {
			comp.Dirty = true
		}
	}
}

// moveFocus 按焦点顺序移动焦点
//
// 参数：
//   - delta: -1 为上一个，1 为下一个
//   - wrap: 到达两端时是否循环
func (s *SliderInputSystem) moveFocus(delta int, wrap bool) {
	order := s.focusOrder()
	if len(order) == 0 {
		return
	}

	current := s.FocusedEntity()
	index := -1
	for i, id := range order {
		if id == current {
			index = i
			break
		}
	}

	var next int
	switch {
	case index < 0 && delta > 0:
		next = 0
	case index < 0:
		next = len(order) - 1
	default:
		next = index + delta
	}

	if next < 0 || next >= len(order) {
		if !wrap {
			return
		}
		next = (next + len(order)) % len(order)
	}

	if order[next] != current {
		s.SetFocus(order[next])
		if comp, ok := ecs.GetComponent[*components.SliderComponent](s.entityManager, order[next]); ok {
			log.Printf("[SliderInputSystem] Focus moved to slider %s", comp.ID)
		}
	}
}
