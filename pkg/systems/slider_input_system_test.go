package systems

import (
	"math"
	"testing"

	"github.com/gonewx/vslider/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

const epsilon = 1e-9

func newTestInputSystem(em *ecs.EntityManager) (*SliderInputSystem, *mockSliderPointerInput, *mockSliderKeyInput) {
	pointer := &mockSliderPointerInput{}
	keys := newMockSliderKeyInput()
	return NewSliderInputSystemWithInput(em, pointer, keys), pointer, keys
}

// TestSliderInputSystem_PressAndDrag 按下、拖出控件、释放
func TestSliderInputSystem_PressAndDrag(t *testing.T) {
	em := ecs.NewEntityManager()
	entity := createTestSlider(em, "music", 100, 50, 40, 200, 0)
	system, pointer, _ := newTestInputSystem(em)
	comp := getTestSlider(em, entity)

	var notified []float64
	comp.Widget.SetOnProgressChangeListener(func(p float64) { notified = append(notified, p) })

	// 局部 Y = 90，可交互高度 180
	pointer.pressed, pointer.x, pointer.y = true, 110, 140
	system.Update(1.0 / 60)

	if system.CapturedEntity() != entity {
		t.Fatalf("Expected entity %d captured, got %d", entity, system.CapturedEntity())
	}
	if !comp.IsDragging {
		t.Error("Expected IsDragging after press")
	}
	if math.Abs(comp.Widget.Progress()-0.5) > epsilon {
		t.Errorf("Expected progress 0.5, got %v", comp.Widget.Progress())
	}
	if system.FocusedEntity() != entity {
		t.Error("Press should focus the slider")
	}

	// 指针不动时不产生移动事件
	system.Update(1.0 / 60)
	if len(notified) != 1 {
		t.Errorf("Expected 1 notification without movement, got %d", len(notified))
	}

	// 拖到控件下方很远，捕获期间仍然处理，进度夹紧到 0
	pointer.x, pointer.y = 500, 600
	system.Update(1.0 / 60)
	if comp.Widget.Progress() != 0 {
		t.Errorf("Expected progress clamped to 0, got %v", comp.Widget.Progress())
	}

	// 拖到控件上方，夹紧到 1
	pointer.y = 0
	system.Update(1.0 / 60)
	if comp.Widget.Progress() != 1 {
		t.Errorf("Expected progress clamped to 1, got %v", comp.Widget.Progress())
	}

	// 释放不改变进度
	pointer.pressed = false
	pointer.y = 140
	system.Update(1.0 / 60)
	if system.CapturedEntity() != 0 {
		t.Error("Capture should end on release")
	}
	if comp.IsDragging {
		t.Error("IsDragging should be cleared on release")
	}
	if comp.Widget.Progress() != 1 {
		t.Errorf("Release should not change progress, got %v", comp.Widget.Progress())
	}
	if len(notified) != 3 {
		t.Errorf("Expected 3 notifications, got %d: %v", len(notified), notified)
	}
}

// TestSliderInputSystem_PressOutside 在控件外按下不捕获
func TestSliderInputSystem_PressOutside(t *testing.T) {
	em := ecs.NewEntityManager()
	entity := createTestSlider(em, "music", 100, 50, 40, 200, 0)
	system, pointer, _ := newTestInputSystem(em)

	pointer.pressed, pointer.x, pointer.y = true, 10, 10
	system.Update(1.0 / 60)

	// 按下后移入控件也不会开始拖动
	pointer.x, pointer.y = 110, 140
	system.Update(1.0 / 60)

	if system.CapturedEntity() != 0 {
		t.Error("Expected no capture")
	}
	if p := getTestSlider(em, entity).Widget.Progress(); p != 0 {
		t.Errorf("Expected progress unchanged, got %v", p)
	}
}

// TestSliderInputSystem_Disabled 禁用的控件不响应指针
func TestSliderInputSystem_Disabled(t *testing.T) {
	em := ecs.NewEntityManager()
	entity := createTestSlider(em, "music", 100, 50, 40, 200, 0)
	comp := getTestSlider(em, entity)
	comp.Widget.SetProgress(0.3)
	comp.Widget.SetEnabled(false)
	system, pointer, _ := newTestInputSystem(em)

	pointer.pressed, pointer.x, pointer.y = true, 110, 140
	system.Update(1.0 / 60)

	if system.CapturedEntity() != 0 {
		t.Error("Disabled slider should not capture pointer")
	}
	if comp.Widget.Progress() != 0.3 {
		t.Errorf("Expected progress 0.3, got %v", comp.Widget.Progress())
	}
	if system.FocusedEntity() != 0 {
		t.Error("Disabled slider should not gain focus")
	}
}

// TestSliderInputSystem_Overlap 重叠时后创建的控件优先
func TestSliderInputSystem_Overlap(t *testing.T) {
	em := ecs.NewEntityManager()
	below := createTestSlider(em, "below", 100, 50, 40, 200, 0)
	above := createTestSlider(em, "above", 110, 50, 40, 200, 1)
	system, pointer, _ := newTestInputSystem(em)

	pointer.pressed, pointer.x, pointer.y = true, 120, 140
	system.Update(1.0 / 60)

	if system.CapturedEntity() != above {
		t.Errorf("Expected top slider %d captured, got %d", above, system.CapturedEntity())
	}
	if getTestSlider(em, below).Widget.Progress() != 0 {
		t.Error("Lower slider should not change")
	}

	// 上面的控件禁用后，事件落到下面的控件
	pointer.pressed = false
	system.Update(1.0 / 60)
	getTestSlider(em, above).Widget.SetEnabled(false)

	pointer.pressed = true
	system.Update(1.0 / 60)
	if system.CapturedEntity() != below {
		t.Errorf("Expected lower slider %d captured, got %d", below, system.CapturedEntity())
	}
}

// TestSliderInputSystem_DestroyedWhileCaptured 捕获的实体被销毁
func TestSliderInputSystem_DestroyedWhileCaptured(t *testing.T) {
	em := ecs.NewEntityManager()
	entity := createTestSlider(em, "music", 100, 50, 40, 200, 0)
	system, pointer, _ := newTestInputSystem(em)

	pointer.pressed, pointer.x, pointer.y = true, 110, 140
	system.Update(1.0 / 60)

	em.DestroyEntity(entity)
	em.RemoveMarkedEntities()

	pointer.y = 100
	system.Update(1.0 / 60)
	if system.CapturedEntity() != 0 {
		t.Error("Capture should be dropped for destroyed entity")
	}
}

// TestSliderInputSystem_Hover 悬停状态
func TestSliderInputSystem_Hover(t *testing.T) {
	em := ecs.NewEntityManager()
	entity := createTestSlider(em, "music", 100, 50, 40, 200, 0)
	system, pointer, _ := newTestInputSystem(em)
	comp := getTestSlider(em, entity)

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"左上角", 100, 50, true},
		{"内部", 120, 150, true},
		{"右边界外", 140, 150, false},
		{"下边界外", 120, 250, false},
		{"左侧", 99, 150, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pointer.x, pointer.y = tt.x, tt.y
			system.Update(1.0 / 60)
			if comp.IsHovered != tt.want {
				t.Errorf("IsHovered at (%d,%d) = %v, want %v", tt.x, tt.y, comp.IsHovered, tt.want)
			}
		})
	}
}

// TestSliderInputSystem_ArrowKeys 方向键调整焦点控件的进度
func TestSliderInputSystem_ArrowKeys(t *testing.T) {
	em := ecs.NewEntityManager()
	entity := createTestSlider(em, "music", 100, 50, 40, 200, 0)
	system, _, keys := newTestInputSystem(em)
	comp := getTestSlider(em, entity)
	comp.Widget.SetProgress(0.5)
	system.SetFocus(entity)

	keys.tap(system, ebiten.KeyArrowUp)
	if math.Abs(comp.Widget.Progress()-0.52) > epsilon {
		t.Errorf("Expected 0.52 after up, got %v", comp.Widget.Progress())
	}

	keys.tap(system, ebiten.KeyArrowDown)
	keys.tap(system, ebiten.KeyArrowDown)
	if math.Abs(comp.Widget.Progress()-0.48) > epsilon {
		t.Errorf("Expected 0.48 after two downs, got %v", comp.Widget.Progress())
	}
}

// TestSliderInputSystem_KeyRepeat 按住方向键重复触发
func TestSliderInputSystem_KeyRepeat(t *testing.T) {
	em := ecs.NewEntityManager()
	entity := createTestSlider(em, "music", 100, 50, 40, 200, 0)
	system, _, keys := newTestInputSystem(em)
	comp := getTestSlider(em, entity)
	comp.Widget.SetProgress(0.5)
	system.SetFocus(entity)

	count := 0
	comp.Widget.SetOnProgressChangeListener(func(float64) { count++ })

	keys.pressed[ebiten.KeyArrowUp] = true
	for i := 0; i < keyRepeatDelay+keyRepeatInterval; i++ {
		system.Update(1.0 / 60)
	}

	// 第 1 帧、第 30 帧、第 34 帧
	if count != 3 {
		t.Errorf("Expected 3 key events, got %d", count)
	}
}

func TestShouldFireKey(t *testing.T) {
	tests := []struct {
		frames int
		want   bool
	}{
		{1, true},
		{2, false},
		{keyRepeatDelay - 1, false},
		{keyRepeatDelay, true},
		{keyRepeatDelay + 1, false},
		{keyRepeatDelay + keyRepeatInterval, true},
	}

	for _, tt := range tests {
		if got := shouldFireKey(tt.frames); got != tt.want {
			t.Errorf("shouldFireKey(%d) = %v, want %v", tt.frames, got, tt.want)
		}
	}
}

// TestSliderInputSystem_ArrowKeyFocusFallback 控件未消费方向键时切换焦点
func TestSliderInputSystem_ArrowKeyFocusFallback(t *testing.T) {
	em := ecs.NewEntityManager()
	first := createTestSlider(em, "first", 0, 0, 40, 200, 0)
	second := createTestSlider(em, "second", 50, 0, 40, 200, 1)
	system, _, keys := newTestInputSystem(em)

	// 没有焦点时向下键聚焦第一个
	keys.tap(system, ebiten.KeyArrowDown)
	if system.FocusedEntity() != first {
		t.Fatalf("Expected first focused, got %d", system.FocusedEntity())
	}

	// 进度为 0 时向下键不被消费，焦点移到下一个
	keys.tap(system, ebiten.KeyArrowDown)
	if system.FocusedEntity() != second {
		t.Fatalf("Expected second focused, got %d", system.FocusedEntity())
	}

	// 最后一个不循环
	keys.tap(system, ebiten.KeyArrowDown)
	if system.FocusedEntity() != second {
		t.Errorf("Focus should stay on last slider, got %d", system.FocusedEntity())
	}

	// 向上键被消费，焦点不变
	keys.tap(system, ebiten.KeyArrowUp)
	if system.FocusedEntity() != second {
		t.Errorf("Consumed key should not move focus")
	}
	if math.Abs(getTestSlider(em, second).Widget.Progress()-0.02) > epsilon {
		t.Errorf("Expected second progress 0.02, got %v", getTestSlider(em, second).Widget.Progress())
	}
}

// TestSliderInputSystem_Tab Tab 循环切换焦点并跳过禁用的控件
func TestSliderInputSystem_Tab(t *testing.T) {
	em := ecs.NewEntityManager()
	// 创建顺序与焦点顺序不同
	c := createTestSlider(em, "c", 100, 0, 40, 200, 2)
	a := createTestSlider(em, "a", 0, 0, 40, 200, 0)
	b := createTestSlider(em, "b", 50, 0, 40, 200, 1)
	system, _, keys := newTestInputSystem(em)

	keys.tap(system, ebiten.KeyTab)
	if system.FocusedEntity() != a {
		t.Fatalf("Expected a focused, got %d", system.FocusedEntity())
	}
	keys.tap(system, ebiten.KeyTab)
	if system.FocusedEntity() != b {
		t.Fatalf("Expected b focused, got %d", system.FocusedEntity())
	}
	keys.tap(system, ebiten.KeyTab)
	keys.tap(system, ebiten.KeyTab)
	if system.FocusedEntity() != a {
		t.Fatalf("Tab should wrap to a, got %d", system.FocusedEntity())
	}

	// Shift+Tab 反向循环
	keys.pressed[ebiten.KeyShift] = true
	keys.tap(system, ebiten.KeyTab)
	if system.FocusedEntity() != c {
		t.Fatalf("Shift+Tab should wrap to c, got %d", system.FocusedEntity())
	}
	keys.pressed[ebiten.KeyShift] = false

	// 禁用 a 后从 c 切换到 b
	getTestSlider(em, a).Widget.SetEnabled(false)
	keys.tap(system, ebiten.KeyTab)
	if system.FocusedEntity() != b {
		t.Errorf("Disabled slider should be skipped, got %d", system.FocusedEntity())
	}
}

// TestSliderInputSystem_SetFocusMarksDirty 焦点变化的控件需要重绘
func TestSliderInputSystem_SetFocusMarksDirty(t *testing.T) {
	em := ecs.NewEntityManager()
	first := createTestSlider(em, "first", 0, 0, 40, 200, 0)
	second := createTestSlider(em, "second", 50, 0, 40, 200, 1)
	system, _, _ := newTestInputSystem(em)

	system.SetFocus(first)
	if !getTestSlider(em, first).Dirty {
		t.Error("Newly focused slider should be dirty")
	}
	if getTestSlider(em, second).Dirty {
		t.Error("Unaffected slider should not be dirty")
	}

	getTestSlider(em, first).Dirty = false
	system.SetFocus(second)
	if !getTestSlider(em, first).Dirty || !getTestSlider(em, second).Dirty {
		t.Error("Both sliders should be dirty after focus change")
	}
}
