package systems

import (
	"image/color"

	"github.com/gonewx/vslider/pkg/components"
	"github.com/gonewx/vslider/pkg/ecs"
	"github.com/gonewx/vslider/pkg/slider"
	"github.com/hajimehoshi/ebiten/v2"
)

// testSliderStyle 测试用样式（滑块半径 10）
func testSliderStyle() slider.Style {
	return slider.Style{
		ThumbColor:               color.White,
		TrackForegroundColor:     color.White,
		TrackBackgroundColor:     color.Gray{Y: 0x80},
		ThumbRadius:              10,
		TrackForegroundThickness: 2,
		TrackBackgroundThickness: 4,
	}
}

// createTestSlider 创建一个已设置尺寸的滑动条实体
// 可交互高度 = height - 20
func createTestSlider(em *ecs.EntityManager, id string, x, y float64, width, height, order int) ecs.EntityID {
	entity := em.CreateEntity()
	widget := slider.New(testSliderStyle())
	widget.SetBounds(width, height)

	comp := &components.SliderComponent{ID: id, Widget: widget}
	widget.SetInvalidateFunc(func() { comp.Dirty = true })

	ecs.AddComponent(em, entity, comp)
	ecs.AddComponent(em, entity, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entity, &components.FocusComponent{Order: order})
	return entity
}

// getTestSlider 获取实体上的滑动条组件
func getTestSlider(em *ecs.EntityManager, entity ecs.EntityID) *components.SliderComponent {
	comp, _ := ecs.GetComponent[*components.SliderComponent](em, entity)
	return comp
}

// mockSliderPointerInput 用于测试的 mock 指针输入
type mockSliderPointerInput struct {
	pressed bool
	x, y    int
}

func (m *mockSliderPointerInput) PointerState() (bool, int, int) {
	return m.pressed, m.x, m.y
}

// mockSliderKeyInput 用于测试的 mock 键盘输入
type mockSliderKeyInput struct {
	pressed map[ebiten.Key]bool
}

func newMockSliderKeyInput() *mockSliderKeyInput {
	return &mockSliderKeyInput{pressed: make(map[ebiten.Key]bool)}
}

func (m *mockSliderKeyInput) IsKeyPressed(key ebiten.Key) bool {
	return m.pressed[key]
}

// tap 按下一帧再松开一帧
func (m *mockSliderKeyInput) tap(s *SliderInputSystem, key ebiten.Key) {
	m.pressed[key] = true
	s.Update(1.0 / 60)
	m.pressed[key] = false
	s.Update(1.0 / 60)
}
