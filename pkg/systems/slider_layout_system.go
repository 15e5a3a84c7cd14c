package systems

import (
	"github.com/gonewx/vslider/pkg/components"
	"github.com/gonewx/vslider/pkg/config"
	"github.com/gonewx/vslider/pkg/ecs"
	"github.com/gonewx/vslider/pkg/slider"
)

// SliderLayoutSystem 滑动条布局系统
//
// 每帧对所有滑动条执行测量并设置控件尺寸：
//   - 宽度：配置了精确宽度时使用 Exactly，否则 Unspecified（由控件按内容宽度决定）
//   - 高度：配置了精确高度时使用 Exactly，否则 AtMost（屏幕高度减去 Y 和标签高度）
//
// 尺寸不变时 SetBounds 不会触发重绘。
type SliderLayoutSystem struct {
	entityManager *ecs.EntityManager
	screenWidth   int
	screenHeight  int
}

// NewSliderLayoutSystem 创建滑动条布局系统
func NewSliderLayoutSystem(em *ecs.EntityManager, screenWidth, screenHeight int) *SliderLayoutSystem {
	return &SliderLayoutSystem{
		entityManager: em,
		screenWidth:   screenWidth,
		screenHeight:  screenHeight,
	}
}

// SetScreenSize 更新屏幕尺寸（窗口布局变化时调用）
func (s *SliderLayoutSystem) SetScreenSize(width, height int) {
	s.screenWidth = width
	s.screenHeight = height
}

// Update 执行测量和布局
func (s *SliderLayoutSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.SliderComponent, *components.PositionComponent](s.entityManager)

	for _, id := range entities {
		comp, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if comp.Widget == nil {
			continue
		}

		widthSpec, heightSpec := s.specsFor(comp, pos)
		width, height := comp.Widget.Measure(widthSpec, heightSpec, comp.MinWidth, 0)
		comp.Widget.SetBounds(width, height)
	}
}

// specsFor 根据组件配置生成测量约束
// 未指定高度时可用高度为屏幕高度减去 Y 和标签高度
func (s *SliderLayoutSystem) specsFor(comp *components.SliderComponent, pos *components.PositionComponent) (slider.MeasureSpec, slider.MeasureSpec) {
	available := s.screenHeight - int(pos.Y) - config.LabelHeight
	return slider.HostSpecs(comp.ExactWidth, comp.Height, available)
}
