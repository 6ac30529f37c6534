package systems

import (
	"github.com/gonewx/novadraw/pkg/components"
	"github.com/gonewx/novadraw/pkg/ecs"
	"github.com/gonewx/novadraw/pkg/utils"
)

// ButtonSystem 按钮交互系统
// 负责处理按钮的指针悬停、点击等交互逻辑
//
// 职责：
//   - 检测指针悬停（更新按钮状态为 UIHovered）
//   - 检测指针抬起（触发 OnClick 回调）
//   - 根据 Enabled / Visible 决定是否响应交互
type ButtonSystem struct {
	entityManager *ecs.EntityManager
	// pointer 指针输入源，测试时注入
	pointer func() utils.PointerInput
}

// NewButtonSystem 创建按钮交互系统，pointer 为 nil 时读取真实输入
func NewButtonSystem(em *ecs.EntityManager, pointer func() utils.PointerInput) *ButtonSystem {
	if pointer == nil {
		pointer = utils.PollPointer
	}
	return &ButtonSystem{
		entityManager: em,
		pointer:       pointer,
	}
}

// Update 更新按钮交互状态
func (s *ButtonSystem) Update(deltaTime float64) {
	s.Apply(s.pointer())
}

// Apply 用给定的指针快照更新所有按钮
func (s *ButtonSystem) Apply(in utils.PointerInput) {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	// 先收集回调再执行：回调可能创建或销毁按钮
	var clicked []func()
	for _, entityID := range entities {
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		if !button.Visible {
			button.State = components.UINormal
			continue
		}
		if !button.Enabled {
			button.State = components.UIDisabled
			continue
		}

		if !ButtonContains(pos.X, pos.Y, button.Width, button.Height, float64(in.X), float64(in.Y)) {
			button.State = components.UINormal
			continue
		}

		switch {
		case in.Pressed:
			button.State = components.UIClicked
		case in.JustReleased:
			if button.OnClick != nil {
				clicked = append(clicked, button.OnClick)
			}
			button.State = components.UIHovered
		default:
			button.State = components.UIHovered
		}
		// 触屏没有悬停：抬起后恢复常态
		if in.Touch && !in.Pressed {
			button.State = components.UINormal
		}
	}

	for _, fn := range clicked {
		fn()
	}
}

// ButtonContains 检测点是否在按钮范围内
func ButtonContains(buttonX, buttonY, width, height, x, y float64) bool {
	return x >= buttonX &&
		x <= buttonX+width &&
		y >= buttonY &&
		y <= buttonY+height
}

// CreateButton 创建按钮实体
func CreateButton(em *ecs.EntityManager, x, y float64, button *components.ButtonComponent) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, button)
	return id
}
