package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/novadraw/pkg/components"
	"github.com/gonewx/novadraw/pkg/ecs"
)

// 按钮配色
var (
	buttonFillColor     = color.NRGBA{R: 0x05, G: 0x05, B: 0x12, A: 220}
	buttonDisabledColor = color.NRGBA{R: 0x60, G: 0x60, B: 0x70, A: 0xff}
)

// ButtonRenderSystem 按钮渲染系统
// 霓虹描边风格：深色底 + Accent 色边框与文字，悬停时半透明 Accent 填充
type ButtonRenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewButtonRenderSystem 创建按钮渲染系统
func NewButtonRenderSystem(em *ecs.EntityManager) *ButtonRenderSystem {
	return &ButtonRenderSystem{
		entityManager: em,
	}
}

// Draw 渲染所有可见按钮
func (s *ButtonRenderSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)
	for _, entityID := range entities {
		s.DrawButton(screen, entityID)
	}
}

// DrawButton 渲染单个按钮实体
func (s *ButtonRenderSystem) DrawButton(screen *ebiten.Image, entityID ecs.EntityID) {
	button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
	if !ok || !button.Visible {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
	if !ok {
		return
	}

	accent := ButtonAccent(button)
	x, y := float32(pos.X), float32(pos.Y)
	w, h := float32(button.Width), float32(button.Height)

	vector.DrawFilledRect(screen, x, y, w, h, buttonFillColor, false)
	switch button.State {
	case components.UIHovered:
		vector.DrawFilledRect(screen, x, y, w, h, fade(accent, 0.18), false)
	case components.UIClicked:
		vector.DrawFilledRect(screen, x, y, w, h, fade(accent, 0.35), false)
	}
	vector.StrokeRect(screen, x, y, w, h, 2, accent, false)

	if button.Text == "" || button.Font == nil {
		return
	}
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(pos.X+button.Width/2, pos.Y+button.Height/2)
	op.ColorScale.ScaleWithColor(accent)
	text.Draw(screen, button.Text, button.Font, op)
}

// ButtonAccent 按状态返回边框与文字颜色
func ButtonAccent(button *components.ButtonComponent) color.NRGBA {
	if !button.Enabled || button.State == components.UIDisabled {
		return buttonDisabledColor
	}
	return button.Accent
}
