package components

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ButtonComponent 按钮组件
// 纯数据：外观、文字、状态、回调；位置由 PositionComponent 提供
type ButtonComponent struct {
	Text string
	Font *text.GoTextFace

	// Accent 边框与文字颜色；悬停时填充为半透明的 Accent
	Accent color.NRGBA

	Width  float64
	Height float64

	// State 当前交互状态
	State UIState
	// Enabled 禁用时不响应点击
	Enabled bool
	// Visible 不可见时既不绘制也不响应
	Visible bool

	// OnClick 在按钮内抬起指针时触发
	OnClick func()
}
