package components

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/novadraw/pkg/scratch"
)

// ScratchCardComponent 刮刮卡实体
// 中奖者姓名绘制在卡片底层，Surface 的遮罩位图覆盖其上
type ScratchCardComponent struct {
	Surface *scratch.RevealSurface
	// Display 遮罩在屏幕上的显示矩形
	Display scratch.Rect

	// Overlay 遮罩位图对应的 GPU 纹理，由渲染系统懒创建
	Overlay *ebiten.Image

	// Name 底层显示的中奖者姓名（已转换为展示大小写）
	Name string
	// Caption 姓名下方的小字说明
	Caption string

	// 揭晓后遮罩淡出
	Fading       bool
	FadeElapsed  float64
	FadeDuration float64

	// Interactive 为 false 时忽略指针输入
	Interactive bool
}

// OverlayAlpha 返回遮罩当前的不透明度 [0, 1]
func (c *ScratchCardComponent) OverlayAlpha() float64 {
	if !c.Fading {
		return 1
	}
	if c.FadeDuration <= 0 || c.FadeElapsed >= c.FadeDuration {
		return 0
	}
	return 1 - c.FadeElapsed/c.FadeDuration
}

// ScratchSparkComponent 刮擦时从指针处迸出的短线火花
// 绘制在遮罩之上，不写入遮罩位图
type ScratchSparkComponent struct {
	VelocityX, VelocityY float64 // 像素/秒
	Length               float64
	Color                color.NRGBA
}
