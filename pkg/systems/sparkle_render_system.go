package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/novadraw/pkg/components"
	"github.com/gonewx/novadraw/pkg/ecs"
)

// SparkleRenderSystem 绘制闪光粒子（十字星 + 中心光点）
type SparkleRenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewSparkleRenderSystem 创建闪光粒子渲染系统
func NewSparkleRenderSystem(em *ecs.EntityManager) *SparkleRenderSystem {
	return &SparkleRenderSystem{entityManager: em}
}

// Draw 绘制指定图层的全部粒子
func (s *SparkleRenderSystem) Draw(screen *ebiten.Image, layer components.SparkleLayer) {
	entities := ecs.GetEntitiesWith3[*components.SparkleComponent, *components.PositionComponent, *components.LifetimeComponent](s.entityManager)
	for _, id := range entities {
		sparkle, _ := ecs.GetComponent[*components.SparkleComponent](s.entityManager, id)
		if sparkle.Layer != layer {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		life, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)

		progress := life.Progress()
		size := sparkle.Size * SparkleScale(progress)
		alpha := SparkleAlpha(life.CurrentLifetime, progress, sparkle.Phase)
		if size < 0.5 || alpha <= 0 {
			continue
		}
		drawStar(screen, float32(pos.X), float32(pos.Y), float32(size), fade(sparkle.Color, alpha))
	}
}

// drawStar 以 (cx, cy) 为中心绘制边长为 size 的四角星
func drawStar(screen *ebiten.Image, cx, cy, size float32, c color.NRGBA) {
	half := size / 2
	arm := max(size/8, 1)
	vector.StrokeLine(screen, cx-half, cy, cx+half, cy, arm, c, true)
	vector.StrokeLine(screen, cx, cy-half, cx, cy+half, arm, c, true)
	vector.DrawFilledCircle(screen, cx, cy, arm*1.2, c, true)
}

// fade 按 alpha 缩放颜色的不透明度
func fade(c color.NRGBA, alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(float64(c.A)*alpha + 0.5)
	return c
}
