package systems

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/novadraw/pkg/components"
	"github.com/gonewx/novadraw/pkg/ecs"
)

// 火花参数
const (
	sparksPerScratch = 2
	sparkLifetime    = 0.35
	sparkMinSpeed    = 60.0
	sparkMaxSpeed    = 180.0
	// maxLiveSparks 同时存在的火花上限，快速刮擦时丢弃多余的
	maxLiveSparks = 120
)

// ScratchSparkSystem 刮擦火花系统
// 在指针处迸出向四周飞散的短线，寿命到期由 LifetimeSystem 清理
type ScratchSparkSystem struct {
	entityManager *ecs.EntityManager
	rng           *rand.Rand
	enabled       func() bool
}

// NewScratchSparkSystem 创建刮擦火花系统
func NewScratchSparkSystem(em *ecs.EntityManager, rng *rand.Rand, enabled func() bool) *ScratchSparkSystem {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>3))
	}
	if enabled == nil {
		enabled = func() bool { return true }
	}
	return &ScratchSparkSystem{entityManager: em, rng: rng, enabled: enabled}
}

// Emit 在视口坐标 (x, y) 生成一簇火花
func (s *ScratchSparkSystem) Emit(x, y float64) {
	if !s.enabled() {
		return
	}
	live := len(ecs.GetEntitiesWith1[*components.ScratchSparkComponent](s.entityManager))
	for i := 0; i < sparksPerScratch && live < maxLiveSparks; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		speed := sparkMinSpeed + s.rng.Float64()*(sparkMaxSpeed-sparkMinSpeed)

		id := s.entityManager.CreateEntity()
		s.entityManager.AddComponent(id, &components.PositionComponent{X: x, Y: y})
		s.entityManager.AddComponent(id, &components.ScratchSparkComponent{
			VelocityX: math.Cos(angle) * speed,
			VelocityY: math.Sin(angle) * speed,
			Length:    4 + s.rng.Float64()*6,
			Color:     SparklePalette[s.rng.IntN(2)], // 青或紫
		})
		s.entityManager.AddComponent(id, &components.LifetimeComponent{MaxLifetime: sparkLifetime})
		live++
	}
}

// Update 按速度移动火花
func (s *ScratchSparkSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.ScratchSparkComponent, *components.PositionComponent](s.entityManager) {
		spark, _ := ecs.GetComponent[*components.ScratchSparkComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		pos.X += spark.VelocityX * deltaTime
		pos.Y += spark.VelocityY * deltaTime
	}
}

// Clear 移除全部火花
func (s *ScratchSparkSystem) Clear() {
	for _, id := range ecs.GetEntitiesWith1[*components.ScratchSparkComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
}

// Draw 绘制火花：沿速度方向的短线，随寿命淡出
func (s *ScratchSparkSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith3[*components.ScratchSparkComponent, *components.PositionComponent, *components.LifetimeComponent](s.entityManager)
	for _, id := range entities {
		spark, _ := ecs.GetComponent[*components.ScratchSparkComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		life, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)

		speed := math.Hypot(spark.VelocityX, spark.VelocityY)
		if speed == 0 {
			continue
		}
		tx := pos.X - spark.VelocityX/speed*spark.Length
		ty := pos.Y - spark.VelocityY/speed*spark.Length
		clr := fade(spark.Color, 1-life.Progress())
		vector.StrokeLine(screen, float32(tx), float32(ty), float32(pos.X), float32(pos.Y), 1.5, clr, true)
	}
}
