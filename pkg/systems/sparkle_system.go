package systems

import (
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gonewx/novadraw/pkg/components"
	"github.com/gonewx/novadraw/pkg/config"
	"github.com/gonewx/novadraw/pkg/ecs"
)

// SparklePalette 闪光粒子的四种颜色：青、紫、白、品红
var SparklePalette = []color.NRGBA{
	{R: 0x00, G: 0xf3, B: 0xff, A: 0xff},
	{R: 0x9d, G: 0x00, B: 0xff, A: 0xff},
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	{R: 0xff, G: 0x00, B: 0xea, A: 0xff},
}

// SparklePulsePeriod 闪光粒子脉动周期（秒）
const SparklePulsePeriod = 1.2

// SparkleSystem 闪光粒子生成系统
//
// 每个发射器实体（SparkleEmitterComponent + TimerComponent）按周期掷骰，
// 成功则在区域内生成 Count 个粒子。粒子的清理由 LifetimeSystem 负责。
type SparkleSystem struct {
	entityManager *ecs.EntityManager
	rng           *rand.Rand
	// enabled 全局开关（用户设置），为 false 时所有发射器暂停
	enabled func() bool
}

// NewSparkleSystem 创建闪光粒子系统
//
// 参数：
//   - rng: 随机源，nil 表示使用当前时间播种
//   - enabled: 全局开关，nil 表示始终开启
func NewSparkleSystem(em *ecs.EntityManager, rng *rand.Rand, enabled func() bool) *SparkleSystem {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if enabled == nil {
		enabled = func() bool { return true }
	}
	return &SparkleSystem{entityManager: em, rng: rng, enabled: enabled}
}

// CreateEmitter 创建一个闪光发射器实体
func (s *SparkleSystem) CreateEmitter(layer components.SparkleLayer, x, y, w, h float64, density config.SparkleDensity) ecs.EntityID {
	id := s.entityManager.CreateEntity()
	s.entityManager.AddComponent(id, &components.SparkleEmitterComponent{
		Layer:    layer,
		X:        x,
		Y:        y,
		Width:    w,
		Height:   h,
		Chance:   density.Chance,
		Count:    density.Count,
		Lifetime: density.Lifetime(),
		MinSize:  density.MinSize,
		MaxSize:  density.MaxSize,
		Active:   false,
	})
	s.entityManager.AddComponent(id, &components.TimerComponent{
		Name:       "sparkle_tick",
		TargetTime: density.Tick(),
	})
	return id
}

// SetActive 启停指定图层的所有发射器
func (s *SparkleSystem) SetActive(layer components.SparkleLayer, active bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.SparkleEmitterComponent](s.entityManager) {
		emitter, _ := ecs.GetComponent[*components.SparkleEmitterComponent](s.entityManager, id)
		if emitter.Layer != layer {
			continue
		}
		emitter.Active = active
		if !active {
			if timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id); ok {
				timer.CurrentTime = 0
			}
		}
	}
}

// ClearSparkles 立即移除指定图层的全部粒子（发射器保留）
func (s *SparkleSystem) ClearSparkles(layer components.SparkleLayer) {
	for _, id := range ecs.GetEntitiesWith1[*components.SparkleComponent](s.entityManager) {
		sparkle, _ := ecs.GetComponent[*components.SparkleComponent](s.entityManager, id)
		if sparkle.Layer == layer {
			s.entityManager.DestroyEntity(id)
		}
	}
}

// Update 推进发射器计时器并按概率生成粒子
func (s *SparkleSystem) Update(deltaTime float64) {
	enabled := s.enabled()
	for _, id := range ecs.GetEntitiesWith2[*components.SparkleEmitterComponent, *components.TimerComponent](s.entityManager) {
		emitter, _ := ecs.GetComponent[*components.SparkleEmitterComponent](s.entityManager, id)
		timer, _ := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)

		timer.IsReady = false
		if !emitter.Active || !enabled || timer.TargetTime <= 0 {
			timer.CurrentTime = 0
			continue
		}

		timer.CurrentTime += deltaTime
		for timer.CurrentTime >= timer.TargetTime {
			timer.CurrentTime -= timer.TargetTime
			timer.IsReady = true
			if s.rng.Float64() < emitter.Chance {
				for i := 0; i < emitter.Count; i++ {
					s.spawn(emitter)
				}
			}
		}
	}
}

func (s *SparkleSystem) spawn(emitter *components.SparkleEmitterComponent) {
	id := s.entityManager.CreateEntity()
	s.entityManager.AddComponent(id, &components.PositionComponent{
		X: emitter.X + s.rng.Float64()*emitter.Width,
		Y: emitter.Y + s.rng.Float64()*emitter.Height,
	})
	s.entityManager.AddComponent(id, &components.SparkleComponent{
		Layer: emitter.Layer,
		Size:  emitter.MinSize + s.rng.Float64()*(emitter.MaxSize-emitter.MinSize),
		Color: SparklePalette[s.rng.IntN(len(SparklePalette))],
		Phase: s.rng.Float64() * SparklePulsePeriod,
	})
	s.entityManager.AddComponent(id, &components.LifetimeComponent{
		MaxLifetime: emitter.Lifetime,
	})
}

// SparkleScale 粒子随生命进度先放大后缩小：0 → 1 → 0
func SparkleScale(progress float64) float64 {
	if progress <= 0 || progress >= 1 {
		return 0
	}
	return math.Sin(math.Pi * progress)
}

// SparkleAlpha 粒子不透明度：生命曲线叠加 1.2 秒的脉动
func SparkleAlpha(age, progress, phase float64) float64 {
	pulse := 0.75 + 0.25*math.Sin(2*math.Pi*(age+phase)/SparklePulsePeriod)
	return SparkleScale(progress) * pulse
}
