package systems

import (
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/novadraw/pkg/components"
	"github.com/gonewx/novadraw/pkg/config"
	"github.com/gonewx/novadraw/pkg/ecs"
	"github.com/gonewx/novadraw/pkg/utils"
)

// 漩涡配色：青、紫交替
var (
	vortexCyan   = color.NRGBA{R: 0x00, G: 0xf3, B: 0xff, A: 0xff}
	vortexViolet = color.NRGBA{R: 0x9d, G: 0x00, B: 0xff, A: 0xff}
	vortexCore   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 40}
)

// vortexTurns 一次旋入转过的圈数
const vortexTurns = 1.25

// VortexSystem 洗牌漩涡系统
// 名字从外圈错峰旋入中心并淡出，循环播放直到抽奖进入下一阶段
type VortexSystem struct {
	entityManager *ecs.EntityManager
	rng           *rand.Rand
	cfg           config.VortexConfig

	// 漩涡中心与外圈半径（像素）
	centerX, centerY, radius float64

	age   float64
	faces map[int]*text.GoTextFace
}

// NewVortexSystem 创建漩涡系统
func NewVortexSystem(em *ecs.EntityManager, cfg config.VortexConfig, centerX, centerY, radius float64, rng *rand.Rand) *VortexSystem {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>5))
	}
	return &VortexSystem{
		entityManager: em,
		rng:           rng,
		cfg:           cfg,
		centerX:       centerX,
		centerY:       centerY,
		radius:        radius,
		faces:         make(map[int]*text.GoTextFace),
	}
}

// Spawn 用名单生成漩涡元素：循环取名直到凑满配置的数量
// 名单为空时不生成
func (s *VortexSystem) Spawn(roster []string) {
	s.Clear()
	if len(roster) == 0 {
		return
	}
	s.age = 0
	for i := 0; i < s.cfg.Names; i++ {
		clr := vortexCyan
		if i%2 == 1 {
			clr = vortexViolet
		}
		// 起始点落在外圈 [0.4, 1] 半径的环带上
		angle := s.rng.Float64() * 2 * math.Pi
		dist := 0.4 + 0.6*s.rng.Float64()

		id := s.entityManager.CreateEntity()
		s.entityManager.AddComponent(id, &components.PositionComponent{
			X: math.Cos(angle) * dist,
			Y: math.Sin(angle) * dist,
		})
		s.entityManager.AddComponent(id, &components.VortexItemComponent{
			Name:   utils.DisplayName(roster[i%len(roster)]),
			Index:  i,
			Delay:  float64(i) * s.cfg.Stagger,
			Period: s.cfg.Period,
			Size:   s.cfg.MinSize + s.rng.Float64()*(s.cfg.MaxSize-s.cfg.MinSize),
			Color:  clr,
		})
	}
}

// Clear 移除全部漩涡元素
func (s *VortexSystem) Clear() {
	for _, id := range ecs.GetEntitiesWith1[*components.VortexItemComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
}

// Update 推进动画时间
func (s *VortexSystem) Update(deltaTime float64) {
	s.age += deltaTime
	for _, id := range ecs.GetEntitiesWith1[*components.VortexItemComponent](s.entityManager) {
		item, _ := ecs.GetComponent[*components.VortexItemComponent](s.entityManager, id)
		item.Age += deltaTime
	}
}

// VortexFrame 漩涡元素某一时刻的变换
type VortexFrame struct {
	// Angle 相对起始角额外转过的弧度
	Angle float64
	// Radius 相对起始距离的比例 [0, 1]
	Radius float64
	Scale  float64
	Alpha  float64
}

// VortexTransform 计算元素在 age 时刻的变换
//
// 延迟期内不可见；之后每个周期从外圈旋入中心，透明度先升后降。
func VortexTransform(age, delay, period float64) VortexFrame {
	if age < delay || period <= 0 {
		return VortexFrame{Radius: 1, Scale: 1}
	}
	p := math.Mod(age-delay, period) / period
	return VortexFrame{
		Angle:  p * vortexTurns * 2 * math.Pi,
		Radius: 1 - p,
		Scale:  1 - 0.7*p,
		Alpha:  math.Sin(math.Pi * p),
	}
}

// Draw 绘制漩涡核心与全部元素
func (s *VortexSystem) Draw(screen *ebiten.Image) {
	pulse := 0.75 + 0.25*math.Sin(s.age*2*math.Pi)
	vector.DrawFilledCircle(screen, float32(s.centerX), float32(s.centerY), float32(40*pulse), vortexCore, true)

	for _, id := range ecs.GetEntitiesWith2[*components.VortexItemComponent, *components.PositionComponent](s.entityManager) {
		item, _ := ecs.GetComponent[*components.VortexItemComponent](s.entityManager, id)
		start, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		f := VortexTransform(item.Age, item.Delay, item.Period)
		if f.Alpha <= 0 {
			continue
		}
		sin, cos := math.Sincos(f.Angle)
		dx := (start.X*cos - start.Y*sin) * f.Radius * s.radius
		dy := (start.X*sin + start.Y*cos) * f.Radius * s.radius

		face := s.face(item.Size)
		op := &text.DrawOptions{}
		op.LayoutOptions.PrimaryAlign = text.AlignCenter
		op.LayoutOptions.SecondaryAlign = text.AlignCenter
		op.GeoM.Scale(f.Scale, f.Scale)
		op.GeoM.Translate(s.centerX+dx, s.centerY+dy)
		op.ColorScale.ScaleWithColor(item.Color)
		op.ColorScale.ScaleAlpha(float32(f.Alpha))
		text.Draw(screen, item.Name, face, op)
	}
}

// face 按整数字号缓存字体
func (s *VortexSystem) face(size float64) *text.GoTextFace {
	key := int(math.Round(size))
	if f, ok := s.faces[key]; ok {
		return f
	}
	f := utils.MustLoadFace(utils.FontBold, float64(key))
	s.faces[key] = f
	return f
}
