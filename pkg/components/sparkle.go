package components

import "image/color"

// SparkleLayer 闪光粒子所属的图层
type SparkleLayer int

const (
	// SparkleLayerInline 围绕中奖者姓名的卡片内闪光
	SparkleLayerInline SparkleLayer = iota
	// SparkleLayerCelebration 揭晓后铺满全屏的庆祝闪光
	SparkleLayerCelebration
)

// SparkleComponent 单个闪光粒子（四角星）
// 位置由 PositionComponent 提供，存活时间由 LifetimeComponent 管理
type SparkleComponent struct {
	Layer SparkleLayer
	Size  float64 // 外接正方形边长（像素）
	Color color.NRGBA
	// Phase 脉动相位偏移（秒），让同批粒子不同步闪烁
	Phase float64
}

// SparkleEmitterComponent 闪光粒子发射区域
// 周期由同一实体上的 TimerComponent 提供
type SparkleEmitterComponent struct {
	Layer SparkleLayer
	// 生成区域（逻辑坐标矩形）
	X, Y, Width, Height float64

	Chance   float64 // 每个周期生成的概率
	Count    int     // 每次生成的数量
	Lifetime float64 // 粒子存活时长（秒）
	MinSize  float64
	MaxSize  float64

	// Active 为 false 时不再生成，已有粒子自然消亡
	Active bool
}
