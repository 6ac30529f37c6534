package scratch

import (
	"log"
	"time"
)

// 默认参数
const (
	DefaultStrokeWidth     = 55.0
	DefaultRevealThreshold = 0.45
	DefaultCheckInterval   = 200 * time.Millisecond
)

// Options RevealSurface 的可调参数
type Options struct {
	// StrokeWidth 擦除笔刷直径（位图像素）
	StrokeWidth float64
	// RevealThreshold 透明像素占比超过该值时触发揭晓（0-1）
	RevealThreshold float64
	// CheckInterval 两次覆盖率计算之间的最小间隔（墙钟时间）
	CheckInterval time.Duration
	// SampleStride 覆盖率采样步长（1 = 逐像素）
	SampleStride int
	// Clock 时间源，测试时可注入假时钟；nil 表示 time.Now
	Clock func() time.Time
}

// withDefaults 用默认值补齐未设置的字段
func (o Options) withDefaults() Options {
	if o.StrokeWidth <= 0 {
		o.StrokeWidth = DefaultStrokeWidth
	}
	if o.RevealThreshold <= 0 {
		o.RevealThreshold = DefaultRevealThreshold
	}
	if o.CheckInterval <= 0 {
		o.CheckInterval = DefaultCheckInterval
	}
	if o.SampleStride < 1 {
		o.SampleStride = 1
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// Rect 遮罩在视口中的显示矩形（可能因缩放与位图尺寸不同）
type Rect struct {
	X, Y, W, H float64
}

// Contains 判断视口坐标是否落在矩形内
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

type point struct {
	x, y float64
}

// RevealSurface 刮刮卡交互面
//
// 生命周期：
//   - Initialize 分配并绘制锡箔，可重复调用以重置卡面
//   - BeginStroke / ContinueStroke / EndStroke 驱动擦除
//   - 覆盖率首次超过阈值时触发一次 OnReveal，之后直到下次 Initialize 都不会再触发
//
// 所有方法必须在同一个更新循环中调用，内部无锁。
type RevealSurface struct {
	opts Options

	raster *OverlayRaster

	// 手势状态
	stroking bool
	cursor   *point // StrokeCursor，手势结束时清空

	// 揭晓状态
	revealed     bool
	onReveal     func()
	coverage     float64   // 最近一次计算的透明占比
	lastCheck    time.Time // 最近一次计算覆盖率的时间
	checkPending bool      // 有擦除因限频而尚未计算覆盖率

	// dirty 位图自上次上传后是否被修改
	dirty bool
}

// NewRevealSurface 创建刮刮卡交互面；必须调用 Initialize 后才能擦除
func NewRevealSurface(opts Options) *RevealSurface {
	return &RevealSurface{opts: opts.withDefaults()}
}

// SetOnReveal 设置揭晓回调
func (s *RevealSurface) SetOnReveal(fn func()) {
	s.onReveal = fn
}

// Initialize 分配 width×height 的遮罩并绘制锡箔图案，重置手势与揭晓状态
func (s *RevealSurface) Initialize(width, height int) {
	s.raster = NewOverlayRaster(width, height)
	PaintFoil(s.raster)

	s.stroking = false
	s.cursor = nil
	s.revealed = false
	s.coverage = 0
	s.lastCheck = time.Time{}
	s.checkPending = false
	s.dirty = true

	log.Printf("[RevealSurface] Initialized %dx%d foil (threshold=%.2f, stroke=%.0fpx)",
		width, height, s.opts.RevealThreshold, s.opts.StrokeWidth)
}

// mustRaster 返回位图；未初始化即使用属于调用方的装配错误
func (s *RevealSurface) mustRaster() *OverlayRaster {
	if s.raster == nil {
		panic("scratch: RevealSurface used before Initialize")
	}
	return s.raster
}

// BeginStroke 开始（或延续）一次刮擦手势，位图坐标
//
// 手势已在进行时重复调用等价于 ContinueStroke，保证同一笔画连续。
func (s *RevealSurface) BeginStroke(x, y float64) {
	r := s.mustRaster()
	if s.stroking && s.cursor != nil {
		s.ContinueStroke(x, y)
		return
	}
	s.stroking = true
	s.erase(r.EraseDisc(x, y, s.opts.StrokeWidth))
	s.cursor = &point{x, y}
}

// ContinueStroke 从 StrokeCursor 擦到 (x, y)，仅在手势进行中生效
func (s *RevealSurface) ContinueStroke(x, y float64) {
	r := s.mustRaster()
	if !s.stroking {
		return
	}
	from := point{x, y}
	if s.cursor != nil {
		from = *s.cursor
	}
	s.erase(r.EraseSegment(from.x, from.y, x, y, s.opts.StrokeWidth))
	s.cursor = &point{x, y}
}

// EndStroke 结束手势，清空 StrokeCursor；不修改位图
func (s *RevealSurface) EndStroke() {
	s.stroking = false
	s.cursor = nil
}

// Tick 每帧调用：补做因限频而推迟的覆盖率检测
//
// 最后一笔若恰好落在限频窗口内，没有 Tick 就要等到下一笔才能揭晓。
func (s *RevealSurface) Tick() {
	if s.raster == nil || !s.checkPending {
		return
	}
	if s.opts.Clock().Sub(s.lastCheck) >= s.opts.CheckInterval {
		s.checkCoverage()
	}
}

// erase 记录一次擦除的结果并按限频策略检测覆盖率
func (s *RevealSurface) erase(changed int) {
	if changed > 0 {
		s.dirty = true
	}
	if s.revealed {
		return
	}
	s.checkPending = true
	if s.lastCheck.IsZero() || s.opts.Clock().Sub(s.lastCheck) >= s.opts.CheckInterval {
		s.checkCoverage()
	}
}

// checkCoverage 采样透明占比，首次越过阈值时触发揭晓
func (s *RevealSurface) checkCoverage() {
	s.lastCheck = s.opts.Clock()
	s.checkPending = false
	s.coverage = s.raster.TransparentFraction(s.opts.SampleStride)

	if s.coverage > s.opts.RevealThreshold && !s.revealed {
		s.revealed = true
		log.Printf("[RevealSurface] Coverage %.1f%% crossed threshold, revealing", s.coverage*100)
		if s.onReveal != nil {
			s.onReveal()
		}
	}
}

// ToRaster 把视口坐标转换为位图坐标
//
// display 是遮罩在视口中的实际显示区域；缩放比 = 位图尺寸 / 显示尺寸。
func (s *RevealSurface) ToRaster(vx, vy float64, display Rect) (float64, float64) {
	r := s.mustRaster()
	return ViewportToRaster(vx, vy, display, r.Width(), r.Height())
}

// ViewportToRaster 视口 → 位图坐标转换（纯函数版本）
func ViewportToRaster(vx, vy float64, display Rect, rasterW, rasterH int) (float64, float64) {
	sx, sy := 1.0, 1.0
	if display.W > 0 {
		sx = float64(rasterW) / display.W
	}
	if display.H > 0 {
		sy = float64(rasterH) / display.H
	}
	return (vx - display.X) * sx, (vy - display.Y) * sy
}

// Revealed 是否已触发揭晓
func (s *RevealSurface) Revealed() bool {
	return s.revealed
}

// IsStroking 手势是否进行中
func (s *RevealSurface) IsStroking() bool {
	return s.stroking
}

// Cursor 返回 StrokeCursor；手势未进行时 ok 为 false
func (s *RevealSurface) Cursor() (x, y float64, ok bool) {
	if s.cursor == nil {
		return 0, 0, false
	}
	return s.cursor.x, s.cursor.y, true
}

// Coverage 返回最近一次计算的透明占比
func (s *RevealSurface) Coverage() float64 {
	return s.coverage
}

// Initialized 是否已分配位图
func (s *RevealSurface) Initialized() bool {
	return s.raster != nil
}

// Raster 返回遮罩位图
func (s *RevealSurface) Raster() *OverlayRaster {
	return s.mustRaster()
}

// TakeDirty 返回位图自上次调用以来是否被修改，并清除标记
// 渲染层据此决定是否重新上传纹理
func (s *RevealSurface) TakeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}

// Options 返回生效的参数（已补齐默认值）
func (s *RevealSurface) Options() Options {
	return s.opts
}
