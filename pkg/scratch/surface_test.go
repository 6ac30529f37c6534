package scratch

import (
	"testing"
	"time"
)

// fakeClock 手动推进的时钟
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestSurface(t *testing.T, clock *fakeClock) (*RevealSurface, *int) {
	t.Helper()
	s := NewRevealSurface(Options{Clock: clock.Now})
	reveals := 0
	s.SetOnReveal(func() { reveals++ })
	s.Initialize(440, 260)
	return s, &reveals
}

// sweepRow 模拟一次横向刮擦手势
func sweepRow(s *RevealSurface, y float64) {
	s.BeginStroke(0, y)
	for x := 40.0; x <= 440; x += 40 {
		s.ContinueStroke(x, y)
	}
	s.EndStroke()
}

// TestRevealFiresExactlyOnce 越过阈值后继续刮擦也只触发一次
func TestRevealFiresExactlyOnce(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	s, reveals := newTestSurface(t, clock)

	for y := 0.0; y <= 260; y += 40 {
		sweepRow(s, y)
		clock.Advance(250 * time.Millisecond)
		s.Tick()
	}

	if !s.Revealed() {
		t.Fatalf("surface should be revealed, coverage %.2f", s.Coverage())
	}
	if *reveals != 1 {
		t.Errorf("reveal callback fired %d times, want 1", *reveals)
	}

	// 揭晓后继续刮擦
	for i := 0; i < 5; i++ {
		sweepRow(s, 130)
		clock.Advance(time.Second)
		s.Tick()
	}
	if *reveals != 1 {
		t.Errorf("reveal callback fired %d times after extra strokes, want 1", *reveals)
	}
}

// TestRevealBelowThreshold 覆盖率不足时不揭晓
func TestRevealBelowThreshold(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	s, reveals := newTestSurface(t, clock)

	sweepRow(s, 40)
	clock.Advance(time.Second)
	s.Tick()

	if s.Revealed() || *reveals != 0 {
		t.Errorf("one stroke should not reveal (coverage %.2f)", s.Coverage())
	}
	if s.Coverage() <= 0 {
		t.Error("coverage should be positive after a stroke")
	}
}

// TestCoverageCheckIsRateLimited 限频窗口内不重复计算，Tick 负责补做
func TestCoverageCheckIsRateLimited(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	s, reveals := newTestSurface(t, clock)

	// 第一次擦除立即计算
	s.BeginStroke(220, 130)
	first := s.Coverage()
	if first <= 0 {
		t.Fatal("first erase should compute coverage immediately")
	}

	// 同一时刻刮满整张卡：被限频，尚未揭晓
	for y := 0.0; y <= 260; y += 40 {
		s.BeginStroke(0, y)
		s.ContinueStroke(440, y)
		s.EndStroke()
	}
	if s.Coverage() != first {
		t.Errorf("coverage recomputed inside the rate-limit window: %.3f -> %.3f", first, s.Coverage())
	}
	if s.Revealed() {
		t.Fatal("reveal should wait for the next allowed check")
	}

	// 未到间隔，Tick 不做事
	clock.Advance(100 * time.Millisecond)
	s.Tick()
	if s.Revealed() {
		t.Fatal("Tick ran the check before the interval elapsed")
	}

	clock.Advance(100 * time.Millisecond)
	s.Tick()
	if !s.Revealed() || *reveals != 1 {
		t.Errorf("deferred check should reveal once, revealed=%v count=%d", s.Revealed(), *reveals)
	}
}

// TestInitializeResetsCard 重新初始化恢复为未刮状态，揭晓可再次触发
func TestInitializeResetsCard(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	s, reveals := newTestSurface(t, clock)

	for y := 0.0; y <= 260; y += 40 {
		sweepRow(s, y)
		clock.Advance(250 * time.Millisecond)
	}
	if !s.Revealed() {
		t.Fatal("precondition: surface should be revealed")
	}

	s.BeginStroke(10, 10)
	s.Initialize(440, 260)

	if s.Revealed() || s.IsStroking() || s.Coverage() != 0 {
		t.Error("Initialize should clear revealed, stroke and coverage state")
	}
	if _, _, ok := s.Cursor(); ok {
		t.Error("Initialize should clear the stroke cursor")
	}
	if f := s.Raster().TransparentFraction(1); f != 0 {
		t.Errorf("fresh foil transparent fraction = %f", f)
	}

	for y := 0.0; y <= 260; y += 40 {
		sweepRow(s, y)
		clock.Advance(250 * time.Millisecond)
	}
	if *reveals != 2 {
		t.Errorf("reveal count after second cycle = %d, want 2", *reveals)
	}
}

// TestContinueStrokeRequiresActiveGesture 未按下时移动不擦除
func TestContinueStrokeRequiresActiveGesture(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	s, _ := newTestSurface(t, clock)
	s.TakeDirty()

	s.ContinueStroke(100, 100)
	s.ContinueStroke(300, 100)

	if f := s.Raster().TransparentFraction(1); f != 0 {
		t.Errorf("hover without press erased %.3f of the foil", f)
	}
	if s.TakeDirty() {
		t.Error("hover without press should not mark the raster dirty")
	}
}

// TestEndStrokeClearsCursor 结束手势只清空游标，不改动位图
func TestEndStrokeClearsCursor(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	s, _ := newTestSurface(t, clock)

	s.BeginStroke(100, 100)
	if x, y, ok := s.Cursor(); !ok || x != 100 || y != 100 {
		t.Fatalf("cursor = (%v,%v,%v), want (100,100,true)", x, y, ok)
	}
	before := append([]byte(nil), s.Raster().Image().Pix...)

	s.EndStroke()
	if _, _, ok := s.Cursor(); ok || s.IsStroking() {
		t.Error("EndStroke should clear the cursor and gesture flag")
	}
	if string(before) != string(s.Raster().Image().Pix) {
		t.Error("EndStroke modified the raster")
	}

	// 新手势不能与上一笔相连
	s.BeginStroke(300, 100)
	if a := s.Raster().AlphaAt(200, 100); a != 0xff {
		t.Errorf("new gesture connected to the previous one (alpha %d at midpoint)", a)
	}
}

// TestRepeatedBeginStrokeContinues 重复 BeginStroke 视为同一笔画
func TestRepeatedBeginStrokeContinues(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	s, _ := newTestSurface(t, clock)

	s.BeginStroke(50, 50)
	s.BeginStroke(250, 50)

	if a := s.Raster().AlphaAt(150, 50); a != 0 {
		t.Errorf("midpoint should be erased by the continued stroke, alpha %d", a)
	}
}

func TestViewportToRaster(t *testing.T) {
	tests := []struct {
		name         string
		vx, vy       float64
		display      Rect
		wantX, wantY float64
	}{
		{"identity", 110, 60, Rect{X: 100, Y: 50, W: 440, H: 260}, 10, 10},
		{"half size display", 210, 115, Rect{X: 100, Y: 50, W: 220, H: 130}, 220, 130},
		{"double size display", 980, 570, Rect{X: 100, Y: 50, W: 880, H: 520}, 440, 260},
		{"left of card", 90, 50, Rect{X: 100, Y: 50, W: 440, H: 260}, -10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := ViewportToRaster(tt.vx, tt.vy, tt.display, 440, 260)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("got (%v,%v), want (%v,%v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestSurfacePanicsBeforeInitialize(t *testing.T) {
	s := NewRevealSurface(Options{})
	defer func() {
		if recover() == nil {
			t.Error("BeginStroke before Initialize should panic")
		}
	}()
	s.BeginStroke(1, 1)
}

func TestOptionsDefaults(t *testing.T) {
	s := NewRevealSurface(Options{})
	o := s.Options()
	if o.StrokeWidth != DefaultStrokeWidth || o.RevealThreshold != DefaultRevealThreshold {
		t.Errorf("defaults not applied: %+v", o)
	}
	if o.SampleStride != 1 || o.Clock == nil {
		t.Errorf("stride/clock defaults not applied: stride=%d", o.SampleStride)
	}
}
