package systems

import (
	"testing"
	"time"

	"github.com/gonewx/novadraw/pkg/components"
	"github.com/gonewx/novadraw/pkg/ecs"
	"github.com/gonewx/novadraw/pkg/scratch"
	"github.com/gonewx/novadraw/pkg/utils"
)

type scratchFixture struct {
	em      *ecs.EntityManager
	sys     *ScratchCardSystem
	card    *components.ScratchCardComponent
	input   utils.PointerInput
	now     time.Time
	reveals int
	sparks  int
}

// newScratchFixture 在 (100, 50) 处放置一张 440×260 的卡，显示尺寸与位图一致
func newScratchFixture(t *testing.T) *scratchFixture {
	t.Helper()
	f := &scratchFixture{em: ecs.NewEntityManager(), now: time.Unix(1000, 0)}

	surface := scratch.NewRevealSurface(scratch.Options{Clock: func() time.Time { return f.now }})
	surface.SetOnReveal(func() { f.reveals++ })
	surface.Initialize(440, 260)

	f.card = &components.ScratchCardComponent{
		Surface:     surface,
		Display:     scratch.Rect{X: 100, Y: 50, W: 440, H: 260},
		Interactive: true,
	}
	id := f.em.CreateEntity()
	f.em.AddComponent(id, f.card)

	f.sys = NewScratchCardSystem(f.em,
		func() utils.PointerInput { return f.input },
		func(x, y float64) { f.sparks++ })
	return f
}

func (f *scratchFixture) frame(in utils.PointerInput) {
	f.input = in
	f.now = f.now.Add(time.Second / 60)
	f.sys.Update(1.0 / 60)
}

// drag 从 (x0, y) 按下拖到 (x1, y) 后抬起，每 20 像素一帧
func (f *scratchFixture) drag(x0, x1, y int) {
	f.frame(utils.PointerInput{X: x0, Y: y, Pressed: true, JustPressed: true})
	for x := x0 + 20; x <= x1; x += 20 {
		f.frame(utils.PointerInput{X: x, Y: y, Pressed: true})
	}
	f.frame(utils.PointerInput{X: x1, Y: y, JustReleased: true})
}

func TestScratchCardStrokeLifecycle(t *testing.T) {
	f := newScratchFixture(t)
	surface := f.card.Surface

	f.frame(utils.PointerInput{X: 200, Y: 100, Pressed: true, JustPressed: true})
	if !surface.IsStroking() {
		t.Fatal("press inside the card should start a stroke")
	}
	if x, y, _ := surface.Cursor(); x != 100 || y != 50 {
		t.Errorf("cursor = (%v,%v), want raster (100,50)", x, y)
	}

	f.frame(utils.PointerInput{X: 300, Y: 100, Pressed: true})
	if a := surface.Raster().AlphaAt(150, 50); a != 0 {
		t.Errorf("drag should erase between samples, alpha %d", a)
	}

	f.frame(utils.PointerInput{X: 300, Y: 100, JustReleased: true})
	if surface.IsStroking() {
		t.Error("release should end the stroke")
	}
	if f.sparks != 2 {
		t.Errorf("sparks emitted %d times, want 2", f.sparks)
	}
}

// TestScratchCardLeaveEndsStroke 拖出卡面结束笔画，按住拖回不会续上
func TestScratchCardLeaveEndsStroke(t *testing.T) {
	f := newScratchFixture(t)
	surface := f.card.Surface

	f.frame(utils.PointerInput{X: 200, Y: 100, Pressed: true, JustPressed: true})
	f.frame(utils.PointerInput{X: 20, Y: 100, Pressed: true})
	if surface.IsStroking() {
		t.Fatal("leaving the card should end the stroke")
	}

	f.frame(utils.PointerInput{X: 400, Y: 100, Pressed: true})
	if surface.IsStroking() {
		t.Error("re-entering while held should not resume the stroke")
	}
	if a := surface.Raster().AlphaAt(300, 50); a != 0xff {
		t.Errorf("re-entry erased the foil (alpha %d)", a)
	}
}

func TestScratchCardPressOutsideIgnored(t *testing.T) {
	f := newScratchFixture(t)
	f.frame(utils.PointerInput{X: 20, Y: 20, Pressed: true, JustPressed: true})
	f.frame(utils.PointerInput{X: 200, Y: 100, Pressed: true})
	if f.card.Surface.IsStroking() || f.card.Surface.Raster().TransparentFraction(1) != 0 {
		t.Error("a press outside the card must not scratch")
	}
}

// TestScratchCardRevealAndFade 刮满后揭晓一次，淡出期间忽略输入
func TestScratchCardRevealAndFade(t *testing.T) {
	f := newScratchFixture(t)
	for y := 50; y <= 310; y += 40 {
		f.drag(100, 540, y)
	}
	// 空闲帧让 Tick 补做检测
	for i := 0; i < 20; i++ {
		f.frame(utils.PointerInput{})
	}
	if f.reveals != 1 {
		t.Fatalf("reveals = %d, want 1 (coverage %.2f)", f.reveals, f.card.Surface.Coverage())
	}

	StartFade(f.card, 1.0)
	if f.card.Interactive || f.card.OverlayAlpha() != 1 {
		t.Fatalf("fade start: interactive=%v alpha=%v", f.card.Interactive, f.card.OverlayAlpha())
	}

	before := f.card.Surface.Coverage()
	f.drag(100, 540, 290)
	if f.card.Surface.IsStroking() {
		t.Error("fading card should not accept strokes")
	}
	if f.card.Surface.Coverage() != before {
		t.Error("fading card coverage changed")
	}

	for i := 0; i < 60; i++ {
		f.frame(utils.PointerInput{})
	}
	if f.card.OverlayAlpha() != 0 {
		t.Errorf("OverlayAlpha after fade = %v, want 0", f.card.OverlayAlpha())
	}
}

func TestScratchCardNonInteractive(t *testing.T) {
	f := newScratchFixture(t)
	f.card.Interactive = false
	f.drag(100, 540, 150)
	if f.card.Surface.Raster().TransparentFraction(1) != 0 || f.sparks != 0 {
		t.Error("non-interactive card should ignore the pointer")
	}
}

func TestOverlayAlpha(t *testing.T) {
	tests := []struct {
		name string
		card components.ScratchCardComponent
		want float64
	}{
		{"not fading", components.ScratchCardComponent{}, 1},
		{"half way", components.ScratchCardComponent{Fading: true, FadeElapsed: 0.5, FadeDuration: 1}, 0.5},
		{"done", components.ScratchCardComponent{Fading: true, FadeElapsed: 1.5, FadeDuration: 1}, 0},
		{"zero duration", components.ScratchCardComponent{Fading: true}, 0},
	}
	for _, tt := range tests {
		if got := tt.card.OverlayAlpha(); got != tt.want {
			t.Errorf("%s: OverlayAlpha() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
