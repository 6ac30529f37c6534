package scenes

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/gonewx/novadraw/pkg/components"
	"github.com/gonewx/novadraw/pkg/config"
	"github.com/gonewx/novadraw/pkg/ecs"
	"github.com/gonewx/novadraw/pkg/game"
	"github.com/gonewx/novadraw/pkg/utils"
)

// fixedRandom 总是选中下标 n（对名单长度取模）
type fixedRandom int

func (f fixedRandom) Intn(n int) int { return int(f) % n }

type echoHype struct{}

func (echoHype) FetchHype(ctx context.Context, name string) string { return "go " + name }

// sceneHarness 驱动 DrawScene 的输入与时间
type sceneHarness struct {
	t         *testing.T
	scene     *DrawScene
	scheduler *game.Scheduler
	settings  *game.SettingsManager
	pointer   utils.PointerInput
	keys      utils.KeyboardInput
	now       time.Time
}

func newSceneHarness(t *testing.T) *sceneHarness {
	t.Helper()
	settings, _ := game.NewSettingsManager(nil)
	h := &sceneHarness{
		t:         t,
		scheduler: game.NewScheduler(),
		settings:  settings,
		now:       time.Unix(1000, 0),
	}
	h.scene = NewDrawScene(DrawSceneDeps{
		Config:    config.DefaultDrawConfig(),
		Scheduler: h.scheduler,
		Hype:      echoHype{},
		Settings:  settings,
		Random:    fixedRandom(1),
		Effects:   rand.New(rand.NewPCG(7, 8)),
		Pointer:   func() utils.PointerInput { return h.pointer },
		Keyboard:  func() utils.KeyboardInput { return h.keys },
		Clock:     func() time.Time { return h.now },
	})
	return h
}

// frame 推进一帧：调度器先于场景
func (h *sceneHarness) frame(pointer utils.PointerInput, keys utils.KeyboardInput) {
	h.pointer = pointer
	h.keys = keys
	h.now = h.now.Add(time.Second / 60)
	h.scheduler.Update(1.0 / 60)
	h.scene.Update(1.0 / 60)
}

func (h *sceneHarness) idle(frames int) {
	for i := 0; i < frames; i++ {
		h.frame(utils.PointerInput{}, utils.KeyboardInput{})
	}
}

// click 在 (x, y) 按下并抬起
func (h *sceneHarness) click(x, y int) {
	h.frame(utils.PointerInput{X: x, Y: y, Pressed: true, JustPressed: true}, utils.KeyboardInput{})
	h.frame(utils.PointerInput{X: x, Y: y, JustReleased: true}, utils.KeyboardInput{})
}

// scratchAll 逐行刮满整张卡
func (h *sceneHarness) scratchAll() {
	x, y, w, hh := config.CardRect(h.scene.cfg.Card.Width, h.scene.cfg.Card.Height)
	for row := int(y); row < int(y+hh); row += 40 {
		h.frame(utils.PointerInput{X: int(x), Y: row, Pressed: true, JustPressed: true}, utils.KeyboardInput{})
		for col := int(x) + 20; col < int(x+w); col += 20 {
			h.frame(utils.PointerInput{X: col, Y: row, Pressed: true}, utils.KeyboardInput{})
		}
		h.frame(utils.PointerInput{X: int(x + w - 1), Y: row, JustReleased: true}, utils.KeyboardInput{})
	}
	h.idle(20)
}

func (h *sceneHarness) count(layer components.SparkleLayer) int {
	n := 0
	em := h.scene.entityManager
	for _, id := range ecs.GetEntitiesWith1[*components.SparkleComponent](em) {
		sparkle, _ := ecs.GetComponent[*components.SparkleComponent](em, id)
		if sparkle.Layer == layer {
			n++
		}
	}
	return n
}

// TestDrawSceneFullRound 输入名单 → 快捷键开始 → 洗牌 → 刮开 → 重置
func TestDrawSceneFullRound(t *testing.T) {
	h := newSceneHarness(t)
	s := h.scene
	engine := s.Engine()

	s.SetRosterText("Ada\nLinus\n\n  Grace ")
	if got := s.Roster(); len(got) != 3 {
		t.Fatalf("Roster() = %q, want 3 names", got)
	}
	if !s.button(s.startButtonID).Enabled {
		t.Fatal("start button should be enabled with 3 names")
	}

	h.frame(utils.PointerInput{}, utils.KeyboardInput{Enter: true, Ctrl: true})
	if engine.State() != game.DrawStateShuffling {
		t.Fatalf("state after Ctrl+Enter = %s, want SHUFFLING", engine.State())
	}
	if s.input().Enabled || s.button(s.startButtonID).Visible {
		t.Error("roster editing should be locked while shuffling")
	}
	if s.input().Text != "Ada\nLinus\n\n  Grace " {
		t.Errorf("Ctrl+Enter modified the roster: %q", s.input().Text)
	}
	if n := len(ecs.GetEntitiesWith1[*components.VortexItemComponent](s.entityManager)); n != s.cfg.Vortex.Names {
		t.Errorf("vortex items = %d, want %d", n, s.cfg.Vortex.Names)
	}

	h.scheduler.Flush()
	h.scheduler.Update(s.cfg.Draw.PresentationDelay)
	h.idle(1)
	if engine.State() != game.DrawStateScratching {
		t.Fatalf("state after delay = %s, want SCRATCHING", engine.State())
	}
	card := s.card()
	if card == nil || card.Name != "LINUS" || !card.Interactive {
		t.Fatalf("card not mounted correctly: %+v", card)
	}
	if n := len(ecs.GetEntitiesWith1[*components.VortexItemComponent](s.entityManager)); n != 0 {
		t.Errorf("vortex items left after shuffle: %d", n)
	}
	if !s.button(s.resetButtonID).Visible {
		t.Error("reset button should be visible while scratching")
	}

	h.scratchAll()
	if engine.State() != game.DrawStateRevealed {
		t.Fatalf("state after scratching = %s, want REVEALED (coverage %.2f)", engine.State(), s.surface.Coverage())
	}
	if !card.Fading || card.Interactive {
		t.Error("foil should fade and stop accepting input after reveal")
	}
	if len(s.fortuneLines) != 1 || s.fortuneLines[0] != "\"go Linus\"" {
		t.Errorf("fortune lines = %q", s.fortuneLines)
	}

	h.idle(90)
	if card.OverlayAlpha() != 0 {
		t.Errorf("foil alpha after fade = %v", card.OverlayAlpha())
	}
	if h.count(components.SparkleLayerCelebration) == 0 {
		t.Error("celebration sparkles should run while revealed")
	}

	rx, ry, rw, rh := config.CenteredButtonRect(config.ResetButtonWidth, config.ResetButtonHeight, config.ResetButtonY)
	h.click(int(rx+rw/2), int(ry+rh/2))
	if engine.State() != game.DrawStateIdle {
		t.Fatalf("state after RESET SYSTEM = %s, want IDLE", engine.State())
	}
	if s.card() != nil || len(ecs.GetEntitiesWith1[*components.ScratchCardComponent](s.entityManager)) != 0 {
		t.Error("card should be removed on reset")
	}
	if n := h.count(components.SparkleLayerCelebration) + h.count(components.SparkleLayerInline); n != 0 {
		t.Errorf("%d sparkles left after reset", n)
	}
	if !s.input().Enabled || !s.button(s.startButtonID).Visible || s.button(s.resetButtonID).Visible {
		t.Error("idle widgets not restored after reset")
	}
	if last, ok := engine.LastWinner(); !ok || last != "Linus" {
		t.Errorf("LastWinner() = %q, %v", last, ok)
	}
}

// TestDrawSceneRequiresTwoNames 少于两个名字时按钮禁用，快捷键无效且不插入换行
func TestDrawSceneRequiresTwoNames(t *testing.T) {
	h := newSceneHarness(t)
	s := h.scene

	s.SetRosterText("Ada")
	if s.button(s.startButtonID).Enabled {
		t.Error("start button should be disabled with one name")
	}

	h.frame(utils.PointerInput{}, utils.KeyboardInput{Enter: true, Ctrl: true})
	if s.Engine().State() != game.DrawStateIdle {
		t.Fatalf("state = %s, want IDLE", s.Engine().State())
	}
	if s.input().Text != "Ada" {
		t.Errorf("Ctrl+Enter inserted text: %q", s.input().Text)
	}

	bx, by, bw, bh := config.CenteredButtonRect(config.StartButtonWidth, config.StartButtonHeight, config.StartButtonY)
	h.click(int(bx+bw/2), int(by+bh/2))
	if s.Engine().State() != game.DrawStateIdle {
		t.Error("disabled START DRAW started a draw")
	}
}

// TestDrawSceneTyping 键盘输入直接更新名单与统计
func TestDrawSceneTyping(t *testing.T) {
	h := newSceneHarness(t)
	s := h.scene

	h.frame(utils.PointerInput{}, utils.KeyboardInput{Chars: []rune("Ada")})
	h.frame(utils.PointerInput{}, utils.KeyboardInput{Enter: true})
	h.frame(utils.PointerInput{}, utils.KeyboardInput{Chars: []rune("Bob")})

	if got := s.Roster(); len(got) != 2 || got[0] != "Ada" || got[1] != "Bob" {
		t.Fatalf("Roster() = %q", got)
	}
	if !s.button(s.startButtonID).Enabled {
		t.Error("start button should enable after typing two names")
	}

	bx, by, bw, bh := config.CenteredButtonRect(config.StartButtonWidth, config.StartButtonHeight, config.StartButtonY)
	h.click(int(bx+bw/2), int(by+bh/2))
	if s.Engine().State() != game.DrawStateShuffling {
		t.Errorf("START DRAW click: state = %s", s.Engine().State())
	}
}

// TestDrawSceneResetDuringShuffle 洗牌中重置回到 Idle，迟到的祝福语被丢弃
func TestDrawSceneResetDuringShuffle(t *testing.T) {
	h := newSceneHarness(t)
	s := h.scene
	s.SetRosterText("Ada\nLinus")
	s.StartDraw()

	s.Engine().Reset()
	h.scheduler.Flush()
	h.scheduler.Update(s.cfg.Draw.PresentationDelay + 1)
	h.idle(1)

	if s.Engine().State() != game.DrawStateIdle {
		t.Fatalf("state = %s, want IDLE", s.Engine().State())
	}
	if s.card() != nil {
		t.Error("stale result mounted a card")
	}
	if n := len(ecs.GetEntitiesWith1[*components.VortexItemComponent](s.entityManager)); n != 0 {
		t.Errorf("vortex items left after reset: %d", n)
	}
}

// TestDrawSceneToggleEffects F2 关闭特效后不再生成粒子
func TestDrawSceneToggleEffects(t *testing.T) {
	h := newSceneHarness(t)
	s := h.scene

	h.frame(utils.PointerInput{}, utils.KeyboardInput{ToggleEffects: true})
	if h.settings.GetSettings().EffectsEnabled {
		t.Fatal("F2 should disable effects")
	}

	s.sparkleSystem.SetActive(components.SparkleLayerCelebration, true)
	h.idle(120)
	if n := h.count(components.SparkleLayerCelebration); n != 0 {
		t.Errorf("%d sparkles spawned with effects disabled", n)
	}

	h.frame(utils.PointerInput{}, utils.KeyboardInput{ToggleEffects: true})
	if !h.settings.GetSettings().EffectsEnabled {
		t.Error("second F2 should enable effects again")
	}
	if !s.SaveOnExit() {
		t.Error("SaveOnExit with in-memory settings should succeed")
	}
}
