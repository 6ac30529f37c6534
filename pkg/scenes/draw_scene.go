package scenes

import (
	"image/color"
	"log"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/gonewx/novadraw/pkg/components"
	"github.com/gonewx/novadraw/pkg/config"
	"github.com/gonewx/novadraw/pkg/ecs"
	"github.com/gonewx/novadraw/pkg/game"
	"github.com/gonewx/novadraw/pkg/scratch"
	"github.com/gonewx/novadraw/pkg/systems"
	"github.com/gonewx/novadraw/pkg/utils"
)

// 界面文案
const (
	headerText       = "NOVA DRAW"
	taglineText      = "PROTOCOL F21"
	registryText     = "REGISTRY"
	placeholderText  = "INPUT NAMES (LINE BY LINE)..."
	startText        = "START DRAW"
	shortcutText     = "CTRL+ENTER TO START"
	scanningText     = "SCANNING REALITIES"
	singularityText  = "SINGULARITY LOCKED"
	outcomeText      = "OUTCOME ISOLATED"
	sealText         = "HOLOGRAPHIC SEAL"
	successText      = "PROTOCOL SUCCESS"
	selectedText     = "SELECTED SUBJECT"
	resetText        = "RESET SYSTEM"
	footerText       = "QUANTUM LOGIC V7"
	effectsOnText    = "F2 EFFECTS: ON"
	effectsOffText   = "F2 EFFECTS: OFF"
	rosterInputLimit = 20000
)

// 主色
var (
	accentCyan   = color.NRGBA{R: 0x00, G: 0xf3, B: 0xff, A: 0xff}
	accentViolet = color.NRGBA{R: 0x9d, G: 0x00, B: 0xff, A: 0xff}
)

// DrawSceneDeps 抽奖场景的依赖
type DrawSceneDeps struct {
	Config    *config.DrawConfig
	Scheduler *game.Scheduler
	Hype      game.HypeFetcher
	Settings  *game.SettingsManager

	// 以下可选，测试时注入
	Random   game.RandomSource
	Effects  *rand.Rand
	Pointer  func() utils.PointerInput
	Keyboard func() utils.KeyboardInput
	Clock    func() time.Time
}

// DrawScene 抽奖主界面
//
// 按 DrawEngine 的状态切换显示内容：
//   - Idle：名单输入框、人数统计、START DRAW
//   - Shuffling：名字漩涡
//   - Scratching / Revealed：刮刮卡、祝福语、RESET SYSTEM
type DrawScene struct {
	cfg      *config.DrawConfig
	engine   *game.DrawEngine
	settings *game.SettingsManager

	entityManager *ecs.EntityManager

	// 每帧只读取一次输入，所有系统共享同一快照
	pointerSource  func() utils.PointerInput
	keyboardSource func() utils.KeyboardInput
	pointer        utils.PointerInput
	keys           utils.KeyboardInput

	lifetimeSystem    *systems.LifetimeSystem
	sparkleSystem     *systems.SparkleSystem
	sparkleRender     *systems.SparkleRenderSystem
	buttonSystem      *systems.ButtonSystem
	buttonRender      *systems.ButtonRenderSystem
	textInputSystem   *systems.TextInputSystem
	textInputRender   *systems.TextInputRenderSystem
	scratchCardSystem *systems.ScratchCardSystem
	scratchRender     *systems.ScratchRenderSystem
	sparkSystem       *systems.ScratchSparkSystem
	vortexSystem      *systems.VortexSystem

	surface *scratch.RevealSurface

	inputID       ecs.EntityID
	startButtonID ecs.EntityID
	resetButtonID ecs.EntityID
	cardID        ecs.EntityID
	hasCard       bool
	// spareOverlay 上一轮的遮罩纹理，尺寸不变时直接复用
	spareOverlay *ebiten.Image

	roster       []string
	fortuneLines []string
	elapsed      float64
	revealedAt   float64 // 揭晓时刻的 elapsed，用于祝福语面板淡入

	headerFace  *text.GoTextFace
	labelFace   *text.GoTextFace
	smallFace   *text.GoTextFace
	fortuneFace *text.GoTextFace
}

// NewDrawScene 创建抽奖场景
func NewDrawScene(deps DrawSceneDeps) *DrawScene {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultDrawConfig()
	}
	pointer := deps.Pointer
	if pointer == nil {
		pointer = utils.PollPointer
	}
	keyboard := deps.Keyboard
	if keyboard == nil {
		keyboard = utils.PollKeyboard
	}

	s := &DrawScene{
		cfg:            cfg,
		settings:       deps.Settings,
		entityManager:  ecs.NewEntityManager(),
		pointerSource:  pointer,
		keyboardSource: keyboard,
		roster:         []string{},
		headerFace:     utils.MustLoadFace(utils.FontBold, config.HeaderFontSize),
		labelFace:      utils.MustLoadFace(utils.FontBold, 13),
		smallFace:      utils.MustLoadFace(utils.FontMono, 11),
		fortuneFace:    utils.MustLoadFace(utils.FontRegular, config.FortuneFontSz),
	}

	s.engine = game.NewDrawEngine(deps.Scheduler, deps.Hype, deps.Random, cfg.Draw.PresentationDelay)
	s.engine.OnStateChange(s.onStateChange)

	s.surface = scratch.NewRevealSurface(scratch.Options{
		StrokeWidth:     cfg.Scratch.StrokeWidth,
		RevealThreshold: cfg.Scratch.RevealThreshold,
		CheckInterval:   cfg.Scratch.CheckInterval(),
		SampleStride:    cfg.Scratch.SampleStride,
		Clock:           deps.Clock,
	})
	s.surface.SetOnReveal(s.engine.OnSurfaceRevealed)

	em := s.entityManager
	snapPointer := func() utils.PointerInput { return s.pointer }
	snapKeys := func() utils.KeyboardInput { return s.keys }

	s.lifetimeSystem = systems.NewLifetimeSystem(em)
	s.sparkleSystem = systems.NewSparkleSystem(em, deps.Effects, s.effectsEnabled)
	s.sparkleRender = systems.NewSparkleRenderSystem(em)
	s.buttonSystem = systems.NewButtonSystem(em, snapPointer)
	s.buttonRender = systems.NewButtonRenderSystem(em)
	s.textInputSystem = systems.NewTextInputSystem(em, snapKeys, snapPointer)
	s.textInputRender = systems.NewTextInputRenderSystem(em)
	s.sparkSystem = systems.NewScratchSparkSystem(em, deps.Effects, s.effectsEnabled)
	s.scratchCardSystem = systems.NewScratchCardSystem(em, snapPointer, s.sparkSystem.Emit)
	s.scratchRender = systems.NewScratchRenderSystem(em,
		utils.MustLoadFace(utils.FontBold, config.WinnerFontSz), s.labelFace)
	s.vortexSystem = systems.NewVortexSystem(em, cfg.Vortex,
		config.ScreenWidth/2, config.VortexCenterY, config.VortexRadius, deps.Effects)

	s.createWidgets()
	return s
}

// createWidgets 创建常驻的输入框、按钮与闪光发射器
func (s *DrawScene) createWidgets() {
	em := s.entityManager

	s.inputID = em.CreateEntity()
	em.AddComponent(s.inputID, &components.PositionComponent{X: config.InputX, Y: config.InputY})
	em.AddComponent(s.inputID, &components.TextInputComponent{
		Font:        utils.MustLoadFace(utils.FontRegular, config.InputFontSize),
		Width:       config.InputWidth,
		Height:      config.InputHeight,
		LineHeight:  config.InputLineHeight,
		Padding:     config.InputPadding,
		MaxLength:   rosterInputLimit,
		Placeholder: placeholderText,
		IsFocused:   true,
		Enabled:     true,
		OnChange:    s.onRosterChanged,
	})

	buttonFace := utils.MustLoadFace(utils.FontBold, 20)
	x, y, w, h := config.CenteredButtonRect(config.StartButtonWidth, config.StartButtonHeight, config.StartButtonY)
	s.startButtonID = systems.CreateButton(em, x, y, &components.ButtonComponent{
		Text:    startText,
		Font:    buttonFace,
		Accent:  accentCyan,
		Width:   w,
		Height:  h,
		Visible: true,
		OnClick: s.StartDraw,
	})

	x, y, w, h = config.CenteredButtonRect(config.ResetButtonWidth, config.ResetButtonHeight, config.ResetButtonY)
	s.resetButtonID = systems.CreateButton(em, x, y, &components.ButtonComponent{
		Text:    resetText,
		Font:    utils.MustLoadFace(utils.FontBold, 16),
		Accent:  accentViolet,
		Width:   w,
		Height:  h,
		Enabled: true,
		OnClick: s.engine.Reset,
	})

	cx, cy, cw, ch := config.CardRect(s.cfg.Card.Width, s.cfg.Card.Height)
	const margin = 24.0
	s.sparkleSystem.CreateEmitter(components.SparkleLayerInline,
		cx-margin, cy-margin, cw+2*margin, ch+2*margin, s.cfg.Sparkles.Inline)
	s.sparkleSystem.CreateEmitter(components.SparkleLayerCelebration,
		0, 0, config.ScreenWidth, config.ScreenHeight, s.cfg.Sparkles.Celebration)
}

// Engine 返回抽奖状态机
func (s *DrawScene) Engine() *game.DrawEngine {
	return s.engine
}

// Roster 返回当前解析出的名单
func (s *DrawScene) Roster() []string {
	return s.roster
}

// SetRosterText 替换名单文本（同时刷新统计与按钮状态）
func (s *DrawScene) SetRosterText(raw string) {
	s.textInputSystem.SetText(s.input(), raw)
}

// StartDraw 用当前名单开始抽奖；名单不足或不在 Idle 时无效
func (s *DrawScene) StartDraw() {
	if !s.engine.StartDraw(s.roster) {
		log.Printf("[DrawScene] Start ignored (state=%s, subjects=%d)", s.engine.State(), len(s.roster))
	}
}

func (s *DrawScene) onRosterChanged(raw string) {
	s.roster = game.ParseRoster(raw)
	s.button(s.startButtonID).Enabled = len(s.roster) >= 2
}

func (s *DrawScene) effectsEnabled() bool {
	return s.settings == nil || s.settings.GetSettings().EffectsEnabled
}

// Update 推进场景：输入 → 交互系统 → 动画 → 清理
func (s *DrawScene) Update(deltaTime float64) {
	s.elapsed += deltaTime
	s.pointer = s.pointerSource()
	s.keys = s.keyboardSource()

	if s.keys.ToggleEffects {
		s.toggleEffects()
	}
	if s.keys.Ctrl && s.keys.Enter && s.engine.State() == game.DrawStateIdle {
		s.StartDraw()
		// 快捷键不能再被输入框当作换行
		s.keys.Enter = false
	}

	s.textInputSystem.Update(deltaTime)
	s.buttonSystem.Update(deltaTime)
	s.scratchCardSystem.Update(deltaTime)

	if s.engine.State() == game.DrawStateShuffling {
		s.vortexSystem.Update(deltaTime)
	}
	s.sparkleSystem.Update(deltaTime)
	s.sparkSystem.Update(deltaTime)
	s.lifetimeSystem.Update(deltaTime)

	s.entityManager.RemoveMarkedEntities()
}

// toggleEffects 切换闪光特效并持久化
func (s *DrawScene) toggleEffects() {
	if s.settings == nil {
		return
	}
	enabled := s.settings.ToggleEffects()
	if !enabled {
		s.sparkleSystem.ClearSparkles(components.SparkleLayerInline)
		s.sparkleSystem.ClearSparkles(components.SparkleLayerCelebration)
		s.sparkSystem.Clear()
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[DrawScene] Warning: failed to save settings: %v", err)
	}
	log.Printf("[DrawScene] Effects enabled: %v", enabled)
}

// onStateChange 根据状态切换显示内容
func (s *DrawScene) onStateChange(prev, next game.DrawState) {
	input := s.input()
	start := s.button(s.startButtonID)
	reset := s.button(s.resetButtonID)

	switch next {
	case game.DrawStateShuffling:
		input.Enabled = false
		input.IsFocused = false
		start.Visible = false
		s.vortexSystem.Spawn(s.roster)

	case game.DrawStateScratching:
		s.vortexSystem.Clear()
		s.mountCard()
		reset.Visible = true

	case game.DrawStateRevealed:
		if card := s.card(); card != nil {
			systems.StartFade(card, s.cfg.Draw.RevealFade)
		}
		s.sparkleSystem.SetActive(components.SparkleLayerInline, true)
		s.sparkleSystem.SetActive(components.SparkleLayerCelebration, true)
		s.revealedAt = s.elapsed
		s.fortuneLines = nil
		if w, ok := s.engine.Winner(); ok && w.Fortune != nil {
			s.fortuneLines = utils.WrapText("\""+*w.Fortune+"\"", s.fortuneFace, config.FortuneWidth)
		}

	case game.DrawStateIdle:
		s.vortexSystem.Clear()
		s.unmountCard()
		s.sparkleSystem.SetActive(components.SparkleLayerInline, false)
		s.sparkleSystem.SetActive(components.SparkleLayerCelebration, false)
		s.sparkleSystem.ClearSparkles(components.SparkleLayerInline)
		s.sparkleSystem.ClearSparkles(components.SparkleLayerCelebration)
		s.sparkSystem.Clear()
		s.fortuneLines = nil
		reset.Visible = false
		start.Visible = true
		start.Enabled = len(s.roster) >= 2
		input.Enabled = true
		input.IsFocused = true
	}
}

// mountCard 初始化锡箔并创建刮刮卡实体
func (s *DrawScene) mountCard() {
	w, ok := s.engine.Winner()
	if !ok {
		return
	}
	s.surface.Initialize(s.cfg.Card.Width, s.cfg.Card.Height)

	x, y, cw, ch := config.CardRect(s.cfg.Card.Width, s.cfg.Card.Height)
	card := &components.ScratchCardComponent{
		Surface:     s.surface,
		Display:     scratch.Rect{X: x, Y: y, W: cw, H: ch},
		Name:        utils.DisplayName(w.Name),
		Caption:     selectedText,
		Interactive: true,
	}
	s.unmountCard()
	card.Overlay = s.spareOverlay
	s.cardID = s.entityManager.CreateEntity()
	s.entityManager.AddComponent(s.cardID, card)
	s.hasCard = true
}

// unmountCard 移除刮刮卡实体，纹理留给下一轮复用
func (s *DrawScene) unmountCard() {
	card := s.card()
	if card == nil {
		return
	}
	card.Surface.EndStroke()
	s.entityManager.DestroyEntity(s.cardID)
	s.hasCard = false
	s.spareOverlay = card.Overlay
}

func (s *DrawScene) card() *components.ScratchCardComponent {
	if !s.hasCard {
		return nil
	}
	card, ok := ecs.GetComponent[*components.ScratchCardComponent](s.entityManager, s.cardID)
	if !ok {
		return nil
	}
	return card
}

func (s *DrawScene) input() *components.TextInputComponent {
	input, _ := ecs.GetComponent[*components.TextInputComponent](s.entityManager, s.inputID)
	return input
}

func (s *DrawScene) button(id ecs.EntityID) *components.ButtonComponent {
	button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
	return button
}

// SaveOnExit 退出时保存设置
func (s *DrawScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[DrawScene] Failed to save settings on exit: %v", err)
		return false
	}
	return true
}
