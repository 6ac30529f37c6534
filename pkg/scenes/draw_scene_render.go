package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/novadraw/pkg/components"
	"github.com/gonewx/novadraw/pkg/config"
	"github.com/gonewx/novadraw/pkg/game"
	"github.com/gonewx/novadraw/pkg/utils"
)

// 背景配色
var (
	backgroundColor = color.NRGBA{R: 0x05, G: 0x05, B: 0x0a, A: 0xff}
	gridColor       = color.NRGBA{R: 0x00, G: 0xf3, B: 0xff, A: 10}
	cyanHaze        = color.NRGBA{R: 0x00, G: 0xf3, B: 0xff, A: 14}
	violetHaze      = color.NRGBA{R: 0x9d, G: 0x00, B: 0xff, A: 14}
	headerGlow      = color.NRGBA{R: 0x00, G: 0xf3, B: 0xff, A: 70}
	dimText         = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 80}
	whiteText       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	fortunePanel    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 8}
	fortuneBorder   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 26}
)

const gridStep = 40

// 祝福语面板揭晓后的淡入时长（秒）与上滑距离（像素）
const (
	fortuneFadeIn = 0.6
	fortuneSlide  = 12.0
)

// Draw 按当前状态绘制场景
func (s *DrawScene) Draw(screen *ebiten.Image) {
	s.drawBackground(screen)
	s.drawHeader(screen)

	switch s.engine.State() {
	case game.DrawStateIdle:
		s.drawIdle(screen)
	case game.DrawStateShuffling:
		s.drawShuffling(screen)
	case game.DrawStateScratching, game.DrawStateRevealed:
		s.drawOutcome(screen)
	}

	s.sparkleRender.Draw(screen, components.SparkleLayerCelebration)
	s.drawFooter(screen)
}

func (s *DrawScene) drawBackground(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	for x := gridStep; x < config.ScreenWidth; x += gridStep {
		vector.StrokeLine(screen, float32(x), 0, float32(x), config.ScreenHeight, 1, gridColor, false)
	}
	for y := gridStep; y < config.ScreenHeight; y += gridStep {
		vector.StrokeLine(screen, 0, float32(y), config.ScreenWidth, float32(y), 1, gridColor, false)
	}
	vector.DrawFilledCircle(screen, config.ScreenWidth-120, 140, 220, cyanHaze, true)
	vector.DrawFilledCircle(screen, 120, config.ScreenHeight-140, 220, violetHaze, true)
}

func (s *DrawScene) drawHeader(screen *ebiten.Image) {
	cx := float64(config.ScreenWidth) / 2
	for _, off := range [][2]float64{{-2, 0}, {2, 0}, {0, -2}, {0, 2}} {
		drawCenteredText(screen, headerText, s.headerFace, cx+off[0], config.HeaderY+off[1], headerGlow)
	}
	drawCenteredText(screen, headerText, s.headerFace, cx, config.HeaderY, whiteText)

	drawCenteredText(screen, taglineText, s.smallFace, cx, config.TaglineY, accentCyan)
	w, _ := text.Measure(taglineText, s.smallFace, 0)
	left := float32(cx - w/2 - 12)
	right := float32(cx + w/2 + 12)
	vector.StrokeLine(screen, left-24, config.TaglineY, left, config.TaglineY, 1, accentCyan, false)
	vector.StrokeLine(screen, right, config.TaglineY, right+24, config.TaglineY, 1, accentCyan, false)
}

func (s *DrawScene) drawIdle(screen *ebiten.Image) {
	// 呼吸指示灯
	pulse := 0.5 + 0.5*math.Sin(s.elapsed*2*math.Pi)
	vector.DrawFilledCircle(screen, config.InputX+4, config.RegistryLabelY, 3, accentCyan, true)
	vector.DrawFilledCircle(screen, config.InputX+4, config.RegistryLabelY, float32(3+4*pulse), fadeColor(accentCyan, 0.4*(1-pulse)), true)
	drawText(screen, registryText, s.labelFace, config.InputX+16, config.RegistryLabelY, accentCyan, text.AlignStart)

	s.textInputRender.Draw(screen)

	counter := fmt.Sprintf("%d SUBJECTS", len(s.roster))
	drawText(screen, counter, s.smallFace, config.InputX+config.InputWidth, config.CounterY, dimText, text.AlignEnd)
	drawText(screen, shortcutText, s.smallFace, config.InputX, config.CounterY, dimText, text.AlignStart)

	s.buttonRender.DrawButton(screen, s.startButtonID)
}

func (s *DrawScene) drawShuffling(screen *ebiten.Image) {
	s.vortexSystem.Draw(screen)

	cx := float64(config.ScreenWidth) / 2
	pulse := 0.6 + 0.4*math.Sin(s.elapsed*2*math.Pi)
	drawCenteredText(screen, scanningText, s.labelFace, cx, config.ScanCaptionY, fadeColor(accentCyan, pulse))
	drawCenteredText(screen, singularityText, s.smallFace, cx, config.ScanCaptionY+22, dimText)
}

func (s *DrawScene) drawOutcome(screen *ebiten.Image) {
	cx := float64(config.ScreenWidth) / 2
	revealed := s.engine.State() == game.DrawStateRevealed

	drawCenteredText(screen, outcomeText, s.smallFace, cx, config.OutcomeTitleY, accentCyan)
	badge := sealText
	if revealed {
		badge = successText
	}
	drawCenteredText(screen, badge, s.labelFace, cx, config.OutcomeBadgeY, whiteText)

	s.scratchRender.Draw(screen)
	s.sparkleRender.Draw(screen, components.SparkleLayerInline)
	s.sparkSystem.Draw(screen)

	if revealed && len(s.fortuneLines) > 0 {
		a := utils.EaseOutCubic(min(1, (s.elapsed-s.revealedAt)/fortuneFadeIn))
		top := config.FortuneY + utils.Lerp(fortuneSlide, 0, a)
		lineHeight := config.FortuneFontSz * 1.5
		height := lineHeight*float64(len(s.fortuneLines)) + 24
		px := float32(cx - config.FortuneWidth/2 - 20)
		py := float32(top - 12)
		vector.DrawFilledRect(screen, px, py, config.FortuneWidth+40, float32(height), fadeColor(fortunePanel, a), false)
		vector.StrokeRect(screen, px, py, config.FortuneWidth+40, float32(height), 1, fadeColor(fortuneBorder, a), false)
		for i, line := range s.fortuneLines {
			drawCenteredText(screen, line, s.fortuneFace, cx, top+lineHeight*(float64(i)+0.5), fadeColor(whiteText, a))
		}
	}

	s.buttonRender.DrawButton(screen, s.resetButtonID)
}

func (s *DrawScene) drawFooter(screen *ebiten.Image) {
	drawCenteredText(screen, footerText, s.smallFace, float64(config.ScreenWidth)/2, config.ScreenHeight-22, dimText)
	status := effectsOnText
	if !s.effectsEnabled() {
		status = effectsOffText
	}
	drawText(screen, status, s.smallFace, config.ScreenWidth-16, config.ScreenHeight-22, dimText, text.AlignEnd)
}

// drawCenteredText 以 (x, y) 为中心绘制单行文本
func drawCenteredText(screen *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.Color) {
	drawText(screen, str, face, x, y, clr, text.AlignCenter)
}

// drawText 绘制垂直居中的单行文本，align 控制水平对齐
func drawText(screen *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = align
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

func fadeColor(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(math.Max(0, math.Min(1, alpha)) * float64(c.A))
	return c
}
