package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/novadraw/pkg/components"
	"github.com/gonewx/novadraw/pkg/ecs"
)

// 卡面配色
var (
	cardBackground = color.NRGBA{R: 0x04, G: 0x06, B: 0x10, A: 0xff}
	cardFrame      = color.NRGBA{R: 0x00, G: 0xf3, B: 0xff, A: 120}
	cardNameColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	cardNameGlow   = color.NRGBA{R: 0x9d, G: 0x00, B: 0xff, A: 140}
)

// ScratchRenderSystem 刮刮卡渲染系统
// 底层绘制中奖者姓名与说明文字，上层绘制遮罩位图（脏标记时重新上传纹理）
type ScratchRenderSystem struct {
	entityManager *ecs.EntityManager
	nameFace      *text.GoTextFace
	captionFace   *text.GoTextFace
}

// NewScratchRenderSystem 创建刮刮卡渲染系统
func NewScratchRenderSystem(em *ecs.EntityManager, nameFace, captionFace *text.GoTextFace) *ScratchRenderSystem {
	return &ScratchRenderSystem{
		entityManager: em,
		nameFace:      nameFace,
		captionFace:   captionFace,
	}
}

// Draw 绘制所有刮刮卡
func (s *ScratchRenderSystem) Draw(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.ScratchCardComponent](s.entityManager) {
		card, _ := ecs.GetComponent[*components.ScratchCardComponent](s.entityManager, id)
		s.drawCard(screen, card)
	}
}

func (s *ScratchRenderSystem) drawCard(screen *ebiten.Image, card *components.ScratchCardComponent) {
	d := card.Display
	x, y, w, h := float32(d.X), float32(d.Y), float32(d.W), float32(d.H)

	// 底层：卡片与姓名
	vector.DrawFilledRect(screen, x, y, w, h, cardBackground, false)
	vector.StrokeRect(screen, x, y, w, h, 2, cardFrame, false)
	if s.nameFace != nil && card.Name != "" {
		cx, cy := d.X+d.W/2, d.Y+d.H/2
		for _, off := range [][2]float64{{-2, 0}, {2, 0}, {0, -2}, {0, 2}} {
			s.drawName(screen, card.Name, cx+off[0], cy+off[1], cardNameGlow)
		}
		s.drawName(screen, card.Name, cx, cy, cardNameColor)
	}
	if s.captionFace != nil && card.Caption != "" {
		op := &text.DrawOptions{}
		op.LayoutOptions.PrimaryAlign = text.AlignCenter
		op.LayoutOptions.SecondaryAlign = text.AlignCenter
		op.GeoM.Translate(d.X+d.W/2, d.Y+d.H*0.78)
		op.ColorScale.ScaleWithColor(cardFrame)
		text.Draw(screen, card.Caption, s.captionFace, op)
	}

	// 上层：遮罩
	if card.Surface == nil || !card.Surface.Initialized() {
		return
	}
	alpha := card.OverlayAlpha()
	if alpha <= 0 {
		return
	}
	raster := card.Surface.Raster()
	if card.Overlay == nil || card.Overlay.Bounds().Dx() != raster.Width() || card.Overlay.Bounds().Dy() != raster.Height() {
		if card.Overlay != nil {
			card.Overlay.Deallocate()
		}
		card.Overlay = ebiten.NewImage(raster.Width(), raster.Height())
		card.Surface.TakeDirty()
		card.Overlay.WritePixels(raster.Image().Pix)
	} else if card.Surface.TakeDirty() {
		card.Overlay.WritePixels(raster.Image().Pix)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(d.W/float64(raster.Width()), d.H/float64(raster.Height()))
	op.GeoM.Translate(d.X, d.Y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(card.Overlay, op)
}

func (s *ScratchRenderSystem) drawName(screen *ebiten.Image, name string, cx, cy float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, name, s.nameFace, op)
}
