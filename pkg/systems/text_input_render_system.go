package systems

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/novadraw/pkg/components"
	"github.com/gonewx/novadraw/pkg/ecs"
)

// 输入框配色
var (
	inputBackground  = color.NRGBA{R: 0x02, G: 0x04, B: 0x0c, A: 200}
	inputBorder      = color.NRGBA{R: 0x00, G: 0xf3, B: 0xff, A: 90}
	inputBorderFocus = color.NRGBA{R: 0x00, G: 0xf3, B: 0xff, A: 0xff}
	inputTextColor   = color.NRGBA{R: 0xd8, G: 0xfb, B: 0xff, A: 0xff}
	inputPlaceholder = color.NRGBA{R: 0x60, G: 0x78, B: 0x80, A: 0xff}
	inputLockedText  = color.NRGBA{R: 0x80, G: 0x90, B: 0x98, A: 0xff}
)

// TextInputRenderSystem 文本输入框渲染系统
// 负责绘制输入框边框、背景、可见行和光标
type TextInputRenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewTextInputRenderSystem 创建文本输入框渲染系统
func NewTextInputRenderSystem(em *ecs.EntityManager) *TextInputRenderSystem {
	return &TextInputRenderSystem{
		entityManager: em,
	}
}

// Draw 绘制所有文本输入框
func (s *TextInputRenderSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.TextInputComponent, *components.PositionComponent](s.entityManager)
	for _, entityID := range entities {
		input, _ := ecs.GetComponent[*components.TextInputComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
		s.DrawInputBox(screen, input, pos)
	}
}

// DrawInputBox 绘制单个输入框
func (s *TextInputRenderSystem) DrawInputBox(screen *ebiten.Image, input *components.TextInputComponent, pos *components.PositionComponent) {
	x, y := float32(pos.X), float32(pos.Y)
	w, h := float32(input.Width), float32(input.Height)

	vector.DrawFilledRect(screen, x, y, w, h, inputBackground, false)
	border := inputBorder
	if input.IsFocused && input.Enabled {
		border = inputBorderFocus
	}
	vector.StrokeRect(screen, x, y, w, h, 1.5, border, false)

	if input.Font == nil {
		return
	}

	textX := pos.X + input.Padding
	textY := pos.Y + input.Padding

	if input.Text == "" {
		if input.Placeholder != "" {
			for i, line := range strings.Split(input.Placeholder, "\n") {
				s.drawLine(screen, input, line, textX, textY+float64(i)*input.LineHeight, inputPlaceholder)
			}
		}
	} else {
		clr := inputTextColor
		if !input.Enabled {
			clr = inputLockedText
		}
		lines := strings.Split(input.Text, "\n")
		visible := VisibleLines(input)
		for i := 0; i < visible && input.ScrollLine+i < len(lines); i++ {
			s.drawLine(screen, input, lines[input.ScrollLine+i], textX, textY+float64(i)*input.LineHeight, clr)
		}
	}

	if input.IsFocused && input.Enabled && input.CursorVisible {
		s.drawCursor(screen, input, textX, textY)
	}
}

// drawLine 绘制一行文本，超出宽度的部分被裁掉
func (s *TextInputRenderSystem) drawLine(screen *ebiten.Image, input *components.TextInputComponent, line string, x, y float64, clr color.Color) {
	if line == "" {
		return
	}
	maxWidth := input.Width - 2*input.Padding
	for len(line) > 0 {
		if w, _ := text.Measure(line, input.Font, 0); w <= maxWidth {
			break
		}
		runes := []rune(line)
		line = string(runes[:len(runes)-1])
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y+(input.LineHeight-input.Font.Size)/2)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, line, input.Font, op)
}

// drawCursor 绘制光标（2 像素宽的竖线）
func (s *TextInputRenderSystem) drawCursor(screen *ebiten.Image, input *components.TextInputComponent, textX, textY float64) {
	line, col := CursorLineColumn(input.Text, input.CursorPosition)
	row := line - input.ScrollLine
	if row < 0 || row >= VisibleLines(input) {
		return
	}

	var width float64
	if before := string([]rune(lineAt(input.Text, line))[:col]); before != "" {
		width, _ = text.Measure(before, input.Font, 0)
	}

	cx := float32(textX + width)
	cy := float32(textY + float64(row)*input.LineHeight + 3)
	vector.DrawFilledRect(screen, cx, cy, 2, float32(input.LineHeight-6), inputBorderFocus, false)
}
