package scratch

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"math/rand/v2"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// 锡箔配色（全息数字风格）
var (
	foilGradientStart = color.NRGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff}
	foilGradientMid   = color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff}
	foilGradientEnd   = color.NRGBA{R: 0x05, G: 0x05, B: 0x05, A: 0xff}
	foilGridColor     = color.NRGBA{R: 0x00, G: 0xf3, B: 0xff, A: 38}  // 15% 不透明
	foilTextureColor  = color.NRGBA{R: 0x00, G: 0xf3, B: 0xff, A: 77}  // 30% 不透明
	foilGlowColor     = color.NRGBA{R: 0x00, G: 0xf3, B: 0xff, A: 110} // 标题光晕
	foilLabelColor    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	foilBorderColor   = color.NRGBA{R: 0x00, G: 0xf3, B: 0xff, A: 0xff}
)

// 锡箔版式参数（像素）
const (
	foilGridStep     = 20
	foilTextureStepX = 40
	foilTextureStepY = 15
	foilBorderInset  = 10
	foilBorderWidth  = 2
	foilDashOn       = 10
	foilDashOff      = 5

	FoilTitle    = "ACCESS GRANTED"
	FoilSubtitle = "SCRATCH TO DECRYPT"
)

// foilSeed 固定种子，保证同尺寸的锡箔图案每次一致
const foilSeed = 0x5eed_f011

var (
	foilFontsOnce sync.Once
	titleFace     font.Face
	subtitleFace  font.Face
	textureFace   font.Face
)

// loadFoilFonts 解析内置 Go 字体；失败时退回 basicfont
func loadFoilFonts() {
	foilFontsOnce.Do(func() {
		titleFace = basicfont.Face7x13
		subtitleFace = basicfont.Face7x13
		textureFace = basicfont.Face7x13

		bold, err := opentype.Parse(gobold.TTF)
		if err != nil {
			log.Printf("[Foil] Warning: failed to parse bold font: %v (using basicfont)", err)
			return
		}
		if face, err := opentype.NewFace(bold, &opentype.FaceOptions{Size: 18, DPI: 72, Hinting: font.HintingFull}); err == nil {
			titleFace = face
		}
		if face, err := opentype.NewFace(bold, &opentype.FaceOptions{Size: 10, DPI: 72, Hinting: font.HintingFull}); err == nil {
			subtitleFace = face
		}

		mono, err := opentype.Parse(gomono.TTF)
		if err != nil {
			log.Printf("[Foil] Warning: failed to parse mono font: %v (using basicfont)", err)
			return
		}
		if face, err := opentype.NewFace(mono, &opentype.FaceOptions{Size: 8, DPI: 72, Hinting: font.HintingFull}); err == nil {
			textureFace = face
		}
	})
}

// PaintFoil 在位图上绘制不透明的锡箔图案
//
// 图层顺序：对角渐变底色 → 网格线 → 二进制纹理 → 中央标题 → 虚线边框。
// 所有图层都以 Over 方式叠加在不透明底色上，因此绘制后每个像素 alpha 均为 255。
func PaintFoil(r *OverlayRaster) {
	loadFoilFonts()

	img := r.img
	w, h := r.Width(), r.Height()

	paintGradient(img)
	paintGrid(img, w, h)
	paintBinaryTexture(img, w, h)
	paintLabel(img, w, h)
	paintDashedBorder(img, w, h)
}

// paintGradient 从左上到右下的三段线性渐变
func paintGradient(img *image.NRGBA) {
	b := img.Rect
	w, h := float64(b.Dx()), float64(b.Dy())
	denom := w*w + h*h
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			// 像素在渐变轴 (0,0)→(w,h) 上的投影位置
			t := (float64(x)*w + float64(y)*h) / denom
			var c color.NRGBA
			if t < 0.5 {
				c = lerpColor(foilGradientStart, foilGradientMid, t*2)
			} else {
				c = lerpColor(foilGradientMid, foilGradientEnd, (t-0.5)*2)
			}
			img.SetNRGBA(b.Min.X+x, b.Min.Y+y, c)
		}
	}
}

// paintGrid 每 20 像素一条 1 像素宽的半透明网格线
func paintGrid(img *image.NRGBA, w, h int) {
	src := image.NewUniform(foilGridColor)
	for x := 0; x < w; x += foilGridStep {
		draw.Draw(img, image.Rect(x, 0, x+1, h), src, image.Point{}, draw.Over)
	}
	for y := 0; y < h; y += foilGridStep {
		draw.Draw(img, image.Rect(0, y, w, y+1), src, image.Point{}, draw.Over)
	}
}

// paintBinaryTexture 铺满随机的 "101" / "010" 小字
func paintBinaryTexture(img *image.NRGBA, w, h int) {
	rng := rand.New(rand.NewPCG(foilSeed, uint64(w)<<32|uint64(h)))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(foilTextureColor),
		Face: textureFace,
	}
	for x := 0; x < w; x += foilTextureStepX {
		for y := 0; y < h; y += foilTextureStepY {
			glyphs := "010"
			if rng.Float64() > 0.5 {
				glyphs = "101"
			}
			d.Dot = fixed.P(x, y)
			d.DrawString(glyphs)
		}
	}
}

// paintLabel 居中绘制两行标题，标题带一层青色光晕
func paintLabel(img *image.NRGBA, w, h int) {
	cx, cy := w/2, h/2

	// 光晕：四向偏移的半透明青色副本
	for _, off := range []image.Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		drawCentered(img, titleFace, foilGlowColor, FoilTitle, cx+off.X, cy-10+off.Y)
	}
	drawCentered(img, titleFace, foilLabelColor, FoilTitle, cx, cy-10)
	drawCentered(img, subtitleFace, foilLabelColor, FoilSubtitle, cx, cy+15)
}

// drawCentered 以 (cx, cy) 为水平与垂直中心绘制单行文本
func drawCentered(img *image.NRGBA, face font.Face, c color.Color, s string, cx, cy int) {
	d := &font.Drawer{Dst: img, Src: image.NewUniform(c), Face: face}
	width := d.MeasureString(s).Round()
	m := face.Metrics()
	// 基线 = 中心 + (ascent - descent) / 2
	baseline := cy + (m.Ascent.Round()-m.Descent.Round())/2
	d.Dot = fixed.P(cx-width/2, baseline)
	d.DrawString(s)
}

// paintDashedBorder 沿内缩 10 像素的矩形绘制 [10, 5] 虚线边框
func paintDashedBorder(img *image.NRGBA, w, h int) {
	left, top := float64(foilBorderInset), float64(foilBorderInset)
	right, bottom := float64(w-foilBorderInset), float64(h-foilBorderInset)
	if right <= left || bottom <= top {
		return
	}

	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Over

	// 虚线图案沿周长连续，顺时针走过四条边
	corners := [][2]float64{{left, top}, {right, top}, {right, bottom}, {left, bottom}, {left, top}}
	phase := 0.0
	half := float64(foilBorderWidth) / 2
	for i := 0; i+1 < len(corners); i++ {
		ax, ay := corners[i][0], corners[i][1]
		bx, by := corners[i+1][0], corners[i+1][1]
		length := math.Abs(bx-ax) + math.Abs(by-ay)
		dx, dy := (bx-ax)/length, (by-ay)/length
		for pos := 0.0; pos < length; {
			period := float64(foilDashOn + foilDashOff)
			inPeriod := math.Mod(phase+pos, period)
			if inPeriod >= foilDashOn {
				pos += period - inPeriod
				continue
			}
			run := min(float64(foilDashOn)-inPeriod, length-pos)
			sx, sy := ax+dx*pos, ay+dy*pos
			ex, ey := ax+dx*(pos+run), ay+dy*(pos+run)
			addRect(z, min(sx, ex)-half, min(sy, ey)-half, max(sx, ex)+half, max(sy, ey)+half)
			pos += run
		}
		phase += length
	}
	z.Draw(img, img.Bounds(), image.NewUniform(foilBorderColor), image.Point{})
}

// addRect 向光栅化器追加一个轴对齐矩形子路径
func addRect(z *vector.Rasterizer, x0, y0, x1, y1 float64) {
	z.MoveTo(float32(x0), float32(y0))
	z.LineTo(float32(x1), float32(y0))
	z.LineTo(float32(x1), float32(y1))
	z.LineTo(float32(x0), float32(y1))
	z.ClosePath()
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	l := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: l(a.A, b.A)}
}
