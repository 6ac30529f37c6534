// Package scratch 实现刮刮卡的核心机制
//
// 包含两部分：
//   - OverlayRaster：CPU 端的 NRGBA 遮罩位图（"锡箔"），支持圆头线段擦除与透明度采样
//   - RevealSurface：在位图之上的刮擦手势状态机，负责覆盖率检测与一次性揭晓事件
//
// 本包不依赖 Ebitengine，所有逻辑均可在无 GPU 环境下测试。
// 渲染层（systems.ScratchRenderSystem）负责把位图上传到 ebiten.Image。
package scratch

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// eraseCoverageCutoff 像素被判定为"擦除"的最低覆盖率（0-255）
// 采用二值化擦除：覆盖率过半即把 alpha 直接写 0，保证同一像素重复擦除是幂等的
const eraseCoverageCutoff = 128

// capSegments 每个半圆端帽的多边形细分段数
const capSegments = 24

// OverlayRaster 刮刮卡遮罩位图
//
// 不变式：某像素 alpha 一旦为 0，在本实例生命周期内永不回升。
type OverlayRaster struct {
	img *image.NRGBA
	// 复用的光栅化器，每次擦除前按包围盒尺寸 Reset
	rasterizer *vector.Rasterizer
}

// NewOverlayRaster 创建指定尺寸的全透明位图
// 通常紧接着调用 PaintFoil 填充不透明的锡箔图案
func NewOverlayRaster(width, height int) *OverlayRaster {
	if width <= 0 || height <= 0 {
		panic("scratch: overlay raster requires positive dimensions")
	}
	return &OverlayRaster{
		img:        image.NewNRGBA(image.Rect(0, 0, width, height)),
		rasterizer: vector.NewRasterizer(1, 1),
	}
}

// Width 返回位图宽度（像素）
func (r *OverlayRaster) Width() int {
	return r.img.Rect.Dx()
}

// Height 返回位图高度（像素）
func (r *OverlayRaster) Height() int {
	return r.img.Rect.Dy()
}

// Image 返回底层像素缓冲，供渲染层上传纹理
// 调用方不得修改返回的图像
func (r *OverlayRaster) Image() *image.NRGBA {
	return r.img
}

// AlphaAt 返回 (x, y) 处的 alpha 值，越界返回 0
func (r *OverlayRaster) AlphaAt(x, y int) uint8 {
	if !(image.Point{X: x, Y: y}).In(r.img.Rect) {
		return 0
	}
	return r.img.Pix[r.img.PixOffset(x, y)+3]
}

// EraseDisc 擦除以 (cx, cy) 为圆心、直径为 diameter 的圆形区域
// 返回本次新变为透明的像素数
func (r *OverlayRaster) EraseDisc(cx, cy, diameter float64) int {
	return r.EraseSegment(cx, cy, cx, cy, diameter)
}

// EraseSegment 擦除从 (x0, y0) 到 (x1, y1) 的圆头圆角线段（胶囊形）
//
// 快速移动指针时两次采样点之间相距很远，用胶囊而不是两个圆点保证擦除路径连续。
// 超出位图范围的部分被裁剪。返回本次新变为透明的像素数。
func (r *OverlayRaster) EraseSegment(x0, y0, x1, y1, width float64) int {
	radius := width / 2
	if radius <= 0 {
		return 0
	}

	// 胶囊的整数包围盒（不裁剪，保证多边形完全落在局部光栅化器范围内）
	box := image.Rect(
		int(math.Floor(math.Min(x0, x1)-radius))-1,
		int(math.Floor(math.Min(y0, y1)-radius))-1,
		int(math.Ceil(math.Max(x0, x1)+radius))+1,
		int(math.Ceil(math.Max(y0, y1)+radius))+1,
	)
	visible := box.Intersect(r.img.Rect)
	if visible.Empty() {
		return 0
	}

	mask := r.rasterizeCapsule(box, x0, y0, x1, y1, radius)

	erased := 0
	for y := visible.Min.Y; y < visible.Max.Y; y++ {
		for x := visible.Min.X; x < visible.Max.X; x++ {
			if mask.AlphaAt(x-box.Min.X, y-box.Min.Y).A < eraseCoverageCutoff {
				continue
			}
			i := r.img.PixOffset(x, y)
			if r.img.Pix[i+3] == 0 {
				continue
			}
			// destination-out：颜色与 alpha 一起清零
			r.img.Pix[i+0] = 0
			r.img.Pix[i+1] = 0
			r.img.Pix[i+2] = 0
			r.img.Pix[i+3] = 0
			erased++
		}
	}
	return erased
}

// rasterizeCapsule 把胶囊多边形光栅化为 box 局部坐标下的覆盖率遮罩
func (r *OverlayRaster) rasterizeCapsule(box image.Rectangle, x0, y0, x1, y1, radius float64) *image.Alpha {
	w, h := box.Dx(), box.Dy()
	ox, oy := float64(box.Min.X), float64(box.Min.Y)

	z := r.rasterizer
	z.Reset(w, h)
	z.DrawOp = draw.Src

	// 线段方向角；退化为点时任取方向，两个半圆拼成整圆
	angle := math.Atan2(y1-y0, x1-x0)

	// 起点端帽：从 angle+90° 扫到 angle+270°（背向前进方向的半圆）
	for i := 0; i <= capSegments; i++ {
		a := angle + math.Pi/2 + math.Pi*float64(i)/capSegments
		px := float32(x0 + radius*math.Cos(a) - ox)
		py := float32(y0 + radius*math.Sin(a) - oy)
		if i == 0 {
			z.MoveTo(px, py)
		} else {
			z.LineTo(px, py)
		}
	}
	// 终点端帽：从 angle-90° 扫到 angle+90°
	for i := 0; i <= capSegments; i++ {
		a := angle - math.Pi/2 + math.Pi*float64(i)/capSegments
		z.LineTo(
			float32(x1+radius*math.Cos(a)-ox),
			float32(y1+radius*math.Sin(a)-oy),
		)
	}
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// TransparentFraction 采样计算透明像素占比
//
// stride 为采样步长（1 = 逐像素），步长越大检测越快但精度越低。
func (r *OverlayRaster) TransparentFraction(stride int) float64 {
	if stride < 1 {
		stride = 1
	}
	b := r.img.Rect
	total, transparent := 0, 0
	for y := b.Min.Y; y < b.Max.Y; y += stride {
		row := r.img.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x += stride {
			total++
			if r.img.Pix[row+x*4+3] == 0 {
				transparent++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(transparent) / float64(total)
}
