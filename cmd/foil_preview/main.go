// cmd/foil_preview/main.go
// 锡箔预览工具 - 把刮刮卡遮罩渲染成 PNG，便于检查图案与擦除效果
//
// 用法：
//   go run ./cmd/foil_preview --out foil.png
//   go run ./cmd/foil_preview --out scratched.png --strokes 3

package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/gonewx/novadraw/pkg/config"
	"github.com/gonewx/novadraw/pkg/scratch"
)

func main() {
	cfg := config.DefaultDrawConfig()
	width := flag.Int("width", cfg.Card.Width, "位图宽度")
	height := flag.Int("height", cfg.Card.Height, "位图高度")
	strokes := flag.Int("strokes", 0, "横向刮擦的笔画数（0 = 未刮的锡箔）")
	stroke := flag.Float64("stroke-width", cfg.Scratch.StrokeWidth, "笔刷直径")
	out := flag.String("out", "foil.png", "输出文件")
	flag.Parse()

	if *width <= 0 || *height <= 0 {
		log.Fatalf("❌ 尺寸必须为正数: %dx%d", *width, *height)
	}

	revealed := false
	surface := scratch.NewRevealSurface(scratch.Options{
		StrokeWidth:     *stroke,
		RevealThreshold: cfg.Scratch.RevealThreshold,
		// 预览中每一笔都立即计算覆盖率
		CheckInterval: 1,
	})
	surface.SetOnReveal(func() { revealed = true })
	surface.Initialize(*width, *height)

	// 笔画在高度方向均匀分布
	for i := 0; i < *strokes; i++ {
		y := float64(*height) * float64(i+1) / float64(*strokes+1)
		surface.BeginStroke(0, y)
		for x := 0.0; x <= float64(*width); x += *stroke / 2 {
			surface.ContinueStroke(x, y)
		}
		surface.EndStroke()
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("❌ 创建输出文件失败: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, surface.Raster().Image()); err != nil {
		log.Fatalf("❌ PNG 编码失败: %v", err)
	}

	fmt.Printf("✅ 已写入 %s (%dx%d)\n", *out, *width, *height)
	fmt.Printf("  透明占比: %.1f%%\n", surface.Raster().TransparentFraction(1)*100)
	fmt.Printf("  是否揭晓: %v\n", revealed)
}
