// cmd/validate_config/main.go
// 配置校验工具 - 检查 novadraw.yaml 能否被解析并通过校验
//
// 用法：
//   go run ./cmd/validate_config --config data/novadraw.yaml
//   go run ./cmd/validate_config --config data/novadraw.yaml --env-file .env

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/gonewx/novadraw/pkg/config"
)

func main() {
	path := flag.String("config", config.DefaultConfigPath, "配置文件路径")
	envFile := flag.String("env-file", "", "可选的 .env 文件，校验环境变量覆盖后的结果")
	flag.Parse()

	cfg, err := config.LoadDrawConfig(*path)
	if err != nil {
		if errors.Is(err, config.ErrInvalidConfig) {
			fmt.Printf("❌ 配置无效: %v\n", err)
		} else {
			fmt.Printf("❌ 读取或解析失败: %v\n", err)
		}
		os.Exit(1)
	}
	fmt.Printf("✅ %s 格式正确\n", *path)

	if *envFile != "" {
		env, err := config.LoadEnv(*envFile)
		if err != nil {
			fmt.Printf("❌ 环境变量加载失败: %v\n", err)
			os.Exit(1)
		}
		cfg.ApplyEnv(env)
		if err := cfg.Validate(); err != nil {
			fmt.Printf("❌ 应用环境变量后配置无效: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ 已应用 %s\n", *envFile)
	}

	fmt.Printf("  窗口: %dx%d %q\n", cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	fmt.Printf("  卡片: %dx%d\n", cfg.Card.Width, cfg.Card.Height)
	fmt.Printf("  抽奖: 演出 %.1fs, 淡出 %.1fs\n", cfg.Draw.PresentationDelay, cfg.Draw.RevealFade)
	fmt.Printf("  刮擦: 笔刷 %.0fpx, 阈值 %.0f%%, 检测间隔 %v, 采样步长 %d\n",
		cfg.Scratch.StrokeWidth, cfg.Scratch.RevealThreshold*100, cfg.Scratch.CheckInterval(), cfg.Scratch.SampleStride)
	fmt.Printf("  粒子: inline 每 %.2fs %.0f%%×%d, celebration 每 %.2fs %.0f%%×%d\n",
		cfg.Sparkles.Inline.Tick(), cfg.Sparkles.Inline.Chance*100, cfg.Sparkles.Inline.Count,
		cfg.Sparkles.Celebration.Tick(), cfg.Sparkles.Celebration.Chance*100, cfg.Sparkles.Celebration.Count)
	fmt.Printf("  漩涡: %d 个名字, 周期 %.1fs\n", cfg.Vortex.Names, cfg.Vortex.Period)
	fmt.Printf("  祝福语: %s (%s, 超时 %v)\n", cfg.Hype.Model, cfg.Hype.BaseURL, cfg.Hype.Timeout())
}
