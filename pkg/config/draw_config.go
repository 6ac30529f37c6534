package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/novadraw/pkg/embedded"
)

// ErrInvalidConfig 配置值不合法
var ErrInvalidConfig = errors.New("invalid config")

// DefaultConfigPath 内嵌默认配置的路径
const DefaultConfigPath = "data/novadraw.yaml"

// DrawConfig 抽奖组件配置
//
// 配置文件位置: data/novadraw.yaml（内嵌），可用 --config 指定外部文件
type DrawConfig struct {
	Window   WindowConfig   `yaml:"window"`
	Card     CardConfig     `yaml:"card"`
	Draw     DrawTiming     `yaml:"draw"`
	Scratch  ScratchConfig  `yaml:"scratch"`
	Sparkles SparklesConfig `yaml:"sparkles"`
	Vortex   VortexConfig   `yaml:"vortex"`
	Hype     HypeConfig     `yaml:"hype"`
}

// WindowConfig 窗口设置（逻辑分辨率固定为 ScreenWidth×ScreenHeight）
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// CardConfig 刮刮卡位图尺寸（像素）
type CardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DrawTiming 抽奖流程时长
type DrawTiming struct {
	// PresentationDelay 洗牌动画最短展示时长（秒）
	PresentationDelay float64 `yaml:"presentationDelay"`
	// RevealFade 揭晓后锡箔淡出时长（秒）
	RevealFade float64 `yaml:"revealFade"`
}

// ScratchConfig 刮擦手感
type ScratchConfig struct {
	StrokeWidth     float64 `yaml:"strokeWidth"`
	RevealThreshold float64 `yaml:"revealThreshold"`
	// CheckIntervalMs 覆盖率检测最小间隔（毫秒）
	CheckIntervalMs int `yaml:"checkIntervalMs"`
	SampleStride    int `yaml:"sampleStride"`
}

// CheckInterval 以 time.Duration 返回覆盖率检测间隔
func (c ScratchConfig) CheckInterval() time.Duration {
	return time.Duration(c.CheckIntervalMs) * time.Millisecond
}

// SparklesConfig 两种闪光粒子密度
type SparklesConfig struct {
	Inline      SparkleDensity `yaml:"inline"`
	Celebration SparkleDensity `yaml:"celebration"`
}

// SparkleDensity 一种闪光粒子的生成参数
type SparkleDensity struct {
	// TickMs 生成判定间隔（毫秒）
	TickMs int `yaml:"tickMs"`
	// Chance 每次判定生成的概率（0-1）
	Chance float64 `yaml:"chance"`
	// Count 每次生成的数量
	Count int `yaml:"count"`
	// LifetimeMs 单个粒子存活时长（毫秒）
	LifetimeMs int     `yaml:"lifetimeMs"`
	MinSize    float64 `yaml:"minSize"`
	MaxSize    float64 `yaml:"maxSize"`
}

// Tick 生成判定间隔（秒）
func (d SparkleDensity) Tick() float64 {
	return float64(d.TickMs) / 1000
}

// Lifetime 粒子存活时长（秒）
func (d SparkleDensity) Lifetime() float64 {
	return float64(d.LifetimeMs) / 1000
}

// VortexConfig 洗牌漩涡
type VortexConfig struct {
	Names   int     `yaml:"names"`
	Stagger float64 `yaml:"stagger"` // 相邻名字的动画错开时间（秒）
	MinSize float64 `yaml:"minSize"`
	MaxSize float64 `yaml:"maxSize"`
	Period  float64 `yaml:"period"` // 单个名字一次旋入的时长（秒）
}

// HypeConfig 祝福语服务（凭据只从环境变量读取）
type HypeConfig struct {
	BaseURL        string  `yaml:"baseURL"`
	Model          string  `yaml:"model"`
	TimeoutSeconds float64 `yaml:"timeoutSeconds"`
}

// Timeout 以 time.Duration 返回请求超时
func (c HypeConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// DefaultDrawConfig 返回内置默认值（与 data/novadraw.yaml 一致）
func DefaultDrawConfig() *DrawConfig {
	return &DrawConfig{
		Window: WindowConfig{Width: ScreenWidth, Height: ScreenHeight, Title: "NOVA DRAW"},
		Card:   CardConfig{Width: 440, Height: 260},
		Draw:   DrawTiming{PresentationDelay: 4, RevealFade: 1},
		Scratch: ScratchConfig{
			StrokeWidth:     55,
			RevealThreshold: 0.45,
			CheckIntervalMs: 200,
			SampleStride:    1,
		},
		Sparkles: SparklesConfig{
			Inline:      SparkleDensity{TickMs: 250, Chance: 0.4, Count: 2, LifetimeMs: 700, MinSize: 6, MaxSize: 18},
			Celebration: SparkleDensity{TickMs: 150, Chance: 0.7, Count: 3, LifetimeMs: 1000, MinSize: 10, MaxSize: 30},
		},
		Vortex: VortexConfig{Names: 16, Stagger: 0.15, MinSize: 14, MaxSize: 32, Period: 1.6},
		Hype: HypeConfig{
			BaseURL:        "https://generativelanguage.googleapis.com/v1beta/openai/",
			Model:          "gemini-3-flash-preview",
			TimeoutSeconds: 15,
		},
	}
}

// ParseDrawConfig 解析 YAML 配置；缺省字段取默认值
func ParseDrawConfig(data []byte) (*DrawConfig, error) {
	cfg := DefaultDrawConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse draw config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDrawConfig 从文件系统加载配置
func LoadDrawConfig(path string) (*DrawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read draw config: %w", err)
	}
	return ParseDrawConfig(data)
}

// LoadEmbeddedDrawConfig 加载内嵌的默认配置
func LoadEmbeddedDrawConfig() (*DrawConfig, error) {
	data, err := embedded.ReadFile(DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded draw config: %w", err)
	}
	return ParseDrawConfig(data)
}

// Validate 验证配置有效性，失败时返回包裹 ErrInvalidConfig 的错误
func (c *DrawConfig) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Card.Width <= 0 || c.Card.Height <= 0 {
		return invalid("card size must be positive, got %dx%d", c.Card.Width, c.Card.Height)
	}
	if c.Card.Width > ScreenWidth || c.Card.Height > ScreenHeight {
		return invalid("card %dx%d does not fit the %dx%d screen", c.Card.Width, c.Card.Height, ScreenWidth, ScreenHeight)
	}
	if c.Draw.PresentationDelay < 0 || c.Draw.RevealFade < 0 {
		return invalid("draw timings must not be negative")
	}
	if c.Scratch.StrokeWidth <= 0 {
		return invalid("scratch.strokeWidth must be positive, got %.1f", c.Scratch.StrokeWidth)
	}
	if c.Scratch.RevealThreshold <= 0 || c.Scratch.RevealThreshold >= 1 {
		return invalid("scratch.revealThreshold must be in (0, 1), got %.2f", c.Scratch.RevealThreshold)
	}
	if c.Scratch.CheckIntervalMs < 0 || c.Scratch.SampleStride < 1 {
		return invalid("scratch.checkIntervalMs must be >= 0 and scratch.sampleStride >= 1")
	}
	for name, d := range map[string]SparkleDensity{"inline": c.Sparkles.Inline, "celebration": c.Sparkles.Celebration} {
		if err := d.validate(); err != nil {
			return invalid("sparkles.%s: %v", name, err)
		}
	}
	if c.Vortex.Names <= 0 || c.Vortex.Stagger < 0 || c.Vortex.Period <= 0 {
		return invalid("vortex needs names > 0, stagger >= 0 and period > 0")
	}
	if c.Vortex.MinSize <= 0 || c.Vortex.MinSize > c.Vortex.MaxSize {
		return invalid("vortex size range invalid: min(%.1f) max(%.1f)", c.Vortex.MinSize, c.Vortex.MaxSize)
	}
	if c.Hype.TimeoutSeconds < 0 {
		return invalid("hype.timeoutSeconds must not be negative")
	}
	return nil
}

func (d SparkleDensity) validate() error {
	if d.TickMs <= 0 || d.LifetimeMs <= 0 {
		return fmt.Errorf("tickMs and lifetimeMs must be positive")
	}
	if d.Chance < 0 || d.Chance > 1 {
		return fmt.Errorf("chance must be in [0, 1], got %.2f", d.Chance)
	}
	if d.Count < 0 {
		return fmt.Errorf("count must not be negative")
	}
	if d.MinSize <= 0 || d.MinSize > d.MaxSize {
		return fmt.Errorf("size range invalid: min(%.1f) > max(%.1f)", d.MinSize, d.MaxSize)
	}
	return nil
}
