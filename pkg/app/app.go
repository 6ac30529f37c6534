// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/novadraw/internal/hype"
	"github.com/gonewx/novadraw/pkg/config"
	"github.com/gonewx/novadraw/pkg/game"
	"github.com/gonewx/novadraw/pkg/scenes"
	"github.com/gonewx/novadraw/pkg/utils"
)

// AppName gdata 存储使用的应用名
const AppName = "novadraw"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部 YAML 配置；为空使用内嵌默认配置
	ConfigPath string
	// EnvFile 可选的 .env 文件，不存在时忽略
	EnvFile string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	scheduler    *game.Scheduler
	settings     *game.SettingsManager
	drawConfig   *config.DrawConfig
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	drawConfig, err := LoadConfig(cfg)
	if err != nil {
		return nil, err
	}
	env, err := config.LoadEnv(cfg.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("环境变量加载失败: %w", err)
	}
	drawConfig.ApplyEnv(env)

	hypeClient := hype.NewClient(hype.Config{
		APIKey:  env.APIKey,
		BaseURL: drawConfig.Hype.BaseURL,
		Model:   drawConfig.Hype.Model,
		Timeout: drawConfig.Hype.Timeout(),
	})
	log.Printf("[App] Hype client ready (model=%s, remote=%v)", hypeClient.Model(), hypeClient.Enabled())

	settings := game.OpenSettingsManager(AppName)
	scheduler := game.NewScheduler()

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewDrawScene(scenes.DrawSceneDeps{
		Config:    drawConfig,
		Scheduler: scheduler,
		Hype:      hypeClient,
		Settings:  settings,
	}))

	// 移动端始终全屏，窗口设置只对桌面端有意义
	if !utils.IsMobile() && settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		scheduler:    scheduler,
		settings:     settings,
		drawConfig:   drawConfig,
		verbose:      cfg.Verbose,
	}, nil
}

// LoadConfig 读取外部配置文件或内嵌默认配置
func LoadConfig(cfg Config) (*config.DrawConfig, error) {
	if cfg.ConfigPath != "" {
		c, err := config.LoadDrawConfig(cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("配置加载失败: %w", err)
		}
		log.Printf("[Config] Loaded %s", cfg.ConfigPath)
		return c, nil
	}
	c, err := config.LoadEmbeddedDrawConfig()
	if err != nil {
		return nil, fmt.Errorf("内嵌配置加载失败: %w", err)
	}
	return c, nil
}

// Update 更新逻辑，每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.sceneManager.SaveOnExit()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w := a.drawConfig.Window
			ebiten.SetWindowSize(w.Width, w.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", w.Width, w.Height)
			a.pendingWindowSizeReset = false
		}
	}

	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / 60.0
	// 先让定时器与异步结果落地，场景再读取最新状态
	a.scheduler.Update(deltaTime)
	a.sceneManager.Update(deltaTime)
	return nil
}

// toggleFullscreen F11 切换全屏并持久化
func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settings.SetFullscreen(ebiten.IsFullscreen())
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save fullscreen setting: %v", err)
	}
}

// Draw 绘制画面，每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时两侧 letterbox 填黑，并用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

// Window 返回窗口设置
func (a *App) Window() config.WindowConfig {
	return a.drawConfig.Window
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
