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
	"math/rand"
	"time"

	"github.com/decker502/reflex/pkg/config"
	"github.com/decker502/reflex/pkg/game"
	"github.com/decker502/reflex/pkg/scenes"
	"github.com/decker502/reflex/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// gdataAppName 决定设置与统计数据在各平台上的存储目录
const gdataAppName = "reflex"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ReportDir 数据文件输出目录，为空则写入当前目录
	ReportDir string
	// ConfigPath 训练配置文件路径，为空则使用内嵌默认配置
	ConfigPath string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	trainerConfig            *config.TrainerConfig
	settingsManager          *game.SettingsManager
	verbose                  bool
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

	// 加载训练配置
	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = config.DefaultTrainerConfigPath
	}
	trainerConfig, err := config.LoadTrainerConfig(configPath)
	if err != nil {
		log.Printf("[App] Failed to load config %s, using defaults: %v", configPath, err)
		trainerConfig = config.DefaultTrainerConfig()
	}
	if err := trainerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("训练配置无效: %w", err)
	}

	// 初始化跨平台持久化存储
	// Android 上 gdata 不会自动创建存储目录，先确保目录可写
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] EnsureStorageDir failed: %v", err)
	}
	// 失败时降级为内存模式：设置和统计仅在本次会话内有效
	var gdataManager *gdata.Manager
	if m, err := gdata.Open(gdata.Config{AppName: gdataAppName}); err != nil {
		log.Printf("[App] gdata unavailable, running without persistence: %v", err)
	} else {
		gdataManager = m
	}

	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置管理器初始化失败: %w", err)
	}
	if err := settingsManager.Load(); err != nil {
		log.Printf("[App] Failed to load settings, using defaults: %v", err)
	}

	statsManager, err := game.NewStatsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("统计管理器初始化失败: %w", err)
	}
	if err := statsManager.Load(); err != nil {
		log.Printf("[App] Failed to load stats: %v", err)
	}

	// 初始化音频上下文和 AudioManager
	audioContext := audio.NewContext(48000)
	audioManager := game.NewAudioManager(audioContext, settingsManager)
	log.Printf("[App] AudioManager initialized")

	// 恢复上次的全屏设置（移动端始终全屏，无需处理）
	if !utils.IsMobile() && settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	// 创建训练场景并启动
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	trainerScene, err := scenes.NewTrainerScene(trainerConfig, settingsManager, statsManager, audioManager, cfg.ReportDir, rng)
	if err != nil {
		return nil, fmt.Errorf("训练场景初始化失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(trainerScene)

	return &App{
		sceneManager:    sceneManager,
		trainerConfig:   trainerConfig,
		settingsManager: settingsManager,
		verbose:         cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.trainerConfig.Window.Width, a.trainerConfig.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.trainerConfig.Window.Width, a.trainerConfig.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		isFullscreen := ebiten.IsFullscreen()
		if isFullscreen {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		// 记住全屏偏好，退出时随设置一起落盘
		a.settingsManager.SetFullscreen(!isFullscreen)
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)

	// 场景请求退出时先落盘再终止
	if quitter, ok := a.sceneManager.GetCurrentScene().(game.QuitRequester); ok && quitter.QuitRequested() {
		if saveable, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
			if !saveable.SaveOnExit() {
				log.Printf("[App] SaveOnExit reported errors")
			}
		}
		return ebiten.Termination
	}
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.trainerConfig.Window.Width, a.trainerConfig.Window.Height
}

// GetSceneManager 返回场景管理器
// 用于在窗口关闭时保存会话数据
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
