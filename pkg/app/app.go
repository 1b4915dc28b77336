// Package app 提供课件应用的核心包装器
//
// 该包负责把资源、音频、设置和场景组装起来，并实现 ebiten.Game 接口。
// main.go 只负责解析命令行参数、初始化嵌入资源和启动窗口。
package app

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/lightsout/pkg/config"
	"github.com/decker502/lightsout/pkg/game"
	"github.com/decker502/lightsout/pkg/scenes"
	"github.com/decker502/lightsout/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 资源配置文件路径（嵌入资源）
const resourceConfigPath = "data/resources.yaml"

// 音频采样率，所有音效在加载时重采样到这个频率
const sampleRate = 48000

// KeyToggleMusic 开关背景音乐
const KeyToggleMusic = ebiten.KeyM

// KeyToggleFullscreen 切换全屏
const KeyToggleFullscreen = ebiten.KeyF11

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// AssetsDir 图片和音频所在目录
	AssetsDir string
	// DebugButtons 描边显示按钮点击区域
	DebugButtons bool
	// Fullscreen 以全屏启动（覆盖已保存的设置）
	Fullscreen bool
}

// App 是课件应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	router          *scenes.Router
	audioManager    *game.AudioManager
	settingsManager *game.SettingsManager

	// 每帧复用的输入缓冲
	keys     []ebiten.Key
	pointers []image.Point

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化课件应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 幻灯片图片缺失时返回包装了 game.ErrRequiredAssetMissing 的错误。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(sampleRate)

	// 创建资源管理器
	resourceManager := game.NewResourceManager(audioContext)
	if err := resourceManager.LoadResourceConfig(resourceConfigPath); err != nil {
		return nil, fmt.Errorf("failed to load resource config: %w", err)
	}
	if cfg.AssetsDir != "" {
		resourceManager.SetBasePath(cfg.AssetsDir)
	}
	log.Printf("[App] Assets directory: %s", resourceManager.BasePath())

	// 设置（存储打不开时使用默认值，不持久化）
	store, err := game.OpenSettingsStorage()
	if err != nil {
		log.Printf("[App] Warning: settings storage unavailable: %v", err)
		store = nil
	}
	settingsManager := game.NewSettingsManager(store)

	audioManager := game.NewAudioManager(resourceManager, settingsManager)
	audioManager.Preload(
		config.SoundButtonClick,
		config.SoundSpaceTap,
		config.SoundGameFinish,
		config.SoundRumbleLoop,
	)
	log.Printf("[App] AudioManager initialized")

	slideshowCfg, err := config.LoadSlideshowConfig(config.DefaultSlideshowConfigPath)
	if err != nil {
		return nil, err
	}
	miniGameCfg, err := config.LoadMiniGameConfig(config.DefaultMiniGameConfigPath)
	if err != nil {
		return nil, err
	}

	slideshow := scenes.NewSlideshowScene(slideshowCfg, audioManager, config.SoundButtonClick)
	slideshow.SetDebugButtons(cfg.DebugButtons)
	if err := slideshow.LoadAssets(resourceManager); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	games := make([]*scenes.MiniGameScene, 0, len(miniGameCfg.Skins))
	for i := range miniGameCfg.Skins {
		mg := scenes.NewMiniGameScene(&miniGameCfg.Skins[i], miniGameCfg.Sounds, audioManager, rng)
		if err := mg.LoadAssets(resourceManager); err != nil {
			return nil, err
		}
		games = append(games, mg)
	}

	fullscreen := cfg.Fullscreen || settingsManager.GetSettings().Fullscreen
	if fullscreen {
		ebiten.SetFullscreen(true)
	}
	ebiten.SetWindowClosingHandled(true)

	audioManager.PlayMusic(config.MusicBackground)

	log.Printf("[App] Ready: %d slides, %d mini-games", slideshow.SlideCount(), len(games))

	return &App{
		router:          scenes.NewRouter(slideshow, slideshowCfg, games),
		audioManager:    audioManager,
		settingsManager: settingsManager,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（每秒 60 次）：先处理本帧全部输入，再推进一步逻辑
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if ebiten.IsWindowBeingClosed() {
		return a.shutdown()
	}

	a.keys = inpututil.AppendJustPressedKeys(a.keys[:0])
	for _, key := range a.keys {
		switch key {
		case KeyToggleFullscreen:
			a.toggleFullscreen()
		case KeyToggleMusic:
			a.toggleMusic()
		default:
			if a.router.HandleKey(key) {
				return a.shutdown()
			}
		}
	}

	a.pointers = utils.AppendJustPressedPointers(a.pointers[:0])
	for _, p := range a.pointers {
		a.router.HandleClick(float64(p.X), float64(p.Y))
	}

	a.router.Update()
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.router.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

// toggleFullscreen F11：切换全屏并记住选择
func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settingsManager.SetFullscreen(false)
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		return
	}
	ebiten.SetFullscreen(true)
	a.settingsManager.SetFullscreen(true)
}

// toggleMusic M：开关背景音乐并立即保存设置
func (a *App) toggleMusic() {
	enabled := a.audioManager.ToggleMusic()
	log.Printf("[App] Background music enabled: %v", enabled)
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// shutdown 保存设置并结束主循环
func (a *App) shutdown() error {
	a.audioManager.StopMusic()
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
	log.Printf("[App] Shutting down")
	return ebiten.Termination
}
