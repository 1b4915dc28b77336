package config

import "image/color"

// 画面配置
// 逻辑分辨率与幻灯片原图一致（1920x1080），窗口尺寸只影响缩放
const (
	// ScreenWidth 逻辑屏幕宽度（像素）
	ScreenWidth = 1920
	// ScreenHeight 逻辑屏幕高度（像素）
	ScreenHeight = 1080

	// GameWindowWidth 默认窗口宽度
	GameWindowWidth = 1280
	// GameWindowHeight 默认窗口高度
	GameWindowHeight = 720

	// WindowTitle 窗口标题
	WindowTitle = "Lights Out! Bacteria Game"

	// TicksPerSecond 固定逻辑帧率
	TicksPerSecond = 60
)

// 生命值机制（三个小游戏共用）
const (
	// HealthMax 生命值上限，每局开始时重置为此值
	HealthMax = 100.0
	// HealthMin 生命值下限，到达即结束本局
	HealthMin = 0.0
	// RegenRate 每帧自动恢复的生命值
	RegenRate = 0.35
	// DamagePerTap 每次按键造成的伤害
	DamagePerTap = 5.0
)

// 程序化效果参数
const (
	// MaxRumbleOffset 抖动的最大像素偏移（乘以各变体的 scale）
	MaxRumbleOffset = 10.0
	// RumbleDeadZone 低于此幅度不抖动，避免静止时的细碎抖动
	RumbleDeadZone = 0.5

	// FlashDurationFrames 按键闪光持续帧数
	FlashDurationFrames = 3

	// ParticleRevealFactor 盐粒显示数量的放大系数（最终不超过粒子池大小）
	ParticleRevealFactor = 1.5
)

// FlashColor 按键闪光颜色（半透明白色）
var FlashColor = color.NRGBA{R: 255, G: 255, B: 255, A: 180}

// TapButtonRect 幻灯片上 "TAP!" 按钮的区域，闪光覆盖在这里
var TapButtonRect = Rect{X: 677, Y: 41, Width: 566, Height: 201}

// 音频并发上限：同一音效同时播放的实例数达到上限时跳过本次播放
const (
	// TapSoundMaxInstances 按键音效上限
	TapSoundMaxInstances = 8
	// ClickSoundMaxInstances 按钮点击音效上限
	ClickSoundMaxInstances = 4
	// DefaultSoundMaxInstances 未单独配置的音效上限
	DefaultSoundMaxInstances = 4
)

// 默认音频资源ID（定义在 data/resources.yaml）
const (
	SoundButtonClick = "SOUND_BUTTON_BEEP"
	SoundSpaceTap    = "SOUND_SPACE_TAP"
	SoundGameFinish  = "SOUND_GAME_FINISH"
	SoundRumbleLoop  = "SOUND_RUMBLE_LOOP"
	MusicBackground  = "SOUND_BACKGROUND_MUSIC"
)

// FontUI 界面文字字体的资源ID（可选，未注册时使用内置 Go Regular）
const FontUI = "FONT_UI"

// 文字
const (
	// HealthFontSize 生命值百分比文字字号
	HealthFontSize = 72.0
	// ErrorFontSize 错误提示文字字号
	ErrorFontSize = 48.0
	// HealthTextGap 百分比文字右端与血条左端的距离
	HealthTextGap = 30.0
)

// 颜色常量
var (
	ColorBlack     = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	ColorWhite     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorLightGray = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	// ColorDebugOutline 调试模式下按钮点击区域的描边颜色
	ColorDebugOutline = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)
