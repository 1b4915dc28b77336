package scenes

import (
	"github.com/decker502/lightsout/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// AudioService 场景使用的音频接口
// game.AudioManager 实现此接口；测试中使用假实现记录调用
type AudioService interface {
	// PlaySound 播放一次音效，达到并发上限时返回 false
	PlaySound(soundID string) bool
	// StartLoop 开始循环音轨（已在播放时不重新开始）
	StartLoop(soundID string, level float64)
	// SetLoopVolume 设置循环音轨的相对音量
	SetLoopVolume(soundID string, level float64)
	// StopLoop 停止循环音轨
	StopLoop(soundID string)
}

// AssetLoader 场景加载素材的接口，由 game.ResourceManager 实现
type AssetLoader interface {
	// LoadRequiredImage 加载必需图片（幻灯片），失败即致命
	LoadRequiredImage(resourceID string) (*ebiten.Image, error)
	// LoadImageOrPlaceholder 加载可选图片，失败时返回占位图
	// 第二个返回值表示是否加载到了真实图片
	LoadImageOrPlaceholder(ref config.ImageRef) (*ebiten.Image, bool)
	// LoadDefaultFont 加载内置字体
	LoadDefaultFont(size float64) (*text.GoTextFace, error)
}
