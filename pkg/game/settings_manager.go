package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings 播放偏好
// 只保存音量、开关和全屏这类偏好，不保存幻灯片进度或游戏结果
type Settings struct {
	// 音频设置（与每个音效自己的基础音量相乘）
	MusicVolume  float64 `yaml:"musicVolume"`  // 音乐音量 0.0 ~ 1.0
	SoundVolume  float64 `yaml:"soundVolume"`  // 音效音量 0.0 ~ 1.0
	MusicEnabled bool    `yaml:"musicEnabled"` // 背景音乐开关（M 键切换）
	SoundEnabled bool    `yaml:"soundEnabled"` // 音效开关

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏（F11 切换）
}

// DefaultSettings 返回默认设置
func DefaultSettings() *Settings {
	return &Settings{
		MusicVolume:  1.0,
		SoundVolume:  1.0,
		MusicEnabled: true,
		SoundEnabled: true,
		Fullscreen:   false,
	}
}

// SettingsManager 设置管理器
// 负责偏好设置的加载、保存和内存管理
type SettingsManager struct {
	store    *gdata.Manager // gdata 跨平台存储，可为 nil（仅内存设置）
	settings *Settings      // 当前设置
}

// 存储路径常量
const (
	settingsAppName  = "lightsout"
	settingsObject   = "settings"
	settingsProperty = "preferences"
)

// OpenSettingsStorage 打开用户数据目录下的 gdata 存储
// 失败时返回错误，调用方可以退回到仅内存的设置
func OpenSettingsStorage() (*gdata.Manager, error) {
	store, err := gdata.Open(gdata.Config{AppName: settingsAppName})
	if err != nil {
		return nil, fmt.Errorf("failed to open settings storage: %w", err)
	}
	return store, nil
}

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
// 加载失败不是致命错误，会使用默认设置
//
// 参数：
//   - store: gdata 存储，可为 nil
func NewSettingsManager(store *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		store:    store,
		settings: DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载设置
// 没有存储或没有保存过时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.store == nil || !sm.store.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 从默认值开始解码，旧文件里缺少的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.MusicVolume = clampVolume(loaded.MusicVolume)
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded")
	return nil
}

// Save 保存设置到 gdata
// 没有存储时直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.store == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *Settings {
	return sm.settings
}

// SetMusicVolume 设置音乐音量，限制在 0.0 ~ 1.0
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetMusicVolume(volume float64) {
	sm.settings.MusicVolume = clampVolume(volume)
}

// SetSoundVolume 设置音效音量，限制在 0.0 ~ 1.0
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetMusicEnabled 设置背景音乐开关
func (sm *SettingsManager) SetMusicEnabled(enabled bool) {
	sm.settings.MusicEnabled = enabled
}

// SetSoundEnabled 设置音效开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
