package game

import (
	"bytes"
	"errors"
	"log"

	"github.com/decker502/lightsout/pkg/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// voice 一个正在播放（或可播放）的音频实例
// *audio.Player 满足此接口；测试中可以替换为假实现
type voice interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(volume float64)
}

// voiceFactory 根据 PCM 数据创建播放实例
type voiceFactory func(pcm []byte, loop bool) (voice, error)

// clip 已解码的音效及其定义
type clip struct {
	pcm  []byte
	info SoundResource
}

// loopTrack 循环播放的音轨（环境音、背景音乐）
type loopTrack struct {
	voice voice
	base  float64 // 资源定义的基础音量
	level float64 // 场景设置的相对音量 0.0 ~ 1.0
}

// silentClipBytes 缺失音效使用的静音数据（10ms，16 位立体声 @48kHz）
const silentClipBytes = 4 * 480

// AudioManager 音频管理器
// 职责：
//   - 按资源ID播放音效，每次播放创建独立实例，允许同一音效重叠
//   - 按每个音效的并发上限丢弃多余的播放请求（快速连按时不会失控）
//   - 管理循环音轨：环境音量随生命值变化，背景音乐可以开关
//   - 与 SettingsManager 联动：最终音量 = 基础音量 × 设置音量
//
// 缺失的音频文件只记录警告，并用静音片段代替
type AudioManager struct {
	resourceManager *ResourceManager      // 资源管理器（用于解码音频）
	settingsManager *SettingsManager      // 设置管理器，可为 nil
	newVoice        voiceFactory          // 播放实例工厂
	clips           map[string]*clip      // 音效缓存（资源ID -> 解码数据）
	active          map[string][]voice    // 正在播放的单次音效实例
	loops           map[string]*loopTrack // 循环音轨（资源ID -> 音轨）
	currentMusicID  string                // 当前背景音乐ID
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于加载音频文件）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		newVoice:        contextVoiceFactory(rm.audioContext),
		clips:           make(map[string]*clip),
		active:          make(map[string][]voice),
		loops:           make(map[string]*loopTrack),
	}
}

// contextVoiceFactory 使用 ebiten 音频上下文创建播放器
func contextVoiceFactory(ctx *audio.Context) voiceFactory {
	return func(pcm []byte, loop bool) (voice, error) {
		if ctx == nil {
			return nil, errors.New("audio context not available")
		}
		if !loop {
			return ctx.NewPlayerFromBytes(pcm), nil
		}
		stream := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
		player, err := ctx.NewPlayer(stream)
		if err != nil {
			return nil, err
		}
		return player, nil
	}
}

// Preload 预先解码音效，避免首次播放时卡顿
func (am *AudioManager) Preload(soundIDs ...string) {
	for _, id := range soundIDs {
		am.getClip(id)
	}
	log.Printf("[AudioManager] Preloaded %d sounds", len(soundIDs))
}

// PlaySound 播放一次音效
// 同一音效正在播放的实例数达到上限时跳过本次播放
//
// 返回：
//   - bool: 是否真的开始播放（音效关闭或达到上限时返回 false）
func (am *AudioManager) PlaySound(soundID string) bool {
	if !am.soundEnabled() {
		return false
	}

	c := am.getClip(soundID)
	playing := am.pruneFinished(soundID)
	if len(playing) >= maxInstances(c.info) {
		return false
	}

	v, err := am.newVoice(c.pcm, false)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to create player for %s: %v", soundID, err)
		return false
	}
	v.SetVolume(baseVolume(c.info) * am.soundVolume())
	v.Play()

	am.active[soundID] = append(playing, v)
	return true
}

// ActiveCount 返回音效当前正在播放的实例数
func (am *AudioManager) ActiveCount(soundID string) int {
	return len(am.pruneFinished(soundID))
}

// StartLoop 开始播放循环音轨（已经在播放时不重新开始）
//
// 参数：
//   - soundID: 音轨资源ID
//   - level: 相对音量 0.0 ~ 1.0
func (am *AudioManager) StartLoop(soundID string, level float64) {
	if track, exists := am.loops[soundID]; exists && track.voice.IsPlaying() {
		return
	}

	track, err := am.loopTrack(soundID)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to start loop %s: %v", soundID, err)
		return
	}
	track.level = clampVolume(level)
	track.voice.SetVolume(track.level * track.base * am.soundVolume())
	track.voice.Play()
}

// SetLoopVolume 设置循环音轨的相对音量（每帧调用）
func (am *AudioManager) SetLoopVolume(soundID string, level float64) {
	track, exists := am.loops[soundID]
	if !exists {
		return
	}
	track.level = clampVolume(level)
	track.voice.SetVolume(track.level * track.base * am.soundVolume())
}

// StopLoop 停止循环音轨
func (am *AudioManager) StopLoop(soundID string) {
	if track, exists := am.loops[soundID]; exists {
		track.voice.Pause()
	}
}

// IsLoopPlaying 循环音轨是否正在播放
func (am *AudioManager) IsLoopPlaying(soundID string) bool {
	track, exists := am.loops[soundID]
	return exists && track.voice.IsPlaying()
}

// PlayMusic 播放背景音乐
// 同一时间只能播放一首；音乐关闭时只记住ID，打开后再播放
//
// 返回：
//   - bool: 是否正在播放
func (am *AudioManager) PlayMusic(musicID string) bool {
	if am.currentMusicID != "" && am.currentMusicID != musicID {
		am.StopLoop(am.currentMusicID)
	}
	am.currentMusicID = musicID

	if !am.musicEnabled() {
		return false
	}
	if am.IsLoopPlaying(musicID) {
		return true
	}

	track, err := am.loopTrack(musicID)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to play music %s: %v", musicID, err)
		return false
	}
	track.level = 1.0
	volume := track.base * am.musicVolume()
	track.voice.SetVolume(volume)
	track.voice.Play()

	log.Printf("[AudioManager] Playing music: %s (volume: %.2f)", musicID, volume)
	return true
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusicID != "" {
		am.StopLoop(am.currentMusicID)
	}
}

// ToggleMusic 切换背景音乐开关（M 键）
// 返回切换后的开关状态；调用方负责保存设置
func (am *AudioManager) ToggleMusic() bool {
	enabled := !am.musicEnabled()
	if am.settingsManager != nil {
		am.settingsManager.SetMusicEnabled(enabled)
	}

	if enabled && am.currentMusicID != "" {
		am.PlayMusic(am.currentMusicID)
	} else {
		am.StopMusic()
	}
	log.Printf("[AudioManager] Music enabled: %v", enabled)
	return enabled
}

// getClip 获取或加载音效
// 加载失败时缓存静音片段，只警告一次
func (am *AudioManager) getClip(soundID string) *clip {
	if c, exists := am.clips[soundID]; exists {
		return c
	}

	pcm, info, err := am.resourceManager.LoadSoundByID(soundID)
	if err != nil {
		log.Printf("[AudioManager] Warning: Sound %s unavailable: %v (using silence)", soundID, err)
		pcm = make([]byte, silentClipBytes)
		if known, ok := am.resourceManager.SoundInfo(soundID); ok {
			info = known
		} else {
			info = SoundResource{ID: soundID}
		}
	}

	c := &clip{pcm: pcm, info: info}
	am.clips[soundID] = c
	return c
}

// loopTrack 获取或创建循环音轨
func (am *AudioManager) loopTrack(soundID string) (*loopTrack, error) {
	if track, exists := am.loops[soundID]; exists {
		return track, nil
	}

	c := am.getClip(soundID)
	v, err := am.newVoice(c.pcm, true)
	if err != nil {
		return nil, err
	}
	track := &loopTrack{voice: v, base: baseVolume(c.info)}
	am.loops[soundID] = track
	return track, nil
}

// pruneFinished 移除已经播放完的实例，返回仍在播放的实例
func (am *AudioManager) pruneFinished(soundID string) []voice {
	voices := am.active[soundID]
	playing := voices[:0]
	for _, v := range voices {
		if v.IsPlaying() {
			playing = append(playing, v)
		}
	}
	am.active[soundID] = playing
	return playing
}

func (am *AudioManager) soundEnabled() bool {
	return am.settingsManager == nil || am.settingsManager.GetSettings().SoundEnabled
}

func (am *AudioManager) musicEnabled() bool {
	return am.settingsManager == nil || am.settingsManager.GetSettings().MusicEnabled
}

// soundVolume 获取音效音量设置（音效关闭时为 0）
func (am *AudioManager) soundVolume() float64 {
	if am.settingsManager == nil {
		return 1.0
	}
	s := am.settingsManager.GetSettings()
	if !s.SoundEnabled {
		return 0
	}
	return s.SoundVolume
}

// musicVolume 获取音乐音量设置
func (am *AudioManager) musicVolume() float64 {
	if am.settingsManager == nil {
		return 1.0
	}
	return am.settingsManager.GetSettings().MusicVolume
}

// baseVolume 资源定义的基础音量，未设置时为 1.0
func baseVolume(info SoundResource) float64 {
	if info.Volume <= 0 {
		return 1.0
	}
	return info.Volume
}

// maxInstances 资源定义的并发上限，未设置时使用默认值
func maxInstances(info SoundResource) int {
	if info.MaxInstances <= 0 {
		return config.DefaultSoundMaxInstances
	}
	return info.MaxInstances
}
