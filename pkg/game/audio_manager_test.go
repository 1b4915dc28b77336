package game

import (
	"os"
	"path/filepath"
	"testing"
)

// fakeVoice 模拟播放实例：Play 后一直处于播放状态，直到测试调用 finish
type fakeVoice struct {
	loop    bool
	playing bool
	volume  float64
	plays   int
}

func (v *fakeVoice) Play()                    { v.playing = true; v.plays++ }
func (v *fakeVoice) Pause()                   { v.playing = false }
func (v *fakeVoice) IsPlaying() bool          { return v.playing }
func (v *fakeVoice) SetVolume(volume float64) { v.volume = volume }
func (v *fakeVoice) finish()                  { v.playing = false }

// newTestAudioManager 创建使用假播放器的音频管理器
// 音频文件不存在，所有音效都会退化为静音片段，但保留 resources.yaml 中的音量和上限
func newTestAudioManager(t *testing.T, sm *SettingsManager) (*AudioManager, *[]*fakeVoice) {
	t.Helper()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "resources.yaml")
	yamlData := `version: "1.0"
base_path: missing_assets
groups:
  sounds:
    sounds:
      - id: SOUND_SPACE_TAP
        path: sounds/space_tap.wav
        volume: 0.16
        max_instances: 8
      - id: SOUND_BUTTON_BEEP
        path: sounds/button_beep.wav
        volume: 0.14
        max_instances: 4
      - id: SOUND_RUMBLE_LOOP
        path: sounds/rumble_loop.wav
        loop: true
      - id: SOUND_BACKGROUND_MUSIC
        path: sounds/background_music.mp3
        volume: 0.1
        loop: true
`
	if err := os.WriteFile(configPath, []byte(yamlData), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	rm := NewResourceManager(nil)
	if err := rm.LoadResourceConfig(configPath); err != nil {
		t.Fatalf("LoadResourceConfig failed: %v", err)
	}

	var voices []*fakeVoice
	am := NewAudioManager(rm, sm)
	am.newVoice = func(pcm []byte, loop bool) (voice, error) {
		v := &fakeVoice{loop: loop}
		voices = append(voices, v)
		return v, nil
	}
	return am, &voices
}

// TestAudioManager_TapCap 测试按键音效的并发上限
func TestAudioManager_TapCap(t *testing.T) {
	am, voices := newTestAudioManager(t, nil)

	played := 0
	for i := 0; i < 20; i++ {
		if am.PlaySound("SOUND_SPACE_TAP") {
			played++
		}
	}
	if played != 8 {
		t.Errorf("Expected 8 overlapping taps, got %d", played)
	}
	if got := am.ActiveCount("SOUND_SPACE_TAP"); got != 8 {
		t.Errorf("ActiveCount = %d, want 8", got)
	}

	// 一个实例播放完后可以再播放一次
	(*voices)[0].finish()
	if !am.PlaySound("SOUND_SPACE_TAP") {
		t.Error("Expected a free slot after one instance finished")
	}
	if am.PlaySound("SOUND_SPACE_TAP") {
		t.Error("Expected cap to be reached again")
	}
}

// TestAudioManager_ClickCapAndVolume 测试按钮音效上限和音量
func TestAudioManager_ClickCapAndVolume(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetSoundVolume(0.5)
	am, voices := newTestAudioManager(t, sm)

	for i := 0; i < 6; i++ {
		am.PlaySound("SOUND_BUTTON_BEEP")
	}
	if len(*voices) != 4 {
		t.Fatalf("Expected 4 click players, got %d", len(*voices))
	}
	if v := (*voices)[0].volume; v < 0.069 || v > 0.071 {
		t.Errorf("Click volume = %v, want 0.14 * 0.5", v)
	}
}

// TestAudioManager_UnknownSoundUsesDefaultCap 测试未知音效使用默认上限
func TestAudioManager_UnknownSoundUsesDefaultCap(t *testing.T) {
	am, _ := newTestAudioManager(t, nil)

	played := 0
	for i := 0; i < 10; i++ {
		if am.PlaySound("SOUND_DOES_NOT_EXIST") {
			played++
		}
	}
	if played != 4 {
		t.Errorf("Expected default cap of 4, got %d", played)
	}
}

// TestAudioManager_SoundDisabled 测试关闭音效后不播放
func TestAudioManager_SoundDisabled(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetSoundEnabled(false)
	am, voices := newTestAudioManager(t, sm)

	if am.PlaySound("SOUND_SPACE_TAP") {
		t.Error("PlaySound should return false when sound is disabled")
	}
	if len(*voices) != 0 {
		t.Errorf("Expected no players, got %d", len(*voices))
	}
}

// TestAudioManager_LoopLifecycle 测试环境音循环：只启动一次，音量可调，可停止
func TestAudioManager_LoopLifecycle(t *testing.T) {
	am, voices := newTestAudioManager(t, nil)

	am.StartLoop("SOUND_RUMBLE_LOOP", 0)
	am.StartLoop("SOUND_RUMBLE_LOOP", 0)
	if len(*voices) != 1 {
		t.Fatalf("Expected a single loop player, got %d", len(*voices))
	}
	loop := (*voices)[0]
	if !loop.loop || loop.plays != 1 {
		t.Errorf("Loop player: loop=%v plays=%d, want loop=true plays=1", loop.loop, loop.plays)
	}

	am.SetLoopVolume("SOUND_RUMBLE_LOOP", 0.25)
	if loop.volume != 0.25 {
		t.Errorf("Loop volume = %v, want 0.25", loop.volume)
	}

	am.StopLoop("SOUND_RUMBLE_LOOP")
	if am.IsLoopPlaying("SOUND_RUMBLE_LOOP") {
		t.Error("Loop should be stopped")
	}

	// 停止后再次启动复用同一个播放器
	am.StartLoop("SOUND_RUMBLE_LOOP", 0)
	if len(*voices) != 1 || loop.plays != 2 {
		t.Errorf("Expected restart on the same player, got %d players, %d plays", len(*voices), loop.plays)
	}
}

// TestAudioManager_ToggleMusic 测试 M 键切换背景音乐
func TestAudioManager_ToggleMusic(t *testing.T) {
	sm := NewSettingsManager(nil)
	am, voices := newTestAudioManager(t, sm)

	if !am.PlayMusic("SOUND_BACKGROUND_MUSIC") {
		t.Fatal("PlayMusic should start the music")
	}
	music := (*voices)[0]
	if music.volume != 0.1 {
		t.Errorf("Music volume = %v, want 0.1", music.volume)
	}

	if am.ToggleMusic() {
		t.Error("First toggle should disable music")
	}
	if music.IsPlaying() || sm.GetSettings().MusicEnabled {
		t.Error("Music should be paused and disabled")
	}

	if !am.ToggleMusic() {
		t.Error("Second toggle should enable music")
	}
	if !music.IsPlaying() {
		t.Error("Music should resume after enabling")
	}
}

// TestAudioManager_MusicDisabledAtStartup 测试设置中关闭音乐时不播放
func TestAudioManager_MusicDisabledAtStartup(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetMusicEnabled(false)
	am, voices := newTestAudioManager(t, sm)

	if am.PlayMusic("SOUND_BACKGROUND_MUSIC") {
		t.Error("PlayMusic should not play when music is disabled")
	}
	if len(*voices) != 0 {
		t.Errorf("Expected no players, got %d", len(*voices))
	}

	am.ToggleMusic()
	if len(*voices) != 1 || !(*voices)[0].IsPlaying() {
		t.Error("Enabling music should start the remembered track")
	}
}
