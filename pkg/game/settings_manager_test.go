package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestStore 在临时目录中打开 gdata 存储
func openTestStore(t *testing.T) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	store, err := gdata.Open(gdata.Config{AppName: "lightsout_test"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return store
}

// TestDefaultSettings 测试默认设置
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.MusicVolume != 1.0 || settings.SoundVolume != 1.0 {
		t.Errorf("Volumes: got %v/%v, want 1.0/1.0", settings.MusicVolume, settings.SoundVolume)
	}
	if !settings.MusicEnabled || !settings.SoundEnabled {
		t.Error("Music and sound should be enabled by default")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

// TestSettingsManagerNilStore 测试没有存储时的降级行为
func TestSettingsManagerNilStore(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm.GetSettings() == nil {
		t.Fatal("GetSettings() returned nil")
	}

	sm.SetMusicEnabled(false)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() with nil store should not fail: %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load() with nil store should not fail: %v", err)
	}
	if !sm.GetSettings().MusicEnabled {
		t.Error("Load() with nil store should reset to defaults")
	}
}

// TestSettingsLoadSave 测试保存后重新加载
func TestSettingsLoadSave(t *testing.T) {
	store := openTestStore(t)

	sm := NewSettingsManager(store)
	sm.SetMusicVolume(0.4)
	sm.SetSoundVolume(0.6)
	sm.SetMusicEnabled(false)
	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewSettingsManager(store)
	s := reloaded.GetSettings()
	if s.MusicVolume != 0.4 || s.SoundVolume != 0.6 {
		t.Errorf("Volumes after reload: got %v/%v, want 0.4/0.6", s.MusicVolume, s.SoundVolume)
	}
	if s.MusicEnabled {
		t.Error("MusicEnabled after reload: got true, want false")
	}
	if !s.SoundEnabled {
		t.Error("SoundEnabled after reload: got false, want true")
	}
	if !s.Fullscreen {
		t.Error("Fullscreen after reload: got false, want true")
	}
}

// TestSettingsLoadClampsVolumes 测试加载时限制越界音量
func TestSettingsLoadClampsVolumes(t *testing.T) {
	store := openTestStore(t)
	data := []byte("musicVolume: 3.5\nsoundVolume: -1\n")
	if err := store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	s := NewSettingsManager(store).GetSettings()
	if s.MusicVolume != 1.0 || s.SoundVolume != 0.0 {
		t.Errorf("Volumes: got %v/%v, want 1.0/0.0", s.MusicVolume, s.SoundVolume)
	}
	if !s.MusicEnabled {
		t.Error("Missing fields should keep their defaults")
	}
}

// TestSettingsLoadCorrupted 测试损坏的设置文件退回默认值
func TestSettingsLoadCorrupted(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveObjectProp(settingsObject, settingsProperty, []byte("musicVolume: [oops")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := &SettingsManager{store: store, settings: DefaultSettings()}
	if err := sm.Load(); err == nil {
		t.Error("Expected error for corrupted settings")
	}
	if sm.GetSettings().MusicVolume != 1.0 {
		t.Error("Corrupted settings should fall back to defaults")
	}
}

// TestClampVolume 测试音量限制
func TestClampVolume(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{-0.5, 0.0},
		{0.0, 0.0},
		{0.5, 0.5},
		{1.0, 1.0},
		{1.5, 1.0},
	}

	for _, tt := range tests {
		if got := clampVolume(tt.input); got != tt.expected {
			t.Errorf("clampVolume(%v) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
