package scenes

import (
	"bytes"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/decker502/lightsout/pkg/config"
	"github.com/decker502/lightsout/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// fakeAudio 记录所有音频调用，不产生声音
type fakeAudio struct {
	played  []string
	loops   map[string]float64
	started map[string]int
	stopped map[string]int
}

func newFakeAudio() *fakeAudio {
	return &fakeAudio{
		loops:   make(map[string]float64),
		started: make(map[string]int),
		stopped: make(map[string]int),
	}
}

func (f *fakeAudio) PlaySound(id string) bool {
	f.played = append(f.played, id)
	return true
}

func (f *fakeAudio) StartLoop(id string, level float64) {
	if _, playing := f.loops[id]; playing {
		return
	}
	f.started[id]++
	f.loops[id] = level
}

func (f *fakeAudio) SetLoopVolume(id string, level float64) {
	if _, playing := f.loops[id]; playing {
		f.loops[id] = level
	}
}

func (f *fakeAudio) StopLoop(id string) {
	if _, playing := f.loops[id]; playing {
		f.stopped[id]++
		delete(f.loops, id)
	}
}

func (f *fakeAudio) count(id string) int {
	n := 0
	for _, p := range f.played {
		if p == id {
			n++
		}
	}
	return n
}

// testSlideshowConfig 5 页的小型放映配置
//
//	0 --next--> 1(说明页，氧化应激) --> 2(爆炸页)
//	broken 按钮指向不存在的第 9 页
func testSlideshowConfig(t *testing.T) *config.SlideshowConfig {
	t.Helper()
	cfg, err := config.ParseSlideshowConfig([]byte(`
slides: [S0, S1, S2, S3, S4]
buttons:
  - id: next
    rect: {x: 100, y: 100, width: 200, height: 100}
    target_slide: 1
    visible_on_slides: [0]
  - id: shadowed
    rect: {x: 150, y: 150, width: 200, height: 100}
    target_slide: 3
    visible_on_slides: [0]
  - id: broken
    rect: {x: 100, y: 100, width: 200, height: 100}
    target_slide: 9
    visible_on_slides: [3]
games:
  - variant: oxidative_stress
    info_slides: [1]
    boom_slide: 2
`))
	if err != nil {
		t.Fatalf("Failed to parse test slideshow config: %v", err)
	}
	return cfg
}

// shippedMiniGameScene 用嵌入的 minigames.yaml 创建指定变体的小游戏（不加载素材）
func shippedMiniGameScene(t *testing.T, v types.Variant, audio AudioService) *MiniGameScene {
	t.Helper()
	cfg := shippedMiniGameConfig(t)
	skin, ok := cfg.Skin(v)
	if !ok {
		t.Fatalf("Skin %s not found in shipped config", v)
	}
	return NewMiniGameScene(skin, cfg.Sounds, audio, rand.New(rand.NewSource(1)))
}

func shippedMiniGameConfig(t *testing.T) *config.MiniGameConfig {
	t.Helper()
	cfg, err := config.LoadMiniGameConfig(filepath.Join("..", "..", "data", "minigames.yaml"))
	if err != nil {
		t.Fatalf("Failed to load shipped minigame config: %v", err)
	}
	return cfg
}

// fakeAssetLoader 不读文件的素材加载器
// loaded 为 false 时所有可选图片都是按 ref.Placeholder 生成的占位图；
// 为 true 时返回 loadedSize x loadedSize 的"真实"图片
type fakeAssetLoader struct {
	loaded     bool
	loadedSize int
}

func (f *fakeAssetLoader) LoadRequiredImage(resourceID string) (*ebiten.Image, error) {
	return ebiten.NewImage(16, 9), nil
}

func (f *fakeAssetLoader) LoadImageOrPlaceholder(ref config.ImageRef) (*ebiten.Image, bool) {
	if f.loaded {
		return ebiten.NewImage(f.loadedSize, f.loadedSize), true
	}
	w, h := ref.Placeholder.Width, ref.Placeholder.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	img := ebiten.NewImage(w, h)
	img.Fill(ref.Placeholder.Color.Color())
	return img, false
}

func (f *fakeAssetLoader) LoadDefaultFont(size float64) (*text.GoTextFace, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	return &text.GoTextFace{Source: source, Size: size}, nil
}
