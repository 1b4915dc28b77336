package scenes

import (
	"testing"

	"github.com/decker502/lightsout/pkg/config"
	"github.com/decker502/lightsout/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

var allVariants = []types.Variant{
	types.VariantOxidativeStress,
	types.VariantOsmoticShock,
	types.VariantEnzymeInhibition,
}

// TestMiniGameDraw_ConsumesOneFlashFramePerDraw 每次绘制恰好消耗一帧闪光，三个皮肤都能用占位图绘制
func TestMiniGameDraw_ConsumesOneFlashFramePerDraw(t *testing.T) {
	for _, v := range allVariants {
		t.Run(v.String(), func(t *testing.T) {
			game := shippedMiniGameScene(t, v, newFakeAudio())
			if err := game.LoadAssets(&fakeAssetLoader{}); err != nil {
				t.Fatalf("LoadAssets failed: %v", err)
			}
			screen := ebiten.NewImage(config.ScreenWidth, config.ScreenHeight)

			session := game.Start()
			game.Tap(session)
			game.Update(session)

			flash := session.Flash()
			for i := config.FlashDurationFrames; i > 0; i-- {
				if flash.Frames != i {
					t.Fatalf("Expected %d flash frames before draw, got %d", i, flash.Frames)
				}
				game.Draw(screen, session)
				if flash.Frames != i-1 {
					t.Fatalf("One draw should consume exactly one frame: %d -> %d", i, flash.Frames)
				}
			}

			game.Draw(screen, session)
			if flash.Frames != 0 {
				t.Errorf("Flash frames should stay at 0, got %d", flash.Frames)
			}
		})
	}
}

// TestMiniGameDraw_LowHealth 低血量时（抖动、盐粒、倾斜、滑动都生效）绘制不崩溃
func TestMiniGameDraw_LowHealth(t *testing.T) {
	loaders := []struct {
		name   string
		loader *fakeAssetLoader
	}{
		{"placeholders", &fakeAssetLoader{}},
		{"loaded", &fakeAssetLoader{loaded: true, loadedSize: 35}},
	}

	for _, l := range loaders {
		for _, v := range allVariants {
			t.Run(l.name+"/"+v.String(), func(t *testing.T) {
				game := shippedMiniGameScene(t, v, newFakeAudio())
				if err := game.LoadAssets(l.loader); err != nil {
					t.Fatalf("LoadAssets failed: %v", err)
				}
				screen := ebiten.NewImage(config.ScreenWidth, config.ScreenHeight)

				session := game.Start()
				for i := 0; i < 19; i++ {
					game.Tap(session)
				}
				for frame := 0; frame < 5; frame++ {
					if game.Update(session) {
						t.Fatal("Game should not finish at 5% health")
					}
					game.Draw(screen, session)
				}
			})
		}
	}
}

// TestMiniGameParticleSize 占位盐粒保持自身尺寸，真实图片缩放到配置尺寸
func TestMiniGameParticleSize(t *testing.T) {
	tests := []struct {
		name     string
		loader   *fakeAssetLoader
		wantSize float64
	}{
		{"placeholder", &fakeAssetLoader{}, 20},
		{"loaded image", &fakeAssetLoader{loaded: true, loadedSize: 35}, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := shippedMiniGameScene(t, types.VariantOsmoticShock, newFakeAudio())
			if err := game.LoadAssets(tt.loader); err != nil {
				t.Fatalf("LoadAssets failed: %v", err)
			}

			session := game.Start()
			particles := session.Particles()
			if len(particles) == 0 {
				t.Fatal("Expected salt particles")
			}
			for i, p := range particles {
				if p.Size != tt.wantSize {
					t.Errorf("particle %d: Size = %v, want %v", i, p.Size, tt.wantSize)
				}
				if p.Y < 0 || p.Y > config.ScreenHeight-tt.wantSize {
					t.Errorf("particle %d: Y = %v out of [0, %v]", i, p.Y, config.ScreenHeight-tt.wantSize)
				}
			}
		})
	}
}
