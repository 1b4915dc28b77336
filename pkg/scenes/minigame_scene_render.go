package scenes

import (
	"fmt"
	"math"

	"github.com/decker502/lightsout/pkg/components"
	"github.com/decker502/lightsout/pkg/config"
	"github.com/decker502/lightsout/pkg/ecs"
	"github.com/decker502/lightsout/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Draw 绘制一帧小游戏画面
// 绘制顺序：背景 -> 覆盖层 -> 主精灵 -> 滑动部件 -> 盐粒 -> 血条 -> 倾斜部件 -> 按键闪光
//
// 注意：闪光计时器在这里消耗，因此每帧只能调用一次
func (s *MiniGameScene) Draw(screen *ebiten.Image, session *GameSession) {
	if session == nil {
		return
	}
	healthComp := session.Health()
	if healthComp == nil {
		return
	}
	health := healthComp.Current
	ratio := healthComp.Ratio()

	s.drawBackground(screen, ratio)
	if s.assets.overlay != nil {
		screen.DrawImage(s.assets.overlay, &ebiten.DrawImageOptions{})
	}

	// 抖动偏移由 RumbleSystem 在 Update 中采样
	var dx, dy float64
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, session.Meter); ok {
		dx, dy = sprite.OffsetX, sprite.OffsetY
	}
	s.drawSprite(screen, health, ratio, dx, dy)

	s.drawSlider(screen, ratio)
	if s.particleSystem != nil {
		s.particleSystem.Draw(screen, s.assets.particle, ratio)
	}
	s.drawHealthBar(screen, health, ratio)
	s.drawTilt(screen, ratio)

	s.flashSystem.Draw(screen)
}

// drawBackground 绘制背景图，或按生命值填充色相背景
func (s *MiniGameScene) drawBackground(screen *ebiten.Image, ratio float64) {
	switch s.skin.Background.Mode {
	case config.BackgroundHue:
		screen.Fill(utils.BackgroundColor(ratio))
	default:
		if s.assets.background == nil {
			screen.Fill(config.ColorBlack)
			return
		}
		drawFitted(screen, s.assets.background, 0, 0)
	}
}

// drawSprite 绘制主精灵（细菌/酶）
// bucketed: 按阈值选图；scaled: 按生命值在 [MinScale, 1] 之间缩放
func (s *MiniGameScene) drawSprite(screen *ebiten.Image, health, ratio, dx, dy float64) {
	sprite := s.skin.Sprite
	if len(s.assets.sprites) == 0 {
		return
	}

	var img *ebiten.Image
	scale := 1.0
	switch sprite.Mode {
	case config.SpriteScaled:
		img = s.assets.sprites[0]
		scale = utils.LinearMap(ratio, sprite.MinScale, 1.0)
	default:
		idx := utils.BucketIndex(health, sprite.Thresholds)
		if idx >= len(s.assets.sprites) {
			idx = len(s.assets.sprites) - 1
		}
		img = s.assets.sprites[idx]
	}
	if img == nil {
		return
	}

	bounds := img.Bounds()
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	sx, sy := scale, scale
	if sprite.FitScreen && w > 0 && h > 0 {
		sx = config.ScreenWidth / w
		sy = config.ScreenHeight / h
	}

	// 缩放后尺寸取整，与按像素缩放的原图保持一致
	drawW := math.Floor(w * sx)
	drawH := math.Floor(h * sy)
	if drawW <= 0 || drawH <= 0 {
		return
	}

	x, y := sprite.Position.X, sprite.Position.Y
	if sprite.Anchor == config.AnchorCenter {
		x -= math.Floor(drawW / 2)
		y -= math.Floor(drawH / 2)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(drawW/w, drawH/h)
	op.GeoM.Translate(x+dx, y+dy)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// drawSlider 绘制随生命值水平移动的部件（抑制剂）
// 生命值 0 时在 EndX，满血时在 StartX
func (s *MiniGameScene) drawSlider(screen *ebiten.Image, ratio float64) {
	slider := s.skin.Slider
	if slider == nil || s.assets.slider == nil {
		return
	}
	x := utils.LinearMap(ratio, slider.EndX, slider.StartX)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, slider.Y)
	screen.DrawImage(s.assets.slider, op)
}

// drawTilt 绘制随生命值倾斜的部件（天平）
// 满血时顺时针 MaxDegrees，一半时水平，归零时逆时针 MaxDegrees；绕图片中心旋转
func (s *MiniGameScene) drawTilt(screen *ebiten.Image, ratio float64) {
	tilt := s.skin.Tilt
	if tilt == nil || s.assets.tilt == nil {
		return
	}
	degrees := utils.LinearMap(ratio, -tilt.MaxDegrees, tilt.MaxDegrees)

	bounds := s.assets.tilt.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(bounds.Dx())/2, -float64(bounds.Dy())/2)
	op.GeoM.Rotate(degrees * math.Pi / 180)
	op.GeoM.Translate(tilt.Position.X, tilt.Position.Y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(s.assets.tilt, op)
}

// drawHealthBar 绘制血条：2 像素黑边、按比例填充的彩色条、左侧右对齐的百分比文字
func (s *MiniGameScene) drawHealthBar(screen *ebiten.Image, health, ratio float64) {
	bar := s.skin.HealthBar
	if bar == nil {
		return
	}
	r := bar.Rect

	vector.DrawFilledRect(screen,
		float32(r.X-2), float32(r.Y-2), float32(r.Width+4), float32(r.Height+4),
		config.ColorBlack, false)

	fillWidth := math.Floor(r.Width * ratio)
	if fillWidth > 0 {
		vector.DrawFilledRect(screen,
			float32(r.X), float32(r.Y), float32(fillWidth), float32(r.Height),
			utils.HealthBarColor(ratio), false)
	}

	if s.assets.font == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(r.X-config.HealthTextGap, r.Y+r.Height/2)
	op.ColorScale.ScaleWithColor(config.ColorWhite)
	op.PrimaryAlign = text.AlignEnd
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, fmt.Sprintf("%d%%", int(health)), s.assets.font, op)
}

// drawFitted 把图片拉伸到整个逻辑屏幕
func drawFitted(screen, img *ebiten.Image, x, y float64) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(config.ScreenWidth/float64(bounds.Dx()), config.ScreenHeight/float64(bounds.Dy()))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}
