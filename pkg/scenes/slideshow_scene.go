package scenes

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/lightsout/pkg/components"
	"github.com/decker502/lightsout/pkg/config"
	"github.com/decker502/lightsout/pkg/ecs"
	"github.com/decker502/lightsout/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ErrSlideOutOfRange 跳转目标不在 [0, 幻灯片数量) 范围内
var ErrSlideOutOfRange = errors.New("slide index out of range")

// SlideshowScene 幻灯片浏览场景
//
// 职责：
//   - 显示当前幻灯片（拉伸到逻辑屏幕）
//   - 把点击分发给当前页上的导航按钮，命中时播放点击音效并翻页
//   - 调试模式下描边按钮点击区域
//   - 当前页无效时显示灰色错误面板
type SlideshowScene struct {
	cfg          *config.SlideshowConfig
	slides       []*ebiten.Image
	buttonSystem *systems.ButtonSystem
	audio        AudioService
	clickSound   string
	current      int
	debugButtons bool
	errorFont    *text.GoTextFace
}

// NewSlideshowScene 根据配置创建幻灯片场景，从第 0 页开始
// 每个按钮是一个实体，按配置顺序创建，创建顺序即命中优先级
func NewSlideshowScene(cfg *config.SlideshowConfig, audio AudioService, clickSound string) *SlideshowScene {
	em := ecs.NewEntityManager()
	for _, b := range cfg.Buttons {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, components.NewButtonComponent(b))
	}

	return &SlideshowScene{
		cfg:          cfg,
		slides:       make([]*ebiten.Image, len(cfg.Slides)),
		buttonSystem: systems.NewButtonSystem(em),
		audio:        audio,
		clickSound:   clickSound,
	}
}

// LoadAssets 加载全部幻灯片图片
// 幻灯片是必需素材，任意一张加载失败都返回错误（包装 game.ErrRequiredAssetMissing）
func (s *SlideshowScene) LoadAssets(loader AssetLoader) error {
	for i, id := range s.cfg.Slides {
		img, err := loader.LoadRequiredImage(id)
		if err != nil {
			return fmt.Errorf("slide %d: %w", i, err)
		}
		s.slides[i] = img
	}

	font, err := loader.LoadDefaultFont(config.ErrorFontSize)
	if err != nil {
		return fmt.Errorf("failed to load error font: %w", err)
	}
	s.errorFont = font

	log.Printf("[Slideshow] Loaded %d slides", len(s.slides))
	return nil
}

// SetDebugButtons 开关按钮点击区域描边
func (s *SlideshowScene) SetDebugButtons(enabled bool) {
	s.debugButtons = enabled
}

// CurrentSlide 返回当前幻灯片下标
func (s *SlideshowScene) CurrentSlide() int {
	return s.current
}

// SlideCount 返回幻灯片数量
func (s *SlideshowScene) SlideCount() int {
	return len(s.cfg.Slides)
}

// GotoSlide 跳转到指定幻灯片
// 目标越界时记录警告、保持当前页不变，并返回 ErrSlideOutOfRange
func (s *SlideshowScene) GotoSlide(target int) error {
	if target < 0 || target >= len(s.cfg.Slides) {
		log.Printf("[Slideshow] Warning: cannot go to slide %d (have %d slides), staying on %d",
			target, len(s.cfg.Slides), s.current)
		return fmt.Errorf("%w: %d not in [0, %d)", ErrSlideOutOfRange, target, len(s.cfg.Slides))
	}
	s.current = target
	log.Printf("[Slideshow] Slide %d", target)
	return nil
}

// HandleClick 处理一次点击（逻辑屏幕坐标）
// 只有当前页上第一个包含该点的按钮生效：播放点击音效并跳转
//
// 返回：
//   - bool: 是否命中按钮
func (s *SlideshowScene) HandleClick(x, y float64) bool {
	btn := s.buttonSystem.HitTest(s.current, x, y)
	if btn == nil {
		return false
	}

	log.Printf("[Slideshow] Button %s clicked on slide %d", btn.ID, s.current)
	s.audio.PlaySound(s.clickSound)
	if err := s.GotoSlide(btn.TargetSlide); err != nil {
		log.Printf("[Slideshow] Warning: button %s: %v", btn.ID, err)
	}
	return true
}

// Draw 绘制当前幻灯片
func (s *SlideshowScene) Draw(screen *ebiten.Image) {
	screen.Fill(config.ColorBlack)

	if s.current < 0 || s.current >= len(s.slides) {
		s.drawErrorPanel(screen)
		return
	}

	if img := s.slides[s.current]; img != nil {
		drawFitted(screen, img, 0, 0)
	}
	if s.debugButtons {
		s.buttonSystem.DrawDebug(screen, s.current, config.ColorDebugOutline)
	}
}

// drawErrorPanel 当前页无效时的灰色提示面板
func (s *SlideshowScene) drawErrorPanel(screen *ebiten.Image) {
	screen.Fill(config.ColorLightGray)
	if s.errorFont == nil {
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(config.ScreenWidth/2, config.ScreenHeight/2)
	op.ColorScale.ScaleWithColor(config.ColorBlack)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, errorPanelText(s.current), s.errorFont, op)
}

// errorPanelText 错误面板上的提示文字，index 为 0 起的幻灯片下标
func errorPanelText(index int) string {
	return fmt.Sprintf("Invalid slide index %d", index)
}
