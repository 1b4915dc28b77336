package systems

import (
	"image/color"

	"github.com/decker502/lightsout/pkg/components"
	"github.com/decker502/lightsout/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ButtonSystem 幻灯片导航按钮的命中检测
//
// 职责：
//   - 找出当前幻灯片上第一个包含点击位置的按钮（按实体创建顺序，即配置顺序）
//   - 调试模式下描边所有可用按钮的点击区域
//
// 注意：点击音效和翻页由调用者（SlideshowScene）处理
type ButtonSystem struct {
	entityManager *ecs.EntityManager
}

// NewButtonSystem 创建按钮系统
func NewButtonSystem(em *ecs.EntityManager) *ButtonSystem {
	return &ButtonSystem{
		entityManager: em,
	}
}

// visibleOn 返回 slide 上可用的按钮，按创建顺序
func (s *ButtonSystem) visibleOn(slide int) []*components.ButtonComponent {
	ids := ecs.GetEntitiesWith1[*components.ButtonComponent](s.entityManager)
	buttons := make([]*components.ButtonComponent, 0, len(ids))
	for _, id := range ids {
		btn, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, id)
		if ok && btn.IsVisibleOn(slide) {
			buttons = append(buttons, btn)
		}
	}
	return buttons
}

// HitTest 返回 slide 上第一个包含 (x, y) 的可用按钮
// 没有命中时返回 nil
func (s *ButtonSystem) HitTest(slide int, x, y float64) *components.ButtonComponent {
	for _, btn := range s.visibleOn(slide) {
		if btn.Contains(x, y) {
			return btn
		}
	}
	return nil
}

// DrawDebug 描边 slide 上所有可用按钮的点击区域
func (s *ButtonSystem) DrawDebug(screen *ebiten.Image, slide int, c color.Color) {
	for _, btn := range s.visibleOn(slide) {
		vector.StrokeRect(screen,
			float32(btn.Rect.X), float32(btn.Rect.Y),
			float32(btn.Rect.Width), float32(btn.Rect.Height),
			2, c, false)
	}
}
