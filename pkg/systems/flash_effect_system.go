package systems

import (
	"image/color"

	"github.com/decker502/lightsout/pkg/components"
	"github.com/decker502/lightsout/pkg/config"
	"github.com/decker502/lightsout/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// FlashEffectSystem 按键闪光系统
// 在绘制阶段消耗闪光计时器，并在 "TAP!" 按钮区域画半透明白色矩形
type FlashEffectSystem struct {
	entityManager *ecs.EntityManager
	rect          config.Rect
	color         color.Color
}

// NewFlashEffectSystem 创建闪光系统
// 参数：
//   - em: 实体管理器，查询拥有 FlashEffectComponent 的实体
//   - rect: 闪光覆盖的区域
//   - c: 闪光颜色（通常为半透明白色）
func NewFlashEffectSystem(em *ecs.EntityManager, rect config.Rect, c color.Color) *FlashEffectSystem {
	return &FlashEffectSystem{
		entityManager: em,
		rect:          rect,
		color:         c,
	}
}

// Draw 为每个仍在闪光的实体消耗一帧并绘制覆盖层
// 每帧只能调用一次，返回本帧是否绘制了闪光
func (s *FlashEffectSystem) Draw(screen *ebiten.Image) bool {
	drawn := false
	for _, id := range ecs.GetEntitiesWith1[*components.FlashEffectComponent](s.entityManager) {
		flash, ok := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, id)
		if !ok || !flash.IsActive() {
			continue
		}
		flash.Consume()
		drawn = true
	}

	if drawn && screen != nil {
		vector.DrawFilledRect(screen,
			float32(s.rect.X), float32(s.rect.Y),
			float32(s.rect.Width), float32(s.rect.Height),
			s.color, false)
	}
	return drawn
}
