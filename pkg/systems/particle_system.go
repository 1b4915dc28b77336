package systems

import (
	"math/rand"

	"github.com/decker502/lightsout/pkg/components"
	"github.com/decker502/lightsout/pkg/config"
	"github.com/decker502/lightsout/pkg/ecs"
	"github.com/decker502/lightsout/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// ParticleSystem 盐粒粒子系统
// 负责创建粒子实体、每帧移动并绕回、按生命值显示前 N 个粒子
//
// 粒子池大小固定，生命值只决定显示数量；粒子实体随本局一起销毁
type ParticleSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.ParticleConfig
	screenHeight  float64
}

// NewParticleSystem 创建粒子系统
func NewParticleSystem(em *ecs.EntityManager, cfg *config.ParticleConfig, screenHeight float64) *ParticleSystem {
	return &ParticleSystem{
		entityManager: em,
		cfg:           cfg,
		screenHeight:  screenHeight,
	}
}

// Spawn 按配置创建粒子实体，返回的ID顺序即显示顺序
// X 按 x_fractions 固定，Y 在 [0, screenHeight-size] 内随机，速度方向随机
//
// size 是实际绘制边长：加载到图片时为配置的 Size，占位图时为占位图自身高度
func (ps *ParticleSystem) Spawn(rng *rand.Rand, screenWidth, size float64) []ecs.EntityID {
	ids := make([]ecs.EntityID, ps.cfg.Count)
	maxY := int(ps.screenHeight - size)
	if maxY < 0 {
		maxY = 0
	}

	for i := range ids {
		vy := ps.cfg.Speed
		if rng.Intn(2) == 0 {
			vy = -vy
		}
		id := ps.entityManager.CreateEntity()
		ecs.AddComponent(ps.entityManager, id, &components.ParticleComponent{
			X:         screenWidth * ps.cfg.XFractions[i],
			Y:         float64(rng.Intn(maxY + 1)),
			VelocityY: vy,
			Size:      size,
		})
		ids[i] = id
	}
	return ids
}

// Update 移动所有粒子（包括当前不可见的）
// 完全移出上边缘后从下边缘进入，反之亦然
func (ps *ParticleSystem) Update() {
	for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](ps.entityManager) {
		p, ok := ecs.GetComponent[*components.ParticleComponent](ps.entityManager, id)
		if !ok {
			continue
		}
		p.Y += p.VelocityY
		if p.Y < -p.Size {
			p.Y = ps.screenHeight
		} else if p.Y > ps.screenHeight {
			p.Y = -p.Size
		}
	}
}

// VisibleCount 当前生命值比例下需要显示的粒子数
func (ps *ParticleSystem) VisibleCount(ratio float64, pool int) int {
	return utils.VisibleParticleCount(ratio, pool, ps.cfg.RevealFactor)
}

// Draw 按创建顺序绘制前 VisibleCount 个粒子
// image 会被缩放到每个粒子的 Size x Size，返回绘制的粒子数
func (ps *ParticleSystem) Draw(screen *ebiten.Image, image *ebiten.Image, ratio float64) int {
	if screen == nil || image == nil {
		return 0
	}

	ids := ecs.GetEntitiesWith1[*components.ParticleComponent](ps.entityManager)
	n := ps.VisibleCount(ratio, len(ids))
	bounds := image.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return 0
	}

	for _, id := range ids[:n] {
		p, ok := ecs.GetComponent[*components.ParticleComponent](ps.entityManager, id)
		if !ok {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(p.Size/float64(bounds.Dx()), p.Size/float64(bounds.Dy()))
		op.GeoM.Translate(p.X, p.Y)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(image, op)
	}
	return n
}
