package systems

import (
	"math/rand"

	"github.com/decker502/lightsout/pkg/components"
	"github.com/decker502/lightsout/pkg/ecs"
	"github.com/decker502/lightsout/pkg/utils"
)

// RumbleSystem 主精灵抖动系统
// 每帧按生命值为拥有 Health+Sprite 的实体重新采样抖动偏移
type RumbleSystem struct {
	entityManager *ecs.EntityManager
	params        utils.RumbleParams
	rng           *rand.Rand
}

// NewRumbleSystem 创建抖动系统
func NewRumbleSystem(em *ecs.EntityManager, params utils.RumbleParams, rng *rand.Rand) *RumbleSystem {
	return &RumbleSystem{
		entityManager: em,
		params:        params,
		rng:           rng,
	}
}

// Update 重新采样所有精灵的偏移
func (s *RumbleSystem) Update() {
	entities := ecs.GetEntitiesWith2[*components.HealthComponent, *components.SpriteComponent](s.entityManager)
	for _, id := range entities {
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		magnitude := utils.RumbleMagnitude(health.Current, s.params)
		sprite.OffsetX, sprite.OffsetY = utils.RumbleOffset(s.rng, magnitude)
	}
}
