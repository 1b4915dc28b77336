package components

import "github.com/decker502/lightsout/pkg/config"

// HealthComponent 小游戏中细菌的生命值
// 三个小游戏共用：按键扣血，每帧自动回血，归零即结束本局
//
// 不变量：每次修改后 config.HealthMin <= Current <= Max
type HealthComponent struct {
	Current float64 // 当前生命值
	Max     float64 // 最大生命值
}

// NewHealthComponent 创建满血的生命值组件
func NewHealthComponent(max float64) *HealthComponent {
	h := &HealthComponent{Max: max}
	h.Reset()
	return h
}

// Reset 恢复满血
func (h *HealthComponent) Reset() {
	h.Current = h.Max
}

// ApplyRegen 自动回血
// 只在 HealthMin < Current < Max 时生效：满血时幂等，归零后不会复活
func (h *HealthComponent) ApplyRegen(rate float64) {
	if h.Current <= config.HealthMin || h.Current >= h.Max {
		return
	}
	h.Current += rate
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// ApplyDamage 扣血，最低为 HealthMin
func (h *HealthComponent) ApplyDamage(amount float64) {
	h.Current -= amount
	if h.Current < config.HealthMin {
		h.Current = config.HealthMin
	}
}

// Ratio 返回 Current/Max，范围 [0, 1]
func (h *HealthComponent) Ratio() float64 {
	if h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}

// IsDepleted 生命值是否已归零
func (h *HealthComponent) IsDepleted() bool {
	return h.Current <= config.HealthMin
}
