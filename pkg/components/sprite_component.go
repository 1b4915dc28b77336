package components

// SpriteComponent 小游戏主精灵（细菌/酶）的绘制状态
// 与 HealthComponent 挂在同一个实体上
type SpriteComponent struct {
	// OffsetX, OffsetY 本帧的抖动偏移（像素），由 RumbleSystem 每帧重新采样
	OffsetX, OffsetY float64
}
