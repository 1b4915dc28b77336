package components

// FlashEffectComponent 按键闪光计时器
// 每次按键在 "TAP!" 按钮区域闪白若干帧，给玩家即时反馈
//
// 计时以帧为单位，由绘制阶段消耗（每帧一次）
type FlashEffectComponent struct {
	// Frames 剩余闪光帧数，0 表示不闪光
	Frames int

	// Duration 每次触发的持续帧数
	Duration int
}

// NewFlashEffectComponent 创建闪光计时器
func NewFlashEffectComponent(durationFrames int) *FlashEffectComponent {
	return &FlashEffectComponent{Duration: durationFrames}
}

// Trigger 重新开始闪光（连续按键不会叠加，只是重置）
func (f *FlashEffectComponent) Trigger() {
	f.Frames = f.Duration
}

// Consume 消耗一帧
// 返回本帧是否需要绘制闪光
func (f *FlashEffectComponent) Consume() bool {
	if f.Frames <= 0 {
		return false
	}
	f.Frames--
	return true
}

// IsActive 是否仍在闪光
func (f *FlashEffectComponent) IsActive() bool {
	return f.Frames > 0
}
