package components

import "github.com/decker502/lightsout/pkg/config"

// ButtonComponent 幻灯片上的不可见导航按钮
// 按钮本身画在幻灯片图片里，这里只记录点击区域、目标页和在哪些页上可用
type ButtonComponent struct {
	// ID 按钮标识（用于日志）
	ID string
	// Rect 点击区域（逻辑屏幕坐标）
	Rect config.Rect
	// TargetSlide 点击后跳转到的幻灯片下标
	TargetSlide int
	// VisibleOn 按钮可用的幻灯片下标集合
	VisibleOn map[int]bool
}

// NewButtonComponent 根据配置创建按钮
func NewButtonComponent(cfg config.ButtonConfig) *ButtonComponent {
	visible := make(map[int]bool, len(cfg.VisibleOnSlides))
	for _, idx := range cfg.VisibleOnSlides {
		visible[idx] = true
	}
	return &ButtonComponent{
		ID:          cfg.ID,
		Rect:        cfg.Rect,
		TargetSlide: cfg.TargetSlide,
		VisibleOn:   visible,
	}
}

// IsVisibleOn 按钮在指定幻灯片上是否可用
func (b *ButtonComponent) IsVisibleOn(slide int) bool {
	return b.VisibleOn[slide]
}

// Contains 点是否落在按钮区域内
func (b *ButtonComponent) Contains(x, y float64) bool {
	return b.Rect.Contains(x, y)
}
