package systems

import (
	"testing"

	"github.com/decker502/lightsout/pkg/components"
	"github.com/decker502/lightsout/pkg/config"
	"github.com/decker502/lightsout/pkg/ecs"
)

func newTestButtons(em *ecs.EntityManager) {
	buttons := []config.ButtonConfig{
		{
			ID:              "first",
			Rect:            config.Rect{X: 0, Y: 0, Width: 100, Height: 100},
			TargetSlide:     1,
			VisibleOnSlides: []int{0},
		},
		{
			ID:              "overlap",
			Rect:            config.Rect{X: 50, Y: 50, Width: 100, Height: 100},
			TargetSlide:     2,
			VisibleOnSlides: []int{0, 1},
		},
	}
	for _, b := range buttons {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, components.NewButtonComponent(b))
	}
}

// TestButtonSystem_HitTest 测试按钮命中检测
func TestButtonSystem_HitTest(t *testing.T) {
	em := ecs.NewEntityManager()
	newTestButtons(em)
	s := NewButtonSystem(em)

	tests := []struct {
		name   string
		slide  int
		x, y   float64
		wantID string
	}{
		{"重叠区域取第一个", 0, 75, 75, "first"},
		{"只命中第二个", 0, 120, 120, "overlap"},
		{"第一个在此页不可用", 1, 75, 75, "overlap"},
		{"区域外", 0, 500, 500, ""},
		{"此页无按钮", 5, 75, 75, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			btn := s.HitTest(tt.slide, tt.x, tt.y)
			gotID := ""
			if btn != nil {
				gotID = btn.ID
			}
			if gotID != tt.wantID {
				t.Errorf("HitTest(%d, %v, %v) = %q, want %q", tt.slide, tt.x, tt.y, gotID, tt.wantID)
			}
		})
	}
}

// TestButtonSystem_DestroyedButtonIgnored 测试销毁的按钮实体不再命中
func TestButtonSystem_DestroyedButtonIgnored(t *testing.T) {
	em := ecs.NewEntityManager()
	newTestButtons(em)
	s := NewButtonSystem(em)

	first := ecs.GetEntitiesWith1[*components.ButtonComponent](em)[0]
	em.DestroyEntity(first)
	em.RemoveMarkedEntities()

	btn := s.HitTest(0, 75, 75)
	if btn == nil || btn.ID != "overlap" {
		t.Errorf("Expected overlap after destroying first, got %+v", btn)
	}
}
