package components

import (
	"testing"

	"github.com/decker502/lightsout/pkg/config"
)

func TestButtonComponent_FromConfig(t *testing.T) {
	btn := NewButtonComponent(config.ButtonConfig{
		ID:              "next",
		Rect:            config.Rect{X: 100, Y: 200, Width: 50, Height: 40},
		TargetSlide:     2,
		VisibleOnSlides: []int{0, 1},
	})

	if btn.ID != "next" || btn.TargetSlide != 2 {
		t.Errorf("Unexpected button: %+v", btn)
	}

	visibility := []struct {
		slide int
		want  bool
	}{
		{0, true},
		{1, true},
		{2, false},
		{-1, false},
	}
	for _, tt := range visibility {
		if got := btn.IsVisibleOn(tt.slide); got != tt.want {
			t.Errorf("IsVisibleOn(%d) = %v, want %v", tt.slide, got, tt.want)
		}
	}

	if !btn.Contains(120, 220) {
		t.Error("Expected point inside button")
	}
	if btn.Contains(150, 220) {
		t.Error("Right edge should be exclusive")
	}
}
