package components

import (
	"math"
	"testing"
)

// TestHealthComponent_ClampInvariant 测试任意操作序列后生命值都在 [0, Max]
func TestHealthComponent_ClampInvariant(t *testing.T) {
	h := NewHealthComponent(100)

	ops := []struct {
		name   string
		damage float64
		regen  float64
	}{
		{"大额伤害", 250, 0},
		{"归零后回血", 0, 0.35},
		{"重置后回血", -1, 50},
		{"小额伤害", 5, 0},
		{"大额回血", 0, 1000},
	}

	for _, op := range ops {
		if op.damage < 0 {
			h.Reset()
		} else if op.damage > 0 {
			h.ApplyDamage(op.damage)
		}
		if op.regen > 0 {
			h.ApplyRegen(op.regen)
		}
		if h.Current < 0 || h.Current > h.Max {
			t.Errorf("%s: Current = %v, want in [0, %v]", op.name, h.Current, h.Max)
		}
	}
}

// TestHealthComponent_RegenIdempotentAtMax 测试满血时回血不变
func TestHealthComponent_RegenIdempotentAtMax(t *testing.T) {
	h := NewHealthComponent(100)
	for i := 0; i < 10; i++ {
		h.ApplyRegen(0.35)
	}
	if h.Current != 100 {
		t.Errorf("Expected Current = 100, got %v", h.Current)
	}
}

// TestHealthComponent_NoRegenWhenDepleted 测试归零后不会回血
func TestHealthComponent_NoRegenWhenDepleted(t *testing.T) {
	h := NewHealthComponent(100)
	h.ApplyDamage(100)
	h.ApplyRegen(0.35)

	if h.Current != 0 {
		t.Errorf("Expected Current = 0 after regen at zero, got %v", h.Current)
	}
	if !h.IsDepleted() {
		t.Error("Expected IsDepleted() = true")
	}
}

// TestHealthComponent_TwentyTapsDeplete 测试连续 20 次 5 点伤害后归零
func TestHealthComponent_TwentyTapsDeplete(t *testing.T) {
	h := NewHealthComponent(100)
	for i := 0; i < 19; i++ {
		h.ApplyDamage(5)
		if h.IsDepleted() {
			t.Fatalf("Depleted too early after %d taps", i+1)
		}
	}
	h.ApplyDamage(5)
	if !h.IsDepleted() || h.Current != 0 {
		t.Errorf("Expected depleted at 0 after 20 taps, got %v", h.Current)
	}
}

// TestHealthComponent_RegenClampsAtMax 测试回血不超过上限
func TestHealthComponent_RegenClampsAtMax(t *testing.T) {
	h := NewHealthComponent(100)
	h.ApplyDamage(0.1)
	h.ApplyRegen(0.35)
	if h.Current != 100 {
		t.Errorf("Expected Current clamped to 100, got %v", h.Current)
	}
}

func TestHealthComponent_Ratio(t *testing.T) {
	tests := []struct {
		current float64
		want    float64
	}{
		{100, 1.0},
		{50, 0.5},
		{0, 0},
	}
	for _, tt := range tests {
		h := &HealthComponent{Current: tt.current, Max: 100}
		if got := h.Ratio(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Ratio() with Current=%v = %v, want %v", tt.current, got, tt.want)
		}
	}

	empty := &HealthComponent{}
	if empty.Ratio() != 0 {
		t.Errorf("Ratio() with Max=0 should be 0, got %v", empty.Ratio())
	}
}
