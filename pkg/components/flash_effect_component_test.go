package components

import "testing"

// TestFlashEffectComponent_ConsumeFrames 测试闪光持续帧数
func TestFlashEffectComponent_ConsumeFrames(t *testing.T) {
	f := NewFlashEffectComponent(3)

	if f.Consume() {
		t.Error("Expected no flash before Trigger()")
	}

	f.Trigger()
	for i := 0; i < 3; i++ {
		if !f.Consume() {
			t.Errorf("Expected flash on frame %d", i)
		}
	}
	if f.Consume() {
		t.Error("Expected flash to end after 3 frames")
	}
	if f.Frames != 0 {
		t.Errorf("Expected Frames = 0, got %d", f.Frames)
	}
}

// TestFlashEffectComponent_RetriggerResets 测试重复触发只重置不叠加
func TestFlashEffectComponent_RetriggerResets(t *testing.T) {
	f := NewFlashEffectComponent(3)
	f.Trigger()
	f.Consume()
	f.Trigger()
	f.Trigger()

	if f.Frames != 3 {
		t.Errorf("Expected Frames = 3 after retrigger, got %d", f.Frames)
	}
	if !f.IsActive() {
		t.Error("Expected IsActive() = true")
	}
}
