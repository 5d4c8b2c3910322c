package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionPause)
	f.Set(ActionFlap)

	if !f.Has(ActionFlap) || !f.Has(ActionPause) {
		t.Error("frame should report the actions that were set")
	}
	if f.Has(ActionQuit) {
		t.Error("frame should not report unset actions")
	}

	list := f.List()
	if len(list) != 2 || list[0] != ActionFlap || list[1] != ActionPause {
		t.Errorf("List() = %v, expected [Flap Pause]", list)
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should remove all actions")
	}
	if !clone.Has(ActionFlap) {
		t.Error("Clone should not share storage with its source frame")
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionFlap) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionFlap)
	if !f.Has(ActionFlap) {
		t.Error("Set should lazily allocate the action map")
	}
}

func TestTickSeconds(t *testing.T) {
	if got := (RuntimeConfig{TickRate: 50}).TickSeconds(); got != 0.02 {
		t.Errorf("TickSeconds() = %v, expected 0.02", got)
	}
	if got := (RuntimeConfig{}).TickSeconds(); got != 1.0/60.0 {
		t.Errorf("TickSeconds() with zero rate = %v, expected 1/60", got)
	}
}
