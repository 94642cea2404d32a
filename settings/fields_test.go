package settings

import (
	"math"
	"testing"
)

func TestFieldEditing(t *testing.T) {
	s := NewStore(Defaults())

	var fogCalls, gridCalls int
	if _, err := s.Subscribe(DomainFog, func(Settings) { fogCalls++ }); err != nil {
		t.Fatalf("subscribe fog: %v", err)
	}
	if _, err := s.Subscribe(DomainGrid, func(Settings) { gridCalls++ }); err != nil {
		t.Fatalf("subscribe grid: %v", err)
	}

	if err := s.Toggle(DomainFog, "enabled"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if s.Snapshot().Fog.Enabled {
		t.Fatalf("expected fog disabled after toggle")
	}

	if err := s.Step(DomainFog, "density", 1); err != nil {
		t.Fatalf("step: %v", err)
	}
	if got := s.Snapshot().Fog.Density; math.Abs(got-0.006) > 1e-9 {
		t.Fatalf("expected density 0.006, got %v", got)
	}

	if err := s.Step(DomainFog, "density", 1000); err != nil {
		t.Fatalf("step: %v", err)
	}
	if got := s.Snapshot().Fog.Density; got != 0.05 {
		t.Fatalf("expected density clamped to 0.05, got %v", got)
	}

	if err := s.Step(DomainFog, "near", -1); err != nil {
		t.Fatalf("step near: %v", err)
	}
	if got := s.Snapshot().Fog.Near; got != 29 {
		t.Fatalf("expected near 29, got %v", got)
	}

	if fogCalls != 4 || gridCalls != 0 {
		t.Fatalf("expected 4 fog and 0 grid notifications, got %d and %d", fogCalls, gridCalls)
	}
	if s.Snapshot().Fog.Color != DefaultFog().Color {
		t.Fatalf("unrelated fog fields changed: %+v", s.Snapshot().Fog)
	}
}

func TestCycleEnum(t *testing.T) {
	s := NewStore(Defaults())

	want := []FogMode{FogExp, FogExp2, FogLinear}
	for i, mode := range want {
		if err := s.Cycle(DomainFog, "mode"); err != nil {
			t.Fatalf("cycle %d: %v", i, err)
		}
		if got := s.Snapshot().Fog.Mode; got != mode {
			t.Fatalf("cycle %d: expected %q, got %q", i, mode, got)
		}
	}
}

func TestFieldErrors(t *testing.T) {
	s := NewStore(Defaults())

	tests := []struct {
		name string
		run  func() error
	}{
		{"unknown field", func() error { return s.SetValue(DomainFog, "nope", 1) }},
		{"unknown domain", func() error { _, err := s.Value("weather", "enabled"); return err }},
		{"toggle non bool", func() error { return s.Toggle(DomainFog, "density") }},
		{"step non range", func() error { return s.Step(DomainFog, "enabled", 1) }},
		{"cycle non enum", func() error { return s.Cycle(DomainGrid, "enabled") }},
		{"bad type", func() error { return s.SetValue(DomainFog, "density", "thick") }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	if got := s.Snapshot().Fog; got != DefaultFog() {
		t.Fatalf("failed edits changed fog: %+v", got)
	}
}
