package main

import (
	"testing"

	"github.com/milk9111/voxelwalk/ecs/system"
)

func TestQuantizeStick(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want system.JoystickDirection
	}{
		{"dead zone", 0.1, -0.2, system.JoystickNone},
		{"up", 0.1, -0.9, system.JoystickForward},
		{"down", 0, 0.5, system.JoystickBackward},
		{"left", -0.8, 0.4, system.JoystickLeft},
		{"right", 0.6, -0.3, system.JoystickRight},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := quantizeStick(tc.x, tc.y); got != tc.want {
				t.Fatalf("quantizeStick(%v, %v) = %q, want %q", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestShiftTransition(t *testing.T) {
	type step struct {
		left, right bool
		want        *system.KeyEvent
	}
	press := &system.KeyEvent{Key: "shift", Down: true}
	release := &system.KeyEvent{Key: "shift", Down: false}

	tests := []struct {
		name  string
		steps []step
	}{
		{"single key", []step{{true, false, press}, {true, false, nil}, {false, false, release}}},
		{"release one of two", []step{{true, false, press}, {true, true, nil}, {false, true, nil}, {false, false, release}}},
		{"both at once", []step{{true, true, press}, {false, false, release}}},
		{"idle", []step{{false, false, nil}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var src ebitenSource
			for i, st := range tc.steps {
				got, ok := src.shiftTransition(st.left, st.right)
				if ok != (st.want != nil) {
					t.Fatalf("step %d: expected event=%v, got %v (%+v)", i, st.want != nil, ok, got)
				}
				if ok && got != *st.want {
					t.Fatalf("step %d: expected %+v, got %+v", i, *st.want, got)
				}
			}
		})
	}
}
