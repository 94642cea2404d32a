package system

import (
	"testing"

	"github.com/milk9111/voxelwalk/ecs"
	"github.com/milk9111/voxelwalk/ecs/component"
)

func TestAggregatorKeys(t *testing.T) {
	tests := []struct {
		name   string
		events []RawEvent
		want   component.PressedDirections
	}{
		{"press forward", []RawEvent{KeyEvent{Key: "w", Down: true}}, component.PressedDirections{Forward: true}},
		{"case insensitive", []RawEvent{KeyEvent{Key: "ArrowLeft", Down: true}, KeyEvent{Key: "D", Down: true}},
			component.PressedDirections{Left: true, Right: true}},
		{"release", []RawEvent{KeyEvent{Key: "s", Down: true}, KeyEvent{Key: "S", Down: false}}, component.PressedDirections{}},
		{"unbound key", []RawEvent{KeyEvent{Key: "q", Down: true}}, component.PressedDirections{}},
		{"shift held", []RawEvent{KeyEvent{Key: "Shift", Down: true}}, component.PressedDirections{Run: true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var agg Aggregator
			var in component.Input
			for _, evt := range tc.events {
				agg.Apply(&in, evt)
			}
			if in.Pressed != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, in.Pressed)
			}
		})
	}
}

func TestAggregatorRunToggleEdge(t *testing.T) {
	var agg Aggregator
	var in component.Input

	// Auto-repeat delivers several downs before the release.
	agg.Apply(&in, KeyEvent{Key: "shift", Down: true})
	agg.Apply(&in, KeyEvent{Key: "shift", Down: true})
	agg.Apply(&in, KeyEvent{Key: "shift", Down: true})
	if !in.RunToggled {
		t.Fatalf("expected one pending run toggle")
	}
	agg.Apply(&in, KeyEvent{Key: "shift", Down: false})
	if !in.RunToggled {
		t.Fatalf("release must not cancel the toggle")
	}

	// A second press before the toggle was consumed cancels it out.
	agg.Apply(&in, KeyEvent{Key: "shift", Down: true})
	if in.RunToggled {
		t.Fatalf("expected two presses to cancel out")
	}
}

func TestAggregatorFollowToggle(t *testing.T) {
	var agg Aggregator
	var in component.Input

	agg.Apply(&in, KeyEvent{Key: "R", Down: true})
	agg.Apply(&in, KeyEvent{Key: "r", Down: true})
	if !in.FollowToggled {
		t.Fatalf("expected follow toggle on the leading edge")
	}
	if in.Pressed != (component.PressedDirections{}) {
		t.Fatalf("follow key must not touch directions, got %s", in.Pressed)
	}
}

func TestAggregatorJoystick(t *testing.T) {
	var agg Aggregator
	in := component.Input{Pressed: component.PressedDirections{Forward: true, Right: true, Run: true}}

	agg.Apply(&in, JoystickEvent{Direction: JoystickLeft})
	if want := (component.PressedDirections{Left: true, Run: true}); in.Pressed != want {
		t.Fatalf("expected joystick to replace directions with %s, got %s", want, in.Pressed)
	}

	agg.Apply(&in, JoystickEvent{Direction: JoystickNone})
	if want := (component.PressedDirections{Run: true}); in.Pressed != want {
		t.Fatalf("expected stop to clear directions and keep run, got %s", in.Pressed)
	}
}

func TestAggregatorOrbit(t *testing.T) {
	var agg Aggregator
	var in component.Input

	agg.Apply(&in, OrbitEvent{Yaw: 3, Pitch: -1})
	agg.Apply(&in, OrbitEvent{Yaw: 2, Zoom: 1})
	if in.OrbitYaw != 5 || in.OrbitPitch != -1 || in.Zoom != 1 {
		t.Fatalf("expected accumulated deltas, got yaw=%v pitch=%v zoom=%v", in.OrbitYaw, in.OrbitPitch, in.Zoom)
	}
}

func TestInputSystem(t *testing.T) {
	s := newTestScene(t)
	other := ecs.CreateEntity(s.w)
	mustAdd(t, ecs.Add(s.w, other, component.InputComponent.Kind(), &component.Input{}))

	src := &scriptedSource{batches: [][]RawEvent{
		{KeyEvent{Key: "shift", Down: true}, KeyEvent{Key: "w", Down: true}},
		{KeyEvent{Key: "shift", Down: true}},
		{KeyEvent{Key: "w", Down: false}},
	}}
	sys := NewInputSystem(src)

	sys.Update(s.w)
	for _, e := range []ecs.Entity{s.player, other} {
		in, _ := ecs.Get(s.w, e, component.InputComponent.Kind())
		if !in.RunToggled || !in.Pressed.Forward {
			t.Fatalf("entity %v: expected run toggle and forward, got %+v", e, in)
		}
	}

	// Auto-repeat of the held shift key.
	sys.Update(s.w)
	if !s.input(t).RunToggled {
		t.Fatalf("repeat must not flip the toggle back")
	}

	sys.Detach()
	if sys.Attached() {
		t.Fatalf("expected detached system")
	}
	sys.Update(s.w)
	if !s.input(t).Pressed.Forward {
		t.Fatalf("expected detached system to leave input untouched")
	}
}

func TestInputSystemSharedEdges(t *testing.T) {
	tests := []struct {
		name    string
		batches [][]RawEvent
		wantRun bool
		wantYaw float64
	}{
		{"one press", [][]RawEvent{{KeyEvent{Key: "shift", Down: true}}}, true, 0},
		{"repeat within a tick", [][]RawEvent{{KeyEvent{Key: "shift", Down: true}, KeyEvent{Key: "shift", Down: true}}}, true, 0},
		{"press release press", [][]RawEvent{
			{KeyEvent{Key: "shift", Down: true}},
			{KeyEvent{Key: "shift", Down: false}, KeyEvent{Key: "shift", Down: true}},
		}, false, 0},
		{"orbit applied once per target", [][]RawEvent{{OrbitEvent{Yaw: 2}, OrbitEvent{Yaw: 1}}}, false, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestScene(t)
			targets := []ecs.Entity{s.player}
			for i := 0; i < 2; i++ {
				e := ecs.CreateEntity(s.w)
				mustAdd(t, ecs.Add(s.w, e, component.InputComponent.Kind(), &component.Input{}))
				targets = append(targets, e)
			}

			sys := NewInputSystem(&scriptedSource{batches: tc.batches})
			for range tc.batches {
				sys.Update(s.w)
			}

			for _, e := range targets {
				in, _ := ecs.Get(s.w, e, component.InputComponent.Kind())
				if in.RunToggled != tc.wantRun {
					t.Fatalf("entity %v: expected run toggled %v, got %v", e, tc.wantRun, in.RunToggled)
				}
				if in.OrbitYaw != tc.wantYaw {
					t.Fatalf("entity %v: expected yaw %v, got %v", e, tc.wantYaw, in.OrbitYaw)
				}
			}
		})
	}
}

func TestInputSystemDetachStopsPolling(t *testing.T) {
	s := newTestScene(t)
	src := &scriptedSource{batches: [][]RawEvent{{KeyEvent{Key: "w", Down: true}}}}
	sys := NewInputSystem(src)

	sys.Detach()
	sys.Detach()
	sys.Update(s.w)
	if len(src.batches) != 1 {
		t.Fatalf("expected detached system not to poll its source")
	}
	if s.input(t).Pressed.Forward {
		t.Fatalf("expected no input after detach")
	}

	var nilSys *InputSystem
	nilSys.Detach()
	if nilSys.Attached() {
		t.Fatalf("expected nil system to report detached")
	}
}
