package system

import (
	"strings"

	"github.com/milk9111/voxelwalk/ecs"
	"github.com/milk9111/voxelwalk/ecs/component"
)

// RawEvent is one input event produced by a Source.
type RawEvent interface {
	rawEvent()
}

// KeyEvent is a key press or release. Key names are matched
// case-insensitively.
type KeyEvent struct {
	Key  string
	Down bool
}

// JoystickDirection is the quantized direction of a virtual joystick.
type JoystickDirection string

const (
	JoystickNone     JoystickDirection = ""
	JoystickForward  JoystickDirection = "FORWARD"
	JoystickBackward JoystickDirection = "BACKWARD"
	JoystickLeft     JoystickDirection = "LEFT"
	JoystickRight    JoystickDirection = "RIGHT"
)

// JoystickEvent reports a joystick move, or a stop when Direction is
// JoystickNone.
type JoystickEvent struct {
	Direction JoystickDirection
}

// OrbitEvent carries camera drag and wheel deltas.
type OrbitEvent struct {
	Yaw   float64
	Pitch float64
	Zoom  float64
}

func (KeyEvent) rawEvent()      {}
func (JoystickEvent) rawEvent() {}
func (OrbitEvent) rawEvent()    {}

// Source yields the raw events collected since the previous call.
type Source interface {
	Poll() []RawEvent
}

var keyBindings = map[string]component.LogicalKey{
	"w":          component.KeyForward,
	"arrowup":    component.KeyForward,
	"s":          component.KeyBackward,
	"arrowdown":  component.KeyBackward,
	"a":          component.KeyLeft,
	"arrowleft":  component.KeyLeft,
	"d":          component.KeyRight,
	"arrowright": component.KeyRight,
	"shift":      component.KeyRun,
}

const followKey = "r"

var joystickBindings = map[JoystickDirection]component.LogicalKey{
	JoystickForward:  component.KeyForward,
	JoystickBackward: component.KeyBackward,
	JoystickLeft:     component.KeyLeft,
	JoystickRight:    component.KeyRight,
}

// Aggregator folds raw events into an Input. It remembers which toggle keys
// are held so auto-repeat never flips a latch twice.
type Aggregator struct {
	runHeld    bool
	followHeld bool
}

// inputChange is the effect of one raw event, resolved against the held
// latches so it can be applied to any number of inputs.
type inputChange struct {
	key        component.LogicalKey
	keyDown    bool
	hasKey     bool
	flipRun    bool
	flipFollow bool

	joystick    JoystickDirection
	hasJoystick bool

	orbit OrbitEvent
}

// Apply folds evt into in.
func (a *Aggregator) Apply(in *component.Input, evt RawEvent) {
	if in == nil {
		return
	}
	a.step(evt).apply(in)
}

// step advances the held latches by evt and returns its effect.
func (a *Aggregator) step(evt RawEvent) inputChange {
	var c inputChange
	switch e := evt.(type) {
	case KeyEvent:
		a.stepKey(&c, e)
	case JoystickEvent:
		c.joystick = e.Direction
		c.hasJoystick = true
	case OrbitEvent:
		c.orbit = e
	}
	return c
}

func (a *Aggregator) stepKey(c *inputChange, e KeyEvent) {
	key := strings.ToLower(e.Key)
	if key == followKey {
		c.flipFollow = e.Down && !a.followHeld
		a.followHeld = e.Down
		return
	}

	logical, ok := keyBindings[key]
	if !ok {
		return
	}
	if logical == component.KeyRun {
		c.flipRun = e.Down && !a.runHeld
		a.runHeld = e.Down
	}
	c.key, c.keyDown, c.hasKey = logical, e.Down, true
}

func (c inputChange) apply(in *component.Input) {
	if c.flipFollow {
		in.FollowToggled = !in.FollowToggled
	}
	if c.flipRun {
		in.RunToggled = !in.RunToggled
	}
	if c.hasKey {
		in.Pressed.Set(c.key, c.keyDown)
	}
	if c.hasJoystick {
		applyJoystick(in, c.joystick)
	}
	in.OrbitYaw += c.orbit.Yaw
	in.OrbitPitch += c.orbit.Pitch
	in.Zoom += c.orbit.Zoom
}

func applyJoystick(in *component.Input, dir JoystickDirection) {
	run := in.Pressed.Run
	logical, ok := joystickBindings[dir]
	in.Pressed = component.PressedDirections{Run: run}
	if ok {
		in.Pressed.Set(logical, true)
	}
}

// InputSystem drains a Source into every Input component.
type InputSystem struct {
	source Source
	agg    Aggregator
}

func NewInputSystem(source Source) *InputSystem {
	return &InputSystem{source: source}
}

// Detach stops reading the source. Inputs keep their last state.
func (s *InputSystem) Detach() {
	if s == nil {
		return
	}
	s.source = nil
}

// Attached reports whether a source is connected.
func (s *InputSystem) Attached() bool {
	return s != nil && s.source != nil
}

func (s *InputSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.source == nil {
		return
	}

	events := s.source.Poll()
	if len(events) == 0 {
		return
	}

	targets := w.Query(component.InputComponent.Kind())
	for _, evt := range events {
		change := s.agg.step(evt)
		for _, e := range targets {
			if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
				change.apply(in)
			}
		}
	}
}
