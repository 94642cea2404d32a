package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/voxelwalk/ecs/system"
)

const stickDeadZone = 0.3

const shiftName = "shift"

// keyNames maps physical keys to the names the input system binds.
var keyNames = map[ebiten.Key]string{
	ebiten.KeyW:          "w",
	ebiten.KeyA:          "a",
	ebiten.KeyS:          "s",
	ebiten.KeyD:          "d",
	ebiten.KeyArrowUp:    "arrowup",
	ebiten.KeyArrowDown:  "arrowdown",
	ebiten.KeyArrowLeft:  "arrowleft",
	ebiten.KeyArrowRight: "arrowright",
	ebiten.KeyR:          "r",
}

// ebitenSource turns ebiten's polled keyboard, gamepad and mouse state into
// raw input events.
type ebitenSource struct {
	stick    system.JoystickDirection
	shift    bool
	dragging bool
	lastX    int
	lastY    int
	// blocked is set while the cursor is over a UI panel.
	blocked func() bool
}

func newEbitenSource(blocked func() bool) *ebitenSource {
	return &ebitenSource{blocked: blocked}
}

func (s *ebitenSource) Poll() []system.RawEvent {
	var events []system.RawEvent

	for key, name := range keyNames {
		if inpututil.IsKeyJustPressed(key) {
			events = append(events, system.KeyEvent{Key: name, Down: true})
		}
		if inpututil.IsKeyJustReleased(key) {
			events = append(events, system.KeyEvent{Key: name, Down: false})
		}
	}

	// Both shift keys share one binding.
	left := ebiten.IsKeyPressed(ebiten.KeyShiftLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	if evt, ok := s.shiftTransition(left, right); ok {
		events = append(events, evt)
	}

	if dir := s.pollStick(); dir != s.stick {
		s.stick = dir
		events = append(events, system.JoystickEvent{Direction: dir})
	}

	if orbit, ok := s.pollMouse(); ok {
		events = append(events, orbit)
	}

	return events
}

// shiftTransition reports a "shift" press when the first shift key goes
// down and a release only once both are up.
func (s *ebitenSource) shiftTransition(left, right bool) (system.KeyEvent, bool) {
	held := left || right
	if held == s.shift {
		return system.KeyEvent{}, false
	}
	s.shift = held
	return system.KeyEvent{Key: shiftName, Down: held}, true
}

// pollStick quantizes the left stick of the first standard gamepad to its
// dominant axis.
func (s *ebitenSource) pollStick() system.JoystickDirection {
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		return quantizeStick(x, y)
	}
	return system.JoystickNone
}

func quantizeStick(x, y float64) system.JoystickDirection {
	if math.Max(math.Abs(x), math.Abs(y)) < stickDeadZone {
		return system.JoystickNone
	}
	if math.Abs(x) > math.Abs(y) {
		if x < 0 {
			return system.JoystickLeft
		}
		return system.JoystickRight
	}
	// Stick up reads negative.
	if y < 0 {
		return system.JoystickForward
	}
	return system.JoystickBackward
}

func (s *ebitenSource) pollMouse() (system.OrbitEvent, bool) {
	var evt system.OrbitEvent
	if s.blocked != nil && s.blocked() {
		s.dragging = false
		return evt, false
	}

	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if s.dragging {
			evt.Yaw = float64(x - s.lastX)
			evt.Pitch = float64(y - s.lastY)
		}
		s.dragging = true
	} else {
		s.dragging = false
	}
	s.lastX, s.lastY = x, y

	_, wheelY := ebiten.Wheel()
	evt.Zoom = wheelY

	return evt, evt != (system.OrbitEvent{})
}
