package component

import "strings"

// LogicalKey names one entry of a PressedDirections set.
type LogicalKey string

const (
	KeyForward  LogicalKey = "forward"
	KeyBackward LogicalKey = "backward"
	KeyLeft     LogicalKey = "left"
	KeyRight    LogicalKey = "right"
	KeyRun      LogicalKey = "run"
)

// PressedDirections is the set of logical movement keys currently held.
// Run reflects the physical run key, not the latched run mode.
type PressedDirections struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Run      bool
}

// Any reports whether at least one of the four direction flags is set.
func (p PressedDirections) Any() bool {
	return p.Forward || p.Backward || p.Left || p.Right
}

// Get returns the flag for k.
func (p PressedDirections) Get(k LogicalKey) bool {
	switch k {
	case KeyForward:
		return p.Forward
	case KeyBackward:
		return p.Backward
	case KeyLeft:
		return p.Left
	case KeyRight:
		return p.Right
	case KeyRun:
		return p.Run
	}
	return false
}

// Set assigns the flag for k. Unknown keys are ignored.
func (p *PressedDirections) Set(k LogicalKey, down bool) {
	switch k {
	case KeyForward:
		p.Forward = down
	case KeyBackward:
		p.Backward = down
	case KeyLeft:
		p.Left = down
	case KeyRight:
		p.Right = down
	case KeyRun:
		p.Run = down
	}
}

// ClearDirections releases the four direction flags and keeps Run.
func (p *PressedDirections) ClearDirections() {
	p.Forward, p.Backward, p.Left, p.Right = false, false, false, false
}

// String lists the held keys, e.g. "forward+left".
func (p PressedDirections) String() string {
	var parts []string
	for _, k := range []LogicalKey{KeyForward, KeyBackward, KeyLeft, KeyRight, KeyRun} {
		if p.Get(k) {
			parts = append(parts, string(k))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// Input stores the aggregated input state of a controllable entity.
type Input struct {
	Pressed PressedDirections

	// RunToggled and FollowToggled are pending latch flips, set on the
	// leading edge of their key and cleared by the consuming system.
	RunToggled    bool
	FollowToggled bool

	// Orbit deltas accumulated since the last camera update.
	OrbitYaw   float64
	OrbitPitch float64
	Zoom       float64
}

var InputComponent = NewComponent[Input]()
