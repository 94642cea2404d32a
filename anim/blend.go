package anim

// State is a locomotion animation state.
type State string

const (
	StateIdle State = "Idle"
	StateWalk State = "Walk"
	StateRun  State = "Run"
)

// DefaultFadeDuration is the crossfade length in seconds.
const DefaultFadeDuration = 0.2

// States lists every locomotion state in a stable order.
var States = []State{StateIdle, StateWalk, StateRun}

// TimeScale returns the playback rate for clips entering s. Walk and Run
// clips were authored faster than the velocities they are paired with, so
// they play at half speed.
func TimeScale(s State) float64 {
	switch s {
	case StateWalk, StateRun:
		return 0.5
	default:
		return 1.0
	}
}

// ClipMap maps locomotion states to mixer actions.
type ClipMap map[State]*Action

// BuildClipMap maps the clips whose names match a state exactly. When no
// clip matches, the first clip is used for Idle so arbitrary character
// assets still animate.
func BuildClipMap(m *Mixer, clips []Clip) ClipMap {
	out := make(ClipMap, len(States))
	if m == nil || len(clips) == 0 {
		return out
	}
	for _, c := range clips {
		for _, s := range States {
			if c.Name == string(s) {
				out[s] = m.ClipAction(c)
			}
		}
	}
	if len(out) == 0 {
		out[StateIdle] = m.ClipAction(clips[0])
	}
	return out
}

// BlendLayer drives crossfades between locomotion states.
type BlendLayer struct {
	Mixer        *Mixer
	FadeDuration float64

	clips   ClipMap
	current State
	active  *Action
}

// NewBlendLayer starts in Idle and plays the Idle clip if one is mapped.
func NewBlendLayer(m *Mixer, clips ClipMap) *BlendLayer {
	l := &BlendLayer{Mixer: m, FadeDuration: DefaultFadeDuration, current: StateIdle}
	l.SetClipMap(clips)
	return l
}

// SetClipMap replaces the state to clip mapping. If nothing is playing yet,
// the clip of the current state starts at full weight.
func (l *BlendLayer) SetClipMap(clips ClipMap) {
	if clips == nil {
		clips = ClipMap{}
	}
	l.clips = clips
	if l.active != nil {
		return
	}
	if a := clips[l.current]; a != nil {
		a.Reset().Play()
		a.SetEffectiveTimeScale(TimeScale(l.current))
		l.active = a
	}
}

// Current returns the active state.
func (l *BlendLayer) Current() State {
	return l.current
}

// Action returns the action mapped to s, or nil.
func (l *BlendLayer) Action(s State) *Action {
	return l.clips[s]
}

// CrossfadeTo switches to s. The outgoing clip fades out while the incoming
// clip restarts and fades in over FadeDuration. A state without a clip keeps
// the current clip playing.
func (l *BlendLayer) CrossfadeTo(s State) {
	if s == l.current {
		return
	}
	l.current = s

	toPlay := l.clips[s]
	if toPlay == nil {
		return
	}
	if toPlay == l.active {
		toPlay.SetEffectiveTimeScale(TimeScale(s))
		return
	}
	if l.active != nil {
		l.active.FadeOut(l.FadeDuration)
	}
	toPlay.Reset().FadeIn(l.FadeDuration).Play()
	toPlay.SetEffectiveTimeScale(TimeScale(s))
	l.active = toPlay
}

// Playing returns the action the layer last faded in, or nil.
func (l *BlendLayer) Playing() *Action {
	return l.active
}
