package anim

import "math"

// Clip is a named, looping animation of fixed length.
type Clip struct {
	Name     string
	Duration float64
}

type weightFade struct {
	from     float64
	to       float64
	elapsed  float64
	duration float64
}

// Action is the playback state of one clip inside a Mixer.
type Action struct {
	clip      Clip
	mixer     *Mixer
	time      float64
	timeScale float64
	weight    float64
	enabled   bool
	playing   bool
	fade      *weightFade
}

// Clip returns the clip driven by a.
func (a *Action) Clip() Clip {
	return a.clip
}

// Time returns the local clip time in seconds.
func (a *Action) Time() float64 {
	return a.time
}

// Weight returns the current influence of a, in [0, 1].
func (a *Action) Weight() float64 {
	if !a.enabled {
		return 0
	}
	return a.weight
}

// TimeScale returns the playback rate multiplier.
func (a *Action) TimeScale() float64 {
	return a.timeScale
}

// Fading reports whether a weight fade is in progress.
func (a *Action) Fading() bool {
	return a.fade != nil
}

// IsRunning reports whether a is playing and contributes to the pose.
func (a *Action) IsRunning() bool {
	return a.enabled && a.playing && a.weight > 0
}

// Play schedules a for playback on its mixer.
func (a *Action) Play() *Action {
	a.playing = true
	a.enabled = true
	return a
}

// Stop halts playback and drops any fade.
func (a *Action) Stop() *Action {
	a.playing = false
	a.fade = nil
	return a
}

// Reset rewinds a to the start with full weight and no fade.
func (a *Action) Reset() *Action {
	a.time = 0
	a.weight = 1
	a.enabled = true
	a.fade = nil
	return a
}

// FadeIn ramps the weight from 0 to 1 over d seconds.
func (a *Action) FadeIn(d float64) *Action {
	return a.scheduleFade(d, 0, 1)
}

// FadeOut ramps the weight from its current value to 0 over d seconds. The
// action is disabled once the fade completes.
func (a *Action) FadeOut(d float64) *Action {
	return a.scheduleFade(d, a.Weight(), 0)
}

// SetEffectiveTimeScale sets the playback rate multiplier.
func (a *Action) SetEffectiveTimeScale(s float64) *Action {
	a.timeScale = s
	return a
}

func (a *Action) scheduleFade(d, from, to float64) *Action {
	if d <= 0 {
		a.fade = nil
		a.weight = to
		if to == 0 {
			a.enabled = false
		}
		return a
	}
	a.weight = from
	a.fade = &weightFade{from: from, to: to, duration: d}
	return a
}

func (a *Action) update(dt float64) {
	if !a.enabled || !a.playing {
		return
	}

	if f := a.fade; f != nil {
		f.elapsed += dt
		if f.elapsed >= f.duration {
			a.weight = f.to
			a.fade = nil
			if a.weight == 0 {
				a.enabled = false
			}
		} else {
			a.weight = f.from + (f.to-f.from)*(f.elapsed/f.duration)
		}
	}

	a.time += dt * a.timeScale
	if d := a.clip.Duration; d > 0 {
		a.time = math.Mod(a.time, d)
		if a.time < 0 {
			a.time += d
		}
	}
}

// Mixer owns the actions of one character and advances them together.
type Mixer struct {
	actions []*Action
	time    float64
}

// NewMixer returns an empty mixer.
func NewMixer() *Mixer {
	return &Mixer{}
}

// ClipAction returns the action for clip, creating it on first use.
func (m *Mixer) ClipAction(clip Clip) *Action {
	for _, a := range m.actions {
		if a.clip.Name == clip.Name {
			return a
		}
	}
	a := &Action{clip: clip, mixer: m, timeScale: 1, weight: 1}
	m.actions = append(m.actions, a)
	return a
}

// Update advances every playing action by dt seconds.
func (m *Mixer) Update(dt float64) {
	if m == nil || dt < 0 {
		return
	}
	m.time += dt
	for _, a := range m.actions {
		a.update(dt)
	}
}

// Time returns the total seconds the mixer has been advanced.
func (m *Mixer) Time() float64 {
	if m == nil {
		return 0
	}
	return m.time
}

// Active returns the actions currently contributing to the pose.
func (m *Mixer) Active() []*Action {
	if m == nil {
		return nil
	}
	var out []*Action
	for _, a := range m.actions {
		if a.IsRunning() {
			out = append(out, a)
		}
	}
	return out
}
