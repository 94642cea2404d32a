package audio

import (
	"fmt"
	"math"
	"time"
)

// Player is the playback surface a Track drives. *audio.Player from
// ebiten satisfies it.
type Player interface {
	Play()
	Pause()
	IsPlaying() bool
	Position() time.Duration
	SetPosition(offset time.Duration) error
	Rewind() error
	SetVolume(volume float64)
	Volume() float64
}

// Track owns one player and remembers where it was paused, so Resume picks
// up at the same offset even if the player was rewound meanwhile.
type Track struct {
	Name   string
	player Player

	paused bool
	offset time.Duration
}

func NewTrack(name string, p Player) *Track {
	return &Track{Name: name, player: p}
}

// Play starts from the beginning, or resumes when paused.
func (t *Track) Play() error {
	if t == nil || t.player == nil {
		return nil
	}
	if t.paused {
		return t.Resume()
	}
	if t.player.IsPlaying() {
		return nil
	}
	if err := t.player.Rewind(); err != nil {
		return fmt.Errorf("audio: %s: rewind: %w", t.Name, err)
	}
	t.player.Play()
	return nil
}

// Pause stops playback and stores the current offset.
func (t *Track) Pause() {
	if t == nil || t.player == nil || t.paused {
		return
	}
	t.offset = t.player.Position()
	t.player.Pause()
	t.paused = true
}

// Resume continues from the stored offset.
func (t *Track) Resume() error {
	if t == nil || t.player == nil {
		return nil
	}
	if !t.paused {
		return t.Play()
	}
	if err := t.player.SetPosition(t.offset); err != nil {
		return fmt.Errorf("audio: %s: seek %v: %w", t.Name, t.offset, err)
	}
	t.player.Play()
	t.paused = false
	return nil
}

// Stop halts playback and forgets the pause offset.
func (t *Track) Stop() error {
	if t == nil || t.player == nil {
		return nil
	}
	t.player.Pause()
	t.paused = false
	t.offset = 0
	if err := t.player.Rewind(); err != nil {
		return fmt.Errorf("audio: %s: rewind: %w", t.Name, err)
	}
	return nil
}

// Paused reports whether the track holds a resume offset.
func (t *Track) Paused() bool {
	return t != nil && t.paused
}

// Playing reports whether the player is currently producing sound.
func (t *Track) Playing() bool {
	return t != nil && t.player != nil && t.player.IsPlaying()
}

// Offset returns the stored pause offset.
func (t *Track) Offset() time.Duration {
	if t == nil {
		return 0
	}
	return t.offset
}

// SetGain sets the player volume, clamped to [0, 1].
func (t *Track) SetGain(g float64) {
	if t == nil || t.player == nil {
		return
	}
	t.player.SetVolume(math.Max(0, math.Min(1, g)))
}

// Gain returns volume attenuated for a listener at distance from the
// source, using an inverse distance model with reference distance ref.
// Inside ref the full volume is heard.
func Gain(volume, ref, distance float64) float64 {
	if ref <= 0 {
		ref = 1
	}
	if distance <= ref {
		return volume
	}
	return volume * ref / distance
}
