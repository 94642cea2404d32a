package audio

import (
	"math"
	"testing"
	"time"
)

type stubPlayer struct {
	playing bool
	pos     time.Duration
	volume  float64
}

func (p *stubPlayer) Play()                   { p.playing = true }
func (p *stubPlayer) Pause()                  { p.playing = false }
func (p *stubPlayer) IsPlaying() bool         { return p.playing }
func (p *stubPlayer) Position() time.Duration { return p.pos }
func (p *stubPlayer) SetPosition(offset time.Duration) error {
	p.pos = offset
	return nil
}
func (p *stubPlayer) Rewind() error {
	p.pos = 0
	return nil
}
func (p *stubPlayer) SetVolume(v float64) { p.volume = v }
func (p *stubPlayer) Volume() float64     { return p.volume }

func TestTrackPauseResume(t *testing.T) {
	p := &stubPlayer{}
	tr := NewTrack("loop", p)

	if err := tr.Play(); err != nil {
		t.Fatalf("play: %v", err)
	}
	if !tr.Playing() {
		t.Fatalf("expected playing")
	}

	p.pos = 1500 * time.Millisecond
	tr.Pause()
	if !tr.Paused() || tr.Offset() != 1500*time.Millisecond || p.playing {
		t.Fatalf("expected paused at 1.5s, got paused=%v offset=%v", tr.Paused(), tr.Offset())
	}

	tr.Pause()
	if tr.Offset() != 1500*time.Millisecond {
		t.Fatalf("expected second pause to keep offset")
	}

	p.pos = 0
	if err := tr.Play(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if tr.Paused() || !p.playing || p.pos != 1500*time.Millisecond {
		t.Fatalf("expected resume at 1.5s, got pos=%v", p.pos)
	}
}

func TestTrackStop(t *testing.T) {
	p := &stubPlayer{}
	tr := NewTrack("loop", p)
	_ = tr.Play()
	p.pos = time.Second
	tr.Pause()

	if err := tr.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if tr.Paused() || tr.Offset() != 0 || p.pos != 0 || p.playing {
		t.Fatalf("expected stopped and rewound")
	}

	if err := tr.Resume(); err != nil {
		t.Fatalf("resume after stop: %v", err)
	}
	if !p.playing || p.pos != 0 {
		t.Fatalf("expected resume after stop to play from the start")
	}
}

func TestNilTrack(t *testing.T) {
	var tr *Track
	if err := tr.Play(); err != nil {
		t.Fatalf("nil play: %v", err)
	}
	tr.Pause()
	tr.SetGain(1)
	if tr.Playing() || tr.Paused() || tr.Offset() != 0 {
		t.Fatalf("expected nil track inert")
	}

	silent := NewTrack("missing", nil)
	if err := silent.Play(); err != nil || silent.Playing() {
		t.Fatalf("expected track without player to stay silent")
	}
}

func TestSetGainClamps(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{in: -1, want: 0},
		{in: 0.4, want: 0.4},
		{in: 3, want: 1},
	}
	for _, tc := range tests {
		p := &stubPlayer{}
		NewTrack("loop", p).SetGain(tc.in)
		if p.volume != tc.want {
			t.Fatalf("SetGain(%v): expected %v, got %v", tc.in, tc.want, p.volume)
		}
	}
}

func TestGain(t *testing.T) {
	tests := []struct {
		name                  string
		volume, ref, distance float64
		want                  float64
	}{
		{name: "inside reference", volume: 0.5, ref: 10, distance: 3, want: 0.5},
		{name: "at reference", volume: 0.5, ref: 10, distance: 10, want: 0.5},
		{name: "double reference", volume: 0.5, ref: 10, distance: 20, want: 0.25},
		{name: "zero reference uses one", volume: 1, ref: 0, distance: 4, want: 0.25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Gain(tc.volume, tc.ref, tc.distance); math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
