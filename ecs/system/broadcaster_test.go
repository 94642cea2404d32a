package system

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/voxelwalk/audio"
	"github.com/milk9111/voxelwalk/ecs"
	"github.com/milk9111/voxelwalk/ecs/component"
	"github.com/milk9111/voxelwalk/settings"
)

type fakePlayer struct {
	playing bool
	pos     time.Duration
	volume  float64
	rewinds int
}

func (p *fakePlayer) Play()                   { p.playing = true }
func (p *fakePlayer) Pause()                  { p.playing = false }
func (p *fakePlayer) IsPlaying() bool         { return p.playing }
func (p *fakePlayer) Position() time.Duration { return p.pos }
func (p *fakePlayer) SetPosition(offset time.Duration) error {
	p.pos = offset
	return nil
}
func (p *fakePlayer) Rewind() error {
	p.pos = 0
	p.rewinds++
	return nil
}
func (p *fakePlayer) SetVolume(v float64) { p.volume = v }
func (p *fakePlayer) Volume() float64     { return p.volume }

type fakeLoader struct {
	players map[string]*fakePlayer
	calls   []string
}

func (l *fakeLoader) load(url string) (audio.Player, error) {
	l.calls = append(l.calls, url)
	if url == "missing.wav" {
		return nil, errors.New("not found")
	}
	if l.players == nil {
		l.players = map[string]*fakePlayer{}
	}
	p := &fakePlayer{}
	l.players[url] = p
	return p, nil
}

func newBroadcasterScene(t *testing.T) (*testScene, *settings.Store, *BroadcasterSystem, *fakeLoader) {
	t.Helper()
	sc := newTestScene(t)
	st := settings.Defaults()
	st.Broadcaster.Active = true
	st.Broadcaster.Playing = true
	st.Broadcaster.URL = "a.wav"
	store := settings.NewStore(st)
	loader := &fakeLoader{}
	sys := NewBroadcasterSystem(store, NewLocomotionSystem().PositionRef(sc.w), loader.load)
	return sc, store, sys, loader
}

func broadcaster(t *testing.T, w *ecs.World, e ecs.Entity) *component.Broadcaster {
	t.Helper()
	b, ok := ecs.Get(w, e, component.BroadcasterComponent.Kind())
	if !ok {
		t.Fatalf("expected broadcaster on entity %d", e)
	}
	return b
}

func TestBroadcasterCreatesAndPlays(t *testing.T) {
	sc, _, sys, loader := newBroadcasterScene(t)

	sys.Update(sc.w)

	if !sc.w.IsAlive(sys.Entity()) {
		t.Fatalf("expected broadcaster entity")
	}
	if len(loader.calls) != 1 || loader.calls[0] != "a.wav" {
		t.Fatalf("expected one load of a.wav, got %v", loader.calls)
	}
	b := broadcaster(t, sc.w, sys.Entity())
	if !loader.players["a.wav"].playing || !b.OnAir {
		t.Fatalf("expected broadcaster on air")
	}
	tr, ok := ecs.Get(sc.w, sys.Entity(), component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("expected broadcaster transform")
	}
	if !vecNear(tr.Position, mgl64.Vec3{0, 1.5, 0}) {
		t.Fatalf("expected settings position, got %v", tr.Position)
	}

	sys.Update(sc.w)
	if len(loader.calls) != 1 {
		t.Fatalf("expected track reuse, got loads %v", loader.calls)
	}
}

func TestBroadcasterGain(t *testing.T) {
	tests := []struct {
		name     string
		position mgl64.Vec3
		want     float64
	}{
		{name: "inside reference", position: mgl64.Vec3{0, 1.5, 0}, want: 0.5},
		{name: "at reference", position: mgl64.Vec3{0, 0, 10}, want: 0.5},
		{name: "twice reference", position: mgl64.Vec3{0, 0, 20}, want: 0.25},
		{name: "four times reference", position: mgl64.Vec3{40, 0, 0}, want: 0.125},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sc, store, sys, loader := newBroadcasterScene(t)
			if err := store.Update(settings.DomainBroadcaster, func(st *settings.Settings) {
				st.Broadcaster.Position = tc.position
			}); err != nil {
				t.Fatalf("update: %v", err)
			}

			sys.Update(sc.w)

			b := broadcaster(t, sc.w, sys.Entity())
			if math.Abs(b.Gain-tc.want) > epsilon {
				t.Fatalf("expected gain %v, got %v", tc.want, b.Gain)
			}
			if math.Abs(loader.players["a.wav"].volume-tc.want) > epsilon {
				t.Fatalf("expected player volume %v, got %v", tc.want, loader.players["a.wav"].volume)
			}
		})
	}
}

func TestBroadcasterPauseResume(t *testing.T) {
	sc, store, sys, loader := newBroadcasterScene(t)
	sys.Update(sc.w)
	p := loader.players["a.wav"]
	p.pos = 3 * time.Second

	if err := store.Apply(settings.DomainBroadcaster, settings.ActionPause); err != nil {
		t.Fatalf("pause: %v", err)
	}
	sys.Update(sc.w)

	b := broadcaster(t, sc.w, sys.Entity())
	if p.playing || !b.Track.Paused() || b.Track.Offset() != 3*time.Second {
		t.Fatalf("expected paused at 3s, got playing=%v offset=%v", p.playing, b.Track.Offset())
	}
	if b.OnAir {
		t.Fatalf("expected off air while paused")
	}

	p.pos = 0
	if err := store.Apply(settings.DomainBroadcaster, settings.ActionPlay); err != nil {
		t.Fatalf("play: %v", err)
	}
	sys.Update(sc.w)

	if !p.playing || p.pos != 3*time.Second {
		t.Fatalf("expected resume at 3s, got playing=%v pos=%v", p.playing, p.pos)
	}
}

func TestBroadcasterSwapsTrack(t *testing.T) {
	sc, store, sys, loader := newBroadcasterScene(t)
	sys.Update(sc.w)
	first := loader.players["a.wav"]

	if err := store.Update(settings.DomainBroadcaster, func(st *settings.Settings) {
		st.Broadcaster.URL = "b.wav"
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	sys.Update(sc.w)

	if first.playing {
		t.Fatalf("expected old track stopped")
	}
	if !loader.players["b.wav"].playing {
		t.Fatalf("expected new track playing")
	}
	if b := broadcaster(t, sc.w, sys.Entity()); b.URL != "b.wav" {
		t.Fatalf("expected url b.wav, got %q", b.URL)
	}
}

func TestBroadcasterMissingTrack(t *testing.T) {
	sc, store, sys, _ := newBroadcasterScene(t)
	if err := store.Update(settings.DomainBroadcaster, func(st *settings.Settings) {
		st.Broadcaster.URL = "missing.wav"
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	sys.Update(sc.w)
	sys.Update(sc.w)

	b := broadcaster(t, sc.w, sys.Entity())
	if b.Track == nil || b.Track.Playing() || b.OnAir {
		t.Fatalf("expected silent placeholder track")
	}
}

func TestBroadcasterRemove(t *testing.T) {
	sc, store, sys, loader := newBroadcasterScene(t)
	sys.Update(sc.w)
	e := sys.Entity()

	if err := store.Apply(settings.DomainBroadcaster, settings.ActionRemove); err != nil {
		t.Fatalf("remove: %v", err)
	}
	sys.Update(sc.w)

	if sc.w.IsAlive(e) || sys.Entity() != 0 {
		t.Fatalf("expected broadcaster entity destroyed")
	}
	if loader.players["a.wav"].playing {
		t.Fatalf("expected track stopped on remove")
	}

	if err := store.Apply(settings.DomainBroadcaster, settings.ActionActivate); err != nil {
		t.Fatalf("activate: %v", err)
	}
	sys.Update(sc.w)
	if !sc.w.IsAlive(sys.Entity()) {
		t.Fatalf("expected broadcaster recreated")
	}
}
