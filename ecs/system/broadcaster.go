package system

import (
	"log"

	"github.com/milk9111/voxelwalk/audio"
	"github.com/milk9111/voxelwalk/ecs"
	"github.com/milk9111/voxelwalk/ecs/component"
	"github.com/milk9111/voxelwalk/settings"
)

// TrackLoader opens the player for a broadcaster source.
type TrackLoader func(url string) (audio.Player, error)

// BroadcasterSystem keeps the broadcaster entity in line with its settings
// domain and attenuates it by the listener's distance every tick.
type BroadcasterSystem struct {
	store    *settings.Store
	listener PositionRef
	load     TrackLoader

	entity ecs.Entity
	failed string
}

func NewBroadcasterSystem(store *settings.Store, listener PositionRef, load TrackLoader) *BroadcasterSystem {
	return &BroadcasterSystem{store: store, listener: listener, load: load}
}

// Entity returns the live broadcaster entity.
func (s *BroadcasterSystem) Entity() ecs.Entity {
	return s.entity
}

func (s *BroadcasterSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.store == nil {
		return
	}

	cfg := s.store.Snapshot().Broadcaster
	if !cfg.Active {
		s.remove(w)
		return
	}

	if !w.IsAlive(s.entity) {
		s.entity = ecs.CreateEntity(w)
		if err := ecs.Add(w, s.entity, component.BroadcasterComponent.Kind(), &component.Broadcaster{}); err != nil {
			panic("broadcaster system: add broadcaster: " + err.Error())
		}
		if err := ecs.Add(w, s.entity, component.TransformComponent.Kind(), &component.Transform{Scale: 1}); err != nil {
			panic("broadcaster system: add transform: " + err.Error())
		}
	}

	b, ok := ecs.Get(w, s.entity, component.BroadcasterComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, s.entity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	t.Position = cfg.Position
	t.Scale = cfg.Size

	if b.Track == nil || b.URL != cfg.URL {
		s.swapTrack(b, cfg.URL)
	}

	if cfg.Playing {
		if err := b.Track.Play(); err != nil {
			log.Printf("broadcaster: play: %v", err)
		}
	} else {
		b.Track.Pause()
	}

	gain := cfg.Volume
	if pos, ok := s.listener.Position(); ok {
		gain = audio.Gain(cfg.Volume, cfg.Distance, pos.Sub(t.Position).Len())
	}
	b.Gain = gain
	b.Track.SetGain(gain)
	b.OnAir = cfg.MicEnabled || b.Track.Playing()
}

func (s *BroadcasterSystem) swapTrack(b *component.Broadcaster, url string) {
	if b.Track != nil {
		if err := b.Track.Stop(); err != nil {
			log.Printf("broadcaster: stop: %v", err)
		}
	}
	b.URL = url
	b.Track = audio.NewTrack(url, nil)
	if s.load == nil {
		return
	}
	p, err := s.load(url)
	if err != nil {
		if s.failed != url {
			log.Printf("broadcaster: load %q: %v", url, err)
			s.failed = url
		}
		return
	}
	s.failed = ""
	b.Track = audio.NewTrack(url, p)
}

func (s *BroadcasterSystem) remove(w *ecs.World) {
	if !w.IsAlive(s.entity) {
		return
	}
	if b, ok := ecs.Get(w, s.entity, component.BroadcasterComponent.Kind()); ok && b.Track != nil {
		if err := b.Track.Stop(); err != nil {
			log.Printf("broadcaster: stop: %v", err)
		}
	}
	ecs.DestroyEntity(w, s.entity)
	s.entity = 0
}
