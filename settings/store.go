package settings

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
)

var (
	ErrUnknownDomain = errors.New("settings: unknown domain")
	ErrVoxelNotFound = errors.New("settings: voxel not found")
)

// Listener receives a snapshot of the settings after its domain changed.
type Listener func(Settings)

type subscription struct {
	id int
	fn Listener
}

// Store is the observable settings container. Every change goes through
// Update (or a helper built on it) and is published to the subscribers of
// the affected domain only. A Store belongs to the simulation tick and is
// not safe for concurrent use.
type Store struct {
	cur    Settings
	subs   map[Domain][]subscription
	nextID int

	selection []selectionSub
	voxelSeq  int
}

// NewStore returns a store holding initial.
func NewStore(initial Settings) *Store {
	return &Store{
		cur:  initial,
		subs: make(map[Domain][]subscription),
	}
}

// Snapshot returns a copy of the current settings.
func (s *Store) Snapshot() Settings {
	out := s.cur
	out.Voxels.Items = slices.Clone(s.cur.Voxels.Items)
	return out
}

// Subscribe registers fn for changes of d and returns its cancel func.
func (s *Store) Subscribe(d Domain, fn Listener) (func(), error) {
	if !validDomain(d) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, d)
	}
	if fn == nil {
		return func() {}, nil
	}
	s.nextID++
	id := s.nextID
	s.subs[d] = append(s.subs[d], subscription{id: id, fn: fn})
	return func() {
		s.subs[d] = slices.DeleteFunc(s.subs[d], func(sub subscription) bool {
			return sub.id == id
		})
	}, nil
}

// Update applies fn to the settings and publishes d.
func (s *Store) Update(d Domain, fn func(*Settings)) error {
	if !validDomain(d) {
		return fmt.Errorf("%w: %q", ErrUnknownDomain, d)
	}
	if fn != nil {
		fn(&s.cur)
	}
	s.publish(d)
	return nil
}

// Replace swaps in next wholesale and publishes every domain whose value
// changed. It returns the changed domains.
func (s *Store) Replace(next Settings) []Domain {
	prev := s.cur
	s.cur = next
	var changed []Domain
	for _, d := range Domains {
		if !reflect.DeepEqual(domainValue(prev, d), domainValue(next, d)) {
			changed = append(changed, d)
		}
	}
	for _, d := range changed {
		s.publish(d)
	}
	if prev.Voxels.Selected != next.Voxels.Selected {
		s.emitSelection(next.Voxels.Selected, prev.Voxels.Selected)
	}
	return changed
}

// Reset restores the defaults of d. Voxel items are cleared.
func (s *Store) Reset(d Domain) error {
	return s.Update(d, func(st *Settings) {
		switch d {
		case DomainGrid:
			st.Grid = DefaultGrid()
		case DomainGround:
			st.Ground = DefaultGround()
		case DomainSky:
			st.Sky = DefaultSky()
		case DomainFog:
			st.Fog = DefaultFog()
		case DomainShadow:
			st.Shadow = DefaultShadow()
		case DomainVoxels:
			st.Voxels = Voxels{}
		case DomainBroadcaster:
			st.Broadcaster = DefaultBroadcaster()
		}
	})
}

func (s *Store) publish(d Domain) {
	subs := slices.Clone(s.subs[d])
	if len(subs) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, sub := range subs {
		sub.fn(snap)
	}
}

func validDomain(d Domain) bool {
	return slices.Contains(Domains, d)
}

func domainValue(st Settings, d Domain) any {
	switch d {
	case DomainGrid:
		return st.Grid
	case DomainGround:
		return st.Ground
	case DomainSky:
		return st.Sky
	case DomainFog:
		return st.Fog
	case DomainShadow:
		return st.Shadow
	case DomainVoxels:
		return st.Voxels
	case DomainBroadcaster:
		return st.Broadcaster
	}
	return nil
}
