package settings

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

// SelectionEvent reports a change of the selected voxel. ID is empty when
// the selection was cleared.
type SelectionEvent struct {
	ID       string
	Previous string
}

type selectionSub struct {
	id int
	fn func(SelectionEvent)
}

// OnSelectionChanged registers fn for voxel selection changes and returns
// its cancel func.
func (s *Store) OnSelectionChanged(fn func(SelectionEvent)) func() {
	if fn == nil {
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.selection = append(s.selection, selectionSub{id: id, fn: fn})
	return func() {
		s.selection = slices.DeleteFunc(s.selection, func(sub selectionSub) bool {
			return sub.id == id
		})
	}
}

func (s *Store) emitSelection(id, prev string) {
	evt := SelectionEvent{ID: id, Previous: prev}
	for _, sub := range slices.Clone(s.selection) {
		sub.fn(evt)
	}
}

// NewVoxel returns a unit voxel resting on the ground at the origin.
func NewVoxel(id string) Voxel {
	return Voxel{
		ID:       id,
		Position: mgl64.Vec3{0, 0.5, 0},
		Scale:    mgl64.Vec3{1, 1, 1},
		Color:    "#ffffff",
		Opacity:  1,
	}
}

// AddVoxel appends a new voxel and selects it.
func (s *Store) AddVoxel() Voxel {
	s.voxelSeq++
	v := NewVoxel("voxel-" + strconv.Itoa(s.voxelSeq))
	for s.voxelIndex(v.ID) >= 0 {
		s.voxelSeq++
		v.ID = "voxel-" + strconv.Itoa(s.voxelSeq)
	}

	prev := s.cur.Voxels.Selected
	_ = s.Update(DomainVoxels, func(st *Settings) {
		st.Voxels.Items = append(st.Voxels.Items, v)
		st.Voxels.Selected = v.ID
	})
	s.emitSelection(v.ID, prev)
	return v
}

// RemoveVoxel deletes the voxel id. If it was selected, the selection moves
// to the last remaining voxel.
func (s *Store) RemoveVoxel(id string) error {
	idx := s.voxelIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrVoxelNotFound, id)
	}

	prev := s.cur.Voxels.Selected
	_ = s.Update(DomainVoxels, func(st *Settings) {
		st.Voxels.Items = slices.Delete(st.Voxels.Items, idx, idx+1)
		if st.Voxels.Selected == id {
			st.Voxels.Selected = ""
			if n := len(st.Voxels.Items); n > 0 {
				st.Voxels.Selected = st.Voxels.Items[n-1].ID
			}
		}
	})
	if next := s.cur.Voxels.Selected; next != prev {
		s.emitSelection(next, prev)
	}
	return nil
}

// UpdateVoxel applies fn to the voxel id.
func (s *Store) UpdateVoxel(id string, fn func(*Voxel)) error {
	idx := s.voxelIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrVoxelNotFound, id)
	}
	return s.Update(DomainVoxels, func(st *Settings) {
		if fn != nil {
			fn(&st.Voxels.Items[idx])
			st.Voxels.Items[idx].ID = id
		}
	})
}

// SelectVoxel marks id as selected.
func (s *Store) SelectVoxel(id string) error {
	if s.voxelIndex(id) < 0 {
		return fmt.Errorf("%w: %q", ErrVoxelNotFound, id)
	}
	prev := s.cur.Voxels.Selected
	if prev == id {
		return nil
	}
	s.cur.Voxels.Selected = id
	s.emitSelection(id, prev)
	return nil
}

// DeselectVoxel clears the selection.
func (s *Store) DeselectVoxel() {
	prev := s.cur.Voxels.Selected
	_ = s.Update(DomainVoxels, func(st *Settings) {
		st.Voxels.Selected = ""
	})
	if prev != "" {
		s.emitSelection("", prev)
	}
}

// SelectedVoxel returns the selected voxel, if any.
func (s *Store) SelectedVoxel() (Voxel, bool) {
	idx := s.voxelIndex(s.cur.Voxels.Selected)
	if idx < 0 {
		return Voxel{}, false
	}
	return s.cur.Voxels.Items[idx], true
}

func (s *Store) voxelIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.cur.Voxels.Items, func(v Voxel) bool {
		return v.ID == id
	})
}
