// Package selection implements the note selection state machine:
// Empty, Single(id) or Multi(set of ids). States are immutable values;
// every transition returns a new State.
package selection

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Mode names the active representation.
type Mode int

const (
	Empty Mode = iota
	Single
	Multi
)

func (m Mode) String() string {
	switch m {
	case Single:
		return "single"
	case Multi:
		return "multi"
	default:
		return "empty"
	}
}

// State is the current selection. The zero value is Empty.
type State struct {
	mode   Mode
	active string
	set    map[string]struct{}
}

// SingleOf returns Single(id).
func SingleOf(id string) State { return State{mode: Single, active: id} }

// MultiOf returns Multi(ids), or Empty when ids is empty.
func MultiOf(ids ...string) State {
	if len(ids) == 0 {
		return State{}
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return State{mode: Multi, set: set}
}

func (s State) Mode() Mode { return s.mode }

// Active returns the id held by a Single state.
func (s State) Active() (string, bool) {
	if s.mode != Single {
		return "", false
	}
	return s.active, true
}

// IDs returns the selected ids, sorted. Display order is the collection's,
// not this one.
func (s State) IDs() []string {
	switch s.mode {
	case Single:
		return []string{s.active}
	case Multi:
		out := make([]string, 0, len(s.set))
		for id := range s.set {
			out = append(out, id)
		}
		sort.Strings(out)
		return out
	default:
		return nil
	}
}

// Len is the number of selected ids.
func (s State) Len() int {
	switch s.mode {
	case Single:
		return 1
	case Multi:
		return len(s.set)
	default:
		return 0
	}
}

// Contains reports whether id is selected in either representation.
func (s State) Contains(id string) bool {
	switch s.mode {
	case Single:
		return s.active == id
	case Multi:
		_, ok := s.set[id]
		return ok
	default:
		return false
	}
}

// CanBulkDelete is true only for a non-empty Multi state.
func (s State) CanBulkDelete() bool { return s.mode == Multi && len(s.set) > 0 }

// Select handles a click on id. Without the modifier the selection collapses
// to Single(id). With it, id's membership is toggled in the current set;
// a toggle that empties the set yields Empty.
func (s State) Select(id string, modifier bool) State {
	if !modifier {
		return SingleOf(id)
	}
	set := make(map[string]struct{}, s.Len()+1)
	for _, cur := range s.IDs() {
		set[cur] = struct{}{}
	}
	if _, ok := set[id]; ok {
		delete(set, id)
	} else {
		set[id] = struct{}{}
	}
	if len(set) == 0 {
		return State{}
	}
	return State{mode: Multi, set: set}
}

// NoteAdded auto-selects a newly created note.
func (s State) NoteAdded(id string) State { return SingleOf(id) }

// NoteDeleted drops id from whichever representation holds it.
func (s State) NoteDeleted(id string) State { return s.NotesDeleted([]string{id}) }

// NotesDeleted drops every id in ids. A Multi state left with no members
// becomes Empty.
func (s State) NotesDeleted(ids []string) State {
	switch s.mode {
	case Single:
		for _, id := range ids {
			if id == s.active {
				return State{}
			}
		}
		return s
	case Multi:
		set := make(map[string]struct{}, len(s.set))
		for id := range s.set {
			set[id] = struct{}{}
		}
		for _, id := range ids {
			delete(set, id)
		}
		if len(set) == 0 {
			return State{}
		}
		return State{mode: Multi, set: set}
	default:
		return s
	}
}

// Retain drops ids that are not in known. Used after loading persisted state.
func (s State) Retain(known []string) State {
	keep := make(map[string]struct{}, len(known))
	for _, id := range known {
		keep[id] = struct{}{}
	}
	var gone []string
	for _, id := range s.IDs() {
		if _, ok := keep[id]; !ok {
			gone = append(gone, id)
		}
	}
	return s.NotesDeleted(gone)
}

// Cancel clears the selection from any state.
func (s State) Cancel() State { return State{} }

// Equal compares two states by mode and membership.
func (s State) Equal(o State) bool {
	if s.mode != o.mode || s.Len() != o.Len() {
		return false
	}
	for _, id := range s.IDs() {
		if !o.Contains(id) {
			return false
		}
	}
	return true
}

func (s State) String() string {
	switch s.mode {
	case Single:
		return fmt.Sprintf("Single(%s)", s.active)
	case Multi:
		return fmt.Sprintf("Multi(%v)", s.IDs())
	default:
		return "Empty"
	}
}

type wireState struct {
	Mode        string   `json:"mode"`
	ActiveID    string   `json:"activeId,omitempty"`
	SelectedIDs []string `json:"selectedIds,omitempty"`
}

func (s State) MarshalJSON() ([]byte, error) {
	w := wireState{Mode: s.mode.String()}
	switch s.mode {
	case Single:
		w.ActiveID = s.active
	case Multi:
		w.SelectedIDs = s.IDs()
	}
	return json.Marshal(w)
}

func (s *State) UnmarshalJSON(b []byte) error {
	var w wireState
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	switch w.Mode {
	case "single":
		if w.ActiveID == "" {
			return fmt.Errorf("single selection without activeId")
		}
		*s = SingleOf(w.ActiveID)
	case "multi":
		*s = MultiOf(w.SelectedIDs...)
	case "empty", "":
		*s = State{}
	default:
		return fmt.Errorf("unknown selection mode %q", w.Mode)
	}
	return nil
}
