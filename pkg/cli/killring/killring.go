// Package killring implements the kill ring, a bounded history of killed text
// that supports yanking it back and cycling through older kills.
package killring

// DefaultCapacity is the capacity used when New is called with a
// non-positive capacity.
const DefaultCapacity = 10

// Action records what the last editing action did to the ring.
type Action int

// Values for Action.
const (
	Other Action = iota
	Kill
	Yank
)

func (a Action) String() string {
	switch a {
	case Kill:
		return "kill"
	case Yank:
		return "yank"
	default:
		return "other"
	}
}

// Ring is a kill ring. The zero value is not usable; create one with New.
type Ring struct {
	// Most recent first.
	entries  [][]rune
	capacity int
	// Entry returned by the last Yank or YankPop.
	index        int
	last         Action
	lastYankSize int
}

// New creates an empty Ring holding at most capacity entries.
func New(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{capacity: capacity}
}

// Len returns the number of entries.
func (r *Ring) Len() int { return len(r.entries) }

// Entries returns copies of the entries, most recent first.
func (r *Ring) Entries() []string {
	s := make([]string, len(r.entries))
	for i, e := range r.entries {
		s[i] = string(e)
	}
	return s
}

// LastAction returns the last recorded action.
func (r *Ring) LastAction() Action { return r.last }

// SetLastAction records an action. Editing actions other than kills and yanks
// should record Other, which stops the next kill from merging and disables
// YankPop.
func (r *Ring) SetLastAction(a Action) { r.last = a }

// LastYankSize returns the length of the text inserted by the last Yank or
// YankPop.
func (r *Ring) LastYankSize() int { return r.lastYankSize }

// Kill saves text to the ring. If the previous action was also a kill, the
// text is merged into the most recent entry, appended if forward is true and
// prepended otherwise. Otherwise a new entry is created, and the oldest entry
// is dropped if the ring is full. Killing nothing still counts as a kill.
func (r *Ring) Kill(text []rune, forward bool) {
	defer func() { r.last = Kill }()
	if len(text) == 0 {
		return
	}
	if r.last == Kill && len(r.entries) > 0 {
		if forward {
			r.entries[0] = append(r.entries[0], text...)
		} else {
			r.entries[0] = append(append([]rune(nil), text...), r.entries[0]...)
		}
		return
	}
	if len(r.entries) == r.capacity {
		r.entries = r.entries[:r.capacity-1]
	}
	r.entries = append([][]rune{append([]rune(nil), text...)}, r.entries...)
	r.index = 0
}

// Yank returns the entry at the rotation position, which is the most recent
// entry unless YankPop has rotated it. It returns false if the ring is empty.
func (r *Ring) Yank() ([]rune, bool) {
	if len(r.entries) == 0 {
		return nil, false
	}
	text := append([]rune(nil), r.entries[r.index]...)
	r.last = Yank
	r.lastYankSize = len(text)
	return text, true
}

// YankPop rotates to the next older entry, wrapping around, and returns it
// together with the length of the previously yanked text that it replaces.
// It only works immediately after Yank or YankPop; otherwise it returns false
// and changes nothing.
func (r *Ring) YankPop() (text []rune, replaced int, ok bool) {
	if r.last != Yank || len(r.entries) == 0 {
		return nil, 0, false
	}
	r.index = (r.index + 1) % len(r.entries)
	text = append([]rune(nil), r.entries[r.index]...)
	replaced = r.lastYankSize
	r.lastYankSize = len(text)
	return text, replaced, true
}
