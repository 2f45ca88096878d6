// arena/visibility.go
// Copyright(c) 2026 centerline contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package arena

// VisibilitySet tracks which steps of the active test are currently
// hidden.  It is the only mutable state in the program: it is reset when
// the active test changes and is never persisted.
type VisibilitySet struct {
	hidden map[int]interface{}
}

func MakeVisibilitySet() *VisibilitySet {
	return &VisibilitySet{hidden: make(map[int]interface{})}
}

// IsVisible reports whether the given step's segments should be drawn.
func (v *VisibilitySet) IsVisible(step int) bool {
	_, ok := v.hidden[step]
	return !ok
}

// Toggle shows or hides a single step.  It is idempotent.
func (v *VisibilitySet) Toggle(step int, show bool) {
	if show {
		delete(v.hidden, step)
	} else {
		v.hidden[step] = nil
	}
}

// SetAll shows everything or hides every step of the given test that has
// at least one segment.  Steps that only appear in rows have nothing to
// hide and are left alone.
func (v *VisibilitySet) SetAll(show bool, td *TestDefinition) {
	if show {
		clear(v.hidden)
	} else {
		for _, step := range td.SegmentSteps() {
			v.hidden[step] = nil
		}
	}
}

// Reset returns to the initial all-visible state; it is called whenever
// the active test changes.
func (v *VisibilitySet) Reset() {
	clear(v.hidden)
}
