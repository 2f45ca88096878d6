// arena/test.go
// Copyright(c) 2026 centerline contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package arena

import (
	"fmt"
	"strconv"

	"github.com/hfinley/centerline/util"

	"github.com/iancoleman/orderedmap"
)

// Segment is one drawable stroke of a test's path: either a polyline
// through two or more markers or a 20 meter circle anchored at a marker.
// Exactly one of Line and Circle is set.  Every segment belongs to a
// numbered step of the test.
type Segment struct {
	Step int `json:"step"`

	// Line gives the markers of a polyline, in riding order.
	Line []string `json:"line,omitempty"`

	// Circle names the rail marker the circle is ridden from.  Direction
	// is "left" or "right"; it only affects labeling, never geometry.
	Circle    string `json:"circle,omitempty"`
	Direction string `json:"direction,omitempty"`

	Label string `json:"label,omitempty"`
}

func (s Segment) IsCircle() bool { return s.Circle != "" }

func (s *Segment) validate() error {
	switch {
	case s.Step <= 0:
		return fmt.Errorf("segment step %d: steps are numbered from 1", s.Step)
	case len(s.Line) > 0 && s.Circle != "":
		return fmt.Errorf("step %d: segment has both line and circle", s.Step)
	case len(s.Line) == 1:
		return fmt.Errorf("step %d: line needs at least two markers", s.Step)
	case len(s.Line) == 0 && s.Circle == "":
		return fmt.Errorf("step %d: segment has neither line nor circle", s.Step)
	}

	if s.IsCircle() {
		if s.Direction != "left" && s.Direction != "right" {
			return fmt.Errorf("step %d: circle direction %q: must be \"left\" or \"right\"", s.Step, s.Direction)
		}
		if _, err := MarkerPosition(s.Circle); err != nil {
			return fmt.Errorf("step %d: %w", s.Step, err)
		}
	}
	for _, id := range s.Line {
		if _, err := MarkerPosition(id); err != nil {
			return fmt.Errorf("step %d: %w", s.Step, err)
		}
	}
	return nil
}

// StepRow is one descriptive row of the test sheet.  Several rows may
// share a step number; they are sub-steps of the same movement.
type StepRow struct {
	Step      int    `json:"step"`
	Location  string `json:"location"`
	Directive string `json:"directive"`
	Ideas     string `json:"ideas,omitempty"`
}

// TestDefinition is one authored test: its sheet rows and the drawable
// path segments, both in authored order.  Definitions are immutable once
// loaded; the Store owns them and hands out copies.
type TestDefinition struct {
	Id       string    `json:"id"`
	Name     string    `json:"name"`
	Rows     []StepRow `json:"rows"`
	Segments []Segment `json:"segments"`
}

func (td *TestDefinition) validate() error {
	if td.Id == "" {
		return fmt.Errorf("test has no id")
	}
	if td.Name == "" {
		return fmt.Errorf("%s: test has no name", td.Id)
	}
	if len(td.Rows) == 0 {
		return fmt.Errorf("%s: test has no rows", td.Id)
	}
	for _, s := range td.Segments {
		if err := s.validate(); err != nil {
			return fmt.Errorf("%s: %w", td.Id, err)
		}
	}
	return nil
}

// SegmentSteps returns the set of step numbers that have at least one
// segment, sorted.  Steps that only appear in rows have nothing to draw
// and so aren't included.
func (td *TestDefinition) SegmentSteps() []int {
	steps := make(map[int]interface{})
	for _, s := range td.Segments {
		steps[s.Step] = nil
	}
	return util.SortedMapKeys(steps)
}

// StepGroup collects the rows that share a step number.
type StepGroup struct {
	Step int
	Rows []StepRow
}

// GroupRows groups the test's rows by step number, one group per distinct
// step, ordered by where each step first appears in the row list.  A
// later row with an already-seen step joins the existing group, so
// non-sequential authoring still yields one checkbox per step.
func (td *TestDefinition) GroupRows() []StepGroup {
	om := orderedmap.New()
	for _, r := range td.Rows {
		key := strconv.Itoa(r.Step)
		if prev, ok := om.Get(key); ok {
			om.Set(key, append(prev.([]StepRow), r))
		} else {
			om.Set(key, []StepRow{r})
		}
	}

	var groups []StepGroup
	for _, key := range om.Keys() {
		rows, _ := om.Get(key)
		step, _ := strconv.Atoi(key)
		groups = append(groups, StepGroup{Step: step, Rows: rows.([]StepRow)})
	}
	return groups
}
