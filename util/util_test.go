// util/util_test.go
// Copyright(c) 2026 centerline contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"slices"
	"testing"
)

func TestSelect(t *testing.T) {
	if Select(true, 1, 2) != 1 {
		t.Errorf("Select(true, ...) didn't return first value")
	}
	if Select(false, 1, 2) != 2 {
		t.Errorf("Select(false, ...) didn't return second value")
	}
}

func TestSortedMapKeys(t *testing.T) {
	m := map[int]string{3: "c", 1: "a", 2: "b"}
	if k := SortedMapKeys(m); !slices.Equal(k, []int{1, 2, 3}) {
		t.Errorf("got keys %v, expected [1 2 3]", k)
	}
}

func TestMapSlice(t *testing.T) {
	a := []int{1, 2, 3, 4}
	b := MapSlice(a, func(i int) float32 { return 2 * float32(i) })
	if len(a) != len(b) {
		t.Errorf("lengths mismatch: %d vs %d", len(a), len(b))
	}
	for i := range b {
		if b[i] != 2*float32(a[i]) {
			t.Errorf("value %d mismatch %f vs %f", i, b[i], 2*float32(a[i]))
		}
	}
}

func TestFilterSlice(t *testing.T) {
	a := []int{1, 2, 3, 4, 5}
	b := FilterSlice(a, func(i int) bool { return i%2 == 0 })
	if !slices.Equal(b, []int{2, 4}) {
		t.Errorf("got %v, expected [2 4]", b)
	}
}

func TestWrapText(t *testing.T) {
	input := "this is a test_with_a_long_line of stuff"
	expected := "this is \n  a \n  test_with_a_long_line \n  of \n  stuff"
	wrap, lines := WrapText(input, 8, 2, false)
	if wrap != expected {
		t.Errorf("wrapping gave %q; expected %q", wrap, expected)
	}
	if lines != 5 {
		t.Errorf("wrapping returned %d lines, expected 5", lines)
	}
}
