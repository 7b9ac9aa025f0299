package rng

import (
	"slices"
	"testing"
)

func TestNew_SameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 20; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d: %f != %f", i, x, y)
		}
	}
}

func TestNew_ZeroSeedUsable(t *testing.T) {
	src := New(0)
	v := src.Float64()
	if v < 0 || v >= 1 {
		t.Errorf("Float64() = %f, want [0,1)", v)
	}
}

func TestShuffle_KeepsElements(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	Shuffle(New(7), items)

	got := slices.Clone(items)
	slices.Sort(got)
	want := []int{1, 2, 3, 4, 5, 6, 7, 8}
	if !slices.Equal(got, want) {
		t.Errorf("shuffled elements = %v, want permutation of %v", items, want)
	}
}

func TestShuffle_Deterministic(t *testing.T) {
	a := []string{"a", "b", "c", "d", "e"}
	b := slices.Clone(a)
	Shuffle(New(99), a)
	Shuffle(New(99), b)
	if !slices.Equal(a, b) {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}
