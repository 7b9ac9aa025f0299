package timing

import (
	"slices"
	"testing"

	"github.com/abhisek/flashdeck/internal/rng"
)

func TestEmpty_ZeroValue(t *testing.T) {
	var q Queue[string]
	if !q.Empty() {
		t.Error("zero-value queue should be empty")
	}
	if got := q.PullFrom(100); len(got) != 0 {
		t.Errorf("PullFrom on empty queue = %v, want nothing", got)
	}
}

func TestPullFrom_OnlyDueItems(t *testing.T) {
	var q Queue[string]
	q.Enroll("late", 10)
	q.Enroll("early", 2)
	q.Enroll("mid", 5)
	q.Enroll("also-early", 2)

	got := q.PullFrom(5)
	slices.Sort(got)
	want := []string{"also-early", "early", "mid"}
	if !slices.Equal(got, want) {
		t.Errorf("PullFrom(5) = %v, want %v", got, want)
	}
	if q.Empty() {
		t.Fatal("expected late item to remain")
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1", q.Len())
	}

	if got := q.PullFrom(9); len(got) != 0 {
		t.Errorf("PullFrom(9) = %v, want nothing", got)
	}
	if got := q.PullFrom(10); !slices.Equal(got, []string{"late"}) {
		t.Errorf("PullFrom(10) = %v, want [late]", got)
	}
	if !q.Empty() {
		t.Error("expected queue to be empty")
	}
}

func TestPullFrom_ReturnsInRoundOrder(t *testing.T) {
	var q Queue[int]
	for _, r := range []int{7, 3, 9, 1, 4, 4, 8} {
		q.Enroll(r, r)
	}
	got := q.PullFrom(100)
	if !slices.IsSorted(got) {
		t.Errorf("heap extraction not ordered by round: %v", got)
	}
}

func TestPullFrom_RandomizedAgainstModel(t *testing.T) {
	src := rng.New(5)
	var q Queue[int]
	pending := make(map[int]int) // id -> round
	nextID := 0
	for now := 0; now < 200; now++ {
		for k := src.IntN(4); k > 0; k-- {
			r := now + src.IntN(30)
			q.Enroll(nextID, r)
			pending[nextID] = r
			nextID++
		}
		got := q.PullFrom(now)
		var want []int
		for id, r := range pending {
			if r <= now {
				want = append(want, id)
			}
		}
		slices.Sort(got)
		slices.Sort(want)
		if !slices.Equal(got, want) {
			t.Fatalf("round %d: PullFrom = %v, want %v", now, got, want)
		}
		for _, id := range got {
			delete(pending, id)
		}
		if q.Empty() != (len(pending) == 0) {
			t.Fatalf("round %d: Empty() = %v with %d pending", now, q.Empty(), len(pending))
		}
		if q.Len() != len(pending) {
			t.Fatalf("round %d: Len() = %d, want %d", now, q.Len(), len(pending))
		}
	}
}
