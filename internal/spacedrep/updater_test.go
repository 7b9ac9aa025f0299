package spacedrep

import (
	"math"
	"testing"
	"time"

	"github.com/abhisek/flashdeck/internal/deck"
	"github.com/abhisek/flashdeck/internal/rng"
)

const today = 20000

// midSource makes the due-date jitter exactly 1.
type midSource struct{}

func (midSource) Float64() float64 { return 0.5 }

func (midSource) IntN(int) int { return 0 }

func (midSource) Shuffle(int, func(i, j int)) {}

func sampleDeck(t *testing.T, mutate func(s *deck.Snapshot)) *deck.Deck {
	t.Helper()
	s := deck.SampleSnapshot()
	if mutate != nil {
		mutate(s)
	}
	d, err := deck.Unpack(s)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	return d
}

func answerAll(tr *Tracker, w *deck.Word, outcomes ...float64) {
	for i, c := range w.Cards {
		tr.FlagSeen(c)
		if i < len(outcomes) {
			tr.FlagSuccess(c, outcomes[i])
		}
	}
}

func TestTracker_FirstOutcomeSticks(t *testing.T) {
	d := sampleDeck(t, nil)
	tr := NewTracker()
	c := d.Words[0].Cards[0]

	tr.FlagSuccess(c, 0)
	tr.FlagSuccess(c, 1)

	if got, ok := tr.Outcome(c); !ok || got != 0 {
		t.Errorf("Outcome = %v, %v; want 0, true", got, ok)
	}
	if _, ok := tr.Outcome(d.Words[0].Cards[1]); ok {
		t.Error("unanswered card should have no outcome")
	}
}

func TestTracker_TouchedWordsInCorpusOrder(t *testing.T) {
	d := sampleDeck(t, nil)
	tr := NewTracker()
	tr.FlagSeen(d.Words[3].Cards[0])
	tr.FlagSeen(d.Words[1].Cards[2])
	tr.FlagSeen(d.Words[1].Cards[0])

	got := tr.TouchedWords()
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("TouchedWords = %v, want [1 3]", got)
	}
	if tr.Touched(0) {
		t.Error("dog was never shown")
	}
}

func TestWrapUp(t *testing.T) {
	tests := []struct {
		name        string
		seen        bool
		delay       float64
		outcomes    []float64
		wantDelay   float64
		wantDue     int
		wantRelearn bool
	}{
		{"all correct grows delay", true, 3, []float64{1, 1}, 6, today + 6, false},
		{"first session correct", false, 0, []float64{1, 1}, 2, today + 2, false},
		{"all wrong resets", true, 8, []float64{0, 0}, 1, today + 1, false},
		{"half right", true, 4, []float64{1, 0}, math.Sqrt(8), today + 3, false},
		{"unanswered card relearns", true, 8, []float64{1}, 1, today + 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := sampleDeck(t, func(s *deck.Snapshot) {
				if tt.seen {
					s.Words[0].Seen, s.Words[0].Delay, s.Words[0].Duedate = true, tt.delay, today
				}
			})
			tr := NewTracker()
			answerAll(tr, d.Words[0], tt.outcomes...)

			changes := NewUpdater(DefaultConfig(), midSource{}, nil).WrapUp(d, tr, today)

			w := d.Words[0]
			if !w.Seen {
				t.Error("word should be marked seen")
			}
			if math.Abs(w.Delay-tt.wantDelay) > 1e-9 {
				t.Errorf("Delay = %v, want %v", w.Delay, tt.wantDelay)
			}
			if w.Duedate != tt.wantDue {
				t.Errorf("Duedate = %d, want %d", w.Duedate, tt.wantDue)
			}
			if len(changes) != 1 || changes[0].Relearn != tt.wantRelearn {
				t.Errorf("changes = %+v, want one with Relearn=%v", changes, tt.wantRelearn)
			}
		})
	}
}

func TestWrapUp_CorrectAlwaysLengthens(t *testing.T) {
	cfg := DefaultConfig()
	for _, prev := range []float64{0.5, 1, 2.5, 10, 90} {
		d := sampleDeck(t, func(s *deck.Snapshot) {
			s.Words[1].Seen, s.Words[1].Delay, s.Words[1].Duedate = true, prev, today
		})
		tr := NewTracker()
		answerAll(tr, d.Words[1], 1, 1, 1)

		NewUpdater(cfg, rng.New(7), nil).WrapUp(d, tr, today)

		if got := d.Words[1].Delay; got <= prev {
			t.Errorf("prev %v: delay %v did not grow", prev, got)
		}
	}
}

func TestWrapUp_WrongAlwaysDefault(t *testing.T) {
	cfg := Config{DefaultDelay: 2, Noise: 0.2}
	for _, prev := range []float64{0.5, 2, 40} {
		d := sampleDeck(t, func(s *deck.Snapshot) {
			s.Words[2].Seen, s.Words[2].Delay, s.Words[2].Duedate = true, prev, today
		})
		tr := NewTracker()
		answerAll(tr, d.Words[2], 0, 0)

		NewUpdater(cfg, rng.New(7), nil).WrapUp(d, tr, today)

		if got := d.Words[2].Delay; math.Abs(got-2) > 1e-9 {
			t.Errorf("prev %v: delay = %v, want 2", prev, got)
		}
	}
}

func TestWrapUp_NoiseBounds(t *testing.T) {
	src := rng.New(99)
	for range 200 {
		d := sampleDeck(t, func(s *deck.Snapshot) {
			s.Words[0].Seen, s.Words[0].Delay, s.Words[0].Duedate = true, 50, today
		})
		tr := NewTracker()
		answerAll(tr, d.Words[0], 1, 1)

		NewUpdater(DefaultConfig(), src, nil).WrapUp(d, tr, today)

		// delay 100, jitter within exp(±0.1)
		due := d.Words[0].Duedate - today
		if due < 90 || due > 111 {
			t.Fatalf("due in %d days, want within [90, 111]", due)
		}
	}
}

func TestWrapUp_LeavesUntouchedWords(t *testing.T) {
	d := sampleDeck(t, func(s *deck.Snapshot) {
		s.Words[2].Seen, s.Words[2].Delay, s.Words[2].Duedate = true, 5, today+2
	})
	tr := NewTracker()
	answerAll(tr, d.Words[0], 1, 1)

	changes := NewUpdater(DefaultConfig(), midSource{}, nil).WrapUp(d, tr, today)

	if len(changes) != 1 || changes[0].Name != "dog" {
		t.Fatalf("changes = %+v, want only dog", changes)
	}
	red := d.Words[2]
	if red.Delay != 5 || red.Duedate != today+2 {
		t.Errorf("red changed: delay %v due %d", red.Delay, red.Duedate)
	}
	if d.Words[1].Seen || d.Words[3].Seen {
		t.Error("untouched unseen words should stay unseen")
	}
}

func TestToday(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"epoch", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{"end of first day", time.Date(1970, 1, 1, 23, 59, 59, 0, time.UTC), 0},
		{"second day", time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC), 1},
		{"local offset", time.Date(1970, 1, 2, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*3600)), 1},
		{"before epoch", time.Date(1969, 12, 31, 12, 0, 0, 0, time.UTC), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Today(tt.at); got != tt.want {
				t.Errorf("Today() = %d, want %d", got, tt.want)
			}
		})
	}
}
