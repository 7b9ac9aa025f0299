package spacedrep

import (
	"slices"

	"github.com/abhisek/flashdeck/internal/deck"
)

// Tracker records what happened to each word during one session: which
// words were shown and the first outcome of every answered card.
type Tracker struct {
	touched  map[deck.WordID]struct{}
	outcomes map[*deck.Card]float64
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		touched:  make(map[deck.WordID]struct{}),
		outcomes: make(map[*deck.Card]float64),
	}
}

// FlagSeen marks the word owning c as touched this session.
func (t *Tracker) FlagSeen(c *deck.Card) {
	t.touched[c.Word] = struct{}{}
}

// FlagSuccess records the outcome of c. Only the first outcome per card
// counts; later reports are ignored.
func (t *Tracker) FlagSuccess(c *deck.Card, success float64) {
	if _, ok := t.outcomes[c]; ok {
		return
	}
	t.outcomes[c] = success
}

// Outcome returns the first recorded outcome for c.
func (t *Tracker) Outcome(c *deck.Card) (float64, bool) {
	s, ok := t.outcomes[c]
	return s, ok
}

// Touched reports whether the word was shown this session.
func (t *Tracker) Touched(id deck.WordID) bool {
	_, ok := t.touched[id]
	return ok
}

// TouchedWords returns the touched words in corpus order.
func (t *Tracker) TouchedWords() []deck.WordID {
	ids := make([]deck.WordID, 0, len(t.touched))
	for id := range t.touched {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
