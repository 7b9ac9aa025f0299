// Package supplier releases words into a session, one at a time, keeping
// exposure balanced across categories.
package supplier

import (
	"math"

	"github.com/abhisek/flashdeck/internal/deck"
	"github.com/abhisek/flashdeck/internal/randset"
	"github.com/abhisek/flashdeck/internal/rng"
)

// Config tunes word selection.
type Config struct {
	// Adventure is the probability of drawing never-seen material when a
	// category has both unseen and overdue words.
	Adventure float64
}

// DefaultConfig returns the standard supplier settings.
func DefaultConfig() Config {
	return Config{Adventure: 0.3}
}

type pool struct {
	unseen    *randset.Set[deck.WordID]
	overdue   *randset.Set[deck.WordID]
	cardCount int
	inPlay    int
}

func (p *pool) available() int {
	return p.unseen.Len() + p.overdue.Len()
}

// Supplier hands out the full card set of one word per call. Once a word is
// released, every word confusable with it is withdrawn for the rest of the
// session.
type Supplier struct {
	deck   *deck.Deck
	config Config
	src    rng.Source
	pools  map[string]*pool
}

// New routes every word of d into its category's unseen or overdue pool.
// Seen words not yet due on today are left out of the session.
func New(d *deck.Deck, today int, cfg Config, src rng.Source) *Supplier {
	s := &Supplier{
		deck:   d,
		config: cfg,
		src:    src,
		pools:  make(map[string]*pool, len(d.Categories)),
	}
	for _, c := range d.Categories {
		s.pools[c] = &pool{
			unseen:  randset.New[deck.WordID](),
			overdue: randset.New[deck.WordID](),
		}
	}
	for _, w := range d.Words {
		p := s.pools[w.Category]
		p.cardCount += len(w.Cards)
		switch {
		case !w.Seen:
			p.unseen.Add(w.ID)
		case w.Duedate <= today:
			p.overdue.Add(w.ID)
		}
	}
	return s
}

// CardsPlease picks the least saturated category, draws a word from it and
// returns a fresh slice of that word's cards. A nil result means there is
// nothing left to release today.
func (s *Supplier) CardsPlease() []*deck.Card {
	var best []string
	bestScore := math.Inf(1)
	for _, c := range s.deck.Categories {
		p := s.pools[c]
		if p.available() == 0 {
			continue
		}
		score := math.Log(1+float64(p.inPlay)) / math.Log(1+float64(p.cardCount))
		switch {
		case score < bestScore:
			bestScore = score
			best = append(best[:0], c)
		case score == bestScore:
			best = append(best, c)
		}
	}
	if len(best) == 0 {
		return nil
	}

	p := s.pools[best[s.src.IntN(len(best))]]
	from := p.overdue
	switch {
	case p.overdue.Len() == 0:
		from = p.unseen
	case p.unseen.Len() == 0:
	case s.src.Float64() < s.config.Adventure:
		from = p.unseen
	}

	id, _ := from.PullRandom(s.src)
	return s.steal(s.deck.Word(id))
}

// steal marks w as in play and withdraws its rivals from their pools.
func (s *Supplier) steal(w *deck.Word) []*deck.Card {
	s.pools[w.Category].inPlay += len(w.Cards)
	for _, r := range s.deck.Rivals(w.ID) {
		rp := s.pools[s.deck.Word(r).Category]
		rp.unseen.Remove(r)
		rp.overdue.Remove(r)
	}
	cards := make([]*deck.Card, len(w.Cards))
	copy(cards, w.Cards)
	return cards
}

// Remaining returns how many words each category can still release.
func (s *Supplier) Remaining() map[string]int {
	out := make(map[string]int, len(s.pools))
	for c, p := range s.pools {
		out[c] = p.available()
	}
	return out
}

// InPlay returns the number of cards released so far from category.
func (s *Supplier) InPlay(category string) int {
	if p, ok := s.pools[category]; ok {
		return p.inPlay
	}
	return 0
}

// CardCount returns the total number of cards in category.
func (s *Supplier) CardCount(category string) int {
	if p, ok := s.pools[category]; ok {
		return p.cardCount
	}
	return 0
}
