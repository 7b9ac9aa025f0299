// Package scheduler decides, round by round, which card a session shows
// next and when an answered card should come back.
package scheduler

import (
	"math"

	"github.com/abhisek/flashdeck/internal/deck"
	"github.com/abhisek/flashdeck/internal/rng"
	"github.com/abhisek/flashdeck/internal/timing"
)

// Short-term delays, in rounds.
const (
	unseenDelay  = 5.0
	knownDelay   = 10.0
	failureDelay = 10.0
	minDelay     = 1.0
)

// Config tunes within-session scheduling.
type Config struct {
	// History is how many recent selections block confusable and related cards.
	History int

	// OptimalStreak is the run length after which the scheduler pushes for a
	// category change.
	OptimalStreak int

	// Magic scales the pending buffer: the scheduler keeps about
	// Magic × (number of subcategories) eligible cards waiting.
	Magic float64
}

// DefaultConfig returns the standard scheduling settings.
func DefaultConfig() Config {
	return Config{
		History:       2,
		OptimalStreak: 5,
		Magic:         2,
	}
}

// CardSource releases new cards into the session. A nil or empty result
// means no more material is available.
type CardSource interface {
	CardsPlease() []*deck.Card
}

// OutcomeRecorder receives the result of every answered card.
type OutcomeRecorder interface {
	FlagSuccess(c *deck.Card, success float64)
}

// Scheduler is the per-session state machine. One round passes per learner
// interaction.
type Scheduler struct {
	deck     *deck.Deck
	source   CardSource
	outcomes OutcomeRecorder
	config   Config
	src      rng.Source

	queue   timing.Queue[*deck.Card]
	pending []*deck.Card
	current *deck.Card
	history []*deck.Card // newest last; nil marks a round with no card
	round   int

	streak         int
	streakCategory string

	delays map[*deck.Card]float64
}

// New creates a Scheduler at round zero with nothing pending.
func New(d *deck.Deck, source CardSource, outcomes OutcomeRecorder, cfg Config, src rng.Source) *Scheduler {
	return &Scheduler{
		deck:     d,
		source:   source,
		outcomes: outcomes,
		config:   cfg,
		src:      src,
		delays:   make(map[*deck.Card]float64),
	}
}

// AdvanceTime moves to the next round and releases every card that has
// become due, in random order, to the back of the pending list.
func (s *Scheduler) AdvanceTime() {
	s.round++
	revealed := s.queue.PullFrom(s.round)
	rng.Shuffle(s.src, revealed)
	s.pending = append(s.pending, revealed...)
}

// LoadMore tops up the pending list from the card source when too few
// pending cards are eligible to be shown. It returns the number of cards
// added.
func (s *Scheduler) LoadMore() int {
	eligible := 0
	for _, c := range s.pending {
		if !s.historyConfusion(c) && !s.historyRelated(c) {
			eligible++
		}
	}
	target := int(math.Floor(float64(len(s.deck.Subcategories))*s.config.Magic + 0.5))
	if eligible >= target {
		return 0
	}

	goal := target - eligible
	var holding []*deck.Card
	for len(holding) < goal {
		batch := s.source.CardsPlease()
		if len(batch) == 0 {
			break
		}
		holding = append(holding, batch...)
	}
	rng.Shuffle(s.src, holding)

	for _, c := range holding {
		s.pending = append(s.pending, c)
		s.delays[c] = s.initialDelay(s.deck.Parent(c))
	}
	return len(holding)
}

// initialDelay is how many rounds a freshly released card waits after its
// first answer baseline. Known words start further out, scaled by how long
// they were last remembered.
func (s *Scheduler) initialDelay(w *deck.Word) float64 {
	if !w.Seen {
		return unseenDelay
	}
	return math.Max(minDelay, knownDelay+5*math.Log2(w.Delay))
}

// ChooseCard selects the card to show this round and makes it current.
// If a card is already current it is returned unchanged. A nil result means
// no pending card can be shown this round; the skip is still recorded in the
// history.
func (s *Scheduler) ChooseCard() *deck.Card {
	if s.current != nil {
		return s.current
	}

	ql := len(s.pending)
	timeForAChange := s.streak >= s.config.OptimalStreak
	best := -1
	bestScore := math.MaxInt
	for i := 1; i <= ql; i++ {
		c := s.pending[ql-i]
		if s.historyConfusion(c) {
			continue
		}
		score := i
		if s.historyRelated(c) {
			score += 4 * ql
		}
		if s.streak > 0 {
			sameCategory := s.deck.Parent(c).Category == s.streakCategory
			if sameCategory == timeForAChange {
				score += 2 * ql
			}
		}
		if score < bestScore {
			bestScore = score
			best = ql - i
		}
	}

	var chosen *deck.Card
	if best >= 0 {
		chosen = s.pending[best]
		s.pending = append(s.pending[:best], s.pending[best+1:]...)
		category := s.deck.Parent(chosen).Category
		if s.streak > 0 && category == s.streakCategory {
			s.streak++
		} else {
			s.streakCategory = category
			s.streak = 1
		}
	}
	s.pushHistory(chosen)
	s.current = chosen
	return chosen
}

// StowCard records the outcome of the current card and schedules its return.
// success ranges from 0 (wrong) to 1 (fully correct); values outside are
// clamped. It does nothing when no card is current.
func (s *Scheduler) StowCard(success float64) {
	c := s.current
	if c == nil {
		return
	}
	s.current = nil
	success = math.Min(1, math.Max(0, success))
	if s.outcomes != nil {
		s.outcomes.FlagSuccess(c, success)
	}

	good := math.Log(2 * s.delays[c])
	bad := math.Log(failureDelay)
	delay := math.Exp(success*good + (1-success)*bad)
	s.delays[c] = delay

	due := int(math.Floor(float64(s.round) + delay*(s.src.Float64()+0.5) + 0.5))
	s.queue.Enroll(c, due)
}

// Empty reports whether the session has run out of material: nothing
// pending, nothing waiting in the queue, and no current card.
func (s *Scheduler) Empty() bool {
	return len(s.pending) == 0 && s.queue.Empty() && s.current == nil
}

// Current returns the card being shown, or nil.
func (s *Scheduler) Current() *deck.Card {
	return s.current
}

// Round returns the current round number.
func (s *Scheduler) Round() int {
	return s.round
}

// Pending returns a copy of the cards waiting to be shown, oldest first.
func (s *Scheduler) Pending() []*deck.Card {
	out := make([]*deck.Card, len(s.pending))
	copy(out, s.pending)
	return out
}

// Waiting returns the number of answered cards scheduled to come back.
func (s *Scheduler) Waiting() int {
	return s.queue.Len()
}

// Delay returns the short-term delay estimate for c, in rounds.
func (s *Scheduler) Delay(c *deck.Card) (float64, bool) {
	d, ok := s.delays[c]
	return d, ok
}

// Streak returns the current run length and its category.
func (s *Scheduler) Streak() (int, string) {
	return s.streak, s.streakCategory
}

func (s *Scheduler) pushHistory(c *deck.Card) {
	if s.config.History <= 0 {
		return
	}
	s.history = append(s.history, c)
	if over := len(s.history) - s.config.History; over > 0 {
		s.history = append(s.history[:0], s.history[over:]...)
	}
}

func (s *Scheduler) historyConfusion(c *deck.Card) bool {
	for _, h := range s.history {
		if h != nil && s.deck.Confused(c, h) {
			return true
		}
	}
	return false
}

func (s *Scheduler) historyRelated(c *deck.Card) bool {
	for _, h := range s.history {
		if h != nil && s.deck.Related(c, h) {
			return true
		}
	}
	return false
}
