// Package session runs one drill: it wires the supplier, scheduler and
// long-term updater together behind a prompt/answer interface and persists
// the deck when the drill closes.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/flashdeck/internal/deck"
	"github.com/abhisek/flashdeck/internal/metrics"
	"github.com/abhisek/flashdeck/internal/rng"
	"github.com/abhisek/flashdeck/internal/scheduler"
	"github.com/abhisek/flashdeck/internal/spacedrep"
	"github.com/abhisek/flashdeck/internal/store"
	"github.com/abhisek/flashdeck/internal/supplier"
)

// NoCardsPrompt is shown once the session has run out of material.
const NoCardsPrompt = "There are no more cards!"

// ErrClosed is returned when using a session after Close.
var ErrClosed = errors.New("session: closed")

// Verdict classifies a submitted answer.
type Verdict int

const (
	Correct Verdict = iota

	// Wrong reschedules the card as a failure.
	Wrong

	// Unrecognized is the right answer to a different card asking the same
	// question. The card stays current.
	Unrecognized
)

func (v Verdict) String() string {
	switch v {
	case Correct:
		return store.OutcomeCorrect
	case Wrong:
		return store.OutcomeWrong
	case Unrecognized:
		return store.OutcomeUnrecognized
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

// Result is the outcome of SubmitAnswer. Expected is set for Wrong.
type Result struct {
	Verdict  Verdict
	Expected string
}

// Options configures a Session. A zero Scheduler or SpacedRep config, Rand,
// Now or Logger falls back to its default. Supplier is used as given, since
// a zero Adventure is meaningful. Decks, Events and Metrics are optional.
type Options struct {
	Supplier  supplier.Config
	Scheduler scheduler.Config
	SpacedRep spacedrep.Config

	Rand rng.Source
	Now  func() time.Time

	Decks   store.DeckRepo
	Events  store.EventRepo
	Metrics *metrics.Recorder
	Logger  *slog.Logger

	// MetricsTextfile, when set, receives the metrics on Close.
	MetricsTextfile string
}

func (o *Options) fillDefaults() {
	if o.Scheduler == (scheduler.Config{}) {
		o.Scheduler = scheduler.DefaultConfig()
	}
	if o.SpacedRep == (spacedrep.Config{}) {
		o.SpacedRep = spacedrep.DefaultConfig()
	}
	if o.Rand == nil {
		o.Rand = rng.New(0)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Session is one drill over a loaded deck.
type Session struct {
	id   string
	deck *deck.Deck
	opts Options
	log  *slog.Logger

	scheduler *scheduler.Scheduler
	tracker   *spacedrep.Tracker
	updater   *spacedrep.Updater

	today   int
	started time.Time
	shownAt time.Time
	card    *deck.Card
	closed  bool

	answered   int
	correct    int
	wrong      int
	nearMisses int
}

// New starts a session over d and picks the first card.
func New(ctx context.Context, d *deck.Deck, opts Options) *Session {
	opts.fillDefaults()
	now := opts.Now()

	s := &Session{
		id:      uuid.New().String(),
		deck:    d,
		opts:    opts,
		tracker: spacedrep.NewTracker(),
		today:   spacedrep.Today(now),
		started: now,
	}
	s.log = opts.Logger.With("session", s.id)
	s.updater = spacedrep.NewUpdater(opts.SpacedRep, opts.Rand, s.log)

	source := &releaseCounter{
		inner:   supplier.New(d, s.today, opts.Supplier, opts.Rand),
		deck:    d,
		metrics: opts.Metrics,
		log:     s.log,
	}
	s.scheduler = scheduler.New(d, source, s.tracker, opts.Scheduler, opts.Rand)

	s.recordSession(ctx, store.SessionEventData{SessionID: s.id, Action: store.ActionStart})
	s.log.Info("session started", "words", len(d.Words), "cards", d.CardCount(), "today", s.today)

	s.chooseCard()
	return s
}

// ID returns the session's UUID.
func (s *Session) ID() string {
	return s.id
}

// Prompt returns the current question, or NoCardsPrompt.
func (s *Session) Prompt() string {
	if s.NoCardsLeft() {
		return NoCardsPrompt
	}
	return s.card.Question
}

// Current returns the card being asked, or nil.
func (s *Session) Current() *deck.Card {
	return s.card
}

// NoCardsLeft reports whether the session has nothing more to ask.
func (s *Session) NoCardsLeft() bool {
	return s.card == nil
}

// SubmitAnswer grades text against the current card. Surrounding
// whitespace is ignored. A correct or wrong answer moves on to the next
// card; an unrecognized one keeps the same card.
func (s *Session) SubmitAnswer(ctx context.Context, text string) (Result, error) {
	if s.closed {
		return Result{}, ErrClosed
	}
	if s.NoCardsLeft() {
		return Result{}, errors.New("session: no card to answer")
	}

	c := s.card
	text = strings.TrimSpace(text)
	var res Result
	switch {
	case text == c.Answer:
		res.Verdict = Correct
	case s.deck.AcceptsAnswer(c.Question, text):
		res.Verdict = Unrecognized
	default:
		res = Result{Verdict: Wrong, Expected: c.Answer}
	}

	s.recordAnswer(ctx, c, text, res.Verdict)

	switch res.Verdict {
	case Correct:
		s.answered++
		s.correct++
		s.scheduler.StowCard(1)
		s.chooseCard()
	case Wrong:
		s.answered++
		s.wrong++
		s.scheduler.StowCard(0)
		s.chooseCard()
	case Unrecognized:
		s.nearMisses++
	}
	return res, nil
}

// chooseCard runs rounds until a card is chosen or the scheduler runs dry.
func (s *Session) chooseCard() {
	for {
		s.scheduler.AdvanceTime()
		s.scheduler.LoadMore()
		c := s.scheduler.ChooseCard()
		s.opts.Metrics.Round(c == nil)
		if c != nil {
			s.tracker.FlagSeen(c)
			s.card = c
			s.shownAt = s.opts.Now()
			return
		}
		if s.scheduler.Empty() {
			s.card = nil
			return
		}
	}
}

// Close reschedules every word touched in the session, saves the deck and
// records the session. The returned Summary is valid even when saving fails.
func (s *Session) Close(ctx context.Context) (*Summary, error) {
	if s.closed {
		return nil, ErrClosed
	}
	s.closed = true

	changes := s.updater.WrapUp(s.deck, s.tracker, s.today)
	for _, c := range changes {
		s.opts.Metrics.Rescheduled(c.Delay, c.Relearn)
	}
	sum := s.summary(changes)

	var errs []error
	if s.opts.Decks != nil {
		if err := s.opts.Decks.Save(ctx, s.deck.Pack()); err != nil {
			errs = append(errs, fmt.Errorf("save deck: %w", err))
		}
	}

	s.recordSession(ctx, store.SessionEventData{
		SessionID:    s.id,
		Action:       store.ActionEnd,
		Answered:     sum.Answered,
		Correct:      sum.Correct,
		Wrong:        sum.Wrong,
		NearMisses:   sum.NearMisses,
		WordsTouched: sum.WordsTouched,
		DurationSecs: int(sum.Duration.Seconds()),
	})

	s.opts.Metrics.SessionClosed()
	if err := s.opts.Metrics.WriteTextfile(s.opts.MetricsTextfile); err != nil {
		errs = append(errs, fmt.Errorf("write metrics: %w", err))
	}

	s.log.Info("session closed",
		"answered", sum.Answered,
		"correct", sum.Correct,
		"words", sum.WordsTouched,
		"duration", sum.Duration.Round(time.Second))
	return sum, errors.Join(errs...)
}

func (s *Session) recordAnswer(ctx context.Context, c *deck.Card, given string, v Verdict) {
	s.opts.Metrics.Answer(v.String())
	if s.opts.Events == nil {
		return
	}
	w := s.deck.Parent(c)
	err := s.opts.Events.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID: s.id,
		Word:      w.Name,
		Category:  w.Category,
		CardType:  c.Type,
		Question:  c.Question,
		Expected:  c.Answer,
		Given:     given,
		Outcome:   v.String(),
		Round:     s.scheduler.Round(),
		TimeMs:    s.opts.Now().Sub(s.shownAt).Milliseconds(),
	})
	if err != nil {
		s.log.Warn("failed to record answer event", "error", err)
	}
}

func (s *Session) recordSession(ctx context.Context, data store.SessionEventData) {
	if s.opts.Events == nil {
		return
	}
	if err := s.opts.Events.AppendSessionEvent(ctx, data); err != nil {
		s.log.Warn("failed to record session event", "action", data.Action, "error", err)
	}
}

// releaseCounter reports every batch the supplier releases.
type releaseCounter struct {
	inner   scheduler.CardSource
	deck    *deck.Deck
	metrics *metrics.Recorder
	log     *slog.Logger
}

func (r *releaseCounter) CardsPlease() []*deck.Card {
	cards := r.inner.CardsPlease()
	if len(cards) == 0 {
		r.log.Debug("supplier exhausted")
		return cards
	}
	w := r.deck.Parent(cards[0])
	r.metrics.Released(w.Category, len(cards))
	r.log.Debug("word released", "word", w.Name, "category", w.Category, "cards", len(cards))
	return cards
}
