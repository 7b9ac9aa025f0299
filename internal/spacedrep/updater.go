// Package spacedrep carries word schedules across sessions: it tracks what
// a session touched and, when the session closes, stretches or resets each
// word's delay according to how well its cards were answered.
package spacedrep

import (
	"log/slog"
	"math"
	"time"

	"github.com/abhisek/flashdeck/internal/deck"
	"github.com/abhisek/flashdeck/internal/rng"
)

const secondsPerDay = 86400

// Config tunes long-term spacing.
type Config struct {
	// DefaultDelay is the interval, in days, given to new or failed words.
	DefaultDelay float64

	// Noise spreads due dates so words learned together do not all come
	// back on the same day.
	Noise float64
}

// DefaultConfig returns the standard long-term settings.
func DefaultConfig() Config {
	return Config{DefaultDelay: 1, Noise: 0.2}
}

// Today converts a wall-clock time to a day number, counting days since the
// Unix epoch in t's own time zone.
func Today(t time.Time) int {
	_, offset := t.Zone()
	return int(math.Floor(float64(t.Unix()+int64(offset)) / secondsPerDay))
}

// Change describes how WrapUp rescheduled one word.
type Change struct {
	Word      deck.WordID
	Name      string
	PrevDelay float64
	Delay     float64
	Duedate   int
	Success   float64

	// Relearn is set when some card of the word went unanswered, which
	// resets it to the default delay.
	Relearn bool
}

// Updater applies end-of-session long-term updates.
type Updater struct {
	config Config
	src    rng.Source
	logger *slog.Logger
}

// NewUpdater creates an Updater. A nil logger uses slog.Default().
func NewUpdater(cfg Config, src rng.Source, logger *slog.Logger) *Updater {
	if logger == nil {
		logger = slog.Default()
	}
	return &Updater{config: cfg, src: src, logger: logger}
}

// WrapUp reschedules every word touched in the session, in corpus order,
// and marks it seen. It returns the changes it made.
func (u *Updater) WrapUp(d *deck.Deck, t *Tracker, today int) []Change {
	var changes []Change
	for _, id := range t.TouchedWords() {
		w := d.Word(id)
		if len(w.Cards) == 0 {
			u.logger.Warn("skipping word without cards", "word", w.Name)
			continue
		}
		c := u.handleWord(w, t, today)
		u.logger.Debug("rescheduled word",
			"word", w.Name,
			"delay", c.Delay,
			"duedate", c.Duedate,
			"relearn", c.Relearn)
		changes = append(changes, c)
	}
	return changes
}

func (u *Updater) handleWord(w *deck.Word, t *Tracker, today int) Change {
	prev := u.config.DefaultDelay
	if w.Seen && w.Delay > 0 {
		prev = w.Delay
	}
	change := Change{Word: w.ID, Name: w.Name, PrevDelay: prev}
	w.Seen = true

	total := 0.0
	for _, c := range w.Cards {
		s, ok := t.Outcome(c)
		if !ok {
			w.Delay = u.config.DefaultDelay
			w.Duedate = today + 1
			change.Delay, change.Duedate, change.Relearn = w.Delay, w.Duedate, true
			return change
		}
		total += s
	}

	f := total / float64(len(w.Cards))
	w.Delay = math.Exp(f*math.Log(2*prev) + (1-f)*math.Log(u.config.DefaultDelay))
	jitter := math.Exp((u.src.Float64() - 0.5) * u.config.Noise)
	w.Duedate = int(math.Floor(float64(today) + w.Delay*jitter + 0.5))

	change.Delay, change.Duedate, change.Success = w.Delay, w.Duedate, f
	return change
}
