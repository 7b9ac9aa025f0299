package session

import (
	"time"

	"github.com/abhisek/flashdeck/internal/spacedrep"
)

// Summary describes a finished session.
type Summary struct {
	SessionID    string
	Duration     time.Duration
	Rounds       int
	Answered     int
	Correct      int
	Wrong        int
	NearMisses   int
	Accuracy     float64
	WordsTouched int

	// Changes lists the long-term reschedules applied at close.
	Changes []spacedrep.Change
}

func (s *Session) summary(changes []spacedrep.Change) *Summary {
	var accuracy float64
	if s.answered > 0 {
		accuracy = float64(s.correct) / float64(s.answered)
	}
	return &Summary{
		SessionID:    s.id,
		Duration:     s.opts.Now().Sub(s.started),
		Rounds:       s.scheduler.Round(),
		Answered:     s.answered,
		Correct:      s.correct,
		Wrong:        s.wrong,
		NearMisses:   s.nearMisses,
		Accuracy:     accuracy,
		WordsTouched: len(s.tracker.TouchedWords()),
		Changes:      changes,
	}
}
