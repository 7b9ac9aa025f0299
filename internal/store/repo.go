package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/flashdeck/internal/deck"
)

// ErrNoDeck is returned by DeckRepo.Load when nothing has been saved yet.
var ErrNoDeck = errors.New("store: no deck saved")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// DeckRepo loads and saves the corpus together with each word's schedule.
type DeckRepo interface {
	// Load returns the saved corpus, or ErrNoDeck.
	Load(ctx context.Context) (*deck.Snapshot, error)

	// Save replaces the saved corpus.
	Save(ctx context.Context, snap *deck.Snapshot) error
}

// Answer outcomes recorded in AnswerEventData.
const (
	OutcomeCorrect      = "correct"
	OutcomeWrong        = "wrong"
	OutcomeUnrecognized = "unrecognized"
)

// AnswerEventData captures one submitted answer.
type AnswerEventData struct {
	SessionID string
	Word      string
	Category  string
	CardType  string
	Question  string
	Expected  string
	Given     string
	Outcome   string
	Round     int
	TimeMs    int64
}

// Session actions recorded in SessionEventData.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures a session lifecycle event. Counters are only
// meaningful for ActionEnd.
type SessionEventData struct {
	SessionID    string
	Action       string
	Answered     int
	Correct      int
	Wrong        int
	NearMisses   int
	WordsTouched int
	DurationSecs int
}

// SessionRecord is a stored session event.
type SessionRecord struct {
	ID        string
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// WordAccuracy aggregates the graded answers given for one word.
type WordAccuracy struct {
	Word     string
	Attempts int
	Correct  int
}

// Ratio returns Correct/Attempts, or 0 with no attempts.
func (w WordAccuracy) Ratio() float64 {
	if w.Attempts == 0 {
		return 0
	}
	return float64(w.Correct) / float64(w.Attempts)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMUsage aggregates recorded LLM requests for one purpose and model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAnswerEvent records an answer submitted during a drill.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QuerySessionSummaries returns finished sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionRecord, error)

	// WordAccuracy returns per-word answer totals, ordered by word.
	// Unrecognized answers are not graded and are left out.
	WordAccuracy(ctx context.Context) ([]WordAccuracy, error)

	// LLMUsage returns request totals grouped by purpose and model.
	LLMUsage(ctx context.Context) ([]LLMUsage, error)
}
