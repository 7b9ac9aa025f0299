package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashdeck/internal/deck"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "deck.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func progressSnapshot() *deck.Snapshot {
	snap := deck.SampleSnapshot()
	snap.Words[0].Seen, snap.Words[0].Delay, snap.Words[0].Duedate = true, 2.5, 20001
	snap.Words[2].Seen, snap.Words[2].Delay, snap.Words[2].Duedate = true, 1, 19990
	return snap
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"words", "cards", "confusion", "answer_events", "session_events", "llm_requests", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestDeckRepo_EmptyStore(t *testing.T) {
	s := openTestStore(t)

	_, err := s.DeckRepo().Load(context.Background())
	if !errors.Is(err, ErrNoDeck) {
		t.Errorf("Load on empty store: err = %v, want ErrNoDeck", err)
	}
}

func TestDeckRepo_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.DeckRepo()
	ctx := context.Background()

	want := progressSnapshot()
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = deck.Unpack(got)
	assert.NoError(t, err)
}

func TestDeckRepo_SaveReplaces(t *testing.T) {
	s := openTestStore(t)
	repo := s.DeckRepo()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, progressSnapshot()))

	smaller := &deck.Snapshot{Words: progressSnapshot().Words[:2]}
	require.NoError(t, repo.Save(ctx, smaller))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, smaller, got)

	var cards int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM cards").Scan(&cards))
	assert.Equal(t, 5, cards)
}

func TestDeckRepo_PreservesCardOrder(t *testing.T) {
	s := openTestStore(t)
	repo := s.DeckRepo()
	ctx := context.Background()

	snap := &deck.Snapshot{Words: []deck.StoredWord{{
		Name:     "house",
		Category: "ka-nouns",
		Cards: []deck.StoredCard{
			{Type: "ka->en", Question: "სახლი", Answer: "house"},
			{Type: "en->ka", Question: "house", Answer: "სახლი"},
		},
	}}}
	require.NoError(t, repo.Save(ctx, snap))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Words, 1)
	assert.Equal(t, "ka->en", got.Words[0].Cards[0].Type)
	assert.Equal(t, "en->ka", got.Words[0].Cards[1].Type)
}

func TestEventRepo_SessionSummaries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo().(*eventRepo)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	at := base
	repo.now = func() time.Time { return at }

	for i, answered := range []int{10, 20, 30} {
		at = base.Add(time.Duration(i) * 24 * time.Hour)
		id := []string{"s1", "s2", "s3"}[i]
		require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: id, Action: ActionStart}))
		require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
			SessionID: id,
			Action:    ActionEnd,
			Answered:  answered,
			Correct:   answered / 2,
		}))
	}

	all, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "s3", all[0].SessionID)
	assert.Equal(t, 30, all[0].Answered)
	assert.Equal(t, 15, all[0].Correct)
	assert.True(t, all[0].Sequence > all[1].Sequence)
	assert.True(t, all[0].Timestamp.Equal(base.Add(48*time.Hour)))

	limited, err := repo.QuerySessionSummaries(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "s3", limited[0].SessionID)

	early, err := repo.QuerySessionSummaries(ctx, QueryOpts{To: base.Add(time.Hour)})
	require.NoError(t, err)
	require.Len(t, early, 1)
	assert.Equal(t, "s1", early[0].SessionID)
}

func TestEventRepo_WordAccuracy(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	answers := []AnswerEventData{
		{SessionID: "s", Word: "dog", Outcome: OutcomeCorrect},
		{SessionID: "s", Word: "dog", Outcome: OutcomeWrong},
		{SessionID: "s", Word: "dog", Outcome: OutcomeUnrecognized},
		{SessionID: "s", Word: "cat", Outcome: OutcomeCorrect},
	}
	for _, a := range answers {
		require.NoError(t, repo.AppendAnswerEvent(ctx, a))
	}

	got, err := repo.WordAccuracy(ctx)
	require.NoError(t, err)
	assert.Equal(t, []WordAccuracy{
		{Word: "cat", Attempts: 1, Correct: 1},
		{Word: "dog", Attempts: 2, Correct: 1},
	}, got)
	assert.InDelta(t, 0.5, got[1].Ratio(), 1e-9)
}

func TestEventRepo_LLMUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	reqs := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "card-gen", InputTokens: 100, OutputTokens: 40, LatencyMs: 300, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "card-gen", InputTokens: 50, OutputTokens: 0, LatencyMs: 100, ErrorMessage: "429"},
		{Provider: "mock", Model: "mock", Purpose: "card-gen", InputTokens: 1, OutputTokens: 1, LatencyMs: 0, Success: true},
	}
	for _, r := range reqs {
		require.NoError(t, repo.AppendLLMRequest(ctx, r))
	}

	got, err := repo.LLMUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, []LLMUsage{
		{Purpose: "card-gen", Model: "gpt-4o-mini", Calls: 2, Failures: 1, InputTokens: 150, OutputTokens: 40, AvgLatencyMs: 200},
		{Purpose: "card-gen", Model: "mock", Calls: 1, Failures: 0, InputTokens: 1, OutputTokens: 1, AvgLatencyMs: 0},
	}, got)
}

func TestEventRepo_IDsAreOrdered(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for range 20 {
		require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Purpose: "cardgen", Success: true}))
	}

	rows, err := s.DB().Query("SELECT id FROM llm_requests ORDER BY sequence")
	require.NoError(t, err)
	defer rows.Close()

	var prev string
	for rows.Next() {
		var id string
		require.NoError(t, rows.Scan(&id))
		assert.Len(t, id, 26)
		assert.Greater(t, id, prev)
		prev = id
	}
	require.NoError(t, rows.Err())
}
