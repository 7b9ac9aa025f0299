package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insert(ctx, "session_events",
		[]string{"session_id", "action", "answered", "correct", "wrong", "near_misses", "words_touched", "duration_secs"},
		[]any{data.SessionID, data.Action, data.Answered, data.Correct, data.Wrong, data.NearMisses, data.WordsTouched, data.DurationSecs},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.insert(ctx, "answer_events",
		[]string{"session_id", "word", "category", "card_type", "question", "expected", "given", "outcome", "correct", "round", "time_ms"},
		[]any{data.SessionID, data.Word, data.Category, data.CardType, data.Question, data.Expected, data.Given,
			data.Outcome, data.Outcome == OutcomeCorrect, data.Round, data.TimeMs},
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionRecord, error) {
	preds := []*entsql.Predicate{entsql.EQ("action", ActionEnd)}
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("created_at", opts.To.UnixMilli()))
	}

	sel := builder.Select("id", "sequence", "created_at", "session_id", "action",
		"answered", "correct", "wrong", "near_misses", "words_touched", "duration_secs").
		From(entsql.Table("session_events")).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	q, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec SessionRecord
			ms  int64
		)
		err := rows.Scan(&rec.ID, &rec.Sequence, &ms, &rec.SessionID, &rec.Action,
			&rec.Answered, &rec.Correct, &rec.Wrong, &rec.NearMisses, &rec.WordsTouched, &rec.DurationSecs)
		if err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ms)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) WordAccuracy(ctx context.Context) ([]WordAccuracy, error) {
	q, args := builder.Select("word", entsql.As(entsql.Count("*"), "attempts"), entsql.As(entsql.Sum("correct"), "correct")).
		From(entsql.Table("answer_events")).
		Where(entsql.NEQ("outcome", OutcomeUnrecognized)).
		GroupBy("word").
		OrderBy("word").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query word accuracy: %w", err)
	}
	defer rows.Close()

	var out []WordAccuracy
	for rows.Next() {
		var wa WordAccuracy
		if err := rows.Scan(&wa.Word, &wa.Attempts, &wa.Correct); err != nil {
			return nil, fmt.Errorf("scan word accuracy: %w", err)
		}
		out = append(out, wa)
	}
	return out, rows.Err()
}
