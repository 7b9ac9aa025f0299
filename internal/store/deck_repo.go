package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/flashdeck/internal/deck"
)

var builder = entsql.Dialect(dialect.SQLite)

// sqliteDeckRepo implements DeckRepo over the words, cards and confusion
// tables. Word and card positions preserve corpus order.
type sqliteDeckRepo struct {
	drv *entsql.Driver
}

func (r *sqliteDeckRepo) Load(ctx context.Context) (*deck.Snapshot, error) {
	snap := &deck.Snapshot{}

	q, args := builder.Select("id", "name", "category", "seen", "delay", "duedate").
		From(entsql.Table("words")).
		OrderBy("id").
		Query()
	err := r.query(ctx, q, args, func(rows *entsql.Rows) error {
		var (
			id int
			w  deck.StoredWord
		)
		if err := rows.Scan(&id, &w.Name, &w.Category, &w.Seen, &w.Delay, &w.Duedate); err != nil {
			return err
		}
		if id != len(snap.Words) {
			return fmt.Errorf("word %q at position %d, want %d", w.Name, id, len(snap.Words))
		}
		snap.Words = append(snap.Words, w)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	if len(snap.Words) == 0 {
		return nil, ErrNoDeck
	}

	q, args = builder.Select("word_id", "type", "question", "answer").
		From(entsql.Table("cards")).
		OrderBy("word_id", "position").
		Query()
	err = r.query(ctx, q, args, func(rows *entsql.Rows) error {
		var (
			wordID int
			c      deck.StoredCard
		)
		if err := rows.Scan(&wordID, &c.Type, &c.Question, &c.Answer); err != nil {
			return err
		}
		if wordID < 0 || wordID >= len(snap.Words) {
			return fmt.Errorf("card %q references unknown word %d", c.Question, wordID)
		}
		snap.Words[wordID].Cards = append(snap.Words[wordID].Cards, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}

	q, args = builder.Select("a", "b").
		From(entsql.Table("confusion")).
		OrderBy("position").
		Query()
	err = r.query(ctx, q, args, func(rows *entsql.Rows) error {
		var pair [2]string
		if err := rows.Scan(&pair[0], &pair[1]); err != nil {
			return err
		}
		snap.Confusion = append(snap.Confusion, pair)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load confusion: %w", err)
	}

	return snap, nil
}

func (r *sqliteDeckRepo) query(ctx context.Context, q string, args []any, scan func(*entsql.Rows) error) error {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(&rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Save replaces the whole corpus in one transaction.
func (r *sqliteDeckRepo) Save(ctx context.Context, snap *deck.Snapshot) (err error) {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	exec := func(q string, args []any) error {
		return tx.Exec(ctx, q, args, nil)
	}

	for _, table := range []string{"confusion", "cards", "words"} {
		q, args := builder.Delete(table).Query()
		if err = exec(q, args); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, w := range snap.Words {
		q, args := builder.Insert("words").
			Columns("id", "name", "category", "seen", "delay", "duedate").
			Values(i, w.Name, w.Category, w.Seen, w.Delay, w.Duedate).
			Query()
		if err = exec(q, args); err != nil {
			return fmt.Errorf("insert word %q: %w", w.Name, err)
		}
		if len(w.Cards) == 0 {
			continue
		}
		ins := builder.Insert("cards").Columns("word_id", "position", "type", "question", "answer")
		for j, c := range w.Cards {
			ins.Values(i, j, c.Type, c.Question, c.Answer)
		}
		q, args = ins.Query()
		if err = exec(q, args); err != nil {
			return fmt.Errorf("insert cards of %q: %w", w.Name, err)
		}
	}

	if len(snap.Confusion) > 0 {
		ins := builder.Insert("confusion").Columns("position", "a", "b")
		for i, pair := range snap.Confusion {
			ins.Values(i, pair[0], pair[1])
		}
		q, args := ins.Query()
		if err = exec(q, args); err != nil {
			return fmt.Errorf("insert confusion: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
