// Package deck holds the entity model of a flashcard corpus: words, the
// cards they own, and the symmetric confusion relation between words.
package deck

import (
	"fmt"
	"slices"
)

// WordID indexes a Word within its Deck.
type WordID int

// Card is a single question/answer prompt. Word is a lookup-only link to the
// owning Word and is fixed at load time.
type Card struct {
	Question string
	Answer   string
	Type     string
	Word     WordID
}

// Word groups the cards for one vocabulary item together with its
// cross-session schedule. Delay (days) and Duedate (day number) are only
// meaningful when Seen is true.
type Word struct {
	ID       WordID
	Name     string
	Category string
	Cards    []*Card
	Seen     bool
	Delay    float64
	Duedate  int
}

// Deck is a loaded corpus.
type Deck struct {
	Words         []*Word
	Categories    []string
	Subcategories []string

	confusion map[WordID]map[WordID]struct{}
	answers   map[string]map[string]struct{}
}

// Unpack builds a Deck from its stored form, deriving parent links, card
// types, the category lists and the symmetric confusion relation.
// A malformed snapshot is rejected with an error wrapping ErrIntegrity.
func Unpack(s *Snapshot) (*Deck, error) {
	d := &Deck{
		confusion: make(map[WordID]map[WordID]struct{}),
		answers:   make(map[string]map[string]struct{}),
	}
	byName := make(map[string]WordID, len(s.Words))

	for i, sw := range s.Words {
		if sw.Name == "" {
			return nil, fmt.Errorf("word #%d: %w", i, ErrUnnamedWord)
		}
		if _, dup := byName[sw.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateWord, sw.Name)
		}
		if len(sw.Cards) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyWord, sw.Name)
		}
		if sw.Seen && sw.Delay <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrSeenWithoutSchedule, sw.Name)
		}

		id := WordID(i)
		byName[sw.Name] = id
		w := &Word{
			ID:       id,
			Name:     sw.Name,
			Category: sw.Category,
			Seen:     sw.Seen,
			Delay:    sw.Delay,
			Duedate:  sw.Duedate,
		}
		types := make(map[string]bool, len(sw.Cards))
		for _, sc := range sw.Cards {
			if types[sc.Type] {
				return nil, fmt.Errorf("%w: %q in %q", ErrDuplicateCardType, sc.Type, sw.Name)
			}
			types[sc.Type] = true
			w.Cards = append(w.Cards, &Card{
				Question: sc.Question,
				Answer:   sc.Answer,
				Type:     sc.Type,
				Word:     id,
			})
			d.addAnswer(sc.Question, sc.Answer)
			if !slices.Contains(d.Subcategories, sc.Type) {
				d.Subcategories = append(d.Subcategories, sc.Type)
			}
		}
		if !slices.Contains(d.Categories, sw.Category) {
			d.Categories = append(d.Categories, sw.Category)
		}
		d.Words = append(d.Words, w)
	}

	for _, pair := range s.Confusion {
		a, ok := byName[pair[0]]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrDanglingConfusion, pair[0])
		}
		b, ok := byName[pair[1]]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrDanglingConfusion, pair[1])
		}
		if a == b {
			return nil, fmt.Errorf("%w: %q", ErrSelfConfusion, pair[0])
		}
		d.link(a, b)
		d.link(b, a)
	}
	return d, nil
}

// Pack converts the Deck back to its stored form. Each unordered confusion
// pair is emitted once, ordered by corpus position.
func (d *Deck) Pack() *Snapshot {
	s := &Snapshot{Words: make([]StoredWord, 0, len(d.Words))}
	for _, w := range d.Words {
		sw := StoredWord{
			Name:     w.Name,
			Category: w.Category,
			Seen:     w.Seen,
			Delay:    w.Delay,
			Duedate:  w.Duedate,
			Cards:    make([]StoredCard, 0, len(w.Cards)),
		}
		for _, c := range w.Cards {
			sw.Cards = append(sw.Cards, StoredCard{Type: c.Type, Question: c.Question, Answer: c.Answer})
		}
		s.Words = append(s.Words, sw)
	}
	for i, w := range d.Words {
		for _, other := range d.Words[i+1:] {
			if d.Confusable(w.ID, other.ID) {
				s.Confusion = append(s.Confusion, [2]string{w.Name, other.Name})
			}
		}
	}
	return s
}

// Word returns the word with the given id.
func (d *Deck) Word(id WordID) *Word {
	return d.Words[id]
}

// Parent returns the word that owns c.
func (d *Deck) Parent(c *Card) *Word {
	return d.Words[c.Word]
}

// Rivals returns the words confusable with id, in corpus order.
func (d *Deck) Rivals(id WordID) []WordID {
	out := make([]WordID, 0, len(d.confusion[id]))
	for r := range d.confusion[id] {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// Confusable reports whether words a and b are marked as easily mixed up.
func (d *Deck) Confusable(a, b WordID) bool {
	_, ok := d.confusion[a][b]
	return ok
}

// Confused reports whether the parents of two cards are confusable.
func (d *Deck) Confused(c1, c2 *Card) bool {
	return d.Confusable(c1.Word, c2.Word)
}

// Related reports whether two cards belong to the same word.
func (d *Deck) Related(c1, c2 *Card) bool {
	return c1.Word == c2.Word
}

// AcceptsAnswer reports whether any card asking question expects answer.
func (d *Deck) AcceptsAnswer(question, answer string) bool {
	_, ok := d.answers[question][answer]
	return ok
}

// CardCount returns the total number of cards in the deck.
func (d *Deck) CardCount() int {
	n := 0
	for _, w := range d.Words {
		n += len(w.Cards)
	}
	return n
}

func (d *Deck) link(a, b WordID) {
	if d.confusion[a] == nil {
		d.confusion[a] = make(map[WordID]struct{})
	}
	d.confusion[a][b] = struct{}{}
}

func (d *Deck) addAnswer(question, answer string) {
	if d.answers[question] == nil {
		d.answers[question] = make(map[string]struct{})
	}
	d.answers[question][answer] = struct{}{}
}
