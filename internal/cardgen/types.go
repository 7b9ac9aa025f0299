// Package cardgen asks a language model to translate terms and turns the
// replies into corpus words with one card per direction.
package cardgen

import "github.com/abhisek/flashdeck/internal/deck"

// Request describes one batch of terms to translate.
type Request struct {
	// From and To are language tags, e.g. "en" and "ka". Card types are
	// built from them as "en->ka" and "ka->en".
	From string
	To   string

	// Category is assigned to every generated word.
	Category string

	// Terms are the source-language words to translate, in order.
	Terms []string

	// Existing holds the names already in the corpus. Generated words may
	// not reuse them, and the prompt lists the most recent ones so the
	// model can point out look-alikes.
	Existing []string
}

// Entry is one translated term as returned by the model.
type Entry struct {
	Term        string
	Translation string

	// ConfusableWith lists other names, from this batch or the corpus,
	// that a learner is likely to mix up with Term.
	ConfusableWith []string
}

// Result is a batch ready to be appended to a corpus.
type Result struct {
	Words     []deck.StoredWord
	Confusion [][2]string
}

// ForwardType is the card type that asks the source term.
func (r Request) ForwardType() string { return r.From + "->" + r.To }

// BackwardType is the card type that asks the translation.
func (r Request) BackwardType() string { return r.To + "->" + r.From }
