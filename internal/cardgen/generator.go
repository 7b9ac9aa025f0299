package cardgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/flashdeck/internal/deck"
	"github.com/abhisek/flashdeck/internal/llm"
)

// Purpose tags card generation requests in the LLM request log.
const Purpose = "card-gen"

var ErrBadRequest = errors.New("cardgen: bad request")

type Config struct {
	// Validators run in order; the first failure rejects the batch.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxKnown caps how many existing names are listed in the prompt.
	MaxKnown int
}

func DefaultConfig() Config {
	return Config{
		Validators:  []Validator{&StructuralValidator{}, &DuplicateValidator{}},
		MaxTokens:   1024,
		Temperature: 0.2,
		MaxKnown:    50,
	}
}

type Generator struct {
	provider llm.Provider
	config   Config
}

func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// Generate translates req.Terms and builds a word with a forward and a
// backward card for each of them.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := req.check(); err != nil {
		return nil, err
	}

	prompt := llm.UserPrompt(systemPrompt, buildUserMessage(req, g.config.MaxKnown))
	prompt.Schema = TranslationSchema
	prompt.MaxTokens = g.config.MaxTokens
	prompt.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, Purpose), prompt)
	if err != nil {
		return nil, fmt.Errorf("generate translations: %w", err)
	}
	var out replyOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse translations: %w", err)
	}

	entries := make([]Entry, len(out.Entries))
	for i, e := range out.Entries {
		entries[i] = Entry{
			Term:           strings.TrimSpace(e.Term),
			Translation:    strings.TrimSpace(e.Translation),
			ConfusableWith: e.ConfusableWith,
		}
	}
	for _, v := range g.config.Validators {
		if verr := v.Validate(entries, req); verr != nil {
			return nil, verr
		}
	}
	return build(entries, req), nil
}

func (r Request) check() error {
	switch {
	case r.From == "" || r.To == "":
		return fmt.Errorf("%w: both languages are required", ErrBadRequest)
	case r.From == r.To:
		return fmt.Errorf("%w: source and target language are both %q", ErrBadRequest, r.From)
	case r.Category == "":
		return fmt.Errorf("%w: category is required", ErrBadRequest)
	case len(r.Terms) == 0:
		return fmt.Errorf("%w: no terms", ErrBadRequest)
	}
	return nil
}

func build(entries []Entry, req Request) *Result {
	known := make(map[string]bool, len(req.Existing)+len(entries))
	for _, name := range req.Existing {
		known[name] = true
	}
	for _, e := range entries {
		known[e.Term] = true
	}

	res := &Result{Words: make([]deck.StoredWord, 0, len(entries))}
	paired := make(map[[2]string]bool)
	for _, e := range entries {
		res.Words = append(res.Words, deck.StoredWord{
			Name:     e.Term,
			Category: req.Category,
			Cards: []deck.StoredCard{
				{Type: req.ForwardType(), Question: e.Term, Answer: e.Translation},
				{Type: req.BackwardType(), Question: e.Translation, Answer: e.Term},
			},
		})
		for _, other := range e.ConfusableWith {
			other = strings.TrimSpace(other)
			if other == e.Term || !known[other] {
				continue
			}
			pair := [2]string{e.Term, other}
			if pair[0] > pair[1] {
				pair[0], pair[1] = pair[1], pair[0]
			}
			if !paired[pair] {
				paired[pair] = true
				res.Confusion = append(res.Confusion, pair)
			}
		}
	}
	return res
}

// Apply appends res to snap and checks the combined corpus still unpacks.
// On error snap is left unchanged.
func Apply(snap *deck.Snapshot, res *Result) error {
	merged := &deck.Snapshot{
		Words:     append(append([]deck.StoredWord(nil), snap.Words...), res.Words...),
		Confusion: append(append([][2]string(nil), snap.Confusion...), res.Confusion...),
	}
	if _, err := deck.Unpack(merged); err != nil {
		return fmt.Errorf("merge generated words: %w", err)
	}
	*snap = *merged
	return nil
}
