package cardgen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validator checks a parsed batch before it becomes cards.
type Validator interface {
	Name() string
	Validate(entries []Entry, req Request) *ValidationError
}

// ValidationError says which check rejected a batch and why.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

const maxFieldLen = 80

// StructuralValidator wants one non-empty entry per requested term, in
// order, with short single-line fields.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(entries []Entry, req Request) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}
	if len(entries) != len(req.Terms) {
		return fail("got %d entries for %d terms", len(entries), len(req.Terms))
	}
	for i, e := range entries {
		if e.Term != req.Terms[i] {
			return fail("entry %d is %q, want %q", i+1, e.Term, req.Terms[i])
		}
		if e.Translation == "" {
			return fail("%q has no translation", e.Term)
		}
		if utf8.RuneCountInString(e.Translation) > maxFieldLen || strings.ContainsAny(e.Translation, "\r\n") {
			return fail("translation of %q is not a single short line", e.Term)
		}
		if e.Translation == e.Term {
			return fail("%q was not translated", e.Term)
		}
	}
	return nil
}

// DuplicateValidator rejects names that are already in the corpus or that
// repeat within the batch.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(entries []Entry, req Request) *ValidationError {
	seen := make(map[string]bool, len(req.Existing)+len(entries))
	for _, name := range req.Existing {
		seen[name] = true
	}
	for _, e := range entries {
		if seen[e.Term] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("%q is already in the deck", e.Term)}
		}
		seen[e.Term] = true
	}
	return nil
}
