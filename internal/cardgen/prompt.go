package cardgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You translate vocabulary for a flashcard drill.

Rules:
- Return exactly one entry per given term, in the given order, with the term copied verbatim.
- Give the single most common translation. No articles, parentheses, alternatives or transliteration.
- Write the translation in the target language's usual script.
- In confusable_with, list only terms from the batch or the known list that look or sound alike, or that learners often swap. Leave it empty otherwise.`

// buildUserMessage renders a Request, listing at most maxKnown of the
// existing names.
func buildUserMessage(req Request, maxKnown int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Source language: %s\n", req.From)
	fmt.Fprintf(&b, "Target language: %s\n", req.To)
	fmt.Fprintf(&b, "Category: %s\n", req.Category)

	b.WriteString("\nTerms:\n")
	b.WriteString(numbered(req.Terms, 0))

	b.WriteString("\n\nKnown terms:\n")
	b.WriteString(numbered(req.Existing, maxKnown))
	return b.String()
}

// numbered lists the last limit items, one per line. A limit of 0 keeps all.
func numbered(items []string, limit int) string {
	if len(items) == 0 {
		return "None"
	}
	if limit > 0 && len(items) > limit {
		items = items[len(items)-limit:]
	}
	lines := make([]string, len(items))
	for i, s := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, s)
	}
	return strings.Join(lines, "\n")
}
