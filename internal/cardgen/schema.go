package cardgen

import "github.com/abhisek/flashdeck/internal/llm"

// TranslationSchema is the reply format for a batch of terms.
var TranslationSchema = &llm.Schema{
	Name:        "flashcard-translations",
	Description: "Translations of a batch of vocabulary terms",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"entries": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"term": map[string]any{
							"type":        "string",
							"description": "The source term exactly as given",
						},
						"translation": map[string]any{
							"type":        "string",
							"description": "The most common translation, in the target script, without articles or notes",
						},
						"confusable_with": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Source terms from the batch or the known list that a learner would likely confuse with this one. Empty when none.",
						},
					},
					"required":             []any{"term", "translation", "confusable_with"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"entries"},
		"additionalProperties": false,
	},
}

type replyOutput struct {
	Entries []struct {
		Term           string   `json:"term"`
		Translation    string   `json:"translation"`
		ConfusableWith []string `json:"confusable_with"`
	} `json:"entries"`
}
