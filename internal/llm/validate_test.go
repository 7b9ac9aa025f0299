package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func translationSchema() *Schema {
	return &Schema{
		Name: "test-translation",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"translation": map[string]any{"type": "string", "minLength": 1},
				"gender":      map[string]any{"type": "string", "enum": []any{"m", "f", "n"}},
			},
			"required":             []string{"translation"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"translation":"ძაღლი","gender":"n"}`, false},
		{"optional omitted", `{"translation":"კატა"}`, false},
		{"missing required", `{"gender":"m"}`, true},
		{"empty string", `{"translation":""}`, true},
		{"bad enum", `{"translation":"x","gender":"q"}`, true},
		{"extra field", `{"translation":"x","note":"y"}`, true},
		{"not json", `translation: x`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(translationSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var invalid *ErrInvalidResponse
			if !errors.As(err, &invalid) {
				t.Fatalf("err = %T, want ErrInvalidResponse", err)
			}
			if string(invalid.Content) != tt.raw {
				t.Errorf("Content = %s, want %s", invalid.Content, tt.raw)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not json at all`)); err != nil {
		t.Errorf("err = %v, want nil", err)
	}
}

func TestCompile_Cached(t *testing.T) {
	a, err := compile(translationSchema())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	b, err := compile(translationSchema())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if a != b {
		t.Error("second compile returned a different schema")
	}
}
