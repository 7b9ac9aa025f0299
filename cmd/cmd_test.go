package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashdeck/internal/deck"
	"github.com/abhisek/flashdeck/internal/session"
)

// run executes the command tree with stdin and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.Execute()
	return out.String(), err
}

func yamlStore(t *testing.T) string {
	return filepath.Join(t.TempDir(), "deck.yaml")
}

func TestSampleAndExport(t *testing.T) {
	path := yamlStore(t)

	out, err := run(t, "", "--store", path, "sample")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	out, err = run(t, "", "--store", path, "export", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "name: dog")
	assert.Contains(t, out, "confusion: [[mouse, red]]")

	_, err = run(t, "", "--store", path, "sample")
	assert.ErrorContains(t, err, "--force")

	_, err = run(t, "", "--store", path, "sample", "--force")
	assert.NoError(t, err)
}

func TestDrill_SavesProgress(t *testing.T) {
	path := yamlStore(t)
	_, err := run(t, "", "--store", path, "sample")
	require.NoError(t, err)

	out, err := run(t, "definitely not an answer\nquit\n", "--store", path, "drill")
	require.NoError(t, err)
	assert.Contains(t, out, "wrong, it was")
	assert.Contains(t, out, "Session summary")
	assert.Contains(t, out, "answered     1 (0 correct, 1 wrong)")

	out, err = run(t, "", "--store", path, "export", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "seen: true")

	_, err = run(t, "", "--store", path, "reset")
	assert.ErrorContains(t, err, "--yes")

	out, err = run(t, "", "--store", path, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "reset 4 words")

	out, err = run(t, "", "--store", path, "export", "-")
	require.NoError(t, err)
	assert.NotContains(t, out, "seen:")
}

func TestDrill_LimitAndEOF(t *testing.T) {
	path := yamlStore(t)
	_, err := run(t, "", "--store", path, "sample")
	require.NoError(t, err)

	out, err := run(t, "x\ny\nz\n", "--store", path, "drill", "--limit", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "answered     2 (0 correct, 2 wrong)")

	out, err = run(t, "", "--store", path, "drill")
	require.NoError(t, err)
	assert.Contains(t, out, "answered     0")
}

func TestDrill_NoDeck(t *testing.T) {
	_, err := run(t, "", "--store", yamlStore(t), "drill")
	assert.ErrorContains(t, err, "flashdeck sample")
}

func TestImport(t *testing.T) {
	src := filepath.Join(t.TempDir(), "words.yaml")
	require.NoError(t, os.WriteFile(src, []byte(`words:
  - name: dog
    category: ka-nouns
    cards:
      en->ka: {question: dog, answer: ძაღლი}
      ka->en: {question: ძაღლი, answer: dog}
  - name: red
    category: ka-adj
    cards:
      en->ka: {question: red, answer: წითელი}
`), 0o644))

	path := yamlStore(t)
	out, err := run(t, "", "--store", path, "import", src)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 words (3 cards)")

	out, err = run(t, "", "--store", path, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "ka-nouns")
	assert.Contains(t, out, "ka-adj")
	assert.Contains(t, out, "only kept by the sqlite driver")
}

func TestImport_RejectsBrokenCorpus(t *testing.T) {
	body := "words:\n  - name: dog\n    category: n\n    cards:\n      a: {question: q, answer: a}\nconfusion: [[dog, cat]]\n"
	_, err := run(t, body, "--store", yamlStore(t), "import", "-")
	assert.ErrorIs(t, err, deck.ErrDanglingConfusion)
}

func TestSQLiteHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.db")
	args := func(rest ...string) []string {
		return append([]string{"--driver", "sqlite", "--store", path}, rest...)
	}

	_, err := run(t, "", args("sample")...)
	require.NoError(t, err)
	_, err = run(t, "nope\nquit\n", args("drill")...)
	require.NoError(t, err)

	out, err := run(t, "", args("stats")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Recent sessions")
	assert.Contains(t, out, "1 answered")

	out, err = run(t, "", args("llm", "usage")...)
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM usage recorded yet.")
}

func TestLLMUsage_NeedsSQLite(t *testing.T) {
	_, err := run(t, "", "--store", yamlStore(t), "llm", "usage")
	assert.ErrorIs(t, err, errNoHistory)
}

func TestGenerate_AllTermsKnown(t *testing.T) {
	path := yamlStore(t)
	_, err := run(t, "", "--store", path, "sample")
	require.NoError(t, err)

	_, err = run(t, "", "--store", path, "generate", "--to", "ka", "dog", "cat")
	assert.ErrorContains(t, err, "already in the deck")
}

func TestInvalidDriver(t *testing.T) {
	_, err := run(t, "", "--driver", "postgres", "stats")
	assert.ErrorContains(t, err, "invalid config")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "flashdeck (devel)\n", out)
}

func TestRenderSummary(t *testing.T) {
	got := renderSummary(&session.Summary{Answered: 4, Correct: 3, Wrong: 1, Accuracy: 0.75})
	assert.Contains(t, got, "answered     4 (3 correct, 1 wrong)")
	assert.Contains(t, got, "75%")
}
