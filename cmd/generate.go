package cmd

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashdeck/internal/cardgen"
	"github.com/abhisek/flashdeck/internal/deck"
	"github.com/abhisek/flashdeck/internal/llm"
	"github.com/abhisek/flashdeck/internal/store"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		req    cardgen.Request
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "generate TERM...",
		Short: "Translate terms with an LLM and add them to the deck",
		Long: `Asks the configured LLM provider to translate each TERM and adds a word with a
card in each direction. The provider is chosen by FLASHDECK_LLM_PROVIDER
(anthropic, openai, gemini, openrouter) with its FLASHDECK_<PROVIDER>_API_KEY,
or discovered from GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or
OPENROUTER_API_KEY.`,
		Example: "  flashdeck generate --from en --to ka --category ka-nouns house horse",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := a.open()
			if err != nil {
				return err
			}
			defer b.Close()

			snap, err := b.Decks.Load(ctx)
			if errors.Is(err, store.ErrNoDeck) {
				snap, err = &deck.Snapshot{}, nil
			}
			if err != nil {
				return err
			}

			req.Existing = req.Existing[:0]
			for _, w := range snap.Words {
				req.Existing = append(req.Existing, w.Name)
			}
			req.Terms = req.Terms[:0]
			for _, t := range args {
				if snap.HasWord(t) || slices.Contains(req.Terms, t) {
					a.logger.Warn("skipping term already in the deck", "term", t)
					continue
				}
				req.Terms = append(req.Terms, t)
			}
			if len(req.Terms) == 0 {
				return errors.New("every term is already in the deck")
			}

			provider, err := llm.NewProvider(ctx, llm.ConfigFromEnv(), b.Events, a.logger)
			if err != nil {
				return fmt.Errorf("LLM provider not configured: %w", err)
			}
			res, err := cardgen.New(provider, cardgen.DefaultConfig()).Generate(ctx, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				return store.WriteYAML(out, &deck.Snapshot{Words: res.Words, Confusion: res.Confusion})
			}
			if err := cardgen.Apply(snap, res); err != nil {
				return err
			}
			if err := b.Decks.Save(ctx, snap); err != nil {
				return err
			}
			for _, w := range res.Words {
				fmt.Fprintf(out, "added %s = %s\n", w.Name, w.Cards[0].Answer)
			}
			for _, p := range res.Confusion {
				fmt.Fprintf(out, "marked %s and %s as confusable\n", p[0], p[1])
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.From, "from", "en", "Language of the given terms")
	f.StringVar(&req.To, "to", "", "Language to translate into")
	f.StringVar(&req.Category, "category", "", "Category for the new words (defaults to <to>-words)")
	f.BoolVar(&dryRun, "dry-run", false, "Print the generated words as YAML instead of saving them")
	_ = cmd.MarkFlagRequired("to")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if req.Category == "" {
			req.Category = req.To + "-words"
		}
	}
	return cmd
}
