package cmd

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashdeck/internal/deck"
	"github.com/abhisek/flashdeck/internal/spacedrep"
	"github.com/abhisek/flashdeck/internal/store"
	"github.com/abhisek/flashdeck/internal/ui/theme"
)

func newStatsCmd(a *app) *cobra.Command {
	var sessions, weakest int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show deck progress and, with the sqlite store, drill history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := a.open()
			if err != nil {
				return err
			}
			defer b.Close()

			snap, err := b.Decks.Load(ctx)
			if err != nil {
				return hintNoDeck(err, b.Path)
			}
			d, err := deck.Unpack(snap)
			if err != nil {
				return fmt.Errorf("load deck: %w", err)
			}
			out := cmd.OutOrStdout()
			writeDeckStats(out, d, spacedrep.Today(time.Now()))

			if b.Events == nil {
				fmt.Fprintln(out, theme.Dim.Render("\n(session history is only kept by the sqlite driver)"))
				return nil
			}
			recent, err := b.Events.QuerySessionSummaries(ctx, store.QueryOpts{Limit: sessions})
			if err != nil {
				return err
			}
			accuracy, err := b.Events.WordAccuracy(ctx)
			if err != nil {
				return err
			}
			writeHistory(out, recent, accuracy, weakest)
			return nil
		},
	}
	cmd.Flags().IntVar(&sessions, "sessions", 5, "Number of recent sessions to list")
	cmd.Flags().IntVar(&weakest, "weakest", 5, "Number of weakest words to list")
	return cmd
}

func writeDeckStats(w io.Writer, d *deck.Deck, today int) {
	fmt.Fprintln(w, theme.Title.Render("Deck"))
	for _, cs := range d.Stats(today) {
		fmt.Fprintf(w, "\n%s  %d words, %d cards, %d due\n", theme.Heading.Render(cs.Category), cs.Words, cs.Cards, cs.Due)
		fmt.Fprintln(w, theme.Bar("seen", float64(cs.Seen)/float64(max(cs.Words, 1)), 48))
	}
}

func writeHistory(w io.Writer, recent []store.SessionRecord, accuracy []store.WordAccuracy, weakest int) {
	fmt.Fprintf(w, "\n%s\n", theme.Title.Render("Recent sessions"))
	if len(recent) == 0 {
		fmt.Fprintln(w, theme.Dim.Render("none yet"))
	}
	for _, r := range recent {
		fmt.Fprintf(w, "%s  %3d answered  %3d correct  %2d words  %s\n",
			r.Timestamp.Local().Format("2006-01-02 15:04"), r.Answered, r.Correct, r.WordsTouched,
			time.Duration(r.DurationSecs)*time.Second)
	}

	// Words with a single attempt say little about how well they are known.
	graded := slices.DeleteFunc(slices.Clone(accuracy), func(wa store.WordAccuracy) bool { return wa.Attempts < 2 })
	slices.SortStableFunc(graded, func(x, y store.WordAccuracy) int {
		return cmp.Compare(x.Ratio(), y.Ratio())
	})
	if len(graded) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", theme.Title.Render("Weakest words"))
	for _, wa := range graded[:min(weakest, len(graded))] {
		fmt.Fprintln(w, theme.Bar(fmt.Sprintf("%-16s", wa.Word), wa.Ratio(), 48))
	}
}
