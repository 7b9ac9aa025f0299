package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashdeck/internal/deck"
	"github.com/abhisek/flashdeck/internal/metrics"
	"github.com/abhisek/flashdeck/internal/rng"
	"github.com/abhisek/flashdeck/internal/session"
	"github.com/abhisek/flashdeck/internal/ui/theme"
)

func newDrillCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "drill",
		Short: "Start a drill session",
		Long:  "Shows one card at a time and reads your answer from stdin. Type 'quit' or press Ctrl-D to stop; progress is saved when the session ends.",
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

			sc := a.cfg.Scheduling
			sess := session.New(ctx, d, session.Options{
				Supplier:        sc.Supplier(),
				Scheduler:       sc.Scheduler(),
				SpacedRep:       sc.SpacedRep(),
				Rand:            rng.New(sc.Seed),
				Decks:           b.Decks,
				Events:          b.Events,
				Metrics:         metrics.New(),
				Logger:          a.logger,
				MetricsTextfile: a.cfg.Metrics.Textfile,
			})

			out := cmd.OutOrStdout()
			if err := drill(ctx, cmd.InOrStdin(), out, sess, limit); err != nil {
				return err
			}
			sum, err := sess.Close(ctx)
			if sum != nil {
				fmt.Fprintln(out, renderSummary(sum))
			}
			return err
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Stop after this many graded answers (0 means no limit)")
	return cmd
}

// drill runs the prompt/answer loop until the deck runs dry, the input
// ends, the user quits or limit graded answers were given.
func drill(ctx context.Context, in io.Reader, out io.Writer, sess *session.Session, limit int) error {
	scanner := bufio.NewScanner(in)
	graded := 0
	for {
		if sess.NoCardsLeft() {
			fmt.Fprintln(out, theme.Dim.Render(session.NoCardsPrompt))
			return nil
		}
		if limit > 0 && graded >= limit {
			return nil
		}

		fmt.Fprintf(out, "%s %s\n> ", theme.Dim.Render(sess.Current().Type), theme.Prompt.Render(sess.Prompt()))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == ":q" {
			return nil
		}

		res, err := sess.SubmitAnswer(ctx, line)
		if err != nil {
			return err
		}
		switch res.Verdict {
		case session.Correct:
			graded++
			fmt.Fprintln(out, theme.Correct.Render("correct"))
		case session.Wrong:
			graded++
			fmt.Fprintf(out, "%s %s\n", theme.Incorrect.Render("wrong, it was"), res.Expected)
		case session.Unrecognized:
			fmt.Fprintln(out, theme.NearMiss.Render("that answers a different card, try again"))
		}
	}
}

func renderSummary(s *session.Summary) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Session summary"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "answered     %d (%d correct, %d wrong)\n", s.Answered, s.Correct, s.Wrong)
	fmt.Fprintf(&b, "near misses  %d\n", s.NearMisses)
	fmt.Fprintf(&b, "words        %d\n", s.WordsTouched)
	fmt.Fprintf(&b, "duration     %s\n", s.Duration.Round(time.Second))
	b.WriteString(theme.Bar("accuracy", s.Accuracy, 40))

	relearn := 0
	for _, c := range s.Changes {
		if c.Relearn {
			relearn++
		}
	}
	if relearn > 0 {
		fmt.Fprintf(&b, "\n%s", theme.Dim.Render(fmt.Sprintf("%d words come back tomorrow", relearn)))
	}
	return theme.Box.Render(b.String())
}
