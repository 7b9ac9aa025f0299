package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLLMCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "llm",
		Short: "Inspect recorded LLM requests",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "usage",
		Short: "Show token usage by purpose and model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.open()
			if err != nil {
				return err
			}
			defer b.Close()
			if b.Events == nil {
				return errNoHistory
			}

			usage, err := b.Events.LLMUsage(cmd.Context())
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(usage) == 0 {
				fmt.Fprintln(out, "No LLM usage recorded yet.")
				return nil
			}

			rule := strings.Repeat("─", 84)
			fmt.Fprintf(out, "%-12s  %-28s  %5s  %5s  %9s  %9s  %7s\n",
				"Purpose", "Model", "Calls", "Fail", "Input", "Output", "Avg ms")
			fmt.Fprintln(out, rule)
			var calls, in, outTok int
			for _, u := range usage {
				fmt.Fprintf(out, "%-12s  %-28s  %5d  %5d  %9d  %9d  %7d\n",
					truncate(u.Purpose, 12), truncate(u.Model, 28), u.Calls, u.Failures, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
				calls += u.Calls
				in += u.InputTokens
				outTok += u.OutputTokens
			}
			fmt.Fprintln(out, rule)
			fmt.Fprintf(out, "%-12s  %-28s  %5d  %5s  %9d  %9d\n", "TOTAL", "", calls, "", in, outTok)
			return nil
		},
	})
	return cmd
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
