package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashdeck/internal/deck"
	"github.com/abhisek/flashdeck/internal/store"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the deck with the contents of a YAML file ('-' reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			snap, err := store.ReadYAML(r)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			d, err := deck.Unpack(snap)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}

			b, err := a.open()
			if err != nil {
				return err
			}
			defer b.Close()
			if err := b.Decks.Save(cmd.Context(), snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d words (%d cards) into %s\n", len(d.Words), d.CardCount(), b.Path)
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write the deck, with progress, to a YAML file ('-' writes stdout)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.open()
			if err != nil {
				return err
			}
			defer b.Close()
			snap, err := b.Decks.Load(cmd.Context())
			if err != nil {
				return hintNoDeck(err, b.Path)
			}

			if args[0] == "-" {
				return store.WriteYAML(cmd.OutOrStdout(), snap)
			}
			return store.NewYAMLFile(args[0]).Save(cmd.Context(), snap)
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget all progress, leaving every word unseen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset discards all scheduling history; pass --yes to confirm")
			}
			b, err := a.open()
			if err != nil {
				return err
			}
			defer b.Close()
			snap, err := b.Decks.Load(cmd.Context())
			if err != nil {
				return hintNoDeck(err, b.Path)
			}
			snap.ResetProgress()
			if err := b.Decks.Save(cmd.Context(), snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reset %d words\n", len(snap.Words))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}

func newSampleCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Create a small English/Georgian starter deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.open()
			if err != nil {
				return err
			}
			defer b.Close()

			_, err = b.Decks.Load(cmd.Context())
			switch {
			case err == nil && !force:
				return fmt.Errorf("%s already holds a deck; pass --force to overwrite it", b.Path)
			case err != nil && !errors.Is(err, store.ErrNoDeck):
				return err
			}
			if err := b.Decks.Save(cmd.Context(), deck.SampleSnapshot()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote sample deck to %s\n", b.Path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing deck")
	return cmd
}
