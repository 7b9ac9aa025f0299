package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashdeck/internal/config"
	"github.com/abhisek/flashdeck/internal/logging"
	"github.com/abhisek/flashdeck/internal/store"
)

// app carries what PersistentPreRunE resolved for the running command.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd builds the flashdeck command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "flashdeck",
		Short:         "Spaced repetition flashcard drills in the terminal",
		Long:          "flashdeck drills vocabulary cards, schedules each word by how well you know it, and keeps the deck in a YAML file or SQLite database.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	f := root.PersistentFlags()
	f.String("config", "", "Path to a YAML config file")
	f.String("store", "", "Deck location (overrides store.path and FLASHDECK_STORE)")
	f.String("driver", "", "Store driver: yaml or sqlite (overrides store.driver)")
	f.String("log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		newDrillCmd(a),
		newImportCmd(a),
		newExportCmd(a),
		newStatsCmd(a),
		newResetCmd(a),
		newSampleCmd(a),
		newGenerateCmd(a),
		newLLMCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.Store.Path = v
	}
	if v, _ := cmd.Flags().GetString("driver"); v != "" {
		cfg.Store.Driver = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	return nil
}

// backend is an opened store. Events is nil for the YAML driver, which keeps
// no history.
type backend struct {
	Decks  store.DeckRepo
	Events store.EventRepo
	Path   string
	close  func() error
}

func (b *backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

func (a *app) open() (*backend, error) {
	path := a.cfg.Store.Path
	if path == "" {
		var err error
		if path, err = store.DefaultPath(a.cfg.Store.Driver); err != nil {
			return nil, fmt.Errorf("resolve store path: %w", err)
		}
	}
	a.logger.Debug("opening store", "driver", a.cfg.Store.Driver, "path", path)

	if a.cfg.Store.Driver == store.DriverYAML {
		return &backend{Decks: store.NewYAMLFile(path), Path: path}, nil
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &backend{Decks: st.DeckRepo(), Events: st.EventRepo(), Path: path, close: st.Close}, nil
}

var errNoHistory = errors.New("history needs the sqlite store driver")

// hintNoDeck turns a missing deck into an actionable message.
func hintNoDeck(err error, path string) error {
	if errors.Is(err, store.ErrNoDeck) {
		return fmt.Errorf("no deck at %s; run 'flashdeck sample' or 'flashdeck import FILE' first", path)
	}
	return err
}
