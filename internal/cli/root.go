// Package cli is the daytally command tree. The root command runs the
// terminal UI; subcommands drive the same stores from scripts.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/daytally/internal/clock"
	"github.com/sadopc/daytally/internal/config"
	"github.com/sadopc/daytally/internal/goal"
	"github.com/sadopc/daytally/internal/i18n"
	"github.com/sadopc/daytally/internal/logging"
	"github.com/sadopc/daytally/internal/store"
	"github.com/sadopc/daytally/internal/tracker"
	"github.com/sadopc/daytally/internal/tui"
)

// app holds what every command needs once the root's pre-run has opened it.
type app struct {
	clock clock.Clock

	dbFlag    string
	langFlag  string
	debugFlag bool

	cfg      *config.Config
	kv       *store.Store
	tracker  *tracker.Store
	goals    *goal.Store
	lang     i18n.Lang
	closeLog func() error
}

func newApp(clk clock.Clock) *app {
	return &app{clock: clk}
}

// Execute is the entry point called from main.
func Execute() {
	a := newApp(clock.System{})
	err := a.rootCmd().Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "daytally",
		Short: "daytally – a daily time tracker for the terminal",
		Long: `daytally tracks work intervals against a daily goal.
Run it without arguments for the interactive dashboard.
All data is kept in a local SQLite file.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return a.open() },
		RunE:              a.runTUI,
	}

	root.PersistentFlags().StringVar(&a.dbFlag, "db", "", "database file (default ~/.config/daytally/daytally.db)")
	root.PersistentFlags().StringVar(&a.langFlag, "lang", "", "language: pt-BR, en-US or es")
	root.PersistentFlags().BoolVar(&a.debugFlag, "debug", false, "write a debug log")

	root.AddCommand(
		a.startCmd(),
		a.stopCmd(),
		a.statusCmd(),
		a.addCmd(),
		a.resetCmd(),
		a.goalCmd(),
		a.exportCmd(),
	)
	return root
}

// open resolves configuration and opens the stores.
func (a *app) open() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Apply(config.Overrides{
		DBPath:   &a.dbFlag,
		Language: &a.langFlag,
		Debug:    &a.debugFlag,
	}); err != nil {
		return err
	}
	a.cfg = cfg

	closeLog, err := logging.Setup(cfg.Debug, cfg.DebugLogPath())
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	a.closeLog = closeLog
	logging.Debugf("opening %s", cfg.DBPath)

	kv, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	a.kv = kv

	if a.tracker, err = tracker.New(kv, a.clock); err != nil {
		return err
	}
	if a.goals, err = goal.New(kv, a.clock); err != nil {
		return err
	}

	if l, ok := i18n.Parse(cfg.Language); ok {
		a.lang = l
	} else if a.lang, err = i18n.Load(kv, cfg.Locale); err != nil {
		return err
	}
	return nil
}

func (a *app) close() error {
	var err error
	if a.kv != nil {
		err = a.kv.Close()
		a.kv = nil
	}
	if a.closeLog != nil {
		a.closeLog()
		a.closeLog = nil
	}
	return err
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	exportDir, err := os.UserHomeDir()
	if err != nil {
		exportDir = "."
	}
	return tui.Run(tui.Options{
		Tracker:   a.tracker,
		Goals:     a.goals,
		Prefs:     a.kv,
		Clock:     a.clock,
		Lang:      a.lang,
		ExportDir: exportDir,
	}, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
}

func (a *app) t(key i18n.Key) string {
	return i18n.T(a.lang, key)
}
