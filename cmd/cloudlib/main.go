package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cloudlibrary/cloudlib/internal/adapter"
	"github.com/cloudlibrary/cloudlib/internal/adapter/source"
	"github.com/cloudlibrary/cloudlib/internal/auth"
	"github.com/cloudlibrary/cloudlib/internal/catalog"
	"github.com/cloudlibrary/cloudlib/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version information set at build time via -ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configDir string

	rootCmd := &cobra.Command{
		Use:   "cloudlib",
		Short: "Browse the CloudLibrary catalog from your terminal",
		Long: `cloudlib is a terminal client for a CloudLibrary server.

Run it without arguments to open the interactive catalog: search books
by title, and log in or register an account. Use "cloudlib books" for
plain, scriptable output.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, configDir)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.config/cloudlib)")

	rootCmd.AddCommand(
		booksCmd(&configDir),
		versionCmd(),
	)
	return rootCmd
}

// app holds what every command needs after startup
type app struct {
	cfg    *adapter.Config
	loader *adapter.Loader
	logger *slog.Logger
	closer io.Closer
}

// setup loads configuration and opens the log file
func setup(configDir string) (*app, error) {
	loader := adapter.NewLoader(configDir)
	cfg, err := loader.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
		closer = io.NopCloser(nil)
	}
	slog.SetDefault(logger)

	return &app{cfg: cfg, loader: loader, logger: logger, closer: closer}, nil
}

func (a *app) Close() {
	_ = a.closer.Close()
}

func (a *app) client() (source.Backend, error) {
	client, err := source.NewClient(source.FromConfig(a.cfg), a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func runTUI(cmd *cobra.Command, configDir string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the interactive catalog needs a terminal; use \"cloudlib books\" for plain output")
	}

	a, err := setup(configDir)
	if err != nil {
		return err
	}
	defer a.Close()

	a.logger.Info("starting cloudlib", "version", version)

	if !a.cfg.IsConfigured() {
		if err := runSetupFlow(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), a); err != nil {
			return err
		}
	}

	client, err := a.client()
	if err != nil {
		return err
	}
	model := tui.NewModel(
		catalog.NewService(client, a.logger),
		auth.NewService(client, a.logger),
		client,
		tui.Options{
			Language:      a.cfg.UI.Language,
			SearchAuthors: a.cfg.UI.SearchAuthors,
			Timeout:       a.cfg.Server.Timeout,
		},
		a.logger,
	)

	p := tea.NewProgram(model, tea.WithAltScreen())

	a.logger.Info("starting TUI", "server", a.cfg.Server.URL)

	final, err := p.Run()
	if m, ok := final.(tui.Model); ok {
		m.Unmount()
	}
	if err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}
