// Package main provides the CLI entrypoint for codetutor.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dmarkovs/codetutor/internal/api"
	"github.com/dmarkovs/codetutor/internal/cli"
	"github.com/dmarkovs/codetutor/internal/config"
	"github.com/dmarkovs/codetutor/internal/logging"
	"github.com/dmarkovs/codetutor/internal/session"
	"github.com/dmarkovs/codetutor/internal/tokenstore"
	"github.com/dmarkovs/codetutor/internal/tui"
)

var (
	flagConfig string
	flagServer string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "codetutor",
		Short:         "Terminal client for the Code Learning Platform",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTUICmd,
	}
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultConfigPath(), "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "server base URL (overrides config)")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())

	return rootCmd
}

func loadConfig() (config.Config, error) {
	file, err := config.LoadFile(flagConfig)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := config.Resolve(file)
	if err != nil {
		return config.Config{}, err
	}
	if flagServer != "" {
		cfg.ServerURL = flagServer
	}
	return cfg, nil
}

// buildController assembles the store, API client and session controller.
// The returned cleanup closes the store.
func buildController(cfg config.Config, log logging.Logger) (*session.Controller, *api.HTTPClient, func(), error) {
	store, err := tokenstore.Open(cfg.DatabasePath())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open token store: %w", err)
	}
	client := api.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout)
	ctrl := session.New(client, store, log)
	return ctrl, client, func() { _ = store.Close() }, nil
}

func runTUICmd(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	log, logFile, err := logging.NewFileLogger(cfg.LogPath())
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctrl, client, cleanup, err := buildController(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	p := tea.NewProgram(tui.NewModel(ctrl, client, cfg.HealthInterval), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run UI: %w", err)
	}
	return nil
}

// headlessApp builds the App used by the non-interactive subcommands.
// Warnings and errors go to stderr.
func headlessApp() (*cli.App, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))
	ctrl, _, cleanup, err := buildController(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return cli.NewApp(ctrl), cleanup, nil
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session token",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, cleanup, err := headlessApp()
			if err != nil {
				return err
			}
			defer cleanup()
			return app.Login(context.Background())
		},
	}
}

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, cleanup, err := headlessApp()
			if err != nil {
				return err
			}
			defer cleanup()
			return app.Register(context.Background())
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Delete the persisted session token",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, cleanup, err := headlessApp()
			if err != nil {
				return err
			}
			defer cleanup()
			app.Logout(context.Background())
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in profile, if any",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, cleanup, err := headlessApp()
			if err != nil {
				return err
			}
			defer cleanup()
			return app.WhoAmI(context.Background())
		},
	}
}
