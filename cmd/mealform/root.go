package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-mealform/internal/config"
	"github.com/goliatone/go-mealform/internal/host"
	"github.com/goliatone/go-mealform/pkg/orchestrator"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mealform",
		Short:         "Edit meals and review meal and workout lists",
		Long:          `mealform keeps an in-memory list of meals and workouts seeded from a YAML config and lets you edit them from the terminal or a browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("config", "c", "", "YAML configuration file")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides the config")
	root.PersistentFlags().String("separator", "", "Ingredient separator for list summaries; overrides the config")

	root.AddCommand(
		newListCmd(),
		newEditCmd(),
		newRenderCmd(),
		newServeCmd(),
	)
	return root
}

// app is the state shared by every command: the loaded config, the logger and
// a host seeded from the config entries.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	host   *host.Container
}

func loadApp(cmd *cobra.Command) (*app, error) {
	flags := cmd.Flags()
	path, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logLevel, err := flags.GetString("log-level")
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	sep, err := flags.GetString("separator")
	if err != nil {
		return nil, err
	}
	if sep != "" {
		cfg.Separator = sep
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	logger := newLogger(level)

	entries, err := cfg.SeedEntries()
	if err != nil {
		return nil, err
	}
	h := host.New(
		host.WithLogger(logger),
		host.WithSeparator(cfg.Separator),
	)
	if err := h.Seed(entries...); err != nil {
		return nil, fmt.Errorf("seed store: %w", err)
	}
	logger.Debug("store ready", "entries", h.Len(), "config", path)

	return &app{cfg: cfg, logger: logger, host: h}, nil
}

func (a *app) orchestrator(opts ...orchestrator.Option) *orchestrator.Orchestrator {
	base := []orchestrator.Option{
		orchestrator.WithTheme(a.cfg.RendererTheme()),
		orchestrator.WithBasePath(a.cfg.BasePath),
	}
	return orchestrator.New(append(base, opts...)...)
}

// newLogger writes text logs to stderr so stdout stays clean for rendered
// output.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}
