package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-mealform/pkg/orchestrator"
	"github.com/goliatone/go-mealform/pkg/render"
	"github.com/goliatone/go-mealform/pkg/renderers/tui"
	"github.com/goliatone/go-mealform/pkg/renderers/vanilla"
	"github.com/goliatone/go-mealform/pkg/server"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the meal form and lists over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			listen := a.cfg.Listen
			if cmd.Flags().Changed("listen") {
				if listen, err = cmd.Flags().GetString("listen"); err != nil {
					return err
				}
			}

			orch, err := a.serverOrchestrator()
			if err != nil {
				return err
			}
			handler := server.New(a.host,
				server.WithLogger(a.logger),
				server.WithBasePath(a.cfg.BasePath),
				server.WithOrchestrator(orch),
			)
			srv := &http.Server{
				Addr:              listen,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			serverErrors := make(chan error, 1)
			go func() {
				a.logger.Info("listening", "addr", listen, "base_path", render.JoinPath(a.cfg.BasePath))
				serverErrors <- srv.ListenAndServe()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				a.logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					a.logger.Warn("graceful shutdown failed", "err", err)
					return srv.Close()
				}
				return nil
			}
		},
	}
	cmd.Flags().StringP("listen", "l", "", "Listen address; overrides the config")
	return cmd
}

// serverOrchestrator links the bundled stylesheet unless the theme provides
// one.
func (a *app) serverOrchestrator() (*orchestrator.Orchestrator, error) {
	html, err := vanilla.New(vanilla.WithStylesheet(render.JoinPath(a.cfg.BasePath, "assets", vanilla.StylesheetName)))
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(tui.New(tui.WithColorProfile(termenv.Ascii)))
	return a.orchestrator(orchestrator.WithRegistry(registry)), nil
}
