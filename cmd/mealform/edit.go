package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-mealform/internal/host"
	"github.com/goliatone/go-mealform/pkg/entity"
	"github.com/goliatone/go-mealform/pkg/render"
	"github.com/goliatone/go-mealform/pkg/renderers/tui"
)

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [key]",
		Short: "Create a meal, or edit an existing one, interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			key := host.NewKey
			if len(args) == 1 {
				key = args[0]
			}

			session := a.session(cmd)
			if err := a.editMeal(cmd, session, key); err != nil {
				return err
			}
			return a.maybeDump(cmd)
		},
	}
	cmd.Flags().Bool("dump", false, "Print the resulting entries as YAML")
	return cmd
}

func (a *app) session(cmd *cobra.Command) *tui.Renderer {
	return tui.New(tui.WithOutput(cmd.OutOrStdout()))
}

func (a *app) renderOptions() render.RenderOptions {
	return render.RenderOptions{
		BasePath: a.cfg.BasePath,
		Theme:    a.cfg.RendererTheme(),
	}
}

func (a *app) editMeal(cmd *cobra.Command, session *tui.Renderer, key string) error {
	syncer, err := a.host.Form(key)
	if err != nil {
		return err
	}
	outcome, err := session.EditMeal(cmd.Context(), key, syncer, a.renderOptions())
	if err != nil {
		return err
	}
	a.logger.Info("edit finished", "key", key, "outcome", outcome)
	return nil
}

func (a *app) maybeDump(cmd *cobra.Command) error {
	dump, err := cmd.Flags().GetBool("dump")
	if err != nil {
		return err
	}
	if !dump {
		return nil
	}
	return dumpEntries(cmd.OutOrStdout(), a.host)
}

// dumpEntries writes the store in the config "entries" format so the output
// can seed a later run.
func dumpEntries(w io.Writer, h *host.Container) error {
	entries := h.Entries()
	payloads := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		payloads = append(payloads, entity.Encode(e))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{"entries": payloads}); err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	return enc.Close()
}
