package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-mealform/pkg/orchestrator"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render (form [key] | list [segment])",
		Short: "Render a form or list once and print it",
		Example: `  mealform render form            # blank create form
  mealform render form 3f2a...    # existing meal
  mealform render list workouts --renderer tui`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			rendererName, err := flags.GetString("renderer")
			if err != nil {
				return err
			}
			output, err := flags.GetString("output")
			if err != nil {
				return err
			}
			document, err := flags.GetBool("document")
			if err != nil {
				return err
			}
			title, err := flags.GetString("title")
			if err != nil {
				return err
			}

			req := orchestrator.Request{
				Renderer: rendererName,
				Document: document,
				Title:    title,
			}
			orch := a.orchestrator()

			var out orchestrator.Output
			switch args[0] {
			case "form":
				if len(args) > 1 {
					req.Key = args[1]
				}
				out, err = orch.RenderForm(cmd.Context(), a.host, req)
			case "list":
				if len(args) > 1 {
					req.Segment = args[1]
				}
				out, err = orch.RenderList(cmd.Context(), a.host, req)
			default:
				return fmt.Errorf("unknown view %q (want form or list)", args[0])
			}
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, out.Body, 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				a.logger.Info("rendered", "view", args[0], "output", output, "content_type", out.ContentType)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(out.Body)
			return err
		},
	}
	cmd.Flags().StringP("renderer", "r", "", "Renderer to use (vanilla, tui)")
	cmd.Flags().StringP("output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().Bool("document", false, "Wrap HTML output in a full document")
	cmd.Flags().String("title", "", "Page title")
	return cmd
}
