package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-mealform/pkg/listitem"
	"github.com/goliatone/go-mealform/pkg/orchestrator"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "list [meals|workouts]",
		Short:     "List entries, optionally reviewing them interactively",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{listitem.SegmentMeals, listitem.SegmentWorkouts},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			segment := ""
			if len(args) == 1 {
				segment = args[0]
			}

			interactive, err := cmd.Flags().GetBool("interactive")
			if err != nil {
				return err
			}
			if !interactive {
				out, err := a.orchestrator().RenderList(cmd.Context(), a.host, orchestrator.Request{
					Renderer: "tui",
					Segment:  segment,
				})
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out.Body)
				return err
			}

			session := a.session(cmd)
			for {
				rows, err := a.host.Rows(segment)
				if err != nil {
					return err
				}
				route, err := session.ReviewList(cmd.Context(), "", rows, a.renderOptions())
				if err != nil {
					return err
				}
				if route == nil {
					break
				}
				if route.Segment != listitem.SegmentMeals {
					a.logger.Info("workouts are read-only", "key", route.Key)
					continue
				}
				if err := a.editMeal(cmd, session, route.Key); err != nil {
					return err
				}
			}
			return a.maybeDump(cmd)
		},
	}
	cmd.Flags().BoolP("interactive", "i", false, "Open, edit and delete entries interactively")
	cmd.Flags().Bool("dump", false, "Print the resulting entries as YAML")
	return cmd
}
