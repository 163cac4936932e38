// File: cmd/intervention.go
package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nachiketsane1912/habit-impact-coach/api/schemas"
)

func newInterventionCmd() *cobra.Command {
	ivCmd := &cobra.Command{
		Use:     "intervention",
		Aliases: []string{"iv"},
		Short:   "Track behavior change events",
	}
	ivCmd.AddCommand(newInterventionAddCmd(), newInterventionListCmd())
	return ivCmd
}

func newInterventionAddCmd() *cobra.Command {
	var (
		start       string
		description string
	)

	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Start tracking a behavior change from a given date",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := cmdLogger("intervention.add")

			s, state, err := openState(ctx, logger)
			if err != nil {
				return err
			}
			defer s.Close()

			iv := schemas.HabitIntervention{
				ID:          uuid.NewString(),
				Name:        strings.Join(args, " "),
				Description: description,
				StartDate:   start,
			}
			if err := state.AppendIntervention(ctx, iv); err != nil {
				return err
			}

			logger.Info("Intervention recorded.", zap.String("name", iv.Name), zap.String("startDate", iv.StartDate))
			fmt.Fprintf(cmd.OutOrStdout(), "Tracking %q starting %s.\n", iv.Name, iv.StartDate)
			return nil
		},
	}

	addCmd.Flags().StringVar(&start, "start", today(), "start date of the change (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&description, "description", "", "optional details about the change")
	return addCmd
}

func newInterventionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show tracked behavior changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := cmdLogger("intervention.list")

			s, state, err := openState(ctx, logger)
			if err != nil {
				return err
			}
			defer s.Close()

			ivs := state.Interventions()
			if len(ivs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No interventions tracked yet.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "START\tNAME\tDESCRIPTION")
			for _, iv := range ivs {
				fmt.Fprintf(w, "%s\t%s\t%s\n", iv.StartDate, iv.Name, iv.Description)
			}
			return w.Flush()
		},
	}
}
