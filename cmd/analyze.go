// File: cmd/analyze.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nachiketsane1912/habit-impact-coach/api/schemas"
	"github.com/nachiketsane1912/habit-impact-coach/internal/insight"
)

func newAnalyzeCmd() *cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Ask the reasoning service which habits drive your outcomes",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return viper.BindPFlag("insight.window_size", cmd.Flags().Lookup("window"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := cmdLogger("analyze")

			engine, client, err := newEngine(logger)
			if err != nil {
				return err
			}
			defer client.Close()

			s, state, err := openState(ctx, logger)
			if err != nil {
				return err
			}
			defer s.Close()

			windowSize := viper.GetInt("insight.window_size")
			runner := insight.NewRunner(engine, windowSize, logger)

			logger.Info("Requesting driver analysis.", zap.Int("windowSize", windowSize))
			insights, err := runner.Analyze(ctx, state.Logs())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Causal drivers over the last %d logs:\n\n", windowSize)
			for _, ci := range insights {
				fmt.Fprintf(out, "%s %s (confidence %d%%)\n", impactMarker(ci.ImpactType), ci.Factor, ci.ConfidenceScore)
				fmt.Fprintf(out, "    %s\n", ci.Description)
				fmt.Fprintf(out, "    Recommendation: %s\n\n", ci.Recommendation)
			}
			return nil
		},
	}

	analyzeCmd.Flags().Int("window", insight.DefaultWindowSize, "number of most recent logs to analyze")
	return analyzeCmd
}

func impactMarker(t schemas.ImpactType) string {
	switch t {
	case schemas.ImpactPositive:
		return "[+]"
	case schemas.ImpactNegative:
		return "[-]"
	default:
		return "[=]"
	}
}
