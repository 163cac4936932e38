// File: cmd/simulate.go
package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nachiketsane1912/habit-impact-coach/internal/simulate"
)

func newSimulateCmd() *cobra.Command {
	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Chat with the counterfactual simulator about what-if scenarios",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return viper.BindPFlag("simulation.context_window", cmd.Flags().Lookup("context"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := cmdLogger("simulate")

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

			contextWindow := viper.GetInt("simulation.context_window")
			session := simulate.NewSession(engine, state.Logs(), contextWindow, logger)
			logger.Info("Simulation session opened.", zap.Int("contextWindow", contextWindow))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "simulator > %s\n", simulate.Greeting)
			fmt.Fprintln(out, `Type "exit" or "quit" to leave.`)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "you > ")
				if !scanner.Scan() {
					break // EOF (Ctrl+D)
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					break
				}

				reply, err := session.Ask(ctx, line)
				if err != nil {
					fmt.Fprintln(out, "Error:", err)
					continue
				}
				fmt.Fprintf(out, "simulator > %s\n", reply.Text)
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			fmt.Fprintln(out, "Leaving the simulator.")
			return nil
		},
	}

	simulateCmd.Flags().Int("context", simulate.DefaultContextWindow, "number of most recent logs shared with the simulator")
	return simulateCmd
}
