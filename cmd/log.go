// File: cmd/log.go
package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nachiketsane1912/habit-impact-coach/api/schemas"
	"github.com/nachiketsane1912/habit-impact-coach/internal/extract"
)

// defaultLog carries the same field defaults as the daily entry form, so a
// journal note only has to mention what differed from an ordinary day.
func defaultLog(date string) schemas.DailyLog {
	return schemas.DailyLog{
		ID:                 uuid.NewString(),
		Date:               date,
		CaffeineIntake:     200,
		CaffeineCutoffHour: 14,
		ScreenTimeMinutes:  120,
		ExerciseMinutes:    30,
		MeditationMinutes:  0,
		WeatherCondition:   schemas.WeatherSunny,
		IsWorkDay:          true,
		SleepQuality:       7,
		EnergyLevel:        7,
		StressLevel:        5,
	}
}

func newLogCmd() *cobra.Command {
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Record and inspect daily habit logs",
	}
	logCmd.AddCommand(newLogAddCmd(), newLogListCmd(), newLogNoteCmd())
	return logCmd
}

func newLogAddCmd() *cobra.Command {
	var (
		date       string
		caffeine   int
		cutoff     int
		screen     int
		exercise   int
		meditation int
		weather    string
		workday    bool
		sleep      int
		energy     int
		stress     float64
	)

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Append a fully specified log for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := cmdLogger("log.add")

			s, state, err := openState(ctx, logger)
			if err != nil {
				return err
			}
			defer s.Close()

			entry := schemas.DailyLog{
				ID:                 uuid.NewString(),
				Date:               date,
				CaffeineIntake:     caffeine,
				CaffeineCutoffHour: cutoff,
				ScreenTimeMinutes:  screen,
				ExerciseMinutes:    exercise,
				MeditationMinutes:  meditation,
				WeatherCondition:   schemas.WeatherCondition(weather),
				IsWorkDay:          workday,
				SleepQuality:       sleep,
				EnergyLevel:        energy,
				StressLevel:        stress,
			}
			if err := state.AppendLog(ctx, entry); err != nil {
				return err
			}

			logger.Info("Log recorded.", zap.String("date", entry.Date), zap.String("id", entry.ID))
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded log for %s (%s).\n", entry.Date, entry.ID)
			return nil
		},
	}

	defaults := defaultLog("")
	addCmd.Flags().StringVar(&date, "date", today(), "calendar date of the log (YYYY-MM-DD)")
	addCmd.Flags().IntVar(&caffeine, "caffeine", defaults.CaffeineIntake, "caffeine intake in mg")
	addCmd.Flags().IntVar(&cutoff, "cutoff", defaults.CaffeineCutoffHour, "hour of last caffeine, 0-24")
	addCmd.Flags().IntVar(&screen, "screen", defaults.ScreenTimeMinutes, "screen time in minutes")
	addCmd.Flags().IntVar(&exercise, "exercise", defaults.ExerciseMinutes, "exercise in minutes")
	addCmd.Flags().IntVar(&meditation, "meditation", defaults.MeditationMinutes, "meditation in minutes")
	addCmd.Flags().StringVar(&weather, "weather", string(defaults.WeatherCondition), "weather: Sunny, Cloudy, Rainy or Snowy")
	addCmd.Flags().BoolVar(&workday, "workday", defaults.IsWorkDay, "whether this was a work day")
	addCmd.Flags().IntVar(&sleep, "sleep", defaults.SleepQuality, "sleep quality score, 1-10")
	addCmd.Flags().IntVar(&energy, "energy", defaults.EnergyLevel, "energy level score, 1-10")
	addCmd.Flags().Float64Var(&stress, "stress", defaults.StressLevel, "stress level score, 1-10")
	return addCmd
}

func newLogListCmd() *cobra.Command {
	var last int

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show the most recent logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := cmdLogger("log.list")

			s, state, err := openState(ctx, logger)
			if err != nil {
				return err
			}
			defer s.Close()

			logs := state.Logs()
			if last > 0 && len(logs) > last {
				logs = logs[len(logs)-last:]
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tCAFFEINE\tCUTOFF\tEXERCISE\tMEDITATION\tSCREEN\tWEATHER\tWORKDAY\tSLEEP\tENERGY\tSTRESS")
			for _, l := range logs {
				fmt.Fprintf(w, "%s\t%dmg\t%02d:00\t%dm\t%dm\t%dm\t%s\t%t\t%d\t%d\t%.1f\n",
					l.Date, l.CaffeineIntake, l.CaffeineCutoffHour, l.ExerciseMinutes,
					l.MeditationMinutes, l.ScreenTimeMinutes, l.WeatherCondition,
					l.IsWorkDay, l.SleepQuality, l.EnergyLevel, l.StressLevel)
			}
			return w.Flush()
		},
	}

	listCmd.Flags().IntVar(&last, "last", 7, "number of most recent logs to show, 0 for all")
	return listCmd
}

func newLogNoteCmd() *cobra.Command {
	var date string

	noteCmd := &cobra.Command{
		Use:   "note [journal text]",
		Short: "Record a log from a free-text journal entry",
		Long: `Sends the journal text to the reasoning service, extracts the habit fields
it mentions, and fills the rest from the ordinary-day defaults.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := cmdLogger("log.note")

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

			text := strings.Join(args, " ")
			draft, err := extract.NewNormalizer(engine, logger).Normalize(ctx, text)
			if err != nil {
				return err
			}

			entry := draft.Overlay(defaultLog(date))
			if err := state.AppendLog(ctx, entry); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded log for %s from journal entry.\n", entry.Date)
			fmt.Fprintf(cmd.OutOrStdout(), "  caffeine %dmg, cutoff %02d:00, exercise %dm, meditation %dm, sleep %d, energy %d, stress %.1f\n",
				entry.CaffeineIntake, entry.CaffeineCutoffHour, entry.ExerciseMinutes,
				entry.MeditationMinutes, entry.SleepQuality, entry.EnergyLevel, entry.StressLevel)
			return nil
		},
	}

	noteCmd.Flags().StringVar(&date, "date", today(), "calendar date of the log (YYYY-MM-DD)")
	return noteCmd
}
