// File: cmd/habitcoach/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/nachiketsane1912/habit-impact-coach/cmd"
	"github.com/nachiketsane1912/habit-impact-coach/internal/observability"
)

func main() {
	// Listen for interrupt signals so a long reasoning call shuts down cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cmd.Execute(ctx)
	observability.Sync()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
