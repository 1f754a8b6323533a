package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"blog_autopost/internal/domain"
)

const (
	exitAlreadyPosted = 10
	exitNoContent     = 11
)

// exitError carries a non-zero exit code for a run that ended without a post.
type exitError struct {
	code   int
	status domain.RunStatus
}

func (e *exitError) Error() string {
	return fmt.Sprintf("run finished with status %s", e.status)
}

// statusError maps a run status to its exit error. Posted runs map to nil.
func statusError(status domain.RunStatus) error {
	switch status {
	case domain.RunSkippedAlreadyPosted:
		return &exitError{code: exitAlreadyPosted, status: status}
	case domain.RunSkippedNoContent:
		return &exitError{code: exitNoContent, status: status}
	default:
		return nil
	}
}

// fixedDay parses a YYYY-MM-DD override into a clock pinned to that day.
func fixedDay(value string, loc *time.Location) (func() time.Time, error) {
	day, err := time.ParseInLocation(domain.DateLayout, value, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid --date %q: %w", value, err)
	}
	return func() time.Time { return day }, nil
}

func runCmd(configPath *string) *cobra.Command {
	var date string
	var exitCodes bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			var now func() time.Time
			if date != "" {
				if now, err = fixedDay(date, cfg.Location()); err != nil {
					return err
				}
			}

			a, err := newApp(ctx, cfg, now)
			if err != nil {
				return err
			}
			defer a.Close()

			runCtx, cancel := context.WithTimeout(ctx, a.cfg.Schedule.RunTimeout)
			defer cancel()

			result, err := a.pipeline.Run(runCtx)
			if err != nil {
				a.logger.Error("pipeline run failed", "error", err)
				return err
			}

			if exitCodes {
				return statusError(result.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "run for this day (YYYY-MM-DD) instead of today")
	cmd.Flags().BoolVar(&exitCodes, "exit-codes", false, "exit 10 when already posted and 11 when no news was found")
	return cmd
}
