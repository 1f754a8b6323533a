package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"blog_autopost/internal/scheduler"
)

func scheduleCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run the pipeline on the configured cron schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			a, err := newApp(ctx, cfg, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				select {
				case sig := <-sigCh:
					a.logger.Info("received shutdown signal", "signal", sig)
					cancel()
				case <-ctx.Done():
				}
			}()

			sched := scheduler.NewScheduler(a.pipeline, scheduler.Config{
				Spec:       cfg.Schedule.Cron,
				Location:   cfg.Location(),
				RunTimeout: cfg.Schedule.RunTimeout,
				RunOnStart: cfg.Schedule.RunOnStart,
			}, a.logger)

			if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Error("scheduler error", "error", err)
				return err
			}
			return nil
		},
	}
}
