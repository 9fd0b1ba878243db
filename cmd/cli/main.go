package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tracklet/tracklet/config"
	"github.com/tracklet/tracklet/tracker"
	trackerredis "github.com/tracklet/tracklet/tracker/redis"
	"github.com/tracklet/tracklet/webhook"
	"github.com/tracklet/tracklet/webhook/payload"
	webhookredis "github.com/tracklet/tracklet/webhook/redis"
)

/*
 * Command line interface for the timer. Every command builds the same
 * pipeline as the API server, with a single delivery worker, and drains
 * the queue before exiting so fired events reach their webhooks.
 */

type app struct {
	whRepo  *webhookredis.Repository
	tracker *tracker.Service
	queue   *webhook.Queue
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	whRepo, err := webhookredis.NewRepository(cfg.GetRedisAddr(), cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, err
	}
	trRepo := trackerredis.NewRepositoryWithClient(whRepo.GetClient())

	executor := webhook.NewExecutor(whRepo, logger)
	queue := webhook.NewQueue(executor, 16, 1, logger)
	queue.Start(ctx)

	trackerService := tracker.NewService(trRepo, nil)
	dispatcher := webhook.NewDispatcher(whRepo, payload.NewBuilder(trackerService), queue, logger)
	trackerService.Events = dispatcher

	return &app{
		whRepo:  whRepo,
		tracker: trackerService,
		queue:   queue,
	}, nil
}

func (a *app) close(ctx context.Context) {
	drainCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := a.queue.Stop(drainCtx); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	a.whRepo.Close(ctx)
}

func main() {
	root := &cobra.Command{
		Use:   "tracklet",
		Short: "Track time against clients and projects",
	}

	root.AddCommand(startCmd(), stopCmd(), statusCmd(), webhooksCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func startCmd() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "start <project-id>",
		Short: "Start the timer on a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			e, err := a.tracker.Start(ctx, args[0], description)
			if err != nil {
				return err
			}
			fmt.Printf("Timer started on %s at %s\n", e.ProjectID, e.StartedAt.Format(time.Kitchen))
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "what you are working on")
	return cmd
}

func stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			e, err := a.tracker.Stop(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Stopped after %s\n", e.Duration().Round(time.Minute))
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			e, err := a.tracker.Current(ctx)
			if err != nil {
				if err == tracker.ErrNoTimer {
					fmt.Println("No timer running")
					return nil
				}
				return err
			}
			fmt.Printf("Running on %s for %s: %s\n", e.ProjectID, e.Duration().Round(time.Second), e.Description)
			return nil
		},
	}
}

func webhooksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "webhooks",
		Short: "List configured webhooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			svc := webhook.NewService(a.whRepo)
			configs, err := svc.List(ctx)
			if err != nil {
				return err
			}
			for _, cfg := range configs {
				state := "inactive"
				if cfg.Active {
					state = "active"
				}
				fmt.Printf("%s\t%s\t%s\t%d events\n", cfg.ID, cfg.Name, state, len(cfg.Events))
			}
			return nil
		},
	}
}
