package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tracklet/tracklet/config"
	"github.com/tracklet/tracklet/internal/http/chi"
	"github.com/tracklet/tracklet/metrics"
	"github.com/tracklet/tracklet/subscriptions"
	"github.com/tracklet/tracklet/tracker"
	trackerredis "github.com/tracklet/tracklet/tracker/redis"
	"github.com/tracklet/tracklet/webhook"
	"github.com/tracklet/tracklet/webhook/payload"
	webhookredis "github.com/tracklet/tracklet/webhook/redis"
)

const TIMEOUT = 30 * time.Second

/*
 * main wires the layers together: storage, business services, the delivery
 * pipeline and the HTTP surface. Imports flow in one direction only, the
 * application imports business layers, which import the storage layer.
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	whRepo, err := webhookredis.NewRepository(cfg.GetRedisAddr(), cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer whRepo.Close(ctx)
	trRepo := trackerredis.NewRepositoryWithClient(whRepo.GetClient())

	// Delivery pipeline: dispatcher -> queue -> executor, plus the retry sweeper
	executor := webhook.NewExecutor(whRepo, logger)
	queue := webhook.NewQueue(executor, cfg.GetWebhookQueueSize(), cfg.GetWebhookWorkers(), logger)
	queue.Start(ctx)

	trackerService := tracker.NewService(trRepo, nil)
	dispatcher := webhook.NewDispatcher(whRepo, payload.NewBuilder(trackerService), queue, logger)
	trackerService.Events = dispatcher

	sweeper := webhook.NewSweeper(whRepo, queue, cfg.GetWebhookSweepInterval(), logger)
	go sweeper.Run(ctx)

	webhookService := webhook.NewService(whRepo)

	if cfg.WebhooksFile != "" {
		loader := subscriptions.NewLoader()
		if err := loader.Load(cfg.WebhooksFile); err != nil {
			fmt.Println(err)
			return
		}
		if err := loader.Seed(ctx, webhookService); err != nil {
			fmt.Println(err)
			return
		}
	}

	collector := metrics.NewRedisCollector(whRepo.GetClient(), queue.Len)
	exporter, err := metrics.NewOTelExporter(collector)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer exporter.Shutdown(context.Background())

	r := chi.Handlers(ctx, trackerService, webhookService, exporter.ServeHTTP())
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.GetPort(),
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	fmt.Printf("Listening on port %s\n", cfg.GetPort())
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
		return
	}

	// drain queued deliveries before releasing the store
	drainCtx, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	if err := queue.Stop(drainCtx); err != nil {
		fmt.Println(err)
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("forcing closing the server")
	}
}
