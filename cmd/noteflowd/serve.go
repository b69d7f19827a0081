package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"noteflow/internal/httpapi"
	"noteflow/internal/publisher"
	"noteflow/internal/scheduler"
)

const (
	runTimeout     = 5 * time.Minute
	publishTimeout = 5 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the schedulers and the admin HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ingestSched := scheduler.New(a.ingest, scheduler.Options{
		StartupDelay: a.cfg.Ingestion.StartupDelay,
		Interval:     a.cfg.Ingestion.Interval,
		RunTimeout:   runTimeout,
	}, a.logger)

	var cleanupSched *scheduler.Scheduler
	if a.cfg.Cleanup.IsEnabled() {
		cleanupSched = scheduler.New(a.cleanup, scheduler.Options{
			StartupDelay: a.cfg.Cleanup.StartupDelay,
			Interval:     a.cfg.Cleanup.Interval(),
			RunTimeout:   runTimeout,
		}, a.logger)
	} else {
		a.logger.Info("retention cleanup disabled, scheduler not started")
	}

	if a.cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        a.cfg.RabbitMQ.URL,
			Exchange:   a.cfg.RabbitMQ.Exchange,
			RoutingKey: a.cfg.RabbitMQ.RoutingKey,
			QueueName:  a.cfg.RabbitMQ.QueueName,
		}, a.logger)
		if err != nil {
			return err
		}
		defer rabbitMQ.Close()

		observe := rabbitMQ.Observer(ctx, publishTimeout)
		ingestSched.Subscribe(observe)
		if cleanupSched != nil {
			cleanupSched.Subscribe(observe)
		}
	}

	server := httpapi.New(httpapi.Config{
		Addr:       a.cfg.HTTP.Addr,
		AdminToken: a.cfg.HTTP.AdminToken,
	}, a.ingest, a.cleanup, a.logger)

	a.logger.Info("starting noteflowd",
		"ingest_interval", a.cfg.Ingestion.Interval,
		"cleanup_enabled", a.cfg.Cleanup.IsEnabled(),
		"http_addr", a.cfg.HTTP.Addr,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ingestSched.Start(gctx) })
	if cleanupSched != nil {
		g.Go(func() error { return cleanupSched.Start(gctx) })
	}
	g.Go(func() error { return server.Start(gctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	a.logger.Info("shutdown complete")
	return nil
}
