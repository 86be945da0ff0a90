package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mlazarev/campaign-engine/internal/bootstrap"
	"github.com/mlazarev/campaign-engine/internal/config"
	"github.com/mlazarev/campaign-engine/internal/core/domain"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("could not load .env file: %v", err)
	}

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New("worker", cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: app.Metrics.Handler(),
	}
	go func() {
		log.Printf("worker metrics listening on :%s", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("worker metrics server error: %v", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	log.Printf("worker subscribed to %s", cfg.NATSSubject)
	err = app.Queue.SubscribeCampaignRequested(ctx, func(handlerCtx context.Context, req domain.CampaignRequest) error {
		if !req.EnqueuedAt.IsZero() {
			app.Metrics.ObserveQueueLag(time.Since(req.EnqueuedAt))
		}

		runCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		result := app.Workflow.Run(runCtx, req)
		if !result.Success {
			app.Logger.Error("campaign run failed",
				"campaign_id", result.CampaignID,
				"error", result.Error,
			)
			return nil
		}

		path, err := app.Exporter.Export(runCtx, result)
		if err != nil {
			app.Logger.Error("campaign export failed",
				"campaign_id", result.CampaignID,
				"error", err,
			)
			return err
		}
		app.Logger.Info("campaign exported",
			"campaign_id", result.CampaignID,
			"path", path,
			"items", len(result.GeneratedContent),
		)
		return nil
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
