// Package bootstrap wires the campaign engine's collaborators together
// for the api and worker processes.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/mlazarev/campaign-engine/internal/config"
	"github.com/mlazarev/campaign-engine/internal/core/ports"
	"github.com/mlazarev/campaign-engine/internal/core/usecase"
	"github.com/mlazarev/campaign-engine/internal/infrastructure/export/excel"
	"github.com/mlazarev/campaign-engine/internal/infrastructure/llm/gemini"
	"github.com/mlazarev/campaign-engine/internal/infrastructure/queue/nats"
	"github.com/mlazarev/campaign-engine/internal/infrastructure/resilience"
	"github.com/mlazarev/campaign-engine/internal/infrastructure/website"
	"github.com/mlazarev/campaign-engine/internal/observability/logging"
	"github.com/mlazarev/campaign-engine/internal/observability/metrics"
	"github.com/mlazarev/campaign-engine/internal/taxonomy"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Credentials *config.CredentialStore
	Queue       *nats.Queue
	Exporter    ports.ResultExporter
	Workflow    ports.CampaignGenerator
	Metrics     *metrics.WorkflowMetrics

	closeFn func()
}

func New(service string, cfg config.Config) (*App, error) {
	logger := logging.NewJSONLogger(service, cfg.LogLevel)
	slog.SetDefault(logger)

	table, err := taxonomy.Default()
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}

	credentials := config.NewCredentialStore()
	credentials.Seed(gemini.CredentialName, cfg.GeminiAPIKey)

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	extractor := website.New(table, website.Options{
		FetchTimeout: cfg.FetchTimeout(),
		RatePerSec:   cfg.FetchRatePerSecond,
		Burst:        cfg.FetchBurst,
		Executor:     executor,
		Logger:       logger,
	})

	generator := gemini.NewGenerator(credentials, cfg.GeminiModel, executor)

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init campaign queue: %w", err)
	}

	workflowMetrics := metrics.NewWorkflowMetrics(service)

	resolver := usecase.NewProfileResolver(table, extractor)
	deriver := usecase.NewGuidanceDeriver(table)
	hashtags := usecase.NewHashtagGenerator(table)
	workflow := usecase.NewWorkflowExecutor(resolver, deriver, hashtags, generator, cfg.DefaultPostCount, workflowMetrics, logger)

	return &App{
		Config:      cfg,
		Logger:      logger,
		Credentials: credentials,
		Queue:       queue,
		Exporter:    excel.NewExporter(cfg.ExportPath),
		Workflow:    workflow,
		Metrics:     workflowMetrics,

		closeFn: func() {
			queue.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
