package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/ledgerkeep/ledgerkeep/internal/app"
	"github.com/ledgerkeep/ledgerkeep/internal/billing"
	"github.com/ledgerkeep/ledgerkeep/internal/company"
	"github.com/ledgerkeep/ledgerkeep/internal/platform/db"
	"github.com/ledgerkeep/ledgerkeep/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	companyRepo := company.NewRepository(pool)
	billingRepo := billing.NewRepository(pool)
	billingService := billing.NewService(companyRepo, billingRepo, cfg.PlatformOwnerTitle, cfg.MonthlyFeeAmount(), nil)

	generateTask, err := jobs.NewGenerateMonthlyPaymentsTask()
	if err != nil {
		logger.Error("build payment generation task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskGenerateMonthlyPayments, Handler: jobs.NewGenerateMonthlyPaymentsHandler(billingService, logger)},
		},
		Cron: []jobs.CronRegistration{
			{Spec: jobs.CronMonthlyPayments, Task: generateTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
