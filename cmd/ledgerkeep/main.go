package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/app"
	"github.com/ledgerkeep/ledgerkeep/internal/billing"
	"github.com/ledgerkeep/ledgerkeep/internal/catalog"
	"github.com/ledgerkeep/ledgerkeep/internal/company"
	"github.com/ledgerkeep/ledgerkeep/internal/invoice"
	"github.com/ledgerkeep/ledgerkeep/internal/partners"
	"github.com/ledgerkeep/ledgerkeep/internal/platform/cache"
	"github.com/ledgerkeep/ledgerkeep/internal/platform/db"
	"github.com/ledgerkeep/ledgerkeep/internal/reporting"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	// Reports still render without redis, every request just hits postgres.
	var reportCache *reporting.Cache
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, report caching disabled", slog.Any("error", err))
	} else {
		reportCache = reporting.NewCache(redisClient, cfg.ReportCacheTTL)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	companyRepo := company.NewRepository(pool)

	catalogRepo := catalog.NewRepository(pool)
	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	invoiceRepo := invoice.NewRepository(pool)
	invoiceService := invoice.NewService(invoiceRepo, catalogService, nil)
	invoiceHandler := invoice.NewHandler(logger, invoiceService)

	partnersRepo := partners.NewRepository(pool)
	partnersService := partners.NewService(partnersRepo)
	partnersHandler := partners.NewHandler(logger, partnersService)

	billingRepo := billing.NewRepository(pool)
	billingService := billing.NewService(companyRepo, billingRepo, cfg.PlatformOwnerTitle, cfg.MonthlyFeeAmount(), nil)
	billingHandler := billing.NewHandler(logger, billingService)

	reportingRepo := reporting.NewRepository(pool)
	reportingService := reporting.NewService(reportingRepo, companyRepo, catalogService, reportCache, nil)
	reportingHandler := reporting.NewHandler(logger, reportingService)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		CatalogHandler:   catalogHandler,
		InvoiceHandler:   invoiceHandler,
		PartnersHandler:  partnersHandler,
		BillingHandler:   billingHandler,
		ReportingHandler: reportingHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
