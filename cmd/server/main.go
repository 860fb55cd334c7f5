package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/partyops/jumpkitchen/internal/config"
	"github.com/partyops/jumpkitchen/internal/extraction"
	"github.com/partyops/jumpkitchen/internal/pdf"
	"github.com/partyops/jumpkitchen/internal/repository"
	"github.com/partyops/jumpkitchen/internal/repository/memory"
	"github.com/partyops/jumpkitchen/internal/repository/mongodb"
	"github.com/partyops/jumpkitchen/internal/repository/sheets"
	"github.com/partyops/jumpkitchen/internal/scheduler"
	"github.com/partyops/jumpkitchen/internal/server/handlers"
	"github.com/partyops/jumpkitchen/internal/server/router"
	schedulesvc "github.com/partyops/jumpkitchen/internal/service/schedule"
	"github.com/partyops/jumpkitchen/pkg/clients/notify"
	"github.com/partyops/jumpkitchen/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var store repository.ScheduleStore
	if cfg.MongoDB.URI != "" {
		mongoStore, err := mongodb.NewStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
		}
		defer func() {
			if err := mongoStore.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		store = mongoStore
	} else {
		baseLogger.Warn("no mongodb uri configured, using in-memory store")
		store = memory.NewStore()
	}

	var exporter schedulesvc.Exporter
	if cfg.Sheets.Enabled() {
		sheetsExporter, err := sheets.NewExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		exporter = sheetsExporter
	} else {
		baseLogger.Info("sheets export disabled")
	}

	var notifier notify.Notifier = notify.Nop{}
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewClient(cfg.Notify)
		baseLogger.Info("webhook notifications enabled")
	}

	extractor := extraction.New(extraction.Options{
		EventKeyword:       cfg.Extraction.EventKeyword,
		WindowBefore:       cfg.Extraction.WindowBefore,
		WindowAfter:        cfg.Extraction.WindowAfter,
		Pairing:            extraction.PairingStrategy(cfg.Extraction.Pairing),
		ApplyHourExtension: cfg.Extraction.ApplyHourExtension,
	})

	textSource := pdf.NewParser(baseLogger.Named("pdf"))
	svc := schedulesvc.NewService(store, extractor, textSource, exporter, notifier, cfg.Kitchen.Cap, baseLogger.Named("svc.schedule"))
	handler := handlers.NewScheduleHandler(svc, baseLogger.Named("handlers.schedule"))
	engine := router.New(handler, cfg.Server.WebDir, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Jobs, svc, cfg.Sheets.Enabled(), baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
