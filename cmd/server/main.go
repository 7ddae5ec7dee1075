package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/inmilk/internal/bootstrap"
	"github.com/mamadbah2/inmilk/internal/config"
	"github.com/mamadbah2/inmilk/internal/scheduler"
	"github.com/mamadbah2/inmilk/internal/server/handlers"
	"github.com/mamadbah2/inmilk/internal/server/router"
	"github.com/mamadbah2/inmilk/internal/service/downloads"
	"github.com/mamadbah2/inmilk/pkg/logger"
	"github.com/mamadbah2/inmilk/web"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	renderer, closeRenderer, err := bootstrap.NewRenderer(context.Background(), cfg.Report, baseLogger.Named("reporting"))
	if err != nil {
		baseLogger.Fatal("failed to init report renderer", zap.Error(err))
	}
	defer closeRenderer()

	archive, closeArchive, err := bootstrap.NewArchive(context.Background(), cfg, baseLogger.Named("repo"))
	if err != nil {
		baseLogger.Fatal("failed to init simulation archive", zap.Error(err))
	}
	defer closeArchive()

	store := downloads.NewStore()

	simulationSvc, err := bootstrap.NewSimulationService(cfg.Report, renderer, store, archive, baseLogger.Named("svc.simulation"))
	if err != nil {
		baseLogger.Fatal("failed to init simulation service", zap.Error(err))
	}

	templates, err := web.Templates()
	if err != nil {
		baseLogger.Fatal("failed to parse page templates", zap.Error(err))
	}

	calculatorHandler := handlers.NewCalculatorHandler(simulationSvc, store, baseLogger.Named("handlers.calculator"))
	engine := router.New(calculatorHandler, templates, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Report.SweepSchedule, store, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Report.ConvertTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("renderer", renderer.Name()),
			zap.String("language", cfg.Report.Language))
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
