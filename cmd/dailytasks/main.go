package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"daily-tasks/internal/clock"
	"daily-tasks/internal/config"
	httpapi "daily-tasks/internal/http"
	"daily-tasks/internal/http/handlers"
	"daily-tasks/internal/notify"
	"daily-tasks/internal/repository"
	"daily-tasks/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := config.NewLogger(cfg.LogMode)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := repository.NewDB(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	clk := clock.New()

	taskRepo := repository.NewTaskRepository(db)
	masterRepo := repository.NewRecurringTaskRepository(db)
	pointsRepo := repository.NewPointsRepository(db)
	runRepo := repository.NewSchedulerRunRepository(db)
	memoRepo := repository.NewMemoRepository(db)

	generator := service.NewDailyGenerator(db, masterRepo, taskRepo, logger)
	ledger := service.NewPointsLedger(db, pointsRepo, taskRepo, masterRepo, clk, logger)
	taskSvc := service.NewTaskService(taskRepo, ledger, clk, cfg.DefaultUserID, logger)
	recurringSvc := service.NewRecurringService(db, masterRepo, taskRepo, logger)
	memoSvc := service.NewMemoService(memoRepo)

	var notifier service.RunNotifier
	if cfg.TelegramToken != "" {
		telegram, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, logger)
		if err != nil {
			logger.Warn("telegram notifier disabled", zap.Error(err))
		} else {
			notifier = service.NewReminderService(taskRepo, telegram)
		}
	}

	scheduler, err := service.NewDailyScheduler(generator, runRepo, notifier, clk, logger)
	if err != nil {
		logger.Fatal("failed to build scheduler", zap.Error(err))
	}
	if cfg.SchedulerEnabled {
		scheduler.Start()
	}
	defer scheduler.Stop()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	router := httpapi.NewRouter(logger, httpapi.Handlers{
		Health:    handlers.NewHealthHandler(db),
		Tasks:     handlers.NewTaskHandler(taskSvc, generator, clk, logger),
		Recurring: handlers.NewRecurringHandler(recurringSvc, logger),
		Scheduler: handlers.NewSchedulerHandler(scheduler, logger),
		Points:    handlers.NewPointsHandler(ledger, cfg.DefaultUserID, logger),
		Memos:     handlers.NewMemoHandler(memoSvc, logger),
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", zap.String("addr", cfg.HTTPAddr), zap.String("today", clk.Today().String()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
