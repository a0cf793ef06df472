package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/wayfare/internal/analytics"
	analyticsStore "github.com/MrJamesThe3rd/wayfare/internal/analytics/store"
	"github.com/MrJamesThe3rd/wayfare/internal/auth"
	authStore "github.com/MrJamesThe3rd/wayfare/internal/auth/store"
	"github.com/MrJamesThe3rd/wayfare/internal/billing"
	billingStore "github.com/MrJamesThe3rd/wayfare/internal/billing/store"
	"github.com/MrJamesThe3rd/wayfare/internal/clock"
	"github.com/MrJamesThe3rd/wayfare/internal/config"
	"github.com/MrJamesThe3rd/wayfare/internal/database"
	wayfareHttp "github.com/MrJamesThe3rd/wayfare/internal/http"
	adminHandler "github.com/MrJamesThe3rd/wayfare/internal/http/admin"
	"github.com/MrJamesThe3rd/wayfare/internal/http/authz"
	billingHandler "github.com/MrJamesThe3rd/wayfare/internal/http/billing"
	shareHandler "github.com/MrJamesThe3rd/wayfare/internal/http/share"
	"github.com/MrJamesThe3rd/wayfare/internal/provider"
	"github.com/MrJamesThe3rd/wayfare/internal/reaper"
	"github.com/MrJamesThe3rd/wayfare/internal/share"
	shareStore "github.com/MrJamesThe3rd/wayfare/internal/share/store"
	spotStore "github.com/MrJamesThe3rd/wayfare/internal/spot/store"
	"github.com/MrJamesThe3rd/wayfare/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	clk := clock.System()

	var gateway billing.Gateway = provider.NewClient(
		cfg.Provider.BaseURL, cfg.Provider.MerchantID, cfg.Provider.APIKey, cfg.Provider.Timeout,
	)

	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("parsing redis url: %w", err)
		}

		rdb := redis.NewClient(opts)
		defer rdb.Close()

		gateway = provider.NewCachedClient(gateway, rdb, cfg.Provider.CacheTTL, logger)
	}

	var objects reaper.ObjectStore

	if cfg.Storage.Bucket != "" {
		bucket, err := storage.NewBucket(ctx, cfg.Storage.Bucket, cfg.Storage.Region)
		if err != nil {
			return fmt.Errorf("configuring storage: %w", err)
		}

		objects = bucket
	}

	spots := spotStore.New(db)

	var (
		billingService   = billing.NewService(billingStore.New(db), clk, logger)
		reconciler       = billing.NewReconciler(gateway, logger)
		shareService     = share.NewService(shareStore.New(db), clk, cfg.Share.BaseURL, cfg.Share.Window, logger)
		spotReaper       = reaper.New(spots, objects, cfg.ReaperTTL(), clk, logger)
		analyticsService = analytics.NewService(analyticsStore.New(db), spots, clk)
		guard            = authz.NewGuard(auth.NewResolver(authStore.New(db), cfg.Auth.JWTSecret, logger))
	)

	var (
		billingH = billingHandler.NewHandler(billingService, reconciler, guard)
		shareH   = shareHandler.NewHandler(shareService, guard)
		adminH   = adminHandler.NewHandler(spotReaper, analyticsService, guard)
	)

	if cfg.Reaper.Interval > 0 {
		scheduler, err := gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("creating scheduler: %w", err)
		}

		if _, err := spotReaper.Schedule(ctx, scheduler, cfg.Reaper.Interval); err != nil {
			return err
		}

		scheduler.Start()

		defer func() {
			if err := scheduler.Shutdown(); err != nil {
				slog.Error("scheduler shutdown failed", "error", err)
			}
		}()

		slog.Info("reaper scheduled", "interval", cfg.Reaper.Interval, "ttl", cfg.ReaperTTL())
	}

	router := wayfareHttp.New(wayfareHttp.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		Timeout:     cfg.Server.Timeout,
	}, billingH, shareH, adminH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "port", srv.Addr, "app", cfg.App.Name)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
