package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jcmexdev/butcher-orders/internal/cart-service/adapters/orderapi"
	snapshotsqlite "github.com/jcmexdev/butcher-orders/internal/cart-service/adapters/snapshot/sqlite"
	"github.com/jcmexdev/butcher-orders/internal/cart-service/app"
	"github.com/jcmexdev/butcher-orders/internal/cart-service/core/domain"
	"github.com/jcmexdev/butcher-orders/internal/cart-service/infra/httpx"
	"github.com/jcmexdev/butcher-orders/internal/pkg/cache"
	"github.com/jcmexdev/butcher-orders/internal/pkg/telemetry"
)

func main() {
	telemetry.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupTracer(ctx, getEnv("OTEL_SERVICE_NAME", "cart-service"))
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	snapshots, err := snapshotsqlite.Open(getEnv("SNAPSHOT_DB_PATH", "./data/cart.db"))
	if err != nil {
		slog.Error("failed to open snapshot store", "error", err)
		os.Exit(1)
	}
	defer snapshots.Close()

	settingsCache := cache.NewRedisCache(getEnv("REDIS_ADDR", "localhost:6379"), "cart")
	orders := orderapi.New(getEnv("ORDER_API_URL", "http://localhost:3000/api"), nil, settingsCache)

	cart := app.NewCart(getEnv("CART_OWNER", "default"), snapshots)
	cart.Load(ctx)

	resetDay := domain.ParseWeekday(getEnv("CADENCE_RESET_DAY", "sunday"))
	checkout := app.NewCheckout(cart, orders, resetDay)

	if err := checkout.RefreshSettings(ctx); err != nil {
		slog.Warn("order settings unavailable, using defaults", "error", err)
	}
	go refreshSettingsLoop(ctx, checkout, getEnvSeconds("SETTINGS_REFRESH_INTERVAL", 60))

	handler := httpx.NewHandler(cart, checkout)
	router := httpx.NewRouter(handler)

	addr := ":" + getEnv("PORT", "8080")
	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http shutdown error", "error", err)
		}
	}()

	slog.Info("cart service running", "addr", addr, "reset_day", resetDay.String())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server failed", "error", err)
		os.Exit(1)
	}
}

// refreshSettingsLoop keeps the active ceilings in sync with the back office.
// Settings changes never touch existing cart lines, only future validations.
func refreshSettingsLoop(ctx context.Context, checkout *app.Checkout, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := checkout.RefreshSettings(ctx); err != nil {
				slog.Warn("settings refresh failed", "error", err)
			}
		}
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSeconds(key string, fallback int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(fallback) * time.Second
}
