package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/broadcastcontacts/backend/internal/config"
	"github.com/broadcastcontacts/backend/internal/handler"
	"github.com/broadcastcontacts/backend/internal/logging"
	"github.com/broadcastcontacts/backend/internal/model"
	"github.com/broadcastcontacts/backend/internal/repository"
	"github.com/broadcastcontacts/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logging is not configured yet; the default slog handler still writes to stderr
		logging.Fatal("failed to load configuration", "error", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx := context.Background()
	var gw repository.Gateway
	gw, err = repository.OpenGateway(ctx, cfg.Database.Driver, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		logging.Fatal("failed to connect to database", "driver", cfg.Database.Driver, "error", err)
	}
	defer gw.Close()

	// 接続失敗が続いた場合はブレーカーで即座に縮退応答へ切り替える
	if cfg.Breaker.Enabled {
		gw = repository.NewBreakerGateway(gw, repository.BreakerSettings{
			FailureThreshold: uint32(cfg.Breaker.FailureThreshold),
			OpenTimeout:      cfg.Breaker.OpenTimeout,
		})
	}

	variant := model.Variant(cfg.Database.Variant)
	contactRepo := repository.NewContactRepository(gw, cfg.Database.Table, variant)
	contactService := service.NewContactService(contactRepo, variant, model.SortOrder(cfg.Query.DefaultSort))

	router := handler.NewRouter(handler.RouterConfig{
		Handler:  handler.New(gw),
		Contacts: handler.NewContactHandler(contactService),
		Static:   handler.NewStaticHandler(handler.StaticConfig{Dir: cfg.Server.StaticDir}),
		CORS: handler.CORSConfig{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowCredentials: cfg.CORS.AllowCredentials,
		},
		RateLimitPerMinute: cfg.RateLimit.RequestsPerMinute,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("server listening",
			"addr", server.Addr,
			"driver", cfg.Database.Driver,
			"table", cfg.Database.Table,
			"variant", cfg.Database.Variant,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
