package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"cryptomarkets-service/internal/bootstrap"
	infraconfig "cryptomarkets-service/internal/infrastructure/config"
	"cryptomarkets-service/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	logger := logx.L()
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	api, cleanup, err := bootstrap.InitAPI(ctx)
	if err != nil {
		logger.Fatal("init api", zap.Error(err))
	}
	defer cleanup()

	// In-process refresh is optional; cmd/worker does the same against a shared redis cache.
	if api.Refresher != nil {
		go api.Refresher.Start(ctx)
	}

	server := &http.Server{
		Addr:    api.Addr,
		Handler: api.Handler,
	}

	go func() {
		logger.Info("server started", zap.String("addr", api.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	shutdownCtx, shCancel := context.WithTimeout(context.Background(), infraconfig.DefaultShutdownTimeout)
	defer shCancel()
	_ = server.Shutdown(shutdownCtx)
	logger.Info("server stopped")
}
