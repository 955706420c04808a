package main

import (
	"context"
	"os/signal"
	"syscall"

	"cryptomarkets-service/internal/bootstrap"
	"cryptomarkets-service/internal/config"
	"cryptomarkets-service/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	log := logx.L()
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := bootstrap.RequireSharedCache(config.Load()); err != nil {
		log.Fatal("worker cache backend", zap.Error(err))
	}

	w, cleanup, err := bootstrap.InitWorker(ctx)
	if err != nil {
		log.Fatal("init worker", zap.Error(err))
	}
	defer cleanup()
	w.Start(ctx)
}
