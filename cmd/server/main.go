package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"pieceledger/internal/app/server"
	"pieceledger/internal/platform/config"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "pieceledger"),
		slog.String("env", cfg.Environment),
	)
	slog.SetDefault(logger)

	app, err := server.New(context.Background(), cfg, logger)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	slog.Info("pieceledger server listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}
