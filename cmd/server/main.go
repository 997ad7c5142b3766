package main

import (
	"log/slog"
	"net/http"
	"os"

	"splitledger/internal/auth"
	"splitledger/internal/config"
	"splitledger/internal/events"
	"splitledger/internal/events/kafka"
	"splitledger/internal/server"
	"splitledger/internal/service"
	"splitledger/internal/storage"
	"splitledger/internal/storage/memory"
	"splitledger/internal/storage/sqlite"
	"splitledger/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	var store storage.Store
	switch cfg.DataBackend {
	case "memory":
		store = memory.New()
		slog.Info("Storage initialized", "backend", "memory")
	default:
		s, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			slog.Error("Failed to initialize storage", "error", err)
			os.Exit(1)
		}
		store = s
		slog.Info("Storage initialized", "backend", "sqlite", "database", cfg.SQLiteDBPath)
	}
	defer store.Close()

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		slog.Info("Event publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	defer publisher.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	srv := server.New(
		service.NewUserService(authenticator, jwtManager, store),
		service.NewExpenseService(store, publisher),
		service.NewBalanceService(store),
		jwtManager,
	)

	addr := ":" + cfg.Port
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
