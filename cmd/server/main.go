package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sharma-sugurthi/HealthAI/internal/config"
	"github.com/sharma-sugurthi/HealthAI/internal/core"
	"github.com/sharma-sugurthi/HealthAI/internal/db"
	httpserver "github.com/sharma-sugurthi/HealthAI/internal/http"
	"github.com/sharma-sugurthi/HealthAI/internal/llm"
	"github.com/sharma-sugurthi/HealthAI/internal/logger"

	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	dbConn, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("failed to open database", zap.Error(err))
	}
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbConn.PingContext(pingCtx); err != nil {
		zlog.Fatal("failed to ping database", zap.Error(err))
	}
	if err := db.Migrate(context.Background(), dbConn); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}
	repo := db.NewRepository(dbConn)

	listener, err := db.NewExchangeListener(cfg.DatabaseURL, zlog)
	if err != nil {
		zlog.Warn("exchange notifications disabled", zap.Error(err))
	} else {
		defer func() { _ = listener.Close() }()
		go func() {
			for patientID := range listener.Run(context.Background()) {
				zlog.Info("exchange recorded", zap.Int64("patient_id", patientID))
			}
		}()
	}

	completer := llm.NewRetrier(
		llm.NewOpenAIClient(cfg.AI),
		llm.RetryPolicy{MaxAttempts: cfg.AI.MaxRetries, BaseDelay: cfg.AI.RetryDelay},
		zlog,
	)

	budgets := core.Budgets{
		ChatMaxTokens:      cfg.AI.ChatMaxTokens,
		SymptomMaxTokens:   cfg.AI.SymptomMaxTokens,
		TreatmentMaxTokens: cfg.AI.TreatmentMaxTokens,
		Temperature:        cfg.AI.Temperature,
	}
	assistant := core.NewAssistant(repo, completer, budgets, zlog)

	srv := httpserver.NewServer(assistant, repo, zlog)

	addr := ":" + cfg.Port
	zlog.Info("listening", zap.String("addr", addr), zap.String("model", cfg.AI.Model))
	if err := http.ListenAndServe(addr, srv); err != nil {
		zlog.Fatal("server error", zap.Error(err))
	}
}
