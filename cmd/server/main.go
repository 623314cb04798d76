package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/symptom-triage-server/internal/api"
	"github.com/symptom-triage-server/internal/clients/prediction"
	"github.com/symptom-triage-server/internal/config"
	"github.com/symptom-triage-server/internal/history"
	"github.com/symptom-triage-server/internal/knowledge"
	"github.com/symptom-triage-server/internal/service"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}
	cfg := configManager.GetConfig()

	logger := newLogger(cfg.Logging.Level, cfg.Logging.Format)

	// Build the knowledge base and triage engine
	registry, err := knowledge.NewRegistry()
	if err != nil {
		logger.Fatalf("Knowledge base failed validation: %v", err)
	}
	triage := service.NewTriageService(registry, logger)

	// Screening history store
	store, err := newHistoryStore(cfg.History.Driver, cfg.History.SQLitePath, cfg.History.PostgresDSN)
	if err != nil {
		logger.Fatalf("Failed to open history store: %v", err)
	}
	defer store.Close()

	// External prediction service client
	predictor, err := prediction.NewClient(cfg.Prediction, logger)
	if err != nil {
		logger.Fatalf("Failed to create prediction client: %v", err)
	}

	server, err := api.NewServer(cfg, triage, triage, predictor, store, logger)
	if err != nil {
		logger.Fatalf("Failed to create server: %v", err)
	}

	logger.WithFields(logrus.Fields{
		"host":     cfg.Server.Host,
		"port":     cfg.Server.Port,
		"synonyms": registry.SynonymCount(),
	}).Info("Starting symptom triage server")

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
	logger.Info("Server stopped")
}

func newLogger(level, format string) *logrus.Logger {
	logger := logrus.New()
	if lvl, err := logrus.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

func newHistoryStore(driver, sqlitePath, postgresDSN string) (history.Store, error) {
	if driver == "postgres" {
		return history.NewPostgresStore(postgresDSN)
	}
	return history.NewSQLiteStore(sqlitePath)
}
