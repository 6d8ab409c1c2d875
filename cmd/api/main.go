package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/avolkov/ledger-service/internal/config"
	"github.com/avolkov/ledger-service/internal/handler"
	"github.com/avolkov/ledger-service/internal/repository"
	"github.com/avolkov/ledger-service/internal/service"
	"github.com/avolkov/ledger-service/internal/storage"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Select the snapshot store
	var store storage.Adapter
	switch cfg.DataBackend {
	case "postgres":
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		store, err = storage.NewSQLStore(db)
		if err != nil {
			logger.Fatalf("Failed to initialize snapshot table: %v", err)
		}
	default:
		store = storage.NewFileStore(cfg.DataFile)
	}

	// Initialize layers and restore the last snapshot
	accounts := repository.NewAccountStore()
	journal := repository.NewTransactionLog()
	svc := service.NewService(accounts, journal, store, logger)
	snapshot, err := store.Load()
	if err != nil {
		logger.Fatalf("Failed to load ledger snapshot: %v", err)
	}
	svc.Restore(snapshot)
	logger.Infof("Ledger loaded: %d accounts, %d transactions",
		len(snapshot.Accounts), len(snapshot.Transactions))

	h := handler.NewHandler(svc, logger)

	// Scheduled snapshot backups
	if cfg.BackupSchedule != "" {
		c := cron.New()
		_, err := c.AddFunc(cfg.BackupSchedule, func() {
			if err := os.MkdirAll(cfg.BackupDir, 0o755); err != nil {
				logger.Errorf("Backup dir unavailable: %v", err)
				return
			}
			name := fmt.Sprintf("ledger-%s.json", time.Now().UTC().Format("20060102T150405Z"))
			path := filepath.Join(cfg.BackupDir, name)
			if err := storage.NewFileStore(path).Save(svc.Snapshot()); err != nil {
				logger.Errorf("Backup failed: %v", err)
				return
			}
			logger.Infof("Backup written to %s", path)
		})
		if err != nil {
			logger.Fatalf("Invalid backup schedule %q: %v", cfg.BackupSchedule, err)
		}
		c.Start()
		defer c.Stop()
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      h.Router(cfg.StaticDir),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}()

	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
