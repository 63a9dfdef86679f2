package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bryanwahyu/critique/internal/application"
	appanalysis "github.com/bryanwahyu/critique/internal/application/analysis"
	appaudits "github.com/bryanwahyu/critique/internal/application/audits"
	appshare "github.com/bryanwahyu/critique/internal/application/share"
	"github.com/bryanwahyu/critique/internal/config"
	"github.com/bryanwahyu/critique/internal/domain/audit"
	"github.com/bryanwahyu/critique/internal/domain/share"
	"github.com/bryanwahyu/critique/internal/infra/ai"
	"github.com/bryanwahyu/critique/internal/infra/ai/repair"
	"github.com/bryanwahyu/critique/internal/infra/db/memory"
	mysqlp "github.com/bryanwahyu/critique/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/critique/internal/infra/db/postgres"
	"github.com/bryanwahyu/critique/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/critique/internal/infra/storage"
	"github.com/bryanwahyu/critique/internal/middleware"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		fatal(logger, "config load error", err)
	}

	ctx := context.Background()

	var db *sql.DB
	switch cfg.Database.Driver {
	case config.DriverMySQL:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
	case config.DriverPostgres:
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
	}
	if err != nil {
		fatal(logger, "database connect error", err, "driver", cfg.Database.Driver)
	}
	if db != nil {
		defer db.Close()
	}

	var objects *minioStore.Store
	if cfg.Minio.Endpoint != "" {
		objects, err = minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			fatal(logger, "minio init error", err)
		}
	}

	checkers := map[string]middleware.HealthChecker{}
	if db != nil {
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	}
	if objects != nil {
		checkers["objects"] = objects
	}

	store := shareStore(cfg, db, objects)
	if _, ok := store.(*memory.KVStore); ok {
		logger.Warn("shared reports are kept in memory and lost on restart")
	}

	// init services
	clock := application.SystemClock{}
	shareSvc := appshare.NewService(store, clock)

	candidates := ai.Candidates(cfg.AI, &http.Client{})
	analysisSvc := appanalysis.NewService(repair.NewParser(logger), logger, candidates...)
	analysisSvc.Timeout = cfg.AI.Timeout()
	analysisSvc.OnAttempt = middleware.RecordProviderAttempt
	if len(candidates) == 0 {
		logger.Warn("no AI provider key configured, /analyze will return simulated results")
	}

	auditsSvc := &appaudits.Service{
		Repo:   auditRepo(cfg, db),
		Clock:  clock,
		Logger: logger,
	}
	if objects != nil {
		auditsSvc.Images = objects
	}

	handler := httpserver.NewRouter(analysisSvc, shareSvc, auditsSvc, httpserver.Options{
		BasePath: cfg.Server.BasePath,
		UserKeys: cfg.Auth.UserKeys,
		Checkers: checkers,
		Logger:   logger,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "basePath", cfg.Server.BasePath, "candidates", len(candidates), "share", cfg.Share.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fatal(logger, "server error", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func shareStore(cfg *config.Config, db *sql.DB, objects *minioStore.Store) share.Store {
	switch cfg.Share.Backend {
	case config.BackendDatabase:
		if cfg.Database.Driver == config.DriverPostgres {
			return postgresp.NewKVStore(db)
		}
		return mysqlp.NewKVStore(db)
	case config.BackendMinio:
		return objects
	default:
		return memory.NewKVStore()
	}
}

func auditRepo(cfg *config.Config, db *sql.DB) audit.Repository {
	switch {
	case db == nil:
		return memory.NewAuditRepository()
	case cfg.Database.Driver == config.DriverPostgres:
		return postgresp.NewAuditRepository(db)
	default:
		return mysqlp.NewAuditRepository(db)
	}
}

func fatal(logger *slog.Logger, msg string, err error, args ...any) {
	logger.Error(msg, append([]any{"error", err}, args...)...)
	os.Exit(1)
}
