package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.opentelemetry.io/otel"

	"vigil/internal/adjudicator"
	"vigil/internal/audit"
	"vigil/internal/platform/config"
	"vigil/internal/platform/httpserver"
	"vigil/internal/platform/logger"
	"vigil/internal/platform/metrics"
	"vigil/internal/platform/redis"
	"vigil/internal/screening"
	screeninghandler "vigil/internal/screening/handler"
	httptransport "vigil/internal/transport/http"
	"vigil/internal/watchlist"
	"vigil/internal/watchlist/cache"
	"vigil/internal/watchlist/store"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps
// the server lifecycle small. Business logic lives in internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	recordStore, cleanupStore, err := buildStore(cfg, log)
	if err != nil {
		log.Error("store setup failed", "error", err)
		os.Exit(1)
	}
	defer cleanupStore()

	auditStore, cleanupAudit, err := buildAuditStore(cfg, log)
	if err != nil {
		log.Error("audit setup failed", "error", err)
		os.Exit(1)
	}
	defer cleanupAudit()

	var adj screening.Adjudicator
	if cfg.AdjudicatorURL != "" {
		adj = adjudicator.NewHTTPClient(cfg.AdjudicatorURL)
	} else {
		log.Warn("no adjudicator configured, running deterministic-only")
	}

	engineCfg := engineConfig(cfg.Engine)
	service, err := screening.NewService(
		recordStore,
		adj,
		engineCfg,
		log,
		metrics.New(),
		audit.NewPublisher(auditStore, log),
		otel.Tracer("vigil/screening"),
	)
	if err != nil {
		log.Error("service setup failed", "error", err)
		os.Exit(1)
	}

	handler := screeninghandler.New(service, log)
	router := httptransport.NewRouter(handler, log)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting vigil", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("vigil stopped")
}

// buildStore selects the watchlist backend: Postgres when a DSN is set,
// otherwise an in-memory snapshot loaded from the CSV export. A Redis URL
// wraps either in the lookup cache.
func buildStore(cfg config.Server, log *slog.Logger) (screening.RecordStore, func(), error) {
	cleanup := func() {}

	var base screening.RecordStore
	switch {
	case cfg.PostgresDSN != "":
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() { _ = db.Close() }
		base = store.NewPostgres(db)
		log.Info("watchlist backend ready", "backend", "postgres")
	case cfg.WatchlistCSV != "":
		records, version, err := watchlist.LoadCSV(cfg.WatchlistCSV)
		if err != nil {
			return nil, cleanup, err
		}
		mem := store.NewMemory()
		mem.Load(version, records)
		base = mem
		log.Info("watchlist backend ready",
			"backend", "memory",
			"records", len(records),
			"snapshot_version", version,
		)
	default:
		base = store.NewMemory()
		log.Warn("no watchlist source configured, serving empty list")
	}

	client, err := redis.New(cfg.Redis)
	if err != nil {
		return nil, cleanup, err
	}
	if client == nil {
		return base, cleanup, nil
	}

	closeDB := cleanup
	cleanup = func() {
		_ = client.Close()
		closeDB()
	}
	log.Info("lookup cache enabled")
	return cache.New(base, client.Client, 5*time.Minute, log), cleanup, nil
}

func buildAuditStore(cfg config.Server, log *slog.Logger) (audit.Store, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		log.Info("audit trail in memory only")
		return audit.NewMemoryStore(), func() {}, nil
	}
	kafka, err := audit.NewKafkaStore(cfg.KafkaBrokers, cfg.AuditTopic)
	if err != nil {
		return nil, func() {}, err
	}
	log.Info("audit trail on kafka", "topic", cfg.AuditTopic)
	return kafka, kafka.Close, nil
}

func engineConfig(e config.Engine) screening.Config {
	cfg := screening.DefaultConfig()
	cfg.FuzzyFloor = e.FuzzyFloor
	cfg.PhoneticEnabled = e.PhoneticEnabled
	cfg.DOBMismatchPenalty = e.DOBMismatchPenalty
	cfg.SurfaceThreshold = e.SurfaceThreshold
	cfg.HighConfidenceThreshold = e.HighConfidenceThreshold
	cfg.LLMPrefilterThreshold = e.LLMPrefilterThreshold
	cfg.LLMConcurrencyLimit = e.LLMConcurrencyLimit
	cfg.LLMTimeout = e.LLMTimeout
	cfg.CandidateLimit = e.CandidateLimit
	return cfg
}
