package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr string

	PostgresDSN  string
	WatchlistCSV string

	Redis RedisConfig

	KafkaBrokers []string
	AuditTopic   string

	AdjudicatorURL string

	Engine Engine
}

// RedisConfig configures the optional lookup cache connection.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Engine carries the screening engine tunables. Defaults are validated
// against the engine's ranking properties, not inherited blindly.
type Engine struct {
	FuzzyFloor              float64
	PhoneticEnabled         bool
	DOBMismatchPenalty      float64
	SurfaceThreshold        float64
	HighConfidenceThreshold float64
	LLMPrefilterThreshold   float64
	LLMConcurrencyLimit     int
	LLMTimeout              time.Duration
	CandidateLimit          int
}

// DefaultEngine returns the tuned engine defaults.
func DefaultEngine() Engine {
	return Engine{
		FuzzyFloor:              0.80,
		PhoneticEnabled:         true,
		DOBMismatchPenalty:      0.35,
		SurfaceThreshold:        0.45,
		HighConfidenceThreshold: 0.85,
		LLMPrefilterThreshold:   0.50,
		LLMConcurrencyLimit:     4,
		LLMTimeout:              10 * time.Second,
		CandidateLimit:          500,
	}
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := envString("VIGIL_ADDR", ":8080")

	engine := DefaultEngine()
	engine.FuzzyFloor = envFloat("VIGIL_FUZZY_FLOOR", engine.FuzzyFloor)
	engine.PhoneticEnabled = envString("VIGIL_PHONETIC_ENABLED", "true") != "false"
	engine.DOBMismatchPenalty = envFloat("VIGIL_DOB_MISMATCH_PENALTY", engine.DOBMismatchPenalty)
	engine.SurfaceThreshold = envFloat("VIGIL_SURFACE_THRESHOLD", engine.SurfaceThreshold)
	engine.HighConfidenceThreshold = envFloat("VIGIL_HIGH_CONFIDENCE_THRESHOLD", engine.HighConfidenceThreshold)
	engine.LLMPrefilterThreshold = envFloat("VIGIL_LLM_PREFILTER_THRESHOLD", engine.LLMPrefilterThreshold)
	engine.LLMConcurrencyLimit = envInt("VIGIL_LLM_CONCURRENCY", engine.LLMConcurrencyLimit)
	engine.LLMTimeout = envDuration("VIGIL_LLM_TIMEOUT", engine.LLMTimeout)
	engine.CandidateLimit = envInt("VIGIL_CANDIDATE_LIMIT", engine.CandidateLimit)

	return Server{
		Addr:         addr,
		PostgresDSN:  os.Getenv("VIGIL_POSTGRES_DSN"),
		WatchlistCSV: os.Getenv("VIGIL_WATCHLIST_CSV"),
		Redis: RedisConfig{
			URL:          os.Getenv("VIGIL_REDIS_URL"),
			PoolSize:     envInt("VIGIL_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("VIGIL_REDIS_MIN_IDLE", 2),
			DialTimeout:  envDuration("VIGIL_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("VIGIL_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("VIGIL_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		KafkaBrokers:   envList("VIGIL_KAFKA_BROKERS"),
		AuditTopic:     envString("VIGIL_AUDIT_TOPIC", "vigil.screenings"),
		AdjudicatorURL: os.Getenv("VIGIL_ADJUDICATOR_URL"),
		Engine:         engine,
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
