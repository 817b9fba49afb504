// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/radar.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Confidence levels
// --------------------------------------------------------------------------

// Confidence is the overall reliability tag attached to a momentum score.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ValidConfidence reports whether s is a recognized confidence level.
func ValidConfidence(s string) bool {
	switch Confidence(s) {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	}
	return false
}

// --------------------------------------------------------------------------
// Table names: single source of truth, matches schema.sql
// --------------------------------------------------------------------------

const (
	ProductsTable = "products"
	SignalsTable  = "signal_records"
	AlertsTable   = "alerts"
)

// --------------------------------------------------------------------------
// Scoring weights
// --------------------------------------------------------------------------

// Weights holds the fixed composite weights for the four momentum sub-scores.
// Must sum to 1.0.
type Weights struct {
	RankVelocity       float64
	SearchAcceleration float64
	SocialBuzz         float64
	CompetitionDensity float64
}

// DefaultWeights mirrors the production weighting: rank movement dominates,
// search acceleration second, social and competition split the remainder.
func DefaultWeights() Weights {
	return Weights{
		RankVelocity:       0.35,
		SearchAcceleration: 0.25,
		SocialBuzz:         0.20,
		CompetitionDensity: 0.20,
	}
}

// Sum returns the total of all four weights.
func (w Weights) Sum() float64 {
	return w.RankVelocity + w.SearchAcceleration + w.SocialBuzz + w.CompetitionDensity
}

// Validate checks that the weights sum to 1.0 within a small tolerance.
func (w Weights) Validate() error {
	if s := w.Sum(); math.Abs(s-1.0) > 1e-6 {
		return fmt.Errorf("scoring weights must sum to 1.0, got %.4f", s)
	}
	return nil
}

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Scoring
	Weights           Weights
	MomentumThreshold float64      // composite score required for an alert
	AlertConfidences  []Confidence // confidence levels eligible for alerting
	DedupWindow       time.Duration
	ScoreWorkers      int

	// Telegram delivery
	TelegramBotToken string
	TelegramChatID   string

	// Scheduler cadences (zero disables a ticker)
	CollectInterval time.Duration
	ScoreInterval   time.Duration
	AlertInterval   time.Duration
	CleanupInterval time.Duration
	DigestHour      int // local hour of day for the daily digest

	// Collectors
	CollectorsMock bool

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("RADAR_DATABASE_URL", envOr("DATABASE_URL", ""))
	if dbURL == "" {
		return nil, fmt.Errorf("RADAR_DATABASE_URL or DATABASE_URL must be set")
	}

	weights := Weights{
		RankVelocity:       envFloat("WEIGHT_RANK_VELOCITY", 0.35),
		SearchAcceleration: envFloat("WEIGHT_SEARCH_ACCELERATION", 0.25),
		SocialBuzz:         envFloat("WEIGHT_SOCIAL_BUZZ", 0.20),
		CompetitionDensity: envFloat("WEIGHT_COMPETITION_DENSITY", 0.20),
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	confNames := envList("ALERT_CONFIDENCE_LEVELS", []string{"medium", "high"})
	confidences := make([]Confidence, 0, len(confNames))
	for _, name := range confNames {
		if !ValidConfidence(name) {
			return nil, fmt.Errorf("unknown confidence level %q in ALERT_CONFIDENCE_LEVELS", name)
		}
		confidences = append(confidences, Confidence(name))
	}

	digestHour := envInt("DIGEST_HOUR", 9)
	if digestHour < 0 || digestHour > 23 {
		return nil, fmt.Errorf("DIGEST_HOUR must be 0-23, got %d", digestHour)
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		Weights:           weights,
		MomentumThreshold: envFloat("MOMENTUM_THRESHOLD", 60),
		AlertConfidences:  confidences,
		DedupWindow:       time.Duration(envInt("DEDUP_WINDOW_HOURS", 6)) * time.Hour,
		ScoreWorkers:      envInt("SCORE_WORKERS", 4),

		TelegramBotToken: envOr("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   envOr("TELEGRAM_CHAT_ID", ""),

		CollectInterval: time.Duration(envInt("COLLECT_INTERVAL_SECONDS", 300)) * time.Second,
		ScoreInterval:   time.Duration(envInt("SCORE_INTERVAL_SECONDS", 600)) * time.Second,
		AlertInterval:   time.Duration(envInt("ALERT_INTERVAL_SECONDS", 300)) * time.Second,
		CleanupInterval: time.Duration(envInt("CLEANUP_INTERVAL_MINUTES", 30)) * time.Minute,
		DigestHour:      digestHour,

		CollectorsMock: envBool("COLLECTORS_MOCK", true),

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AlertConfidenceAllowed reports whether a confidence level passes the
// configured alert gate.
func (c *Config) AlertConfidenceAllowed(conf Confidence) bool {
	for _, allowed := range c.AlertConfidences {
		if conf == allowed {
			return true
		}
	}
	return false
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
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

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
