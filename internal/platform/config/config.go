// Package config loads the process configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
	apperrors "github.com/reliefwatch/relief-pulse/internal/core/errors"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"local"`
	PostgresDSN string `env:"POSTGRES_DSN,required"`
	HealthPort  int    `env:"HEALTH_PORT" envDefault:"8080"`
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8081"`

	// Annotation worker
	WorkerBatchSize    int           `env:"WORKER_BATCH_SIZE" envDefault:"50"`
	WorkerPollInterval time.Duration `env:"WORKER_POLL_INTERVAL" envDefault:"10s"`
	WorkerConcurrency  int           `env:"WORKER_CONCURRENCY" envDefault:"4"`

	// Analysis
	BucketWindowHours int    `env:"BUCKET_WINDOW_HOURS" envDefault:"6"`
	ScorerVariant     string `env:"SCORER_VARIANT" envDefault:"enhanced"`
	ReportCronSpec    string `env:"REPORT_CRON_SPEC" envDefault:"0 */6 * * *"`
	ReportOutputPath  string `env:"REPORT_OUTPUT_PATH" envDefault:""`

	// Remote NLP inference service
	RemoteNLPEnabled      bool          `env:"REMOTE_NLP_ENABLED" envDefault:"false"`
	RemoteNLPBaseURL      string        `env:"REMOTE_NLP_BASE_URL" envDefault:"http://localhost:5000"`
	RemoteNLPTimeout      time.Duration `env:"REMOTE_NLP_TIMEOUT" envDefault:"30s"`
	RemoteNLPRPS          int           `env:"REMOTE_NLP_RPS" envDefault:"5"`
	RemoteDefaultCategory string        `env:"REMOTE_DEFAULT_CATEGORY" envDefault:"FOOD"`

	// LLM analyzer
	LLMEnabled bool   `env:"LLM_ENABLED" envDefault:"false"`
	LLMAPIKey  string `env:"LLM_API_KEY"`
	LLMModel   string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMRPS     int    `env:"LLM_RPS" envDefault:"1"`

	// Seed data generation
	SeedPostCount int   `env:"SEED_POST_COUNT" envDefault:"200"`
	SeedSpanHours int   `env:"SEED_SPAN_HOURS" envDefault:"72"`
	SeedRandSeed  int64 `env:"SEED_RAND_SEED" envDefault:"0"`

	// Ingestion
	IngestFilePath string `env:"INGEST_FILE_PATH" envDefault:""`
}

// Load reads the configuration from the environment. A .env file in the
// working directory is merged in first when present.
func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.BucketWindowHours <= 0 || c.BucketWindowHours > 24 {
		return fmt.Errorf("%w: BUCKET_WINDOW_HOURS must be in 1..24, got %d",
			apperrors.ErrInvalidInput, c.BucketWindowHours)
	}

	if c.ScorerVariant != "simple" && c.ScorerVariant != "enhanced" {
		return fmt.Errorf("%w: SCORER_VARIANT must be simple or enhanced, got %q",
			apperrors.ErrInvalidInput, c.ScorerVariant)
	}

	if c.LLMEnabled && c.LLMAPIKey == "" {
		return fmt.Errorf("%w: LLM_API_KEY is required when LLM_ENABLED", apperrors.ErrInvalidInput)
	}

	if c.RemoteDefaultCategory != "" {
		if _, err := domain.ParseCategory(c.RemoteDefaultCategory); err != nil {
			return fmt.Errorf("REMOTE_DEFAULT_CATEGORY: %w", err)
		}
	}

	return nil
}
