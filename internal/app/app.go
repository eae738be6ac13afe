// Package app provides the application bootstrap and runtime orchestration.
//
// The App type wires together all dependencies and exposes methods to run
// different operational modes:
//
//   - Worker mode: Annotation pipeline that scores and classifies stored posts
//   - Serve mode: HTTP API serving reports and on-demand classification
//   - Analyze mode: One-shot report generation to stdout or a file
//   - Seed mode: Synthetic feed generation for local development and demos
//
// Each mode can be run independently or combined based on deployment needs.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/reliefwatch/relief-pulse/internal/analysis"
	"github.com/reliefwatch/relief-pulse/internal/core/domain"
	"github.com/reliefwatch/relief-pulse/internal/core/llm"
	"github.com/reliefwatch/relief-pulse/internal/core/nlp"
	"github.com/reliefwatch/relief-pulse/internal/disaster"
	"github.com/reliefwatch/relief-pulse/internal/ingest"
	"github.com/reliefwatch/relief-pulse/internal/platform/config"
	"github.com/reliefwatch/relief-pulse/internal/platform/observability"
	"github.com/reliefwatch/relief-pulse/internal/process/classify"
	"github.com/reliefwatch/relief-pulse/internal/process/pipeline"
	"github.com/reliefwatch/relief-pulse/internal/process/remote"
	"github.com/reliefwatch/relief-pulse/internal/process/sentiment"
	"github.com/reliefwatch/relief-pulse/internal/server"
	db "github.com/reliefwatch/relief-pulse/internal/storage"
)

const (
	sourceMock = "mock"
	sourceFile = "file"

	reportFileMode = 0o644
)

// App holds the application dependencies and provides methods to run different modes.
type App struct {
	cfg      *config.Config
	database *db.DB
	logger   *zerolog.Logger
}

// New creates a new App instance with the given dependencies.
func New(cfg *config.Config, database *db.DB, logger *zerolog.Logger) *App {
	return &App{
		cfg:      cfg,
		database: database,
		logger:   logger,
	}
}

// StartHealthServer starts the health check and metrics server.
func (a *App) StartHealthServer(ctx context.Context) error {
	srv := observability.NewServer(a.database, a.cfg.HealthPort, a.logger)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("health server start: %w", err)
	}

	return nil
}

// RunWorker runs the annotation worker mode.
func (a *App) RunWorker(ctx context.Context) error {
	a.logger.Info().Msg("Starting worker mode")

	p := pipeline.New(
		a.database,
		a.newAnalyzer(),
		disaster.NewDefaultRegistry(),
		a.logger,
		pipeline.WithBatchSize(a.cfg.WorkerBatchSize),
		pipeline.WithConcurrency(a.cfg.WorkerConcurrency),
		pipeline.WithPollInterval(a.cfg.WorkerPollInterval),
	)

	if err := p.Run(ctx); err != nil {
		return fmt.Errorf("pipeline run: %w", err)
	}

	return nil
}

// RunServe runs the HTTP API mode.
func (a *App) RunServe(ctx context.Context) error {
	a.logger.Info().Msg("Starting serve mode")

	srv := server.New(
		a.database,
		a.newReporter(),
		a.newAnalyzer(),
		a.cfg.ReportCronSpec,
		a.cfg.HTTPPort,
		a.logger,
	)

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server run: %w", err)
	}

	return nil
}

// RunAnalyze builds a full report from stored posts and writes it as JSON
// to REPORT_OUTPUT_PATH, or to stdout when no path is configured.
func (a *App) RunAnalyze(ctx context.Context) error {
	a.logger.Info().Msg("Starting analyze mode")

	posts, err := a.database.GetPosts(ctx)
	if err != nil {
		return fmt.Errorf("loading posts: %w", err)
	}

	report := a.newReporter().Build(ctx, posts)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	if a.cfg.ReportOutputPath != "" {
		if err := os.WriteFile(a.cfg.ReportOutputPath, data, reportFileMode); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}

		a.logger.Info().Str("path", a.cfg.ReportOutputPath).Msg("report written")

		return nil
	}

	fmt.Println(string(data))

	return nil
}

// RunSeed stores a synthetic feed of unannotated posts. When INGEST_FILE_PATH
// is set the feed is loaded from that file instead of being generated.
func (a *App) RunSeed(ctx context.Context) error {
	a.logger.Info().Msg("Starting seed mode")

	var (
		posts  []domain.Post
		source string
	)

	if a.cfg.IngestFilePath != "" {
		loaded, err := ingest.LoadFile(a.cfg.IngestFilePath)
		if err != nil {
			return fmt.Errorf("loading feed file: %w", err)
		}

		posts, source = loaded, sourceFile
	} else {
		gen := ingest.NewGenerator(a.cfg.SeedRandSeed, a.cfg.SeedSpanHours)
		posts, source = gen.Generate(a.cfg.SeedPostCount), sourceMock
	}

	for i := range posts {
		if err := a.database.SavePost(ctx, &posts[i]); err != nil {
			return fmt.Errorf("saving post %s: %w", posts[i].ID, err)
		}

		observability.PostsIngested.WithLabelValues(source).Inc()
	}

	a.logger.Info().Int("posts", len(posts)).Str("source", source).Msg("seed complete")

	return nil
}

func (a *App) newReporter() *analysis.Reporter {
	return analysis.NewReporter(a.cfg.BucketWindowHours, a.newAnalyzer().ModelName(), a.logger)
}

// newAnalyzer builds the analyzer chain. The keyword analyzer is always the
// final backup; a remote inference service or an LLM, when configured, runs
// in front of it behind a fallback wrapper.
func (a *App) newAnalyzer() nlp.Analyzer {
	local := sentiment.NewLocal(a.newScorer(), classify.New())

	switch {
	case a.cfg.RemoteNLPEnabled:
		client := remote.NewClient(a.cfg.RemoteNLPBaseURL, a.cfg.RemoteNLPRPS, a.cfg.RemoteNLPTimeout, a.logger)

		opts := []remote.FallbackOption{
			remote.WithFallbackHook(observability.AnalyzerFallbacks.Inc),
		}

		if a.cfg.RemoteDefaultCategory != "" {
			// Validated at config load time.
			category, err := domain.ParseCategory(a.cfg.RemoteDefaultCategory)
			if err == nil {
				opts = append(opts, remote.WithDefaultCategory(category))
			}
		}

		return remote.NewFallback(client, local, a.logger, opts...)
	case a.cfg.LLMEnabled:
		client := llm.New(a.cfg.LLMAPIKey, a.cfg.LLMModel, a.cfg.LLMRPS, a.logger)

		return remote.NewFallback(client, local, a.logger,
			remote.WithFallbackHook(observability.AnalyzerFallbacks.Inc))
	default:
		return local
	}
}

func (a *App) newScorer() *sentiment.Scorer {
	if a.cfg.ScorerVariant == "simple" {
		return sentiment.NewSimple()
	}

	return sentiment.NewEnhanced()
}
