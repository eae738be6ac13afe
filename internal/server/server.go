// Package server exposes the analysis results over HTTP and keeps them
// fresh with a cron schedule.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/reliefwatch/relief-pulse/internal/analysis"
	"github.com/reliefwatch/relief-pulse/internal/core/domain"
	"github.com/reliefwatch/relief-pulse/internal/core/nlp"
	"github.com/reliefwatch/relief-pulse/internal/platform/observability"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second

	triggerCron    = "cron"
	triggerRequest = "request"
)

// Repository is the storage surface the server reads from.
type Repository interface {
	GetPosts(ctx context.Context) ([]domain.Post, error)
	GetPostsSince(ctx context.Context, since time.Time) ([]domain.Post, error)
}

// Server serves reports and ad-hoc classification.
type Server struct {
	repo     Repository
	reporter *analysis.Reporter
	analyzer nlp.Analyzer
	cronSpec string
	port     int
	logger   *zerolog.Logger

	mu     sync.RWMutex
	cached *analysis.Report
}

// New builds a Server. cronSpec schedules report regeneration; when empty
// the schedule is disabled.
func New(repo Repository, reporter *analysis.Reporter, analyzer nlp.Analyzer, cronSpec string, port int, logger *zerolog.Logger) *Server {
	return &Server{
		repo:     repo,
		reporter: reporter,
		analyzer: analyzer,
		cronSpec: cronSpec,
		port:     port,
		logger:   logger,
	}
}

// Run serves until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	if s.cronSpec != "" {
		scheduler := cron.New()

		if _, err := scheduler.AddFunc(s.cronSpec, func() { s.refresh(ctx, triggerCron) }); err != nil {
			return fmt.Errorf("schedule report refresh: %w", err)
		}

		scheduler.Start()
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)

		defer cancel()

		//nolint:errcheck,contextcheck // shutdown in signal handler is best-effort, non-inherited context intentional
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info().Int("port", s.port).Msg("API server starting")

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

func (s *Server) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "relief-pulse", "status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/report", s.getReport)
		api.POST("/report/refresh", s.refreshReport)
		api.POST("/classify", s.classify)
	}

	return r
}

func (s *Server) getReport(c *gin.Context) {
	// A windowed report is built from scratch; only the full report is
	// cached.
	if window := c.Query("window_hours"); window != "" {
		s.getWindowedReport(c, window)

		return
	}

	s.mu.RLock()
	report := s.cached
	s.mu.RUnlock()

	if report == nil {
		var ok bool
		if report, ok = s.refresh(c.Request.Context(), triggerRequest); !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "building report failed"})

			return
		}
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) getWindowedReport(c *gin.Context, window string) {
	hours, err := strconv.Atoi(window)
	if err != nil || hours <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "window_hours must be a positive integer"})

		return
	}

	posts, err := s.repo.GetPostsSince(c.Request.Context(), time.Now().Add(-time.Duration(hours)*time.Hour))
	if err != nil {
		s.logger.Error().Err(err).Msg("loading windowed posts failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "building report failed"})

		return
	}

	c.JSON(http.StatusOK, s.reporter.Build(c.Request.Context(), posts))
}

func (s *Server) refreshReport(c *gin.Context) {
	report, ok := s.refresh(c.Request.Context(), triggerRequest)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "building report failed"})

		return
	}

	c.JSON(http.StatusOK, report)
}

type classifyRequest struct {
	Text string `json:"text" binding:"required"`
}

type classifyResponse struct {
	Sentiment  domain.SentimentType `json:"sentiment"`
	Confidence float64              `json:"confidence"`
	Category   domain.Category      `json:"category,omitempty"`
	Classified bool                 `json:"classified"`
	Model      string               `json:"model"`
}

func (s *Server) classify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	sentiment, err := s.analyzer.Score(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	category, ok, err := s.analyzer.Classify(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, classifyResponse{
		Sentiment:  sentiment.Type,
		Confidence: sentiment.Confidence,
		Category:   category,
		Classified: ok,
		Model:      s.analyzer.ModelName(),
	})
}

// refresh rebuilds the cached report from storage.
func (s *Server) refresh(ctx context.Context, trigger string) (*analysis.Report, bool) {
	start := time.Now()

	posts, err := s.repo.GetPosts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("loading posts for report failed")

		return nil, false
	}

	report := s.reporter.Build(ctx, posts)

	s.mu.Lock()
	s.cached = report
	s.mu.Unlock()

	observability.ReportsBuilt.WithLabelValues(trigger).Inc()
	observability.ReportBuildDurationSeconds.Observe(time.Since(start).Seconds())

	return report, true
}
