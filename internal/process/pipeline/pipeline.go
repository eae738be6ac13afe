// Package pipeline runs the annotation stage: it pulls unannotated posts
// from storage, attaches sentiment, relief category and disaster keyword,
// and writes the annotations back. Annotations that already exist are
// never overwritten.
package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
	"github.com/reliefwatch/relief-pulse/internal/core/nlp"
	"github.com/reliefwatch/relief-pulse/internal/disaster"
	"github.com/reliefwatch/relief-pulse/internal/platform/observability"
	"github.com/reliefwatch/relief-pulse/internal/platform/worker"
)

const (
	defaultBatchSize   = 50
	defaultConcurrency = 4
	defaultPriority    = 3

	backlogGaugeInterval = time.Minute

	statusOK      = "ok"
	statusError   = "error"
	statusSkipped = "skipped"
)

// Repository is the storage surface the pipeline needs.
type Repository interface {
	GetUnannotatedPosts(ctx context.Context, limit int) ([]domain.Post, error)
	SaveAnnotations(ctx context.Context, post *domain.Post, model string) error
	CountUnannotated(ctx context.Context) (int, error)
}

// Pipeline annotates batches of posts.
type Pipeline struct {
	repo         Repository
	analyzer     nlp.Analyzer
	registry     *disaster.Registry
	batchSize    int
	concurrency  int
	pollInterval time.Duration
	logger       *zerolog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithBatchSize bounds how many posts one batch pulls.
func WithBatchSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

// WithConcurrency bounds how many posts are annotated at once.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithPollInterval sets the pause between batches in Run.
func WithPollInterval(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.pollInterval = d
		}
	}
}

// New builds a Pipeline.
func New(repo Repository, analyzer nlp.Analyzer, registry *disaster.Registry, logger *zerolog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		repo:         repo,
		analyzer:     analyzer,
		registry:     registry,
		batchSize:    defaultBatchSize,
		concurrency:  defaultConcurrency,
		pollInterval: 10 * time.Second,
		logger:       logger,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Run processes batches until the context is canceled.
func (p *Pipeline) Run(ctx context.Context) error {
	return worker.Loop(ctx, worker.Config{
		Name:         "annotation",
		PollInterval: p.pollInterval,
		Process:      func(ctx context.Context) error { return p.ProcessBatch(ctx) },
		PeriodicTasks: []worker.PeriodicTask{
			{Name: "backlog gauge", Interval: backlogGaugeInterval, Run: p.updateBacklogGauge},
		},
		OnError: func(err error) bool {
			p.logger.Error().Err(err).Msg("annotation batch failed")

			return true
		},
		Logger: p.logger,
	})
}

// ProcessBatch annotates one batch. A failing post is logged and skipped;
// the batch itself only fails when storage does.
func (p *Pipeline) ProcessBatch(ctx context.Context) error {
	start := time.Now()

	posts, err := p.repo.GetUnannotatedPosts(ctx, p.batchSize)
	if err != nil {
		return err
	}

	if len(posts) == 0 {
		return nil
	}

	sem := make(chan struct{}, p.concurrency)
	done := make(chan struct{})

	for i := range posts {
		sem <- struct{}{}

		go func(post *domain.Post) {
			defer func() { <-sem; done <- struct{}{} }()
			defer worker.RecoverPanic(p.logger, "annotate post")

			p.processPost(ctx, post)
		}(&posts[i])
	}

	for range posts {
		<-done
	}

	observability.AnnotationBatchDurationSeconds.Observe(time.Since(start).Seconds())
	p.logger.Debug().Int("batch", len(posts)).Dur("took", time.Since(start)).Msg("annotation batch done")

	return nil
}

func (p *Pipeline) processPost(ctx context.Context, post *domain.Post) {
	if err := p.annotatePost(ctx, post); err != nil {
		observability.AnnotationProcessed.WithLabelValues(statusError).Inc()
		p.logger.Warn().Err(err).Str("post_id", post.ID).Msg("annotation failed, skipping post")

		return
	}

	if err := p.repo.SaveAnnotations(ctx, post, p.analyzer.ModelName()); err != nil {
		observability.AnnotationProcessed.WithLabelValues(statusError).Inc()
		p.logger.Warn().Err(err).Str("post_id", post.ID).Msg("saving annotations failed")

		return
	}

	observability.AnnotationProcessed.WithLabelValues(statusOK).Inc()
}

// annotatePost fills in the missing annotations of a post and its comments.
func (p *Pipeline) annotatePost(ctx context.Context, post *domain.Post) error {
	if post.DisasterKeyword == "" {
		if typ, ok := p.registry.FindInText(post.Content); ok {
			post.DisasterKeyword = typ.Name()
		}
	}

	if err := p.annotateText(ctx, post.Content, &post.Sentiment, &post.ReliefItem); err != nil {
		return err
	}

	for i := range post.Comments {
		comment := &post.Comments[i]
		if err := p.annotateText(ctx, comment.Content, &comment.Sentiment, &comment.ReliefItem); err != nil {
			return err
		}
	}

	return nil
}

func (p *Pipeline) annotateText(ctx context.Context, text string, sentiment **domain.Sentiment, item **domain.ReliefItem) error {
	if *sentiment == nil {
		start := time.Now()

		scored, err := p.analyzer.Score(ctx, text)
		if err != nil {
			return err
		}

		observability.AnalyzerRequestDuration.WithLabelValues(p.analyzer.ModelName()).Observe(time.Since(start).Seconds())

		*sentiment = &scored
	}

	if *item == nil {
		category, ok, err := p.analyzer.Classify(ctx, text)
		if err != nil {
			return err
		}

		if ok {
			*item = &domain.ReliefItem{
				Category:    category,
				Description: "Auto-classified",
				Priority:    defaultPriority,
			}
		}
	}

	return nil
}

func (p *Pipeline) updateBacklogGauge(ctx context.Context) {
	count, err := p.repo.CountUnannotated(ctx)
	if err != nil {
		p.logger.Warn().Err(err).Msg("counting backlog failed")

		return
	}

	observability.AnnotationBacklog.Set(float64(count))
}
