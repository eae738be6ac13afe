package remote

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
	"github.com/reliefwatch/relief-pulse/internal/core/nlp"
)

// Fallback wraps a primary analyzer with a local backup. Errors from the
// primary are logged and absorbed by retrying against the backup, so the
// annotation pipeline never stalls on a flaky inference service.
type Fallback struct {
	primary nlp.Analyzer
	backup  nlp.Analyzer
	// defaultCategory, when set, is assigned whenever neither analyzer
	// finds a category for non-empty text.
	defaultCategory domain.Category
	onFallback      func()
	logger          *zerolog.Logger
}

// FallbackOption configures a Fallback.
type FallbackOption func(*Fallback)

// WithDefaultCategory makes unclassifiable non-empty text land in category.
func WithDefaultCategory(category domain.Category) FallbackOption {
	return func(f *Fallback) { f.defaultCategory = category }
}

// WithFallbackHook registers a callback fired each time the backup is used.
func WithFallbackHook(hook func()) FallbackOption {
	return func(f *Fallback) { f.onFallback = hook }
}

// NewFallback wires primary and backup analyzers together.
func NewFallback(primary, backup nlp.Analyzer, logger *zerolog.Logger, opts ...FallbackOption) *Fallback {
	f := &Fallback{primary: primary, backup: backup, logger: logger}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Score tries the primary analyzer and falls back to the backup on error.
func (f *Fallback) Score(ctx context.Context, text string) (domain.Sentiment, error) {
	sentiment, err := f.primary.Score(ctx, text)
	if err == nil {
		return sentiment, nil
	}

	f.noteFallback(err, "sentiment")

	return f.backup.Score(ctx, text)
}

// Classify tries the primary analyzer and falls back to the backup on error.
// When neither finds a category and a default is configured, the default is
// returned for non-empty text.
func (f *Fallback) Classify(ctx context.Context, text string) (domain.Category, bool, error) {
	category, ok, err := f.primary.Classify(ctx, text)
	if err != nil {
		f.noteFallback(err, "category")

		category, ok, err = f.backup.Classify(ctx, text)
		if err != nil {
			return "", false, err
		}
	}

	if !ok && f.defaultCategory != "" && text != "" {
		return f.defaultCategory, true, nil
	}

	return category, ok, nil
}

// ModelName reports the primary analyzer's model.
func (f *Fallback) ModelName() string {
	return f.primary.ModelName()
}

func (f *Fallback) noteFallback(err error, op string) {
	f.logger.Warn().Err(err).
		Str("op", op).
		Str("primary", f.primary.ModelName()).
		Str("backup", f.backup.ModelName()).
		Msg("primary analyzer failed, using backup")

	if f.onFallback != nil {
		f.onFallback()
	}
}
