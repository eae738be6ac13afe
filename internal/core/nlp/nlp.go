// Package nlp defines the capability interface shared by every sentiment
// scorer and category classifier in the system. The local keyword-based
// implementations, the remote HTTP service client, and the LLM client all
// satisfy Analyzer, so the annotation pipeline is agnostic to which is
// active and variants can be swapped through configuration alone.
package nlp

import (
	"context"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
)

// Analyzer scores sentiment and classifies relief categories for free text.
type Analyzer interface {
	// Score judges the polarity of the raw (non-normalized) text.
	// Empty text yields {NEUTRAL, 0.0, ""}.
	Score(ctx context.Context, text string) (domain.Sentiment, error)

	// Classify assigns a relief category to the text. ok is false when no
	// rule or model produced a category; that is an expected outcome and
	// the caller decides whether to default or leave unclassified.
	Classify(ctx context.Context, text string) (category domain.Category, ok bool, err error)

	// ModelName identifies the active implementation for logging and reports.
	ModelName() string
}
