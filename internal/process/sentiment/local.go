package sentiment

import (
	"context"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
	"github.com/reliefwatch/relief-pulse/internal/process/classify"
)

// Local composes a keyword scorer with the rule-table classifier into one
// nlp.Analyzer. It is the default analyzer and the fallback target when the
// remote service or LLM is unavailable.
type Local struct {
	scorer     *Scorer
	classifier *classify.Classifier
}

// NewLocal builds the composite local analyzer.
func NewLocal(scorer *Scorer, classifier *classify.Classifier) *Local {
	return &Local{scorer: scorer, classifier: classifier}
}

// Score judges polarity with the configured keyword scorer.
func (l *Local) Score(_ context.Context, text string) (domain.Sentiment, error) {
	return l.scorer.ScoreText(text), nil
}

// Classify evaluates the ordered rule tables.
func (l *Local) Classify(_ context.Context, text string) (domain.Category, bool, error) {
	category, ok := l.classifier.Classify(text)

	return category, ok, nil
}

// ModelName identifies the composite for logging.
func (l *Local) ModelName() string {
	return l.scorer.ModelName() + "+rules"
}
