// Package sentiment scores text polarity by weighted keyword counting.
// This is a documented heuristic, not a statistical model: each keyword-list
// entry found in the text counts one hit, and the winning side's hit count
// drives the confidence. Two interchangeable configurations exist: a simple
// English-only variant and an enhanced bilingual (English + Vietnamese)
// variant with a higher confidence base and step. Both satisfy nlp.Analyzer
// so the remote service or the LLM client can be substituted without
// touching downstream stages.
package sentiment

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
)

// Confidence formula parameters. The simple and enhanced variants use
// different bases and steps; both are preserved as explicit configurations.
const (
	simpleBase   = 0.5
	simpleStep   = 0.1
	enhancedBase = 0.6
	enhancedStep = 0.15

	maxConfidence = 0.99

	// NEUTRAL confidence: lower when the text contains no sentiment
	// indicators at all, otherwise a balanced 0.5.
	neutralNoHitsConfidence = 0.4
	neutralConfidence       = 0.5
)

// Scorer is a keyword-counting sentiment analyzer.
type Scorer struct {
	name     string
	base     float64
	step     float64
	positive []string
	negative []string
}

// NewSimple builds the English-only fallback scorer.
func NewSimple() *Scorer {
	return newScorer("keyword-simple-v1", simpleBase, simpleStep,
		positiveWordsEN, negativeWordsEN)
}

// NewEnhanced builds the bilingual scorer with the enhanced confidence
// formula and the extended keyword lists.
func NewEnhanced() *Scorer {
	positive := concat(positiveWordsEN, positiveWordsEnhancedEN, positiveWordsVI)
	negative := concat(negativeWordsEN, negativeWordsEnhancedEN, negativeWordsVI)

	return newScorer("keyword-enhanced-v2", enhancedBase, enhancedStep, positive, negative)
}

func newScorer(name string, base, step float64, positive, negative []string) *Scorer {
	return &Scorer{
		name:     name,
		base:     base,
		step:     step,
		positive: foldAll(positive),
		negative: foldAll(negative),
	}
}

// ScoreText is the pure scoring function. The raw (non-normalized) text is
// lowercased and NFC-folded so composed and decomposed Vietnamese agree;
// keywords match on a loose boundary: preceded/followed by a space, or at
// the string start/end.
func (s *Scorer) ScoreText(text string) domain.Sentiment {
	if strings.TrimSpace(text) == "" {
		return domain.Sentiment{Type: domain.SentimentNeutral, Confidence: 0, RawText: ""}
	}

	folded := fold(text)
	positiveCount := countMatches(folded, s.positive)
	negativeCount := countMatches(folded, s.negative)

	var (
		polarity   domain.SentimentType
		confidence float64
	)

	switch {
	case positiveCount > negativeCount:
		polarity = domain.SentimentPositive
		confidence = s.confidence(positiveCount)
	case negativeCount > positiveCount:
		polarity = domain.SentimentNegative
		confidence = s.confidence(negativeCount)
	default:
		polarity = domain.SentimentNeutral

		confidence = neutralConfidence
		if positiveCount == 0 && negativeCount == 0 {
			confidence = neutralNoHitsConfidence
		}
	}

	return domain.Sentiment{Type: polarity, Confidence: confidence, RawText: text}
}

func (s *Scorer) confidence(hits int) float64 {
	c := s.base + float64(hits)*s.step
	if c > maxConfidence {
		c = maxConfidence
	}

	return c
}

// Score implements nlp.Analyzer. The keyword scorer is a pure local
// function and never errors.
func (s *Scorer) Score(_ context.Context, text string) (domain.Sentiment, error) {
	return s.ScoreText(text), nil
}

// Classify implements nlp.Analyzer. The keyword scorer carries no category
// rules of its own; composition with a classifier happens in Local.
func (s *Scorer) Classify(_ context.Context, _ string) (domain.Category, bool, error) {
	return "", false, nil
}

// ModelName identifies the variant in logs and reports.
func (s *Scorer) ModelName() string { return s.name }

// countMatches counts how many keyword-list entries occur in the text.
// Each entry counts at most once regardless of repetitions.
func countMatches(text string, keywords []string) int {
	count := 0

	for _, kw := range keywords {
		if containsLoose(text, kw) {
			count++
		}
	}

	return count
}

// containsLoose reports whether the keyword occurs with a space on either
// side or at the string boundaries.
func containsLoose(text, keyword string) bool {
	return strings.Contains(text, " "+keyword+" ") ||
		strings.HasPrefix(text, keyword+" ") ||
		strings.HasSuffix(text, " "+keyword) ||
		text == keyword
}

func fold(s string) string {
	return norm.NFC.String(strings.ToLower(s))
}

func foldAll(keywords []string) []string {
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		out[i] = fold(kw)
	}

	return out
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}

	return out
}
