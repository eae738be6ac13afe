// Package domain defines the core entities of the relief-pulse system:
// posts and comments ingested from social platforms, the annotations the
// processing pipeline attaches to them (sentiment, relief item, disaster
// keyword), and the enumerations shared across all stages.
package domain

import (
	"fmt"
	"time"

	apperrors "github.com/reliefwatch/relief-pulse/internal/core/errors"
)

// Post is a social-media post about disaster-relief activity.
// Identity fields (ID, Source, Author, CreatedAt) are never mutated by the
// pipeline; Sentiment, ReliefItem and DisasterKeyword are populated by the
// annotation stages when absent and never overwritten once set.
type Post struct {
	ID              string
	Source          string
	Author          string
	Content         string
	CreatedAt       time.Time
	Sentiment       *Sentiment
	ReliefItem      *ReliefItem
	DisasterKeyword string
	Comments        []Comment
}

// Comment belongs to exactly one post. Identity is the (ID, PostID) pair.
type Comment struct {
	ID         string
	PostID     string
	Author     string
	Content    string
	CreatedAt  time.Time
	Sentiment  *Sentiment
	ReliefItem *ReliefItem
}

// AddComment appends a comment to the post's owned list.
func (p *Post) AddComment(c Comment) {
	p.Comments = append(p.Comments, c)
}

// RemoveComment drops the comment with the given id. It is a no-op when no
// such comment exists.
func (p *Post) RemoveComment(commentID string) {
	kept := p.Comments[:0]

	for _, c := range p.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}

	p.Comments = kept
}

// ReplaceComment swaps the stored comment with the same id for the given one.
// Returns false when the comment is not found.
func (p *Post) ReplaceComment(updated Comment) bool {
	for i := range p.Comments {
		if p.Comments[i].ID == updated.ID {
			p.Comments[i] = updated

			return true
		}
	}

	return false
}

// Before orders posts by creation timestamp.
func (p *Post) Before(other *Post) bool {
	return p.CreatedAt.Before(other.CreatedAt)
}

// SentimentType is the polarity of a scored text.
type SentimentType string

// Sentiment polarity values.
const (
	SentimentPositive SentimentType = "POSITIVE"
	SentimentNegative SentimentType = "NEGATIVE"
	SentimentNeutral  SentimentType = "NEUTRAL"
)

// ParseSentimentType maps the wire name of a polarity to its enum value.
func ParseSentimentType(s string) (SentimentType, error) {
	switch SentimentType(s) {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return SentimentType(s), nil
	default:
		return "", fmt.Errorf("%w: sentiment type %q", apperrors.ErrUnknownEnum, s)
	}
}

// Sentiment is an immutable polarity judgement over a piece of raw text.
type Sentiment struct {
	Type       SentimentType
	Confidence float64
	RawText    string
}

// NewSentiment validates and builds a Sentiment. Confidence must lie in
// [0,1]; a value outside the range is a validation failure, not a clamp.
func NewSentiment(t SentimentType, confidence float64, rawText string) (Sentiment, error) {
	if _, err := ParseSentimentType(string(t)); err != nil {
		return Sentiment{}, err
	}

	if confidence < 0 || confidence > 1 {
		return Sentiment{}, fmt.Errorf("%w: got %v", apperrors.ErrInvalidConfidence, confidence)
	}

	return Sentiment{Type: t, Confidence: confidence, RawText: rawText}, nil
}

// IsPositive reports whether the polarity is POSITIVE.
func (s Sentiment) IsPositive() bool { return s.Type == SentimentPositive }

// IsNegative reports whether the polarity is NEGATIVE.
func (s Sentiment) IsNegative() bool { return s.Type == SentimentNegative }

// IsNeutral reports whether the polarity is NEUTRAL.
func (s Sentiment) IsNeutral() bool { return s.Type == SentimentNeutral }
