package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
)

func TestSimpleScorer(t *testing.T) {
	s := NewSimple()

	tests := []struct {
		name           string
		text           string
		wantType       domain.SentimentType
		wantConfidence float64
	}{
		{
			name:           "three positive hits",
			text:           "thank you for the excellent medical support",
			wantType:       domain.SentimentPositive,
			wantConfidence: 0.8,
		},
		{
			name:           "two positive hits",
			text:           "thank you for the excellent delivery",
			wantType:       domain.SentimentPositive,
			wantConfidence: 0.7,
		},
		{
			name:           "negative outweighs positive",
			text:           "terrible response, the problem is the lack of everything",
			wantType:       domain.SentimentNegative,
			wantConfidence: 0.8,
		},
		{
			name:           "tie is neutral",
			text:           "good effort but bad timing",
			wantType:       domain.SentimentNeutral,
			wantConfidence: 0.5,
		},
		{
			name:           "no hits is low-confidence neutral",
			text:           "the convoy drove north this morning",
			wantType:       domain.SentimentNeutral,
			wantConfidence: 0.4,
		},
		{
			name:           "empty text",
			text:           "",
			wantType:       domain.SentimentNeutral,
			wantConfidence: 0,
		},
		{
			name:           "blank text",
			text:           "   ",
			wantType:       domain.SentimentNeutral,
			wantConfidence: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ScoreText(tt.text)
			assert.Equal(t, tt.wantType, got.Type)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 1e-9)
		})
	}
}

func TestEnhancedScorer(t *testing.T) {
	s := NewEnhanced()

	t.Run("confidence capped at 0.99", func(t *testing.T) {
		got := s.ScoreText("thank you for the excellent medical support")
		assert.Equal(t, domain.SentimentPositive, got.Type)
		assert.InDelta(t, 0.99, got.Confidence, 1e-9)
	})

	t.Run("vietnamese positive keywords", func(t *testing.T) {
		got := s.ScoreText("cảm ơn đội cứu trợ rất nhiều")
		assert.Equal(t, domain.SentimentPositive, got.Type)
	})

	t.Run("vietnamese negative keywords", func(t *testing.T) {
		got := s.ScoreText("tình hình rất khó khăn và nguy hiểm")
		assert.Equal(t, domain.SentimentNegative, got.Type)
	})

	t.Run("single positive hit uses enhanced base and step", func(t *testing.T) {
		got := s.ScoreText("the shipment finally improved")
		assert.Equal(t, domain.SentimentPositive, got.Type)
		assert.InDelta(t, 0.75, got.Confidence, 1e-9)
	})
}

func TestContainsLoose(t *testing.T) {
	tests := []struct {
		text    string
		keyword string
		want    bool
	}{
		{"thank you", "thank", true},
		{"many thanks", "thanks", true},
		{"a good day", "good", true},
		{"good", "good", true},
		{"goodness me", "good", false},
		{"so helpful", "help", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, containsLoose(tt.text, tt.keyword), "%q in %q", tt.keyword, tt.text)
	}
}

func TestScorerConfidenceAlwaysValid(t *testing.T) {
	texts := []string{
		"thank thanks good great excellent happy love appreciate support help aid relief better improved success wonderful fantastic amazing",
		"bad poor terrible sad hate angry upset frustrated struggle difficult problem issue lack missing needed fail failure disaster crisis emergency",
		"",
		"neutral text",
	}

	for _, s := range []*Scorer{NewSimple(), NewEnhanced()} {
		for _, text := range texts {
			got := s.ScoreText(text)
			assert.GreaterOrEqual(t, got.Confidence, 0.0)
			assert.LessOrEqual(t, got.Confidence, 0.99)

			_, err := domain.NewSentiment(got.Type, got.Confidence, got.RawText)
			assert.NoError(t, err)
		}
	}
}
