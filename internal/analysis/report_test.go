package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
)

func annotatedPost(id string, category domain.Category, polarity domain.SentimentType, at time.Time) domain.Post {
	return domain.Post{
		ID:         id,
		Source:     "twitter",
		Content:    "text",
		CreatedAt:  at,
		Sentiment:  &domain.Sentiment{Type: polarity, Confidence: 0.9},
		ReliefItem: &domain.ReliefItem{Category: category, Description: "Auto-classified", Priority: 3},
	}
}

func TestReporterBuild(t *testing.T) {
	base := time.Date(2024, 9, 10, 1, 0, 0, 0, time.UTC)
	later := time.Date(2024, 9, 10, 7, 0, 0, 0, time.UTC)

	posts := []domain.Post{
		// Food: first bucket 2 positive 1 negative, second bucket 3
		// positive 1 negative.
		annotatedPost("f1", domain.CategoryFood, domain.SentimentPositive, base),
		annotatedPost("f2", domain.CategoryFood, domain.SentimentPositive, base.Add(time.Hour)),
		annotatedPost("f3", domain.CategoryFood, domain.SentimentNegative, base.Add(2*time.Hour)),
		annotatedPost("f4", domain.CategoryFood, domain.SentimentPositive, later),
		annotatedPost("f5", domain.CategoryFood, domain.SentimentPositive, later.Add(time.Hour)),
		annotatedPost("f6", domain.CategoryFood, domain.SentimentNegative, later.Add(2*time.Hour)),
		// Medical: a single negative record in one bucket.
		annotatedPost("m1", domain.CategoryMedical, domain.SentimentNegative, base),
		// Unannotated post, invisible to the report body but counted.
		{ID: "u1", Content: "no annotations", CreatedAt: base},
	}

	// An annotated comment on the unannotated post still contributes.
	posts[7].AddComment(domain.Comment{
		ID:         "c1",
		PostID:     "u1",
		CreatedAt:  later,
		Sentiment:  &domain.Sentiment{Type: domain.SentimentPositive, Confidence: 0.7},
		ReliefItem: &domain.ReliefItem{Category: domain.CategoryFood, Description: "Auto-classified", Priority: 3},
	})

	logger := zerolog.Nop()
	reporter := NewReporter(6, "keyword-enhanced-v2", &logger)

	report := reporter.Build(context.Background(), posts)

	assert.Equal(t, 8, report.TotalPostsAnalyzed)
	assert.Equal(t, 6, report.BucketHours)
	assert.Equal(t, "keyword-enhanced-v2", report.Model)

	// Sectors come out in enumeration order, skipping those without data.
	require.Len(t, report.TimeSeries, 2)
	assert.Equal(t, domain.CategoryMedical, report.TimeSeries[0].Category)
	assert.Equal(t, domain.CategoryFood, report.TimeSeries[1].Category)

	medical := report.TimeSeries[0]
	assert.Equal(t, domain.TrendInsufficientData, medical.Trend)
	assert.Equal(t, 1, medical.TotalRecords)

	food := report.TimeSeries[1]
	require.Len(t, food.TimePoints, 2)
	assert.Equal(t, time.Date(2024, 9, 10, 0, 0, 0, 0, time.UTC), food.TimePoints[0].Timestamp)
	assert.Equal(t, time.Date(2024, 9, 10, 6, 0, 0, 0, time.UTC), food.TimePoints[1].Timestamp)
	assert.Equal(t, 2, food.TimePoints[0].PositiveCount)
	assert.Equal(t, 1, food.TimePoints[0].NegativeCount)
	assert.Equal(t, 3, food.TimePoints[1].PositiveCount)
	assert.Equal(t, 1, food.TimePoints[1].NegativeCount)
	assert.Equal(t, 7, food.TotalRecords)
	assert.Equal(t, domain.TrendImproving, food.Trend)

	require.Len(t, report.SectorEffectiveness, 2)
	// Medical has no positive records, so the low-ratio override applies.
	assert.Equal(t, StatusCritical, report.SectorEffectiveness[0].Status)
	// Food improves and sits above the high-ratio override threshold.
	assert.Equal(t, StatusHighlyEffective, report.SectorEffectiveness[1].Status)

	assert.Equal(t, 1, report.TimeSeriesSummary.HighlyEffectiveSectors)
	assert.Equal(t, 1, report.TimeSeriesSummary.CriticalSectors)
	assert.Equal(t, 2, report.TimeSeriesSummary.TotalSectorsAnalyzed)

	require.Len(t, report.SatisfactionByCategory, 2)
	assert.Equal(t, 1, report.SatisfactionByCategory[0].TotalMentions)
	assert.Equal(t, 7, report.SatisfactionByCategory[1].TotalMentions)

	assert.Equal(t, "Food (5/7 positive)", report.SatisfactionInsights.HighestSatisfactionCategory)
	assert.Equal(t, "Medical Support (1/1 negative)", report.SatisfactionInsights.LowestSatisfactionCategory)
	assert.Equal(t, []string{"Medical Support"}, report.SatisfactionInsights.CriticalCategories)

	assert.Equal(t, []string{"Medical Support (100.0% negative)"}, report.ResourceAllocation.UrgentAttentionRequired)
	assert.Equal(t, []string{"Food"}, report.ResourceAllocation.StableOperations)

	assert.Equal(t, 8, report.SatisfactionSummary.TotalRecords)
	assert.Equal(t, 5, report.SatisfactionSummary.TotalPositive)
	assert.Equal(t, 3, report.SatisfactionSummary.TotalNegative)
}

func TestReporterBuildDeterministic(t *testing.T) {
	base := time.Date(2024, 9, 10, 3, 0, 0, 0, time.UTC)

	var posts []domain.Post
	for i, category := range domain.Categories() {
		for j := 0; j < 4; j++ {
			polarity := domain.SentimentPositive
			if (i+j)%3 == 0 {
				polarity = domain.SentimentNegative
			}
			posts = append(posts, annotatedPost("p", category, polarity, base.Add(time.Duration(j*5)*time.Hour)))
		}
	}

	logger := zerolog.Nop()
	reporter := NewReporter(6, "keyword-simple-v1", &logger)

	first := reporter.Build(context.Background(), posts)
	second := reporter.Build(context.Background(), posts)

	first.GeneratedAt = second.GeneratedAt
	assert.Equal(t, first, second)
}

func TestReporterBuildNoAnnotations(t *testing.T) {
	posts := []domain.Post{
		{ID: "a", Content: "raw", CreatedAt: time.Now()},
		{ID: "b", Content: "raw", CreatedAt: time.Now()},
	}

	logger := zerolog.Nop()
	reporter := NewReporter(0, "keyword-simple-v1", &logger)

	report := reporter.Build(context.Background(), posts)
	assert.Equal(t, 2, report.TotalPostsAnalyzed)
	assert.Empty(t, report.TimeSeries)
	assert.Empty(t, report.SatisfactionByCategory)
	assert.Zero(t, report.SatisfactionSummary.TotalRecords)
	assert.Equal(t, DefaultBucketHours, report.BucketHours)
}
