package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
)

// Report is the combined analysis output. Every per sector slice is ordered
// by the fixed category enumeration, holding only sectors with data.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	Model       string    `json:"model"`
	BucketHours int       `json:"time_bucket_hours"`

	TimeSeries          []CategorySeries      `json:"time_series_sentiment"`
	SectorEffectiveness []SectorEffectiveness `json:"sector_effectiveness"`
	SectorInsights      []CategoryInsight     `json:"sector_insights"`
	TimeSeriesSummary   TimeSeriesSummary     `json:"time_series_summary"`

	SatisfactionByCategory []CategoryStats          `json:"satisfaction_by_category"`
	CategoryEffectiveness  []SatisfactionAssessment `json:"category_effectiveness"`
	SatisfactionInsights   SatisfactionInsights     `json:"satisfaction_insights"`
	ResourceAllocation     ResourceAllocation       `json:"resource_allocation_recommendations"`
	SatisfactionSummary    SatisfactionSummary      `json:"satisfaction_summary"`

	TotalPostsAnalyzed int `json:"total_posts_analyzed"`
}

// Reporter builds reports from annotated posts.
type Reporter struct {
	bucketHours int
	model       string
	logger      *zerolog.Logger
	now         func() time.Time
}

// NewReporter builds a Reporter. model names the analyzer whose annotations
// the report is based on.
func NewReporter(bucketHours int, model string, logger *zerolog.Logger) *Reporter {
	if bucketHours <= 0 || bucketHours > 24 {
		bucketHours = DefaultBucketHours
	}

	return &Reporter{
		bucketHours: bucketHours,
		model:       model,
		logger:      logger,
		now:         time.Now,
	}
}

type sectorResult struct {
	series CategorySeries
	stats  CategoryStats
	ok     bool
}

// Build assembles the full report. Sectors are analyzed concurrently and
// merged back in enumeration order, so the output is deterministic for a
// given input.
func (r *Reporter) Build(ctx context.Context, posts []domain.Post) *Report {
	start := r.now()

	records := collectAnnotated(posts)
	buckets := bucketByCategory(records, r.bucketHours)

	sentimentsByCategory := make(map[domain.Category][]domain.Sentiment)
	for _, rec := range records {
		sentimentsByCategory[rec.category] = append(sentimentsByCategory[rec.category], rec.sentiment)
	}

	categories := domain.Categories()
	results := make([]sectorResult, len(categories))

	var wg sync.WaitGroup
	for i, category := range categories {
		points := buckets[category]
		if len(points) == 0 {
			continue
		}

		wg.Add(1)
		go func(i int, category domain.Category, points []TimePoint) {
			defer wg.Done()

			results[i] = sectorResult{
				series: newCategorySeries(category, points),
				stats:  newCategoryStats(category, sentimentsByCategory[category]),
				ok:     true,
			}
		}(i, category, points)
	}
	wg.Wait()

	report := &Report{
		GeneratedAt:        start,
		Model:              r.model,
		BucketHours:        r.bucketHours,
		TotalPostsAnalyzed: len(posts),
	}

	for _, res := range results {
		if !res.ok {
			continue
		}

		report.TimeSeries = append(report.TimeSeries, res.series)
		report.SectorEffectiveness = append(report.SectorEffectiveness, DetermineEffectiveness(res.series))
		report.SectorInsights = append(report.SectorInsights, GenerateInsight(res.series))
		report.SatisfactionByCategory = append(report.SatisfactionByCategory, res.stats)
		report.CategoryEffectiveness = append(report.CategoryEffectiveness, AssessSatisfaction(res.stats))
	}

	report.TimeSeriesSummary = SummarizeEffectiveness(report.SectorEffectiveness)
	report.SatisfactionInsights = GenerateSatisfactionInsights(report.SatisfactionByCategory)
	report.ResourceAllocation = GenerateResourceAllocation(report.SatisfactionByCategory)
	report.SatisfactionSummary = SummarizeSatisfaction(report.SatisfactionByCategory)

	if ctx.Err() == nil {
		r.logger.Info().
			Int("posts", len(posts)).
			Int("annotated_records", len(records)).
			Int("sectors", len(report.TimeSeries)).
			Dur("took", r.now().Sub(start)).
			Msg("report built")
	}

	return report
}
