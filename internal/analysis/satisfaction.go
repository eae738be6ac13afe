package analysis

import (
	"fmt"
	"sort"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
)

// Satisfaction statuses.
const (
	SatisfactionHighlySatisfactory = "HIGHLY SATISFACTORY"
	SatisfactionSatisfactory       = "SATISFACTORY"
	SatisfactionNeutralToPositive  = "NEUTRAL TO POSITIVE"
	SatisfactionNeedsAttention     = "NEEDS ATTENTION"
	SatisfactionCritical           = "CRITICAL"
	SatisfactionInconclusive       = "INCONCLUSIVE"
)

// Resource allocation thresholds on negative percentage.
const (
	urgentNegativePercentage   = 60
	moderateNegativePercentage = 40
)

// CategoryStats aggregates every annotated mention of one sector.
// Percentages are in [0,100]; SatisfactionScore is (positive-negative)/total
// in [-1,1].
type CategoryStats struct {
	Category           domain.Category `json:"category"`
	DisplayName        string          `json:"display_name"`
	TotalMentions      int             `json:"total_mentions"`
	PositiveCount      int             `json:"positive_count"`
	NegativeCount      int             `json:"negative_count"`
	NeutralCount       int             `json:"neutral_count"`
	PositivePercentage float64         `json:"positive_percentage"`
	NegativePercentage float64         `json:"negative_percentage"`
	NeutralPercentage  float64         `json:"neutral_percentage"`
	AverageConfidence  float64         `json:"average_confidence"`
	SatisfactionScore  float64         `json:"satisfaction_score"`
	NetSentiment       int             `json:"net_sentiment"`
}

func newCategoryStats(category domain.Category, sentiments []domain.Sentiment) CategoryStats {
	stats := CategoryStats{
		Category:      category,
		DisplayName:   category.DisplayName(),
		TotalMentions: len(sentiments),
	}

	var confidenceSum float64
	for _, s := range sentiments {
		confidenceSum += s.Confidence

		switch {
		case s.IsPositive():
			stats.PositiveCount++
		case s.IsNegative():
			stats.NegativeCount++
		default:
			stats.NeutralCount++
		}
	}

	total := float64(stats.TotalMentions)
	if total > 0 {
		stats.PositivePercentage = float64(stats.PositiveCount) / total * 100
		stats.NegativePercentage = float64(stats.NegativeCount) / total * 100
		stats.NeutralPercentage = float64(stats.NeutralCount) / total * 100
		stats.AverageConfidence = confidenceSum / total
		stats.SatisfactionScore = float64(stats.PositiveCount-stats.NegativeCount) / total
	}

	stats.NetSentiment = stats.PositiveCount - stats.NegativeCount

	return stats
}

// SatisfactionAssessment is the qualitative reading of one sector's stats.
type SatisfactionAssessment struct {
	Category          domain.Category `json:"category"`
	DisplayName       string          `json:"display_name"`
	Status            string          `json:"status"`
	Assessment        string          `json:"assessment"`
	Recommendation    string          `json:"recommendation"`
	SatisfactionScore float64         `json:"satisfaction_score"`
}

// AssessSatisfaction grades a sector. The branches are ordered, so a sector
// is graded by the first rule its percentages satisfy.
func AssessSatisfaction(stats CategoryStats) SatisfactionAssessment {
	assessment := SatisfactionAssessment{
		Category:          stats.Category,
		DisplayName:       stats.DisplayName,
		SatisfactionScore: stats.SatisfactionScore,
	}

	positive := stats.PositivePercentage
	negative := stats.NegativePercentage
	score := stats.SatisfactionScore

	switch {
	case positive > 70:
		assessment.Status = SatisfactionHighlySatisfactory
		assessment.Assessment = "This relief category is well-received with strong positive sentiment"
		assessment.Recommendation = "Maintain and scale current operations"
	case positive > 60:
		assessment.Status = SatisfactionSatisfactory
		assessment.Assessment = "This relief category has positive reception overall"
		assessment.Recommendation = "Continue current approach while monitoring for improvements"
	case positive > 50 || (positive > negative && score > 0):
		assessment.Status = SatisfactionNeutralToPositive
		assessment.Assessment = "Mixed reception but slightly positive overall"
		assessment.Recommendation = "Review implementation and address user concerns"
	case negative > positive && negative < 50:
		assessment.Status = SatisfactionNeedsAttention
		assessment.Assessment = "More negative than positive sentiment detected"
		assessment.Recommendation = "Investigate issues and adjust delivery strategy"
	case negative > 60:
		assessment.Status = SatisfactionCritical
		assessment.Assessment = "High level of dissatisfaction detected"
		assessment.Recommendation = "Urgent intervention required - review and revise strategy"
	default:
		assessment.Status = SatisfactionInconclusive
		assessment.Assessment = "Insufficient data for clear determination"
		assessment.Recommendation = "Collect more data and re-evaluate"
	}

	return assessment
}

// SatisfactionInsights names the best and worst performing sectors and
// lists those past the critical negative threshold.
type SatisfactionInsights struct {
	HighestSatisfactionCategory string   `json:"highest_satisfaction_category"`
	LowestSatisfactionCategory  string   `json:"lowest_satisfaction_category"`
	CriticalCategories          []string `json:"critical_categories"`
}

// GenerateSatisfactionInsights ranks sectors by satisfaction score. Ties
// keep enumeration order.
func GenerateSatisfactionInsights(stats []CategoryStats) SatisfactionInsights {
	insights := SatisfactionInsights{CriticalCategories: []string{}}
	if len(stats) == 0 {
		return insights
	}

	ranked := make([]CategoryStats, len(stats))
	copy(ranked, stats)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SatisfactionScore > ranked[j].SatisfactionScore
	})

	top := ranked[0]
	insights.HighestSatisfactionCategory = fmt.Sprintf("%s (%d/%d positive)",
		top.DisplayName, top.PositiveCount, top.TotalMentions)

	bottom := ranked[len(ranked)-1]
	insights.LowestSatisfactionCategory = fmt.Sprintf("%s (%d/%d negative)",
		bottom.DisplayName, bottom.NegativeCount, bottom.TotalMentions)

	for _, s := range stats {
		if s.NegativePercentage > urgentNegativePercentage {
			insights.CriticalCategories = append(insights.CriticalCategories, s.DisplayName)
		}
	}

	return insights
}

// ResourceAllocation assigns sectors to priority tiers by negative
// percentage. Urgent and moderate entries carry the percentage; stable
// sectors list the bare name.
type ResourceAllocation struct {
	UrgentAttentionRequired []string `json:"urgent_attention_required"`
	ModeratePriority        []string `json:"moderate_priority"`
	StableOperations        []string `json:"stable_operations"`
}

// GenerateResourceAllocation tiers sectors, worst first within each tier.
func GenerateResourceAllocation(stats []CategoryStats) ResourceAllocation {
	allocation := ResourceAllocation{
		UrgentAttentionRequired: []string{},
		ModeratePriority:        []string{},
		StableOperations:        []string{},
	}

	ranked := make([]CategoryStats, len(stats))
	copy(ranked, stats)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].NegativePercentage > ranked[j].NegativePercentage
	})

	for _, s := range ranked {
		switch {
		case s.NegativePercentage > urgentNegativePercentage:
			allocation.UrgentAttentionRequired = append(allocation.UrgentAttentionRequired,
				fmt.Sprintf("%s (%.1f%% negative)", s.DisplayName, s.NegativePercentage))
		case s.NegativePercentage > moderateNegativePercentage:
			allocation.ModeratePriority = append(allocation.ModeratePriority,
				fmt.Sprintf("%s (%.1f%% negative)", s.DisplayName, s.NegativePercentage))
		default:
			allocation.StableOperations = append(allocation.StableOperations, s.DisplayName)
		}
	}

	return allocation
}

// SatisfactionSummary rolls all sectors up into one headline block.
type SatisfactionSummary struct {
	TotalRecords             int     `json:"total_records"`
	TotalPositive            int     `json:"total_positive"`
	TotalNegative            int     `json:"total_negative"`
	TotalNeutral             int     `json:"total_neutral"`
	PositivePercentage       float64 `json:"positive_percentage"`
	NegativePercentage       float64 `json:"negative_percentage"`
	NeutralPercentage        float64 `json:"neutral_percentage"`
	OverallSatisfactionScore float64 `json:"overall_satisfaction_score"`
	CategoriesAnalyzed       int     `json:"categories_analyzed"`
}

// SummarizeSatisfaction totals the per sector stats.
func SummarizeSatisfaction(stats []CategoryStats) SatisfactionSummary {
	summary := SatisfactionSummary{CategoriesAnalyzed: len(stats)}

	for _, s := range stats {
		summary.TotalPositive += s.PositiveCount
		summary.TotalNegative += s.NegativeCount
		summary.TotalNeutral += s.NeutralCount
	}

	summary.TotalRecords = summary.TotalPositive + summary.TotalNegative + summary.TotalNeutral

	total := float64(summary.TotalRecords)
	if total > 0 {
		summary.PositivePercentage = float64(summary.TotalPositive) / total * 100
		summary.NegativePercentage = float64(summary.TotalNegative) / total * 100
		summary.NeutralPercentage = float64(summary.TotalNeutral) / total * 100
		summary.OverallSatisfactionScore = float64(summary.TotalPositive-summary.TotalNegative) / total
	}

	return summary
}
