package analysis

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
)

// Trend thresholds on the change in positive ratio between the first and
// last bucket.
const (
	strongTrendThreshold = 0.15
	trendThreshold       = 0.05
)

// Sector effectiveness statuses.
const (
	StatusHighlyEffective = "HIGHLY EFFECTIVE"
	StatusEffective       = "EFFECTIVE"
	StatusCritical        = "CRITICAL - NEEDS URGENT ATTENTION"
	StatusNeedsAttention  = "NEEDS ATTENTION"
	StatusStable          = "STABLE"
)

// CategorySeries is the full time-series view of one relief sector.
type CategorySeries struct {
	Category             domain.Category   `json:"category"`
	DisplayName          string            `json:"display_name"`
	TimePoints           []TimePoint       `json:"time_points"`
	Trend                domain.TrendLabel `json:"trend"`
	OverallPositiveRatio float64           `json:"overall_positive_ratio"`
	OverallNegativeRatio float64           `json:"overall_negative_ratio"`
	TotalRecords         int               `json:"total_records"`
	Volatility           float64           `json:"sentiment_volatility"`
}

func newCategorySeries(category domain.Category, points []TimePoint) CategorySeries {
	series := CategorySeries{
		Category:    category,
		DisplayName: category.DisplayName(),
		TimePoints:  points,
		Trend:       CalculateTrend(points),
		Volatility:  CalculateVolatility(points),
	}

	var positive, negative int
	for _, p := range points {
		positive += p.PositiveCount
		negative += p.NegativeCount
		series.TotalRecords += p.TotalCount
	}

	if series.TotalRecords > 0 {
		series.OverallPositiveRatio = float64(positive) / float64(series.TotalRecords)
		series.OverallNegativeRatio = float64(negative) / float64(series.TotalRecords)
	}

	return series
}

// CalculateTrend compares the positive ratio of the first and last bucket.
// Fewer than two buckets cannot show a direction.
func CalculateTrend(points []TimePoint) domain.TrendLabel {
	if len(points) < 2 {
		return domain.TrendInsufficientData
	}

	change := points[len(points)-1].PositiveRatio - points[0].PositiveRatio

	switch {
	case change > strongTrendThreshold:
		return domain.TrendStronglyImproving
	case change > trendThreshold:
		return domain.TrendImproving
	case change < -strongTrendThreshold:
		return domain.TrendStronglyDeteriorating
	case change < -trendThreshold:
		return domain.TrendDeteriorating
	default:
		return domain.TrendStable
	}
}

// CalculateVolatility is the root mean square of the score deltas between
// successive buckets, normalized by the number of deltas. A flat series
// scores zero regardless of its level.
func CalculateVolatility(points []TimePoint) float64 {
	if len(points) < 2 {
		return 0
	}

	var sumSquared float64
	for i := 1; i < len(points); i++ {
		delta := points[i].SentimentScore - points[i-1].SentimentScore
		sumSquared += delta * delta
	}

	return math.Sqrt(sumSquared / float64(len(points)-1))
}

// SectorEffectiveness is the operational judgement for one sector, derived
// from its trend and overall positive ratio.
type SectorEffectiveness struct {
	Category       domain.Category   `json:"category"`
	DisplayName    string            `json:"display_name"`
	Trend          domain.TrendLabel `json:"trend"`
	PositiveRatio  float64           `json:"positive_sentiment_ratio"`
	Status         string            `json:"status"`
	Recommendation string            `json:"recommendation"`
}

// DetermineEffectiveness maps a series onto a status and recommendation.
// The trend picks both; an overall positive ratio above 0.7 or below 0.3
// then overrides the status but keeps the trend's recommendation.
func DetermineEffectiveness(series CategorySeries) SectorEffectiveness {
	eff := SectorEffectiveness{
		Category:      series.Category,
		DisplayName:   series.DisplayName,
		Trend:         series.Trend,
		PositiveRatio: series.OverallPositiveRatio,
	}

	switch series.Trend {
	case domain.TrendStronglyImproving:
		eff.Status = StatusHighlyEffective
		eff.Recommendation = "Continue current approach - strong positive momentum"
	case domain.TrendImproving:
		eff.Status = StatusEffective
		eff.Recommendation = "Current efforts are working - maintain and optimize"
	case domain.TrendStronglyDeteriorating:
		eff.Status = StatusCritical
		eff.Recommendation = "Immediate intervention required - sentiment declining rapidly"
	case domain.TrendDeteriorating:
		eff.Status = StatusNeedsAttention
		eff.Recommendation = "Monitor closely and adjust strategy"
	default:
		eff.Status = StatusStable
		eff.Recommendation = "Maintain current operations while seeking improvements"
	}

	if series.OverallPositiveRatio > 0.7 {
		eff.Status = StatusHighlyEffective
	} else if series.OverallPositiveRatio < 0.3 {
		eff.Status = StatusCritical
	}

	return eff
}

// CategoryInsight highlights the best and worst buckets of a sector and
// carries a narrative reading of its series.
type CategoryInsight struct {
	Category             domain.Category `json:"category"`
	DisplayName          string          `json:"display_name"`
	PeakSentimentTime    time.Time       `json:"peak_sentiment_time"`
	PeakSentimentScore   float64         `json:"peak_sentiment_score"`
	LowestSentimentTime  time.Time       `json:"lowest_sentiment_time"`
	LowestSentimentScore float64         `json:"lowest_sentiment_score"`
	Narrative            string          `json:"narrative"`
}

// GenerateInsight finds the peak and lowest buckets of a series. Ties keep
// the earliest bucket.
func GenerateInsight(series CategorySeries) CategoryInsight {
	insight := CategoryInsight{
		Category:    series.Category,
		DisplayName: series.DisplayName,
		Narrative:   generateNarrative(series),
	}

	for i, p := range series.TimePoints {
		if i == 0 || p.SentimentScore > insight.PeakSentimentScore {
			insight.PeakSentimentScore = p.SentimentScore
			insight.PeakSentimentTime = p.Timestamp
		}

		if i == 0 || p.SentimentScore < insight.LowestSentimentScore {
			insight.LowestSentimentScore = p.SentimentScore
			insight.LowestSentimentTime = p.Timestamp
		}
	}

	return insight
}

func generateNarrative(series CategorySeries) string {
	name := series.DisplayName
	positive := series.OverallPositiveRatio

	var b strings.Builder
	b.WriteString(name)
	b.WriteString(": ")

	switch {
	case series.Trend == domain.TrendStronglyImproving && positive > 0.7:
		fmt.Fprintf(&b, "Strong increase in positive sentiment. %s aid distribution activities are well regarded and demonstrating high effectiveness. Public confidence in this relief sector is growing significantly.", name)
	case series.Trend == domain.TrendImproving && positive > 0.6:
		fmt.Fprintf(&b, "Positive sentiment is increasing over time. %s relief efforts are being received favorably, indicating reasonable effectiveness.", name)
	case series.Trend == domain.TrendStable && positive > 0.6:
		fmt.Fprintf(&b, "Consistent positive sentiment maintained. %s services are stable and meeting expectations.", name)
	case series.Trend == domain.TrendDeteriorating || series.Trend == domain.TrendStronglyDeteriorating:
		fmt.Fprintf(&b, "Declining sentiment detected. %s relief efforts are facing challenges or public dissatisfaction. This sector requires strategic review and potential intervention.", name)
	case positive < 0.4:
		fmt.Fprintf(&b, "Significant negative sentiment. %s shows infrastructure damage, service gaps, or ongoing unmet needs. Urgent attention and resource allocation recommended.", name)
	}

	return b.String()
}

// TimeSeriesSummary counts sectors per effectiveness bracket.
type TimeSeriesSummary struct {
	HighlyEffectiveSectors  int `json:"highly_effective_sectors"`
	SectorsNeedingAttention int `json:"sectors_needing_attention"`
	CriticalSectors         int `json:"critical_sectors"`
	TotalSectorsAnalyzed    int `json:"total_sectors_analyzed"`
}

// SummarizeEffectiveness tallies statuses. Matching is by substring in
// bracket order, so the combined critical status counts as critical and a
// plain EFFECTIVE lands in no bracket.
func SummarizeEffectiveness(sectors []SectorEffectiveness) TimeSeriesSummary {
	summary := TimeSeriesSummary{TotalSectorsAnalyzed: len(sectors)}

	for _, sector := range sectors {
		switch {
		case strings.Contains(sector.Status, StatusHighlyEffective):
			summary.HighlyEffectiveSectors++
		case strings.Contains(sector.Status, StatusNeedsAttention):
			summary.SectorsNeedingAttention++
		case strings.Contains(sector.Status, "CRITICAL"):
			summary.CriticalSectors++
		}
	}

	return summary
}
