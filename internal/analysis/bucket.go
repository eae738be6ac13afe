// Package analysis turns annotated posts into the two report views: a per
// sector time series of sentiment with trend and effectiveness judgements,
// and a satisfaction assessment with resource allocation recommendations.
package analysis

import (
	"sort"
	"time"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
)

// DefaultBucketHours is the window width used when none is configured.
const DefaultBucketHours = 6

// BucketTimestamp floors a timestamp to the start of its window within the
// day. With the default six hour window the buckets start at 00, 06, 12
// and 18 o'clock.
func BucketTimestamp(t time.Time, windowHours int) time.Time {
	if windowHours <= 0 || windowHours > 24 {
		windowHours = DefaultBucketHours
	}

	hour := t.Hour() / windowHours * windowHours

	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

// TimePoint is the sentiment tally of one bucket. Ratios are fractions of
// TotalCount; SentimentScore is (positive-negative)/total in [-1,1].
type TimePoint struct {
	Timestamp      time.Time `json:"timestamp"`
	PositiveCount  int       `json:"positive_count"`
	NegativeCount  int       `json:"negative_count"`
	NeutralCount   int       `json:"neutral_count"`
	TotalCount     int       `json:"total_count"`
	PositiveRatio  float64   `json:"positive_ratio"`
	NegativeRatio  float64   `json:"negative_ratio"`
	NeutralRatio   float64   `json:"neutral_ratio"`
	SentimentScore float64   `json:"sentiment_score"`
}

func newTimePoint(ts time.Time, sentiments []domain.Sentiment) TimePoint {
	point := TimePoint{Timestamp: ts, TotalCount: len(sentiments)}

	for _, s := range sentiments {
		switch {
		case s.IsPositive():
			point.PositiveCount++
		case s.IsNegative():
			point.NegativeCount++
		default:
			point.NeutralCount++
		}
	}

	total := float64(point.TotalCount)
	if total > 0 {
		point.PositiveRatio = float64(point.PositiveCount) / total
		point.NegativeRatio = float64(point.NegativeCount) / total
		point.NeutralRatio = float64(point.NeutralCount) / total
		point.SentimentScore = float64(point.PositiveCount-point.NegativeCount) / total
	}

	return point
}

// annotated yields every sentiment that carries a relief item, from posts
// and their comments alike. Unannotated records never reach the reports.
type annotated struct {
	category  domain.Category
	sentiment domain.Sentiment
	createdAt time.Time
}

func collectAnnotated(posts []domain.Post) []annotated {
	var records []annotated

	for i := range posts {
		post := &posts[i]
		if post.ReliefItem != nil && post.Sentiment != nil {
			records = append(records, annotated{
				category:  post.ReliefItem.Category,
				sentiment: *post.Sentiment,
				createdAt: post.CreatedAt,
			})
		}

		for j := range post.Comments {
			comment := &post.Comments[j]
			if comment.ReliefItem != nil && comment.Sentiment != nil {
				records = append(records, annotated{
					category:  comment.ReliefItem.Category,
					sentiment: *comment.Sentiment,
					createdAt: comment.CreatedAt,
				})
			}
		}
	}

	return records
}

// bucketByCategory groups annotated records into chronological time points
// per category.
func bucketByCategory(records []annotated, windowHours int) map[domain.Category][]TimePoint {
	grouped := make(map[domain.Category]map[time.Time][]domain.Sentiment)

	for _, rec := range records {
		bucket := BucketTimestamp(rec.createdAt, windowHours)

		buckets, ok := grouped[rec.category]
		if !ok {
			buckets = make(map[time.Time][]domain.Sentiment)
			grouped[rec.category] = buckets
		}

		buckets[bucket] = append(buckets[bucket], rec.sentiment)
	}

	result := make(map[domain.Category][]TimePoint, len(grouped))

	for category, buckets := range grouped {
		timestamps := make([]time.Time, 0, len(buckets))
		for ts := range buckets {
			timestamps = append(timestamps, ts)
		}

		sort.Slice(timestamps, func(i, j int) bool { return timestamps[i].Before(timestamps[j]) })

		points := make([]TimePoint, 0, len(timestamps))
		for _, ts := range timestamps {
			points = append(points, newTimePoint(ts, buckets[ts]))
		}

		result[category] = points
	}

	return result
}
