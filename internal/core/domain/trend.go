package domain

// TrendLabel classifies the direction of change in positive-sentiment ratio
// between the first and last time bucket of a category.
type TrendLabel string

// Trend labels.
const (
	TrendInsufficientData      TrendLabel = "INSUFFICIENT_DATA"
	TrendStronglyImproving     TrendLabel = "STRONGLY_IMPROVING"
	TrendImproving             TrendLabel = "IMPROVING"
	TrendStable                TrendLabel = "STABLE"
	TrendDeteriorating         TrendLabel = "DETERIORATING"
	TrendStronglyDeteriorating TrendLabel = "STRONGLY_DETERIORATING"
)
