package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
)

func toUUID(id string) pgtype.UUID {
	u, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{Valid: false}
	}

	return pgtype.UUID{Bytes: u, Valid: true}
}

func fromUUID(uid pgtype.UUID) string {
	if !uid.Valid {
		return ""
	}

	return uuid.UUID(uid.Bytes).String()
}

func toTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func sentimentFields(s *domain.Sentiment) (pgtype.Text, pgtype.Float8) {
	if s == nil {
		return pgtype.Text{}, pgtype.Float8{}
	}

	return pgtype.Text{String: string(s.Type), Valid: true},
		pgtype.Float8{Float64: s.Confidence, Valid: true}
}

func reliefFields(r *domain.ReliefItem) (pgtype.Text, pgtype.Text, pgtype.Int4) {
	if r == nil {
		return pgtype.Text{}, pgtype.Text{}, pgtype.Int4{}
	}

	return pgtype.Text{String: string(r.Category), Valid: true},
		pgtype.Text{String: r.Description, Valid: true},
		pgtype.Int4{Int32: int32(r.Priority), Valid: true}
}

func sentimentFromColumns(sentType pgtype.Text, confidence pgtype.Float8, rawText string) *domain.Sentiment {
	if !sentType.Valid {
		return nil
	}

	polarity, err := domain.ParseSentimentType(sentType.String)
	if err != nil {
		return nil
	}

	return &domain.Sentiment{
		Type:       polarity,
		Confidence: confidence.Float64,
		RawText:    rawText,
	}
}

func reliefFromColumns(category, description pgtype.Text, priority pgtype.Int4) *domain.ReliefItem {
	if !category.Valid {
		return nil
	}

	parsed, err := domain.ParseCategory(category.String)
	if err != nil {
		return nil
	}

	return &domain.ReliefItem{
		Category:    parsed,
		Description: description.String,
		Priority:    int(priority.Int32),
	}
}
