package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
	coreerrors "github.com/reliefwatch/relief-pulse/internal/core/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := zerolog.Nop()

	return NewClient(srv.URL, 100, 0, &logger)
}

func TestClientScore(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/analyze", r.URL.Path)

		var req analyzeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "thank you for the aid", req.Text)

		_ = json.NewEncoder(w).Encode(analyzeResponse{Sentiment: "positive", Confidence: 0.93})
	}))

	sentiment, err := client.Score(context.Background(), "thank you for the aid")
	require.NoError(t, err)
	assert.Equal(t, domain.SentimentPositive, sentiment.Type)
	assert.InDelta(t, 0.93, sentiment.Confidence, 1e-9)
	assert.Equal(t, "thank you for the aid", sentiment.RawText)
}

func TestClientScoreEmptyText(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for empty text")
	}))

	sentiment, err := client.Score(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, domain.SentimentNeutral, sentiment.Type)
	assert.Zero(t, sentiment.Confidence)
}

func TestClientScoreServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))

	_, err := client.Score(context.Background(), "some text")
	require.ErrorIs(t, err, coreerrors.ErrRemoteStatus)
}

func TestClientClassify(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/classify_category", r.URL.Path)

		_ = json.NewEncoder(w).Encode(classifyResponse{
			Category:     "medical",
			Confidence:   0.88,
			Model:        "distilbert-relief",
			CategoryName: "Medical Aid",
		})
	}))

	category, ok, err := client.Classify(context.Background(), "we need doctors and medicine")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.CategoryMedical, category)
}

func TestClientClassifyUnknownCategory(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(classifyResponse{Category: "logistics", Confidence: 0.5})
	}))

	_, ok, err := client.Classify(context.Background(), "warehouse capacity report")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClientHealthy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "ok", status: http.StatusOK, body: `{"status":"ok"}`},
		{name: "healthy", status: http.StatusOK, body: `{"status":"healthy"}`},
		{name: "degraded", status: http.StatusOK, body: `{"status":"degraded"}`, wantErr: coreerrors.ErrRemoteStatus},
		{name: "non-200", status: http.StatusInternalServerError, body: `{}`, wantErr: coreerrors.ErrRemoteStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/health", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			err := client.Healthy(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
		})
	}
}

type stubAnalyzer struct {
	sentiment domain.Sentiment
	category  domain.Category
	ok        bool
	err       error
	calls     int
}

func (s *stubAnalyzer) Score(_ context.Context, _ string) (domain.Sentiment, error) {
	s.calls++
	if s.err != nil {
		return domain.Sentiment{}, s.err
	}

	return s.sentiment, nil
}

func (s *stubAnalyzer) Classify(_ context.Context, _ string) (domain.Category, bool, error) {
	s.calls++
	if s.err != nil {
		return "", false, s.err
	}

	return s.category, s.ok, nil
}

func (s *stubAnalyzer) ModelName() string { return "stub" }

func TestFallbackScoreUsesBackupOnError(t *testing.T) {
	primary := &stubAnalyzer{err: errors.New("connection refused")}
	backup := &stubAnalyzer{sentiment: domain.Sentiment{Type: domain.SentimentNegative, Confidence: 0.7}}

	logger := zerolog.Nop()

	fallbacks := 0
	fb := NewFallback(primary, backup, &logger, WithFallbackHook(func() { fallbacks++ }))

	sentiment, err := fb.Score(context.Background(), "the flood destroyed everything")
	require.NoError(t, err)
	assert.Equal(t, domain.SentimentNegative, sentiment.Type)
	assert.Equal(t, 1, fallbacks)
	assert.Equal(t, 1, backup.calls)
}

func TestFallbackScorePrimarySucceeds(t *testing.T) {
	primary := &stubAnalyzer{sentiment: domain.Sentiment{Type: domain.SentimentPositive, Confidence: 0.9}}
	backup := &stubAnalyzer{}

	logger := zerolog.Nop()
	fb := NewFallback(primary, backup, &logger)

	sentiment, err := fb.Score(context.Background(), "thank you")
	require.NoError(t, err)
	assert.Equal(t, domain.SentimentPositive, sentiment.Type)
	assert.Zero(t, backup.calls)
}

func TestFallbackClassifyDefaultCategory(t *testing.T) {
	primary := &stubAnalyzer{err: errors.New("timeout")}
	backup := &stubAnalyzer{ok: false}

	logger := zerolog.Nop()
	fb := NewFallback(primary, backup, &logger, WithDefaultCategory(domain.CategoryFood))

	category, ok, err := fb.Classify(context.Background(), "please send anything you can")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.CategoryFood, category)
}

func TestFallbackClassifyBackupMatchWins(t *testing.T) {
	primary := &stubAnalyzer{err: errors.New("timeout")}
	backup := &stubAnalyzer{category: domain.CategoryShelter, ok: true}

	logger := zerolog.Nop()
	fb := NewFallback(primary, backup, &logger, WithDefaultCategory(domain.CategoryFood))

	category, ok, err := fb.Classify(context.Background(), "tents are collapsing in the rain")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.CategoryShelter, category)
}

func TestFallbackClassifyBothFail(t *testing.T) {
	primary := &stubAnalyzer{err: errors.New("timeout")}
	backup := &stubAnalyzer{err: errors.New("bad rules")}

	logger := zerolog.Nop()
	fb := NewFallback(primary, backup, &logger)

	_, _, err := fb.Classify(context.Background(), "anything")
	require.Error(t, err)
}
