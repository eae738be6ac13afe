package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefwatch/relief-pulse/internal/analysis"
	"github.com/reliefwatch/relief-pulse/internal/core/domain"
	"github.com/reliefwatch/relief-pulse/internal/process/classify"
	"github.com/reliefwatch/relief-pulse/internal/process/sentiment"
)

type stubRepo struct {
	posts      []domain.Post
	calls      int
	sinceCalls int
	lastSince  time.Time
}

func (s *stubRepo) GetPosts(context.Context) ([]domain.Post, error) {
	s.calls++

	return s.posts, nil
}

func (s *stubRepo) GetPostsSince(_ context.Context, since time.Time) ([]domain.Post, error) {
	s.sinceCalls++
	s.lastSince = since

	var out []domain.Post
	for _, p := range s.posts {
		if !p.CreatedAt.Before(since) {
			out = append(out, p)
		}
	}

	return out, nil
}

func newTestServer(repo Repository) *Server {
	logger := zerolog.Nop()
	reporter := analysis.NewReporter(6, "keyword-enhanced-v2", &logger)
	analyzer := sentiment.NewLocal(sentiment.NewEnhanced(), classify.New())

	return New(repo, reporter, analyzer, "", 0, &logger)
}

func testPosts() []domain.Post {
	now := time.Now()

	return []domain.Post{
		{
			ID:         "p1",
			Content:    "food distribution went well",
			CreatedAt:  now.Add(-2 * time.Hour),
			Sentiment:  &domain.Sentiment{Type: domain.SentimentPositive, Confidence: 0.8},
			ReliefItem: &domain.ReliefItem{Category: domain.CategoryFood, Priority: 3},
		},
		{
			ID:         "p2",
			Content:    "no medicine in the district",
			CreatedAt:  now.Add(-50 * time.Hour),
			Sentiment:  &domain.Sentiment{Type: domain.SentimentNegative, Confidence: 0.7},
			ReliefItem: &domain.ReliefItem{Category: domain.CategoryMedical, Priority: 3},
		},
	}
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)

	return rec
}

func TestRootEndpoint(t *testing.T) {
	s := newTestServer(&stubRepo{})

	rec := doRequest(t, s, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "relief-pulse")
}

func TestGetReportCaches(t *testing.T) {
	repo := &stubRepo{posts: testPosts()}
	s := newTestServer(repo)

	rec := doRequest(t, s, http.MethodGet, "/api/report", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var report analysis.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 2, report.TotalPostsAnalyzed)
	assert.Len(t, report.TimeSeries, 2)

	rec = doRequest(t, s, http.MethodGet, "/api/report", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, repo.calls)
}

func TestRefreshReport(t *testing.T) {
	repo := &stubRepo{posts: testPosts()}
	s := newTestServer(repo)

	rec := doRequest(t, s, http.MethodPost, "/api/report/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/api/report/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, repo.calls)
}

func TestGetWindowedReport(t *testing.T) {
	repo := &stubRepo{posts: testPosts()}
	s := newTestServer(repo)

	rec := doRequest(t, s, http.MethodGet, "/api/report?window_hours=24", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var report analysis.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 1, report.TotalPostsAnalyzed)
	assert.Equal(t, 1, repo.sinceCalls)
	assert.Zero(t, repo.calls)
}

func TestGetWindowedReportBadParam(t *testing.T) {
	s := newTestServer(&stubRepo{})

	for _, window := range []string{"abc", "-3", "0"} {
		rec := doRequest(t, s, http.MethodGet, "/api/report?window_hours="+window, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, window)
	}
}

func TestClassify(t *testing.T) {
	s := newTestServer(&stubRepo{})

	rec := doRequest(t, s, http.MethodPost, "/api/classify",
		`{"text": "thank you for the excellent medical support"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp classifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.SentimentPositive, resp.Sentiment)
	assert.True(t, resp.Classified)
	assert.Equal(t, domain.CategoryMedical, resp.Category)
	assert.Equal(t, "keyword-enhanced-v2+rules", resp.Model)
}

func TestClassifyMissingText(t *testing.T) {
	s := newTestServer(&stubRepo{})

	rec := doRequest(t, s, http.MethodPost, "/api/classify", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
