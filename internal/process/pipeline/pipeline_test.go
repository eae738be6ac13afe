package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
	"github.com/reliefwatch/relief-pulse/internal/disaster"
	"github.com/reliefwatch/relief-pulse/internal/process/classify"
	"github.com/reliefwatch/relief-pulse/internal/process/sentiment"
)

type mockRepo struct {
	mu      sync.Mutex
	pending []domain.Post
	saved   map[string]domain.Post
	models  map[string]string
	saveErr error
}

func newMockRepo(posts ...domain.Post) *mockRepo {
	return &mockRepo{
		pending: posts,
		saved:   map[string]domain.Post{},
		models:  map[string]string{},
	}
}

func (m *mockRepo) GetUnannotatedPosts(_ context.Context, limit int) ([]domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit > len(m.pending) {
		limit = len(m.pending)
	}

	batch := make([]domain.Post, limit)
	copy(batch, m.pending[:limit])
	m.pending = m.pending[limit:]

	return batch, nil
}

func (m *mockRepo) SaveAnnotations(_ context.Context, post *domain.Post, model string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}

	m.saved[post.ID] = *post
	m.models[post.ID] = model

	return nil
}

func (m *mockRepo) CountUnannotated(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.pending), nil
}

func localAnalyzer() *sentiment.Local {
	return sentiment.NewLocal(sentiment.NewEnhanced(), classify.New())
}

func newTestPipeline(repo Repository, opts ...Option) *Pipeline {
	logger := zerolog.Nop()

	return New(repo, localAnalyzer(), disaster.NewDefaultRegistry(), &logger, opts...)
}

func TestProcessBatchAnnotates(t *testing.T) {
	post := domain.Post{
		ID:        "p1",
		Source:    "twitter",
		Content:   "Thank you for the excellent medical support after typhoon Yagi",
		CreatedAt: time.Now(),
	}
	post.AddComment(domain.Comment{
		ID:        "c1",
		PostID:    "p1",
		Content:   "medicine is still missing and the clinic has a serious problem",
		CreatedAt: time.Now(),
	})

	repo := newMockRepo(post)
	p := newTestPipeline(repo)

	require.NoError(t, p.ProcessBatch(context.Background()))

	saved, ok := repo.saved["p1"]
	require.True(t, ok)

	require.NotNil(t, saved.Sentiment)
	assert.Equal(t, domain.SentimentPositive, saved.Sentiment.Type)

	require.NotNil(t, saved.ReliefItem)
	assert.Equal(t, domain.CategoryMedical, saved.ReliefItem.Category)
	assert.Equal(t, "Auto-classified", saved.ReliefItem.Description)
	assert.Equal(t, 3, saved.ReliefItem.Priority)

	assert.Equal(t, "yagi", saved.DisasterKeyword)
	assert.Equal(t, "keyword-enhanced-v2+rules", repo.models["p1"])

	require.Len(t, saved.Comments, 1)
	require.NotNil(t, saved.Comments[0].Sentiment)
	assert.Equal(t, domain.SentimentNegative, saved.Comments[0].Sentiment.Type)
	require.NotNil(t, saved.Comments[0].ReliefItem)
	assert.Equal(t, domain.CategoryMedical, saved.Comments[0].ReliefItem.Category)
}

func TestProcessBatchNeverOverwrites(t *testing.T) {
	existing := &domain.Sentiment{Type: domain.SentimentNegative, Confidence: 0.95, RawText: "curated"}
	item := &domain.ReliefItem{Category: domain.CategoryShelter, Description: "Manually reviewed", Priority: 5}

	repo := newMockRepo(domain.Post{
		ID:              "p1",
		Content:         "thank you for the wonderful food distribution",
		CreatedAt:       time.Now(),
		Sentiment:       existing,
		ReliefItem:      item,
		DisasterKeyword: "matmo",
	})

	p := newTestPipeline(repo)
	require.NoError(t, p.ProcessBatch(context.Background()))

	saved := repo.saved["p1"]
	assert.Equal(t, existing, saved.Sentiment)
	assert.Equal(t, item, saved.ReliefItem)
	assert.Equal(t, "matmo", saved.DisasterKeyword)
}

func TestProcessBatchUnclassifiableStaysUnclassified(t *testing.T) {
	repo := newMockRepo(domain.Post{
		ID:        "p1",
		Content:   "the sun rose over the coast this morning",
		CreatedAt: time.Now(),
	})

	p := newTestPipeline(repo)
	require.NoError(t, p.ProcessBatch(context.Background()))

	saved := repo.saved["p1"]
	require.NotNil(t, saved.Sentiment)
	assert.Equal(t, domain.SentimentNeutral, saved.Sentiment.Type)
	assert.Nil(t, saved.ReliefItem)
	assert.Empty(t, saved.DisasterKeyword)
}

type failingAnalyzer struct{}

func (failingAnalyzer) Score(context.Context, string) (domain.Sentiment, error) {
	return domain.Sentiment{}, errors.New("model offline")
}

func (failingAnalyzer) Classify(context.Context, string) (domain.Category, bool, error) {
	return "", false, errors.New("model offline")
}

func (failingAnalyzer) ModelName() string { return "failing" }

func TestProcessBatchSkipsFailingPosts(t *testing.T) {
	repo := newMockRepo(
		domain.Post{ID: "p1", Content: "text", CreatedAt: time.Now()},
		domain.Post{ID: "p2", Content: "text", CreatedAt: time.Now()},
	)

	logger := zerolog.Nop()
	p := New(repo, failingAnalyzer{}, disaster.NewDefaultRegistry(), &logger)

	require.NoError(t, p.ProcessBatch(context.Background()))
	assert.Empty(t, repo.saved)
}

func TestProcessBatchRespectsBatchSize(t *testing.T) {
	var posts []domain.Post
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		posts = append(posts, domain.Post{ID: id, Content: "thank you", CreatedAt: time.Now()})
	}

	repo := newMockRepo(posts...)
	p := newTestPipeline(repo, WithBatchSize(2), WithConcurrency(2))

	require.NoError(t, p.ProcessBatch(context.Background()))
	assert.Len(t, repo.saved, 2)

	count, err := repo.CountUnannotated(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRunDrainsBacklog(t *testing.T) {
	repo := newMockRepo(
		domain.Post{ID: "p1", Content: "thank you for the rescue", CreatedAt: time.Now()},
		domain.Post{ID: "p2", Content: "no water and no help", CreatedAt: time.Now()},
	)

	p := newTestPipeline(repo, WithPollInterval(time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "context"))

	assert.Len(t, repo.saved, 2)
}
