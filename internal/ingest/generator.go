// Package ingest brings posts into storage: a seeded mock generator for
// development and demos, and a JSON feed loader for real exports.
package ingest

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
)

const (
	defaultSpanHours = 72
	maxCommentCount  = 3
)

// Generator produces unannotated mock posts spread over a time span ending
// now. A fixed seed reproduces the same feed shape (ids stay random).
type Generator struct {
	rand *rand.Rand
	span time.Duration
	now  func() time.Time
}

// NewGenerator builds a Generator. seed 0 derives one from the clock;
// spanHours <= 0 falls back to 72.
func NewGenerator(seed int64, spanHours int) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if spanHours <= 0 {
		spanHours = defaultSpanHours
	}

	return &Generator{
		rand: rand.New(rand.NewSource(seed)),
		span: time.Duration(spanHours) * time.Hour,
		now:  time.Now,
	}
}

// Generate produces count posts split evenly across the relief sectors.
// Posts early in the span draw from the crisis end of the template list,
// later ones from the recovery end, so trends emerge naturally once the
// pipeline has annotated them.
func (g *Generator) Generate(count int) []domain.Post {
	if count <= 0 {
		return nil
	}

	end := g.now()
	start := end.Add(-g.span)

	categories := domain.Categories()
	perCategory := count / len(categories)

	if perCategory == 0 {
		perCategory = 1
	}

	var posts []domain.Post

	for _, category := range categories {
		templates := postTemplates[category]

		for i := 0; i < perCategory && len(posts) < count; i++ {
			offset := time.Duration(g.rand.Int63n(int64(g.span)))
			createdAt := start.Add(offset)

			progress := float64(offset) / float64(g.span)
			templateIndex := int(progress * float64(len(templates)-1))

			post := domain.Post{
				ID:        uuid.NewString(),
				Source:    "mock",
				Author:    postAuthors[g.rand.Intn(len(postAuthors))],
				Content:   templates[templateIndex],
				CreatedAt: createdAt,
			}

			g.addComments(&post, category)
			posts = append(posts, post)
		}
	}

	return posts
}

func (g *Generator) addComments(post *domain.Post, category domain.Category) {
	templates := commentTemplates[category]

	count := g.rand.Intn(maxCommentCount) + 1
	for i := 0; i < count; i++ {
		post.AddComment(domain.Comment{
			ID:        uuid.NewString(),
			PostID:    post.ID,
			Author:    commentAuthors[i%len(commentAuthors)],
			Content:   templates[g.rand.Intn(len(templates))],
			CreatedAt: post.CreatedAt.Add(time.Duration(g.rand.Intn(48)) * time.Minute),
		})
	}
}
