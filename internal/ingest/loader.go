package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
	apperrors "github.com/reliefwatch/relief-pulse/internal/core/errors"
)

// feedPost is the wire form of an exported post. Timestamps are accepted
// in whatever format the exporting tool used.
type feedPost struct {
	ID        string        `json:"id"`
	Source    string        `json:"source"`
	Author    string        `json:"author"`
	Content   string        `json:"content"`
	CreatedAt string        `json:"created_at"`
	Comments  []feedComment `json:"comments"`
}

type feedComment struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// LoadFile reads a JSON array of posts from disk.
func LoadFile(path string) ([]domain.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feed file: %w", err)
	}

	return Parse(data)
}

// Parse decodes an exported feed. Posts without content are rejected;
// missing ids are generated so re-parsing produces new identities.
func Parse(data []byte) ([]domain.Post, error) {
	var feed []feedPost
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	posts := make([]domain.Post, 0, len(feed))

	for i, fp := range feed {
		if fp.Content == "" {
			return nil, fmt.Errorf("%w: post %d has no content", apperrors.ErrInvalidInput, i)
		}

		createdAt, err := dateparse.ParseAny(fp.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("post %d: parse created_at %q: %w", i, fp.CreatedAt, err)
		}

		post := domain.Post{
			ID:        fp.ID,
			Source:    fp.Source,
			Author:    fp.Author,
			Content:   fp.Content,
			CreatedAt: createdAt,
		}

		if post.ID == "" {
			post.ID = uuid.NewString()
		}

		for j, fc := range fp.Comments {
			commentAt, err := dateparse.ParseAny(fc.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("post %d comment %d: parse created_at %q: %w", i, j, fc.CreatedAt, err)
			}

			comment := domain.Comment{
				ID:        fc.ID,
				PostID:    post.ID,
				Author:    fc.Author,
				Content:   fc.Content,
				CreatedAt: commentAt,
			}

			if comment.ID == "" {
				comment.ID = uuid.NewString()
			}

			post.AddComment(comment)
		}

		posts = append(posts, post)
	}

	return posts, nil
}
