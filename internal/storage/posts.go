package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
)

const postColumns = `id, source, author, content, created_at,
	sentiment_type, sentiment_confidence,
	relief_category, relief_description, relief_priority,
	disaster_keyword`

const commentColumns = `id, post_id, author, content, created_at,
	sentiment_type, sentiment_confidence,
	relief_category, relief_description, relief_priority`

// SavePost inserts a post and its comments. Existing rows are left
// untouched, so re-ingesting the same feed is safe.
func (db *DB) SavePost(ctx context.Context, post *domain.Post) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		//nolint:errcheck // rollback after commit is a no-op
		_ = tx.Rollback(ctx)
	}()

	sentType, sentConf := sentimentFields(post.Sentiment)
	reliefCat, reliefDesc, reliefPrio := reliefFields(post.ReliefItem)

	if _, err = tx.Exec(ctx, `
		INSERT INTO posts (id, source, author, content, created_at,
			sentiment_type, sentiment_confidence,
			relief_category, relief_description, relief_priority,
			disaster_keyword)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING`,
		toUUID(post.ID), post.Source, post.Author, post.Content, toTimestamptz(post.CreatedAt),
		sentType, sentConf, reliefCat, reliefDesc, reliefPrio,
		post.DisasterKeyword,
	); err != nil {
		return fmt.Errorf("save post: %w", err)
	}

	for i := range post.Comments {
		if err = saveComment(ctx, tx, &post.Comments[i]); err != nil {
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func saveComment(ctx context.Context, tx pgx.Tx, comment *domain.Comment) error {
	sentType, sentConf := sentimentFields(comment.Sentiment)
	reliefCat, reliefDesc, reliefPrio := reliefFields(comment.ReliefItem)

	if _, err := tx.Exec(ctx, `
		INSERT INTO comments (id, post_id, author, content, created_at,
			sentiment_type, sentiment_confidence,
			relief_category, relief_description, relief_priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id, post_id) DO NOTHING`,
		toUUID(comment.ID), toUUID(comment.PostID), comment.Author, comment.Content,
		toTimestamptz(comment.CreatedAt),
		sentType, sentConf, reliefCat, reliefDesc, reliefPrio,
	); err != nil {
		return fmt.Errorf("save comment: %w", err)
	}

	return nil
}

// GetUnannotatedPosts returns the oldest posts that have not been through
// the annotation pipeline yet, with their comments attached.
func (db *DB) GetUnannotatedPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE annotated_at IS NULL
		ORDER BY created_at
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("get unannotated posts: %w", err)
	}

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}

	if err = db.attachComments(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// GetPosts returns all posts with their comments, oldest first.
func (db *DB) GetPosts(ctx context.Context) ([]domain.Post, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts
		ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("get posts: %w", err)
	}

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}

	if err = db.attachComments(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// GetPostsSince returns posts created at or after the given time, with
// their comments, oldest first.
func (db *DB) GetPostsSince(ctx context.Context, since time.Time) ([]domain.Post, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE created_at >= $1
		ORDER BY created_at`, toTimestamptz(since))
	if err != nil {
		return nil, fmt.Errorf("get posts since: %w", err)
	}

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}

	if err = db.attachComments(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// CountUnannotated reports the annotation backlog size.
func (db *DB) CountUnannotated(ctx context.Context) (int, error) {
	var count int
	if err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM posts WHERE annotated_at IS NULL`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unannotated: %w", err)
	}

	return count, nil
}

// SaveAnnotations persists the annotations of a post and its comments and
// marks the post as processed. model records which analyzer produced them.
func (db *DB) SaveAnnotations(ctx context.Context, post *domain.Post, model string) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		//nolint:errcheck // rollback after commit is a no-op
		_ = tx.Rollback(ctx)
	}()

	sentType, sentConf := sentimentFields(post.Sentiment)
	reliefCat, reliefDesc, reliefPrio := reliefFields(post.ReliefItem)

	if _, err = tx.Exec(ctx, `
		UPDATE posts
		SET sentiment_type = $2,
			sentiment_confidence = $3,
			relief_category = $4,
			relief_description = $5,
			relief_priority = $6,
			disaster_keyword = $7,
			annotation_model = $8,
			annotated_at = now()
		WHERE id = $1`,
		toUUID(post.ID),
		sentType, sentConf, reliefCat, reliefDesc, reliefPrio,
		post.DisasterKeyword, model,
	); err != nil {
		return fmt.Errorf("save post annotations: %w", err)
	}

	for i := range post.Comments {
		comment := &post.Comments[i]
		cSentType, cSentConf := sentimentFields(comment.Sentiment)
		cReliefCat, cReliefDesc, cReliefPrio := reliefFields(comment.ReliefItem)

		if _, err = tx.Exec(ctx, `
			UPDATE comments
			SET sentiment_type = $3,
				sentiment_confidence = $4,
				relief_category = $5,
				relief_description = $6,
				relief_priority = $7
			WHERE id = $1 AND post_id = $2`,
			toUUID(comment.ID), toUUID(comment.PostID),
			cSentType, cSentConf, cReliefCat, cReliefDesc, cReliefPrio,
		); err != nil {
			return fmt.Errorf("save comment annotations: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func (db *DB) attachComments(ctx context.Context, posts []domain.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, len(posts))
	index := make(map[string]int, len(posts))

	for i := range posts {
		ids[i] = posts[i].ID
		index[posts[i].ID] = i
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT `+commentColumns+`
		FROM comments
		WHERE post_id = ANY($1)
		ORDER BY created_at`, ids)
	if err != nil {
		return fmt.Errorf("get comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return err
		}

		if i, ok := index[comment.PostID]; ok {
			posts[i].Comments = append(posts[i].Comments, comment)
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("iterate comments: %w", err)
	}

	return nil
}

func scanPosts(rows pgx.Rows) ([]domain.Post, error) {
	defer rows.Close()

	var posts []domain.Post

	for rows.Next() {
		var (
			id         pgtype.UUID
			source     string
			author     string
			content    string
			createdAt  pgtype.Timestamptz
			sentType   pgtype.Text
			sentConf   pgtype.Float8
			reliefCat  pgtype.Text
			reliefDesc pgtype.Text
			reliefPrio pgtype.Int4
			keyword    string
		)

		if err := rows.Scan(&id, &source, &author, &content, &createdAt,
			&sentType, &sentConf, &reliefCat, &reliefDesc, &reliefPrio, &keyword); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}

		posts = append(posts, domain.Post{
			ID:              fromUUID(id),
			Source:          source,
			Author:          author,
			Content:         content,
			CreatedAt:       createdAt.Time,
			Sentiment:       sentimentFromColumns(sentType, sentConf, content),
			ReliefItem:      reliefFromColumns(reliefCat, reliefDesc, reliefPrio),
			DisasterKeyword: keyword,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	return posts, nil
}

func scanComment(rows pgx.Rows) (domain.Comment, error) {
	var (
		id         pgtype.UUID
		postID     pgtype.UUID
		author     string
		content    string
		createdAt  pgtype.Timestamptz
		sentType   pgtype.Text
		sentConf   pgtype.Float8
		reliefCat  pgtype.Text
		reliefDesc pgtype.Text
		reliefPrio pgtype.Int4
	)

	if err := rows.Scan(&id, &postID, &author, &content, &createdAt,
		&sentType, &sentConf, &reliefCat, &reliefDesc, &reliefPrio); err != nil {
		return domain.Comment{}, fmt.Errorf("scan comment: %w", err)
	}

	return domain.Comment{
		ID:         fromUUID(id),
		PostID:     fromUUID(postID),
		Author:     author,
		Content:    content,
		CreatedAt:  createdAt.Time,
		Sentiment:  sentimentFromColumns(sentType, sentConf, content),
		ReliefItem: reliefFromColumns(reliefCat, reliefDesc, reliefPrio),
	}, nil
}
