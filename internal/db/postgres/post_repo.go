package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"quill/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Create inserts a new post
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO posts (id, title, content, image, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Content, post.Image,
		post.AuthorID, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "fk_posts_author") {
			return fmt.Errorf("post author not found: %s", post.AuthorID)
		}
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// GetByID loads the whole aggregate: the post row, its comments in insertion
// order, and its liker id set.
func (r *postgresPostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	query := `
		SELECT id, title, content, image, author_id, created_at, updated_at
		FROM posts
		WHERE id = $1
	`

	var post posts.Post
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Content, &post.Image,
		&post.AuthorID, &post.CreatedAt, &post.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	if err := r.loadEmbedded(ctx, []*posts.Post{&post}); err != nil {
		return nil, err
	}

	return &post, nil
}

// List returns all posts newest-first with comments and likes loaded.
func (r *postgresPostRepo) List(ctx context.Context) ([]*posts.Post, error) {
	query := `
		SELECT id, title, content, image, author_id, created_at, updated_at
		FROM posts
		ORDER BY created_at DESC, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var result []*posts.Post
	for rows.Next() {
		var post posts.Post
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Content, &post.Image,
			&post.AuthorID, &post.CreatedAt, &post.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	if err := r.loadEmbedded(ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}

// Update persists the mutable post fields
func (r *postgresPostRepo) Update(ctx context.Context, post *posts.Post) error {
	query := `
		UPDATE posts
		SET title = $2, content = $3, image = $4, updated_at = $5
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Content, post.Image, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return posts.ErrNotFound
	}

	return nil
}

// Delete removes the post; comments and likes cascade away with it in the
// same statement.
func (r *postgresPostRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return posts.ErrNotFound
	}

	return nil
}

// ToggleLike flips the user's like with two row-level statements in one
// transaction: a keyed DELETE, then an INSERT ON CONFLICT DO NOTHING when
// nothing was deleted. Concurrent toggles from distinct users touch distinct
// rows, so neither is lost.
func (r *postgresPostRepo) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return false, posts.ErrNotFound
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to remove like: %w", err)
	}

	removed, _ := res.RowsAffected()
	liked := false
	if removed == 0 {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO post_likes (post_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (post_id, user_id) DO NOTHING
		`, postID, userID)
		if err != nil {
			return false, fmt.Errorf("failed to add like: %w", err)
		}
		liked = true
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit like toggle: %w", err)
	}

	return liked, nil
}

// AddComment appends a comment to the post
func (r *postgresPostRepo) AddComment(ctx context.Context, postID string, comment *posts.Comment) error {
	query := `
		INSERT INTO post_comments (id, post_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		comment.ID, postID, comment.AuthorID, comment.Content, comment.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "fk_comments_post") {
			return posts.ErrNotFound
		}
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

// RemoveComment deletes exactly the identified comment
func (r *postgresPostRepo) RemoveComment(ctx context.Context, postID, commentID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM post_comments WHERE id = $1 AND post_id = $2`, commentID, postID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected > 0 {
		return nil
	}

	// Distinguish a missing post from a missing comment
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return posts.ErrNotFound
	}
	return posts.ErrCommentNotFound
}

// loadEmbedded fills in comments and liker ids for the given posts with one
// query per table.
func (r *postgresPostRepo) loadEmbedded(ctx context.Context, postList []*posts.Post) error {
	if len(postList) == 0 {
		return nil
	}

	byID := make(map[string]*posts.Post, len(postList))
	ids := make([]string, 0, len(postList))
	for _, post := range postList {
		post.Comments = []posts.Comment{}
		post.LikerIDs = []string{}
		byID[post.ID] = post
		ids = append(ids, post.ID)
	}

	commentRows, err := r.db.QueryContext(ctx, `
		SELECT id, post_id, author_id, content, created_at
		FROM post_comments
		WHERE post_id = ANY($1)
		ORDER BY seq
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load comments: %w", err)
	}
	defer commentRows.Close()

	for commentRows.Next() {
		var comment posts.Comment
		if err := commentRows.Scan(
			&comment.ID, &comment.PostID, &comment.AuthorID,
			&comment.Content, &comment.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to scan comment: %w", err)
		}
		if post, ok := byID[comment.PostID]; ok {
			post.Comments = append(post.Comments, comment)
		}
	}
	if err := commentRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate comments: %w", err)
	}

	likeRows, err := r.db.QueryContext(ctx, `
		SELECT post_id, user_id
		FROM post_likes
		WHERE post_id = ANY($1)
		ORDER BY created_at
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load likes: %w", err)
	}
	defer likeRows.Close()

	for likeRows.Next() {
		var postID, userID string
		if err := likeRows.Scan(&postID, &userID); err != nil {
			return fmt.Errorf("failed to scan like: %w", err)
		}
		if post, ok := byID[postID]; ok {
			post.LikerIDs = append(post.LikerIDs, userID)
		}
	}
	if err := likeRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate likes: %w", err)
	}

	return nil
}
