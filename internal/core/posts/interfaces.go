package posts

import "context"

// Repository defines the interface for post aggregate persistence.
// Loads return whole aggregates: comments in insertion order plus the liker
// id set. Mutating methods return ErrNotFound when the post is absent.
//
// Implementations must make each method atomic with respect to concurrent
// writers on the same post: two simultaneous likes from different users must
// both be retained.
type Repository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id string) (*Post, error)

	// List returns all posts ordered by createdAt descending. No pagination;
	// acceptable at this data volume.
	List(ctx context.Context) ([]*Post, error)

	// Update persists title, content, image, and updatedAt for the post.
	Update(ctx context.Context, post *Post) error

	// Delete removes the post and, through it, all embedded comments and likes.
	Delete(ctx context.Context, id string) error

	// ToggleLike adds the user to the post's liker set if absent, removes it
	// if present. Reports whether the post is liked after the call.
	ToggleLike(ctx context.Context, postID, userID string) (liked bool, err error)

	// AddComment appends a comment to the post.
	AddComment(ctx context.Context, postID string, comment *Comment) error

	// RemoveComment deletes the comment by id. Returns ErrCommentNotFound when
	// the post exists but the comment does not.
	RemoveComment(ctx context.Context, postID, commentID string) error
}

// Service defines the business logic interface for post operations.
// Every gated operation takes the resolved actor id explicitly; there is no
// ambient caller identity.
type Service interface {
	// CreatePost creates a post authored by the actor, resolving a delegated
	// image upload through the blob store when present.
	CreatePost(ctx context.Context, req CreatePostRequest) (*PostView, error)

	// ListPosts returns all posts, newest first, with authors hydrated.
	ListPosts(ctx context.Context) ([]*PostView, error)

	// GetPost returns a single post with author, comment authors, and likers
	// hydrated.
	GetPost(ctx context.Context, postID string) (*PostView, error)

	// UpdatePost merges the supplied fields into the post. Author only.
	UpdatePost(ctx context.Context, actorID, postID string, req UpdatePostRequest) (*PostView, error)

	// DeletePost removes the post and everything embedded in it. Author only.
	DeletePost(ctx context.Context, actorID, postID string) error

	// ToggleLike flips the actor's membership in the post's liker set.
	ToggleLike(ctx context.Context, actorID, postID string) (*PostView, error)

	// AddComment appends a comment by the actor to the post.
	AddComment(ctx context.Context, actorID, postID, content string) (*PostView, error)

	// DeleteComment removes a comment. Comment author or post author only.
	DeleteComment(ctx context.Context, actorID, postID, commentID string) (*PostView, error)
}

// BlobStore resolves delegated image uploads to retrievable URL paths.
// Implemented by blobs.Service.
type BlobStore interface {
	Store(ctx context.Context, data []byte, mimeType string) (string, error)
}
