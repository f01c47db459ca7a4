package posts

import (
	"time"

	"quill/internal/core/users"
)

// Post is the aggregate root for a blog post: it owns its comments and the
// set of users who have liked it. Posts are only mutated through the service
// in this package, never by callers holding a Post directly.
type Post struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Image     string    `json:"image" db:"image"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	LikerIDs  []string  `json:"likerIds"`
	Comments  []Comment `json:"comments"`
}

// Comment is an embedded sub-entity of a Post. Comments are created and
// deleted whole, never edited in place.
type Comment struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
}

// FindComment returns the comment with the given id, or nil if absent.
func (p *Post) FindComment(commentID string) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i]
		}
	}
	return nil
}

// HasLiker reports whether the given user id is in the post's liker set.
func (p *Post) HasLiker(userID string) bool {
	for _, id := range p.LikerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ImageUpload carries raw image bytes for delegated upload through the blob
// store, as an alternative to a direct image URL.
type ImageUpload struct {
	Data     []byte
	MimeType string
}

// CreatePostRequest represents input for creating a new post.
// Exactly one of Image (direct URL) or Upload may be set; both empty means
// no image.
type CreatePostRequest struct {
	AuthorID string
	Title    string
	Content  string
	Image    string
	Upload   *ImageUpload
}

// UpdatePostRequest represents a partial update. Nil fields are left
// untouched.
type UpdatePostRequest struct {
	Title   *string
	Content *string
	Image   *string
	Upload  *ImageUpload
}

// PostView is the API projection of a post with author, likers, and comment
// authors hydrated.
type PostView struct {
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Author    *users.UserView   `json:"author"`
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	Image     string            `json:"image,omitempty"`
	Likes     []*users.UserView `json:"likes"`
	Comments  []*CommentView    `json:"comments"`
	LikeCount int               `json:"likeCount"`
}

// CommentView is the API projection of a comment with its author hydrated.
type CommentView struct {
	CreatedAt time.Time       `json:"createdAt"`
	Author    *users.UserView `json:"author"`
	ID        string          `json:"id"`
	Content   string          `json:"content"`
}
