package posts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanModifyPost(t *testing.T) {
	post := &Post{ID: "p1", AuthorID: "u1"}

	tests := []struct {
		name    string
		actorID string
		post    *Post
		want    bool
	}{
		{"author may modify", "u1", post, true},
		{"other user may not", "u2", post, false},
		{"empty actor may not", "", post, false},
		{"nil post", "u1", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanModifyPost(tt.actorID, tt.post))
		})
	}
}

func TestCanDeleteComment(t *testing.T) {
	post := &Post{ID: "p1", AuthorID: "postAuthor"}
	comment := &Comment{ID: "c1", PostID: "p1", AuthorID: "commentAuthor"}

	tests := []struct {
		name    string
		actorID string
		post    *Post
		comment *Comment
		want    bool
	}{
		{"comment author may delete", "commentAuthor", post, comment, true},
		{"post author may delete", "postAuthor", post, comment, true},
		{"third party may not", "bystander", post, comment, false},
		{"empty actor may not", "", post, comment, false},
		{"nil comment", "postAuthor", post, nil, false},
		{"nil post", "commentAuthor", nil, comment, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanDeleteComment(tt.actorID, tt.post, tt.comment))
		})
	}
}

// Empty author ids must never grant access to anonymous actors, even if a
// record somehow ends up with one.
func TestAuthz_EmptyAuthorIDNeverMatches(t *testing.T) {
	assert.False(t, CanModifyPost("", &Post{AuthorID: ""}))
	assert.False(t, CanDeleteComment("", &Post{AuthorID: ""}, &Comment{AuthorID: ""}))
}
