package posts

// Authorization predicates for post and comment mutations. These are pure
// functions: callers load state, evaluate, then mutate only on success.

// CanModifyPost reports whether the actor may update or delete the post.
// Only the post's author may.
func CanModifyPost(actorID string, post *Post) bool {
	if post == nil || actorID == "" {
		return false
	}
	return actorID == post.AuthorID
}

// CanDeleteComment reports whether the actor may delete the comment.
// Both the comment's author and the post's author may: post authors moderate
// their own posts.
func CanDeleteComment(actorID string, post *Post, comment *Comment) bool {
	if post == nil || comment == nil || actorID == "" {
		return false
	}
	return actorID == comment.AuthorID || actorID == post.AuthorID
}
