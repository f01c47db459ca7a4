package posts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"quill/internal/core/users"
)

type postService struct {
	postRepo Repository
	userRepo users.UserRepository
	blobs    BlobStore
	logger   *slog.Logger
}

// NewPostService creates a new post service. The user repository hydrates
// authors and likers in views; the blob store resolves delegated image
// uploads.
func NewPostService(postRepo Repository, userRepo users.UserRepository, blobStore BlobStore, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
		blobs:    blobStore,
		logger:   logger,
	}
}

// CreatePost creates a post authored by the actor
func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*PostView, error) {
	if req.AuthorID == "" {
		return nil, ErrActorRequired
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" {
		return nil, NewValidationError("title", "title is required")
	}
	if content == "" {
		return nil, NewValidationError("content", "content is required")
	}

	image, err := s.resolveImage(ctx, req.Image, req.Upload)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate post id: %w", err)
	}

	now := time.Now().UTC()
	post := &Post{
		ID:        id.String(),
		Title:     title,
		Content:   content,
		Image:     image,
		AuthorID:  req.AuthorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post created", "post_id", post.ID, "author_id", post.AuthorID)

	return s.buildView(ctx, post)
}

// ListPosts returns all posts, newest first
func (s *postService) ListPosts(ctx context.Context) ([]*PostView, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	// One batch user lookup across every post in the listing
	userMap, err := s.userRepo.GetByIDs(ctx, collectUserIDs(posts))
	if err != nil {
		return nil, fmt.Errorf("failed to hydrate users: %w", err)
	}

	views := make([]*PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, viewFromPost(post, userMap))
	}
	return views, nil
}

// GetPost returns a single fully hydrated post
func (s *postService) GetPost(ctx context.Context, postID string) (*PostView, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, post)
}

// UpdatePost merges the supplied fields into the post
func (s *postService) UpdatePost(ctx context.Context, actorID, postID string, req UpdatePostRequest) (*PostView, error) {
	if actorID == "" {
		return nil, ErrActorRequired
	}

	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !CanModifyPost(actorID, post) {
		return nil, ErrNotAuthorized
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, NewValidationError("title", "title cannot be empty")
		}
		post.Title = title
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			return nil, NewValidationError("content", "content cannot be empty")
		}
		post.Content = content
	}
	if req.Upload != nil {
		image, err := s.resolveImage(ctx, "", req.Upload)
		if err != nil {
			return nil, err
		}
		post.Image = image
	} else if req.Image != nil {
		post.Image = strings.TrimSpace(*req.Image)
	}

	post.UpdatedAt = time.Now().UTC()

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.buildView(ctx, post)
}

// DeletePost removes the post and all embedded comments and likes
func (s *postService) DeletePost(ctx context.Context, actorID, postID string) error {
	if actorID == "" {
		return ErrActorRequired
	}

	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}

	if !CanModifyPost(actorID, post) {
		return ErrNotAuthorized
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	s.logger.Info("post deleted", "post_id", postID, "author_id", actorID)
	return nil
}

// ToggleLike flips the actor's membership in the post's liker set
func (s *postService) ToggleLike(ctx context.Context, actorID, postID string) (*PostView, error) {
	if actorID == "" {
		return nil, ErrActorRequired
	}

	liked, err := s.postRepo.ToggleLike(ctx, postID, actorID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("like toggled", "post_id", postID, "user_id", actorID, "liked", liked)

	return s.GetPost(ctx, postID)
}

// AddComment appends a comment by the actor to the post
func (s *postService) AddComment(ctx context.Context, actorID, postID, content string) (*PostView, error) {
	if actorID == "" {
		return nil, ErrActorRequired
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, NewValidationError("content", "comment content is required")
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate comment id: %w", err)
	}

	comment := &Comment{
		ID:        id.String(),
		PostID:    postID,
		AuthorID:  actorID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.postRepo.AddComment(ctx, postID, comment); err != nil {
		return nil, err
	}

	return s.GetPost(ctx, postID)
}

// DeleteComment removes a comment by id (never by position)
func (s *postService) DeleteComment(ctx context.Context, actorID, postID, commentID string) (*PostView, error) {
	if actorID == "" {
		return nil, ErrActorRequired
	}

	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := post.FindComment(commentID)
	if comment == nil {
		return nil, ErrCommentNotFound
	}

	if !CanDeleteComment(actorID, post, comment) {
		return nil, ErrNotAuthorized
	}

	if err := s.postRepo.RemoveComment(ctx, postID, commentID); err != nil {
		return nil, err
	}

	return s.GetPost(ctx, postID)
}

func (s *postService) getPost(ctx context.Context, postID string) (*Post, error) {
	if strings.TrimSpace(postID) == "" {
		return nil, ErrNotFound
	}
	return s.postRepo.GetByID(ctx, postID)
}

// resolveImage returns the stored image reference: a blob store path for
// delegated uploads, or the direct URL as given.
func (s *postService) resolveImage(ctx context.Context, imageURL string, upload *ImageUpload) (string, error) {
	if upload != nil {
		path, err := s.blobs.Store(ctx, upload.Data, upload.MimeType)
		if err != nil {
			return "", err
		}
		return path, nil
	}
	return strings.TrimSpace(imageURL), nil
}

func (s *postService) buildView(ctx context.Context, post *Post) (*PostView, error) {
	userMap, err := s.userRepo.GetByIDs(ctx, collectUserIDs([]*Post{post}))
	if err != nil {
		return nil, fmt.Errorf("failed to hydrate users: %w", err)
	}
	return viewFromPost(post, userMap), nil
}

// collectUserIDs gathers the distinct user ids referenced by the posts:
// authors, comment authors, and likers.
func collectUserIDs(posts []*Post) []string {
	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, post := range posts {
		add(post.AuthorID)
		for i := range post.Comments {
			add(post.Comments[i].AuthorID)
		}
		for _, likerID := range post.LikerIDs {
			add(likerID)
		}
	}
	return ids
}

// viewFromPost builds the hydrated projection. Users missing from the map
// (deleted accounts) leave a nil author rather than failing the whole view.
func viewFromPost(post *Post, userMap map[string]*users.User) *PostView {
	view := &PostView{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Image:     post.Image,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
		Likes:     make([]*users.UserView, 0, len(post.LikerIDs)),
		Comments:  make([]*CommentView, 0, len(post.Comments)),
		LikeCount: len(post.LikerIDs),
	}

	if author, ok := userMap[post.AuthorID]; ok {
		view.Author = author.View()
	}

	for _, likerID := range post.LikerIDs {
		if liker, ok := userMap[likerID]; ok {
			view.Likes = append(view.Likes, liker.View())
		}
	}

	for i := range post.Comments {
		comment := &post.Comments[i]
		cv := &CommentView{
			ID:        comment.ID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		}
		if author, ok := userMap[comment.AuthorID]; ok {
			cv.Author = author.View()
		}
		view.Comments = append(view.Comments, cv)
	}

	return view
}
