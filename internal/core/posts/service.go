package posts

import (
	"context"
	"fmt"
	"log"

	"github.com/rivo/uniseg"
)

type postService struct {
	repo Repository
}

// NewPostService creates a new post service
func NewPostService(repo Repository) Service {
	if repo == nil {
		panic("posts: repo cannot be nil")
	}
	return &postService{repo: repo}
}

// ListPosts returns up to limit posts. A non-positive limit lists everything up to MaxListLimit.
func (s *postService) ListPosts(ctx context.Context, limit int) ([]*Post, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}

	result, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return result, nil
}

// GetPost returns a single post by ID
func (s *postService) GetPost(ctx context.Context, id int) (*Post, error) {
	if id <= 0 {
		return nil, NewValidationError("id", "must be a positive integer")
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, NewNotFoundError("post", id)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// CreatePost validates and stores a new post.
// Empty title/body are accepted, matching the public collection's behaviour.
func (s *postService) CreatePost(ctx context.Context, draft Draft) (*Post, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	post := &Post{
		Title:  draft.Title,
		Body:   draft.Body,
		UserID: draft.UserID,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	log.Printf("[POST-CREATE] Stored post id=%d (title=%d graphemes)", post.ID, uniseg.GraphemeClusterCount(post.Title))
	return post, nil
}

func validateDraft(draft Draft) error {
	if uniseg.GraphemeClusterCount(draft.Title) > MaxTitleGraphemes {
		return NewValidationError("title", fmt.Sprintf("must be at most %d characters", MaxTitleGraphemes))
	}
	if uniseg.GraphemeClusterCount(draft.Body) > MaxBodyGraphemes {
		return NewValidationError("body", fmt.Sprintf("must be at most %d characters", MaxBodyGraphemes))
	}
	if draft.UserID < 0 {
		return NewValidationError("userId", "must not be negative")
	}
	return nil
}
