// Package memory holds an in-process posts.Repository used by the fixture server
// when no database is configured.
package memory

import (
	"context"
	"sync"

	"postfeed/internal/core/posts"
)

type postRepository struct {
	posts  []*posts.Post
	nextID int
	mu     sync.RWMutex
}

// NewPostRepository creates an empty in-memory post repository. IDs start at 1.
func NewPostRepository() posts.Repository {
	return &postRepository{nextID: 1}
}

// Create stores a copy of post and sets post.ID
func (r *postRepository) Create(ctx context.Context, post *posts.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	post.ID = r.nextID
	r.nextID++
	stored := *post
	r.posts = append(r.posts, &stored)
	return nil
}

// GetByID returns a copy of the post with id
func (r *postRepository) GetByID(ctx context.Context, id int) (*posts.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	// IDs are assigned in insertion order, so the slice is sorted
	lo, hi := 0, len(r.posts)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case r.posts[mid].ID == id:
			p := *r.posts[mid]
			return &p, nil
		case r.posts[mid].ID < id:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return nil, posts.ErrNotFound
}

// List returns copies of the first limit posts by ID
func (r *postRepository) List(ctx context.Context, limit int) ([]*posts.Post, error) {
	if limit <= 0 {
		return nil, posts.ErrInvalidLimit
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	n := min(limit, len(r.posts))
	result := make([]*posts.Post, 0, n)
	for _, p := range r.posts[:n] {
		cp := *p
		result = append(result, &cp)
	}
	return result, nil
}

// Count returns the number of stored posts
func (r *postRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.posts), nil
}
