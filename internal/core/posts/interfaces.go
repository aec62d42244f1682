package posts

import "context"

// Service defines the business logic interface for the fixture server's /posts collection
type Service interface {
	// ListPosts returns up to limit posts in ascending ID order.
	// limit <= 0 means "all", capped at MaxListLimit.
	ListPosts(ctx context.Context, limit int) ([]*Post, error)

	// GetPost returns a single post by ID
	GetPost(ctx context.Context, id int) (*Post, error)

	// CreatePost validates the draft, stores it and returns the post with its assigned ID
	CreatePost(ctx context.Context, draft Draft) (*Post, error)
}

// Repository defines the data access interface for posts
type Repository interface {
	// Create inserts a new post and sets post.ID
	Create(ctx context.Context, post *Post) error

	// GetByID retrieves a post by ID.
	// Returns ErrNotFound if it doesn't exist.
	GetByID(ctx context.Context, id int) (*Post, error)

	// List returns up to limit posts ordered by ID
	List(ctx context.Context, limit int) ([]*Post, error)

	// Count returns the number of stored posts
	Count(ctx context.Context) (int, error)
}
