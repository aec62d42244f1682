package postlist

import (
	"context"

	"postfeed/internal/core/posts"
)

// Client is the subset of the remote collection the controller needs.
// *jsonplaceholder.Client satisfies it.
type Client interface {
	// ListPosts fetches at most limit posts
	ListPosts(ctx context.Context, limit int) ([]posts.Post, error)

	// CreatePost submits a draft and returns the server's echo of it
	CreatePost(ctx context.Context, draft posts.Draft) (*posts.Post, error)
}

// Presenter receives a snapshot after every state transition.
//
// Render may be called from several goroutines at once and must not block on the
// controller; use ListState.Version to discard snapshots older than one already shown.
type Presenter interface {
	Render(state ListState)
}

// PresenterFunc adapts a function to the Presenter interface
type PresenterFunc func(state ListState)

// Render calls f(state)
func (f PresenterFunc) Render(state ListState) {
	f(state)
}

type noopPresenter struct{}

func (noopPresenter) Render(ListState) {}
