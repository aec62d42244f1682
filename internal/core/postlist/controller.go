// Package postlist owns the post list screen state: the fetched items, the three
// in-flight flags (loading, refreshing, submitting) and the create-post drafts.
//
// All transitions go through Reduce. The Controller serializes them, performs the
// network calls outside its lock and pushes every new snapshot to a Presenter.
package postlist

import (
	"context"
	"log/slog"
	"sync"

	"postfeed/internal/core/posts"
)

const (
	// DefaultLimit is the page size used on mount and when Load gets a non-positive limit
	DefaultLimit = 10

	// DefaultRefreshLimit is the page size used by Refresh
	DefaultRefreshLimit = 20
)

// Controller is the PostListController. It is safe for concurrent use.
type Controller struct {
	client       Client
	presenter    Presenter
	logger       *slog.Logger
	state        ListState
	initialLimit int
	refreshLimit int
	mu           sync.Mutex
}

// Option configures the controller
type Option func(*Controller)

// WithSupportsCreate enables or disables the create-post capability (default: enabled)
func WithSupportsCreate(enabled bool) Option {
	return func(c *Controller) {
		c.state.SupportsCreate = enabled
	}
}

// WithPresenter sets the presenter notified after every transition
func WithPresenter(p Presenter) Option {
	return func(c *Controller) {
		if p != nil {
			c.presenter = p
		}
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithInitialLimit sets the page size used by Mount
func WithInitialLimit(limit int) Option {
	return func(c *Controller) {
		if limit > 0 {
			c.initialLimit = limit
		}
	}
}

// WithRefreshLimit sets the page size used by Refresh
func WithRefreshLimit(limit int) Option {
	return func(c *Controller) {
		if limit > 0 {
			c.refreshLimit = limit
		}
	}
}

// New creates a controller in its initial (loading) state. Call Mount to fetch.
func New(client Client, opts ...Option) *Controller {
	if client == nil {
		panic("postlist: client cannot be nil")
	}

	c := &Controller{
		client:       client,
		presenter:    noopPresenter{},
		logger:       slog.Default(),
		state:        initialState(true),
		initialLimit: DefaultLimit,
		refreshLimit: DefaultRefreshLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "postlist")
	return c
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() ListState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Mount performs the initial load
func (c *Controller) Mount(ctx context.Context) error {
	return c.Load(ctx, c.initialLimit)
}

// Load fetches up to limit posts and replaces the list with them.
// A non-positive limit falls back to DefaultLimit. IsLoading is false once the
// latest fetch resolves, whatever the outcome.
func (c *Controller) Load(ctx context.Context, limit int) error {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return c.fetch(ctx, OpLoad, limit)
}

// Refresh is the pull-to-refresh callback: it raises IsRefreshing, fetches the
// refresh page size, and always lowers IsRefreshing again.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.fetch(ctx, OpRefresh, c.refreshLimit)
}

func (c *Controller) fetch(ctx context.Context, op Op, limit int) error {
	c.mu.Lock()
	gen := c.state.fetchGen + 1
	snap := c.applyLocked(FetchStarted{Gen: gen, Refresh: op == OpRefresh})
	c.mu.Unlock()
	c.presenter.Render(snap)

	resolved := false
	defer func() {
		if !resolved {
			c.dispatch(FetchFailed{Gen: gen, Err: &OpError{Op: op, Err: errAborted}})
		}
	}()

	items, err := c.client.ListPosts(ctx, limit)
	resolved = true
	if err != nil {
		opErr := newOpError(op, err)
		c.logger.Warn("fetch failed",
			"op", op,
			"gen", gen,
			"kind", opErr.Kind.String(),
			"error", err)
		c.dispatch(FetchFailed{Gen: gen, Err: opErr})
		return opErr
	}

	if len(items) > limit {
		items = items[:limit]
	}

	state := c.dispatch(FetchSucceeded{Gen: gen, Items: items})
	if state.fetchGen != gen {
		c.logger.Debug("discarded superseded fetch result", "op", op, "gen", gen, "current", state.fetchGen)
		return nil
	}
	c.logger.Debug("fetch applied", "op", op, "gen", gen, "items", len(items))
	return nil
}

// SetDraftTitle is the onTitleChange callback
func (c *Controller) SetDraftTitle(text string) {
	c.dispatch(DraftTitleChanged{Text: text})
}

// SetDraftBody is the onBodyChange callback
func (c *Controller) SetDraftBody(text string) {
	c.dispatch(DraftBodyChanged{Text: text})
}

// DismissError clears the surfaced error
func (c *Controller) DismissError() {
	c.dispatch(ErrorDismissed{})
}

// Submit is the onSubmit callback: it creates a post from the current drafts
func (c *Controller) Submit(ctx context.Context) (*posts.Post, error) {
	return c.create(ctx, nil)
}

// CreatePost submits {title, body} without validating either field. On success the
// created post is prepended and both drafts are cleared; on failure the drafts are
// kept. While a submission is outstanding further calls return ErrSubmitInFlight
// without sending anything.
func (c *Controller) CreatePost(ctx context.Context, title, body string) (*posts.Post, error) {
	return c.create(ctx, &posts.Draft{Title: title, Body: body})
}

// create submits draft, or the current draft fields when draft is nil
func (c *Controller) create(ctx context.Context, draft *posts.Draft) (*posts.Post, error) {
	c.mu.Lock()
	if !c.state.SupportsCreate {
		c.mu.Unlock()
		return nil, ErrCreateUnsupported
	}
	if c.state.IsSubmitting {
		c.mu.Unlock()
		c.logger.Debug("ignored submit while another is in flight")
		return nil, ErrSubmitInFlight
	}
	if draft == nil {
		draft = &posts.Draft{Title: c.state.DraftTitle, Body: c.state.DraftBody}
	}
	snap := c.applyLocked(SubmitStarted{})
	c.mu.Unlock()
	c.presenter.Render(snap)

	resolved := false
	defer func() {
		if !resolved {
			c.dispatch(SubmitFailed{Err: &OpError{Op: OpCreate, Err: errAborted}})
		}
	}()

	created, err := c.client.CreatePost(ctx, *draft)
	resolved = true
	if err == nil && created == nil {
		err = errAborted
	}
	if err != nil {
		opErr := newOpError(OpCreate, err)
		c.logger.Warn("create failed", "kind", opErr.Kind.String(), "error", err)
		c.dispatch(SubmitFailed{Err: opErr})
		return nil, opErr
	}

	c.dispatch(SubmitSucceeded{Post: *created})
	c.logger.Debug("post created", "id", created.ID)
	return created, nil
}

// dispatch applies ev and, if anything changed, notifies the presenter outside the lock
func (c *Controller) dispatch(ev Event) ListState {
	c.mu.Lock()
	prev := c.state.Version
	snap := c.applyLocked(ev)
	c.mu.Unlock()

	if snap.Version != prev {
		c.presenter.Render(snap)
	}
	return snap
}

// applyLocked must be called with c.mu held
func (c *Controller) applyLocked(ev Event) ListState {
	c.state = Reduce(c.state, ev)
	return c.state.clone()
}
