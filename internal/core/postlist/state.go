package postlist

import (
	"slices"

	"postfeed/internal/core/posts"
)

// ListState is the render-ready state owned by the Controller.
// Values handed to presenters are copies; mutating them has no effect on the controller.
type ListState struct {
	// Err is the last surfaced failure, nil when there is nothing to show
	Err *OpError

	DraftTitle string
	DraftBody  string

	Items []posts.Post

	// Version increases on every transition so presenters can drop stale snapshots
	Version uint64

	fetchGen   uint64
	refreshGen uint64

	IsLoading    bool
	IsRefreshing bool
	IsSubmitting bool

	// Loaded is true once any fetch has succeeded
	Loaded bool

	// SupportsCreate reports whether the create form is available
	SupportsCreate bool
}

// initialState is the mounted-but-not-yet-fetched state: the loading screen is shown
func initialState(supportsCreate bool) ListState {
	return ListState{
		IsLoading:      true,
		SupportsCreate: supportsCreate,
	}
}

// clone returns a deep copy safe to hand to another goroutine
func (s ListState) clone() ListState {
	s.Items = slices.Clone(s.Items)
	return s
}

// CanSubmit reports whether the submit control should be enabled
func (s ListState) CanSubmit() bool {
	return s.SupportsCreate && !s.IsSubmitting
}

// ShowLoadingScreen is true while the first fetch is still outstanding
func (s ListState) ShowLoadingScreen() bool {
	return s.IsLoading && !s.Loaded
}

// Empty reports whether the list should show its empty placeholder
func (s ListState) Empty() bool {
	return len(s.Items) == 0 && !s.ShowLoadingScreen()
}

// Generation returns the generation of the most recently started fetch
func (s ListState) Generation() uint64 {
	return s.fetchGen
}
