package postlist

import (
	"errors"
	"testing"

	"postfeed/internal/core/posts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePosts(n int, title string) []posts.Post {
	result := make([]posts.Post, n)
	for i := range result {
		result[i] = posts.Post{ID: i + 1, UserID: 1, Title: title, Body: "body"}
	}
	return result
}

func TestReduce_InitialLoad(t *testing.T) {
	s := initialState(true)
	assert.True(t, s.IsLoading)
	assert.True(t, s.ShowLoadingScreen())
	assert.False(t, s.Empty())

	s = Reduce(s, FetchStarted{Gen: 1})
	assert.True(t, s.IsLoading)
	assert.False(t, s.IsRefreshing)

	s = Reduce(s, FetchSucceeded{Gen: 1, Items: makePosts(3, "a")})
	assert.False(t, s.IsLoading)
	assert.True(t, s.Loaded)
	assert.Len(t, s.Items, 3)
	assert.False(t, s.ShowLoadingScreen())
	assert.False(t, s.Empty())
}

func TestReduce_RefreshOnlyRaisesRefreshing(t *testing.T) {
	s := Reduce(initialState(true), FetchStarted{Gen: 1})
	s = Reduce(s, FetchSucceeded{Gen: 1, Items: makePosts(2, "a")})

	s = Reduce(s, FetchStarted{Gen: 2, Refresh: true})
	assert.True(t, s.IsRefreshing)
	assert.False(t, s.IsLoading)

	s = Reduce(s, FetchSucceeded{Gen: 2, Items: makePosts(5, "b")})
	assert.False(t, s.IsRefreshing)
	assert.Len(t, s.Items, 5)
}

func TestReduce_StaleResultIsDiscarded(t *testing.T) {
	s := Reduce(initialState(true), FetchStarted{Gen: 1})
	s = Reduce(s, FetchStarted{Gen: 2, Refresh: true})

	s = Reduce(s, FetchSucceeded{Gen: 2, Items: makePosts(2, "new")})
	require.Len(t, s.Items, 2)
	assert.False(t, s.IsLoading)
	assert.False(t, s.IsRefreshing)

	before := s.Version
	s = Reduce(s, FetchSucceeded{Gen: 1, Items: makePosts(7, "old")})
	assert.Len(t, s.Items, 2)
	assert.Equal(t, "new", s.Items[0].Title)
	assert.Equal(t, before, s.Version, "a no-op stale result should not bump the version")
}

func TestReduce_StaleRefreshStillReleasesFlag(t *testing.T) {
	s := Reduce(initialState(true), FetchStarted{Gen: 1, Refresh: true})
	s = Reduce(s, FetchStarted{Gen: 2})

	s = Reduce(s, FetchSucceeded{Gen: 2, Items: makePosts(1, "load")})
	assert.True(t, s.IsRefreshing, "the refresh request is still outstanding")
	assert.False(t, s.IsLoading)

	s = Reduce(s, FetchFailed{Gen: 1, Err: &OpError{Op: OpRefresh, Err: errors.New("boom")}})
	assert.False(t, s.IsRefreshing)
	assert.Nil(t, s.Err, "a superseded failure is not surfaced")
	assert.Equal(t, "load", s.Items[0].Title)
}

func TestReduce_SupersededRefreshKeepsNewerRefreshFlag(t *testing.T) {
	s := Reduce(initialState(true), FetchStarted{Gen: 1, Refresh: true})
	s = Reduce(s, FetchStarted{Gen: 2, Refresh: true})

	s = Reduce(s, FetchSucceeded{Gen: 1, Items: makePosts(1, "old")})
	assert.True(t, s.IsRefreshing, "gen 2 is the refresh in flight")
	assert.Empty(t, s.Items)

	s = Reduce(s, FetchSucceeded{Gen: 2, Items: makePosts(1, "new")})
	assert.False(t, s.IsRefreshing)
}

func TestReduce_FetchFailedResetsLoadingAndSurfacesError(t *testing.T) {
	s := Reduce(initialState(true), FetchStarted{Gen: 1})
	opErr := &OpError{Op: OpLoad, Kind: KindNetwork, Err: errors.New("dial tcp")}

	s = Reduce(s, FetchFailed{Gen: 1, Err: opErr})
	assert.False(t, s.IsLoading)
	assert.False(t, s.Loaded)
	assert.Same(t, opErr, s.Err)
	assert.True(t, s.Empty())

	// A later successful fetch clears a fetch error
	s = Reduce(s, FetchStarted{Gen: 2, Refresh: true})
	s = Reduce(s, FetchSucceeded{Gen: 2, Items: makePosts(1, "a")})
	assert.Nil(t, s.Err)
}

func TestReduce_FetchSuccessKeepsCreateError(t *testing.T) {
	s := initialState(true)
	s = Reduce(s, SubmitStarted{})
	s = Reduce(s, SubmitFailed{Err: &OpError{Op: OpCreate, Err: errors.New("x")}})

	s = Reduce(s, FetchStarted{Gen: 1})
	s = Reduce(s, FetchSucceeded{Gen: 1})
	require.NotNil(t, s.Err)
	assert.Equal(t, OpCreate, s.Err.Op)
}

func TestReduce_SubmitLifecycle(t *testing.T) {
	s := Reduce(initialState(true), FetchStarted{Gen: 1})
	s = Reduce(s, FetchSucceeded{Gen: 1, Items: makePosts(2, "existing")})
	s = Reduce(s, DraftTitleChanged{Text: "t"})
	s = Reduce(s, DraftBodyChanged{Text: "b"})
	assert.True(t, s.CanSubmit())

	s = Reduce(s, SubmitStarted{})
	assert.True(t, s.IsSubmitting)
	assert.False(t, s.CanSubmit())

	// A second start while submitting is ignored
	again := Reduce(s, SubmitStarted{})
	assert.Equal(t, s.Version, again.Version)

	s = Reduce(s, SubmitSucceeded{Post: posts.Post{ID: 101, Title: "t", Body: "b"}})
	assert.False(t, s.IsSubmitting)
	require.Len(t, s.Items, 3)
	assert.Equal(t, 101, s.Items[0].ID)
	assert.Equal(t, "existing", s.Items[1].Title)
	assert.Empty(t, s.DraftTitle)
	assert.Empty(t, s.DraftBody)

	// Success without a pending submission is ignored
	ignored := Reduce(s, SubmitSucceeded{Post: posts.Post{ID: 5}})
	assert.Len(t, ignored.Items, 3)
}

func TestReduce_SubmitFailedKeepsDrafts(t *testing.T) {
	s := Reduce(initialState(true), DraftTitleChanged{Text: "t"})
	s = Reduce(s, SubmitStarted{})
	s = Reduce(s, SubmitFailed{Err: &OpError{Op: OpCreate, Kind: KindHTTP, StatusCode: 500}})

	assert.False(t, s.IsSubmitting)
	assert.Equal(t, "t", s.DraftTitle)
	require.NotNil(t, s.Err)
	assert.Equal(t, KindHTTP, s.Err.Kind)

	s = Reduce(s, ErrorDismissed{})
	assert.Nil(t, s.Err)
}

func TestReduce_SubmitIgnoredWithoutCreateSupport(t *testing.T) {
	s := Reduce(initialState(false), SubmitStarted{})
	assert.False(t, s.IsSubmitting)
	assert.False(t, s.CanSubmit())
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := Reduce(initialState(true), FetchStarted{Gen: 1})
	s = Reduce(s, FetchSucceeded{Gen: 1, Items: makePosts(2, "a")})

	before := s.clone()
	_ = Reduce(s, SubmitStarted{})
	next := Reduce(Reduce(s, SubmitStarted{}), SubmitSucceeded{Post: posts.Post{ID: 9}})

	assert.Equal(t, before, s)
	assert.Len(t, next.Items, 3)

	next.Items[1].Title = "changed"
	assert.Equal(t, "a", s.Items[0].Title)
}

func TestReduce_VersionIncreases(t *testing.T) {
	s := initialState(true)
	events := []Event{
		FetchStarted{Gen: 1},
		FetchSucceeded{Gen: 1, Items: makePosts(1, "a")},
		DraftTitleChanged{Text: "t"},
		SubmitStarted{},
		SubmitSucceeded{Post: posts.Post{ID: 2}},
	}
	for _, ev := range events {
		next := Reduce(s, ev)
		assert.Greater(t, next.Version, s.Version, "%T should bump the version", ev)
		s = next
	}
}

func TestOpError_Message(t *testing.T) {
	tests := []struct {
		err  *OpError
		want string
	}{
		{err: &OpError{Op: OpLoad, Kind: KindNetwork}, want: "Couldn't load posts: the server could not be reached"},
		{err: &OpError{Op: OpRefresh, Kind: KindHTTP, StatusCode: 503}, want: "Couldn't refresh posts: server responded 503 Service Unavailable"},
		{err: &OpError{Op: OpCreate, Kind: KindParse}, want: "Couldn't add post: unexpected response from server"},
		{err: &OpError{Op: OpCreate}, want: "Couldn't add post"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Message())
	}
}
