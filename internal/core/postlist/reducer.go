package postlist

import (
	"slices"

	"postfeed/internal/core/posts"
)

// Reduce applies ev to s and returns the next state. It is pure: s is not modified.
//
// Fetch results are keyed by generation. Only the most recently started fetch may
// replace Items or clear IsLoading; an older one still releases IsRefreshing when it
// is the refresh currently shown.
func Reduce(s ListState, ev Event) ListState {
	s = s.clone()

	switch e := ev.(type) {
	case FetchStarted:
		if e.Gen <= s.fetchGen {
			return s
		}
		s.fetchGen = e.Gen
		if e.Refresh {
			s.IsRefreshing = true
			s.refreshGen = e.Gen
		} else {
			s.IsLoading = true
		}

	case FetchSucceeded:
		if e.Gen != s.fetchGen {
			return releaseStale(s, e.Gen)
		}
		s.IsRefreshing = s.IsRefreshing && s.refreshGen != e.Gen
		s.Items = slices.Clone(e.Items)
		s.IsLoading = false
		s.Loaded = true
		if s.Err != nil && s.Err.Op != OpCreate {
			s.Err = nil
		}

	case FetchFailed:
		if e.Gen != s.fetchGen {
			return releaseStale(s, e.Gen)
		}
		s.IsRefreshing = s.IsRefreshing && s.refreshGen != e.Gen
		s.IsLoading = false
		s.Err = e.Err

	case SubmitStarted:
		if s.IsSubmitting || !s.SupportsCreate {
			return s
		}
		s.IsSubmitting = true
		if s.Err != nil && s.Err.Op == OpCreate {
			s.Err = nil
		}

	case SubmitSucceeded:
		if !s.IsSubmitting {
			return s
		}
		s.Items = append([]posts.Post{e.Post}, s.Items...)
		s.DraftTitle = ""
		s.DraftBody = ""
		s.IsSubmitting = false

	case SubmitFailed:
		if !s.IsSubmitting {
			return s
		}
		s.IsSubmitting = false
		s.Err = e.Err

	case DraftTitleChanged:
		s.DraftTitle = e.Text

	case DraftBodyChanged:
		s.DraftBody = e.Text

	case ErrorDismissed:
		s.Err = nil

	default:
		return s
	}

	return bump(s)
}

// releaseStale handles a superseded fetch result: Items are left alone, but the
// refresh indicator is dropped if gen is the refresh it belongs to.
func releaseStale(s ListState, gen uint64) ListState {
	if s.IsRefreshing && s.refreshGen == gen {
		s.IsRefreshing = false
		return bump(s)
	}
	return s
}

func bump(s ListState) ListState {
	s.Version++
	return s
}
