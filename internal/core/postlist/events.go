package postlist

import "postfeed/internal/core/posts"

// Event is a state transition input for Reduce
type Event interface {
	isEvent()
}

// FetchStarted begins fetch generation Gen. Refresh selects which flag is raised.
type FetchStarted struct {
	Gen     uint64
	Refresh bool
}

// FetchSucceeded delivers the items of fetch generation Gen
type FetchSucceeded struct {
	Items []posts.Post
	Gen   uint64
}

// FetchFailed ends fetch generation Gen with an error
type FetchFailed struct {
	Err *OpError
	Gen uint64
}

// SubmitStarted raises isSubmitting
type SubmitStarted struct{}

// SubmitSucceeded prepends the created post and clears the drafts
type SubmitSucceeded struct {
	Post posts.Post
}

// SubmitFailed ends a submission with an error; drafts are kept
type SubmitFailed struct {
	Err *OpError
}

// DraftTitleChanged replaces the draft title
type DraftTitleChanged struct {
	Text string
}

// DraftBodyChanged replaces the draft body
type DraftBodyChanged struct {
	Text string
}

// ErrorDismissed clears the surfaced error
type ErrorDismissed struct{}

func (FetchStarted) isEvent()      {}
func (FetchSucceeded) isEvent()    {}
func (FetchFailed) isEvent()       {}
func (SubmitStarted) isEvent()     {}
func (SubmitSucceeded) isEvent()   {}
func (SubmitFailed) isEvent()      {}
func (DraftTitleChanged) isEvent() {}
func (DraftBodyChanged) isEvent()  {}
func (ErrorDismissed) isEvent()    {}
