package tui

import (
	"postfeed/internal/core/postlist"

	tea "github.com/charmbracelet/bubbletea"
)

// Presenter bridges controller snapshots into the bubbletea event loop.
// Render never blocks: it only flags that a newer snapshot exists, and the model
// reads the latest one from the controller when it handles stateChangedMsg.
type Presenter struct {
	changed chan struct{}
}

// NewPresenter creates a presenter for one Model
func NewPresenter() *Presenter {
	return &Presenter{changed: make(chan struct{}, 1)}
}

// Render implements postlist.Presenter
func (p *Presenter) Render(postlist.ListState) {
	select {
	case p.changed <- struct{}{}:
	default:
	}
}

type stateChangedMsg struct{}

// wait blocks until the controller reports a change
func (p *Presenter) wait() tea.Cmd {
	return func() tea.Msg {
		<-p.changed
		return stateChangedMsg{}
	}
}
