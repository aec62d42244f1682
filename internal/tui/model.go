// Package tui renders a postlist.Controller in the terminal with bubbletea.
package tui

import (
	"context"
	"strings"

	"postfeed/internal/core/postlist"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focusArea int

const (
	focusList focusArea = iota
	focusTitle
	focusBody
)

// Screen text
const (
	labelLoading     = "Loading..."
	labelHeader      = "Post List"
	labelEmpty       = "No Posts Found"
	labelFooter      = "End of List"
	labelAdd         = "Add Post"
	labelAdding      = "Adding..."
	labelRefreshing  = "Refreshing..."
	placeholderTitle = "Post title"
	placeholderBody  = "Post Body"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// formHeight is the number of rows taken by the bordered form, button included
	formHeight = 6
)

// opDoneMsg reports that a controller operation returned; failures are already in the state
type opDoneMsg struct {
	err error
	op  postlist.Op
}

// Model is the bubbletea model for the post list screen
type Model struct {
	ctx       context.Context
	ctrl      *postlist.Controller
	presenter *Presenter

	title    textinput.Model
	body     textinput.Model
	list     viewport.Model
	spinner  spinner.Model
	state    postlist.ListState
	focus    focusArea
	width    int
	height   int
	quitting bool
}

// NewModel builds the screen for ctrl. The controller must have been created with
// WithPresenter(presenter).
func NewModel(ctx context.Context, ctrl *postlist.Controller, presenter *Presenter) Model {
	title := textinput.New()
	title.Placeholder = placeholderTitle
	title.Prompt = ""
	// Length is the server's call
	title.CharLimit = 0

	body := textinput.New()
	body.Placeholder = placeholderBody
	body.Prompt = ""
	body.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:       ctx,
		ctrl:      ctrl,
		presenter: presenter,
		title:     title,
		body:      body,
		spinner:   sp,
		list:      viewport.New(defaultWidth, defaultHeight),
		state:     ctrl.Snapshot(),
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.resize()
	return m
}

// Init mounts the controller and starts listening for state changes
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.presenter.wait(), m.mount())
}

func (m Model) mount() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: postlist.OpLoad, err: ctrl.Mount(ctx)}
	}
}

func (m Model) refresh() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: postlist.OpRefresh, err: ctrl.Refresh(ctx)}
	}
}

func (m Model) submit() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		_, err := ctrl.Submit(ctx)
		return opDoneMsg{op: postlist.OpCreate, err: err}
	}
}

// Update handles terminal events and controller notifications
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case stateChangedMsg:
		m.applyState(m.ctrl.Snapshot())
		return m, m.presenter.wait()

	case opDoneMsg:
		// The outcome is rendered from the state; nothing else to do
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		return m.cycleFocus(), nil
	}

	if m.focus == focusList {
		switch msg.String() {
		case "q":
			m.quitting = true
			return m, tea.Quit
		case "r":
			if m.state.IsRefreshing {
				return m, nil
			}
			return m, m.refresh()
		case "esc":
			m.ctrl.DismissError()
			return m, nil
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		m.setFocus(focusList)
		return m, nil
	case "enter":
		if m.focus == focusTitle {
			m.setFocus(focusBody)
			return m, nil
		}
		if !m.state.CanSubmit() {
			return m, nil
		}
		return m, m.submit()
	}

	var cmd tea.Cmd
	if m.focus == focusTitle {
		m.title, cmd = m.title.Update(msg)
		if m.title.Value() != m.state.DraftTitle {
			m.ctrl.SetDraftTitle(m.title.Value())
			m.state.DraftTitle = m.title.Value()
		}
	} else {
		m.body, cmd = m.body.Update(msg)
		if m.body.Value() != m.state.DraftBody {
			m.ctrl.SetDraftBody(m.body.Value())
			m.state.DraftBody = m.body.Value()
		}
	}
	return m, cmd
}

func (m Model) cycleFocus() Model {
	if !m.state.SupportsCreate {
		return m
	}
	switch m.focus {
	case focusList:
		m.setFocus(focusTitle)
	case focusTitle:
		m.setFocus(focusBody)
	default:
		m.setFocus(focusList)
	}
	return m
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	m.title.Blur()
	m.body.Blur()
	switch f {
	case focusTitle:
		m.title.Focus()
	case focusBody:
		m.body.Focus()
	}
}

// applyState adopts a newer snapshot and syncs the inputs with the drafts
func (m *Model) applyState(s postlist.ListState) {
	if s.Version < m.state.Version {
		return
	}
	m.state = s
	if m.title.Value() != s.DraftTitle {
		m.title.SetValue(s.DraftTitle)
	}
	if m.body.Value() != s.DraftBody {
		m.body.SetValue(s.DraftBody)
	}
	if !s.SupportsCreate && m.focus != focusList {
		m.setFocus(focusList)
	}
	m.resize()
}

func (m *Model) resize() {
	inputWidth := m.width - 6
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.title.Width = inputWidth
	m.body.Width = inputWidth

	// header, status line and help line
	reserved := 4
	if m.state.SupportsCreate {
		reserved += formHeight
	}
	listHeight := m.height - reserved
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.Width = m.width
	m.list.Height = listHeight
	m.list.SetContent(m.renderItems())
}

func (m Model) renderItems() string {
	var b strings.Builder
	if m.state.Empty() {
		b.WriteString(mutedStyle.Render(labelEmpty))
		b.WriteString("\n\n")
	}
	wrap := lipgloss.NewStyle().Width(m.width - 2)
	for i, p := range m.state.Items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(wrap.Render(titleStyle.Render(p.Title)))
		b.WriteString("\n")
		b.WriteString(wrap.Render(bodyStyle.Render(p.Body)))
		b.WriteString("\n")
	}
	if !m.state.Empty() {
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(labelFooter))
	return b.String()
}

// View renders the screen
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.state.ShowLoadingScreen() {
		return "\n  " + m.spinner.View() + " " + labelLoading + "\n"
	}

	var b strings.Builder
	if m.state.SupportsCreate {
		b.WriteString(m.renderForm())
		b.WriteString("\n")
	}

	b.WriteString(headerStyle.Render(labelHeader))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderForm() string {
	label := labelAdd
	button := buttonStyle
	if m.state.IsSubmitting {
		label = labelAdding
	}
	if !m.state.CanSubmit() {
		button = buttonDisabledStyle
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		m.title.View(),
		m.body.View(),
		button.Render(label),
	)
	return formStyle.Width(m.width - 2).Render(form)
}

func (m Model) statusLine() string {
	switch {
	case m.state.Err != nil:
		return errorStyle.Render(m.state.Err.Message() + " (esc to dismiss)")
	case m.state.IsRefreshing:
		return m.spinner.View() + " " + labelRefreshing
	case m.state.IsLoading:
		return m.spinner.View() + " " + labelLoading
	default:
		return ""
	}
}

func (m Model) helpLine() string {
	if m.focus != focusList {
		return "enter: next/submit • esc: back to list • tab: next field • ctrl+c: quit"
	}
	if m.state.SupportsCreate {
		return "r: refresh • tab: write a post • ↑/↓: scroll • q: quit"
	}
	return "r: refresh • ↑/↓: scroll • q: quit"
}
