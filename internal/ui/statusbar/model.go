package statusbar

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pawshelter/petcare/internal/session"
)

var (
	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#FFFFFF"))

	activeTabStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2E8B57")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#555555")).
				Foreground(lipgloss.Color("#CCCCCC")).
				Padding(0, 1)

	pathStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#00FF00")).
			Padding(0, 1)

	adminStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#DAA520")).
			Foreground(lipgloss.Color("#000000")).
			Bold(true).
			Padding(0, 1)

	statusTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1)

	errorTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#8B0000")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)
)

// Tab is one entry of the navigation row.
type Tab struct {
	Label string
	Path  string
}

// Model is the status bar at the bottom of the screen.
type Model struct {
	width      int
	tabs       []Tab
	path       string
	state      session.State
	statusText string
	isError    bool
	busy       bool
}

// New creates a new status bar.
func New() Model {
	return Model{}
}

// SetSize sets the width.
func (m *Model) SetSize(w int) {
	m.width = w
}

// SetTabs sets the navigation row.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
}

// SetPath sets the current path; the tab whose path matches is highlighted.
func (m *Model) SetPath(path string) {
	m.path = path
}

// SetSession sets the session shown on the right.
func (m *Model) SetSession(st session.State) {
	m.state = st
}

// SetStatus sets a temporary status message.
func (m *Model) SetStatus(text string, isError bool) {
	m.statusText = text
	m.isError = isError
}

// SetBusy marks an auth request as outstanding.
func (m *Model) SetBusy(busy bool) {
	m.busy = busy
}

// Path returns the path currently shown.
func (m Model) Path() string {
	return m.path
}

// Status returns the current status text.
func (m Model) Status() string {
	return m.statusText
}

// Update is a no-op for the status bar.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the status bar.
func (m Model) View() string {
	var tabsStr string
	for _, t := range m.tabs {
		if t.Path == m.path {
			tabsStr += activeTabStyle.Render(t.Label)
		} else {
			tabsStr += inactiveTabStyle.Render(t.Label)
		}
	}
	tabsStr += pathStyle.Render(m.path)

	var right string
	if m.statusText != "" {
		if m.isError {
			right += errorTextStyle.Render(m.statusText)
		} else {
			right += statusTextStyle.Render(m.statusText)
		}
	}
	if m.busy {
		right += statusTextStyle.Render("...")
	}
	if id, ok := m.state.User(); ok {
		if id.IsAdmin() {
			right += adminStyle.Render("admin")
		}
		right += userStyle.Render(firstName(id.Fullname))
	} else {
		right += statusTextStyle.Render("L:login R:register")
	}

	gap := m.width - lipgloss.Width(tabsStr) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	mid := barStyle.Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, tabsStr, mid, right)
}

func firstName(full string) string {
	if f := strings.Fields(full); len(f) > 0 {
		return f[0]
	}
	return full
}
