package userprofile

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pawshelter/petcare/internal/api"
	"github.com/pawshelter/petcare/internal/ui/bookings"
	"github.com/pawshelter/petcare/internal/ui/messages"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57")).Bold(true).Padding(1, 0)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")).Bold(true).Width(10)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
)

// Model is the admin view of one user and their bookings.
type Model struct {
	user     *api.User
	userID   string
	loading  bool
	err      string
	bookings bookings.Model
	client   *api.Client
	width    int
	height   int
}

// New creates a profile view for the user with id.
func New(id string, client *api.Client) Model {
	return Model{
		userID:   id,
		loading:  true,
		bookings: bookings.NewForUser("Bookings", id, client),
		client:   client,
	}
}

// Init loads the user and their bookings.
func (m Model) Init() tea.Cmd {
	id := m.userID
	client := m.client
	return tea.Batch(func() tea.Msg {
		user, err := client.GetUser(context.Background(), id)
		return messages.UserLoadedMsg{User: user, Err: err}
	}, m.bookings.Init())
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.bookings.SetSize(w, max(h-8, 1))
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.UserLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
		} else {
			m.user = msg.User
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.bookings, cmd = m.bookings.Update(msg)
	return m, cmd
}

// View renders the user profile.
func (m Model) View() string {
	if m.loading {
		return titleStyle.Render("Loading user...")
	}
	if m.err != "" {
		return titleStyle.Render("Error: " + m.err)
	}
	if m.user == nil {
		return titleStyle.Render("User not found")
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.user.Fullname))
	sb.WriteString("\n")
	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		sb.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Email", m.user.Email)
	row("Role", string(m.user.Role))
	row("Phone", m.user.Phone)
	row("Address", m.user.Address)

	sb.WriteString(m.bookings.View())
	return sb.String()
}
