package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pawshelter/petcare/internal/api"
	"github.com/pawshelter/petcare/internal/render"
	"github.com/pawshelter/petcare/internal/ui/messages"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57")).Bold(true).Padding(1, 0)
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 2).
			Width(18)
	numberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	metaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// Model is the admin dashboard.
type Model struct {
	stats   *api.DashboardStats
	loading bool
	err     string
	client  *api.Client
	width   int
	height  int
}

// New creates the dashboard.
func New(client *api.Client) Model {
	return Model{client: client, loading: true}
}

// Init loads the counts.
func (m Model) Init() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		stats, err := client.Dashboard(context.Background())
		return messages.DashboardLoadedMsg{Stats: stats, Err: err}
	}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.DashboardLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		m.err = ""
		m.stats = msg.Stats
	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.Init()
		}
	}
	return m, nil
}

func card(n int, label string) string {
	return cardStyle.Render(numberStyle.Render(fmt.Sprintf("%d", n)) + "\n" + labelStyle.Render(label))
}

// View renders the dashboard.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Dashboard"))
	sb.WriteString("\n")

	switch {
	case m.loading:
		return sb.String() + "Loading..."
	case m.err != "":
		return sb.String() + "Error: " + m.err
	case m.stats == nil:
		return sb.String()
	}

	s := m.stats
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		card(s.TotalPets, "Total pets"),
		card(s.TotalUsers, "Users"),
		card(s.PendingBookings, "Pending"),
		card(s.ConfirmedBookings, "Confirmed"),
		card(s.CancelledBookings, "Cancelled"),
	))
	sb.WriteString("\n\n")
	sb.WriteString(labelStyle.Render("Recent bookings"))
	sb.WriteString("\n")
	if len(s.RecentBookings) == 0 {
		sb.WriteString(metaStyle.Render("  none"))
	}
	for _, b := range s.RecentBookings {
		sb.WriteString(fmt.Sprintf("  %s  %s  %s\n", b.PetName(), b.Name, metaStyle.Render(b.Status+" "+render.FormatDate(b.CreatedAt))))
	}
	return sb.String()
}
