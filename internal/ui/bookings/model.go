package bookings

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pawshelter/petcare/internal/api"
	"github.com/pawshelter/petcare/internal/render"
	"github.com/pawshelter/petcare/internal/router"
	"github.com/pawshelter/petcare/internal/ui/messages"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57")).Bold(true).Padding(1, 0)
	rowStyle      = lipgloss.NewStyle().Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("#333333")).Padding(0, 1)
	petStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	filterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))

	statusStyles = map[string]lipgloss.Style{
		api.BookingPending:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		api.BookingConfirmed: lipgloss.NewStyle().Foreground(lipgloss.Color("#32CD32")),
		api.BookingCancelled: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444")),
	}
)

// Filters cycles through these; "" shows everything.
var Filters = []string{"", api.BookingPending, api.BookingConfirmed, api.BookingCancelled}

// Model lists bookings. In admin mode it lists every booking and can change
// their status; otherwise it lists one user's bookings read-only.
type Model struct {
	title    string
	userID   string
	admin    bool
	all      []api.Booking
	shown    []int
	filter   int
	selected int
	loading  bool
	err      string
	client   *api.Client
	width    int
	height   int
}

// NewAdmin creates the admin view of all bookings.
func NewAdmin(client *api.Client) Model {
	return Model{title: "Bookings", admin: true, client: client, loading: true}
}

// NewForUser creates a read-only view of one user's bookings.
func NewForUser(title, userID string, client *api.Client) Model {
	return Model{title: title, userID: userID, client: client, loading: true}
}

// Init loads the bookings.
func (m Model) Init() tea.Cmd {
	client := m.client
	userID := m.userID
	admin := m.admin
	return func() tea.Msg {
		ctx := context.Background()
		if admin {
			b, err := client.AdminBookings(ctx)
			return messages.BookingsLoadedMsg{Bookings: b, Err: err}
		}
		b, err := client.UserBookings(ctx, userID)
		return messages.BookingsLoadedMsg{UserID: userID, Bookings: b, Err: err}
	}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Shown returns the bookings that pass the current filter.
func (m Model) Shown() []api.Booking {
	out := make([]api.Booking, 0, len(m.shown))
	for _, i := range m.shown {
		out = append(out, m.all[i])
	}
	return out
}

// Filter returns the active status filter, "" for all.
func (m Model) Filter() string {
	return Filters[m.filter]
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.BookingsLoadedMsg:
		if msg.UserID != m.userID {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		m.err = ""
		m.all = msg.Bookings
		m.applyFilter()
		return m, nil

	case messages.BookingStatusMsg:
		if msg.Err != nil {
			return m, messages.Status("Status update failed: "+errText(msg.Err), true)
		}
		for i := range m.all {
			if m.all[i].ID == msg.ID {
				m.all[i].Status = msg.Status
			}
		}
		m.applyFilter()
		return m, messages.Status("Booking marked "+msg.Status, false)

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.selected < len(m.shown)-1 {
				m.selected++
			}
		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}
		case "f":
			m.filter = (m.filter + 1) % len(Filters)
			m.applyFilter()
		case "r":
			m.loading = true
			return m, m.Init()
		case "enter":
			if b, ok := m.current(); ok && b.Pet != nil && b.Pet.ID != "" {
				return m, messages.Navigate(router.PetPath(b.Pet.ID))
			}
		case "c":
			return m, m.setStatus(api.BookingConfirmed)
		case "x":
			return m, m.setStatus(api.BookingCancelled)
		case "p":
			return m, m.setStatus(api.BookingPending)
		}
	}
	return m, nil
}

func (m *Model) applyFilter() {
	m.shown = m.shown[:0]
	want := Filters[m.filter]
	for i, b := range m.all {
		if want == "" || b.Status == want {
			m.shown = append(m.shown, i)
		}
	}
	if m.selected >= len(m.shown) {
		m.selected = max(len(m.shown)-1, 0)
	}
}

func (m Model) current() (api.Booking, bool) {
	if m.selected < 0 || m.selected >= len(m.shown) {
		return api.Booking{}, false
	}
	return m.all[m.shown[m.selected]], true
}

func (m Model) setStatus(status string) tea.Cmd {
	if !m.admin {
		return nil
	}
	b, ok := m.current()
	if !ok || b.Status == status {
		return nil
	}
	client := m.client
	return func() tea.Msg {
		err := client.UpdateBookingStatus(context.Background(), b.ID, status)
		return messages.BookingStatusMsg{ID: b.ID, Status: status, Err: err}
	}
}

func errText(err error) string {
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	return err.Error()
}

// View renders the bookings list.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(m.title))
	filter := Filters[m.filter]
	if filter == "" {
		filter = "all"
	}
	sb.WriteString(filterStyle.Render(fmt.Sprintf("  [%s] %d/%d", filter, len(m.shown), len(m.all))))
	sb.WriteString("\n")

	switch {
	case m.loading:
		sb.WriteString("\n  Loading bookings...\n")
		return sb.String()
	case m.err != "":
		sb.WriteString("\n  Error: " + m.err + "\n")
		return sb.String()
	case len(m.shown) == 0:
		sb.WriteString("\n  No bookings found.\n")
		return sb.String()
	}

	for i, idx := range m.shown {
		b := m.all[idx]
		var line strings.Builder
		st, ok := statusStyles[b.Status]
		if !ok {
			st = metaStyle
		}
		line.WriteString(petStyle.Render(b.PetName()))
		line.WriteString(" " + st.Render(b.Status))
		line.WriteString(metaStyle.Render(" " + render.TimeAgo(b.CreatedAt)))
		line.WriteString("\n")
		line.WriteString(metaStyle.Render(fmt.Sprintf("  %s | %s | %s", b.Name, b.Contact, b.Address)))

		entry := line.String()
		if i == m.selected {
			entry = selectedStyle.Render(entry)
		} else {
			entry = rowStyle.Render(entry)
		}
		sb.WriteString(entry + "\n")
	}

	hint := "j/k move | f filter | enter pet | r refresh"
	if m.admin {
		hint += " | c confirm | x cancel | p pending"
	}
	sb.WriteString("\n" + hintStyle.Render(hint))
	return sb.String()
}
