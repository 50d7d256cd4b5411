package petview

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pawshelter/petcare/internal/api"
	"github.com/pawshelter/petcare/internal/cache"
	"github.com/pawshelter/petcare/internal/config"
	"github.com/pawshelter/petcare/internal/guard"
	"github.com/pawshelter/petcare/internal/render"
	"github.com/pawshelter/petcare/internal/session"
	"github.com/pawshelter/petcare/internal/ui/booking"
	"github.com/pawshelter/petcare/internal/ui/messages"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1)
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")).Padding(0, 1)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")).Bold(true).Width(12)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	goodStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#32CD32"))
	badStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Padding(0, 1)
	separatorLine = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
)

// Model is the pet detail view.
type Model struct {
	viewport viewport.Model
	petID    string
	pet      *api.Pet
	form     *booking.Model
	client   *api.Client
	cache    *cache.DB
	cfg      config.Config
	store    *session.Store
	loading  bool
	err      string
	width    int
	height   int
}

// New creates a detail view for the pet with id.
func New(id string, cfg config.Config, client *api.Client, db *cache.DB, store *session.Store) Model {
	vp := viewport.New(0, 0)
	vp.SetContent("Loading...")

	return Model{
		viewport: vp,
		petID:    id,
		client:   client,
		cache:    db,
		cfg:      cfg,
		store:    store,
		loading:  true,
	}
}

// Init loads the pet, preferring a fresh cache entry.
func (m Model) Init() tea.Cmd {
	id := m.petID
	client := m.client
	db := m.cache
	ttl := m.cfg.PetTTL
	return func() tea.Msg {
		cached, fresh, err := db.GetPet(id, ttl)
		if err != nil {
			slog.Warn("reading pet cache", "id", id, "err", err)
		}
		if fresh && cached != nil {
			return messages.PetLoadedMsg{Pet: cached}
		}
		pet, err := client.GetPet(context.Background(), id)
		if err != nil {
			if cached != nil {
				return messages.PetLoadedMsg{Pet: cached}
			}
			return messages.PetLoadedMsg{Err: err}
		}
		if err := db.PutPet(pet); err != nil {
			slog.Warn("caching pet", "id", id, "err", err)
		}
		return messages.PetLoadedMsg{Pet: pet}
	}
}

// SetSize updates viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = max(h-2, 1)
	if m.form != nil {
		m.form.SetSize(w, h)
	}
	m.rebuildContent()
}

// Capturing reports whether the booking form has keyboard focus.
func (m Model) Capturing() bool {
	return m.form != nil
}

// Pet returns the loaded pet, if any.
func (m Model) Pet() *api.Pet {
	return m.pet
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.PetLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
		} else {
			m.pet = msg.Pet
		}
		m.rebuildContent()
		return m, nil

	case messages.BookingCreatedMsg:
		if m.form == nil {
			return m, nil
		}
		if msg.Err != nil {
			f, cmd := m.form.Update(msg)
			m.form = &f
			return m, cmd
		}
		m.form = nil
		return m, messages.Status("Booking request sent for "+m.pet.Name, false)

	case messages.SessionChangedMsg:
		if !msg.State.LoggedIn() {
			m.form = nil
		}
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			if msg.String() == "esc" && !m.form.Submitting() {
				m.form = nil
				return m, nil
			}
			f, cmd := m.form.Update(msg)
			m.form = &f
			return m, cmd
		}
		switch msg.String() {
		case "b", "enter":
			return m, m.openBooking()
		case "r":
			m.loading = true
			m.viewport.SetContent("Loading...")
			return m, m.Init()
		}
	}

	var cmd tea.Cmd
	if m.form != nil {
		f, c := m.form.Update(msg)
		m.form = &f
		return m, c
	}
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) openBooking() tea.Cmd {
	if m.pet == nil {
		return nil
	}
	id, ok := m.store.State().User()
	if !ok {
		return tea.Batch(
			messages.Status("Log in to book a visit", false),
			messages.Navigate(guard.LoginPath),
		)
	}
	if !m.pet.Available {
		return messages.Status(m.pet.Name+" is not available", true)
	}
	f := booking.New(*m.pet, id, m.client)
	f.SetSize(m.width, m.height)
	m.form = &f
	return nil
}

// View renders the pet detail.
func (m Model) View() string {
	if m.form != nil {
		return m.form.View()
	}
	title := "Pet"
	if m.pet != nil {
		title = m.pet.Name
	}
	header := headerStyle.Render(title) + "\n" + separatorLine.Render(strings.Repeat("─", max(m.width, 1)))
	hint := hintStyle.Render("b book | r refresh | esc back")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), hint)
}

func (m *Model) rebuildContent() {
	switch {
	case m.loading:
		m.viewport.SetContent("Loading...")
		return
	case m.err != "":
		m.viewport.SetContent("Error loading pet: " + m.err)
		return
	case m.pet == nil:
		m.viewport.SetContent("Pet not found")
		return
	}
	m.viewport.SetContent(Details(*m.pet, m.width))
}

// Details renders the body of the detail page.
func Details(p api.Pet, width int) string {
	var sb strings.Builder
	row := func(label, value string) {
		if value == "" {
			return
		}
		sb.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}

	sb.WriteString(metaStyle.Render(strings.TrimSpace(p.Type+" "+p.Breed)) + "\n\n")
	row("Age", yrs(p.Age))
	row("Gender", p.Gender)
	row("Color", p.Color)
	if p.Weight != "" {
		row("Weight", string(p.Weight)+" kg")
	}
	row("Location", p.Location)
	if p.Price != "" {
		row("Fee", "Rs. "+string(p.Price))
	}

	if p.Vaccinated {
		sb.WriteString(labelStyle.Render("Health") + goodStyle.Render("Vaccinated") + "\n")
	} else {
		sb.WriteString(labelStyle.Render("Health") + badStyle.Render("Not Vaccinated") + "\n")
	}
	if p.Available {
		sb.WriteString(labelStyle.Render("Status") + goodStyle.Render("Available") + "\n")
	} else {
		sb.WriteString(labelStyle.Render("Status") + badStyle.Render("Not Available") + "\n")
	}

	if desc := render.DescriptionText(p.Description, width-4); desc != "" {
		sb.WriteString("\n" + desc + "\n")
	}
	return sb.String()
}

func yrs(age api.Flex) string {
	if age == "" {
		return ""
	}
	return fmt.Sprintf("%s years", age)
}
