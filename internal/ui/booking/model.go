package booking

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pawshelter/petcare/internal/api"
	"github.com/pawshelter/petcare/internal/session"
	"github.com/pawshelter/petcare/internal/ui/messages"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true).Width(9)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
)

type field int

const (
	fieldName field = iota
	fieldContact
	fieldAddress
	numFields
)

// Model is the booking form shown over a pet's detail page.
type Model struct {
	pet          api.Pet
	nameInput    textinput.Model
	contactInput textinput.Model
	address      textarea.Model
	focused      field
	client       *api.Client
	err          string
	submitting   bool
	width        int
	height       int
}

// New creates a booking form for pet, prefilled from the signed-in user.
func New(pet api.Pet, id session.Identity, client *api.Client) Model {
	ni := textinput.New()
	ni.Placeholder = "Your name"
	ni.SetValue(id.Fullname)
	ni.Focus()
	ni.CharLimit = 80
	ni.Width = 40

	ci := textinput.New()
	ci.Placeholder = "Contact number"
	ci.SetValue(id.Phone)
	ci.CharLimit = 20
	ci.Width = 40

	ta := textarea.New()
	ta.Placeholder = "Address"
	ta.SetValue(id.Address)
	ta.SetWidth(40)
	ta.SetHeight(3)

	return Model{
		pet:          pet,
		nameInput:    ni,
		contactInput: ci,
		address:      ta,
		client:       client,
	}
}

// Validate returns the first problem with the form values, or "".
func Validate(name, contact, address string) string {
	switch {
	case strings.TrimSpace(name) == "":
		return "Name is required"
	case strings.TrimSpace(contact) == "":
		return "Contact number is required"
	case strings.TrimSpace(address) == "":
		return "Address is required"
	}
	return ""
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	fw := w - 16
	if fw > 60 {
		fw = 60
	}
	if fw < 10 {
		fw = 10
	}
	m.nameInput.Width = fw
	m.contactInput.Width = fw
	m.address.SetWidth(fw)
}

// Submitting reports whether the booking request is outstanding.
func (m Model) Submitting() bool {
	return m.submitting
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			m.focused = (m.focused + 1) % numFields
			return m, m.updateFocus()
		case "shift+tab":
			m.focused = (m.focused + numFields - 1) % numFields
			return m, m.updateFocus()
		case "ctrl+s":
			if m.submitting {
				return m, nil
			}
			req := api.BookingRequest{
				PetID:   m.pet.ID,
				Name:    strings.TrimSpace(m.nameInput.Value()),
				Contact: strings.TrimSpace(m.contactInput.Value()),
				Address: strings.TrimSpace(m.address.Value()),
			}
			if e := Validate(req.Name, req.Contact, req.Address); e != "" {
				m.err = e
				return m, nil
			}
			m.submitting = true
			m.err = ""
			client := m.client
			return m, func() tea.Msg {
				b, err := client.CreateBooking(context.Background(), req)
				return messages.BookingCreatedMsg{Booking: b, Err: err}
			}
		}

	case messages.BookingCreatedMsg:
		m.submitting = false
		if msg.Err != nil {
			m.err = api.ServerMessage(msg.Err)
			if m.err == "" {
				m.err = "Failed to create booking. Please try again."
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focused {
	case fieldName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case fieldContact:
		m.contactInput, cmd = m.contactInput.Update(msg)
	case fieldAddress:
		m.address, cmd = m.address.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateFocus() tea.Cmd {
	m.nameInput.Blur()
	m.contactInput.Blur()
	m.address.Blur()
	switch m.focused {
	case fieldName:
		return m.nameInput.Focus()
	case fieldContact:
		return m.contactInput.Focus()
	case fieldAddress:
		return m.address.Focus()
	}
	return nil
}

// View renders the booking form.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Book a visit with " + m.pet.Name))
	sb.WriteString("\n\n")
	sb.WriteString(labelStyle.Render("name") + " " + m.nameInput.View())
	sb.WriteString("\n\n")
	sb.WriteString(labelStyle.Render("contact") + " " + m.contactInput.View())
	sb.WriteString("\n\n")
	sb.WriteString(labelStyle.Render("address") + "\n" + m.address.View())
	sb.WriteString("\n\n")

	if m.err != "" {
		sb.WriteString(errorStyle.Render(m.err))
		sb.WriteString("\n")
	}

	if m.submitting {
		sb.WriteString("Booking...")
	} else {
		sb.WriteString(hintStyle.Render("Tab to switch fields | Ctrl+S to book | Esc to cancel"))
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}
