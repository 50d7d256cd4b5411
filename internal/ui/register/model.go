package register

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pawshelter/petcare/internal/auth"
	"github.com/pawshelter/petcare/internal/ui/messages"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true).Width(10)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
)

type field int

const (
	fieldFullname field = iota
	fieldEmail
	fieldPassword
	fieldPhone
	fieldAddress
	numFields
)

var labels = [numFields]string{"full name", "email", "password", "phone", "address"}

// Model is the registration form.
type Model struct {
	inputs     [numFields]textinput.Model
	focused    field
	spinner    spinner.Model
	actions    *auth.Actions
	err        string
	submitting bool
	width      int
	height     int
}

// New creates a new registration form.
func New(actions *auth.Actions) Model {
	var inputs [numFields]textinput.Model
	placeholders := [numFields]string{"Jane Doe", "jane@example.com", "password", "optional", "optional"}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 120
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldFullname].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		inputs:  inputs,
		spinner: sp,
		actions: actions,
	}
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
	for i := range m.inputs {
		m.inputs[i].Width = fw
	}
}

// Err returns the error shown on the form.
func (m Model) Err() string {
	return m.err
}

func (m Model) value(f field) string {
	return m.inputs[f].Value()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.focused = (m.focused + 1) % numFields
			return m, m.updateFocus()
		case "shift+tab", "up":
			m.focused = (m.focused + numFields - 1) % numFields
			return m, m.updateFocus()
		case "enter":
			if m.focused < numFields-1 {
				m.focused++
				return m, m.updateFocus()
			}
			return m.submit()
		case "ctrl+s":
			return m.submit()
		}

	case messages.AuthResultMsg:
		if msg.Op != messages.OpRegister {
			return m, nil
		}
		m.submitting = false
		if !msg.Result.Success {
			m.err = msg.Result.Error
		}
		return m, nil

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.submitting || m.actions.InFlight() {
		return m, nil
	}
	if strings.TrimSpace(m.value(fieldFullname)) == "" {
		m.err = auth.MsgFullname
		return m, nil
	}
	fullname, email, password := m.value(fieldFullname), m.value(fieldEmail), m.value(fieldPassword)
	phone, address := m.value(fieldPhone), m.value(fieldAddress)
	if strings.TrimSpace(email) == "" || password == "" {
		m.err = auth.MsgRequired
		return m, nil
	}
	m.submitting = true
	m.err = ""
	actions := m.actions
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		res := actions.Register(context.Background(), fullname, email, password, phone, address)
		return messages.AuthResultMsg{Op: messages.OpRegister, Result: res}
	})
}

func (m *Model) updateFocus() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return m.inputs[m.focused].Focus()
}

// View renders the registration form.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Create an account"))
	sb.WriteString("\n\n")

	for i := range m.inputs {
		sb.WriteString(labelStyle.Render(labels[i]) + " " + m.inputs[i].View())
		sb.WriteString("\n\n")
	}

	if m.err != "" {
		sb.WriteString(errorStyle.Render(m.err))
		sb.WriteString("\n")
	}

	if m.submitting {
		sb.WriteString(m.spinner.View() + " Creating account...")
	} else {
		sb.WriteString(hintStyle.Render("Tab to switch fields | Enter on last field or Ctrl+S to submit | Esc to cancel"))
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}
