package login

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
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#32CD32"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57")).Bold(true).
			Padding(1, 0)
)

// Model is the login form view.
type Model struct {
	emailInput    textinput.Model
	passwordInput textinput.Model
	spinner       spinner.Model
	focusIndex    int
	err           string
	notice        string
	submitting    bool
	actions       *auth.Actions
	width         int
	height        int
}

// New creates a new login form. notice is shown above the form, e.g. after
// registering.
func New(actions *auth.Actions, notice string) Model {
	emailInput := textinput.New()
	emailInput.Placeholder = "email"
	emailInput.Focus()
	emailInput.Width = 30

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.Width = 30

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		emailInput:    emailInput,
		passwordInput: passwordInput,
		spinner:       sp,
		notice:        notice,
		actions:       actions,
	}
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Err returns the error shown on the form.
func (m Model) Err() string {
	return m.err
}

// busy reports whether a submission from this form, or any other auth
// request, is outstanding.
func (m Model) busy() bool {
	return m.submitting || m.actions.InFlight()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "down", "up":
			if m.focusIndex == 0 {
				m.focusIndex = 1
				m.emailInput.Blur()
				m.passwordInput.Focus()
			} else {
				m.focusIndex = 0
				m.passwordInput.Blur()
				m.emailInput.Focus()
			}
			return m, nil
		case "enter":
			if m.busy() {
				return m, nil
			}
			if m.focusIndex == 0 && m.passwordInput.Value() == "" {
				m.focusIndex = 1
				m.emailInput.Blur()
				m.passwordInput.Focus()
				return m, nil
			}
			email := strings.TrimSpace(m.emailInput.Value())
			password := m.passwordInput.Value()
			if email == "" || password == "" {
				m.err = auth.MsgRequired
				return m, nil
			}
			m.err = ""
			m.notice = ""
			m.submitting = true
			actions := m.actions
			return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
				res := actions.Login(context.Background(), email, password)
				return messages.AuthResultMsg{Op: messages.OpLogin, Result: res}
			})
		}

	case messages.AuthResultMsg:
		if msg.Op != messages.OpLogin {
			return m, nil
		}
		m.submitting = false
		if !msg.Result.Success {
			m.err = msg.Result.Error
			m.passwordInput.SetValue("")
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.focusIndex == 0 {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

// View renders the login form.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Login to petcare"))
	sb.WriteString("\n")
	if m.notice != "" {
		sb.WriteString(noticeStyle.Render(m.notice))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Email:"))
	sb.WriteString("\n")
	sb.WriteString(m.emailInput.View())
	sb.WriteString("\n\n")
	sb.WriteString(labelStyle.Render("Password:"))
	sb.WriteString("\n")
	sb.WriteString(m.passwordInput.View())
	sb.WriteString("\n\n")

	if m.err != "" {
		sb.WriteString(errorStyle.Render(m.err))
		sb.WriteString("\n\n")
	}

	if m.busy() {
		sb.WriteString(m.spinner.View() + " Logging in...")
	} else {
		sb.WriteString(focusedStyle.Render("Enter") + " to submit, " + focusedStyle.Render("Esc") + " to cancel")
	}

	content := sb.String()
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
