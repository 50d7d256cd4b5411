package userlist

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pawshelter/petcare/internal/api"
	"github.com/pawshelter/petcare/internal/router"
	"github.com/pawshelter/petcare/internal/ui/messages"
)

var (
	nameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57")).Bold(true)
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	adminBadge    = lipgloss.NewStyle().Foreground(lipgloss.Color("#DAA520")).Bold(true)
)

// UserItem wraps an API user for the bubbles list.
type UserItem struct {
	api.User
}

func (u UserItem) FilterValue() string { return u.Fullname + " " + u.Email }

type delegate struct{}

func (d delegate) Height() int                             { return 2 }
func (d delegate) Spacing() int                            { return 0 }
func (d delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d delegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	u, ok := li.(UserItem)
	if !ok {
		return
	}
	name := nameStyle.Render(u.Fullname)
	if index == m.Index() {
		name = selectedStyle.Render("> " + u.Fullname)
	}
	if u.Role == api.RoleAdmin {
		name += " " + adminBadge.Render("admin")
	}
	fmt.Fprintf(w, "%s\n  %s", name, metaStyle.Render(u.Email+"  "+u.Phone))
}

// Model is the admin user list.
type Model struct {
	list   list.Model
	client *api.Client
}

// New creates the user list.
func New(client *api.Client) Model {
	l := list.New(nil, delegate{}, 0, 0)
	l.Title = "Users (loading...)"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	return Model{list: l, client: client}
}

// Init loads the users.
func (m Model) Init() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		users, err := client.ListUsers(context.Background())
		return messages.UsersLoadedMsg{Users: users, Err: err}
	}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.list.SetSize(w, h)
}

// Filtering reports whether the filter input has focus.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.UsersLoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Users - error: " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.Users))
		for _, u := range msg.Users {
			items = append(items, UserItem{User: u})
		}
		m.list.Title = "Users"
		return m, m.list.SetItems(items)

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		u, ok := m.list.SelectedItem().(UserItem)
		switch msg.String() {
		case "enter":
			if ok {
				return m, messages.Navigate(router.UserBookingsPath(u.ID))
			}
		case "e":
			if ok {
				return m, messages.Navigate(router.EditUserPath(u.ID))
			}
		case "r":
			m.list.Title = "Users (refreshing...)"
			return m, m.Init()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the user list.
func (m Model) View() string {
	return m.list.View()
}
