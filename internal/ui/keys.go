package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit       key.Binding
	Back       key.Binding
	Home       key.Binding
	Login      key.Binding
	Register   key.Binding
	Logout     key.Binding
	Admin      key.Binding
	MyBookings key.Binding
	Help       key.Binding
	Tab1       key.Binding
	Tab2       key.Binding
	Tab3       key.Binding
	Tab4       key.Binding
}

var Keys = KeyMap{
	Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Home:       key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "home")),
	Login:      key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "login")),
	Register:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "register")),
	Logout:     key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "logout")),
	Admin:      key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "admin")),
	MyBookings: key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "my bookings")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Tab1:       key.NewBinding(key.WithKeys("1")),
	Tab2:       key.NewBinding(key.WithKeys("2")),
	Tab3:       key.NewBinding(key.WithKeys("3")),
	Tab4:       key.NewBinding(key.WithKeys("4")),
}

// ShortHelp lists the global bindings shown in the help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Home, k.Login, k.Register, k.Logout, k.Admin, k.MyBookings, k.Back, k.Quit}
}
