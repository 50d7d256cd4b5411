package messages

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pawshelter/petcare/internal/api"
	"github.com/pawshelter/petcare/internal/auth"
	"github.com/pawshelter/petcare/internal/session"
)

// Navigation messages.
type (
	NavigateMsg struct{ Path string }
	GoBackMsg   struct{}
)

// SessionChangedMsg is sent after every session store transition.
type SessionChangedMsg struct {
	State session.State
}

// Auth operations carried by AuthResultMsg.
const (
	OpLogin    = "login"
	OpRegister = "register"
)

// Data messages.
type (
	AuthResultMsg struct {
		Op     string
		Result auth.Result
	}

	PetsLoadedMsg struct {
		Pets  []api.Pet
		Stale bool
		Err   error
	}

	PetLoadedMsg struct {
		Pet *api.Pet
		Err error
	}

	BookingsLoadedMsg struct {
		UserID   string // empty for the admin list
		Bookings []api.Booking
		Err      error
	}

	BookingCreatedMsg struct {
		Booking *api.Booking
		Err     error
	}

	BookingStatusMsg struct {
		ID     string
		Status string
		Err    error
	}

	// BookingUpdatesMsg reports bookings the shelter has moved to a new
	// status since they were last seen.
	BookingUpdatesMsg struct {
		Updates []BookingUpdate
	}

	UsersLoadedMsg struct {
		Users []api.User
		Err   error
	}

	UserLoadedMsg struct {
		User *api.User
		Err  error
	}

	DashboardLoadedMsg struct {
		Stats *api.DashboardStats
		Err   error
	}

	StatusMsg struct {
		Text    string
		IsError bool
	}
)

// BookingUpdate is one entry of BookingUpdatesMsg.
type BookingUpdate struct {
	BookingID string
	PetName   string
	Status    string
}

// Navigate returns a command that moves to path.
func Navigate(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}

// Status returns a command that sets the status bar text.
func Status(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text, IsError: isError} }
}
