package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pawshelter/petcare/internal/api"
	"github.com/pawshelter/petcare/internal/auth"
	"github.com/pawshelter/petcare/internal/cache"
	"github.com/pawshelter/petcare/internal/config"
	"github.com/pawshelter/petcare/internal/guard"
	"github.com/pawshelter/petcare/internal/router"
	"github.com/pawshelter/petcare/internal/session"
	"github.com/pawshelter/petcare/internal/ui/bookings"
	"github.com/pawshelter/petcare/internal/ui/dashboard"
	"github.com/pawshelter/petcare/internal/ui/info"
	"github.com/pawshelter/petcare/internal/ui/login"
	"github.com/pawshelter/petcare/internal/ui/messages"
	"github.com/pawshelter/petcare/internal/ui/petlist"
	"github.com/pawshelter/petcare/internal/ui/petview"
	"github.com/pawshelter/petcare/internal/ui/register"
	"github.com/pawshelter/petcare/internal/ui/statusbar"
	"github.com/pawshelter/petcare/internal/ui/userlist"
	"github.com/pawshelter/petcare/internal/ui/userprofile"
)

const registeredNotice = "Registration successful. Please log in."

var publicTabs = []statusbar.Tab{
	{Label: "1 Pets", Path: "/"},
	{Label: "2 Services", Path: "/services"},
	{Label: "3 About", Path: "/about"},
	{Label: "4 Contact", Path: "/contact"},
}

var adminTabs = []statusbar.Tab{
	{Label: "1 Dashboard", Path: "/admin/dashboard"},
	{Label: "2 Pets", Path: "/admin/pets"},
	{Label: "3 Bookings", Path: "/admin/bookings"},
	{Label: "4 Users", Path: "/admin/users"},
}

// App is the root Bubble Tea model.
type App struct {
	// Navigation state
	match   router.Match
	history []string

	// Child models
	petList      petlist.Model
	adminPets    petlist.Model
	petView      petview.Model
	loginForm    login.Model
	registerForm register.Model
	infoPage     info.Model
	dashboard    dashboard.Model
	bookings     bookings.Model
	users        userlist.Model
	userProfile  userprofile.Model
	statusBar    statusbar.Model
	showHelp     bool
	loginNotice  string

	// Shared state
	cfg     config.Config
	client  *api.Client
	cache   *cache.DB
	store   *session.Store
	actions *auth.Actions
	router  *router.Router

	// Dimensions
	width  int
	height int
}

// NewApp creates the root application model.
func NewApp(cfg config.Config, client *api.Client, db *cache.DB, store *session.Store, actions *auth.Actions, r *router.Router) *App {
	return &App{
		petList:   petlist.New("Pets for adoption", cfg, client, db),
		statusBar: statusbar.New(),
		cfg:       cfg,
		client:    client,
		cache:     db,
		store:     store,
		actions:   actions,
		router:    r,
	}
}

// Path returns the path of the page on screen.
func (a *App) Path() string {
	return a.match.Path
}

// Page returns the page on screen.
func (a *App) Page() router.Page {
	return a.match.Page
}

// Init loads the home page.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.petList.Init(), a.navigate(guard.HomePath, false))
}

// Update handles all messages. After every message the current path is
// resolved again so that a session change moves the user off a page they
// may no longer see.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	redirect := a.syncRoute()
	a.statusBar.SetSession(a.store.State())
	a.statusBar.SetTabs(a.tabs())
	a.statusBar.SetPath(a.match.Path)
	a.statusBar.SetBusy(a.actions.InFlight())
	return a, tea.Batch(cmd, redirect)
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.petList.SetSize(msg.Width, a.contentHeight())
		a.statusBar.SetSize(msg.Width)
		a.resizeActive()
		return nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		if a.capturing() {
			if key.Matches(msg, Keys.Back) && a.isForm() {
				return a.goBack()
			}
			break
		}
		switch {
		case key.Matches(msg, Keys.Quit):
			return tea.Quit
		case key.Matches(msg, Keys.Back):
			return a.goBack()
		case key.Matches(msg, Keys.Help):
			a.showHelp = !a.showHelp
			a.petList.SetSize(a.width, a.contentHeight())
			a.resizeActive()
			return nil
		case key.Matches(msg, Keys.Home):
			return a.navigate(guard.HomePath, true)
		case key.Matches(msg, Keys.Login):
			if !a.store.State().LoggedIn() {
				return a.navigate(guard.LoginPath, true)
			}
			return messages.Status("Already signed in", false)
		case key.Matches(msg, Keys.Register):
			return a.navigate("/register", true)
		case key.Matches(msg, Keys.Logout):
			if !a.store.State().LoggedIn() {
				return nil
			}
			a.actions.Logout(context.Background())
			return messages.Status("Signed out", false)
		case key.Matches(msg, Keys.Admin):
			return a.navigate("/admin", true)
		case key.Matches(msg, Keys.MyBookings):
			return a.navigate("/bookings", true)
		case key.Matches(msg, Keys.Tab1, Keys.Tab2, Keys.Tab3, Keys.Tab4):
			i := int(msg.Runes[0] - '1')
			if tabs := a.tabs(); i < len(tabs) {
				return a.navigate(tabs[i].Path, true)
			}
			return nil
		}

	case messages.NavigateMsg:
		return a.navigate(msg.Path, true)

	case messages.GoBackMsg:
		return a.goBack()

	case messages.SessionChangedMsg:
		slog.Debug("session changed", "state", msg.State.String())
		a.petView, _ = a.petView.Update(msg)
		return nil

	case messages.AuthResultMsg:
		cmds = append(cmds, a.routeToActive(msg))
		if !msg.Result.Success {
			return tea.Batch(cmds...)
		}
		switch msg.Op {
		case messages.OpLogin:
			id, _ := a.store.State().User()
			dest := guard.HomePath
			if id.IsAdmin() {
				dest = "/admin"
			}
			a.history = nil
			cmds = append(cmds, messages.Status("Welcome, "+id.Fullname, false), a.navigate(dest, false))
		case messages.OpRegister:
			// The new account is signed in, but the user still goes
			// through the login page.
			a.loginNotice = registeredNotice
			cmds = append(cmds, a.navigate(guard.LoginPath, false))
		}
		return tea.Batch(cmds...)

	case messages.PetsLoadedMsg:
		var c1, c2 tea.Cmd
		a.petList, c1 = a.petList.Update(msg)
		if a.match.Page == router.PageAdminPets {
			a.adminPets, c2 = a.adminPets.Update(msg)
		}
		return tea.Batch(c1, c2)

	case messages.BookingCreatedMsg:
		if msg.Err == nil {
			if err := a.cache.InvalidatePetList(petlist.CacheKey); err != nil {
				slog.Warn("invalidating pet cache", "err", err)
			}
		}

	case messages.BookingUpdatesMsg:
		if len(msg.Updates) == 0 {
			return nil
		}
		u := msg.Updates[0]
		text := fmt.Sprintf("Booking for %s is now %s", u.PetName, u.Status)
		if n := len(msg.Updates); n > 1 {
			text = fmt.Sprintf("%d bookings changed status", n)
		}
		cmds = append(cmds, messages.Status(text, false))
		if a.match.Page == router.PageMyBookings {
			cmds = append(cmds, a.bookings.Init())
		}
		return tea.Batch(cmds...)

	case messages.StatusMsg:
		a.statusBar.SetStatus(msg.Text, msg.IsError)
		return nil
	}

	cmds = append(cmds, a.routeToActive(msg))
	return tea.Batch(cmds...)
}

// routeToActive passes msg to the page on screen.
func (a *App) routeToActive(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.match.Page {
	case router.PageHome:
		a.petList, cmd = a.petList.Update(msg)
	case router.PageAdminPets:
		a.adminPets, cmd = a.adminPets.Update(msg)
	case router.PagePet:
		a.petView, cmd = a.petView.Update(msg)
	case router.PageLogin:
		a.loginForm, cmd = a.loginForm.Update(msg)
	case router.PageRegister:
		a.registerForm, cmd = a.registerForm.Update(msg)
	case router.PageAbout, router.PageServices, router.PageContact:
		a.infoPage, cmd = a.infoPage.Update(msg)
	case router.PageAdminDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case router.PageAdminBookings, router.PageMyBookings:
		a.bookings, cmd = a.bookings.Update(msg)
	case router.PageAdminUsers:
		a.users, cmd = a.users.Update(msg)
	case router.PageAdminEditUser, router.PageAdminUserBookings:
		a.userProfile, cmd = a.userProfile.Update(msg)
	}
	return cmd
}

// navigate resolves path against the current session and shows the result.
// push records the page being left for goBack.
func (a *App) navigate(path string, push bool) tea.Cmd {
	m, err := a.router.Resolve(path, a.store.State())
	if err != nil {
		slog.Error("navigation failed", "path", path, "err", err)
		return messages.Status("Cannot open "+path, true)
	}
	if m.Path == a.match.Path {
		return nil
	}
	if push && a.match.Path != "" {
		a.history = append(a.history, a.match.Path)
	}
	return a.enter(m)
}

// syncRoute re-checks the current path after a state change and replaces
// the page when the guard now redirects.
func (a *App) syncRoute() tea.Cmd {
	if a.match.Path == "" {
		return nil
	}
	m, err := a.router.Resolve(a.match.Path, a.store.State())
	if err != nil {
		slog.Error("re-resolving route", "path", a.match.Path, "err", err)
		return nil
	}
	if m.Path == a.match.Path {
		return nil
	}
	slog.Info("route redirect", "from", a.match.Path, "to", m.Path)
	return a.enter(m)
}

func (a *App) goBack() tea.Cmd {
	for len(a.history) > 0 {
		prev := a.history[len(a.history)-1]
		a.history = a.history[:len(a.history)-1]
		if cmd, moved := a.replace(prev); moved {
			return cmd
		}
	}
	if a.match.Path != guard.HomePath {
		return a.navigate(guard.HomePath, false)
	}
	return nil
}

func (a *App) replace(path string) (tea.Cmd, bool) {
	before := a.match.Path
	cmd := a.navigate(path, false)
	return cmd, a.match.Path != before
}

// enter builds the page for m and makes it current.
func (a *App) enter(m router.Match) tea.Cmd {
	a.match = m
	a.statusBar.SetPath(m.Path)
	h := a.contentHeight()

	var cmd tea.Cmd
	switch m.Page {
	case router.PageHome:
		a.petList.SetSize(a.width, h)
	case router.PageLogin:
		a.loginForm = login.New(a.actions, a.loginNotice)
		a.loginNotice = ""
		cmd = a.loginForm.Init()
	case router.PageRegister:
		a.registerForm = register.New(a.actions)
	case router.PageAbout:
		a.infoPage = info.New(info.About)
	case router.PageServices:
		a.infoPage = info.New(info.Services)
	case router.PageContact:
		a.infoPage = info.New(info.Contact)
	case router.PagePet:
		a.petView = petview.New(m.Param("id"), a.cfg, a.client, a.cache, a.store)
		cmd = a.petView.Init()
	case router.PageMyBookings:
		id, _ := a.store.State().User()
		if id.ID == "" {
			a.bookings = bookings.NewForUser("My bookings", "", a.client)
			return messages.Status("Your account has no ID; bookings unavailable", true)
		}
		a.bookings = bookings.NewForUser("My bookings", id.ID, a.client)
		cmd = a.bookings.Init()
	case router.PageAdminDashboard:
		a.dashboard = dashboard.New(a.client)
		cmd = a.dashboard.Init()
	case router.PageAdminPets:
		a.adminPets = petlist.New("Manage pets", a.cfg, a.client, a.cache)
		cmd = a.adminPets.Init()
	case router.PageAdminBookings:
		a.bookings = bookings.NewAdmin(a.client)
		cmd = a.bookings.Init()
	case router.PageAdminUsers:
		a.users = userlist.New(a.client)
		cmd = a.users.Init()
	case router.PageAdminEditUser:
		a.userProfile = userprofile.New(m.Param("id"), a.client)
		cmd = a.userProfile.Init()
	case router.PageAdminUserBookings:
		a.userProfile = userprofile.New(m.Param("userId"), a.client)
		cmd = a.userProfile.Init()
	}
	a.resizeActive()
	return cmd
}

func (a *App) resizeActive() {
	w, h := a.width, a.contentHeight()
	switch a.match.Page {
	case router.PageAdminPets:
		a.adminPets.SetSize(w, h)
	case router.PagePet:
		a.petView.SetSize(w, h)
	case router.PageLogin:
		a.loginForm.SetSize(w, h)
	case router.PageRegister:
		a.registerForm.SetSize(w, h)
	case router.PageAbout, router.PageServices, router.PageContact:
		a.infoPage.SetSize(w, h)
	case router.PageAdminDashboard:
		a.dashboard.SetSize(w, h)
	case router.PageAdminBookings, router.PageMyBookings:
		a.bookings.SetSize(w, h)
	case router.PageAdminUsers:
		a.users.SetSize(w, h)
	case router.PageAdminEditUser, router.PageAdminUserBookings:
		a.userProfile.SetSize(w, h)
	}
}

func (a *App) contentHeight() int {
	h := a.height - 1 // status bar
	if a.showHelp {
		h--
	}
	return max(h, 1)
}

// capturing reports whether the page on screen wants raw keystrokes.
func (a *App) capturing() bool {
	switch a.match.Page {
	case router.PageLogin, router.PageRegister:
		return true
	case router.PagePet:
		return a.petView.Capturing()
	case router.PageHome:
		return a.petList.Filtering()
	case router.PageAdminPets:
		return a.adminPets.Filtering()
	case router.PageAdminUsers:
		return a.users.Filtering()
	}
	return false
}

func (a *App) isForm() bool {
	return a.match.Page == router.PageLogin || a.match.Page == router.PageRegister
}

func (a *App) tabs() []statusbar.Tab {
	if a.store.State().IsAdmin() && strings.HasPrefix(a.match.Path, "/admin") {
		return adminTabs
	}
	return publicTabs
}

// View renders the application. A page the session may not see is never
// drawn, even for the frame before syncRoute moves away from it.
func (a *App) View() string {
	var content string
	if a.match.Path != "" {
		if rt, _, ok := a.router.Lookup(a.match.Path); ok && !guard.CanAccess(a.store.State(), rt.Require).Allowed() {
			content = RedirectStyle.Render("Redirecting...")
		} else {
			content = a.pageView()
		}
	}

	parts := []string{content}
	if a.showHelp {
		parts = append(parts, helpLine())
	}
	parts = append(parts, a.statusBar.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) pageView() string {
	switch a.match.Page {
	case router.PageHome:
		return a.petList.View()
	case router.PageAdminPets:
		return a.adminPets.View()
	case router.PagePet:
		return a.petView.View()
	case router.PageLogin:
		return a.loginForm.View()
	case router.PageRegister:
		return a.registerForm.View()
	case router.PageAbout, router.PageServices, router.PageContact:
		return a.infoPage.View()
	case router.PageAdminDashboard:
		return a.dashboard.View()
	case router.PageAdminBookings, router.PageMyBookings:
		return a.bookings.View()
	case router.PageAdminUsers:
		return a.users.View()
	case router.PageAdminEditUser, router.PageAdminUserBookings:
		return a.userProfile.View()
	}
	return ""
}

func helpLine() string {
	var parts []string
	for _, b := range Keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, HelpKeyStyle.Render(h.Key)+" "+HelpDescStyle.Render(h.Desc))
	}
	return " " + strings.Join(parts, "  ")
}
