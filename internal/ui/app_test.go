package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pawshelter/petcare/internal/api"
	"github.com/pawshelter/petcare/internal/auth"
	"github.com/pawshelter/petcare/internal/cache"
	"github.com/pawshelter/petcare/internal/config"
	"github.com/pawshelter/petcare/internal/router"
	"github.com/pawshelter/petcare/internal/session"
	"github.com/pawshelter/petcare/internal/ui/messages"
)

var (
	jane = session.NewIdentity(api.User{
		ID: "u1", Fullname: "Jane Doe", Email: "valid@example.com", Role: api.RoleUser,
	}, "abc123")
	ada = session.NewIdentity(api.User{
		ID: "u0", Fullname: "Ada", Email: "admin@example.com", Role: api.RoleAdmin,
	}, "admintoken")
)

func newTestApp(t *testing.T) (*App, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	db, err := cache.Open(filepath.Join(t.TempDir(), "ui.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := config.Default()
	client := api.NewClient(srv.URL, time.Second)
	store := session.NewStore(db)
	client.SetTokenSource(store.Token)
	app := NewApp(cfg, client, db, store, auth.NewActions(client, store), router.Default())
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	app.Init()
	return app, store
}

func keyPress(s string) tea.KeyMsg {
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func goTo(app *App, path string) {
	app.Update(messages.NavigateMsg{Path: path})
}

func TestStartsOnHome(t *testing.T) {
	app, _ := newTestApp(t)
	if app.Path() != "/" || app.Page() != router.PageHome {
		t.Errorf("start = %s (%s)", app.Path(), app.Page())
	}
}

func TestLogoutOnAdminPageRedirectsToLogin(t *testing.T) {
	app, store := newTestApp(t)
	if err := store.Login(ada); err != nil {
		t.Fatalf("Login: %v", err)
	}
	goTo(app, "/admin/bookings")
	if app.Path() != "/admin/bookings" {
		t.Fatalf("path = %s, want /admin/bookings", app.Path())
	}

	app.Update(keyPress("O"))

	if store.State().LoggedIn() {
		t.Error("O should sign out")
	}
	if app.Path() != "/login" {
		t.Errorf("path after logout = %s, want /login", app.Path())
	}
}

func TestAdminRouteAsUserRedirectsHome(t *testing.T) {
	app, store := newTestApp(t)
	_ = store.Login(jane)

	app.Update(keyPress("A"))
	if app.Path() != "/" {
		t.Errorf("path = %s, want /", app.Path())
	}
}

func TestAdminIndexLandsOnDashboard(t *testing.T) {
	app, store := newTestApp(t)
	_ = store.Login(ada)

	app.Update(keyPress("A"))
	if app.Page() != router.PageAdminDashboard || app.Path() != "/admin/dashboard" {
		t.Errorf("page = %s path = %s", app.Page(), app.Path())
	}
}

func TestProtectedPageNeverRenderedAfterSessionEnds(t *testing.T) {
	app, store := newTestApp(t)
	_ = store.Login(ada)
	goTo(app, "/admin/users")

	// The session ends outside the event loop.
	store.Logout(context.Background())

	if view := app.View(); !strings.Contains(view, "Redirecting") {
		t.Errorf("admin page drawn for a signed-out session:\n%s", view)
	}
	app.Update(messages.SessionChangedMsg{State: store.State()})
	if app.Path() != "/login" {
		t.Errorf("path = %s, want /login", app.Path())
	}
}

func TestLoginResultNavigates(t *testing.T) {
	tcases := map[string]struct {
		id   session.Identity
		want string
	}{
		"user":  {id: jane, want: "/"},
		"admin": {id: ada, want: "/admin/dashboard"},
	}
	for name, tc := range tcases {
		t.Run(name, func(t *testing.T) {
			app, store := newTestApp(t)
			goTo(app, "/about")
			app.Update(keyPress("L"))
			if app.Path() != "/login" {
				t.Fatalf("path = %s, want /login", app.Path())
			}

			_ = store.Login(tc.id)
			app.Update(messages.AuthResultMsg{Op: messages.OpLogin, Result: auth.Result{Success: true}})
			if app.Path() != tc.want {
				t.Errorf("path = %s, want %s", app.Path(), tc.want)
			}
		})
	}
}

func TestLoginFailureStaysOnForm(t *testing.T) {
	app, _ := newTestApp(t)
	goTo(app, "/login")

	app.Update(messages.AuthResultMsg{Op: messages.OpLogin, Result: auth.Result{Error: "Invalid credentials"}})
	if app.Path() != "/login" {
		t.Errorf("path = %s", app.Path())
	}
	if app.loginForm.Err() != "Invalid credentials" {
		t.Errorf("form error = %q", app.loginForm.Err())
	}
}

func TestRegisterSuccessGoesToLogin(t *testing.T) {
	app, store := newTestApp(t)
	app.Update(keyPress("R"))
	if app.Path() != "/register" {
		t.Fatalf("path = %s, want /register", app.Path())
	}

	_ = store.Login(jane)
	app.Update(messages.AuthResultMsg{Op: messages.OpRegister, Result: auth.Result{Success: true}})

	if app.Path() != "/login" {
		t.Errorf("path = %s, want /login", app.Path())
	}
	if !store.State().LoggedIn() {
		t.Error("registration should leave the session signed in")
	}
	if !strings.Contains(app.View(), registeredNotice) {
		t.Error("login page should show the registration notice")
	}
}

func TestFormKeysAreText(t *testing.T) {
	app, store := newTestApp(t)
	_ = store.Login(jane)
	goTo(app, "/register")

	for _, k := range []string{"O", "A", "q", "1"} {
		app.Update(keyPress(k))
	}
	if !store.State().LoggedIn() || app.Path() != "/register" {
		t.Errorf("global keys fired inside a form: path=%s state=%s", app.Path(), store.State())
	}
}

func TestBackNavigation(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(keyPress("3"))
	goTo(app, "/pet/p1")
	if app.Path() != "/pet/p1" {
		t.Fatalf("path = %s", app.Path())
	}

	app.Update(keyPress("esc"))
	if app.Path() != "/about" {
		t.Errorf("after first back = %s, want /about", app.Path())
	}
	app.Update(keyPress("esc"))
	if app.Path() != "/" {
		t.Errorf("after second back = %s, want /", app.Path())
	}
}

func TestMyBookingsRequiresLogin(t *testing.T) {
	app, store := newTestApp(t)
	app.Update(keyPress("B"))
	if app.Path() != "/login" {
		t.Errorf("anonymous B = %s, want /login", app.Path())
	}

	_ = store.Login(jane)
	app.Update(keyPress("esc"))
	app.Update(keyPress("B"))
	if app.Page() != router.PageMyBookings {
		t.Errorf("signed-in B = %s", app.Path())
	}
}
