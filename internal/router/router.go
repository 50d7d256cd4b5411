// Package router maps paths to pages and applies route guards.
package router

import (
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pawshelter/petcare/internal/guard"
	"github.com/pawshelter/petcare/internal/session"
)

// maxRedirects bounds how many redirects one navigation may follow.
const maxRedirects = 8

// ErrRedirectLoop is returned when redirects do not settle.
var ErrRedirectLoop = errors.New("redirect loop")

// Page identifies a screen.
type Page int

const (
	PageHome Page = iota
	PageLogin
	PageRegister
	PageAbout
	PageContact
	PageServices
	PagePet
	PageMyBookings
	PageAdmin
	PageAdminDashboard
	PageAdminPets
	PageAdminBookings
	PageAdminUsers
	PageAdminEditUser
	PageAdminUserBookings
)

var pageTitles = map[Page]string{
	PageHome:              "Pets",
	PageLogin:             "Login",
	PageRegister:          "Register",
	PageAbout:             "About",
	PageContact:           "Contact",
	PageServices:          "Services",
	PagePet:               "Pet details",
	PageMyBookings:        "My bookings",
	PageAdmin:             "Admin",
	PageAdminDashboard:    "Dashboard",
	PageAdminPets:         "Manage pets",
	PageAdminBookings:     "Bookings",
	PageAdminUsers:        "Users",
	PageAdminEditUser:     "User",
	PageAdminUserBookings: "User bookings",
}

func (p Page) String() string {
	if t, ok := pageTitles[p]; ok {
		return t
	}
	return "Unknown"
}

// Route is one entry of the route table.
type Route struct {
	Pattern  string
	Page     Page
	Require  guard.Requirement
	Redirect string // unconditional redirect once the guard allows
}

// Routes is the application's route table.
var Routes = []Route{
	{Pattern: "/", Page: PageHome},
	{Pattern: "/login", Page: PageLogin},
	{Pattern: "/register", Page: PageRegister},
	{Pattern: "/about", Page: PageAbout},
	{Pattern: "/contact", Page: PageContact},
	{Pattern: "/services", Page: PageServices},
	{Pattern: "/pet/{id}", Page: PagePet},
	{Pattern: "/bookings", Page: PageMyBookings, Require: guard.Authenticated},
	{Pattern: "/admin", Page: PageAdmin, Require: guard.Admin, Redirect: "/admin/dashboard"},
	{Pattern: "/admin/dashboard", Page: PageAdminDashboard, Require: guard.Admin},
	{Pattern: "/admin/pets", Page: PageAdminPets, Require: guard.Admin},
	{Pattern: "/admin/bookings", Page: PageAdminBookings, Require: guard.Admin},
	{Pattern: "/admin/users", Page: PageAdminUsers, Require: guard.Admin},
	{Pattern: "/admin/users/edit/{id}", Page: PageAdminEditUser, Require: guard.Admin},
	{Pattern: "/admin/users/{userId}/bookings", Page: PageAdminUserBookings, Require: guard.Admin},
}

// Match is a resolved navigation.
type Match struct {
	Page    Page
	Path    string
	Pattern string
	Params  map[string]string
}

// Param returns a URL parameter of the match.
func (m Match) Param(key string) string {
	return m.Params[key]
}

// Router resolves paths against a route table.
type Router struct {
	mux    *chi.Mux
	routes map[string]Route
}

// New builds a router over routes.
func New(routes []Route) *Router {
	r := &Router{
		mux:    chi.NewRouter(),
		routes: make(map[string]Route, len(routes)),
	}
	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for _, rt := range routes {
		r.mux.Get(rt.Pattern, noop)
		r.routes[rt.Pattern] = rt
	}
	return r
}

// Default builds a router over Routes.
func Default() *Router {
	return New(Routes)
}

// Lookup finds the route for p without applying guards.
func (r *Router) Lookup(p string) (Route, map[string]string, bool) {
	rctx := chi.NewRouteContext()
	if !r.mux.Match(rctx, http.MethodGet, p) {
		return Route{}, nil, false
	}
	rt, ok := r.routes[rctx.RoutePattern()]
	if !ok {
		return Route{}, nil, false
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, k := range rctx.URLParams.Keys {
		params[k] = rctx.URLParams.Values[i]
	}
	return rt, params, true
}

// Resolve follows guards and redirects from p until it reaches a page the
// state may see. Unknown paths resolve to the home page.
func (r *Router) Resolve(p string, state session.State) (Match, error) {
	p = Clean(p)
	for i := 0; i <= maxRedirects; i++ {
		rt, params, ok := r.Lookup(p)
		if !ok {
			if p == guard.HomePath {
				return Match{}, errors.New("router: no route for " + guard.HomePath)
			}
			p = guard.HomePath
			continue
		}
		if d := guard.CanAccess(state, rt.Require); !d.Allowed() {
			p = Clean(d.Redirect)
			continue
		}
		if rt.Redirect != "" {
			p = Clean(rt.Redirect)
			continue
		}
		return Match{Page: rt.Page, Path: p, Pattern: rt.Pattern, Params: params}, nil
	}
	return Match{}, ErrRedirectLoop
}

// Clean normalizes a path: leading slash, no trailing slash, no query.
func Clean(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// PetPath is the detail path of a pet.
func PetPath(id string) string {
	return "/pet/" + id
}

// UserBookingsPath is the admin bookings path of a user.
func UserBookingsPath(userID string) string {
	return "/admin/users/" + userID + "/bookings"
}

// EditUserPath is the admin detail path of a user.
func EditUserPath(id string) string {
	return "/admin/users/edit/" + id
}
