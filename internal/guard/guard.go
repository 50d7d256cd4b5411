// Package guard decides whether a session may see a route.
package guard

import (
	"fmt"

	"github.com/pawshelter/petcare/internal/session"
)

// Redirect targets.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Requirement is the access level a route declares.
type Requirement int

const (
	Public Requirement = iota
	Authenticated
	Admin
)

func (r Requirement) String() string {
	switch r {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	}
	return fmt.Sprintf("Requirement(%d)", int(r))
}

// Decision is Allow (zero Redirect) or a redirect to another path.
type Decision struct {
	Redirect string
}

// Allow lets the navigation through.
var Allow = Decision{}

// RedirectTo sends the navigation to path instead.
func RedirectTo(path string) Decision {
	return Decision{Redirect: path}
}

// Allowed reports whether d lets the navigation through.
func (d Decision) Allowed() bool {
	return d.Redirect == ""
}

func (d Decision) String() string {
	if d.Allowed() {
		return "Allow"
	}
	return "RedirectTo(" + d.Redirect + ")"
}

// CanAccess evaluates req against the session state. Unknown requirements
// are treated as Admin.
func CanAccess(state session.State, req Requirement) Decision {
	switch req {
	case Public:
		return Allow
	case Authenticated:
		if !state.LoggedIn() {
			return RedirectTo(LoginPath)
		}
		return Allow
	default:
		if !state.LoggedIn() {
			return RedirectTo(LoginPath)
		}
		if !state.IsAdmin() {
			return RedirectTo(HomePath)
		}
		return Allow
	}
}
