package guard

import (
	"testing"

	"github.com/pawshelter/petcare/internal/api"
	"github.com/pawshelter/petcare/internal/session"
)

func states() map[string]session.State {
	user := session.NewIdentity(api.User{Fullname: "Jane", Email: "valid@example.com", Role: api.RoleUser}, "abc123")
	admin := session.NewIdentity(api.User{Fullname: "Ada", Email: "admin@example.com", Role: api.RoleAdmin}, "admintoken")
	return map[string]session.State{
		"anon":  session.Unauthenticated(),
		"user":  session.Authenticated(user),
		"admin": session.Authenticated(admin),
	}
}

func TestCanAccess(t *testing.T) {
	want := map[Requirement]map[string]Decision{
		Public: {
			"anon": Allow, "user": Allow, "admin": Allow,
		},
		Authenticated: {
			"anon": RedirectTo(LoginPath), "user": Allow, "admin": Allow,
		},
		Admin: {
			"anon": RedirectTo(LoginPath), "user": RedirectTo(HomePath), "admin": Allow,
		},
	}

	for req, byState := range want {
		for name, st := range states() {
			t.Run(req.String()+"/"+name, func(t *testing.T) {
				if got := CanAccess(st, req); got != byState[name] {
					t.Errorf("CanAccess(%s, %s) = %s, want %s", st, req, got, byState[name])
				}
			})
		}
	}
}

func TestCanAccessIsPure(t *testing.T) {
	st := states()["user"]
	first := CanAccess(st, Admin)
	for i := 0; i < 10; i++ {
		if got := CanAccess(st, Admin); got != first {
			t.Fatalf("call %d = %s, first = %s", i, got, first)
		}
	}
}

func TestUnknownRequirementIsAdmin(t *testing.T) {
	for name, st := range states() {
		if got, want := CanAccess(st, Requirement(42)), CanAccess(st, Admin); got != want {
			t.Errorf("%s: got %s, want %s", name, got, want)
		}
	}
}
