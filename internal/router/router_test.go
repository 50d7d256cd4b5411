package router

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pawshelter/petcare/internal/api"
	"github.com/pawshelter/petcare/internal/guard"
	"github.com/pawshelter/petcare/internal/session"
)

var (
	anon      = session.Unauthenticated()
	userState = session.Authenticated(session.NewIdentity(
		api.User{Fullname: "Jane", Email: "valid@example.com", Role: api.RoleUser}, "abc123"))
	adminState = session.Authenticated(session.NewIdentity(
		api.User{Fullname: "Ada", Email: "admin@example.com", Role: api.RoleAdmin}, "admintoken"))
)

func TestResolve(t *testing.T) {
	r := Default()
	tcases := map[string]struct {
		path  string
		state session.State
		want  Match
	}{
		"home": {
			path: "/", state: anon,
			want: Match{Page: PageHome, Path: "/", Pattern: "/", Params: map[string]string{}},
		},
		"pet_param": {
			path: "/pet/64f1c2", state: anon,
			want: Match{Page: PagePet, Path: "/pet/64f1c2", Pattern: "/pet/{id}", Params: map[string]string{"id": "64f1c2"}},
		},
		"admin_as_anon": {
			path: "/admin/dashboard", state: anon,
			want: Match{Page: PageLogin, Path: "/login", Pattern: "/login", Params: map[string]string{}},
		},
		"admin_as_user": {
			path: "/admin/dashboard", state: userState,
			want: Match{Page: PageHome, Path: "/", Pattern: "/", Params: map[string]string{}},
		},
		"admin_index": {
			path: "/admin", state: adminState,
			want: Match{Page: PageAdminDashboard, Path: "/admin/dashboard", Pattern: "/admin/dashboard", Params: map[string]string{}},
		},
		"admin_index_as_user": {
			path: "/admin", state: userState,
			want: Match{Page: PageHome, Path: "/", Pattern: "/", Params: map[string]string{}},
		},
		"user_bookings": {
			path: "/admin/users/u1/bookings", state: adminState,
			want: Match{
				Page: PageAdminUserBookings, Path: "/admin/users/u1/bookings",
				Pattern: "/admin/users/{userId}/bookings", Params: map[string]string{"userId": "u1"},
			},
		},
		"edit_user": {
			path: "/admin/users/edit/u1", state: adminState,
			want: Match{
				Page: PageAdminEditUser, Path: "/admin/users/edit/u1",
				Pattern: "/admin/users/edit/{id}", Params: map[string]string{"id": "u1"},
			},
		},
		"my_bookings_anon": {
			path: "/bookings", state: anon,
			want: Match{Page: PageLogin, Path: "/login", Pattern: "/login", Params: map[string]string{}},
		},
		"my_bookings_user": {
			path: "/bookings", state: userState,
			want: Match{Page: PageMyBookings, Path: "/bookings", Pattern: "/bookings", Params: map[string]string{}},
		},
		"unknown": {
			path: "/nope/nothing", state: userState,
			want: Match{Page: PageHome, Path: "/", Pattern: "/", Params: map[string]string{}},
		},
		"trailing_slash_and_query": {
			path: "admin/pets/?tab=1", state: adminState,
			want: Match{Page: PageAdminPets, Path: "/admin/pets", Pattern: "/admin/pets", Params: map[string]string{}},
		},
	}

	for name, tc := range tcases {
		t.Run(name, func(t *testing.T) {
			got, err := r.Resolve(tc.path, tc.state)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("match mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLogoutOnAdminPageRedirectsToLogin(t *testing.T) {
	r := Default()
	m, err := r.Resolve("/admin/bookings", adminState)
	if err != nil || m.Page != PageAdminBookings {
		t.Fatalf("as admin: %+v, %v", m, err)
	}
	m, err = r.Resolve(m.Path, anon)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if m.Path != guard.LoginPath {
		t.Errorf("after logout path = %q, want %q", m.Path, guard.LoginPath)
	}
}

func TestEveryAdminRouteIsGuarded(t *testing.T) {
	r := Default()
	for _, rt := range Routes {
		if rt.Require != guard.Admin {
			continue
		}
		m, err := r.Resolve(rt.Pattern, userState)
		if err != nil {
			t.Fatalf("%s: %v", rt.Pattern, err)
		}
		if m.Path != guard.HomePath {
			t.Errorf("%s as user resolved to %s", rt.Pattern, m.Path)
		}
	}
}

func TestRedirectLoop(t *testing.T) {
	r := New([]Route{
		{Pattern: "/", Page: PageHome},
		{Pattern: "/a", Page: PageAbout, Redirect: "/b"},
		{Pattern: "/b", Page: PageContact, Redirect: "/a"},
	})
	if _, err := r.Resolve("/a", anon); !errors.Is(err, ErrRedirectLoop) {
		t.Fatalf("expected ErrRedirectLoop, got %v", err)
	}
}

func TestClean(t *testing.T) {
	for in, want := range map[string]string{
		"":                "/",
		"/":               "/",
		"login":           "/login",
		"/admin/":         "/admin",
		"/pet/1?x=y":      "/pet/1",
		"/a/../admin#top": "/admin",
	} {
		if got := Clean(in); got != want {
			t.Errorf("Clean(%q) = %q, want %q", in, got, want)
		}
	}
}
