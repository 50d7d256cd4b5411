package auth

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/pawshelter/petcare/internal/api"
	"github.com/pawshelter/petcare/internal/session"
)

// User-facing failure messages.
const (
	MsgFallback = "An error occurred"
	MsgRequired = "Email and password are required"
	MsgFullname = "Full name is required"
	MsgInFlight = "A request is already in progress"
)

// Authenticator is the remote half of login and registration.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
}

// Result is the outcome of an auth action. Error is set only on failure.
type Result struct {
	Success bool
	Error   string
}

func fail(msg string) Result {
	return Result{Error: msg}
}

// Actions performs login, registration and logout against the API and
// records the outcome in the session store.
type Actions struct {
	api      Authenticator
	store    *session.Store
	inFlight atomic.Bool
}

// NewActions creates auth actions bound to store.
func NewActions(a Authenticator, store *session.Store) *Actions {
	return &Actions{api: a, store: store}
}

// InFlight reports whether a login or registration is outstanding.
func (a *Actions) InFlight() bool {
	return a.inFlight.Load()
}

// Login signs in with email and password.
func (a *Actions) Login(ctx context.Context, email, password string) Result {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return fail(MsgRequired)
	}
	return a.run(ctx, "login", func(ctx context.Context) (*api.AuthResponse, error) {
		return a.api.Login(ctx, email, password)
	})
}

// Register creates an account. On success the new identity is persisted
// and the store is signed in, but callers send the user to /login.
func (a *Actions) Register(ctx context.Context, fullname, email, password, phone, address string) Result {
	req := api.RegisterRequest{
		Fullname: strings.TrimSpace(fullname),
		Email:    strings.TrimSpace(email),
		Password: password,
		Phone:    strings.TrimSpace(phone),
		Address:  strings.TrimSpace(address),
	}
	if req.Fullname == "" {
		return fail(MsgFullname)
	}
	if req.Email == "" || req.Password == "" {
		return fail(MsgRequired)
	}
	return a.run(ctx, "register", func(ctx context.Context) (*api.AuthResponse, error) {
		return a.api.Register(ctx, req)
	})
}

// Logout signs out. It always succeeds.
func (a *Actions) Logout(ctx context.Context) Result {
	a.store.Logout(ctx)
	return Result{Success: true}
}

func (a *Actions) run(ctx context.Context, op string, call func(context.Context) (*api.AuthResponse, error)) Result {
	if !a.inFlight.CompareAndSwap(false, true) {
		return fail(MsgInFlight)
	}
	defer a.inFlight.Store(false)

	resp, err := call(ctx)
	if err != nil {
		slog.Info(op+" failed", "err", err)
		return fail(messageFor(err))
	}

	id := session.NewIdentity(*resp.User, resp.Token)
	if err := a.store.Persist(ctx, id); err != nil {
		slog.Error(op+": persisting credentials", "err", err)
		return fail(MsgFallback)
	}
	if err := a.store.Login(id); err != nil {
		slog.Error(op+": session login", "err", err)
		return fail(MsgFallback)
	}
	slog.Info(op+" succeeded", "email", id.Email, "role", id.Role)
	return Result{Success: true}
}

func messageFor(err error) string {
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	return MsgFallback
}
