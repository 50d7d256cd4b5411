package monitor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/pawshelter/petcare/internal/api"
	"github.com/pawshelter/petcare/internal/cache"
	"github.com/pawshelter/petcare/internal/session"
)

type fakeSource struct {
	bookings []api.Booking
	err      error
	calls    int
}

func (f *fakeSource) UserBookings(context.Context, string) ([]api.Booking, error) {
	f.calls++
	return f.bookings, f.err
}

func setup(t *testing.T) (*Monitor, *fakeSource, *session.Store) {
	t.Helper()
	db, err := cache.Open(filepath.Join(t.TempDir(), "monitor.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	src := &fakeSource{}
	store := session.NewStore(db)
	return New(time.Minute, src, db, store), src, store
}

func booking(id, pet, status string) api.Booking {
	return api.Booking{ID: id, Pet: &api.Pet{Name: pet}, Status: status}
}

func signIn(t *testing.T, store *session.Store, role api.Role) {
	t.Helper()
	id := session.NewIdentity(api.User{ID: "u1", Fullname: "Jane", Email: "jane@example.com", Role: role}, "tok")
	if err := store.Login(id); err != nil {
		t.Fatalf("Login: %v", err)
	}
}

func TestPollReportsOnlyChangedStatuses(t *testing.T) {
	m, src, store := setup(t)
	signIn(t, store, api.RoleUser)
	ctx := context.Background()

	src.bookings = []api.Booking{
		booking("b1", "Rex", api.BookingPending),
		booking("b2", "Tom", api.BookingPending),
	}
	changes, err := m.Poll(ctx)
	if err != nil {
		t.Fatalf("first poll: %v", err)
	}
	if len(changes) != 0 {
		t.Errorf("first poll should only record, got %v", changes)
	}

	src.bookings = []api.Booking{
		booking("b1", "Rex", api.BookingConfirmed),
		booking("b2", "Tom", api.BookingPending),
		booking("b3", "Max", api.BookingPending),
	}
	changes, err = m.Poll(ctx)
	if err != nil {
		t.Fatalf("second poll: %v", err)
	}
	want := []Change{{BookingID: "b1", PetName: "Rex", From: api.BookingPending, To: api.BookingConfirmed}}
	if diff := cmp.Diff(want, changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}

	changes, _ = m.Poll(ctx)
	if len(changes) != 0 {
		t.Errorf("unchanged poll reported %v", changes)
	}
}

func TestPollSkipsWithoutUserSession(t *testing.T) {
	m, src, store := setup(t)
	ctx := context.Background()

	if _, err := m.Poll(ctx); err != nil {
		t.Fatalf("signed out: %v", err)
	}
	signIn(t, store, api.RoleAdmin)
	if _, err := m.Poll(ctx); err != nil {
		t.Fatalf("admin: %v", err)
	}
	if src.calls != 0 {
		t.Errorf("API called %d times, want 0", src.calls)
	}
}

func TestPollError(t *testing.T) {
	m, src, store := setup(t)
	signIn(t, store, api.RoleUser)
	src.err = errors.New("boom")

	if _, err := m.Poll(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestZeroIntervalStaysIdle(t *testing.T) {
	m, _, _ := setup(t)
	m.interval = 0
	m.Start(func(tea.Msg) { t.Error("send called") })
	m.Stop()
	m.Stop()
}

func TestToUpdates(t *testing.T) {
	got := toUpdates([]Change{{BookingID: "b1", PetName: "Rex", From: "pending", To: "cancelled"}})
	if len(got) != 1 || got[0].Status != "cancelled" || got[0].PetName != "Rex" {
		t.Errorf("toUpdates = %+v", got)
	}
}
