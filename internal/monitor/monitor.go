// Package monitor watches the signed-in user's bookings and reports status
// changes made by the shelter.
package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pawshelter/petcare/internal/api"
	"github.com/pawshelter/petcare/internal/cache"
	"github.com/pawshelter/petcare/internal/session"
	"github.com/pawshelter/petcare/internal/ui/messages"
)

// BookingSource lists a user's bookings.
type BookingSource interface {
	UserBookings(ctx context.Context, userID string) ([]api.Booking, error)
}

// Monitor polls for booking status changes.
type Monitor struct {
	client   BookingSource
	cache    *cache.DB
	store    *session.Store
	interval time.Duration
	now      func() time.Time

	send     func(tea.Msg)
	stopCh   chan struct{}
	stopOnce sync.Once
}

// New creates a new background monitor.
func New(interval time.Duration, client BookingSource, db *cache.DB, store *session.Store) *Monitor {
	return &Monitor{
		client:   client,
		cache:    db,
		store:    store,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background polling loop. Changes are delivered through
// send. A zero interval leaves the monitor idle.
func (m *Monitor) Start(send func(tea.Msg)) {
	if m.interval <= 0 {
		return
	}
	m.send = send
	go m.loop()
}

// Stop halts the background polling.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			changes, err := m.Poll(context.Background())
			if err != nil {
				slog.Warn("polling bookings", "err", err)
				continue
			}
			if len(changes) > 0 && m.send != nil {
				m.send(messages.BookingUpdatesMsg{Updates: toUpdates(changes)})
			}
		}
	}
}

// Poll fetches the user's bookings once and returns those whose status
// differs from the last recorded one. Bookings seen for the first time are
// recorded without being reported. Admins and signed-out sessions are
// skipped.
func (m *Monitor) Poll(ctx context.Context) ([]Change, error) {
	id, ok := m.store.State().User()
	if !ok || id.IsAdmin() || id.ID == "" {
		return nil, nil
	}

	known, err := m.cache.TrackedBookings(id.ID)
	if err != nil {
		return nil, err
	}
	bookings, err := m.client.UserBookings(ctx, id.ID)
	if err != nil {
		return nil, err
	}

	// The session may have ended while the request was in flight.
	if cur, ok := m.store.State().User(); !ok || cur.ID != id.ID {
		return nil, nil
	}

	now := m.now()
	var changes []Change
	for _, b := range bookings {
		if b.ID == "" {
			continue
		}
		prev, seen := known[b.ID]
		if seen && prev.Status != b.Status {
			changes = append(changes, Change{
				BookingID: b.ID,
				PetName:   b.PetName(),
				From:      prev.Status,
				To:        b.Status,
			})
		}
		if err := m.cache.TrackBooking(cache.TrackedBooking{
			BookingID:   b.ID,
			UserID:      id.ID,
			Status:      b.Status,
			LastChecked: now,
		}); err != nil {
			return changes, err
		}
	}
	return changes, nil
}

func toUpdates(changes []Change) []messages.BookingUpdate {
	out := make([]messages.BookingUpdate, len(changes))
	for i, c := range changes {
		out[i] = messages.BookingUpdate{BookingID: c.BookingID, PetName: c.PetName, Status: c.To}
	}
	return out
}
