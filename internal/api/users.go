package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"golang.org/x/sync/errgroup"
)

const recentBookingsLimit = 5

// ListUsers fetches all accounts (admin only).
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/users", &users); err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	return users, nil
}

// GetUser fetches a single account by ID.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	if err := c.get(ctx, "/users/"+url.PathEscape(id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Dashboard loads pets, users and bookings concurrently and reduces them to
// the admin dashboard counters. A bookings failure only zeroes the booking
// counters; pets or users failing fails the whole call.
func (c *Client) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var (
		pets     []Pet
		users    []User
		bookings []Booking
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pets, err = c.ListPets(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = c.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bookings, err = c.AdminBookings(gctx)
		if err != nil {
			slog.Warn("dashboard bookings unavailable", "err", err)
			bookings = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalPets:  len(pets),
		TotalUsers: len(users),
	}
	for _, b := range bookings {
		switch b.Status {
		case BookingPending:
			stats.PendingBookings++
		case BookingConfirmed:
			stats.ConfirmedBookings++
		case BookingCancelled:
			stats.CancelledBookings++
		}
	}
	n := len(bookings)
	if n > recentBookingsLimit {
		n = recentBookingsLimit
	}
	stats.RecentBookings = bookings[:n]
	return stats, nil
}
