package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

// AdminBookings fetches all bookings (admin only).
func (c *Client) AdminBookings(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	if err := c.get(ctx, "/bookings/admin", &bookings); err != nil {
		return nil, fmt.Errorf("fetching bookings: %w", err)
	}
	return bookings, nil
}

// UserBookings fetches the bookings of one user. Bookings whose pet came
// back as a bare ID are filled in with the pet record.
func (c *Client) UserBookings(ctx context.Context, userID string) ([]Booking, error) {
	var bookings []Booking
	if err := c.get(ctx, "/bookings/user/"+url.PathEscape(userID), &bookings); err != nil {
		return nil, fmt.Errorf("fetching bookings for user %s: %w", userID, err)
	}

	var missing []string
	var idx []int
	for i, b := range bookings {
		if b.Pet != nil && b.Pet.ID != "" && b.Pet.Name == "" {
			missing = append(missing, b.Pet.ID)
			idx = append(idx, i)
		}
	}
	if len(missing) == 0 {
		return bookings, nil
	}
	pets, err := c.BatchGetPets(ctx, missing)
	if err != nil {
		slog.Warn("filling booked pets", "user", userID, "err", err)
	}
	for j, p := range pets {
		if p != nil {
			bookings[idx[j]].Pet = p
		}
	}
	return bookings, nil
}

// CreateBooking books a visit for a pet on behalf of the signed-in user.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (*Booking, error) {
	var b Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", req, &b, true); err != nil {
		return nil, fmt.Errorf("creating booking: %w", err)
	}
	return &b, nil
}

// UpdateBookingStatus sets the status of a booking (admin only).
func (c *Client) UpdateBookingStatus(ctx context.Context, id, status string) error {
	if !ValidBookingStatus(status) {
		return fmt.Errorf("booking status %q: %w", status, ErrInvalidStatus)
	}
	body := map[string]string{"status": status}
	if err := c.do(ctx, http.MethodPut, "/bookings/"+url.PathEscape(id)+"/status", body, nil, true); err != nil {
		return fmt.Errorf("updating booking %s: %w", id, err)
	}
	return nil
}
