package cache

import (
	"time"
)

// TrackedBooking is the last status seen for one of the user's bookings.
type TrackedBooking struct {
	BookingID   string
	UserID      string
	Status      string
	LastChecked time.Time
}

// TrackedBookings returns the statuses recorded for userID keyed by booking ID.
func (d *DB) TrackedBookings(userID string) (map[string]TrackedBooking, error) {
	rows, err := d.db.Query(`SELECT booking_id, status, last_checked
		FROM booking_statuses WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]TrackedBooking)
	for rows.Next() {
		tb := TrackedBooking{UserID: userID}
		var lastChecked int64
		if err := rows.Scan(&tb.BookingID, &tb.Status, &lastChecked); err != nil {
			return nil, err
		}
		tb.LastChecked = time.Unix(lastChecked, 0)
		result[tb.BookingID] = tb
	}
	return result, rows.Err()
}

// TrackBooking inserts or updates the recorded status of a booking.
func (d *DB) TrackBooking(tb TrackedBooking) error {
	_, err := d.db.Exec(`INSERT OR REPLACE INTO booking_statuses
		(booking_id, user_id, status, last_checked) VALUES (?, ?, ?, ?)`,
		tb.BookingID, tb.UserID, tb.Status, tb.LastChecked.Unix())
	return err
}
