package monitor

// Change is a booking whose status moved since the last poll.
type Change struct {
	BookingID string
	PetName   string
	From      string
	To        string
}
