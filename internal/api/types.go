package api

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Role is the privilege level of an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an account profile. The API returns the same shape from the auth
// endpoints (as the signed-in identity) and from the admin user listing.
type User struct {
	ID       string `json:"_id,omitempty"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// AuthResponse is the success body of /users/login and /users/register.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// RegisterRequest is the body of /users/register.
type RegisterRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Pet is a pet listed for adoption.
type Pet struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Breed       string `json:"breed"`
	Age         Flex   `json:"age"`
	Gender      string `json:"gender"`
	Color       string `json:"color"`
	Weight      Flex   `json:"weight"`
	Price       Flex   `json:"price"`
	Location    string `json:"location"`
	Available   bool   `json:"available"`
	Vaccinated  bool   `json:"vaccinated"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Booking statuses used by the admin pages.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking is an adoption/visit request for a pet.
type Booking struct {
	ID        string `json:"_id"`
	Pet       *Pet   `json:"pet"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Address   string `json:"address"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// PetName returns the booked pet's name or a placeholder.
func (b Booking) PetName() string {
	if b.Pet != nil && b.Pet.Name != "" {
		return b.Pet.Name
	}
	return "Unknown Pet"
}

// UnmarshalJSON accepts the pet either populated or as a bare ID.
func (b *Booking) UnmarshalJSON(data []byte) error {
	type plain Booking
	var raw struct {
		plain
		Pet json.RawMessage `json:"pet"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = Booking(raw.plain)
	b.Pet = nil
	switch {
	case len(raw.Pet) == 0 || bytes.Equal(raw.Pet, []byte("null")):
	case raw.Pet[0] == '"':
		var id string
		if err := json.Unmarshal(raw.Pet, &id); err != nil {
			return err
		}
		b.Pet = &Pet{ID: id}
	default:
		var p Pet
		if err := json.Unmarshal(raw.Pet, &p); err != nil {
			return err
		}
		b.Pet = &p
	}
	return nil
}

// BookingRequest is the body of POST /bookings.
type BookingRequest struct {
	PetID   string `json:"petId"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

// ValidBookingStatus reports whether s is a status an admin may set.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// Flex holds a scalar the API sends as either a string or a number.
type Flex string

func (f *Flex) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Flex(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = Flex(n.String())
	return nil
}

// MarshalJSON writes numeric values as numbers. Strings ParseFloat accepts
// but JSON does not (NaN, Inf, hex) stay strings.
func (f Flex) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(string(f), 64); err == nil && json.Valid([]byte(f)) {
		return []byte(f), nil
	}
	return json.Marshal(string(f))
}

// DashboardStats summarizes the admin dashboard.
type DashboardStats struct {
	TotalPets         int
	TotalUsers        int
	PendingBookings   int
	ConfirmedBookings int
	CancelledBookings int
	RecentBookings    []Booking
}
