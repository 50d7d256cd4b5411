package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pawshelter/petcare/internal/api"
)

// Durable storage keys of the credential record.
const (
	KeyUser  = "user"
	KeyToken = "token"
)

// ErrInvalidIdentity is returned for an identity missing a required field.
var ErrInvalidIdentity = errors.New("invalid identity")

// Identity is the signed-in account plus its bearer token. Once set it is
// treated as one unit.
type Identity struct {
	api.User
	Token string
}

// NewIdentity builds an identity from an auth response.
func NewIdentity(u api.User, token string) Identity {
	return Identity{User: u, Token: token}
}

// IsAdmin reports whether the identity holds the privileged role.
func (id Identity) IsAdmin() bool {
	return id.Role == api.RoleAdmin
}

// Validate checks that every required field is present. Phone and address
// are carried as the API sends them and may be empty.
func (id Identity) Validate() error {
	var missing []string
	if strings.TrimSpace(id.Fullname) == "" {
		missing = append(missing, "fullname")
	}
	if strings.TrimSpace(id.Email) == "" {
		missing = append(missing, "email")
	}
	if !id.Role.Valid() {
		missing = append(missing, "role")
	}
	if id.Token == "" {
		missing = append(missing, "token")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidIdentity, strings.Join(missing, ", "))
	}
	return nil
}

// encodeUser serializes the profile part stored under KeyUser.
func encodeUser(id Identity) (string, error) {
	data, err := json.Marshal(id.User)
	if err != nil {
		return "", fmt.Errorf("encoding user: %w", err)
	}
	return string(data), nil
}

// decodeIdentity rebuilds an identity from the two durable entries.
func decodeIdentity(user, token string) (Identity, error) {
	var u api.User
	if err := json.Unmarshal([]byte(user), &u); err != nil {
		return Identity{}, fmt.Errorf("decoding user: %w", err)
	}
	id := NewIdentity(u, token)
	if err := id.Validate(); err != nil {
		return Identity{}, err
	}
	return id, nil
}
