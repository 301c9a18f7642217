package entities

import (
	"fmt"
	"time"
)

// User is an authenticated identity. A user carries no permissions of
// its own; everything is derived from group memberships.
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
}

// Validate checks that the user is well formed.
func (u *User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user ID is required")
	}
	if u.Username == "" {
		return fmt.Errorf("username is required")
	}
	return nil
}
