package repositories

import (
	"context"

	"github.com/WeblateOrg/weblate-sub003/internal/entities"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create stores a new user.
	Create(ctx context.Context, user *entities.User) error

	// Get retrieves a user by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*entities.User, error)

	// List retrieves all users ordered by username.
	List(ctx context.Context) ([]*entities.User, error)

	// Delete removes a user and its group memberships.
	Delete(ctx context.Context, id string) error
}
