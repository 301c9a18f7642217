package repositories

import (
	"context"

	"github.com/WeblateOrg/weblate-sub003/internal/entities"
)

// RoleRepository defines the interface for role data access.
type RoleRepository interface {
	// Create stores a new role. Returns ErrAlreadyExists on a name clash.
	Create(ctx context.Context, role *entities.Role) error

	// Update replaces a role's permission set.
	Update(ctx context.Context, role *entities.Role) error

	// Get retrieves a role by name. Returns ErrNotFound if absent.
	Get(ctx context.Context, name string) (*entities.Role, error)

	// GetMany retrieves the named roles. Missing names are skipped, not
	// an error; permission resolution fails closed for unknown roles.
	GetMany(ctx context.Context, names []string) ([]*entities.Role, error)

	// List retrieves all roles ordered by name.
	List(ctx context.Context) ([]*entities.Role, error)

	// Delete removes a role and detaches it from all groups.
	Delete(ctx context.Context, name string) error
}
