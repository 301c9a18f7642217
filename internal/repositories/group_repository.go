package repositories

import (
	"context"

	"github.com/WeblateOrg/weblate-sub003/internal/entities"
)

// GroupRepository defines the interface for group data access. Groups
// are always returned fully hydrated: roles, scope attachments and
// members included.
type GroupRepository interface {
	// Create stores a new group with all attachments.
	Create(ctx context.Context, group *entities.Group) error

	// Update replaces a group's attachments and metadata.
	Update(ctx context.Context, group *entities.Group) error

	// Get retrieves a group by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*entities.Group, error)

	// List retrieves all groups ordered by name.
	List(ctx context.Context) ([]*entities.Group, error)

	// ListForUser retrieves the groups a user is a member of.
	ListForUser(ctx context.Context, userID string) ([]*entities.Group, error)

	// Delete removes a group with all attachments and memberships.
	Delete(ctx context.Context, id string) error

	// AddMember adds a user to a group. Adding an existing member is a
	// no-op.
	AddMember(ctx context.Context, groupID, userID string) error

	// RemoveMember removes a user from a group.
	RemoveMember(ctx context.Context, groupID, userID string) error
}
