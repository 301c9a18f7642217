package services

import (
	"context"
	"fmt"

	"github.com/WeblateOrg/weblate-sub003/internal/entities"
	"github.com/WeblateOrg/weblate-sub003/internal/repositories"
	"github.com/WeblateOrg/weblate-sub003/internal/services/accesscontrol"
	"github.com/google/uuid"
)

// DirectoryServiceInterface defines the interface for directory
// management: users, roles, groups and memberships.
type DirectoryServiceInterface interface {
	Profile(ctx context.Context, userID string) (*accesscontrol.Profile, error)

	CreateUser(ctx context.Context, user *entities.User) (*entities.User, error)
	GetUser(ctx context.Context, id string) (*entities.User, error)
	ListUsers(ctx context.Context) ([]*entities.User, error)
	DeleteUser(ctx context.Context, id string) error

	CreateRole(ctx context.Context, role *entities.Role) error
	UpdateRole(ctx context.Context, role *entities.Role) error
	GetRole(ctx context.Context, name string) (*entities.Role, error)
	ListRoles(ctx context.Context) ([]*entities.Role, error)
	DeleteRole(ctx context.Context, name string) error

	CreateGroup(ctx context.Context, group *entities.Group) (*entities.Group, error)
	UpdateGroup(ctx context.Context, group *entities.Group) error
	GetGroup(ctx context.Context, id string) (*entities.Group, error)
	ListGroups(ctx context.Context) ([]*entities.Group, error)
	DeleteGroup(ctx context.Context, id string) error
	AddMember(ctx context.Context, groupID, userID string) error
	RemoveMember(ctx context.Context, groupID, userID string) error
}

// DirectoryService handles directory management operations and builds
// membership profiles for the resolver.
type DirectoryService struct {
	userRepo  repositories.UserRepository
	roleRepo  repositories.RoleRepository
	groupRepo repositories.GroupRepository
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	groupRepo repositories.GroupRepository,
) *DirectoryService {
	return &DirectoryService{
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		groupRepo: groupRepo,
	}
}

// Profile builds the membership snapshot for a user: every group the
// user belongs to, with the union of its roles' permissions resolved.
// Role names that no longer exist contribute no permissions.
func (s *DirectoryService) Profile(ctx context.Context, userID string) (*accesscontrol.Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	groups, err := s.groupRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups for user %s: %w", userID, err)
	}

	profile := &accesscontrol.Profile{UserID: userID, Grants: make([]*accesscontrol.Grant, 0, len(groups))}
	for _, group := range groups {
		perms := entities.NewPermissionSet()
		if len(group.Roles) > 0 {
			roles, err := s.roleRepo.GetMany(ctx, group.Roles)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve roles for group %s: %w", group.Name, err)
			}
			for _, role := range roles {
				perms.Union(role.PermissionSet())
			}
		}
		profile.Grants = append(profile.Grants, &accesscontrol.Grant{
			Group:       group,
			Permissions: perms,
		})
	}

	return profile, nil
}

// CreateUser stores a new user, generating an ID when absent.
func (s *DirectoryService) CreateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *DirectoryService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	return s.userRepo.Get(ctx, id)
}

// ListUsers retrieves all users.
func (s *DirectoryService) ListUsers(ctx context.Context) ([]*entities.User, error) {
	return s.userRepo.List(ctx)
}

// DeleteUser removes a user and its memberships.
func (s *DirectoryService) DeleteUser(ctx context.Context, id string) error {
	return s.userRepo.Delete(ctx, id)
}

// CreateRole stores a new role.
func (s *DirectoryService) CreateRole(ctx context.Context, role *entities.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	return s.roleRepo.Create(ctx, role)
}

// UpdateRole replaces a role's permission set.
func (s *DirectoryService) UpdateRole(ctx context.Context, role *entities.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	return s.roleRepo.Update(ctx, role)
}

// GetRole retrieves a role by name.
func (s *DirectoryService) GetRole(ctx context.Context, name string) (*entities.Role, error) {
	return s.roleRepo.Get(ctx, name)
}

// ListRoles retrieves all roles.
func (s *DirectoryService) ListRoles(ctx context.Context) ([]*entities.Role, error) {
	return s.roleRepo.List(ctx)
}

// DeleteRole removes a role and detaches it from groups.
func (s *DirectoryService) DeleteRole(ctx context.Context, name string) error {
	return s.roleRepo.Delete(ctx, name)
}

// CreateGroup stores a new group, generating an ID when absent. Role
// names attached to the group must exist.
func (s *DirectoryService) CreateGroup(ctx context.Context, group *entities.Group) (*entities.Group, error) {
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	if err := s.validateGroup(ctx, group); err != nil {
		return nil, err
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

// UpdateGroup replaces a group's attachments and metadata.
func (s *DirectoryService) UpdateGroup(ctx context.Context, group *entities.Group) error {
	if err := s.validateGroup(ctx, group); err != nil {
		return err
	}
	return s.groupRepo.Update(ctx, group)
}

// GetGroup retrieves a group by ID.
func (s *DirectoryService) GetGroup(ctx context.Context, id string) (*entities.Group, error) {
	return s.groupRepo.Get(ctx, id)
}

// ListGroups retrieves all groups.
func (s *DirectoryService) ListGroups(ctx context.Context) ([]*entities.Group, error) {
	return s.groupRepo.List(ctx)
}

// DeleteGroup removes a group.
func (s *DirectoryService) DeleteGroup(ctx context.Context, id string) error {
	return s.groupRepo.Delete(ctx, id)
}

// AddMember adds a user to a group.
func (s *DirectoryService) AddMember(ctx context.Context, groupID, userID string) error {
	if _, err := s.userRepo.Get(ctx, userID); err != nil {
		return fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return s.groupRepo.AddMember(ctx, groupID, userID)
}

// RemoveMember removes a user from a group.
func (s *DirectoryService) RemoveMember(ctx context.Context, groupID, userID string) error {
	return s.groupRepo.RemoveMember(ctx, groupID, userID)
}

func (s *DirectoryService) validateGroup(ctx context.Context, group *entities.Group) error {
	if err := group.Validate(); err != nil {
		return err
	}
	if len(group.Roles) == 0 {
		return nil
	}

	roles, err := s.roleRepo.GetMany(ctx, group.Roles)
	if err != nil {
		return fmt.Errorf("failed to resolve roles: %w", err)
	}
	known := make(map[string]bool, len(roles))
	for _, role := range roles {
		known[role.Name] = true
	}
	for _, name := range group.Roles {
		if !known[name] {
			return fmt.Errorf("unknown role %q", name)
		}
	}
	return nil
}
