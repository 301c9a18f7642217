package entities

import "fmt"

// Role is a named, reusable bundle of permissions. Roles are held by
// groups; the same role can be attached to any number of groups.
type Role struct {
	Name        string
	Permissions []Permission
}

// Validate checks that the role is well formed and references only
// known permissions.
func (r *Role) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("role name is required")
	}
	for _, p := range r.Permissions {
		if !KnownPermission(p) {
			return fmt.Errorf("unknown permission %q in role %q", p, r.Name)
		}
	}
	return nil
}

// PermissionSet returns the role's permissions as a set.
func (r *Role) PermissionSet() PermissionSet {
	return NewPermissionSet(r.Permissions...)
}

// BuiltinRoles returns the roles seeded into a fresh installation.
// Administrators can define further roles on top of these.
func BuiltinRoles() []*Role {
	return []*Role{
		{
			Name: "Translate",
			Permissions: []Permission{
				PermUnitEdit,
				PermSuggestionAdd,
				PermSuggestionVote,
				PermCommentAdd,
				PermUploadPerform,
				PermMachineryView,
			},
		},
		{
			Name: "Review",
			Permissions: []Permission{
				PermUnitEdit,
				PermUnitReview,
				PermSuggestionAccept,
				PermSuggestionDelete,
				PermCommentAdd,
				PermCommentResolve,
			},
		},
		{
			Name: "Commit",
			Permissions: []Permission{
				PermVCSAccess,
				PermVCSCommit,
				PermVCSUpdate,
			},
		},
		{
			Name: "Manage",
			Permissions: []Permission{
				PermProjectEdit,
				PermProjectPermissions,
				PermComponentEdit,
				PermComponentLock,
				PermTranslationAdd,
				PermTranslationDelete,
				PermVCSAccess,
				PermVCSCommit,
				PermVCSPush,
				PermVCSReset,
				PermVCSUpdate,
				PermMemoryEdit,
				PermScreenshotAdd,
				PermReportsView,
			},
		},
		{
			Name: "Billing viewer",
			Permissions: []Permission{
				PermBillingView,
				PermReportsView,
			},
		},
	}
}
