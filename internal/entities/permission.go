package entities

// Permission is an atomic capability codename.
// Permissions are never assigned to a user directly; they are reachable
// only through roles held by groups the user belongs to.
type Permission string

// Translation actions (tied directly to the translation process).
const (
	PermUnitEdit         Permission = "unit.edit"
	PermUnitReview       Permission = "unit.review"
	PermUnitDelete       Permission = "unit.delete"
	PermSuggestionAdd    Permission = "suggestion.add"
	PermSuggestionAccept Permission = "suggestion.accept"
	PermSuggestionDelete Permission = "suggestion.delete"
	PermSuggestionVote   Permission = "suggestion.vote"
	PermCommentAdd       Permission = "comment.add"
	PermCommentResolve   Permission = "comment.resolve"
	PermUploadPerform    Permission = "upload.perform"
	PermUploadOverwrite  Permission = "upload.overwrite"
	PermAutoTranslate    Permission = "translation.auto"
)

// Repository and management actions (never language-scoped).
const (
	PermVCSAccess          Permission = "vcs.access"
	PermVCSCommit          Permission = "vcs.commit"
	PermVCSPush            Permission = "vcs.push"
	PermVCSReset           Permission = "vcs.reset"
	PermVCSUpdate          Permission = "vcs.update"
	PermProjectEdit        Permission = "project.edit"
	PermProjectPermissions Permission = "project.permissions"
	PermComponentEdit      Permission = "component.edit"
	PermComponentLock      Permission = "component.lock"
	PermTranslationAdd     Permission = "translation.add"
	PermTranslationDelete  Permission = "translation.delete"
	PermMemoryEdit         Permission = "memory.edit"
	PermScreenshotAdd      Permission = "screenshot.add"
	PermReportsView        Permission = "reports.view"
	PermMachineryView      Permission = "machinery.view"
	PermBillingView        Permission = "billing.view"
)

// permissionCatalog maps every known permission to a human readable
// description and its translation-scoped classification. A permission is
// translation-scoped when it acts on a single translation (component x
// language); only those permissions are subject to a group's languages
// attachment.
var permissionCatalog = map[Permission]struct {
	Description       string
	TranslationScoped bool
}{
	PermUnitEdit:         {"Edit strings", true},
	PermUnitReview:       {"Review strings", true},
	PermUnitDelete:       {"Remove strings", true},
	PermSuggestionAdd:    {"Add suggestions", true},
	PermSuggestionAccept: {"Accept suggestions", true},
	PermSuggestionDelete: {"Remove suggestions", true},
	PermSuggestionVote:   {"Vote on suggestions", true},
	PermCommentAdd:       {"Post comments", true},
	PermCommentResolve:   {"Resolve comments", true},
	PermUploadPerform:    {"Upload translations", true},
	PermUploadOverwrite:  {"Overwrite existing translations on upload", true},
	PermAutoTranslate:    {"Run automatic translation", true},

	PermVCSAccess:          {"Access the internal repository", false},
	PermVCSCommit:          {"Commit changes to the internal repository", false},
	PermVCSPush:            {"Push changes to the remote repository", false},
	PermVCSReset:           {"Reset changes in the internal repository", false},
	PermVCSUpdate:          {"Update the internal repository", false},
	PermProjectEdit:        {"Edit project settings", false},
	PermProjectPermissions: {"Manage project access", false},
	PermComponentEdit:      {"Edit component settings", false},
	PermComponentLock:      {"Lock a component from translating", false},
	PermTranslationAdd:     {"Add new translations", false},
	PermTranslationDelete:  {"Remove existing translations", false},
	PermMemoryEdit:         {"Edit translation memory", false},
	PermScreenshotAdd:      {"Add screenshots", false},
	PermReportsView:        {"Download reports", false},
	PermMachineryView:      {"Use machine translation services", false},
	PermBillingView:        {"View billing info", false},
}

// KnownPermission reports whether the permission exists in the catalog.
func KnownPermission(p Permission) bool {
	_, ok := permissionCatalog[p]
	return ok
}

// Describe returns the human readable description of a permission.
// Returns an empty string for unknown permissions.
func Describe(p Permission) string {
	return permissionCatalog[p].Description
}

// TranslationScoped reports whether a permission acts directly on a
// translation and is therefore restricted by a group's languages
// attachment. Unknown permissions are not translation-scoped.
func TranslationScoped(p Permission) bool {
	return permissionCatalog[p].TranslationScoped
}

// AllPermissions returns every permission in the catalog.
// Order is unspecified.
func AllPermissions() []Permission {
	perms := make([]Permission, 0, len(permissionCatalog))
	for p := range permissionCatalog {
		perms = append(perms, p)
	}
	return perms
}

// PermissionSet is a set of permissions keyed by codename.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from the given permissions.
func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// Has reports whether the set contains the permission.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Add inserts the permission into the set.
func (s PermissionSet) Add(p Permission) {
	s[p] = struct{}{}
}

// Union merges the other set into this one.
func (s PermissionSet) Union(other PermissionSet) {
	for p := range other {
		s[p] = struct{}{}
	}
}

// List returns the set members as a slice. Order is unspecified.
func (s PermissionSet) List() []Permission {
	perms := make([]Permission, 0, len(s))
	for p := range s {
		perms = append(perms, p)
	}
	return perms
}
