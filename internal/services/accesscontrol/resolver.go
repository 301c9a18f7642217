package accesscontrol

import (
	"context"
	"fmt"

	"github.com/WeblateOrg/weblate-sub003/internal/entities"
)

// CatalogView is the read-only catalog surface the resolver needs to
// match group scopes against a target.
type CatalogView interface {
	GetProject(ctx context.Context, slug string) (*entities.Project, error)
	GetComponent(ctx context.Context, ref entities.ComponentRef) (*entities.Component, error)
	GetComponentLists(ctx context.Context, slugs []string) ([]*entities.ComponentList, error)
	ListProjects(ctx context.Context, visibility string) ([]*entities.Project, error)
	ListComponents(ctx context.Context, projectSlug string) ([]*entities.Component, error)
}

// Profile is a user's group memberships with role permissions already
// resolved. It is the membership snapshot the resolver evaluates.
type Profile struct {
	UserID string
	Grants []*Grant
}

// Grant is one group membership: the group and the union of the
// permissions its roles carry. A grant with an empty permission set
// still counts for browse access.
type Grant struct {
	Group       *entities.Group
	Permissions entities.PermissionSet
}

// Resolver computes effective access for a (user, target) pair. It is
// stateless and safe for concurrent use; all state lives in the profile
// and the catalog it reads from.
type Resolver struct {
	catalog CatalogView
}

// NewResolver creates a new Resolver.
func NewResolver(catalog CatalogView) *Resolver {
	return &Resolver{catalog: catalog}
}

// scopeMatch is the outcome of matching one grant against a target.
type scopeMatch struct {
	// linked means the group is linked to the target's project, directly
	// or via a component inside it. Linkage alone grants browse.
	linked bool
	// explicit means the group grants access to the target component
	// itself (components attachment or a component list containing it).
	// Required to browse restricted components.
	explicit bool
	// applies means the grant's role permissions apply to the target.
	applies bool
}

// Resolve computes the effective access of a profile on a target: the
// browse flag and the union of permissions contributed by every grant,
// each filtered by scope precedence and the languages attachment.
// Access fails closed: a target with no linked group is invisible and
// carries no permissions.
func (r *Resolver) Resolve(ctx context.Context, profile *Profile, target entities.Target) (*entities.Access, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("invalid target: %w", err)
	}

	project, err := r.catalog.GetProject(ctx, target.Project)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", target.Project, err)
	}

	var component *entities.Component
	if target.Component != "" {
		component, err = r.catalog.GetComponent(ctx, target.ComponentRef())
		if err != nil {
			return nil, fmt.Errorf("failed to get component %s: %w", target.ComponentRef(), err)
		}
	}

	access := &entities.Access{Permissions: entities.NewPermissionSet()}

	var browsable, explicit bool
	for _, grant := range profile.Grants {
		match, err := r.matchGrant(ctx, grant.Group, project, component, target)
		if err != nil {
			return nil, err
		}

		if match.linked {
			browsable = true
		}
		if match.explicit {
			explicit = true
		}
		if !match.applies {
			continue
		}

		for p := range grant.Permissions {
			// The languages attachment restricts only translation
			// actions, and only on translation-level targets.
			if target.IsTranslation() && entities.TranslationScoped(p) && !grant.Group.AllowsLanguage(target.Language) {
				continue
			}
			access.Permissions.Add(p)
		}
	}

	access.CanBrowse = browsable
	if component != nil && component.Restricted && !explicit {
		access.CanBrowse = false
	}

	// No browse access means the target is invisible: report no
	// permissions at all.
	if !access.CanBrowse {
		access.Permissions = entities.NewPermissionSet()
	}

	return access, nil
}

// matchGrant evaluates a single group against the target. Exactly one
// scope attachment wins (component lists, then components, then
// projects); the rest are silently ignored.
func (r *Resolver) matchGrant(
	ctx context.Context,
	group *entities.Group,
	project *entities.Project,
	component *entities.Component,
	target entities.Target,
) (scopeMatch, error) {
	switch group.Scope() {
	case entities.ScopeComponentLists:
		return r.matchComponentLists(ctx, group, component, target)
	case entities.ScopeComponents:
		return matchComponents(group, component, target), nil
	case entities.ScopeProjects:
		return matchProjects(group, project, component), nil
	default:
		// A group without scope attachments links to nothing; its
		// membership grants no browse access on its own.
		return scopeMatch{}, nil
	}
}

func (r *Resolver) matchComponentLists(
	ctx context.Context,
	group *entities.Group,
	component *entities.Component,
	target entities.Target,
) (scopeMatch, error) {
	lists, err := r.catalog.GetComponentLists(ctx, group.ComponentLists)
	if err != nil {
		return scopeMatch{}, fmt.Errorf("failed to get component lists for group %s: %w", group.Name, err)
	}

	var match scopeMatch
	for _, list := range lists {
		for _, ref := range list.Components {
			if ref.Project == target.Project {
				match.linked = true
			}
			if component != nil && ref == component.Ref() {
				match.explicit = true
				match.applies = true
			}
		}
	}
	return match, nil
}

func matchComponents(group *entities.Group, component *entities.Component, target entities.Target) scopeMatch {
	var match scopeMatch
	for _, ref := range group.Components {
		if ref.Project == target.Project {
			match.linked = true
		}
		if component != nil && ref == component.Ref() {
			match.explicit = true
			match.applies = true
		}
	}
	return match
}

func matchProjects(group *entities.Group, project *entities.Project, component *entities.Component) scopeMatch {
	if !projectSelected(group, project) {
		return scopeMatch{}
	}

	match := scopeMatch{linked: true}
	switch {
	case component == nil:
		// Project-level target: role permissions apply to the project.
		match.applies = true
	case !component.Restricted:
		// Project scope covers only unrestricted components.
		match.applies = true
	}
	return match
}

// projectSelected reports whether a projects-scoped group matches the
// project, either via its selection marker or its explicit list.
func projectSelected(group *entities.Group, project *entities.Project) bool {
	switch group.ProjectSelection {
	case entities.SelectionAll:
		return true
	case entities.SelectionAllPublic:
		return project.Visibility == entities.VisibilityPublic
	}
	for _, slug := range group.Projects {
		if slug == project.Slug {
			return true
		}
	}
	return false
}
