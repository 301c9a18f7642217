package entities

import (
	"fmt"
	"time"
)

// Project selection markers for a group's projects attachment.
// SelectionManual means the explicit Projects list applies; the other
// markers match projects by visibility regardless of the list.
const (
	SelectionManual    = "manual"
	SelectionAll       = "all"
	SelectionAllPublic = "all-public"
)

// ScopeKind identifies which scope attachment wins for a group.
// Exactly one kind applies per group; the resolver picks the first
// non-empty attachment in precedence order and ignores the rest.
type ScopeKind int

const (
	// ScopeNone grants unprivileged browse access only.
	ScopeNone ScopeKind = iota
	// ScopeComponentLists applies role permissions to every component
	// in the attached component lists.
	ScopeComponentLists
	// ScopeComponents applies role permissions to the listed components.
	ScopeComponents
	// ScopeProjects applies role permissions to the matching projects
	// and their unrestricted components.
	ScopeProjects
)

// String returns a human readable name for the scope kind.
func (k ScopeKind) String() string {
	switch k {
	case ScopeComponentLists:
		return "component-lists"
	case ScopeComponents:
		return "components"
	case ScopeProjects:
		return "projects"
	default:
		return "none"
	}
}

// Group is a named collection of users. It holds roles and at most one
// winning scope attachment that decides where those roles apply.
type Group struct {
	ID   string
	Name string

	// Roles attached to the group, by name. A group with no roles still
	// grants browse access to its linked scope.
	Roles []string

	// Scope attachments. ComponentLists, Components and Projects are
	// mutually exclusive in effect, resolved by precedence; Languages is
	// evaluated independently for translation-level checks.
	ComponentLists   []string       // component list slugs
	Components       []ComponentRef // explicit components
	Projects         []string       // project slugs (SelectionManual)
	ProjectSelection string         // SelectionManual, SelectionAll or SelectionAllPublic
	Languages        []string       // language codes; empty = unrestricted

	Members []string // user IDs

	CreatedAt time.Time
}

// Validate checks that the group is well formed.
func (g *Group) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("group name is required")
	}
	switch g.ProjectSelection {
	case "", SelectionManual, SelectionAll, SelectionAllPublic:
	default:
		return fmt.Errorf("invalid project selection %q", g.ProjectSelection)
	}
	for _, ref := range g.Components {
		if err := ref.Validate(); err != nil {
			return fmt.Errorf("group %q: %w", g.Name, err)
		}
	}
	return nil
}

// Scope returns the winning scope kind for the group. Precedence:
// component lists, then components, then projects; a group with none of
// these set grants browse only. Lower-precedence attachments that are
// also set are ignored, never an error.
func (g *Group) Scope() ScopeKind {
	if len(g.ComponentLists) > 0 {
		return ScopeComponentLists
	}
	if len(g.Components) > 0 {
		return ScopeComponents
	}
	if len(g.Projects) > 0 || g.ProjectSelection == SelectionAll || g.ProjectSelection == SelectionAllPublic {
		return ScopeProjects
	}
	return ScopeNone
}

// LanguageRestricted reports whether the group carries a languages
// attachment.
func (g *Group) LanguageRestricted() bool {
	return len(g.Languages) > 0
}

// AllowsLanguage reports whether the group's languages attachment
// matches the given language code. An absent attachment matches all.
func (g *Group) AllowsLanguage(code string) bool {
	if !g.LanguageRestricted() {
		return true
	}
	for _, l := range g.Languages {
		if l == code {
			return true
		}
	}
	return false
}
