package entities

import (
	"fmt"
	"time"
)

// Project visibility levels. Visibility controls which projects a
// selection-based group scope ("all public projects") matches; it does
// not replace browse checks.
const (
	VisibilityPublic    = "public"
	VisibilityProtected = "protected"
	VisibilityPrivate   = "private"
)

// Project is the top-level translatable container.
type Project struct {
	Slug       string
	Name       string
	Visibility string
	CreatedAt  time.Time
}

// Validate checks that the project is well formed.
func (p *Project) Validate() error {
	if p.Slug == "" {
		return fmt.Errorf("project slug is required")
	}
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	switch p.Visibility {
	case VisibilityPublic, VisibilityProtected, VisibilityPrivate:
		return nil
	default:
		return fmt.Errorf("invalid project visibility %q", p.Visibility)
	}
}

// Component is a unit of translation inside a project. A restricted
// component is invisible even to users who can browse its project,
// unless a group grants access to the component itself.
type Component struct {
	ProjectSlug string
	Slug        string
	Name        string
	Restricted  bool
	CreatedAt   time.Time
}

// Validate checks that the component is well formed.
func (c *Component) Validate() error {
	if c.ProjectSlug == "" {
		return fmt.Errorf("component project slug is required")
	}
	if c.Slug == "" {
		return fmt.Errorf("component slug is required")
	}
	if c.Name == "" {
		return fmt.Errorf("component name is required")
	}
	return nil
}

// Ref returns the component's reference.
func (c *Component) Ref() ComponentRef {
	return ComponentRef{Project: c.ProjectSlug, Component: c.Slug}
}

// ComponentRef identifies a component by project and component slug.
type ComponentRef struct {
	Project   string
	Component string
}

// String returns the "project/component" form of the reference.
func (r ComponentRef) String() string {
	return r.Project + "/" + r.Component
}

// Validate checks that the reference is complete.
func (r ComponentRef) Validate() error {
	if r.Project == "" || r.Component == "" {
		return fmt.Errorf("component reference requires project and component slugs")
	}
	return nil
}

// ComponentList is an administrator-defined grouping of components,
// used purely as a scope-matching target for groups.
type ComponentList struct {
	Slug       string
	Name       string
	Components []ComponentRef
}

// Validate checks that the component list is well formed.
func (l *ComponentList) Validate() error {
	if l.Slug == "" {
		return fmt.Errorf("component list slug is required")
	}
	if l.Name == "" {
		return fmt.Errorf("component list name is required")
	}
	for _, ref := range l.Components {
		if err := ref.Validate(); err != nil {
			return fmt.Errorf("component list %q: %w", l.Slug, err)
		}
	}
	return nil
}

// Contains reports whether the list contains the given component.
func (l *ComponentList) Contains(ref ComponentRef) bool {
	for _, c := range l.Components {
		if c == ref {
			return true
		}
	}
	return false
}
