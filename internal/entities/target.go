package entities

import "fmt"

// Target describes what an access decision is about: a project, a
// component inside it, or a translation (component x language).
type Target struct {
	Project   string // project slug, required
	Component string // component slug, optional
	Language  string // language code, only meaningful with Component
}

// ProjectTarget builds a project-level target.
func ProjectTarget(project string) Target {
	return Target{Project: project}
}

// ComponentTarget builds a component-level target.
func ComponentTarget(project, component string) Target {
	return Target{Project: project, Component: component}
}

// TranslationTarget builds a translation-level target.
func TranslationTarget(project, component, language string) Target {
	return Target{Project: project, Component: component, Language: language}
}

// IsTranslation reports whether the target addresses a single
// translation. Only translation targets are subject to the languages
// attachment of a group.
func (t Target) IsTranslation() bool {
	return t.Component != "" && t.Language != ""
}

// ComponentRef returns the target's component reference. Only valid
// when Component is set.
func (t Target) ComponentRef() ComponentRef {
	return ComponentRef{Project: t.Project, Component: t.Component}
}

// Validate checks that the target is well formed.
func (t Target) Validate() error {
	if t.Project == "" {
		return fmt.Errorf("target project is required")
	}
	if t.Language != "" && t.Component == "" {
		return fmt.Errorf("target language requires a component")
	}
	return nil
}

// String returns the "project[/component[:language]]" form.
func (t Target) String() string {
	s := t.Project
	if t.Component != "" {
		s += "/" + t.Component
	}
	if t.Language != "" {
		s += ":" + t.Language
	}
	return s
}

// Access is the outcome of resolving a user against a target: whether
// the target may be browsed at all, and which permissions apply to it.
type Access struct {
	CanBrowse   bool
	Permissions PermissionSet
}

// Allows reports whether the access grants the permission.
func (a *Access) Allows(p Permission) bool {
	return a != nil && a.Permissions.Has(p)
}
