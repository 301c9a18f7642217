package repositories

import (
	"context"

	"github.com/WeblateOrg/weblate-sub003/internal/entities"
)

// CatalogRepository defines the interface for the translatable content
// catalog: projects, components, component lists and languages. The
// resolver reads from it; administrators write to it.
type CatalogRepository interface {
	// CreateProject stores a new project.
	CreateProject(ctx context.Context, project *entities.Project) error

	// UpdateProject replaces a project's metadata.
	UpdateProject(ctx context.Context, project *entities.Project) error

	// GetProject retrieves a project by slug. Returns ErrNotFound if absent.
	GetProject(ctx context.Context, slug string) (*entities.Project, error)

	// ListProjects retrieves all projects ordered by slug. When
	// visibility is non-empty only projects with that visibility are
	// returned.
	ListProjects(ctx context.Context, visibility string) ([]*entities.Project, error)

	// DeleteProject removes a project and its components.
	DeleteProject(ctx context.Context, slug string) error

	// CreateComponent stores a new component.
	CreateComponent(ctx context.Context, component *entities.Component) error

	// UpdateComponent replaces a component's metadata.
	UpdateComponent(ctx context.Context, component *entities.Component) error

	// GetComponent retrieves a component. Returns ErrNotFound if absent.
	GetComponent(ctx context.Context, ref entities.ComponentRef) (*entities.Component, error)

	// ListComponents retrieves a project's components ordered by slug.
	ListComponents(ctx context.Context, projectSlug string) ([]*entities.Component, error)

	// DeleteComponent removes a component.
	DeleteComponent(ctx context.Context, ref entities.ComponentRef) error

	// CreateComponentList stores a new component list with its members.
	CreateComponentList(ctx context.Context, list *entities.ComponentList) error

	// UpdateComponentList replaces a component list's members and metadata.
	UpdateComponentList(ctx context.Context, list *entities.ComponentList) error

	// GetComponentList retrieves a component list by slug.
	GetComponentList(ctx context.Context, slug string) (*entities.ComponentList, error)

	// GetComponentLists retrieves the named component lists. Missing
	// slugs are skipped.
	GetComponentLists(ctx context.Context, slugs []string) ([]*entities.ComponentList, error)

	// ListComponentLists retrieves all component lists ordered by slug.
	ListComponentLists(ctx context.Context) ([]*entities.ComponentList, error)

	// DeleteComponentList removes a component list.
	DeleteComponentList(ctx context.Context, slug string) error

	// CreateLanguage stores a new language.
	CreateLanguage(ctx context.Context, language *entities.Language) error

	// GetLanguage retrieves a language by code.
	GetLanguage(ctx context.Context, code string) (*entities.Language, error)

	// ListLanguages retrieves all languages ordered by code.
	ListLanguages(ctx context.Context) ([]*entities.Language, error)

	// DeleteLanguage removes a language.
	DeleteLanguage(ctx context.Context, code string) error
}
