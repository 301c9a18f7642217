package services

import (
	"context"
	"fmt"

	"github.com/WeblateOrg/weblate-sub003/internal/entities"
	"github.com/WeblateOrg/weblate-sub003/internal/repositories"
)

// CatalogServiceInterface defines the interface for catalog
// management: projects, components, component lists and languages.
type CatalogServiceInterface interface {
	CreateProject(ctx context.Context, project *entities.Project) error
	UpdateProject(ctx context.Context, project *entities.Project) error
	GetProject(ctx context.Context, slug string) (*entities.Project, error)
	ListProjects(ctx context.Context) ([]*entities.Project, error)
	DeleteProject(ctx context.Context, slug string) error

	CreateComponent(ctx context.Context, component *entities.Component) error
	UpdateComponent(ctx context.Context, component *entities.Component) error
	GetComponent(ctx context.Context, ref entities.ComponentRef) (*entities.Component, error)
	ListComponents(ctx context.Context, projectSlug string) ([]*entities.Component, error)
	DeleteComponent(ctx context.Context, ref entities.ComponentRef) error

	CreateComponentList(ctx context.Context, list *entities.ComponentList) error
	UpdateComponentList(ctx context.Context, list *entities.ComponentList) error
	GetComponentList(ctx context.Context, slug string) (*entities.ComponentList, error)
	ListComponentLists(ctx context.Context) ([]*entities.ComponentList, error)
	DeleteComponentList(ctx context.Context, slug string) error

	CreateLanguage(ctx context.Context, language *entities.Language) error
	GetLanguage(ctx context.Context, code string) (*entities.Language, error)
	ListLanguages(ctx context.Context) ([]*entities.Language, error)
	DeleteLanguage(ctx context.Context, code string) error
}

// CatalogService handles catalog management operations.
type CatalogService struct {
	catalogRepo repositories.CatalogRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(catalogRepo repositories.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// CreateProject stores a new project. Visibility defaults to public.
func (s *CatalogService) CreateProject(ctx context.Context, project *entities.Project) error {
	if project.Visibility == "" {
		project.Visibility = entities.VisibilityPublic
	}
	if err := project.Validate(); err != nil {
		return err
	}
	return s.catalogRepo.CreateProject(ctx, project)
}

// UpdateProject replaces a project's metadata.
func (s *CatalogService) UpdateProject(ctx context.Context, project *entities.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}
	return s.catalogRepo.UpdateProject(ctx, project)
}

// GetProject retrieves a project by slug.
func (s *CatalogService) GetProject(ctx context.Context, slug string) (*entities.Project, error) {
	return s.catalogRepo.GetProject(ctx, slug)
}

// ListProjects retrieves all projects.
func (s *CatalogService) ListProjects(ctx context.Context) ([]*entities.Project, error) {
	return s.catalogRepo.ListProjects(ctx, "")
}

// DeleteProject removes a project and its components.
func (s *CatalogService) DeleteProject(ctx context.Context, slug string) error {
	return s.catalogRepo.DeleteProject(ctx, slug)
}

// CreateComponent stores a new component inside an existing project.
func (s *CatalogService) CreateComponent(ctx context.Context, component *entities.Component) error {
	if err := component.Validate(); err != nil {
		return err
	}
	if _, err := s.catalogRepo.GetProject(ctx, component.ProjectSlug); err != nil {
		return fmt.Errorf("failed to get project %s: %w", component.ProjectSlug, err)
	}
	return s.catalogRepo.CreateComponent(ctx, component)
}

// UpdateComponent replaces a component's metadata.
func (s *CatalogService) UpdateComponent(ctx context.Context, component *entities.Component) error {
	if err := component.Validate(); err != nil {
		return err
	}
	return s.catalogRepo.UpdateComponent(ctx, component)
}

// GetComponent retrieves a component.
func (s *CatalogService) GetComponent(ctx context.Context, ref entities.ComponentRef) (*entities.Component, error) {
	return s.catalogRepo.GetComponent(ctx, ref)
}

// ListComponents retrieves a project's components.
func (s *CatalogService) ListComponents(ctx context.Context, projectSlug string) ([]*entities.Component, error) {
	return s.catalogRepo.ListComponents(ctx, projectSlug)
}

// DeleteComponent removes a component.
func (s *CatalogService) DeleteComponent(ctx context.Context, ref entities.ComponentRef) error {
	return s.catalogRepo.DeleteComponent(ctx, ref)
}

// CreateComponentList stores a new component list. Every member must
// reference an existing component.
func (s *CatalogService) CreateComponentList(ctx context.Context, list *entities.ComponentList) error {
	if err := s.validateListMembers(ctx, list); err != nil {
		return err
	}
	return s.catalogRepo.CreateComponentList(ctx, list)
}

// UpdateComponentList replaces a component list's members and metadata.
func (s *CatalogService) UpdateComponentList(ctx context.Context, list *entities.ComponentList) error {
	if err := s.validateListMembers(ctx, list); err != nil {
		return err
	}
	return s.catalogRepo.UpdateComponentList(ctx, list)
}

// GetComponentList retrieves a component list by slug.
func (s *CatalogService) GetComponentList(ctx context.Context, slug string) (*entities.ComponentList, error) {
	return s.catalogRepo.GetComponentList(ctx, slug)
}

// ListComponentLists retrieves all component lists.
func (s *CatalogService) ListComponentLists(ctx context.Context) ([]*entities.ComponentList, error) {
	return s.catalogRepo.ListComponentLists(ctx)
}

// DeleteComponentList removes a component list.
func (s *CatalogService) DeleteComponentList(ctx context.Context, slug string) error {
	return s.catalogRepo.DeleteComponentList(ctx, slug)
}

// CreateLanguage stores a new language. Direction defaults to ltr.
func (s *CatalogService) CreateLanguage(ctx context.Context, language *entities.Language) error {
	if language.Direction == "" {
		language.Direction = "ltr"
	}
	if err := language.Validate(); err != nil {
		return err
	}
	return s.catalogRepo.CreateLanguage(ctx, language)
}

// GetLanguage retrieves a language by code.
func (s *CatalogService) GetLanguage(ctx context.Context, code string) (*entities.Language, error) {
	return s.catalogRepo.GetLanguage(ctx, code)
}

// ListLanguages retrieves all languages.
func (s *CatalogService) ListLanguages(ctx context.Context) ([]*entities.Language, error) {
	return s.catalogRepo.ListLanguages(ctx)
}

// DeleteLanguage removes a language.
func (s *CatalogService) DeleteLanguage(ctx context.Context, code string) error {
	return s.catalogRepo.DeleteLanguage(ctx, code)
}

func (s *CatalogService) validateListMembers(ctx context.Context, list *entities.ComponentList) error {
	if err := list.Validate(); err != nil {
		return err
	}
	for _, ref := range list.Components {
		if _, err := s.catalogRepo.GetComponent(ctx, ref); err != nil {
			return fmt.Errorf("failed to get component %s: %w", ref, err)
		}
	}
	return nil
}
