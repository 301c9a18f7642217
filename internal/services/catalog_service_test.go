package services

import (
	"context"
	"errors"
	"testing"

	"github.com/WeblateOrg/weblate-sub003/internal/entities"
	"github.com/WeblateOrg/weblate-sub003/internal/repositories"
)

func TestCatalogService_CreateProject(t *testing.T) {
	ctx := context.Background()
	service := NewCatalogService(newMockCatalogRepo())

	if err := service.CreateProject(ctx, &entities.Project{Slug: "foo", Name: "Foo"}); err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	project, err := service.GetProject(ctx, "foo")
	if err != nil {
		t.Fatalf("GetProject() error = %v", err)
	}
	if project.Visibility != entities.VisibilityPublic {
		t.Errorf("Visibility = %q, want default %q", project.Visibility, entities.VisibilityPublic)
	}

	if err := service.CreateProject(ctx, &entities.Project{Slug: "bad", Name: "Bad", Visibility: "secret"}); err == nil {
		t.Error("CreateProject() with invalid visibility should fail")
	}

	if err := service.CreateProject(ctx, &entities.Project{Slug: "foo", Name: "Dup"}); !errors.Is(err, repositories.ErrAlreadyExists) {
		t.Errorf("CreateProject() duplicate error = %v, want ErrAlreadyExists", err)
	}
}

func TestCatalogService_CreateComponent(t *testing.T) {
	ctx := context.Background()
	repo := newMockCatalogRepo()
	service := NewCatalogService(repo)

	if err := service.CreateProject(ctx, &entities.Project{Slug: "foo", Name: "Foo"}); err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	component := &entities.Component{ProjectSlug: "foo", Slug: "bar", Name: "Bar", Restricted: true}
	if err := service.CreateComponent(ctx, component); err != nil {
		t.Fatalf("CreateComponent() error = %v", err)
	}
	got, err := service.GetComponent(ctx, entities.ComponentRef{Project: "foo", Component: "bar"})
	if err != nil {
		t.Fatalf("GetComponent() error = %v", err)
	}
	if !got.Restricted {
		t.Error("Restricted flag should round-trip")
	}

	err = service.CreateComponent(ctx, &entities.Component{ProjectSlug: "missing", Slug: "x", Name: "X"})
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("CreateComponent() in unknown project = %v, want ErrNotFound", err)
	}

	if err := service.CreateComponent(ctx, &entities.Component{ProjectSlug: "foo"}); err == nil {
		t.Error("CreateComponent() without a slug should fail")
	}
}

func TestCatalogService_ComponentLists(t *testing.T) {
	ctx := context.Background()
	service := NewCatalogService(newMockCatalogRepo())

	if err := service.CreateProject(ctx, &entities.Project{Slug: "foo", Name: "Foo"}); err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	if err := service.CreateComponent(ctx, &entities.Component{ProjectSlug: "foo", Slug: "bar", Name: "Bar"}); err != nil {
		t.Fatalf("CreateComponent() error = %v", err)
	}

	list := &entities.ComponentList{
		Slug:       "frontend",
		Name:       "Frontend",
		Components: []entities.ComponentRef{{Project: "foo", Component: "bar"}},
	}
	if err := service.CreateComponentList(ctx, list); err != nil {
		t.Fatalf("CreateComponentList() error = %v", err)
	}

	err := service.CreateComponentList(ctx, &entities.ComponentList{
		Slug:       "broken",
		Name:       "Broken",
		Components: []entities.ComponentRef{{Project: "foo", Component: "ghost"}},
	})
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("CreateComponentList() with unknown member = %v, want ErrNotFound", err)
	}

	got, err := service.GetComponentList(ctx, "frontend")
	if err != nil {
		t.Fatalf("GetComponentList() error = %v", err)
	}
	if !got.Contains(entities.ComponentRef{Project: "foo", Component: "bar"}) {
		t.Error("list should contain foo/bar")
	}
}

func TestCatalogService_Languages(t *testing.T) {
	ctx := context.Background()
	service := NewCatalogService(newMockCatalogRepo())

	if err := service.CreateLanguage(ctx, &entities.Language{Code: "cs", Name: "Czech"}); err != nil {
		t.Fatalf("CreateLanguage() error = %v", err)
	}
	language, err := service.GetLanguage(ctx, "cs")
	if err != nil {
		t.Fatalf("GetLanguage() error = %v", err)
	}
	if language.Direction != "ltr" {
		t.Errorf("Direction = %q, want default ltr", language.Direction)
	}

	if err := service.CreateLanguage(ctx, &entities.Language{Code: "ar", Name: "Arabic", Direction: "sideways"}); err == nil {
		t.Error("CreateLanguage() with invalid direction should fail")
	}

	if err := service.DeleteLanguage(ctx, "cs"); err != nil {
		t.Fatalf("DeleteLanguage() error = %v", err)
	}
	if _, err := service.GetLanguage(ctx, "cs"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("GetLanguage() after delete = %v, want ErrNotFound", err)
	}
}

func TestCatalogService_DeleteProject(t *testing.T) {
	ctx := context.Background()
	service := NewCatalogService(newMockCatalogRepo())

	if err := service.CreateProject(ctx, &entities.Project{Slug: "foo", Name: "Foo"}); err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	if err := service.DeleteProject(ctx, "foo"); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}
	if err := service.DeleteProject(ctx, "foo"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("DeleteProject() twice = %v, want ErrNotFound", err)
	}
}
