package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/WeblateOrg/weblate-sub003/internal/entities"
	"github.com/WeblateOrg/weblate-sub003/internal/repositories"
	"github.com/lib/pq"
)

// PostgresCatalogRepository implements CatalogRepository using
// PostgreSQL.
type PostgresCatalogRepository struct {
	db *sql.DB
}

// NewPostgresCatalogRepository creates a new PostgreSQL catalog
// repository.
func NewPostgresCatalogRepository(db *sql.DB) repositories.CatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

// CreateProject stores a new project.
func (r *PostgresCatalogRepository) CreateProject(ctx context.Context, project *entities.Project) error {
	query := `
		INSERT INTO projects (slug, name, visibility, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, project.Slug, project.Name, project.Visibility, time.Now())
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("project %s: %w", project.Slug, repositories.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// UpdateProject replaces a project's metadata.
func (r *PostgresCatalogRepository) UpdateProject(ctx context.Context, project *entities.Project) error {
	query := `
		UPDATE projects
		SET name = $2, visibility = $3
		WHERE slug = $1
	`
	result, err := r.db.ExecContext(ctx, query, project.Slug, project.Name, project.Visibility)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return checkAffected(result, fmt.Sprintf("project %s", project.Slug))
}

// GetProject retrieves a project by slug.
func (r *PostgresCatalogRepository) GetProject(ctx context.Context, slug string) (*entities.Project, error) {
	query := `
		SELECT slug, name, visibility, created_at
		FROM projects
		WHERE slug = $1
	`
	project := &entities.Project{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&project.Slug, &project.Name, &project.Visibility, &project.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %s: %w", slug, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// ListProjects retrieves projects ordered by slug, optionally filtered
// by visibility.
func (r *PostgresCatalogRepository) ListProjects(ctx context.Context, visibility string) ([]*entities.Project, error) {
	query := `
		SELECT slug, name, visibility, created_at
		FROM projects
	`
	args := []interface{}{}
	if visibility != "" {
		query += ` WHERE visibility = $1`
		args = append(args, visibility)
	}
	query += ` ORDER BY slug`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*entities.Project
	for rows.Next() {
		project := &entities.Project{}
		if err := rows.Scan(&project.Slug, &project.Name, &project.Visibility, &project.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}
	return projects, nil
}

// DeleteProject removes a project; components cascade.
func (r *PostgresCatalogRepository) DeleteProject(ctx context.Context, slug string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return checkAffected(result, fmt.Sprintf("project %s", slug))
}

// CreateComponent stores a new component.
func (r *PostgresCatalogRepository) CreateComponent(ctx context.Context, component *entities.Component) error {
	query := `
		INSERT INTO components (project_slug, slug, name, restricted, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		component.ProjectSlug, component.Slug, component.Name, component.Restricted, time.Now())
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return fmt.Errorf("component %s: %w", component.Ref(), repositories.ErrAlreadyExists)
			case "foreign_key_violation":
				return fmt.Errorf("project %s: %w", component.ProjectSlug, repositories.ErrNotFound)
			}
		}
		return fmt.Errorf("failed to create component: %w", err)
	}
	return nil
}

// UpdateComponent replaces a component's metadata.
func (r *PostgresCatalogRepository) UpdateComponent(ctx context.Context, component *entities.Component) error {
	query := `
		UPDATE components
		SET name = $3, restricted = $4
		WHERE project_slug = $1 AND slug = $2
	`
	result, err := r.db.ExecContext(ctx, query,
		component.ProjectSlug, component.Slug, component.Name, component.Restricted)
	if err != nil {
		return fmt.Errorf("failed to update component: %w", err)
	}
	return checkAffected(result, fmt.Sprintf("component %s", component.Ref()))
}

// GetComponent retrieves a component.
func (r *PostgresCatalogRepository) GetComponent(ctx context.Context, ref entities.ComponentRef) (*entities.Component, error) {
	query := `
		SELECT project_slug, slug, name, restricted, created_at
		FROM components
		WHERE project_slug = $1 AND slug = $2
	`
	component := &entities.Component{}
	err := r.db.QueryRowContext(ctx, query, ref.Project, ref.Component).Scan(
		&component.ProjectSlug, &component.Slug, &component.Name, &component.Restricted, &component.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("component %s: %w", ref, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get component: %w", err)
	}
	return component, nil
}

// ListComponents retrieves a project's components ordered by slug.
func (r *PostgresCatalogRepository) ListComponents(ctx context.Context, projectSlug string) ([]*entities.Component, error) {
	query := `
		SELECT project_slug, slug, name, restricted, created_at
		FROM components
		WHERE project_slug = $1
		ORDER BY slug
	`
	rows, err := r.db.QueryContext(ctx, query, projectSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}
	defer rows.Close()

	var components []*entities.Component
	for rows.Next() {
		component := &entities.Component{}
		if err := rows.Scan(&component.ProjectSlug, &component.Slug, &component.Name, &component.Restricted, &component.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan component: %w", err)
		}
		components = append(components, component)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate components: %w", err)
	}
	return components, nil
}

// DeleteComponent removes a component.
func (r *PostgresCatalogRepository) DeleteComponent(ctx context.Context, ref entities.ComponentRef) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM components WHERE project_slug = $1 AND slug = $2`, ref.Project, ref.Component)
	if err != nil {
		return fmt.Errorf("failed to delete component: %w", err)
	}
	return checkAffected(result, fmt.Sprintf("component %s", ref))
}

// CreateComponentList stores a new component list with its members.
func (r *PostgresCatalogRepository) CreateComponentList(ctx context.Context, list *entities.ComponentList) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO component_lists (slug, name)
		VALUES ($1, $2)
	`
	_, err = tx.ExecContext(ctx, query, list.Slug, list.Name)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("component list %s: %w", list.Slug, repositories.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create component list: %w", err)
	}

	if err := writeListItems(ctx, tx, list); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateComponentList replaces a component list's members and metadata.
func (r *PostgresCatalogRepository) UpdateComponentList(ctx context.Context, list *entities.ComponentList) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE component_lists SET name = $2 WHERE slug = $1`, list.Slug, list.Name)
	if err != nil {
		return fmt.Errorf("failed to update component list: %w", err)
	}
	if err := checkAffected(result, fmt.Sprintf("component list %s", list.Slug)); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM component_list_items WHERE list_slug = $1`, list.Slug); err != nil {
		return fmt.Errorf("failed to clear component list items: %w", err)
	}
	if err := writeListItems(ctx, tx, list); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetComponentList retrieves a component list by slug.
func (r *PostgresCatalogRepository) GetComponentList(ctx context.Context, slug string) (*entities.ComponentList, error) {
	query := `
		SELECT slug, name
		FROM component_lists
		WHERE slug = $1
	`
	list := &entities.ComponentList{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&list.Slug, &list.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("component list %s: %w", slug, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get component list: %w", err)
	}

	if err := r.loadListItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetComponentLists retrieves the named component lists. Missing slugs
// are skipped.
func (r *PostgresCatalogRepository) GetComponentLists(ctx context.Context, slugs []string) ([]*entities.ComponentList, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	query := `
		SELECT slug, name
		FROM component_lists
		WHERE slug = ANY($1)
		ORDER BY slug
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(slugs))
	if err != nil {
		return nil, fmt.Errorf("failed to get component lists: %w", err)
	}
	defer rows.Close()

	lists, err := scanLists(rows)
	if err != nil {
		return nil, err
	}
	for _, list := range lists {
		if err := r.loadListItems(ctx, list); err != nil {
			return nil, err
		}
	}
	return lists, nil
}

// ListComponentLists retrieves all component lists ordered by slug.
func (r *PostgresCatalogRepository) ListComponentLists(ctx context.Context) ([]*entities.ComponentList, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT slug, name FROM component_lists ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("failed to list component lists: %w", err)
	}
	defer rows.Close()

	lists, err := scanLists(rows)
	if err != nil {
		return nil, err
	}
	for _, list := range lists {
		if err := r.loadListItems(ctx, list); err != nil {
			return nil, err
		}
	}
	return lists, nil
}

// DeleteComponentList removes a component list; items cascade.
func (r *PostgresCatalogRepository) DeleteComponentList(ctx context.Context, slug string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM component_lists WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("failed to delete component list: %w", err)
	}
	return checkAffected(result, fmt.Sprintf("component list %s", slug))
}

// CreateLanguage stores a new language.
func (r *PostgresCatalogRepository) CreateLanguage(ctx context.Context, language *entities.Language) error {
	query := `
		INSERT INTO languages (code, name, direction)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, language.Code, language.Name, language.Direction)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("language %s: %w", language.Code, repositories.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create language: %w", err)
	}
	return nil
}

// GetLanguage retrieves a language by code.
func (r *PostgresCatalogRepository) GetLanguage(ctx context.Context, code string) (*entities.Language, error) {
	query := `
		SELECT code, name, direction
		FROM languages
		WHERE code = $1
	`
	language := &entities.Language{}
	err := r.db.QueryRowContext(ctx, query, code).Scan(&language.Code, &language.Name, &language.Direction)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("language %s: %w", code, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get language: %w", err)
	}
	return language, nil
}

// ListLanguages retrieves all languages ordered by code.
func (r *PostgresCatalogRepository) ListLanguages(ctx context.Context) ([]*entities.Language, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT code, name, direction FROM languages ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	defer rows.Close()

	var languages []*entities.Language
	for rows.Next() {
		language := &entities.Language{}
		if err := rows.Scan(&language.Code, &language.Name, &language.Direction); err != nil {
			return nil, fmt.Errorf("failed to scan language: %w", err)
		}
		languages = append(languages, language)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate languages: %w", err)
	}
	return languages, nil
}

// DeleteLanguage removes a language.
func (r *PostgresCatalogRepository) DeleteLanguage(ctx context.Context, code string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM languages WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("failed to delete language: %w", err)
	}
	return checkAffected(result, fmt.Sprintf("language %s", code))
}

func (r *PostgresCatalogRepository) loadListItems(ctx context.Context, list *entities.ComponentList) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT project_slug, component_slug
		FROM component_list_items
		WHERE list_slug = $1
		ORDER BY project_slug, component_slug
	`, list.Slug)
	if err != nil {
		return fmt.Errorf("failed to load component list items: %w", err)
	}
	defer rows.Close()

	list.Components = nil
	for rows.Next() {
		var ref entities.ComponentRef
		if err := rows.Scan(&ref.Project, &ref.Component); err != nil {
			return fmt.Errorf("failed to scan component list item: %w", err)
		}
		list.Components = append(list.Components, ref)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate component list items: %w", err)
	}
	return nil
}

func writeListItems(ctx context.Context, tx *sql.Tx, list *entities.ComponentList) error {
	for _, ref := range list.Components {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO component_list_items (list_slug, project_slug, component_slug)
			VALUES ($1, $2, $3)
			ON CONFLICT DO NOTHING
		`, list.Slug, ref.Project, ref.Component); err != nil {
			return fmt.Errorf("failed to add component %s to list %s: %w", ref, list.Slug, err)
		}
	}
	return nil
}

func scanLists(rows *sql.Rows) ([]*entities.ComponentList, error) {
	var lists []*entities.ComponentList
	for rows.Next() {
		list := &entities.ComponentList{}
		if err := rows.Scan(&list.Slug, &list.Name); err != nil {
			return nil, fmt.Errorf("failed to scan component list: %w", err)
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate component lists: %w", err)
	}
	return lists, nil
}

func checkAffected(result sql.Result, what string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", what, repositories.ErrNotFound)
	}
	return nil
}
