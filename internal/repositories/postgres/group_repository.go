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

// PostgresGroupRepository implements GroupRepository using PostgreSQL.
// Scope attachments live in side tables and are replaced wholesale on
// update; groups are always read back fully hydrated.
type PostgresGroupRepository struct {
	db *sql.DB
}

// NewPostgresGroupRepository creates a new PostgreSQL group repository.
func NewPostgresGroupRepository(db *sql.DB) repositories.GroupRepository {
	return &PostgresGroupRepository{db: db}
}

// Create stores a new group with all attachments.
func (r *PostgresGroupRepository) Create(ctx context.Context, group *entities.Group) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	selection := group.ProjectSelection
	if selection == "" {
		selection = entities.SelectionManual
	}

	query := `
		INSERT INTO groups (id, name, project_selection, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err = tx.ExecContext(ctx, query, group.ID, group.Name, selection, time.Now())
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("group %s: %w", group.Name, repositories.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create group: %w", err)
	}

	if err := r.writeAttachments(ctx, tx, group); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Update replaces a group's attachments and metadata.
func (r *PostgresGroupRepository) Update(ctx context.Context, group *entities.Group) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	selection := group.ProjectSelection
	if selection == "" {
		selection = entities.SelectionManual
	}

	query := `
		UPDATE groups
		SET name = $2, project_selection = $3
		WHERE id = $1
	`
	result, err := tx.ExecContext(ctx, query, group.ID, group.Name, selection)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("group %s: %w", group.ID, repositories.ErrNotFound)
	}

	// Replace attachments wholesale; memberships are managed separately.
	for _, table := range []string{"group_roles", "group_projects", "group_components", "group_component_lists", "group_languages"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE group_id = $1`, table), group.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := r.writeAttachments(ctx, tx, group); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Get retrieves a group by ID.
func (r *PostgresGroupRepository) Get(ctx context.Context, id string) (*entities.Group, error) {
	query := `
		SELECT id, name, project_selection, created_at
		FROM groups
		WHERE id = $1
	`
	group := &entities.Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&group.ID, &group.Name, &group.ProjectSelection, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group %s: %w", id, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if err := r.loadAttachments(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// List retrieves all groups ordered by name.
func (r *PostgresGroupRepository) List(ctx context.Context) ([]*entities.Group, error) {
	query := `
		SELECT id, name, project_selection, created_at
		FROM groups
		ORDER BY name
	`
	return r.queryGroups(ctx, query)
}

// ListForUser retrieves the groups a user is a member of.
func (r *PostgresGroupRepository) ListForUser(ctx context.Context, userID string) ([]*entities.Group, error) {
	query := `
		SELECT g.id, g.name, g.project_selection, g.created_at
		FROM groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE m.user_id = $1
		ORDER BY g.name
	`
	return r.queryGroups(ctx, query, userID)
}

// Delete removes a group; attachments and memberships cascade.
func (r *PostgresGroupRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("group %s: %w", id, repositories.ErrNotFound)
	}
	return nil
}

// AddMember adds a user to a group. Adding an existing member is a
// no-op.
func (r *PostgresGroupRepository) AddMember(ctx context.Context, groupID, userID string) error {
	query := `
		INSERT INTO group_members (group_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, groupID, userID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("group %s or user %s: %w", groupID, userID, repositories.ErrNotFound)
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// RemoveMember removes a user from a group.
func (r *PostgresGroupRepository) RemoveMember(ctx context.Context, groupID, userID string) error {
	query := `
		DELETE FROM group_members
		WHERE group_id = $1 AND user_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("membership of %s in group %s: %w", userID, groupID, repositories.ErrNotFound)
	}
	return nil
}

func (r *PostgresGroupRepository) queryGroups(ctx context.Context, query string, args ...interface{}) ([]*entities.Group, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	var groups []*entities.Group
	for rows.Next() {
		group := &entities.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.ProjectSelection, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	for _, group := range groups {
		if err := r.loadAttachments(ctx, group); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

func (r *PostgresGroupRepository) writeAttachments(ctx context.Context, tx *sql.Tx, group *entities.Group) error {
	for _, role := range group.Roles {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO group_roles (group_id, role_name) VALUES ($1, $2)`,
			group.ID, role,
		); err != nil {
			return fmt.Errorf("failed to attach role %s: %w", role, err)
		}
	}
	for _, slug := range group.ComponentLists {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO group_component_lists (group_id, list_slug) VALUES ($1, $2)`,
			group.ID, slug,
		); err != nil {
			return fmt.Errorf("failed to attach component list %s: %w", slug, err)
		}
	}
	for _, ref := range group.Components {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO group_components (group_id, project_slug, component_slug) VALUES ($1, $2, $3)`,
			group.ID, ref.Project, ref.Component,
		); err != nil {
			return fmt.Errorf("failed to attach component %s: %w", ref, err)
		}
	}
	for _, slug := range group.Projects {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO group_projects (group_id, project_slug) VALUES ($1, $2)`,
			group.ID, slug,
		); err != nil {
			return fmt.Errorf("failed to attach project %s: %w", slug, err)
		}
	}
	for _, code := range group.Languages {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO group_languages (group_id, language_code) VALUES ($1, $2)`,
			group.ID, code,
		); err != nil {
			return fmt.Errorf("failed to attach language %s: %w", code, err)
		}
	}
	return nil
}

func (r *PostgresGroupRepository) loadAttachments(ctx context.Context, group *entities.Group) error {
	var err error
	group.Roles, err = r.loadStrings(ctx,
		`SELECT role_name FROM group_roles WHERE group_id = $1 ORDER BY role_name`, group.ID)
	if err != nil {
		return fmt.Errorf("failed to load roles: %w", err)
	}
	group.ComponentLists, err = r.loadStrings(ctx,
		`SELECT list_slug FROM group_component_lists WHERE group_id = $1 ORDER BY list_slug`, group.ID)
	if err != nil {
		return fmt.Errorf("failed to load component lists: %w", err)
	}
	group.Projects, err = r.loadStrings(ctx,
		`SELECT project_slug FROM group_projects WHERE group_id = $1 ORDER BY project_slug`, group.ID)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}
	group.Languages, err = r.loadStrings(ctx,
		`SELECT language_code FROM group_languages WHERE group_id = $1 ORDER BY language_code`, group.ID)
	if err != nil {
		return fmt.Errorf("failed to load languages: %w", err)
	}
	group.Members, err = r.loadStrings(ctx,
		`SELECT user_id FROM group_members WHERE group_id = $1 ORDER BY user_id`, group.ID)
	if err != nil {
		return fmt.Errorf("failed to load members: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT project_slug, component_slug FROM group_components WHERE group_id = $1 ORDER BY project_slug, component_slug`,
		group.ID)
	if err != nil {
		return fmt.Errorf("failed to load components: %w", err)
	}
	defer rows.Close()

	group.Components = nil
	for rows.Next() {
		var ref entities.ComponentRef
		if err := rows.Scan(&ref.Project, &ref.Component); err != nil {
			return fmt.Errorf("failed to scan component ref: %w", err)
		}
		group.Components = append(group.Components, ref)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate component refs: %w", err)
	}
	return nil
}

func (r *PostgresGroupRepository) loadStrings(ctx context.Context, query string, groupID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
