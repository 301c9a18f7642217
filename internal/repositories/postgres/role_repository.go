package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/WeblateOrg/weblate-sub003/internal/entities"
	"github.com/WeblateOrg/weblate-sub003/internal/repositories"
	"github.com/lib/pq"
)

// PostgresRoleRepository implements RoleRepository using PostgreSQL.
// Permission codenames are stored as a text array on the role row.
type PostgresRoleRepository struct {
	db *sql.DB
}

// NewPostgresRoleRepository creates a new PostgreSQL role repository.
func NewPostgresRoleRepository(db *sql.DB) repositories.RoleRepository {
	return &PostgresRoleRepository{db: db}
}

// Create stores a new role.
func (r *PostgresRoleRepository) Create(ctx context.Context, role *entities.Role) error {
	query := `
		INSERT INTO roles (name, permissions)
		VALUES ($1, $2)
	`
	_, err := r.db.ExecContext(ctx, query, role.Name, pq.Array(permissionStrings(role.Permissions)))
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("role %s: %w", role.Name, repositories.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create role: %w", err)
	}
	return nil
}

// Update replaces a role's permission set.
func (r *PostgresRoleRepository) Update(ctx context.Context, role *entities.Role) error {
	query := `
		UPDATE roles
		SET permissions = $2
		WHERE name = $1
	`
	result, err := r.db.ExecContext(ctx, query, role.Name, pq.Array(permissionStrings(role.Permissions)))
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("role %s: %w", role.Name, repositories.ErrNotFound)
	}
	return nil
}

// Get retrieves a role by name.
func (r *PostgresRoleRepository) Get(ctx context.Context, name string) (*entities.Role, error) {
	query := `
		SELECT name, permissions
		FROM roles
		WHERE name = $1
	`
	role := &entities.Role{}
	var perms []string
	err := r.db.QueryRowContext(ctx, query, name).Scan(&role.Name, pq.Array(&perms))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("role %s: %w", name, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	role.Permissions = permissionsFromStrings(perms)
	return role, nil
}

// GetMany retrieves the named roles. Missing names are skipped.
func (r *PostgresRoleRepository) GetMany(ctx context.Context, names []string) ([]*entities.Role, error) {
	if len(names) == 0 {
		return nil, nil
	}

	query := `
		SELECT name, permissions
		FROM roles
		WHERE name = ANY($1)
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(names))
	if err != nil {
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}
	defer rows.Close()

	return scanRoles(rows)
}

// List retrieves all roles ordered by name.
func (r *PostgresRoleRepository) List(ctx context.Context) ([]*entities.Role, error) {
	query := `
		SELECT name, permissions
		FROM roles
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	return scanRoles(rows)
}

// Delete removes a role. Group attachments cascade in the schema.
func (r *PostgresRoleRepository) Delete(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("role %s: %w", name, repositories.ErrNotFound)
	}
	return nil
}

func scanRoles(rows *sql.Rows) ([]*entities.Role, error) {
	var roles []*entities.Role
	for rows.Next() {
		role := &entities.Role{}
		var perms []string
		if err := rows.Scan(&role.Name, pq.Array(&perms)); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		role.Permissions = permissionsFromStrings(perms)
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roles: %w", err)
	}
	return roles, nil
}

func permissionStrings(perms []entities.Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}

func permissionsFromStrings(perms []string) []entities.Permission {
	out := make([]entities.Permission, len(perms))
	for i, p := range perms {
		out[i] = entities.Permission(p)
	}
	return out
}
