package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RoleRepository reads the fixed role set.
type RoleRepository interface {
	GetByName(ctx context.Context, name domain.RoleName) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
	Ensure(ctx context.Context, name domain.RoleName) error
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository builds repository.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

func (r *roleRepository) GetByName(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	var role domain.Role
	if err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM roles WHERE name=$1`, name,
	).Scan(&role.ID, &role.Name); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) List(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM roles ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		result = append(result, role)
	}
	return result, rows.Err()
}

// Ensure inserts the role when missing; existing rows are untouched.
func (r *roleRepository) Ensure(ctx context.Context, name domain.RoleName) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	return err
}
