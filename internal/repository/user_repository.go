package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]domain.User, error)
	ListActive(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

// Create inserts the user row and its role links in one transaction.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO users (full_name, email, password_hash, active)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Active,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return err
	}

	if err := insertRoleLinks(ctx, tx, user.ID, user.Roles); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update rewrites the user row and fully replaces its role links.
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE users SET full_name=$1, email=$2, password_hash=$3, active=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := tx.Exec(ctx, query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Active,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id=$1`, user.ID); err != nil {
		return err
	}
	if err := insertRoleLinks(ctx, tx, user.ID, user.Roles); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertRoleLinks(ctx context.Context, tx pgx.Tx, userID int64, roles []domain.Role) error {
	for _, role := range roles {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`,
			userID, role.ID,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
        SELECT id, full_name, email, password_hash, active, created_at, updated_at
        FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, full_name, email, password_hash, active, created_at, updated_at
        FROM users WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := r.loadRoles(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email=$1)`, email,
	).Scan(&exists)
	return exists, err
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `
        SELECT id, full_name, email, password_hash, active, created_at, updated_at
        FROM users ORDER BY id ASC`
	return r.fetchMany(ctx, query)
}

func (r *userRepository) ListActive(ctx context.Context) ([]domain.User, error) {
	const query = `
        SELECT id, full_name, email, password_hash, active, created_at, updated_at
        FROM users WHERE active=TRUE ORDER BY id ASC`
	return r.fetchMany(ctx, query)
}

func (r *userRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.FullName,
			&user.Email,
			&user.PasswordHash,
			&user.Active,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		if err := r.loadRoles(ctx, &result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *userRepository) loadRoles(ctx context.Context, user *domain.User) error {
	const query = `
        SELECT r.id, r.name
        FROM roles r
        JOIN user_roles ur ON ur.role_id = r.id
        WHERE ur.user_id = $1
        ORDER BY r.name ASC`
	rows, err := r.pool.Query(ctx, query, user.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	user.Roles = nil
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return err
		}
		user.Roles = append(user.Roles, role)
	}
	return rows.Err()
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
