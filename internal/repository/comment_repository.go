package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CommentRepository manages ticket comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	Update(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.Comment, error)
	ListByTicketPaged(ctx context.Context, ticketID int64, page PageRequest) (Page[domain.Comment], error)
	ListByAuthor(ctx context.Context, authorID int64) ([]domain.Comment, error)
	CountByTicket(ctx context.Context, ticketID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository builds repository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

const commentColumns = `id, ticket_id, author_id, body, created_at, updated_at`

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (ticket_id, author_id, body)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		comment.TicketID,
		comment.AuthorID,
		comment.Body,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
}

func (r *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	const query = `UPDATE comments SET body=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, comment.Body, comment.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	const query = `
        SELECT id, ticket_id, author_id, body, created_at, updated_at
        FROM comments WHERE id=$1`
	var comment domain.Comment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.TicketID,
		&comment.AuthorID,
		&comment.Body,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Comment, error) {
	const query = `
        SELECT id, ticket_id, author_id, body, created_at, updated_at
        FROM comments WHERE ticket_id=$1 ORDER BY created_at DESC`
	return r.fetchMany(ctx, query, ticketID)
}

func (r *commentRepository) ListByTicketPaged(ctx context.Context, ticketID int64, page PageRequest) (Page[domain.Comment], error) {
	page = page.Normalized()
	result := Page[domain.Comment]{Page: page.Page, Size: page.Size}

	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE ticket_id=$1`, ticketID,
	).Scan(&result.TotalCount); err != nil {
		return result, err
	}

	const query = `
        SELECT id, ticket_id, author_id, body, created_at, updated_at
        FROM comments WHERE ticket_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	items, err := r.fetchMany(ctx, query, ticketID, page.Size, page.Offset())
	if err != nil {
		return result, err
	}
	result.Items = items
	return result, nil
}

func (r *commentRepository) ListByAuthor(ctx context.Context, authorID int64) ([]domain.Comment, error) {
	const query = `
        SELECT id, ticket_id, author_id, body, created_at, updated_at
        FROM comments WHERE author_id=$1 ORDER BY created_at DESC`
	return r.fetchMany(ctx, query, authorID)
}

func (r *commentRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Comment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.TicketID,
			&comment.AuthorID,
			&comment.Body,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}

func (r *commentRepository) CountByTicket(ctx context.Context, ticketID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE ticket_id=$1`, ticketID,
	).Scan(&count)
	return count, err
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
