package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// TicketFilter captures optional filter fields. Nil fields are not filtered on.
type TicketFilter struct {
	OwnerID    *int64
	AssigneeID *int64
	Status     *domain.TicketStatus
	Priority   *domain.TicketPriority
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	// Update rewrites the ticket row and, when history is non-nil, appends the
	// audit entry in the same transaction.
	Update(ctx context.Context, ticket *domain.Ticket, history *domain.TicketHistory) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	GetByCode(ctx context.Context, code string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter, page PageRequest) (Page[domain.Ticket], error)
	Search(ctx context.Context, term string, page PageRequest) (Page[domain.Ticket], error)
	Delete(ctx context.Context, id int64) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, code, subject, description, status, priority, owner_id, assignee_id, closed_at, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (code, subject, description, status, priority, owner_id, assignee_id, closed_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Code,
		ticket.Subject,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.OwnerID,
		ticket.AssigneeID,
		ticket.ClosedAt,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket, history *domain.TicketHistory) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE tickets SET subject=$1, description=$2, status=$3, priority=$4,
            assignee_id=$5, closed_at=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := tx.Exec(ctx, query,
		ticket.Subject,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.AssigneeID,
		ticket.ClosedAt,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if history != nil {
		const historyQuery = `
            INSERT INTO ticket_history (ticket_id, actor_id, from_status, to_status, from_assignee_id, to_assignee_id, note)
            VALUES ($1,$2,$3,$4,$5,$6,$7)
            RETURNING id, at`
		if err := tx.QueryRow(ctx, historyQuery,
			history.TicketID,
			history.ActorID,
			history.FromStatus,
			history.ToStatus,
			history.FromAssigneeID,
			history.ToAssigneeID,
			history.Note,
		).Scan(&history.ID, &history.At); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id=$1`, ticketColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByCode(ctx context.Context, code string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE code=$1`, ticketColumns)
	return r.fetchSingle(ctx, query, code)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&ticket.ID,
		&ticket.Code,
		&ticket.Subject,
		&ticket.Description,
		&ticket.Status,
		&ticket.Priority,
		&ticket.OwnerID,
		&ticket.AssigneeID,
		&ticket.ClosedAt,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter, page PageRequest) (Page[domain.Ticket], error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		clauses = append(clauses, fmt.Sprintf("owner_id=$%d", len(args)))
	}
	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		clauses = append(clauses, fmt.Sprintf("assignee_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("priority=$%d", len(args)))
	}

	return r.fetchPage(ctx, strings.Join(clauses, " AND "), args, page)
}

// Search matches the term as a case-sensitive substring of subject,
// description, or code.
func (r *ticketRepository) Search(ctx context.Context, term string, page PageRequest) (Page[domain.Ticket], error) {
	pattern := "%" + term + "%"
	where := "(subject LIKE $1 OR description LIKE $1 OR code LIKE $1)"
	return r.fetchPage(ctx, where, []any{pattern}, page)
}

func (r *ticketRepository) fetchPage(ctx context.Context, where string, args []any, page PageRequest) (Page[domain.Ticket], error) {
	page = page.Normalized()
	result := Page[domain.Ticket]{Page: page.Page, Size: page.Size}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM tickets WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&result.TotalCount); err != nil {
		return result, err
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		ticketColumns, where, orderClause(page), page.Size, page.Offset())
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return result, err
	}
	defer rows.Close()

	result.Items, err = scanTickets(rows)
	return result, err
}

var ticketSortColumns = map[string]string{
	"createdat":  "created_at",
	"created_at": "created_at",
	"updatedat":  "updated_at",
	"updated_at": "updated_at",
	"priority":   "priority",
	"status":     "status",
	"subject":    "subject",
	"code":       "code",
}

func orderClause(page PageRequest) string {
	column, ok := ticketSortColumns[strings.ToLower(strings.TrimSpace(page.SortBy))]
	if !ok {
		column = "created_at"
	}
	dir := "ASC"
	if page.Descending() {
		dir = "DESC"
	}
	return column + " " + dir
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Code,
			&ticket.Subject,
			&ticket.Description,
			&ticket.Status,
			&ticket.Priority,
			&ticket.OwnerID,
			&ticket.AssigneeID,
			&ticket.ClosedAt,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func (r *ticketRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
