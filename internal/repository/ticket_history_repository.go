package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// TicketHistoryRepository stores audit entries.
type TicketHistoryRepository interface {
	Create(ctx context.Context, history *domain.TicketHistory) error
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.TicketHistory, error)
}

type ticketHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewTicketHistoryRepository builds repository.
func NewTicketHistoryRepository(pool *pgxpool.Pool) TicketHistoryRepository {
	return &ticketHistoryRepository{pool: pool}
}

func (r *ticketHistoryRepository) Create(ctx context.Context, history *domain.TicketHistory) error {
	const query = `
        INSERT INTO ticket_history (ticket_id, actor_id, from_status, to_status, from_assignee_id, to_assignee_id, note)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, at`
	return r.pool.QueryRow(ctx, query,
		history.TicketID,
		history.ActorID,
		history.FromStatus,
		history.ToStatus,
		history.FromAssigneeID,
		history.ToAssigneeID,
		history.Note,
	).Scan(&history.ID, &history.At)
}

func (r *ticketHistoryRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.TicketHistory, error) {
	const query = `
        SELECT id, ticket_id, actor_id, from_status, to_status, from_assignee_id, to_assignee_id, note, at
        FROM ticket_history WHERE ticket_id=$1 ORDER BY at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketHistory
	for rows.Next() {
		var history domain.TicketHistory
		if err := rows.Scan(
			&history.ID,
			&history.TicketID,
			&history.ActorID,
			&history.FromStatus,
			&history.ToStatus,
			&history.FromAssigneeID,
			&history.ToAssigneeID,
			&history.Note,
			&history.At,
		); err != nil {
			return nil, err
		}
		result = append(result, history)
	}
	return result, rows.Err()
}
