package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillbarter/swap-api/internal/core/domain"
)

type SwapEventRepository struct {
	db *pgxpool.Pool
}

func NewSwapEventRepository(db *pgxpool.Pool) *SwapEventRepository {
	return &SwapEventRepository{db: db}
}

func (r *SwapEventRepository) Insert(ctx context.Context, e *domain.SwapEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO swap_events (swap_id, user_a_id, user_b_id, from_state, to_state, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query, e.SwapID, e.UserAID, e.UserBID, string(e.From), string(e.To),
		e.ActorID, e.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("insert swap event: %w", err)
	}
	return nil
}

// ListBySwap returns the events in insertion order.
func (r *SwapEventRepository) ListBySwap(ctx context.Context, swapID string) ([]domain.SwapEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		SELECT swap_id, user_a_id, user_b_id, from_state, to_state, actor_id, created_at
		FROM swap_events WHERE swap_id = $1 ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, swapID)
	if err != nil {
		return nil, fmt.Errorf("list swap events: %w", err)
	}
	defer rows.Close()

	events := []domain.SwapEvent{}
	for rows.Next() {
		var e domain.SwapEvent
		var from, to string
		if err := rows.Scan(&e.SwapID, &e.UserAID, &e.UserBID, &from, &to, &e.ActorID, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan swap event: %w", err)
		}
		e.From = domain.SwapState(from)
		e.To = domain.SwapState(to)
		events = append(events, e)
	}
	return events, rows.Err()
}
