package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillbarter/swap-api/internal/core/domain"
	"github.com/skillbarter/swap-api/internal/core/ports"
)

const swapColumns = `id, user_a_id, user_b_id, skill_a_id, skill_b_id, match_score, state,
	COALESCE(message, ''), COALESCE(idempotency_key, ''), created_at, updated_at`

type SwapRepository struct {
	db *pgxpool.Pool
}

func NewSwapRepository(db *pgxpool.Pool) *SwapRepository {
	return &SwapRepository{db: db}
}

func scanSwap(row pgx.Row) (*domain.SwapRequest, error) {
	var s domain.SwapRequest
	var state string
	err := row.Scan(&s.ID, &s.UserAID, &s.UserBID, &s.SkillAID, &s.SkillBID, &s.MatchScore,
		&state, &s.Message, &s.IdempotencyKey, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSwapNotFound
		}
		return nil, fmt.Errorf("scan swap: %w", err)
	}
	s.State = domain.SwapState(state)
	return &s, nil
}

func (r *SwapRepository) Create(ctx context.Context, s *domain.SwapRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO swap_requests (id, user_a_id, user_b_id, skill_a_id, skill_b_id, match_score,
			state, message, idempotency_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10, $11)
	`
	_, err := r.db.Exec(ctx, query, s.ID, s.UserAID, s.UserBID, s.SkillAID, s.SkillBID, s.MatchScore,
		string(s.State), s.Message, s.IdempotencyKey, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return swapInsertError(err)
	}
	return nil
}

func (r *SwapRepository) FindByID(ctx context.Context, id string) (*domain.SwapRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return scanSwap(r.db.QueryRow(ctx, `SELECT `+swapColumns+` FROM swap_requests WHERE id = $1`, id))
}

func (r *SwapRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.SwapRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return scanSwap(r.db.QueryRow(ctx, `SELECT `+swapColumns+` FROM swap_requests WHERE idempotency_key = $1`, key))
}

func (r *SwapRepository) FindOpen(ctx context.Context, userAID, userBID, skillAID, skillBID string) (*domain.SwapRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `SELECT ` + swapColumns + ` FROM swap_requests
		WHERE user_a_id = $1 AND user_b_id = $2 AND skill_a_id = $3 AND skill_b_id = $4
		AND state = ANY($5) LIMIT 1`
	return scanSwap(r.db.QueryRow(ctx, query, userAID, userBID, skillAID, skillBID, stateStrings(domain.OpenSwapStates)))
}

// UpdateState is a single conditional UPDATE; zero affected rows means either
// the swap is gone or another writer moved it first.
func (r *SwapRepository) UpdateState(ctx context.Context, id string, expected, next domain.SwapState) (*domain.SwapRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `UPDATE swap_requests SET state = $3, updated_at = $4
		WHERE id = $1 AND state = $2 RETURNING ` + swapColumns
	s, err := scanSwap(r.db.QueryRow(ctx, query, id, string(expected), string(next), time.Now().UTC()))
	if !errors.Is(err, domain.ErrSwapNotFound) {
		return s, err
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM swap_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check swap: %w", err)
	}
	if !exists {
		return nil, domain.ErrSwapNotFound
	}
	return nil, domain.ErrConflict
}

func (r *SwapRepository) List(ctx context.Context, f ports.SwapFilter) ([]domain.SwapRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `SELECT ` + swapColumns + ` FROM swap_requests
		WHERE ($1 = '' OR user_a_id = $1 OR user_b_id = $1) AND ($2 = '' OR state = $2)
		ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, f.UserID, string(f.State))
	if err != nil {
		return nil, fmt.Errorf("list swaps: %w", err)
	}
	defer rows.Close()

	swaps := []domain.SwapRequest{}
	for rows.Next() {
		s, err := scanSwap(rows)
		if err != nil {
			return nil, err
		}
		swaps = append(swaps, *s)
	}
	return swaps, rows.Err()
}

func (r *SwapRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM swap_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete swap: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSwapNotFound
	}
	return nil
}

func (r *SwapRepository) CountByState(ctx context.Context) (map[domain.SwapState]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT state, count(*) FROM swap_requests GROUP BY state`)
	if err != nil {
		return nil, fmt.Errorf("count swaps: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.SwapState]int64)
	for rows.Next() {
		var state string
		var n int64
		if err := rows.Scan(&state, &n); err != nil {
			return nil, fmt.Errorf("scan swap count: %w", err)
		}
		out[domain.SwapState(state)] = n
	}
	return out, rows.Err()
}

func (r *SwapRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM swap_requests WHERE created_at >= $1`, since.UTC()).Scan(&n); err != nil {
		return 0, fmt.Errorf("count recent swaps: %w", err)
	}
	return n, nil
}

func stateStrings(states []domain.SwapState) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = string(s)
	}
	return out
}

// swapInsertError names the uniqueness rule an insert broke. Any unique
// violation other than the open-pair index is the idempotency key, which also
// covers tables created with an inline UNIQUE constraint.
func swapInsertError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return fmt.Errorf("insert swap: %w", err)
	}
	if pgErr.ConstraintName == openPairIndex {
		return domain.ErrDuplicateSwap
	}
	return domain.ErrIdempotencyKeyUsed
}
