package ports

import (
	"context"
	"time"

	"github.com/skillbarter/swap-api/internal/core/domain"
)

// SwapFilter carries the query parameters for listing swap requests.
type SwapFilter struct {
	UserID string           // empty = every swap; otherwise swaps where the user is A or B
	State  domain.SwapState // empty = every state
}

// SwapRepository defines persistence operations for swap requests.
type SwapRepository interface {
	// Create inserts atomically with two uniqueness rules. It returns
	// domain.ErrIdempotencyKeyUsed when a non-empty idempotency key is already
	// stored and domain.ErrDuplicateSwap when an open swap exists for the same
	// participants and skills.
	Create(ctx context.Context, swap *domain.SwapRequest) error
	FindByID(ctx context.Context, id string) (*domain.SwapRequest, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.SwapRequest, error)
	// FindOpen returns a non-terminal swap with exactly these participants and
	// skills, or domain.ErrSwapNotFound.
	FindOpen(ctx context.Context, userAID, userBID, skillAID, skillBID string) (*domain.SwapRequest, error)

	// UpdateState moves the swap from expected to next only if its stored state
	// still equals expected. It returns domain.ErrSwapNotFound when the swap does
	// not exist and domain.ErrConflict when the stored state has changed.
	UpdateState(ctx context.Context, id string, expected, next domain.SwapState) (*domain.SwapRequest, error)

	// List returns newest first.
	List(ctx context.Context, filter SwapFilter) ([]domain.SwapRequest, error)
	Delete(ctx context.Context, id string) error
	CountByState(ctx context.Context) (map[domain.SwapState]int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}
