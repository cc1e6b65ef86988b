package ports

import (
	"context"

	"github.com/skillbarter/swap-api/internal/core/domain"
)

// SwapEventRepository persists the audit trail of swap state changes.
type SwapEventRepository interface {
	Insert(ctx context.Context, event *domain.SwapEvent) error
	// ListBySwap returns the events of one swap, oldest first.
	ListBySwap(ctx context.Context, swapID string) ([]domain.SwapEvent, error)
}
