package ports

import (
	"context"

	"github.com/skillbarter/swap-api/internal/core/domain"
)

// CreateSwapInput carries a new proposal. ProposerID becomes UserA.
type CreateSwapInput struct {
	ProposerID     string
	UserBID        string
	SkillAID       string
	SkillBID       string
	MatchScore     float64
	Message        string
	IdempotencyKey string
}

// CreateSwapResult is returned by Create.
type CreateSwapResult struct {
	Swap *domain.SwapRequest
	// AlreadyExisted is true when the Idempotency-Key matched an existing swap.
	AlreadyExisted bool
}

// SwapQuery identifies a swap and the caller asking for it.
type SwapQuery struct {
	SwapID    string
	ActorID   string
	ActorRole string
}

// TransitionInput asks the lifecycle manager to move a swap to Target.
type TransitionInput struct {
	SwapID    string
	Target    string
	ActorID   string
	ActorRole string
}

// ListSwapsInput carries the list parameters. When All is false the result is
// scoped to ActorID; State accepts any lifecycle state, "ALL" or empty.
type ListSwapsInput struct {
	ActorID string
	All     bool
	State   string
}

// SwapDetail is a swap enriched with participant and skill names.
type SwapDetail struct {
	domain.SwapRequest
	UserAName   string
	UserBName   string
	UserAActive bool
	UserBActive bool
	SkillAName  string
	SkillBName  string
}

// SwapService defines the swap lifecycle use cases.
type SwapService interface {
	Create(ctx context.Context, input CreateSwapInput) (*CreateSwapResult, error)
	Get(ctx context.Context, query SwapQuery) (*domain.SwapRequest, error)
	List(ctx context.Context, input ListSwapsInput) ([]SwapDetail, error)
	Transition(ctx context.Context, input TransitionInput) (*domain.SwapRequest, error)
	ForceTerminate(ctx context.Context, swapID, adminID string) (*domain.SwapRequest, error)
	Delete(ctx context.Context, swapID string) error
	Events(ctx context.Context, query SwapQuery) ([]domain.SwapEvent, error)
}
