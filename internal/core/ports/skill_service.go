package ports

import (
	"context"

	"github.com/skillbarter/swap-api/internal/core/domain"
)

// CreateSkillInput carries a new listing; UserID is always the caller.
type CreateSkillInput struct {
	UserID        string
	SkillName     string
	SkillCategory string
	SkillLevel    string
	Type          string
}

// SkillService defines use-case operations for skill listings.
type SkillService interface {
	List(ctx context.Context, filter SkillFilter) ([]domain.Skill, error)
	Create(ctx context.Context, input CreateSkillInput) (*domain.Skill, error)
	// Delete removes a listing owned by actorID; admins may delete any listing.
	Delete(ctx context.Context, id, actorID, actorRole string) error
}

// UserService exposes read access to accounts.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
}

// MatchService runs the matcher for one requesting user.
type MatchService interface {
	FindMatches(ctx context.Context, userID string) ([]domain.MatchCandidate, error)
}
