package ports

import (
	"context"

	"github.com/skillbarter/swap-api/internal/core/domain"
)

// MatchCache stores computed match lists per requesting user, partitioned by a
// catalog version. Readers take the version before loading the catalog and
// write under it, so a result computed across an invalidation lands under a
// version nobody reads any more.
type MatchCache interface {
	Version(ctx context.Context) (int64, error)
	// Get reports found=false on a miss.
	Get(ctx context.Context, version int64, userID string) (candidates []domain.MatchCandidate, found bool, err error)
	Set(ctx context.Context, version int64, userID string, candidates []domain.MatchCandidate) error
	// Invalidate retires the current version and with it every entry.
	Invalidate(ctx context.Context) error
}
