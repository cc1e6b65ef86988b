package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/skillbarter/swap-api/internal/core/domain"
	"github.com/skillbarter/swap-api/internal/core/matching"
	"github.com/skillbarter/swap-api/internal/core/ports"
	"github.com/skillbarter/swap-api/internal/infrastructure/metrics"
)

// MatchService loads the catalog and runs the matcher, caching results per
// requesting user when a cache is configured.
type MatchService struct {
	skills ports.SkillRepository
	users  ports.UserRepository
	cache  ports.MatchCache // nil disables caching
	logger zerolog.Logger
}

func NewMatchService(skills ports.SkillRepository, users ports.UserRepository, cache ports.MatchCache, logger zerolog.Logger) *MatchService {
	return &MatchService{skills: skills, users: users, cache: cache, logger: logger}
}

func (s *MatchService) FindMatches(ctx context.Context, userID string) ([]domain.MatchCandidate, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.Invalid("user_id", "is required")
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	// The version is read before the catalog so a concurrent invalidation
	// makes our write unreachable instead of stale.
	cacheResult := metrics.CacheDisabled
	useCache := s.cache != nil
	var version int64
	if useCache {
		var err error
		if version, err = s.cache.Version(ctx); err != nil {
			useCache = false
			cacheResult = metrics.CacheError
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("match cache version read failed, recomputing")
		}
	}
	if useCache {
		cached, found, err := s.cache.Get(ctx, version, userID)
		switch {
		case err != nil:
			cacheResult = metrics.CacheError
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("match cache read failed, recomputing")
		case found:
			metrics.MatchRequestsTotal.WithLabelValues(metrics.CacheHit).Inc()
			return cached, nil
		default:
			cacheResult = metrics.CacheMiss
		}
	}
	metrics.MatchRequestsTotal.WithLabelValues(cacheResult).Inc()

	start := time.Now()
	skills, err := s.skills.List(ctx, ports.SkillFilter{})
	if err != nil {
		return nil, fmt.Errorf("find matches: load skills: %w", err)
	}
	users, err := s.users.List(ctx, ports.UserFilter{})
	if err != nil {
		return nil, fmt.Errorf("find matches: load users: %w", err)
	}

	candidates, err := matching.FindMatches(userID, skills, users)
	if err != nil {
		return nil, err
	}
	metrics.MatchDuration.Observe(time.Since(start).Seconds())
	metrics.MatchCandidates.Observe(float64(len(candidates)))

	if useCache {
		if err := s.cache.Set(ctx, version, userID, candidates); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("match cache write failed")
		}
	}

	s.logger.Debug().Str("user_id", userID).Int("candidates", len(candidates)).Int("catalog", len(skills)).Msg("matches computed")
	return candidates, nil
}
