package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/skillbarter/swap-api/internal/core/domain"
	"github.com/skillbarter/swap-api/internal/core/ports"
)

// recentWindow is the look-back period for PlatformMetrics.RecentSwaps.
const recentWindow = 7 * 24 * time.Hour

type AdminService struct {
	users  ports.UserRepository
	skills ports.SkillRepository
	swaps  ports.SwapRepository
	cache  ports.MatchCache // optional
	logger zerolog.Logger
	now    func() time.Time
}

func NewAdminService(users ports.UserRepository, skills ports.SkillRepository, swaps ports.SwapRepository, cache ports.MatchCache, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, skills: skills, swaps: swaps, cache: cache, logger: logger, now: time.Now}
}

// Metrics aggregates the dashboard counters. Every lifecycle state is present
// in SwapsByState, zero when no swap is in it.
func (s *AdminService) Metrics(ctx context.Context) (*domain.PlatformMetrics, error) {
	active, suspended := true, false
	m := &domain.PlatformMetrics{SwapsByState: make(map[domain.SwapState]int64, len(domain.AllSwapStates))}

	counts := []struct {
		dst *int64
		fn  func() (int64, error)
	}{
		{&m.TotalUsers, func() (int64, error) { return s.users.Count(ctx, ports.UserFilter{}) }},
		{&m.ActiveUsers, func() (int64, error) { return s.users.Count(ctx, ports.UserFilter{Active: &active}) }},
		{&m.SuspendedUsers, func() (int64, error) { return s.users.Count(ctx, ports.UserFilter{Active: &suspended}) }},
		{&m.TotalSkills, func() (int64, error) { return s.skills.Count(ctx, ports.SkillFilter{}) }},
		{&m.OfferedSkills, func() (int64, error) { return s.skills.Count(ctx, ports.SkillFilter{Type: domain.SkillOffered}) }},
		{&m.NeededSkills, func() (int64, error) { return s.skills.Count(ctx, ports.SkillFilter{Type: domain.SkillNeeded}) }},
		{&m.RecentSwaps, func() (int64, error) { return s.swaps.CountCreatedSince(ctx, s.now().Add(-recentWindow)) }},
	}
	for _, c := range counts {
		n, err := c.fn()
		if err != nil {
			return nil, fmt.Errorf("platform metrics: %w", err)
		}
		*c.dst = n
	}

	byState, err := s.swaps.CountByState(ctx)
	if err != nil {
		return nil, fmt.Errorf("platform metrics: %w", err)
	}
	for _, st := range domain.AllSwapStates {
		m.SwapsByState[st] = byState[st]
	}
	for _, st := range domain.OpenSwapStates {
		m.ActiveSwaps += byState[st]
	}
	m.CompletedSwaps = byState[domain.SwapCompleted]

	return m, nil
}

// Users lists every account, optionally with its listings grouped by type.
func (s *AdminService) Users(ctx context.Context, includeSkills bool) ([]ports.UserWithSkills, error) {
	users, err := s.users.List(ctx, ports.UserFilter{})
	if err != nil {
		return nil, err
	}

	var grouped map[string]*ports.UserSkills
	if includeSkills {
		skills, err := s.skills.List(ctx, ports.SkillFilter{})
		if err != nil {
			return nil, err
		}
		grouped = make(map[string]*ports.UserSkills, len(users))
		for _, sk := range skills {
			g, ok := grouped[sk.UserID]
			if !ok {
				g = &ports.UserSkills{Offered: []domain.Skill{}, Needed: []domain.Skill{}}
				grouped[sk.UserID] = g
			}
			if sk.Type == domain.SkillOffered {
				g.Offered = append(g.Offered, sk)
			} else {
				g.Needed = append(g.Needed, sk)
			}
		}
	}

	out := make([]ports.UserWithSkills, 0, len(users))
	for _, u := range users {
		item := ports.UserWithSkills{User: u}
		if includeSkills {
			item.Skills = grouped[u.ID]
			if item.Skills == nil {
				item.Skills = &ports.UserSkills{Offered: []domain.Skill{}, Needed: []domain.Skill{}}
			}
		}
		out = append(out, item)
	}
	return out, nil
}

// SetUserActive suspends or reactivates an account. Cached match lists embed
// user summaries and are dropped.
func (s *AdminService) SetUserActive(ctx context.Context, id string, active bool) (*domain.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.Invalid("id", "is required")
	}
	user, err := s.users.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn().Err(err).Str("user_id", id).Msg("failed to invalidate match cache")
		}
	}
	s.logger.Info().Str("user_id", id).Bool("is_active", active).Msg("user status updated")
	return user, nil
}
