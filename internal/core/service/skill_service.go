package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/skillbarter/swap-api/internal/core/domain"
	"github.com/skillbarter/swap-api/internal/core/ports"
)

// SkillService manages skill listings. Any change to the catalog can alter
// every user's matches, so the whole match cache is dropped on writes.
type SkillService struct {
	skills ports.SkillRepository
	users  ports.UserRepository
	cache  ports.MatchCache // optional
	logger zerolog.Logger
}

func NewSkillService(skills ports.SkillRepository, users ports.UserRepository, cache ports.MatchCache, logger zerolog.Logger) *SkillService {
	return &SkillService{skills: skills, users: users, cache: cache, logger: logger}
}

func (s *SkillService) List(ctx context.Context, filter ports.SkillFilter) ([]domain.Skill, error) {
	if filter.Type != "" {
		t := domain.SkillType(strings.ToUpper(string(filter.Type)))
		if !t.IsValid() {
			return nil, domain.Invalid("type", "must be OFFERED or NEEDED")
		}
		filter.Type = t
	}
	return s.skills.List(ctx, filter)
}

func (s *SkillService) Create(ctx context.Context, in ports.CreateSkillInput) (*domain.Skill, error) {
	name := strings.TrimSpace(in.SkillName)
	category := strings.TrimSpace(in.SkillCategory)
	switch {
	case strings.TrimSpace(in.UserID) == "":
		return nil, domain.Invalid("user_id", "is required")
	case name == "":
		return nil, domain.Invalid("skill_name", "is required")
	case category == "":
		return nil, domain.Invalid("skill_category", "is required")
	}
	level, ok := parseSkillLevel(in.SkillLevel)
	if !ok {
		return nil, domain.Invalid("skill_level", "must be Beginner, Intermediate, or Expert")
	}
	typ := domain.SkillType(strings.ToUpper(strings.TrimSpace(in.Type)))
	if !typ.IsValid() {
		return nil, domain.Invalid("type", "must be OFFERED or NEEDED")
	}

	owner, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !owner.IsActive {
		return nil, domain.ErrAccountSuspended
	}

	skill := &domain.Skill{
		ID:            uuid.NewString(),
		UserID:        owner.ID,
		SkillName:     name,
		SkillCategory: category,
		SkillLevel:    level,
		Type:          typ,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.skills.Create(ctx, skill); err != nil {
		return nil, err
	}

	s.invalidateMatches(ctx)
	s.logger.Info().Str("skill_id", skill.ID).Str("user_id", skill.UserID).Str("type", string(skill.Type)).Msg("skill created")
	return skill, nil
}

func (s *SkillService) Delete(ctx context.Context, id, actorID, actorRole string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Invalid("id", "is required")
	}
	skill, err := s.skills.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if skill.UserID != actorID && actorRole != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if err := s.skills.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateMatches(ctx)
	s.logger.Info().Str("skill_id", id).Str("actor_id", actorID).Msg("skill deleted")
	return nil
}

func (s *SkillService) invalidateMatches(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate match cache")
	}
}

func parseSkillLevel(raw string) (domain.SkillLevel, bool) {
	raw = strings.TrimSpace(raw)
	for _, l := range []domain.SkillLevel{domain.LevelBeginner, domain.LevelIntermediate, domain.LevelExpert} {
		if strings.EqualFold(raw, string(l)) {
			return l, true
		}
	}
	return "", false
}
