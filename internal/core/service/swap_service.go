package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/skillbarter/swap-api/internal/core/domain"
	"github.com/skillbarter/swap-api/internal/core/ports"
	"github.com/skillbarter/swap-api/internal/infrastructure/metrics"
)

const unknownName = "Unknown"

// SwapService is the swap lifecycle manager: it creates proposals and drives
// them through the state machine defined in domain.
type SwapService struct {
	swaps     ports.SwapRepository
	skills    ports.SkillRepository
	users     ports.UserRepository
	events    ports.SwapEventRepository
	publisher ports.SwapEventPublisher
	logger    zerolog.Logger
}

func NewSwapService(
	swaps ports.SwapRepository,
	skills ports.SkillRepository,
	users ports.UserRepository,
	events ports.SwapEventRepository,
	publisher ports.SwapEventPublisher,
	logger zerolog.Logger,
) *SwapService {
	return &SwapService{
		swaps:     swaps,
		skills:    skills,
		users:     users,
		events:    events,
		publisher: publisher,
		logger:    logger,
	}
}

// Create proposes a swap from the caller to UserB. If an idempotency key is
// provided and already seen for this caller, the earlier swap is returned
// without side effects.
func (s *SwapService) Create(ctx context.Context, in ports.CreateSwapInput) (*ports.CreateSwapResult, error) {
	if err := validateCreateSwap(in); err != nil {
		return nil, err
	}

	if res, err := s.replay(ctx, in); res != nil || err != nil {
		return res, err
	}

	proposer, err := s.users.FindByID(ctx, in.ProposerID)
	if err != nil {
		return nil, err
	}
	if !proposer.IsActive {
		return nil, domain.ErrAccountSuspended
	}
	recipient, err := s.users.FindByID(ctx, in.UserBID)
	if err != nil {
		return nil, err
	}
	if !recipient.IsActive {
		return nil, domain.Invalid("user_b_id", "account is suspended")
	}

	if err := s.checkOffered(ctx, in.SkillAID, in.ProposerID, "skill_a_id"); err != nil {
		return nil, err
	}
	if err := s.checkOffered(ctx, in.SkillBID, in.UserBID, "skill_b_id"); err != nil {
		return nil, err
	}

	_, err = s.swaps.FindOpen(ctx, in.ProposerID, in.UserBID, in.SkillAID, in.SkillBID)
	switch {
	case err == nil:
		metrics.SwapsCreatedTotal.WithLabelValues(metrics.ResultDuplicate).Inc()
		return nil, domain.ErrDuplicateSwap
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	now := time.Now().UTC()
	swap := &domain.SwapRequest{
		ID:             uuid.NewString(),
		UserAID:        in.ProposerID,
		UserBID:        in.UserBID,
		SkillAID:       in.SkillAID,
		SkillBID:       in.SkillBID,
		MatchScore:     in.MatchScore,
		State:          domain.SwapProposed,
		Message:        strings.TrimSpace(in.Message),
		IdempotencyKey: in.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.swaps.Create(ctx, swap); err != nil {
		// A concurrent request with the same key may have won the insert.
		if errors.Is(err, domain.ErrIdempotencyKeyUsed) || errors.Is(err, domain.ErrDuplicateSwap) {
			if res, rerr := s.replay(ctx, in); res != nil || rerr != nil {
				return res, rerr
			}
			if errors.Is(err, domain.ErrDuplicateSwap) {
				metrics.SwapsCreatedTotal.WithLabelValues(metrics.ResultDuplicate).Inc()
			}
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to create swap")
		return nil, err
	}

	metrics.SwapsCreatedTotal.WithLabelValues(metrics.ResultCreated).Inc()
	s.publish(swap, "", in.ProposerID)
	s.logger.Info().Str("swap_id", swap.ID).Str("user_a_id", swap.UserAID).Str("user_b_id", swap.UserBID).Msg("swap proposed")

	return &ports.CreateSwapResult{Swap: swap}, nil
}

// replay returns the swap stored under the caller's idempotency key, or nil
// when the key is unset or unseen. A key held by another proposer is
// ErrIdempotencyKeyUsed.
func (s *SwapService) replay(ctx context.Context, in ports.CreateSwapInput) (*ports.CreateSwapResult, error) {
	if in.IdempotencyKey == "" {
		return nil, nil
	}
	existing, err := s.swaps.FindByIdempotencyKey(ctx, in.IdempotencyKey)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, err
	case existing.UserAID != in.ProposerID:
		return nil, domain.ErrIdempotencyKeyUsed
	}
	s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Str("swap_id", existing.ID).Msg("idempotent replay")
	metrics.SwapsCreatedTotal.WithLabelValues(metrics.ResultReplayed).Inc()
	return &ports.CreateSwapResult{Swap: existing, AlreadyExisted: true}, nil
}

func validateCreateSwap(in ports.CreateSwapInput) error {
	required := []struct{ field, value string }{
		{"user_a_id", in.ProposerID},
		{"user_b_id", in.UserBID},
		{"skill_a_id", in.SkillAID},
		{"skill_b_id", in.SkillBID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return domain.Invalid(r.field, "is required")
		}
	}
	if in.ProposerID == in.UserBID {
		return domain.Invalid("user_b_id", "cannot propose a swap to yourself")
	}
	if in.MatchScore < 0 || in.MatchScore > 1 {
		return domain.Invalid("match_score", "must be between 0 and 1")
	}
	return nil
}

// checkOffered verifies that skillID exists, belongs to ownerID and is an OFFERED listing.
func (s *SwapService) checkOffered(ctx context.Context, skillID, ownerID, field string) error {
	skill, err := s.skills.FindByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Invalid(field, "skill does not exist")
		}
		return err
	}
	if skill.UserID != ownerID {
		return domain.Invalid(field, "skill is not owned by the participant")
	}
	if skill.Type != domain.SkillOffered {
		return domain.Invalid(field, "skill must be an OFFERED listing")
	}
	return nil
}

// Get returns a swap visible to the caller: participants and admins only.
func (s *SwapService) Get(ctx context.Context, q ports.SwapQuery) (*domain.SwapRequest, error) {
	if strings.TrimSpace(q.SwapID) == "" {
		return nil, domain.Invalid("id", "is required")
	}
	swap, err := s.swaps.FindByID(ctx, q.SwapID)
	if err != nil {
		return nil, err
	}
	if q.ActorRole != domain.RoleAdmin && !swap.IsParticipant(q.ActorID) {
		return nil, domain.ErrForbidden
	}
	return swap, nil
}

// List returns swaps newest first, enriched with participant and skill names.
func (s *SwapService) List(ctx context.Context, in ports.ListSwapsInput) ([]ports.SwapDetail, error) {
	filter := ports.SwapFilter{}
	if !in.All {
		if strings.TrimSpace(in.ActorID) == "" {
			return nil, domain.Invalid("user_id", "is required")
		}
		filter.UserID = in.ActorID
	}
	if raw := strings.TrimSpace(in.State); raw != "" && !strings.EqualFold(raw, "ALL") {
		state, err := domain.ParseSwapState(raw)
		if err != nil {
			return nil, err
		}
		filter.State = state
	}

	swaps, err := s.swaps.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list swaps: %w", err)
	}
	if len(swaps) == 0 {
		return []ports.SwapDetail{}, nil
	}

	users, err := s.users.List(ctx, ports.UserFilter{})
	if err != nil {
		return nil, fmt.Errorf("list swaps: load users: %w", err)
	}
	skills, err := s.skills.List(ctx, ports.SkillFilter{})
	if err != nil {
		return nil, fmt.Errorf("list swaps: load skills: %w", err)
	}

	userByID := make(map[string]domain.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}
	skillName := make(map[string]string, len(skills))
	for _, sk := range skills {
		skillName[sk.ID] = sk.SkillName
	}
	nameOf := func(m map[string]string, id string) string {
		if n, ok := m[id]; ok {
			return n
		}
		return unknownName
	}

	out := make([]ports.SwapDetail, 0, len(swaps))
	for _, sw := range swaps {
		a, b := userByID[sw.UserAID], userByID[sw.UserBID]
		out = append(out, ports.SwapDetail{
			SwapRequest: sw,
			UserAName:   a.Name,
			UserBName:   b.Name,
			UserAActive: a.IsActive,
			UserBActive: b.IsActive,
			SkillAName:  nameOf(skillName, sw.SkillAID),
			SkillBName:  nameOf(skillName, sw.SkillBID),
		})
	}
	return out, nil
}

// Transition moves a swap to the requested state. Only participants and
// admins get past the first check. The stored state is then checked against
// the transition table and the authorization policy, and written with a
// compare-and-swap; a concurrent change yields domain.ErrConflict.
func (s *SwapService) Transition(ctx context.Context, in ports.TransitionInput) (*domain.SwapRequest, error) {
	if strings.TrimSpace(in.SwapID) == "" {
		return nil, domain.Invalid("id", "is required")
	}
	target, err := domain.ParseSwapState(in.Target)
	if err != nil {
		return nil, err
	}

	swap, err := s.swaps.FindByID(ctx, in.SwapID)
	if err != nil {
		observeTransition("", target, err)
		return nil, err
	}

	// Outsiders learn nothing about the swap, not even whether the jump is legal.
	if in.ActorRole != domain.RoleAdmin && !swap.IsParticipant(in.ActorID) {
		observeTransition(swap.State, target, domain.ErrForbidden)
		s.logger.Warn().Str("swap_id", swap.ID).Str("actor_id", in.ActorID).Str("to", string(target)).Msg("transition by non-participant")
		return nil, domain.ErrForbidden
	}
	if err := s.checkActorActive(ctx, in.ActorID, in.ActorRole); err != nil {
		observeTransition(swap.State, target, err)
		return nil, err
	}

	if !swap.State.CanTransitionTo(target) {
		err := &domain.InvalidTransitionError{From: swap.State, To: target}
		observeTransition(swap.State, target, err)
		return nil, err
	}

	if err := domain.AuthorizeTransition(swap, in.ActorID, in.ActorRole, target); err != nil {
		observeTransition(swap.State, target, err)
		s.logger.Warn().Str("swap_id", swap.ID).Str("actor_id", in.ActorID).Str("to", string(target)).Msg("transition forbidden")
		return nil, err
	}

	updated, err := s.swaps.UpdateState(ctx, swap.ID, swap.State, target)
	if err != nil {
		observeTransition(swap.State, target, err)
		if errors.Is(err, domain.ErrConflict) {
			s.logger.Info().Str("swap_id", swap.ID).Str("from", string(swap.State)).Str("to", string(target)).Msg("transition lost a concurrent update")
		}
		return nil, err
	}

	observeTransition(swap.State, target, nil)
	s.publish(updated, swap.State, in.ActorID)
	s.logger.Info().
		Str("swap_id", updated.ID).
		Str("from", string(swap.State)).
		Str("to", string(target)).
		Str("actor_id", in.ActorID).
		Msg("swap transitioned")

	return updated, nil
}

// checkActorActive refuses transitions from suspended accounts. Admins are
// exempt so they can still terminate swaps.
func (s *SwapService) checkActorActive(ctx context.Context, actorID, role string) error {
	if role == domain.RoleAdmin {
		return nil
	}
	actor, err := s.users.FindByID(ctx, actorID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.ErrForbidden
	case err != nil:
		return err
	case !actor.IsActive:
		return domain.ErrAccountSuspended
	}
	return nil
}

// ForceTerminate rejects an open swap on behalf of an administrator.
func (s *SwapService) ForceTerminate(ctx context.Context, swapID, adminID string) (*domain.SwapRequest, error) {
	return s.Transition(ctx, ports.TransitionInput{
		SwapID:    swapID,
		Target:    string(domain.SwapRejected),
		ActorID:   adminID,
		ActorRole: domain.RoleAdmin,
	})
}

// Delete removes a swap. The audit trail is kept.
func (s *SwapService) Delete(ctx context.Context, swapID string) error {
	if strings.TrimSpace(swapID) == "" {
		return domain.Invalid("id", "is required")
	}
	if err := s.swaps.Delete(ctx, swapID); err != nil {
		return err
	}
	s.logger.Info().Str("swap_id", swapID).Msg("swap deleted")
	return nil
}

// Events returns the audit trail of a swap visible to the caller.
func (s *SwapService) Events(ctx context.Context, q ports.SwapQuery) ([]domain.SwapEvent, error) {
	if _, err := s.Get(ctx, q); err != nil {
		return nil, err
	}
	return s.events.ListBySwap(ctx, q.SwapID)
}

func (s *SwapService) publish(swap *domain.SwapRequest, from domain.SwapState, actorID string) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(domain.SwapEvent{
		SwapID:    swap.ID,
		UserAID:   swap.UserAID,
		UserBID:   swap.UserBID,
		From:      from,
		To:        swap.State,
		ActorID:   actorID,
		Timestamp: swap.UpdatedAt,
	})
}

func observeTransition(from, to domain.SwapState, err error) {
	result := metrics.ResultOK
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidTransition):
		result = metrics.ResultInvalid
	case errors.Is(err, domain.ErrForbidden):
		result = metrics.ResultForbidden
	case errors.Is(err, domain.ErrConflict):
		result = metrics.ResultConflict
	case errors.Is(err, domain.ErrNotFound):
		result = metrics.ResultNotFound
	default:
		result = metrics.ResultError
	}
	metrics.SwapTransitionsTotal.WithLabelValues(string(from), string(to), result).Inc()
}
