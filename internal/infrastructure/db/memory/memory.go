// Package memory provides process-local implementations of the repository
// ports. They honour the same contracts as the Mongo and Postgres stores,
// including compare-and-swap state updates, and back the "memory" storage
// driver and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/skillbarter/swap-api/internal/core/domain"
	"github.com/skillbarter/swap-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type UserRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: make(map[string]domain.User)}
}

func (r *UserRepository) List(_ context.Context, f ports.UserFilter) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		if f.Active != nil && u.IsActive != *f.Active {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byID {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrUserExists
		}
	}
	r.byID[user.ID] = *user
	return nil
}

func (r *UserRepository) SetActive(_ context.Context, id string, active bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.IsActive = active
	u.UpdatedAt = time.Now().UTC()
	r.byID[id] = u
	return &u, nil
}

func (r *UserRepository) Count(ctx context.Context, f ports.UserFilter) (int64, error) {
	users, err := r.List(ctx, f)
	return int64(len(users)), err
}

// ---------------------------------------------------------------------------
// Skills
// ---------------------------------------------------------------------------

type SkillRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.Skill
}

func NewSkillRepository() *SkillRepository {
	return &SkillRepository{byID: make(map[string]domain.Skill)}
}

func (r *SkillRepository) List(_ context.Context, f ports.SkillFilter) ([]domain.Skill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Skill, 0, len(r.byID))
	for _, s := range r.byID {
		if f.UserID != "" && s.UserID != f.UserID {
			continue
		}
		if f.ExcludeUserID != "" && s.UserID == f.ExcludeUserID {
			continue
		}
		if f.Type != "" && s.Type != f.Type {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *SkillRepository) FindByID(_ context.Context, id string) (*domain.Skill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSkillNotFound
	}
	return &s, nil
}

func (r *SkillRepository) Create(_ context.Context, skill *domain.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[skill.ID] = *skill
	return nil
}

func (r *SkillRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrSkillNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *SkillRepository) Count(ctx context.Context, f ports.SkillFilter) (int64, error) {
	skills, err := r.List(ctx, f)
	return int64(len(skills)), err
}

// ---------------------------------------------------------------------------
// Swaps
// ---------------------------------------------------------------------------

type SwapRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.SwapRequest
}

func NewSwapRepository() *SwapRepository {
	return &SwapRepository{byID: make(map[string]domain.SwapRequest)}
}

// Create checks both uniqueness rules and inserts under one write lock, the
// same guarantee the partial unique indexes give the database stores.
func (r *SwapRepository) Create(_ context.Context, s *domain.SwapRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if s.IdempotencyKey != "" && existing.IdempotencyKey == s.IdempotencyKey {
			return domain.ErrIdempotencyKeyUsed
		}
	}
	for _, existing := range r.byID {
		if existing.State.IsOpen() && samePair(existing, *s) {
			return domain.ErrDuplicateSwap
		}
	}
	r.byID[s.ID] = *s
	return nil
}

func samePair(a, b domain.SwapRequest) bool {
	return a.UserAID == b.UserAID && a.UserBID == b.UserBID &&
		a.SkillAID == b.SkillAID && a.SkillBID == b.SkillBID
}

func (r *SwapRepository) FindByID(_ context.Context, id string) (*domain.SwapRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSwapNotFound
	}
	return &s, nil
}

func (r *SwapRepository) FindByIdempotencyKey(_ context.Context, key string) (*domain.SwapRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.byID {
		if key != "" && s.IdempotencyKey == key {
			return &s, nil
		}
	}
	return nil, domain.ErrSwapNotFound
}

func (r *SwapRepository) FindOpen(_ context.Context, userAID, userBID, skillAID, skillBID string) (*domain.SwapRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.byID {
		if s.UserAID == userAID && s.UserBID == userBID &&
			s.SkillAID == skillAID && s.SkillBID == skillBID && s.State.IsOpen() {
			return &s, nil
		}
	}
	return nil, domain.ErrSwapNotFound
}

// UpdateState applies the transition under the write lock, so the
// compare and the write are a single atomic step.
func (r *SwapRepository) UpdateState(_ context.Context, id string, expected, next domain.SwapState) (*domain.SwapRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSwapNotFound
	}
	if s.State != expected {
		return nil, domain.ErrConflict
	}
	s.State = next
	s.UpdatedAt = time.Now().UTC()
	r.byID[id] = s
	return &s, nil
}

func (r *SwapRepository) List(_ context.Context, f ports.SwapFilter) ([]domain.SwapRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.SwapRequest, 0, len(r.byID))
	for _, s := range r.byID {
		if f.UserID != "" && !s.IsParticipant(f.UserID) {
			continue
		}
		if f.State != "" && s.State != f.State {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *SwapRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrSwapNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *SwapRepository) CountByState(_ context.Context) (map[domain.SwapState]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[domain.SwapState]int64)
	for _, s := range r.byID {
		out[s.State]++
	}
	return out, nil
}

func (r *SwapRepository) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, s := range r.byID {
		if !s.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Swap events
// ---------------------------------------------------------------------------

type SwapEventRepository struct {
	mu     sync.RWMutex
	bySwap map[string][]domain.SwapEvent
}

func NewSwapEventRepository() *SwapEventRepository {
	return &SwapEventRepository{bySwap: make(map[string][]domain.SwapEvent)}
}

func (r *SwapEventRepository) Insert(_ context.Context, e *domain.SwapEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bySwap[e.SwapID] = append(r.bySwap[e.SwapID], *e)
	return nil
}

func (r *SwapEventRepository) ListBySwap(_ context.Context, swapID string) ([]domain.SwapEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.SwapEvent, len(r.bySwap[swapID]))
	copy(out, r.bySwap[swapID])
	return out, nil
}
