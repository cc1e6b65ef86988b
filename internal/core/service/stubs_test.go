package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/skillbarter/swap-api/internal/core/domain"
	"github.com/skillbarter/swap-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID  map[string]*domain.User
	order []string
	err   error // if set, every call returns this error
}

func newStubUserRepo(users ...domain.User) *stubUserRepo {
	r := &stubUserRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		clone := u
		r.byID[u.ID] = &clone
		r.order = append(r.order, u.ID)
	}
	return r
}

func (r *stubUserRepo) List(_ context.Context, f ports.UserFilter) ([]domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []domain.User{}
	for _, id := range r.order {
		u := r.byID[id]
		if f.Active != nil && u.IsActive != *f.Active {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.byID {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.err != nil {
		return r.err
	}
	for _, u := range r.byID {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrUserExists
		}
	}
	clone := *user
	r.byID[user.ID] = &clone
	r.order = append(r.order, user.ID)
	return nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.IsActive = active
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Count(ctx context.Context, f ports.UserFilter) (int64, error) {
	users, err := r.List(ctx, f)
	return int64(len(users)), err
}

// ---------------------------------------------------------------------------
// Skills
// ---------------------------------------------------------------------------

type stubSkillRepo struct {
	skills  []domain.Skill
	deleted []string
	err     error
	onList  func() // runs at the start of every List
}

func (r *stubSkillRepo) List(_ context.Context, f ports.SkillFilter) ([]domain.Skill, error) {
	if r.onList != nil {
		r.onList()
	}
	if r.err != nil {
		return nil, r.err
	}
	out := []domain.Skill{}
	for _, s := range r.skills {
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
	return out, nil
}

func (r *stubSkillRepo) FindByID(_ context.Context, id string) (*domain.Skill, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, s := range r.skills {
		if s.ID == id {
			clone := s
			return &clone, nil
		}
	}
	return nil, domain.ErrSkillNotFound
}

func (r *stubSkillRepo) Create(_ context.Context, skill *domain.Skill) error {
	if r.err != nil {
		return r.err
	}
	r.skills = append(r.skills, *skill)
	return nil
}

func (r *stubSkillRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	for i, s := range r.skills {
		if s.ID == id {
			r.skills = append(r.skills[:i], r.skills[i+1:]...)
			r.deleted = append(r.deleted, id)
			return nil
		}
	}
	return domain.ErrSkillNotFound
}

func (r *stubSkillRepo) Count(ctx context.Context, f ports.SkillFilter) (int64, error) {
	skills, err := r.List(ctx, f)
	return int64(len(skills)), err
}

// ---------------------------------------------------------------------------
// Swaps
// ---------------------------------------------------------------------------

// stubSwapRepo mirrors the compare-and-swap contract of the real stores.
type stubSwapRepo struct {
	mu    sync.Mutex
	byID  map[string]*domain.SwapRequest
	order []string

	// findBarrier, when set, makes every FindByID wait until all expected
	// readers have arrived, forcing concurrent transitions to read the same state.
	findBarrier *sync.WaitGroup
	// openBarrier does the same for FindOpen, lining concurrent creates up
	// just before the insert.
	openBarrier *sync.WaitGroup
	updateErr   error
}

func newStubSwapRepo(swaps ...domain.SwapRequest) *stubSwapRepo {
	r := &stubSwapRepo{byID: make(map[string]*domain.SwapRequest)}
	for _, s := range swaps {
		clone := s
		r.byID[s.ID] = &clone
		r.order = append(r.order, s.ID)
	}
	return r
}

func (r *stubSwapRepo) Create(_ context.Context, s *domain.SwapRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if s.IdempotencyKey != "" && existing.IdempotencyKey == s.IdempotencyKey {
			return domain.ErrIdempotencyKeyUsed
		}
	}
	for _, e := range r.byID {
		if e.State.IsOpen() && e.UserAID == s.UserAID && e.UserBID == s.UserBID && e.SkillAID == s.SkillAID && e.SkillBID == s.SkillBID {
			return domain.ErrDuplicateSwap
		}
	}
	clone := *s
	r.byID[s.ID] = &clone
	r.order = append(r.order, s.ID)
	return nil
}

func (r *stubSwapRepo) FindByID(_ context.Context, id string) (*domain.SwapRequest, error) {
	if r.findBarrier != nil {
		r.findBarrier.Done()
		r.findBarrier.Wait()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSwapNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSwapRepo) FindByIdempotencyKey(_ context.Context, key string) (*domain.SwapRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.byID {
		if key != "" && s.IdempotencyKey == key {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrSwapNotFound
}

func (r *stubSwapRepo) FindOpen(_ context.Context, userAID, userBID, skillAID, skillBID string) (*domain.SwapRequest, error) {
	if r.openBarrier != nil {
		r.openBarrier.Done()
		r.openBarrier.Wait()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.byID {
		if s.UserAID == userAID && s.UserBID == userBID && s.SkillAID == skillAID && s.SkillBID == skillBID && s.State.IsOpen() {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrSwapNotFound
}

func (r *stubSwapRepo) UpdateState(_ context.Context, id string, expected, next domain.SwapState) (*domain.SwapRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSwapNotFound
	}
	if s.State != expected {
		return nil, domain.ErrConflict
	}
	s.State = next
	s.UpdatedAt = time.Now().UTC()
	clone := *s
	return &clone, nil
}

func (r *stubSwapRepo) List(_ context.Context, f ports.SwapFilter) ([]domain.SwapRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.SwapRequest{}
	for _, id := range r.order {
		s, ok := r.byID[id]
		if !ok {
			continue
		}
		if f.UserID != "" && !s.IsParticipant(f.UserID) {
			continue
		}
		if f.State != "" && s.State != f.State {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSwapRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrSwapNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubSwapRepo) CountByState(_ context.Context) (map[domain.SwapState]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[domain.SwapState]int64)
	for _, s := range r.byID {
		out[s.State]++
	}
	return out, nil
}

func (r *stubSwapRepo) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.byID {
		if !s.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *stubSwapRepo) state(id string) domain.SwapState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id].State
}

// ---------------------------------------------------------------------------
// Events, cache, publisher, notifier
// ---------------------------------------------------------------------------

type stubSwapEventRepo struct {
	mu        sync.Mutex
	inserted  []domain.SwapEvent
	insertErr error
}

func (r *stubSwapEventRepo) Insert(_ context.Context, e *domain.SwapEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, *e)
	return nil
}

func (r *stubSwapEventRepo) ListBySwap(_ context.Context, swapID string) ([]domain.SwapEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.SwapEvent{}
	for _, e := range r.inserted {
		if e.SwapID == swapID {
			out = append(out, e)
		}
	}
	return out, nil
}

// stubMatchCache keeps only the current version's entries; writes under an
// older version are counted and dropped, as the real cache makes them
// unreachable.
type stubMatchCache struct {
	version       int64
	entries       map[string][]domain.MatchCandidate
	getErr        error
	sets          int
	staleSets     int
	invalidations int
}

func newStubMatchCache() *stubMatchCache {
	return &stubMatchCache{entries: make(map[string][]domain.MatchCandidate)}
}

func (c *stubMatchCache) Version(context.Context) (int64, error) {
	return c.version, nil
}

func (c *stubMatchCache) Get(_ context.Context, version int64, userID string) ([]domain.MatchCandidate, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	if version != c.version {
		return nil, false, nil
	}
	v, ok := c.entries[userID]
	return v, ok, nil
}

func (c *stubMatchCache) Set(_ context.Context, version int64, userID string, candidates []domain.MatchCandidate) error {
	c.sets++
	if version != c.version {
		c.staleSets++
		return nil
	}
	c.entries[userID] = candidates
	return nil
}

func (c *stubMatchCache) Invalidate(context.Context) error {
	c.invalidations++
	c.version++
	c.entries = make(map[string][]domain.MatchCandidate)
	return nil
}

type stubPublisher struct {
	mu     sync.Mutex
	events []domain.SwapEvent
}

func (p *stubPublisher) Publish(e domain.SwapEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *stubPublisher) published() []domain.SwapEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.SwapEvent(nil), p.events...)
}

type stubNotifier struct {
	online map[string]bool
	err    error
	sent   map[string][]ports.Notification
}

func newStubNotifier(online ...string) *stubNotifier {
	n := &stubNotifier{online: make(map[string]bool), sent: make(map[string][]ports.Notification)}
	for _, id := range online {
		n.online[id] = true
	}
	return n
}

func (n *stubNotifier) Notify(userID string, msg ports.Notification) error {
	if n.err != nil {
		return n.err
	}
	if !n.online[userID] {
		return ports.ErrRecipientOffline
	}
	n.sent[userID] = append(n.sent[userID], msg)
	return nil
}
