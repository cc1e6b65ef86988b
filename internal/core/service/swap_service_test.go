package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/skillbarter/swap-api/internal/core/domain"
	"github.com/skillbarter/swap-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func fixtureUsers() *stubUserRepo {
	return newStubUserRepo(
		domain.User{ID: "alice", Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser, IsActive: true},
		domain.User{ID: "bob", Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser, IsActive: true},
		domain.User{ID: "carol", Name: "Carol", Email: "carol@example.com", Role: domain.RoleUser, IsActive: false},
		domain.User{ID: "root", Name: "Root", Email: "root@example.com", Role: domain.RoleAdmin, IsActive: true},
	)
}

func fixtureSkills() *stubSkillRepo {
	return &stubSkillRepo{skills: []domain.Skill{
		{ID: "a-off", UserID: "alice", SkillName: "UI Design", SkillCategory: "Design", SkillLevel: domain.LevelExpert, Type: domain.SkillOffered},
		{ID: "a-need", UserID: "alice", SkillName: "JavaScript", SkillCategory: "Programming", SkillLevel: domain.LevelBeginner, Type: domain.SkillNeeded},
		{ID: "b-off", UserID: "bob", SkillName: "JavaScript", SkillCategory: "Programming", SkillLevel: domain.LevelExpert, Type: domain.SkillOffered},
		{ID: "c-off", UserID: "carol", SkillName: "Guitar", SkillCategory: "Music", SkillLevel: domain.LevelExpert, Type: domain.SkillOffered},
	}}
}

type swapFixture struct {
	svc       *SwapService
	users     *stubUserRepo
	swaps     *stubSwapRepo
	events    *stubSwapEventRepo
	publisher *stubPublisher
}

func newSwapFixture(swaps ...domain.SwapRequest) swapFixture {
	f := swapFixture{
		users:     fixtureUsers(),
		swaps:     newStubSwapRepo(swaps...),
		events:    &stubSwapEventRepo{},
		publisher: &stubPublisher{},
	}
	f.svc = NewSwapService(f.swaps, fixtureSkills(), f.users, f.events, f.publisher, zerolog.Nop())
	return f
}

func seededSwap(id string, state domain.SwapState) domain.SwapRequest {
	now := time.Now().UTC()
	return domain.SwapRequest{
		ID: id, UserAID: "alice", UserBID: "bob", SkillAID: "a-off", SkillBID: "b-off",
		MatchScore: 0.9, State: state, CreatedAt: now, UpdatedAt: now,
	}
}

func validCreateInput() ports.CreateSwapInput {
	return ports.CreateSwapInput{
		ProposerID: "alice",
		UserBID:    "bob",
		SkillAID:   "a-off",
		SkillBID:   "b-off",
		MatchScore: 0.95,
		Message:    " let's trade ",
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestSwapService_Create_Success(t *testing.T) {
	f := newSwapFixture()

	res, err := f.svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AlreadyExisted {
		t.Fatalf("fresh swap must not be flagged as replay")
	}
	swap := res.Swap
	if swap.ID == "" || swap.State != domain.SwapProposed {
		t.Fatalf("unexpected swap: %+v", swap)
	}
	if swap.Message != "let's trade" {
		t.Fatalf("expected trimmed message, got %q", swap.Message)
	}
	if got := f.swaps.state(swap.ID); got != domain.SwapProposed {
		t.Fatalf("expected persisted PROPOSED swap, got %s", got)
	}

	events := f.publisher.published()
	if len(events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(events))
	}
	if events[0].From != "" || events[0].To != domain.SwapProposed || events[0].ActorID != "alice" {
		t.Fatalf("unexpected event: %+v", events[0])
	}
}

func TestSwapService_Create_Validation(t *testing.T) {
	cases := map[string]func(in *ports.CreateSwapInput){
		"missing proposer":     func(in *ports.CreateSwapInput) { in.ProposerID = "" },
		"missing recipient":    func(in *ports.CreateSwapInput) { in.UserBID = " " },
		"missing skill a":      func(in *ports.CreateSwapInput) { in.SkillAID = "" },
		"missing skill b":      func(in *ports.CreateSwapInput) { in.SkillBID = "" },
		"self swap":            func(in *ports.CreateSwapInput) { in.UserBID = "alice"; in.SkillBID = "a-off" },
		"score above one":      func(in *ports.CreateSwapInput) { in.MatchScore = 1.2 },
		"negative score":       func(in *ports.CreateSwapInput) { in.MatchScore = -0.1 },
		"skill a not owned":    func(in *ports.CreateSwapInput) { in.SkillAID = "b-off" },
		"skill a is a need":    func(in *ports.CreateSwapInput) { in.SkillAID = "a-need" },
		"skill b unknown":      func(in *ports.CreateSwapInput) { in.SkillBID = "nope" },
		"suspended recipient":  func(in *ports.CreateSwapInput) { in.UserBID = "carol"; in.SkillBID = "c-off" },
		"skill b of other one": func(in *ports.CreateSwapInput) { in.SkillBID = "c-off" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newSwapFixture()
			in := validCreateInput()
			mutate(&in)

			_, err := f.svc.Create(context.Background(), in)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if len(f.publisher.published()) != 0 {
				t.Fatalf("nothing must be published on validation failure")
			}
		})
	}
}

func TestSwapService_Create_SuspendedProposer(t *testing.T) {
	f := newSwapFixture()
	in := validCreateInput()
	in.ProposerID = "carol"
	in.SkillAID = "c-off"

	if _, err := f.svc.Create(context.Background(), in); !errors.Is(err, domain.ErrAccountSuspended) {
		t.Fatalf("expected ErrAccountSuspended, got %v", err)
	}
}

func TestSwapService_Create_UnknownRecipient(t *testing.T) {
	f := newSwapFixture()
	in := validCreateInput()
	in.UserBID = "ghost"

	if _, err := f.svc.Create(context.Background(), in); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSwapService_Create_DuplicateOpenSwap(t *testing.T) {
	f := newSwapFixture(seededSwap("s1", domain.SwapAccepted))

	if _, err := f.svc.Create(context.Background(), validCreateInput()); !errors.Is(err, domain.ErrDuplicateSwap) {
		t.Fatalf("expected ErrDuplicateSwap, got %v", err)
	}
}

func TestSwapService_Create_AllowedAfterTerminalSwap(t *testing.T) {
	f := newSwapFixture(seededSwap("s1", domain.SwapRejected))

	if _, err := f.svc.Create(context.Background(), validCreateInput()); err != nil {
		t.Fatalf("terminal swaps must not block a new proposal: %v", err)
	}
}

func TestSwapService_Create_IdempotentReplay(t *testing.T) {
	f := newSwapFixture()
	in := validCreateInput()
	in.IdempotencyKey = "key-1"

	first, err := f.svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	second, err := f.svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if !second.AlreadyExisted || second.Swap.ID != first.Swap.ID {
		t.Fatalf("expected replay of %s, got %+v", first.Swap.ID, second)
	}
	if len(f.publisher.published()) != 1 {
		t.Fatalf("replay must not publish again")
	}

	other := in
	other.ProposerID = "bob"
	other.UserBID = "alice"
	other.SkillAID = "b-off"
	other.SkillBID = "a-off"
	if _, err := f.svc.Create(context.Background(), other); !errors.Is(err, domain.ErrIdempotencyKeyUsed) {
		t.Fatalf("expected ErrIdempotencyKeyUsed for key reuse by another user, got %v", err)
	}
}

func TestSwapService_Create_ConcurrentIdenticalProposals(t *testing.T) {
	cases := []struct {
		name string
		key  string
	}{
		{"without idempotency key", ""},
		{"with shared idempotency key", "key-race"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			const callers = 64
			f := newSwapFixture()
			barrier := &sync.WaitGroup{}
			barrier.Add(callers)
			f.swaps.openBarrier = barrier

			in := validCreateInput()
			in.IdempotencyKey = tc.key

			results := make([]*ports.CreateSwapResult, callers)
			errs := make([]error, callers)
			var wg sync.WaitGroup
			for i := 0; i < callers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i], errs[i] = f.svc.Create(context.Background(), in)
				}(i)
			}
			wg.Wait()

			created, replayed, duplicates := 0, 0, 0
			var createdID string
			for i, err := range errs {
				switch {
				case err == nil && !results[i].AlreadyExisted:
					created++
					createdID = results[i].Swap.ID
				case err == nil:
					replayed++
				case errors.Is(err, domain.ErrDuplicateSwap):
					duplicates++
				default:
					t.Fatalf("unexpected error: %v", err)
				}
			}
			if created != 1 {
				t.Fatalf("expected exactly one created swap, got %d", created)
			}
			if tc.key == "" && duplicates != callers-1 {
				t.Fatalf("expected %d duplicates, got %d", callers-1, duplicates)
			}
			if tc.key != "" {
				if replayed != callers-1 {
					t.Fatalf("expected %d replays, got %d (duplicates=%d)", callers-1, replayed, duplicates)
				}
				for i := range results {
					if results[i].Swap.ID != createdID {
						t.Fatalf("replay returned %s, want %s", results[i].Swap.ID, createdID)
					}
				}
			}
			if n := len(f.swaps.order); n != 1 {
				t.Fatalf("expected one stored swap, got %d", n)
			}
			if n := len(f.publisher.published()); n != 1 {
				t.Fatalf("expected one published event, got %d", n)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Transition
// ---------------------------------------------------------------------------

func TestSwapService_Transition_FullLifecycle(t *testing.T) {
	f := newSwapFixture(seededSwap("s1", domain.SwapProposed))
	ctx := context.Background()

	steps := []struct {
		actor  string
		target domain.SwapState
	}{
		{"bob", domain.SwapAccepted},
		{"alice", domain.SwapInProgress},
		{"bob", domain.SwapCompleted},
	}
	for _, st := range steps {
		got, err := f.svc.Transition(ctx, ports.TransitionInput{SwapID: "s1", Target: string(st.target), ActorID: st.actor, ActorRole: domain.RoleUser})
		if err != nil {
			t.Fatalf("%s -> %s: %v", st.actor, st.target, err)
		}
		if got.State != st.target {
			t.Fatalf("expected %s, got %s", st.target, got.State)
		}
	}

	events := f.publisher.published()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	want := [][2]domain.SwapState{
		{domain.SwapProposed, domain.SwapAccepted},
		{domain.SwapAccepted, domain.SwapInProgress},
		{domain.SwapInProgress, domain.SwapCompleted},
	}
	for i, e := range events {
		if e.From != want[i][0] || e.To != want[i][1] || e.SwapID != "s1" {
			t.Errorf("event %d: unexpected %+v", i, e)
		}
	}
}

func TestSwapService_Transition_AcceptsLowercaseTarget(t *testing.T) {
	f := newSwapFixture(seededSwap("s1", domain.SwapAccepted))

	got, err := f.svc.Transition(context.Background(), ports.TransitionInput{SwapID: "s1", Target: "in_progress", ActorID: "bob"})
	if err != nil || got.State != domain.SwapInProgress {
		t.Fatalf("expected IN_PROGRESS, got %v / %v", got, err)
	}
}

func TestSwapService_Transition_InvalidJump(t *testing.T) {
	f := newSwapFixture(seededSwap("s1", domain.SwapProposed))

	_, err := f.svc.Transition(context.Background(), ports.TransitionInput{SwapID: "s1", Target: "COMPLETED", ActorID: "bob"})
	var ite *domain.InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if ite.From != domain.SwapProposed || ite.To != domain.SwapCompleted {
		t.Fatalf("unexpected from/to: %+v", ite)
	}
	if got := f.swaps.state("s1"); got != domain.SwapProposed {
		t.Fatalf("state must be unchanged, got %s", got)
	}
	if len(f.publisher.published()) != 0 {
		t.Fatalf("no event must be published")
	}
}

func TestSwapService_Transition_TerminalStatesAreFinal(t *testing.T) {
	for _, terminal := range []domain.SwapState{domain.SwapCompleted, domain.SwapRejected} {
		for _, target := range domain.AllSwapStates {
			f := newSwapFixture(seededSwap("s1", terminal))
			_, err := f.svc.Transition(context.Background(), ports.TransitionInput{SwapID: "s1", Target: string(target), ActorID: "alice"})
			if !errors.Is(err, domain.ErrInvalidTransition) {
				t.Errorf("%s -> %s: expected ErrInvalidTransition, got %v", terminal, target, err)
			}
		}
	}
}

func TestSwapService_Transition_IllegalJumpByParticipant(t *testing.T) {
	f := newSwapFixture(seededSwap("s1", domain.SwapProposed))

	_, err := f.svc.Transition(context.Background(), ports.TransitionInput{SwapID: "s1", Target: "COMPLETED", ActorID: "bob", ActorRole: domain.RoleUser})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("participant illegal jump: expected ErrInvalidTransition, got %v", err)
	}
}

func TestSwapService_Transition_OutsiderLearnsNothingAboutState(t *testing.T) {
	f := newSwapFixture(seededSwap("s1", domain.SwapCompleted))

	for _, target := range []string{"COMPLETED", "ACCEPTED", "REJECTED"} {
		_, err := f.svc.Transition(context.Background(), ports.TransitionInput{SwapID: "s1", Target: target, ActorID: "carol", ActorRole: domain.RoleUser})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("outsider -> %s: expected ErrForbidden, got %v", target, err)
		}
	}
}

func TestSwapService_Transition_SuspendedParticipant(t *testing.T) {
	f := newSwapFixture(seededSwap("s1", domain.SwapProposed))
	f.users.byID["bob"].IsActive = false

	_, err := f.svc.Transition(context.Background(), ports.TransitionInput{SwapID: "s1", Target: "ACCEPTED", ActorID: "bob", ActorRole: domain.RoleUser})
	if !errors.Is(err, domain.ErrAccountSuspended) {
		t.Fatalf("expected ErrAccountSuspended, got %v", err)
	}
	if got := f.swaps.state("s1"); got != domain.SwapProposed {
		t.Fatalf("state must be unchanged, got %s", got)
	}
	if len(f.publisher.published()) != 0 {
		t.Fatalf("refused transition must not publish")
	}
}

func TestSwapService_Transition_Forbidden(t *testing.T) {
	cases := []struct {
		name  string
		actor string
		role  string
	}{
		{"proposer cannot accept", "alice", domain.RoleUser},
		{"outsider cannot accept", "mallory", domain.RoleUser},
		{"admin cannot accept for bob", "root", domain.RoleAdmin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newSwapFixture(seededSwap("s1", domain.SwapProposed))
			_, err := f.svc.Transition(context.Background(), ports.TransitionInput{SwapID: "s1", Target: "ACCEPTED", ActorID: tc.actor, ActorRole: tc.role})
			if !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
			if got := f.swaps.state("s1"); got != domain.SwapProposed {
				t.Fatalf("state must be unchanged, got %s", got)
			}
		})
	}
}

func TestSwapService_Transition_InputErrors(t *testing.T) {
	f := newSwapFixture(seededSwap("s1", domain.SwapProposed))
	ctx := context.Background()

	if _, err := f.svc.Transition(ctx, ports.TransitionInput{Target: "ACCEPTED", ActorID: "bob"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing id: expected ErrValidation, got %v", err)
	}
	if _, err := f.svc.Transition(ctx, ports.TransitionInput{SwapID: "s1", Target: "DONE", ActorID: "bob"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown state: expected ErrValidation, got %v", err)
	}
	if _, err := f.svc.Transition(ctx, ports.TransitionInput{SwapID: "missing", Target: "ACCEPTED", ActorID: "bob"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown swap: expected ErrNotFound, got %v", err)
	}
}

func TestSwapService_Transition_StoreErrorSurfaces(t *testing.T) {
	f := newSwapFixture(seededSwap("s1", domain.SwapProposed))
	boom := errors.New("write failed")
	f.swaps.updateErr = boom

	if _, err := f.svc.Transition(context.Background(), ports.TransitionInput{SwapID: "s1", Target: "ACCEPTED", ActorID: "bob"}); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(f.publisher.published()) != 0 {
		t.Fatalf("failed write must not publish")
	}
}

func TestSwapService_Transition_ConcurrentUpdatesExactlyOneWins(t *testing.T) {
	f := newSwapFixture(seededSwap("s1", domain.SwapProposed))
	barrier := &sync.WaitGroup{}
	barrier.Add(2)
	f.swaps.findBarrier = barrier

	inputs := []ports.TransitionInput{
		{SwapID: "s1", Target: "ACCEPTED", ActorID: "bob"},
		{SwapID: "s1", Target: "REJECTED", ActorID: "alice"},
	}
	errs := make([]error, len(inputs))
	results := make([]*domain.SwapRequest, len(inputs))

	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Add(1)
		go func(i int, in ports.TransitionInput) {
			defer wg.Done()
			results[i], errs[i] = f.svc.Transition(context.Background(), in)
		}(i, in)
	}
	wg.Wait()

	wins, conflicts := 0, 0
	var winner domain.SwapState
	for i, err := range errs {
		switch {
		case err == nil:
			wins++
			winner = results[i].State
		case errors.Is(err, domain.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != 1 {
		t.Fatalf("expected one winner and one conflict, got wins=%d conflicts=%d", wins, conflicts)
	}
	if got := f.swaps.state("s1"); got != winner {
		t.Fatalf("stored state %s does not match winner %s", got, winner)
	}
	if len(f.publisher.published()) != 1 {
		t.Fatalf("only the winning transition may publish")
	}
}

func TestSwapService_ForceTerminate(t *testing.T) {
	f := newSwapFixture(seededSwap("s1", domain.SwapInProgress), seededSwap("s2", domain.SwapCompleted))

	got, err := f.svc.ForceTerminate(context.Background(), "s1", "root")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.State != domain.SwapRejected {
		t.Fatalf("expected REJECTED, got %s", got.State)
	}
	events := f.publisher.published()
	if len(events) != 1 || events[0].ActorID != "root" {
		t.Fatalf("expected admin event, got %+v", events)
	}

	if _, err := f.svc.ForceTerminate(context.Background(), "s2", "root"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("completed swap: expected ErrInvalidTransition, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Reads and deletion
// ---------------------------------------------------------------------------

func TestSwapService_Get_Visibility(t *testing.T) {
	f := newSwapFixture(seededSwap("s1", domain.SwapProposed))
	ctx := context.Background()

	if _, err := f.svc.Get(ctx, ports.SwapQuery{SwapID: "s1", ActorID: "bob", ActorRole: domain.RoleUser}); err != nil {
		t.Fatalf("participant: %v", err)
	}
	if _, err := f.svc.Get(ctx, ports.SwapQuery{SwapID: "s1", ActorID: "root", ActorRole: domain.RoleAdmin}); err != nil {
		t.Fatalf("admin: %v", err)
	}
	if _, err := f.svc.Get(ctx, ports.SwapQuery{SwapID: "s1", ActorID: "mallory", ActorRole: domain.RoleUser}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("outsider: expected ErrForbidden, got %v", err)
	}
}

func TestSwapService_List(t *testing.T) {
	other := seededSwap("s3", domain.SwapRejected)
	other.UserAID, other.UserBID = "root", "carol"
	other.SkillAID, other.SkillBID = "deleted-skill", "c-off"

	f := newSwapFixture(seededSwap("s1", domain.SwapProposed), seededSwap("s2", domain.SwapCompleted), other)
	ctx := context.Background()

	mine, err := f.svc.List(ctx, ports.ListSwapsInput{ActorID: "alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected alice's 2 swaps, got %d", len(mine))
	}
	if mine[0].UserAName != "Alice" || mine[0].UserBName != "Bob" || mine[0].SkillAName != "UI Design" || mine[0].SkillBName != "JavaScript" {
		t.Fatalf("unexpected enrichment: %+v", mine[0])
	}

	completed, _ := f.svc.List(ctx, ports.ListSwapsInput{ActorID: "alice", State: "completed"})
	if len(completed) != 1 || completed[0].ID != "s2" {
		t.Fatalf("expected only s2, got %+v", completed)
	}

	all, _ := f.svc.List(ctx, ports.ListSwapsInput{All: true, State: "ALL"})
	if len(all) != 3 {
		t.Fatalf("expected 3 swaps, got %d", len(all))
	}
	for _, d := range all {
		if d.ID == "s3" {
			if d.SkillAName != unknownName {
				t.Fatalf("expected %q for a missing skill, got %q", unknownName, d.SkillAName)
			}
			if d.UserBActive {
				t.Fatalf("carol is suspended")
			}
		}
	}

	if _, err := f.svc.List(ctx, ports.ListSwapsInput{All: true, State: "bogus"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := f.svc.List(ctx, ports.ListSwapsInput{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unscoped non-admin list, got %v", err)
	}
}

func TestSwapService_Events(t *testing.T) {
	f := newSwapFixture(seededSwap("s1", domain.SwapProposed))
	_ = f.events.Insert(context.Background(), &domain.SwapEvent{SwapID: "s1", To: domain.SwapProposed})
	_ = f.events.Insert(context.Background(), &domain.SwapEvent{SwapID: "other", To: domain.SwapProposed})

	got, err := f.svc.Events(context.Background(), ports.SwapQuery{SwapID: "s1", ActorID: "alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}

	if _, err := f.svc.Events(context.Background(), ports.SwapQuery{SwapID: "s1", ActorID: "mallory"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSwapService_Delete(t *testing.T) {
	f := newSwapFixture(seededSwap("s1", domain.SwapProposed))

	if err := f.svc.Delete(context.Background(), "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.svc.Delete(context.Background(), "s1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
