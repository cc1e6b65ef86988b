package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/skillbarter/swap-api/internal/core/domain"
	"github.com/skillbarter/swap-api/internal/core/ports"
)

func newSkillSvc() (*SkillService, *stubSkillRepo, *stubMatchCache) {
	skills := fixtureSkills()
	cache := newStubMatchCache()
	return NewSkillService(skills, fixtureUsers(), cache, zerolog.Nop()), skills, cache
}

func TestSkillService_Create_NormalisesInput(t *testing.T) {
	svc, repo, cache := newSkillSvc()
	cache.entries["alice"] = []domain.MatchCandidate{{UserBID: "bob"}}

	skill, err := svc.Create(context.Background(), ports.CreateSkillInput{
		UserID: "alice", SkillName: "  Go ", SkillCategory: "Programming", SkillLevel: "expert", Type: "offered",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skill.ID == "" || skill.SkillName != "Go" || skill.SkillLevel != domain.LevelExpert || skill.Type != domain.SkillOffered {
		t.Fatalf("unexpected skill: %+v", skill)
	}
	if _, err := repo.FindByID(context.Background(), skill.ID); err != nil {
		t.Fatalf("skill not persisted: %v", err)
	}
	if len(cache.entries) != 0 || cache.invalidations != 1 {
		t.Fatalf("expected full cache invalidation, got %d", cache.invalidations)
	}
}

func TestSkillService_Create_Validation(t *testing.T) {
	svc, _, _ := newSkillSvc()
	valid := ports.CreateSkillInput{UserID: "alice", SkillName: "Go", SkillCategory: "Programming", SkillLevel: "Beginner", Type: "NEEDED"}

	cases := map[string]func(in *ports.CreateSkillInput){
		"missing user":     func(in *ports.CreateSkillInput) { in.UserID = "" },
		"missing name":     func(in *ports.CreateSkillInput) { in.SkillName = " " },
		"missing category": func(in *ports.CreateSkillInput) { in.SkillCategory = "" },
		"unknown level":    func(in *ports.CreateSkillInput) { in.SkillLevel = "Guru" },
		"unknown type":     func(in *ports.CreateSkillInput) { in.Type = "WANTED" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)
			if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestSkillService_Create_OwnerChecks(t *testing.T) {
	svc, _, _ := newSkillSvc()
	in := ports.CreateSkillInput{UserID: "carol", SkillName: "Go", SkillCategory: "Programming", SkillLevel: "Beginner", Type: "NEEDED"}

	if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrAccountSuspended) {
		t.Fatalf("expected ErrAccountSuspended, got %v", err)
	}
	in.UserID = "ghost"
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSkillService_Delete(t *testing.T) {
	cases := []struct {
		name  string
		actor string
		role  string
		want  error
	}{
		{"owner", "alice", domain.RoleUser, nil},
		{"admin", "root", domain.RoleAdmin, nil},
		{"someone else", "bob", domain.RoleUser, domain.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, cache := newSkillSvc()
			err := svc.Delete(context.Background(), "a-off", tc.actor, tc.role)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if tc.want == nil {
				if len(repo.deleted) != 1 || cache.invalidations != 1 {
					t.Fatalf("expected deletion and invalidation, got deleted=%v invalidations=%d", repo.deleted, cache.invalidations)
				}
			} else if len(repo.deleted) != 0 {
				t.Fatalf("forbidden delete must not remove the skill")
			}
		})
	}
}

func TestSkillService_Delete_NotFound(t *testing.T) {
	svc, _, _ := newSkillSvc()
	if err := svc.Delete(context.Background(), "missing", "alice", domain.RoleUser); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSkillService_List_Filters(t *testing.T) {
	svc, _, _ := newSkillSvc()

	got, err := svc.List(context.Background(), ports.SkillFilter{UserID: "alice", Type: "offered"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a-off" {
		t.Fatalf("expected a-off only, got %+v", got)
	}
	if _, err := svc.List(context.Background(), ports.SkillFilter{Type: "both"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSkillService_WorksWithoutCache(t *testing.T) {
	svc := NewSkillService(fixtureSkills(), fixtureUsers(), nil, zerolog.Nop())
	if err := svc.Delete(context.Background(), "a-off", "alice", domain.RoleUser); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUserService(t *testing.T) {
	svc := NewUserService(fixtureUsers())

	users, err := svc.List(context.Background())
	if err != nil || len(users) != 4 {
		t.Fatalf("expected 4 users, got %d (%v)", len(users), err)
	}
	if _, err := svc.Get(context.Background(), "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Get(context.Background(), ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
