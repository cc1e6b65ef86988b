package handler

import (
	"github.com/skillbarter/swap-api/internal/core/domain"
	"github.com/skillbarter/swap-api/internal/core/ports"
)

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Bio:       u.Bio,
		Rating:    u.Rating,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, *toUserResponse(&users[i]))
	}
	return out
}

func toSkillResponse(s domain.Skill) skillResponse {
	return skillResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		SkillName:     s.SkillName,
		SkillCategory: s.SkillCategory,
		SkillLevel:    string(s.SkillLevel),
		Type:          string(s.Type),
		CreatedAt:     s.CreatedAt,
	}
}

func toSkillResponses(skills []domain.Skill) []skillResponse {
	out := make([]skillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, toSkillResponse(s))
	}
	return out
}

func toSwapResponse(s *domain.SwapRequest) swapResponse {
	next := s.State.AllowedNext()
	allowed := make([]string, len(next))
	for i, st := range next {
		allowed[i] = string(st)
	}
	return swapResponse{
		ID:          s.ID,
		UserAID:     s.UserAID,
		UserBID:     s.UserBID,
		SkillAID:    s.SkillAID,
		SkillBID:    s.SkillBID,
		MatchScore:  s.MatchScore,
		State:       string(s.State),
		AllowedNext: allowed,
		Message:     s.Message,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Links: swapLinks{
			Self:   "/v1/swaps/" + s.ID,
			Events: "/v1/swaps/" + s.ID + "/events",
		},
	}
}

// toSwapDetailResponses maps enriched swaps; withActivity adds the
// participants' account status for the admin view.
func toSwapDetailResponses(details []ports.SwapDetail, withActivity bool) []swapDetailResponse {
	out := make([]swapDetailResponse, 0, len(details))
	for i := range details {
		d := &details[i]
		resp := swapDetailResponse{
			swapResponse: toSwapResponse(&d.SwapRequest),
			UserAName:    d.UserAName,
			UserBName:    d.UserBName,
			SkillAName:   d.SkillAName,
			SkillBName:   d.SkillBName,
		}
		if withActivity {
			a, b := d.UserAActive, d.UserBActive
			resp.UserAActive = &a
			resp.UserBActive = &b
		}
		out = append(out, resp)
	}
	return out
}

func toSwapEventResponses(events []domain.SwapEvent) []swapEventResponse {
	out := make([]swapEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, swapEventResponse{
			From:      string(e.From),
			To:        string(e.To),
			ActorID:   e.ActorID,
			Timestamp: e.Timestamp,
		})
	}
	return out
}

func toAdminUserResponses(users []ports.UserWithSkills) []adminUserResponse {
	out := make([]adminUserResponse, 0, len(users))
	for i := range users {
		u := &users[i]
		resp := adminUserResponse{userResponse: *toUserResponse(&u.User)}
		if u.Skills != nil {
			resp.Skills = &userSkillsResponse{
				Offered: toSkillResponses(u.Skills.Offered),
				Needed:  toSkillResponses(u.Skills.Needed),
			}
		}
		out = append(out, resp)
	}
	return out
}
