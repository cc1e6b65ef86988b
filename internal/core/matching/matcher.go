// Package matching implements the two-way skill matcher: a candidate is only
// proposed when the requester and the counterpart each offer something the
// other needs.
package matching

import (
	"sort"
	"strings"

	"github.com/skillbarter/swap-api/internal/core/domain"
)

// Scoring weights. The divisor and every weight are fixed policy values and
// must stay in sync with previously published scores.
const (
	weightName            = 0.4
	weightCategory        = 0.2
	weightLevel           = 0.2
	weightReverseName     = 0.3
	weightReverseCategory = 0.15
	weightReverseLevel    = 0.15
	weightDivisor         = 1.4

	exactScore            = 1.0
	nameMismatchScore     = 0.7
	categoryMismatchScore = 0.5
)

const (
	// MinScore is the lowest score returned to callers.
	MinScore = 0.4
	// MaxResults caps the number of returned candidates.
	MaxResults = 20
)

// FindMatches returns the ranked two-way swap candidates for requestingUserID.
// skills is the full catalog (the requester's own listings included); users
// supplies the counterpart profiles attached to each candidate.
func FindMatches(requestingUserID string, skills []domain.Skill, users []domain.User) ([]domain.MatchCandidate, error) {
	if strings.TrimSpace(requestingUserID) == "" {
		return nil, domain.Invalid("user_id", "is required")
	}

	var myOffered, myNeeded, others []domain.Skill
	neededByUser := make(map[string][]domain.Skill)
	for _, s := range skills {
		if s.UserID == requestingUserID {
			switch s.Type {
			case domain.SkillOffered:
				myOffered = append(myOffered, s)
			case domain.SkillNeeded:
				myNeeded = append(myNeeded, s)
			}
			continue
		}
		others = append(others, s)
		if s.Type == domain.SkillNeeded {
			neededByUser[s.UserID] = append(neededByUser[s.UserID], s)
		}
	}

	if len(myOffered) == 0 || len(myNeeded) == 0 {
		return []domain.MatchCandidate{}, nil
	}

	profiles := make(map[string]*domain.UserSummary, len(users))
	for i := range users {
		profiles[users[i].ID] = users[i].Summary()
	}

	var candidates []domain.MatchCandidate
	for _, need := range myNeeded {
		for _, theirs := range others {
			if theirs.Type != domain.SkillOffered {
				continue
			}
			nameMatch, categoryMatch := compare(need, theirs)
			if !nameMatch && !categoryMatch {
				continue
			}

			for _, theirNeed := range neededByUser[theirs.UserID] {
				for _, mine := range myOffered {
					reverseName, reverseCategory := compare(theirNeed, mine)
					if !reverseName && !reverseCategory {
						continue
					}

					candidates = append(candidates, domain.MatchCandidate{
						UserBID:            theirs.UserID,
						UserB:              profiles[theirs.UserID],
						MySkillID:          mine.ID,
						MySkillName:        mine.SkillName,
						MySkillCategory:    mine.SkillCategory,
						MySkillLevel:       mine.SkillLevel,
						TheirSkillID:       theirs.ID,
						TheirSkillName:     theirs.SkillName,
						TheirSkillCategory: theirs.SkillCategory,
						TheirSkillLevel:    theirs.SkillLevel,
						MatchScore: score(factors{
							name:            nameMatch,
							category:        categoryMatch,
							level:           LevelScore(theirs.SkillLevel, need.SkillLevel),
							reverseName:     reverseName,
							reverseCategory: reverseCategory,
							reverseLevel:    LevelScore(mine.SkillLevel, theirNeed.SkillLevel),
						}),
						MatchType: matchType(nameMatch, reverseName),
					})
				}
			}
		}
	}

	return rank(dedupe(candidates)), nil
}

// factors are the per-direction comparisons feeding score.
type factors struct {
	name            bool
	category        bool
	level           float64
	reverseName     bool
	reverseCategory bool
	reverseLevel    float64
}

// score blends the forward and reverse factors into a value clamped to [0,1].
func score(f factors) float64 {
	raw := (pick(f.name, nameMismatchScore)*weightName +
		pick(f.category, categoryMismatchScore)*weightCategory +
		f.level*weightLevel +
		pick(f.reverseName, nameMismatchScore)*weightReverseName +
		pick(f.reverseCategory, categoryMismatchScore)*weightReverseCategory +
		f.reverseLevel*weightReverseLevel) / weightDivisor
	return clamp(raw, 0, 1)
}

// LevelScore penalises a teacher who is far above the learner's level.
func LevelScore(teacher, learner domain.SkillLevel) float64 {
	switch {
	case teacher == domain.LevelExpert && learner == domain.LevelBeginner:
		return 0.8
	case teacher == domain.LevelExpert && learner == domain.LevelIntermediate:
		return 0.9
	case teacher == domain.LevelIntermediate && learner == domain.LevelBeginner:
		return 0.9
	}
	return exactScore
}

func compare(a, b domain.Skill) (nameMatch, categoryMatch bool) {
	return strings.EqualFold(a.SkillName, b.SkillName),
		strings.EqualFold(a.SkillCategory, b.SkillCategory)
}

func matchType(nameMatch, reverseNameMatch bool) domain.MatchType {
	if nameMatch && reverseNameMatch {
		return domain.MatchPerfect
	}
	return domain.MatchSimilar
}

type candidateKey struct {
	userBID      string
	mySkillID    string
	theirSkillID string
}

// dedupe keeps the best-scoring candidate per (user, my skill, their skill),
// preserving the position of the first occurrence.
func dedupe(in []domain.MatchCandidate) []domain.MatchCandidate {
	index := make(map[candidateKey]int, len(in))
	out := make([]domain.MatchCandidate, 0, len(in))
	for _, c := range in {
		key := candidateKey{userBID: c.UserBID, mySkillID: c.MySkillID, theirSkillID: c.TheirSkillID}
		if i, seen := index[key]; seen {
			if c.MatchScore > out[i].MatchScore {
				out[i] = c
			}
			continue
		}
		index[key] = len(out)
		out = append(out, c)
	}
	return out
}

func rank(in []domain.MatchCandidate) []domain.MatchCandidate {
	sort.SliceStable(in, func(i, j int) bool {
		return in[i].MatchScore > in[j].MatchScore
	})

	out := make([]domain.MatchCandidate, 0, min(len(in), MaxResults))
	for _, c := range in {
		if c.MatchScore < MinScore {
			continue
		}
		out = append(out, c)
		if len(out) == MaxResults {
			break
		}
	}
	return out
}

func pick(exact bool, fallback float64) float64 {
	if exact {
		return exactScore
	}
	return fallback
}

func clamp(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
