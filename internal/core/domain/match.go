package domain

// MatchType classifies how closely a candidate pairs by skill name.
type MatchType string

const (
	// MatchPerfect means both directions matched on the exact skill name.
	MatchPerfect MatchType = "PERFECT"
	// MatchSimilar means at least one direction matched on category only.
	MatchSimilar MatchType = "SIMILAR"
)

// MatchCandidate is a scored, unpersisted suggestion of a two-way swap.
// The "my" side is the requester's offered skill, the "their" side is the
// counterpart's offered skill.
type MatchCandidate struct {
	UserBID            string       `json:"user_b_id"`
	UserB              *UserSummary `json:"user_b,omitempty"`
	MySkillID          string       `json:"my_skill_id"`
	MySkillName        string       `json:"my_skill_name"`
	MySkillCategory    string       `json:"my_skill_category"`
	MySkillLevel       SkillLevel   `json:"my_skill_level"`
	TheirSkillID       string       `json:"their_skill_id"`
	TheirSkillName     string       `json:"their_skill_name"`
	TheirSkillCategory string       `json:"their_skill_category"`
	TheirSkillLevel    SkillLevel   `json:"their_skill_level"`
	MatchScore         float64      `json:"match_score"`
	MatchType          MatchType    `json:"match_type"`
}
