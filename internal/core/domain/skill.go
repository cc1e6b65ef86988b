package domain

import "time"

// SkillLevel is the self-declared proficiency attached to a listing.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "Beginner"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelExpert       SkillLevel = "Expert"
)

// IsValid reports whether l is a known level.
func (l SkillLevel) IsValid() bool {
	return l == LevelBeginner || l == LevelIntermediate || l == LevelExpert
}

// SkillType tells whether a listing is something the user teaches or wants to learn.
type SkillType string

const (
	SkillOffered SkillType = "OFFERED"
	SkillNeeded  SkillType = "NEEDED"
)

// IsValid reports whether t is a known listing type.
func (t SkillType) IsValid() bool {
	return t == SkillOffered || t == SkillNeeded
}

// Skill is a single listing owned by exactly one user. Listings are never
// updated; users delete and recreate them instead.
type Skill struct {
	ID            string     `json:"id" bson:"_id"`
	UserID        string     `json:"user_id" bson:"user_id"`
	SkillName     string     `json:"skill_name" bson:"skill_name"`
	SkillCategory string     `json:"skill_category" bson:"skill_category"`
	SkillLevel    SkillLevel `json:"skill_level" bson:"skill_level"`
	Type          SkillType  `json:"type" bson:"type"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
}
