package domain

import (
	"fmt"
	"strings"
	"time"
)

// SwapState represents the lifecycle state of a swap request.
type SwapState string

const (
	SwapProposed   SwapState = "PROPOSED"
	SwapAccepted   SwapState = "ACCEPTED"
	SwapInProgress SwapState = "IN_PROGRESS"
	SwapCompleted  SwapState = "COMPLETED"
	SwapRejected   SwapState = "REJECTED"
)

// AllSwapStates lists every state in lifecycle order.
var AllSwapStates = []SwapState{
	SwapProposed,
	SwapAccepted,
	SwapInProgress,
	SwapCompleted,
	SwapRejected,
}

// validTransitions defines the allowed state machine transitions.
// COMPLETED and REJECTED are terminal and have no entry.
var validTransitions = map[SwapState][]SwapState{
	SwapProposed:   {SwapAccepted, SwapRejected},
	SwapAccepted:   {SwapInProgress, SwapRejected},
	SwapInProgress: {SwapCompleted, SwapRejected},
}

// AllowedNext returns the states reachable from s in one step. Terminal and
// unknown states yield an empty slice.
func (s SwapState) AllowedNext() []SwapState {
	next := validTransitions[s]
	out := make([]SwapState, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether a transition from the current state to next is valid.
func (s SwapState) CanTransitionTo(next SwapState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s SwapState) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// IsOpen reports whether the swap is still being negotiated or carried out.
func (s SwapState) IsOpen() bool {
	return s == SwapProposed || s == SwapAccepted || s == SwapInProgress
}

// IsValid reports whether s is one of the known lifecycle states.
func (s SwapState) IsValid() bool {
	for _, st := range AllSwapStates {
		if st == s {
			return true
		}
	}
	return false
}

// ParseSwapState normalises raw input ("in_progress", " Accepted ") into a SwapState.
func ParseSwapState(raw string) (SwapState, error) {
	s := SwapState(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", &ValidationError{Field: "state", Reason: fmt.Sprintf("unknown swap state %q", raw)}
	}
	return s, nil
}

// OpenSwapStates are the non-terminal states, counted as "active" swaps.
var OpenSwapStates = []SwapState{SwapProposed, SwapAccepted, SwapInProgress}

// SwapRequest is a persisted proposal to exchange SkillA (owned by UserA)
// for SkillB (owned by UserB).
type SwapRequest struct {
	ID             string    `json:"id" bson:"_id"`
	UserAID        string    `json:"user_a_id" bson:"user_a_id"`
	UserBID        string    `json:"user_b_id" bson:"user_b_id"`
	SkillAID       string    `json:"skill_a_id" bson:"skill_a_id"`
	SkillBID       string    `json:"skill_b_id" bson:"skill_b_id"`
	MatchScore     float64   `json:"match_score" bson:"match_score"`
	State          SwapState `json:"state" bson:"state"`
	Message        string    `json:"message,omitempty" bson:"message,omitempty"`
	IdempotencyKey string    `json:"-" bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

// IsParticipant reports whether userID is one of the two sides of the swap.
func (s *SwapRequest) IsParticipant(userID string) bool {
	return userID != "" && (s.UserAID == userID || s.UserBID == userID)
}

// Counterpart returns the other participant, or "" if userID is not part of the swap.
func (s *SwapRequest) Counterpart(userID string) string {
	switch userID {
	case s.UserAID:
		return s.UserBID
	case s.UserBID:
		return s.UserAID
	}
	return ""
}
