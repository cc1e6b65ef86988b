package domain

import "time"

// SwapEvent records a single state change of a swap request. From is empty
// for the event emitted when the swap is first proposed.
type SwapEvent struct {
	SwapID    string    `json:"swap_id" bson:"swap_id"`
	UserAID   string    `json:"user_a_id" bson:"user_a_id"`
	UserBID   string    `json:"user_b_id" bson:"user_b_id"`
	From      SwapState `json:"from,omitempty" bson:"from,omitempty"`
	To        SwapState `json:"to" bson:"to"`
	ActorID   string    `json:"actor_id" bson:"actor_id"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
