package domain

// AuthorizeTransition decides whether the actor may move swap to target.
// It assumes the transition is already valid for the state graph:
//   - only the recipient (UserB) may accept a proposal;
//   - either participant may reject, start or complete;
//   - an admin may force any open swap to REJECTED.
func AuthorizeTransition(swap *SwapRequest, actorID, actorRole string, target SwapState) error {
	if actorRole == RoleAdmin && target == SwapRejected {
		return nil
	}
	if !swap.IsParticipant(actorID) {
		return ErrForbidden
	}
	if swap.State == SwapProposed && target == SwapAccepted && actorID != swap.UserBID {
		return ErrForbidden
	}
	return nil
}
