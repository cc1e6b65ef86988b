package ports

import (
	"context"
	"errors"
	"time"

	"github.com/skillbarter/swap-api/internal/core/domain"
)

// SwapEventPublisher hands swap state changes to asynchronous consumers.
// Events of one swap are delivered in publication order.
type SwapEventPublisher interface {
	Publish(event domain.SwapEvent)
}

// SwapEventProcessor consumes a single swap event: audit trail plus notifications.
type SwapEventProcessor interface {
	Process(ctx context.Context, event domain.SwapEvent) error
}

// Notification is pushed to connected participants when a swap changes.
type Notification struct {
	Type      string           `json:"type"`
	SwapID    string           `json:"swap_id"`
	From      domain.SwapState `json:"from,omitempty"`
	To        domain.SwapState `json:"to"`
	ActorID   string           `json:"actor_id"`
	Timestamp time.Time        `json:"timestamp"`
}

// ErrRecipientOffline is returned by a Notifier when the user has no live connection.
var ErrRecipientOffline = errors.New("recipient not connected")

// Notification types.
const (
	NotificationSwapProposed = "swap_proposed"
	NotificationSwapUpdated  = "swap_updated"
)

// Notifier delivers a notification to one user's live connections.
type Notifier interface {
	Notify(userID string, n Notification) error
}
