package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/skillbarter/swap-api/internal/core/domain"
	"github.com/skillbarter/swap-api/internal/core/ports"
	"github.com/skillbarter/swap-api/internal/infrastructure/metrics"
)

type swapEventProcessor struct {
	events   ports.SwapEventRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewSwapEventProcessor returns a SwapEventProcessor. notifier may be nil.
func NewSwapEventProcessor(events ports.SwapEventRepository, notifier ports.Notifier, log zerolog.Logger) ports.SwapEventProcessor {
	return &swapEventProcessor{events: events, notifier: notifier, log: log}
}

// Process appends the event to the audit trail and notifies the participants
// other than the actor. Notification failures are logged, never returned.
func (p *swapEventProcessor) Process(ctx context.Context, ev domain.SwapEvent) error {
	start := time.Now()

	// 1. Audit trail.
	if err := p.events.Insert(ctx, &ev); err != nil {
		metrics.EventsErrorsTotal.WithLabelValues("audit_insert").Inc()
		metrics.EventProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("process swap event: insert audit: %w", err)
	}

	// 2. Live notifications.
	if p.notifier != nil {
		n := ports.Notification{
			Type:      ports.NotificationSwapUpdated,
			SwapID:    ev.SwapID,
			From:      ev.From,
			To:        ev.To,
			ActorID:   ev.ActorID,
			Timestamp: ev.Timestamp,
		}
		if ev.From == "" {
			n.Type = ports.NotificationSwapProposed
		}
		for _, uid := range []string{ev.UserAID, ev.UserBID} {
			if uid == "" || uid == ev.ActorID {
				continue
			}
			p.notify(uid, n)
		}
	}

	metrics.EventProcessingDuration.WithLabelValues(string(ev.To)).Observe(time.Since(start).Seconds())
	p.log.Debug().
		Str("swap_id", ev.SwapID).
		Str("from", string(ev.From)).
		Str("to", string(ev.To)).
		Msg("swap event processed")
	return nil
}

func (p *swapEventProcessor) notify(userID string, n ports.Notification) {
	err := p.notifier.Notify(userID, n)
	switch {
	case err == nil:
	case errors.Is(err, ports.ErrRecipientOffline):
		p.log.Debug().Str("user_id", userID).Str("swap_id", n.SwapID).Msg("recipient offline, notification skipped")
	default:
		metrics.EventsErrorsTotal.WithLabelValues("notify").Inc()
		p.log.Warn().Err(err).Str("user_id", userID).Str("swap_id", n.SwapID).Msg("failed to notify participant")
	}
}
