package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	domainevents "staybook/internal/domain/shared/events"
)

// Publisher receives domain events after the owning transaction commits.
// Publishing is best-effort: availability invariants never depend on it.
type Publisher interface {
	Publish(ctx context.Context, event domainevents.DomainEvent) error
}

// Envelope is the wire form of a domain event.
type Envelope struct {
	Name        string          `json:"name"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

func Encode(event domainevents.DomainEvent) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{
		Name:        event.EventName(),
		AggregateID: event.AggregateID(),
		OccurredAt:  event.OccurredAt().UTC(),
		Payload:     payload,
	})
}

// PublishAll drains events to the publisher, logging failures instead of
// propagating them; the state change is already committed at this point.
func PublishAll(ctx context.Context, pub Publisher, log *slog.Logger, evs []domainevents.DomainEvent) {
	if pub == nil {
		return
	}
	for _, ev := range evs {
		if err := pub.Publish(ctx, ev); err != nil && log != nil {
			log.Warn("event publish failed", "event", ev.EventName(), "aggregate_id", ev.AggregateID(), "error", err)
		}
	}
}
