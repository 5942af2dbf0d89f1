package block

import (
	"context"
	"errors"
	"time"

	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/events"
)

var (
	ErrBlockNotFound = errors.New("block: not found")
	ErrNotOwner      = errors.New("block: not authorized to manage blocks for this property")
)

type BlockID string

// Block is an owner-placed exclusion of a date range. It carries no status;
// while it exists the range is unavailable.
type Block struct {
	ID         BlockID
	PropertyID property.PropertyID
	Range      daterange.DateRange
	Reason     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BlockID) (*Block, error)
	Save(ctx context.Context, b *Block) error
	Delete(ctx context.Context, id BlockID) error
	ListByProperty(ctx context.Context, propertyID property.PropertyID) ([]*Block, error)
	// Overlapping returns blocks on the property whose range overlaps rng,
	// skipping the block identified by exclude.
	Overlapping(ctx context.Context, propertyID property.PropertyID, rng daterange.DateRange, exclude BlockID) ([]*Block, error)
}

func New(id BlockID, propertyID property.PropertyID, rng daterange.DateRange, reason string, now time.Time) *Block {
	now = now.UTC()
	b := &Block{
		ID:         id,
		PropertyID: propertyID,
		Range:      rng,
		Reason:     reason,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	b.Record(Created{BlockID: b.ID, PropertyID: b.PropertyID, Range: b.Range, Reason: reason, At: now})
	return b
}

// Reschedule replaces both dates at once; the caller re-validates the new
// range against bookings and other blocks first.
func (b *Block) Reschedule(rng daterange.DateRange, now time.Time) {
	b.Range = rng
	b.UpdatedAt = now.UTC()
	b.Record(Updated{BlockID: b.ID, PropertyID: b.PropertyID, Range: rng, Reason: b.Reason, At: b.UpdatedAt})
}

// SetReason overwrites the free-form reason. No validation on content.
func (b *Block) SetReason(reason string, now time.Time) {
	b.Reason = reason
	b.UpdatedAt = now.UTC()
}
