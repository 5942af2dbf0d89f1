package availability

import (
	"context"
	"errors"
	"time"

	"staybook/internal/domain/block"
	"staybook/internal/domain/booking"
	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
)

var (
	ErrBooked  = errors.New("availability: property is already booked for the selected dates")
	ErrBlocked = errors.New("availability: property is blocked for the selected dates")
)

// Exclude identifies a record the check skips, used when a booking or block
// is re-validated against itself during an in-place date update.
type Exclude struct {
	BookingID booking.BookingID
	BlockID   block.BlockID
}

// Checker is the single source of truth for "is this range free". It has no
// side effects; both lifecycles gate every mutation on it.
type Checker struct {
	Clock func() time.Time
}

func (c Checker) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

// CheckAvailable reports whether rng is free on the property. Range
// preconditions (order, not in the past) are verified before any storage
// access. Overlapping CONFIRMED bookings are checked before blocks so the
// "booked" conflict wins when both apply; either one is fatal.
func (c Checker) CheckAvailable(ctx context.Context, bookings booking.Repository, blocks block.Repository, propertyID property.PropertyID, rng daterange.DateRange, exclude Exclude) error {
	if err := rng.Validate(); err != nil {
		return err
	}
	if err := rng.ValidateNotPast(c.now()); err != nil {
		return err
	}

	overlapping, err := bookings.ConfirmedOverlapping(ctx, propertyID, rng, exclude.BookingID)
	if err != nil {
		return err
	}
	if len(overlapping) > 0 {
		return ErrBooked
	}

	blocked, err := blocks.Overlapping(ctx, propertyID, rng, exclude.BlockID)
	if err != nil {
		return err
	}
	if len(blocked) > 0 {
		return ErrBlocked
	}
	return nil
}
