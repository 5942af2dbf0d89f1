package booking

import (
	"context"
	"errors"
	"time"

	"staybook/internal/domain/guest"
	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/events"
)

var (
	ErrBookingNotFound = errors.New("booking: not found")
	ErrBookingCanceled = errors.New("booking: cannot update a canceled booking, rebook it first")
	ErrAlreadyCanceled = errors.New("booking: already canceled")
	ErrNotCanceled     = errors.New("booking: only canceled bookings can be rebooked")
)

type BookingID string

type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusCanceled  Status = "CANCELED"
)

// Booking is a guest's claim on a property for a date range. Only a
// CONFIRMED booking counts toward availability; a CANCELED one keeps its
// dates but holds nothing.
type Booking struct {
	ID         BookingID
	PropertyID property.PropertyID
	GuestID    guest.GuestID
	Range      daterange.DateRange
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, b *Booking) error
	Delete(ctx context.Context, id BookingID) error
	ListByProperty(ctx context.Context, propertyID property.PropertyID) ([]*Booking, error)
	ListByGuest(ctx context.Context, guestID guest.GuestID) ([]*Booking, error)
	// ConfirmedOverlapping returns CONFIRMED bookings on the property whose
	// range overlaps rng, skipping the booking identified by exclude (used
	// when a booking is re-validated against itself during an update).
	ConfirmedOverlapping(ctx context.Context, propertyID property.PropertyID, rng daterange.DateRange, exclude BookingID) ([]*Booking, error)
}

func New(id BookingID, propertyID property.PropertyID, guestID guest.GuestID, rng daterange.DateRange, now time.Time) *Booking {
	now = now.UTC()
	b := &Booking{
		ID:         id,
		PropertyID: propertyID,
		GuestID:    guestID,
		Range:      rng,
		Status:     StatusConfirmed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	b.Record(Confirmed{BookingID: b.ID, PropertyID: b.PropertyID, GuestID: b.GuestID, Range: b.Range, At: now})
	return b
}

// Reschedule replaces both dates at once. The caller must have verified the
// new range against current availability before calling.
func (b *Booking) Reschedule(rng daterange.DateRange, now time.Time) error {
	if b.Status != StatusConfirmed {
		return ErrBookingCanceled
	}
	b.Range = rng
	b.UpdatedAt = now.UTC()
	b.Record(Rescheduled{BookingID: b.ID, PropertyID: b.PropertyID, Range: rng, At: b.UpdatedAt})
	return nil
}

// ReassignGuest repoints the booking at another guest identity. Happens on
// an email-collision merge during a guest-detail update.
func (b *Booking) ReassignGuest(guestID guest.GuestID, now time.Time) error {
	if b.Status != StatusConfirmed {
		return ErrBookingCanceled
	}
	b.GuestID = guestID
	b.UpdatedAt = now.UTC()
	return nil
}

func (b *Booking) Cancel(now time.Time) error {
	if b.Status == StatusCanceled {
		return ErrAlreadyCanceled
	}
	b.Status = StatusCanceled
	b.UpdatedAt = now.UTC()
	b.Record(Canceled{BookingID: b.ID, PropertyID: b.PropertyID, Range: b.Range, At: b.UpdatedAt})
	return nil
}

// Rebook flips a canceled booking back to CONFIRMED. The caller re-runs the
// full availability check against live state first; time has passed since
// the booking was created.
func (b *Booking) Rebook(now time.Time) error {
	if b.Status != StatusCanceled {
		return ErrNotCanceled
	}
	b.Status = StatusConfirmed
	b.UpdatedAt = now.UTC()
	b.Record(Rebooked{BookingID: b.ID, PropertyID: b.PropertyID, Range: b.Range, At: b.UpdatedAt})
	return nil
}
