package booking

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"staybook/internal/app/availability"
	"staybook/internal/app/events"
	"staybook/internal/app/locks"
	guestsvc "staybook/internal/app/services/guest"
	"staybook/internal/app/uow"
	domainbooking "staybook/internal/domain/booking"
	domainguest "staybook/internal/domain/guest"
	domainproperty "staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
	domainevents "staybook/internal/domain/shared/events"
)

// Service drives the booking lifecycle: create, read, update, cancel,
// rebook, delete. Every operation that could introduce an overlap holds the
// property's lock from the availability check through the write.
type Service struct {
	UoW       uow.Factory
	Locks     *locks.PropertyLocks
	Guests    *guestsvc.Service
	Checker   availability.Checker
	Publisher events.Publisher
	Clock     func() time.Time
	Logger    *slog.Logger
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

type CreateParams struct {
	PropertyID     domainproperty.PropertyID
	GuestEmail     string
	GuestFirstName string
	GuestLastName  string
	StartDate      time.Time
	EndDate        time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*domainbooking.Booking, error) {
	rng, err := daterange.New(params.StartDate, params.EndDate)
	if err != nil {
		return nil, err
	}

	unlock := s.Locks.Lock(params.PropertyID)
	defer unlock()

	unit, err := s.UoW.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	ctx = unit.Context(ctx)
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(ctx)
		}
	}()

	exists, err := unit.Properties().Exists(ctx, params.PropertyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domainproperty.ErrPropertyNotFound
	}

	if err := s.Checker.CheckAvailable(ctx, unit.Bookings(), unit.Blocks(), params.PropertyID, rng, availability.Exclude{}); err != nil {
		return nil, err
	}

	g, err := s.Guests.ResolveOrCreate(ctx, unit.Guests(), params.GuestEmail, params.GuestFirstName, params.GuestLastName)
	if err != nil {
		return nil, err
	}

	b := domainbooking.New(domainbooking.BookingID(uuid.NewString()), params.PropertyID, g.ID, rng, s.now())
	if err := unit.Bookings().Save(ctx, b); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	s.logInfo("booking created", "booking_id", b.ID, "property_id", b.PropertyID)
	s.publish(ctx, b)
	return b, nil
}

func (s *Service) Get(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	ctx = unit.Context(ctx)
	defer func() { _ = unit.Rollback(ctx) }()

	return unit.Bookings().ByID(ctx, id)
}

func (s *Service) ListByProperty(ctx context.Context, propertyID domainproperty.PropertyID) ([]*domainbooking.Booking, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	ctx = unit.Context(ctx)
	defer func() { _ = unit.Rollback(ctx) }()

	exists, err := unit.Properties().Exists(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domainproperty.ErrPropertyNotFound
	}
	return unit.Bookings().ListByProperty(ctx, propertyID)
}

// ListByGuest returns every booking held by the guest, in any status. The
// guest must exist; an unknown id is a not-found, not an empty list.
func (s *Service) ListByGuest(ctx context.Context, guestID domainguest.GuestID) ([]*domainbooking.Booking, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	ctx = unit.Context(ctx)
	defer func() { _ = unit.Rollback(ctx) }()

	if _, err := unit.Guests().ByID(ctx, guestID); err != nil {
		return nil, err
	}
	return unit.Bookings().ListByGuest(ctx, guestID)
}

// UpdateParams carries a partial booking update. A missing date defaults to
// the stored value; guest fields are forwarded to the guest collaborator.
type UpdateParams struct {
	StartDate      *time.Time
	EndDate        *time.Time
	GuestEmail     *string
	GuestFirstName *string
	GuestLastName  *string
}

func (p UpdateParams) hasDates() bool {
	return p.StartDate != nil || p.EndDate != nil
}

func (p UpdateParams) hasGuest() bool {
	return p.GuestEmail != nil || p.GuestFirstName != nil || p.GuestLastName != nil
}

func (s *Service) Update(ctx context.Context, id domainbooking.BookingID, params UpdateParams) (*domainbooking.Booking, error) {
	propertyID, err := s.propertyOf(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.Locks.Lock(propertyID)
	defer unlock()

	unit, err := s.UoW.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	ctx = unit.Context(ctx)
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(ctx)
		}
	}()

	b, err := unit.Bookings().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domainbooking.StatusConfirmed {
		return nil, domainbooking.ErrBookingCanceled
	}

	if params.hasDates() {
		start := b.Range.Start
		end := b.Range.End
		if params.StartDate != nil {
			start = *params.StartDate
		}
		if params.EndDate != nil {
			end = *params.EndDate
		}
		rng, err := daterange.New(start, end)
		if err != nil {
			return nil, err
		}
		if err := s.Checker.CheckAvailable(ctx, unit.Bookings(), unit.Blocks(), b.PropertyID, rng, availability.Exclude{BookingID: b.ID}); err != nil {
			return nil, err
		}
		if err := b.Reschedule(rng, s.now()); err != nil {
			return nil, err
		}
	}

	if params.hasGuest() {
		newGuestID, err := s.Guests.UpdateIdentity(ctx, unit.Guests(), b.GuestID, guestsvc.UpdateParams{
			Email:     params.GuestEmail,
			FirstName: params.GuestFirstName,
			LastName:  params.GuestLastName,
		})
		if err != nil {
			return nil, err
		}
		if newGuestID != b.GuestID {
			if err := b.ReassignGuest(newGuestID, s.now()); err != nil {
				return nil, err
			}
		}
	}

	if err := unit.Bookings().Save(ctx, b); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	s.logInfo("booking updated", "booking_id", b.ID)
	s.publish(ctx, b)
	return b, nil
}

func (s *Service) Cancel(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	ctx = unit.Context(ctx)
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(ctx)
		}
	}()

	b, err := unit.Bookings().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.Cancel(s.now()); err != nil {
		return nil, err
	}
	if err := unit.Bookings().Save(ctx, b); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	s.logInfo("booking canceled", "booking_id", b.ID)
	s.publish(ctx, b)
	return b, nil
}

// Rebook re-confirms a canceled booking. The stored range is validated
// against live state under the property lock: other bookings or blocks may
// have claimed it since, and the start date may have slipped into the past.
func (s *Service) Rebook(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	propertyID, err := s.propertyOf(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.Locks.Lock(propertyID)
	defer unlock()

	unit, err := s.UoW.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	ctx = unit.Context(ctx)
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(ctx)
		}
	}()

	b, err := unit.Bookings().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domainbooking.StatusCanceled {
		return nil, domainbooking.ErrNotCanceled
	}
	if err := s.Checker.CheckAvailable(ctx, unit.Bookings(), unit.Blocks(), b.PropertyID, b.Range, availability.Exclude{BookingID: b.ID}); err != nil {
		return nil, err
	}
	if err := b.Rebook(s.now()); err != nil {
		return nil, err
	}
	if err := unit.Bookings().Save(ctx, b); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	s.logInfo("booking rebooked", "booking_id", b.ID)
	s.publish(ctx, b)
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id domainbooking.BookingID) error {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return err
	}
	ctx = unit.Context(ctx)
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(ctx)
		}
	}()

	b, err := unit.Bookings().ByID(ctx, id)
	if err != nil {
		return err
	}
	if err := unit.Bookings().Delete(ctx, b.ID); err != nil {
		return err
	}
	if err := unit.Commit(ctx); err != nil {
		return err
	}
	committed = true

	s.logInfo("booking deleted", "booking_id", b.ID)
	events.PublishAll(ctx, s.Publisher, s.Logger, []domainevents.DomainEvent{
		domainbooking.Deleted{BookingID: b.ID, PropertyID: b.PropertyID, At: s.now().UTC()},
	})
	return nil
}

// propertyOf resolves the booking's property before taking its lock. A
// booking never moves between properties, so the id read outside the lock
// stays valid.
func (s *Service) propertyOf(ctx context.Context, id domainbooking.BookingID) (domainproperty.PropertyID, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return "", err
	}
	ctx = unit.Context(ctx)
	defer func() { _ = unit.Rollback(ctx) }()

	b, err := unit.Bookings().ByID(ctx, id)
	if err != nil {
		return "", err
	}
	return b.PropertyID, nil
}

func (s *Service) publish(ctx context.Context, b *domainbooking.Booking) {
	evs := b.PendingEvents()
	b.ClearEvents()
	events.PublishAll(ctx, s.Publisher, s.Logger, evs)
}

func (s *Service) logInfo(msg string, args ...any) {
	if s.Logger != nil {
		s.Logger.Info(msg, args...)
	}
}
