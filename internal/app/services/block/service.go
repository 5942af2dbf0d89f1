package block

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"staybook/internal/app/availability"
	"staybook/internal/app/events"
	"staybook/internal/app/locks"
	"staybook/internal/app/uow"
	domainblock "staybook/internal/domain/block"
	domainproperty "staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
	domainevents "staybook/internal/domain/shared/events"
)

// Service drives the block lifecycle. Blocks are owner-only: every mutation
// verifies the caller against the property's owner before anything else is
// decided, and a missing block or property is reported as not-found rather
// than unauthorized.
type Service struct {
	UoW       uow.Factory
	Locks     *locks.PropertyLocks
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
	PropertyID domainproperty.PropertyID
	OwnerID    domainproperty.OwnerID
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*domainblock.Block, error) {
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

	if err := s.verifyOwnership(ctx, unit, params.PropertyID, params.OwnerID); err != nil {
		return nil, err
	}
	if err := s.Checker.CheckAvailable(ctx, unit.Bookings(), unit.Blocks(), params.PropertyID, rng, availability.Exclude{}); err != nil {
		return nil, err
	}

	b := domainblock.New(domainblock.BlockID(uuid.NewString()), params.PropertyID, rng, params.Reason, s.now())
	if err := unit.Blocks().Save(ctx, b); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	s.logInfo("block created", "block_id", b.ID, "property_id", b.PropertyID)
	s.publish(ctx, b)
	return b, nil
}

func (s *Service) Get(ctx context.Context, id domainblock.BlockID) (*domainblock.Block, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	ctx = unit.Context(ctx)
	defer func() { _ = unit.Rollback(ctx) }()

	return unit.Blocks().ByID(ctx, id)
}

func (s *Service) ListByProperty(ctx context.Context, propertyID domainproperty.PropertyID) ([]*domainblock.Block, error) {
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
	return unit.Blocks().ListByProperty(ctx, propertyID)
}

// UpdateParams carries a partial block update; a missing date defaults to
// the stored value, a supplied reason overwrites verbatim.
type UpdateParams struct {
	StartDate *time.Time
	EndDate   *time.Time
	Reason    *string
}

func (s *Service) Update(ctx context.Context, id domainblock.BlockID, ownerID domainproperty.OwnerID, params UpdateParams) (*domainblock.Block, error) {
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

	b, err := unit.Blocks().ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.verifyOwnership(ctx, unit, b.PropertyID, ownerID); err != nil {
		return nil, err
	}

	if params.StartDate != nil || params.EndDate != nil {
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
		if err := s.Checker.CheckAvailable(ctx, unit.Bookings(), unit.Blocks(), b.PropertyID, rng, availability.Exclude{BlockID: b.ID}); err != nil {
			return nil, err
		}
		b.Reschedule(rng, s.now())
	}

	if params.Reason != nil {
		b.SetReason(*params.Reason, s.now())
	}

	if err := unit.Blocks().Save(ctx, b); err != nil {
		return nil, err
	}
	if err := unit.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	s.logInfo("block updated", "block_id", b.ID)
	s.publish(ctx, b)
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id domainblock.BlockID, ownerID domainproperty.OwnerID) error {
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

	b, err := unit.Blocks().ByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.verifyOwnership(ctx, unit, b.PropertyID, ownerID); err != nil {
		return err
	}
	if err := unit.Blocks().Delete(ctx, b.ID); err != nil {
		return err
	}
	if err := unit.Commit(ctx); err != nil {
		return err
	}
	committed = true

	s.logInfo("block deleted", "block_id", b.ID)
	events.PublishAll(ctx, s.Publisher, s.Logger, []domainevents.DomainEvent{
		domainblock.Deleted{BlockID: b.ID, PropertyID: b.PropertyID, At: s.now().UTC()},
	})
	return nil
}

// verifyOwnership distinguishes a missing property (not found) from a
// property owned by someone else (unauthorized).
func (s *Service) verifyOwnership(ctx context.Context, unit uow.UnitOfWork, propertyID domainproperty.PropertyID, ownerID domainproperty.OwnerID) error {
	p, err := unit.Properties().ByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if p.OwnerID != ownerID {
		return domainblock.ErrNotOwner
	}
	return nil
}

func (s *Service) propertyOf(ctx context.Context, id domainblock.BlockID) (domainproperty.PropertyID, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return "", err
	}
	ctx = unit.Context(ctx)
	defer func() { _ = unit.Rollback(ctx) }()

	b, err := unit.Blocks().ByID(ctx, id)
	if err != nil {
		return "", err
	}
	return b.PropertyID, nil
}

func (s *Service) publish(ctx context.Context, b *domainblock.Block) {
	evs := b.PendingEvents()
	b.ClearEvents()
	events.PublishAll(ctx, s.Publisher, s.Logger, evs)
}

func (s *Service) logInfo(msg string, args ...any) {
	if s.Logger != nil {
		s.Logger.Info(msg, args...)
	}
}
