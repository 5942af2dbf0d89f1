package memory

import (
	"context"
	"errors"

	"staybook/internal/app/uow"
	domainblock "staybook/internal/domain/block"
	domainbooking "staybook/internal/domain/booking"
	domainguest "staybook/internal/domain/guest"
	domainproperty "staybook/internal/domain/property"
)

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Factory wires the in-memory repositories into a unit-of-work boundary.
// No isolation is provided; correctness under concurrency comes from the
// per-property lock held by the services around each unit.
type Factory struct {
	PropertiesRepo *PropertyRepository
	OwnersRepo     *OwnerRepository
	GuestsRepo     *GuestRepository
	BookingsRepo   *BookingRepository
	BlocksRepo     *BlockRepository
}

// NewFactory builds a factory with fresh empty repositories.
func NewFactory() Factory {
	return Factory{
		PropertiesRepo: NewPropertyRepository(),
		OwnersRepo:     NewOwnerRepository(),
		GuestsRepo:     NewGuestRepository(),
		BookingsRepo:   NewBookingRepository(),
		BlocksRepo:     NewBlockRepository(),
	}
}

func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.PropertiesRepo == nil || f.OwnersRepo == nil || f.GuestsRepo == nil || f.BookingsRepo == nil || f.BlocksRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{factory: f}, nil
}

type Unit struct {
	factory Factory
}

func (u *Unit) Properties() domainproperty.Repository      { return u.factory.PropertiesRepo }
func (u *Unit) Owners() domainproperty.OwnerRepository     { return u.factory.OwnersRepo }
func (u *Unit) Guests() domainguest.Repository             { return u.factory.GuestsRepo }
func (u *Unit) Bookings() domainbooking.Repository         { return u.factory.BookingsRepo }
func (u *Unit) Blocks() domainblock.Repository             { return u.factory.BlocksRepo }
func (u *Unit) Context(ctx context.Context) context.Context { return ctx }
func (u *Unit) Commit(ctx context.Context) error           { return nil }
func (u *Unit) Rollback(ctx context.Context) error         { return nil }
