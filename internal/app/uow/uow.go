package uow

import (
	"context"

	"staybook/internal/domain/block"
	"staybook/internal/domain/booking"
	"staybook/internal/domain/guest"
	"staybook/internal/domain/property"
)

// UnitOfWork scopes repository access to one transaction boundary. Every
// lifecycle operation runs its reads and writes through a single unit so a
// validation failure leaves nothing partially applied.
type UnitOfWork interface {
	Properties() property.Repository
	Owners() property.OwnerRepository
	Guests() guest.Repository
	Bookings() booking.Repository
	Blocks() block.Repository

	// Context returns a derived context carrying whatever the backing store
	// needs to associate repository calls with this unit (Mongo sessions).
	Context(ctx context.Context) context.Context

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Factory starts unit of work instances.
type Factory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
