package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staybook/internal/app/uow"
	domainblock "staybook/internal/domain/block"
	domainbooking "staybook/internal/domain/booking"
	domainguest "staybook/internal/domain/guest"
	domainproperty "staybook/internal/domain/property"
)

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

// Factory wires Mongo sessions into the generic unit-of-work interface.
type Factory struct {
	DB *mongo.Database

	PropertiesRepo domainproperty.Repository
	OwnersRepo     domainproperty.OwnerRepository
	GuestsRepo     domainguest.Repository
	BookingsRepo   domainbooking.Repository
	BlocksRepo     domainblock.Repository
}

// NewFactory builds a factory with repositories bound to db's collections.
func NewFactory(db *mongo.Database) Factory {
	return Factory{
		DB:             db,
		PropertiesRepo: NewPropertyRepository(db),
		OwnersRepo:     NewOwnerRepository(db),
		GuestsRepo:     NewGuestRepository(db),
		BookingsRepo:   NewBookingRepository(db),
		BlocksRepo:     NewBlockRepository(db),
	}
}

func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().
		SetReadConcern(f.DB.ReadConcern()).
		SetWriteConcern(f.DB.WriteConcern())
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{factory: f, session: session}, nil
}

type Unit struct {
	factory Factory
	session mongo.Session
}

func (u *Unit) Properties() domainproperty.Repository  { return u.factory.PropertiesRepo }
func (u *Unit) Owners() domainproperty.OwnerRepository { return u.factory.OwnersRepo }
func (u *Unit) Guests() domainguest.Repository         { return u.factory.GuestsRepo }
func (u *Unit) Bookings() domainbooking.Repository     { return u.factory.BookingsRepo }
func (u *Unit) Blocks() domainblock.Repository         { return u.factory.BlocksRepo }

// Context makes the session visible to the repositories so their reads and
// writes join this transaction.
func (u *Unit) Context(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}

func (u *Unit) Commit(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.CommitTransaction(ctx)
}

func (u *Unit) Rollback(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.AbortTransaction(ctx)
}
