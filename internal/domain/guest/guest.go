package guest

import (
	"context"
	"errors"
)

var (
	ErrGuestNotFound = errors.New("guest: not found")
	ErrEmailTaken    = errors.New("guest: email already registered to another guest")
)

type GuestID string

// Guest is an opaque identity resolved by email. It is never part of
// availability decisions; the booking core only stores its id.
type Guest struct {
	ID        GuestID
	FirstName string
	LastName  string
	Email     string
}

// Repository implementations must keep email unique under concurrent
// writers: Save returns ErrEmailTaken when the email already belongs to a
// guest with a different id (unique index in Mongo, an email index held
// under the write lock in the memory store).
type Repository interface {
	ByID(ctx context.Context, id GuestID) (*Guest, error)
	ByEmail(ctx context.Context, email string) (*Guest, error)
	Save(ctx context.Context, g *Guest) error
	List(ctx context.Context) ([]*Guest, error)
}
