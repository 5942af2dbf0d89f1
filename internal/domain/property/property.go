package property

import (
	"context"
	"errors"
)

var (
	ErrPropertyNotFound = errors.New("property: not found")
	ErrOwnerNotFound    = errors.New("property: owner not found")
)

type PropertyID string

type OwnerID string

// Property is read by the reservation core for two things only: existence
// and ownership. The descriptive fields are carried for listing endpoints.
type Property struct {
	ID          PropertyID
	OwnerID     OwnerID
	Name        string
	Address     string
	Description string
}

type Owner struct {
	ID        OwnerID
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

type Repository interface {
	ByID(ctx context.Context, id PropertyID) (*Property, error)
	Exists(ctx context.Context, id PropertyID) (bool, error)
	Save(ctx context.Context, p *Property) error
	List(ctx context.Context) ([]*Property, error)
}

type OwnerRepository interface {
	ByID(ctx context.Context, id OwnerID) (*Owner, error)
	Save(ctx context.Context, o *Owner) error
	List(ctx context.Context) ([]*Owner, error)
}
