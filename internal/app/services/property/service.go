package property

import (
	"context"

	"staybook/internal/app/uow"
	domainproperty "staybook/internal/domain/property"
)

// Service exposes read access to the property and owner catalog. Writes go
// through seeding only; self-service property management is out of scope.
type Service struct {
	UoW uow.Factory
}

func (s *Service) List(ctx context.Context) ([]*domainproperty.Property, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	ctx = unit.Context(ctx)
	defer func() { _ = unit.Rollback(ctx) }()

	return unit.Properties().List(ctx)
}

func (s *Service) Get(ctx context.Context, id domainproperty.PropertyID) (*domainproperty.Property, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	ctx = unit.Context(ctx)
	defer func() { _ = unit.Rollback(ctx) }()

	return unit.Properties().ByID(ctx, id)
}

func (s *Service) ListOwners(ctx context.Context) ([]*domainproperty.Owner, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	ctx = unit.Context(ctx)
	defer func() { _ = unit.Rollback(ctx) }()

	return unit.Owners().List(ctx)
}

func (s *Service) GetOwner(ctx context.Context, id domainproperty.OwnerID) (*domainproperty.Owner, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	ctx = unit.Context(ctx)
	defer func() { _ = unit.Rollback(ctx) }()

	return unit.Owners().ByID(ctx, id)
}
