package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"staybook/internal/app/uow"
	domainguest "staybook/internal/domain/guest"
	domainproperty "staybook/internal/domain/property"
)

type ownerSeed struct {
	firstName, lastName, email, phone string
	properties                        []propertySeed
}

type propertySeed struct {
	name, address, description string
}

type guestSeed struct {
	firstName, lastName, email string
}

var owners = []ownerSeed{
	{"Alice", "Johnson", "alice.johnson@example.com", "+1-555-0101", []propertySeed{
		{"Beachfront Villa", "123 Ocean Drive, Miami Beach, FL 33139", "Luxurious beachfront villa with stunning ocean views"},
		{"Mountain Cabin", "456 Pine Ridge Road, Aspen, CO 81611", "Cozy mountain cabin perfect for winter getaways"},
	}},
	{"Michael", "Brown", "michael.brown@example.com", "+1-555-0102", []propertySeed{
		{"City Apartment", "789 Broadway, New York, NY 10003", "Modern apartment in the heart of Manhattan"},
		{"Desert Oasis", "321 Cactus Lane, Scottsdale, AZ 85251", "Beautiful desert retreat with pool and spa"},
	}},
	{"Sarah", "Davis", "sarah.davis@example.com", "+1-555-0103", []propertySeed{
		{"Lake House", "555 Lakeview Drive, Lake Tahoe, CA 96150", "Peaceful lakeside house with private dock"},
	}},
}

var guests = []guestSeed{
	{"John", "Doe", "john.doe@example.com"},
	{"Jane", "Smith", "jane.smith@example.com"},
	{"Bob", "Wilson", "bob.wilson@example.com"},
	{"Emily", "Martinez", "emily.martinez@example.com"},
	{"David", "Lee", "david.lee@example.com"},
}

// Run populates sample owners, properties and guests when the store is
// empty. Running against a populated store is a no-op, so restarts are safe.
func Run(ctx context.Context, factory uow.Factory, log *slog.Logger) error {
	unit, err := factory.Begin(ctx, uow.TxOptions{})
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

	existing, err := unit.Owners().List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		if log != nil {
			log.Info("sample data already present, skipping seed")
		}
		return nil
	}

	ownerCount, propertyCount := 0, 0
	for _, os := range owners {
		o := &domainproperty.Owner{
			ID:        domainproperty.OwnerID(uuid.NewString()),
			FirstName: os.firstName,
			LastName:  os.lastName,
			Email:     os.email,
			Phone:     os.phone,
		}
		if err := unit.Owners().Save(ctx, o); err != nil {
			return fmt.Errorf("seed owner %s: %w", os.email, err)
		}
		ownerCount++
		for _, ps := range os.properties {
			p := &domainproperty.Property{
				ID:          domainproperty.PropertyID(uuid.NewString()),
				OwnerID:     o.ID,
				Name:        ps.name,
				Address:     ps.address,
				Description: ps.description,
			}
			if err := unit.Properties().Save(ctx, p); err != nil {
				return fmt.Errorf("seed property %s: %w", ps.name, err)
			}
			propertyCount++
		}
	}

	for _, gs := range guests {
		g := &domainguest.Guest{
			ID:        domainguest.GuestID(uuid.NewString()),
			FirstName: gs.firstName,
			LastName:  gs.lastName,
			Email:     gs.email,
		}
		if err := unit.Guests().Save(ctx, g); err != nil {
			return fmt.Errorf("seed guest %s: %w", gs.email, err)
		}
	}

	if err := unit.Commit(ctx); err != nil {
		return err
	}
	committed = true

	if log != nil {
		log.Info("sample data initialized", "owners", ownerCount, "properties", propertyCount, "guests", len(guests))
	}
	return nil
}
