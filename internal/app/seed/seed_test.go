package seed

import (
	"context"
	"testing"

	"staybook/internal/infra/storage/memory"
)

func TestRunPopulatesEmptyStore(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewFactory()

	if err := Run(ctx, factory, nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	owners, err := factory.OwnersRepo.List(ctx)
	if err != nil {
		t.Fatalf("list owners: %v", err)
	}
	if len(owners) != 3 {
		t.Fatalf("owners = %d, want 3", len(owners))
	}
	props, err := factory.PropertiesRepo.List(ctx)
	if err != nil {
		t.Fatalf("list properties: %v", err)
	}
	if len(props) != 5 {
		t.Fatalf("properties = %d, want 5", len(props))
	}
	guests, err := factory.GuestsRepo.List(ctx)
	if err != nil {
		t.Fatalf("list guests: %v", err)
	}
	if len(guests) != 5 {
		t.Fatalf("guests = %d, want 5", len(guests))
	}

	// Every property points at a seeded owner.
	known := make(map[string]bool, len(owners))
	for _, o := range owners {
		known[string(o.ID)] = true
	}
	for _, p := range props {
		if !known[string(p.OwnerID)] {
			t.Fatalf("property %s references unknown owner %s", p.Name, p.OwnerID)
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewFactory()

	if err := Run(ctx, factory, nil); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := Run(ctx, factory, nil); err != nil {
		t.Fatalf("second run: %v", err)
	}

	owners, _ := factory.OwnersRepo.List(ctx)
	props, _ := factory.PropertiesRepo.List(ctx)
	if len(owners) != 3 || len(props) != 5 {
		t.Fatalf("rerun duplicated data: owners=%d properties=%d", len(owners), len(props))
	}
}
