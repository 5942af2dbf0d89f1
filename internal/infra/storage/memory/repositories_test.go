package memory

import (
	"context"
	"errors"
	"testing"

	domainguest "staybook/internal/domain/guest"
)

func TestGuestSaveRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewGuestRepository()

	first := &domainguest.Guest{ID: "g-1", FirstName: "John", LastName: "Doe", Email: "john.doe@example.com"}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}

	second := &domainguest.Guest{ID: "g-2", FirstName: "Johnny", LastName: "Donut", Email: "john.doe@example.com"}
	if err := repo.Save(ctx, second); !errors.Is(err, domainguest.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("records stored under one email = %d, want 1", len(all))
	}
	g, err := repo.ByEmail(ctx, "john.doe@example.com")
	if err != nil {
		t.Fatalf("by email: %v", err)
	}
	if g.ID != "g-1" {
		t.Fatalf("email resolves to %s, want g-1", g.ID)
	}
}

func TestGuestSaveReindexesOnEmailChange(t *testing.T) {
	ctx := context.Background()
	repo := NewGuestRepository()

	g := &domainguest.Guest{ID: "g-1", FirstName: "John", LastName: "Doe", Email: "john.doe@example.com"}
	if err := repo.Save(ctx, g); err != nil {
		t.Fatalf("save: %v", err)
	}
	g.Email = "jon.doe@example.com"
	if err := repo.Save(ctx, g); err != nil {
		t.Fatalf("save with new email: %v", err)
	}

	if _, err := repo.ByEmail(ctx, "john.doe@example.com"); !errors.Is(err, domainguest.ErrGuestNotFound) {
		t.Fatalf("old email still indexed: %v", err)
	}
	// The freed email is claimable by another guest.
	other := &domainguest.Guest{ID: "g-2", FirstName: "Jane", LastName: "Smith", Email: "john.doe@example.com"}
	if err := repo.Save(ctx, other); err != nil {
		t.Fatalf("save freed email: %v", err)
	}
}

func TestGuestSaveSameIDOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewGuestRepository()

	g := &domainguest.Guest{ID: "g-1", FirstName: "John", LastName: "Doe", Email: "john.doe@example.com"}
	if err := repo.Save(ctx, g); err != nil {
		t.Fatalf("save: %v", err)
	}
	g.FirstName = "Jonathan"
	if err := repo.Save(ctx, g); err != nil {
		t.Fatalf("re-save same id: %v", err)
	}
	stored, err := repo.ByID(ctx, "g-1")
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if stored.FirstName != "Jonathan" {
		t.Fatalf("first name = %q", stored.FirstName)
	}
}
