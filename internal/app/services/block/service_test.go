package block

import (
	"context"
	"errors"
	"testing"
	"time"

	"staybook/internal/app/availability"
	"staybook/internal/app/locks"
	domainblock "staybook/internal/domain/block"
	domainbooking "staybook/internal/domain/booking"
	domainproperty "staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/infra/storage/memory"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func day(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 0, 0, 0, 0, time.UTC)
}

type testEnv struct {
	factory    memory.Factory
	svc        *Service
	propertyID domainproperty.PropertyID
	ownerID    domainproperty.OwnerID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	factory := memory.NewFactory()

	owner := &domainproperty.Owner{ID: "owner-1", FirstName: "Alice", LastName: "Johnson", Email: "alice@example.com"}
	if err := factory.OwnersRepo.Save(ctx, owner); err != nil {
		t.Fatalf("save owner: %v", err)
	}
	prop := &domainproperty.Property{ID: "prop-1", OwnerID: owner.ID, Name: "Mountain Cabin"}
	if err := factory.PropertiesRepo.Save(ctx, prop); err != nil {
		t.Fatalf("save property: %v", err)
	}

	svc := &Service{
		UoW:     factory,
		Locks:   locks.NewPropertyLocks(),
		Checker: availability.Checker{Clock: fixedClock},
		Clock:   fixedClock,
	}
	return &testEnv{factory: factory, svc: svc, propertyID: prop.ID, ownerID: owner.ID}
}

func (e *testEnv) create(t *testing.T, start, end time.Time, reason string) *domainblock.Block {
	t.Helper()
	b, err := e.svc.Create(context.Background(), CreateParams{
		PropertyID: e.propertyID,
		OwnerID:    e.ownerID,
		StartDate:  start,
		EndDate:    end,
		Reason:     reason,
	})
	if err != nil {
		t.Fatalf("create block: %v", err)
	}
	return b
}

func TestCreateBlock(t *testing.T) {
	env := newTestEnv(t)
	b := env.create(t, day(time.June, 10), day(time.June, 15), "maintenance")

	if b.Reason != "maintenance" {
		t.Fatalf("reason = %q", b.Reason)
	}
	stored, err := env.svc.Get(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !stored.Range.Start.Equal(day(time.June, 10)) {
		t.Fatalf("start = %v", stored.Range.Start)
	}
}

func TestCreateBlockNotOwner(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Create(context.Background(), CreateParams{
		PropertyID: env.propertyID,
		OwnerID:    "someone-else",
		StartDate:  day(time.June, 10),
		EndDate:    day(time.June, 15),
	})
	if !errors.Is(err, domainblock.ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
}

func TestCreateBlockUnknownProperty(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Create(context.Background(), CreateParams{
		PropertyID: "missing",
		OwnerID:    env.ownerID,
		StartDate:  day(time.June, 10),
		EndDate:    day(time.June, 15),
	})
	if !errors.Is(err, domainproperty.ErrPropertyNotFound) {
		t.Fatalf("err = %v, want ErrPropertyNotFound", err)
	}
}

func TestCreateBlockOverConfirmedBooking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rng, err := daterange.New(day(time.June, 12), day(time.June, 14))
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	bk := domainbooking.New("booking-1", env.propertyID, "guest-1", rng, testNow)
	if err := env.factory.BookingsRepo.Save(ctx, bk); err != nil {
		t.Fatalf("save booking: %v", err)
	}

	_, err = env.svc.Create(ctx, CreateParams{
		PropertyID: env.propertyID,
		OwnerID:    env.ownerID,
		StartDate:  day(time.June, 10),
		EndDate:    day(time.June, 15),
	})
	if !errors.Is(err, availability.ErrBooked) {
		t.Fatalf("err = %v, want ErrBooked", err)
	}

	// Once the booking is canceled the same block goes through.
	if err := bk.Cancel(testNow); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := env.factory.BookingsRepo.Save(ctx, bk); err != nil {
		t.Fatalf("save canceled booking: %v", err)
	}
	if _, err := env.svc.Create(ctx, CreateParams{
		PropertyID: env.propertyID,
		OwnerID:    env.ownerID,
		StartDate:  day(time.June, 10),
		EndDate:    day(time.June, 15),
	}); err != nil {
		t.Fatalf("block over canceled booking rejected: %v", err)
	}
}

func TestCreateBlockOverlapWithBlock(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, day(time.June, 10), day(time.June, 15), "")

	_, err := env.svc.Create(context.Background(), CreateParams{
		PropertyID: env.propertyID,
		OwnerID:    env.ownerID,
		StartDate:  day(time.June, 15),
		EndDate:    day(time.June, 20),
	})
	if !errors.Is(err, availability.ErrBlocked) {
		t.Fatalf("err = %v, want ErrBlocked", err)
	}
}

func TestUpdateBlockExcludesSelf(t *testing.T) {
	env := newTestEnv(t)
	b := env.create(t, day(time.June, 10), day(time.June, 15), "")

	start := day(time.June, 11)
	end := day(time.June, 16)
	updated, err := env.svc.Update(context.Background(), b.ID, env.ownerID, UpdateParams{StartDate: &start, EndDate: &end})
	if err != nil {
		t.Fatalf("self-overlapping update rejected: %v", err)
	}
	if !updated.Range.Start.Equal(start) || !updated.Range.End.Equal(end) {
		t.Fatalf("range = %v..%v", updated.Range.Start, updated.Range.End)
	}
}

func TestUpdateBlockReason(t *testing.T) {
	env := newTestEnv(t)
	b := env.create(t, day(time.June, 10), day(time.June, 15), "maintenance")

	reason := "personal use"
	updated, err := env.svc.Update(context.Background(), b.ID, env.ownerID, UpdateParams{Reason: &reason})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Reason != "personal use" {
		t.Fatalf("reason = %q", updated.Reason)
	}
	if !updated.Range.Start.Equal(day(time.June, 10)) {
		t.Fatal("dates must be untouched by a reason-only update")
	}
}

func TestUpdateBlockNotOwner(t *testing.T) {
	env := newTestEnv(t)
	b := env.create(t, day(time.June, 10), day(time.June, 15), "")

	reason := "nope"
	_, err := env.svc.Update(context.Background(), b.ID, "someone-else", UpdateParams{Reason: &reason})
	if !errors.Is(err, domainblock.ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
}

func TestDeleteBlock(t *testing.T) {
	env := newTestEnv(t)
	b := env.create(t, day(time.June, 10), day(time.June, 15), "")

	if err := env.svc.Delete(context.Background(), b.ID, "someone-else"); !errors.Is(err, domainblock.ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}

	if err := env.svc.Delete(context.Background(), b.ID, env.ownerID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := env.svc.Get(context.Background(), b.ID); !errors.Is(err, domainblock.ErrBlockNotFound) {
		t.Fatalf("err = %v, want ErrBlockNotFound", err)
	}

	// The freed range is bookable again.
	if _, err := env.svc.Create(context.Background(), CreateParams{
		PropertyID: env.propertyID,
		OwnerID:    env.ownerID,
		StartDate:  day(time.June, 10),
		EndDate:    day(time.June, 15),
	}); err != nil {
		t.Fatalf("range still held after delete: %v", err)
	}
}

func TestDeleteMissingBlock(t *testing.T) {
	env := newTestEnv(t)
	err := env.svc.Delete(context.Background(), "missing", env.ownerID)
	if !errors.Is(err, domainblock.ErrBlockNotFound) {
		t.Fatalf("err = %v, want ErrBlockNotFound", err)
	}
}

func TestListByPropertyUnknownProperty(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.ListByProperty(context.Background(), "missing")
	if !errors.Is(err, domainproperty.ErrPropertyNotFound) {
		t.Fatalf("err = %v, want ErrPropertyNotFound", err)
	}
}
