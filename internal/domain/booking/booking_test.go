package booking

import (
	"errors"
	"testing"
	"time"

	"staybook/internal/domain/shared/daterange"
)

var testNow = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

func newTestBooking(t *testing.T) *Booking {
	t.Helper()
	rng, err := daterange.New(testNow.AddDate(0, 0, 5), testNow.AddDate(0, 0, 10))
	if err != nil {
		t.Fatal(err)
	}
	return New("bk-1", "prop-1", "guest-1", rng, testNow)
}

func TestNewBookingIsConfirmed(t *testing.T) {
	b := newTestBooking(t)
	if b.Status != StatusConfirmed {
		t.Fatalf("new booking must be CONFIRMED, got %s", b.Status)
	}
	evs := b.PendingEvents()
	if len(evs) != 1 || evs[0].EventName() != "booking.confirmed" {
		t.Fatalf("expected a single booking.confirmed event, got %v", evs)
	}
}

func TestCancelTwice(t *testing.T) {
	b := newTestBooking(t)
	if err := b.Cancel(testNow); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if b.Status != StatusCanceled {
		t.Fatalf("status = %s after cancel", b.Status)
	}
	if err := b.Cancel(testNow); !errors.Is(err, ErrAlreadyCanceled) {
		t.Fatalf("second cancel: expected ErrAlreadyCanceled, got %v", err)
	}
}

func TestRebookRequiresCanceled(t *testing.T) {
	b := newTestBooking(t)
	if err := b.Rebook(testNow); !errors.Is(err, ErrNotCanceled) {
		t.Fatalf("rebooking a confirmed booking: expected ErrNotCanceled, got %v", err)
	}
	if err := b.Cancel(testNow); err != nil {
		t.Fatal(err)
	}
	if err := b.Rebook(testNow); err != nil {
		t.Fatalf("rebooking a canceled booking: %v", err)
	}
	if b.Status != StatusConfirmed {
		t.Fatalf("status = %s after rebook", b.Status)
	}
}

func TestRescheduleRejectedWhileCanceled(t *testing.T) {
	b := newTestBooking(t)
	if err := b.Cancel(testNow); err != nil {
		t.Fatal(err)
	}
	rng, _ := daterange.New(testNow.AddDate(0, 0, 20), testNow.AddDate(0, 0, 25))
	if err := b.Reschedule(rng, testNow); !errors.Is(err, ErrBookingCanceled) {
		t.Fatalf("expected ErrBookingCanceled, got %v", err)
	}
}

func TestCancelPreservesDatesAndGuest(t *testing.T) {
	b := newTestBooking(t)
	rng := b.Range
	guestID := b.GuestID
	if err := b.Cancel(testNow); err != nil {
		t.Fatal(err)
	}
	if !b.Range.Start.Equal(rng.Start) || !b.Range.End.Equal(rng.End) {
		t.Fatal("cancel must not touch dates")
	}
	if b.GuestID != guestID {
		t.Fatal("cancel must not touch the guest")
	}
}
