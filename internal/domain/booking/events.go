package booking

import (
	"time"

	"staybook/internal/domain/guest"
	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
)

type Confirmed struct {
	BookingID  BookingID
	PropertyID property.PropertyID
	GuestID    guest.GuestID
	Range      daterange.DateRange
	At         time.Time
}

func (e Confirmed) EventName() string     { return "booking.confirmed" }
func (e Confirmed) AggregateID() string   { return string(e.BookingID) }
func (e Confirmed) OccurredAt() time.Time { return e.At }

type Rescheduled struct {
	BookingID  BookingID
	PropertyID property.PropertyID
	Range      daterange.DateRange
	At         time.Time
}

func (e Rescheduled) EventName() string     { return "booking.rescheduled" }
func (e Rescheduled) AggregateID() string   { return string(e.BookingID) }
func (e Rescheduled) OccurredAt() time.Time { return e.At }

type Canceled struct {
	BookingID  BookingID
	PropertyID property.PropertyID
	Range      daterange.DateRange
	At         time.Time
}

func (e Canceled) EventName() string     { return "booking.canceled" }
func (e Canceled) AggregateID() string   { return string(e.BookingID) }
func (e Canceled) OccurredAt() time.Time { return e.At }

type Rebooked struct {
	BookingID  BookingID
	PropertyID property.PropertyID
	Range      daterange.DateRange
	At         time.Time
}

func (e Rebooked) EventName() string     { return "booking.rebooked" }
func (e Rebooked) AggregateID() string   { return string(e.BookingID) }
func (e Rebooked) OccurredAt() time.Time { return e.At }

type Deleted struct {
	BookingID  BookingID
	PropertyID property.PropertyID
	At         time.Time
}

func (e Deleted) EventName() string     { return "booking.deleted" }
func (e Deleted) AggregateID() string   { return string(e.BookingID) }
func (e Deleted) OccurredAt() time.Time { return e.At }
