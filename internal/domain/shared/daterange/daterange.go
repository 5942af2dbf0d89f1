package daterange

import (
	"errors"
	"time"
)

var (
	ErrStartAfterEnd = errors.New("daterange: start date must not be after end date")
	ErrStartInPast   = errors.New("daterange: start date cannot be in the past")
)

// DateRange represents an inclusive calendar-day interval [Start, End].
// Two ranges conflict when they share at least one day, so a range ending
// on the day another begins overlaps it; strictly adjacent ranges do not.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Day truncates a timestamp to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func New(start, end time.Time) (DateRange, error) {
	dr := DateRange{Start: Day(start), End: Day(end)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ErrStartAfterEnd
	}
	if dr.Start.After(dr.End) {
		return ErrStartAfterEnd
	}
	return nil
}

// ValidateNotPast rejects ranges starting before the given reference day.
// The caller supplies "today" so tests can pin the clock.
func (dr DateRange) ValidateNotPast(today time.Time) error {
	if dr.Start.Before(Day(today)) {
		return ErrStartInPast
	}
	return nil
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return !dr.Start.After(other.End) && !other.Start.After(dr.End)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	d := Day(t)
	return !d.Before(dr.Start) && !d.After(dr.End)
}

func (dr DateRange) Nights() int {
	return int(dr.End.Sub(dr.Start).Hours() / 24)
}
