package schedule

import (
	"errors"
	"time"
)

// Validation errors. Each maps to a specific user-facing message; exactly one
// is returned per failed attempt, checked in declaration order.
var (
	ErrMalformed    = errors.New("schedule: malformed date or time")
	ErrPast         = errors.New("schedule: appointment is in the past")
	ErrTooFarFuture = errors.New("schedule: appointment beyond booking horizon")
	ErrOutsideHours = errors.New("schedule: appointment outside business hours")
)

// Rules carries the clinic booking constraints.
type Rules struct {
	Location      *time.Location
	OpeningHour   int           // inclusive
	ClosingHour   int           // exclusive
	Horizon       time.Duration // furthest bookable instant after now
	PastTolerance time.Duration // grace window behind now
}

// DefaultRules returns the production booking constraints: [10:00, 20:00)
// local hours, 30-day horizon, one minute of clock-skew tolerance.
func DefaultRules(loc *time.Location) Rules {
	if loc == nil {
		loc = time.UTC
	}
	return Rules{
		Location:      loc,
		OpeningHour:   10,
		ClosingHour:   20,
		Horizon:       30 * 24 * time.Hour,
		PastTolerance: time.Minute,
	}
}

// Validate combines a date and time string into a single instant and checks
// it against the booking rules. Rules are applied in order: parse, past
// bound, horizon, business hours; the first violation wins.
func Validate(date, clock string, now time.Time, rules Rules) (time.Time, error) {
	loc := rules.Location
	if loc == nil {
		loc = time.UTC
	}

	instant, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, ErrMalformed
	}

	if instant.Before(now.Add(-rules.PastTolerance)) {
		return time.Time{}, ErrPast
	}
	if instant.After(now.Add(rules.Horizon)) {
		return time.Time{}, ErrTooFarFuture
	}
	if hour := instant.Hour(); hour < rules.OpeningHour || hour >= rules.ClosingHour {
		return time.Time{}, ErrOutsideHours
	}

	return instant, nil
}
