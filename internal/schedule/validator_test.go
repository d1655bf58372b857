package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	rules := DefaultRules(time.UTC)

	tests := []struct {
		name    string
		date    string
		clock   string
		wantErr error
	}{
		{"same day later", "2026-03-02", "15:00", nil},
		{"tomorrow morning", "2026-03-03", "10:30", nil},
		{"last day of horizon", "2026-04-01", "11:00", nil},
		{"yesterday", "2026-03-01", "15:00", ErrPast},
		{"beyond horizon", "2026-04-02", "12:30", ErrTooFarFuture},
		{"before opening", "2026-03-03", "09:59", ErrOutsideHours},
		{"opening hour passes", "2026-03-03", "10:00", nil},
		{"last minute passes", "2026-03-03", "19:59", nil},
		{"closing hour rejected", "2026-03-03", "20:00", ErrOutsideHours},
		{"late evening", "2026-03-03", "22:00", ErrOutsideHours},
		{"garbage date", "mañana", "15:00", ErrMalformed},
		{"garbage time", "2026-03-03", "3pm", ErrMalformed},
		{"empty inputs", "", "", ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instant, err := Validate(tt.date, tt.clock, now, rules)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.date, instant.Format(DateLayout))
			assert.Equal(t, tt.clock, instant.Format(TimeLayout))
		})
	}
}

func TestValidateGraceWindow(t *testing.T) {
	rules := DefaultRules(time.UTC)

	// Exactly one minute behind now is still accepted; one second more is not.
	now := time.Date(2026, time.March, 2, 15, 1, 0, 0, time.UTC)
	_, err := Validate("2026-03-02", "15:00", now, rules)
	assert.NoError(t, err)

	now = now.Add(time.Second)
	_, err = Validate("2026-03-02", "15:00", now, rules)
	assert.ErrorIs(t, err, ErrPast)
}

func TestValidateHorizonBoundary(t *testing.T) {
	rules := DefaultRules(time.UTC)

	// Exactly thirty days out is still bookable; one minute past is not.
	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	_, err := Validate("2026-04-01", "12:00", now, rules)
	assert.NoError(t, err)

	_, err = Validate("2026-04-01", "12:01", now, rules)
	assert.ErrorIs(t, err, ErrTooFarFuture)
}

func TestValidateRuleOrder(t *testing.T) {
	rules := DefaultRules(time.UTC)
	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)

	// A past instant outside business hours reports PAST, never OUTSIDE_HOURS.
	_, err := Validate("2026-03-01", "23:00", now, rules)
	assert.ErrorIs(t, err, ErrPast)
}

func TestValidateUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)
	rules := DefaultRules(loc)

	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, loc)
	instant, err := Validate("2026-03-02", "15:00", now, rules)
	require.NoError(t, err)
	assert.Equal(t, loc, instant.Location())
}
