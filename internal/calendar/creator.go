// Package calendar creates confirmed appointments in the clinic calendar.
// Conflict detection and availability checks stay on the calendar side; this
// package only submits events.
package calendar

import (
	"context"
	"time"
)

// Confirmation is returned when an event was created.
type Confirmation struct {
	EventID string
	Link    string
}

// Creator is the external calendar collaborator invoked once a full valid
// schedule exists.
type Creator interface {
	CreateAppointment(ctx context.Context, holderName string, start time.Time) (Confirmation, error)
}
