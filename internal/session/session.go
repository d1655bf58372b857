// Package session holds the single mutable per-chat record tracking
// conversation state and partially collected booking data.
package session

// State is the conversation phase for one chat.
type State string

const (
	StateIdle            State = "idle"
	StateWaitingDocument State = "waiting_document"
	StateWaitingSchedule State = "waiting_schedule"
)

// Session is one chat's conversation record. HolderName is set once document
// validation succeeds; PartialDate/PartialTime hold fragments collected while
// slot filling and are only populated in StateWaitingSchedule.
type Session struct {
	State       State  `json:"state"`
	HolderName  string `json:"holder_name,omitempty"`
	PartialDate string `json:"partial_date,omitempty"`
	PartialTime string `json:"partial_time,omitempty"`
}

// New returns a fresh idle session with no residual booking data.
func New() Session {
	return Session{State: StateIdle}
}
