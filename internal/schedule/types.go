// Package schedule owns appointment date/time extraction, slot merging, and
// business-rule validation. Calendar arithmetic itself is delegated to the
// date/time oracle; this package only enforces the response schema and the
// booking rules.
package schedule

import "strings"

// Wire formats shared with the oracle and the session store.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Missing describes which schedule fragment is still unresolved.
type Missing string

const (
	MissingNone         Missing = "none"
	MissingHour         Missing = "hour"
	MissingDate         Missing = "date"
	MissingBoth         Missing = "both"
	MissingUnrecognized Missing = "unrecognized"
	MissingError        Missing = "error"
)

// Extraction is the structured result of one oracle pass over a user message.
type Extraction struct {
	Date    string // YYYY-MM-DD, empty when unresolved
	Time    string // HH:MM, empty when unresolved
	Missing Missing
}

// normalizeMissing maps the oracle's free-form "missing" string onto the
// closed enum. Any value outside the contract is treated as an oracle error,
// never matched ad hoc.
func normalizeMissing(raw string, date, clock string) (Missing, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		// The oracle reports null when it resolved everything; trust the
		// fields over the flag.
		return missingFromFields(date, clock), true
	case "hora":
		return MissingHour, true
	case "fecha":
		return MissingDate, true
	case "ambos":
		return MissingBoth, true
	case "no_entendido":
		return MissingUnrecognized, true
	default:
		return MissingError, false
	}
}

func missingFromFields(date, clock string) Missing {
	switch {
	case date != "" && clock != "":
		return MissingNone
	case date != "":
		return MissingHour
	case clock != "":
		return MissingDate
	default:
		return MissingBoth
	}
}
