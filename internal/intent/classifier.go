// Package intent detects appointment-booking intent in inbound messages.
package intent

import "strings"

// bookingKeywords is the fixed trigger set. It deliberately includes generic
// greetings ("hola", "buenas"), so small talk also starts the booking flow.
// Known false-positive source; kept to match production behavior.
var bookingKeywords = []string{
	"cita", "reservar", "reserva", "agendar", "agenda",
	"quiero una cita", "hacer una cita", "necesito cita",
	"hola", "buenos días", "buenas", "qué tal", "buen dia",
}

// HasBookingIntent reports whether the text contains any booking trigger.
// Matching is case-insensitive substring containment.
func HasBookingIntent(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range bookingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
