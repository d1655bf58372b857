// Package locale renders appointment dates and times in Mexican Spanish.
package locale

import (
	"fmt"
	"time"
)

var months = map[time.Month]string{
	time.January:   "enero",
	time.February:  "febrero",
	time.March:     "marzo",
	time.April:     "abril",
	time.May:       "mayo",
	time.June:      "junio",
	time.July:      "julio",
	time.August:    "agosto",
	time.September: "septiembre",
	time.October:   "octubre",
	time.November:  "noviembre",
	time.December:  "diciembre",
}

var weekdays = map[time.Weekday]string{
	time.Monday:    "lunes",
	time.Tuesday:   "martes",
	time.Wednesday: "miércoles",
	time.Thursday:  "jueves",
	time.Friday:    "viernes",
	time.Saturday:  "sábado",
	time.Sunday:    "domingo",
}

// Weekday returns the Spanish name for the weekday of t.
func Weekday(t time.Time) string {
	return weekdays[t.Weekday()]
}

// FormatDate renders t as "lunes, 2 de marzo de 2026".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d", weekdays[t.Weekday()], t.Day(), months[t.Month()], t.Year())
}

// FormatDateTime renders t as "lunes, 2 de marzo de 2026 a las 03:00 PM".
func FormatDateTime(t time.Time) string {
	return fmt.Sprintf("%s a las %s", FormatDate(t), t.Format("03:04 PM"))
}
