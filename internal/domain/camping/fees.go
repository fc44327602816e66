package camping

import (
	"fmt"
	"time"
)

// Nights counts whole nights between arrival and departure. Times of day
// are discarded: the count is the difference between the two civil dates,
// so any fractional day truncates toward the floor. A range whose civil
// dates are equal is rejected even when the timestamps differ.
func Nights(arrival, departure time.Time) (int, error) {
	if !departure.After(arrival) {
		return 0, ErrInvalidRange
	}
	a := civilDate(arrival)
	d := civilDate(departure)
	n := int(d.Sub(a).Hours() / 24)
	if n < 1 {
		return 0, ErrInvalidRange
	}
	return n, nil
}

// CalculateFee returns the total stay cost in cents: nightly rate times
// the number of nights.
func CalculateFee(dailyFeeCents int64, arrival, departure time.Time) (int64, error) {
	n, err := Nights(arrival, departure)
	if err != nil {
		return 0, err
	}
	return dailyFeeCents * int64(n), nil
}

// FormatCents renders a cent amount as dollars, e.g. 3500 -> "$35.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
