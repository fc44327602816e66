package camping

import (
	"fmt"
	"time"
)

// SeasonWindow is a campground's open range in calendar months. Closing
// must be at or after opening; a season spanning the December/January
// boundary is not representable.
type SeasonWindow struct {
	Opening time.Month
	Closing time.Month
}

// NewSeasonWindow validates the month pair at construction time.
func NewSeasonWindow(opening, closing int) (SeasonWindow, error) {
	if opening < 1 || opening > 12 {
		return SeasonWindow{}, fmt.Errorf("opening month out of range: %d", opening)
	}
	if closing < 1 || closing > 12 {
		return SeasonWindow{}, fmt.Errorf("closing month out of range: %d", closing)
	}
	if closing < opening {
		return SeasonWindow{}, fmt.Errorf("closing month %d before opening month %d", closing, opening)
	}
	return SeasonWindow{Opening: time.Month(opening), Closing: time.Month(closing)}, nil
}

// IsOpen reports whether the requested stay falls inside the season.
// The comparison uses calendar month numbers only, ignoring years. A
// request spanning multiple years (e.g. Dec 2024 to Jan 2025) is therefore
// judged purely on its month numbers; that is a known simplification of the
// model, not something this method papers over.
func (w SeasonWindow) IsOpen(arrival, departure time.Time) bool {
	return arrival.Month() >= w.Opening && departure.Month() <= w.Closing
}

// OpeningName returns the opening month's English name.
func (w SeasonWindow) OpeningName() string {
	name, _ := MonthName(int(w.Opening))
	return name
}

// ClosingName returns the closing month's English name.
func (w SeasonWindow) ClosingName() string {
	name, _ := MonthName(int(w.Closing))
	return name
}
