package camping

import "time"

// Park is a top-level catalog entry. Parks are created once by an
// administrator and read-only afterwards.
type Park struct {
	ID             int64
	Name           string
	Location       string
	EstablishedOn  time.Time
	AreaAcres      int64
	AnnualVisitors int64
	Description    string
}

// Campground belongs to exactly one park and carries the seasonal open
// window plus the flat nightly rate for all of its sites.
type Campground struct {
	ID            int64
	ParkID        int64
	Name          string
	Season        SeasonWindow
	DailyFeeCents int64
}

// Site is a single campsite within a campground. MaxRVLength of 0 means
// the site cannot take an RV at all.
type Site struct {
	ID           int64
	CampgroundID int64
	Number       int
	MaxOccupancy int
	Accessible   bool
	MaxRVLength  int
	Utilities    bool
}

// Reservation holds a site for the half-open date interval [From, To).
type Reservation struct {
	ID               int64
	SiteID           int64
	Name             string
	From             time.Time
	To               time.Time
	CreatedAt        time.Time
	ConfirmationCode string
}

// AvailabilityRequest describes what a caller needs from a site. It is
// transient; the scope (campground or park) is carried separately by the
// search call.
type AvailabilityRequest struct {
	Occupancy  int
	Accessible bool
	RVLength   int
	Utilities  bool
	Arrival    time.Time
	Departure  time.Time
}

// Validate rejects a request whose dates cannot describe a stay.
func (r AvailabilityRequest) Validate() error {
	if !r.Departure.After(r.Arrival) {
		return ErrInvalidRange
	}
	return nil
}
