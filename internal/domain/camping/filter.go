package camping

import "time"

// Fits reports whether the site's physical attributes satisfy the request.
// Each attribute is "site capability >= requested capability"; booleans
// compare as 0/1, so an accessible site satisfies both accessible and
// non-accessible requests.
func (s Site) Fits(req AvailabilityRequest) bool {
	if s.MaxOccupancy < req.Occupancy {
		return false
	}
	if req.Accessible && !s.Accessible {
		return false
	}
	if s.MaxRVLength < req.RVLength {
		return false
	}
	if req.Utilities && !s.Utilities {
		return false
	}
	return true
}

// Overlaps is the symmetric half-open interval test: [aFrom, aTo) and
// [bFrom, bTo) overlap unless one ends at or before the other begins.
func Overlaps(aFrom, aTo, bFrom, bTo time.Time) bool {
	return aFrom.Before(bTo) && bFrom.Before(aTo)
}

// SiteAvailable decides admission for one site: attributes must fit and no
// existing reservation may intersect the requested interval.
func SiteAvailable(site Site, req AvailabilityRequest, existing []Reservation) bool {
	if !site.Fits(req) {
		return false
	}
	for _, r := range existing {
		if Overlaps(r.From, r.To, req.Arrival, req.Departure) {
			return false
		}
	}
	return true
}
