// Package search finds open campsites for a date range, scoped to a single
// campground or to every campground in a park.
package search

import (
	"context"
	"sort"

	"github.com/example/campsite/internal/domain/camping"
)

// MaxResults caps every search; callers narrow their criteria rather than
// paginate.
const MaxResults = 5

// Store is the read side of the persistence port the search consumes.
// Implementations return camping.ErrNotFound for absent catalog entries.
type Store interface {
	GetPark(ctx context.Context, parkID int64) (camping.Park, error)
	GetCampground(ctx context.Context, campgroundID int64) (camping.Campground, error)
	ListCampgrounds(ctx context.Context, parkID int64) ([]camping.Campground, error)
	ListSites(ctx context.Context, campgroundID int64) ([]camping.Site, error)
	ListReservationsForSite(ctx context.Context, siteID int64) ([]camping.Reservation, error)
}

// Result is one available site together with the total fee for the stay,
// computed from the owning campground's nightly rate.
type Result struct {
	Site       camping.Site
	Campground camping.Campground
	FeeCents   int64
}

type Service struct {
	Store Store
}

// Campground returns available sites within one campground. The season
// window gates this scope the same way it gates park-wide searches; an
// out-of-season range yields no results rather than an error.
func (s *Service) Campground(ctx context.Context, campgroundID int64, req camping.AvailabilityRequest) ([]Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	camp, err := s.Store.GetCampground(ctx, campgroundID)
	if err != nil {
		return nil, err
	}
	results, err := s.collect(ctx, camp, req, nil)
	if err != nil {
		return nil, err
	}
	return finish(results), nil
}

// Park returns available sites across all campgrounds of a park.
func (s *Service) Park(ctx context.Context, parkID int64, req camping.AvailabilityRequest) ([]Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.Store.GetPark(ctx, parkID); err != nil {
		return nil, err
	}
	camps, err := s.Store.ListCampgrounds(ctx, parkID)
	if err != nil {
		return nil, err
	}
	var results []Result
	for _, camp := range camps {
		results, err = s.collect(ctx, camp, req, results)
		if err != nil {
			return nil, err
		}
	}
	return finish(results), nil
}

func (s *Service) collect(ctx context.Context, camp camping.Campground, req camping.AvailabilityRequest, acc []Result) ([]Result, error) {
	if !camp.Season.IsOpen(req.Arrival, req.Departure) {
		return acc, nil
	}
	fee, err := camping.CalculateFee(camp.DailyFeeCents, req.Arrival, req.Departure)
	if err != nil {
		return nil, err
	}
	sites, err := s.Store.ListSites(ctx, camp.ID)
	if err != nil {
		return nil, err
	}
	for _, site := range sites {
		existing, err := s.Store.ListReservationsForSite(ctx, site.ID)
		if err != nil {
			return nil, err
		}
		if !camping.SiteAvailable(site, req, existing) {
			continue
		}
		acc = append(acc, Result{Site: site, Campground: camp, FeeCents: fee})
	}
	return acc, nil
}

// finish orders by site id ascending for a deterministic tie-break, then
// applies the result cap.
func finish(results []Result) []Result {
	sort.Slice(results, func(i, j int) bool { return results[i].Site.ID < results[j].Site.ID })
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	if results == nil {
		results = []Result{}
	}
	return results
}
