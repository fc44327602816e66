package search_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/campsite/internal/booking"
	"github.com/example/campsite/internal/domain/camping"
	"github.com/example/campsite/internal/search"
	"github.com/example/campsite/internal/storetest"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func season(t *testing.T, opening, closing int) camping.SeasonWindow {
	t.Helper()
	w, err := camping.NewSeasonWindow(opening, closing)
	if err != nil {
		t.Fatalf("NewSeasonWindow(%d, %d): %v", opening, closing, err)
	}
	return w
}

func TestCampgroundSearchFiltersAttributes(t *testing.T) {
	store := storetest.New()
	park := store.AddPark(camping.Park{Name: "Acadia"})
	camp := store.AddCampground(camping.Campground{
		ParkID: park.ID, Name: "Blackwoods",
		Season: season(t, 1, 12), DailyFeeCents: 3500,
	})
	store.AddSite(camping.Site{CampgroundID: camp.ID, Number: 1, MaxOccupancy: 2})
	big := store.AddSite(camping.Site{CampgroundID: camp.ID, Number: 2, MaxOccupancy: 8, Accessible: true, MaxRVLength: 30, Utilities: true})

	svc := &search.Service{Store: store}
	req := camping.AvailabilityRequest{
		Occupancy: 4, Accessible: true, RVLength: 20, Utilities: true,
		Arrival: date(2019, time.June, 1), Departure: date(2019, time.June, 3),
	}

	results, err := svc.Campground(context.Background(), camp.ID, req)
	if err != nil {
		t.Fatalf("Campground search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Site.ID != big.ID {
		t.Errorf("got site %d, want %d", results[0].Site.ID, big.ID)
	}
	if results[0].FeeCents != 7000 {
		t.Errorf("fee = %d, want 7000 (two nights at 3500)", results[0].FeeCents)
	}
}

func TestSearchExcludesOverlappingReservations(t *testing.T) {
	store := storetest.New()
	park := store.AddPark(camping.Park{Name: "Arches"})
	camp := store.AddCampground(camping.Campground{
		ParkID: park.ID, Name: "Devils Garden",
		Season: season(t, 1, 12), DailyFeeCents: 2000,
	})
	site := store.AddSite(camping.Site{CampgroundID: camp.ID, Number: 1, MaxOccupancy: 4})

	book := &booking.Service{Store: store, Now: func() time.Time { return date(2019, time.January, 1) }}
	if _, err := book.Book(context.Background(), 1, site.ID, "Smith", date(2019, time.June, 10), date(2019, time.June, 15)); err != nil {
		t.Fatalf("Book: %v", err)
	}

	svc := &search.Service{Store: store}
	base := camping.AvailabilityRequest{Occupancy: 2}

	tests := []struct {
		name      string
		arrival   time.Time
		departure time.Time
		wantHits  int
	}{
		{name: "inside existing stay", arrival: date(2019, time.June, 11), departure: date(2019, time.June, 12), wantHits: 0},
		{name: "containing existing stay", arrival: date(2019, time.June, 8), departure: date(2019, time.June, 20), wantHits: 0},
		{name: "starting on departure day", arrival: date(2019, time.June, 15), departure: date(2019, time.June, 18), wantHits: 1},
		{name: "ending on arrival day", arrival: date(2019, time.June, 8), departure: date(2019, time.June, 10), wantHits: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			req.Arrival, req.Departure = tt.arrival, tt.departure
			results, err := svc.Campground(context.Background(), camp.ID, req)
			if err != nil {
				t.Fatalf("Campground search: %v", err)
			}
			if len(results) != tt.wantHits {
				t.Errorf("got %d results, want %d", len(results), tt.wantHits)
			}
		})
	}
}

func TestSearchCapsAtFiveOrderedBySiteID(t *testing.T) {
	store := storetest.New()
	park := store.AddPark(camping.Park{Name: "Cuyahoga Valley"})
	camp := store.AddCampground(camping.Campground{
		ParkID: park.ID, Name: "The Ledges",
		Season: season(t, 1, 12), DailyFeeCents: 1500,
	})
	var siteIDs []int64
	for n := 1; n <= 9; n++ {
		s := store.AddSite(camping.Site{CampgroundID: camp.ID, Number: n, MaxOccupancy: 6})
		siteIDs = append(siteIDs, s.ID)
	}

	svc := &search.Service{Store: store}
	req := camping.AvailabilityRequest{Occupancy: 2, Arrival: date(2019, time.July, 1), Departure: date(2019, time.July, 4)}

	results, err := svc.Campground(context.Background(), camp.ID, req)
	if err != nil {
		t.Fatalf("Campground search: %v", err)
	}
	if len(results) != search.MaxResults {
		t.Fatalf("got %d results, want %d", len(results), search.MaxResults)
	}
	for i, r := range results {
		if r.Site.ID != siteIDs[i] {
			t.Errorf("result %d is site %d, want %d (ascending site id)", i, r.Site.ID, siteIDs[i])
		}
	}
}

func TestSeasonWindowGatesBothScopes(t *testing.T) {
	store := storetest.New()
	park := store.AddPark(camping.Park{Name: "Acadia"})
	camp := store.AddCampground(camping.Campground{
		ParkID: park.ID, Name: "Seawall",
		Season: season(t, 2, 4), DailyFeeCents: 1000,
	})
	store.AddSite(camping.Site{CampgroundID: camp.ID, Number: 1, MaxOccupancy: 25, Accessible: true})

	svc := &search.Service{Store: store}
	outOfSeason := camping.AvailabilityRequest{Occupancy: 2, Arrival: date(2019, time.October, 10), Departure: date(2019, time.November, 11)}
	inSeason := camping.AvailabilityRequest{Occupancy: 2, Arrival: date(2019, time.March, 1), Departure: date(2019, time.March, 4)}

	for _, scope := range []string{"park", "campground"} {
		run := func(req camping.AvailabilityRequest) ([]search.Result, error) {
			if scope == "park" {
				return svc.Park(context.Background(), park.ID, req)
			}
			return svc.Campground(context.Background(), camp.ID, req)
		}

		results, err := run(outOfSeason)
		if err != nil {
			t.Fatalf("%s search: %v", scope, err)
		}
		if len(results) != 0 {
			t.Errorf("%s scope returned %d out-of-season results, want 0", scope, len(results))
		}

		results, err = run(inSeason)
		if err != nil {
			t.Fatalf("%s search: %v", scope, err)
		}
		if len(results) != 1 {
			t.Errorf("%s scope returned %d in-season results, want 1", scope, len(results))
		}
	}
}

func TestParkSearchSpansCampgrounds(t *testing.T) {
	store := storetest.New()
	park := store.AddPark(camping.Park{Name: "Acadia"})
	cheap := store.AddCampground(camping.Campground{ParkID: park.ID, Name: "A", Season: season(t, 1, 12), DailyFeeCents: 1000})
	dear := store.AddCampground(camping.Campground{ParkID: park.ID, Name: "B", Season: season(t, 1, 12), DailyFeeCents: 5000})
	s1 := store.AddSite(camping.Site{CampgroundID: cheap.ID, Number: 1, MaxOccupancy: 4})
	s2 := store.AddSite(camping.Site{CampgroundID: dear.ID, Number: 1, MaxOccupancy: 4})

	svc := &search.Service{Store: store}
	req := camping.AvailabilityRequest{Occupancy: 2, Arrival: date(2019, time.May, 10), Departure: date(2019, time.May, 11)}

	results, err := svc.Park(context.Background(), park.ID, req)
	if err != nil {
		t.Fatalf("Park search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	// each result priced by its owning campground
	byID := map[int64]int64{s1.ID: 1000, s2.ID: 5000}
	for _, r := range results {
		if want := byID[r.Site.ID]; r.FeeCents != want {
			t.Errorf("site %d fee = %d, want %d", r.Site.ID, r.FeeCents, want)
		}
	}
}

func TestSearchErrors(t *testing.T) {
	store := storetest.New()
	svc := &search.Service{Store: store}
	valid := camping.AvailabilityRequest{Arrival: date(2019, time.May, 10), Departure: date(2019, time.May, 12)}

	if _, err := svc.Campground(context.Background(), 42, valid); !errors.Is(err, camping.ErrNotFound) {
		t.Errorf("missing campground: error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Park(context.Background(), 42, valid); !errors.Is(err, camping.ErrNotFound) {
		t.Errorf("missing park: error = %v, want ErrNotFound", err)
	}

	park := store.AddPark(camping.Park{Name: "Acadia"})
	bad := camping.AvailabilityRequest{Arrival: date(2019, time.May, 12), Departure: date(2019, time.May, 12)}
	if _, err := svc.Park(context.Background(), park.ID, bad); !errors.Is(err, camping.ErrInvalidRange) {
		t.Errorf("invalid range: error = %v, want ErrInvalidRange", err)
	}

	// empty result set is a valid outcome, not an error
	results, err := svc.Park(context.Background(), park.ID, valid)
	if err != nil {
		t.Fatalf("Park search: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("got %v, want empty non-nil result set", results)
	}
}
