// Package storetest provides an in-memory store implementing the search and
// booking ports for tests.
package storetest

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/example/campsite/internal/booking"
	"github.com/example/campsite/internal/domain/camping"
)

type Store struct {
	mu sync.Mutex

	parks        map[int64]camping.Park
	campgrounds  map[int64]camping.Campground
	sites        map[int64]camping.Site
	reservations map[int64]camping.Reservation
	owners       map[int64]int64 // reservation id -> user id
	nextID       int64

	// FailLinkInsert makes InsertOwnershipLink fail, to exercise rollback.
	FailLinkInsert bool
}

func New() *Store {
	return &Store{
		parks:        map[int64]camping.Park{},
		campgrounds:  map[int64]camping.Campground{},
		sites:        map[int64]camping.Site{},
		reservations: map[int64]camping.Reservation{},
		owners:       map[int64]int64{},
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) AddPark(p camping.Park) camping.Park {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.id()
	s.parks[p.ID] = p
	return p
}

func (s *Store) AddCampground(c camping.Campground) camping.Campground {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.id()
	s.campgrounds[c.ID] = c
	return c
}

func (s *Store) AddSite(site camping.Site) camping.Site {
	s.mu.Lock()
	defer s.mu.Unlock()
	site.ID = s.id()
	s.sites[site.ID] = site
	return site
}

// ReservationCount reports how many reservations are committed.
func (s *Store) ReservationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reservations)
}

// OwnerOf returns the owning user of a reservation.
func (s *Store) OwnerOf(reservationID int64) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uid, ok := s.owners[reservationID]
	return uid, ok
}

func (s *Store) GetPark(_ context.Context, parkID int64) (camping.Park, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parks[parkID]
	if !ok {
		return camping.Park{}, camping.ErrNotFound
	}
	return p, nil
}

func (s *Store) GetCampground(_ context.Context, campgroundID int64) (camping.Campground, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campgrounds[campgroundID]
	if !ok {
		return camping.Campground{}, camping.ErrNotFound
	}
	return c, nil
}

func (s *Store) GetSite(_ context.Context, siteID int64) (camping.Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	site, ok := s.sites[siteID]
	if !ok {
		return camping.Site{}, camping.ErrNotFound
	}
	return site, nil
}

func (s *Store) ListCampgrounds(_ context.Context, parkID int64) ([]camping.Campground, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []camping.Campground
	for _, c := range s.campgrounds {
		if c.ParkID == parkID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListSites(_ context.Context, campgroundID int64) ([]camping.Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []camping.Site
	for _, site := range s.sites {
		if site.CampgroundID == campgroundID {
			out = append(out, site)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListReservationsForSite(_ context.Context, siteID int64) ([]camping.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reservationsForSiteLocked(siteID), nil
}

func (s *Store) reservationsForSiteLocked(siteID int64) []camping.Reservation {
	var out []camping.Reservation
	for _, r := range s.reservations {
		if r.SiteID == siteID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// InBookingTx serializes bookings under one mutex and discards staged
// writes when fn fails, mirroring a database rollback.
func (s *Store) InBookingTx(ctx context.Context, siteID int64, fn func(booking.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sites[siteID]; !ok {
		return camping.ErrNotFound
	}
	tx := &memTx{store: s, staged: map[int64]camping.Reservation{}, stagedOwners: map[int64]int64{}}
	if err := fn(tx); err != nil {
		return err
	}
	for id, r := range tx.staged {
		s.reservations[id] = r
	}
	for id, uid := range tx.stagedOwners {
		s.owners[id] = uid
	}
	return nil
}

type memTx struct {
	store        *Store
	staged       map[int64]camping.Reservation
	stagedOwners map[int64]int64
}

func (t *memTx) ListReservationsForSite(_ context.Context, siteID int64) ([]camping.Reservation, error) {
	out := t.store.reservationsForSiteLocked(siteID)
	for _, r := range t.staged {
		if r.SiteID == siteID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (t *memTx) InsertReservation(_ context.Context, r camping.Reservation) (int64, error) {
	r.ID = t.store.id()
	t.staged[r.ID] = r
	return r.ID, nil
}

func (t *memTx) InsertOwnershipLink(_ context.Context, userID, reservationID int64) error {
	if t.store.FailLinkInsert {
		return errors.New("storetest: link insert failure")
	}
	if _, ok := t.staged[reservationID]; !ok {
		if _, ok := t.store.reservations[reservationID]; !ok {
			return camping.ErrNotFound
		}
	}
	t.stagedOwners[reservationID] = userID
	return nil
}
