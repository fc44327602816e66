// Package postgres implements the persistence port on pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/campsite/internal/booking"
	"github.com/example/campsite/internal/db"
	"github.com/example/campsite/internal/domain/camping"
	"github.com/jackc/pgx/v5"
)

type Store struct {
	db *db.DB
}

func NewStore(d *db.DB) *Store { return &Store{db: d} }

type scanner interface {
	Scan(dest ...any) error
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return camping.ErrNotFound
	}
	return fmt.Errorf("store: %w", err)
}

// Parks

const parkColumns = `park_id, name, location, establish_date, area, visitors, description`

func scanPark(s scanner) (camping.Park, error) {
	var p camping.Park
	err := s.Scan(&p.ID, &p.Name, &p.Location, &p.EstablishedOn, &p.AreaAcres, &p.AnnualVisitors, &p.Description)
	return p, err
}

func (st *Store) GetPark(ctx context.Context, parkID int64) (camping.Park, error) {
	p, err := scanPark(st.db.QueryRow(ctx, `SELECT `+parkColumns+` FROM park WHERE park_id=$1`, parkID))
	if err != nil {
		return camping.Park{}, wrap(err)
	}
	return p, nil
}

func (st *Store) ListParks(ctx context.Context) ([]camping.Park, error) {
	rows, err := st.db.Query(ctx, `SELECT `+parkColumns+` FROM park ORDER BY name`)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	var out []camping.Park
	for rows.Next() {
		p, err := scanPark(rows)
		if err != nil {
			return nil, wrap(err)
		}
		out = append(out, p)
	}
	return out, wrap(rows.Err())
}

func (st *Store) CreatePark(ctx context.Context, p camping.Park) (int64, error) {
	var id int64
	err := st.db.QueryRow(ctx, `
INSERT INTO park (name, location, establish_date, area, visitors, description)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING park_id`,
		p.Name, p.Location, p.EstablishedOn, p.AreaAcres, p.AnnualVisitors, p.Description,
	).Scan(&id)
	return id, wrap(err)
}

// Campgrounds

const campgroundColumns = `campground_id, park_id, name, open_from_mm, open_to_mm, daily_fee_cents`

func scanCampground(s scanner) (camping.Campground, error) {
	var c camping.Campground
	var openMM, closeMM int
	if err := s.Scan(&c.ID, &c.ParkID, &c.Name, &openMM, &closeMM, &c.DailyFeeCents); err != nil {
		return camping.Campground{}, err
	}
	c.Season = camping.SeasonWindow{Opening: time.Month(openMM), Closing: time.Month(closeMM)}
	return c, nil
}

func (st *Store) GetCampground(ctx context.Context, campgroundID int64) (camping.Campground, error) {
	c, err := scanCampground(st.db.QueryRow(ctx,
		`SELECT `+campgroundColumns+` FROM campground WHERE campground_id=$1`, campgroundID))
	if err != nil {
		return camping.Campground{}, wrap(err)
	}
	return c, nil
}

func (st *Store) ListCampgrounds(ctx context.Context, parkID int64) ([]camping.Campground, error) {
	rows, err := st.db.Query(ctx,
		`SELECT `+campgroundColumns+` FROM campground WHERE park_id=$1 ORDER BY name`, parkID)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	var out []camping.Campground
	for rows.Next() {
		c, err := scanCampground(rows)
		if err != nil {
			return nil, wrap(err)
		}
		out = append(out, c)
	}
	return out, wrap(rows.Err())
}

func (st *Store) CreateCampground(ctx context.Context, c camping.Campground) (int64, error) {
	var id int64
	err := st.db.QueryRow(ctx, `
INSERT INTO campground (park_id, name, open_from_mm, open_to_mm, daily_fee_cents)
VALUES ($1,$2,$3,$4,$5)
RETURNING campground_id`,
		c.ParkID, c.Name, int(c.Season.Opening), int(c.Season.Closing), c.DailyFeeCents,
	).Scan(&id)
	return id, wrap(err)
}

// Sites

const siteColumns = `site_id, campground_id, site_number, max_occupancy, accessible, max_rv_length, utilities`

func scanSite(s scanner) (camping.Site, error) {
	var site camping.Site
	err := s.Scan(&site.ID, &site.CampgroundID, &site.Number, &site.MaxOccupancy,
		&site.Accessible, &site.MaxRVLength, &site.Utilities)
	return site, err
}

func (st *Store) GetSite(ctx context.Context, siteID int64) (camping.Site, error) {
	site, err := scanSite(st.db.QueryRow(ctx, `SELECT `+siteColumns+` FROM site WHERE site_id=$1`, siteID))
	if err != nil {
		return camping.Site{}, wrap(err)
	}
	return site, nil
}

func (st *Store) ListSites(ctx context.Context, campgroundID int64) ([]camping.Site, error) {
	rows, err := st.db.Query(ctx,
		`SELECT `+siteColumns+` FROM site WHERE campground_id=$1 ORDER BY site_id`, campgroundID)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	var out []camping.Site
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, wrap(err)
		}
		out = append(out, site)
	}
	return out, wrap(rows.Err())
}

func (st *Store) CreateSite(ctx context.Context, site camping.Site) (int64, error) {
	var id int64
	err := st.db.QueryRow(ctx, `
INSERT INTO site (campground_id, site_number, max_occupancy, accessible, max_rv_length, utilities)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING site_id`,
		site.CampgroundID, site.Number, site.MaxOccupancy, site.Accessible, site.MaxRVLength, site.Utilities,
	).Scan(&id)
	return id, wrap(err)
}

// Reservations

const reservationColumns = `reservation_id, site_id, name, from_date, to_date, create_date, confirmation_code`

func scanReservation(s scanner) (camping.Reservation, error) {
	var r camping.Reservation
	err := s.Scan(&r.ID, &r.SiteID, &r.Name, &r.From, &r.To, &r.CreatedAt, &r.ConfirmationCode)
	return r, err
}

func (st *Store) ListReservationsForSite(ctx context.Context, siteID int64) ([]camping.Reservation, error) {
	rows, err := st.db.Query(ctx,
		`SELECT `+reservationColumns+` FROM reservation WHERE site_id=$1 ORDER BY from_date`, siteID)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

// ListUserReservations returns a user's reservation history ordered by
// arrival date.
func (st *Store) ListUserReservations(ctx context.Context, userID int64) ([]camping.Reservation, error) {
	rows, err := st.db.Query(ctx, `
SELECT r.reservation_id, r.site_id, r.name, r.from_date, r.to_date, r.create_date, r.confirmation_code
FROM reservation r
JOIN user_reservation ur ON ur.reservation_id = r.reservation_id
WHERE ur.user_id=$1
ORDER BY r.from_date`, userID)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

// ListUpcomingParkReservations returns reservations across a park arriving
// within the next thirty days of from.
func (st *Store) ListUpcomingParkReservations(ctx context.Context, parkID int64, from time.Time) ([]camping.Reservation, error) {
	rows, err := st.db.Query(ctx, `
SELECT r.reservation_id, r.site_id, r.name, r.from_date, r.to_date, r.create_date, r.confirmation_code
FROM reservation r
JOIN site s ON s.site_id = r.site_id
JOIN campground c ON c.campground_id = s.campground_id
WHERE c.park_id=$1 AND r.from_date >= $2 AND r.from_date < $3
ORDER BY r.from_date`, parkID, from, from.AddDate(0, 0, 30))
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

func collectReservations(rows pgx.Rows) ([]camping.Reservation, error) {
	var out []camping.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, wrap(err)
		}
		out = append(out, r)
	}
	return out, wrap(rows.Err())
}

// InBookingTx groups the overlap re-check and the two inserts into one
// transaction. The site row is locked first so concurrent bookings for the
// same site serialize on the database; the check-then-act race between
// search and commit cannot double-book.
func (st *Store) InBookingTx(ctx context.Context, siteID int64, fn func(booking.Tx) error) error {
	return st.db.InTx(ctx, func(tx pgx.Tx) error {
		var locked int64
		if err := tx.QueryRow(ctx, `SELECT site_id FROM site WHERE site_id=$1 FOR UPDATE`, siteID).Scan(&locked); err != nil {
			return wrap(err)
		}
		return fn(&bookingTx{tx: tx})
	})
}

type bookingTx struct {
	tx pgx.Tx
}

func (b *bookingTx) ListReservationsForSite(ctx context.Context, siteID int64) ([]camping.Reservation, error) {
	rows, err := b.tx.Query(ctx,
		`SELECT `+reservationColumns+` FROM reservation WHERE site_id=$1 ORDER BY from_date`, siteID)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (b *bookingTx) InsertReservation(ctx context.Context, r camping.Reservation) (int64, error) {
	var id int64
	err := b.tx.QueryRow(ctx, `
INSERT INTO reservation (site_id, name, from_date, to_date, create_date, confirmation_code)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING reservation_id`,
		r.SiteID, r.Name, r.From, r.To, r.CreatedAt, r.ConfirmationCode,
	).Scan(&id)
	return id, wrap(err)
}

func (b *bookingTx) InsertOwnershipLink(ctx context.Context, userID, reservationID int64) error {
	_, err := b.tx.Exec(ctx,
		`INSERT INTO user_reservation (user_id, reservation_id) VALUES ($1,$2)`,
		userID, reservationID)
	return wrap(err)
}
