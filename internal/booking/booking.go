// Package booking commits a chosen site and date range into a durable
// reservation. It is the only writer of reservation state.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/campsite/internal/domain/camping"
	"github.com/google/uuid"
)

// Tx is the transaction-scoped view of the store a booking runs against.
// ListReservationsForSite inside the transaction must observe a serialized
// view of the site's reservations (the Postgres implementation locks the
// site row first).
type Tx interface {
	ListReservationsForSite(ctx context.Context, siteID int64) ([]camping.Reservation, error)
	InsertReservation(ctx context.Context, r camping.Reservation) (int64, error)
	InsertOwnershipLink(ctx context.Context, userID, reservationID int64) error
}

// Store is the write side of the persistence port. InBookingTx runs fn in
// one atomic unit: if fn returns an error nothing it did persists.
type Store interface {
	GetSite(ctx context.Context, siteID int64) (camping.Site, error)
	InBookingTx(ctx context.Context, siteID int64, fn func(Tx) error) error
}

// Confirmation identifies a committed reservation.
type Confirmation struct {
	ReservationID int64
	Code          string
}

type Service struct {
	Store Store

	// Now is swappable for tests; zero value means time.Now.
	Now func() time.Time
}

// Book creates one reservation plus its ownership link atomically and
// returns the confirmation. The overlap check runs again inside the same
// transaction as the inserts, so two callers racing for the same site and
// range cannot both commit; the loser gets camping.ErrConflict and should
// re-search rather than retry the same site. Other persistence failures
// come back wrapped in camping.ErrBookingFailed.
func (s *Service) Book(ctx context.Context, userID, siteID int64, name string, arrival, departure time.Time) (Confirmation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Confirmation{}, errors.New("reservation name required")
	}
	now := s.now()
	if !departure.After(arrival) {
		return Confirmation{}, camping.ErrInvalidRange
	}
	if !arrival.After(now) {
		return Confirmation{}, fmt.Errorf("%w: arrival must be in the future", camping.ErrInvalidRange)
	}
	if _, err := camping.Nights(arrival, departure); err != nil {
		return Confirmation{}, err
	}

	if _, err := s.Store.GetSite(ctx, siteID); err != nil {
		return Confirmation{}, err
	}

	var conf Confirmation
	err := s.Store.InBookingTx(ctx, siteID, func(tx Tx) error {
		existing, err := tx.ListReservationsForSite(ctx, siteID)
		if err != nil {
			return err
		}
		for _, r := range existing {
			if camping.Overlaps(r.From, r.To, arrival, departure) {
				return fmt.Errorf("%w: site %d already reserved %s to %s",
					camping.ErrConflict, siteID,
					r.From.Format("2006-01-02"), r.To.Format("2006-01-02"))
			}
		}
		code := uuid.NewString()
		id, err := tx.InsertReservation(ctx, camping.Reservation{
			SiteID:           siteID,
			Name:             name,
			From:             arrival,
			To:               departure,
			CreatedAt:        now,
			ConfirmationCode: code,
		})
		if err != nil {
			return err
		}
		if err := tx.InsertOwnershipLink(ctx, userID, id); err != nil {
			return err
		}
		conf = Confirmation{ReservationID: id, Code: code}
		return nil
	})
	if err != nil {
		if errors.Is(err, camping.ErrConflict) {
			return Confirmation{}, err
		}
		return Confirmation{}, fmt.Errorf("%w: %v", camping.ErrBookingFailed, err)
	}
	return conf, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
