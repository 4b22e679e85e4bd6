package sqlstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/StricklySoft/jaunts-core/pkg/models"
)

const flightDealColumns = `id, provider_id, airline, departure_city, arrival_city, departure_date, arrival_date,
	price_cents, status, version, created_by, updated_by, created_date, updated_date`

// FlightDeals stores [models.FlightDeal] rows.
type FlightDeals struct {
	db Querier
}

// NewFlightDeals returns a flight deal store over db.
func NewFlightDeals(db Querier) *FlightDeals {
	return &FlightDeals{db: db}
}

// Insert stores d with Version 1 and returns the stored record.
func (s *FlightDeals) Insert(ctx context.Context, d models.FlightDeal) (models.FlightDeal, error) {
	const q = `INSERT INTO flight_deals (` + flightDealColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, $10, $11, $12, $13)`
	_, err := s.db.Exec(ctx, q,
		d.ID, d.ProviderID, d.Airline, d.DepartureCity, d.ArrivalCity, d.DepartureDate, d.ArrivalDate,
		d.PriceCents, d.Status, d.CreatedBy, d.UpdatedBy, d.CreatedDate, d.UpdatedDate)
	if err != nil {
		return models.FlightDeal{}, err
	}
	d.Version = 1
	return d, nil
}

// SelectByID returns the deal with id or [storage.ErrNotFound].
func (s *FlightDeals) SelectByID(ctx context.Context, id uuid.UUID) (models.FlightDeal, error) {
	const q = `SELECT ` + flightDealColumns + ` FROM flight_deals WHERE id = $1`
	return scanFlightDeal(s.db.QueryRow(ctx, q, id))
}

// SelectOpen returns open deals departing after from, soonest first.
func (s *FlightDeals) SelectOpen(ctx context.Context, from time.Time) ([]models.FlightDeal, error) {
	const q = `SELECT ` + flightDealColumns + ` FROM flight_deals
WHERE status = 'open' AND departure_date > $1
ORDER BY departure_date, id`
	rows, err := s.db.Query(ctx, q, from)
	if err != nil {
		return nil, err
	}
	return collect(rows, "sqlstore: flight deals", scanFlightDeal)
}

// Update writes d if its Version matches the stored one and returns the
// record with the incremented Version.
func (s *FlightDeals) Update(ctx context.Context, d models.FlightDeal) (models.FlightDeal, error) {
	const q = `UPDATE flight_deals
SET provider_id = $3, airline = $4, departure_city = $5, arrival_city = $6, departure_date = $7,
	arrival_date = $8, price_cents = $9, status = $10, updated_by = $11, updated_date = $12,
	version = version + 1
WHERE id = $1 AND version = $2
RETURNING version`
	version, err := updateOne(ctx, s.db, "sqlstore: update flight deal", q,
		func() error { _, err := s.SelectByID(ctx, d.ID); return err },
		d.ID, d.Version, d.ProviderID, d.Airline, d.DepartureCity, d.ArrivalCity, d.DepartureDate,
		d.ArrivalDate, d.PriceCents, d.Status, d.UpdatedBy, d.UpdatedDate)
	if err != nil {
		return models.FlightDeal{}, err
	}
	d.Version = version
	return d, nil
}

// Delete removes the deal with id or reports [storage.ErrNotFound].
func (s *FlightDeals) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteOne(ctx, s.db, "sqlstore: delete flight deal", `DELETE FROM flight_deals WHERE id = $1`, id)
}

func scanFlightDeal(row scanner) (models.FlightDeal, error) {
	var d models.FlightDeal
	err := row.Scan(&d.ID, &d.ProviderID, &d.Airline, &d.DepartureCity, &d.ArrivalCity, &d.DepartureDate, &d.ArrivalDate,
		&d.PriceCents, &d.Status, &d.Version, &d.CreatedBy, &d.UpdatedBy, &d.CreatedDate, &d.UpdatedDate)
	return d, err
}
