package sqlstore

import (
	"context"

	"github.com/google/uuid"

	"github.com/StricklySoft/jaunts-core/pkg/models"
)

const fleetColumns = `id, provider_id, title, description, plate_number, seats, status, version,
	created_by, updated_by, created_date, updated_date`

// Fleets stores [models.Fleet] rows.
type Fleets struct {
	db Querier
}

// NewFleets returns a fleet store over db.
func NewFleets(db Querier) *Fleets {
	return &Fleets{db: db}
}

// Insert stores f with Version 1 and returns the stored record.
func (s *Fleets) Insert(ctx context.Context, f models.Fleet) (models.Fleet, error) {
	const q = `INSERT INTO fleets (` + fleetColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, 1, $8, $9, $10, $11)`
	_, err := s.db.Exec(ctx, q,
		f.ID, f.ProviderID, f.Title, f.Description, f.PlateNumber, f.Seats, f.Status,
		f.CreatedBy, f.UpdatedBy, f.CreatedDate, f.UpdatedDate)
	if err != nil {
		return models.Fleet{}, err
	}
	f.Version = 1
	return f, nil
}

// SelectByID returns the fleet with id or [storage.ErrNotFound].
func (s *Fleets) SelectByID(ctx context.Context, id uuid.UUID) (models.Fleet, error) {
	const q = `SELECT ` + fleetColumns + ` FROM fleets WHERE id = $1`
	return scanFleet(s.db.QueryRow(ctx, q, id))
}

// SelectAll returns every fleet ordered by creation date.
func (s *Fleets) SelectAll(ctx context.Context) ([]models.Fleet, error) {
	const q = `SELECT ` + fleetColumns + ` FROM fleets ORDER BY created_date, id`
	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return collect(rows, "sqlstore: fleets", scanFleet)
}

// Update writes f if its Version matches the stored one and returns the
// record with the incremented Version.
func (s *Fleets) Update(ctx context.Context, f models.Fleet) (models.Fleet, error) {
	const q = `UPDATE fleets
SET provider_id = $3, title = $4, description = $5, plate_number = $6, seats = $7, status = $8,
	updated_by = $9, updated_date = $10, version = version + 1
WHERE id = $1 AND version = $2
RETURNING version`
	version, err := updateOne(ctx, s.db, "sqlstore: update fleet", q,
		func() error { _, err := s.SelectByID(ctx, f.ID); return err },
		f.ID, f.Version, f.ProviderID, f.Title, f.Description, f.PlateNumber, f.Seats, f.Status,
		f.UpdatedBy, f.UpdatedDate)
	if err != nil {
		return models.Fleet{}, err
	}
	f.Version = version
	return f, nil
}

// Delete removes the fleet with id or reports [storage.ErrNotFound].
func (s *Fleets) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteOne(ctx, s.db, "sqlstore: delete fleet", `DELETE FROM fleets WHERE id = $1`, id)
}

func scanFleet(row scanner) (models.Fleet, error) {
	var f models.Fleet
	err := row.Scan(&f.ID, &f.ProviderID, &f.Title, &f.Description, &f.PlateNumber, &f.Seats, &f.Status, &f.Version,
		&f.CreatedBy, &f.UpdatedBy, &f.CreatedDate, &f.UpdatedDate)
	return f, err
}
