package sqlstore

import (
	"context"

	"github.com/google/uuid"

	"github.com/StricklySoft/jaunts-core/pkg/models"
)

const userColumns = `id, first_name, last_name, username, email, phone_number, password_hash, password_salt,
	two_factor_enabled, version, created_by, updated_by, created_date, updated_date`

// Users stores [models.User] rows. Roles live in the role graph, not here.
type Users struct {
	db Querier
}

// NewUsers returns a user store over db.
func NewUsers(db Querier) *Users {
	return &Users{db: db}
}

// Insert stores u with Version 1. Usernames and emails are unique
// regardless of case.
func (s *Users) Insert(ctx context.Context, u models.User) (models.User, error) {
	const q = `INSERT INTO users (` + userColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, $10, $11, $12, $13)`
	_, err := s.db.Exec(ctx, q,
		u.ID, u.FirstName, u.LastName, u.Username, u.Email, u.PhoneNumber, u.PasswordHash, u.PasswordSalt,
		u.TwoFactorEnabled, u.CreatedBy, u.UpdatedBy, u.CreatedDate, u.UpdatedDate)
	if err != nil {
		return models.User{}, err
	}
	u.Version = 1
	return u, nil
}

// SelectByID returns the user with id or [storage.ErrNotFound].
func (s *Users) SelectByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(s.db.QueryRow(ctx, q, id))
}

// SelectByEmail returns the user registered with email, ignoring case.
func (s *Users) SelectByEmail(ctx context.Context, email string) (models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return scanUser(s.db.QueryRow(ctx, q, email))
}

// Update writes u if its Version matches the stored one. The password
// columns are left untouched.
func (s *Users) Update(ctx context.Context, u models.User) (models.User, error) {
	const q = `UPDATE users
SET first_name = $3, last_name = $4, username = $5, email = $6, phone_number = $7,
	two_factor_enabled = $8, updated_by = $9, updated_date = $10, version = version + 1
WHERE id = $1 AND version = $2
RETURNING version`
	version, err := updateOne(ctx, s.db, "sqlstore: update user", q,
		func() error { _, err := s.SelectByID(ctx, u.ID); return err },
		u.ID, u.Version, u.FirstName, u.LastName, u.Username, u.Email, u.PhoneNumber,
		u.TwoFactorEnabled, u.UpdatedBy, u.UpdatedDate)
	if err != nil {
		return models.User{}, err
	}
	u.Version = version
	return u, nil
}

// Delete removes the user with id or reports [storage.ErrNotFound].
func (s *Users) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteOne(ctx, s.db, "sqlstore: delete user", `DELETE FROM users WHERE id = $1`, id)
}

func scanUser(row scanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.Email, &u.PhoneNumber, &u.PasswordHash,
		&u.PasswordSalt, &u.TwoFactorEnabled, &u.Version, &u.CreatedBy, &u.UpdatedBy, &u.CreatedDate, &u.UpdatedDate)
	return u, err
}
