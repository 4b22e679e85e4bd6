// Package users is the foundation service for application accounts.
//
// Account rows live in the SQL user store; role grants live in the role
// graph. Passwords are stored as Argon2id hashes with a per-user random
// salt and never leave the service in clear text.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/StricklySoft/jaunts-core/pkg/clock"
	"github.com/StricklySoft/jaunts-core/pkg/faults"
	"github.com/StricklySoft/jaunts-core/pkg/logging"
	"github.com/StricklySoft/jaunts-core/pkg/models"
	"github.com/StricklySoft/jaunts-core/pkg/storage"
	"github.com/StricklySoft/jaunts-core/pkg/stores/rolestore"
	"github.com/StricklySoft/jaunts-core/pkg/stores/sqlstore"
	"github.com/StricklySoft/jaunts-core/pkg/validation"
)

// Entity is the user fault vocabulary.
var Entity = faults.Entity{
	Name:              "User",
	ValidationMessage: "User validation errors occurred, please try again.",
}

// Store persists user accounts.
type Store interface {
	Insert(ctx context.Context, u models.User) (models.User, error)
	SelectByID(ctx context.Context, id uuid.UUID) (models.User, error)
	SelectByEmail(ctx context.Context, email string) (models.User, error)
	Update(ctx context.Context, u models.User) (models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Roles persists role grants.
type Roles interface {
	Grant(ctx context.Context, userID uuid.UUID, role string) error
	RolesOf(ctx context.Context, userID uuid.UUID) ([]string, error)
	RemoveUser(ctx context.Context, userID uuid.UUID) error
}

var (
	_ Store = (*sqlstore.Users)(nil)
	_ Roles = (*rolestore.Roles)(nil)
)

// Service is safe for concurrent use.
type Service struct {
	store  Store
	roles  Roles
	clock  clock.Clock
	router *faults.Router
	salt   func() ([]byte, error)
}

// New returns a user service.
func New(store Store, roles Roles, clk clock.Clock, logger logging.Logger) *Service {
	return &Service{
		store:  store,
		roles:  roles,
		clock:  clk,
		router: faults.NewRouter(Entity, logger),
		salt:   randomSalt,
	}
}

// RegisterUser validates u, hashes password and stores the account.
func (s *Service) RegisterUser(ctx context.Context, u *models.User, password string) (*models.User, error) {
	return faults.Try(ctx, s.router, func() (*models.User, error) {
		if err := validation.Present(Entity.Name, u); err != nil {
			return nil, err
		}
		checks := append(profileChecks(u), validation.Check("Password", validation.IsInvalidText(password)))
		checks = append(checks, validation.AddAudit(s.clock, u.Audit)...)
		if err := validation.Validate(Entity.Name, checks...); err != nil {
			return nil, err
		}

		salt, err := s.salt()
		if err != nil {
			return nil, fmt.Errorf("users: generate salt: %w", err)
		}
		account := *u
		account.PasswordSalt = salt
		account.PasswordHash = HashPassword(password, salt)

		stored, err := s.store.Insert(ctx, account)
		if err != nil {
			return nil, err
		}
		return &stored, nil
	})
}

// RetrieveUserByID returns the user with id and its roles.
func (s *Service) RetrieveUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return faults.Try(ctx, s.router, func() (*models.User, error) {
		u, err := s.lookup(ctx, id)
		if err != nil {
			return nil, err
		}
		if u.Roles, err = s.roles.RolesOf(ctx, id); err != nil {
			return nil, err
		}
		return u, nil
	})
}

// Authenticate returns the user registered with email if password
// matches. An unknown email and a wrong password produce the same
// Validation report.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	return faults.Try(ctx, s.router, func() (*models.User, error) {
		err := validation.Validate(Entity.Name,
			validation.Check("Email", validation.IsInvalidText(email)),
			validation.Check("Email", emailFormat(email)),
			validation.Check("Password", validation.IsInvalidText(password)),
		)
		if err != nil {
			return nil, err
		}
		u, err := s.store.SelectByEmail(ctx, email)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			// Hash anyway so an unknown email costs the same as a wrong password.
			VerifyPassword(password, unknownUserSalt, nil)
			return nil, invalidCredentials()
		case err != nil:
			return nil, err
		}
		if !VerifyPassword(password, u.PasswordSalt, u.PasswordHash) {
			return nil, invalidCredentials()
		}
		return &u, nil
	})
}

// ModifyUser validates u against the stored account and writes its
// profile fields.
func (s *Service) ModifyUser(ctx context.Context, u *models.User) (*models.User, error) {
	return faults.Try(ctx, s.router, func() (*models.User, error) {
		if err := validation.Present(Entity.Name, u); err != nil {
			return nil, err
		}
		checks := append(profileChecks(u), validation.ModifyAudit(s.clock, u.Audit)...)
		if err := validation.Validate(Entity.Name, checks...); err != nil {
			return nil, err
		}
		stored, err := s.lookup(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		if err := validation.Validate(Entity.Name, validation.StoredAudit(u.Audit, stored.Audit)...); err != nil {
			return nil, err
		}
		updated, err := s.store.Update(ctx, *u)
		if err != nil {
			return nil, err
		}
		return &updated, nil
	})
}

// RemoveUserByID deletes the account and its role grants and returns the
// deleted account.
func (s *Service) RemoveUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return faults.Try(ctx, s.router, func() (*models.User, error) {
		u, err := s.lookup(ctx, id)
		if err != nil {
			return nil, err
		}
		// Grants go first so a failed graph call leaves the account in place
		// for a retry. Users without grants have no graph node.
		if err := s.roles.RemoveUser(ctx, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		if err := s.store.Delete(ctx, id); err != nil {
			return nil, err
		}
		return u, nil
	})
}

// AddUserRoles grants role to u and returns u with its current roles.
func (s *Service) AddUserRoles(ctx context.Context, u *models.User, role string) (*models.User, error) {
	return faults.Try(ctx, s.router, func() (*models.User, error) {
		if err := validation.Present(Entity.Name, u); err != nil {
			return nil, err
		}
		err := validation.Validate(Entity.Name,
			validation.Check("Id", validation.IsInvalidID(u.ID)),
			validation.Check("ApplicationUser", validation.IsBlankValue(role)))
		if err != nil {
			return nil, err
		}
		if err := s.roles.Grant(ctx, u.ID, role); err != nil {
			return nil, err
		}
		roles, err := s.roles.RolesOf(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		granted := *u
		granted.Roles = roles
		return &granted, nil
	})
}

// EnableOrDisableTwoFactor flips the two-factor flag of the user with id
// and stamps the update with the current time.
func (s *Service) EnableOrDisableTwoFactor(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return faults.Try(ctx, s.router, func() (*models.User, error) {
		u, err := s.lookup(ctx, id)
		if err != nil {
			return nil, err
		}
		u.TwoFactorEnabled = !u.TwoFactorEnabled
		u.UpdatedDate = s.clock.Now()
		updated, err := s.store.Update(ctx, *u)
		if err != nil {
			return nil, err
		}
		return &updated, nil
	})
}

func (s *Service) lookup(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if err := validation.Validate(Entity.Name, validation.Check("Id", validation.IsInvalidID(id))); err != nil {
		return nil, err
	}
	u, err := s.store.SelectByID(ctx, id)
	if err != nil {
		return nil, faults.RecordNotFound(err, id)
	}
	return &u, nil
}

// unknownUserSalt salts the throwaway hash computed for unknown emails.
var unknownUserSalt = make([]byte, saltLen)

func invalidCredentials() error {
	return validation.Validate(Entity.Name,
		validation.Check("Password", validation.When(true, "Password is invalid")))
}

func profileChecks(u *models.User) []validation.Checked {
	return []validation.Checked{
		validation.Check("Id", validation.IsInvalidID(u.ID)),
		validation.Check("FirstName", validation.IsInvalidText(u.FirstName)),
		validation.Check("LastName", validation.IsInvalidText(u.LastName)),
		validation.Check("Username", validation.IsInvalidText(u.Username)),
		validation.Check("PhoneNumber", validation.IsInvalidText(u.PhoneNumber)),
		validation.Check("Email", validation.IsInvalidText(u.Email)),
		validation.Check("Email", emailFormat(u.Email)),
	}
}

// emailFormat checks the format only when an email was supplied, so a
// missing email reports "Text is required" alone.
func emailFormat(email string) validation.Rule {
	if strings.TrimSpace(email) == "" {
		return validation.Rule{}
	}
	return validation.IsNotValidEmail(email)
}
