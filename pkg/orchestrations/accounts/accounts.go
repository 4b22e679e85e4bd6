// Package accounts aggregates the user and token services into the
// account operations exposed to callers.
package accounts

import (
	"context"

	"github.com/google/uuid"

	"github.com/StricklySoft/jaunts-core/pkg/models"
	"github.com/StricklySoft/jaunts-core/pkg/orchestrations"
	"github.com/StricklySoft/jaunts-core/pkg/services/tokens"
	"github.com/StricklySoft/jaunts-core/pkg/services/users"
)

// Users is the part of the user service the aggregation needs.
type Users interface {
	EnableOrDisableTwoFactor(ctx context.Context, id uuid.UUID) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// Tokens issues account details.
type Tokens interface {
	AccountDetails(ctx context.Context, u *models.User) (*models.AccountDetails, error)
}

var (
	_ Users  = (*users.Service)(nil)
	_ Tokens = (*tokens.Service)(nil)
)

// Credentials identify an account at sign-in.
type Credentials struct {
	Email    string
	Password string
}

// Service is safe for concurrent use.
type Service struct {
	enableTwoFactor func(ctx context.Context, id uuid.UUID) (*models.AccountDetails, error)
	signIn          func(ctx context.Context, c Credentials) (*models.AccountDetails, error)
}

// New returns the account aggregation over u and t.
func New(u Users, t Tokens) *Service {
	authenticate := func(ctx context.Context, c Credentials) (*models.User, error) {
		return u.Authenticate(ctx, c.Email, c.Password)
	}
	return &Service{
		enableTwoFactor: orchestrations.Chain(u.EnableOrDisableTwoFactor, t.AccountDetails),
		signIn:          orchestrations.Chain(authenticate, t.AccountDetails),
	}
}

// EnableUserTwoFactor toggles two-factor authentication for the user with
// id and returns fresh account details for the updated user.
func (s *Service) EnableUserTwoFactor(ctx context.Context, id uuid.UUID) (*models.AccountDetails, error) {
	return s.enableTwoFactor(ctx, id)
}

// SignIn authenticates c and returns account details for the user.
func (s *Service) SignIn(ctx context.Context, c Credentials) (*models.AccountDetails, error) {
	return s.signIn(ctx, c)
}
