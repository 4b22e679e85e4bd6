// Package tokens issues and verifies the signed access tokens returned
// with account details.
//
// Tokens are HS256 JWTs. The subject is the user id; the issuer and
// lifetime come from configuration. Only HS256 is accepted on the way
// back in, so a token signed with any other algorithm is rejected before
// its signature is checked.
package tokens

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/StricklySoft/jaunts-core/pkg/clock"
	"github.com/StricklySoft/jaunts-core/pkg/faults"
	"github.com/StricklySoft/jaunts-core/pkg/logging"
	"github.com/StricklySoft/jaunts-core/pkg/models"
	"github.com/StricklySoft/jaunts-core/pkg/validation"
)

const tracerName = "github.com/StricklySoft/jaunts-core/pkg/services/tokens"

// Entity is the token fault vocabulary.
var Entity = faults.Entity{Name: "Token"}

// DefaultLeeway is the clock skew tolerated when verifying a token.
const DefaultLeeway = 30 * time.Second

var signingMethod = jwt.SigningMethodHS256

const secretRedacted = "[REDACTED]"

// Secret is an HMAC signing key. It redacts itself when formatted.
type Secret string

// String implements fmt.Stringer.
func (Secret) String() string { return secretRedacted }

// GoString implements fmt.GoStringer.
func (Secret) GoString() string { return secretRedacted }

// MarshalText keeps the key out of JSON and YAML output.
func (Secret) MarshalText() ([]byte, error) { return []byte(secretRedacted), nil }

// Claims are the claims carried by an account token.
type Claims struct {
	Email    string   `json:"email"`
	Username string   `json:"preferred_username"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Service is safe for concurrent use.
type Service struct {
	issuer string
	secret Secret
	ttl    time.Duration
	clock  clock.Clock
	router *faults.Router
	tracer trace.Tracer
	sign   func(token *jwt.Token, key []byte) (string, error)
}

// New returns a token service signing with secret.
func New(issuer string, secret Secret, ttl time.Duration, clk clock.Clock, logger logging.Logger) *Service {
	return &Service{
		issuer: issuer,
		secret: secret,
		ttl:    ttl,
		clock:  clk,
		router: faults.NewRouter(Entity, logger),
		tracer: otel.Tracer(tracerName),
		sign: func(token *jwt.Token, key []byte) (string, error) {
			return token.SignedString(key)
		},
	}
}

// AccountDetails issues a token for u and returns it with the public
// fields of the account.
func (s *Service) AccountDetails(ctx context.Context, u *models.User) (*models.AccountDetails, error) {
	ctx, span := s.tracer.Start(ctx, "tokens.AccountDetails")
	details, err := faults.Try(ctx, s.router, func() (*models.AccountDetails, error) {
		if err := validation.Present("User", u); err != nil {
			return nil, err
		}
		err := validation.Validate("User",
			validation.Check("Id", validation.IsInvalidID(u.ID)),
			validation.Check("Email", validation.IsInvalidText(u.Email)),
			validation.Check("Username", validation.IsInvalidText(u.Username)),
		)
		if err != nil {
			return nil, err
		}
		span.SetAttributes(attribute.String("user.id", u.ID.String()))

		now := s.clock.Now()
		expires := now.Add(s.ttl)
		token := jwt.NewWithClaims(signingMethod, Claims{
			Email:    u.Email,
			Username: u.Username,
			Roles:    u.Roles,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   u.ID.String(),
				Issuer:    s.issuer,
				ID:        uuid.NewString(),
				IssuedAt:  jwt.NewNumericDate(now),
				NotBefore: jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(expires),
			},
		})
		signed, err := s.sign(token, []byte(s.secret))
		if err != nil {
			return nil, fmt.Errorf("tokens: sign: %w", err)
		}

		return &models.AccountDetails{
			UserID:           u.ID,
			Username:         u.Username,
			Email:            u.Email,
			TwoFactorEnabled: u.TwoFactorEnabled,
			Roles:            u.Roles,
			Token:            signed,
			ExpiresAt:        expires,
		}, nil
	})
	finishSpan(span, err)
	return details, err
}

// Verify parses raw and returns its claims. Tokens that are malformed,
// expired, issued elsewhere or not signed with HS256 are reported as a
// Validation fault on the "Token" parameter.
func (s *Service) Verify(ctx context.Context, raw string) (*Claims, error) {
	ctx, span := s.tracer.Start(ctx, "tokens.Verify")
	claims, err := faults.Try(ctx, s.router, func() (*Claims, error) {
		err := validation.Validate(Entity.Name, validation.Check("Token", validation.IsInvalidText(raw)))
		if err != nil {
			return nil, err
		}

		claims := &Claims{}
		_, err = jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return []byte(s.secret), nil
		},
			jwt.WithValidMethods([]string{signingMethod.Alg()}),
			jwt.WithIssuer(s.issuer),
			jwt.WithLeeway(DefaultLeeway),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(s.clock.Now),
		)
		if err != nil {
			span.RecordError(fmt.Errorf("tokens: parse: %w", err))
			return nil, validation.Validate(Entity.Name,
				validation.Check("Token", validation.When(true, "Token is invalid")))
		}
		return claims, nil
	})
	finishSpan(span, err)
	return claims, err
}

func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
