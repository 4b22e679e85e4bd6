// Package emails is the foundation service for verification mail.
//
// PostOTPVerificationMail issues a numeric one-time code, stores it with
// a TTL and mails it to the user. VerifyOTP checks a submitted code and
// consumes it on success.
package emails

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/StricklySoft/jaunts-core/pkg/faults"
	"github.com/StricklySoft/jaunts-core/pkg/logging"
	"github.com/StricklySoft/jaunts-core/pkg/models"
	"github.com/StricklySoft/jaunts-core/pkg/stores/otpstore"
	"github.com/StricklySoft/jaunts-core/pkg/validation"
)

// Entity is the email fault vocabulary.
var Entity = faults.Entity{Name: "Email"}

// DefaultCodeLength is used when New is given a non-positive length.
const DefaultCodeLength = 6

// Codes persists verification codes.
type Codes interface {
	Save(ctx context.Context, email, code string) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

var _ Codes = (*otpstore.Codes)(nil)

// Sender delivers mail.
type Sender interface {
	Send(ctx context.Context, mail models.Mail) (models.MailReceipt, error)
}

// Service is safe for concurrent use.
type Service struct {
	codes    Codes
	sender   Sender
	router   *faults.Router
	length   int
	generate func(length int) (string, error)
}

// New returns an email service issuing codes of codeLength digits.
func New(codes Codes, sender Sender, logger logging.Logger, codeLength int) *Service {
	if codeLength <= 0 {
		codeLength = DefaultCodeLength
	}
	return &Service{
		codes:    codes,
		sender:   sender,
		router:   faults.NewRouter(Entity, logger),
		length:   codeLength,
		generate: randomCode,
	}
}

// PostOTPVerificationMail mails a fresh verification code to user.
func (s *Service) PostOTPVerificationMail(ctx context.Context, user *models.User, subject, from, fromName string) (*models.MailReceipt, error) {
	return faults.Try(ctx, s.router, func() (*models.MailReceipt, error) {
		if err := validation.Present("User", user); err != nil {
			return nil, err
		}
		err := validation.Validate(Entity.Name,
			validation.Check("FirstName", validation.IsInvalidText(user.FirstName)),
			validation.Check("LastName", validation.IsInvalidText(user.LastName)),
			validation.Check("Email", validation.IsInvalidText(user.Email)),
			validation.Check("Email", emailFormat(user.Email)),
			validation.Check("Subject", validation.IsInvalidText(subject)),
			validation.Check("From", validation.IsInvalidText(from)),
			validation.Check("FromName", validation.IsInvalidText(fromName)),
		)
		if err != nil {
			return nil, err
		}

		code, err := s.generate(s.length)
		if err != nil {
			return nil, fmt.Errorf("emails: generate code: %w", err)
		}
		if err := s.codes.Save(ctx, user.Email, code); err != nil {
			return nil, err
		}

		receipt, err := s.sender.Send(ctx, models.Mail{
			To:       user.Email,
			ToName:   user.FirstName + " " + user.LastName,
			From:     from,
			FromName: fromName,
			Subject:  subject,
			Body:     body(user.FirstName, code),
		})
		if err != nil {
			return nil, err
		}
		return &receipt, nil
	})
}

// VerifyOTP checks code against the one issued for email and consumes it
// when they match.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) error {
	return faults.Do(ctx, s.router, func() error {
		err := validation.Validate(Entity.Name,
			validation.Check("Email", validation.IsInvalidText(email)),
			validation.Check("Email", emailFormat(email)),
			validation.Check("Code", validation.IsInvalidText(code)),
		)
		if err != nil {
			return err
		}

		stored, err := s.codes.Get(ctx, email)
		if err != nil {
			return codeNotFound(err, email)
		}
		if !sameCode(stored, code) {
			return validation.Validate(Entity.Name, validation.Check("Code", validation.When(true, "Code is invalid")))
		}
		return codeNotFound(s.codes.Delete(ctx, email), email)
	})
}

// sameCode compares in constant time for codes of equal length.
func sameCode(stored, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(strings.TrimSpace(submitted))) == 1
}

func codeNotFound(err error, email string) error {
	return faults.ExplainNotFound(err, "Couldn't find verification code for email: %s.", email)
}

func emailFormat(email string) validation.Rule {
	if strings.TrimSpace(email) == "" {
		return validation.Rule{}
	}
	return validation.IsNotValidEmail(email)
}

func body(firstName, code string) string {
	return fmt.Sprintf("Hi %s,\n\nYour Jaunts verification code is %s.\n", firstName, code)
}

// randomCode returns length uniformly random decimal digits.
func randomCode(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("emails: code length must be positive")
	}
	var b strings.Builder
	b.Grow(length)
	ten := big.NewInt(10)
	for range length {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + d.Int64()))
	}
	return b.String(), nil
}
