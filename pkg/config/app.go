package config

import (
	"errors"
	"time"

	"github.com/StricklySoft/jaunts-core/pkg/clients/minio"
	"github.com/StricklySoft/jaunts-core/pkg/clients/neo4j"
	"github.com/StricklySoft/jaunts-core/pkg/clients/postgres"
	"github.com/StricklySoft/jaunts-core/pkg/clients/redis"
	sserr "github.com/StricklySoft/jaunts-core/pkg/errors"
)

// App is the configuration of a Jaunts process. Loaded with the JAUNTS
// prefix, the Postgres host is JAUNTS_POSTGRES_HOST and the token secret
// JAUNTS_TOKENS_SECRET.
type App struct {
	Postgres postgres.Config `yaml:"postgres" json:"postgres" env:"POSTGRES"`
	Redis    redis.Config    `yaml:"redis" json:"redis" env:"REDIS"`
	MinIO    minio.Config    `yaml:"minio" json:"minio" env:"MINIO"`
	Neo4j    neo4j.Config    `yaml:"neo4j" json:"neo4j" env:"NEO4J"`
	Logging  Logging         `yaml:"logging" json:"logging" env:"LOG"`
	Tokens   Tokens          `yaml:"tokens" json:"tokens" env:"TOKENS"`
	OTP      OTP             `yaml:"otp" json:"otp" env:"OTP"`
	Mail     Mail            `yaml:"mail" json:"mail" env:"MAIL"`
}

// Logging selects the slog handler.
type Logging struct {
	Level  string `yaml:"level" json:"level" env:"LEVEL" envDefault:"info"`
	Format string `yaml:"format" json:"format" env:"FORMAT" envDefault:"json"`
}

// Tokens configures signed account-detail tokens.
type Tokens struct {
	Issuer string        `yaml:"issuer" json:"issuer" env:"ISSUER" envDefault:"jaunts"`
	Secret string        `yaml:"-" json:"-" env:"SECRET" required:"true"`
	TTL    time.Duration `yaml:"ttl" json:"ttl" env:"TTL" envDefault:"1h"`
}

// OTP configures one-time verification codes.
type OTP struct {
	TTL    time.Duration `yaml:"ttl" json:"ttl" env:"TTL" envDefault:"10m"`
	Length int           `yaml:"length" json:"length" env:"LENGTH" envDefault:"6"`
}

// Mail configures the sender identity of verification mails.
type Mail struct {
	From     string `yaml:"from" json:"from" env:"FROM" required:"true"`
	FromName string `yaml:"from_name" json:"from_name" env:"FROM_NAME" envDefault:"Jaunts"`
	Subject  string `yaml:"subject" json:"subject" env:"SUBJECT" envDefault:"Your Jaunts verification code"`
}

// Minimum signing key length for HS256.
const minTokenSecretLen = 32

// Validate checks every client configuration and the application
// settings. Client defaults are applied in place.
func (a *App) Validate() error {
	checks := []struct {
		name string
		err  error
	}{
		{"postgres", a.Postgres.Validate()},
		{"redis", a.Redis.Validate()},
		{"minio", a.MinIO.Validate()},
		{"neo4j", a.Neo4j.Validate()},
	}
	for _, c := range checks {
		if c.err != nil {
			return sserr.Configuration(c.err, "config: invalid "+c.name+" settings")
		}
	}

	switch {
	case len(a.Tokens.Secret) < minTokenSecretLen:
		return sserr.Configurationf("config: tokens secret must be at least %d bytes", minTokenSecretLen)
	case a.Tokens.TTL <= 0:
		return sserr.Configuration(errors.New("tokens ttl must be positive"), "config: invalid tokens settings")
	case a.OTP.TTL <= 0:
		return sserr.Configuration(errors.New("otp ttl must be positive"), "config: invalid otp settings")
	case a.OTP.Length < 4 || a.OTP.Length > 10:
		return sserr.Configurationf("config: otp length must be between 4 and 10, got %d", a.OTP.Length)
	}
	return nil
}
