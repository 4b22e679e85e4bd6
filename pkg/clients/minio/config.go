package minio

import (
	"errors"
	"strings"
	"time"
)

const maxStatementLen = 100

// Connection defaults.
const (
	DefaultEndpoint      = "minio.jaunts.svc.cluster.local:9000"
	DefaultRegion        = "us-east-1"
	DefaultBucket        = "jaunts-attachments"
	DefaultHealthTimeout = 5 * time.Second
)

// Secret hides a credential from fmt, logs and text marshalling.
type Secret string

const redacted = "[REDACTED]"

func (s Secret) String() string               { return redacted }
func (s Secret) GoString() string             { return redacted }
func (s Secret) MarshalText() ([]byte, error) { return []byte(redacted), nil }

// Value returns the plaintext secret.
func (s Secret) Value() string { return string(s) }

// Config configures a [Client].
type Config struct {
	Endpoint  string `json:"endpoint,omitempty" yaml:"endpoint" env:"ENDPOINT"`
	AccessKey string `json:"access_key,omitempty" yaml:"access_key" env:"ACCESS_KEY"`
	SecretKey Secret `json:"-" yaml:"-" env:"SECRET_KEY"`
	Region    string `json:"region,omitempty" yaml:"region" env:"REGION"`
	UseSSL    bool   `json:"use_ssl,omitempty" yaml:"use_ssl" env:"USE_SSL"`

	// Bucket holds advert attachments. It is created on first use.
	Bucket string `json:"bucket,omitempty" yaml:"bucket" env:"BUCKET"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	return &Config{
		Endpoint: DefaultEndpoint,
		Region:   DefaultRegion,
		Bucket:   DefaultBucket,
	}
}

// Validate fills zero settings with defaults and checks the rest.
func (c *Config) Validate() error {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.Bucket == "" {
		c.Bucket = DefaultBucket
	}
	switch {
	case c.Endpoint == "":
		return errors.New("minio: endpoint must not be empty")
	case strings.Contains(c.Endpoint, "://"):
		return errors.New("minio: endpoint must be host:port without a scheme")
	case c.AccessKey == "":
		return errors.New("minio: access_key must not be empty")
	case c.SecretKey == "":
		return errors.New("minio: secret_key must not be empty")
	}
	return nil
}

func truncateStatement(s string) string {
	runes := []rune(s)
	if len(runes) <= maxStatementLen {
		return s
	}
	return string(runes[:maxStatementLen]) + "..."
}
