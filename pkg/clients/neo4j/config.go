package neo4j

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const maxStatementLen = 100

// Connection defaults.
const (
	DefaultHost                         = "neo4j.jaunts.svc.cluster.local"
	DefaultPort                         = 7687
	DefaultScheme                       = "neo4j"
	DefaultDatabase                     = "neo4j"
	DefaultUsername                     = "neo4j"
	DefaultMaxConnectionPoolSize        = 50
	DefaultMaxConnectionLifetime        = time.Hour
	DefaultConnectionAcquisitionTimeout = time.Minute
	DefaultConnectTimeout               = 10 * time.Second
	DefaultMaxTransactionRetryTime      = 5 * time.Second
	DefaultHealthTimeout                = 5 * time.Second
)

// Secret hides a credential from fmt, logs and text marshalling.
type Secret string

const redacted = "[REDACTED]"

func (s Secret) String() string               { return redacted }
func (s Secret) GoString() string             { return redacted }
func (s Secret) MarshalText() ([]byte, error) { return []byte(redacted), nil }

// Value returns the plaintext secret.
func (s Secret) Value() string { return string(s) }

// Config configures a [Client]. A non-empty URI takes precedence over
// Scheme, Host and Port.
type Config struct {
	URI      string `json:"uri,omitempty" yaml:"uri" env:"URI"`
	Host     string `json:"host,omitempty" yaml:"host" env:"HOST"`
	Port     int    `json:"port,omitempty" yaml:"port" env:"PORT"`
	Scheme   string `json:"scheme,omitempty" yaml:"scheme" env:"SCHEME"`
	Database string `json:"database" yaml:"database" env:"DATABASE"`
	Username string `json:"username" yaml:"username" env:"USERNAME"`
	Password Secret `json:"-" yaml:"-" env:"PASSWORD"`

	MaxConnectionPoolSize        int           `json:"max_connection_pool_size,omitempty" yaml:"max_connection_pool_size" env:"MAX_CONNECTION_POOL_SIZE"`
	MaxConnectionLifetime        time.Duration `json:"max_connection_lifetime,omitempty" yaml:"max_connection_lifetime" env:"MAX_CONNECTION_LIFETIME"`
	ConnectionAcquisitionTimeout time.Duration `json:"connection_acquisition_timeout,omitempty" yaml:"connection_acquisition_timeout" env:"CONNECTION_ACQUISITION_TIMEOUT"`
	ConnectTimeout               time.Duration `json:"connect_timeout,omitempty" yaml:"connect_timeout" env:"CONNECT_TIMEOUT"`

	// MaxTransactionRetryTime bounds the driver's own retries of transient
	// failures inside managed transactions. When it runs out the failure
	// is reported as a concurrency fault.
	MaxTransactionRetryTime time.Duration `json:"max_transaction_retry_time,omitempty" yaml:"max_transaction_retry_time" env:"MAX_TRANSACTION_RETRY_TIME"`
}

var validSchemes = map[string]bool{
	"neo4j":   true,
	"neo4j+s": true,
	"bolt":    true,
	"bolt+s":  true,
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	c := &Config{
		Host:     DefaultHost,
		Port:     DefaultPort,
		Scheme:   DefaultScheme,
		Database: DefaultDatabase,
		Username: DefaultUsername,
	}
	c.applyDefaults()
	return c
}

// Validate fills zero settings with defaults and checks the rest.
func (c *Config) Validate() error {
	c.applyDefaults()
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	if c.Username == "" {
		c.Username = DefaultUsername
	}

	if c.URI != "" {
		u, err := url.Parse(c.URI)
		if err != nil {
			return fmt.Errorf("neo4j: invalid uri: %w", err)
		}
		if !validSchemes[u.Scheme] {
			return fmt.Errorf("neo4j: uri scheme must be neo4j, neo4j+s, bolt or bolt+s, got %q", u.Scheme)
		}
		return nil
	}

	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Scheme == "" {
		c.Scheme = DefaultScheme
	}
	switch {
	case c.Port < 1 || c.Port > 65535:
		return fmt.Errorf("neo4j: port must be between 1 and 65535, got %d", c.Port)
	case !validSchemes[c.Scheme]:
		return fmt.Errorf("neo4j: unsupported scheme %q", c.Scheme)
	case c.MaxConnectionPoolSize < 1:
		return fmt.Errorf("neo4j: max_connection_pool_size must be >= 1, got %d", c.MaxConnectionPoolSize)
	case c.MaxConnectionLifetime < 0, c.ConnectionAcquisitionTimeout < 0, c.ConnectTimeout < 0, c.MaxTransactionRetryTime < 0:
		return errors.New("neo4j: timeouts must not be negative")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.MaxConnectionPoolSize == 0 {
		c.MaxConnectionPoolSize = DefaultMaxConnectionPoolSize
	}
	if c.MaxConnectionLifetime == 0 {
		c.MaxConnectionLifetime = DefaultMaxConnectionLifetime
	}
	if c.ConnectionAcquisitionTimeout == 0 {
		c.ConnectionAcquisitionTimeout = DefaultConnectionAcquisitionTimeout
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.MaxTransactionRetryTime == 0 {
		c.MaxTransactionRetryTime = DefaultMaxTransactionRetryTime
	}
}

// ConnectionURI returns URI, or builds one from Scheme, Host and Port.
func (c *Config) ConnectionURI() string {
	if c.URI != "" {
		return c.URI
	}
	scheme := c.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Host, c.Port)
}

func truncateStatement(s string) string {
	runes := []rune(s)
	if len(runes) <= maxStatementLen {
		return s
	}
	return string(runes[:maxStatementLen]) + "..."
}
