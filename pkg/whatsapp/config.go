package whatsapp

import (
	"time"

	"github.com/popeskul/wacloud/pkg/whatsapp/response"
	"github.com/popeskul/wacloud/pkg/whatsapp/transport"
)

const (
	DefaultVersion = "v17.0"
	DefaultScheme  = "https"
	DefaultHost    = response.DefaultHost
)

// Config is fixed at client construction.
type Config struct {
	APIToken      string
	PhoneNumberID string

	Version string
	Scheme  string
	Host    string

	Timeout    time.Duration
	PoolSize   int
	// MaxRetries counts re-dials after a refused connection. Zero means the default of 3;
	// a negative value disables retries.
	MaxRetries int

	// StrictDecode propagates undecodable 2xx bodies instead of returning an empty result.
	StrictDecode bool
}

func (c Config) withDefaults() Config {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.Scheme == "" {
		c.Scheme = DefaultScheme
	}
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Timeout <= 0 {
		c.Timeout = transport.DefaultTimeout
	}
	if c.PoolSize <= 0 {
		c.PoolSize = transport.DefaultPoolSize
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = transport.DefaultMaxRetries
	}
	return c
}

func (c Config) validate() error {
	if c.APIToken == "" || c.PhoneNumberID == "" {
		return ErrMissingCredentials
	}
	return nil
}
