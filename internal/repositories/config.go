package repositories

import (
	"errors"
	"strings"
	"time"
)

// Config represents repository configuration
type Config struct {
	// BaseURL is the project URL of the hosted data API
	BaseURL string `json:"base_url" yaml:"base_url"`

	// ServiceKey authenticates server-side requests. It is sent both as the
	// apikey header and as a bearer token.
	ServiceKey string `json:"-" yaml:"-"`

	// OrdersTable is the table queried for order history
	OrdersTable string `json:"orders_table" yaml:"orders_table"`

	// Timeout bounds each upstream request; zero means no timeout
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		OrdersTable: "orders",
	}
}

// Configured reports whether the data API can be called
func (c *Config) Configured() bool {
	return strings.TrimSpace(c.BaseURL) != "" && strings.TrimSpace(c.ServiceKey) != ""
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.OrdersTable == "" {
		return errors.New("orders table is required")
	}
	if c.Timeout < 0 {
		return errors.New("timeout cannot be negative")
	}
	return nil
}
