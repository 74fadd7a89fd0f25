package webhook

import (
	"fmt"
	"time"
)

// Supported authentication types
const (
	AuthNone   = "none"
	AuthBearer = "bearer"
	AuthAPIKey = "api-key"
)

// Config holds webhook endpoint configuration
type Config struct {
	URL       string            // Webhook endpoint URL
	Method    string            // HTTP method (default: POST)
	Headers   map[string]string // Custom headers
	Timeout   time.Duration     // Timeout for the single delivery attempt
	AuthType  string            // Authentication type: none, bearer, api-key
	AuthToken string            // Authentication token
}

// Validate checks the auth settings
func (c *Config) Validate() error {
	switch c.AuthType {
	case "", AuthNone:
	case AuthBearer, AuthAPIKey:
		if c.AuthToken == "" {
			return fmt.Errorf("webhook auth type %q requires an auth token", c.AuthType)
		}
	default:
		return fmt.Errorf("unsupported webhook auth type %q (use none, bearer or api-key)", c.AuthType)
	}
	return nil
}
