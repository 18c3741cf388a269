package config

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrMissingCredentials reports that DOMS credentials are not configured.
var ErrMissingCredentials = errors.New("doms credentials missing")

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDOMS(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDOMS() error {
	if c.DOMS.Endpoint == "" {
		return errors.New("doms.endpoint must be set")
	}
	u, err := url.Parse(c.DOMS.Endpoint)
	if err != nil {
		return fmt.Errorf("doms.endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("doms.endpoint must be an http or https URL, got %q", c.DOMS.Endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("doms.endpoint has no host: %q", c.DOMS.Endpoint)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// RequireCredentials fails unless both DOMS username and password are set.
// Commands that talk to DOMS call it before doing any work.
func (c *Config) RequireCredentials() error {
	switch {
	case c.DOMS.Username == "" && c.DOMS.Password == "":
		return fmt.Errorf("%w: set doms.username and doms.password or DOMS_USERNAME and DOMS_PASSWORD", ErrMissingCredentials)
	case c.DOMS.Username == "":
		return fmt.Errorf("%w: doms.username is empty", ErrMissingCredentials)
	case c.DOMS.Password == "":
		return fmt.Errorf("%w: doms.password is empty", ErrMissingCredentials)
	}
	return nil
}
