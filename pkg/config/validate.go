package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ValidationError represents a single validation error with context.
type ValidationError struct {
	Path    string // e.g., "api.base_url"
	Message string // e.g., "invalid URL"
	Hint    string // e.g., "expected http(s)://host[:port]"
}

func (e ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s; %s", e.Path, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Validate performs validation of the entire config. All issues are
// aggregated into a single error so the caller can print them at once.
func (c *Config) Validate() error {
	var errs []error

	errs = append(errs, c.validateAPI()...)
	errs = append(errs, c.validateStorage()...)
	errs = append(errs, c.validateStub()...)

	if len(errs) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return fmt.Errorf("invalid config:\n  %s", strings.Join(msgs, "\n  "))
}

func (c *Config) validateAPI() []error {
	var errs []error
	ac := c.API

	if strings.TrimSpace(ac.BaseURL) == "" {
		errs = append(errs, ValidationError{
			Path:    "api.base_url",
			Message: "must not be empty",
		})
	} else {
		u, err := url.Parse(ac.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, ValidationError{
				Path:    "api.base_url",
				Message: "invalid URL",
				Hint:    "expected http(s)://host[:port]",
			})
		}
	}

	if ac.RequestTimeout < 0 {
		errs = append(errs, ValidationError{
			Path:    "api.request_timeout",
			Message: "must not be negative",
		})
	}

	return errs
}

func (c *Config) validateStorage() []error {
	var errs []error
	sc := c.Storage

	switch sc.Driver {
	case "sqlite":
		if strings.TrimSpace(sc.Path) == "" {
			errs = append(errs, ValidationError{
				Path:    "storage.path",
				Message: "must not be empty for the sqlite driver",
			})
		}
	case "memory":
		// No path required.
	default:
		errs = append(errs, ValidationError{
			Path:    "storage.driver",
			Message: fmt.Sprintf("unknown driver %q", sc.Driver),
			Hint:    `expected "sqlite" or "memory"`,
		})
	}

	return errs
}

func (c *Config) validateStub() []error {
	var errs []error
	st := c.Stub

	if st.ListenAddr != "" {
		if _, _, err := net.SplitHostPort(st.ListenAddr); err != nil {
			errs = append(errs, ValidationError{
				Path:    "stub.listen_addr",
				Message: "invalid listen address",
				Hint:    "expected host:port",
			})
		}
	}

	return errs
}
