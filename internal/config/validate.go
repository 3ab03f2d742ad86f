package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/oakwood-commons/shelf/pkg/logger"
)

var (
	// ErrInvalid marks a config value that failed validation.
	ErrInvalid = errors.New("invalid config")
	// ErrUnknownFormat is returned by Encode for an unsupported format.
	ErrUnknownFormat = errors.New("unknown output format")
)

// ThemeError reports a theme name that is not configured.
type ThemeError struct {
	Selected  string
	Available []string
}

func (e *ThemeError) Error() string {
	return fmt.Sprintf("unknown theme %q (available: %s)", e.Selected, strings.Join(e.Available, ", "))
}

func (e *ThemeError) Unwrap() error {
	return ErrInvalid
}

// Validate checks the merged config.
func (c Config) Validate() error {
	if err := checkBaseURL("api.base_url", c.API.BaseURL, true); err != nil {
		return err
	}
	if err := checkBaseURL("api.asset_base_url", c.API.AssetBaseURL, false); err != nil {
		return err
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout must not be negative", ErrInvalid)
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("%w: api.rate_limit must not be negative", ErrInvalid)
	}
	if c.Search.PanelMargin < 0 {
		return fmt.Errorf("%w: search.panel_margin must not be negative", ErrInvalid)
	}
	if _, err := c.SelectedTheme(); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}

func checkBaseURL(field, raw string, required bool) error {
	if strings.TrimSpace(raw) == "" {
		if required {
			return fmt.Errorf("%w: %s is required", ErrInvalid, field)
		}
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %s %q must be an http or https URL", ErrInvalid, field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %s %q has no host", ErrInvalid, field, raw)
	}
	return nil
}
