package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/net/http/httpguts"
)

// DefaultTimeout bounds the login round trip when MTN_AUTH_TIMEOUT is unset.
const DefaultTimeout = 30 * time.Second

var (
	ErrMissing        = errors.New("missing required configuration")
	ErrInvalidURL     = errors.New("invalid auth url")
	ErrInvalidHeaders = errors.New("invalid header overrides")
)

type Config struct {
	Username string
	Password string
	AuthURL  string

	// Timeout applies to the whole request, including reading the body.
	Timeout time.Duration

	// HeaderOverrides replace entries of the default header set.
	// An empty value removes the header.
	HeaderOverrides map[string]string
}

// Load reads config from environment variables, applies defaults and validates.
func Load() (Config, error) {
	get := func(key, def string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return def
	}

	parseDur := func(key string, def time.Duration) time.Duration {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil && d > 0 {
				return d
			}
		}
		return def
	}

	headers, err := parseHeaders(get("MTN_AUTH_HEADERS", ""))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Username:        strings.TrimSpace(get("MTN_USER", "")),
		Password:        get("MTN_PASS", ""),
		AuthURL:         strings.TrimSpace(get("MTN_AUTH_URL", "")),
		Timeout:         parseDur("MTN_AUTH_TIMEOUT", DefaultTimeout),
		HeaderOverrides: headers,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every missing required value at once, then checks the URL
// and the header overrides.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Username) == "" {
		missing = append(missing, "MTN_USER")
	}
	if c.Password == "" {
		missing = append(missing, "MTN_PASS")
	}
	if strings.TrimSpace(c.AuthURL) == "" {
		missing = append(missing, "MTN_AUTH_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissing, strings.Join(missing, ", "))
	}

	u, err := url.Parse(c.AuthURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host in %q", ErrInvalidURL, c.AuthURL)
	}
	return validateHeaders(c.HeaderOverrides)
}

// parseHeaders decodes MTN_AUTH_HEADERS, a JSON object of header name to value.
func parseHeaders(raw string) (map[string]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out map[string]string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: MTN_AUTH_HEADERS: %v", ErrInvalidHeaders, err)
	}
	if err := validateHeaders(out); err != nil {
		return nil, err
	}
	return out, nil
}

// validateHeaders rejects names and values net/http would refuse to send.
// An empty value is allowed: it removes the header.
func validateHeaders(h map[string]string) error {
	for k, v := range h {
		name := strings.TrimSpace(k)
		if name == "" {
			return fmt.Errorf("%w: MTN_AUTH_HEADERS: empty header name", ErrInvalidHeaders)
		}
		if !httpguts.ValidHeaderFieldName(name) {
			return fmt.Errorf("%w: MTN_AUTH_HEADERS: invalid header name %q", ErrInvalidHeaders, k)
		}
		if v != "" && !httpguts.ValidHeaderFieldValue(v) {
			return fmt.Errorf("%w: MTN_AUTH_HEADERS: invalid value for header %q", ErrInvalidHeaders, name)
		}
	}
	return nil
}
