package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Chapsvision-dev/mtn-token/internal/config"
)

const (
	tokenField = "jwt_token"

	maxBodyBytes    = 1 << 20
	maxSnippetBytes = 1024
)

// Fetcher exchanges MTN portal credentials for a JWT.
// It holds no mutable state and may be reused.
type Fetcher struct {
	url      string
	username string
	password string
	headers  http.Header
	client   *http.Client
}

// New validates configuration and returns a fetcher. An invalid config
// fails here, before any request can be sent.
func New(cfg config.Config) (*Fetcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	return &Fetcher{
		url:      cfg.AuthURL,
		username: cfg.Username,
		password: cfg.Password,
		headers:  BuildHeaders(cfg.HeaderOverrides),
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// Acquire performs one login request and returns the jwt_token value as-is.
func (f *Fetcher) Acquire(ctx context.Context) (string, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, strings.NewReader(formBody(f.username, f.password)))
	if err != nil {
		return "", fmt.Errorf("build mtn login request: %w", err)
	}
	req.Header = f.headers.Clone()
	// net/http ignores Host in req.Header on outgoing requests.
	if host := req.Header.Get("Host"); host != "" {
		req.Host = host
		req.Header.Del("Host")
	}

	log.Debug().
		Str("action", "mtn_login").
		Str("url", f.url).
		Msg("sending login request")

	resp, err := f.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("action", "mtn_login").Msg("request error")
		return "", &NetworkError{URL: f.url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	// Status comes first so an error page is never decoded as a token response.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxSnippetBytes))
		log.Debug().
			Int("status", resp.StatusCode).
			Str("action", "mtn_login").
			Msg("non-2xx response")
		return "", &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(data)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return "", &NetworkError{URL: f.url, Err: fmt.Errorf("read body: %w", err)}
	}
	if len(body) > maxBodyBytes {
		return "", &ParseError{Err: fmt.Errorf("response body exceeds %d bytes", maxBodyBytes)}
	}

	token, err := extractToken(body)
	if err != nil {
		return "", err
	}

	// Never log the token content.
	log.Info().
		Str("action", "mtn_login").
		Int("status", resp.StatusCode).
		Dur("elapsed_ms", time.Since(start)).
		Msg("mtn login OK")
	return token, nil
}

// formBody encodes the credentials as username then password.
// url.Values is not used since Encode sorts keys.
func formBody(username, password string) string {
	return "username=" + url.QueryEscape(username) + "&password=" + url.QueryEscape(password)
}

func extractToken(body []byte) (string, error) {
	var out map[string]json.RawMessage
	if err := json.Unmarshal(body, &out); err != nil {
		return "", &ParseError{Err: err}
	}
	if out == nil {
		return "", &ParseError{Err: errors.New("response is not a JSON object")}
	}

	raw, ok := out[tokenField]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", &MissingFieldError{Field: tokenField}
	}
	var token string
	if err := json.Unmarshal(raw, &token); err != nil {
		return "", &ParseError{Err: fmt.Errorf("%s: %w", tokenField, err)}
	}
	if token == "" {
		return "", &MissingFieldError{Field: tokenField}
	}
	return token, nil
}
