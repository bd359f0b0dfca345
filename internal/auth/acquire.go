package auth

import (
	"context"

	"github.com/Chapsvision-dev/mtn-token/internal/config"
)

// AcquireToken is a convenience for call sites that only need the string token.
func AcquireToken(ctx context.Context, cfg config.Config) (string, error) {
	f, err := New(cfg)
	if err != nil {
		return "", err
	}
	return f.Acquire(ctx)
}
