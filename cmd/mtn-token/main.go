package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Chapsvision-dev/mtn-token/internal/auth"
	"github.com/Chapsvision-dev/mtn-token/internal/config"
	"github.com/Chapsvision-dev/mtn-token/internal/logx"
	"github.com/Chapsvision-dev/mtn-token/internal/version"
)

// Test seams — overridden in unit tests. Keep signatures in sync with packages.
var (
	loadConfig   func() (config.Config, error)                         = config.Load
	acquireToken func(context.Context, config.Config) (string, error) = auth.AcquireToken
	stdout       io.Writer                                             = os.Stdout
	exit         func(int)                                             = os.Exit
)

const usage = `
Usage:
  mtn-token                          fetch a JWT and print it on stdout
  mtn-token version | --version | -v
  mtn-token help    | --help    | -h

Environment (a .env file in the working directory is loaded if present):
  MTN_USER, MTN_PASS   portal credentials (required)
  MTN_AUTH_URL         login endpoint (required)
  MTN_AUTH_TIMEOUT     request timeout, Go duration (default 30s)
  MTN_AUTH_HEADERS     JSON object of header overrides; "" removes a header
  LOG_LEVEL, LOG_FORMAT
`

// main wires env -> config -> fetch -> stdout.
// Exit codes: 0 success, 1 runtime error, 2 usage error.
func main() {
	_ = godotenv.Load() // best-effort
	logx.InitFromEnv()

	args := os.Args[1:]
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "version", "--version", "-v":
			_, _ = fmt.Fprintf(stdout, "mtn-token %s\n", version.Info())
			exit(0)
			return
		case "help", "--help", "-h":
			_, _ = fmt.Fprint(stdout, usage)
			exit(0)
			return
		default:
			_, _ = fmt.Fprint(os.Stderr, usage)
			exit(2)
			return
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Error().Err(err).Msg("config error")
		exit(1)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	token, err := acquireToken(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Str("action", "mtn_login").Msg("token fetch failed")
		exit(1)
		return
	}

	_, _ = fmt.Fprintln(stdout, token)
}
