package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/Chapsvision-dev/mtn-token/internal/auth"
	"github.com/Chapsvision-dev/mtn-token/internal/config"
)

/* ----------------------------- test harness ----------------------------- */

type exitPanic struct{ code int }

func patchExit(t *testing.T) func() {
	t.Helper()
	prev := exit
	exit = func(code int) { panic(exitPanic{code}) }
	return func() { exit = prev }
}

func mustExitCode(t *testing.T, fn func()) (code int) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected os.Exit interception, got no panic")
		}
		if ep, ok := r.(exitPanic); ok {
			code = ep.code
			return
		}
		t.Fatalf("unexpected panic: %#v", r)
	}()
	fn()
	return 0
}

func withArgs(t *testing.T, args []string) func() {
	t.Helper()
	prev := os.Args
	os.Args = append([]string{prev[0]}, args...)
	return func() { os.Args = prev }
}

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := stdout
	var buf bytes.Buffer
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func resetSeams() {
	loadConfig = config.Load
	acquireToken = auth.AcquireToken
}

/* --------------------------------- tests -------------------------------- */

func TestMain_PrintsToken(t *testing.T) {
	resetSeams()
	defer patchExit(t)()
	defer withArgs(t, []string{})()
	out := captureStdout(t)

	want := config.Config{Username: "alice", Password: "p@ss", AuthURL: "https://auth.example.com"}
	loadConfig = func() (config.Config, error) { return want, nil }

	var got config.Config
	acquireToken = func(_ context.Context, cfg config.Config) (string, error) {
		got = cfg
		return "abc123", nil
	}

	main()

	if got.Username != want.Username || got.AuthURL != want.AuthURL {
		t.Fatalf("config not passed through: %+v", got)
	}
	if out.String() != "abc123\n" {
		t.Fatalf("want token on stdout, got %q", out.String())
	}
}

func TestMain_ConfigErrorSkipsFetch(t *testing.T) {
	resetSeams()
	defer patchExit(t)()
	defer withArgs(t, []string{})()
	out := captureStdout(t)

	loadConfig = func() (config.Config, error) {
		return config.Config{}, config.ErrMissing
	}
	called := false
	acquireToken = func(context.Context, config.Config) (string, error) {
		called = true
		return "", nil
	}

	code := mustExitCode(t, func() { main() })
	if code != 1 {
		t.Fatalf("want exit 1, got %d", code)
	}
	if called {
		t.Fatal("token fetch must not run on config error")
	}
	if out.Len() != 0 {
		t.Fatalf("expected empty stdout, got %q", out.String())
	}
}

func TestMain_FetchError(t *testing.T) {
	resetSeams()
	defer patchExit(t)()
	defer withArgs(t, []string{})()
	out := captureStdout(t)

	loadConfig = func() (config.Config, error) { return config.Config{}, nil }
	acquireToken = func(context.Context, config.Config) (string, error) {
		return "", &auth.NetworkError{URL: "http://127.0.0.1:1", Err: errors.New("connection refused")}
	}

	code := mustExitCode(t, func() { main() })
	if code != 1 {
		t.Fatalf("want exit 1, got %d", code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected empty stdout, got %q", out.String())
	}
}

func TestMain_Version(t *testing.T) {
	resetSeams()
	defer patchExit(t)()
	defer withArgs(t, []string{"--version"})()
	out := captureStdout(t)

	code := mustExitCode(t, func() { main() })
	if code != 0 {
		t.Fatalf("want exit 0, got %d", code)
	}
	if !strings.HasPrefix(out.String(), "mtn-token ") {
		t.Fatalf("unexpected version output %q", out.String())
	}
}

func TestMain_Help(t *testing.T) {
	resetSeams()
	defer patchExit(t)()
	defer withArgs(t, []string{"help"})()
	out := captureStdout(t)

	code := mustExitCode(t, func() { main() })
	if code != 0 {
		t.Fatalf("want exit 0, got %d", code)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Fatalf("expected usage on stdout, got: %q", out.String())
	}
}

func TestMain_UnknownCommand(t *testing.T) {
	resetSeams()
	defer patchExit(t)()
	defer withArgs(t, []string{"refresh"})()
	captureStdout(t)

	loadConfig = func() (config.Config, error) {
		t.Fatal("config must not load for a usage error")
		return config.Config{}, nil
	}

	code := mustExitCode(t, func() { main() })
	if code != 2 {
		t.Fatalf("want exit 2, got %d", code)
	}
}
