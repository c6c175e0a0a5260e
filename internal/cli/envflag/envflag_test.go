package envflag

import (
	"flag"
	"io"
	"testing"
	"time"

	"github.com/shilp-ai/creatorbot/internal/testutil"
)

func getenv(vars map[string]string) func(string) string {
	return func(name string) string { return vars[name] }
}

func TestValue(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		env         map[string]string
		args        []string
		wantAddr    string
		wantDebug   bool
		wantTimeout time.Duration
	}{
		"defaults": {
			wantTimeout: time.Minute,
		},
		"environment overrides defaults": {
			env:         map[string]string{"ADDR": "localhost:3000", "BOT_DEBUG": "true", "POLL_TIMEOUT": "30s"},
			wantAddr:    "localhost:3000",
			wantDebug:   true,
			wantTimeout: 30 * time.Second,
		},
		"flags override environment": {
			env:         map[string]string{"ADDR": "localhost:3000", "BOT_DEBUG": "true"},
			args:        []string{"-addr", ":8080", "-debug=false", "-poll-timeout", "10s"},
			wantAddr:    ":8080",
			wantTimeout: 10 * time.Second,
		},
		"bare boolean flag": {
			args:        []string{"-debug"},
			wantDebug:   true,
			wantTimeout: time.Minute,
		},
		"unparsable environment value is ignored": {
			env:         map[string]string{"BOT_DEBUG": "sure", "POLL_TIMEOUT": "soon"},
			wantTimeout: time.Minute,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			addr := Value("addr", "ADDR", "", "Listen address.", fs, getenv(tc.env))
			debug := Value("debug", "BOT_DEBUG", false, "Debug.", fs, getenv(tc.env))
			timeout := Value("poll-timeout", "POLL_TIMEOUT", time.Minute, "Poll timeout.", fs, getenv(tc.env))
			if err := fs.Parse(tc.args); err != nil {
				t.Fatal(err)
			}
			testutil.AssertEqual(t, *addr, tc.wantAddr)
			testutil.AssertEqual(t, *debug, tc.wantDebug)
			testutil.AssertEqual(t, *timeout, tc.wantTimeout)
		})
	}
}

func TestValueInvalidFlag(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	Value("retries", "RETRIES", 0, "Retries.", fs, getenv(nil))
	if err := fs.Parse([]string{"-retries", "many"}); err == nil {
		t.Fatal("parsing a non-integer into an int flag must fail")
	}
}

func TestUsageMentionsEnv(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	Value("addr", "ADDR", "", "Listen address.", fs, getenv(nil))
	testutil.AssertEqual(t, fs.Lookup("addr").Usage, "Listen address. Can be overridden by ADDR environment variable.")
}
