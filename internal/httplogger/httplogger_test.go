package httplogger

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shilp-ai/creatorbot/internal/testutil"
)

const token = "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }

func TestDo(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		do   doerFunc
		want string
	}{
		"ok": {
			do: func(r *http.Request) (*http.Response, error) {
				return &http.Response{Status: "200 OK", StatusCode: http.StatusOK}, nil
			},
			want: "HTTP: POST sendMessage 200 OK (0.250s)",
		},
		"transport error": {
			do: func(r *http.Request) (*http.Response, error) {
				return nil, &url.Error{Op: "Post", URL: r.URL.String(), Err: errors.New("connection refused")}
			},
			want: `HTTP: POST sendMessage error: Post "https://api.telegram.org/[REDACTED]/sendMessage": connection refused (0.250s)`,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var lines []string
			d := New(tc.do, func(format string, args ...any) {
				lines = append(lines, fmt.Sprintf(format, args...))
			}).(*loggingDoer)
			clock := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
			d.now = func() time.Time {
				now := clock
				clock = clock.Add(250 * time.Millisecond)
				return now
			}

			req, err := http.NewRequest(http.MethodPost, "https://api.telegram.org/bot"+token+"/sendMessage", nil)
			if err != nil {
				t.Fatal(err)
			}
			d.Do(req)

			testutil.AssertEqual(t, lines, []string{tc.want})
			if strings.Contains(lines[0], token) {
				t.Fatalf("token leaked into log line %q", lines[0])
			}
		})
	}
}
