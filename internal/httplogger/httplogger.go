// Package httplogger wraps an HTTP client and logs each request it makes:
// the Bot API method, the response status and the latency.
//
// Only the last path segment of the URL is logged. Bot API URLs carry the bot
// token in the path, so the full URL must never reach the logs.
package httplogger

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/shilp-ai/creatorbot/internal/logger"
)

// Doer is the part of [http.Client] used to send requests.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// New returns a Doer that sends requests with d and logs them to logf.
func New(d Doer, logf logger.Logf) Doer {
	if logf == nil {
		logf = log.Printf
	}
	return &loggingDoer{d: d, logf: logf, now: time.Now}
}

type loggingDoer struct {
	d    Doer
	logf logger.Logf
	now  func() time.Time
}

func (l *loggingDoer) Do(r *http.Request) (*http.Response, error) {
	start := l.now()
	resp, err := l.d.Do(r)

	display := r.Method + " " + lastSegment(r.URL.Path)
	if resp != nil {
		display += " " + resp.Status
	}
	if err != nil {
		display += " error: " + scrub(err.Error(), r.URL.Path)
	}
	l.logf("HTTP: %s (%.3fs)", display, l.now().Sub(start).Seconds())

	return resp, err
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// scrub removes the request path from s; transport errors quote the full URL.
func scrub(s, path string) string {
	if path == "" || path == "/" {
		return s
	}
	return strings.ReplaceAll(s, path, "/[REDACTED]/"+lastSegment(path))
}
