// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package launcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/shilp-ai/creatorbot/internal/httplogger"
	"github.com/shilp-ai/creatorbot/internal/logger"
)

var (
	// ErrNoToken is returned by Open when no bot token is configured.
	ErrNoToken = errors.New("launcher: empty bot token")
	// ErrAuth is returned by Open when the Bot API rejects the token.
	ErrAuth = errors.New("launcher: authentication failed")
)

// DefaultPollTimeout is how long a getUpdates request is held open.
const DefaultPollTimeout = time.Minute

// SessionConfig configures [Open].
type SessionConfig struct {
	// Token is the Bot API token. Required.
	Token string
	// HTTPClient is used for all Bot API requests. If nil, a client with a
	// timeout longer than PollTimeout is used.
	HTTPClient bot.HttpClient
	// ServerURL overrides the Bot API server, for local Bot API servers.
	ServerURL string
	// PollTimeout is the long-polling hold time. Zero means DefaultPollTimeout.
	PollTimeout time.Duration
	// Debug logs every Bot API request.
	Debug bool
	// Logf is used for client errors and debug output. If nil, log.Printf is
	// used.
	Logf logger.Logf
	// Metrics is optional.
	Metrics *Metrics
}

// Session is the process's one authenticated Bot API client.
type Session struct {
	bot      *bot.Bot
	me       *models.User
	logf     logger.Logf
	scrubber *strings.Replacer
	polling  atomic.Bool
}

// Open authenticates with the Bot API. It fails with ErrNoToken before any
// request is made if c.Token is empty, and with ErrAuth if getMe fails.
func Open(ctx context.Context, c SessionConfig) (*Session, error) {
	if c.Token == "" {
		return nil, ErrNoToken
	}
	logf := c.Logf
	if logf == nil {
		logf = log.Printf
	}
	pollTimeout := c.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = DefaultPollTimeout
	}
	httpc := c.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: pollTimeout + 10*time.Second}
	}

	if c.Debug {
		httpc = httplogger.New(httpc, logf)
	}
	scrubber := strings.NewReplacer(c.Token, "[REDACTED]")

	opts := []bot.Option{
		bot.WithSkipGetMe(),
		bot.WithHTTPClient(pollTimeout, httpc),
		bot.WithErrorsHandler(func(err error) { logf("telegram: %v", scrubErr(err, scrubber)) }),
		bot.WithDefaultHandler(func(context.Context, *bot.Bot, *models.Update) {
			c.Metrics.observeIgnored()
		}),
	}
	if c.ServerURL != "" {
		opts = append(opts, bot.WithServerURL(c.ServerURL))
	}

	b, err := bot.New(c.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating Bot API client: %w", scrubErr(err, scrubber))
	}
	me, err := b.GetMe(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuth, scrubErr(err, scrubber))
	}

	return &Session{bot: b, me: me, logf: logf, scrubber: scrubber}, nil
}

// Bot returns the underlying client, for sending and registering handlers.
func (s *Session) Bot() *bot.Bot { return s.bot }

// Username returns the bot's username as reported by getMe.
func (s *Session) Username() string { return s.me.Username }

// Run removes any webhook so that getUpdates is allowed, then polls for
// updates and dispatches them until ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	if _, err := s.bot.DeleteWebhook(ctx, &bot.DeleteWebhookParams{}); err != nil {
		return fmt.Errorf("deleting webhook: %w", scrubErr(err, s.scrubber))
	}

	s.polling.Store(true)
	defer s.polling.Store(false)

	s.logf("Polling for updates as @%s...", s.me.Username)
	s.bot.Start(ctx)
	return nil
}

// Health reports whether the polling loop is running. It has the signature of
// a web.HealthFunc.
func (s *Session) Health() (status string, ok bool) {
	if !s.polling.Load() {
		return "not polling", false
	}
	return "polling as @" + s.me.Username, true
}

// scrubbedError hides the bot token, which Bot API URLs carry in their path,
// from error messages.
type scrubbedError struct {
	err      error
	scrubber *strings.Replacer
}

func (se *scrubbedError) Error() string { return se.scrubber.Replace(se.err.Error()) }
func (se *scrubbedError) Unwrap() error { return se.err }

func scrubErr(err error, scrubber *strings.Replacer) error {
	return &scrubbedError{err: err, scrubber: scrubber}
}
