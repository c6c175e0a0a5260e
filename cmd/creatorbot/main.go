// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-telegram/bot"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/shilp-ai/creatorbot/internal/cli"
	"github.com/shilp-ai/creatorbot/internal/cli/envflag"
	"github.com/shilp-ai/creatorbot/internal/launcher"
	"github.com/shilp-ai/creatorbot/internal/logger"
	"github.com/shilp-ai/creatorbot/internal/systemd"
	"github.com/shilp-ai/creatorbot/internal/web"
)

func main() {
	// A missing .env is fine, the environment may already be complete.
	_ = godotenv.Load()
	cli.Main(new(app))
}

type app struct {
	// configuration
	addr        *string
	debug       *bool
	pollTimeout *time.Duration

	// initialized by Run
	session *launcher.Session

	// for tests
	httpc  bot.HttpClient
	noPoll bool
	ready  func(net.Addr)
}

func (a *app) Flags(fs *flag.FlagSet, getenv func(string) string) {
	a.addr = envflag.Value("addr", "ADDR", "", "Listen on `host:port` for /health and /metrics. Disabled if empty.", fs, getenv)
	a.debug = envflag.Value("debug", "BOT_DEBUG", false, "Log Bot API requests.", fs, getenv)
	a.pollTimeout = envflag.Value("poll-timeout", "POLL_TIMEOUT", launcher.DefaultPollTimeout, "How long to hold each getUpdates request.", fs, getenv)
}

func (a *app) Run(ctx context.Context, env *cli.Env) error {
	if len(env.Args) > 0 {
		return fmt.Errorf("%w: no arguments expected, got %q", cli.ErrInvalidArgs, env.Args)
	}

	token := env.Getenv("TG_TOKEN")
	if token == "" {
		return fmt.Errorf("%w: set the TG_TOKEN environment variable", launcher.ErrNoToken)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := launcher.NewMetrics(reg)

	s, err := launcher.Open(ctx, launcher.SessionConfig{
		Token:       token,
		HTTPClient:  a.httpc,
		PollTimeout: *a.pollTimeout,
		Debug:       *a.debug,
		Logf:        env.Logf,
		Metrics:     metrics,
	})
	if err != nil {
		return err
	}
	a.session = s

	launcher.Register(s.Bot(), s.Username(), launcher.NewHandler(launcher.Config{
		Sender:  s.Bot(),
		Logf:    env.Logf,
		Metrics: metrics,
	}))

	if a.noPoll {
		return nil
	}

	systemd.Notify(env.Getenv, env.Logf, systemd.Ready)
	defer systemd.Notify(env.Getenv, env.Logf, systemd.Stopping)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Run(ctx) })
	g.Go(func() error {
		systemd.WatchdogLoop(ctx, env.Getenv, env.Logf)
		return nil
	})
	if *a.addr != "" {
		weblogf := logger.WithPrefix(env.Logf, "web: ")
		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			web.RespondJSONError(weblogf, w, web.ErrNotFound)
		})
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		web.Health(mux).RegisterFunc("telegram", s.Health)
		g.Go(func() error {
			return web.ListenAndServe(ctx, &web.ListenAndServeConfig{
				Addr:  *a.addr,
				Mux:   mux,
				Logf:  weblogf,
				Ready: a.ready,
			})
		})
	}
	return g.Wait()
}
