// Package systemd lets the bot signal readiness and update the watchdog
// timestamp when it runs as a systemd service.
package systemd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/shilp-ai/creatorbot/internal/logger"
)

// State defines a sd-notify protocol state.
// See https://www.freedesktop.org/software/systemd/man/sd_notify.html.
type State string

const (
	// Ready tells the service manager that startup is finished: the bot has
	// authenticated and is about to poll.
	Ready State = "READY=1"
	// Stopping tells the service manager that the bot is shutting down.
	Stopping State = "STOPPING=1"
	// Watchdog tells the service manager to update the watchdog timestamp.
	Watchdog State = "WATCHDOG=1"
)

// Notify sends state to systemd using the sd_notify protocol. It does nothing
// if NOTIFY_SOCKET is not set. Errors are logged to logf.
func Notify(getenv func(string) string, logf logger.Logf, state State) {
	addr := &net.UnixAddr{
		Net:  "unixgram",
		Name: getenv("NOTIFY_SOCKET"),
	}
	if addr.Name == "" {
		return
	}

	conn, err := net.DialUnix(addr.Net, nil, addr)
	if err != nil {
		logf("systemd: failed when notifying: %v", err)
		return
	}
	defer conn.Close()

	if _, err = conn.Write([]byte(state)); err != nil {
		logf("systemd: failed when notifying: %v", err)
	}
}

// WatchdogLoop updates the systemd watchdog timestamp at half the interval
// given in WATCHDOG_USEC until ctx is cancelled. It returns immediately if
// WATCHDOG_USEC is not set.
func WatchdogLoop(ctx context.Context, getenv func(string) string, logf logger.Logf) {
	usec := getenv("WATCHDOG_USEC")
	if usec == "" {
		return
	}
	interval, err := watchdogInterval(usec)
	if err != nil {
		logf("%v", err)
		return
	}

	ticker := time.NewTicker(interval / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			Notify(getenv, logf, Watchdog)
		case <-ctx.Done():
			return
		}
	}
}

func watchdogInterval(usec string) (time.Duration, error) {
	s, err := strconv.Atoi(usec)
	if err != nil {
		return 0, fmt.Errorf("systemd: error converting WATCHDOG_USEC: %w", err)
	}
	if s <= 0 {
		return 0, errors.New("systemd: error WATCHDOG_USEC must be a positive number")
	}
	return time.Duration(s) * time.Microsecond, nil
}
