// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package launcher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the bot's work. A nil *Metrics counts nothing.
type Metrics struct {
	replies *prometheus.CounterVec
	ignored prometheus.Counter
}

// NewMetrics creates the bot's counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		replies: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "creatorbot",
			Name:      "start_replies_total",
			Help:      "Replies to /start by delivery result.",
		}, []string{"result"}),
		ignored: f.NewCounter(prometheus.CounterOpts{
			Namespace: "creatorbot",
			Name:      "ignored_updates_total",
			Help:      "Updates that matched no handler.",
		}),
	}
}

func (m *Metrics) observeReply(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.replies.WithLabelValues(result).Inc()
}

func (m *Metrics) observeIgnored() {
	if m == nil {
		return
	}
	m.ignored.Inc()
}
