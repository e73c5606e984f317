// Package stats keeps lightweight counters for served queries.
package stats

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/okvist/authdns/internal/dns/common/log"
	"github.com/okvist/authdns/internal/dns/domain"
)

// Counters accumulates query totals. All methods are safe for concurrent
// use; handlers on every listener share one instance.
type Counters struct {
	received atomic.Uint64
	answered atomic.Uint64
	nxdomain atomic.Uint64
	refused  atomic.Uint64
	dropped  atomic.Uint64
}

// New returns zeroed counters.
func New() *Counters {
	return &Counters{}
}

// QueryReceived notes that a datagram decoded into a query.
func (c *Counters) QueryReceived() {
	c.received.Add(1)
}

// QueryDropped notes a datagram that never produced a response.
func (c *Counters) QueryDropped() {
	c.dropped.Add(1)
}

// RecordOutcome notes the response code of a resolved query.
func (c *Counters) RecordOutcome(rcode domain.RCode) {
	switch rcode {
	case domain.RCodeNoError:
		c.answered.Add(1)
	case domain.RCodeNXDomain:
		c.nxdomain.Add(1)
	case domain.RCodeRefused:
		c.refused.Add(1)
	}
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Received uint64
	Answered uint64
	NXDomain uint64
	Refused  uint64
	Dropped  uint64
}

// Snapshot reads all counters. Values are individually atomic, not a
// consistent cut, which is fine for reporting.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Received: c.received.Load(),
		Answered: c.answered.Load(),
		NXDomain: c.nxdomain.Load(),
		Refused:  c.refused.Load(),
		Dropped:  c.dropped.Load(),
	}
}

// LogPeriodically emits a summary line every interval until ctx is done.
func (c *Counters) LogPeriodically(ctx context.Context, interval time.Duration, logger log.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := c.Snapshot()
			logger.Info(map[string]any{
				"received": s.Received,
				"answered": s.Answered,
				"nxdomain": s.NXDomain,
				"refused":  s.Refused,
				"dropped":  s.Dropped,
			}, "query stats")
		}
	}
}
