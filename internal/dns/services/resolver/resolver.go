// Package resolver turns parsed questions into authoritative answers.
// Each invocation is independent; the engine keeps no per-query state.
package resolver

import (
	"context"
	"net"

	"github.com/okvist/authdns/internal/dns/common/log"
	"github.com/okvist/authdns/internal/dns/common/utils"
	"github.com/okvist/authdns/internal/dns/domain"
)

// Answer is the outcome of resolving one query: a response code plus the
// records for the answer and authority sections. REFUSED and NXDOMAIN are
// ordinary protocol outcomes here, not errors.
type Answer struct {
	RCode     domain.RCode
	Answers   []domain.ResourceRecord
	Authority []domain.ResourceRecord
}

// Resolver answers questions from the loaded zone table.
type Resolver struct {
	zones  ZoneFinder
	logger log.Logger
	stats  Recorder
}

// Options carries the collaborators a Resolver needs.
type Options struct {
	Zones  ZoneFinder
	Logger log.Logger
	Stats  Recorder
}

// New constructs a Resolver.
func New(opts Options) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Resolver{
		zones:  opts.Zones,
		logger: logger,
		stats:  opts.Stats,
	}
}

// Resolve answers the first question of the query message.
//
//  1. No loaded zone is authoritative for the name: REFUSED.
//  2. Records exist for (name, type), or a CNAME stands in for an address
//     type: NOERROR with the records and the zone's NS set as authority.
//  3. Nothing at all exists for the name: NXDOMAIN.
//  4. The name exists only under other types: also NXDOMAIN. RFC 1035
//     calls for an empty NOERROR here; the historical behavior is kept
//     deliberately and logged so it can be spotted in the field.
func (r *Resolver) Resolve(ctx context.Context, query domain.Message, client net.Addr) Answer {
	q, ok := query.Question()
	if !ok {
		return r.outcome(Answer{RCode: domain.RCodeRefused})
	}
	name := utils.CanonicalDNSName(q.Name)

	clientStr := ""
	if client != nil {
		clientStr = client.String()
	}
	r.logger.Info(map[string]any{
		"name":   name,
		"type":   q.Type.String(),
		"client": clientStr,
	}, "query")

	zone, ok := r.zones.Match(name)
	if !ok {
		return r.outcome(Answer{RCode: domain.RCodeRefused})
	}

	records := zone.Lookup(name, q.Type)
	if len(records) > 0 {
		return r.outcome(Answer{
			RCode:     domain.RCodeNoError,
			Answers:   records,
			Authority: zone.NSRecords(),
		})
	}

	if zone.HasName(name) {
		r.logger.Debug(map[string]any{
			"name": name,
			"type": q.Type.String(),
		}, "name exists under other types, answering NXDOMAIN")
	}
	return r.outcome(Answer{RCode: domain.RCodeNXDomain})
}

func (r *Resolver) outcome(a Answer) Answer {
	if r.stats != nil {
		r.stats.RecordOutcome(a.RCode)
	}
	return a
}
