package resolver

import (
	"github.com/okvist/authdns/internal/dns/domain"
	"github.com/okvist/authdns/internal/dns/repos/zonestore"
)

// ZoneFinder selects the authoritative zone for a query name, if any.
type ZoneFinder interface {
	Match(name string) (*zonestore.Zone, bool)
}

// Recorder receives the outcome of each resolved query.
type Recorder interface {
	RecordOutcome(rcode domain.RCode)
}

var _ ZoneFinder = (*zonestore.Table)(nil)
