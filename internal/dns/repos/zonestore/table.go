package zonestore

import (
	"strings"

	"github.com/okvist/authdns/internal/dns/common/utils"
)

// Table is the set of zones the server answers for. Like Zone it is
// assembled once at startup and only read afterwards.
type Table struct {
	zones []*Zone
}

// NewTable builds a table from the given zones.
func NewTable(zones ...*Zone) *Table {
	return &Table{zones: zones}
}

// Match selects the zone whose apex is the longest label-boundary suffix
// of name. It returns false when no loaded zone is authoritative.
func (t *Table) Match(name string) (*Zone, bool) {
	cname := utils.CanonicalDNSName(name)
	var best *Zone
	for _, z := range t.zones {
		if !z.Authoritative(cname) {
			continue
		}
		if best == nil || labelCount(z.apex) > labelCount(best.apex) {
			best = z
		}
	}
	return best, best != nil
}

// Zones returns all loaded zones.
func (t *Table) Zones() []*Zone {
	return t.zones
}

func labelCount(name string) int {
	if name == "" {
		return 0
	}
	return strings.Count(name, ".") + 1
}
