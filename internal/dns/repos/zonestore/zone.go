// Package zonestore holds authoritative zone data in memory, indexed by
// owner name and record type.
//
// Lifecycle: the zone-file loader is the only writer, appending records
// while it parses a file top to bottom. Once loading finishes the zone is
// handed to the server and read concurrently without further mutation, so
// no locking is needed. Hot reload is out of scope.
package zonestore

import (
	"github.com/okvist/authdns/internal/dns/common/utils"
	"github.com/okvist/authdns/internal/dns/domain"
)

type recordKey struct {
	name   string
	rrType domain.RRType
}

// Zone is the record set of a single zone rooted at its apex name.
type Zone struct {
	apex    string
	records map[recordKey][]domain.ResourceRecord
	names   map[string]struct{}
	soa     *domain.ResourceRecord
}

// New creates an empty zone rooted at apex.
func New(apex string) *Zone {
	return &Zone{
		apex:    utils.CanonicalDNSName(apex),
		records: make(map[recordKey][]domain.ResourceRecord),
		names:   make(map[string]struct{}),
	}
}

// Apex returns the zone's root name in canonical form.
func (z *Zone) Apex() string {
	return z.apex
}

// AddRecord appends a record to the bucket keyed by its canonical owner
// name and type. Adding an SOA record also refreshes the cached SOA.
func (z *Zone) AddRecord(rr domain.ResourceRecord) {
	name := utils.CanonicalDNSName(rr.Name)
	key := recordKey{name: name, rrType: rr.Type}
	z.records[key] = append(z.records[key], rr)
	z.names[name] = struct{}{}
	if rr.Type == domain.RRTypeSOA {
		soa := rr
		z.soa = &soa
	}
}

// Lookup returns the records for (name, type). When the exact bucket is
// empty and an address type was asked for, the CNAME bucket for the same
// owner is returned instead. The alias is surfaced as-is; the engine does
// not re-resolve the target, the client does.
func (z *Zone) Lookup(name string, rrType domain.RRType) []domain.ResourceRecord {
	cname := utils.CanonicalDNSName(name)
	if records := z.records[recordKey{name: cname, rrType: rrType}]; len(records) > 0 {
		return records
	}
	if rrType == domain.RRTypeA || rrType == domain.RRTypeAAAA {
		return z.records[recordKey{name: cname, rrType: domain.RRTypeCNAME}]
	}
	return nil
}

// HasName reports whether any record exists for the owner name,
// regardless of type. This separates "name does not exist" from "name
// exists but not for this type".
func (z *Zone) HasName(name string) bool {
	_, ok := z.names[utils.CanonicalDNSName(name)]
	return ok
}

// Authoritative reports whether the zone is authoritative for name: the
// name equals the apex or falls under it on a label boundary.
func (z *Zone) Authoritative(name string) bool {
	return utils.InZone(utils.CanonicalDNSName(name), z.apex)
}

// SOA returns the zone's start-of-authority record if one was loaded.
func (z *Zone) SOA() (domain.ResourceRecord, bool) {
	if z.soa == nil {
		return domain.ResourceRecord{}, false
	}
	return *z.soa, true
}

// NSRecords returns the zone's apex NS records, served as the authority
// section of positive answers.
func (z *Zone) NSRecords() []domain.ResourceRecord {
	return z.records[recordKey{name: z.apex, rrType: domain.RRTypeNS}]
}

// Len returns the number of records in the zone.
func (z *Zone) Len() int {
	n := 0
	for _, bucket := range z.records {
		n += len(bucket)
	}
	return n
}
