package domain

import "fmt"

// ResourceRecord represents a DNS resource record served from a zone file.
// Records do not expire from memory; the TTL is preserved for wire responses.
type ResourceRecord struct {
	Name  string
	Type  RRType
	Class RRClass
	TTL   uint32
	Data  RData
}

// NewResourceRecord constructs a ResourceRecord and validates its fields.
func NewResourceRecord(name string, rrtype RRType, class RRClass, ttl uint32, data RData) (ResourceRecord, error) {
	rr := ResourceRecord{
		Name:  name,
		Type:  rrtype,
		Class: class,
		TTL:   ttl,
		Data:  data,
	}
	if err := rr.Validate(); err != nil {
		return ResourceRecord{}, err
	}
	return rr, nil
}

// Validate checks whether the ResourceRecord fields are valid. In
// particular the payload variant must carry the record's declared type.
func (rr ResourceRecord) Validate() error {
	if rr.Name == "" {
		return fmt.Errorf("record name must not be empty")
	}
	if !rr.Class.IsValid() {
		return fmt.Errorf("invalid RRClass: %d", rr.Class)
	}
	if rr.Data == nil {
		return fmt.Errorf("record data must not be nil")
	}
	if rr.Data.Type() != rr.Type {
		return fmt.Errorf("payload type %s does not match record type %s", rr.Data.Type(), rr.Type)
	}
	return nil
}
