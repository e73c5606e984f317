package rrdata

import (
	"fmt"

	"github.com/okvist/authdns/internal/dns/domain"
)

// Opaque carries the raw RDATA of a record type the server does not
// interpret. Parsed messages keep such records intact so the codec stays
// forward-compatible with types it never learned about.
type Opaque struct {
	RRType domain.RRType
	Raw    []byte
}

func (o Opaque) Type() domain.RRType { return o.RRType }

func (o Opaque) Encode() ([]byte, error) {
	out := make([]byte, len(o.Raw))
	copy(out, o.Raw)
	return out, nil
}

func (o Opaque) String() string {
	// RFC 3597 unknown-type presentation
	return fmt.Sprintf(`\# %d %x`, len(o.Raw), o.Raw)
}
