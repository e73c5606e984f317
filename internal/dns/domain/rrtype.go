package domain

import "fmt"

// RRType represents a DNS resource record type (e.g. A, AAAA, MX).
// See IANA DNS Parameters for assigned codes.
type RRType uint16

// DNS Resource Record Type constants
const (
	RRTypeA     RRType = 1  // A - IPv4 address
	RRTypeNS    RRType = 2  // NS - Name server
	RRTypeCNAME RRType = 5  // CNAME - Canonical name
	RRTypeSOA   RRType = 6  // SOA - Start of authority
	RRTypeMX    RRType = 15 // MX - Mail exchange
	RRTypeTXT   RRType = 16 // TXT - Text
	RRTypeAAAA  RRType = 28 // AAAA - IPv6 address
)

// IsSupported returns true if the RRType is one the server interprets.
// Other types are still carried through the codec as opaque RDATA.
func (t RRType) IsSupported() bool {
	switch t {
	case RRTypeA, RRTypeNS, RRTypeCNAME, RRTypeSOA, RRTypeMX, RRTypeTXT, RRTypeAAAA:
		return true
	default:
		return false
	}
}

// String returns the textual representation of the RRType.
// Unknown types use the RFC 3597 "TYPEnnn" form.
func (t RRType) String() string {
	switch t {
	case RRTypeA:
		return "A"
	case RRTypeNS:
		return "NS"
	case RRTypeCNAME:
		return "CNAME"
	case RRTypeSOA:
		return "SOA"
	case RRTypeMX:
		return "MX"
	case RRTypeTXT:
		return "TXT"
	case RRTypeAAAA:
		return "AAAA"
	default:
		return fmt.Sprintf("TYPE%d", uint16(t))
	}
}

// RRTypeFromString converts a record type keyword to its RRType value.
// It returns 0 for keywords the server does not interpret.
func RRTypeFromString(s string) RRType {
	switch s {
	case "A":
		return RRTypeA
	case "NS":
		return RRTypeNS
	case "CNAME":
		return RRTypeCNAME
	case "SOA":
		return RRTypeSOA
	case "MX":
		return RRTypeMX
	case "TXT":
		return RRTypeTXT
	case "AAAA":
		return RRTypeAAAA
	default:
		return 0
	}
}
