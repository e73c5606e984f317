package domain

import "fmt"

// RCode represents a DNS response code indicating the result of a query.
type RCode uint8

// DNS response codes used by an authoritative server.
const (
	RCodeNoError  RCode = 0 // NOERROR - query completed successfully
	RCodeFormErr  RCode = 1 // FORMERR - query could not be interpreted
	RCodeServFail RCode = 2 // SERVFAIL - internal failure
	RCodeNXDomain RCode = 3 // NXDOMAIN - name does not exist in the zone
	RCodeNotImp   RCode = 4 // NOTIMP - operation not implemented
	RCodeRefused  RCode = 5 // REFUSED - not authoritative for the name
)

// IsValid returns true if the RCode is within the supported response code range.
func (r RCode) IsValid() bool {
	return r <= RCodeRefused
}

// String returns the textual representation of the RCode.
func (r RCode) String() string {
	switch r {
	case RCodeNoError:
		return "NOERROR"
	case RCodeFormErr:
		return "FORMERR"
	case RCodeServFail:
		return "SERVFAIL"
	case RCodeNXDomain:
		return "NXDOMAIN"
	case RCodeNotImp:
		return "NOTIMP"
	case RCodeRefused:
		return "REFUSED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(r))
	}
}
