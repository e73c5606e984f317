package rrdata

import (
	"fmt"

	"github.com/okvist/authdns/internal/dns/domain"
)

// Parse converts the zone-file presentation of a record's RDATA into its
// typed payload, dispatching on the record type.
func Parse(rrType domain.RRType, text string) (domain.RData, error) {
	switch rrType {
	case domain.RRTypeA: // 1
		return ParseA(text)
	case domain.RRTypeNS: // 2
		return ParseNS(text)
	case domain.RRTypeCNAME: // 5
		return ParseCNAME(text)
	case domain.RRTypeSOA: // 6
		return ParseSOA(text)
	case domain.RRTypeMX: // 15
		return ParseMX(text)
	case domain.RRTypeTXT: // 16
		return ParseTXT(text)
	case domain.RRTypeAAAA: // 28
		return ParseAAAA(text)
	default:
		return nil, fmt.Errorf("no zone-file parser for record type %s", rrType)
	}
}
