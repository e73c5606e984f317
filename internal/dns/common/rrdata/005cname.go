package rrdata

import (
	"fmt"

	"github.com/okvist/authdns/internal/dns/common/utils"
	"github.com/okvist/authdns/internal/dns/domain"
)

// CNAME is the payload of a CNAME record: the canonical name the owner
// aliases to. The server returns the alias as-is and leaves re-resolution
// of the target to the client.
type CNAME struct {
	Target string
}

// ParseCNAME parses the presentation form of a CNAME record.
func ParseCNAME(text string) (CNAME, error) {
	target := utils.CanonicalDNSName(text)
	if target == "" {
		return CNAME{}, fmt.Errorf("CNAME record target must not be empty")
	}
	return CNAME{Target: target}, nil
}

func (CNAME) Type() domain.RRType { return domain.RRTypeCNAME }

func (c CNAME) Encode() ([]byte, error) {
	return encodeDomainName(c.Target)
}

func (c CNAME) String() string { return c.Target + "." }
