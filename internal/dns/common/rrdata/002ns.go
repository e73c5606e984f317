package rrdata

import (
	"fmt"

	"github.com/okvist/authdns/internal/dns/common/utils"
	"github.com/okvist/authdns/internal/dns/domain"
)

// NS is the payload of an NS record: the name of an authoritative server.
type NS struct {
	Target string
}

// ParseNS parses the presentation form of an NS record ("ns1.example.com.").
func ParseNS(text string) (NS, error) {
	target := utils.CanonicalDNSName(text)
	if target == "" {
		return NS{}, fmt.Errorf("NS record target must not be empty")
	}
	return NS{Target: target}, nil
}

func (NS) Type() domain.RRType { return domain.RRTypeNS }

func (n NS) Encode() ([]byte, error) {
	return encodeDomainName(n.Target)
}

func (n NS) String() string { return n.Target + "." }
