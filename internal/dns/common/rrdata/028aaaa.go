package rrdata

import (
	"fmt"
	"net"

	"github.com/okvist/authdns/internal/dns/domain"
)

// AAAA is the payload of an AAAA record: a single IPv6 address.
type AAAA struct {
	Addr net.IP
}

// ParseAAAA parses the presentation form of an AAAA record ("2001:db8::1").
func ParseAAAA(text string) (AAAA, error) {
	ip := net.ParseIP(text)
	if ip == nil || !isIPv6(ip) {
		return AAAA{}, fmt.Errorf("invalid AAAA record address: %q", text)
	}
	return AAAA{Addr: ip.To16()}, nil
}

// DecodeAAAA builds an AAAA payload from exactly sixteen wire bytes.
func DecodeAAAA(b []byte) (AAAA, error) {
	if len(b) != 16 {
		return AAAA{}, fmt.Errorf("AAAA record RDATA must be 16 bytes, got %d", len(b))
	}
	addr := make(net.IP, 16)
	copy(addr, b)
	return AAAA{Addr: addr}, nil
}

func (AAAA) Type() domain.RRType { return domain.RRTypeAAAA }

func (a AAAA) Encode() ([]byte, error) {
	v6 := a.Addr.To16()
	if v6 == nil || a.Addr.To4() != nil {
		return nil, fmt.Errorf("invalid AAAA record address: %v", a.Addr)
	}
	out := make([]byte, 16)
	copy(out, v6)
	return out, nil
}

func (a AAAA) String() string { return a.Addr.String() }
