package rrdata

import (
	"fmt"
	"net"

	"github.com/okvist/authdns/internal/dns/domain"
)

// A is the payload of an A record: a single IPv4 address.
type A struct {
	Addr net.IP
}

// ParseA parses the presentation form of an A record ("192.0.2.1").
func ParseA(text string) (A, error) {
	ip := net.ParseIP(text)
	if ip == nil || !isIPv4(ip) {
		return A{}, fmt.Errorf("invalid A record address: %q", text)
	}
	return A{Addr: ip.To4()}, nil
}

// DecodeA builds an A payload from exactly four wire bytes.
func DecodeA(b []byte) (A, error) {
	if len(b) != 4 {
		return A{}, fmt.Errorf("A record RDATA must be 4 bytes, got %d", len(b))
	}
	addr := make(net.IP, 4)
	copy(addr, b)
	return A{Addr: addr}, nil
}

func (A) Type() domain.RRType { return domain.RRTypeA }

func (a A) Encode() ([]byte, error) {
	v4 := a.Addr.To4()
	if v4 == nil {
		return nil, fmt.Errorf("invalid A record address: %v", a.Addr)
	}
	out := make([]byte, 4)
	copy(out, v4)
	return out, nil
}

func (a A) String() string { return a.Addr.String() }
