package rrdata

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/okvist/authdns/internal/dns/common/utils"
	"github.com/okvist/authdns/internal/dns/domain"
)

// SOA is the payload of a start-of-authority record: the zone's primary
// name server, the admin mailbox encoded as a name, and five timers.
type SOA struct {
	MName   string
	RName   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

// ParseSOA parses the presentation form of an SOA record. It consumes
// exactly seven whitespace-separated tokens: two names followed by five
// unsigned 32-bit integers.
func ParseSOA(text string) (SOA, error) {
	parts := strings.Fields(text)
	if len(parts) != 7 {
		return SOA{}, fmt.Errorf("SOA record needs 7 fields, got %d", len(parts))
	}
	soa := SOA{
		MName: utils.CanonicalDNSName(parts[0]),
		RName: utils.CanonicalDNSName(parts[1]),
	}
	if soa.MName == "" || soa.RName == "" {
		return SOA{}, fmt.Errorf("SOA names must not be empty")
	}
	vals := make([]uint32, 5)
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseUint(parts[i+2], 10, 32)
		if err != nil {
			return SOA{}, fmt.Errorf("invalid SOA field %q: %w", parts[i+2], err)
		}
		vals[i] = uint32(v)
	}
	soa.Serial, soa.Refresh, soa.Retry, soa.Expire, soa.Minimum = vals[0], vals[1], vals[2], vals[3], vals[4]
	return soa, nil
}

func (SOA) Type() domain.RRType { return domain.RRTypeSOA }

func (s SOA) Encode() ([]byte, error) {
	mname, err := encodeDomainName(s.MName)
	if err != nil {
		return nil, fmt.Errorf("invalid SOA mname: %w", err)
	}
	rname, err := encodeDomainName(s.RName)
	if err != nil {
		return nil, fmt.Errorf("invalid SOA rname: %w", err)
	}
	out := make([]byte, 0, len(mname)+len(rname)+20)
	out = append(out, mname...)
	out = append(out, rname...)
	var timers [20]byte
	binary.BigEndian.PutUint32(timers[0:], s.Serial)
	binary.BigEndian.PutUint32(timers[4:], s.Refresh)
	binary.BigEndian.PutUint32(timers[8:], s.Retry)
	binary.BigEndian.PutUint32(timers[12:], s.Expire)
	binary.BigEndian.PutUint32(timers[16:], s.Minimum)
	return append(out, timers[:]...), nil
}

func (s SOA) String() string {
	return fmt.Sprintf("%s. %s. %d %d %d %d %d",
		s.MName, s.RName, s.Serial, s.Refresh, s.Retry, s.Expire, s.Minimum)
}
