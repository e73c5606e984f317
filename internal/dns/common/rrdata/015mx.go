package rrdata

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/okvist/authdns/internal/dns/common/utils"
	"github.com/okvist/authdns/internal/dns/domain"
)

// MX is the payload of a mail-exchange record: a 16-bit preference
// followed by the exchange host name.
type MX struct {
	Preference uint16
	Exchange   string
}

// ParseMX parses the presentation form of an MX record ("10 mail.example.com.").
func ParseMX(text string) (MX, error) {
	parts := strings.Fields(text)
	if len(parts) != 2 {
		return MX{}, fmt.Errorf("MX record needs preference and exchange, got %q", text)
	}
	pref, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil {
		return MX{}, fmt.Errorf("invalid MX preference %q: %w", parts[0], err)
	}
	exchange := utils.CanonicalDNSName(parts[1])
	if exchange == "" {
		return MX{}, fmt.Errorf("MX exchange must not be empty")
	}
	return MX{Preference: uint16(pref), Exchange: exchange}, nil
}

func (MX) Type() domain.RRType { return domain.RRTypeMX }

func (m MX) Encode() ([]byte, error) {
	exchange, err := encodeDomainName(m.Exchange)
	if err != nil {
		return nil, fmt.Errorf("invalid MX exchange: %w", err)
	}
	out := make([]byte, 2, 2+len(exchange))
	binary.BigEndian.PutUint16(out, m.Preference)
	return append(out, exchange...), nil
}

func (m MX) String() string {
	return fmt.Sprintf("%d %s.", m.Preference, m.Exchange)
}
