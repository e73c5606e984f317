package rrdata

import (
	"fmt"
	"strings"

	"github.com/okvist/authdns/internal/dns/domain"
)

// TXT is the payload of a TXT record: one or more character strings,
// each at most 255 bytes on the wire.
type TXT struct {
	Strings []string
}

// ParseTXT parses the presentation form of a TXT record. Quoted segments
// become separate character strings; an unquoted value is a single string.
func ParseTXT(text string) (TXT, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return TXT{}, fmt.Errorf("TXT record must contain at least one string")
	}
	var segments []string
	if strings.Contains(text, `"`) {
		for i := 0; i < len(text); {
			if text[i] != '"' {
				i++
				continue
			}
			end := strings.IndexByte(text[i+1:], '"')
			if end < 0 {
				return TXT{}, fmt.Errorf("unterminated quote in TXT record: %q", text)
			}
			segments = append(segments, text[i+1:i+1+end])
			i += end + 2
		}
	} else {
		segments = []string{text}
	}
	if len(segments) == 0 {
		return TXT{}, fmt.Errorf("TXT record must contain at least one string")
	}
	for _, s := range segments {
		if len(s) > 255 {
			return TXT{}, fmt.Errorf("TXT string too long: %d bytes", len(s))
		}
	}
	return TXT{Strings: segments}, nil
}

// DecodeTXT builds a TXT payload from wire bytes, which must consist of
// length-prefixed strings filling the slice exactly.
func DecodeTXT(b []byte) (TXT, error) {
	var segments []string
	for i := 0; i < len(b); {
		l := int(b[i])
		i++
		if i+l > len(b) {
			return TXT{}, fmt.Errorf("TXT string extends past RDATA")
		}
		segments = append(segments, string(b[i:i+l]))
		i += l
	}
	if len(segments) == 0 {
		return TXT{}, fmt.Errorf("TXT record must contain at least one string")
	}
	return TXT{Strings: segments}, nil
}

func (TXT) Type() domain.RRType { return domain.RRTypeTXT }

func (t TXT) Encode() ([]byte, error) {
	if len(t.Strings) == 0 {
		return nil, fmt.Errorf("TXT record must contain at least one string")
	}
	var encoded []byte
	for _, s := range t.Strings {
		if len(s) > 255 {
			return nil, fmt.Errorf("TXT string too long: %d bytes", len(s))
		}
		encoded = append(encoded, byte(len(s)))
		encoded = append(encoded, s...)
	}
	return encoded, nil
}

func (t TXT) String() string {
	quoted := make([]string, len(t.Strings))
	for i, s := range t.Strings {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, " ")
}
