package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/okvist/authdns/internal/dns/common/rrdata"
	"github.com/okvist/authdns/internal/dns/domain"
)

// decodeRData dispatches per-type RDATA decoding. Name-carrying types may
// use compression pointers into the surrounding message, so the decoder
// gets the whole buffer plus the RDATA window [off, off+rdLen). Types the
// server does not interpret are preserved as opaque bytes.
func decodeRData(data []byte, rrType domain.RRType, off, rdLen int) (domain.RData, error) {
	end := off + rdLen
	switch rrType {
	case domain.RRTypeA: // 1
		if rdLen != 4 {
			return nil, fmt.Errorf("%w: A needs 4 bytes, got %d", ErrRDLengthMismatch, rdLen)
		}
		return rrdata.DecodeA(data[off:end])

	case domain.RRTypeAAAA: // 28
		if rdLen != 16 {
			return nil, fmt.Errorf("%w: AAAA needs 16 bytes, got %d", ErrRDLengthMismatch, rdLen)
		}
		return rrdata.DecodeAAAA(data[off:end])

	case domain.RRTypeNS: // 2
		target, next, err := decodeName(data, off)
		if err != nil {
			return nil, err
		}
		if next > end {
			return nil, fmt.Errorf("%w: NS target exceeds RDLENGTH", ErrRDLengthMismatch)
		}
		return rrdata.NS{Target: target}, nil

	case domain.RRTypeCNAME: // 5
		target, next, err := decodeName(data, off)
		if err != nil {
			return nil, err
		}
		if next > end {
			return nil, fmt.Errorf("%w: CNAME target exceeds RDLENGTH", ErrRDLengthMismatch)
		}
		return rrdata.CNAME{Target: target}, nil

	case domain.RRTypeMX: // 15
		if rdLen < 3 {
			return nil, fmt.Errorf("%w: MX needs preference and exchange", ErrRDLengthMismatch)
		}
		pref := binary.BigEndian.Uint16(data[off : off+2])
		exchange, next, err := decodeName(data, off+2)
		if err != nil {
			return nil, err
		}
		if next > end {
			return nil, fmt.Errorf("%w: MX exchange exceeds RDLENGTH", ErrRDLengthMismatch)
		}
		return rrdata.MX{Preference: pref, Exchange: exchange}, nil

	case domain.RRTypeTXT: // 16
		txt, err := rrdata.DecodeTXT(data[off:end])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRDLengthMismatch, err)
		}
		return txt, nil

	case domain.RRTypeSOA: // 6
		mname, next, err := decodeName(data, off)
		if err != nil {
			return nil, err
		}
		rname, next, err := decodeName(data, next)
		if err != nil {
			return nil, err
		}
		if next+20 > end {
			return nil, fmt.Errorf("%w: SOA timers need 20 bytes", ErrRDLengthMismatch)
		}
		return rrdata.SOA{
			MName:   mname,
			RName:   rname,
			Serial:  binary.BigEndian.Uint32(data[next : next+4]),
			Refresh: binary.BigEndian.Uint32(data[next+4 : next+8]),
			Retry:   binary.BigEndian.Uint32(data[next+8 : next+12]),
			Expire:  binary.BigEndian.Uint32(data[next+12 : next+16]),
			Minimum: binary.BigEndian.Uint32(data[next+16 : next+20]),
		}, nil

	default:
		raw := make([]byte, rdLen)
		copy(raw, data[off:end])
		return rrdata.Opaque{RRType: rrType, Raw: raw}, nil
	}
}
