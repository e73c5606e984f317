package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/okvist/authdns/internal/dns/domain"
)

// encodeReply serializes an authoritative response to the given query.
// The QR and AA flags are always set; the client's RD flag is echoed back
// but RA stays unset since the server offers no recursion. The question
// section repeats the client's questions verbatim.
func encodeReply(query domain.Message, rcode domain.RCode, answers, authority []domain.ResourceRecord) ([]byte, error) {
	if err := checkCount("question", len(query.Questions)); err != nil {
		return nil, err
	}
	if err := checkCount("answer", len(answers)); err != nil {
		return nil, err
	}
	if err := checkCount("authority", len(authority)); err != nil {
		return nil, err
	}

	flags := flagQR | flagAA
	flags |= uint16(query.Opcode&opcodeMask) << opcodeShift
	if query.RecursionDesired {
		flags |= flagRD
	}
	flags |= uint16(rcode) & rcodeMask

	var buf bytes.Buffer
	writeUint16(&buf, query.ID)
	writeUint16(&buf, flags)
	writeUint16(&buf, uint16(len(query.Questions)))
	writeUint16(&buf, uint16(len(answers)))
	writeUint16(&buf, uint16(len(authority)))
	writeUint16(&buf, 0) // no additional section

	for _, q := range query.Questions {
		if err := writeName(&buf, q.Name); err != nil {
			return nil, fmt.Errorf("question name: %w", err)
		}
		writeUint16(&buf, uint16(q.Type))
		writeUint16(&buf, uint16(q.Class))
	}
	for _, rr := range answers {
		if err := writeRecord(&buf, rr); err != nil {
			return nil, fmt.Errorf("answer record: %w", err)
		}
	}
	for _, rr := range authority {
		if err := writeRecord(&buf, rr); err != nil {
			return nil, fmt.Errorf("authority record: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func writeRecord(buf *bytes.Buffer, rr domain.ResourceRecord) error {
	if rr.Data == nil {
		return fmt.Errorf("record %s has no payload", rr.Name)
	}
	if rr.Data.Type() != rr.Type {
		return fmt.Errorf("payload type %s does not match record type %s", rr.Data.Type(), rr.Type)
	}
	if err := writeName(buf, rr.Name); err != nil {
		return err
	}
	writeUint16(buf, uint16(rr.Type))
	writeUint16(buf, uint16(rr.Class))
	var ttl [4]byte
	binary.BigEndian.PutUint32(ttl[:], rr.TTL)
	buf.Write(ttl[:])

	rdata, err := rr.Data.Encode()
	if err != nil {
		return err
	}
	if len(rdata) > 0xFFFF {
		return fmt.Errorf("rdata too large: %d bytes", len(rdata))
	}
	writeUint16(buf, uint16(len(rdata)))
	buf.Write(rdata)
	return nil
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func checkCount(section string, n int) error {
	if n > 0xFFFF {
		return fmt.Errorf("too many %s records: %d", section, n)
	}
	return nil
}
