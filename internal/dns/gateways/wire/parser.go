// Package wire implements the DNS wire format per RFC 1035: a bounds-checked
// message parser and an uncompressed response builder.
package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/okvist/authdns/internal/dns/domain"
)

const headerLen = 12

// Header flag bit masks.
const (
	flagQR uint16 = 1 << 15
	flagAA uint16 = 1 << 10
	flagTC uint16 = 1 << 9
	flagRD uint16 = 1 << 8
	flagRA uint16 = 1 << 7

	opcodeShift = 11
	opcodeMask  = 0xF
	rcodeMask   = 0xF
)

// decodeMessage parses a complete DNS message. Section parsing stops
// exactly at the counts declared in the header; any field extending past
// the buffer yields a wrapped ErrTruncated, never an out-of-range access.
func decodeMessage(data []byte) (domain.Message, error) {
	if len(data) < headerLen {
		return domain.Message{}, fmt.Errorf("%w: header needs %d bytes, have %d", ErrTruncated, headerLen, len(data))
	}

	flags := binary.BigEndian.Uint16(data[2:4])
	msg := domain.Message{
		ID:                 binary.BigEndian.Uint16(data[0:2]),
		Response:           flags&flagQR != 0,
		Opcode:             uint8(flags >> opcodeShift & opcodeMask),
		Authoritative:      flags&flagAA != 0,
		Truncated:          flags&flagTC != 0,
		RecursionDesired:   flags&flagRD != 0,
		RecursionAvailable: flags&flagRA != 0,
		RCode:              domain.RCode(flags & rcodeMask),
	}

	qdCount := int(binary.BigEndian.Uint16(data[4:6]))
	anCount := int(binary.BigEndian.Uint16(data[6:8]))
	nsCount := int(binary.BigEndian.Uint16(data[8:10]))
	arCount := int(binary.BigEndian.Uint16(data[10:12]))

	off := headerLen
	var err error
	for i := 0; i < qdCount; i++ {
		var q domain.Question
		q, off, err = decodeQuestion(data, off)
		if err != nil {
			return domain.Message{}, fmt.Errorf("question %d: %w", i, err)
		}
		msg.Questions = append(msg.Questions, q)
	}
	if msg.Answers, off, err = decodeSection(data, off, anCount, "answer"); err != nil {
		return domain.Message{}, err
	}
	if msg.Authority, off, err = decodeSection(data, off, nsCount, "authority"); err != nil {
		return domain.Message{}, err
	}
	if msg.Additional, _, err = decodeSection(data, off, arCount, "additional"); err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

func decodeQuestion(data []byte, off int) (domain.Question, int, error) {
	name, off, err := decodeName(data, off)
	if err != nil {
		return domain.Question{}, 0, err
	}
	if off+4 > len(data) {
		return domain.Question{}, 0, fmt.Errorf("%w: question type and class", ErrTruncated)
	}
	q := domain.Question{
		Name:  name,
		Type:  domain.RRType(binary.BigEndian.Uint16(data[off : off+2])),
		Class: domain.RRClass(binary.BigEndian.Uint16(data[off+2 : off+4])),
	}
	return q, off + 4, nil
}

func decodeSection(data []byte, off, count int, section string) ([]domain.ResourceRecord, int, error) {
	var records []domain.ResourceRecord
	for i := 0; i < count; i++ {
		rr, next, err := decodeRecord(data, off)
		if err != nil {
			return nil, 0, fmt.Errorf("%s record %d: %w", section, i, err)
		}
		records = append(records, rr)
		off = next
	}
	return records, off, nil
}

func decodeRecord(data []byte, off int) (domain.ResourceRecord, int, error) {
	name, off, err := decodeName(data, off)
	if err != nil {
		return domain.ResourceRecord{}, 0, err
	}
	if off+10 > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: record fixed fields", ErrTruncated)
	}
	rrType := domain.RRType(binary.BigEndian.Uint16(data[off : off+2]))
	class := domain.RRClass(binary.BigEndian.Uint16(data[off+2 : off+4]))
	ttl := binary.BigEndian.Uint32(data[off+4 : off+8])
	rdLen := int(binary.BigEndian.Uint16(data[off+8 : off+10]))
	off += 10
	if off+rdLen > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: rdata of %d bytes", ErrTruncated, rdLen)
	}

	rdata, err := decodeRData(data, rrType, off, rdLen)
	if err != nil {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%s rdata: %w", rrType, err)
	}
	rr := domain.ResourceRecord{
		Name:  name,
		Type:  rrType,
		Class: class,
		TTL:   ttl,
		Data:  rdata,
	}
	return rr, off + rdLen, nil
}
