package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// decodeName decodes a domain name starting at off, following RFC 1035
// compression pointers. It returns the dotted name and the offset just
// past the name in the caller's traversal, so parsing of the rest of the
// message continues where the name ended in the original stream rather
// than wherever a pointer chain led.
//
// Every pointer offset followed is recorded in a visited set; revisiting
// one fails with ErrCompressionLoop. Between jumps the cursor only moves
// forward, so the walk terminates on any input.
func decodeName(data []byte, off int) (string, int, error) {
	var labels []string
	visited := make(map[int]struct{})
	pos := off
	next := -1 // offset after the name in the original stream; set at the first pointer

	for {
		if pos >= len(data) {
			return "", 0, fmt.Errorf("%w: name runs past end of message", ErrTruncated)
		}
		b := data[pos]
		switch {
		case b == 0:
			pos++
			if next < 0 {
				next = pos
			}
			return strings.Join(labels, "."), next, nil

		case b&0xC0 == 0xC0:
			if pos+1 >= len(data) {
				return "", 0, fmt.Errorf("%w: compression pointer cut short", ErrTruncated)
			}
			if _, seen := visited[pos]; seen {
				return "", 0, fmt.Errorf("%w: offset %d revisited", ErrCompressionLoop, pos)
			}
			visited[pos] = struct{}{}
			if next < 0 {
				next = pos + 2
			}
			pos = int(binary.BigEndian.Uint16(data[pos:pos+2]) & 0x3FFF)

		case b&0xC0 != 0:
			return "", 0, fmt.Errorf("%w: reserved label type %#02x", ErrBadLabel, b&0xC0)

		default:
			length := int(b)
			if pos+1+length > len(data) {
				return "", 0, fmt.Errorf("%w: label runs past end of message", ErrTruncated)
			}
			labels = append(labels, string(data[pos+1:pos+1+length]))
			pos += 1 + length
		}
	}
}

// writeName encodes a dotted name as length-prefixed labels with a
// terminating zero byte. The write side never compresses; responses are a
// little larger than a compressing server's, which is an accepted
// simplification.
func writeName(buf *bytes.Buffer, name string) error {
	name = strings.TrimSuffix(name, ".")
	if name != "" {
		for _, label := range strings.Split(name, ".") {
			if len(label) == 0 {
				return fmt.Errorf("empty label in name %q", name)
			}
			if len(label) > 63 {
				return fmt.Errorf("label too long: %s", label)
			}
			buf.WriteByte(byte(len(label)))
			buf.WriteString(label)
		}
	}
	buf.WriteByte(0)
	return nil
}
