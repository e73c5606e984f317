// Package rrdata holds the typed RDATA payloads for the record types the
// server interprets, one file per type. Each payload knows how to parse its
// zone-file presentation form, serialize itself to uncompressed wire
// format, and render itself back to text.
package rrdata

import (
	"fmt"
	"net"
	"strings"

	"github.com/okvist/authdns/internal/dns/common/utils"
)

// encodeDomainName encodes a domain name into wire format
// (length-prefixed labels ending in a zero byte). Shared by the
// name-carrying record types. No compression on the write side.
func encodeDomainName(name string) ([]byte, error) {
	name = utils.CanonicalDNSName(name)
	labels := strings.Split(name, ".")
	var encoded []byte
	for _, label := range labels {
		if len(label) == 0 {
			continue
		}
		if len(label) > 63 {
			return nil, fmt.Errorf("label too long: %s", label)
		}
		encoded = append(encoded, byte(len(label)))
		encoded = append(encoded, label...)
	}
	encoded = append(encoded, 0)
	return encoded, nil
}

// isIPv4 checks whether the provided net.IP address is an IPv4 address.
func isIPv4(ip net.IP) bool {
	return ip != nil && ip.To4() != nil
}

// isIPv6 checks whether the provided net.IP is a valid IPv6 address
// that has no 4-byte IPv4 representation.
func isIPv6(ip net.IP) bool {
	return ip != nil && ip.To16() != nil && ip.To4() == nil
}
