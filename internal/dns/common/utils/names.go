// Package utils contains small DNS name helpers shared across packages.
package utils

import "strings"

// CanonicalDNSName returns a DNS name in canonical form:
// - Lowercased
// - Trimmed of surrounding whitespace
// - No trailing dot, since matching is simpler without it.
func CanonicalDNSName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	for strings.HasSuffix(name, ".") {
		name = strings.TrimSuffix(name, ".")
	}
	return name
}

// InZone reports whether name falls under the zone rooted at apex. Both
// arguments must already be canonical. The match is on label boundaries:
// "www.example.com" is in "example.com" but "notexample.com" is not.
func InZone(name, apex string) bool {
	if apex == "" {
		return false
	}
	if name == apex {
		return true
	}
	return strings.HasSuffix(name, "."+apex)
}
