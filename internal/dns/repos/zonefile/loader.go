// Package zonefile loads BIND-style master files into zone stores.
//
// The loader understands the $ORIGIN and $TTL directives, ';' comments,
// parenthesized record continuation, and the usual column inheritance:
// a line starting with whitespace reuses the previous owner name, and
// records without an explicit TTL inherit the current default. Any error
// aborts the whole load with a file:line position; the server never starts
// on a partially loaded zone.
package zonefile

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/okvist/authdns/internal/dns/common/rrdata"
	"github.com/okvist/authdns/internal/dns/common/utils"
	"github.com/okvist/authdns/internal/dns/domain"
	"github.com/okvist/authdns/internal/dns/repos/zonestore"
)

// fallbackTTL applies when a file sets no $TTL before its first record.
const fallbackTTL = 3600

// Load parses a single master file into a zone.
func Load(path string) (*zonestore.Zone, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open zone file: %w", err)
	}
	defer f.Close()
	return parse(f, path)
}

// LoadDirectory loads every regular file in dir as a zone file and
// returns the zones in load order.
func LoadDirectory(dir string) ([]*zonestore.Zone, error) {
	var zones []*zonestore.Zone
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		zone, err := Load(path)
		if err != nil {
			return err
		}
		zones = append(zones, zone)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(zones) == 0 {
		return nil, fmt.Errorf("no zone files in %s", dir)
	}
	return zones, nil
}

type parser struct {
	path       string
	origin     string
	defaultTTL uint32
	lastName   string
	zone       *zonestore.Zone
}

func parse(r io.Reader, path string) (*zonestore.Zone, error) {
	p := &parser{path: path, defaultTTL: fallbackTTL}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var (
		lineNo    int
		entryLine int
		inParen   bool
		leadingWS bool
		pending   []string
	)
	for scanner.Scan() {
		lineNo++
		line := stripComment(scanner.Text())
		if !inParen {
			if strings.TrimSpace(line) == "" {
				continue
			}
			entryLine = lineNo
			leadingWS = line[0] == ' ' || line[0] == '\t'
			if strings.Contains(line, "(") {
				pending = append(pending, strings.Replace(line, "(", " ", 1))
				if !strings.Contains(line, ")") {
					inParen = true
					continue
				}
			} else {
				pending = append(pending, line)
			}
		} else {
			pending = append(pending, line)
			if !strings.Contains(line, ")") {
				continue
			}
			inParen = false
		}

		entry := strings.ReplaceAll(strings.Join(pending, " "), ")", " ")
		pending = nil
		if err := p.entry(entry, leadingWS, entryLine); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if inParen {
		return nil, p.errf(entryLine, "unterminated parentheses")
	}
	if p.zone == nil || p.zone.Len() == 0 {
		return nil, fmt.Errorf("%s: no records loaded", path)
	}
	return p.zone, nil
}

func (p *parser) entry(entry string, leadingWS bool, line int) error {
	trimmed := strings.TrimSpace(entry)
	if trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, "$") {
		return p.directive(trimmed, line)
	}
	return p.record(entry, leadingWS, line)
}

func (p *parser) directive(text string, line int) error {
	fields := strings.Fields(text)
	switch strings.ToUpper(fields[0]) {
	case "$ORIGIN":
		if len(fields) != 2 {
			return p.errf(line, "$ORIGIN needs exactly one name")
		}
		p.origin = utils.CanonicalDNSName(fields[1])
		if p.origin == "" {
			return p.errf(line, "$ORIGIN name must not be empty")
		}
		if p.zone == nil {
			p.zone = zonestore.New(p.origin)
		}
	case "$TTL":
		if len(fields) != 2 {
			return p.errf(line, "$TTL needs exactly one duration")
		}
		ttl, err := ParseTTL(fields[1])
		if err != nil {
			return p.errf(line, "%v", err)
		}
		p.defaultTTL = ttl
	default:
		return p.errf(line, "unknown directive %s", fields[0])
	}
	return nil
}

func (p *parser) record(text string, leadingWS bool, line int) error {
	if p.origin == "" {
		return p.errf(line, "record before $ORIGIN")
	}

	rest := text
	var name string
	if leadingWS {
		if p.lastName == "" {
			return p.errf(line, "record has no owner name to inherit")
		}
		name = p.lastName
	} else {
		var owner string
		owner, rest = nextToken(rest)
		name = p.qualify(owner)
		p.lastName = name
	}

	ttl := p.defaultTTL
	class := domain.RRClassIN
	var rrType domain.RRType
	for rrType == 0 {
		tok, after := nextToken(rest)
		if tok == "" {
			return p.errf(line, "missing record type")
		}
		upper := strings.ToUpper(tok)
		switch {
		case upper == "IN" || upper == "CH" || upper == "HS":
			class = domain.ParseRRClass(upper)
		case tok[0] >= '0' && tok[0] <= '9':
			v, err := ParseTTL(tok)
			if err != nil {
				return p.errf(line, "%v", err)
			}
			ttl = v
		default:
			t := domain.RRTypeFromString(upper)
			if t == 0 {
				return p.errf(line, "unknown record type %q", tok)
			}
			rrType = t
		}
		rest = after
	}

	data, err := rrdata.Parse(rrType, strings.TrimSpace(rest))
	if err != nil {
		return p.errf(line, "%v", err)
	}
	rr, err := domain.NewResourceRecord(name, rrType, class, ttl, data)
	if err != nil {
		return p.errf(line, "%v", err)
	}
	p.zone.AddRecord(rr)
	return nil
}

// qualify expands a zone-file owner label: '@' means the origin, names
// without a trailing dot are relative to it.
func (p *parser) qualify(label string) string {
	if label == "@" {
		return p.origin
	}
	if strings.HasSuffix(label, ".") {
		return utils.CanonicalDNSName(label)
	}
	return utils.CanonicalDNSName(label) + "." + p.origin
}

func (p *parser) errf(line int, format string, args ...any) error {
	return fmt.Errorf("%s:%d: %s", p.path, line, fmt.Sprintf(format, args...))
}

// ParseTTL parses a TTL literal: a plain second count or one with an
// s/m/h/d/w suffix (seconds, minutes, hours, days, weeks). Only that
// suffix set is recognized.
func ParseTTL(s string) (uint32, error) {
	if s == "" {
		return 0, fmt.Errorf("empty TTL")
	}
	mult := uint64(1)
	digits := s
	switch s[len(s)-1] {
	case 's', 'S':
		digits = s[:len(s)-1]
	case 'm', 'M':
		digits, mult = s[:len(s)-1], 60
	case 'h', 'H':
		digits, mult = s[:len(s)-1], 3600
	case 'd', 'D':
		digits, mult = s[:len(s)-1], 86400
	case 'w', 'W':
		digits, mult = s[:len(s)-1], 604800
	}
	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid TTL %q", s)
	}
	total := n * mult
	if total > math.MaxUint32 {
		return 0, fmt.Errorf("TTL %q overflows 32 bits", s)
	}
	return uint32(total), nil
}

// nextToken splits off the first whitespace-delimited token, preserving
// the remainder verbatim so quoted TXT strings keep their spacing.
func nextToken(s string) (token, rest string) {
	s = strings.TrimLeft(s, " \t")
	if s == "" {
		return "", ""
	}
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

// stripComment removes a trailing ';' comment, honoring double quotes so
// semicolons inside TXT strings survive.
func stripComment(line string) string {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuote = !inQuote
		case ';':
			if !inQuote {
				return line[:i]
			}
		}
	}
	return line
}
