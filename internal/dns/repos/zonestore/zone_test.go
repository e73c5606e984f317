package zonestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okvist/authdns/internal/dns/common/rrdata"
	"github.com/okvist/authdns/internal/dns/domain"
)

func record(t *testing.T, name string, rrType domain.RRType, text string) domain.ResourceRecord {
	t.Helper()
	data, err := rrdata.Parse(rrType, text)
	require.NoError(t, err)
	return domain.ResourceRecord{
		Name:  name,
		Type:  rrType,
		Class: domain.RRClassIN,
		TTL:   300,
		Data:  data,
	}
}

func exampleZone(t *testing.T) *Zone {
	t.Helper()
	z := New("example.com.")
	z.AddRecord(record(t, "example.com", domain.RRTypeSOA,
		"ns1.example.com. hostmaster.example.com. 1 7200 3600 1209600 300"))
	z.AddRecord(record(t, "example.com", domain.RRTypeNS, "ns1.example.com."))
	z.AddRecord(record(t, "example.com", domain.RRTypeNS, "ns2.example.com."))
	z.AddRecord(record(t, "example.com", domain.RRTypeA, "192.0.2.1"))
	z.AddRecord(record(t, "www.example.com", domain.RRTypeCNAME, "example.com."))
	z.AddRecord(record(t, "mail.example.com", domain.RRTypeA, "192.0.2.25"))
	z.AddRecord(record(t, "example.com", domain.RRTypeMX, "10 mail.example.com."))
	return z
}

func TestZone_Apex(t *testing.T) {
	assert.Equal(t, "example.com", New("Example.COM.").Apex())
}

func TestZone_Lookup(t *testing.T) {
	z := exampleZone(t)

	records := z.Lookup("example.com", domain.RRTypeA)
	require.Len(t, records, 1)
	assert.Equal(t, "192.0.2.1", records[0].Data.String())

	// Owner name matching ignores case and trailing dots.
	records = z.Lookup("EXAMPLE.COM.", domain.RRTypeA)
	assert.Len(t, records, 1)

	records = z.Lookup("example.com", domain.RRTypeNS)
	assert.Len(t, records, 2)

	assert.Empty(t, z.Lookup("example.com", domain.RRTypeTXT))
	assert.Empty(t, z.Lookup("absent.example.com", domain.RRTypeA))
}

func TestZone_CNAMEFallback(t *testing.T) {
	z := exampleZone(t)

	// An address query for an aliased name returns the alias itself.
	records := z.Lookup("www.example.com", domain.RRTypeA)
	require.Len(t, records, 1)
	assert.Equal(t, domain.RRTypeCNAME, records[0].Type)

	records = z.Lookup("www.example.com", domain.RRTypeAAAA)
	require.Len(t, records, 1)
	assert.Equal(t, domain.RRTypeCNAME, records[0].Type)

	// Non-address types do not fall back to the alias.
	assert.Empty(t, z.Lookup("www.example.com", domain.RRTypeMX))

	// An explicit CNAME query hits the bucket directly.
	records = z.Lookup("www.example.com", domain.RRTypeCNAME)
	assert.Len(t, records, 1)
}

func TestZone_HasName(t *testing.T) {
	z := exampleZone(t)
	assert.True(t, z.HasName("example.com"))
	assert.True(t, z.HasName("MAIL.example.com."))
	assert.False(t, z.HasName("absent.example.com"))
}

func TestZone_Authoritative(t *testing.T) {
	z := exampleZone(t)
	assert.True(t, z.Authoritative("example.com"))
	assert.True(t, z.Authoritative("deep.child.example.com"))
	assert.False(t, z.Authoritative("notexample.com"))
	assert.False(t, z.Authoritative("example.org"))
}

func TestZone_SOA(t *testing.T) {
	z := exampleZone(t)
	soa, ok := z.SOA()
	require.True(t, ok)
	assert.Equal(t, domain.RRTypeSOA, soa.Type)

	_, ok = New("empty.test").SOA()
	assert.False(t, ok)
}

func TestZone_NSRecords(t *testing.T) {
	z := exampleZone(t)
	assert.Len(t, z.NSRecords(), 2)
	assert.Empty(t, New("empty.test").NSRecords())
}

func TestZone_Len(t *testing.T) {
	assert.Equal(t, 7, exampleZone(t).Len())
	assert.Equal(t, 0, New("empty.test").Len())
}

func TestTable_Match(t *testing.T) {
	parent := New("example.com")
	parent.AddRecord(record(t, "example.com", domain.RRTypeA, "192.0.2.1"))
	child := New("sub.example.com")
	child.AddRecord(record(t, "sub.example.com", domain.RRTypeA, "192.0.2.2"))
	other := New("example.org")

	table := NewTable(parent, child, other)

	z, ok := table.Match("www.example.com")
	require.True(t, ok)
	assert.Equal(t, "example.com", z.Apex())

	// The most specific apex wins.
	z, ok = table.Match("host.sub.example.com")
	require.True(t, ok)
	assert.Equal(t, "sub.example.com", z.Apex())

	z, ok = table.Match("sub.example.com")
	require.True(t, ok)
	assert.Equal(t, "sub.example.com", z.Apex())

	z, ok = table.Match("example.org")
	require.True(t, ok)
	assert.Equal(t, "example.org", z.Apex())

	_, ok = table.Match("example.net")
	assert.False(t, ok)

	_, ok = table.Match("notexample.com")
	assert.False(t, ok)

	assert.Len(t, table.Zones(), 3)
}
