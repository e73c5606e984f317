package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/dns/dnsmessage"

	"github.com/okvist/authdns/internal/dns/common/rrdata"
	"github.com/okvist/authdns/internal/dns/domain"
)

// queryPacket is a minimal A query for example.com: ID 0x1234, RD set.
func queryPacket() []byte {
	return []byte{
		0x12, 0x34, // ID
		0x01, 0x00, // flags: RD
		0x00, 0x01, // QDCOUNT
		0x00, 0x00, // ANCOUNT
		0x00, 0x00, // NSCOUNT
		0x00, 0x00, // ARCOUNT
		7, 'e', 'x', 'a', 'm', 'p', 'l', 'e',
		3, 'c', 'o', 'm',
		0,
		0x00, 0x01, // QTYPE A
		0x00, 0x01, // QCLASS IN
	}
}

func TestDecodeMessage_Query(t *testing.T) {
	msg, err := decodeMessage(queryPacket())
	require.NoError(t, err)

	assert.Equal(t, uint16(0x1234), msg.ID)
	assert.False(t, msg.Response)
	assert.Equal(t, uint8(0), msg.Opcode)
	assert.True(t, msg.RecursionDesired)
	assert.False(t, msg.RecursionAvailable)
	assert.Equal(t, domain.RCodeNoError, msg.RCode)

	require.Len(t, msg.Questions, 1)
	assert.Equal(t, "example.com", msg.Questions[0].Name)
	assert.Equal(t, domain.RRTypeA, msg.Questions[0].Type)
	assert.Equal(t, domain.RRClassIN, msg.Questions[0].Class)
	assert.Empty(t, msg.Answers)
	assert.Empty(t, msg.Authority)
	assert.Empty(t, msg.Additional)
}

func TestDecodeMessage_HeaderTooShort(t *testing.T) {
	for i := 0; i < headerLen; i++ {
		_, err := decodeMessage(queryPacket()[:i])
		assert.ErrorIs(t, err, ErrTruncated, "prefix of %d bytes", i)
	}
}

func TestDecodeMessage_EveryTruncationFails(t *testing.T) {
	// A full response exercises questions, answers, and authority.
	query, err := decodeMessage(queryPacket())
	require.NoError(t, err)

	answers := []domain.ResourceRecord{
		{Name: "example.com", Type: domain.RRTypeA, Class: domain.RRClassIN, TTL: 300,
			Data: rrdata.A{Addr: []byte{192, 0, 2, 1}}},
	}
	authority := []domain.ResourceRecord{
		{Name: "example.com", Type: domain.RRTypeNS, Class: domain.RRClassIN, TTL: 3600,
			Data: rrdata.NS{Target: "ns1.example.com"}},
	}
	packet, err := encodeReply(query, domain.RCodeNoError, answers, authority)
	require.NoError(t, err)

	for i := 0; i < len(packet); i++ {
		_, err := decodeMessage(packet[:i])
		assert.Error(t, err, "prefix of %d bytes decoded cleanly", i)
	}
}

func TestDecodeMessage_RDataPastEnd(t *testing.T) {
	// Answer declares RDLENGTH 4 but supplies only 2 bytes.
	packet := []byte{
		0x00, 0x01, 0x80, 0x00,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00,
		3, 'f', 'o', 'o', 0,
		0x00, 0x01, 0x00, 0x01,
		0x00, 0x00, 0x01, 0x2C,
		0x00, 0x04, // RDLENGTH 4
		192, 0, // two bytes only
	}
	_, err := decodeMessage(packet)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeMessage_WrongALength(t *testing.T) {
	// A record with RDLENGTH 5 is malformed even if the bytes are there.
	packet := []byte{
		0x00, 0x01, 0x80, 0x00,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00,
		3, 'f', 'o', 'o', 0,
		0x00, 0x01, 0x00, 0x01,
		0x00, 0x00, 0x01, 0x2C,
		0x00, 0x05,
		192, 0, 2, 1, 9,
	}
	_, err := decodeMessage(packet)
	assert.ErrorIs(t, err, ErrRDLengthMismatch)
}

func TestDecodeMessage_UnknownTypeIsOpaque(t *testing.T) {
	// Type 99 is not interpreted; its RDATA must survive untouched.
	packet := []byte{
		0x00, 0x01, 0x80, 0x00,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00,
		3, 'f', 'o', 'o', 0,
		0x00, 99, 0x00, 0x01,
		0x00, 0x00, 0x01, 0x2C,
		0x00, 0x03,
		0xDE, 0xAD, 0xBF,
	}
	msg, err := decodeMessage(packet)
	require.NoError(t, err)
	require.Len(t, msg.Answers, 1)

	opaque, ok := msg.Answers[0].Data.(rrdata.Opaque)
	require.True(t, ok)
	assert.Equal(t, domain.RRType(99), opaque.RRType)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBF}, opaque.Raw)
}

func TestDecodeMessage_CompressedInterop(t *testing.T) {
	// A response packed by the x/net implementation uses compression
	// pointers for the repeated names; the parser must follow them.
	interop := dnsmessage.Message{
		Header: dnsmessage.Header{
			ID:            0xBEEF,
			Response:      true,
			Authoritative: true,
			RCode:         dnsmessage.RCodeSuccess,
		},
		Questions: []dnsmessage.Question{{
			Name:  dnsmessage.MustNewName("www.example.com."),
			Type:  dnsmessage.TypeA,
			Class: dnsmessage.ClassINET,
		}},
		Answers: []dnsmessage.Resource{
			{
				Header: dnsmessage.ResourceHeader{
					Name:  dnsmessage.MustNewName("www.example.com."),
					Type:  dnsmessage.TypeCNAME,
					Class: dnsmessage.ClassINET,
					TTL:   300,
				},
				Body: &dnsmessage.CNAMEResource{CNAME: dnsmessage.MustNewName("example.com.")},
			},
			{
				Header: dnsmessage.ResourceHeader{
					Name:  dnsmessage.MustNewName("example.com."),
					Type:  dnsmessage.TypeA,
					Class: dnsmessage.ClassINET,
					TTL:   300,
				},
				Body: &dnsmessage.AResource{A: [4]byte{192, 0, 2, 7}},
			},
		},
	}
	packed, err := interop.Pack()
	require.NoError(t, err)

	msg, err := decodeMessage(packed)
	require.NoError(t, err)

	assert.Equal(t, uint16(0xBEEF), msg.ID)
	assert.True(t, msg.Response)
	assert.True(t, msg.Authoritative)

	require.Len(t, msg.Questions, 1)
	assert.Equal(t, "www.example.com", msg.Questions[0].Name)

	require.Len(t, msg.Answers, 2)
	cname, ok := msg.Answers[0].Data.(rrdata.CNAME)
	require.True(t, ok)
	assert.Equal(t, "example.com", cname.Target)

	a, ok := msg.Answers[1].Data.(rrdata.A)
	require.True(t, ok)
	assert.Equal(t, "192.0.2.7", a.Addr.String())
	assert.Equal(t, "example.com", msg.Answers[1].Name)
	assert.Equal(t, uint32(300), msg.Answers[1].TTL)
}

func TestDecodeMessage_SOAInterop(t *testing.T) {
	interop := dnsmessage.Message{
		Header: dnsmessage.Header{ID: 1, Response: true, RCode: dnsmessage.RCodeNameError},
		Questions: []dnsmessage.Question{{
			Name:  dnsmessage.MustNewName("missing.example.com."),
			Type:  dnsmessage.TypeA,
			Class: dnsmessage.ClassINET,
		}},
		Authorities: []dnsmessage.Resource{{
			Header: dnsmessage.ResourceHeader{
				Name:  dnsmessage.MustNewName("example.com."),
				Type:  dnsmessage.TypeSOA,
				Class: dnsmessage.ClassINET,
				TTL:   3600,
			},
			Body: &dnsmessage.SOAResource{
				NS:      dnsmessage.MustNewName("ns1.example.com."),
				MBox:    dnsmessage.MustNewName("hostmaster.example.com."),
				Serial:  2026083101,
				Refresh: 7200,
				Retry:   3600,
				Expire:  1209600,
				MinTTL:  300,
			},
		}},
	}
	packed, err := interop.Pack()
	require.NoError(t, err)

	msg, err := decodeMessage(packed)
	require.NoError(t, err)
	assert.Equal(t, domain.RCodeNXDomain, msg.RCode)

	require.Len(t, msg.Authority, 1)
	soa, ok := msg.Authority[0].Data.(rrdata.SOA)
	require.True(t, ok)
	assert.Equal(t, "ns1.example.com", soa.MName)
	assert.Equal(t, "hostmaster.example.com", soa.RName)
	assert.Equal(t, uint32(2026083101), soa.Serial)
	assert.Equal(t, uint32(300), soa.Minimum)
}
