package wire

import "github.com/okvist/authdns/internal/dns/domain"

// Codec is the wire-format contract the transport layer depends on.
type Codec interface {
	// DecodeMessage parses a raw datagram into a Message.
	DecodeMessage(data []byte) (domain.Message, error)

	// EncodeResponse builds a NOERROR reply to query carrying the given
	// answer and authority records.
	EncodeResponse(query domain.Message, answers, authority []domain.ResourceRecord) ([]byte, error)

	// EncodeError builds a reply to query carrying only the response code
	// (REFUSED, NXDOMAIN).
	EncodeError(query domain.Message, rcode domain.RCode) ([]byte, error)
}

// messageCodec implements Codec for standard DNS over UDP messages.
type messageCodec struct{}

// NewCodec returns the standard RFC 1035 message codec.
func NewCodec() Codec {
	return messageCodec{}
}

func (messageCodec) DecodeMessage(data []byte) (domain.Message, error) {
	return decodeMessage(data)
}

func (messageCodec) EncodeResponse(query domain.Message, answers, authority []domain.ResourceRecord) ([]byte, error) {
	return encodeReply(query, domain.RCodeNoError, answers, authority)
}

func (messageCodec) EncodeError(query domain.Message, rcode domain.RCode) ([]byte, error) {
	return encodeReply(query, rcode, nil, nil)
}

var _ Codec = messageCodec{}
