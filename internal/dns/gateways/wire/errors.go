package wire

import "errors"

// Parse error taxonomy. Every decoding failure wraps one of these so
// callers can classify without string matching. A failed parse is always
// contained to the datagram that caused it; the query is dropped without
// a reply.
var (
	// ErrTruncated indicates the message ended before a declared field.
	ErrTruncated = errors.New("truncated message")

	// ErrCompressionLoop indicates a name compression pointer chain
	// revisited an offset. Without this guard a hostile packet could keep
	// the decoder jumping forever.
	ErrCompressionLoop = errors.New("compression pointer loop")

	// ErrRDLengthMismatch indicates a record's RDATA did not match its
	// declared RDLENGTH.
	ErrRDLengthMismatch = errors.New("rdata length mismatch")

	// ErrBadLabel indicates a label byte used a reserved type prefix.
	ErrBadLabel = errors.New("malformed label")
)
