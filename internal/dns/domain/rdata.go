package domain

// RData is the typed payload of a resource record. The concrete
// implementations live in common/rrdata, one per record type the server
// interprets, plus an opaque fallback for everything else. The variant is
// closed: the codec and the zone loader only ever construct the known set.
type RData interface {
	// Type reports the record type this payload belongs to. A record is
	// only valid when its declared type matches its payload's type.
	Type() RRType

	// Encode serializes the payload to uncompressed wire format.
	Encode() ([]byte, error)

	// String renders the payload in zone-file presentation form.
	String() string
}
