// Package domain defines the core DNS value types shared by the codec,
// the zone store, and the resolution engine.
package domain

import "fmt"

// Message represents a complete DNS message per RFC 1035 §4.1: a header
// followed by question, answer, authority, and additional sections. The
// section count fields of the wire header are implied by the slice lengths.
type Message struct {
	ID                 uint16
	Response           bool
	Opcode             uint8
	Authoritative      bool
	Truncated          bool
	RecursionDesired   bool
	RecursionAvailable bool
	RCode              RCode

	Questions  []Question
	Answers    []ResourceRecord
	Authority  []ResourceRecord
	Additional []ResourceRecord
}

// Validate checks whether the Message fields are structurally valid.
func (m Message) Validate() error {
	if !m.RCode.IsValid() {
		return fmt.Errorf("invalid RCode: %d", m.RCode)
	}
	for i, q := range m.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("invalid question at index %d: %w", i, err)
		}
	}
	for i, rr := range m.Answers {
		if err := rr.Validate(); err != nil {
			return fmt.Errorf("invalid answer record at index %d: %w", i, err)
		}
	}
	for i, rr := range m.Authority {
		if err := rr.Validate(); err != nil {
			return fmt.Errorf("invalid authority record at index %d: %w", i, err)
		}
	}
	for i, rr := range m.Additional {
		if err := rr.Validate(); err != nil {
			return fmt.Errorf("invalid additional record at index %d: %w", i, err)
		}
	}
	return nil
}

// Question returns the first question of the message. Authoritative
// serving only ever considers one question per query.
func (m Message) Question() (Question, bool) {
	if len(m.Questions) == 0 {
		return Question{}, false
	}
	return m.Questions[0], true
}
