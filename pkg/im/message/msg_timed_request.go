package message

import "github.com/backkem/matter-im/pkg/tlv"

// TimedRequestMessage opens a timed interaction. The timeout is enforced by
// the session layer.
// Matter Core: Section 10.7.8
// Opcode: 0x0A
// Container type: Structure
type TimedRequestMessage struct {
	Timeout uint16 `yaml:"timeout"` // Tag 0, milliseconds
}

func (m *TimedRequestMessage) Opcode() Opcode { return OpcodeTimedRequest }

func (m *TimedRequestMessage) fields() fieldTable {
	return structTable(uintField(0, "timeout", &m.Timeout))
}

func (m *TimedRequestMessage) Encode(w *tlv.Writer) error {
	return m.fields().encode(w, tlv.Anonymous())
}

func (m *TimedRequestMessage) Decode(r *tlv.Reader) error {
	if err := r.Next(); err != nil {
		return err
	}
	*m = TimedRequestMessage{}
	return m.fields().decode(r)
}
