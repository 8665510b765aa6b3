package message

import "github.com/backkem/matter-im/pkg/tlv"

// StatusResponseMessage acknowledges a message or reports a failure for a
// whole interaction.
// Matter Core: Section 10.7.1
// Opcode: 0x01
// Container type: Structure
type StatusResponseMessage struct {
	Status Status `yaml:"status"` // Tag 0
}

func (m *StatusResponseMessage) Opcode() Opcode { return OpcodeStatusResponse }

func (m *StatusResponseMessage) fields() fieldTable {
	return structTable(uintField(0, "status", &m.Status))
}

func (m *StatusResponseMessage) Encode(w *tlv.Writer) error {
	return m.fields().encode(w, tlv.Anonymous())
}

func (m *StatusResponseMessage) Decode(r *tlv.Reader) error {
	if err := r.Next(); err != nil {
		return err
	}
	*m = StatusResponseMessage{}
	return m.fields().decode(r)
}
