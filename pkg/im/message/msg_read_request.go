package message

import "github.com/backkem/matter-im/pkg/tlv"

// ReadRequestMessage requests attribute and event data.
// Matter Core: Section 10.7.2
// Opcode: 0x02
// Container type: Structure
type ReadRequestMessage struct {
	AttributeRequests  []AttributePathIB     `yaml:"attributeRequests,omitempty"`  // Tag 0
	EventRequests      []EventPathIB         `yaml:"eventRequests,omitempty"`      // Tag 1
	EventFilters       []EventFilterIB       `yaml:"eventFilters,omitempty"`       // Tag 2
	FabricFiltered     bool                  `yaml:"fabricFiltered"`               // Tag 3
	DataVersionFilters []DataVersionFilterIB `yaml:"dataVersionFilters,omitempty"` // Tag 4
}

func (m *ReadRequestMessage) Opcode() Opcode { return OpcodeReadRequest }

func (m *ReadRequestMessage) fields() fieldTable {
	return structTable(
		arrayField(0, "attributeRequests", &m.AttributeRequests, false),
		arrayField(1, "eventRequests", &m.EventRequests, false),
		arrayField(2, "eventFilters", &m.EventFilters, false),
		boolField(3, "fabricFiltered", &m.FabricFiltered),
		arrayField(4, "dataVersionFilters", &m.DataVersionFilters, false),
	)
}

func (m *ReadRequestMessage) Encode(w *tlv.Writer) error {
	return m.fields().encode(w, tlv.Anonymous())
}

func (m *ReadRequestMessage) Decode(r *tlv.Reader) error {
	if err := r.Next(); err != nil {
		return err
	}
	*m = ReadRequestMessage{}
	return m.fields().decode(r)
}
