package message

import "github.com/backkem/matter-im/pkg/tlv"

// DataVersionFilterIB lets a reader skip clusters whose data version it
// already holds.
// Matter Core: Section 10.6.3
// Container type: Structure
type DataVersionFilterIB struct {
	Path        ClusterPathIB `yaml:"path"`        // Tag 0
	DataVersion DataVersion   `yaml:"dataVersion"` // Tag 1
}

func (f *DataVersionFilterIB) fields() fieldTable {
	return structTable(
		blockField(0, "path", &f.Path),
		uintField(1, "dataVersion", &f.DataVersion),
	)
}

func (f *DataVersionFilterIB) Encode(w *tlv.Writer) error {
	return f.EncodeWithTag(w, tlv.Anonymous())
}

func (f *DataVersionFilterIB) EncodeWithTag(w *tlv.Writer, tag tlv.Tag) error {
	return f.fields().encode(w, tag)
}

func (f *DataVersionFilterIB) Decode(r *tlv.Reader) error {
	return decodeNext(r, f)
}

func (f *DataVersionFilterIB) DecodeFrom(r *tlv.Reader) error {
	*f = DataVersionFilterIB{}
	return f.fields().decode(r)
}

// EventFilterIB limits event reports to events at or above EventMin.
// Matter Core: Section 10.6.7
// Container type: Structure
type EventFilterIB struct {
	Node     *NodeID      `yaml:"node,omitempty"`     // Tag 0
	EventMin *EventNumber `yaml:"eventMin,omitempty"` // Tag 1
}

func (f *EventFilterIB) fields() fieldTable {
	return structTable(
		optUintField(0, "node", &f.Node),
		optUintField(1, "eventMin", &f.EventMin),
	)
}

func (f *EventFilterIB) Encode(w *tlv.Writer) error {
	return f.EncodeWithTag(w, tlv.Anonymous())
}

func (f *EventFilterIB) EncodeWithTag(w *tlv.Writer, tag tlv.Tag) error {
	return f.fields().encode(w, tag)
}

func (f *EventFilterIB) Decode(r *tlv.Reader) error {
	return decodeNext(r, f)
}

func (f *EventFilterIB) DecodeFrom(r *tlv.Reader) error {
	*f = EventFilterIB{}
	return f.fields().decode(r)
}
