package message

import "github.com/backkem/matter-im/pkg/tlv"

// InvokeRequestMessage requests command invocations.
// Matter Core: Section 10.7.9
// Opcode: 0x08
// Container type: Structure
type InvokeRequestMessage struct {
	SuppressResponse *bool           `yaml:"suppressResponse,omitempty"` // Tag 0
	TimedRequest     *bool           `yaml:"timedRequest,omitempty"`     // Tag 1
	InvokeRequests   []CommandDataIB `yaml:"invokeRequests"`             // Tag 2
}

func (m *InvokeRequestMessage) Opcode() Opcode { return OpcodeInvokeRequest }

func (m *InvokeRequestMessage) fields() fieldTable {
	return structTable(
		optBoolField(0, "suppressResponse", &m.SuppressResponse),
		optBoolField(1, "timedRequest", &m.TimedRequest),
		arrayField(2, "invokeRequests", &m.InvokeRequests, true),
	)
}

// IsTimed reports whether the request claims to be part of a timed interaction.
func (m *InvokeRequestMessage) IsTimed() bool {
	return m.TimedRequest != nil && *m.TimedRequest
}

func (m *InvokeRequestMessage) Encode(w *tlv.Writer) error {
	return m.fields().encode(w, tlv.Anonymous())
}

func (m *InvokeRequestMessage) Decode(r *tlv.Reader) error {
	if err := r.Next(); err != nil {
		return err
	}
	*m = InvokeRequestMessage{}
	return m.fields().decode(r)
}

// InvokeResponseMessage carries command results.
// Matter Core: Section 10.7.10
// Opcode: 0x09
// Container type: Structure
type InvokeResponseMessage struct {
	SuppressResponse    *bool              `yaml:"suppressResponse,omitempty"`    // Tag 0
	InvokeResponses     []InvokeResponseIB `yaml:"invokeResponses"`               // Tag 1
	MoreChunkedMessages *bool              `yaml:"moreChunkedMessages,omitempty"` // Tag 2
}

func (m *InvokeResponseMessage) Opcode() Opcode { return OpcodeInvokeResponse }

func (m *InvokeResponseMessage) fields() fieldTable {
	return structTable(
		optBoolField(0, "suppressResponse", &m.SuppressResponse),
		arrayField(1, "invokeResponses", &m.InvokeResponses, true),
		optBoolField(2, "moreChunkedMessages", &m.MoreChunkedMessages),
	)
}

func (m *InvokeResponseMessage) Encode(w *tlv.Writer) error {
	return m.fields().encode(w, tlv.Anonymous())
}

func (m *InvokeResponseMessage) Decode(r *tlv.Reader) error {
	if err := r.Next(); err != nil {
		return err
	}
	*m = InvokeResponseMessage{}
	return m.fields().decode(r)
}
