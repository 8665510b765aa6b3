package message

import "github.com/backkem/matter-im/pkg/tlv"

// WriteRequestMessage requests attribute writes. A write spanning several
// messages sets MoreChunkedMessages on every chunk but the last.
// Matter Core: Section 10.7.6
// Opcode: 0x06
// Container type: Structure
type WriteRequestMessage struct {
	SuppressResponse    *bool             `yaml:"suppressResponse,omitempty"`    // Tag 0
	TimedRequest        *bool             `yaml:"timedRequest,omitempty"`        // Tag 1
	WriteRequests       []AttributeDataIB `yaml:"writeRequests"`                 // Tag 2
	MoreChunkedMessages *bool             `yaml:"moreChunkedMessages,omitempty"` // Tag 3
}

// NewWriteRequest builds a write request. Flags are only emitted when set.
func NewWriteRequest(timed, suppressResponse bool, requests []AttributeDataIB) *WriteRequestMessage {
	m := &WriteRequestMessage{WriteRequests: requests}
	if timed {
		m.TimedRequest = Ptr(true)
	}
	if suppressResponse {
		m.SuppressResponse = Ptr(true)
	}
	return m
}

func (m *WriteRequestMessage) Opcode() Opcode { return OpcodeWriteRequest }

func (m *WriteRequestMessage) fields() fieldTable {
	return structTable(
		optBoolField(0, "suppressResponse", &m.SuppressResponse),
		optBoolField(1, "timedRequest", &m.TimedRequest),
		arrayField(2, "writeRequests", &m.WriteRequests, true),
		optBoolField(3, "moreChunkedMessages", &m.MoreChunkedMessages),
	)
}

// IsTimed reports whether the request claims to be part of a timed interaction.
func (m *WriteRequestMessage) IsTimed() bool {
	return m.TimedRequest != nil && *m.TimedRequest
}

// HasMoreChunks reports whether further chunks of this write follow.
func (m *WriteRequestMessage) HasMoreChunks() bool {
	return m.MoreChunkedMessages != nil && *m.MoreChunkedMessages
}

func (m *WriteRequestMessage) Encode(w *tlv.Writer) error {
	return m.fields().encode(w, tlv.Anonymous())
}

func (m *WriteRequestMessage) Decode(r *tlv.Reader) error {
	if err := r.Next(); err != nil {
		return err
	}
	*m = WriteRequestMessage{}
	return m.fields().decode(r)
}

// WriteResponseMessage reports one status per written attribute.
// Matter Core: Section 10.7.7
// Opcode: 0x07
// Container type: Structure
type WriteResponseMessage struct {
	WriteResponses []AttributeStatusIB `yaml:"writeResponses"` // Tag 0
}

func (m *WriteResponseMessage) Opcode() Opcode { return OpcodeWriteResponse }

func (m *WriteResponseMessage) fields() fieldTable {
	return structTable(arrayField(0, "writeResponses", &m.WriteResponses, true))
}

func (m *WriteResponseMessage) Encode(w *tlv.Writer) error {
	return m.fields().encode(w, tlv.Anonymous())
}

func (m *WriteResponseMessage) Decode(r *tlv.Reader) error {
	if err := r.Next(); err != nil {
		return err
	}
	*m = WriteResponseMessage{}
	return m.fields().decode(r)
}
