package message

import "github.com/backkem/matter-im/pkg/tlv"

// ReportDataMessage carries attribute reports for a read or subscription.
// Tag 2 (event reports) is reserved: event reporting is not modeled.
// Matter Core: Section 10.7.3
// Opcode: 0x05
// Container type: Structure
type ReportDataMessage struct {
	SubscriptionID      *SubscriptionID     `yaml:"subscriptionID,omitempty"`      // Tag 0
	AttributeReports    []AttributeReportIB `yaml:"attributeReports,omitempty"`    // Tag 1
	MoreChunkedMessages *bool               `yaml:"moreChunkedMessages,omitempty"` // Tag 3
	SuppressResponse    *bool               `yaml:"suppressResponse,omitempty"`    // Tag 4
}

func (m *ReportDataMessage) Opcode() Opcode { return OpcodeReportData }

func (m *ReportDataMessage) fields() fieldTable {
	return structTable(
		optUintField(0, "subscriptionID", &m.SubscriptionID),
		arrayField(1, "attributeReports", &m.AttributeReports, false),
		reservedField(2, "eventReports"),
		optBoolField(3, "moreChunkedMessages", &m.MoreChunkedMessages),
		optBoolField(4, "suppressResponse", &m.SuppressResponse),
	)
}

// HasMoreChunks reports whether further ReportData messages follow.
func (m *ReportDataMessage) HasMoreChunks() bool {
	return m.MoreChunkedMessages != nil && *m.MoreChunkedMessages
}

func (m *ReportDataMessage) Encode(w *tlv.Writer) error {
	return m.fields().encode(w, tlv.Anonymous())
}

func (m *ReportDataMessage) Decode(r *tlv.Reader) error {
	if err := r.Next(); err != nil {
		return err
	}
	*m = ReportDataMessage{}
	return m.fields().decode(r)
}
