package message

import "github.com/backkem/matter-im/pkg/tlv"

// SubscribeRequestMessage requests a subscription. Tag 6 is reserved.
// Matter Core: Section 10.7.4
// Opcode: 0x03
// Container type: Structure
type SubscribeRequestMessage struct {
	KeepSubscriptions  bool                  `yaml:"keepSubscriptions"`            // Tag 0
	MinIntervalFloor   uint16                `yaml:"minIntervalFloor"`             // Tag 1
	MaxIntervalCeiling uint16                `yaml:"maxIntervalCeiling"`           // Tag 2
	AttributeRequests  []AttributePathIB     `yaml:"attributeRequests,omitempty"`  // Tag 3
	EventRequests      []EventPathIB         `yaml:"eventRequests,omitempty"`      // Tag 4
	EventFilters       []EventFilterIB       `yaml:"eventFilters,omitempty"`       // Tag 5
	FabricFiltered     bool                  `yaml:"fabricFiltered"`               // Tag 7
	DataVersionFilters []DataVersionFilterIB `yaml:"dataVersionFilters,omitempty"` // Tag 8
}

func (m *SubscribeRequestMessage) Opcode() Opcode { return OpcodeSubscribeRequest }

func (m *SubscribeRequestMessage) fields() fieldTable {
	return structTable(
		boolField(0, "keepSubscriptions", &m.KeepSubscriptions),
		uintField(1, "minIntervalFloor", &m.MinIntervalFloor),
		uintField(2, "maxIntervalCeiling", &m.MaxIntervalCeiling),
		arrayField(3, "attributeRequests", &m.AttributeRequests, false),
		arrayField(4, "eventRequests", &m.EventRequests, false),
		arrayField(5, "eventFilters", &m.EventFilters, false),
		reservedField(6, "reserved"),
		boolField(7, "fabricFiltered", &m.FabricFiltered),
		arrayField(8, "dataVersionFilters", &m.DataVersionFilters, false),
	)
}

// ToReadRequest projects the subscription onto the read it primes with.
// Subscription-only fields are dropped.
func (m *SubscribeRequestMessage) ToReadRequest() *ReadRequestMessage {
	return &ReadRequestMessage{
		AttributeRequests:  m.AttributeRequests,
		EventRequests:      m.EventRequests,
		EventFilters:       m.EventFilters,
		FabricFiltered:     m.FabricFiltered,
		DataVersionFilters: m.DataVersionFilters,
	}
}

func (m *SubscribeRequestMessage) Encode(w *tlv.Writer) error {
	return m.fields().encode(w, tlv.Anonymous())
}

func (m *SubscribeRequestMessage) Decode(r *tlv.Reader) error {
	if err := r.Next(); err != nil {
		return err
	}
	*m = SubscribeRequestMessage{}
	return m.fields().decode(r)
}

// SubscribeResponseMessage confirms a subscription once the priming
// reports were delivered. Tag 1 is reserved.
// Matter Core: Section 10.7.5
// Opcode: 0x04
// Container type: Structure
type SubscribeResponseMessage struct {
	SubscriptionID SubscriptionID `yaml:"subscriptionID"` // Tag 0
	MaxInterval    uint16         `yaml:"maxInterval"`    // Tag 2
}

func (m *SubscribeResponseMessage) Opcode() Opcode { return OpcodeSubscribeResponse }

func (m *SubscribeResponseMessage) fields() fieldTable {
	return structTable(
		uintField(0, "subscriptionID", &m.SubscriptionID),
		reservedField(1, "reserved"),
		uintField(2, "maxInterval", &m.MaxInterval),
	)
}

func (m *SubscribeResponseMessage) Encode(w *tlv.Writer) error {
	return m.fields().encode(w, tlv.Anonymous())
}

func (m *SubscribeResponseMessage) Decode(r *tlv.Reader) error {
	if err := r.Next(); err != nil {
		return err
	}
	*m = SubscribeResponseMessage{}
	return m.fields().decode(r)
}
