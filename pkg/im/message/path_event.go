package message

import "github.com/backkem/matter-im/pkg/tlv"

// EventPathIB addresses events. Absent components are wildcards.
// Matter Core: Section 10.6.8
// Container type: List
type EventPathIB struct {
	Node     *NodeID     `yaml:"node,omitempty"`     // Tag 0
	Endpoint *EndpointID `yaml:"endpoint,omitempty"` // Tag 1
	Cluster  *ClusterID  `yaml:"cluster,omitempty"`  // Tag 2
	Event    *EventID    `yaml:"event,omitempty"`    // Tag 3
	IsUrgent *bool       `yaml:"isUrgent,omitempty"` // Tag 4
}

func (p *EventPathIB) fields() fieldTable {
	return listTable(
		optUintField(0, "node", &p.Node),
		optUintField(1, "endpoint", &p.Endpoint),
		optUintField(2, "cluster", &p.Cluster),
		optUintField(3, "event", &p.Event),
		optBoolField(4, "isUrgent", &p.IsUrgent),
	)
}

// GenericPath widens the path into generic form.
func (p EventPathIB) GenericPath() GenericPath {
	gp := GenericPath{Endpoint: clonePtr(p.Endpoint), Cluster: clonePtr(p.Cluster)}
	if p.Event != nil {
		gp.Leaf = Ptr(uint32(*p.Event))
	}
	return gp
}

func (p *EventPathIB) Encode(w *tlv.Writer) error {
	return p.EncodeWithTag(w, tlv.Anonymous())
}

func (p *EventPathIB) EncodeWithTag(w *tlv.Writer, tag tlv.Tag) error {
	return p.fields().encode(w, tag)
}

func (p *EventPathIB) Decode(r *tlv.Reader) error {
	return decodeNext(r, p)
}

func (p *EventPathIB) DecodeFrom(r *tlv.Reader) error {
	*p = EventPathIB{}
	return p.fields().decode(r)
}
