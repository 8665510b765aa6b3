package message

import "github.com/backkem/matter-im/pkg/tlv"

// ClusterPathIB identifies one cluster instance. It scopes data version
// filters, so endpoint and cluster are required.
// Matter Core: Section 10.6.6
// Container type: List
type ClusterPathIB struct {
	Node     *NodeID    `yaml:"node,omitempty"` // Tag 0
	Endpoint EndpointID `yaml:"endpoint"`       // Tag 1
	Cluster  ClusterID  `yaml:"cluster"`        // Tag 2
}

func (p *ClusterPathIB) fields() fieldTable {
	return listTable(
		optUintField(0, "node", &p.Node),
		uintField(1, "endpoint", &p.Endpoint),
		uintField(2, "cluster", &p.Cluster),
	)
}

func (p *ClusterPathIB) Encode(w *tlv.Writer) error {
	return p.EncodeWithTag(w, tlv.Anonymous())
}

func (p *ClusterPathIB) EncodeWithTag(w *tlv.Writer, tag tlv.Tag) error {
	return p.fields().encode(w, tag)
}

func (p *ClusterPathIB) Decode(r *tlv.Reader) error {
	return decodeNext(r, p)
}

func (p *ClusterPathIB) DecodeFrom(r *tlv.Reader) error {
	*p = ClusterPathIB{}
	return p.fields().decode(r)
}
