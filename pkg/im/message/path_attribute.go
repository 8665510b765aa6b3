package message

import (
	"fmt"
	"math"

	"github.com/backkem/matter-im/pkg/tlv"
)

// AttributePathIB addresses attribute data. Absent components are
// wildcards. ListIndex has three states: nil (whole attribute), null (append
// to the list) and a value (one list element).
// Matter Core: Section 10.6.2
// Container type: List
type AttributePathIB struct {
	EnableTagCompression *bool                    `yaml:"enableTagCompression,omitempty"` // Tag 0
	Node                 *NodeID                  `yaml:"node,omitempty"`                 // Tag 1
	Endpoint             *EndpointID              `yaml:"endpoint,omitempty"`             // Tag 2
	Cluster              *ClusterID               `yaml:"cluster,omitempty"`              // Tag 3
	Attribute            *AttributeID             `yaml:"attribute,omitempty"`            // Tag 4
	ListIndex            *tlv.Nullable[ListIndex] `yaml:"listIndex,omitempty"`            // Tag 5
}

func (p *AttributePathIB) fields() fieldTable {
	return listTable(
		optBoolField(0, "enableTagCompression", &p.EnableTagCompression),
		optUintField(1, "node", &p.Node),
		optUintField(2, "endpoint", &p.Endpoint),
		optUintField(3, "cluster", &p.Cluster),
		optUintField(4, "attribute", &p.Attribute),
		nullableUintField(5, "listIndex", &p.ListIndex),
	)
}

// NewAttributePath projects a generic path into attribute form. Node, list
// index and tag compression are left unset. A leaf wider than 16 bits is
// rejected with ErrAttributeIDRange.
func NewAttributePath(gp GenericPath) (AttributePathIB, error) {
	p := AttributePathIB{
		Endpoint: clonePtr(gp.Endpoint),
		Cluster:  clonePtr(gp.Cluster),
	}
	if gp.Leaf != nil {
		if *gp.Leaf > math.MaxUint16 {
			return AttributePathIB{}, fmt.Errorf("%w: 0x%08x", ErrAttributeIDRange, *gp.Leaf)
		}
		p.Attribute = Ptr(AttributeID(*gp.Leaf))
	}
	return p, nil
}

// ConcreteAttributePath returns a fully specified attribute path.
func ConcreteAttributePath(endpoint EndpointID, cluster ClusterID, attribute AttributeID) AttributePathIB {
	return AttributePathIB{Endpoint: &endpoint, Cluster: &cluster, Attribute: &attribute}
}

// GenericPath widens the path back into generic form.
func (p AttributePathIB) GenericPath() GenericPath {
	gp := GenericPath{Endpoint: clonePtr(p.Endpoint), Cluster: clonePtr(p.Cluster)}
	if p.Attribute != nil {
		gp.Leaf = Ptr(uint32(*p.Attribute))
	}
	return gp
}

func (p AttributePathIB) String() string {
	s := p.GenericPath().String()
	if p.ListIndex != nil {
		if i, ok := p.ListIndex.Value(); ok {
			s += fmt.Sprintf("[%d]", i)
		} else {
			s += "[null]"
		}
	}
	return s
}

// Encode writes the path as an anonymous element.
func (p *AttributePathIB) Encode(w *tlv.Writer) error {
	return p.EncodeWithTag(w, tlv.Anonymous())
}

// EncodeWithTag writes the path with the given tag.
func (p *AttributePathIB) EncodeWithTag(w *tlv.Writer, tag tlv.Tag) error {
	return p.fields().encode(w, tag)
}

// Decode reads the next element as a path.
func (p *AttributePathIB) Decode(r *tlv.Reader) error {
	return decodeNext(r, p)
}

// DecodeFrom reads a path from the element r is positioned on.
func (p *AttributePathIB) DecodeFrom(r *tlv.Reader) error {
	*p = AttributePathIB{}
	return p.fields().decode(r)
}
