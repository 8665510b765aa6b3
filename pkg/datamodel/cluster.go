package datamodel

import (
	"crypto/rand"
	"encoding/binary"
	"sync/atomic"

	"github.com/backkem/matter-im/pkg/im/message"
	"github.com/backkem/matter-im/pkg/tlv"
)

// ClusterBase provides common functionality for cluster implementations.
// Embed it to get data version management and the global attributes.
type ClusterBase struct {
	id          ClusterID
	endpointID  EndpointID
	revision    uint16
	featureMap  uint32
	dataVersion atomic.Uint32
}

// NewClusterBase creates a new cluster base with the given parameters.
// The data version starts at a random value.
// Matter Core: Section 7.10.3
func NewClusterBase(id ClusterID, endpointID EndpointID, revision uint16) *ClusterBase {
	cb := &ClusterBase{
		id:         id,
		endpointID: endpointID,
		revision:   revision,
	}
	cb.dataVersion.Store(randomDataVersion())
	return cb
}

// ID returns the cluster ID.
func (c *ClusterBase) ID() ClusterID {
	return c.id
}

// EndpointID returns the endpoint this cluster belongs to.
func (c *ClusterBase) EndpointID() EndpointID {
	return c.endpointID
}

// ClusterRevision returns the cluster revision.
func (c *ClusterBase) ClusterRevision() uint16 {
	return c.revision
}

// FeatureMap returns the feature map.
func (c *ClusterBase) FeatureMap() uint32 {
	return c.featureMap
}

// SetFeatureMap sets the feature map bits.
func (c *ClusterBase) SetFeatureMap(features uint32) {
	c.featureMap = features
}

// DataVersion returns the current data version.
func (c *ClusterBase) DataVersion() DataVersion {
	return DataVersion(c.dataVersion.Load())
}

// IncrementDataVersion increments the data version.
// Call this whenever an attribute value changes.
func (c *ClusterBase) IncrementDataVersion() {
	c.dataVersion.Add(1)
}

// SetDataVersion sets the data version to a specific value.
func (c *ClusterBase) SetDataVersion(version DataVersion) {
	c.dataVersion.Store(uint32(version))
}

// Path returns the concrete cluster path for this cluster.
func (c *ClusterBase) Path() ConcreteClusterPath {
	return ConcreteClusterPath{Endpoint: c.endpointID, Cluster: c.id}
}

// AttributePath returns a concrete attribute path on this cluster.
func (c *ClusterBase) AttributePath(attrID AttributeID) ConcreteAttributePath {
	return ConcreteAttributePath{Endpoint: c.endpointID, Cluster: c.id, Attribute: attrID}
}

// GlobalAttribute returns the value of a global attribute as a provider.
// Returns false if attrID is not one of the global attributes.
func (c *ClusterBase) GlobalAttribute(attrID AttributeID, attrs []AttributeEntry, accepted []CommandEntry, generated []CommandID) (message.EncodeValue, bool) {
	switch attrID {
	case GlobalAttrClusterRevision:
		return message.UintValue(uint64(c.revision)), true

	case GlobalAttrFeatureMap:
		return message.UintValue(uint64(c.featureMap)), true

	case GlobalAttrAttributeList:
		ids := make([]uint64, len(attrs))
		for i, a := range attrs {
			ids[i] = uint64(a.ID)
		}
		return UintArrayValue(ids), true

	case GlobalAttrAcceptedCommandList:
		ids := make([]uint64, len(accepted))
		for i, cmd := range accepted {
			ids[i] = uint64(cmd.ID)
		}
		return UintArrayValue(ids), true

	case GlobalAttrGeneratedCommandList:
		ids := make([]uint64, len(generated))
		for i, id := range generated {
			ids[i] = uint64(id)
		}
		return UintArrayValue(ids), true
	}
	return message.EncodeValue{}, false
}

// UintArrayValue returns a value encoding an array of unsigned integers.
func UintArrayValue(values []uint64) message.EncodeValue {
	return message.ProvidedValue(message.ValueEncoderFunc(func(w *tlv.Writer, tag tlv.Tag) error {
		if err := w.StartArray(tag); err != nil {
			return err
		}
		for _, v := range values {
			if err := w.PutUint(tlv.Anonymous(), v); err != nil {
				return err
			}
		}
		return w.EndContainer()
	}))
}

// randomDataVersion generates a random initial data version.
func randomDataVersion() uint32 {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 1
	}
	return binary.LittleEndian.Uint32(buf[:])
}
