package datamodel

import (
	"fmt"

	"github.com/backkem/matter-im/pkg/im/message"
)

// Identifier types shared with the wire layer.
type (
	// NodeID is a 64-bit node identifier.
	NodeID = message.NodeID

	// EndpointID is a 16-bit endpoint identifier.
	EndpointID = message.EndpointID

	// ClusterID is a 32-bit cluster identifier.
	ClusterID = message.ClusterID

	// AttributeID is a 16-bit attribute identifier.
	AttributeID = message.AttributeID

	// CommandID is a 32-bit command identifier.
	CommandID = message.CommandID

	// ListIndex addresses one element of a list attribute.
	ListIndex = message.ListIndex

	// DataVersion is the per-cluster version stamped on attribute data.
	DataVersion = message.DataVersion

	// GenericPath is an endpoint/cluster/leaf path with optional components.
	GenericPath = message.GenericPath
)

// DeviceTypeID is a 32-bit device type identifier.
type DeviceTypeID uint32

// ConcreteClusterPath identifies a cluster instance on an endpoint.
type ConcreteClusterPath struct {
	Endpoint EndpointID
	Cluster  ClusterID
}

// Generic returns the path as a GenericPath with a wildcard leaf.
func (p ConcreteClusterPath) Generic() GenericPath {
	return message.NewGenericPath(&p.Endpoint, &p.Cluster, nil)
}

func (p ConcreteClusterPath) String() string {
	return fmt.Sprintf("%d/0x%04x", p.Endpoint, p.Cluster)
}

// ConcreteAttributePath identifies one attribute of a cluster instance.
// Matter Core: Section 8.2.1.1
type ConcreteAttributePath struct {
	Endpoint  EndpointID
	Cluster   ClusterID
	Attribute AttributeID
}

// ClusterPath returns the cluster path portion.
func (p ConcreteAttributePath) ClusterPath() ConcreteClusterPath {
	return ConcreteClusterPath{Endpoint: p.Endpoint, Cluster: p.Cluster}
}

// IB returns the wire form of the path.
func (p ConcreteAttributePath) IB() message.AttributePathIB {
	return message.ConcreteAttributePath(p.Endpoint, p.Cluster, p.Attribute)
}

func (p ConcreteAttributePath) String() string {
	return fmt.Sprintf("%d/0x%04x/0x%04x", p.Endpoint, p.Cluster, p.Attribute)
}

// ConcreteCommandPath identifies one command of a cluster instance.
// Matter Core: Section 8.2.1.2
type ConcreteCommandPath struct {
	Endpoint EndpointID
	Cluster  ClusterID
	Command  CommandID
}

// ClusterPath returns the cluster path portion.
func (p ConcreteCommandPath) ClusterPath() ConcreteClusterPath {
	return ConcreteClusterPath{Endpoint: p.Endpoint, Cluster: p.Cluster}
}

// IB returns the wire form of the path.
func (p ConcreteCommandPath) IB() message.CommandPathIB {
	return message.NewCommandPath(p.Endpoint, p.Cluster, p.Command)
}

func (p ConcreteCommandPath) String() string {
	return fmt.Sprintf("%d/0x%04x/0x%04x", p.Endpoint, p.Cluster, p.Command)
}
