package datamodel

import (
	"context"

	"github.com/backkem/matter-im/pkg/im/message"
	"github.com/backkem/matter-im/pkg/tlv"
)

// Endpoint is a component of a Node holding clusters.
// Matter Core: Section 7.9
type Endpoint interface {
	// ID returns the endpoint number.
	ID() EndpointID

	// DeviceTypes returns the device types implemented by this endpoint.
	DeviceTypes() []DeviceTypeEntry

	// Cluster returns the server cluster with the given ID, or nil.
	Cluster(id ClusterID) Cluster

	// Clusters returns all server clusters in registration order.
	Clusters() []Cluster
}

// AttributeEncoder receives the value of an attribute read. The value is a
// provider run later, while the caller still holds a read guard, or an
// already decoded element.
type AttributeEncoder interface {
	Encode(v message.EncodeValue) error
}

// ReadAttributeRequest carries the context of an attribute read.
type ReadAttributeRequest struct {
	Path ConcreteAttributePath

	// Guard is the read guard held for the duration of the read. Providers
	// that walk the tree use it and never lock the node themselves.
	Guard *Guard
}

// WriteAttributeRequest carries the context of an attribute write.
type WriteAttributeRequest struct {
	Path ConcreteAttributePath

	// DataVersion is the version the client expects, if it sent one.
	DataVersion *DataVersion

	// Timed is true when the write arrived inside a timed interaction.
	Timed bool
}

// InvokeRequest carries the context of a command invocation.
type InvokeRequest struct {
	Path  ConcreteCommandPath
	Timed bool
}

// CommandResponse is the data response to an invoked command.
type CommandResponse struct {
	ID     CommandID
	Fields message.EncodeValue
}

// Cluster is a server cluster instance.
// Matter Core: Section 7.10
type Cluster interface {
	// ID returns the cluster ID (e.g., 0x0006 for OnOff).
	ID() ClusterID

	// EndpointID returns the endpoint this cluster belongs to.
	EndpointID() EndpointID

	// DataVersion returns the current cluster data version. It changes
	// whenever any attribute changes.
	DataVersion() DataVersion

	// Attributes returns metadata for all supported attributes, global
	// attributes included.
	Attributes() []AttributeEntry

	// AcceptedCommands returns metadata for accepted (client to server) commands.
	AcceptedCommands() []CommandEntry

	// GeneratedCommands returns IDs of generated (server to client) commands.
	GeneratedCommands() []CommandID

	// ReadAttribute answers a read through enc. Returns
	// ErrUnsupportedAttribute if the attribute doesn't exist.
	ReadAttribute(ctx context.Context, req ReadAttributeRequest, enc AttributeEncoder) error

	// WriteAttribute replaces a non-list attribute with data.
	WriteAttribute(ctx context.Context, req WriteAttributeRequest, data tlv.Element) error

	// InvokeCommand executes a command. A nil response with a nil error is
	// a plain success.
	InvokeCommand(ctx context.Context, req InvokeRequest, fields tlv.Element) (*CommandResponse, error)
}

// ListWriter is implemented by clusters with writable list attributes.
// Each call applies one operation inferred by message.AttrListWrite; item is
// zero for DeleteItem and DeleteList.
type ListWriter interface {
	WriteListItem(ctx context.Context, req WriteAttributeRequest, op message.ListOperation, item tlv.Element) error
}
