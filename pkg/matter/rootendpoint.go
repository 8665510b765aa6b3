package matter

import (
	"github.com/backkem/matter-im/pkg/clusters/descriptor"
	"github.com/backkem/matter-im/pkg/datamodel"
	"github.com/pion/logging"
)

// RootEndpointID is the ID of the root endpoint.
const RootEndpointID = datamodel.EndpointRoot

// RootDeviceTypeRevision is the revision for the Root Node device type.
const RootDeviceTypeRevision uint16 = 1

// createRootEndpoint creates endpoint 0 with the node-wide Descriptor
// cluster, whose PartsList covers every other endpoint.
func createRootEndpoint(config *DeviceConfig) *Endpoint {
	ep := NewEndpoint(RootEndpointID)
	for _, dt := range config.RootDeviceTypes {
		ep.WithDeviceType(dt.DeviceTypeID, dt.Revision)
	}

	// Descriptor Cluster (0x001D) - Required
	return ep.AddCluster(descriptor.New(descriptor.Config{
		EndpointID:    RootEndpointID,
		LoggerFactory: config.LoggerFactory,
	}))
}

// ensureDescriptor adds a Descriptor cluster to ep if it has none.
func ensureDescriptor(ep *Endpoint, lf logging.LoggerFactory) {
	if ep.Cluster(descriptor.ClusterID) == nil {
		ep.AddCluster(descriptor.New(descriptor.Config{
			EndpointID:    ep.ID(),
			LoggerFactory: lf,
		}))
	}
}
