package datamodel

import "slices"

// BasicEndpoint is a simple in-memory Endpoint implementation.
// Clusters are kept in registration order. Mutations after the endpoint has
// been added to a Node must happen under a write guard.
type BasicEndpoint struct {
	id          EndpointID
	clusters    []Cluster
	deviceTypes []DeviceTypeEntry
}

// NewEndpoint creates a new endpoint with the given ID and device types.
func NewEndpoint(id EndpointID, deviceTypes ...DeviceTypeEntry) *BasicEndpoint {
	return &BasicEndpoint{
		id:          id,
		deviceTypes: deviceTypes,
	}
}

// ID returns the endpoint ID.
func (e *BasicEndpoint) ID() EndpointID {
	return e.id
}

// AddCluster registers a cluster with the endpoint.
// Returns ErrClusterExists if a cluster with the same ID already exists.
func (e *BasicEndpoint) AddCluster(c Cluster) error {
	if e.Cluster(c.ID()) != nil {
		return ErrClusterExists
	}
	e.clusters = append(e.clusters, c)
	return nil
}

// RemoveCluster removes a cluster from the endpoint.
// Returns ErrClusterNotFound if the cluster doesn't exist.
func (e *BasicEndpoint) RemoveCluster(id ClusterID) error {
	i := slices.IndexFunc(e.clusters, func(c Cluster) bool { return c.ID() == id })
	if i < 0 {
		return ErrClusterNotFound
	}
	e.clusters = slices.Delete(e.clusters, i, i+1)
	return nil
}

// Cluster returns the cluster with the given ID, or nil if not found.
func (e *BasicEndpoint) Cluster(id ClusterID) Cluster {
	for _, c := range e.clusters {
		if c.ID() == id {
			return c
		}
	}
	return nil
}

// Clusters returns all clusters in registration order.
func (e *BasicEndpoint) Clusters() []Cluster {
	return e.clusters
}

// ClusterIDs returns the IDs of all clusters on this endpoint.
func (e *BasicEndpoint) ClusterIDs() []ClusterID {
	ids := make([]ClusterID, len(e.clusters))
	for i, c := range e.clusters {
		ids[i] = c.ID()
	}
	return ids
}

// AddDeviceType adds a device type to the endpoint.
func (e *BasicEndpoint) AddDeviceType(dt DeviceTypeEntry) {
	e.deviceTypes = append(e.deviceTypes, dt)
}

// DeviceTypes returns all device types for this endpoint.
func (e *BasicEndpoint) DeviceTypes() []DeviceTypeEntry {
	return e.deviceTypes
}

// Verify BasicEndpoint implements the interface.
var _ Endpoint = (*BasicEndpoint)(nil)
