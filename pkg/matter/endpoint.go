package matter

import (
	"github.com/backkem/matter-im/pkg/clusters/descriptor"
	"github.com/backkem/matter-im/pkg/clusters/onoff"
	"github.com/backkem/matter-im/pkg/clusters/userlabel"
	"github.com/backkem/matter-im/pkg/datamodel"
	"github.com/pion/logging"
)

// Endpoint wraps datamodel.BasicEndpoint with a fluent builder API.
// Use NewEndpoint to create an endpoint, then chain methods to configure it.
// The first error met while building is reported by Device.AddEndpoint.
//
// Example:
//
//	ep := matter.NewEndpoint(1).
//	    WithDeviceType(datamodel.DeviceTypeOnOffLight, 3).
//	    AddCluster(onoff.New(onoff.Config{EndpointID: 1}))
type Endpoint struct {
	endpoint *datamodel.BasicEndpoint
	err      error
}

// NewEndpoint creates a new endpoint with the given ID.
// Endpoint 0 is reserved for the root endpoint and is created automatically.
func NewEndpoint(id datamodel.EndpointID) *Endpoint {
	return &Endpoint{endpoint: datamodel.NewEndpoint(id)}
}

// WithDeviceType adds a device type to the endpoint.
// A device type describes the device's functionality (e.g., 0x0100 = On/Off Light).
// Multiple device types can be added to a single endpoint.
//
// Common device types:
//   - 0x000E: Aggregator
//   - 0x000F: Bridged Node
//   - 0x0100: On/Off Light
//   - 0x0101: Dimmable Light
//   - 0x010A: On/Off Plug-in Unit
func (e *Endpoint) WithDeviceType(deviceType datamodel.DeviceTypeID, revision uint16) *Endpoint {
	e.endpoint.AddDeviceType(datamodel.DeviceTypeEntry{
		DeviceTypeID: deviceType,
		Revision:     revision,
	})
	return e
}

// AddCluster adds a cluster implementation to the endpoint.
func (e *Endpoint) AddCluster(cluster datamodel.Cluster) *Endpoint {
	if err := e.endpoint.AddCluster(cluster); err != nil && e.err == nil {
		e.err = err
	}
	return e
}

// ID returns the endpoint ID.
func (e *Endpoint) ID() datamodel.EndpointID {
	return e.endpoint.ID()
}

// DeviceTypes returns the configured device types.
func (e *Endpoint) DeviceTypes() []datamodel.DeviceTypeEntry {
	return e.endpoint.DeviceTypes()
}

// Cluster returns a cluster by ID, or nil if not found.
func (e *Endpoint) Cluster(id datamodel.ClusterID) datamodel.Cluster {
	return e.endpoint.Cluster(id)
}

// Err returns the first error met while building the endpoint.
func (e *Endpoint) Err() error {
	return e.err
}

// Inner returns the underlying BasicEndpoint.
func (e *Endpoint) Inner() *datamodel.BasicEndpoint {
	return e.endpoint
}

// LightConfig configures NewOnOffLight.
type LightConfig struct {
	// OnOff configures the On/Off cluster. EndpointID is overwritten.
	OnOff onoff.Config

	// Labels is the initial User Label list.
	Labels []userlabel.Label

	LoggerFactory logging.LoggerFactory
}

// OnOffLightRevision is the On/Off Light device type revision.
const OnOffLightRevision uint16 = 3

// NewOnOffLight builds an On/Off Light endpoint with the Descriptor, On/Off
// (Lighting feature unless OffOnly is requested) and User Label clusters.
func NewOnOffLight(id datamodel.EndpointID, cfg LightConfig) *Endpoint {
	oo := cfg.OnOff
	oo.EndpointID = id
	if oo.FeatureMap == 0 {
		oo.FeatureMap = onoff.FeatureLighting
	}
	if oo.LoggerFactory == nil {
		oo.LoggerFactory = cfg.LoggerFactory
	}

	return NewEndpoint(id).
		WithDeviceType(datamodel.DeviceTypeOnOffLight, OnOffLightRevision).
		AddCluster(descriptor.New(descriptor.Config{EndpointID: id, LoggerFactory: cfg.LoggerFactory})).
		AddCluster(onoff.New(oo)).
		AddCluster(userlabel.New(userlabel.Config{EndpointID: id, Labels: cfg.Labels, LoggerFactory: cfg.LoggerFactory}))
}
