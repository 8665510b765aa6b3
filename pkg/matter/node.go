package matter

import (
	"errors"
	"fmt"
	"sync"

	"github.com/backkem/matter-im/pkg/datamodel"
	"github.com/backkem/matter-im/pkg/im"
	"github.com/pion/logging"
)

// Device is a Matter node served by an Interaction Model engine. It owns
// the root endpoint and keeps the application endpoints.
type Device struct {
	config DeviceConfig
	log    logging.LeveledLogger

	node   *datamodel.Node
	engine *im.Engine

	mu        sync.RWMutex
	endpoints map[datamodel.EndpointID]*Endpoint
}

// NewDevice creates a device with its root endpoint.
func NewDevice(config DeviceConfig) (*Device, error) {
	config.applyDefaults()

	d := &Device{
		config:    config,
		node:      datamodel.NewNode(),
		endpoints: make(map[datamodel.EndpointID]*Endpoint),
	}
	if config.LoggerFactory != nil {
		d.log = config.LoggerFactory.NewLogger("matter")
	}

	root := createRootEndpoint(&config)
	if err := d.add(root); err != nil {
		return nil, err
	}

	d.engine = im.NewEngine(im.Config{
		Node:          d.node,
		MaxPayload:    config.MaxPayload,
		LoggerFactory: config.LoggerFactory,
	})
	return d, nil
}

// AddEndpoint adds an application endpoint. A Descriptor cluster is added
// to it if missing.
func (d *Device) AddEndpoint(ep *Endpoint) error {
	if ep.ID() == RootEndpointID {
		return ErrRootEndpointReserved
	}
	if err := ep.Err(); err != nil {
		return fmt.Errorf("matter: endpoint %d: %w", ep.ID(), err)
	}
	ensureDescriptor(ep, d.config.LoggerFactory)
	return d.add(ep)
}

func (d *Device) add(ep *Endpoint) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.node.AddEndpoint(ep.Inner()); err != nil {
		if errors.Is(err, datamodel.ErrEndpointExists) {
			return ErrEndpointExists
		}
		return err
	}
	d.endpoints[ep.ID()] = ep

	if d.log != nil {
		d.log.Infof("endpoint %d added with %d clusters", ep.ID(), len(ep.Inner().Clusters()))
	}
	return nil
}

// RemoveEndpoint removes an application endpoint.
func (d *Device) RemoveEndpoint(id datamodel.EndpointID) error {
	if id == RootEndpointID {
		return ErrRootEndpointReserved
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.node.RemoveEndpoint(id); err != nil {
		return ErrEndpointNotFound
	}
	delete(d.endpoints, id)
	return nil
}

// Endpoint returns the endpoint with the given ID, or nil.
func (d *Device) Endpoint(id datamodel.EndpointID) *Endpoint {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.endpoints[id]
}

// Node returns the device model tree.
func (d *Device) Node() *datamodel.Node {
	return d.node
}

// Engine returns the IM engine serving the device.
func (d *Device) Engine() *im.Engine {
	return d.engine
}
