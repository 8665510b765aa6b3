// Package descriptor implements the Descriptor Cluster (0x001D).
//
// The Descriptor cluster describes an endpoint's device types, server
// clusters and composition (PartsList). It's mandatory on all endpoints.
//
// Matter Core: Section 9.5
package descriptor

import (
	"context"

	"github.com/backkem/matter-im/pkg/clusters"
	"github.com/backkem/matter-im/pkg/datamodel"
	"github.com/backkem/matter-im/pkg/im/message"
	"github.com/backkem/matter-im/pkg/tlv"
	"github.com/pion/logging"
)

// Cluster constants.
const (
	ClusterID       datamodel.ClusterID = 0x001D
	ClusterRevision uint16              = 2
)

// Attribute IDs.
const (
	AttrDeviceTypeList datamodel.AttributeID = 0x0000
	AttrServerList     datamodel.AttributeID = 0x0001
	AttrClientList     datamodel.AttributeID = 0x0002
	AttrPartsList      datamodel.AttributeID = 0x0003
)

// DeviceTypeStruct field tags.
const (
	fieldDeviceType = 0
	fieldRevision   = 1
)

// Config provides dependencies for the Descriptor cluster.
type Config struct {
	// EndpointID is the endpoint this cluster belongs to.
	EndpointID datamodel.EndpointID

	// LoggerFactory for creating the cluster logger (optional).
	LoggerFactory logging.LoggerFactory
}

// Cluster implements the Descriptor cluster (0x001D). It holds no state of
// its own: every attribute is computed from the tree when encoded.
type Cluster struct {
	*datamodel.ClusterBase
	log      logging.LeveledLogger
	attrList []datamodel.AttributeEntry
}

// New creates a new Descriptor cluster.
func New(cfg Config) *Cluster {
	attrs := []datamodel.AttributeEntry{
		datamodel.NewReadOnlyAttribute(AttrDeviceTypeList, datamodel.AttrQualityList|datamodel.AttrQualityFixed),
		datamodel.NewReadOnlyAttribute(AttrServerList, datamodel.AttrQualityList|datamodel.AttrQualityFixed),
		datamodel.NewReadOnlyAttribute(AttrClientList, datamodel.AttrQualityList|datamodel.AttrQualityFixed),
		datamodel.NewReadOnlyAttribute(AttrPartsList, datamodel.AttrQualityList),
	}
	c := &Cluster{
		ClusterBase: datamodel.NewClusterBase(ClusterID, cfg.EndpointID, ClusterRevision),
		attrList:    datamodel.MergeAttributeLists(attrs),
	}
	if cfg.LoggerFactory != nil {
		c.log = cfg.LoggerFactory.NewLogger("descriptor")
	}
	return c
}

// Attributes implements datamodel.Cluster.
func (c *Cluster) Attributes() []datamodel.AttributeEntry {
	return c.attrList
}

// AcceptedCommands implements datamodel.Cluster.
// Descriptor cluster has no commands.
func (c *Cluster) AcceptedCommands() []datamodel.CommandEntry {
	return nil
}

// GeneratedCommands implements datamodel.Cluster.
func (c *Cluster) GeneratedCommands() []datamodel.CommandID {
	return nil
}

// ReadAttribute implements datamodel.Cluster. The returned providers walk
// the tree through req.Guard, so they must be encoded before the guard is
// released.
func (c *Cluster) ReadAttribute(ctx context.Context, req datamodel.ReadAttributeRequest, enc datamodel.AttributeEncoder) error {
	if v, ok := c.GlobalAttribute(req.Path.Attribute, c.attrList, nil, nil); ok {
		return enc.Encode(v)
	}

	switch req.Path.Attribute {
	case AttrDeviceTypeList:
		return enc.Encode(c.deviceTypeList(req.Guard))
	case AttrServerList:
		return enc.Encode(c.serverList(req.Guard))
	case AttrClientList:
		return enc.Encode(clusters.ArrayValue(0, nil))
	case AttrPartsList:
		return enc.Encode(c.partsList(req.Guard))
	default:
		if c.log != nil {
			c.log.Errorf("endpoint %d: read of unknown attribute 0x%04x", c.EndpointID(), req.Path.Attribute)
		}
		return nil
	}
}

// WriteAttribute implements datamodel.Cluster.
// Descriptor cluster has no writable attributes.
func (c *Cluster) WriteAttribute(ctx context.Context, req datamodel.WriteAttributeRequest, data tlv.Element) error {
	return datamodel.ErrUnsupportedWrite
}

// InvokeCommand implements datamodel.Cluster.
func (c *Cluster) InvokeCommand(ctx context.Context, req datamodel.InvokeRequest, fields tlv.Element) (*datamodel.CommandResponse, error) {
	return nil, datamodel.ErrUnsupportedCommand
}

// deviceTypeList encodes DeviceTypeList (0x0000), one DeviceTypeStruct per
// device type of this endpoint.
// Matter Core: Section 9.5.6.1
func (c *Cluster) deviceTypeList(g *datamodel.Guard) message.EncodeValue {
	return message.ProvidedValue(message.ValueEncoderFunc(func(w *tlv.Writer, tag tlv.Tag) error {
		if err := w.StartArray(tag); err != nil {
			return err
		}
		if ep := g.Endpoint(c.EndpointID()); ep != nil {
			for _, dt := range ep.DeviceTypes() {
				if err := w.StartStructure(tlv.Anonymous()); err != nil {
					return err
				}
				if err := w.PutUint(tlv.ContextTag(fieldDeviceType), uint64(dt.DeviceTypeID)); err != nil {
					return err
				}
				if err := w.PutUint(tlv.ContextTag(fieldRevision), uint64(dt.Revision)); err != nil {
					return err
				}
				if err := w.EndContainer(); err != nil {
					return err
				}
			}
		}
		return w.EndContainer()
	}))
}

// serverList encodes ServerList (0x0001), the IDs of the server clusters on
// this endpoint in registration order.
// Matter Core: Section 9.5.6.2
func (c *Cluster) serverList(g *datamodel.Guard) message.EncodeValue {
	return message.ProvidedValue(message.ValueEncoderFunc(func(w *tlv.Writer, tag tlv.Tag) error {
		if err := w.StartArray(tag); err != nil {
			return err
		}
		ep := c.EndpointID()
		for p := range g.Clusters(message.NewGenericPath(&ep, nil, nil)) {
			if err := w.PutUint(tlv.Anonymous(), uint64(*p.Cluster)); err != nil {
				return err
			}
		}
		return w.EndContainer()
	}))
}

// partsList encodes PartsList (0x0003). The root endpoint lists every other
// endpoint in ascending order; other endpoints have no parts.
// Matter Core: Section 9.5.6.4
func (c *Cluster) partsList(g *datamodel.Guard) message.EncodeValue {
	return message.ProvidedValue(message.ValueEncoderFunc(func(w *tlv.Writer, tag tlv.Tag) error {
		if err := w.StartArray(tag); err != nil {
			return err
		}
		if c.EndpointID() == datamodel.EndpointRoot {
			for _, id := range g.EndpointIDs() {
				if id == datamodel.EndpointRoot {
					continue
				}
				if err := w.PutUint(tlv.Anonymous(), uint64(id)); err != nil {
					return err
				}
			}
		}
		return w.EndContainer()
	}))
}
