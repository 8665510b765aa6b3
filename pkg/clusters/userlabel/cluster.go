// Package userlabel implements the User Label Cluster (0x0041).
//
// The User Label cluster holds a small, client-writable list of label/value
// pairs describing an endpoint. It is the demo node's writable list
// attribute, so every list write operation ends up here.
//
// Matter Core: Section 9.9
package userlabel

import (
	"context"
	"fmt"
	"slices"

	"github.com/backkem/matter-im/pkg/clusters"
	"github.com/backkem/matter-im/pkg/datamodel"
	"github.com/backkem/matter-im/pkg/im/message"
	"github.com/backkem/matter-im/pkg/tlv"
	"github.com/pion/logging"
)

// Cluster constants.
const (
	ClusterID       datamodel.ClusterID = 0x0041
	ClusterRevision uint16              = 1
)

// Attribute IDs.
const (
	AttrLabelList datamodel.AttributeID = 0x0000
)

// Limits on the label list.
const (
	MaxLabels      = 4
	MaxLabelLength = 16
	MaxValueLength = 16
)

// LabelStruct field tags.
const (
	fieldLabel = 0
	fieldValue = 1
)

// Label is one entry of LabelList.
type Label struct {
	Label string
	Value string
}

// Config provides dependencies for the User Label cluster.
type Config struct {
	// EndpointID is the endpoint this cluster belongs to.
	EndpointID datamodel.EndpointID

	// Labels is the initial list content (optional).
	Labels []Label

	// LoggerFactory for creating the cluster logger (optional).
	LoggerFactory logging.LoggerFactory
}

// Cluster implements the User Label cluster (0x0041). Its state is only
// touched under the node's guards: reads under a read guard, list writes
// under a write guard.
type Cluster struct {
	*datamodel.ClusterBase
	log      logging.LeveledLogger
	labels   []Label
	attrList []datamodel.AttributeEntry
}

// New creates a new User Label cluster.
func New(cfg Config) *Cluster {
	attrs := []datamodel.AttributeEntry{
		datamodel.NewReadWriteAttribute(AttrLabelList, datamodel.AttrQualityList),
	}
	c := &Cluster{
		ClusterBase: datamodel.NewClusterBase(ClusterID, cfg.EndpointID, ClusterRevision),
		labels:      slices.Clone(cfg.Labels),
		attrList:    datamodel.MergeAttributeLists(attrs),
	}
	if cfg.LoggerFactory != nil {
		c.log = cfg.LoggerFactory.NewLogger("userlabel")
	}
	return c
}

// Labels returns a copy of the current label list.
func (c *Cluster) Labels() []Label {
	return slices.Clone(c.labels)
}

// Attributes implements datamodel.Cluster.
func (c *Cluster) Attributes() []datamodel.AttributeEntry {
	return c.attrList
}

// AcceptedCommands implements datamodel.Cluster.
func (c *Cluster) AcceptedCommands() []datamodel.CommandEntry {
	return nil
}

// GeneratedCommands implements datamodel.Cluster.
func (c *Cluster) GeneratedCommands() []datamodel.CommandID {
	return nil
}

// ReadAttribute implements datamodel.Cluster.
func (c *Cluster) ReadAttribute(ctx context.Context, req datamodel.ReadAttributeRequest, enc datamodel.AttributeEncoder) error {
	if v, ok := c.GlobalAttribute(req.Path.Attribute, c.attrList, nil, nil); ok {
		return enc.Encode(v)
	}
	if req.Path.Attribute != AttrLabelList {
		return datamodel.ErrUnsupportedAttribute
	}

	labels := slices.Clone(c.labels)
	return enc.Encode(clusters.ArrayValue(len(labels), func(w *tlv.Writer, i int) error {
		return encodeLabel(w, tlv.Anonymous(), labels[i])
	}))
}

// WriteAttribute implements datamodel.Cluster. A plain write replaces the
// whole list.
func (c *Cluster) WriteAttribute(ctx context.Context, req datamodel.WriteAttributeRequest, data tlv.Element) error {
	if req.Path.Attribute != AttrLabelList {
		return datamodel.ErrUnsupportedAttribute
	}
	return message.AttrListWrite(nil, data, func(op message.ListOperation, item tlv.Element) error {
		return c.WriteListItem(ctx, req, op, item)
	})
}

// InvokeCommand implements datamodel.Cluster. User Label has no commands.
func (c *Cluster) InvokeCommand(ctx context.Context, req datamodel.InvokeRequest, fields tlv.Element) (*datamodel.CommandResponse, error) {
	return nil, datamodel.ErrUnsupportedCommand
}

// WriteListItem implements datamodel.ListWriter.
func (c *Cluster) WriteListItem(ctx context.Context, req datamodel.WriteAttributeRequest, op message.ListOperation, item tlv.Element) error {
	if req.Path.Attribute != AttrLabelList {
		return datamodel.ErrUnsupportedAttribute
	}

	switch op.Kind {
	case message.ListDeleteList:
		c.labels = c.labels[:0]

	case message.ListAddItem:
		l, err := decodeLabel(item)
		if err != nil {
			return err
		}
		if len(c.labels) >= MaxLabels {
			return datamodel.ErrResourceExhausted
		}
		c.labels = append(c.labels, l)

	case message.ListEditItem:
		if int(op.Index) >= len(c.labels) {
			return fmt.Errorf("%w: label %d", datamodel.ErrNotFound, op.Index)
		}
		l, err := decodeLabel(item)
		if err != nil {
			return err
		}
		c.labels[op.Index] = l

	case message.ListDeleteItem:
		if int(op.Index) >= len(c.labels) {
			return fmt.Errorf("%w: label %d", datamodel.ErrNotFound, op.Index)
		}
		c.labels = slices.Delete(c.labels, int(op.Index), int(op.Index)+1)

	default:
		return fmt.Errorf("%w: list operation %s", datamodel.ErrInvalidDataType, op)
	}

	c.IncrementDataVersion()
	if c.log != nil {
		c.log.Debugf("endpoint %d: %s, %d labels", c.EndpointID(), op, len(c.labels))
	}
	return nil
}

func encodeLabel(w *tlv.Writer, tag tlv.Tag, l Label) error {
	if err := w.StartStructure(tag); err != nil {
		return err
	}
	if err := w.PutString(tlv.ContextTag(fieldLabel), l.Label); err != nil {
		return err
	}
	if err := w.PutString(tlv.ContextTag(fieldValue), l.Value); err != nil {
		return err
	}
	return w.EndContainer()
}

func decodeLabel(e tlv.Element) (Label, error) {
	var l Label
	var hasLabel, hasValue bool
	err := clusters.DecodeStruct(e, func(tag uint8, m tlv.Element) error {
		var err error
		switch tag {
		case fieldLabel:
			l.Label, err = clusters.DecodeString(m, MaxLabelLength)
			hasLabel = true
		case fieldValue:
			l.Value, err = clusters.DecodeString(m, MaxValueLength)
			hasValue = true
		}
		return err
	})
	if err != nil {
		return Label{}, err
	}
	if !hasLabel {
		return Label{}, clusters.MissingField("label")
	}
	if !hasValue {
		return Label{}, clusters.MissingField("value")
	}
	return l, nil
}

// Verify Cluster implements the interfaces.
var (
	_ datamodel.Cluster    = (*Cluster)(nil)
	_ datamodel.ListWriter = (*Cluster)(nil)
)
