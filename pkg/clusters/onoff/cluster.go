// Package onoff implements the On/Off Cluster (0x0006).
//
// The On/Off cluster provides commands and attributes to control
// an on/off state, such as a light switch or power outlet.
package onoff

import (
	"context"
	"fmt"
	"sync"

	"github.com/backkem/matter-im/pkg/datamodel"
	"github.com/backkem/matter-im/pkg/im/message"
	"github.com/backkem/matter-im/pkg/tlv"
	"github.com/pion/logging"
)

// Cluster constants.
const (
	ClusterID       datamodel.ClusterID = 0x0006
	ClusterRevision uint16              = 6
)

// Attribute IDs.
const (
	AttrOnOff              datamodel.AttributeID = 0x0000
	AttrGlobalSceneControl datamodel.AttributeID = 0x4000
	AttrOnTime             datamodel.AttributeID = 0x4001
	AttrOffWaitTime        datamodel.AttributeID = 0x4002
	AttrStartUpOnOff       datamodel.AttributeID = 0x4003
)

// Command IDs.
const (
	CmdOff    datamodel.CommandID = 0x00
	CmdOn     datamodel.CommandID = 0x01
	CmdToggle datamodel.CommandID = 0x02
)

// Feature bits.
type Feature uint32

const (
	// FeatureLighting enables GlobalSceneControl, OnTime, OffWaitTime and
	// StartUpOnOff.
	FeatureLighting Feature = 1 << 0 // LT

	// FeatureOffOnly indicates the device can only be turned off, not on.
	FeatureOffOnly Feature = 1 << 2 // OFFONLY
)

// StartUpOnOff indicates the startup behavior.
type StartUpOnOff uint8

const (
	StartUpOnOffOff      StartUpOnOff = 0
	StartUpOnOffOn       StartUpOnOff = 1
	StartUpOnOffToggle   StartUpOnOff = 2
	StartUpOnOffPrevious StartUpOnOff = 0xFF
)

// String returns the name of the startup behavior.
func (s StartUpOnOff) String() string {
	switch s {
	case StartUpOnOffOff:
		return "Off"
	case StartUpOnOffOn:
		return "On"
	case StartUpOnOffToggle:
		return "Toggle"
	case StartUpOnOffPrevious:
		return "Previous"
	default:
		return "Unknown"
	}
}

// StateChangeCallback is called when the on/off state changes.
type StateChangeCallback func(endpoint datamodel.EndpointID, newState bool)

// Config provides dependencies for the On/Off cluster.
type Config struct {
	// EndpointID is the endpoint this cluster belongs to.
	EndpointID datamodel.EndpointID

	// FeatureMap indicates supported features.
	FeatureMap Feature

	// OnStateChange callback when state changes (optional).
	OnStateChange StateChangeCallback

	// InitialOnOff is the initial on/off state.
	InitialOnOff bool

	// LoggerFactory for creating the cluster logger (optional).
	LoggerFactory logging.LoggerFactory
}

// Cluster implements the On/Off cluster (0x0006).
type Cluster struct {
	*datamodel.ClusterBase
	config Config
	log    logging.LeveledLogger

	mu                 sync.RWMutex
	onOff              bool
	globalSceneControl bool
	onTime             uint16
	offWaitTime        uint16
	startUpOnOff       *StartUpOnOff

	attrList []datamodel.AttributeEntry
	cmdList  []datamodel.CommandEntry
}

// New creates a new On/Off cluster.
func New(cfg Config) *Cluster {
	c := &Cluster{
		ClusterBase:        datamodel.NewClusterBase(ClusterID, cfg.EndpointID, ClusterRevision),
		config:             cfg,
		onOff:              cfg.InitialOnOff,
		globalSceneControl: true,
	}
	c.SetFeatureMap(uint32(cfg.FeatureMap))
	if cfg.LoggerFactory != nil {
		c.log = cfg.LoggerFactory.NewLogger("onoff")
	}

	attrs := []datamodel.AttributeEntry{
		datamodel.NewReadWriteAttribute(AttrOnOff, 0),
	}
	if c.hasLighting() {
		attrs = append(attrs,
			datamodel.NewReadOnlyAttribute(AttrGlobalSceneControl, 0),
			datamodel.NewReadWriteAttribute(AttrOnTime, 0),
			datamodel.NewReadWriteAttribute(AttrOffWaitTime, 0),
			datamodel.NewReadWriteAttribute(AttrStartUpOnOff, datamodel.AttrQualityNullable),
		)
	}
	c.attrList = datamodel.MergeAttributeLists(attrs)
	c.cmdList = []datamodel.CommandEntry{{ID: CmdOff}, {ID: CmdOn}, {ID: CmdToggle}}
	return c
}

func (c *Cluster) hasLighting() bool {
	return c.config.FeatureMap&FeatureLighting != 0
}

// Attributes implements datamodel.Cluster.
func (c *Cluster) Attributes() []datamodel.AttributeEntry {
	return c.attrList
}

// AcceptedCommands implements datamodel.Cluster.
func (c *Cluster) AcceptedCommands() []datamodel.CommandEntry {
	return c.cmdList
}

// GeneratedCommands implements datamodel.Cluster.
// On/Off cluster doesn't generate response commands.
func (c *Cluster) GeneratedCommands() []datamodel.CommandID {
	return nil
}

// ReadAttribute implements datamodel.Cluster.
func (c *Cluster) ReadAttribute(ctx context.Context, req datamodel.ReadAttributeRequest, enc datamodel.AttributeEncoder) error {
	if v, ok := c.GlobalAttribute(req.Path.Attribute, c.attrList, c.cmdList, nil); ok {
		return enc.Encode(v)
	}
	if datamodel.FindAttribute(c.attrList, req.Path.Attribute) == nil {
		return datamodel.ErrUnsupportedAttribute
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	switch req.Path.Attribute {
	case AttrOnOff:
		return enc.Encode(message.BoolValue(c.onOff))
	case AttrGlobalSceneControl:
		return enc.Encode(message.BoolValue(c.globalSceneControl))
	case AttrOnTime:
		return enc.Encode(message.UintValue(uint64(c.onTime)))
	case AttrOffWaitTime:
		return enc.Encode(message.UintValue(uint64(c.offWaitTime)))
	case AttrStartUpOnOff:
		if c.startUpOnOff == nil {
			return enc.Encode(message.NullValue())
		}
		return enc.Encode(message.UintValue(uint64(*c.startUpOnOff)))
	}
	return datamodel.ErrUnsupportedAttribute
}

// WriteAttribute implements datamodel.Cluster.
func (c *Cluster) WriteAttribute(ctx context.Context, req datamodel.WriteAttributeRequest, data tlv.Element) error {
	if datamodel.FindAttribute(c.attrList, req.Path.Attribute) == nil {
		return datamodel.ErrUnsupportedAttribute
	}
	switch req.Path.Attribute {
	case AttrOnOff:
		v, err := data.Bool()
		if err != nil {
			return fmt.Errorf("%w: %v", datamodel.ErrInvalidDataType, err)
		}
		c.setOnOff(v)
		return nil
	case AttrOnTime:
		return c.writeTime(data, &c.onTime)
	case AttrOffWaitTime:
		return c.writeTime(data, &c.offWaitTime)
	case AttrStartUpOnOff:
		return c.writeStartUpOnOff(data)
	}
	return datamodel.ErrUnsupportedWrite
}

// writeTime handles OnTime and OffWaitTime, both uint16 in tenths of a
// second with 0xFFFF reserved.
func (c *Cluster) writeTime(data tlv.Element, dst *uint16) error {
	val, err := data.Uint()
	if err != nil {
		return fmt.Errorf("%w: %v", datamodel.ErrInvalidDataType, err)
	}
	if val > 0xFFFE {
		return datamodel.ErrConstraintError
	}

	c.mu.Lock()
	*dst = uint16(val)
	c.mu.Unlock()

	c.IncrementDataVersion()
	return nil
}

// writeStartUpOnOff handles writing the nullable StartUpOnOff attribute.
func (c *Cluster) writeStartUpOnOff(data tlv.Element) error {
	var next *StartUpOnOff
	if !data.IsNull() {
		val, err := data.Uint()
		if err != nil {
			return fmt.Errorf("%w: %v", datamodel.ErrInvalidDataType, err)
		}
		if val > 2 && val != 0xFF {
			return datamodel.ErrConstraintError
		}
		s := StartUpOnOff(val)
		next = &s
	}

	c.mu.Lock()
	c.startUpOnOff = next
	c.mu.Unlock()

	c.IncrementDataVersion()
	return nil
}

// InvokeCommand implements datamodel.Cluster. None of the commands carry
// fields or produce a response.
func (c *Cluster) InvokeCommand(ctx context.Context, req datamodel.InvokeRequest, fields tlv.Element) (*datamodel.CommandResponse, error) {
	switch req.Path.Command {
	case CmdOff:
		c.setOnOff(false)
		return nil, nil
	case CmdOn:
		return nil, c.handleOn()
	case CmdToggle:
		if c.OnOff() {
			c.setOnOff(false)
			return nil, nil
		}
		return nil, c.handleOn()
	}
	return nil, datamodel.ErrUnsupportedCommand
}

// handleOn handles the On command.
func (c *Cluster) handleOn() error {
	if c.config.FeatureMap&FeatureOffOnly != 0 {
		return datamodel.ErrUnsupportedCommand
	}

	c.setOnOff(true)

	if c.hasLighting() {
		c.mu.Lock()
		if c.onTime == 0 {
			c.offWaitTime = 0
		}
		c.globalSceneControl = true
		c.mu.Unlock()
	}
	return nil
}

// setOnOff sets the on/off state and triggers callbacks.
func (c *Cluster) setOnOff(newState bool) {
	c.mu.Lock()
	if c.onOff == newState {
		c.mu.Unlock()
		return
	}
	c.onOff = newState
	c.mu.Unlock()

	c.IncrementDataVersion()

	if c.log != nil {
		c.log.Debugf("endpoint %d: on/off -> %t", c.config.EndpointID, newState)
	}
	if c.config.OnStateChange != nil {
		c.config.OnStateChange(c.config.EndpointID, newState)
	}
}

// OnOff returns the current on/off state.
func (c *Cluster) OnOff() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.onOff
}

// SetOnOff sets the on/off state directly (for external control).
func (c *Cluster) SetOnOff(newState bool) {
	c.setOnOff(newState)
}
