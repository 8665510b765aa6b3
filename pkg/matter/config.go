package matter

import (
	"github.com/backkem/matter-im/pkg/datamodel"
	"github.com/pion/logging"
)

// DeviceConfig holds the configuration of a Device.
type DeviceConfig struct {
	// RootDeviceTypes are the device types of endpoint 0.
	// Defaults to Root Node.
	RootDeviceTypes []datamodel.DeviceTypeEntry

	// MaxPayload bounds the IM payload of one message.
	// Defaults to im.DefaultMaxPayload if 0.
	MaxPayload int

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

func (c *DeviceConfig) applyDefaults() {
	if len(c.RootDeviceTypes) == 0 {
		c.RootDeviceTypes = []datamodel.DeviceTypeEntry{
			{DeviceTypeID: datamodel.DeviceTypeRootNode, Revision: RootDeviceTypeRevision},
		}
	}
}
