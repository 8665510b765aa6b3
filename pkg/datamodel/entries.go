package datamodel

import "strings"

// AttributeQuality is a bitmask of attribute qualities.
// Matter Core: Section 7.7
type AttributeQuality uint32

const (
	// AttrQualityList marks a list attribute. Writes to it are decomposed
	// into per-item operations.
	AttrQualityList AttributeQuality = 1 << iota

	// AttrQualityWritable marks an attribute that accepts writes.
	AttrQualityWritable

	// AttrQualityNullable marks an attribute whose value may be null.
	AttrQualityNullable

	// AttrQualityTimed marks an attribute that may only be written inside a
	// timed interaction.
	AttrQualityTimed

	// AttrQualityFixed marks an attribute whose value never changes.
	AttrQualityFixed
)

var attributeQualityNames = []string{"list", "writable", "nullable", "timed", "fixed"}

func (q AttributeQuality) String() string {
	if q == 0 {
		return "none"
	}
	var parts []string
	for i, name := range attributeQualityNames {
		if q&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// CommandQuality is a bitmask of command qualities.
type CommandQuality uint32

const (
	// CmdQualityTimed marks a command that requires a timed interaction.
	CmdQualityTimed CommandQuality = 1 << iota
)

// AttributeEntry describes one attribute of a cluster.
type AttributeEntry struct {
	ID      AttributeID
	Quality AttributeQuality
}

// IsList returns true if this is a list attribute.
func (a AttributeEntry) IsList() bool { return a.Quality&AttrQualityList != 0 }

// IsWritable returns true if the attribute accepts writes.
func (a AttributeEntry) IsWritable() bool { return a.Quality&AttrQualityWritable != 0 }

// IsNullable returns true if the attribute may hold null.
func (a AttributeEntry) IsNullable() bool { return a.Quality&AttrQualityNullable != 0 }

// RequiresTimed returns true if writes need a timed interaction.
func (a AttributeEntry) RequiresTimed() bool { return a.Quality&AttrQualityTimed != 0 }

// CommandEntry describes one accepted command of a cluster.
type CommandEntry struct {
	ID      CommandID
	Quality CommandQuality
}

// RequiresTimed returns true if the command needs a timed interaction.
func (c CommandEntry) RequiresTimed() bool { return c.Quality&CmdQualityTimed != 0 }

// DeviceTypeEntry describes a device type present on an endpoint.
// Matter Core: Section 9.5.5.1
type DeviceTypeEntry struct {
	DeviceTypeID DeviceTypeID
	Revision     uint16
}

// NewReadOnlyAttribute creates a read-only attribute entry.
func NewReadOnlyAttribute(id AttributeID, quality AttributeQuality) AttributeEntry {
	return AttributeEntry{ID: id, Quality: quality &^ AttrQualityWritable}
}

// NewReadWriteAttribute creates a writable attribute entry.
func NewReadWriteAttribute(id AttributeID, quality AttributeQuality) AttributeEntry {
	return AttributeEntry{ID: id, Quality: quality | AttrQualityWritable}
}

// FindAttribute searches an attribute list for a specific attribute ID.
// Returns nil if not found.
func FindAttribute(list []AttributeEntry, id AttributeID) *AttributeEntry {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}

// FindCommand searches a command list for a specific command ID.
// Returns nil if not found.
func FindCommand(list []CommandEntry, id CommandID) *CommandEntry {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}
