package datamodel

// Global attribute IDs present on every cluster.
// Matter Core: Section 7.13, Table 93
const (
	// GlobalAttrClusterRevision (0xFFFD) indicates the cluster revision.
	GlobalAttrClusterRevision AttributeID = 0xFFFD

	// GlobalAttrFeatureMap (0xFFFC) indicates supported optional features.
	GlobalAttrFeatureMap AttributeID = 0xFFFC

	// GlobalAttrAttributeList (0xFFFB) lists all supported attribute IDs.
	GlobalAttrAttributeList AttributeID = 0xFFFB

	// GlobalAttrAcceptedCommandList (0xFFF9) lists accepted command IDs.
	GlobalAttrAcceptedCommandList AttributeID = 0xFFF9

	// GlobalAttrGeneratedCommandList (0xFFF8) lists generated command IDs.
	GlobalAttrGeneratedCommandList AttributeID = 0xFFF8
)

// IsGlobalAttribute returns true if the attribute ID is a global attribute.
func IsGlobalAttribute(id AttributeID) bool {
	return id >= GlobalAttrGeneratedCommandList && id <= GlobalAttrClusterRevision
}

// GlobalAttributeEntries returns the global attribute entries every cluster
// reports in its AttributeList.
func GlobalAttributeEntries() []AttributeEntry {
	return []AttributeEntry{
		{ID: GlobalAttrGeneratedCommandList, Quality: AttrQualityList | AttrQualityFixed},
		{ID: GlobalAttrAcceptedCommandList, Quality: AttrQualityList | AttrQualityFixed},
		{ID: GlobalAttrAttributeList, Quality: AttrQualityList | AttrQualityFixed},
		{ID: GlobalAttrFeatureMap, Quality: AttrQualityFixed},
		{ID: GlobalAttrClusterRevision, Quality: AttrQualityFixed},
	}
}

// MergeAttributeLists combines cluster-specific attributes with global attributes.
func MergeAttributeLists(clusterAttrs []AttributeEntry) []AttributeEntry {
	globals := GlobalAttributeEntries()
	result := make([]AttributeEntry, 0, len(clusterAttrs)+len(globals))
	result = append(result, clusterAttrs...)
	result = append(result, globals...)
	return result
}

// Well-known endpoint IDs.
const (
	// EndpointRoot is the root endpoint (always 0).
	EndpointRoot EndpointID = 0
)

// Cluster IDs implemented in this module.
const (
	// ClusterOnOff is the On/Off cluster ID.
	ClusterOnOff ClusterID = 0x0006

	// ClusterDescriptor is the Descriptor cluster ID.
	ClusterDescriptor ClusterID = 0x001D

	// ClusterUserLabel is the User Label cluster ID.
	ClusterUserLabel ClusterID = 0x0041
)

// Device type IDs used by the demo node.
const (
	// DeviceTypeRootNode is the Root Node device type.
	DeviceTypeRootNode DeviceTypeID = 0x0016

	// DeviceTypeOnOffLight is the On/Off Light device type.
	DeviceTypeOnOffLight DeviceTypeID = 0x0100
)
