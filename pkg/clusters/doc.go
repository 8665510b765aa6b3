// Package clusters provides shared helpers for cluster implementations.
//
// # Architecture
//
// Clusters implement the datamodel.Cluster interface and embed
// datamodel.ClusterBase for identity, data versions and the global
// attributes:
//
//	type MyCluster struct {
//	    *datamodel.ClusterBase
//	}
//
// Attribute values are returned as message.EncodeValue providers. They run
// when the report carrying them is encoded, which happens while the engine
// still holds the node's read guard.
//
// # Subpackages
//
//   - clusters/descriptor: Descriptor Cluster (0x001D)
//   - clusters/onoff: On/Off Cluster (0x0006)
//   - clusters/userlabel: User Label Cluster (0x0041)
package clusters
