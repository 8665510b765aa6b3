package message

import "fmt"

// GenericPath addresses the three levels of the data model: endpoint,
// cluster and leaf (an attribute, command or event id). A nil component is a
// wildcard matching every value at that level.
type GenericPath struct {
	Endpoint *EndpointID
	Cluster  *ClusterID
	Leaf     *uint32
}

// NewGenericPath builds a path from optional components.
func NewGenericPath(endpoint *EndpointID, cluster *ClusterID, leaf *uint32) GenericPath {
	return GenericPath{Endpoint: endpoint, Cluster: cluster, Leaf: leaf}
}

// ConcretePath builds a path with all three components set.
func ConcretePath(endpoint EndpointID, cluster ClusterID, leaf uint32) GenericPath {
	return GenericPath{Endpoint: &endpoint, Cluster: &cluster, Leaf: &leaf}
}

// IsWildcard reports whether any component is absent.
func (p GenericPath) IsWildcard() bool {
	return p.Endpoint == nil || p.Cluster == nil || p.Leaf == nil
}

// NotWildcard returns the concrete components, or ErrInvalidPath when any of
// them is a wildcard.
func (p GenericPath) NotWildcard() (EndpointID, ClusterID, uint32, error) {
	if p.IsWildcard() {
		return 0, 0, 0, fmt.Errorf("%w: %s", ErrInvalidPath, p)
	}
	return *p.Endpoint, *p.Cluster, *p.Leaf, nil
}

// MatchesEndpoint reports whether the endpoint component selects id.
func (p GenericPath) MatchesEndpoint(id EndpointID) bool {
	return p.Endpoint == nil || *p.Endpoint == id
}

// MatchesCluster reports whether the cluster component selects id.
func (p GenericPath) MatchesCluster(id ClusterID) bool {
	return p.Cluster == nil || *p.Cluster == id
}

// MatchesLeaf reports whether the leaf component selects id.
func (p GenericPath) MatchesLeaf(id uint32) bool {
	return p.Leaf == nil || *p.Leaf == id
}

// String formats the path as endpoint/cluster/leaf with * for wildcards.
func (p GenericPath) String() string {
	ep, cl, leaf := "*", "*", "*"
	if p.Endpoint != nil {
		ep = fmt.Sprintf("%d", *p.Endpoint)
	}
	if p.Cluster != nil {
		cl = fmt.Sprintf("0x%04x", *p.Cluster)
	}
	if p.Leaf != nil {
		leaf = fmt.Sprintf("0x%04x", *p.Leaf)
	}
	return ep + "/" + cl + "/" + leaf
}
