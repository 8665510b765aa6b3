package datamodel

import (
	"iter"
	"slices"
	"sync"

	"github.com/backkem/matter-im/pkg/im/message"
)

// Node is the in-memory device model: endpoints ordered by id, each holding
// clusters. All access to the tree goes through a Guard, so one lock covers
// the endpoint set and the cluster state behind it.
// Matter Core: Section 7.8
type Node struct {
	mu        sync.RWMutex
	endpoints []Endpoint // ascending by ID
}

// NewNode creates a new empty node.
func NewNode() *Node {
	return &Node{}
}

// AddEndpoint registers an endpoint with the node.
// Returns ErrEndpointExists if an endpoint with the same ID already exists.
// It must not be called while the caller holds a guard.
func (n *Node) AddEndpoint(ep Endpoint) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	i, found := slices.BinarySearchFunc(n.endpoints, ep.ID(), compareEndpoint)
	if found {
		return ErrEndpointExists
	}
	n.endpoints = slices.Insert(n.endpoints, i, ep)
	return nil
}

// RemoveEndpoint removes an endpoint from the node.
// Returns ErrEndpointNotFound if the endpoint doesn't exist.
func (n *Node) RemoveEndpoint(id EndpointID) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	i, found := slices.BinarySearchFunc(n.endpoints, id, compareEndpoint)
	if !found {
		return ErrEndpointNotFound
	}
	n.endpoints = slices.Delete(n.endpoints, i, i+1)
	return nil
}

// ReadGuard takes the node's read lock. Any number of read guards may be
// held at once.
func (n *Node) ReadGuard() *Guard {
	n.mu.RLock()
	return &Guard{node: n}
}

// WriteGuard takes the node's write lock.
func (n *Node) WriteGuard() *Guard {
	n.mu.Lock()
	return &Guard{node: n, write: true}
}

func compareEndpoint(ep Endpoint, id EndpointID) int {
	switch {
	case ep.ID() < id:
		return -1
	case ep.ID() > id:
		return 1
	}
	return 0
}

// Guard is a held lock on a Node. Tree queries are only valid until Release.
type Guard struct {
	node     *Node
	write    bool
	once     sync.Once
	released bool
}

// Release unlocks the node. Calling it more than once is a no-op.
func (g *Guard) Release() {
	g.once.Do(func() {
		g.released = true
		if g.write {
			g.node.mu.Unlock()
		} else {
			g.node.mu.RUnlock()
		}
	})
}

// IsWrite reports whether the guard holds the write lock.
func (g *Guard) IsWrite() bool {
	return g.write
}

func (g *Guard) check() {
	if g.released {
		panic(ErrGuardReleased)
	}
}

// Endpoint returns the endpoint with the given ID, or nil.
func (g *Guard) Endpoint(id EndpointID) Endpoint {
	g.check()
	i, found := slices.BinarySearchFunc(g.node.endpoints, id, compareEndpoint)
	if !found {
		return nil
	}
	return g.node.endpoints[i]
}

// EndpointIDs returns the IDs of all endpoints in ascending order.
func (g *Guard) EndpointIDs() []EndpointID {
	g.check()
	ids := make([]EndpointID, len(g.node.endpoints))
	for i, ep := range g.node.endpoints {
		ids[i] = ep.ID()
	}
	return ids
}

// Cluster resolves a concrete cluster path. Returns ErrEndpointNotFound or
// ErrClusterNotFound when either level is missing.
func (g *Guard) Cluster(path ConcreteClusterPath) (Cluster, error) {
	ep := g.Endpoint(path.Endpoint)
	if ep == nil {
		return nil, ErrEndpointNotFound
	}
	c := ep.Cluster(path.Cluster)
	if c == nil {
		return nil, ErrClusterNotFound
	}
	return c, nil
}

// Endpoints yields every endpoint selected by gp with the path narrowed to
// that endpoint. The cluster and leaf components are passed through.
func (g *Guard) Endpoints(gp GenericPath) iter.Seq2[GenericPath, Endpoint] {
	return func(yield func(GenericPath, Endpoint) bool) {
		g.check()
		for _, ep := range g.node.endpoints {
			id := ep.ID()
			if !gp.MatchesEndpoint(id) {
				continue
			}
			if !yield(message.NewGenericPath(&id, gp.Cluster, gp.Leaf), ep) {
				return
			}
		}
	}
}

// Clusters yields every cluster selected by gp, ascending by endpoint and
// then in registration order, with the path narrowed to that cluster.
func (g *Guard) Clusters(gp GenericPath) iter.Seq2[GenericPath, Cluster] {
	return func(yield func(GenericPath, Cluster) bool) {
		for epPath, ep := range g.Endpoints(gp) {
			for _, c := range ep.Clusters() {
				id := c.ID()
				if !gp.MatchesCluster(id) {
					continue
				}
				if !yield(message.NewGenericPath(epPath.Endpoint, &id, gp.Leaf), c) {
					return
				}
			}
		}
	}
}

// Attributes yields every attribute selected by gp along with its cluster.
func (g *Guard) Attributes(gp GenericPath) iter.Seq2[ConcreteAttributePath, Cluster] {
	return func(yield func(ConcreteAttributePath, Cluster) bool) {
		for _, c := range g.Clusters(gp) {
			for _, attr := range c.Attributes() {
				if !gp.MatchesLeaf(uint32(attr.ID)) {
					continue
				}
				path := ConcreteAttributePath{Endpoint: c.EndpointID(), Cluster: c.ID(), Attribute: attr.ID}
				if !yield(path, c) {
					return
				}
			}
		}
	}
}
