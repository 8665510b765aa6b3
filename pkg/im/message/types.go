// Package message implements the Interaction Model wire layer: paths,
// interaction blocks (IBs), message envelopes and the list write decision
// procedure.
package message

// Identifier types used throughout Interaction Model messages.
type (
	// NodeID is a 64-bit node identifier.
	NodeID uint64

	// EndpointID is a 16-bit endpoint identifier.
	EndpointID uint16

	// ClusterID is a 32-bit cluster identifier.
	ClusterID uint32

	// AttributeID is a 16-bit attribute identifier.
	AttributeID uint16

	// CommandID is a 32-bit command identifier.
	CommandID uint32

	// EventID is a 32-bit event identifier.
	EventID uint32

	// ListIndex addresses one element of a list attribute.
	ListIndex uint16

	// DataVersion is the per-cluster version stamped on attribute data.
	DataVersion uint32

	// EventNumber is a 64-bit monotonically increasing event counter.
	EventNumber uint64

	// SubscriptionID is a 32-bit subscription identifier.
	SubscriptionID uint32
)

// Ptr returns a pointer to v. Handy for optional fields.
func Ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
