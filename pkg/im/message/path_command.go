package message

import "github.com/backkem/matter-im/pkg/tlv"

// CommandPathIB addresses a command. Endpoint and cluster may be wildcards
// (group invocations); the command id may not.
// Matter Core: Section 10.6.11
// Container type: List
type CommandPathIB struct {
	Endpoint *EndpointID `yaml:"endpoint,omitempty"` // Tag 0
	Cluster  *ClusterID  `yaml:"cluster,omitempty"`  // Tag 1
	Command  CommandID   `yaml:"command"`            // Tag 2
}

// NewCommandPath returns a concrete command path.
func NewCommandPath(endpoint EndpointID, cluster ClusterID, command CommandID) CommandPathIB {
	return CommandPathIB{Endpoint: &endpoint, Cluster: &cluster, Command: command}
}

// GenericPath widens the path into generic form.
func (p CommandPathIB) GenericPath() GenericPath {
	return GenericPath{
		Endpoint: clonePtr(p.Endpoint),
		Cluster:  clonePtr(p.Cluster),
		Leaf:     Ptr(uint32(p.Command)),
	}
}

func (p CommandPathIB) String() string {
	return p.GenericPath().String()
}

func (p *CommandPathIB) Encode(w *tlv.Writer) error {
	return p.EncodeWithTag(w, tlv.Anonymous())
}

func (p *CommandPathIB) EncodeWithTag(w *tlv.Writer, tag tlv.Tag) error {
	return listTable(
		optUintField(0, "endpoint", &p.Endpoint),
		optUintField(1, "cluster", &p.Cluster),
		uintField(2, "command", &p.Command),
	).encode(w, tag)
}

func (p *CommandPathIB) Decode(r *tlv.Reader) error {
	return decodeNext(r, p)
}

// DecodeFrom reads a command path. A path without a command id fails with
// ErrCommandNotFound.
func (p *CommandPathIB) DecodeFrom(r *tlv.Reader) error {
	*p = CommandPathIB{}
	var command *CommandID
	err := listTable(
		optUintField(0, "endpoint", &p.Endpoint),
		optUintField(1, "cluster", &p.Cluster),
		optUintField(2, "command", &command),
	).decode(r)
	if err != nil {
		return err
	}
	if command == nil {
		return ErrCommandNotFound
	}
	p.Command = *command
	return nil
}
