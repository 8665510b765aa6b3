package message

import (
	"fmt"

	"github.com/backkem/matter-im/pkg/tlv"
)

// CommandDataIB carries one command invocation or command response.
// Matter Core: Section 10.6.12
// Container type: Structure
type CommandDataIB struct {
	Path   CommandPathIB `yaml:"path"`          // Tag 0
	Fields EncodeValue   `yaml:"fields"`        // Tag 1
	Ref    *uint16       `yaml:"ref,omitempty"` // Tag 2
}

func (c *CommandDataIB) fields() fieldTable {
	return structTable(
		blockField(0, "path", &c.Path),
		valueField(1, "fields", &c.Fields, false),
		optUintField(2, "ref", &c.Ref),
	)
}

func (c *CommandDataIB) Encode(w *tlv.Writer) error {
	return c.EncodeWithTag(w, tlv.Anonymous())
}

func (c *CommandDataIB) EncodeWithTag(w *tlv.Writer, tag tlv.Tag) error {
	return c.fields().encode(w, tag)
}

func (c *CommandDataIB) Decode(r *tlv.Reader) error {
	return decodeNext(r, c)
}

func (c *CommandDataIB) DecodeFrom(r *tlv.Reader) error {
	*c = CommandDataIB{}
	return c.fields().decode(r)
}

// CommandStatusIB reports the status of one command invocation.
// Matter Core: Section 10.6.13
// Container type: Structure
type CommandStatusIB struct {
	Path   CommandPathIB `yaml:"path"`          // Tag 0
	Status StatusIB      `yaml:"status"`        // Tag 1
	Ref    *uint16       `yaml:"ref,omitempty"` // Tag 2
}

func (c *CommandStatusIB) fields() fieldTable {
	return structTable(
		blockField(0, "path", &c.Path),
		blockField(1, "status", &c.Status),
		optUintField(2, "ref", &c.Ref),
	)
}

func (c *CommandStatusIB) Encode(w *tlv.Writer) error {
	return c.EncodeWithTag(w, tlv.Anonymous())
}

func (c *CommandStatusIB) EncodeWithTag(w *tlv.Writer, tag tlv.Tag) error {
	return c.fields().encode(w, tag)
}

func (c *CommandStatusIB) Decode(r *tlv.Reader) error {
	return decodeNext(r, c)
}

func (c *CommandStatusIB) DecodeFrom(r *tlv.Reader) error {
	*c = CommandStatusIB{}
	return c.fields().decode(r)
}

// InvokeResponseKind discriminates the variants of InvokeResponseIB.
type InvokeResponseKind uint8

const (
	InvokeResponseCommand InvokeResponseKind = iota + 1
	InvokeResponseStatus
)

// InvokeResponseIB is either a command response or a command status.
// Matter Core: Section 10.6.14
// Container type: Structure
type InvokeResponseIB struct {
	kind    InvokeResponseKind
	command CommandDataIB   // Tag 0
	status  CommandStatusIB // Tag 1
}

// NewInvokeCommandResponse returns a response carrying command data.
func NewInvokeCommandResponse(endpoint EndpointID, cluster ClusterID, command CommandID, data EncodeValue) InvokeResponseIB {
	return InvokeResponseIB{
		kind:    InvokeResponseCommand,
		command: CommandDataIB{Path: NewCommandPath(endpoint, cluster, command), Fields: data},
	}
}

// NewInvokeStatusResponse returns a response carrying a status for path.
func NewInvokeStatusResponse(path CommandPathIB, status Status, clusterStatus *uint16) InvokeResponseIB {
	return InvokeResponseIB{
		kind: InvokeResponseStatus,
		status: CommandStatusIB{
			Path:   path,
			Status: StatusIB{Status: status, ClusterStatus: clonePtr(clusterStatus)},
		},
	}
}

// Kind returns the variant held by r.
func (r InvokeResponseIB) Kind() InvokeResponseKind {
	return r.kind
}

// Switch calls the handler matching the variant held by r.
func (r InvokeResponseIB) Switch(onCommand func(CommandDataIB) error, onStatus func(CommandStatusIB) error) error {
	switch r.kind {
	case InvokeResponseCommand:
		return onCommand(r.command)
	case InvokeResponseStatus:
		return onStatus(r.status)
	}
	return fmt.Errorf("%w: empty invoke response", ErrNoValue)
}

// WithRef returns a copy of r echoing the request's command reference.
func (r InvokeResponseIB) WithRef(ref *uint16) InvokeResponseIB {
	if r.kind == InvokeResponseCommand {
		r.command.Ref = clonePtr(ref)
	} else {
		r.status.Ref = clonePtr(ref)
	}
	return r
}

func (r InvokeResponseIB) MarshalYAML() (any, error) {
	switch r.kind {
	case InvokeResponseCommand:
		return map[string]any{"command": r.command}, nil
	case InvokeResponseStatus:
		return map[string]any{"status": r.status}, nil
	}
	return nil, nil
}

func (r *InvokeResponseIB) Encode(w *tlv.Writer) error {
	return r.EncodeWithTag(w, tlv.Anonymous())
}

func (r *InvokeResponseIB) EncodeWithTag(w *tlv.Writer, tag tlv.Tag) error {
	switch r.kind {
	case InvokeResponseCommand:
		return structTable(blockField(0, "command", &r.command)).encode(w, tag)
	case InvokeResponseStatus:
		return structTable(blockField(1, "status", &r.status)).encode(w, tag)
	}
	return fmt.Errorf("%w: command or status", ErrMissingField)
}

func (r *InvokeResponseIB) Decode(rd *tlv.Reader) error {
	return decodeNext(rd, r)
}

func (r *InvokeResponseIB) DecodeFrom(rd *tlv.Reader) error {
	*r = InvokeResponseIB{}
	var command *CommandDataIB
	var status *CommandStatusIB
	err := structTable(
		optBlockField(0, "command", &command),
		optBlockField(1, "status", &status),
	).decode(rd)
	if err != nil {
		return err
	}
	switch {
	case command != nil && status != nil:
		return fmt.Errorf("%w: invoke response holds both command and status", ErrInvalidData)
	case command != nil:
		r.kind, r.command = InvokeResponseCommand, *command
	case status != nil:
		r.kind, r.status = InvokeResponseStatus, *status
	default:
		return fmt.Errorf("%w: command or status", ErrMissingField)
	}
	return nil
}
