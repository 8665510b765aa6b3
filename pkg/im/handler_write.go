package im

import (
	"context"
	"fmt"

	"github.com/backkem/matter-im/pkg/datamodel"
	"github.com/backkem/matter-im/pkg/im/message"
	"github.com/backkem/matter-im/pkg/tlv"
)

// handleWrite assembles a possibly chunked WriteRequest and applies it once
// the final chunk arrives. Intermediate chunks are acknowledged with
// StatusResponse(Success).
// Matter Core: Section 8.7 "Write Interaction"
func (x *Exchange) handleWrite(ctx context.Context, req *message.WriteRequestMessage, timed bool) (*Outbound, error) {
	if !x.assembler.IsAssembling() && req.IsTimed() != timed {
		if x.log != nil {
			x.log.Warnf("write: timedRequest=%v but timed interaction armed=%v", req.IsTimed(), timed)
		}
		return x.statusResponse(message.StatusTimedRequestMismatch)
	}

	full, done, err := x.assembler.AddWriteRequest(req)
	if err != nil {
		x.abort()
		return x.statusResponse(ErrorToStatus(err))
	}
	if !done {
		return x.statusResponse(message.StatusSuccess)
	}

	statuses, err := x.engine.write(ctx, full)
	if err != nil {
		return nil, err
	}
	if full.SuppressResponse != nil && *full.SuppressResponse {
		return nil, nil
	}
	return x.send(&message.WriteResponseMessage{WriteResponses: statuses})
}

// write applies every block of req under a write guard. Each block gets its
// own status; a failing block does not stop its siblings.
func (e *Engine) write(ctx context.Context, req *message.WriteRequestMessage) ([]message.AttributeStatusIB, error) {
	g := e.node.WriteGuard()
	defer g.Release()

	statuses := make([]message.AttributeStatusIB, 0, len(req.WriteRequests))
	for _, data := range req.WriteRequests {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := e.writeAttribute(ctx, g, data, req.IsTimed())
		if err != nil && e.log != nil {
			e.log.Debugf("write %s: %v", data.Path, err)
		}
		statuses = append(statuses, message.AttributeStatusIB{Path: data.Path, Status: StatusIBFor(err)})
	}
	return statuses, nil
}

func (e *Engine) writeAttribute(ctx context.Context, g *datamodel.Guard, data message.AttributeDataIB, timed bool) error {
	if data.Path.Endpoint == nil || data.Path.Cluster == nil || data.Path.Attribute == nil {
		return fmt.Errorf("%w: %s", message.ErrInvalidPath, data.Path)
	}
	path := datamodel.ConcreteAttributePath{
		Endpoint:  *data.Path.Endpoint,
		Cluster:   *data.Path.Cluster,
		Attribute: *data.Path.Attribute,
	}

	c, err := g.Cluster(path.ClusterPath())
	if err != nil {
		return err
	}
	entry := datamodel.FindAttribute(c.Attributes(), path.Attribute)
	switch {
	case entry == nil:
		return fmt.Errorf("%w: %s", datamodel.ErrUnsupportedAttribute, path)
	case !entry.IsWritable():
		return fmt.Errorf("%w: %s", datamodel.ErrUnsupportedWrite, path)
	case entry.RequiresTimed() && !timed:
		return fmt.Errorf("%w: %s", datamodel.ErrTimedRequired, path)
	case data.DataVersion != nil && *data.DataVersion != c.DataVersion():
		return fmt.Errorf("%w: %s has %d, request has %d", datamodel.ErrInvalidDataVersion, path, c.DataVersion(), *data.DataVersion)
	}

	elem, ok := data.Data.Element()
	if !ok {
		return fmt.Errorf("%w: no data for %s", message.ErrInvalidData, path)
	}
	wreq := datamodel.WriteAttributeRequest{Path: path, DataVersion: data.DataVersion, Timed: timed}

	if lw, ok := c.(datamodel.ListWriter); ok && entry.IsList() {
		return message.AttrListWrite(data.Path.ListIndex, elem, func(op message.ListOperation, item tlv.Element) error {
			return lw.WriteListItem(ctx, wreq, op, item)
		})
	}
	if data.Path.ListIndex != nil {
		return fmt.Errorf("%w: list index on %s", ErrListIndexNotAllowed, path)
	}
	return c.WriteAttribute(ctx, wreq, elem)
}
