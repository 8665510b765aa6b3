package im

import (
	"context"
	"fmt"

	"github.com/backkem/matter-im/pkg/datamodel"
	"github.com/backkem/matter-im/pkg/im/message"
)

// handleInvoke runs every command of an InvokeRequest and answers with one
// or more InvokeResponse chunks, or nothing when the request suppresses the
// response.
// Matter Core: Section 8.8 "Invoke Interaction"
func (x *Exchange) handleInvoke(ctx context.Context, req *message.InvokeRequestMessage, timed bool) (*Outbound, error) {
	if req.IsTimed() != timed {
		if x.log != nil {
			x.log.Warnf("invoke: timedRequest=%v but timed interaction armed=%v", req.IsTimed(), timed)
		}
		return x.statusResponse(message.StatusTimedRequestMismatch)
	}

	chunks, err := x.engine.invoke(ctx, req)
	if err != nil {
		return nil, err
	}
	if req.SuppressResponse != nil && *req.SuppressResponse {
		return nil, nil
	}

	msgs := make([]message.Message, len(chunks))
	for i, c := range chunks {
		msgs[i] = c
	}
	return x.queue(msgs...)
}

// invoke runs the commands under a write guard. Response payloads are
// encoded before the guard is released.
func (e *Engine) invoke(ctx context.Context, req *message.InvokeRequestMessage) ([]*message.InvokeResponseMessage, error) {
	g := e.node.WriteGuard()
	defer g.Release()

	responses := make([]message.InvokeResponseIB, 0, len(req.InvokeRequests))
	for _, cmd := range req.InvokeRequests {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		responses = append(responses, e.invokeCommand(ctx, g, cmd, req.IsTimed()).WithRef(cmd.Ref))
	}
	return e.fragmenter.FragmentInvokeResponse(&message.InvokeResponseMessage{InvokeResponses: responses})
}

func (e *Engine) invokeCommand(ctx context.Context, g *datamodel.Guard, cmd message.CommandDataIB, timed bool) message.InvokeResponseIB {
	resp, err := e.runCommand(ctx, g, cmd, timed)
	if err == nil {
		if resp == nil {
			return message.NewInvokeStatusResponse(cmd.Path, message.StatusSuccess, nil)
		}
		var r message.InvokeResponseIB
		r, _, err = materialize(message.NewInvokeCommandResponse(*cmd.Path.Endpoint, *cmd.Path.Cluster, resp.ID, resp.Fields))
		if err == nil {
			return r
		}
	}

	if e.log != nil {
		e.log.Debugf("invoke %s: %v", cmd.Path, err)
	}
	sib := StatusIBFor(err)
	return message.NewInvokeStatusResponse(cmd.Path, sib.Status, sib.ClusterStatus)
}

func (e *Engine) runCommand(ctx context.Context, g *datamodel.Guard, cmd message.CommandDataIB, timed bool) (*datamodel.CommandResponse, error) {
	if cmd.Path.Endpoint == nil || cmd.Path.Cluster == nil {
		return nil, fmt.Errorf("%w: %s", message.ErrInvalidPath, cmd.Path)
	}
	path := datamodel.ConcreteCommandPath{
		Endpoint: *cmd.Path.Endpoint,
		Cluster:  *cmd.Path.Cluster,
		Command:  cmd.Path.Command,
	}

	c, err := g.Cluster(path.ClusterPath())
	if err != nil {
		return nil, err
	}
	entry := datamodel.FindCommand(c.AcceptedCommands(), path.Command)
	switch {
	case entry == nil:
		return nil, fmt.Errorf("%w: %s", datamodel.ErrUnsupportedCommand, path)
	case entry.RequiresTimed() && !timed:
		return nil, fmt.Errorf("%w: %s", datamodel.ErrTimedRequired, path)
	}

	fields, _ := cmd.Fields.Element()
	return c.InvokeCommand(ctx, datamodel.InvokeRequest{Path: path, Timed: timed}, fields)
}
