package im

import (
	"context"
	"fmt"

	"github.com/backkem/matter-im/pkg/datamodel"
	"github.com/backkem/matter-im/pkg/im/message"
)

// handleRead answers a ReadRequest with one or more ReportData chunks. The
// last chunk suppresses the peer's StatusResponse.
// Matter Core: Section 8.4 "Read Interaction"
func (x *Exchange) handleRead(ctx context.Context, req *message.ReadRequestMessage) (*Outbound, error) {
	chunks, err := x.engine.report(ctx, req, nil, message.Ptr(true))
	if err != nil {
		return nil, err
	}
	return x.queue(chunks...)
}

// handleSubscribe primes a subscription with a report of the requested
// paths and sends SubscribeResponse once the peer has acknowledged the last
// chunk. The subscription is established when SubscribeResponse is sent.
// Matter Core: Section 8.5 "Subscribe Interaction"
func (x *Exchange) handleSubscribe(ctx context.Context, req *message.SubscribeRequestMessage) (*Outbound, error) {
	if req.MinIntervalFloor > req.MaxIntervalCeiling {
		if x.log != nil {
			x.log.Warnf("subscribe: %v (%d > %d)", ErrInvalidInterval, req.MinIntervalFloor, req.MaxIntervalCeiling)
		}
		return x.statusResponse(ErrorToStatus(ErrInvalidInterval))
	}

	id := x.engine.allocateSubscriptionID()
	chunks, err := x.engine.report(ctx, req.ToReadRequest(), &id, nil)
	if err != nil {
		return nil, err
	}

	x.keepSubscriptions = req.KeepSubscriptions
	x.subscribe = &Subscription{
		ID:                 id,
		MinIntervalFloor:   req.MinIntervalFloor,
		MaxInterval:        req.MaxIntervalCeiling,
		AttributeRequests:  req.AttributeRequests,
		DataVersionFilters: req.DataVersionFilters,
	}
	resp := &message.SubscribeResponseMessage{
		SubscriptionID: id,
		MaxInterval:    req.MaxIntervalCeiling,
	}
	return x.queue(append(chunks, resp)...)
}

// report builds the attribute reports for req under a read guard and splits
// them into ReportData chunks.
func (e *Engine) report(ctx context.Context, req *message.ReadRequestMessage, subID *message.SubscriptionID, suppress *bool) ([]message.Message, error) {
	reports, err := e.readAttributes(ctx, req)
	if err != nil {
		return nil, err
	}

	chunks, err := e.fragmenter.FragmentReportData(&message.ReportDataMessage{
		SubscriptionID:   subID,
		AttributeReports: reports,
		SuppressResponse: suppress,
	})
	if err != nil {
		return nil, err
	}

	msgs := make([]message.Message, len(chunks))
	for i, c := range chunks {
		msgs[i] = c
	}
	if e.log != nil {
		e.log.Debugf("read: %d paths, %d reports, %d chunks", len(req.AttributeRequests), len(reports), len(chunks))
	}
	return msgs, nil
}

func (e *Engine) readAttributes(ctx context.Context, req *message.ReadRequestMessage) ([]message.AttributeReportIB, error) {
	g := e.node.ReadGuard()
	defer g.Release()

	reports := []message.AttributeReportIB{}
	for _, p := range req.AttributeRequests {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		reports = e.readPath(ctx, g, p, req.DataVersionFilters, reports)
	}
	return reports, nil
}

// readPath appends the reports for one requested path. A concrete path
// that addresses nothing yields a status report; a wildcard path expands
// silently over what exists.
func (e *Engine) readPath(ctx context.Context, g *datamodel.Guard, p message.AttributePathIB, filters []message.DataVersionFilterIB, reports []message.AttributeReportIB) []message.AttributeReportIB {
	if p.ListIndex != nil {
		return append(reports, message.NewAttributeStatusReport(p, message.StatusIB{Status: message.StatusInvalidAction}))
	}

	gp := p.GenericPath()
	if !gp.IsWildcard() {
		path := datamodel.ConcreteAttributePath{
			Endpoint:  *p.Endpoint,
			Cluster:   *p.Cluster,
			Attribute: *p.Attribute,
		}
		c, err := g.Cluster(path.ClusterPath())
		if err == nil && datamodel.FindAttribute(c.Attributes(), path.Attribute) == nil {
			err = fmt.Errorf("%w: %s", datamodel.ErrUnsupportedAttribute, path)
		}
		if err != nil {
			return append(reports, message.NewAttributeStatusReport(path.IB(), StatusIBFor(err)))
		}
		if filtered(filters, c) {
			return reports
		}
		return append(reports, e.readAttribute(ctx, g, c, path))
	}

	for path, c := range g.Attributes(gp) {
		if filtered(filters, c) {
			continue
		}
		reports = append(reports, e.readAttribute(ctx, g, c, path))
	}
	return reports
}

// readAttribute reads one attribute and materializes the value while the
// guard is held. A failing read becomes a status report.
func (e *Engine) readAttribute(ctx context.Context, g *datamodel.Guard, c datamodel.Cluster, path datamodel.ConcreteAttributePath) message.AttributeReportIB {
	var enc attributeEncoder
	dv := c.DataVersion()
	err := c.ReadAttribute(ctx, datamodel.ReadAttributeRequest{Path: path, Guard: g}, &enc)
	if err == nil {
		var report message.AttributeReportIB
		report, _, err = materialize(message.NewAttributeReport(dv, path.IB(), enc.value))
		if err == nil {
			return report
		}
	}

	if e.log != nil {
		e.log.Debugf("read %s: %v", path, err)
	}
	return message.NewAttributeStatusReport(path.IB(), StatusIBFor(err))
}

// filtered reports whether a data version filter names c at its current
// version.
func filtered(filters []message.DataVersionFilterIB, c datamodel.Cluster) bool {
	for _, f := range filters {
		if f.Path.Endpoint == c.EndpointID() && f.Path.Cluster == c.ID() && f.DataVersion == c.DataVersion() {
			return true
		}
	}
	return false
}

// attributeEncoder captures the value a cluster encodes for one read.
type attributeEncoder struct {
	value message.EncodeValue
	set   bool
}

func (a *attributeEncoder) Encode(v message.EncodeValue) error {
	if a.set {
		return ErrValueAlreadyEncoded
	}
	a.value, a.set = v, true
	return nil
}
