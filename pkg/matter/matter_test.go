package matter

import (
	"context"
	"errors"
	"testing"

	"github.com/backkem/matter-im/pkg/clusters/descriptor"
	"github.com/backkem/matter-im/pkg/clusters/onoff"
	"github.com/backkem/matter-im/pkg/clusters/userlabel"
	"github.com/backkem/matter-im/pkg/datamodel"
	"github.com/backkem/matter-im/pkg/im"
	"github.com/backkem/matter-im/pkg/im/message"
	"github.com/pion/logging"
)

func newTestDevice(t *testing.T) *Device {
	t.Helper()
	d, err := NewDevice(DeviceConfig{LoggerFactory: logging.NewDefaultLoggerFactory()})
	if err != nil {
		t.Fatalf("NewDevice failed: %v", err)
	}
	return d
}

// roundTrip sends m on x and decodes the reply.
func roundTrip(t *testing.T, x *im.Exchange, m message.Message) message.Message {
	t.Helper()
	payload, err := message.EncodeMessage(m)
	if err != nil {
		t.Fatal(err)
	}
	out, err := x.HandleMessage(context.Background(), m.Opcode(), payload)
	if err != nil {
		t.Fatalf("HandleMessage(%s) failed: %v", m.Opcode(), err)
	}
	if out == nil {
		t.Fatalf("no reply to %s", m.Opcode())
	}
	reply, err := message.DecodeMessage(out.Opcode, out.Payload)
	if err != nil {
		t.Fatal(err)
	}
	return reply
}

func TestNewDevice(t *testing.T) {
	d := newTestDevice(t)

	root := d.Endpoint(RootEndpointID)
	if root == nil {
		t.Fatal("root endpoint missing")
	}
	if root.Cluster(descriptor.ClusterID) == nil {
		t.Error("root endpoint should have a Descriptor cluster")
	}
	dts := root.DeviceTypes()
	if len(dts) != 1 || dts[0].DeviceTypeID != datamodel.DeviceTypeRootNode || dts[0].Revision != RootDeviceTypeRevision {
		t.Errorf("root device types = %v", dts)
	}
	if d.Engine() == nil || d.Engine().Node() != d.Node() {
		t.Error("engine should serve the device node")
	}
}

func TestNewDevice_RootDeviceTypes(t *testing.T) {
	aggregator := datamodel.DeviceTypeEntry{DeviceTypeID: 0x000E, Revision: 1}
	d, err := NewDevice(DeviceConfig{RootDeviceTypes: []datamodel.DeviceTypeEntry{aggregator}})
	if err != nil {
		t.Fatal(err)
	}
	if dts := d.Endpoint(RootEndpointID).DeviceTypes(); len(dts) != 1 || dts[0] != aggregator {
		t.Errorf("root device types = %v", dts)
	}
}

func TestDevice_AddEndpoint(t *testing.T) {
	d := newTestDevice(t)

	ep := NewEndpoint(1).
		WithDeviceType(datamodel.DeviceTypeOnOffLight, OnOffLightRevision).
		AddCluster(onoff.New(onoff.Config{EndpointID: 1}))
	if err := d.AddEndpoint(ep); err != nil {
		t.Fatalf("AddEndpoint failed: %v", err)
	}
	if ep.Cluster(descriptor.ClusterID) == nil {
		t.Error("a Descriptor cluster should be added")
	}
	if d.Endpoint(1) != ep {
		t.Error("Endpoint(1) should return the added endpoint")
	}

	if err := d.AddEndpoint(NewOnOffLight(1, LightConfig{})); !errors.Is(err, ErrEndpointExists) {
		t.Errorf("expected ErrEndpointExists, got %v", err)
	}
	if err := d.AddEndpoint(NewEndpoint(RootEndpointID)); !errors.Is(err, ErrRootEndpointReserved) {
		t.Errorf("expected ErrRootEndpointReserved, got %v", err)
	}

	dup := NewEndpoint(2).
		AddCluster(onoff.New(onoff.Config{EndpointID: 2})).
		AddCluster(onoff.New(onoff.Config{EndpointID: 2}))
	if err := d.AddEndpoint(dup); !errors.Is(err, datamodel.ErrClusterExists) {
		t.Errorf("expected ErrClusterExists, got %v", err)
	}
	if d.Endpoint(2) != nil {
		t.Error("a failed endpoint must not be added")
	}
}

func TestDevice_RemoveEndpoint(t *testing.T) {
	d := newTestDevice(t)
	if err := d.AddEndpoint(NewOnOffLight(1, LightConfig{})); err != nil {
		t.Fatal(err)
	}

	if err := d.RemoveEndpoint(1); err != nil {
		t.Fatalf("RemoveEndpoint failed: %v", err)
	}
	if d.Endpoint(1) != nil {
		t.Error("endpoint 1 still present")
	}
	if err := d.RemoveEndpoint(1); !errors.Is(err, ErrEndpointNotFound) {
		t.Errorf("expected ErrEndpointNotFound, got %v", err)
	}
	if err := d.RemoveEndpoint(RootEndpointID); !errors.Is(err, ErrRootEndpointReserved) {
		t.Errorf("expected ErrRootEndpointReserved, got %v", err)
	}
}

func TestNewOnOffLight(t *testing.T) {
	ep := NewOnOffLight(3, LightConfig{Labels: []userlabel.Label{{Label: "room", Value: "hall"}}})
	if err := ep.Err(); err != nil {
		t.Fatal(err)
	}
	for _, id := range []datamodel.ClusterID{descriptor.ClusterID, onoff.ClusterID, userlabel.ClusterID} {
		if ep.Cluster(id) == nil {
			t.Errorf("cluster 0x%04X missing", uint32(id))
		}
	}
	oo := ep.Cluster(onoff.ClusterID).(*onoff.Cluster)
	if oo.EndpointID() != 3 {
		t.Errorf("On/Off cluster on endpoint %d", oo.EndpointID())
	}
	if labels := ep.Cluster(userlabel.ClusterID).(*userlabel.Cluster).Labels(); len(labels) != 1 || labels[0].Value != "hall" {
		t.Errorf("labels = %v", labels)
	}
}

func TestDevice_Interaction(t *testing.T) {
	d := newTestDevice(t)
	for _, id := range []datamodel.EndpointID{1, 2} {
		if err := d.AddEndpoint(NewOnOffLight(id, LightConfig{})); err != nil {
			t.Fatal(err)
		}
	}
	x := d.Engine().NewExchange()

	// Root PartsList covers both lights.
	parts := message.ConcreteAttributePath(RootEndpointID, descriptor.ClusterID, descriptor.AttrPartsList)
	rd := roundTrip(t, x, &message.ReadRequestMessage{AttributeRequests: []message.AttributePathIB{parts}}).(*message.ReportDataMessage)
	elem, ok := rd.AttributeReports[0].UnwrapData().Data.Element()
	if !ok {
		t.Fatal("PartsList has no data")
	}
	var got []uint64
	it := elem.Members()
	for it.Next() {
		v, err := it.Element().Uint()
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v)
	}
	if it.Err() != nil || len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("PartsList = %v (%v)", got, it.Err())
	}

	// Toggle endpoint 2, then read every OnOff attribute.
	invoke := &message.InvokeRequestMessage{
		InvokeRequests: []message.CommandDataIB{{Path: message.NewCommandPath(2, onoff.ClusterID, onoff.CmdToggle)}},
	}
	if _, ok := roundTrip(t, x, invoke).(*message.InvokeResponseMessage); !ok {
		t.Fatal("expected an InvokeResponse")
	}

	all := message.AttributePathIB{Cluster: message.Ptr(onoff.ClusterID), Attribute: message.Ptr(onoff.AttrOnOff)}
	rd = roundTrip(t, x, &message.ReadRequestMessage{AttributeRequests: []message.AttributePathIB{all}}).(*message.ReportDataMessage)
	if len(rd.AttributeReports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(rd.AttributeReports))
	}
	for _, r := range rd.AttributeReports {
		data := r.UnwrapData()
		e, _ := data.Data.Element()
		on, err := e.Bool()
		if err != nil {
			t.Fatal(err)
		}
		if want := *data.Path.Endpoint == 2; on != want {
			t.Errorf("endpoint %d OnOff = %v, want %v", *data.Path.Endpoint, on, want)
		}
	}
}

func TestDevice_LimitsPayload(t *testing.T) {
	d, err := NewDevice(DeviceConfig{MaxPayload: 128})
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []datamodel.EndpointID{1, 2, 3, 4} {
		if err := d.AddEndpoint(NewOnOffLight(id, LightConfig{})); err != nil {
			t.Fatal(err)
		}
	}

	x := d.Engine().NewExchange()
	wildcard := message.AttributePathIB{}
	payload, err := message.EncodeMessage(&message.ReadRequestMessage{AttributeRequests: []message.AttributePathIB{wildcard}})
	if err != nil {
		t.Fatal(err)
	}
	out, err := x.HandleMessage(context.Background(), message.OpcodeReadRequest, payload)
	if err != nil {
		t.Fatal(err)
	}
	if x.Pending() == 0 {
		t.Error("a wildcard read of four lights should not fit one 128-byte chunk")
	}
	if out.Opcode != message.OpcodeReportData {
		t.Errorf("reply = %s, want ReportData", out.Opcode)
	}
}
