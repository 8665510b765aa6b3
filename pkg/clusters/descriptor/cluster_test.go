package descriptor

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/backkem/matter-im/pkg/datamodel"
	"github.com/backkem/matter-im/pkg/im/message"
	"github.com/backkem/matter-im/pkg/tlv"
	"github.com/pion/logging"
)

type captureEncoder struct {
	values []message.EncodeValue
}

func (e *captureEncoder) Encode(v message.EncodeValue) error {
	e.values = append(e.values, v)
	return nil
}

// setupNode creates endpoint 0 (root node) and endpoints 1 and 2 (lights),
// each with a Descriptor cluster. Endpoint 1 also carries a second cluster.
func setupNode(t *testing.T, lf logging.LoggerFactory) *datamodel.Node {
	t.Helper()
	node := datamodel.NewNode()

	ep0 := datamodel.NewEndpoint(0, datamodel.DeviceTypeEntry{DeviceTypeID: datamodel.DeviceTypeRootNode, Revision: 1})
	ep0.AddCluster(New(Config{EndpointID: 0, LoggerFactory: lf}))

	ep1 := datamodel.NewEndpoint(1, datamodel.DeviceTypeEntry{DeviceTypeID: datamodel.DeviceTypeOnOffLight, Revision: 3})
	ep1.AddCluster(New(Config{EndpointID: 1, LoggerFactory: lf}))
	ep1.AddCluster(datamodelStub{id: 0x0006, ep: 1})

	ep2 := datamodel.NewEndpoint(2, datamodel.DeviceTypeEntry{DeviceTypeID: datamodel.DeviceTypeOnOffLight, Revision: 3})
	ep2.AddCluster(New(Config{EndpointID: 2, LoggerFactory: lf}))

	for _, ep := range []*datamodel.BasicEndpoint{ep2, ep1, ep0} {
		if err := node.AddEndpoint(ep); err != nil {
			t.Fatal(err)
		}
	}
	return node
}

// datamodelStub is a bare cluster used only to appear in the ServerList.
type datamodelStub struct {
	datamodel.Cluster
	id datamodel.ClusterID
	ep datamodel.EndpointID
}

func (s datamodelStub) ID() datamodel.ClusterID { return s.id }
func (s datamodelStub) EndpointID() datamodel.EndpointID { return s.ep }

// readEncoded reads one attribute and encodes it while the guard is held.
func readEncoded(t *testing.T, node *datamodel.Node, ep datamodel.EndpointID, attr datamodel.AttributeID) []byte {
	t.Helper()
	g := node.ReadGuard()
	defer g.Release()

	c, err := g.Cluster(datamodel.ConcreteClusterPath{Endpoint: ep, Cluster: ClusterID})
	if err != nil {
		t.Fatal(err)
	}
	enc := &captureEncoder{}
	req := datamodel.ReadAttributeRequest{
		Path:  datamodel.ConcreteAttributePath{Endpoint: ep, Cluster: ClusterID, Attribute: attr},
		Guard: g,
	}
	if err := c.ReadAttribute(context.Background(), req, enc); err != nil {
		t.Fatalf("ReadAttribute(%d, 0x%04x) failed: %v", ep, attr, err)
	}
	if len(enc.values) != 1 {
		t.Fatalf("ReadAttribute(%d, 0x%04x) encoded %d values", ep, attr, len(enc.values))
	}
	var buf bytes.Buffer
	if err := enc.values[0].EncodeTo(tlv.NewWriter(&buf), tlv.Anonymous()); err != nil {
		t.Fatalf("EncodeTo failed: %v", err)
	}
	return buf.Bytes()
}

func TestDescriptor_Attributes(t *testing.T) {
	node := setupNode(t, nil)

	tests := []struct {
		name string
		ep   datamodel.EndpointID
		attr datamodel.AttributeID
		want []byte
	}{
		{
			name: "DeviceTypeList root",
			ep:   0,
			attr: AttrDeviceTypeList,
			want: []byte{0x16, 0x15, 0x24, 0x00, 0x16, 0x24, 0x01, 0x01, 0x18, 0x18},
		},
		{
			name: "DeviceTypeList light",
			ep:   1,
			attr: AttrDeviceTypeList,
			want: []byte{0x16, 0x15, 0x25, 0x00, 0x00, 0x01, 0x24, 0x01, 0x03, 0x18, 0x18},
		},
		{
			name: "ServerList root",
			ep:   0,
			attr: AttrServerList,
			want: []byte{0x16, 0x04, 0x1D, 0x18},
		},
		{
			name: "ServerList light",
			ep:   1,
			attr: AttrServerList,
			want: []byte{0x16, 0x04, 0x1D, 0x04, 0x06, 0x18},
		},
		{
			name: "ClientList",
			ep:   1,
			attr: AttrClientList,
			want: []byte{0x16, 0x18},
		},
		{
			name: "PartsList root",
			ep:   0,
			attr: AttrPartsList,
			want: []byte{0x16, 0x04, 0x01, 0x04, 0x02, 0x18},
		},
		{
			name: "PartsList non-root",
			ep:   2,
			attr: AttrPartsList,
			want: []byte{0x16, 0x18},
		},
		{
			name: "ClusterRevision",
			ep:   0,
			attr: datamodel.GlobalAttrClusterRevision,
			want: []byte{0x04, byte(ClusterRevision)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readEncoded(t, node, tt.ep, tt.attr)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("encoded = %x, want %x", got, tt.want)
			}
		})
	}
}

func TestDescriptor_PartsListFollowsTree(t *testing.T) {
	node := setupNode(t, nil)
	if err := node.AddEndpoint(datamodel.NewEndpoint(7)); err != nil {
		t.Fatal(err)
	}
	if err := node.RemoveEndpoint(1); err != nil {
		t.Fatal(err)
	}

	got := readEncoded(t, node, 0, AttrPartsList)
	want := []byte{0x16, 0x04, 0x02, 0x04, 0x07, 0x18}
	if !bytes.Equal(got, want) {
		t.Errorf("PartsList = %x, want %x", got, want)
	}
}

func TestDescriptor_UnknownAttributeLogged(t *testing.T) {
	var logs bytes.Buffer
	lf := logging.NewDefaultLoggerFactory()
	lf.Writer = &logs

	c := New(Config{EndpointID: 0, LoggerFactory: lf})
	enc := &captureEncoder{}
	req := datamodel.ReadAttributeRequest{Path: c.AttributePath(0x0042)}
	if err := c.ReadAttribute(context.Background(), req, enc); err != nil {
		t.Fatalf("ReadAttribute failed: %v", err)
	}
	if len(enc.values) != 0 {
		t.Errorf("encoded %d values for unknown attribute, want 0", len(enc.values))
	}
	if !strings.Contains(logs.String(), "0x0042") {
		t.Errorf("log output %q does not mention the attribute", logs.String())
	}
}

func TestDescriptor_ReadOnly(t *testing.T) {
	c := New(Config{EndpointID: 0})
	err := c.WriteAttribute(context.Background(), datamodel.WriteAttributeRequest{Path: c.AttributePath(AttrPartsList)}, tlv.Element{})
	if err != datamodel.ErrUnsupportedWrite {
		t.Errorf("WriteAttribute = %v, want ErrUnsupportedWrite", err)
	}
	if _, err := c.InvokeCommand(context.Background(), datamodel.InvokeRequest{}, tlv.Element{}); err != datamodel.ErrUnsupportedCommand {
		t.Errorf("InvokeCommand = %v, want ErrUnsupportedCommand", err)
	}
	attrs := c.Attributes()
	if len(attrs) != 9 {
		t.Errorf("len(Attributes()) = %d, want 9", len(attrs))
	}
}
