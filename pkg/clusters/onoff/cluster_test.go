package onoff

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/backkem/matter-im/pkg/datamodel"
	"github.com/backkem/matter-im/pkg/im/message"
	"github.com/backkem/matter-im/pkg/tlv"
)

type captureEncoder struct {
	values []message.EncodeValue
}

func (e *captureEncoder) Encode(v message.EncodeValue) error {
	e.values = append(e.values, v)
	return nil
}

// createTestCluster creates a cluster on endpoint 1.
func createTestCluster(features Feature) *Cluster {
	return New(Config{EndpointID: 1, FeatureMap: features})
}

// readAttr reads an attribute and returns its encoding.
func readAttr(t *testing.T, c *Cluster, attr datamodel.AttributeID) []byte {
	t.Helper()
	enc := &captureEncoder{}
	req := datamodel.ReadAttributeRequest{Path: c.AttributePath(attr)}
	if err := c.ReadAttribute(context.Background(), req, enc); err != nil {
		t.Fatalf("ReadAttribute(0x%04x) failed: %v", attr, err)
	}
	if len(enc.values) != 1 {
		t.Fatalf("ReadAttribute(0x%04x) encoded %d values", attr, len(enc.values))
	}
	var buf bytes.Buffer
	if err := enc.values[0].EncodeTo(tlv.NewWriter(&buf), tlv.Anonymous()); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func element(t *testing.T, raw ...byte) tlv.Element {
	t.Helper()
	e, err := tlv.ParseElement(raw)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func invoke(t *testing.T, c *Cluster, cmd datamodel.CommandID) error {
	t.Helper()
	req := datamodel.InvokeRequest{
		Path: datamodel.ConcreteCommandPath{Endpoint: 1, Cluster: ClusterID, Command: cmd},
	}
	resp, err := c.InvokeCommand(context.Background(), req, element(t, 0x15, 0x18))
	if resp != nil {
		t.Errorf("command 0x%02x returned a response", cmd)
	}
	return err
}

func write(c *Cluster, attr datamodel.AttributeID, data tlv.Element) error {
	req := datamodel.WriteAttributeRequest{Path: c.AttributePath(attr)}
	return c.WriteAttribute(context.Background(), req, data)
}

func TestCluster_Identity(t *testing.T) {
	c := createTestCluster(0)
	if c.ID() != ClusterID {
		t.Errorf("ID() = 0x%04X, want 0x%04X", c.ID(), ClusterID)
	}
	if c.ClusterRevision() != ClusterRevision {
		t.Errorf("ClusterRevision() = %d, want %d", c.ClusterRevision(), ClusterRevision)
	}
}

func TestReadOnOff_InitialState(t *testing.T) {
	if got := readAttr(t, createTestCluster(0), AttrOnOff); !bytes.Equal(got, []byte{0x08}) {
		t.Errorf("OnOff = %x, want 08 (false)", got)
	}
	c := New(Config{EndpointID: 1, InitialOnOff: true})
	if got := readAttr(t, c, AttrOnOff); !bytes.Equal(got, []byte{0x09}) {
		t.Errorf("OnOff = %x, want 09 (true)", got)
	}
}

func TestCommands(t *testing.T) {
	c := createTestCluster(0)
	dv := c.DataVersion()

	steps := []struct {
		cmd  datamodel.CommandID
		want bool
	}{
		{CmdOn, true},
		{CmdOff, false},
		{CmdToggle, true},
		{CmdToggle, false},
	}
	for _, s := range steps {
		if err := invoke(t, c, s.cmd); err != nil {
			t.Fatalf("command 0x%02x failed: %v", s.cmd, err)
		}
		if c.OnOff() != s.want {
			t.Errorf("after command 0x%02x OnOff = %v, want %v", s.cmd, c.OnOff(), s.want)
		}
	}
	if c.DataVersion() != dv+4 {
		t.Errorf("DataVersion() = %d, want %d", c.DataVersion(), dv+4)
	}

	if err := invoke(t, c, 0x40); !errors.Is(err, datamodel.ErrUnsupportedCommand) {
		t.Errorf("unknown command err = %v", err)
	}
}

func TestOnCommand_OffOnlyFeature(t *testing.T) {
	c := createTestCluster(FeatureOffOnly)
	if err := invoke(t, c, CmdOn); !errors.Is(err, datamodel.ErrUnsupportedCommand) {
		t.Errorf("On with OffOnly err = %v", err)
	}
	if c.OnOff() {
		t.Error("OnOff changed despite OffOnly")
	}
}

func TestStateChangeCallback(t *testing.T) {
	var calls []bool
	c := New(Config{
		EndpointID: 3,
		OnStateChange: func(ep datamodel.EndpointID, on bool) {
			if ep != 3 {
				t.Errorf("callback endpoint = %d, want 3", ep)
			}
			calls = append(calls, on)
		},
	})

	c.SetOnOff(true)
	c.SetOnOff(true)
	c.SetOnOff(false)

	if len(calls) != 2 || !calls[0] || calls[1] {
		t.Errorf("callbacks = %v, want [true false]", calls)
	}
}

func TestWriteOnOff(t *testing.T) {
	c := createTestCluster(0)
	if err := write(c, AttrOnOff, element(t, 0x09)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !c.OnOff() {
		t.Error("OnOff = false after writing true")
	}
	if err := write(c, AttrOnOff, element(t, 0x04, 0x01)); !errors.Is(err, datamodel.ErrInvalidDataType) {
		t.Errorf("write uint err = %v, want ErrInvalidDataType", err)
	}
	if err := write(c, AttrOnTime, element(t, 0x04, 0x01)); !errors.Is(err, datamodel.ErrUnsupportedAttribute) {
		t.Errorf("write OnTime without lighting err = %v", err)
	}
}

func TestAttributes_FeatureDependent(t *testing.T) {
	plain := createTestCluster(0)
	if n := len(plain.Attributes()); n != 6 {
		t.Errorf("no lighting: %d attributes, want 6", n)
	}
	if datamodel.FindAttribute(plain.Attributes(), AttrOnTime) != nil {
		t.Error("OnTime present without lighting")
	}

	lit := createTestCluster(FeatureLighting)
	if n := len(lit.Attributes()); n != 10 {
		t.Errorf("lighting: %d attributes, want 10", n)
	}
	entry := datamodel.FindAttribute(lit.Attributes(), AttrStartUpOnOff)
	if entry == nil || !entry.IsNullable() || !entry.IsWritable() {
		t.Errorf("StartUpOnOff entry = %+v", entry)
	}
	if got := readAttr(t, lit, datamodel.GlobalAttrFeatureMap); !bytes.Equal(got, []byte{0x04, 0x01}) {
		t.Errorf("FeatureMap = %x", got)
	}
	want := []byte{0x16, 0x04, 0x00, 0x04, 0x01, 0x04, 0x02, 0x18}
	if got := readAttr(t, lit, datamodel.GlobalAttrAcceptedCommandList); !bytes.Equal(got, want) {
		t.Errorf("AcceptedCommandList = %x, want %x", got, want)
	}
}

func TestWriteOnTime(t *testing.T) {
	c := createTestCluster(FeatureLighting)
	dv := c.DataVersion()

	if err := write(c, AttrOnTime, element(t, 0x05, 0x2C, 0x01)); err != nil {
		t.Fatalf("write OnTime failed: %v", err)
	}
	if got := readAttr(t, c, AttrOnTime); !bytes.Equal(got, []byte{0x05, 0x2C, 0x01}) {
		t.Errorf("OnTime = %x", got)
	}
	if err := write(c, AttrOffWaitTime, element(t, 0x05, 0xFF, 0xFF)); !errors.Is(err, datamodel.ErrConstraintError) {
		t.Errorf("write 0xFFFF err = %v, want ErrConstraintError", err)
	}
	if c.DataVersion() != dv+1 {
		t.Errorf("DataVersion() = %d, want %d", c.DataVersion(), dv+1)
	}
}

func TestWriteStartUpOnOff(t *testing.T) {
	c := createTestCluster(FeatureLighting)

	if got := readAttr(t, c, AttrStartUpOnOff); !bytes.Equal(got, []byte{0x14}) {
		t.Errorf("initial StartUpOnOff = %x, want null", got)
	}
	if err := write(c, AttrStartUpOnOff, element(t, 0x04, 0x02)); err != nil {
		t.Fatal(err)
	}
	if got := readAttr(t, c, AttrStartUpOnOff); !bytes.Equal(got, []byte{0x04, 0x02}) {
		t.Errorf("StartUpOnOff = %x, want 0402", got)
	}
	if err := write(c, AttrStartUpOnOff, element(t, 0x04, 0x03)); !errors.Is(err, datamodel.ErrConstraintError) {
		t.Errorf("write 3 err = %v, want ErrConstraintError", err)
	}
	if err := write(c, AttrStartUpOnOff, element(t, 0x14)); err != nil {
		t.Fatal(err)
	}
	if got := readAttr(t, c, AttrStartUpOnOff); !bytes.Equal(got, []byte{0x14}) {
		t.Errorf("StartUpOnOff = %x, want null", got)
	}
	if s := StartUpOnOffPrevious.String(); s != "Previous" {
		t.Errorf("String() = %q", s)
	}
}

func TestWriteReadOnly(t *testing.T) {
	c := createTestCluster(FeatureLighting)
	if err := write(c, AttrGlobalSceneControl, element(t, 0x08)); !errors.Is(err, datamodel.ErrUnsupportedWrite) {
		t.Errorf("write GlobalSceneControl err = %v, want ErrUnsupportedWrite", err)
	}
}
