package datamodel

import (
	"bytes"
	"context"
	"testing"

	"github.com/backkem/matter-im/pkg/im/message"
	"github.com/backkem/matter-im/pkg/tlv"
)

// captureEncoder collects values handed to AttributeEncoder.
type captureEncoder struct {
	values []message.EncodeValue
}

func (e *captureEncoder) Encode(v message.EncodeValue) error {
	e.values = append(e.values, v)
	return nil
}

func encodeValue(t *testing.T, v message.EncodeValue) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := v.EncodeTo(tlv.NewWriter(&buf), tlv.Anonymous()); err != nil {
		t.Fatalf("EncodeTo failed: %v", err)
	}
	return buf.Bytes()
}

func TestClusterBase_New(t *testing.T) {
	cb := NewClusterBase(ClusterOnOff, 1, 4)

	if cb.ID() != ClusterOnOff {
		t.Errorf("ID() = %v, want OnOff", cb.ID())
	}
	if cb.EndpointID() != 1 {
		t.Errorf("EndpointID() = %v, want 1", cb.EndpointID())
	}
	if cb.ClusterRevision() != 4 {
		t.Errorf("ClusterRevision() = %v, want 4", cb.ClusterRevision())
	}
	if cb.FeatureMap() != 0 {
		t.Errorf("FeatureMap() = %v, want 0", cb.FeatureMap())
	}
	if got := cb.Path(); got != (ConcreteClusterPath{Endpoint: 1, Cluster: ClusterOnOff}) {
		t.Errorf("Path() = %v", got)
	}
}

func TestClusterBase_DataVersion(t *testing.T) {
	cb := NewClusterBase(ClusterOnOff, 0, 1)

	initial := cb.DataVersion()
	cb.IncrementDataVersion()
	if cb.DataVersion() != initial+1 {
		t.Errorf("DataVersion() = %v, want %v", cb.DataVersion(), initial+1)
	}

	cb.SetDataVersion(0xFFFFFFFF)
	cb.IncrementDataVersion()
	if cb.DataVersion() != 0 {
		t.Errorf("DataVersion() after wrap = %v, want 0", cb.DataVersion())
	}
}

func TestClusterBase_GlobalAttribute(t *testing.T) {
	cb := NewClusterBase(ClusterOnOff, 1, 5)
	cb.SetFeatureMap(0x01)
	attrs := MergeAttributeLists([]AttributeEntry{NewReadWriteAttribute(0, 0)})
	accepted := []CommandEntry{{ID: 0}, {ID: 1}, {ID: 2}}

	tests := []struct {
		name string
		attr AttributeID
		want []byte
	}{
		{"ClusterRevision", GlobalAttrClusterRevision, []byte{0x04, 0x05}},
		{"FeatureMap", GlobalAttrFeatureMap, []byte{0x04, 0x01}},
		{
			"AttributeList", GlobalAttrAttributeList,
			[]byte{
				0x16,
				0x04, 0x00,
				0x05, 0xF8, 0xFF, 0x05, 0xF9, 0xFF, 0x05, 0xFB, 0xFF, 0x05, 0xFC, 0xFF, 0x05, 0xFD, 0xFF,
				0x18,
			},
		},
		{"AcceptedCommandList", GlobalAttrAcceptedCommandList, []byte{0x16, 0x04, 0x00, 0x04, 0x01, 0x04, 0x02, 0x18}},
		{"GeneratedCommandList", GlobalAttrGeneratedCommandList, []byte{0x16, 0x18}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := cb.GlobalAttribute(tt.attr, attrs, accepted, nil)
			if !ok {
				t.Fatal("GlobalAttribute() not handled")
			}
			if got := encodeValue(t, v); !bytes.Equal(got, tt.want) {
				t.Errorf("encoded = %x, want %x", got, tt.want)
			}
		})
	}

	if _, ok := cb.GlobalAttribute(0, attrs, accepted, nil); ok {
		t.Error("GlobalAttribute(0) handled, want false")
	}
}

func TestClusterBase_GlobalAttributeIsLazy(t *testing.T) {
	cb := NewClusterBase(ClusterOnOff, 1, 5)
	v, _ := cb.GlobalAttribute(GlobalAttrFeatureMap, nil, nil, nil)
	if _, ok := v.Element(); ok {
		t.Error("global attribute value should be a provider")
	}
}

func TestStubCluster_ReadThroughEncoder(t *testing.T) {
	c := newStubCluster(0x0006, 1, 0)
	enc := &captureEncoder{}

	req := ReadAttributeRequest{Path: c.AttributePath(GlobalAttrClusterRevision)}
	if err := c.ReadAttribute(context.Background(), req, enc); err != nil {
		t.Fatalf("ReadAttribute failed: %v", err)
	}
	if len(enc.values) != 1 {
		t.Fatalf("encoded %d values, want 1", len(enc.values))
	}
	if got := encodeValue(t, enc.values[0]); !bytes.Equal(got, []byte{0x04, 0x01}) {
		t.Errorf("ClusterRevision = %x", got)
	}
}

func TestEntries(t *testing.T) {
	rw := NewReadWriteAttribute(0, AttrQualityList|AttrQualityNullable)
	if !rw.IsWritable() || !rw.IsList() || !rw.IsNullable() || rw.RequiresTimed() {
		t.Errorf("qualities = %v", rw.Quality)
	}
	ro := NewReadOnlyAttribute(1, AttrQualityWritable)
	if ro.IsWritable() {
		t.Error("NewReadOnlyAttribute kept the writable quality")
	}
	if got := rw.Quality.String(); got != "list|writable|nullable" {
		t.Errorf("String() = %q", got)
	}
	if got := AttributeQuality(0).String(); got != "none" {
		t.Errorf("String() = %q", got)
	}

	cmds := []CommandEntry{{ID: 0}, {ID: 2, Quality: CmdQualityTimed}}
	if e := FindCommand(cmds, 2); e == nil || !e.RequiresTimed() {
		t.Errorf("FindCommand(2) = %v", e)
	}
	if FindCommand(cmds, 1) != nil {
		t.Error("FindCommand(1) != nil")
	}
	if FindAttribute([]AttributeEntry{rw}, 0) == nil {
		t.Error("FindAttribute(0) = nil")
	}
	if !IsGlobalAttribute(0xFFFB) || IsGlobalAttribute(0) {
		t.Error("IsGlobalAttribute mismatch")
	}
}

func TestEndpoint_Clusters(t *testing.T) {
	ep := NewEndpoint(3)
	if err := ep.AddCluster(newStubCluster(0x0006, 3)); err != nil {
		t.Fatal(err)
	}
	if err := ep.AddCluster(newStubCluster(0x001D, 3)); err != nil {
		t.Fatal(err)
	}
	if err := ep.AddCluster(newStubCluster(0x0006, 3)); err != ErrClusterExists {
		t.Errorf("duplicate AddCluster = %v, want ErrClusterExists", err)
	}
	ids := ep.ClusterIDs()
	if len(ids) != 2 || ids[0] != 0x0006 || ids[1] != 0x001D {
		t.Errorf("ClusterIDs() = %v", ids)
	}
	if err := ep.RemoveCluster(0x0006); err != nil {
		t.Fatal(err)
	}
	if err := ep.RemoveCluster(0x0006); err != ErrClusterNotFound {
		t.Errorf("RemoveCluster missing = %v", err)
	}
	if ep.Cluster(0x001D) == nil || ep.Cluster(0x0006) != nil {
		t.Error("Cluster lookup mismatch after remove")
	}
}
