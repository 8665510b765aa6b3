package message

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/backkem/matter-im/pkg/tlv"
)

func TestGenericPath_Wildcard(t *testing.T) {
	ep, cl, leaf := Ptr(EndpointID(1)), Ptr(ClusterID(6)), Ptr(uint32(0))
	for mask := 0; mask < 8; mask++ {
		var gp GenericPath
		if mask&1 != 0 {
			gp.Endpoint = ep
		}
		if mask&2 != 0 {
			gp.Cluster = cl
		}
		if mask&4 != 0 {
			gp.Leaf = leaf
		}

		_, _, _, err := gp.NotWildcard()
		if gp.IsWildcard() != (err != nil) {
			t.Errorf("%s: IsWildcard() = %v but NotWildcard() error = %v", gp, gp.IsWildcard(), err)
		}
		if err != nil && !errors.Is(err, ErrInvalidPath) {
			t.Errorf("%s: NotWildcard() error = %v, want %v", gp, err, ErrInvalidPath)
		}
		if wantWildcard := mask != 7; gp.IsWildcard() != wantWildcard {
			t.Errorf("%s: IsWildcard() = %v, want %v", gp, gp.IsWildcard(), wantWildcard)
		}
	}

	e, c, l, err := ConcretePath(2, 0x1d, 3).NotWildcard()
	if err != nil || e != 2 || c != 0x1d || l != 3 {
		t.Errorf("NotWildcard() = %d, %d, %d, %v", e, c, l, err)
	}
}

func TestAttributePath_GenericRoundTrip(t *testing.T) {
	tests := []GenericPath{
		{},
		{Endpoint: Ptr(EndpointID(0))},
		{Cluster: Ptr(ClusterID(0x001d))},
		{Leaf: Ptr(uint32(0xfffd))},
		ConcretePath(1, 0x0006, 0),
		ConcretePath(0xfffe, 0xfff1fc01, 0xffff),
	}

	for _, gp := range tests {
		t.Run(gp.String(), func(t *testing.T) {
			ap, err := NewAttributePath(gp)
			if err != nil {
				t.Fatalf("NewAttributePath failed: %v", err)
			}
			if ap.Node != nil || ap.ListIndex != nil || ap.EnableTagCompression != nil {
				t.Errorf("unexpected fields set: %+v", ap)
			}
			if got := ap.GenericPath(); !reflect.DeepEqual(got, gp) {
				t.Errorf("round trip mismatch:\ngot:  %s\nwant: %s", got, gp)
			}
		})
	}
}

func TestAttributePath_LeafOutOfRange(t *testing.T) {
	_, err := NewAttributePath(ConcretePath(1, 6, 0x10000))
	if !errors.Is(err, ErrAttributeIDRange) {
		t.Errorf("NewAttributePath(0x10000) error = %v, want %v", err, ErrAttributeIDRange)
	}
}

func TestAttributePath_ListIndexStates(t *testing.T) {
	base := ConcreteAttributePath(1, 0x0041, 0)

	absent := base
	null := base
	null.ListIndex = Ptr(tlv.Null[ListIndex]())
	value := base
	value.ListIndex = Ptr(tlv.NotNull[ListIndex](3))

	encodings := make([][]byte, 0, 3)
	for _, p := range []AttributePathIB{absent, null, value} {
		var buf bytes.Buffer
		if err := p.Encode(tlv.NewWriter(&buf)); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		var decoded AttributePathIB
		if err := decoded.Decode(tlv.NewReader(buf.Bytes())); err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if !reflect.DeepEqual(decoded, p) {
			t.Errorf("Roundtrip mismatch:\ngot:  %s\nwant: %s", decoded, p)
		}
		encodings = append(encodings, buf.Bytes())
	}

	// List(2: 1, 3: 0x41, 4: 0, 5: null)
	wantNull := []byte{0x17, 0x24, 0x02, 0x01, 0x24, 0x03, 0x41, 0x24, 0x04, 0x00, 0x34, 0x05, 0x18}
	if !bytes.Equal(encodings[1], wantNull) {
		t.Errorf("null list index encoding:\ngot:  % x\nwant: % x", encodings[1], wantNull)
	}
	if bytes.Equal(encodings[0], encodings[1]) || bytes.Equal(encodings[1], encodings[2]) {
		t.Error("list index states are not distinguishable on the wire")
	}
}

func TestCommandPath_MissingCommand(t *testing.T) {
	combos := []struct {
		name     string
		endpoint *EndpointID
		cluster  *ClusterID
	}{
		{"no endpoint or cluster", nil, nil},
		{"endpoint only", Ptr(EndpointID(1)), nil},
		{"cluster only", nil, Ptr(ClusterID(6))},
		{"endpoint and cluster", Ptr(EndpointID(1)), Ptr(ClusterID(6))},
	}

	for _, tc := range combos {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := tlv.NewWriter(&buf)
			_ = w.StartList(tlv.Anonymous())
			if tc.endpoint != nil {
				_ = w.PutUint(tlv.ContextTag(0), uint64(*tc.endpoint))
			}
			if tc.cluster != nil {
				_ = w.PutUint(tlv.ContextTag(1), uint64(*tc.cluster))
			}
			_ = w.EndContainer()

			var p CommandPathIB
			if err := p.Decode(tlv.NewReader(buf.Bytes())); !errors.Is(err, ErrCommandNotFound) {
				t.Errorf("Decode error = %v, want %v", err, ErrCommandNotFound)
			}
		})
	}
}

func TestPaths_Roundtrip(t *testing.T) {
	tests := []struct {
		name string
		path block
	}{
		{"attribute wildcard", &AttributePathIB{}},
		{"attribute full", &AttributePathIB{
			EnableTagCompression: Ptr(false),
			Node:                 Ptr(NodeID(0x1122334455667788)),
			Endpoint:             Ptr(EndpointID(1)),
			Cluster:              Ptr(ClusterID(0x0006)),
			Attribute:            Ptr(AttributeID(0)),
			ListIndex:            Ptr(tlv.NotNull[ListIndex](7)),
		}},
		{"command group", &CommandPathIB{Cluster: Ptr(ClusterID(6)), Command: 2}},
		{"command concrete", Ptr(NewCommandPath(1, 6, 1))},
		{"event", &EventPathIB{Endpoint: Ptr(EndpointID(0)), Cluster: Ptr(ClusterID(0x28)), Event: Ptr(EventID(0)), IsUrgent: Ptr(true)}},
		{"cluster", &ClusterPathIB{Node: Ptr(NodeID(5)), Endpoint: 1, Cluster: 0x1d}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.path.EncodeWithTag(tlv.NewWriter(&buf), tlv.Anonymous()); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if buf.Bytes()[0] != 0x17 {
				t.Errorf("container = 0x%02x, want list 0x17", buf.Bytes()[0])
			}

			decoded := reflect.New(reflect.TypeOf(tt.path).Elem()).Interface().(block)
			r := tlv.NewReader(buf.Bytes())
			if err := r.Next(); err != nil {
				t.Fatal(err)
			}
			if err := decoded.DecodeFrom(r); err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !reflect.DeepEqual(decoded, tt.path) {
				t.Errorf("Roundtrip mismatch:\ngot:  %+v\nwant: %+v", decoded, tt.path)
			}
		})
	}
}

func TestClusterPath_RequiresEndpointAndCluster(t *testing.T) {
	// List(2: 0x1d) has no endpoint.
	var p ClusterPathIB
	err := p.Decode(tlv.NewReader([]byte{0x17, 0x24, 0x02, 0x1d, 0x18}))
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("Decode error = %v, want %v", err, ErrMissingField)
	}
}

func TestAttributePath_RejectsStructure(t *testing.T) {
	var p AttributePathIB
	if err := p.Decode(tlv.NewReader([]byte{0x15, 0x18})); !errors.Is(err, ErrInvalidType) {
		t.Errorf("Decode error = %v, want %v", err, ErrInvalidType)
	}
}
