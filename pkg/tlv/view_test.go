package tlv

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestParseElement(t *testing.T) {
	e, err := ParseElement([]byte{0x16, 0x04, 0x01, 0x04, 0x02, 0x18})
	if err != nil {
		t.Fatalf("ParseElement failed: %v", err)
	}
	if !e.IsArray() || e.IsNull() {
		t.Errorf("IsArray() = %v, IsNull() = %v", e.IsArray(), e.IsNull())
	}

	var got []uint64
	it := e.Members()
	for it.Next() {
		v, err := it.Element().Uint()
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v)
	}
	if err := it.Err(); err != nil {
		t.Fatalf("iteration failed: %v", err)
	}
	if !reflect.DeepEqual(got, []uint64{1, 2}) {
		t.Errorf("members = %v, want [1 2]", got)
	}

	// Iterating twice yields the same members.
	n := 0
	for it := e.Members(); it.Next(); {
		n++
	}
	if n != 2 {
		t.Errorf("second iteration saw %d members, want 2", n)
	}
}

func TestParseElement_Errors(t *testing.T) {
	if _, err := ParseElement([]byte{0x04, 0x01, 0x04}); !errors.Is(err, ErrTrailingData) {
		t.Errorf("trailing data: got %v, want %v", err, ErrTrailingData)
	}
	if _, err := ParseElement([]byte{0x16, 0x04, 0x01}); !errors.Is(err, ErrContainerNotClosed) {
		t.Errorf("unclosed array: got %v, want %v", err, ErrContainerNotClosed)
	}
	if _, err := ParseElement(nil); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("empty input: got %v, want %v", err, ErrUnexpectedEOF)
	}
}

func TestIterator_MalformedMember(t *testing.T) {
	// Array whose second member carries a context tag.
	e, err := ParseElement([]byte{0x16, 0x04, 0x01, 0x24, 0x00, 0x02, 0x18})
	if err != nil {
		t.Fatal(err)
	}
	it := e.Members()
	if !it.Next() {
		t.Fatalf("first member missing: %v", it.Err())
	}
	if it.Next() {
		t.Fatal("tagged array member accepted")
	}
	if !errors.Is(it.Err(), ErrTaggedElementInArray) {
		t.Errorf("Err() = %v, want %v", it.Err(), ErrTaggedElementInArray)
	}

	scalar, _ := ParseElement([]byte{0x04, 0x01})
	if it := scalar.Members(); it.Next() || !errors.Is(it.Err(), ErrTypeMismatch) {
		t.Errorf("Members on scalar: Err() = %v", it.Err())
	}
}

func TestElement_ReaderAndRaw(t *testing.T) {
	raw := []byte{0x35, 0x01, 0x2c, 0x00, 0x01, 'x', 0x18}
	e, err := ParseElement(raw)
	if err != nil {
		t.Fatal(err)
	}
	if e.Tag() != ContextTag(1) {
		t.Errorf("Tag() = %v, want 1", e.Tag())
	}
	if !bytes.Equal(e.Raw(), raw) {
		t.Errorf("Raw() = % x", e.Raw())
	}

	r := e.Reader()
	if r.Type() != ElementTypeStruct {
		t.Fatalf("Reader type = %v", r.Type())
	}
	_ = r.EnterContainer()
	_ = r.Next()
	if s, _ := r.String(); s != "x" {
		t.Errorf("member = %q, want x", s)
	}
}

func TestElement_Value(t *testing.T) {
	// {0: 1, 1: [-1, "a", null], 2: true}
	raw := []byte{
		0x15,
		0x24, 0x00, 0x01,
		0x36, 0x01, 0x00, 0xff, 0x0c, 0x01, 'a', 0x14, 0x18,
		0x29, 0x02,
		0x18,
	}
	e, err := ParseElement(raw)
	if err != nil {
		t.Fatal(err)
	}
	got, err := e.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	want := map[string]any{
		"0": uint64(1),
		"1": []any{int64(-1), "a", nil},
		"2": true,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Value mismatch:\ngot:  %#v\nwant: %#v", got, want)
	}
}

func TestNullable(t *testing.T) {
	n := Null[uint16]()
	if !n.IsNull() {
		t.Error("Null() is not null")
	}
	v := NotNull[uint16](3)
	if got, ok := v.Value(); !ok || got != 3 {
		t.Errorf("Value() = %d, %v", got, ok)
	}
	if reflect.DeepEqual(n, NotNull[uint16](0)) {
		t.Error("null equals zero value")
	}
}
