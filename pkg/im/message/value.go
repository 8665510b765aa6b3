package message

import (
	"fmt"

	"github.com/backkem/matter-im/pkg/tlv"
)

// ValueEncoder produces the encoding of an attribute value or command
// payload at the moment an envelope is serialized. Implementations write
// exactly one element with the supplied tag, closing every container they
// open, and must not keep w after returning.
type ValueEncoder interface {
	EncodeTLV(w *tlv.Writer, tag tlv.Tag) error
}

// ValueEncoderFunc adapts a function to ValueEncoder.
type ValueEncoderFunc func(w *tlv.Writer, tag tlv.Tag) error

func (f ValueEncoderFunc) EncodeTLV(w *tlv.Writer, tag tlv.Tag) error {
	return f(w, tag)
}

// EncodeValue is the payload of attribute data and command data. Values
// decoded from the wire hold a view of the received element; values built
// locally hold a provider that runs when the enclosing message is encoded.
type EncodeValue struct {
	elem     tlv.Element
	provider ValueEncoder
}

// ElementValue wraps a decoded element.
func ElementValue(e tlv.Element) EncodeValue {
	return EncodeValue{elem: e}
}

// ProvidedValue wraps a provider. It is invoked once per encode of the
// message carrying the value.
func ProvidedValue(p ValueEncoder) EncodeValue {
	return EncodeValue{provider: p}
}

// IsZero reports whether v holds nothing.
func (v EncodeValue) IsZero() bool {
	return v.elem.IsZero() && v.provider == nil
}

// Element returns the decoded element, if v came from the wire.
func (v EncodeValue) Element() (tlv.Element, bool) {
	return v.elem, !v.elem.IsZero()
}

// EncodeTo writes the value with the given tag.
func (v EncodeValue) EncodeTo(w *tlv.Writer, tag tlv.Tag) error {
	switch {
	case !v.elem.IsZero():
		return w.PutRaw(tag, v.elem.Raw())
	case v.provider != nil:
		depth := w.ContainerDepth()
		if err := v.provider.EncodeTLV(w, tag); err != nil {
			return err
		}
		if w.ContainerDepth() != depth {
			return fmt.Errorf("%w: depth %d, want %d", ErrUnbalancedValue, w.ContainerDepth(), depth)
		}
		return nil
	}
	return ErrNoValue
}

// MarshalYAML renders decoded values. Provided values render as a marker
// since running the provider outside an encode is not allowed.
func (v EncodeValue) MarshalYAML() (any, error) {
	if !v.elem.IsZero() {
		return v.elem.Value()
	}
	if v.provider != nil {
		return "<provided>", nil
	}
	return nil, nil
}

// UintValue returns a value encoding n.
func UintValue(n uint64) EncodeValue {
	return ProvidedValue(ValueEncoderFunc(func(w *tlv.Writer, tag tlv.Tag) error {
		return w.PutUint(tag, n)
	}))
}

// BoolValue returns a value encoding b.
func BoolValue(b bool) EncodeValue {
	return ProvidedValue(ValueEncoderFunc(func(w *tlv.Writer, tag tlv.Tag) error {
		return w.PutBool(tag, b)
	}))
}

// StringValue returns a value encoding s.
func StringValue(s string) EncodeValue {
	return ProvidedValue(ValueEncoderFunc(func(w *tlv.Writer, tag tlv.Tag) error {
		return w.PutString(tag, s)
	}))
}

// NullValue returns a value encoding null.
func NullValue() EncodeValue {
	return ProvidedValue(ValueEncoderFunc(func(w *tlv.Writer, tag tlv.Tag) error {
		return w.PutNull(tag)
	}))
}
