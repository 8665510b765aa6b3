package message

import (
	"fmt"

	"github.com/backkem/matter-im/pkg/tlv"
)

// block is implemented by every path and interaction block.
type block interface {
	EncodeWithTag(w *tlv.Writer, tag tlv.Tag) error
	DecodeFrom(r *tlv.Reader) error
}

// field binds one context tag of a container to a Go value.
type field struct {
	tag      uint8
	name     string
	required bool
	reserved bool
	present  func() bool
	encode   func(w *tlv.Writer, tag tlv.Tag) error
	decode   func(r *tlv.Reader) error
}

// fieldTable is the wire layout of one container type. Fields are encoded
// in table order. Reserved entries document tags that are part of the layout
// but carry nothing: they are skipped on decode and never emitted.
type fieldTable struct {
	container tlv.ElementType
	fields    []field
}

func structTable(fields ...field) fieldTable {
	return fieldTable{container: tlv.ElementTypeStruct, fields: fields}
}

func listTable(fields ...field) fieldTable {
	return fieldTable{container: tlv.ElementTypeList, fields: fields}
}

func reservedField(tag uint8, name string) field {
	return field{tag: tag, name: name, reserved: true}
}

func (t fieldTable) encode(w *tlv.Writer, tag tlv.Tag) error {
	var err error
	if t.container == tlv.ElementTypeList {
		err = w.StartList(tag)
	} else {
		err = w.StartStructure(tag)
	}
	if err != nil {
		return err
	}
	for _, f := range t.fields {
		if f.reserved || (f.present != nil && !f.present()) {
			continue
		}
		if err := f.encode(w, tlv.ContextTag(f.tag)); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return w.EndContainer()
}

// decode reads a container positioned at r. Unknown and reserved tags are
// skipped; a known tag may appear only once.
func (t fieldTable) decode(r *tlv.Reader) error {
	if r.Type() != t.container {
		return fmt.Errorf("%w: got %v, want %v", ErrInvalidType, r.Type(), t.container)
	}
	if err := r.EnterContainer(); err != nil {
		return err
	}

	var seen uint64
	for {
		if err := r.Next(); err != nil {
			return err
		}
		if r.IsEndOfContainer() {
			break
		}
		i := t.lookup(r.Tag())
		if i < 0 || t.fields[i].reserved {
			if err := r.Skip(); err != nil {
				return err
			}
			continue
		}
		if seen&(1<<i) != 0 {
			return fmt.Errorf("%w: duplicate %s", ErrInvalidData, t.fields[i].name)
		}
		if err := t.fields[i].decode(r); err != nil {
			return fmt.Errorf("%s: %w", t.fields[i].name, err)
		}
		seen |= 1 << i
	}
	if err := r.ExitContainer(); err != nil {
		return err
	}

	for i, f := range t.fields {
		if f.required && seen&(1<<i) == 0 {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	return nil
}

func (t fieldTable) lookup(tag tlv.Tag) int {
	if !tag.IsContext() {
		return -1
	}
	for i, f := range t.fields {
		if uint32(f.tag) == tag.TagNumber() {
			return i
		}
	}
	return -1
}

type unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

func readUint[T unsigned](r *tlv.Reader) (T, error) {
	v, err := r.Uint()
	if err != nil {
		return 0, err
	}
	if v > uint64(^T(0)) {
		return 0, tlv.ErrOverflow
	}
	return T(v), nil
}

func uintField[T unsigned](tag uint8, name string, v *T) field {
	return field{
		tag:      tag,
		name:     name,
		required: true,
		encode:   func(w *tlv.Writer, t tlv.Tag) error { return w.PutUint(t, uint64(*v)) },
		decode: func(r *tlv.Reader) (err error) {
			*v, err = readUint[T](r)
			return err
		},
	}
}

func optUintField[T unsigned](tag uint8, name string, v **T) field {
	return field{
		tag:     tag,
		name:    name,
		present: func() bool { return *v != nil },
		encode:  func(w *tlv.Writer, t tlv.Tag) error { return w.PutUint(t, uint64(**v)) },
		decode: func(r *tlv.Reader) error {
			x, err := readUint[T](r)
			if err != nil {
				return err
			}
			*v = &x
			return nil
		},
	}
}

func nullableUintField[T unsigned](tag uint8, name string, v **tlv.Nullable[T]) field {
	return field{
		tag:     tag,
		name:    name,
		present: func() bool { return *v != nil },
		encode: func(w *tlv.Writer, t tlv.Tag) error {
			x, ok := (*v).Value()
			if !ok {
				return w.PutNull(t)
			}
			return w.PutUint(t, uint64(x))
		},
		decode: func(r *tlv.Reader) error {
			n := tlv.Null[T]()
			if r.Type() != tlv.ElementTypeNull {
				x, err := readUint[T](r)
				if err != nil {
					return err
				}
				n = tlv.NotNull(x)
			}
			*v = &n
			return nil
		},
	}
}

func boolField(tag uint8, name string, v *bool) field {
	return field{
		tag:      tag,
		name:     name,
		required: true,
		encode:   func(w *tlv.Writer, t tlv.Tag) error { return w.PutBool(t, *v) },
		decode: func(r *tlv.Reader) (err error) {
			*v, err = r.Bool()
			return err
		},
	}
}

func optBoolField(tag uint8, name string, v **bool) field {
	return field{
		tag:     tag,
		name:    name,
		present: func() bool { return *v != nil },
		encode:  func(w *tlv.Writer, t tlv.Tag) error { return w.PutBool(t, **v) },
		decode: func(r *tlv.Reader) error {
			b, err := r.Bool()
			if err != nil {
				return err
			}
			*v = &b
			return nil
		},
	}
}

func blockField[T any, P interface {
	*T
	block
}](tag uint8, name string, v P) field {
	return field{
		tag:      tag,
		name:     name,
		required: true,
		encode:   func(w *tlv.Writer, t tlv.Tag) error { return v.EncodeWithTag(w, t) },
		decode:   func(r *tlv.Reader) error { return v.DecodeFrom(r) },
	}
}

func optBlockField[T any, P interface {
	*T
	block
}](tag uint8, name string, v **T) field {
	return field{
		tag:     tag,
		name:    name,
		present: func() bool { return *v != nil },
		encode:  func(w *tlv.Writer, t tlv.Tag) error { return P(*v).EncodeWithTag(w, t) },
		decode: func(r *tlv.Reader) error {
			x := new(T)
			if err := P(x).DecodeFrom(r); err != nil {
				return err
			}
			*v = x
			return nil
		},
	}
}

// arrayField binds an array of blocks. An optional array is emitted when the
// slice is non-nil, so an empty array survives a round trip distinct from
// an absent one.
func arrayField[T any, P interface {
	*T
	block
}](tag uint8, name string, v *[]T, required bool) field {
	f := field{
		tag:      tag,
		name:     name,
		required: required,
		encode: func(w *tlv.Writer, t tlv.Tag) error {
			if err := w.StartArray(t); err != nil {
				return err
			}
			for i := range *v {
				if err := P(&(*v)[i]).EncodeWithTag(w, tlv.Anonymous()); err != nil {
					return fmt.Errorf("[%d]: %w", i, err)
				}
			}
			return w.EndContainer()
		},
		decode: func(r *tlv.Reader) error {
			if r.Type() != tlv.ElementTypeArray {
				return fmt.Errorf("%w: got %v, want Array", ErrInvalidType, r.Type())
			}
			if err := r.EnterContainer(); err != nil {
				return err
			}
			items := []T{}
			for {
				if err := r.Next(); err != nil {
					return err
				}
				if r.IsEndOfContainer() {
					break
				}
				var item T
				if err := P(&item).DecodeFrom(r); err != nil {
					return fmt.Errorf("[%d]: %w", len(items), err)
				}
				items = append(items, item)
			}
			*v = items
			return r.ExitContainer()
		},
	}
	if !required {
		f.present = func() bool { return *v != nil }
	}
	return f
}

func valueField(tag uint8, name string, v *EncodeValue, required bool) field {
	f := field{
		tag:      tag,
		name:     name,
		required: required,
		encode:   func(w *tlv.Writer, t tlv.Tag) error { return v.EncodeTo(w, t) },
		decode: func(r *tlv.Reader) error {
			e, err := r.Element()
			if err != nil {
				return err
			}
			*v = ElementValue(e)
			return nil
		},
	}
	if !required {
		f.present = func() bool { return !v.IsZero() }
	}
	return f
}

// decodeNext advances r and decodes the element it lands on into b.
func decodeNext(r *tlv.Reader, b block) error {
	if err := r.Next(); err != nil {
		return err
	}
	return b.DecodeFrom(r)
}
