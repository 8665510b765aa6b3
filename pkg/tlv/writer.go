package tlv

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// Writer emits TLV elements to an io.Writer. Each Put call writes one
// complete element; containers are opened with Start* and closed with
// EndContainer.
type Writer struct {
	w       io.Writer
	stack   []ElementType
	scratch []byte
}

// NewWriter returns a Writer that emits to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, scratch: make([]byte, 0, 16)}
}

// ContainerDepth returns the number of containers currently open.
func (w *Writer) ContainerDepth() int {
	return len(w.stack)
}

// head validates tag placement and stages the control octet and tag.
func (w *Writer) head(t ElementType, tag Tag) error {
	if n := len(w.stack); n > 0 {
		switch w.stack[n-1] {
		case ElementTypeStruct:
			if tag.IsAnonymous() {
				return ErrAnonymousTagInStruct
			}
		case ElementTypeArray:
			if !tag.IsAnonymous() {
				return ErrTaggedElementInArray
			}
		}
	}
	w.scratch = append(w.scratch[:0], BuildControlOctet(t, tag.control))
	w.scratch = appendTag(w.scratch, tag)
	return nil
}

func (w *Writer) flush() error {
	_, err := w.w.Write(w.scratch)
	return err
}

// PutInt writes a signed integer using the narrowest encoding.
func (w *Writer) PutInt(tag Tag, v int64) error {
	var err error
	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		if err = w.head(ElementTypeInt8, tag); err == nil {
			w.scratch = append(w.scratch, byte(v))
		}
	case v >= math.MinInt16 && v <= math.MaxInt16:
		if err = w.head(ElementTypeInt16, tag); err == nil {
			w.scratch = binary.LittleEndian.AppendUint16(w.scratch, uint16(v))
		}
	case v >= math.MinInt32 && v <= math.MaxInt32:
		if err = w.head(ElementTypeInt32, tag); err == nil {
			w.scratch = binary.LittleEndian.AppendUint32(w.scratch, uint32(v))
		}
	default:
		if err = w.head(ElementTypeInt64, tag); err == nil {
			w.scratch = binary.LittleEndian.AppendUint64(w.scratch, uint64(v))
		}
	}
	if err != nil {
		return err
	}
	return w.flush()
}

// PutUint writes an unsigned integer using the narrowest encoding.
func (w *Writer) PutUint(tag Tag, v uint64) error {
	switch {
	case v <= math.MaxUint8:
		return w.PutUintWithWidth(tag, v, 1)
	case v <= math.MaxUint16:
		return w.PutUintWithWidth(tag, v, 2)
	case v <= math.MaxUint32:
		return w.PutUintWithWidth(tag, v, 4)
	}
	return w.PutUintWithWidth(tag, v, 8)
}

// PutUintWithWidth writes an unsigned integer with a fixed width of 1, 2, 4
// or 8 octets.
func (w *Writer) PutUintWithWidth(tag Tag, v uint64, width int) error {
	var t ElementType
	switch width {
	case 1:
		t = ElementTypeUInt8
	case 2:
		t = ElementTypeUInt16
	case 4:
		t = ElementTypeUInt32
	case 8:
		t = ElementTypeUInt64
	default:
		return fmt.Errorf("tlv: invalid integer width %d", width)
	}
	if width < 8 && v>>(8*width) != 0 {
		return ErrOverflow
	}
	if err := w.head(t, tag); err != nil {
		return err
	}
	for i := 0; i < width; i++ {
		w.scratch = append(w.scratch, byte(v>>(8*i)))
	}
	return w.flush()
}

// PutBool writes a boolean.
func (w *Writer) PutBool(tag Tag, v bool) error {
	t := ElementTypeFalse
	if v {
		t = ElementTypeTrue
	}
	if err := w.head(t, tag); err != nil {
		return err
	}
	return w.flush()
}

// PutFloat32 writes a single precision float.
func (w *Writer) PutFloat32(tag Tag, v float32) error {
	if err := w.head(ElementTypeFloat32, tag); err != nil {
		return err
	}
	w.scratch = binary.LittleEndian.AppendUint32(w.scratch, math.Float32bits(v))
	return w.flush()
}

// PutFloat64 writes a double precision float.
func (w *Writer) PutFloat64(tag Tag, v float64) error {
	if err := w.head(ElementTypeFloat64, tag); err != nil {
		return err
	}
	w.scratch = binary.LittleEndian.AppendUint64(w.scratch, math.Float64bits(v))
	return w.flush()
}

// PutString writes a UTF-8 string.
func (w *Writer) PutString(tag Tag, v string) error {
	if !utf8.ValidString(v) {
		return ErrInvalidUTF8
	}
	return w.putOctets(ElementTypeUTF8_1, tag, []byte(v))
}

// PutBytes writes an octet string.
func (w *Writer) PutBytes(tag Tag, v []byte) error {
	return w.putOctets(ElementTypeBytes1, tag, v)
}

// putOctets picks the narrowest length prefix starting from base.
func (w *Writer) putOctets(base ElementType, tag Tag, v []byte) error {
	n := uint64(len(v))
	t := base
	switch {
	case n > math.MaxUint32:
		t = base + 3
	case n > math.MaxUint16:
		t = base + 2
	case n > math.MaxUint8:
		t = base + 1
	}
	if err := w.head(t, tag); err != nil {
		return err
	}
	for i := 0; i < t.fixedSize(); i++ {
		w.scratch = append(w.scratch, byte(n>>(8*i)))
	}
	if err := w.flush(); err != nil {
		return err
	}
	_, err := w.w.Write(v)
	return err
}

// PutNull writes a null element.
func (w *Writer) PutNull(tag Tag) error {
	if err := w.head(ElementTypeNull, tag); err != nil {
		return err
	}
	return w.flush()
}

// PutRaw copies one already encoded element, replacing its tag with tag.
// raw must hold exactly one complete element.
func (w *Writer) PutRaw(tag Tag, raw []byte) error {
	n, err := elementLen(raw)
	if err != nil {
		return err
	}
	if n != len(raw) {
		return ErrTrailingData
	}
	t, tc := ParseControlOctet(raw[0])
	if err := w.head(t, tag); err != nil {
		return err
	}
	if err := w.flush(); err != nil {
		return err
	}
	_, err = w.w.Write(raw[1+tc.Size():])
	return err
}

// StartStructure opens a structure.
func (w *Writer) StartStructure(tag Tag) error {
	return w.start(ElementTypeStruct, tag)
}

// StartArray opens an array.
func (w *Writer) StartArray(tag Tag) error {
	return w.start(ElementTypeArray, tag)
}

// StartList opens a list.
func (w *Writer) StartList(tag Tag) error {
	return w.start(ElementTypeList, tag)
}

func (w *Writer) start(t ElementType, tag Tag) error {
	if err := w.head(t, tag); err != nil {
		return err
	}
	if err := w.flush(); err != nil {
		return err
	}
	w.stack = append(w.stack, t)
	return nil
}

// EndContainer closes the innermost open container.
func (w *Writer) EndContainer() error {
	if len(w.stack) == 0 {
		return ErrNotInContainer
	}
	w.stack = w.stack[:len(w.stack)-1]
	_, err := w.w.Write([]byte{byte(ElementTypeEnd)})
	return err
}
