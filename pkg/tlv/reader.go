package tlv

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"
)

// header describes one element located in a byte slice.
type header struct {
	typ      ElementType
	tag      Tag
	start    int // control octet
	valueOff int // value bytes, or first member for containers
	valueLen int
	end      int // end of the element; end of the header for containers
}

func parseHeader(b []byte, off int) (header, error) {
	if off >= len(b) {
		return header{}, ErrUnexpectedEOF
	}
	t, tc := ParseControlOctet(b[off])
	if !t.Valid() {
		return header{}, ErrInvalidElementType
	}
	h := header{typ: t, start: off}
	pos := off + 1
	if pos+tc.Size() > len(b) {
		return header{}, ErrUnexpectedEOF
	}
	h.tag = parseTag(b[pos:], tc)
	pos += tc.Size()

	switch {
	case t.IsUTF8String() || t.IsBytes():
		width := t.fixedSize()
		if pos+width > len(b) {
			return header{}, ErrUnexpectedEOF
		}
		var n uint64
		for i := 0; i < width; i++ {
			n |= uint64(b[pos+i]) << (8 * i)
		}
		pos += width
		if n > uint64(len(b)-pos) {
			return header{}, ErrUnexpectedEOF
		}
		h.valueLen = int(n)
	default:
		h.valueLen = t.fixedSize()
		if pos+h.valueLen > len(b) {
			return header{}, ErrUnexpectedEOF
		}
	}
	h.valueOff = pos
	h.end = pos + h.valueLen
	return h, nil
}

// elementLen returns the encoded length of the element starting at b[0],
// including all members of a container and its end marker.
func elementLen(b []byte) (int, error) {
	pos, depth := 0, 0
	for {
		if depth > 0 && pos >= len(b) {
			return 0, ErrContainerNotClosed
		}
		h, err := parseHeader(b, pos)
		if err != nil {
			return 0, err
		}
		switch {
		case h.typ == ElementTypeEnd:
			if depth == 0 {
				return 0, ErrNotInContainer
			}
			depth--
		case h.typ.IsContainer():
			depth++
		}
		pos = h.end
		if depth == 0 {
			return pos, nil
		}
	}
}

func (h header) value(b []byte) []byte {
	return b[h.valueOff : h.valueOff+h.valueLen]
}

func (h header) uint(b []byte) (uint64, error) {
	switch {
	case h.typ.IsUnsignedInt():
		var v uint64
		for i, c := range h.value(b) {
			v |= uint64(c) << (8 * i)
		}
		return v, nil
	case h.typ.IsSignedInt():
		v, _ := h.int(b)
		if v < 0 {
			return 0, ErrOverflow
		}
		return uint64(v), nil
	}
	return 0, ErrTypeMismatch
}

func (h header) int(b []byte) (int64, error) {
	v := h.value(b)
	switch h.typ {
	case ElementTypeInt8:
		return int64(int8(v[0])), nil
	case ElementTypeInt16:
		return int64(int16(binary.LittleEndian.Uint16(v))), nil
	case ElementTypeInt32:
		return int64(int32(binary.LittleEndian.Uint32(v))), nil
	case ElementTypeInt64:
		return int64(binary.LittleEndian.Uint64(v)), nil
	}
	if h.typ.IsUnsignedInt() {
		u, _ := h.uint(b)
		if u > math.MaxInt64 {
			return 0, ErrOverflow
		}
		return int64(u), nil
	}
	return 0, ErrTypeMismatch
}

func (h header) bool() (bool, error) {
	if !h.typ.IsBool() {
		return false, ErrTypeMismatch
	}
	return h.typ == ElementTypeTrue, nil
}

func (h header) float(b []byte) (float64, error) {
	switch h.typ {
	case ElementTypeFloat32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(h.value(b)))), nil
	case ElementTypeFloat64:
		return math.Float64frombits(binary.LittleEndian.Uint64(h.value(b))), nil
	}
	return 0, ErrTypeMismatch
}

func (h header) string(b []byte) (string, error) {
	if !h.typ.IsUTF8String() {
		return "", ErrTypeMismatch
	}
	v := h.value(b)
	if !utf8.Valid(v) {
		return "", ErrInvalidUTF8
	}
	return string(v), nil
}

func (h header) bytes(b []byte) ([]byte, error) {
	if !h.typ.IsBytes() {
		return nil, ErrTypeMismatch
	}
	return h.value(b), nil
}

// Reader walks TLV elements held in a byte slice. Call Next to advance to
// each element, the typed accessors to read scalar values, and
// EnterContainer/ExitContainer to descend into containers.
type Reader struct {
	buf   []byte
	cur   header
	has   bool
	next  int // offset of the following element, -1 while unknown
	stack []ElementType
}

// NewReader returns a Reader over b. The Reader never copies b; values
// returned by Bytes and RawBytes alias it.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Next advances to the next element at the current depth. It returns io.EOF
// once the top-level input is exhausted. Inside a container the end marker
// is reported as an element; check IsEndOfContainer.
func (r *Reader) Next() error {
	if r.has && r.cur.typ == ElementTypeEnd {
		return nil
	}
	if err := r.settle(); err != nil {
		return err
	}
	if r.next >= len(r.buf) {
		r.has = false
		if len(r.stack) > 0 {
			return ErrContainerNotClosed
		}
		return io.EOF
	}
	h, err := parseHeader(r.buf, r.next)
	if err != nil {
		return err
	}
	if h.typ == ElementTypeEnd && len(r.stack) == 0 {
		return ErrNotInContainer
	}
	r.cur, r.has = h, true
	if h.typ.IsContainer() {
		r.next = -1
	} else if h.typ != ElementTypeEnd {
		r.next = h.end
	}
	return nil
}

// settle resolves the offset after the current element when it is an
// unentered container.
func (r *Reader) settle() error {
	if r.next >= 0 {
		return nil
	}
	n, err := elementLen(r.buf[r.cur.start:])
	if err != nil {
		return err
	}
	r.next = r.cur.start + n
	return nil
}

// Type returns the type of the current element.
func (r *Reader) Type() ElementType { return r.cur.typ }

// Tag returns the tag of the current element.
func (r *Reader) Tag() Tag { return r.cur.tag }

// IsEndOfContainer reports whether Next stopped on an end marker.
func (r *Reader) IsEndOfContainer() bool {
	return r.has && r.cur.typ == ElementTypeEnd
}

// ContainerDepth returns the number of containers entered.
func (r *Reader) ContainerDepth() int { return len(r.stack) }

func (r *Reader) current() (header, error) {
	if !r.has {
		return header{}, ErrNoElement
	}
	return r.cur, nil
}

// Uint returns the current element as an unsigned integer.
func (r *Reader) Uint() (uint64, error) {
	h, err := r.current()
	if err != nil {
		return 0, err
	}
	return h.uint(r.buf)
}

// Int returns the current element as a signed integer.
func (r *Reader) Int() (int64, error) {
	h, err := r.current()
	if err != nil {
		return 0, err
	}
	return h.int(r.buf)
}

// Bool returns the current element as a boolean.
func (r *Reader) Bool() (bool, error) {
	h, err := r.current()
	if err != nil {
		return false, err
	}
	return h.bool()
}

// Float returns the current element as a float64. Float32 values widen.
func (r *Reader) Float() (float64, error) {
	h, err := r.current()
	if err != nil {
		return 0, err
	}
	return h.float(r.buf)
}

// String returns the current element as a UTF-8 string.
func (r *Reader) String() (string, error) {
	h, err := r.current()
	if err != nil {
		return "", err
	}
	return h.string(r.buf)
}

// Bytes returns the current octet string. The slice aliases the input.
func (r *Reader) Bytes() ([]byte, error) {
	h, err := r.current()
	if err != nil {
		return nil, err
	}
	return h.bytes(r.buf)
}

// Null checks that the current element is null.
func (r *Reader) Null() error {
	h, err := r.current()
	if err != nil {
		return err
	}
	if h.typ != ElementTypeNull {
		return ErrTypeMismatch
	}
	return nil
}

// EnterContainer descends into the current container element.
func (r *Reader) EnterContainer() error {
	h, err := r.current()
	if err != nil {
		return err
	}
	if !h.typ.IsContainer() {
		return ErrTypeMismatch
	}
	r.stack = append(r.stack, h.typ)
	r.next = h.end
	r.has = false
	return nil
}

// ExitContainer skips any remaining members of the innermost container and
// consumes its end marker.
func (r *Reader) ExitContainer() error {
	if len(r.stack) == 0 {
		return ErrNotInContainer
	}
	for !r.IsEndOfContainer() {
		if err := r.Next(); err != nil {
			return err
		}
	}
	r.stack = r.stack[:len(r.stack)-1]
	r.next = r.cur.end
	r.has = false
	return nil
}

// Skip discards the current element, including container members.
func (r *Reader) Skip() error {
	if _, err := r.current(); err != nil {
		return err
	}
	if err := r.settle(); err != nil {
		return err
	}
	r.has = false
	return nil
}

// RawBytes returns the complete encoding of the current element, tag
// included. The slice aliases the input.
func (r *Reader) RawBytes() ([]byte, error) {
	h, err := r.current()
	if err != nil {
		return nil, err
	}
	if h.typ == ElementTypeEnd {
		return nil, ErrNoElement
	}
	if err := r.settle(); err != nil {
		return nil, err
	}
	return r.buf[h.start:r.next], nil
}

// Element returns a view of the current element.
func (r *Reader) Element() (Element, error) {
	raw, err := r.RawBytes()
	if err != nil {
		return Element{}, err
	}
	return Element{raw: raw, h: r.cur.rebase(r.cur.start)}, nil
}

// rebase shifts the header so offsets are relative to off.
func (h header) rebase(off int) header {
	h.start -= off
	h.valueOff -= off
	h.end -= off
	return h
}
