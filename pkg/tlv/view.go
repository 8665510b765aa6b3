package tlv

// Element is a read-only view of one encoded TLV element. It aliases the
// bytes it was parsed from; the bytes must not change while the view is in
// use.
type Element struct {
	raw []byte
	h   header
}

// ParseElement returns a view of the single element held in b.
func ParseElement(b []byte) (Element, error) {
	n, err := elementLen(b)
	if err != nil {
		return Element{}, err
	}
	if n != len(b) {
		return Element{}, ErrTrailingData
	}
	h, _ := parseHeader(b, 0)
	return Element{raw: b, h: h}, nil
}

// IsZero reports whether e is the zero Element.
func (e Element) IsZero() bool { return e.raw == nil }

// Raw returns the complete encoding, tag included.
func (e Element) Raw() []byte { return e.raw }

func (e Element) Type() ElementType { return e.h.typ }
func (e Element) Tag() Tag { return e.h.tag }

// IsNull reports whether e encodes null.
func (e Element) IsNull() bool { return e.raw != nil && e.h.typ == ElementTypeNull }

// IsArray reports whether e is an array.
func (e Element) IsArray() bool { return e.raw != nil && e.h.typ == ElementTypeArray }

func (e Element) Uint() (uint64, error) { return e.h.uint(e.raw) }
func (e Element) Int() (int64, error) { return e.h.int(e.raw) }
func (e Element) Bool() (bool, error) { return e.h.bool() }
func (e Element) Float() (float64, error) { return e.h.float(e.raw) }
func (e Element) String() (string, error) { return e.h.string(e.raw) }
func (e Element) Bytes() ([]byte, error) { return e.h.bytes(e.raw) }

// Reader returns a Reader positioned on e, as if Next had just returned it.
func (e Element) Reader() *Reader {
	r := NewReader(e.raw)
	if e.raw != nil {
		_ = r.Next()
	}
	return r
}

// Members iterates the members of a container element. Members are parsed
// lazily, so a malformed member surfaces from Err only once it is reached.
func (e Element) Members() *Iterator {
	if !e.h.typ.IsContainer() || e.raw == nil {
		return &Iterator{err: ErrTypeMismatch}
	}
	return &Iterator{buf: e.raw, pos: e.h.end}
}

// Iterator walks the members of a container. Use it like bufio.Scanner:
//
//	it := elem.Members()
//	for it.Next() {
//		m := it.Element()
//	}
//	if err := it.Err(); err != nil { ... }
type Iterator struct {
	buf  []byte
	pos  int
	cur  Element
	err  error
	done bool
}

// Next advances to the next member and reports whether one exists.
func (it *Iterator) Next() bool {
	if it.err != nil || it.done {
		return false
	}
	h, err := parseHeader(it.buf, it.pos)
	if err != nil {
		it.err = err
		return false
	}
	if h.typ == ElementTypeEnd {
		it.done = true
		return false
	}
	switch it.buf[0] & elementTypeMask {
	case byte(ElementTypeArray):
		if !h.tag.IsAnonymous() {
			it.err = ErrTaggedElementInArray
			return false
		}
	case byte(ElementTypeStruct):
		if h.tag.IsAnonymous() {
			it.err = ErrAnonymousTagInStruct
			return false
		}
	}
	n, err := elementLen(it.buf[it.pos:])
	if err != nil {
		it.err = err
		return false
	}
	it.cur = Element{raw: it.buf[it.pos : it.pos+n], h: h.rebase(it.pos)}
	it.pos += n
	return true
}

// Element returns the member most recently produced by Next.
func (it *Iterator) Element() Element { return it.cur }

// Err returns the first error met while iterating.
func (it *Iterator) Err() error { return it.err }

// Value decodes e into plain Go values: integers as int64 or uint64,
// strings, []byte, bool, float64, nil for null, []any for arrays and lists,
// and map[string]any keyed by tag for structures.
func (e Element) Value() (any, error) {
	switch t := e.h.typ; {
	case t.IsSignedInt():
		return e.Int()
	case t.IsUnsignedInt():
		return e.Uint()
	case t.IsBool():
		return e.Bool()
	case t.IsFloat():
		return e.Float()
	case t.IsUTF8String():
		return e.String()
	case t.IsBytes():
		return e.Bytes()
	case t == ElementTypeNull:
		return nil, nil
	case t == ElementTypeStruct:
		m := make(map[string]any)
		it := e.Members()
		for it.Next() {
			v, err := it.Element().Value()
			if err != nil {
				return nil, err
			}
			m[it.Element().Tag().String()] = v
		}
		return m, it.Err()
	case t.IsContainer():
		s := []any{}
		it := e.Members()
		for it.Next() {
			v, err := it.Element().Value()
			if err != nil {
				return nil, err
			}
			s = append(s, v)
		}
		return s, it.Err()
	}
	return nil, ErrInvalidElementType
}

// MarshalYAML renders the element's decoded value.
func (e Element) MarshalYAML() (any, error) {
	if e.raw == nil {
		return nil, nil
	}
	return e.Value()
}
