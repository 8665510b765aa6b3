package clusters

import (
	"fmt"

	"github.com/backkem/matter-im/pkg/datamodel"
	"github.com/backkem/matter-im/pkg/im/message"
	"github.com/backkem/matter-im/pkg/tlv"
)

// StructValue returns a provider that writes a structure and lets fn fill
// in its context-tagged members.
func StructValue(fn func(w *tlv.Writer) error) message.EncodeValue {
	return message.ProvidedValue(message.ValueEncoderFunc(func(w *tlv.Writer, tag tlv.Tag) error {
		if err := w.StartStructure(tag); err != nil {
			return err
		}
		if err := fn(w); err != nil {
			return err
		}
		return w.EndContainer()
	}))
}

// ArrayValue returns a provider that writes an array of n anonymous items,
// calling item for each index.
func ArrayValue(n int, item func(w *tlv.Writer, i int) error) message.EncodeValue {
	return message.ProvidedValue(message.ValueEncoderFunc(func(w *tlv.Writer, tag tlv.Tag) error {
		if err := w.StartArray(tag); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := item(w, i); err != nil {
				return err
			}
		}
		return w.EndContainer()
	}))
}

// DecodeStruct walks the members of a structure element. Members with
// non-context tags are skipped. Errors from fn are returned unchanged;
// structural errors wrap datamodel.ErrInvalidDataType.
func DecodeStruct(e tlv.Element, fn func(tag uint8, m tlv.Element) error) error {
	if e.Type() != tlv.ElementTypeStruct {
		return fmt.Errorf("%w: expected structure, got %s", datamodel.ErrInvalidDataType, e.Type())
	}
	it := e.Members()
	for it.Next() {
		m := it.Element()
		if !m.Tag().IsContext() {
			continue
		}
		if err := fn(uint8(m.Tag().TagNumber()), m); err != nil {
			return err
		}
	}
	if err := it.Err(); err != nil {
		return fmt.Errorf("%w: %v", datamodel.ErrInvalidDataType, err)
	}
	return nil
}

// DecodeString reads a UTF-8 string member no longer than maxLen bytes.
func DecodeString(m tlv.Element, maxLen int) (string, error) {
	s, err := m.String()
	if err != nil {
		return "", fmt.Errorf("%w: %v", datamodel.ErrInvalidDataType, err)
	}
	if len(s) > maxLen {
		return "", fmt.Errorf("%w: string of %d bytes exceeds %d", datamodel.ErrConstraintError, len(s), maxLen)
	}
	return s, nil
}

// MissingField reports a required structure member that was not present.
func MissingField(name string) error {
	return fmt.Errorf("%w: missing field %s", datamodel.ErrInvalidDataType, name)
}
