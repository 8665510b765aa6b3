package tlv

import "errors"

var (
	// ErrUnexpectedEOF is returned when the input ends inside an element.
	ErrUnexpectedEOF = errors.New("tlv: unexpected end of input")

	// ErrInvalidElementType is returned for control octets with an undefined type.
	ErrInvalidElementType = errors.New("tlv: invalid element type")

	// ErrTypeMismatch is returned when a value is read as the wrong type.
	ErrTypeMismatch = errors.New("tlv: type mismatch")

	// ErrNotInContainer is returned when closing a container that was never opened.
	ErrNotInContainer = errors.New("tlv: not in container")

	// ErrContainerNotClosed is returned when a container has no end marker.
	ErrContainerNotClosed = errors.New("tlv: container not closed")

	// ErrInvalidUTF8 is returned when a UTF-8 string holds invalid sequences.
	ErrInvalidUTF8 = errors.New("tlv: invalid UTF-8 string")

	// ErrAnonymousTagInStruct is returned for anonymous members of a structure.
	ErrAnonymousTagInStruct = errors.New("tlv: anonymous tag not allowed in structure")

	// ErrTaggedElementInArray is returned for tagged members of an array.
	ErrTaggedElementInArray = errors.New("tlv: tagged element not allowed in array")

	// ErrNoElement is returned when a value is accessed before Next.
	ErrNoElement = errors.New("tlv: no current element")

	// ErrOverflow is returned when a value does not fit the requested width.
	ErrOverflow = errors.New("tlv: value overflow")

	// ErrTrailingData is returned when bytes follow a complete element.
	ErrTrailingData = errors.New("tlv: trailing data after element")
)
