package message

import "errors"

// Decoding errors.
var (
	ErrInvalidType   = errors.New("im: invalid TLV type")
	ErrMissingField  = errors.New("im: missing required field")
	ErrUnknownOpcode = errors.New("im: unknown opcode")
)

// Addressing errors.
var (
	// ErrInvalidPath is returned when a concrete path is required but a
	// component is a wildcard.
	ErrInvalidPath = errors.New("im: path is a wildcard")

	// ErrCommandNotFound is returned when a command path carries no command id.
	ErrCommandNotFound = errors.New("im: command not found")

	// ErrAttributeIDRange is returned when a leaf id does not fit an attribute id.
	ErrAttributeIDRange = errors.New("im: attribute id out of range")
)

var (
	// ErrInvalidData is returned when a payload cannot be interpreted.
	ErrInvalidData = errors.New("im: invalid data")

	// ErrUnbalancedValue is returned when a value provider leaves a
	// container open or closes one it did not open.
	ErrUnbalancedValue = errors.New("im: value left containers unbalanced")

	// ErrNoValue is returned when encoding an empty EncodeValue.
	ErrNoValue = errors.New("im: no value")
)
