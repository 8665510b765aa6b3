package im

import (
	"errors"

	"github.com/backkem/matter-im/pkg/datamodel"
	"github.com/backkem/matter-im/pkg/im/message"
	"github.com/backkem/matter-im/pkg/tlv"
)

// IM engine errors.
var (
	// ErrUnexpectedMessage indicates a message that is not valid in the
	// exchange's current state.
	ErrUnexpectedMessage = errors.New("im: unexpected message")

	// ErrValueAlreadyEncoded indicates a cluster encoded an attribute twice.
	ErrValueAlreadyEncoded = errors.New("im: attribute value already encoded")

	// ErrListIndexNotAllowed indicates a write addressing an element of an
	// attribute that is not a list.
	ErrListIndexNotAllowed = errors.New("im: list index on a non-list attribute")

	// ErrInvalidInterval indicates a subscription floor above its ceiling.
	ErrInvalidInterval = errors.New("im: min interval floor exceeds max interval ceiling")
)

// ErrorToStatus maps an error to an IM status code.
func ErrorToStatus(err error) message.Status {
	if err == nil {
		return message.StatusSuccess
	}

	var se *message.StatusError
	if errors.As(err, &se) {
		return se.Status
	}

	switch {
	case errors.Is(err, datamodel.ErrEndpointNotFound):
		return message.StatusUnsupportedEndpoint
	case errors.Is(err, datamodel.ErrClusterNotFound):
		return message.StatusUnsupportedCluster
	case errors.Is(err, datamodel.ErrUnsupportedAttribute):
		return message.StatusUnsupportedAttribute
	case errors.Is(err, datamodel.ErrUnsupportedWrite):
		return message.StatusUnsupportedWrite
	case errors.Is(err, datamodel.ErrUnsupportedCommand):
		return message.StatusUnsupportedCommand
	case errors.Is(err, datamodel.ErrInvalidDataVersion):
		return message.StatusDataVersionMismatch
	case errors.Is(err, datamodel.ErrTimedRequired):
		return message.StatusNeedsTimedInteraction
	case errors.Is(err, datamodel.ErrConstraintError):
		return message.StatusConstraintError
	case errors.Is(err, datamodel.ErrResourceExhausted):
		return message.StatusResourceExhausted
	case errors.Is(err, datamodel.ErrNotFound):
		return message.StatusNotFound
	case errors.Is(err, datamodel.ErrInvalidDataType):
		return message.StatusInvalidDataType
	case errors.Is(err, datamodel.ErrInvalidCommand):
		return message.StatusInvalidCommand
	case errors.Is(err, ErrInvalidInterval),
		errors.Is(err, ErrUnexpectedMessage),
		errors.Is(err, ErrListIndexNotAllowed),
		errors.Is(err, ErrChunkingInProgress):
		return message.StatusInvalidAction
	case isDecodeError(err):
		return message.StatusInvalidAction
	default:
		return message.StatusFailure
	}
}

// StatusIBFor returns the status block for err, keeping the cluster
// specific status of a *message.StatusError.
func StatusIBFor(err error) message.StatusIB {
	var se *message.StatusError
	if errors.As(err, &se) {
		return se.StatusIB()
	}
	return message.StatusIB{Status: ErrorToStatus(err)}
}

func isDecodeError(err error) bool {
	for _, target := range []error{
		message.ErrInvalidData,
		message.ErrInvalidType,
		message.ErrMissingField,
		message.ErrInvalidPath,
		message.ErrCommandNotFound,
		message.ErrAttributeIDRange,
		message.ErrUnknownOpcode,
		tlv.ErrUnexpectedEOF,
		tlv.ErrInvalidElementType,
		tlv.ErrTypeMismatch,
		tlv.ErrContainerNotClosed,
		tlv.ErrInvalidUTF8,
		tlv.ErrAnonymousTagInStruct,
		tlv.ErrTaggedElementInArray,
		tlv.ErrOverflow,
		tlv.ErrTrailingData,
		tlv.ErrNotInContainer,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
