package datamodel

import "errors"

// Errors returned by datamodel operations.
var (
	// ErrEndpointNotFound indicates the requested endpoint does not exist.
	ErrEndpointNotFound = errors.New("datamodel: endpoint not found")

	// ErrEndpointExists indicates an endpoint with the same ID already exists.
	ErrEndpointExists = errors.New("datamodel: endpoint already exists")

	// ErrClusterNotFound indicates the requested cluster does not exist.
	ErrClusterNotFound = errors.New("datamodel: cluster not found")

	// ErrClusterExists indicates a cluster with the same ID already exists.
	ErrClusterExists = errors.New("datamodel: cluster already exists")

	// ErrUnsupportedAttribute indicates the attribute is not supported by the cluster.
	ErrUnsupportedAttribute = errors.New("datamodel: unsupported attribute")

	// ErrUnsupportedWrite indicates the attribute does not support writes.
	ErrUnsupportedWrite = errors.New("datamodel: unsupported write")

	// ErrUnsupportedCommand indicates the command is not supported by the cluster.
	ErrUnsupportedCommand = errors.New("datamodel: unsupported command")

	// ErrInvalidDataVersion indicates a data version mismatch.
	ErrInvalidDataVersion = errors.New("datamodel: data version mismatch")

	// ErrTimedRequired indicates a timed interaction is required.
	ErrTimedRequired = errors.New("datamodel: timed interaction required")

	// ErrConstraintError indicates a value violates a constraint.
	ErrConstraintError = errors.New("datamodel: constraint error")

	// ErrResourceExhausted indicates insufficient resources.
	ErrResourceExhausted = errors.New("datamodel: resource exhausted")

	// ErrNotFound indicates a list index or other addressed item is missing.
	ErrNotFound = errors.New("datamodel: not found")

	// ErrInvalidDataType indicates a value of the wrong type or shape.
	ErrInvalidDataType = errors.New("datamodel: invalid data type")

	// ErrInvalidCommand indicates malformed command fields.
	ErrInvalidCommand = errors.New("datamodel: invalid command")

	// ErrGuardReleased indicates a guard was used after Release.
	ErrGuardReleased = errors.New("datamodel: guard released")
)
