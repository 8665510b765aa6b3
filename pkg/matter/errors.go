package matter

import "errors"

// Package-level errors.
var (
	// ErrEndpointExists is returned when adding an endpoint with a duplicate ID.
	ErrEndpointExists = errors.New("matter: endpoint already exists")

	// ErrEndpointNotFound is returned when an endpoint is not found.
	ErrEndpointNotFound = errors.New("matter: endpoint not found")

	// ErrRootEndpointReserved is returned when trying to add or remove
	// endpoint 0 manually.
	ErrRootEndpointReserved = errors.New("matter: endpoint 0 is reserved for root endpoint")
)
