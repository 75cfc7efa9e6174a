package variability

import "errors"

var (
	// ErrUnknownSource is returned when an explicit source id is not registered
	ErrUnknownSource = errors.New("unknown variability source")

	// ErrNoSources is returned when a registry is built without any sources
	ErrNoSources = errors.New("no variability sources configured")

	// ErrUnknownKind is returned for an unrecognized model kind
	ErrUnknownKind = errors.New("unknown model kind")
)
