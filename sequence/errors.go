package sequence

import "errors"

var (
	// ErrInvalidSpec is returned when a frame specification is malformed, has a
	// non-positive step, or describes no frames.
	ErrInvalidSpec = errors.New("invalid spec")

	// ErrInvalidConstruction is returned when a constructor receives arguments
	// of the wrong number or type.
	ErrInvalidConstruction = errors.New("invalid construction")

	// ErrInvalidTemplate is returned when a template holds no frame token.
	ErrInvalidTemplate = errors.New("invalid template")
)
