package turtle

import (
	"errors"
	"fmt"
)

// Common errors returned by Canvas operations.
var (
	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("turtle: invalid dimensions")

	// ErrCanvasClosed is returned when operations are attempted on a destroyed canvas.
	ErrCanvasClosed = errors.New("turtle: canvas is closed")

	// ErrConstruction is matched by every error New returns when a render
	// resource fails to allocate, compile, link or attach.
	ErrConstruction = errors.New("turtle: canvas construction failed")

	// ErrUnsupportedTarget is returned by Render when the backend cannot
	// composite onto the given target.
	ErrUnsupportedTarget = errors.New("turtle: unsupported render target")

	// ErrBackendInUse is returned when a backend is passed to a second canvas.
	ErrBackendInUse = errors.New("turtle: backend already initialized")
)

// ConstructionError reports which render resource could not be created.
// errors.Is(err, ErrConstruction) is true for every ConstructionError.
type ConstructionError struct {
	// Resource names the failed resource (e.g., "line shader", "canvas texture").
	Resource string
	Err      error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("turtle: create %s: %v", e.Resource, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// Is reports whether target is ErrConstruction.
func (e *ConstructionError) Is(target error) bool { return target == ErrConstruction }

// NewConstructionError wraps err as a failure to create resource.
func NewConstructionError(resource string, err error) error {
	return &ConstructionError{Resource: resource, Err: err}
}
