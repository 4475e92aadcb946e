package cargo

import (
	"errors"
	"fmt"
)

// ManifestNotFoundError indicates that the supplied manifest path does not
// reference a readable manifest file. The extraction subprocess is never
// started in this case.
type ManifestNotFoundError struct {
	// Path is the manifest path that could not be read
	Path string

	// Err is the underlying filesystem error
	Err error
}

// Error implements the error interface for ManifestNotFoundError.
func (e *ManifestNotFoundError) Error() string {
	return fmt.Sprintf("manifest %s not found or not readable: %v", e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *ManifestNotFoundError) Unwrap() error {
	return e.Err
}

// IsManifestNotFound checks if an error is a ManifestNotFoundError using
// error unwrapping.
func IsManifestNotFound(err error) bool {
	var notFoundErr *ManifestNotFoundError
	return errors.As(err, &notFoundErr)
}

// ExtractionError indicates that the cargo subprocess failed to produce a
// metadata document: a malformed manifest, an unresolvable dependency, or a
// failed toolchain invocation. Stderr carries cargo's own diagnostic.
type ExtractionError struct {
	// Stderr is the trimmed standard error output of the cargo invocation
	Stderr string

	// Err is the subprocess error (exit status, missing binary, ...)
	Err error
}

// Error implements the error interface for ExtractionError.
func (e *ExtractionError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("cargo metadata failed: %v: %s", e.Err, e.Stderr)
	}
	return fmt.Sprintf("cargo metadata failed: %v", e.Err)
}

// Unwrap returns the subprocess error.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// IsExtractionError checks if an error is an ExtractionError using error
// unwrapping.
func IsExtractionError(err error) bool {
	var extractionErr *ExtractionError
	return errors.As(err, &extractionErr)
}
