package fsops

import (
	"errors"
	"fmt"
	"io/fs"
)

// Error kinds. Match them with errors.Is.
var (
	ErrPathNotFound        = errors.New("path not found")
	ErrUnreadable          = errors.New("unreadable")
	ErrDecode              = errors.New("invalid text encoding")
	ErrMetadataUnavailable = errors.New("metadata unavailable")
)

// PathError records a failed filesystem operation on a single path.
// It unwraps to both its kind and the underlying cause.
type PathError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *PathError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// newPathError classifies err as not-found or unreadable.
// The os.PathError wrapper is dropped so the path is not printed twice.
func newPathError(op, path string, err error) *PathError {
	kind := ErrUnreadable
	if errors.Is(err, fs.ErrNotExist) {
		kind = ErrPathNotFound
	}
	var pe *fs.PathError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	return &PathError{Op: op, Path: path, Kind: kind, Err: err}
}
