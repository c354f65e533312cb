package compare

import (
	"errors"
	"fmt"
)

// ErrNotRegular is wrapped by an OpenError when a path resolves to a
// directory, device or other non-regular file.
var ErrNotRegular = errors.New("not a regular file")

// OpenError reports a path that could not be opened for reading.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// StatError reports a failure to read size metadata for an opened path.
type StatError struct {
	Path string
	Err  error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("stat %s: %v", e.Path, e.Err)
}

func (e *StatError) Unwrap() error { return e.Err }

// ReadError reports an I/O failure after both files were opened.
// Offset is where the failing chunk started.
type ReadError struct {
	Path   string
	Offset int64
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s at offset %d: %v", e.Path, e.Offset, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
