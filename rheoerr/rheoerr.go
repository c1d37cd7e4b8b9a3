// Package rheoerr defines the typed error taxonomy shared by every
// Rheo.Storage component, and the adapter that maps low-level OS
// errors onto it at the filesystem boundary.
package rheoerr

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"

	pkgerrors "github.com/pkg/errors"
)

// Code identifies the class of failure a Rheo.Storage operation
// reports. Callers should compare against these, not against the
// wrapped cause.
type Code int

const (
	// Unknown is never returned directly; it exists so a zero Code
	// fails comparisons rather than aliasing a real code.
	Unknown Code = iota
	NotFound
	AlreadyExists
	PermissionDenied
	InvalidArgument
	InvalidState
	InvalidFormat
	IO
	Cancelled
	Unsupported
)

func (c Code) String() string {
	switch c {
	case NotFound:
		return "NotFound"
	case AlreadyExists:
		return "AlreadyExists"
	case PermissionDenied:
		return "PermissionDenied"
	case InvalidArgument:
		return "InvalidArgument"
	case InvalidState:
		return "InvalidState"
	case InvalidFormat:
		return "InvalidFormat"
	case IO:
		return "IO"
	case Cancelled:
		return "Cancelled"
	case Unsupported:
		return "Unsupported"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by Rheo.Storage. The
// wrapped cause (if any) retains its pkg/errors stack trace.
type Error struct {
	Code    Code
	Op      string // operation that failed, e.g. "ops.Copy"
	Path    string // path involved, if any
	cause   error
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.cause != nil:
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Code, e.cause)
	case e.Path != "":
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Code)
	case e.cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.cause)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
}

func (e *Error) Unwrap() error { return e.cause }

// New constructs an *Error with a stack-traced cause (cause may be
// nil).
func New(code Code, op, path string, cause error) *Error {
	var wrapped error
	if cause != nil {
		wrapped = pkgerrors.WithStack(cause)
	}
	return &Error{Code: code, Op: op, Path: path, cause: wrapped}
}

// Is reports whether err (or anything it wraps) is a Rheo.Storage
// *Error of the given Code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// FromOS maps an os/syscall-level error onto the taxonomy, at the
// filesystem adapter boundary named in spec §7. Unrecognized errors
// become IO.
func FromOS(op, path string, err error) *Error {
	if err == nil {
		return nil
	}
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr
	}
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, os.ErrNotExist):
		return New(NotFound, op, path, err)
	case errors.Is(err, fs.ErrExist), errors.Is(err, os.ErrExist):
		return New(AlreadyExists, op, path, err)
	case errors.Is(err, fs.ErrPermission), errors.Is(err, os.ErrPermission):
		return New(PermissionDenied, op, path, err)
	case errors.Is(err, syscall.ENOSPC), errors.Is(err, syscall.EROFS):
		return New(IO, op, path, err)
	case errors.Is(err, context.Canceled):
		return New(Cancelled, op, path, err)
	default:
		return New(IO, op, path, err)
	}
}
