package fid

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies a failure of an explicitly fallible Entity operation.
type Kind int

const (
	KindIO Kind = iota
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	default:
		return "i/o error"
	}
}

var (
	// ErrNotFound matches any PathError of kind KindNotFound.
	ErrNotFound = errors.New("not found")
	// ErrIO matches any PathError of kind KindIO.
	ErrIO = errors.New("i/o error")
)

// PathError records a failed operation on an entity's path.
type PathError struct {
	Op   string
	Path string
	Kind Kind
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// Is lets errors.Is match the kind sentinels.
func (e *PathError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrIO:
		return e.Kind == KindIO
	}
	return false
}

// newPathError wraps err, classifying fs.ErrNotExist as KindNotFound.
func newPathError(op, path string, err error) *PathError {
	kind := KindIO
	if errors.Is(err, fs.ErrNotExist) {
		kind = KindNotFound
	}
	return &PathError{Op: op, Path: path, Kind: kind, Err: err}
}

// KindOf reports the Kind of err, or false if err carries no PathError.
func KindOf(err error) (Kind, bool) {
	var pe *PathError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}
