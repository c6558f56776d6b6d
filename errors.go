package pattern

import (
	"errors"
	"strconv"

	"github.com/fasthttp/pattern/segment"
)

var (
	// ErrWildcardPosition indicates a wildcard segment that is not the last one.
	ErrWildcardPosition = errors.New("wildcard must be the last segment")

	// ErrReservedModifier indicates an attempt to redefine a built-in modifier.
	ErrReservedModifier = errors.New("modifier name is reserved")

	// ErrInvalidModifierName indicates a modifier name outside [A-Za-z0-9_]+.
	ErrInvalidModifierName = errors.New("invalid modifier name")

	// ErrDuplicateKey indicates a parameter name used twice in one path.
	ErrDuplicateKey = segment.ErrDuplicateKey

	// ErrUnknownModifier indicates a modifier missing from the registry.
	ErrUnknownModifier = segment.ErrUnknownModifier

	// ErrInvalidArgument indicates modifier arguments the modifier refuses.
	ErrInvalidArgument = segment.ErrInvalidArgument

	// ErrMissingParam indicates a required parameter absent at generation time.
	ErrMissingParam = segment.ErrMissingParam
)

// CompileError reports a pattern path that failed to compile.
type CompileError struct {
	Path string
	// Index is the position of the offending segment in the path.
	Index int
	Err   error
}

func (e *CompileError) Error() string {
	return "pattern: compile " + strconv.Quote(e.Path) + ": segment " + strconv.Itoa(e.Index) + ": " + e.Err.Error()
}

func (e *CompileError) Unwrap() error {
	return e.Err
}
