package segment

import (
	"errors"
	"strconv"
)

var (
	// ErrUnterminatedGroup indicates a '{' without a matching '}'.
	ErrUnterminatedGroup = errors.New("unterminated group")

	// ErrNestedGroup indicates a '{' inside another group.
	ErrNestedGroup = errors.New("groups cannot be nested")

	// ErrEmptyGroup indicates a group without a parameter name.
	ErrEmptyGroup = errors.New("group must contain a parameter name")

	// ErrGroupNames indicates a group holding more than one parameter name.
	ErrGroupNames = errors.New("group must contain exactly one parameter name")

	// ErrEmptyName indicates a ':' that is not followed by a name.
	ErrEmptyName = errors.New("empty parameter name")

	// ErrEmptyModifier indicates a '|' that is not followed by a modifier name.
	ErrEmptyModifier = errors.New("empty modifier name")

	// ErrUnterminatedArguments indicates a modifier argument list without ')'.
	ErrUnterminatedArguments = errors.New("unterminated modifier argument list")

	// ErrEmptyArgument indicates an empty modifier argument between separators.
	ErrEmptyArgument = errors.New("empty modifier argument")

	// ErrTrailingEscape indicates a '\' at the end of the segment.
	ErrTrailingEscape = errors.New("escape at end of input")

	// ErrUnexpectedChar indicates a reserved character outside of its context.
	ErrUnexpectedChar = errors.New("unexpected character")

	// ErrUnknownModifier indicates a modifier name missing from the registry.
	ErrUnknownModifier = errors.New("unknown modifier")

	// ErrInvalidArgument indicates modifier arguments the modifier refuses.
	ErrInvalidArgument = errors.New("invalid modifier argument")

	// ErrDuplicateKey indicates a parameter name used twice in one path.
	ErrDuplicateKey = errors.New("duplicate parameter name")

	// ErrInvalidRegexp indicates a synthesized expression that does not compile.
	ErrInvalidRegexp = errors.New("invalid regular expression")

	// ErrMissingParam indicates a required parameter absent at generation time.
	ErrMissingParam = errors.New("missing required parameter")

	// ErrInvalidValue indicates generation data that cannot be stringified.
	ErrInvalidValue = errors.New("invalid parameter value")
)

// Error describes a failure to compile one segment template.
type Error struct {
	Segment string
	Pos     int
	// Detail is the offending name or character, when there is one.
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := "segment " + strconv.Quote(e.Segment) + " at " + strconv.Itoa(e.Pos) + ": " + e.Err.Error()
	if e.Detail != "" {
		msg += " " + strconv.Quote(e.Detail)
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// MissingParamError reports the name of a required parameter absent at
// generation time.
type MissingParamError struct {
	Name string
}

func (e *MissingParamError) Error() string {
	return ErrMissingParam.Error() + " " + strconv.Quote(e.Name)
}

func (e *MissingParamError) Unwrap() error {
	return ErrMissingParam
}
