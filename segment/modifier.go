package segment

import (
	"regexp"

	"github.com/spf13/cast"
)

// DefaultCapture is the expression of a capture without a modifier.
const DefaultCapture = ".+?"

// Formatter validates and optionally transforms a captured value.
// Returning the raw string with true accepts it unchanged, any other value
// with true substitutes it, and false rejects the match.
type Formatter func(value string) (any, bool)

// Modifier is a named typed-capture rule. RegExp yields the expression for
// the capture from the parsed arguments; an empty result selects
// DefaultCapture. Formatter yields the runtime value transform. Either may
// be nil.
type Modifier struct {
	RegExp    func(args []string) (string, error)
	Formatter func(args []string) (Formatter, error)
}

// Lookup resolves modifier names at compile time.
type Lookup interface {
	Modifier(name string) (Modifier, bool)
}

// Static returns a RegExp generator that ignores its arguments.
func Static(src string) func(args []string) (string, error) {
	return func([]string) (string, error) {
		return src, nil
	}
}

// format applies f to raw. A nil formatter accepts raw unchanged.
func format(f Formatter, raw string) (any, bool) {
	if f == nil {
		return raw, true
	}

	return f(raw)
}

// restrict accepts only values matching re in full.
func restrict(re *regexp.Regexp) Formatter {
	return func(value string) (any, bool) {
		return value, re.MatchString(value)
	}
}

// chain composes formatters left to right. Every stage receives the string
// form of the value produced by the stage before it.
func chain(formatters []Formatter) Formatter {
	switch len(formatters) {
	case 0:
		return nil
	case 1:
		return formatters[0]
	}

	return func(raw string) (any, bool) {
		var value any = raw

		for _, f := range formatters {
			s, err := cast.ToStringE(value)
			if err != nil {
				return nil, false
			}

			v, ok := f(s)
			if !ok {
				return nil, false
			}

			value = v
		}

		return value, true
	}
}
