package segment

import (
	"regexp"
	"strings"

	"github.com/spf13/cast"
)

// Type identifies a Segment variant.
type Type uint8

const (
	// TypePlain is a literal segment.
	TypePlain Type = iota
	// TypeValue is a segment holding exactly one parameter.
	TypeValue
	// TypeValues is a literal skeleton with one or more captures.
	TypeValues
	// TypeList is the trailing wildcard.
	TypeList
)

// WildcardKey is the reserved parameter name of the List segment.
const WildcardKey = "*"

// Encoder transforms a parameter value before it is written into a path.
type Encoder func(string) string

// Segment is one compiled '/'-delimited unit of a pattern. The set of
// implementations is closed: *Plain, *Value, *Values and *List.
type Segment interface {
	Type() Type

	// Compare matches the raw segment at index i of raws. It returns how many
	// raw segments were consumed, writing captured values into params.
	Compare(raws []string, i int, params map[string]any) (offset int, ok bool)

	// Replace renders the segment from data. An empty result means the
	// segment is absent from the generated path.
	Replace(data map[string]any, encode Encoder) (string, error)

	sealed()
}

// Plain is a literal segment.
type Plain struct {
	Literal string
}

func (*Plain) Type() Type { return TypePlain }

func (s *Plain) Compare(raws []string, i int, _ map[string]any) (int, bool) {
	if i >= len(raws) || raws[i] != s.Literal {
		return 0, false
	}

	return 1, true
}

func (s *Plain) Replace(map[string]any, Encoder) (string, error) {
	return s.Literal, nil
}

func (*Plain) sealed() {}

// Value is a segment made of a single, possibly optional, parameter.
type Value struct {
	Name      string
	Required  bool
	Formatter Formatter
}

func (*Value) Type() Type { return TypeValue }

func (s *Value) Compare(raws []string, i int, params map[string]any) (int, bool) {
	if i >= len(raws) {
		return 0, !s.Required
	}

	raw := raws[i]
	if raw == "" {
		if s.Required {
			return 0, false
		}

		return 1, true
	}

	v, ok := format(s.Formatter, raw)
	if !ok {
		return 0, false
	}

	params[s.Name] = v

	return 1, true
}

func (s *Value) Replace(data map[string]any, encode Encoder) (string, error) {
	return lookup(data, s.Name, s.Required, encode)
}

func (*Value) sealed() {}

// Capture is one named sub-capture of a Values segment.
type Capture struct {
	Name      string
	Prefix    string
	Suffix    string
	Required  bool
	Formatter Formatter

	group int
}

// Entity is either literal text or a Capture, in template order.
type Entity struct {
	Literal string
	Capture *Capture
}

// Values is a segment mixing literal text with captures. It is matched
// with one anchored expression over the whole raw segment.
type Values struct {
	Regexp   *regexp.Regexp
	Entities []Entity

	optional bool
}

func (*Values) Type() Type { return TypeValues }

func (s *Values) Compare(raws []string, i int, params map[string]any) (int, bool) {
	if i >= len(raws) {
		return 0, s.optional
	}

	raw := raws[i]

	m := s.Regexp.FindStringSubmatchIndex(raw)
	if m == nil {
		return 0, s.optional
	}

	for _, e := range s.Entities {
		c := e.Capture
		if c == nil {
			continue
		}

		start, end := m[2*c.group], m[2*c.group+1]
		if start < 0 {
			continue
		}

		v, ok := format(c.Formatter, raw[start:end])
		if !ok {
			return 0, false
		}

		params[c.Name] = v
	}

	return 1, true
}

// Replace renders literal text verbatim and every present capture with its
// prefix and suffix. Absent optional captures render nothing at all, while
// their sibling literals are still written.
func (s *Values) Replace(data map[string]any, encode Encoder) (string, error) {
	var b strings.Builder

	for _, e := range s.Entities {
		c := e.Capture
		if c == nil {
			b.WriteString(e.Literal)
			continue
		}

		v, err := lookup(data, c.Name, c.Required, encode)
		if err != nil {
			return "", err
		}

		if v == "" {
			continue
		}

		b.WriteString(c.Prefix)
		b.WriteString(v)
		b.WriteString(c.Suffix)
	}

	return b.String(), nil
}

func (*Values) sealed() {}

// List is the wildcard segment. It consumes every remaining raw segment.
type List struct{}

func (*List) Type() Type { return TypeList }

func (*List) Compare(raws []string, i int, params map[string]any) (int, bool) {
	rest := []string{}
	if i < len(raws) {
		rest = append(rest, raws[i:]...)
	}

	params[WildcardKey] = rest

	return len(rest), true
}

func (*List) Replace(data map[string]any, _ Encoder) (string, error) {
	v, ok := data[WildcardKey]
	if !ok || v == nil {
		return "", nil
	}

	items, err := cast.ToStringSliceE(v)
	if err != nil {
		return "", &Error{Segment: WildcardKey, Detail: WildcardKey, Err: ErrInvalidValue}
	}

	return strings.Join(items, "/"), nil
}

func (*List) sealed() {}

// lookup stringifies data[name]. Missing or empty values are an error when
// required and the empty string otherwise.
func lookup(data map[string]any, name string, required bool, encode Encoder) (string, error) {
	var s string

	if v, ok := data[name]; ok && v != nil {
		str, err := cast.ToStringE(v)
		if err != nil {
			return "", &Error{Segment: name, Detail: name, Err: ErrInvalidValue}
		}

		s = str
	}

	if s == "" {
		if required {
			return "", &MissingParamError{Name: name}
		}

		return "", nil
	}

	if encode != nil {
		s = encode(s)
	}

	return s, nil
}
