package pattern

import (
	"github.com/fasthttp/pattern/segment"
	"github.com/valyala/bytebufferpool"
)

// Pattern is a compiled path template. It is immutable and safe for
// concurrent use.
type Pattern struct {
	path               string
	keys               []string
	staticSegmentCount int

	// prefix holds the unescaped literals of the leading Plain segments.
	prefix []string

	// segments is empty when every segment is literal; literal then holds
	// the unescaped path compared against candidates.
	segments []segment.Segment
	literal  string
}

// Path returns the normalized template path.
func (p *Pattern) Path() string {
	return p.path
}

func (p *Pattern) String() string {
	return p.path
}

// Keys returns the parameter names in order of first appearance. A
// wildcard segment contributes "*".
func (p *Pattern) Keys() []string {
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)

	return keys
}

// StaticSegmentCount returns the number of '/'-delimited segments of the
// template path.
func (p *Pattern) StaticSegmentCount() int {
	return p.staticSegmentCount
}

// Prefix returns the unescaped literals of the segments preceding the first
// parameter or wildcard. A static pattern returns all of its segments.
func (p *Pattern) Prefix() []string {
	prefix := make([]string, len(p.prefix))
	copy(prefix, p.prefix)

	return prefix
}

// IsStatic reports whether the pattern has no parameters at all.
func (p *Pattern) IsStatic() bool {
	return len(p.segments) == 0
}

// HasWildcard reports whether the pattern ends with a wildcard segment.
func (p *Pattern) HasWildcard() bool {
	n := len(p.segments)
	return n > 0 && p.segments[n-1].Type() == segment.TypeList
}

// Match matches path against the pattern. It returns the captured
// parameters and true on success, nil and false otherwise.
func (p *Pattern) Match(path string, opts ...MatchOption) (Params, bool) {
	var o matchOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.decode != nil {
		path = o.decode(path)
	}

	path = Normalize(path)

	if len(p.segments) == 0 {
		if path != p.literal {
			return nil, false
		}

		return Params{}, true
	}

	raws := splitPath(path)
	params := make(Params, len(p.keys))
	index := 0

	for _, seg := range p.segments {
		offset, ok := seg.Compare(raws, index, params)
		if !ok {
			return nil, false
		}

		index += offset
	}

	if index != len(raws) {
		return nil, false
	}

	return params, true
}

// Generate builds a path from data. Segments rendering to the empty string
// are left out. It fails when a required parameter is missing.
func (p *Pattern) Generate(data map[string]any, opts ...GenerateOption) (string, error) {
	if len(p.segments) == 0 {
		return p.literal, nil
	}

	var o generateOptions
	for _, opt := range opts {
		opt(&o)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, seg := range p.segments {
		s, err := seg.Replace(data, o.encode)
		if err != nil {
			return "", err
		}

		if s == "" {
			continue
		}

		buf.WriteString("/")
		buf.WriteString(s)
	}

	if buf.Len() == 0 {
		return "/", nil
	}

	return buf.String(), nil
}

// Replace is a synonym of Generate.
func (p *Pattern) Replace(data map[string]any, opts ...GenerateOption) (string, error) {
	return p.Generate(data, opts...)
}
