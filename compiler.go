package pattern

import (
	"log/slog"

	"github.com/fasthttp/pattern/segment"
)

var noopLogger = slog.New(slog.DiscardHandler)

// Compiler compiles pattern paths. It owns the modifier registry the
// patterns are compiled against and the cache Pattern memoizes into.
type Compiler struct {
	modifiers *Registry
	cache     *Cache
	logger    *slog.Logger
}

// NewCompiler returns a compiler with its own registry and cache unless
// options supply shared ones.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		modifiers: NewRegistry(),
		cache:     NewCache(),
		logger:    noopLogger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Registry returns the modifier registry of c.
func (c *Compiler) Registry() *Registry {
	return c.modifiers
}

// Cache returns the pattern cache of c.
func (c *Compiler) Cache() *Cache {
	return c.cache
}

// AddModifier registers a custom modifier. Built-in names are rejected.
func (c *Compiler) AddModifier(name string, m Modifier) error {
	if err := c.modifiers.Add(name, m); err != nil {
		return err
	}

	c.logger.Debug("modifier registered", "name", name)

	return nil
}

// Compile compiles path without consulting the cache.
func (c *Compiler) Compile(path string) (*Pattern, error) {
	normalized := Normalize(path)
	raws := splitPath(normalized)

	b := segment.NewBuilder(c.modifiers)
	segments := make([]segment.Segment, 0, len(raws))
	prefix := make([]string, 0, len(raws))
	static := true

	for i, raw := range raws {
		seg, err := b.Build(raw)
		if err != nil {
			return nil, &CompileError{Path: path, Index: i, Err: err}
		}

		switch seg.Type() {
		case segment.TypePlain:
			if static {
				prefix = append(prefix, seg.(*segment.Plain).Literal)
			}
		case segment.TypeList:
			if i != len(raws)-1 {
				return nil, &CompileError{Path: path, Index: i, Err: ErrWildcardPosition}
			}

			static = false
		default:
			static = false
		}

		segments = append(segments, seg)
	}

	p := &Pattern{
		path:               normalized,
		keys:               b.Keys(),
		staticSegmentCount: len(raws),
		prefix:             prefix,
	}

	if static {
		p.literal = literalPath(segments)
	} else {
		p.segments = segments
	}

	c.logger.Debug("pattern compiled",
		"path", p.path,
		"keys", p.keys,
		"static", static,
	)

	return p, nil
}

// MustCompile is like Compile but panics if path does not compile.
func (c *Compiler) MustCompile(path string) *Pattern {
	p, err := c.Compile(path)
	if err != nil {
		panic(err)
	}

	return p
}

// Pattern returns the cached pattern for path, compiling and caching it on
// first use.
func (c *Compiler) Pattern(path string, opts ...CacheOption) (*Pattern, error) {
	o := patternOptions{cacheable: true}
	for _, opt := range opts {
		opt(&o)
	}

	if !o.cacheable {
		return c.Compile(path)
	}

	p, hit, err := c.cache.fetch(path, c.Compile)
	if err != nil {
		return nil, err
	}

	if !hit {
		c.logger.Debug("pattern cached", "path", path, "size", c.cache.Len())
	}

	return p, nil
}

// MatchPath matches candidate against the pattern compiled from template.
func (c *Compiler) MatchPath(template, candidate string, opts ...MatchOption) (Params, bool, error) {
	p, err := c.Pattern(template)
	if err != nil {
		return nil, false, err
	}

	params, ok := p.Match(candidate, opts...)

	return params, ok, nil
}

// MatchToPath generates a path from the pattern compiled from template.
func (c *Compiler) MatchToPath(template string, data map[string]any, opts ...GenerateOption) (string, error) {
	p, err := c.Pattern(template)
	if err != nil {
		return "", err
	}

	return p.Generate(data, opts...)
}

// ReplacePath is a synonym of MatchToPath.
func (c *Compiler) ReplacePath(template string, data map[string]any, opts ...GenerateOption) (string, error) {
	return c.MatchToPath(template, data, opts...)
}

// literalPath joins the literals of an all-Plain segment list.
func literalPath(segments []segment.Segment) string {
	if len(segments) == 0 {
		return "/"
	}

	n := 0
	for _, seg := range segments {
		n += len(seg.(*segment.Plain).Literal) + 1
	}

	buf := make([]byte, 0, n)
	for _, seg := range segments {
		buf = append(buf, '/')
		buf = append(buf, seg.(*segment.Plain).Literal...)
	}

	return string(buf)
}
