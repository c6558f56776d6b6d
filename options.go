package pattern

import (
	"log/slog"
	"net/url"
)

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger receiving compile and registration records.
// A nil logger discards them.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger == nil {
			logger = noopLogger
		}

		c.logger = logger
	}
}

// WithRegistry makes the compiler resolve modifiers through r, which may be
// shared between compilers.
func WithRegistry(r *Registry) Option {
	return func(c *Compiler) {
		if r != nil {
			c.modifiers = r
		}
	}
}

// WithCache makes the compiler memoize patterns in cache, which may be
// shared between compilers using the same registry.
func WithCache(cache *Cache) Option {
	return func(c *Compiler) {
		if cache != nil {
			c.cache = cache
		}
	}
}

type patternOptions struct {
	cacheable bool
}

// CacheOption configures Compiler.Pattern.
type CacheOption func(*patternOptions)

// Cacheable controls whether the pattern is looked up in and stored into
// the cache. Patterns are cacheable by default.
func Cacheable(cacheable bool) CacheOption {
	return func(o *patternOptions) {
		o.cacheable = cacheable
	}
}

type matchOptions struct {
	decode func(string) string
}

// MatchOption configures Pattern.Match.
type MatchOption func(*matchOptions)

// Decode percent-decodes the candidate path before matching.
func Decode() MatchOption {
	return DecodeWith(DecodePath)
}

// DecodeWith applies fn to the candidate path before matching. A nil fn
// selects DecodePath.
func DecodeWith(fn func(string) string) MatchOption {
	return func(o *matchOptions) {
		if fn == nil {
			fn = DecodePath
		}

		o.decode = fn
	}
}

type generateOptions struct {
	encode func(string) string
}

// GenerateOption configures Pattern.Generate.
type GenerateOption func(*generateOptions)

// Encode percent-encodes every parameter value written into the path.
func Encode() GenerateOption {
	return EncodeWith(url.PathEscape)
}

// EncodeWith applies fn to every parameter value written into the path. A
// nil fn selects url.PathEscape.
func EncodeWith(fn func(string) string) GenerateOption {
	return func(o *generateOptions) {
		if fn == nil {
			fn = url.PathEscape
		}

		o.encode = fn
	}
}

// DecodePath percent-decodes path. Malformed escapes leave path unchanged.
func DecodePath(path string) string {
	decoded, err := url.PathUnescape(path)
	if err != nil {
		return path
	}

	return decoded
}
