package pattern

import (
	"github.com/fasthttp/pattern/segment"
	"github.com/spf13/cast"
)

// WildcardKey is the parameter name of a wildcard segment.
const WildcardKey = segment.WildcardKey

// Params holds the values captured by a successful match. Values are
// strings unless a modifier transformed them; the wildcard value is a
// []string.
type Params map[string]any

// String returns the string form of the named value, or "" when absent.
func (p Params) String(name string) string {
	return cast.ToString(p[name])
}

// Wildcard returns the raw segments captured by a wildcard segment.
func (p Params) Wildcard() []string {
	rest, _ := p[WildcardKey].([]string)
	return rest
}

// Has reports whether the named value was captured.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}
