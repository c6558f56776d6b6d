package pattern

var std = NewCompiler()

// Default returns the compiler behind the package-level functions.
func Default() *Compiler {
	return std
}

// CompilePath compiles path without caching.
func CompilePath(path string) (*Pattern, error) {
	return std.Compile(path)
}

// MustCompile is like CompilePath but panics if path does not compile.
func MustCompile(path string) *Pattern {
	return std.MustCompile(path)
}

// PathToPattern returns the cached pattern for path.
func PathToPattern(path string, opts ...CacheOption) (*Pattern, error) {
	return std.Pattern(path, opts...)
}

// MatchPath matches candidate against the cached pattern for template.
func MatchPath(template, candidate string, opts ...MatchOption) (Params, bool, error) {
	return std.MatchPath(template, candidate, opts...)
}

// MatchToPath generates a path from the cached pattern for template.
func MatchToPath(template string, data map[string]any, opts ...GenerateOption) (string, error) {
	return std.MatchToPath(template, data, opts...)
}

// ReplacePath is a synonym of MatchToPath.
func ReplacePath(template string, data map[string]any, opts ...GenerateOption) (string, error) {
	return std.ReplacePath(template, data, opts...)
}

// AddModifier registers a custom modifier with the default compiler.
func AddModifier(name string, m Modifier) error {
	return std.AddModifier(name, m)
}
