// Package pattern compiles path templates into matchers that extract typed
// parameters from a path and generate paths back from parameters.
//
// A template is a '/'-separated list of segments:
//
//	/files            literal segment
//	/:id              parameter, ":id?" makes it optional
//	/:id|d            parameter with a modifier, see below
//	/{v:major}.{:minor?}
//	                  groups with literal prefix and suffix
//	/post/{:slug}-{:id|n(4)}
//	                  literal skeleton with several captures
//	/files/*          wildcard, always the last segment
//
// The characters {:}?(), are reserved; escape them with '\'.
//
// Modifiers attach a regular expression and a value formatter to a
// capture. The built-ins are d, n, dIn, dNot, in, not, l, r, reg, u, uuid,
// w, wl, wr and date; more can be registered with AddModifier.
//
//	p := pattern.MustCompile("/user/:id|d")
//	params, ok := p.Match("/user/42") // {"id": 42}, true
//	path, err := p.Generate(map[string]any{"id": 7}) // "/user/7"
package pattern
