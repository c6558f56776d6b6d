package router

import (
	"github.com/fasthttp/pattern"
)

// Route is a registered method and pattern pair.
type Route struct {
	router  *Router
	method  string
	pattern *pattern.Pattern
	name    string
}

// Name registers the route under name for reverse routing with Router.URL.
// It panics if the name is empty or already taken.
func (rt *Route) Name(name string) *Route {
	switch {
	case name == "":
		panic("route name must not be empty")
	case rt.name != "":
		panic("route '" + rt.pattern.Path() + "' is already named '" + rt.name + "'")
	}

	if _, ok := rt.router.names[name]; ok {
		panic("route name '" + name + "' is already registered")
	}

	rt.name = name
	rt.router.names[name] = rt

	return rt
}

// Method returns the HTTP method of the route.
func (rt *Route) Method() string {
	return rt.method
}

// Path returns the normalized pattern path of the route.
func (rt *Route) Path() string {
	return rt.pattern.Path()
}

// Pattern returns the compiled pattern of the route.
func (rt *Route) Pattern() *pattern.Pattern {
	return rt.pattern
}

// URL generates a path for the route from data. Parameter values are
// percent-encoded.
func (rt *Route) URL(data map[string]any) (string, error) {
	return rt.pattern.Generate(data, pattern.Encode())
}
