package router

import (
	"github.com/valyala/fasthttp"
)

// Group registers routes under a common path prefix, wrapping their
// handlers with the group's middleware.
type Group struct {
	router     *Router
	prefix     string
	middleware []func(fasthttp.RequestHandler) fasthttp.RequestHandler
}

// Group returns a new sub-group inheriting the group's middleware.
// The path "/" keeps the group's prefix.
func (g *Group) Group(path string) *Group {
	validateGroupPath(path)

	prefix := g.prefix
	if path != "/" {
		prefix += path
	}

	middleware := make([]func(fasthttp.RequestHandler) fasthttp.RequestHandler, len(g.middleware))
	copy(middleware, g.middleware)

	return &Group{
		router:     g.router,
		prefix:     prefix,
		middleware: middleware,
	}
}

// GET is a shortcut for group.Handle(fasthttp.MethodGet, path, handler)
func (g *Group) GET(path string, handler fasthttp.RequestHandler) *Route {
	return g.Handle(fasthttp.MethodGet, path, handler)
}

// HEAD is a shortcut for group.Handle(fasthttp.MethodHead, path, handler)
func (g *Group) HEAD(path string, handler fasthttp.RequestHandler) *Route {
	return g.Handle(fasthttp.MethodHead, path, handler)
}

// POST is a shortcut for group.Handle(fasthttp.MethodPost, path, handler)
func (g *Group) POST(path string, handler fasthttp.RequestHandler) *Route {
	return g.Handle(fasthttp.MethodPost, path, handler)
}

// PUT is a shortcut for group.Handle(fasthttp.MethodPut, path, handler)
func (g *Group) PUT(path string, handler fasthttp.RequestHandler) *Route {
	return g.Handle(fasthttp.MethodPut, path, handler)
}

// PATCH is a shortcut for group.Handle(fasthttp.MethodPatch, path, handler)
func (g *Group) PATCH(path string, handler fasthttp.RequestHandler) *Route {
	return g.Handle(fasthttp.MethodPatch, path, handler)
}

// DELETE is a shortcut for group.Handle(fasthttp.MethodDelete, path, handler)
func (g *Group) DELETE(path string, handler fasthttp.RequestHandler) *Route {
	return g.Handle(fasthttp.MethodDelete, path, handler)
}

// CONNECT is a shortcut for group.Handle(fasthttp.MethodConnect, path, handler)
func (g *Group) CONNECT(path string, handler fasthttp.RequestHandler) *Route {
	return g.Handle(fasthttp.MethodConnect, path, handler)
}

// OPTIONS is a shortcut for group.Handle(fasthttp.MethodOptions, path, handler)
func (g *Group) OPTIONS(path string, handler fasthttp.RequestHandler) *Route {
	return g.Handle(fasthttp.MethodOptions, path, handler)
}

// TRACE is a shortcut for group.Handle(fasthttp.MethodTrace, path, handler)
func (g *Group) TRACE(path string, handler fasthttp.RequestHandler) *Route {
	return g.Handle(fasthttp.MethodTrace, path, handler)
}

// ANY is a shortcut for group.Handle(router.MethodWild, path, handler)
//
// WARNING: Use only for routes where the request method is not important
func (g *Group) ANY(path string, handler fasthttp.RequestHandler) *Route {
	return g.Handle(MethodWild, path, handler)
}

// ServeFiles serves files from the given file system root under the group
// prefix. See Router.ServeFiles.
func (g *Group) ServeFiles(path string, rootPath string) *Route {
	validateFilesPath(path)

	return g.router.ServeFiles(joinPath(g.prefix, path), rootPath)
}

// ServeFilesCustom serves files from the given file system settings under
// the group prefix. See Router.ServeFilesCustom.
func (g *Group) ServeFilesCustom(path string, fs *fasthttp.FS) *Route {
	validateFilesPath(path)

	return g.router.ServeFilesCustom(joinPath(g.prefix, path), fs)
}

// Handle registers a new request handler with the given path and method
// under the group prefix.
func (g *Group) Handle(method, path string, handler fasthttp.RequestHandler) *Route {
	validatePath(path)

	if handler != nil {
		handler = g.applyMiddleware(handler)
	}

	return g.router.Handle(method, joinPath(g.prefix, path), handler)
}

// AddMiddleware wraps the handlers registered on the group from now on.
// The first middleware added is the outermost.
func (g *Group) AddMiddleware(h func(fasthttp.RequestHandler) fasthttp.RequestHandler) {
	g.middleware = append(g.middleware, h)
}

func (g *Group) applyMiddleware(handler fasthttp.RequestHandler) fasthttp.RequestHandler {
	for i := len(g.middleware) - 1; i >= 0; i-- {
		handler = g.middleware[i](handler)
	}

	return handler
}
