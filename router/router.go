// Package router is a fasthttp request router dispatching on compiled path
// patterns. Routes are written in the pattern template language:
//
//	r := router.New()
//	r.GET("/user/:id|d", handler).Name("user")
//	r.GET("/static/*", files)
//
// Matched parameters are stored as ctx user values under their names.
package router

import (
	"fmt"
	"strings"

	"github.com/fasthttp/pattern"
	"github.com/fasthttp/pattern/router/radix"
	gbytes "github.com/savsgio/gotils/bytes"
	gstrconv "github.com/savsgio/gotils/strconv"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

// MethodWild wild HTTP method
const MethodWild = radix.MethodWild

var (
	questionMark = byte('?')

	// MatchedRoutePathParam is the param name under which the path of the matched
	// route is stored, if Router.SaveMatchedRoutePath is set.
	MatchedRoutePathParam = fmt.Sprintf("__matchedRoutePath::%s__", gbytes.Rand(make([]byte, 15)))
)

// Router is a fasthttp.RequestHandler which dispatches requests to the
// handler of the route whose pattern matches the request path.
type Router struct {
	tree            *radix.Tree
	registeredPaths map[string][]string
	globalAllowed   string
	names           map[string]*Route

	before []Middleware
	after  []Middleware

	// Compiler compiles the route paths. The package default compiler is
	// used when nil. Set it before registering routes.
	Compiler *pattern.Compiler

	// If enabled, the matched route path is stored in the user values
	// under MatchedRoutePathParam.
	SaveMatchedRoutePath bool

	// Enables automatic redirection if the current route can't be matched
	// but a handler for the path without the trailing slash exists.
	// For example if /foo/ is requested but a route only exists for /foo,
	// the client is redirected to /foo with http status code 301 for GET
	// requests and 308 for all other request methods.
	RedirectTrailingSlash bool

	// If enabled, the router checks if another method is allowed for the
	// current route, if the current request can not be routed.
	// If this is the case, the request is answered with 'Method Not Allowed'
	// and HTTP status code 405.
	// If no other Method is allowed, the request is delegated to the NotFound
	// handler.
	HandleMethodNotAllowed bool

	// If enabled, the router automatically replies to OPTIONS requests.
	// Custom OPTIONS handlers take priority over automatic replies.
	HandleOPTIONS bool

	// An optional fasthttp.RequestHandler that is called on automatic OPTIONS requests.
	// The handler is only called if HandleOPTIONS is true and no OPTIONS
	// handler for the specific path was set.
	// The "Allowed" header is set before calling the handler.
	GlobalOPTIONS fasthttp.RequestHandler

	// Configurable fasthttp.RequestHandler which is called when no matching route is
	// found. If it is not set, default NotFound is used.
	NotFound fasthttp.RequestHandler

	// Configurable fasthttp.RequestHandler which is called when a request
	// cannot be routed and HandleMethodNotAllowed is true.
	// If it is not set, ctx.Error with fasthttp.StatusMethodNotAllowed is used.
	// The "Allow" header with allowed request methods is set before the handler
	// is called.
	MethodNotAllowed fasthttp.RequestHandler

	// Function to handle panics recovered from http handlers.
	// It should be used to generate a error page and return the http error code
	// 500 (Internal Server Error).
	// The handler can be used to keep your server from crashing because of
	// unrecovered panics.
	PanicHandler func(*fasthttp.RequestCtx, interface{})
}

// New returns a new initialized Router.
// Trailing slash redirection is enabled by default.
func New() *Router {
	return &Router{
		tree:                   radix.New(),
		registeredPaths:        make(map[string][]string),
		names:                  make(map[string]*Route),
		RedirectTrailingSlash:  true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
	}
}

// Group returns a new group. Its path must not end with a trailing slash.
func (r *Router) Group(path string) *Group {
	validateGroupPath(path)

	if path == "/" {
		path = ""
	}

	return &Group{
		router: r,
		prefix: path,
	}
}

func (r *Router) compiler() *pattern.Compiler {
	if r.Compiler != nil {
		return r.Compiler
	}

	return pattern.Default()
}

func (r *Router) saveMatchedRoutePath(path string, handler fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		ctx.SetUserValue(MatchedRoutePathParam, path)
		handler(ctx)
	}
}

// GET is a shortcut for router.Handle(fasthttp.MethodGet, path, handler)
func (r *Router) GET(path string, handler fasthttp.RequestHandler) *Route {
	return r.Handle(fasthttp.MethodGet, path, handler)
}

// HEAD is a shortcut for router.Handle(fasthttp.MethodHead, path, handler)
func (r *Router) HEAD(path string, handler fasthttp.RequestHandler) *Route {
	return r.Handle(fasthttp.MethodHead, path, handler)
}

// POST is a shortcut for router.Handle(fasthttp.MethodPost, path, handler)
func (r *Router) POST(path string, handler fasthttp.RequestHandler) *Route {
	return r.Handle(fasthttp.MethodPost, path, handler)
}

// PUT is a shortcut for router.Handle(fasthttp.MethodPut, path, handler)
func (r *Router) PUT(path string, handler fasthttp.RequestHandler) *Route {
	return r.Handle(fasthttp.MethodPut, path, handler)
}

// PATCH is a shortcut for router.Handle(fasthttp.MethodPatch, path, handler)
func (r *Router) PATCH(path string, handler fasthttp.RequestHandler) *Route {
	return r.Handle(fasthttp.MethodPatch, path, handler)
}

// DELETE is a shortcut for router.Handle(fasthttp.MethodDelete, path, handler)
func (r *Router) DELETE(path string, handler fasthttp.RequestHandler) *Route {
	return r.Handle(fasthttp.MethodDelete, path, handler)
}

// CONNECT is a shortcut for router.Handle(fasthttp.MethodConnect, path, handler)
func (r *Router) CONNECT(path string, handler fasthttp.RequestHandler) *Route {
	return r.Handle(fasthttp.MethodConnect, path, handler)
}

// OPTIONS is a shortcut for router.Handle(fasthttp.MethodOptions, path, handler)
func (r *Router) OPTIONS(path string, handler fasthttp.RequestHandler) *Route {
	return r.Handle(fasthttp.MethodOptions, path, handler)
}

// TRACE is a shortcut for router.Handle(fasthttp.MethodTrace, path, handler)
func (r *Router) TRACE(path string, handler fasthttp.RequestHandler) *Route {
	return r.Handle(fasthttp.MethodTrace, path, handler)
}

// ANY is a shortcut for router.Handle(router.MethodWild, path, handler)
//
// WARNING: Use only for routes where the request method is not important
func (r *Router) ANY(path string, handler fasthttp.RequestHandler) *Route {
	return r.Handle(MethodWild, path, handler)
}

// Handle registers a new request handler with the given path and method.
// The path is compiled with the router's compiler; it panics if the path
// does not compile or is already registered for the method.
//
// For GET, POST, PUT, PATCH and DELETE requests the respective shortcut
// functions can be used.
//
// This function is intended for bulk loading and to allow the usage of less
// frequently used, non-standardized or custom methods (e.g. for internal
// communication with a proxy).
func (r *Router) Handle(method, path string, handler fasthttp.RequestHandler) *Route {
	switch {
	case len(method) == 0:
		panic("method must not be empty")
	case handler == nil:
		panic("handler must not be nil")
	}

	validatePath(path)

	p, err := r.compiler().Pattern(path)
	if err != nil {
		panic("invalid path '" + path + "': " + err.Error())
	}

	if r.SaveMatchedRoutePath {
		handler = r.saveMatchedRoutePath(p.Path(), handler)
	}

	r.tree.Add(method, p, handler)

	newMethod := r.registeredPaths[method] == nil
	r.registeredPaths[method] = append(r.registeredPaths[method], p.Path())

	if newMethod {
		r.globalAllowed = r.allowed("*", "")
	}

	return &Route{
		router:  r,
		method:  method,
		pattern: p,
	}
}

// ServeFiles serves files from the given file system root.
// The path must end with "/*", files are then served from the local
// path /defined/root/dir/*.
// For example if root is "/etc" and * is "passwd", the local file
// "/etc/passwd" would be served.
// Internally a fasthttp.FSHandler is used, therefore fasthttp's not found
// response is used instead of the Router's NotFound handler.
// Use:
//
//	router.ServeFiles("/src/*", "./")
func (r *Router) ServeFiles(path string, rootPath string) *Route {
	validateFilesPath(path)

	prefix := path[:len(path)-len(wildcardSuffix)]
	fileHandler := fasthttp.FSHandler(rootPath, strings.Count(prefix, "/"))

	return r.GET(path, fileHandler)
}

// ServeFilesCustom serves files from the given file system settings.
// The path must end with "/*", files are then served from the local
// path /defined/root/dir/*.
// Internally a fasthttp.FSHandler is used, therefore fasthttp's not found
// response is used instead of the Router's NotFound handler.
// Use:
//
//	router.ServeFilesCustom("/src/*", &fasthttp.FS{Root: "./"})
func (r *Router) ServeFilesCustom(path string, fs *fasthttp.FS) *Route {
	validateFilesPath(path)

	prefix := path[:len(path)-len(wildcardSuffix)]
	stripSlashes := strings.Count(prefix, "/")

	if fs.PathRewrite == nil && stripSlashes > 0 {
		fs.PathRewrite = fasthttp.NewPathSlashesStripper(stripSlashes)
	}

	return r.GET(path, fs.NewRequestHandler())
}

// URL generates the path of the route registered under name from data.
func (r *Router) URL(name string, data map[string]any) (string, error) {
	route, ok := r.names[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}

	return route.URL(data)
}

func (r *Router) recv(ctx *fasthttp.RequestCtx) {
	if rcv := recover(); rcv != nil {
		r.PanicHandler(ctx, rcv)
		run(ctx, r.after)
	}
}

// Lookup allows the manual lookup of a method + path combo.
// This is e.g. useful to build a framework around this router.
// If the path was found, it returns the handler function and stores the
// parameter values in ctx, which may be nil. Otherwise the second return
// value indicates whether a redirection to the same path without the
// trailing slash should be performed.
func (r *Router) Lookup(method, path string, ctx *fasthttp.RequestCtx) (fasthttp.RequestHandler, bool) {
	return r.tree.Get(method, path, ctx)
}

func (r *Router) allowed(path, reqMethod string) (allow string) {
	allowed := make([]string, 0, 9)

	if path == "*" || path == "/*" { // server-wide
		// empty method is used for internal calls to refresh the cache
		if reqMethod == "" {
			for _, method := range r.tree.Methods() {
				if method == fasthttp.MethodOptions || method == MethodWild {
					continue
				}
				// Add request method to list of allowed methods
				allowed = append(allowed, method)
			}
		} else {
			return r.globalAllowed
		}
	} else { // specific path
		for _, method := range r.tree.Methods() {
			// Skip the requested method - we already tried this one
			if method == reqMethod || method == fasthttp.MethodOptions || method == MethodWild {
				continue
			}

			if r.tree.Has(method, path) {
				allowed = append(allowed, method)
			}
		}
	}

	if len(allowed) > 0 {
		// Add request method to list of allowed methods
		allowed = append(allowed, fasthttp.MethodOptions)

		// Sort allowed methods.
		// sort.Strings(allowed) unfortunately causes unnecessary allocations
		// due to allowed being moved to the heap and interface conversion
		for i, l := 1, len(allowed); i < l; i++ {
			for j := i; j > 0 && allowed[j] < allowed[j-1]; j-- {
				allowed[j], allowed[j-1] = allowed[j-1], allowed[j]
			}
		}

		// return as comma separated list
		return strings.Join(allowed, ", ")
	}

	return
}

// Handler makes the router implement the fasthttp.RequestHandler interface.
func (r *Router) Handler(ctx *fasthttp.RequestCtx) {
	if r.PanicHandler != nil {
		defer r.recv(ctx)
	}

	run(ctx, r.before)
	r.dispatch(ctx)
	run(ctx, r.after)
}

func (r *Router) dispatch(ctx *fasthttp.RequestCtx) {
	path := gstrconv.B2S(ctx.Path())
	method := gstrconv.B2S(ctx.Method())

	if handler, tsr := r.tree.Get(method, path, ctx); handler != nil {
		handler(ctx)
		return
	} else if tsr && r.RedirectTrailingSlash && method != fasthttp.MethodConnect {
		// Moved Permanently, request with GET method
		code := fasthttp.StatusMovedPermanently
		if method != fasthttp.MethodGet {
			// Permanent Redirect, request with same method
			code = fasthttp.StatusPermanentRedirect
		}

		uri := bytebufferpool.Get()
		uri.SetString(pattern.Normalize(path))

		queryBuf := ctx.URI().QueryString()
		if len(queryBuf) > 0 {
			uri.WriteByte(questionMark)
			uri.Write(queryBuf)
		}

		ctx.Redirect(uri.String(), code)

		bytebufferpool.Put(uri)
		return
	}

	if r.HandleOPTIONS && method == fasthttp.MethodOptions {
		// Handle OPTIONS requests
		if allow := r.allowed(path, fasthttp.MethodOptions); allow != "" {
			ctx.Response.Header.Set("Allow", allow)
			if r.GlobalOPTIONS != nil {
				r.GlobalOPTIONS(ctx)
			}
			return
		}
	} else if r.HandleMethodNotAllowed { // Handle 405
		if allow := r.allowed(path, method); allow != "" {
			ctx.Response.Header.Set("Allow", allow)
			if r.MethodNotAllowed != nil {
				r.MethodNotAllowed(ctx)
			} else {
				ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
				ctx.SetBodyString(fasthttp.StatusMessage(fasthttp.StatusMethodNotAllowed))
			}
			return
		}
	}

	// Handle 404
	if r.NotFound != nil {
		r.NotFound(ctx)
	} else {
		ctx.Error(fasthttp.StatusMessage(fasthttp.StatusNotFound), fasthttp.StatusNotFound)
	}
}

// List returns the normalized paths of all registered routes grouped by
// method.
func (r *Router) List() map[string][]string {
	return r.registeredPaths
}
