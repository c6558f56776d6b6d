package router

import "github.com/valyala/fasthttp"

// Middleware is a hook run around every request served by Router.Handler.
type Middleware interface {
	Handle(*fasthttp.RequestCtx)
}

// MiddlewareFunc adapts a function to the Middleware interface.
type MiddlewareFunc func(*fasthttp.RequestCtx)

func (fn MiddlewareFunc) Handle(ctx *fasthttp.RequestCtx) {
	fn(ctx)
}

// Before adds hooks run before the request is dispatched.
func (r *Router) Before(m ...Middleware) {
	r.before = append(r.before, m...)
}

// After adds hooks run once the request was dispatched, including requests
// answered with 404, 405 or a redirect. When a handler panics they run after
// the PanicHandler, if one is set.
func (r *Router) After(m ...Middleware) {
	r.after = append(r.after, m...)
}

func run(ctx *fasthttp.RequestCtx, hooks []Middleware) {
	for _, m := range hooks {
		m.Handle(ctx)
	}
}
