// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package radix

import (
	"strings"

	"github.com/fasthttp/pattern"
	gstrings "github.com/savsgio/gotils/strings"
	"github.com/valyala/fasthttp"
)

const stackBufSize = 16

// New returns an empty tree.
func New() *Tree {
	return &Tree{
		root: newNode(""),
	}
}

// Add adds a route for method matching p.
//
// WARNING: Not concurrency-safe!
func (t *Tree) Add(method string, p *pattern.Pattern, handler fasthttp.RequestHandler) {
	switch {
	case method == "":
		panic("method must not be empty")
	case p == nil:
		panic("pattern must not be nil")
	case handler == nil:
		panic("handler must not be nil")
	}

	n := t.root
	for _, segment := range p.Prefix() {
		n = n.getOrAddChild(segment)
	}

	n.insert(method, &entry{
		pattern: p,
		handler: handler,
		kind:    kindOf(p),
	})

	if !gstrings.Include(t.methods, method) {
		t.methods = append(t.methods, method)
	}

	t.size++
}

// Get returns the handler registered for method and path, falling back to
// MethodWild. The matched parameters are saved as ctx user values.
//
// If no handler matches because path ends with a slash, a TSR (trailing
// slash redirect) recommendation is made when the path without it matches.
func (t *Tree) Get(method, path string, ctx *fasthttp.RequestCtx) (fasthttp.RequestHandler, bool) {
	if n := len(path); n > 1 && path[n-1] == '/' {
		e, _ := t.lookup(method, pattern.Normalize(path))

		return nil, e != nil
	}

	e, params := t.lookup(method, path)
	if e == nil {
		return nil, false
	}

	if ctx != nil {
		for key, value := range params {
			ctx.SetUserValue(key, value)
		}
	}

	return e.handler, false
}

// Has reports whether a route registered for exactly method matches path.
// Like Get, it never matches a path ending with a slash.
func (t *Tree) Has(method, path string) bool {
	if n := len(path); n > 1 && path[n-1] == '/' {
		return false
	}

	e, _ := t.lookupMethod(method, path)

	return e != nil
}

// Methods returns the registered methods in registration order.
func (t *Tree) Methods() []string {
	return t.methods
}

// Len returns the number of registered routes.
func (t *Tree) Len() int {
	return t.size
}

func (t *Tree) lookup(method, path string) (*entry, pattern.Params) {
	if e, params := t.lookupMethod(method, path); e != nil {
		return e, params
	}

	if method != MethodWild {
		return t.lookupMethod(MethodWild, path)
	}

	return nil, nil
}

// lookupMethod walks the literal segments of path as deep as the tree
// allows, then tries the routes from the deepest node back to the root.
func (t *Tree) lookupMethod(method, path string) (*entry, pattern.Params) {
	// Use a static sized buffer on the stack in the common case.
	var buf [stackBufSize]*node

	nodes := buf[:0]
	n := t.root
	nodes = append(nodes, n)

	rest := strings.TrimPrefix(path, "/")
	for rest != "" {
		end := strings.IndexByte(rest, '/')
		if end < 0 {
			end = len(rest)
		}

		if n = n.child(rest[:end]); n == nil {
			break
		}

		nodes = append(nodes, n)

		if end == len(rest) {
			break
		}

		rest = rest[end+1:]
	}

	for i := len(nodes) - 1; i >= 0; i-- {
		if e, params := nodes[i].match(method, path); e != nil {
			return e, params
		}
	}

	return nil, nil
}
