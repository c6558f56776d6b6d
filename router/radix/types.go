// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package radix

import (
	"github.com/fasthttp/pattern"
	"github.com/valyala/fasthttp"
)

type entryKind uint8

type entry struct {
	pattern *pattern.Pattern
	handler fasthttp.RequestHandler
	kind    entryKind
}

type node struct {
	segment  string
	children []*node

	// entries holds, per method, the routes whose literal prefix ends at
	// this node, in lookup order.
	entries map[string][]*entry
}

// Tree is the route index. Registration is not concurrency-safe; lookups
// are read-only.
type Tree struct {
	root    *node
	methods []string
	size    int
}
