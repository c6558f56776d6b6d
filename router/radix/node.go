// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

package radix

import (
	"sort"

	"github.com/fasthttp/pattern"
)

func newNode(segment string) *node {
	return &node{
		segment: segment,
		entries: make(map[string][]*entry),
	}
}

func kindOf(p *pattern.Pattern) entryKind {
	switch {
	case p.IsStatic():
		return static
	case p.HasWildcard():
		return wildcard
	}

	return param
}

// child returns the child keyed by segment, or nil.
func (n *node) child(segment string) *node {
	i := sort.Search(len(n.children), func(i int) bool {
		return n.children[i].segment >= segment
	})

	if i < len(n.children) && n.children[i].segment == segment {
		return n.children[i]
	}

	return nil
}

// getOrAddChild returns the child keyed by segment, adding it if missing.
// Children are kept sorted by segment.
func (n *node) getOrAddChild(segment string) *node {
	i := sort.Search(len(n.children), func(i int) bool {
		return n.children[i].segment >= segment
	})

	if i < len(n.children) && n.children[i].segment == segment {
		return n.children[i]
	}

	child := newNode(segment)

	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child

	return child
}

// insert adds e to the method list. Static routes come first, then routes
// with parameters, then wildcards; equal kinds keep registration order.
func (n *node) insert(method string, e *entry) {
	list := n.entries[method]

	for _, old := range list {
		if old.pattern.Path() == e.pattern.Path() {
			panic("a handler is already registered for path '" + e.pattern.Path() + "'")
		}
	}

	i := sort.Search(len(list), func(i int) bool {
		return list[i].kind > e.kind
	})

	list = append(list, nil)
	copy(list[i+1:], list[i:])
	list[i] = e

	n.entries[method] = list
}

// match returns the first route of method whose pattern matches path.
func (n *node) match(method, path string) (*entry, pattern.Params) {
	for _, e := range n.entries[method] {
		if params, ok := e.pattern.Match(path); ok {
			return e, params
		}
	}

	return nil, nil
}
