// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

// Package radix is an HTTP route index over compiled path patterns. Routes
// are stored under the node reached by walking their leading literal
// segments, so a lookup only evaluates the patterns sharing the literal
// prefix of the requested path.
package radix

// MethodWild wild HTTP method
const MethodWild = "*"

const (
	static entryKind = iota
	param
	wildcard
)
