// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

// Package segment compiles a single path segment template into a matcher.
package segment

import (
	"strconv"
	"strings"
)

// Kind is the lexical class of a Token.
type Kind uint8

const (
	// KindChar is literal text, with escapes already resolved.
	KindChar Kind = iota
	// KindName is a parameter name introduced by ':'.
	KindName
	// KindModifier is a modifier name introduced by '|'.
	KindModifier
	// KindModifierArg is one argument of a modifier argument list.
	KindModifierArg
	// KindModifierEnd closes a modifier argument list.
	KindModifierEnd
	// KindGroupStart is '{'.
	KindGroupStart
	// KindGroupEnd is '}'.
	KindGroupEnd
)

var kindNames = [...]string{
	KindChar:        "CHAR",
	KindName:        "NAME",
	KindModifier:    "MODIFIER",
	KindModifierArg: "MODIFIER_ARGUMENT",
	KindModifierEnd: "MODIFIER_END",
	KindGroupStart:  "{",
	KindGroupEnd:    "}",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Token is one lexical unit of a segment template.
type Token struct {
	Kind  Kind
	Value string
	// Pos is the byte offset of the token in the segment template.
	Pos int
	// Optional reports a trailing '?' on a KindName token.
	Optional bool
}

func (t Token) String() string {
	s := new(strings.Builder)
	s.WriteString(t.Kind.String())

	if t.Value != "" {
		s.WriteByte(':')
		s.WriteString(strconv.Quote(t.Value))
	}

	if t.Optional {
		s.WriteByte('?')
	}

	s.WriteByte('@')
	s.WriteString(strconv.Itoa(t.Pos))

	return s.String()
}

// isIdentByte reports whether c may appear in a parameter or modifier name.
func isIdentByte(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}

// IsIdent reports whether s is a non-empty run of [A-Za-z0-9_].
func IsIdent(s string) bool {
	if len(s) == 0 {
		return false
	}

	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}

	return true
}
