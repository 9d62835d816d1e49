// Package navigator implements the pointer-syntax grammar used to address
// nodes in a value tree: an optional leading '/', segments separated by '/'
// or '.', and the "~1" and "~0" escapes for literal '/' and '~'.
package navigator

import (
	"strconv"
	"strings"
)

// Debug controls whether Tokens records the parsed segments through DebugFunc.
var Debug bool

// DebugFunc receives debug traces when Debug is set. Defaults to a no-op.
var DebugFunc = func(string, ...any) {}

// Tokens splits a pointer-syntax path into unescaped segments.
//
// Examples:
//
//	"usr/lib/2"   -> ["usr", "lib", "2"]
//	"/usr/lib"    -> ["usr", "lib"]
//	"usr.lib.0"   -> ["usr", "lib", "0"]
//	"a~1b/c~0d"   -> ["a/b", "c~d"]
//	""            -> [""]
//
// Every '/' and '.' separates, so empty segments are preserved ("a//b" has an
// empty middle segment); they resolve like any other key.
func Tokens(path string) []string {
	path = strings.TrimPrefix(path, "/")
	parts := splitAll(path)
	for i, p := range parts {
		parts[i] = Unescape(p)
	}
	if Debug {
		DebugFunc("pointer tokens", "path", path, "tokens", parts)
	}
	return parts
}

func splitAll(path string) []string {
	parts := make([]string, 0, 4)
	var current strings.Builder
	for i := 0; i < len(path); i++ {
		ch := path[i]
		if ch == '/' || ch == '.' {
			parts = append(parts, current.String())
			current.Reset()
			continue
		}
		current.WriteByte(ch)
	}
	return append(parts, current.String())
}

// Unescape substitutes "~1" with '/' and then "~0" with '~'.
// The order matters: "~01" unescapes to "~1", not "/".
func Unescape(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}

// Escape is the inverse of Unescape: '~' becomes "~0", then '/' becomes "~1".
func Escape(key string) string {
	if !strings.ContainsAny(key, "~/") {
		return key
	}
	key = strings.ReplaceAll(key, "~", "~0")
	return strings.ReplaceAll(key, "/", "~1")
}

// Join escapes each segment and joins them into a pointer with a leading '/'.
func Join(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(Escape(s))
	}
	return b.String()
}

// Index parses a segment as a non-negative decimal array index.
// A leading '+' is accepted; '-', blanks and overflow are rejected.
func Index(token string) (int, bool) {
	if token == "" || token[0] == '-' {
		return 0, false
	}
	idx, err := strconv.Atoi(token)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}
