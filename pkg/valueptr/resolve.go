package valueptr

import (
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/kvptr/internal/navigator"
)

// lgr receives V(2) traces of unresolved pointer-syntax segments.
var lgr = logr.Discard()

// SetLogger installs a logger for resolution traces. It is not safe to call
// concurrently with navigation; set it once at startup.
func SetLogger(l logr.Logger) {
	lgr = l
	navigator.Debug = l.V(3).Enabled()
	navigator.DebugFunc = l.V(3).Info
}

// EscapeToken escapes '~' and '/' in a literal key so that it survives
// pointer-syntax parsing. '.' has no escape: a key containing '.' is only
// reachable by literal-key lookup.
func EscapeToken(key string) string {
	return navigator.Escape(key)
}

// JoinPointer builds a pointer-syntax path from literal segments.
func JoinPointer(segments ...string) string {
	return navigator.Join(segments...)
}

// resolve walks path from node using shared accessors only.
func resolve[N Node[N]](node N, path string) (N, bool) {
	for _, tok := range navigator.Tokens(path) {
		next, ok := node.GetKey(tok)
		if !ok {
			if idx, isIndex := navigator.Index(tok); isIndex {
				next, ok = node.GetIndex(idx)
			}
		}
		if !ok {
			lgr.V(2).Info("pointer segment not found", "path", path, "segment", tok)
			var zero N
			return zero, false
		}
		node = next
	}
	return node, true
}

// resolveMut walks path from node, probing each key with the shared
// accessor before committing to the exclusive one.
func resolveMut[N MutableNode[N]](node N, path string) (N, bool) {
	for _, tok := range navigator.Tokens(path) {
		var (
			next N
			ok   bool
		)
		if _, found := node.GetKey(tok); found {
			next, ok = node.GetKeyMut(tok)
		} else if idx, isIndex := navigator.Index(tok); isIndex {
			next, ok = node.GetIndexMut(idx)
		}
		if !ok {
			lgr.V(2).Info("pointer segment not found", "path", path, "segment", tok, "mutable", true)
			var zero N
			return zero, false
		}
		node = next
	}
	return node, true
}

// stepIndex extracts an index from an integer-typed step segment.
func stepIndex(seg any) (int, bool) {
	switch v := seg.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		return int(v), true
	default:
		return 0, false
	}
}
