package valueptr

// Ptr points at a node in a value tree, or at nothing. A Ptr that points at
// nothing is absent, which is different from pointing at a node that holds
// null. Ptr is a small value; copies may be kept and navigated independently.
type Ptr[N Node[N]] struct {
	node N
	ok   bool
}

// Path begins a read-only navigation chain at n. The pointer is present
// even for a nil n; the bundled adapters treat a nil node as having no
// children, reading every default and ignoring writes.
func Path[N Node[N]](n N) Ptr[N] {
	return Ptr[N]{node: n, ok: true}
}

// PathTo begins at n and follows a pointer-syntax path.
func PathTo[N Node[N]](n N, path string) Ptr[N] {
	return Path(n).PathTo(path)
}

// Absent returns a pointer that points at nothing.
func Absent[N Node[N]]() Ptr[N] {
	return Ptr[N]{}
}

func newPtr[N Node[N]](n N, ok bool) Ptr[N] {
	if !ok {
		return Ptr[N]{}
	}
	return Ptr[N]{node: n, ok: true}
}

// Present reports whether p points at a node.
func (p Ptr[N]) Present() bool { return p.ok }

// Node returns the node p points at.
func (p Ptr[N]) Node() (N, bool) { return p.node, p.ok }

// Index steps into the i-th element of a sequence.
func (p Ptr[N]) Index(i int) Ptr[N] {
	if !p.ok || i < 0 {
		return Ptr[N]{}
	}
	return newPtr(p.node.GetIndex(i))
}

// Key steps into the child named k, without pointer-syntax fallback.
func (p Ptr[N]) Key(k string) Ptr[N] {
	if !p.ok {
		return Ptr[N]{}
	}
	return newPtr(p.node.GetKey(k))
}

// Get steps into the child named s. When no such key exists, s is parsed
// as a pointer-syntax path instead, so Get("a/b/0") reaches the same node
// as Get("a").Get("b").Index(0).
func (p Ptr[N]) Get(s string) Ptr[N] {
	if !p.ok {
		return Ptr[N]{}
	}
	if child, ok := p.node.GetKey(s); ok {
		return Ptr[N]{node: child, ok: true}
	}
	return p.PathTo(s)
}

// PathTo follows a pointer-syntax path: optional leading '/', segments
// split on '/' or '.', "~1" and "~0" unescaped to '/' and '~'. Each segment
// is tried as a key first and as an array index second. The walk stops at
// the first segment that resolves to nothing.
func (p Ptr[N]) PathTo(path string) Ptr[N] {
	if !p.ok {
		return Ptr[N]{}
	}
	return newPtr(resolve(p.node, path))
}

// Step applies Index for integer segments and Get for string segments.
// Other segment types resolve to absent.
func (p Ptr[N]) Step(seg any) Ptr[N] {
	if s, ok := seg.(string); ok {
		return p.Get(s)
	}
	if i, ok := stepIndex(seg); ok {
		return p.Index(i)
	}
	return Ptr[N]{}
}

// Walk applies Step for each segment in order.
func (p Ptr[N]) Walk(segs ...any) Ptr[N] {
	for _, seg := range segs {
		if !p.ok {
			break
		}
		p = p.Step(seg)
	}
	return p
}

func (p Ptr[N]) AsStr(def string) string {
	if !p.ok {
		return def
	}
	return p.node.AsStr(def)
}

func (p Ptr[N]) AsString(def string) string {
	if !p.ok {
		return def
	}
	return p.node.AsString(def)
}

func (p Ptr[N]) AsInt(def int64) int64 {
	if !p.ok {
		return def
	}
	return p.node.AsInt(def)
}

func (p Ptr[N]) AsFloat(def float64) float64 {
	if !p.ok {
		return def
	}
	return p.node.AsFloat(def)
}

func (p Ptr[N]) AsBool(def bool) bool {
	if !p.ok {
		return def
	}
	return p.node.AsBool(def)
}

// String renders the pointed node for debugging, or "<absent>".
func (p Ptr[N]) String() string {
	if !p.ok {
		return "<absent>"
	}
	return p.node.AsString("")
}

// Default lists the default types accepted by Or.
type Default interface {
	string | int | int64 | float64 | bool
}

// Or reads the pointed node with the typed default def: a string default
// reads with AsStr, integers with AsInt, float64 with AsFloat and bool with
// AsBool. An absent pointer yields def.
func Or[N Node[N], T Default](p Ptr[N], def T) T {
	var out any
	switch d := any(def).(type) {
	case string:
		out = p.AsStr(d)
	case int:
		out = int(p.AsInt(int64(d)))
	case int64:
		out = p.AsInt(d)
	case float64:
		out = p.AsFloat(d)
	case bool:
		out = p.AsBool(d)
	default:
		return def
	}
	return out.(T)
}
