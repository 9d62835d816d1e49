package valueptr

// Navigable yields children of a node by sequence index or mapping key.
// The *Mut variants return a child that the caller may modify in place;
// for pointer-shaped node types both variants usually return the same
// child, but callers only ever hold one of them at a time.
type Navigable[N any] interface {
	GetIndex(i int) (N, bool)
	GetKey(k string) (N, bool)
	GetIndexMut(i int) (N, bool)
	GetKeyMut(k string) (N, bool)
}

// Readable reads the scalar held by a node, falling back to def when the
// node's shape or content cannot be coerced.
type Readable interface {
	// AsStr returns the content of a native string node, never a stringified
	// form of another shape.
	AsStr(def string) string
	// AsString stringifies the node. The default doubles as a type selector:
	// "" accepts any shape, "0", "0.0", "bool", "[]" and "{}" accept only
	// integer, float, boolean, sequence and mapping nodes respectively, and
	// any other value accepts only native strings.
	AsString(def string) string
	AsInt(def int64) int64
	AsFloat(def float64) float64
	AsBool(def bool) bool
}

// Writable overwrites a node or grows it. Push methods replace the node with
// an empty mapping or sequence first when its shape does not match,
// discarding the previous content.
type Writable interface {
	PutScalar(v Scalar)
	PushEntry(key string, v Scalar)
	PushItem(v Scalar)
}

// Node is the capability set required for read-only navigation.
type Node[N any] interface {
	Navigable[N]
	Readable
}

// MutableNode is the capability set required for mutable navigation.
type MutableNode[N any] interface {
	Node[N]
	Writable
}

// Defaults implements every capability with a safe fallback: lookups are
// absent, reads return the default and writes do nothing. Embed it in a
// node type and override only what the node's shapes support.
type Defaults[N any] struct{}

func (Defaults[N]) GetIndex(int) (N, bool) {
	var zero N
	return zero, false
}

func (Defaults[N]) GetKey(string) (N, bool) {
	var zero N
	return zero, false
}

func (Defaults[N]) GetIndexMut(int) (N, bool) {
	var zero N
	return zero, false
}

func (Defaults[N]) GetKeyMut(string) (N, bool) {
	var zero N
	return zero, false
}

func (Defaults[N]) AsStr(def string) string { return def }
func (Defaults[N]) AsString(def string) string { return def }
func (Defaults[N]) AsInt(def int64) int64 { return def }
func (Defaults[N]) AsFloat(def float64) float64 { return def }
func (Defaults[N]) AsBool(def bool) bool { return def }
func (Defaults[N]) PutScalar(Scalar) {}
func (Defaults[N]) PushEntry(string, Scalar) {}
func (Defaults[N]) PushItem(Scalar) {}
