package valueptr

// PtrMut points at a node that may be modified, or at nothing.
//
// A PtrMut is used up by every operation: navigating, reading, mutating or
// converting with Immut takes the node out of the receiver, leaves the
// receiver absent and hands back a fresh pointer. At most one live PtrMut
// therefore refers into a given subtree, and an ancestor pointer can never
// be used to modify a node while a descendant pointer is alive.
type PtrMut[N MutableNode[N]] struct {
	node N
	ok   bool
}

// PathMut begins a mutable navigation chain at n.
func PathMut[N MutableNode[N]](n N) *PtrMut[N] {
	return &PtrMut[N]{node: n, ok: true}
}

// PathToMut begins at n and follows a pointer-syntax path.
func PathToMut[N MutableNode[N]](n N, path string) *PtrMut[N] {
	return PathMut(n).PathTo(path)
}

// AbsentMut returns a mutable pointer that points at nothing.
func AbsentMut[N MutableNode[N]]() *PtrMut[N] {
	return &PtrMut[N]{}
}

func newPtrMut[N MutableNode[N]](n N, ok bool) *PtrMut[N] {
	if !ok {
		return &PtrMut[N]{}
	}
	return &PtrMut[N]{node: n, ok: true}
}

// take moves the node out of p, leaving p absent.
func (p *PtrMut[N]) take() (N, bool) {
	var zero N
	if p == nil || !p.ok {
		return zero, false
	}
	n := p.node
	p.node, p.ok = zero, false
	return n, true
}

// Present reports whether p still points at a node. It is false for absent
// pointers and for pointers that have been used up.
func (p *PtrMut[N]) Present() bool { return p != nil && p.ok }

// Node returns the node p points at without using p up.
func (p *PtrMut[N]) Node() (N, bool) {
	if p == nil {
		var zero N
		return zero, false
	}
	return p.node, p.ok
}

// Immut converts p into a read-only pointer, leaving p absent.
func (p *PtrMut[N]) Immut() Ptr[N] {
	n, ok := p.take()
	return newPtr(n, ok)
}

// Index steps into the i-th element of a sequence.
func (p *PtrMut[N]) Index(i int) *PtrMut[N] {
	n, ok := p.take()
	if !ok || i < 0 {
		return &PtrMut[N]{}
	}
	return newPtrMut(n.GetIndexMut(i))
}

// Key steps into the child named k, without pointer-syntax fallback. Like
// Get, it probes k through the shared accessor before the exclusive one.
func (p *PtrMut[N]) Key(k string) *PtrMut[N] {
	n, ok := p.take()
	if !ok {
		return &PtrMut[N]{}
	}
	if _, found := n.GetKey(k); !found {
		return &PtrMut[N]{}
	}
	return newPtrMut(n.GetKeyMut(k))
}

// Get steps into the child named s, falling back to pointer syntax like
// Ptr.Get. The literal key is probed through the shared accessor first;
// the exclusive accessor is only requested for the branch that wins.
func (p *PtrMut[N]) Get(s string) *PtrMut[N] {
	n, ok := p.take()
	if !ok {
		return &PtrMut[N]{}
	}
	if _, found := n.GetKey(s); found {
		return newPtrMut(n.GetKeyMut(s))
	}
	// no literal key: put the node back and parse s as a path
	p.node, p.ok = n, true
	return p.PathTo(s)
}

// PathTo follows a pointer-syntax path; see Ptr.PathTo for the grammar.
func (p *PtrMut[N]) PathTo(path string) *PtrMut[N] {
	n, ok := p.take()
	if !ok {
		return &PtrMut[N]{}
	}
	return newPtrMut(resolveMut(n, path))
}

// Step applies Index for integer segments and Get for string segments.
func (p *PtrMut[N]) Step(seg any) *PtrMut[N] {
	if s, ok := seg.(string); ok {
		return p.Get(s)
	}
	if i, ok := stepIndex(seg); ok {
		return p.Index(i)
	}
	p.take()
	return &PtrMut[N]{}
}

// Walk applies Step for each segment in order.
func (p *PtrMut[N]) Walk(segs ...any) *PtrMut[N] {
	for _, seg := range segs {
		p = p.Step(seg)
	}
	return p
}

func (p *PtrMut[N]) AsStr(def string) string { return p.Immut().AsStr(def) }
func (p *PtrMut[N]) AsString(def string) string { return p.Immut().AsString(def) }
func (p *PtrMut[N]) AsInt(def int64) int64 { return p.Immut().AsInt(def) }
func (p *PtrMut[N]) AsFloat(def float64) float64 { return p.Immut().AsFloat(def) }
func (p *PtrMut[N]) AsBool(def bool) bool { return p.Immut().AsBool(def) }

// Put overwrites the node with v, changing its shape if needed, and
// returns a pointer to the same node.
func (p *PtrMut[N]) Put(v Scalar) *PtrMut[N] {
	n, ok := p.take()
	if !ok {
		return &PtrMut[N]{}
	}
	n.PutScalar(v)
	return &PtrMut[N]{node: n, ok: true}
}

// PushEntry inserts key: v into the node. A node that is not a mapping is
// first replaced by an empty mapping and its content is lost.
func (p *PtrMut[N]) PushEntry(key string, v Scalar) *PtrMut[N] {
	n, ok := p.take()
	if !ok {
		return &PtrMut[N]{}
	}
	n.PushEntry(key, v)
	return &PtrMut[N]{node: n, ok: true}
}

// PushItem appends v to the node. A node that is not a sequence is first
// replaced by an empty sequence and its content is lost.
func (p *PtrMut[N]) PushItem(v Scalar) *PtrMut[N] {
	n, ok := p.take()
	if !ok {
		return &PtrMut[N]{}
	}
	n.PushItem(v)
	return &PtrMut[N]{node: n, ok: true}
}

// PushItems appends each value in order, as repeated PushItem calls.
func (p *PtrMut[N]) PushItems(vs ...Scalar) *PtrMut[N] {
	for _, v := range vs {
		p = p.PushItem(v)
	}
	return p
}
