// Package valueptr navigates and edits tree-shaped values (JSON-like, TOML
// or any custom tree) through a small capability interface.
//
// A node type opts in by implementing Navigable, Readable and, for edits,
// Writable; Defaults supplies safe fallbacks for the parts a node does not
// support. Navigation starts at Path, PathTo, PathMut or PathToMut:
//
//	name := valueptr.Path(doc).Get("usr").Get("lib").Index(2).Get("name").AsStr("unknown")
//	same := valueptr.PathTo(doc, "/usr/lib/2/name").AsStr("unknown")
//
// A missing segment yields an absent pointer; every read on an absent
// pointer returns the caller's default and every write is a no-op. Reads
// never fail and writes coerce the target's shape as needed.
//
// Mutable pointers are used up by each operation, which returns the pointer
// to keep working with:
//
//	valueptr.PathMut(doc).Get("usr").Get("lib").PushItem(valueptr.String("d"))
package valueptr
