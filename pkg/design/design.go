// Package design defines the exporter's view of an opened CAD design —
// the assembly tree of components, their bodies and sketches — and the
// Sink interface through which the actual format encoders are reached.
// The geometry kernel itself lives behind these interfaces: the exporter
// decides where artifacts land and whether they already exist, never what
// shapes they contain.
package design

// Design is an opened file. The host mandates that at most one design is
// open at a time, so a Design is exclusively owned by whoever opened it
// and must be closed exactly once, on every path.
type Design interface {
	RootComponent() Component
	// Close releases the design without saving changes.
	Close() error
}

// Component is a node in a design's assembly tree. The occurrence graph is
// a DAG rooted at the design's root component: a shared sub-assembly may be
// referenced by several occurrences and is visited once per occurrence.
type Component interface {
	Name() string
	Sketches() []Sketch
	BRepBodies() []Body
	MeshBodies() []Body
	Occurrences() []Occurrence
}

// Occurrence is a placement edge referencing a child component.
type Occurrence interface {
	Component() Component
}

// Body is a BRep or mesh body owned by a component.
type Body interface {
	Name() string
}

// Sketch is a 2D sketch owned by a component.
type Sketch interface {
	Name() string
}

// Sink performs the actual format encoding. Every method either writes the
// artifact at the given path or fails with a format-specific error; the
// exporter treats each call as blocking and sequential. Paths passed to a
// Sink always include the target extension, except ExportArchive where the
// encoder appends its own (.f3d or .f3z).
type Sink interface {
	ExportArchive(d Design, path string) error
	ExportSTEP(c Component, path string) error
	ExportSTL(c Component, path string) error
	ExportBodySTL(b Body, path string) error
	ExportIGES(c Component, path string) error
	ExportDXF(s Sketch, path string) error
}
