package manifest

import (
	"fmt"
	"os"

	"github.com/cadvault/total-export/pkg/design"
)

// PlaceholderSink writes a one-line marker file wherever a real encoder
// would write geometry, so a dry run produces the exact directory layout of
// a real export at near-zero cost. STL export of a structurally empty
// component fails, as the real kernel's does, which exercises the
// pipeline's empty-component handling.
type PlaceholderSink struct{}

func (PlaceholderSink) ExportArchive(d design.Design, path string) error {
	// The real archive encoder appends its own extension.
	return writePlaceholder(path+".f3d", "archive")
}

func (PlaceholderSink) ExportSTEP(c design.Component, path string) error {
	return writePlaceholder(path, "step "+c.Name())
}

func (PlaceholderSink) ExportSTL(c design.Component, path string) error {
	if len(c.BRepBodies())+len(c.MeshBodies())+len(c.Occurrences()) == 0 {
		return fmt.Errorf("component %q has no geometry to mesh", c.Name())
	}
	return writePlaceholder(path, "stl "+c.Name())
}

func (PlaceholderSink) ExportBodySTL(b design.Body, path string) error {
	return writePlaceholder(path, "stl body "+b.Name())
}

func (PlaceholderSink) ExportIGES(c design.Component, path string) error {
	return writePlaceholder(path, "iges "+c.Name())
}

func (PlaceholderSink) ExportDXF(s design.Sketch, path string) error {
	return writePlaceholder(path, "dxf "+s.Name())
}

func writePlaceholder(path, kind string) error {
	return os.WriteFile(path, []byte("placeholder "+kind+"\n"), 0644)
}
