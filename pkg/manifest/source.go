package manifest

import (
	"fmt"

	"github.com/cadvault/total-export/pkg/catalog"
	"github.com/cadvault/total-export/pkg/design"
)

// Runtime catalog nodes backing a parsed snapshot. They are read-only once
// built; the exporter never mutates a catalog.

type source struct {
	hubs []catalog.Hub
}

func (s *source) Hubs() []catalog.Hub { return s.hubs }

type hub struct {
	name     string
	projects []catalog.Project
}

func (h *hub) Name() string { return h.name }
func (h *hub) Projects() []catalog.Project { return h.projects }

type project struct {
	name string
	root *folder
}

func (p *project) Name() string { return p.name }
func (p *project) RootFolder() catalog.Folder { return p.root }

type folder struct {
	name    string
	parent  *folder
	folders []*folder
	files   []*file
}

func (f *folder) Name() string { return f.name }

func (f *folder) Parent() catalog.Folder {
	if f.parent == nil {
		return nil
	}
	return f.parent
}

func (f *folder) Folders() []catalog.Folder {
	out := make([]catalog.Folder, len(f.folders))
	for i, sub := range f.folders {
		out[i] = sub
	}
	return out
}

func (f *folder) Files() []catalog.File {
	out := make([]catalog.File, len(f.files))
	for i, fl := range f.files {
		out[i] = fl
	}
	return out
}

type file struct {
	name      string
	extension string
	parent    *folder
	root      *component // nil when the manifest declares no design
}

func (f *file) Name() string { return f.name }
func (f *file) Extension() string { return f.extension }
func (f *file) ParentFolder() catalog.Folder { return f.parent }

func (f *file) Open() (design.Design, error) {
	if f.root == nil {
		return nil, fmt.Errorf("file %q has no design", f.name)
	}
	return &designHandle{root: f.root}, nil
}

type designHandle struct {
	root *component
}

func (d *designHandle) RootComponent() design.Component { return d.root }
func (d *designHandle) Close() error { return nil }

type component struct {
	name        string
	bodies      []design.Body
	meshBodies  []design.Body
	sketches    []design.Sketch
	occurrences []design.Occurrence
}

func (c *component) Name() string { return c.name }
func (c *component) BRepBodies() []design.Body { return c.bodies }
func (c *component) MeshBodies() []design.Body { return c.meshBodies }
func (c *component) Sketches() []design.Sketch { return c.sketches }
func (c *component) Occurrences() []design.Occurrence { return c.occurrences }

type occurrence struct {
	target *component
}

func (o *occurrence) Component() design.Component { return o.target }

type body struct {
	name string
}

func (b *body) Name() string { return b.name }

type sketch struct {
	name string
}

func (s *sketch) Name() string { return s.name }
