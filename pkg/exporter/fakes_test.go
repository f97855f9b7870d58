package exporter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/cadvault/total-export/pkg/catalog"
	"github.com/cadvault/total-export/pkg/design"
)

// In-memory design graph fakes shared by the walker and orchestrator tests.

type fakeBody struct{ name string }

func (b *fakeBody) Name() string { return b.name }

type fakeSketch struct{ name string }

func (s *fakeSketch) Name() string { return s.name }

type fakeOccurrence struct{ target design.Component }

func (o *fakeOccurrence) Component() design.Component { return o.target }

type fakeComponent struct {
	name        string
	bodies      []design.Body
	meshBodies  []design.Body
	sketches    []design.Sketch
	occurrences []design.Occurrence
}

func (c *fakeComponent) Name() string { return c.name }
func (c *fakeComponent) BRepBodies() []design.Body { return c.bodies }
func (c *fakeComponent) MeshBodies() []design.Body { return c.meshBodies }
func (c *fakeComponent) Sketches() []design.Sketch { return c.sketches }
func (c *fakeComponent) Occurrences() []design.Occurrence { return c.occurrences }

func occur(c design.Component) design.Occurrence { return &fakeOccurrence{target: c} }

type fakeDesign struct {
	root     design.Component
	closeErr error
	closes   int
}

func (d *fakeDesign) RootComponent() design.Component { return d.root }

func (d *fakeDesign) Close() error {
	d.closes++
	return d.closeErr
}

type fakeFolder struct {
	name   string
	parent *fakeFolder
}

func (f *fakeFolder) Name() string { return f.name }

func (f *fakeFolder) Parent() catalog.Folder {
	if f.parent == nil {
		return nil
	}
	return f.parent
}

func (f *fakeFolder) Folders() []catalog.Folder { return nil }
func (f *fakeFolder) Files() []catalog.File { return nil }

type fakeFile struct {
	name    string
	ext     string
	parent  *fakeFolder
	design  *fakeDesign
	openErr error
}

func (f *fakeFile) Name() string { return f.name }
func (f *fakeFile) Extension() string { return f.ext }
func (f *fakeFile) ParentFolder() catalog.Folder { return f.parent }

func (f *fakeFile) Open() (design.Design, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	if f.design == nil {
		return nil, nil
	}
	return f.design, nil
}

// recordingSink records every call as "<kind>:<file name>" and writes a
// marker file on success, so the skip-if-exists checks see real files.
type recordingSink struct {
	calls []string

	failArchive bool
	failSTEP    bool
	failSTL     bool
	failBodySTL bool
	failIGES    bool
	failDXF     bool
}

func (s *recordingSink) record(kind, path string) {
	s.calls = append(s.calls, kind+":"+filepath.Base(path))
}

func (s *recordingSink) count(kind string) int {
	n := 0
	for _, call := range s.calls {
		if strings.HasPrefix(call, kind+":") {
			n++
		}
	}
	return n
}

func touch(path string) error {
	return os.WriteFile(path, []byte("x\n"), 0644)
}

func (s *recordingSink) ExportArchive(d design.Design, path string) error {
	s.record("archive", path)
	if s.failArchive {
		return errors.New("archive encoder failed")
	}
	return touch(path + ".f3d")
}

func (s *recordingSink) ExportSTEP(c design.Component, path string) error {
	s.record("step", path)
	if s.failSTEP {
		return errors.New("step encoder failed")
	}
	return touch(path)
}

func (s *recordingSink) ExportSTL(c design.Component, path string) error {
	s.record("stl", path)
	if s.failSTL {
		return errors.New("stl encoder failed")
	}
	return touch(path)
}

func (s *recordingSink) ExportBodySTL(b design.Body, path string) error {
	s.record("bodystl", path)
	if s.failBodySTL {
		return errors.New("stl encoder failed")
	}
	return touch(path)
}

func (s *recordingSink) ExportIGES(c design.Component, path string) error {
	s.record("iges", path)
	if s.failIGES {
		return errors.New("iges encoder failed")
	}
	return touch(path)
}

func (s *recordingSink) ExportDXF(sk design.Sketch, path string) error {
	s.record("dxf", path)
	if s.failDXF {
		return errors.New("dxf encoder failed")
	}
	return touch(path)
}

func newTestLog() (*RunLog, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewRunLog(&buf, nil), &buf
}
