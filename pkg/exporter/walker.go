package exporter

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cadvault/total-export/pkg/design"
)

// maxOccurrenceDepth bounds the occurrence recursion. Observed catalogs are
// shallow DAGs, but nothing proves acyclicity, so a pathological graph fails
// with ErrDepthExceeded instead of overflowing the stack.
const maxOccurrenceDepth = 64

// ErrDepthExceeded is returned when a component tree nests more than
// maxOccurrenceDepth occurrence levels.
var ErrDepthExceeded = errors.New("component tree exceeds maximum occurrence depth")

// ComponentWalker recursively exports one design's component tree. Each
// format export is independently guarded: STEP and DXF failures are
// recorded as issues and do not stop sibling formats, STL failures are
// recorded only for structurally non-empty components, per-body STL
// failures are swallowed entirely, and IGES failures propagate to the
// caller. A shared sub-assembly referenced by several occurrences is
// exported once per occurrence, each under its own parent path.
type ComponentWalker struct {
	Sink design.Sink
	Log  *RunLog
}

// Export walks the component rooted at c, writing artifacts under basePath.
func (w *ComponentWalker) Export(basePath string, c design.Component) error {
	return w.exportComponent(basePath, c, 0)
}

func (w *ComponentWalker) exportComponent(basePath string, c design.Component, depth int) error {
	if depth > maxOccurrenceDepth {
		return fmt.Errorf("at %q: %w", basePath, ErrDepthExceeded)
	}

	w.Log.Infof("Writing component %q to %q", c.Name(), basePath)

	outputPath := filepath.Join(basePath, Sanitize(c.Name()))

	w.writeStep(outputPath, c)
	w.writeStl(outputPath, c)
	if err := w.writeIges(outputPath, c); err != nil {
		return err
	}
	w.writeSketches(outputPath, c)

	for _, occ := range c.Occurrences() {
		subPath, err := Take(basePath, Sanitize(c.Name()))
		if err != nil {
			return err
		}
		if err := w.exportComponent(subPath, occ.Component(), depth+1); err != nil {
			return err
		}
	}

	return nil
}

func (w *ComponentWalker) writeStep(outputPath string, c design.Component) {
	filePath := outputPath + ".stp"
	if Exists(filePath) {
		w.Log.Infof("Step file %q already exists", filePath)
		return
	}

	w.Log.Infof("Writing step file %q", filePath)
	if err := w.Sink.ExportSTEP(c, filePath); err != nil {
		w.Log.RecordIssue()
		w.Log.Errorf("Failed writing step file %q: %v", filePath, err)
	}
}

func (w *ComponentWalker) writeStl(outputPath string, c design.Component) {
	filePath := outputPath + ".stl"
	if Exists(filePath) {
		w.Log.Infof("Stl file %q already exists", filePath)
	} else {
		w.Log.Infof("Writing stl file %q", filePath)
		if err := w.Sink.ExportSTL(c, filePath); err != nil {
			w.Log.Errorf("Failed writing stl file %q: %v", filePath, err)

			// A structurally empty component is expected to fail STL
			// export; only count the failure when there is something in it.
			if len(c.Occurrences())+len(c.BRepBodies())+len(c.MeshBodies()) > 0 {
				w.Log.RecordIssue()
			}
		}
	}

	bodies := append(append([]design.Body(nil), c.BRepBodies()...), c.MeshBodies()...)
	if len(bodies) == 0 {
		return
	}

	if _, err := Take(outputPath); err != nil {
		w.Log.RecordIssue()
		w.Log.Errorf("Couldn't make body folder %q: %v", outputPath, err)
		return
	}

	for _, body := range bodies {
		w.writeStlBody(filepath.Join(outputPath, Sanitize(body.Name())), body)
	}
}

func (w *ComponentWalker) writeStlBody(outputPath string, body design.Body) {
	filePath := outputPath + ".stl"
	if Exists(filePath) {
		w.Log.Infof("Stl body file %q already exists", filePath)
		return
	}

	w.Log.Infof("Writing stl body file %q", filePath)

	// Probably an empty body when this fails, ignore it.
	_ = w.Sink.ExportBodySTL(body, filePath)
}

func (w *ComponentWalker) writeIges(outputPath string, c design.Component) error {
	filePath := outputPath + ".igs"
	if Exists(filePath) {
		w.Log.Infof("Iges file %q already exists", filePath)
		return nil
	}

	w.Log.Infof("Writing iges file %q", filePath)
	if err := w.Sink.ExportIGES(c, filePath); err != nil {
		return fmt.Errorf("failed writing iges file %q: %w", filePath, err)
	}
	return nil
}

func (w *ComponentWalker) writeSketches(outputPath string, c design.Component) {
	sketches := c.Sketches()
	if len(sketches) == 0 {
		return
	}

	if _, err := Take(outputPath); err != nil {
		w.Log.RecordIssue()
		w.Log.Errorf("Couldn't make sketch folder %q: %v", outputPath, err)
		return
	}

	for _, sketch := range sketches {
		w.writeDxf(filepath.Join(outputPath, Sanitize(sketch.Name())), sketch)
	}
}

func (w *ComponentWalker) writeDxf(outputPath string, sketch design.Sketch) {
	filePath := outputPath + ".dxf"
	if Exists(filePath) {
		w.Log.Infof("DXF sketch file %q already exists", filePath)
		return
	}

	w.Log.Infof("Writing dxf sketch file %q", filePath)
	if err := w.Sink.ExportDXF(sketch, filePath); err != nil {
		w.Log.RecordIssue()
		w.Log.Errorf("Failed writing dxf sketch file %q: %v", filePath, err)
	}
}
