package exporter

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cadvault/total-export/pkg/catalog"
	"github.com/cadvault/total-export/pkg/design"
)

// archiveExtensions are the file extensions that can be opened as designs
// and exported. Anything else in the catalog is skipped without an issue.
var archiveExtensions = map[string]bool{
	"f3d": true,
	"f3z": true,
}

// FileExporter exports one catalog file: it opens the file as a design,
// computes the destination directory from the file's catalog ancestry,
// writes the whole-design archive, delegates the component tree to a
// ComponentWalker, and closes the design exactly once on every path.
type FileExporter struct {
	Sink design.Sink
	Log  *RunLog
}

// ExportFile exports file under outputRoot. Open, directory-creation and
// close failures are recorded as issues and confined to this file; an
// export failure below that is recorded and also returned so the caller
// can decide whether to continue the run.
func (e *FileExporter) ExportFile(outputRoot, hubName, projectName string, file catalog.File) error {
	if !archiveExtensions[file.Extension()] {
		e.Log.Infof("Not exporting file %q", file.Name())
		return nil
	}

	e.Log.Infof("Exporting file %q", file.Name())

	d, err := file.Open()
	if err == nil && d == nil {
		err = errors.New("catalog returned a nil design")
	}
	if err != nil {
		e.Log.RecordIssue()
		e.Log.Errorf("Opening %q failed: %v", file.Name(), err)
		return nil
	}
	defer func() {
		if err := d.Close(); err != nil {
			e.Log.RecordIssue()
			e.Log.Errorf("Failed to close %q: %v", file.Name(), err)
		}
	}()

	dir, err := e.destinationDir(outputRoot, hubName, projectName, file)
	if err != nil {
		e.Log.RecordIssue()
		e.Log.Errorf("Couldn't make file folder for %q: %v", file.Name(), err)
		return nil
	}

	e.Log.Infof("Writing to %q", dir)

	if err := e.exportOpened(dir, file, d); err != nil {
		e.Log.RecordIssue()
		e.Log.Errorf("Failed while working on %q: %v", file.Name(), err)
		return err
	}

	e.Log.Infof("Finished exporting file %q", file.Name())
	return nil
}

// destinationDir builds and creates
//
//	<root>/Hub <hub>/Project <project>/<folder chain>/<file name>.<ext>
//
// where the folder chain runs from just below the project's root folder
// down to the file's parent folder, every segment sanitized.
func (e *FileExporter) destinationDir(outputRoot, hubName, projectName string, file catalog.File) (string, error) {
	var folders []string
	for f := file.ParentFolder(); f != nil && f.Parent() != nil; f = f.Parent() {
		folders = append(folders, Sanitize(f.Name()))
	}

	segments := make([]string, 0, len(folders)+4)
	segments = append(segments,
		outputRoot,
		"Hub "+Sanitize(hubName),
		"Project "+Sanitize(projectName),
	)
	for i := len(folders) - 1; i >= 0; i-- {
		segments = append(segments, folders[i])
	}
	segments = append(segments, Sanitize(file.Name())+"."+file.Extension())

	return Take(segments...)
}

func (e *FileExporter) exportOpened(dir string, file catalog.File, d design.Design) error {
	// The archive is always re-written; it is the one artifact without a
	// skip-if-exists check. The encoder appends its own extension.
	archivePath := filepath.Join(dir, Sanitize(file.Name()))
	if err := e.Sink.ExportArchive(d, archivePath); err != nil {
		return fmt.Errorf("failed writing archive %q: %w", archivePath, err)
	}

	walker := &ComponentWalker{Sink: e.Sink, Log: e.Log}
	return walker.Export(dir, d.RootComponent())
}
