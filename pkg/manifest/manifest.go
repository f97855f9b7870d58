// Package manifest loads a YAML description of a catalog — hubs, projects,
// folder trees, files and their component trees — into a catalog.Source,
// and provides a placeholder Sink that writes small marker files instead of
// real geometry. Together they form the dry-run backend: the full export
// pipeline can be exercised against a snapshot to validate the produced
// directory layout, resume behavior and name-collision risk before the
// real export runs inside the host CAD application. Tests use the same
// machinery as fixtures.
package manifest

import (
	"fmt"
	"os"

	"github.com/cadvault/total-export/pkg/catalog"

	"gopkg.in/yaml.v3"
)

// Snapshot is the root of a catalog manifest document.
//
//	hubs:
//	  - name: Personal Hub
//	    projects:
//	      - name: Robot Arm
//	        root:
//	          files:
//	            - name: Base
//	              extension: f3d
//	              design:
//	                root: Base
//	                components:
//	                  - name: Base
//	                    bodies: [Plate]
//	                    sketches: [Profile]
//	                    occurrences: [Gripper]
//	                  - name: Gripper
//	                    bodies: [Jaw]
type Snapshot struct {
	Hubs []HubDoc `yaml:"hubs"`
}

// HubDoc describes one hub.
type HubDoc struct {
	Name     string       `yaml:"name"`
	Projects []ProjectDoc `yaml:"projects"`
}

// ProjectDoc describes one project and its root folder.
type ProjectDoc struct {
	Name string    `yaml:"name"`
	Root FolderDoc `yaml:"root"`
}

// FolderDoc describes a folder's direct sub-folders and files.
type FolderDoc struct {
	Name    string      `yaml:"name"`
	Folders []FolderDoc `yaml:"folders"`
	Files   []FileDoc   `yaml:"files"`
}

// FileDoc describes one file. A file without a design section opens with
// an error, which the pipeline records as an open issue — useful for
// simulating unopenable files.
type FileDoc struct {
	Name      string     `yaml:"name"`
	Extension string     `yaml:"extension"`
	Design    *DesignDoc `yaml:"design"`
}

// DesignDoc describes a file's component graph. Root names the root
// component; occurrences reference components by name, so a shared
// sub-assembly listed from several parents is one component visited once
// per occurrence, exactly as in a real assembly.
type DesignDoc struct {
	Root       string         `yaml:"root"`
	Components []ComponentDoc `yaml:"components"`
}

// ComponentDoc describes one component of a design.
type ComponentDoc struct {
	Name        string   `yaml:"name"`
	Bodies      []string `yaml:"bodies"`
	MeshBodies  []string `yaml:"mesh_bodies"`
	Sketches    []string `yaml:"sketches"`
	Occurrences []string `yaml:"occurrences"`
}

// Load reads and parses a manifest file into a catalog source.
func Load(path string) (catalog.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}
	return Parse(data)
}

// Parse parses manifest YAML into a catalog source.
func Parse(data []byte) (catalog.Source, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return NewSource(snap)
}

// NewSource builds a catalog source from an in-memory snapshot, resolving
// every occurrence reference. Unknown component references and designs
// whose root component is missing are errors.
func NewSource(snap Snapshot) (catalog.Source, error) {
	src := &source{}
	for _, hd := range snap.Hubs {
		h := &hub{name: hd.Name}
		for _, pd := range hd.Projects {
			root, err := buildFolder(pd.Root, nil, hd.Name, pd.Name)
			if err != nil {
				return nil, err
			}
			h.projects = append(h.projects, &project{name: pd.Name, root: root})
		}
		src.hubs = append(src.hubs, h)
	}
	return src, nil
}

func buildFolder(doc FolderDoc, parent *folder, hubName, projectName string) (*folder, error) {
	f := &folder{name: doc.Name, parent: parent}
	for _, sub := range doc.Folders {
		child, err := buildFolder(sub, f, hubName, projectName)
		if err != nil {
			return nil, err
		}
		f.folders = append(f.folders, child)
	}
	for _, fd := range doc.Files {
		root, err := buildDesign(fd)
		if err != nil {
			return nil, fmt.Errorf("hub %q project %q: %w", hubName, projectName, err)
		}
		f.files = append(f.files, &file{
			name:      fd.Name,
			extension: fd.Extension,
			parent:    f,
			root:      root,
		})
	}
	return f, nil
}

func buildDesign(doc FileDoc) (*component, error) {
	if doc.Design == nil {
		return nil, nil
	}

	byName := make(map[string]*component, len(doc.Design.Components))
	for _, cd := range doc.Design.Components {
		c := &component{name: cd.Name}
		for _, b := range cd.Bodies {
			c.bodies = append(c.bodies, &body{name: b})
		}
		for _, b := range cd.MeshBodies {
			c.meshBodies = append(c.meshBodies, &body{name: b})
		}
		for _, s := range cd.Sketches {
			c.sketches = append(c.sketches, &sketch{name: s})
		}
		byName[cd.Name] = c
	}

	for _, cd := range doc.Design.Components {
		c := byName[cd.Name]
		for _, ref := range cd.Occurrences {
			target, ok := byName[ref]
			if !ok {
				return nil, fmt.Errorf("file %q: component %q references unknown component %q", doc.Name, cd.Name, ref)
			}
			c.occurrences = append(c.occurrences, &occurrence{target: target})
		}
	}

	root, ok := byName[doc.Design.Root]
	if !ok {
		return nil, fmt.Errorf("file %q: root component %q not found", doc.Name, doc.Design.Root)
	}
	return root, nil
}
