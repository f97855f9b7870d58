// Package catalog defines the read-only view of the cloud catalog the
// exporter walks: hubs containing projects, projects containing a folder
// tree, folders containing files. Implementations are owned by the caller
// (a CAD host binding, or the manifest package's dry-run snapshot); the
// exporter only enumerates them during a single traversal pass and never
// mutates or retains them.
package catalog

import "github.com/cadvault/total-export/pkg/design"

// Source is the root of the catalog: the set of hubs visible to the user.
type Source interface {
	Hubs() []Hub
}

// Hub is a top-level tenant/account grouping of projects.
type Hub interface {
	Name() string
	Projects() []Project
}

// Project is a named collection of folders and files under a hub.
type Project interface {
	Name() string
	RootFolder() Folder
}

// Folder is an interior node of a project's file tree. Parent reports the
// containing folder; it returns nil for a project's root folder.
type Folder interface {
	Name() string
	Parent() Folder
	Folders() []Folder
	Files() []File
}

// File is a leaf of the file tree. Extension is the bare file extension
// without a leading dot (e.g. "f3d"). Open opens the file as a design; the
// returned handle must be closed exactly once by the caller.
type File interface {
	Name() string
	Extension() string
	ParentFolder() Folder
	Open() (design.Design, error)
}

// Flatten collects every file transitively under folder in depth-first
// pre-order: the folder's own files first, then each sub-folder in catalog
// order. The result is deterministic for a fixed catalog order.
func Flatten(folder Folder) []File {
	files := append([]File(nil), folder.Files()...)
	for _, sub := range folder.Folders() {
		files = append(files, Flatten(sub)...)
	}
	return files
}
