// Package totalexport walks a hierarchical catalog of CAD designs
// (hubs → projects → folders → files) and materializes every design as a
// tree of exported artifact files on local storage: the native archive per
// file, plus STEP, STL and IGES per component, per-body STL files and
// per-sketch DXF files, recursing one directory deeper for every level of
// the assembly's occurrence tree.
//
// The CLI lives in cmd/total-export; this root package exposes the same
// pipeline as a Go API so that a host binding can embed it.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named totalexport:
//
//	import "github.com/cadvault/total-export" // package totalexport
//
// # Quick start
//
//	summary, err := totalexport.Run(totalexport.Options{
//	    OutputDir: "/exports",
//	    Source:    mySource, // catalog.Source
//	    Sink:      mySink,   // design.Sink
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(summary.Message())
//
// # Resumability
//
// The run writes each artifact only if it does not already exist, so a
// partially completed export can simply be re-run: finished work is skipped
// and only the missing artifacts are produced. Nothing validates that an
// existing artifact is complete; existence alone is the resume signal.
//
// # Failure tolerance
//
// A failed format export, an unopenable file or an uncreatable directory
// is recorded as an issue in the run log (output.log under the output
// root) and the run continues. The final [Summary] is exactly one of
// cancelled, completed-with-issues or completed.
//
// # Collaborators
//
// The catalog hierarchy, the opened design's component tree and the format
// encoders are consumed through the interfaces in pkg/catalog and
// pkg/design. The pkg/manifest package provides a YAML-backed catalog
// snapshot and a placeholder sink for dry runs and tests.
package totalexport
