package exporter

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/cadvault/total-export/pkg/design"
)

func TestExportComponentWritesAllFormats(t *testing.T) {
	base := t.TempDir()
	sink := &recordingSink{}
	log, _ := newTestLog()
	w := &ComponentWalker{Sink: sink, Log: log}

	arm := &fakeComponent{
		name:   "Arm",
		bodies: []design.Body{&fakeBody{name: "Forearm"}},
	}
	widget := &fakeComponent{
		name:        "Widget",
		bodies:      []design.Body{&fakeBody{name: "Plate"}},
		meshBodies:  []design.Body{&fakeBody{name: "Scan"}},
		sketches:    []design.Sketch{&fakeSketch{name: "Profile"}},
		occurrences: []design.Occurrence{occur(arm)},
	}

	if err := w.Export(base, widget); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	for _, rel := range []string{
		"Widget.stp",
		"Widget.stl",
		"Widget.igs",
		filepath.Join("Widget", "Plate.stl"),
		filepath.Join("Widget", "Scan.stl"),
		filepath.Join("Widget", "Profile.dxf"),
		filepath.Join("Widget", "Arm.stp"),
		filepath.Join("Widget", "Arm.stl"),
		filepath.Join("Widget", "Arm.igs"),
		filepath.Join("Widget", "Arm", "Forearm.stl"),
	} {
		if !Exists(filepath.Join(base, rel)) {
			t.Errorf("missing artifact %q", rel)
		}
	}

	if got := log.Issues(); got != 0 {
		t.Errorf("Issues() = %d, want 0", got)
	}
}

func TestExportComponentSkipsExistingArtifacts(t *testing.T) {
	base := t.TempDir()
	log, _ := newTestLog()

	widget := &fakeComponent{
		name:     "Widget",
		bodies:   []design.Body{&fakeBody{name: "Plate"}},
		sketches: []design.Sketch{&fakeSketch{name: "Profile"}},
	}

	first := &recordingSink{}
	if err := (&ComponentWalker{Sink: first, Log: log}).Export(base, widget); err != nil {
		t.Fatalf("first Export() error = %v", err)
	}

	// Re-running against the same output must invoke the sink for nothing.
	second := &recordingSink{}
	if err := (&ComponentWalker{Sink: second, Log: log}).Export(base, widget); err != nil {
		t.Fatalf("second Export() error = %v", err)
	}

	if len(second.calls) != 0 {
		t.Errorf("re-run invoked sink %d times: %v", len(second.calls), second.calls)
	}
	if got := log.Issues(); got != 0 {
		t.Errorf("Issues() = %d after re-run, want 0", got)
	}
}

func TestStlFailureOnEmptyComponentIsNotAnIssue(t *testing.T) {
	base := t.TempDir()
	sink := &recordingSink{failSTL: true}
	log, _ := newTestLog()
	w := &ComponentWalker{Sink: sink, Log: log}

	empty := &fakeComponent{name: "Empty"}

	if err := w.Export(base, empty); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if got := log.Issues(); got != 0 {
		t.Errorf("Issues() = %d for empty component, want 0", got)
	}
}

func TestStlFailureOnNonEmptyComponentIsAnIssue(t *testing.T) {
	base := t.TempDir()
	sink := &recordingSink{failSTL: true}
	log, _ := newTestLog()
	w := &ComponentWalker{Sink: sink, Log: log}

	solid := &fakeComponent{
		name:   "Solid",
		bodies: []design.Body{&fakeBody{name: "Plate"}},
	}

	if err := w.Export(base, solid); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if got := log.Issues(); got != 1 {
		t.Errorf("Issues() = %d for non-empty component, want 1", got)
	}

	// The per-body pass still runs after the top-level STL failure.
	if got := sink.count("bodystl"); got != 1 {
		t.Errorf("body STL calls = %d, want 1", got)
	}
}

func TestBodyStlFailureIsSwallowed(t *testing.T) {
	base := t.TempDir()
	sink := &recordingSink{failBodySTL: true}
	log, _ := newTestLog()
	w := &ComponentWalker{Sink: sink, Log: log}

	solid := &fakeComponent{
		name:   "Solid",
		bodies: []design.Body{&fakeBody{name: "Plate"}},
	}

	if err := w.Export(base, solid); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if got := log.Issues(); got != 0 {
		t.Errorf("Issues() = %d for failed body export, want 0", got)
	}
	if Exists(filepath.Join(base, "Solid", "Plate.stl")) {
		t.Error("failed body export left an artifact behind")
	}
}

func TestIgesFailurePropagates(t *testing.T) {
	base := t.TempDir()
	sink := &recordingSink{failIGES: true}
	log, _ := newTestLog()
	w := &ComponentWalker{Sink: sink, Log: log}

	widget := &fakeComponent{
		name:     "Widget",
		bodies:   []design.Body{&fakeBody{name: "Plate"}},
		sketches: []design.Sketch{&fakeSketch{name: "Profile"}},
	}

	if err := w.Export(base, widget); err == nil {
		t.Fatal("Export() expected error for IGES failure")
	}

	// The walker stops at the IGES boundary; sketches never run.
	if got := sink.count("dxf"); got != 0 {
		t.Errorf("dxf calls = %d after IGES failure, want 0", got)
	}
}

func TestDxfFailureIsAnIssuePerSketch(t *testing.T) {
	base := t.TempDir()
	sink := &recordingSink{failDXF: true}
	log, _ := newTestLog()
	w := &ComponentWalker{Sink: sink, Log: log}

	widget := &fakeComponent{
		name: "Widget",
		sketches: []design.Sketch{
			&fakeSketch{name: "Top"},
			&fakeSketch{name: "Side"},
		},
	}

	if err := w.Export(base, widget); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if got := log.Issues(); got != 2 {
		t.Errorf("Issues() = %d, want 2", got)
	}
	if got := sink.count("dxf"); got != 2 {
		t.Errorf("dxf calls = %d, want 2 (siblings not stopped)", got)
	}
}

func TestSharedComponentExportedPerOccurrence(t *testing.T) {
	base := t.TempDir()
	sink := &recordingSink{}
	log, _ := newTestLog()
	w := &ComponentWalker{Sink: sink, Log: log}

	shared := &fakeComponent{name: "Axle", bodies: []design.Body{&fakeBody{name: "Rod"}}}
	carrier := &fakeComponent{name: "Carrier", occurrences: []design.Occurrence{occur(shared)}}
	root := &fakeComponent{
		name:        "Gearbox",
		occurrences: []design.Occurrence{occur(shared), occur(carrier)},
	}

	if err := w.Export(base, root); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	// The shared component lands once per occurrence, under distinct paths.
	for _, rel := range []string{
		filepath.Join("Gearbox", "Axle.stp"),
		filepath.Join("Gearbox", "Carrier", "Axle.stp"),
	} {
		if !Exists(filepath.Join(base, rel)) {
			t.Errorf("missing artifact %q", rel)
		}
	}
	if got := sink.count("step"); got != 4 {
		t.Errorf("step calls = %d, want 4 (root, carrier, axle twice)", got)
	}
}

func TestExportComponentDepthGuard(t *testing.T) {
	base := t.TempDir()
	sink := &recordingSink{}
	log, _ := newTestLog()
	w := &ComponentWalker{Sink: sink, Log: log}

	// A self-referencing occurrence would recurse forever without a guard.
	loop := &fakeComponent{name: "Loop"}
	loop.occurrences = []design.Occurrence{occur(loop)}

	err := w.Export(base, loop)
	if !errors.Is(err, ErrDepthExceeded) {
		t.Fatalf("Export() error = %v, want ErrDepthExceeded", err)
	}
}
