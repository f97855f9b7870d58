package totalexport

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cadvault/total-export/pkg/catalog"
	"github.com/cadvault/total-export/pkg/design"
	"github.com/cadvault/total-export/pkg/exporter"
)

// Version is the release version reported by the CLI.
const Version = "0.1.0"

// Logger receives progress messages. A nil Logger means silent operation.
type Logger = exporter.Logger

// Progress receives per-file traversal updates and exposes the cooperative
// cancellation signal. Cancellation is polled once before each file; an
// in-flight file's multi-format export is never interrupted.
type Progress interface {
	Update(current, total int, message string)
	Cancelled() bool
}

// Options configures one export run.
type Options struct {
	OutputDir string         // root of the produced artifact tree (required)
	Source    catalog.Source // catalog to walk (required)
	Sink      design.Sink    // format encoders (required)
	Progress  Progress       // nil = no progress reporting, never cancelled
	Logger    Logger         // nil = run log only, no terminal mirror
}

// Outcome is the three-way terminal state of a run.
type Outcome int

const (
	// Completed means the full traversal finished without a single issue.
	Completed Outcome = iota
	// CompletedWithIssues means the traversal finished but recorded issues.
	CompletedWithIssues
	// Cancelled means the run stopped at a cancellation poll.
	Cancelled
)

// Summary is the result of one export run.
type Summary struct {
	Outcome Outcome
	Issues  int
	LogPath string // path of the run log under the output root
}

// Message returns the user-facing terminal message for the run.
func (s *Summary) Message() string {
	switch {
	case s.Outcome == Cancelled:
		return "Cancelled!"
	case s.Issues > 0:
		plural := ""
		if s.Issues > 1 {
			plural = "s"
		}
		return fmt.Sprintf("The exporting process ran into %d issue%s. Please check the log for more information", s.Issues, plural)
	default:
		return "Export finished completely successfully!"
	}
}

// Run walks every hub and project of the catalog in order and exports each
// eligible file into the output directory. Per-file failures are recorded
// as issues in the run log and do not stop the run; only a setup failure
// (unusable output directory or run log) is returned as an error.
//
// Run is resumable: artifacts already present in the output directory are
// skipped, so re-running after a partial failure only performs the missing
// work.
func Run(opts Options) (*Summary, error) {
	if opts.OutputDir == "" {
		return nil, errors.New("output directory is required")
	}
	if opts.Source == nil {
		return nil, errors.New("catalog source is required")
	}
	if opts.Sink == nil {
		return nil, errors.New("export sink is required")
	}

	if _, err := exporter.Take(opts.OutputDir); err != nil {
		return nil, err
	}

	logPath := filepath.Join(opts.OutputDir, "output.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log %q: %w", logPath, err)
	}
	defer logFile.Close()

	log := exporter.NewRunLog(logFile, opts.Logger)

	log.Infof("Starting export!")
	cancelled := exportData(opts, log)
	log.Infof("Done exporting!")

	summary := &Summary{Issues: log.Issues(), LogPath: logPath}
	switch {
	case cancelled:
		summary.Outcome = Cancelled
	case summary.Issues > 0:
		summary.Outcome = CompletedWithIssues
	default:
		summary.Outcome = Completed
	}
	return summary, nil
}

// exportData drives the hub → project → file traversal. It reports whether
// the run was cancelled.
func exportData(opts Options, log *exporter.RunLog) bool {
	fileExporter := &exporter.FileExporter{Sink: opts.Sink, Log: log}

	hubs := opts.Source.Hubs()
	for hubIndex, hub := range hubs {
		log.Infof("Exporting hub %q", hub.Name())

		projects := hub.Projects()
		for projectIndex, project := range projects {
			log.Infof("Exporting project %q", project.Name())

			files := catalog.Flatten(project.RootFolder())
			if len(files) == 0 {
				log.Infof("No files to export for this project")
				continue
			}

			for fileIndex, file := range files {
				if opts.Progress != nil {
					if opts.Progress.Cancelled() {
						log.Infof("The process was cancelled!")
						return true
					}
					opts.Progress.Update(fileIndex+1, len(files), fmt.Sprintf(
						"Hub: %d of %d\nProject: %d of %d\nExporting design %d of %d",
						hubIndex+1, len(hubs),
						projectIndex+1, len(projects),
						fileIndex+1, len(files)))
				}

				// The exporter has already recorded and logged any issue
				// for this file; one bad file must not stop the run.
				_ = fileExporter.ExportFile(opts.OutputDir, hub.Name(), project.Name(), file)
			}

			log.Infof("Finished exporting project %q", project.Name())
		}

		log.Infof("Finished exporting hub %q", hub.Name())
	}

	return false
}
