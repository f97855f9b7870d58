package main

import (
	"context"
	"fmt"
	"os"

	totalexport "github.com/cadvault/total-export"
	"github.com/cadvault/total-export/pkg/manifest"

	"github.com/charmbracelet/fang"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	manifestPath string
	outputDir    string
	verbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "total-export",
		Short: "Export every design in a CAD catalog to local storage",
		Long: "A tool to walk a catalog of CAD designs (hubs, projects, folders, files) and export every design " +
			"as archive, STEP, STL, IGES and DXF artifacts into a stable directory layout. " +
			"Runs are resumable: artifacts that already exist are skipped.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors).
			_ = godotenv.Load()
		},
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Catalog manifest YAML to dry-run the export against (required)")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output root directory (defaults to TOTAL_EXPORT_OUTPUT)")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Mirror every run log line to the terminal")

	rootCmd.MarkFlagRequired("manifest")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("total-export version %s\n", totalexport.Version)
		},
	}

	rootCmd.AddCommand(versionCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(totalexport.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n🗃  CAD Catalog Total Export")
	cyan.Println("============================")
	cyan.Println()
	fmt.Println("Searching for and exporting files will take a while, depending on how many files you have.")
	fmt.Println("Every file is opened and closed in sequence. Take an early lunch.")
	fmt.Println()

	if outputDir == "" {
		outputDir = os.Getenv("TOTAL_EXPORT_OUTPUT")
	}
	if outputDir == "" {
		return fmt.Errorf("no output directory: pass --output or set TOTAL_EXPORT_OUTPUT")
	}

	source, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	opts := totalexport.Options{
		OutputDir: outputDir,
		Source:    source,
		Sink:      manifest.PlaceholderSink{},
		Progress:  &consoleProgress{ctx: cmd.Context()},
	}
	if verbose {
		opts.Logger = &cliLogger{}
	}

	summary, err := totalexport.Run(opts)
	if err != nil {
		return err
	}

	fmt.Println()
	switch summary.Outcome {
	case totalexport.Completed:
		green.Printf("✨ %s\n", summary.Message())
	case totalexport.CompletedWithIssues:
		red.Printf("⚠ %s\n", summary.Message())
	case totalexport.Cancelled:
		red.Printf("✗ %s\n", summary.Message())
	}
	fmt.Printf("Run log: %s\n\n", summary.LogPath)

	return nil
}

// consoleProgress renders per-file progress on one terminal line and maps
// the command context's cancellation (Ctrl-C via fang's signal handling)
// onto the exporter's cooperative cancellation poll.
type consoleProgress struct {
	ctx context.Context
}

func (p *consoleProgress) Update(current, total int, message string) {
	fmt.Printf("\r  Exporting design %d of %d", current, total)
	if current == total {
		fmt.Println()
	}
}

func (p *consoleProgress) Cancelled() bool {
	return p.ctx.Err() != nil
}

// cliLogger implements totalexport.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}
