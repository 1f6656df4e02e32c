// Package export implements portico's export stage: classifying a
// requested package set against installed state, staging the already-built
// closure into a self-contained tree, and repackaging that tree into the
// requested output formats.
package export

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/arthur-debert/portico/pkg/config"
	"github.com/arthur-debert/portico/pkg/errors"
	"github.com/arthur-debert/portico/pkg/executor"
	"github.com/arthur-debert/portico/pkg/filesystem"
	"github.com/arthur-debert/portico/pkg/ifw"
	"github.com/arthur-debert/portico/pkg/logging"
	"github.com/arthur-debert/portico/pkg/paths"
	"github.com/arthur-debert/portico/pkg/plan"
	"github.com/arthur-debert/portico/pkg/status"
	"github.com/arthur-debert/portico/pkg/types"
	"github.com/rs/zerolog"
)

// ExporterOptions contains configuration for the Exporter
type ExporterOptions struct {
	Paths  paths.Paths
	Config *config.Config

	// FS overrides the filesystem, for testing
	FS types.FS

	// Runner overrides the external tool runner, for testing
	Runner executor.Runner

	// IFW overrides the installer exporter, for testing
	IFW ifw.Exporter

	// Out is where operator-facing output goes; defaults to stdout
	Out io.Writer

	// Now overrides the clock, for testing
	Now func() time.Time

	Logger zerolog.Logger
}

// Exporter orchestrates one export invocation end to end.
type Exporter struct {
	fs     types.FS
	paths  paths.Paths
	cfg    *config.Config
	runner executor.Runner
	ifw    ifw.Exporter
	out    io.Writer
	now    func() time.Time
	logger zerolog.Logger
}

// Result summarizes a completed invocation.
type Result struct {
	// DryRun is set when classification passed and packaging was skipped
	DryRun bool

	// ExportID is the session identifier; empty for dry runs
	ExportID string

	// StagingDir is set when --raw retained the staged tree
	StagingDir string

	// Artifacts are the produced artifact paths, in production order
	Artifacts []string
}

// New creates an Exporter.
func New(opts ExporterOptions) *Exporter {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("export")
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	runner := opts.Runner
	if runner == nil {
		runner = executor.New(executor.Options{Logger: logger})
	}

	ifwExporter := opts.IFW
	if ifwExporter == nil {
		ifwExporter = ifw.New(opts.Paths, runner, opts.Config.Tools.BinaryCreator)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Exporter{
		fs:     fs,
		paths:  opts.Paths,
		cfg:    opts.Config,
		runner: runner,
		ifw:    ifwExporter,
		out:    out,
		now:    now,
		logger: logger,
	}
}

// Export runs the full pipeline for one validated Options value. Any fatal
// error terminates the invocation; there is no retry-and-continue.
func (e *Exporter) Export(opts *Options) (*Result, error) {
	if err := e.validateTriplets(opts.Specs); err != nil {
		return nil, err
	}

	db, err := status.Load(e.fs, e.paths.StatusFilePath())
	if err != nil {
		return nil, err
	}

	actions := plan.ComputeExportPlan(opts.Specs, db)
	if len(actions) == 0 {
		return nil, errors.New(errors.ErrEmptyPlan, "export plan cannot be empty")
	}

	reporter := NewReporter(e.out)
	reporter.PrintPlan(actions)

	// Unbuilt packages abort the whole invocation, before the dry-run
	// short-circuit: a dry run still surfaces them as an error.
	if HasUnbuilt(actions) {
		unbuilt := UnbuiltUserRequested(actions)
		reporter.PrintUnbuiltError(unbuilt)
		return nil, errors.Newf(errors.ErrUnbuiltDependencies,
			"%d user-requested packages are not built", len(unbuilt))
	}

	if opts.DryRun {
		e.logger.Info().Msg("Dry run requested, skipping packaging")
		return &Result{DryRun: true}, nil
	}

	session := NewSession(e.paths.Root(), e.now())
	e.logger.Info().Str("export_id", session.ID).Msg("Starting export")

	result := &Result{ExportID: session.ID}

	if opts.RawBased() {
		if err := e.rawBasedExport(actions, opts, session); err != nil {
			return nil, err
		}
	}

	if opts.IFW {
		if err := e.ifw.Export(actions, session.ID, opts.IFWOptions); err != nil {
			return nil, err
		}
		e.printNextStepInfo("@RootDir@")
	}

	if opts.Raw {
		result.StagingDir = session.StagingDir
	}
	result.Artifacts = session.Artifacts
	return result, nil
}

// rawBasedExport stages the plan once, then runs every staged-tree format
// against it. The staging directory is removed afterwards unless --raw was
// requested, on failure as well as on success.
func (e *Exporter) rawBasedExport(actions []types.ExportAction, opts *Options, session *Session) (err error) {
	staging := NewStagingManager(e.fs, e.paths, e.out)
	if err := staging.Stage(actions, session); err != nil {
		return err
	}

	defer func() {
		if opts.Raw {
			return
		}
		if rmErr := e.fs.RemoveAll(session.StagingDir); rmErr != nil {
			e.logger.Warn().Err(rmErr).Str("dir", session.StagingDir).Msg("Failed to remove staging directory")
		}
	}()

	outputDir := e.outputDir()

	if opts.Raw {
		fmt.Fprintf(e.out, "Files exported at: %q\n", session.StagingDir)
		session.AddArtifact(session.StagingDir)
		e.printNextStepInfo(e.paths.Root())
	}

	if opts.Nuget {
		fmt.Fprintln(e.out, "Creating nuget package...")

		packager := NewNugetPackager(e.fs, e.paths, e.runner, e.cfg.Tools.Nuget)
		artifact, err := packager.Package(session.StagingDir, outputDir, opts.NugetID, opts.NugetVersion)
		if err != nil {
			return err
		}
		session.AddArtifact(artifact)

		id := opts.NugetID
		if id == "" {
			id = session.ID
		}
		fmt.Fprintln(e.out, "Creating nuget package... done")
		fmt.Fprintf(e.out, "NuGet package exported at: %s\n", artifact)
		fmt.Fprintf(e.out, "\nWith a project open, go to Tools->NuGet Package Manager->Package Manager Console and paste:\n    Install-Package %s -Source %q\n\n", id, outputDir)
	}

	for _, format := range []struct {
		enabled bool
		format  ArchiveFormat
	}{
		{opts.Zip, ZipFormat},
		{opts.SevenZip, SevenZipFormat},
	} {
		if !format.enabled {
			continue
		}

		fmt.Fprintf(e.out, "Creating %s archive...\n", format.format.Name)

		packager := NewArchivePackager(e.runner, e.cfg.Tools.CMake)
		artifact, err := packager.Package(session.StagingDir, outputDir, format.format)
		if err != nil {
			return err
		}
		session.AddArtifact(artifact)

		fmt.Fprintf(e.out, "Creating %s archive... done\n", format.format.Name)
		fmt.Fprintf(e.out, "%s archive exported at: %s\n", format.format.Name, artifact)
		e.printNextStepInfo("[...]")
	}

	return nil
}

// validateTriplets checks every requested triplet against the triplet
// definitions available at the portico root.
func (e *Exporter) validateTriplets(specs []types.PackageSpec) error {
	for _, spec := range specs {
		if _, err := e.fs.Stat(e.paths.TripletFile(spec.Triplet())); err != nil {
			return errors.Newf(errors.ErrTripletUnknown,
				"%s is not an available triplet", spec.Triplet())
		}
	}
	return nil
}

func (e *Exporter) outputDir() string {
	if e.cfg.OutputDir != "" {
		return e.cfg.OutputDir
	}
	return e.paths.Root()
}

// printNextStepInfo prints how to consume the exported tree from CMake.
func (e *Exporter) printNextStepInfo(prefix string) {
	toolchain := prefix + "/scripts/buildsystems/portico.cmake"
	fmt.Fprintf(e.out, "\nTo use the exported libraries in CMake projects use:\n    -DCMAKE_TOOLCHAIN_FILE=%s\n\n", toolchain)
}
