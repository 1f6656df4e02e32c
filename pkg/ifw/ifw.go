// Package ifw exports a classified plan as a Qt Installer Framework based
// installer. The orchestrator only depends on the Exporter contract: given
// a valid plan and options it either produces an installer artifact or
// fails; it never partially completes.
package ifw

import (
	"path/filepath"

	"github.com/arthur-debert/portico/pkg/errors"
	"github.com/arthur-debert/portico/pkg/executor"
	"github.com/arthur-debert/portico/pkg/logging"
	"github.com/arthur-debert/portico/pkg/paths"
	"github.com/arthur-debert/portico/pkg/types"
)

// Options are the optional path/URL overrides accepted by the installer
// exporter. Empty fields fall back to locations derived from the export
// identifier.
type Options struct {
	RepositoryURL     string
	PackagesDirPath   string
	RepositoryDirPath string
	ConfigFilePath    string
	InstallerFilePath string
}

// Exporter produces an installer artifact from a classified export plan.
type Exporter interface {
	Export(plan []types.ExportAction, exportID string, opts Options) error
}

type exporter struct {
	paths  paths.Paths
	runner executor.Runner
	tool   string
}

// New creates an installer exporter that drives the given binary-creator
// tool.
func New(p paths.Paths, runner executor.Runner, tool string) Exporter {
	return &exporter{paths: p, runner: runner, tool: tool}
}

func (e *exporter) Export(plan []types.ExportAction, exportID string, opts Options) error {
	log := logging.GetLogger("ifw")

	packagesDir := opts.PackagesDirPath
	if packagesDir == "" {
		packagesDir = filepath.Join(e.paths.Root(), exportID+"-ifw-packages")
	}
	configFile := opts.ConfigFilePath
	if configFile == "" {
		configFile = filepath.Join(e.paths.Root(), exportID+"-ifw-configuration", "config.xml")
	}
	installerFile := opts.InstallerFilePath
	if installerFile == "" {
		installerFile = filepath.Join(e.paths.Root(), exportID+"-ifw-installer.exe")
	}

	log.Debug().
		Int("packages", len(plan)).
		Str("installer", installerFile).
		Msg("Building installer")

	args := []string{
		"--online-only",
		"--config", configFile,
		"--packages", packagesDir,
	}
	if opts.RepositoryURL != "" {
		args = append(args, "--repository", opts.RepositoryURL)
	}
	args = append(args, installerFile)

	if err := e.runner.Run(e.tool, args...); err != nil {
		return errors.Wrapf(err, errors.ErrIFWExport, "installer creation failed").
			WithDetail("exit_code", executor.ExitCode(err))
	}
	return nil
}
