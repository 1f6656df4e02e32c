package export

import (
	"path/filepath"

	"github.com/arthur-debert/portico/pkg/errors"
	"github.com/arthur-debert/portico/pkg/executor"
)

// ArchiveFormat describes one supported archive container: its file
// extension and the archiver's format-selector token.
type ArchiveFormat struct {
	Name         string
	Extension    string
	FormatOption string
}

// The closed set of supported archive formats.
var (
	ZipFormat      = ArchiveFormat{Name: "zip", Extension: "zip", FormatOption: "zip"}
	SevenZipFormat = ArchiveFormat{Name: "7zip", Extension: "7z", FormatOption: "7zip"}
)

// ArchivePackager turns a staged tree into one compressed archive using
// the cmake archiver.
type ArchivePackager struct {
	runner executor.Runner
	cmake  string
}

// NewArchivePackager creates an archive packager driving the given cmake
// executable.
func NewArchivePackager(runner executor.Runner, cmake string) *ArchivePackager {
	return &ArchivePackager{runner: runner, cmake: cmake}
}

// Package creates <output_dir>/<staged-basename>.<ext> from the staged
// tree and returns the artifact path. The trailing `--` keeps the archiver
// from applying its default exclusions, so the root marker file is
// preserved.
func (p *ArchivePackager) Package(stagedTree, outputDir string, format ArchiveFormat) (string, error) {
	artifact := filepath.Join(outputDir, filepath.Base(stagedTree)+"."+format.Extension)

	err := p.runner.Run(p.cmake,
		"-E", "tar", "cf", artifact,
		"--format="+format.FormatOption,
		"--", stagedTree)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrArchiveCreate, "%s creation failed", artifact).
			WithDetail("format", format.Name).
			WithDetail("exit_code", executor.ExitCode(err))
	}

	return artifact, nil
}
