package export

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/arthur-debert/portico/pkg/errors"
	"github.com/arthur-debert/portico/pkg/install"
	"github.com/arthur-debert/portico/pkg/logging"
	"github.com/arthur-debert/portico/pkg/paths"
	"github.com/arthur-debert/portico/pkg/types"
	"github.com/rs/zerolog"
)

// integrationFiles is the fixed set of build-system glue assets copied
// into every export tree, relative to the portico root. The root marker
// makes the exported tree usable as a portico root in its own right.
var integrationFiles = []string{
	paths.RootMarkerFile,
	filepath.Join("scripts", "buildsystems", "msbuild", "applocal.ps1"),
	filepath.Join("scripts", "buildsystems", "msbuild", "portico.targets"),
	filepath.Join("scripts", "buildsystems", "portico.cmake"),
	filepath.Join("scripts", "cmake", "portico_get_windows_sdk.cmake"),
	filepath.Join("scripts", "getWindowsSDK.ps1"),
	filepath.Join("scripts", "getProgramFilesPlatformBitness.ps1"),
	filepath.Join("scripts", "getProgramFiles32bit.ps1"),
}

// StagingManager owns the lifecycle of one invocation's staging tree.
type StagingManager struct {
	fs     types.FS
	paths  paths.Paths
	out    io.Writer
	logger zerolog.Logger
}

// NewStagingManager creates a staging manager.
func NewStagingManager(fs types.FS, p paths.Paths, out io.Writer) *StagingManager {
	return &StagingManager{
		fs:     fs,
		paths:  p,
		out:    out,
		logger: logging.GetLogger("export.staging"),
	}
}

// Stage assembles the session's staging tree: a self-contained, relocatable
// copy of the already-built plan plus integration glue. Every action in the
// plan must be AlreadyBuilt. Each step is idempotent against retry.
func (m *StagingManager) Stage(plan []types.ExportAction, session *Session) error {
	// Defensive delete: a crashed prior run may have left a stale tree.
	if err := m.fs.RemoveAll(session.StagingDir); err != nil {
		return errors.Wrapf(err, errors.ErrStagingPrepare,
			"failed to remove stale staging directory %s", session.StagingDir)
	}
	if err := m.fs.MkdirAll(session.StagingDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrStagingPrepare,
			"failed to create staging directory %s", session.StagingDir)
	}

	installedRoot := filepath.Join(session.StagingDir, paths.InstalledDirName)
	manifestDir := filepath.Join(installedRoot, paths.ManifestRootDirName, "info")

	for _, action := range plan {
		if action.Classification != types.AlreadyBuilt {
			return errors.Newf(errors.ErrInternal,
				"staging received a needs-build action for %s", action.Spec)
		}

		fmt.Fprintf(m.out, "Exporting package %s...\n", action.Spec)

		dirs := install.FromDestinationRoot(
			installedRoot,
			action.Spec.Triplet(),
			filepath.Join(manifestDir, action.Artifact+".list"))

		if err := install.Replay(m.fs, m.paths.PackageDir(action.Spec), dirs); err != nil {
			return errors.Wrapf(err, errors.ErrInstallReplay,
				"failed to export package %s", action.Spec)
		}

		fmt.Fprintf(m.out, "Exporting package %s... done\n", action.Spec)
	}

	return m.copyIntegrationFiles(session.StagingDir)
}

// copyIntegrationFiles replicates the fixed integration asset list into the
// staging tree, preserving relative paths. There is no partial-success
// mode: any single copy failure aborts.
func (m *StagingManager) copyIntegrationFiles(stagingDir string) error {
	for _, rel := range integrationFiles {
		src := filepath.Join(m.paths.Root(), rel)
		dst := filepath.Join(stagingDir, rel)

		if err := m.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrIntegrationCopy,
				"failed to create directory for integration file %s", rel)
		}

		data, err := m.fs.ReadFile(src)
		if err != nil {
			return errors.Wrapf(err, errors.ErrIntegrationCopy,
				"failed to read integration file %s", rel)
		}
		if err := m.fs.WriteFile(dst, data, 0644); err != nil {
			return errors.Wrapf(err, errors.ErrIntegrationCopy,
				"failed to write integration file %s", rel)
		}

		m.logger.Debug().Str("file", rel).Msg("Copied integration file")
	}
	return nil
}
