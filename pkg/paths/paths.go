// Package paths provides centralized path handling for portico.
// It resolves the portico root directory and derives every well-known
// location inside it (installed tree, package output trees, scripts,
// triplet definitions) from that single root.
package paths

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/portico/pkg/errors"
	"github.com/arthur-debert/portico/pkg/types"
)

// Environment variable names
const (
	// EnvRoot is the primary environment variable for the portico root
	EnvRoot = "PORTICO_ROOT"

	// EnvDefaultTriplet overrides the default target triplet
	EnvDefaultTriplet = "PORTICO_DEFAULT_TRIPLET"
)

// Well-known names inside a portico root.
// IMPORTANT: these define the on-disk layout shared by every portico
// installation and by every exported tree; they are not user-configurable.
const (
	// RootMarkerFile marks the root of a portico tree
	RootMarkerFile = ".portico-root"

	// InstalledDirName holds installed package artifacts, per triplet
	InstalledDirName = "installed"

	// PackagesDirName holds per-package build output trees
	PackagesDirName = "packages"

	// ScriptsDirName holds build-system integration scripts
	ScriptsDirName = "scripts"

	// TripletsDirName holds triplet definition files
	TripletsDirName = "triplets"

	// ManifestRootDirName is the subdirectory of installed/ that holds
	// portico's own bookkeeping (status snapshot, file-list manifests)
	ManifestRootDirName = "portico"

	// ConfigFileName is the tool configuration file at the root
	ConfigFileName = "portico.toml"

	// StatusFileName is the installed-status snapshot file
	StatusFileName = "status.yaml"
)

// Paths provides centralized path management for portico
type Paths interface {
	Root() string
	UsedFallback() bool
	InstalledDir() string
	PackagesDir() string
	PackageDir(spec types.PackageSpec) string
	ScriptsDir() string
	TripletsDir() string
	TripletFile(triplet string) string
	RootMarkerPath() string
	BuildsystemsTmpDir() string
	StatusFilePath() string
	ConfigFilePath() string
}

type paths struct {
	root         string
	usedFallback bool
}

// New creates a new Paths instance with the given portico root.
// If root is empty, it is resolved from PORTICO_ROOT, then by walking up
// from the current directory looking for the root marker file, then by
// falling back to the current directory.
func New(root string) (Paths, error) {
	p := &paths{}

	if root == "" {
		found, usedFallback, err := findRoot()
		if err != nil {
			return nil, err
		}
		p.root = found
		p.usedFallback = usedFallback
	} else {
		p.root = root
	}

	absRoot, err := filepath.Abs(p.root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for portico root")
	}
	p.root = absRoot

	return p, nil
}

// findRoot resolves the portico root using the following priority:
// 1. PORTICO_ROOT environment variable (if set)
// 2. The nearest ancestor of the working directory containing .portico-root
// 3. Current working directory (fallback)
func findRoot() (string, bool, error) {
	if root := os.Getenv(EnvRoot); root != "" {
		return root, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrap(err, errors.ErrFileAccess, "failed to get working directory")
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, RootMarkerFile)); err == nil {
			return dir, false, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return cwd, true, nil
}

func (p *paths) Root() string {
	return p.root
}

func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

func (p *paths) InstalledDir() string {
	return filepath.Join(p.root, InstalledDirName)
}

func (p *paths) PackagesDir() string {
	return filepath.Join(p.root, PackagesDirName)
}

// PackageDir returns the build output tree for one package instance,
// packages/<port>_<triplet>.
func (p *paths) PackageDir(spec types.PackageSpec) string {
	return filepath.Join(p.PackagesDir(), spec.Port()+"_"+spec.Triplet())
}

func (p *paths) ScriptsDir() string {
	return filepath.Join(p.root, ScriptsDirName)
}

func (p *paths) TripletsDir() string {
	return filepath.Join(p.root, TripletsDirName)
}

func (p *paths) TripletFile(triplet string) string {
	return filepath.Join(p.TripletsDir(), triplet+".cmake")
}

func (p *paths) RootMarkerPath() string {
	return filepath.Join(p.root, RootMarkerFile)
}

// BuildsystemsTmpDir is the scratch location for synthesized packaging
// files (nuspec, targets redirect).
func (p *paths) BuildsystemsTmpDir() string {
	return filepath.Join(p.ScriptsDir(), "buildsystems", "tmp")
}

func (p *paths) StatusFilePath() string {
	return filepath.Join(p.InstalledDir(), ManifestRootDirName, StatusFileName)
}

func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.root, ConfigFileName)
}
