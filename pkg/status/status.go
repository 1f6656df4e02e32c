// Package status reads the installed-status snapshot that the install
// machinery maintains under installed/portico/. The export pipeline treats
// this as a read-only view of which packages exist in installed form and
// what they depend on.
package status

import (
	"os"

	"github.com/arthur-debert/portico/pkg/errors"
	"github.com/arthur-debert/portico/pkg/logging"
	"github.com/arthur-debert/portico/pkg/types"
	"gopkg.in/yaml.v3"
)

// Package states recorded in the snapshot
const (
	StateInstalled = "installed"
	StateAvailable = "available"
)

// PackageStatus is one snapshot entry.
type PackageStatus struct {
	Port         string   `yaml:"port"`
	Triplet      string   `yaml:"triplet"`
	Version      string   `yaml:"version"`
	State        string   `yaml:"state"`
	Artifact     string   `yaml:"artifact"`
	Dependencies []string `yaml:"dependencies"`
}

// Installed reports whether the entry's artifacts exist in installed form.
func (p *PackageStatus) Installed() bool {
	return p.State == StateInstalled
}

// ArtifactName returns the stable name used for the package's
// installed-file manifest. Falls back to <port>_<version>_<triplet> when
// the snapshot does not carry one explicitly.
func (p *PackageStatus) ArtifactName() string {
	if p.Artifact != "" {
		return p.Artifact
	}
	if p.Version != "" {
		return p.Port + "_" + p.Version + "_" + p.Triplet
	}
	return p.Port + "_" + p.Triplet
}

type snapshot struct {
	Packages []*PackageStatus `yaml:"packages"`
}

// DB is a loaded installed-status snapshot.
type DB struct {
	bySpec map[string]*PackageStatus
}

// Load reads a snapshot file. A missing file yields an empty snapshot:
// nothing is installed yet.
func Load(fs types.FS, path string) (*DB, error) {
	log := logging.GetLogger("status")

	db := &DB{bySpec: make(map[string]*PackageStatus)}

	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", path).Msg("No status snapshot found")
			return db, nil
		}
		return nil, errors.Wrapf(err, errors.ErrStatusLoad, "failed to read status snapshot %s", path)
	}

	var snap snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStatusLoad, "failed to parse status snapshot %s", path)
	}

	for _, pkg := range snap.Packages {
		db.bySpec[pkg.Port+":"+pkg.Triplet] = pkg
	}

	log.Debug().Int("packages", len(snap.Packages)).Str("path", path).Msg("Loaded status snapshot")
	return db, nil
}

// Get returns the snapshot entry for a spec, if present.
func (db *DB) Get(spec types.PackageSpec) (*PackageStatus, bool) {
	pkg, ok := db.bySpec[spec.String()]
	return pkg, ok
}

// IsInstalled reports whether a spec's artifacts exist in installed form.
func (db *DB) IsInstalled(spec types.PackageSpec) bool {
	pkg, ok := db.Get(spec)
	return ok && pkg.Installed()
}
