// Package install replays a built package's files into a destination tree,
// mirroring the layout the install machinery produces under installed/ and
// writing the per-package installed-file manifest alongside.
package install

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/portico/pkg/errors"
	"github.com/arthur-debert/portico/pkg/logging"
	"github.com/arthur-debert/portico/pkg/types"
)

// InstallDir describes the destination of one install replay.
type InstallDir struct {
	// DestRoot is the installed/ directory of the destination tree
	DestRoot string

	// Triplet is the target triplet subdirectory files land in
	Triplet string

	// ManifestPath is where the installed-file manifest is written
	ManifestPath string
}

// FromDestinationRoot builds an InstallDir the way the installer lays out
// installed trees: files under <destRoot>/<triplet>/, manifest at
// manifestPath.
func FromDestinationRoot(destRoot, triplet, manifestPath string) InstallDir {
	return InstallDir{
		DestRoot:     destRoot,
		Triplet:      triplet,
		ManifestPath: manifestPath,
	}
}

// Replay copies every file under sourcePackageDir into the destination
// tree and writes the manifest listing what was installed. Manifest lines
// are triplet-prefixed relative paths, directories with a trailing slash,
// sorted ascending.
func Replay(fs types.FS, sourcePackageDir string, dirs InstallDir) error {
	log := logging.GetLogger("install")

	destTripletDir := filepath.Join(dirs.DestRoot, dirs.Triplet)
	if err := fs.MkdirAll(destTripletDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", destTripletDir)
	}

	manifest := []string{dirs.Triplet + "/"}
	if err := copyTree(fs, sourcePackageDir, destTripletDir, dirs.Triplet, &manifest); err != nil {
		return err
	}

	sort.Strings(manifest)

	if err := fs.MkdirAll(filepath.Dir(dirs.ManifestPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create manifest directory for %s", dirs.ManifestPath)
	}
	content := strings.Join(manifest, "\n") + "\n"
	if err := fs.WriteFile(dirs.ManifestPath, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write manifest %s", dirs.ManifestPath)
	}

	log.Debug().
		Str("source", sourcePackageDir).
		Str("dest", destTripletDir).
		Int("entries", len(manifest)).
		Msg("Replayed package install")
	return nil
}

// copyTree copies src into dst recursively, appending manifest entries
// relative to the triplet root.
func copyTree(fs types.FS, src, dst, relPrefix string, manifest *[]string) error {
	entries, err := fs.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read package directory %s", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		relPath := path.Join(relPrefix, entry.Name())

		if entry.IsDir() {
			if err := fs.MkdirAll(dstPath, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dstPath)
			}
			*manifest = append(*manifest, relPath+"/")
			if err := copyTree(fs, srcPath, dstPath, relPath, manifest); err != nil {
				return err
			}
			continue
		}

		data, err := fs.ReadFile(srcPath)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", srcPath)
		}
		if err := fs.WriteFile(dstPath, data, 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dstPath)
		}
		*manifest = append(*manifest, relPath)
	}

	return nil
}
