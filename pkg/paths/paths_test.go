package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/portico/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithExplicitRoot(t *testing.T) {
	dir := t.TempDir()

	p, err := New(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, p.Root())
	assert.False(t, p.UsedFallback())
	assert.Equal(t, filepath.Join(dir, "installed"), p.InstalledDir())
	assert.Equal(t, filepath.Join(dir, "packages"), p.PackagesDir())
	assert.Equal(t, filepath.Join(dir, "scripts"), p.ScriptsDir())
	assert.Equal(t, filepath.Join(dir, ".portico-root"), p.RootMarkerPath())
	assert.Equal(t, filepath.Join(dir, "scripts", "buildsystems", "tmp"), p.BuildsystemsTmpDir())
	assert.Equal(t, filepath.Join(dir, "installed", "portico", "status.yaml"), p.StatusFilePath())
}

func TestNewFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvRoot, dir)

	p, err := New("")
	require.NoError(t, err)

	assert.Equal(t, dir, p.Root())
	assert.False(t, p.UsedFallback())
}

func TestNewFindsRootMarker(t *testing.T) {
	dir := t.TempDir()
	// macOS tempdirs live behind a /var symlink; resolve it so path
	// comparisons below are stable.
	dir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, RootMarkerFile), nil, 0644))

	t.Setenv(EnvRoot, "")
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	p, err := New("")
	require.NoError(t, err)

	assert.Equal(t, dir, p.Root())
	assert.False(t, p.UsedFallback())
}

func TestPackageDir(t *testing.T) {
	p, err := New(t.TempDir())
	require.NoError(t, err)

	spec, err := types.NewPackageSpec("zlib", "x64-windows")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(p.PackagesDir(), "zlib_x64-windows"), p.PackageDir(spec))
}

func TestTripletFile(t *testing.T) {
	p, err := New(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(p.TripletsDir(), "x64-linux.cmake"), p.TripletFile("x64-linux"))
}
