package config

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/portico/pkg/paths"
	"github.com/arthur-debert/portico/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "portico.toml"))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DefaultTriplet)
	assert.Equal(t, "cmake", cfg.Tools.CMake)
	assert.Equal(t, "nuget", cfg.Tools.Nuget)
	assert.Equal(t, "binarycreator", cfg.Tools.BinaryCreator)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "portico.toml", `
default_triplet = "arm64-osx"
output_dir = "/tmp/exports"

[tools]
cmake = "/opt/cmake/bin/cmake"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "arm64-osx", cfg.DefaultTriplet)
	assert.Equal(t, "/tmp/exports", cfg.OutputDir)
	assert.Equal(t, "/opt/cmake/bin/cmake", cfg.Tools.CMake)
	// unset tools still get defaults
	assert.Equal(t, "nuget", cfg.Tools.Nuget)
}

func TestLoadEnvOverridesTriplet(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "portico.toml", `default_triplet = "x64-windows"`)

	t.Setenv(paths.EnvDefaultTriplet, "x64-linux")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "x64-linux", cfg.DefaultTriplet)
}

func TestLoadInvalidToml(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "portico.toml", `default_triplet = [broken`)

	_, err := Load(path)
	assert.Error(t, err)
}
