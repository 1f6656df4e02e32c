package export

import (
	"testing"

	"github.com/arthur-debert/portico/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseArgs(t *testing.T, packages []string, switches map[string]bool, settings map[string]string) (*Options, error) {
	t.Helper()

	return ParseArguments(RawArguments{
		Packages: packages,
		Switches: switches,
		Settings: settings,
	}, "x64-linux")
}

func TestParseArgumentsFormats(t *testing.T) {
	opts, err := parseArgs(t, []string{"zlib"}, map[string]bool{OptionZip: true, OptionRaw: true}, nil)
	require.NoError(t, err)

	assert.True(t, opts.Zip)
	assert.True(t, opts.Raw)
	assert.False(t, opts.Nuget)
	assert.True(t, opts.RawBased())

	require.Len(t, opts.Specs, 1)
	assert.Equal(t, "zlib:x64-linux", opts.Specs[0].String())
}

func TestParseArgumentsExplicitTriplet(t *testing.T) {
	opts, err := parseArgs(t, []string{"zlib:x64-windows"}, map[string]bool{OptionDryRun: true}, nil)
	require.NoError(t, err)

	assert.Equal(t, "zlib:x64-windows", opts.Specs[0].String())
}

func TestParseArgumentsNoFormatSelected(t *testing.T) {
	_, err := parseArgs(t, []string{"zlib"}, nil, nil)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoFormatSelected))
}

func TestParseArgumentsDryRunAlone(t *testing.T) {
	opts, err := parseArgs(t, nil, map[string]bool{OptionDryRun: true}, nil)

	require.NoError(t, err)
	assert.True(t, opts.DryRun)
	assert.False(t, opts.RawBased())
}

func TestParseArgumentsSettingRequiresFormat(t *testing.T) {
	tests := []struct {
		name     string
		switches map[string]bool
		settings map[string]string
	}{
		{"nuget_id_without_nuget", map[string]bool{OptionZip: true}, map[string]string{OptionNugetID: "mylib"}},
		{"nuget_version_without_nuget", map[string]bool{OptionRaw: true}, map[string]string{OptionNugetVersion: "2.0.0"}},
		{"ifw_url_without_ifw", map[string]bool{OptionNuget: true}, map[string]string{OptionIFWRepositoryURL: "https://example.org"}},
		{"ifw_config_without_ifw", map[string]bool{OptionZip: true}, map[string]string{OptionIFWConfigFile: "/tmp/config.xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(t, []string{"zlib"}, tt.switches, tt.settings)

			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrOptionRequiresFormat))
		})
	}
}

func TestParseArgumentsNugetSettings(t *testing.T) {
	opts, err := parseArgs(t, []string{"zlib"},
		map[string]bool{OptionNuget: true},
		map[string]string{OptionNugetID: "mylib", OptionNugetVersion: "2.0.0"})

	require.NoError(t, err)
	assert.Equal(t, "mylib", opts.NugetID)
	assert.Equal(t, "2.0.0", opts.NugetVersion)
}

func TestParseArgumentsIFWSettings(t *testing.T) {
	opts, err := parseArgs(t, []string{"zlib"},
		map[string]bool{OptionIFW: true},
		map[string]string{
			OptionIFWRepositoryURL: "https://example.org/repo",
			OptionIFWInstallerFile: "/tmp/installer.exe",
		})

	require.NoError(t, err)
	assert.Equal(t, "https://example.org/repo", opts.IFWOptions.RepositoryURL)
	assert.Equal(t, "/tmp/installer.exe", opts.IFWOptions.InstallerFilePath)
	assert.Empty(t, opts.IFWOptions.ConfigFilePath)
}

func TestParseArgumentsInvalidSpec(t *testing.T) {
	_, err := parseArgs(t, []string{"ZLib"}, map[string]bool{OptionZip: true}, nil)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidSpec))
}
