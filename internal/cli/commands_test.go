package cli

import (
	"testing"

	"github.com/arthur-debert/portico/pkg/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawArguments(t *testing.T) {
	cmd := newExportCmd()
	require.NoError(t, cmd.Flags().Set("zip", "true"))
	require.NoError(t, cmd.Flags().Set("nuget", "true"))
	require.NoError(t, cmd.Flags().Set("nuget-id", "mylib"))

	raw := rawArguments(cmd, []string{"zlib", "libpng:x64-windows"})

	assert.Equal(t, []string{"zlib", "libpng:x64-windows"}, raw.Packages)
	assert.True(t, raw.Switches[export.OptionZip])
	assert.True(t, raw.Switches[export.OptionNuget])
	assert.False(t, raw.Switches[export.OptionRaw])
	assert.Equal(t, "mylib", raw.Settings[export.OptionNugetID])
}

func TestRawArgumentsOmitsUnsetSettings(t *testing.T) {
	cmd := newExportCmd()
	require.NoError(t, cmd.Flags().Set("ifw", "true"))

	raw := rawArguments(cmd, []string{"zlib"})

	// unset settings are absent, not empty strings, so the option
	// negotiation can tell "not given" from "given as empty"
	_, present := raw.Settings[export.OptionNugetID]
	assert.False(t, present)
	_, present = raw.Settings[export.OptionIFWRepositoryURL]
	assert.False(t, present)
}

func TestExportCommandFlags(t *testing.T) {
	cmd := newExportCmd()

	for _, sw := range export.SwitchDescriptions {
		assert.NotNil(t, cmd.Flags().Lookup(sw.Name), sw.Name)
	}
	assert.NotNil(t, cmd.Flags().Lookup(export.OptionIFWInstallerFile))
}
