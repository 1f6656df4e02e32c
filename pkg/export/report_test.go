package export

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/portico/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func action(t *testing.T, spec string, classification types.ExportClassification, request types.RequestKind) types.ExportAction {
	t.Helper()

	parsed, err := types.ParsePackageSpec(spec, "x64-linux")
	require.NoError(t, err)
	return types.ExportAction{Spec: parsed, Classification: classification, Request: request}
}

func TestPrintPlanGroupOrder(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	reporter.PrintPlan([]types.ExportAction{
		action(t, "boost:x64-windows", types.NeedsBuild, types.UserRequested),
		action(t, "zlib:x64-windows", types.AlreadyBuilt, types.UserRequested),
	})

	out := buf.String()
	assert.Equal(t,
		"The following packages are already built and will be exported:\n"+
			"    zlib:x64-windows\n"+
			"The following packages need to be built:\n"+
			"    boost:x64-windows\n",
		out)
}

func TestPrintPlanSortsWithinGroup(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	reporter.PrintPlan([]types.ExportAction{
		action(t, "zlib:x64-windows", types.AlreadyBuilt, types.UserRequested),
		action(t, "libpng:x64-windows", types.AlreadyBuilt, types.UserRequested),
	})

	assert.Equal(t,
		"The following packages are already built and will be exported:\n"+
			"    libpng:x64-windows\n"+
			"    zlib:x64-windows\n",
		buf.String())
}

func TestPrintPlanTransitiveMarkerAndFootnote(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	reporter.PrintPlan([]types.ExportAction{
		action(t, "libpng:x64-windows", types.AlreadyBuilt, types.UserRequested),
		action(t, "zlib:x64-windows", types.AlreadyBuilt, types.Transitive),
	})

	out := buf.String()
	assert.Contains(t, out, "  * zlib:x64-windows")
	assert.Contains(t, out, "    libpng:x64-windows")
	assert.Contains(t, out, "Additional packages (*) need to be exported to complete this operation.")
}

func TestPrintPlanNoFootnoteWithoutTransitive(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	reporter.PrintPlan([]types.ExportAction{
		action(t, "zlib:x64-windows", types.AlreadyBuilt, types.UserRequested),
	})

	assert.NotContains(t, buf.String(), "Additional packages")
}

func TestUnbuiltUserRequested(t *testing.T) {
	specs := UnbuiltUserRequested([]types.ExportAction{
		action(t, "boost:x64-windows", types.NeedsBuild, types.UserRequested),
		action(t, "bzip2:x64-windows", types.NeedsBuild, types.Transitive),
		action(t, "zlib:x64-windows", types.AlreadyBuilt, types.UserRequested),
		action(t, "abseil:x64-windows", types.NeedsBuild, types.UserRequested),
	})

	require.Len(t, specs, 2)
	assert.Equal(t, "abseil:x64-windows", specs[0].String())
	assert.Equal(t, "boost:x64-windows", specs[1].String())
}

func TestPrintUnbuiltError(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	spec, err := types.ParsePackageSpec("boost", "x64-linux")
	require.NoError(t, err)
	reporter.PrintUnbuiltError([]types.PackageSpec{spec})

	assert.Equal(t,
		"There are packages that have not been built.\n"+
			"To build them, run:\n"+
			"    portico install boost:x64-linux\n",
		buf.String())
}

func TestHasUnbuilt(t *testing.T) {
	assert.False(t, HasUnbuilt([]types.ExportAction{
		action(t, "zlib:x64-windows", types.AlreadyBuilt, types.UserRequested),
	}))
	assert.True(t, HasUnbuilt([]types.ExportAction{
		action(t, "zlib:x64-windows", types.AlreadyBuilt, types.UserRequested),
		action(t, "boost:x64-windows", types.NeedsBuild, types.Transitive),
	}))
}
