package export

import (
	"testing"
	"time"

	"github.com/arthur-debert/portico/pkg/config"
	"github.com/arthur-debert/portico/pkg/paths"
	"github.com/arthur-debert/portico/pkg/testutil"
	"github.com/stretchr/testify/require"
)

const testStatusSnapshot = `
packages:
  - port: zlib
    triplet: x64-windows
    version: 1.2.13
    state: installed
  - port: libpng
    triplet: x64-windows
    version: 1.6.39
    state: installed
    dependencies: [zlib]
  - port: boost
    triplet: x64-windows
    state: available
`

// newTestRoot lays out a minimal but complete portico root on disk: root
// marker, integration scripts, a triplet definition, one built package and
// the status snapshot.
func newTestRoot(t *testing.T) (paths.Paths, string) {
	t.Helper()

	root := t.TempDir()

	testutil.CreateFile(t, root, ".portico-root", "")
	testutil.CreateFile(t, root, "scripts/buildsystems/msbuild/applocal.ps1", "# applocal")
	testutil.CreateFile(t, root, "scripts/buildsystems/msbuild/portico.targets", "<Project/>")
	testutil.CreateFile(t, root, "scripts/buildsystems/portico.cmake", "# toolchain")
	testutil.CreateFile(t, root, "scripts/cmake/portico_get_windows_sdk.cmake", "# sdk")
	testutil.CreateFile(t, root, "scripts/getWindowsSDK.ps1", "# sdk")
	testutil.CreateFile(t, root, "scripts/getProgramFilesPlatformBitness.ps1", "# pf")
	testutil.CreateFile(t, root, "scripts/getProgramFiles32bit.ps1", "# pf32")
	testutil.CreateFile(t, root, "triplets/x64-windows.cmake", "# triplet")

	testutil.CreateFile(t, root, "packages/zlib_x64-windows/include/zlib.h", "// zlib")
	testutil.CreateFile(t, root, "packages/zlib_x64-windows/lib/zlib.lib", "lib")
	testutil.CreateFile(t, root, "packages/libpng_x64-windows/include/png.h", "// png")

	testutil.CreateFile(t, root, "installed/portico/status.yaml", testStatusSnapshot)

	p, err := paths.New(root)
	require.NoError(t, err)
	return p, root
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.DefaultTriplet = "x64-windows"
	return cfg
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
}
