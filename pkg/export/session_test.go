package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewExportID(t *testing.T) {
	ts := time.Date(2026, 8, 30, 14, 30, 5, 0, time.UTC)
	assert.Equal(t, "export-20260830-143005", NewExportID(ts))
}

func TestNewSession(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	session := NewSession("/opt/portico", ts)

	assert.Equal(t, "export-20260102-030405", session.ID)
	assert.Equal(t, filepath.Join("/opt/portico", "export-20260102-030405"), session.StagingDir)
	assert.Empty(t, session.Artifacts)
}

func TestSessionAddArtifact(t *testing.T) {
	session := NewSession("/opt/portico", time.Now())

	session.AddArtifact("/opt/portico/a.zip")
	session.AddArtifact("/opt/portico/b.nupkg")

	assert.Equal(t, []string{"/opt/portico/a.zip", "/opt/portico/b.nupkg"}, session.Artifacts)
}
