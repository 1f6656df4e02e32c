package export

import (
	"path/filepath"
	"time"
)

// exportIDPrefix + a second-resolution timestamp name one invocation.
// Collisions require two invocations within the same second, which an
// operator-driven CLI does not produce in practice.
const exportIDPrefix = "export-"

// NewExportID formats an export identifier from a timestamp:
// export-YYYYMMDD-HHMMSS.
func NewExportID(now time.Time) string {
	return exportIDPrefix + now.Format("20060102-150405")
}

// Session is the transient state of one export invocation: the export
// identifier, the staging directory derived from it, and the artifacts
// produced so far (for reporting, not rollback).
type Session struct {
	ID         string
	StagingDir string
	Artifacts  []string
}

// NewSession derives a session from a timestamp. The staging directory
// lives directly under the portico root, named by the export identifier.
func NewSession(root string, now time.Time) *Session {
	id := NewExportID(now)
	return &Session{
		ID:         id,
		StagingDir: filepath.Join(root, id),
	}
}

// AddArtifact records a produced artifact path for final reporting.
func (s *Session) AddArtifact(path string) {
	s.Artifacts = append(s.Artifacts, path)
}
