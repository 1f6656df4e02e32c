// Package plan computes export plans: the dependency closure of a requested
// package set, classified against the installed-status snapshot.
package plan

import (
	"sort"

	"github.com/arthur-debert/portico/pkg/logging"
	"github.com/arthur-debert/portico/pkg/status"
	"github.com/arthur-debert/portico/pkg/types"
)

// ComputeExportPlan returns one ExportAction per spec reachable from the
// requested set via dependency edges recorded in the snapshot. Dependencies
// resolve within the dependent's triplet. The result is deterministic for a
// fixed snapshot and requested set: actions are ordered by canonical spec
// string.
func ComputeExportPlan(requested []types.PackageSpec, db *status.DB) []types.ExportAction {
	log := logging.GetLogger("plan")

	requestedSet := make(map[string]bool, len(requested))
	for _, spec := range requested {
		requestedSet[spec.String()] = true
	}

	seen := make(map[string]bool)
	var actions []types.ExportAction

	queue := make([]types.PackageSpec, 0, len(requested))
	queue = append(queue, requested...)

	for len(queue) > 0 {
		spec := queue[0]
		queue = queue[1:]

		if seen[spec.String()] {
			continue
		}
		seen[spec.String()] = true

		action := types.ExportAction{
			Spec:           spec,
			Classification: types.NeedsBuild,
			Request:        types.Transitive,
		}
		if requestedSet[spec.String()] {
			action.Request = types.UserRequested
		}

		pkg, ok := db.Get(spec)
		if ok && pkg.Installed() {
			action.Classification = types.AlreadyBuilt
			action.Artifact = pkg.ArtifactName()
		}

		if ok {
			for _, dep := range pkg.Dependencies {
				depSpec, err := types.NewPackageSpec(dep, spec.Triplet())
				if err != nil {
					log.Warn().Str("dependency", dep).Str("of", spec.String()).Msg("Skipping malformed dependency name")
					continue
				}
				queue = append(queue, depSpec)
			}
		}

		actions = append(actions, action)
	}

	sort.Slice(actions, func(i, j int) bool {
		return actions[i].Spec.String() < actions[j].Spec.String()
	})

	log.Debug().Int("requested", len(requested)).Int("actions", len(actions)).Msg("Computed export plan")
	return actions
}
