package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/portico/pkg/types"
)

// Reporter renders a classified export plan for the operator.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a Reporter writing to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// classificationOrder is the fixed print order for plan groups.
var classificationOrder = []types.ExportClassification{
	types.AlreadyBuilt,
	types.NeedsBuild,
}

// PrintPlan prints the plan grouped by classification, AlreadyBuilt first,
// each group sorted by canonical spec string. Transitive packages carry a
// `*` marker; a single footnote explains it when any are present.
func (r *Reporter) PrintPlan(actions []types.ExportAction) {
	groups := groupByClassification(actions)

	for _, classification := range classificationOrder {
		group := groups[classification]
		if len(group) == 0 {
			continue
		}

		sort.Slice(group, func(i, j int) bool {
			return group[i].Spec.String() < group[j].Spec.String()
		})

		var lines []string
		for _, action := range group {
			if action.Request == types.Transitive {
				lines = append(lines, "  * "+action.Spec.String())
			} else {
				lines = append(lines, "    "+action.Spec.String())
			}
		}

		switch classification {
		case types.AlreadyBuilt:
			fmt.Fprintf(r.out, "The following packages are already built and will be exported:\n%s\n", strings.Join(lines, "\n"))
		case types.NeedsBuild:
			fmt.Fprintf(r.out, "The following packages need to be built:\n%s\n", strings.Join(lines, "\n"))
		}
	}

	if hasTransitive(actions) {
		fmt.Fprintln(r.out, "Additional packages (*) need to be exported to complete this operation.")
	}
}

// UnbuiltUserRequested returns the user-requested NeedsBuild specs, sorted.
// Transitive unbuilt packages are omitted: building their dependents
// resolves them automatically.
func UnbuiltUserRequested(actions []types.ExportAction) []types.PackageSpec {
	var specs []types.PackageSpec
	for _, action := range actions {
		if action.Classification == types.NeedsBuild && action.Request == types.UserRequested {
			specs = append(specs, action.Spec)
		}
	}
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].String() < specs[j].String()
	})
	return specs
}

// PrintUnbuiltError prints the abort message with a ready-to-copy build
// command for the given specs.
func (r *Reporter) PrintUnbuiltError(specs []types.PackageSpec) {
	strs := make([]string, 0, len(specs))
	for _, spec := range specs {
		strs = append(strs, spec.String())
	}
	fmt.Fprintln(r.out, "There are packages that have not been built.")
	fmt.Fprintf(r.out, "To build them, run:\n    portico install %s\n", strings.Join(strs, " "))
}

func groupByClassification(actions []types.ExportAction) map[types.ExportClassification][]types.ExportAction {
	groups := make(map[types.ExportClassification][]types.ExportAction)
	for _, action := range actions {
		groups[action.Classification] = append(groups[action.Classification], action)
	}
	return groups
}

func hasTransitive(actions []types.ExportAction) bool {
	for _, action := range actions {
		if action.Request == types.Transitive {
			return true
		}
	}
	return false
}

// HasUnbuilt reports whether the plan contains any NeedsBuild action.
func HasUnbuilt(actions []types.ExportAction) bool {
	for _, action := range actions {
		if action.Classification == types.NeedsBuild {
			return true
		}
	}
	return false
}
