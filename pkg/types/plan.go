package types

// ExportClassification describes whether a package's installed artifacts
// already exist or the port still has to be built.
type ExportClassification int

const (
	// AlreadyBuilt means the package is installed and can be exported as-is.
	AlreadyBuilt ExportClassification = iota

	// NeedsBuild means the port is available but its artifacts do not exist.
	NeedsBuild
)

// String returns a human-readable name for the classification.
func (c ExportClassification) String() string {
	switch c {
	case AlreadyBuilt:
		return "already-built"
	case NeedsBuild:
		return "needs-build"
	default:
		return "unknown"
	}
}

// RequestKind distinguishes packages named on the command line from packages
// pulled in only as dependencies.
type RequestKind int

const (
	// UserRequested means the spec appeared literally in the invocation's
	// argument list.
	UserRequested RequestKind = iota

	// Transitive means the spec was pulled in as a dependency of a
	// user-requested spec.
	Transitive
)

// ExportAction is one node of a computed export plan.
type ExportAction struct {
	Spec           PackageSpec
	Classification ExportClassification
	Request        RequestKind

	// Artifact is the stable installed-artifact name used to name the
	// package's installed-file manifest. Set only for AlreadyBuilt actions.
	Artifact string
}
