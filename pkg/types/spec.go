package types

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/portico/pkg/errors"
)

// specPartRegexp matches valid port and triplet names: lowercase
// alphanumerics separated by single dashes.
var specPartRegexp = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// PackageSpec identifies one package instance as a (port, triplet) pair.
// It is immutable once constructed; equality and ordering are by the
// canonical string form.
type PackageSpec struct {
	port    string
	triplet string
}

// NewPackageSpec constructs a PackageSpec from an already-validated port
// and triplet pair.
func NewPackageSpec(port, triplet string) (PackageSpec, error) {
	if !specPartRegexp.MatchString(port) {
		return PackageSpec{}, errors.Newf(errors.ErrInvalidSpec,
			"invalid port name %q", port)
	}
	if !specPartRegexp.MatchString(triplet) {
		return PackageSpec{}, errors.Newf(errors.ErrInvalidSpec,
			"invalid triplet %q in package spec", triplet)
	}
	return PackageSpec{port: port, triplet: triplet}, nil
}

// ParsePackageSpec parses a command-line package specification of the form
// "<port>" or "<port>:<triplet>". When the triplet is omitted, defaultTriplet
// is used.
func ParsePackageSpec(input, defaultTriplet string) (PackageSpec, error) {
	port := input
	triplet := defaultTriplet

	if idx := strings.IndexByte(input, ':'); idx >= 0 {
		port = input[:idx]
		triplet = input[idx+1:]
		if strings.IndexByte(triplet, ':') >= 0 {
			return PackageSpec{}, errors.Newf(errors.ErrInvalidSpec,
				"expected the package spec %q to contain at most one colon", input)
		}
	}

	return NewPackageSpec(port, triplet)
}

// Port returns the port name of the spec.
func (s PackageSpec) Port() string {
	return s.port
}

// Triplet returns the target triplet of the spec.
func (s PackageSpec) Triplet() string {
	return s.triplet
}

// String returns the canonical "<port>:<triplet>" form.
func (s PackageSpec) String() string {
	return s.port + ":" + s.triplet
}
