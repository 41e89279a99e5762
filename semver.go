package osver

import (
	"errors"
	"fmt"
	"math"

	"github.com/blang/semver/v4"
)

var (
	// ErrNegativeComponent reports a version that has no semver form.
	ErrNegativeComponent = errors.New("osver: negative component has no semver form")
	// ErrSemverMetadata reports a semver carrying pre-release or build data.
	ErrSemverMetadata = errors.New("osver: semver pre-release and build metadata are not representable")
	// ErrComponentOverflow reports a semver component above the int range.
	ErrComponentOverflow = errors.New("osver: component overflows int")
)

// Semver converts v to a semantic version. Negative components fail.
func (v Version) Semver() (semver.Version, error) {
	if v.major < 0 || v.minor < 0 || v.patch < 0 {
		return semver.Version{}, fmt.Errorf("%w: %s", ErrNegativeComponent, v)
	}
	return semver.Version{Major: uint64(v.major), Minor: uint64(v.minor), Patch: uint64(v.patch)}, nil
}

// FromSemver converts a plain semantic version.
func FromSemver(sv semver.Version) (Version, error) {
	if len(sv.Pre) > 0 || len(sv.Build) > 0 {
		return Version{}, fmt.Errorf("%w: %s", ErrSemverMetadata, sv)
	}
	for _, c := range []uint64{sv.Major, sv.Minor, sv.Patch} {
		if c > math.MaxInt {
			return Version{}, fmt.Errorf("%w: %s", ErrComponentOverflow, sv)
		}
	}
	return New(int(sv.Major), int(sv.Minor), int(sv.Patch)), nil
}

// ParseSemver parses a semantic version string with semver.ParseTolerant
// (a leading "v" and a missing patch are accepted) and converts it.
func ParseSemver(s string) (Version, error) {
	sv, err := semver.ParseTolerant(s)
	if err != nil {
		return Version{}, &ParseError{Input: s, Err: fmt.Errorf("%w: %w", ErrInvalidFormat, err)}
	}
	return FromSemver(sv)
}
