package osver

import "strconv"

// Object-shape keys. Decoding also accepts the legacy spellings when the
// canonical key is absent.
const (
	KeyMajor = "major"
	KeyMinor = "minor"
	KeyPatch = "patch"

	LegacyKeyMajor = "majorVersion"
	LegacyKeyMinor = "minorVersion"
	LegacyKeyPatch = "patchVersion"
)

// Version is an operating system version. The zero value is 0.0.0.
// Versions are comparable with == and can be used as map keys.
type Version struct {
	major int
	minor int
	patch int
}

// OperatingSystemVersion is the plain three-integer aggregate reported by
// host platforms. It carries no behaviour of its own.
type OperatingSystemVersion struct {
	MajorVersion int
	MinorVersion int
	PatchVersion int
}

// New returns the version major.minor.patch. Any int is accepted.
func New(major, minor, patch int) Version {
	return Version{major: major, minor: minor, patch: patch}
}

// NewMajorMinor returns major.minor.0.
func NewMajorMinor(major, minor int) Version {
	return New(major, minor, 0)
}

// FromOperatingSystemVersion copies the three fields of osv verbatim.
func FromOperatingSystemVersion(osv OperatingSystemVersion) Version {
	return New(osv.MajorVersion, osv.MinorVersion, osv.PatchVersion)
}

// OperatingSystemVersion returns the native triple for v.
func (v Version) OperatingSystemVersion() OperatingSystemVersion {
	return OperatingSystemVersion{MajorVersion: v.major, MinorVersion: v.minor, PatchVersion: v.patch}
}

// Major returns the major component.
func (v Version) Major() int { return v.major }

// Minor returns the minor component.
func (v Version) Minor() int { return v.minor }

// Patch returns the patch component.
func (v Version) Patch() int { return v.patch }

// IsZero reports whether v is 0.0.0.
func (v Version) IsZero() bool { return v == Version{} }

// String returns the canonical text form. All three components are always
// present, so 1.2 renders as "1.2.0".
func (v Version) String() string {
	b := make([]byte, 0, 16)
	b = strconv.AppendInt(b, int64(v.major), 10)
	b = append(b, '.')
	b = strconv.AppendInt(b, int64(v.minor), 10)
	b = append(b, '.')
	b = strconv.AppendInt(b, int64(v.patch), 10)
	return string(b)
}

// ints returns the components in wire order.
func (v Version) ints() [3]int { return [3]int{v.major, v.minor, v.patch} }
